package infra

import (
	"hash"

	"github.com/cloudcopper/verity/adapters"
	"github.com/zeebo/blake3"
)

// Blake3 gives 256 bits digest
type Blake3 struct {
}

func (b *Blake3) New() hash.Hash {
	return blake3.New()
}

func init() {
	adapters.RegisterDigestAlgo("blake3", &Blake3{})
}
