package infra

import (
	"crypto/sha256"
	"crypto/sha512"
	"hash"

	"github.com/cloudcopper/verity/adapters"
)

type Sha256 struct {
}

func (s *Sha256) New() hash.Hash {
	return sha256.New()
}

type Sha512 struct {
}

func (s *Sha512) New() hash.Hash {
	return sha512.New()
}

func init() {
	adapters.RegisterDigestAlgo("sha256", &Sha256{})
	adapters.RegisterDigestAlgo("sha512", &Sha512{})
}
