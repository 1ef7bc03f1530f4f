package ports

import "hash"

type DigestAlgo interface {
	// New returns fresh incremental hash accumulator
	New() hash.Hash
}
