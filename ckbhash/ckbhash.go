// Package ckbhash computes the chain's default content hash: BLAKE2b with a
// 32-byte digest and the "ckb-default-hash" personalization.
package ckbhash

import (
	"hash"

	"github.com/minio/blake2b-simd"
)

// Size is the digest length in bytes.
const Size = 32

var personalization = []byte("ckb-default-hash")

// Hash is a 32-byte digest.
type Hash [Size]byte

// New returns a streaming hasher with the chain personalization applied.
func New() hash.Hash {
	h, err := blake2b.New(&blake2b.Config{Size: Size, Person: personalization})
	if err != nil {
		// Only reachable with an invalid static config.
		panic("ckbhash: " + err.Error())
	}
	return h
}

// Blake2b256 returns the digest of data.
func Blake2b256(data []byte) Hash {
	h := New()
	_, _ = h.Write(data)
	var out Hash
	copy(out[:], h.Sum(nil))
	return out
}
