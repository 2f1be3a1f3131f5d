// Package cidutil derives IPFS-compatible content identifiers for emitted
// manifests, so deploy tooling can pin and compare them.
package cidutil

import (
	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multihash"
)

// manifestPrefix is CIDv1, raw multicodec, sha2-256.
var manifestPrefix = cid.Prefix{
	Version:  1,
	Codec:    cid.Raw,
	MhType:   multihash.SHA2_256,
	MhLength: -1,
}

// Sum returns the manifest CID of data.
func Sum(data []byte) (cid.Cid, error) {
	return manifestPrefix.Sum(data)
}

// ManifestCID identifies a manifest line. The trailing newline printed after
// the manifest is not part of the identified bytes.
func ManifestCID(line string) string {
	id, err := Sum([]byte(line))
	if err != nil {
		// sha2-256 with default length cannot fail.
		return ""
	}
	return id.String()
}

// Matches reports whether expected (any CID encoding) identifies data.
func Matches(data []byte, expected string) (bool, error) {
	want, err := cid.Decode(expected)
	if err != nil {
		return false, err
	}
	got, err := Sum(data)
	if err != nil {
		return false, err
	}
	return got.Equals(want), nil
}
