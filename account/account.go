// Package account derives the fixed-length account identifiers used to group
// and order account sets in config cells.
package account

import (
	"bytes"
	"encoding/hex"
	"strings"

	"xdao.co/cellconfig/cfgerr"
	"xdao.co/cellconfig/ckbhash"
)

// DefaultIDLength is the fingerprint length used by every built-in profile.
const DefaultIDLength = 20

// ID is a truncated account hash. It is used for grouping and ordering only.
type ID []byte

// Compare orders IDs byte-wise.
func (id ID) Compare(other ID) int { return bytes.Compare(id, other) }

func (id ID) String() string { return hex.EncodeToString(id) }

// Fingerprint hashes name and keeps the first n bytes of the digest.
func Fingerprint(name string, n int) ID {
	sum := ckbhash.Blake2b256([]byte(name))
	return append(ID(nil), sum[:clamp(n)]...)
}

// FromHashHex decodes a precomputed account hash and truncates it to n bytes.
// An optional 0x prefix is accepted.
func FromHashHex(line string, n int) (ID, error) {
	s := strings.TrimPrefix(strings.TrimSpace(line), "0x")
	raw, err := hex.DecodeString(s)
	if err != nil {
		return nil, cfgerr.Wrap(cfgerr.KindDecode, cfgerr.RuleInvalidHex, err, "invalid account hash %q", line)
	}
	if len(raw) < n {
		return nil, cfgerr.New(cfgerr.KindDecode, cfgerr.RuleShortHash, "account hash %q has %d bytes, need %d", line, len(raw), n)
	}
	return ID(raw[:n]), nil
}

func clamp(n int) int {
	if n < 0 {
		return 0
	}
	if n > ckbhash.Size {
		return ckbhash.Size
	}
	return n
}
