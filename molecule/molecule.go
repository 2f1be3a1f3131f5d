// Package molecule implements the subset of the molecule canonical
// serialization used by config cell entities.
//
// Scalars are fixed-width little-endian. Tables and dynvecs share one layout:
// a 4-byte total size, one 4-byte offset per item, then the items. Fixvecs
// carry a 4-byte item count followed by the items. Structs and arrays are
// plain concatenations.
package molecule

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// HeaderSize is the width of every size, count and offset field.
const HeaderSize = 4

// HashSize is the width of a Byte32 / Hash value.
const HashSize = 32

// PrependLength frames raw with its total size (header included), the same
// leading field a table or dynvec carries, so framed raw buffers and codec
// output can be parsed alike.
func PrependLength(raw []byte) []byte {
	out := make([]byte, HeaderSize, HeaderSize+len(raw))
	binary.LittleEndian.PutUint32(out, uint32(HeaderSize+len(raw)))
	return append(out, raw...)
}

func Uint8(v uint8) []byte { return []byte{v} }

func Uint32(v uint32) []byte {
	return binary.LittleEndian.AppendUint32(nil, v)
}

func Uint64(v uint64) []byte {
	return binary.LittleEndian.AppendUint64(nil, v)
}

// Hash encodes a Byte32 value.
func Hash(h [HashSize]byte) []byte {
	return append([]byte(nil), h[:]...)
}

// Bytes encodes a fixvec<byte>.
func Bytes(b []byte) []byte {
	out := make([]byte, HeaderSize, HeaderSize+len(b))
	binary.LittleEndian.PutUint32(out, uint32(len(b)))
	return append(out, b...)
}

// Struct concatenates fixed-size fields.
func Struct(fields ...[]byte) []byte {
	var out []byte
	for _, f := range fields {
		out = append(out, f...)
	}
	return out
}

// Table encodes fields with a total size and per-field offsets.
func Table(fields ...[]byte) []byte {
	header := HeaderSize * (1 + len(fields))
	total := header
	for _, f := range fields {
		total += len(f)
	}
	out := make([]byte, header, total)
	binary.LittleEndian.PutUint32(out, uint32(total))
	offset := header
	for i, f := range fields {
		binary.LittleEndian.PutUint32(out[HeaderSize*(i+1):], uint32(offset))
		offset += len(f)
	}
	for _, f := range fields {
		out = append(out, f...)
	}
	return out
}

// Dynvec encodes a vector of variable-size items. The layout is identical to
// Table.
func Dynvec(items ...[]byte) []byte {
	return Table(items...)
}

var errTruncated = errors.New("molecule: truncated input")

// SplitTable returns the fields of a table (or items of a dynvec), verifying
// that the header is self-consistent.
func SplitTable(b []byte) ([][]byte, error) {
	if len(b) < HeaderSize {
		return nil, errTruncated
	}
	total := int(binary.LittleEndian.Uint32(b))
	if total != len(b) {
		return nil, fmt.Errorf("molecule: total size %d does not match %d bytes", total, len(b))
	}
	if total == HeaderSize {
		return nil, nil
	}
	if total < 2*HeaderSize {
		return nil, errTruncated
	}
	first := int(binary.LittleEndian.Uint32(b[HeaderSize:]))
	if first%HeaderSize != 0 || first < 2*HeaderSize || first > total {
		return nil, fmt.Errorf("molecule: invalid first offset %d", first)
	}
	n := first/HeaderSize - 1
	offsets := make([]int, n+1)
	for i := 0; i < n; i++ {
		offsets[i] = int(binary.LittleEndian.Uint32(b[HeaderSize*(i+1):]))
	}
	offsets[n] = total
	fields := make([][]byte, n)
	for i := 0; i < n; i++ {
		if offsets[i] > offsets[i+1] {
			return nil, fmt.Errorf("molecule: offset %d out of order", i)
		}
		fields[i] = b[offsets[i]:offsets[i+1]]
	}
	return fields, nil
}

// SplitBytes returns the payload of a fixvec<byte>.
func SplitBytes(b []byte) ([]byte, error) {
	if len(b) < HeaderSize {
		return nil, errTruncated
	}
	n := int(binary.LittleEndian.Uint32(b))
	if HeaderSize+n != len(b) {
		return nil, fmt.Errorf("molecule: bytes length %d does not match %d bytes", n, len(b)-HeaderSize)
	}
	return b[HeaderSize:], nil
}
