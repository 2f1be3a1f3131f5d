// Package bloom builds the fixed-size Bloom filter embedded in config cells.
//
// Positions use double hashing over the two halves of a 128-bit murmur3
// digest: pos_i = (h1 + i*h2) mod m, computed in uint64 arithmetic. The
// exported vector is ceil(m/8) bytes, bit p stored in byte p/8 under mask
// 1<<(p%8).
package bloom

import (
	"math"

	"github.com/bits-and-blooms/bitset"
	bbloom "github.com/bits-and-blooms/bloom/v3"
	"github.com/spaolacci/murmur3"
)

// Filter is an append-only Bloom filter. It is not safe for concurrent use.
type Filter struct {
	m     uint
	k     uint
	bits  *bitset.BitSet
	count uint
}

// New returns an empty filter of m bits probed k times. Zero values are
// raised to 1.
func New(m, k uint) *Filter {
	m = max(m, 1)
	k = max(k, 1)
	return &Filter{m: m, k: k, bits: bitset.New(m)}
}

// Bits returns m.
func (f *Filter) Bits() uint { return f.m }

// Probes returns k.
func (f *Filter) Probes() uint { return f.k }

// Count returns how many Insert calls were made.
func (f *Filter) Count() uint { return f.count }

// Insert sets the k bits for item.
func (f *Filter) Insert(item []byte) {
	for _, p := range positions(item, f.m, f.k) {
		f.bits.Set(p)
	}
	f.count++
}

// InsertString is Insert for string items.
func (f *Filter) InsertString(item string) { f.Insert([]byte(item)) }

// Test reports whether item may be in the set.
func (f *Filter) Test(item []byte) bool {
	for _, p := range positions(item, f.m, f.k) {
		if !f.bits.Test(p) {
			return false
		}
	}
	return true
}

// Export packs the bit vector into ceil(m/8) bytes.
func (f *Filter) Export() []byte {
	out := make([]byte, ExportedSize(f.m))
	for i, ok := f.bits.NextSet(0); ok; i, ok = f.bits.NextSet(i + 1) {
		out[i/8] |= 1 << (i % 8)
	}
	return out
}

// ExportedSize returns the byte length of an exported m-bit filter.
func ExportedSize(m uint) int { return int((m + 7) / 8) }

// TestExported reports whether item may be in the set represented by an
// exported vector of m bits probed k times. A vector of the wrong length
// never matches.
func TestExported(exported []byte, m, k uint, item []byte) bool {
	if m == 0 || k == 0 || len(exported) != ExportedSize(m) {
		return false
	}
	for _, p := range positions(item, m, k) {
		if exported[p/8]&(1<<(p%8)) == 0 {
			return false
		}
	}
	return true
}

func positions(item []byte, m, k uint) []uint {
	h1, h2 := murmur3.Sum128(item)
	out := make([]uint, k)
	for i := uint64(0); i < uint64(k); i++ {
		out[i] = uint((h1 + i*h2) % uint64(m))
	}
	return out
}

// Recommend returns the m and k the bits-and-blooms estimator picks for n
// items at false-positive rate p.
func Recommend(n uint, p float64) (m, k uint) {
	return bbloom.EstimateParameters(n, p)
}

// FalsePositiveRate returns the analytic false-positive estimate
// (1 - e^(-kn/m))^k.
func FalsePositiveRate(m, k, n uint) float64 {
	if m == 0 {
		return 1
	}
	return math.Pow(1-math.Exp(-float64(k)*float64(n)/float64(m)), float64(k))
}
