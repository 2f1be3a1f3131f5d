package entity

import (
	"encoding/binary"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xdao.co/cellconfig/molecule"
)

func TestConfigCellApply_Encoding(t *testing.T) {
	got := ConfigCellApply{MinWaitingBlockNumber: 1, MaxWaitingBlockNumber: 5760}.Encode()
	want := []byte{
		20, 0, 0, 0,
		12, 0, 0, 0,
		16, 0, 0, 0,
		1, 0, 0, 0,
		0x80, 0x16, 0, 0,
	}
	assert.Equal(t, want, got)
}

func TestConfigCellMain_Sizes(t *testing.T) {
	b := ConfigCellMain{Status: 1}.Encode()
	fields, err := molecule.SplitTable(b)
	require.NoError(t, err)
	require.Len(t, fields, 3)

	assert.Equal(t, []byte{1}, fields[0])
	assert.Len(t, fields[1], 4*7+6*32)
	assert.Len(t, fields[2], 4*6+5*36)
	assert.Len(t, b, 441)
}

func TestConfigCellPrice_DynvecOfTables(t *testing.T) {
	c := ConfigCellPrice{
		InvitedDiscount: 500,
		Prices: []PriceConfig{
			{Length: 1, New: 5_000_000, Renew: 5_000_000},
			{Length: 2, New: 30_000_000, Renew: 30_000_000},
		},
	}
	fields, err := molecule.SplitTable(c.Encode())
	require.NoError(t, err)
	require.Len(t, fields, 2)

	discount, err := molecule.SplitTable(fields[0])
	require.NoError(t, err)
	assert.Equal(t, uint32(500), binary.LittleEndian.Uint32(discount[0]))

	prices, err := molecule.SplitTable(fields[1])
	require.NoError(t, err)
	require.Len(t, prices, 2)
	second, err := molecule.SplitTable(prices[1])
	require.NoError(t, err)
	assert.Equal(t, []byte{2}, second[0])
	assert.Equal(t, uint64(30_000_000), binary.LittleEndian.Uint64(second[1]))
}

func TestConfigCellRelease_UnixSeconds(t *testing.T) {
	start := time.Date(2021, 7, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2021, 7, 31, 0, 0, 0, 0, time.UTC)
	b := ConfigCellRelease{Rules: []ReleaseRule{{Length: 2, Start: start, End: end}}}.Encode()

	outer, err := molecule.SplitTable(b)
	require.NoError(t, err)
	rules, err := molecule.SplitTable(outer[0])
	require.NoError(t, err)
	require.Len(t, rules, 1)
	rule, err := molecule.SplitTable(rules[0])
	require.NoError(t, err)

	assert.Equal(t, uint32(2), binary.LittleEndian.Uint32(rule[0]))
	assert.Equal(t, uint64(1625097600), binary.LittleEndian.Uint64(rule[1]))
	assert.Equal(t, uint64(1627689600), binary.LittleEndian.Uint64(rule[2]))
}

func TestConfigCellRelease_EmptyRules(t *testing.T) {
	assert.Equal(t, []byte{12, 0, 0, 0, 8, 0, 0, 0, 4, 0, 0, 0}, ConfigCellRelease{}.Encode())
}

func TestOutPoint_Encoding(t *testing.T) {
	var h Hash
	h[0] = 0xaa
	b := OutPoint{TxHash: h, Index: 3}.Encode()
	require.Len(t, b, 36)
	assert.Equal(t, byte(0xaa), b[0])
	assert.Equal(t, []byte{3, 0, 0, 0}, b[32:])
}
