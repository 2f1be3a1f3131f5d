package generator

import (
	"context"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xdao.co/cellconfig/bloom"
	"xdao.co/cellconfig/cfgerr"
	"xdao.co/cellconfig/datafile"
	"xdao.co/cellconfig/profile"
	"xdao.co/cellconfig/witness"
)

func fixtureFiles() map[string][]string {
	return map[string][]string{
		RecordKeyNamespaceFile: {"profile.twitter", "address.eth", "address.btc", "dweb.ipfs"},
		PreservedAccountsFile:  {"google", "apple", "microsoft", "qq", "ali", "baidu", "das"},
		UnavailableHashesFile: {
			strings.Repeat("ff", 32),
			"0x" + strings.Repeat("01", 32),
			strings.Repeat("7a", 20),
		},
		BloomFilterFile:  {"google", "apple", "microsoft"},
		CharSetEmojiFile: {"😂", "👍", "✨"},
		CharSetDigitFile: {"0", "1", "2", "3", "4", "5", "6", "7", "8", "9"},
		CharSetEnFile:    {"a", "b", "c", "X", "Y", "Z"},
	}
}

func writeData(t *testing.T, files map[string][]string) *datafile.Dir {
	t.Helper()
	dir := t.TempDir()
	for name, lines := range files {
		content := strings.Join(lines, "\n") + "\n"
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	d, err := datafile.Open(dir, datafile.Strict)
	require.NoError(t, err)
	return d
}

func mustProfile(t *testing.T, name string) *profile.Profile {
	t.Helper()
	p, err := profile.Lookup(name)
	require.NoError(t, err)
	return p
}

func generate(t *testing.T, p *profile.Profile, files map[string][]string, opts ...Option) string {
	t.Helper()
	g, err := New(p, writeData(t, files), opts...)
	require.NoError(t, err)
	line, err := g.Generate(context.Background())
	require.NoError(t, err)
	return line
}

func TestGenerate_AllSectionsInFixedOrder(t *testing.T) {
	p := mustProfile(t, profile.Testnet)
	line := generate(t, p, fixtureFiles())

	records := strings.Split(line, RecordSeparator)
	require.Len(t, records, 9+p.ShardCount+1+1+3)
	assert.NotContains(t, line, "\n")

	var types []witness.DataType
	for _, r := range records {
		rec, err := witness.Parse(r)
		require.NoError(t, err)
		require.NoError(t, rec.Check(p.WitnessSizeLimit))
		typ, err := rec.Type()
		require.NoError(t, err)
		types = append(types, typ)
	}

	want := []witness.DataType{
		witness.ConfigCellAccount, witness.ConfigCellApply, witness.ConfigCellIncome,
		witness.ConfigCellMain, witness.ConfigCellPrice, witness.ConfigCellProposal,
		witness.ConfigCellProfitRate, witness.ConfigCellRecordKeyNamespace, witness.ConfigCellRelease,
	}
	for i := 0; i < p.ShardCount; i++ {
		want = append(want, witness.PreservedAccountShard(i))
	}
	want = append(want, witness.ConfigCellUnAvailableAccount, witness.ConfigCellBloomFilter,
		witness.ConfigCellCharSetEmoji, witness.ConfigCellCharSetDigit, witness.ConfigCellCharSetEn)
	assert.Equal(t, want, types)
}

func TestGenerate_IndependentOfInputLineOrder(t *testing.T) {
	p := mustProfile(t, profile.Mainnet)
	files := fixtureFiles()
	want := generate(t, p, files)

	reversed := fixtureFiles()
	for _, name := range []string{RecordKeyNamespaceFile, PreservedAccountsFile, UnavailableHashesFile, BloomFilterFile} {
		lines := reversed[name]
		for i, j := 0, len(lines)-1; i < j; i, j = i+1, j-1 {
			lines[i], lines[j] = lines[j], lines[i]
		}
	}
	assert.Equal(t, want, generate(t, p, reversed))
}

func TestGenerate_ProfilesDiffer(t *testing.T) {
	a := generate(t, mustProfile(t, profile.Mainnet), fixtureFiles())
	b := generate(t, mustProfile(t, profile.Testnet), fixtureFiles())
	assert.NotEqual(t, a, b)
}

func payloadsOf(t *testing.T, p *profile.Profile, files map[string][]string, sections ...string) []*witness.Payload {
	t.Helper()
	g, err := New(p, writeData(t, files), WithSections(sections...))
	require.NoError(t, err)
	out, err := g.Payloads(context.Background())
	require.NoError(t, err)
	return out
}

func TestCharSet_BufferSize(t *testing.T) {
	p := mustProfile(t, profile.Testnet)
	files := fixtureFiles()
	payloads := payloadsOf(t, p, files, "char_set")
	require.Len(t, payloads, len(CharSets))

	for i, cs := range CharSets {
		chars := files[cs.File]
		body := 1
		for _, c := range chars {
			body += len([]byte(c)) + 1
		}
		data := payloads[i].Data()
		require.Len(t, data, 4+body, cs.File)
		assert.Equal(t, uint32(4+body), binary.LittleEndian.Uint32(data))
		assert.Equal(t, cs.Status, data[4])
		assert.Equal(t, byte(0), data[len(data)-1])
	}
}

func TestRecordKeyNamespace_SortedAndNulTerminated(t *testing.T) {
	payloads := payloadsOf(t, mustProfile(t, profile.Testnet), fixtureFiles(), "record_key_namespace")
	require.Len(t, payloads, 1)
	data := payloads[0].Data()
	assert.Equal(t, "address.btc\x00address.eth\x00dweb.ipfs\x00profile.twitter\x00", string(data[4:]))
}

func TestUnavailableAccounts_TruncatedSorted(t *testing.T) {
	payloads := payloadsOf(t, mustProfile(t, profile.Testnet), fixtureFiles(), "unavailable_account")
	require.Len(t, payloads, 1)
	data := payloads[0].Data()
	require.Len(t, data, 4+3*20)
	assert.Equal(t, strings.Repeat("\x01", 20), string(data[4:24]))
	assert.Equal(t, strings.Repeat("\x7a", 20), string(data[24:44]))
	assert.Equal(t, strings.Repeat("\xff", 20), string(data[44:64]))
}

func TestBloomFilter_ExportedUnframed(t *testing.T) {
	p := mustProfile(t, profile.Testnet)
	payloads := payloadsOf(t, p, fixtureFiles(), "bloom_filter")
	require.Len(t, payloads, 1)

	data := payloads[0].Data()
	require.Len(t, data, 180)
	for _, it := range []string{"google", "apple", "microsoft"} {
		assert.True(t, bloom.TestExported(data, p.BloomBits, p.BloomProbes, []byte(it)), it)
	}
}

func TestPreservedAccounts_ShardCapacityAborts(t *testing.T) {
	p := mustProfile(t, profile.Testnet)
	p.ShardCount = 1
	p.PerShardLimit = 6

	g, err := New(p, writeData(t, fixtureFiles()))
	require.NoError(t, err)
	line, err := g.Generate(context.Background())
	require.Error(t, err)
	assert.Empty(t, line)
	assert.True(t, cfgerr.IsKind(err, cfgerr.KindShardCapacityExceeded))
	assert.Contains(t, err.Error(), "section preserved_account")

	p.PerShardLimit = 7
	line = generate(t, p, fixtureFiles())
	assert.Len(t, strings.Split(line, RecordSeparator), 9+1+1+1+3)
}

func TestGenerate_OversizedWitnessAborts(t *testing.T) {
	p := mustProfile(t, profile.Testnet)
	p.WitnessSizeLimit = 100

	g, err := New(p, writeData(t, fixtureFiles()))
	require.NoError(t, err)
	_, err = g.Generate(context.Background())
	require.Error(t, err)
	assert.True(t, cfgerr.IsKind(err, cfgerr.KindOversizedWitness))
	assert.Contains(t, err.Error(), "section account")
}

func TestGenerate_MissingInputFileAborts(t *testing.T) {
	files := fixtureFiles()
	delete(files, CharSetEnFile)

	g, err := New(mustProfile(t, profile.Testnet), writeData(t, files))
	require.NoError(t, err)
	_, err = g.Generate(context.Background())
	require.Error(t, err)
	assert.True(t, cfgerr.IsKind(err, cfgerr.KindMissingInputFile))
	assert.Contains(t, err.Error(), CharSetEnFile)
}

func TestGenerate_BadHashLineAborts(t *testing.T) {
	files := fixtureFiles()
	files[UnavailableHashesFile] = append(files[UnavailableHashesFile], "not-hex")

	g, err := New(mustProfile(t, profile.Testnet), writeData(t, files))
	require.NoError(t, err)
	_, err = g.Generate(context.Background())
	assert.True(t, cfgerr.IsKind(err, cfgerr.KindDecode))
}

func TestWithSections(t *testing.T) {
	p := mustProfile(t, profile.Testnet)
	payloads := payloadsOf(t, p, fixtureFiles(), "char_set", "apply")
	require.Len(t, payloads, 4)
	assert.Equal(t, witness.ConfigCellApply, payloads[0].Type)

	_, err := New(p, writeData(t, fixtureFiles()), WithSections("nope"))
	require.Error(t, err)
	assert.Equal(t, cfgerr.RuleConfig, cfgerr.RuleID(err))
}

func TestNew_RequiresProfile(t *testing.T) {
	_, err := New(nil, nil)
	assert.True(t, cfgerr.IsKind(err, cfgerr.KindInternal))
}

func TestSections_Order(t *testing.T) {
	assert.Equal(t, []string{
		"account", "apply", "income", "main", "price", "proposal", "profit_rate",
		"record_key_namespace", "release", "preserved_account", "unavailable_account",
		"bloom_filter", "char_set",
	}, Sections())
}

func TestPreservedAccounts_LargeSetStaysWithinLimits(t *testing.T) {
	p := mustProfile(t, profile.Mainnet)
	files := fixtureFiles()
	var names []string
	for i := 0; i < 5000; i++ {
		names = append(names, fmt.Sprintf("reserved%05d", i))
	}
	files[PreservedAccountsFile] = names

	payloads := payloadsOf(t, p, files, "preserved_account")
	require.Len(t, payloads, p.ShardCount)
	total := 0
	for _, pl := range payloads {
		assert.LessOrEqual(t, len(pl.EntityWitness), p.WitnessSizeLimit)
		total += (len(pl.Data()) - 4) / p.FingerprintLength
	}
	assert.Equal(t, 5000, total)
}
