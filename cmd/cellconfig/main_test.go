package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xdao.co/cellconfig/cidutil"
	"xdao.co/cellconfig/generator"
)

var sampleData = filepath.Join("..", "..", "data")

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code := run(args, &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestGenerate_PrintsSingleLine(t *testing.T) {
	code, out, errOut := runCLI(t, "generate", "--data-dir", sampleData, "--log-level", "info")
	require.Equal(t, 0, code, errOut)
	require.True(t, strings.HasSuffix(out, "\n"))
	line := strings.TrimSuffix(out, "\n")
	assert.NotContains(t, line, "\n")
	assert.Contains(t, errOut, cidutil.ManifestCID(line))
	assert.Contains(t, errOut, `"msg":"manifest generated"`)
}

func TestGenerate_ThenVerify(t *testing.T) {
	code, out, errOut := runCLI(t, "generate", "--data-dir", sampleData, "--profile", "mainnet", "--log-level", "error")
	require.Equal(t, 0, code, errOut)

	path := filepath.Join(t.TempDir(), "manifest.txt")
	require.NoError(t, os.WriteFile(path, []byte(out), 0o644))

	line := strings.TrimSuffix(out, "\n")
	// nine single cells, twenty preserved account shards, unavailable, bloom, three char sets
	require.Len(t, strings.Split(line, generator.RecordSeparator), 34)
	code, vout, verr := runCLI(t, "verify", path, "--expect-cid", cidutil.ManifestCID(line), "--log-level", "error")
	require.Equal(t, 0, code, verr)
	assert.Equal(t, "OK records=34 cid="+cidutil.ManifestCID(line)+"\n", vout)

	code, _, verr = runCLI(t, "verify", path, "--expect-cid", cidutil.ManifestCID("other"), "--log-level", "error")
	assert.Equal(t, 1, code)
	assert.Contains(t, verr, "does not match")
}

func TestGenerate_Deterministic(t *testing.T) {
	_, a, _ := runCLI(t, "generate", "--data-dir", sampleData, "--log-level", "error")
	_, b, _ := runCLI(t, "generate", "--data-dir", sampleData, "--log-level", "error")
	assert.Equal(t, a, b)
}

func TestGenerate_OnlySections(t *testing.T) {
	code, out, errOut := runCLI(t, "generate", "--data-dir", sampleData, "--only", "apply,char_set", "--log-level", "error")
	require.Equal(t, 0, code, errOut)
	assert.Len(t, strings.Split(strings.TrimSpace(out), generator.RecordSeparator), 4)

	code, _, _ = runCLI(t, "generate", "--data-dir", sampleData, "--only", "nope", "--log-level", "error")
	assert.Equal(t, 2, code)
}

func TestGenerate_Failures(t *testing.T) {
	code, out, errOut := runCLI(t, "generate", "--data-dir", t.TempDir(), "--log-level", "error")
	assert.Equal(t, 1, code)
	assert.Empty(t, out)
	assert.Contains(t, errOut, "expected input file")

	code, _, _ = runCLI(t, "generate", "--data-dir", filepath.Join(t.TempDir(), "missing"), "--log-level", "error")
	assert.Equal(t, 1, code)

	code, _, errOut = runCLI(t, "generate", "--data-dir", sampleData, "--profile", "devnet")
	assert.Equal(t, 2, code)
	assert.Contains(t, errOut, "unknown profile")
}

func TestUsageErrors(t *testing.T) {
	code, _, _ := runCLI(t, "generate", "--no-such-flag")
	assert.Equal(t, 2, code)

	code, _, _ = runCLI(t, "frobnicate")
	assert.Equal(t, 2, code)

	code, _, _ = runCLI(t, "sections", "extra")
	assert.Equal(t, 2, code)

	code, _, _ = runCLI(t, "generate", "--log-level", "loud")
	assert.Equal(t, 2, code)
}

func TestProfileShow_FromEnvironment(t *testing.T) {
	t.Setenv("CELLCONFIG_PROFILE", "mainnet")
	code, out, errOut := runCLI(t, "profile", "show")
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, "name: mainnet")

	code, out, _ = runCLI(t, "profile", "show", "--profile", "testnet")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "name: testnet")
}

func TestProfileList_AndSections(t *testing.T) {
	code, out, _ := runCLI(t, "profile", "list")
	require.Equal(t, 0, code)
	assert.Equal(t, "mainnet\ntestnet\n", out)

	code, out, _ = runCLI(t, "sections")
	require.Equal(t, 0, code)
	assert.Equal(t, strings.Join(generator.Sections(), "\n")+"\n", out)
}

func TestVerify_RejectsCorruptManifest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifest.txt")
	require.NoError(t, os.WriteFile(path, []byte("0x00 0x01\n"), 0o644))
	code, _, errOut := runCLI(t, "verify", path, "--log-level", "error")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "record 0")
}
