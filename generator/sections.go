package generator

import (
	"bytes"
	"context"
	"slices"
	"sort"

	"xdao.co/cellconfig/account"
	"xdao.co/cellconfig/bloom"
	"xdao.co/cellconfig/entity"
	"xdao.co/cellconfig/logtrace"
	"xdao.co/cellconfig/molecule"
	"xdao.co/cellconfig/shard"
	"xdao.co/cellconfig/witness"
)

// Input file names, relative to the data directory.
const (
	RecordKeyNamespaceFile = "record_key_namespace.txt"
	PreservedAccountsFile  = "preserved_accounts.txt"
	UnavailableHashesFile  = "unavailable_account_hashes.txt"
	BloomFilterFile        = "bloom_filter.txt"
	CharSetEmojiFile       = "char_set_emoji.txt"
	CharSetDigitFile       = "char_set_digit.txt"
	CharSetEnFile          = "char_set_en.txt"
)

type section struct {
	name  string
	build func(g *Generator, ctx context.Context) ([]*witness.Payload, error)
}

var sections = []section{
	{"account", func(g *Generator, _ context.Context) ([]*witness.Payload, error) {
		return g.entity(witness.ConfigCellAccount, g.profile.Account.Encode())
	}},
	{"apply", func(g *Generator, _ context.Context) ([]*witness.Payload, error) {
		return g.entity(witness.ConfigCellApply, g.profile.Apply.Encode())
	}},
	{"income", func(g *Generator, _ context.Context) ([]*witness.Payload, error) {
		return g.entity(witness.ConfigCellIncome, g.profile.Income.Encode())
	}},
	{"main", func(g *Generator, _ context.Context) ([]*witness.Payload, error) {
		// Hashes and out points stay zeroed; deploy scripts patch them.
		return g.entity(witness.ConfigCellMain, entity.ConfigCellMain{Status: g.profile.MainStatus}.Encode())
	}},
	{"price", func(g *Generator, _ context.Context) ([]*witness.Payload, error) {
		e := entity.ConfigCellPrice{InvitedDiscount: g.profile.InvitedDiscount, Prices: g.profile.Prices}
		return g.entity(witness.ConfigCellPrice, e.Encode())
	}},
	{"proposal", func(g *Generator, _ context.Context) ([]*witness.Payload, error) {
		return g.entity(witness.ConfigCellProposal, g.profile.Proposal.Encode())
	}},
	{"profit_rate", func(g *Generator, _ context.Context) ([]*witness.Payload, error) {
		return g.entity(witness.ConfigCellProfitRate, g.profile.ProfitRate.Encode())
	}},
	{"record_key_namespace", (*Generator).recordKeyNamespace},
	{"release", func(g *Generator, _ context.Context) ([]*witness.Payload, error) {
		return g.entity(witness.ConfigCellRelease, entity.ConfigCellRelease{Rules: g.profile.ReleaseRules}.Encode())
	}},
	{"preserved_account", (*Generator).preservedAccounts},
	{"unavailable_account", (*Generator).unavailableAccounts},
	{"bloom_filter", (*Generator).bloomFilter},
	{"char_set", (*Generator).charSets},
}

// Sections lists section names in output order.
func Sections() []string {
	out := make([]string, len(sections))
	for i, s := range sections {
		out[i] = s.name
	}
	return out
}

func isSection(name string) bool {
	return slices.Contains(Sections(), name)
}

func (g *Generator) entity(t witness.DataType, encoded []byte) ([]*witness.Payload, error) {
	p, err := g.wrap(t, witness.Entity(encoded))
	if err != nil {
		return nil, err
	}
	return []*witness.Payload{p}, nil
}

func (g *Generator) raw(t witness.DataType, b []byte) ([]*witness.Payload, error) {
	p, err := g.wrap(t, witness.Raw(b))
	if err != nil {
		return nil, err
	}
	return []*witness.Payload{p}, nil
}

// NulTerminated concatenates values, each followed by a 0x00 byte.
func NulTerminated(prefix []byte, values []string) []byte {
	out := append([]byte(nil), prefix...)
	for _, v := range values {
		out = append(out, v...)
		out = append(out, 0)
	}
	return out
}

func (g *Generator) recordKeyNamespace(ctx context.Context) ([]*witness.Payload, error) {
	keys, err := g.lines(ctx, RecordKeyNamespaceFile)
	if err != nil {
		return nil, err
	}
	keys = slices.Clone(keys)
	sort.Strings(keys)
	return g.raw(witness.ConfigCellRecordKeyNamespace, molecule.PrependLength(NulTerminated(nil, keys)))
}

func (g *Generator) preservedAccounts(ctx context.Context) ([]*witness.Payload, error) {
	names, err := g.lines(ctx, PreservedAccountsFile)
	if err != nil {
		return nil, err
	}
	ids := make([]account.ID, len(names))
	for i, n := range names {
		ids[i] = account.Fingerprint(n, g.profile.FingerprintLength)
	}
	shards, err := shard.Assign(ids, g.profile.ShardCount, g.profile.PerShardLimit)
	if err != nil {
		return nil, err
	}
	out := make([]*witness.Payload, 0, len(shards))
	for _, s := range shards {
		logtrace.Debug(ctx, "shard assigned", logtrace.Fields{
			logtrace.FieldShard: s.Index,
			logtrace.FieldCount: len(s.Members),
		})
		p, err := g.wrap(witness.PreservedAccountShard(s.Index), witness.Raw(s.Bytes()))
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func (g *Generator) unavailableAccounts(ctx context.Context) ([]*witness.Payload, error) {
	lines, err := g.lines(ctx, UnavailableHashesFile)
	if err != nil {
		return nil, err
	}
	ids := make([]account.ID, 0, len(lines))
	for _, l := range lines {
		id, err := account.FromHashHex(l, g.profile.FingerprintLength)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	slices.SortFunc(ids, func(a, b account.ID) int { return bytes.Compare(a, b) })
	ids = slices.CompactFunc(ids, func(a, b account.ID) bool { return bytes.Equal(a, b) })
	var raw []byte
	for _, id := range ids {
		raw = append(raw, id...)
	}
	return g.raw(witness.ConfigCellUnAvailableAccount, molecule.PrependLength(raw))
}

func (g *Generator) bloomFilter(ctx context.Context) ([]*witness.Payload, error) {
	items, err := g.lines(ctx, BloomFilterFile)
	if err != nil {
		return nil, err
	}
	f := bloom.New(g.profile.BloomBits, g.profile.BloomProbes)
	for _, it := range items {
		f.InsertString(it)
	}
	n := uint(len(items))
	recM, recK := bloom.Recommend(max(n, 1), 0.01)
	logtrace.Info(ctx, "bloom filter sized", logtrace.Fields{
		logtrace.FieldCount:        n,
		"bits":                     f.Bits(),
		"probes":                   f.Probes(),
		logtrace.FieldFalsePosRate: bloom.FalsePositiveRate(f.Bits(), f.Probes(), n),
		"recommended_bits":         recM,
		"recommended_probes":       recK,
	})
	// Fixed-size vector; embedded without a length header.
	return g.raw(witness.ConfigCellBloomFilter, f.Export())
}

// CharSet is one character-set cell: its tag, input file and leading status
// byte.
type CharSet struct {
	Type   witness.DataType
	File   string
	Status uint8
}

// CharSets lists the generated character sets in output order.
var CharSets = []CharSet{
	{witness.ConfigCellCharSetEmoji, CharSetEmojiFile, 1},
	{witness.ConfigCellCharSetDigit, CharSetDigitFile, 1},
	{witness.ConfigCellCharSetEn, CharSetEnFile, 0},
}

func (g *Generator) charSets(ctx context.Context) ([]*witness.Payload, error) {
	out := make([]*witness.Payload, 0, len(CharSets))
	for _, cs := range CharSets {
		chars, err := g.lines(ctx, cs.File)
		if err != nil {
			return nil, err
		}
		p, err := g.wrap(cs.Type, witness.Raw(molecule.PrependLength(NulTerminated([]byte{cs.Status}, chars))))
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}
