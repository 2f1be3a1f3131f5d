// Package profile defines the named parameter sets a generation run is built
// from. A profile is selected at runtime; nothing is chosen at compile time.
package profile

import (
	"math"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"xdao.co/cellconfig/account"
	"xdao.co/cellconfig/cfgerr"
	"xdao.co/cellconfig/entity"
)

const (
	Mainnet = "mainnet"
	Testnet = "testnet"

	// Default matches the historical non-mainnet build.
	Default = Testnet
)

// Profile is the full set of constants for one generation run.
type Profile struct {
	Name string `yaml:"name"`

	WitnessSizeLimit  int  `yaml:"witness_size_limit"`
	ShardCount        int  `yaml:"shard_count"`
	PerShardLimit     int  `yaml:"per_shard_limit"`
	FingerprintLength int  `yaml:"fingerprint_length"`
	BloomBits         uint `yaml:"bloom_bits"`
	BloomProbes       uint `yaml:"bloom_probes"`

	Account         entity.ConfigCellAccount    `yaml:"account"`
	Apply           entity.ConfigCellApply      `yaml:"apply"`
	Income          entity.ConfigCellIncome     `yaml:"income"`
	MainStatus      uint8                       `yaml:"main_status"`
	InvitedDiscount uint32                      `yaml:"invited_discount"`
	Prices          []entity.PriceConfig        `yaml:"prices"`
	Proposal        entity.ConfigCellProposal   `yaml:"proposal"`
	ProfitRate      entity.ConfigCellProfitRate `yaml:"profit_rate"`
	ReleaseRules    []entity.ReleaseRule        `yaml:"release_rules"`
}

// YAML renders the profile for operators.
func (p *Profile) YAML() ([]byte, error) {
	return yaml.Marshal(p)
}

var registry = map[string]func() *Profile{
	Mainnet: mainnet,
	Testnet: testnet,
}

// Names lists the built-in profiles in sorted order.
func Names() []string {
	out := make([]string, 0, len(registry))
	for n := range registry {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Lookup returns a fresh copy of the named profile. An empty name selects
// Default.
func Lookup(name string) (*Profile, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		name = Default
	}
	build, ok := registry[name]
	if !ok {
		return nil, cfgerr.New(cfgerr.KindInternal, cfgerr.RuleConfig,
			"unknown profile %q (known: %s)", name, strings.Join(Names(), ", "))
	}
	return build(), nil
}

func base() *Profile {
	return &Profile{
		WitnessSizeLimit:  32 * 1024,
		ShardCount:        20,
		PerShardLimit:     1600,
		FingerprintLength: account.DefaultIDLength,
		BloomBits:         1438,
		BloomProbes:       10,
		Account: entity.ConfigCellAccount{
			MaxLength: 42,
			// Includes 1 CKB reserved for fees.
			BasicCapacity:           20_600_000_000,
			PreparedFeeCapacity:     100_000_000,
			ExpirationGracePeriod:   2_592_000,
			RecordMinTTL:            300,
			RecordSizeLimit:         5000,
			TransferAccountFee:      10_000,
			EditManagerFee:          10_000,
			EditRecordsFee:          10_000,
			TransferAccountThrottle: 300,
			EditManagerThrottle:     300,
			EditRecordsThrottle:     300,
		},
		Apply: entity.ConfigCellApply{
			MinWaitingBlockNumber: 1,
			MaxWaitingBlockNumber: 5760,
		},
		Income: entity.ConfigCellIncome{
			BasicCapacity:       20_000_000_000,
			MaxRecords:          50,
			MinTransferCapacity: 9_000_000_000,
		},
		MainStatus:      1,
		InvitedDiscount: 500,
		Proposal: entity.ConfigCellProposal{
			MinConfirmInterval:   2,
			MinExtendInterval:    1,
			MinRecycleInterval:   8,
			MaxAccountAffect:     50,
			MaxPreAccountContain: 50,
		},
		ProfitRate: entity.ConfigCellProfitRate{
			Channel:           1000,
			Inviter:           1000,
			ProposalCreate:    200,
			ProposalConfirm:   0,
			IncomeConsolidate: 500,
		},
	}
}

func mainnet() *Profile {
	p := base()
	p.Name = Mainnet
	p.Prices = []entity.PriceConfig{
		{Length: 1, New: 1024_000_000, Renew: 1024_000_000},
		{Length: 2, New: 1024_000_000, Renew: 1024_000_000},
		{Length: 3, New: 1024_000_000, Renew: 1024_000_000},
		{Length: 4, New: 1024_000_000, Renew: 1024_000_000},
		{Length: 5, New: 5_000_000, Renew: 5_000_000},
		{Length: 6, New: 5_000_000, Renew: 5_000_000},
		{Length: 7, New: 5_000_000, Renew: 5_000_000},
		{Length: 8, New: 5_000_000, Renew: 5_000_000},
	}
	p.ReleaseRules = []entity.ReleaseRule{
		{Length: 0, Start: utc(2021, 7, 1), End: utc(2021, 7, 1)},
	}
	return p
}

func testnet() *Profile {
	p := base()
	p.Name = Testnet
	p.Prices = []entity.PriceConfig{
		{Length: 1, New: math.MaxUint64, Renew: math.MaxUint64},
		{Length: 2, New: 30_000_000, Renew: 30_000_000},
		{Length: 3, New: 20_000_000, Renew: 20_000_000},
		{Length: 4, New: 10_000_000, Renew: 10_000_000},
		{Length: 5, New: 5_000_000, Renew: 5_000_000},
		{Length: 6, New: 5_000_000, Renew: 5_000_000},
		{Length: 7, New: 5_000_000, Renew: 5_000_000},
		{Length: 8, New: 5_000_000, Renew: 5_000_000},
	}
	p.ReleaseRules = []entity.ReleaseRule{
		{Length: 2, Start: utc(2021, 7, 1), End: utc(2021, 7, 31)},
		{Length: 0, Start: utc(2021, 6, 1), End: utc(2021, 6, 1)},
	}
	return p
}

func utc(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
