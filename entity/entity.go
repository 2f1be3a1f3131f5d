// Package entity holds the molecule schemas of the config cell entities and
// their canonical encodings.
package entity

import (
	"time"

	"xdao.co/cellconfig/molecule"
)

// Hash is a Byte32 value. The generator leaves hashes zeroed for deploy
// tooling to patch.
type Hash [molecule.HashSize]byte

// OutPoint is a struct {tx_hash: Hash, index: Uint32}.
type OutPoint struct {
	TxHash Hash
	Index  uint32
}

func (o OutPoint) Encode() []byte {
	return molecule.Struct(molecule.Hash(o.TxHash), molecule.Uint32(o.Index))
}

type ConfigCellAccount struct {
	MaxLength               uint32 `yaml:"max_length"`
	BasicCapacity           uint64 `yaml:"basic_capacity"`
	PreparedFeeCapacity     uint64 `yaml:"prepared_fee_capacity"`
	ExpirationGracePeriod   uint32 `yaml:"expiration_grace_period"`
	RecordMinTTL            uint32 `yaml:"record_min_ttl"`
	RecordSizeLimit         uint32 `yaml:"record_size_limit"`
	TransferAccountFee      uint64 `yaml:"transfer_account_fee"`
	EditManagerFee          uint64 `yaml:"edit_manager_fee"`
	EditRecordsFee          uint64 `yaml:"edit_records_fee"`
	TransferAccountThrottle uint32 `yaml:"transfer_account_throttle"`
	EditManagerThrottle     uint32 `yaml:"edit_manager_throttle"`
	EditRecordsThrottle     uint32 `yaml:"edit_records_throttle"`
}

func (c ConfigCellAccount) Encode() []byte {
	return molecule.Table(
		molecule.Uint32(c.MaxLength),
		molecule.Uint64(c.BasicCapacity),
		molecule.Uint64(c.PreparedFeeCapacity),
		molecule.Uint32(c.ExpirationGracePeriod),
		molecule.Uint32(c.RecordMinTTL),
		molecule.Uint32(c.RecordSizeLimit),
		molecule.Uint64(c.TransferAccountFee),
		molecule.Uint64(c.EditManagerFee),
		molecule.Uint64(c.EditRecordsFee),
		molecule.Uint32(c.TransferAccountThrottle),
		molecule.Uint32(c.EditManagerThrottle),
		molecule.Uint32(c.EditRecordsThrottle),
	)
}

type ConfigCellApply struct {
	MinWaitingBlockNumber uint32 `yaml:"apply_min_waiting_block_number"`
	MaxWaitingBlockNumber uint32 `yaml:"apply_max_waiting_block_number"`
}

func (c ConfigCellApply) Encode() []byte {
	return molecule.Table(
		molecule.Uint32(c.MinWaitingBlockNumber),
		molecule.Uint32(c.MaxWaitingBlockNumber),
	)
}

type ConfigCellIncome struct {
	BasicCapacity       uint64 `yaml:"basic_capacity"`
	MaxRecords          uint32 `yaml:"max_records"`
	MinTransferCapacity uint64 `yaml:"min_transfer_capacity"`
}

func (c ConfigCellIncome) Encode() []byte {
	return molecule.Table(
		molecule.Uint64(c.BasicCapacity),
		molecule.Uint32(c.MaxRecords),
		molecule.Uint64(c.MinTransferCapacity),
	)
}

// TypeIDTable lists the type ids of the protocol's cell scripts.
type TypeIDTable struct {
	AccountCell       Hash
	ApplyRegisterCell Hash
	BalanceCell       Hash
	IncomeCell        Hash
	PreAccountCell    Hash
	ProposalCell      Hash
}

func (t TypeIDTable) Encode() []byte {
	return molecule.Table(
		molecule.Hash(t.AccountCell),
		molecule.Hash(t.ApplyRegisterCell),
		molecule.Hash(t.BalanceCell),
		molecule.Hash(t.IncomeCell),
		molecule.Hash(t.PreAccountCell),
		molecule.Hash(t.ProposalCell),
	)
}

// LockOutPointTable lists the out points of the supported lock scripts.
type LockOutPointTable struct {
	CKBSignAll      OutPoint
	CKBMultiSign    OutPoint
	CKBAnyoneCanPay OutPoint
	ETH             OutPoint
	TRON            OutPoint
}

func (t LockOutPointTable) Encode() []byte {
	return molecule.Table(
		t.CKBSignAll.Encode(),
		t.CKBMultiSign.Encode(),
		t.CKBAnyoneCanPay.Encode(),
		t.ETH.Encode(),
		t.TRON.Encode(),
	)
}

type ConfigCellMain struct {
	Status            uint8
	TypeIDTable       TypeIDTable
	LockOutPointTable LockOutPointTable
}

func (c ConfigCellMain) Encode() []byte {
	return molecule.Table(
		molecule.Uint8(c.Status),
		c.TypeIDTable.Encode(),
		c.LockOutPointTable.Encode(),
	)
}

// PriceConfig is the registration and renewal price for one account length.
type PriceConfig struct {
	Length uint8  `yaml:"length"`
	New    uint64 `yaml:"new"`
	Renew  uint64 `yaml:"renew"`
}

func (p PriceConfig) Encode() []byte {
	return molecule.Table(
		molecule.Uint8(p.Length),
		molecule.Uint64(p.New),
		molecule.Uint64(p.Renew),
	)
}

type ConfigCellPrice struct {
	InvitedDiscount uint32
	Prices          []PriceConfig
}

func (c ConfigCellPrice) Encode() []byte {
	items := make([][]byte, len(c.Prices))
	for i, p := range c.Prices {
		items[i] = p.Encode()
	}
	discount := molecule.Table(molecule.Uint32(c.InvitedDiscount))
	return molecule.Table(discount, molecule.Dynvec(items...))
}

type ConfigCellProposal struct {
	MinConfirmInterval   uint8  `yaml:"proposal_min_confirm_interval"`
	MinExtendInterval    uint8  `yaml:"proposal_min_extend_interval"`
	MinRecycleInterval   uint8  `yaml:"proposal_min_recycle_interval"`
	MaxAccountAffect     uint32 `yaml:"proposal_max_account_affect"`
	MaxPreAccountContain uint32 `yaml:"proposal_max_pre_account_contain"`
}

func (c ConfigCellProposal) Encode() []byte {
	return molecule.Table(
		molecule.Uint8(c.MinConfirmInterval),
		molecule.Uint8(c.MinExtendInterval),
		molecule.Uint8(c.MinRecycleInterval),
		molecule.Uint32(c.MaxAccountAffect),
		molecule.Uint32(c.MaxPreAccountContain),
	)
}

// ConfigCellProfitRate holds rates in units of 1/10000.
type ConfigCellProfitRate struct {
	Channel           uint32 `yaml:"channel"`
	Inviter           uint32 `yaml:"inviter"`
	ProposalCreate    uint32 `yaml:"proposal_create"`
	ProposalConfirm   uint32 `yaml:"proposal_confirm"`
	IncomeConsolidate uint32 `yaml:"income_consolidate"`
}

func (c ConfigCellProfitRate) Encode() []byte {
	return molecule.Table(
		molecule.Uint32(c.Channel),
		molecule.Uint32(c.Inviter),
		molecule.Uint32(c.ProposalCreate),
		molecule.Uint32(c.ProposalConfirm),
		molecule.Uint32(c.IncomeConsolidate),
	)
}

// ReleaseRule opens accounts of Length characters between Start and End.
// Length 0 matches every length not covered by another rule.
type ReleaseRule struct {
	Length uint32    `yaml:"length"`
	Start  time.Time `yaml:"release_start"`
	End    time.Time `yaml:"release_end"`
}

func (r ReleaseRule) Encode() []byte {
	return molecule.Table(
		molecule.Uint32(r.Length),
		molecule.Uint64(uint64(r.Start.Unix())),
		molecule.Uint64(uint64(r.End.Unix())),
	)
}

type ConfigCellRelease struct {
	Rules []ReleaseRule
}

func (c ConfigCellRelease) Encode() []byte {
	items := make([][]byte, len(c.Rules))
	for i, r := range c.Rules {
		items[i] = r.Encode()
	}
	return molecule.Table(molecule.Dynvec(items...))
}
