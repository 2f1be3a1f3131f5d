package witness

import "fmt"

// DataType is the numeric type tag leading every witness.
type DataType uint32

const (
	ActionData DataType = 0

	ConfigCellAccount            DataType = 100
	ConfigCellApply              DataType = 101
	ConfigCellIncome             DataType = 103
	ConfigCellMain               DataType = 104
	ConfigCellPrice              DataType = 105
	ConfigCellProposal           DataType = 106
	ConfigCellProfitRate         DataType = 107
	ConfigCellRecordKeyNamespace DataType = 108
	ConfigCellRelease            DataType = 109
	ConfigCellUnAvailableAccount DataType = 110
	ConfigCellBloomFilter        DataType = 111

	ConfigCellPreservedAccount00 DataType = 10000

	ConfigCellCharSetEmoji DataType = 100000
	ConfigCellCharSetDigit DataType = 100001
	ConfigCellCharSetEn    DataType = 100002
)

// PreservedAccountShard returns the type tag of preserved-account shard i.
func PreservedAccountShard(i int) DataType {
	return ConfigCellPreservedAccount00 + DataType(i)
}

var names = map[DataType]string{
	ActionData:                   "ActionData",
	ConfigCellAccount:            "ConfigCellAccount",
	ConfigCellApply:              "ConfigCellApply",
	ConfigCellIncome:             "ConfigCellIncome",
	ConfigCellMain:               "ConfigCellMain",
	ConfigCellPrice:              "ConfigCellPrice",
	ConfigCellProposal:           "ConfigCellProposal",
	ConfigCellProfitRate:         "ConfigCellProfitRate",
	ConfigCellRecordKeyNamespace: "ConfigCellRecordKeyNamespace",
	ConfigCellRelease:            "ConfigCellRelease",
	ConfigCellUnAvailableAccount: "ConfigCellUnAvailableAccount",
	ConfigCellBloomFilter:        "ConfigCellBloomFilter",
	ConfigCellCharSetEmoji:       "ConfigCellCharSetEmoji",
	ConfigCellCharSetDigit:       "ConfigCellCharSetDigit",
	ConfigCellCharSetEn:          "ConfigCellCharSetEn",
}

func (d DataType) String() string {
	if n, ok := names[d]; ok {
		return n
	}
	if d >= ConfigCellPreservedAccount00 && d < ConfigCellPreservedAccount00+100 {
		return fmt.Sprintf("ConfigCellPreservedAccount%02d", d-ConfigCellPreservedAccount00)
	}
	return fmt.Sprintf("DataType(%d)", uint32(d))
}
