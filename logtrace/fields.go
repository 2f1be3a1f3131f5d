package logtrace

// Fields is a type alias for structured log fields
type Fields map[string]interface{}

// WithFields returns a copy of base with extra fields merged in.
func WithFields(base Fields, extra Fields) Fields {
	fields := Fields{}
	for key, value := range base {
		fields[key] = value
	}
	for key, value := range extra {
		fields[key] = value
	}
	return fields
}

const (
	FieldSection      = "section"
	FieldProfile      = "profile"
	FieldFile         = "file"
	FieldLine         = "line"
	FieldError        = "error"
	FieldRuleID       = "rule_id"
	FieldDataType     = "data_type"
	FieldWitnessSize  = "witness_size"
	FieldRecords      = "records"
	FieldShard        = "shard"
	FieldCount        = "count"
	FieldSkipped      = "skipped"
	FieldManifestCID  = "manifest_cid"
	FieldFalsePosRate = "false_positive_rate"
)
