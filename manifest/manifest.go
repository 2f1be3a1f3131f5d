// Package manifest re-checks an emitted manifest line without access to the
// inputs that produced it.
package manifest

import (
	"fmt"
	"strings"

	"xdao.co/cellconfig/cfgerr"
	"xdao.co/cellconfig/cidutil"
	"xdao.co/cellconfig/generator"
	"xdao.co/cellconfig/witness"
)

// Report summarizes a verified manifest.
type Report struct {
	CID     string
	Records []Entry
}

// Entry is one verified record.
type Entry struct {
	Type        witness.DataType
	WitnessSize int
}

// Verify parses line and checks every record: content hash binding, type tag
// consistency, action witness, and the witness size limit. Type tags must be
// unique across the manifest.
func Verify(line string, limit int) (*Report, error) {
	line = strings.TrimRight(line, "\r\n")
	if strings.TrimSpace(line) == "" {
		return nil, cfgerr.New(cfgerr.KindManifest, cfgerr.RuleManifestEmpty, "manifest is empty")
	}
	rep := &Report{CID: cidutil.ManifestCID(line)}
	seen := map[witness.DataType]int{}
	for i, raw := range strings.Split(line, generator.RecordSeparator) {
		rec, err := witness.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		if err := rec.Check(limit); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		t, _ := rec.Type()
		if prev, dup := seen[t]; dup {
			return nil, cfgerr.New(cfgerr.KindManifest, cfgerr.RuleManifestTag,
				"record %d repeats type %s of record %d", i, t, prev)
		}
		seen[t] = i
		rep.Records = append(rep.Records, Entry{Type: t, WitnessSize: len(rec.EntityWitness)})
	}
	return rep, nil
}
