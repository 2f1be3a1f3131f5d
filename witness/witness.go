// Package witness wraps config payloads into the four-field records emitted
// in the manifest.
package witness

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"strings"

	"xdao.co/cellconfig/cfgerr"
	"xdao.co/cellconfig/ckbhash"
	"xdao.co/cellconfig/molecule"
)

// ConfigAction is the action name carried by every config action witness.
const ConfigAction = "config"

// SourceKind tells how a payload was produced.
type SourceKind int

const (
	// SourceEntity is a record already serialized by the entity codec.
	SourceEntity SourceKind = iota
	// SourceRaw is a caller-built buffer, framed by the caller when it holds
	// a variable-length collection.
	SourceRaw
)

func (k SourceKind) String() string {
	if k == SourceEntity {
		return "entity"
	}
	return "raw"
}

// PayloadSource is the bytes to wrap plus how they were produced.
type PayloadSource struct {
	Kind  SourceKind
	Bytes []byte
}

// Entity marks b as codec output.
func Entity(b []byte) PayloadSource { return PayloadSource{Kind: SourceEntity, Bytes: b} }

// Raw marks b as a pre-built buffer.
func Raw(b []byte) PayloadSource { return PayloadSource{Kind: SourceRaw, Bytes: b} }

// Payload is one config cell record.
type Payload struct {
	Type          DataType
	Source        SourceKind
	ContentHash   ckbhash.Hash
	ActionWitness []byte
	EntityWitness []byte
}

// Wrap hashes the payload and builds both witnesses. An entity witness longer
// than limit bytes is an error and no payload is returned.
func Wrap(t DataType, src PayloadSource, limit int) (*Payload, error) {
	ew := make([]byte, 4, 4+len(src.Bytes))
	binary.LittleEndian.PutUint32(ew, uint32(t))
	ew = append(ew, src.Bytes...)
	if len(ew) > limit {
		return nil, cfgerr.New(cfgerr.KindOversizedWitness, cfgerr.RuleWitnessTooLarge,
			"witness of %s (%s) is %d bytes, more than the %d byte limit", t, src.Kind, len(ew), limit)
	}
	return &Payload{
		Type:          t,
		Source:        src.Kind,
		ContentHash:   ckbhash.Blake2b256(src.Bytes),
		ActionWitness: ActionWitness(ConfigAction, nil),
		EntityWitness: ew,
	}, nil
}

// ActionWitness builds the witness naming the transaction action.
func ActionWitness(action string, params []byte) []byte {
	out := binary.LittleEndian.AppendUint32(nil, uint32(ActionData))
	return append(out, molecule.Table(molecule.Bytes([]byte(action)), molecule.Bytes(params))...)
}

// TypeTag returns the little-endian type tag bytes.
func (p *Payload) TypeTag() []byte {
	return binary.LittleEndian.AppendUint32(nil, uint32(p.Type))
}

// Data returns the bytes covered by ContentHash.
func (p *Payload) Data() []byte {
	return p.EntityWitness[4:]
}

// String renders the record as four 0x-prefixed hex fields.
func (p *Payload) String() string {
	return strings.Join([]string{
		hex0x(p.TypeTag()),
		hex0x(p.ContentHash[:]),
		hex0x(p.ActionWitness),
		hex0x(p.EntityWitness),
	}, " ")
}

func hex0x(b []byte) string { return "0x" + hex.EncodeToString(b) }

// Record is a parsed manifest record. Source is unknown after parsing.
type Record struct {
	TypeTag       []byte
	ContentHash   []byte
	ActionWitness []byte
	EntityWitness []byte
}

// Parse reads one record rendered by Payload.String.
func Parse(s string) (*Record, error) {
	fields := strings.Fields(s)
	if len(fields) != 4 {
		return nil, cfgerr.New(cfgerr.KindManifest, cfgerr.RuleManifestFormat, "record has %d fields, want 4", len(fields))
	}
	var decoded [4][]byte
	for i, f := range fields {
		if !strings.HasPrefix(f, "0x") {
			return nil, cfgerr.New(cfgerr.KindManifest, cfgerr.RuleManifestFormat, "field %d lacks 0x prefix", i)
		}
		b, err := hex.DecodeString(f[2:])
		if err != nil {
			return nil, cfgerr.Wrap(cfgerr.KindManifest, cfgerr.RuleManifestFormat, err, "field %d is not hex", i)
		}
		decoded[i] = b
	}
	return &Record{TypeTag: decoded[0], ContentHash: decoded[1], ActionWitness: decoded[2], EntityWitness: decoded[3]}, nil
}

// Type returns the decoded type tag.
func (r *Record) Type() (DataType, error) {
	if len(r.TypeTag) != 4 {
		return 0, cfgerr.New(cfgerr.KindManifest, cfgerr.RuleManifestTag, "type tag has %d bytes", len(r.TypeTag))
	}
	return DataType(binary.LittleEndian.Uint32(r.TypeTag)), nil
}

// Check verifies the record's internal bindings: the entity witness starts
// with the type tag, the content hash covers the rest of it, the action
// witness is a config action, and the entity witness fits in limit.
func (r *Record) Check(limit int) error {
	t, err := r.Type()
	if err != nil {
		return err
	}
	if len(r.EntityWitness) < 4 || !bytes.Equal(r.EntityWitness[:4], r.TypeTag) {
		return cfgerr.New(cfgerr.KindManifest, cfgerr.RuleManifestTag, "entity witness of %s does not start with its type tag", t)
	}
	if len(r.EntityWitness) > limit {
		return cfgerr.New(cfgerr.KindManifest, cfgerr.RuleManifestSize, "entity witness of %s is %d bytes, limit %d", t, len(r.EntityWitness), limit)
	}
	sum := ckbhash.Blake2b256(r.EntityWitness[4:])
	if !bytes.Equal(sum[:], r.ContentHash) {
		return cfgerr.New(cfgerr.KindManifest, cfgerr.RuleManifestHash, "content hash of %s does not match its payload", t)
	}
	if err := checkAction(r.ActionWitness); err != nil {
		return cfgerr.Wrap(cfgerr.KindManifest, cfgerr.RuleManifestAction, err, "action witness of %s", t)
	}
	return nil
}

func checkAction(b []byte) error {
	if len(b) < 4 || DataType(binary.LittleEndian.Uint32(b)) != ActionData {
		return fmt.Errorf("missing ActionData tag")
	}
	fields, err := molecule.SplitTable(b[4:])
	if err != nil {
		return err
	}
	if len(fields) < 1 {
		return fmt.Errorf("empty action table")
	}
	action, err := molecule.SplitBytes(fields[0])
	if err != nil {
		return err
	}
	if string(action) != ConfigAction {
		return fmt.Errorf("action is %q", action)
	}
	return nil
}
