// Package cfgerr defines the structured error type shared by the generator
// packages.
//
// Every failure that aborts a generation run is a *Error. Callers branch on
// Kind or RuleID; Error() strings are for humans and may change.
package cfgerr

import (
	"errors"
	"fmt"
)

// Kind is a stable failure category.
type Kind string

const (
	KindOversizedWitness      Kind = "OversizedWitness"
	KindShardCapacityExceeded Kind = "ShardCapacityExceeded"
	KindMissingInputFile      Kind = "MissingInputFile"
	KindDecode                Kind = "DecodeError"
	KindManifest              Kind = "Manifest"
	KindInternal              Kind = "Internal"
)

// Stable rule identifiers.
const (
	RuleWitnessTooLarge  = "CELL-WIT-001"
	RuleShardOverflow    = "CELL-SHARD-001"
	RuleMissingInput     = "CELL-IN-001"
	RuleInputRead        = "CELL-IN-002"
	RuleInvalidUTF8      = "CELL-DEC-001"
	RuleInvalidHex       = "CELL-DEC-002"
	RuleShortHash        = "CELL-DEC-003"
	RuleConfig           = "CELL-CFG-001"
	RuleManifestFormat   = "CELL-MAN-001"
	RuleManifestHash     = "CELL-MAN-002"
	RuleManifestTag      = "CELL-MAN-003"
	RuleManifestAction   = "CELL-MAN-004"
	RuleManifestSize     = "CELL-MAN-005"
	RuleManifestEmpty    = "CELL-MAN-006"
	RuleInternalEncoding = "CELL-INT-001"
)

// Error is the structured error type.
//
// RuleID names the violated invariant. Message is intended for humans.
type Error struct {
	Kind    Kind
	RuleID  string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// New returns a *Error with a formatted message.
func New(kind Kind, ruleID, format string, args ...any) error {
	return &Error{Kind: kind, RuleID: ruleID, Message: fmt.Sprintf(format, args...)}
}

// Wrap returns a *Error carrying cause. A nil cause yields the same result as New.
func Wrap(kind Kind, ruleID string, cause error, format string, args ...any) error {
	return &Error{Kind: kind, RuleID: ruleID, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// IsKind reports whether err is (or wraps) a *Error with the given Kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Kind == kind
}

// RuleID returns the stable RuleID for a structured error, or "" if unknown.
func RuleID(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return ""
	}
	return e.RuleID
}
