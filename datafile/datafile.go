// Package datafile loads the newline-delimited input files a generation run
// is built from.
//
// Files are read in full from a single data directory. The directory is
// never written to.
package datafile

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"unicode/utf8"

	"xdao.co/cellconfig/cfgerr"
	"xdao.co/cellconfig/logtrace"
)

// Policy decides what happens to a line that is not valid UTF-8.
type Policy int

const (
	// Strict fails the read with a DecodeError naming the line.
	Strict Policy = iota
	// Skip drops the line, logs a warning and counts it.
	Skip
)

func (p Policy) String() string {
	if p == Skip {
		return "skip"
	}
	return "strict"
}

// Dir is a read-only view of a data directory.
type Dir struct {
	root   string
	policy Policy
}

// Open returns a Dir rooted at root. The directory must exist.
func Open(root string, policy Policy) (*Dir, error) {
	if root == "" {
		return nil, errors.New("datafile: root directory is required")
	}
	st, err := os.Stat(root)
	if err != nil {
		return nil, cfgerr.Wrap(cfgerr.KindMissingInputFile, cfgerr.RuleMissingInput, err, "data directory %q", root)
	}
	if !st.IsDir() {
		return nil, cfgerr.New(cfgerr.KindMissingInputFile, cfgerr.RuleMissingInput, "data directory %q is not a directory", root)
	}
	return &Dir{root: root, policy: policy}, nil
}

// Root returns the directory path.
func (d *Dir) Root() string { return d.root }

// Policy returns the decode policy.
func (d *Dir) Policy() Policy { return d.policy }

// Lines is the decoded content of one input file.
type Lines struct {
	Name    string
	Values  []string
	Skipped int
}

// ReadLines loads name and splits it into lines. A trailing \r is removed and
// empty lines are dropped; both are tolerated formatting, not data.
func (d *Dir) ReadLines(ctx context.Context, name string) (*Lines, error) {
	path := d.pathFor(name)
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, cfgerr.Wrap(cfgerr.KindMissingInputFile, cfgerr.RuleMissingInput, err, "expected input file %s", path)
		}
		return nil, cfgerr.Wrap(cfgerr.KindMissingInputFile, cfgerr.RuleInputRead, err, "read input file %s", path)
	}
	out := &Lines{Name: name}
	for i, raw := range bytes.Split(b, []byte("\n")) {
		raw = bytes.TrimSuffix(raw, []byte("\r"))
		if len(raw) == 0 {
			continue
		}
		if !utf8.Valid(raw) {
			if d.policy == Strict {
				return nil, cfgerr.New(cfgerr.KindDecode, cfgerr.RuleInvalidUTF8, "%s:%d is not valid UTF-8", name, i+1)
			}
			out.Skipped++
			logtrace.Warn(ctx, "skipping undecodable input line", logtrace.Fields{
				logtrace.FieldFile: name,
				logtrace.FieldLine: i + 1,
			})
			continue
		}
		out.Values = append(out.Values, string(raw))
	}
	return out, nil
}

func (d *Dir) pathFor(name string) string {
	return filepath.Join(d.root, filepath.Clean("/"+name))
}
