// Package generator runs the config sections in their fixed order and joins
// their records into the single-line manifest.
package generator

import (
	"context"
	"fmt"
	"strings"

	"xdao.co/cellconfig/cfgerr"
	"xdao.co/cellconfig/cidutil"
	"xdao.co/cellconfig/datafile"
	"xdao.co/cellconfig/logtrace"
	"xdao.co/cellconfig/profile"
	"xdao.co/cellconfig/witness"
)

// Source supplies the input files of a run.
type Source interface {
	ReadLines(ctx context.Context, name string) (*datafile.Lines, error)
}

// RecordSeparator joins records in the manifest.
const RecordSeparator = ","

// Generator builds every config cell of one profile.
type Generator struct {
	profile *profile.Profile
	src     Source
	only    map[string]bool
}

// Option configures a Generator.
type Option func(*Generator)

// WithSections limits a run to the named sections. Output order is still the
// fixed section order.
func WithSections(names ...string) Option {
	return func(g *Generator) {
		for _, n := range names {
			if n = strings.TrimSpace(n); n != "" {
				g.only[n] = true
			}
		}
	}
}

// New returns a Generator for p reading inputs from src.
func New(p *profile.Profile, src Source, opts ...Option) (*Generator, error) {
	if p == nil {
		return nil, cfgerr.New(cfgerr.KindInternal, cfgerr.RuleConfig, "profile is required")
	}
	g := &Generator{profile: p, src: src, only: map[string]bool{}}
	for _, opt := range opts {
		opt(g)
	}
	for n := range g.only {
		if !isSection(n) {
			return nil, cfgerr.New(cfgerr.KindInternal, cfgerr.RuleConfig,
				"unknown section %q (known: %s)", n, strings.Join(Sections(), ", "))
		}
	}
	return g, nil
}

// Payloads builds the records of every selected section in order. The first
// failing section aborts the run.
func (g *Generator) Payloads(ctx context.Context) ([]*witness.Payload, error) {
	var out []*witness.Payload
	for _, s := range sections {
		if len(g.only) > 0 && !g.only[s.name] {
			continue
		}
		sctx := logtrace.CtxWithSection(ctx, s.name)
		payloads, err := s.build(g, sctx)
		if err != nil {
			logtrace.Error(sctx, "section failed", logtrace.Fields{
				logtrace.FieldError:  err.Error(),
				logtrace.FieldRuleID: cfgerr.RuleID(err),
			})
			return nil, fmt.Errorf("section %s: %w", s.name, err)
		}
		for _, p := range payloads {
			logtrace.Debug(sctx, "record built", logtrace.Fields{
				logtrace.FieldDataType:    p.Type.String(),
				logtrace.FieldWitnessSize: len(p.EntityWitness),
			})
		}
		logtrace.Info(sctx, "section generated", logtrace.Fields{logtrace.FieldRecords: len(payloads)})
		out = append(out, payloads...)
	}
	return out, nil
}

// Generate returns the manifest line: every record rendered and joined with
// RecordSeparator.
func (g *Generator) Generate(ctx context.Context) (string, error) {
	payloads, err := g.Payloads(ctx)
	if err != nil {
		return "", err
	}
	line := Join(payloads)
	logtrace.Info(ctx, "manifest generated", logtrace.Fields{
		logtrace.FieldProfile:     g.profile.Name,
		logtrace.FieldRecords:     len(payloads),
		logtrace.FieldManifestCID: cidutil.ManifestCID(line),
	})
	return line, nil
}

// Join renders payloads into a manifest line.
func Join(payloads []*witness.Payload) string {
	records := make([]string, len(payloads))
	for i, p := range payloads {
		records[i] = p.String()
	}
	return strings.Join(records, RecordSeparator)
}

func (g *Generator) wrap(t witness.DataType, src witness.PayloadSource) (*witness.Payload, error) {
	return witness.Wrap(t, src, g.profile.WitnessSizeLimit)
}

func (g *Generator) lines(ctx context.Context, name string) ([]string, error) {
	l, err := g.src.ReadLines(ctx, name)
	if err != nil {
		return nil, err
	}
	fields := logtrace.Fields{logtrace.FieldFile: name, logtrace.FieldCount: len(l.Values)}
	if l.Skipped > 0 {
		fields[logtrace.FieldSkipped] = l.Skipped
	}
	logtrace.Debug(ctx, "input loaded", fields)
	return l.Values, nil
}
