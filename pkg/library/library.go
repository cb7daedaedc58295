// Package library loads theorem/definition records into a prover's
// tableau ahead of automation. Ported from library.cpp's library_load:
// read a record, parse its formula, append it as a tableau line, run
// the cleanup pass its record type calls for (the reduced
// Skolemize/ME-only pass for a definition, the full fixed point for a
// theorem). The original reads a line-oriented ".dat" file format
// (record-type line, formula line, blank separator); this port swaps
// that ad hoc format for the YAML file format the rest of the pack
// uses for structured config (theRebelliousNerd-codenerd's own config
// loading, hashicorp-nomad's job specs), keeping the two-kind record
// shape and per-kind cleanup behavior unchanged.
package library

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/proofdroid/prover/pkg/parser"
	"github.com/proofdroid/prover/pkg/prover"
)

// Kind distinguishes a theorem record (gets the full cleanup fixed
// point) from a definition record (gets the reduced Skolemize/ME-only
// pass), matching library.cpp's "definition"/"theorem" record types.
type Kind string

const (
	Theorem    Kind = "theorem"
	Definition Kind = "definition"
)

// Record is one YAML entry: a record kind plus its formula in REPR
// notation.
type Record struct {
	Type    Kind   `yaml:"type"`
	Formula string `yaml:"formula"`
}

// File is the top-level shape of a library YAML document.
type File struct {
	Records []Record `yaml:"records"`
}

// LoadError reports the record (1-based, matching library.cpp's
// record_number) that failed, alongside the underlying cause.
type LoadError struct {
	Record int
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("library: record %d: %v", e.Record, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// LoadFile reads path as a library YAML document and loads every
// record into p via Load.
func LoadFile(path string, p *prover.Prover) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return err
	}
	return Load(f.Records, p)
}

// Load parses and appends every record into p in order, running each
// record's cleanup pass before moving to the next (so a later
// definition can already see an earlier one's Skolemized form).
func Load(records []Record, p *prover.Prover) error {
	for i, rec := range records {
		f, err := parser.Parse(rec.Formula)
		if err != nil {
			return &LoadError{Record: i + 1, Err: err}
		}

		idx, err := p.AddLibraryLine(f)
		if err != nil {
			return &LoadError{Record: i + 1, Err: err}
		}

		switch rec.Type {
		case Definition:
			p.CleanupDefinition(idx)
		case Theorem:
			p.Cleanup()
		default:
			return &LoadError{Record: i + 1, Err: fmt.Errorf("library: unknown record type %q", rec.Type)}
		}
	}
	return nil
}
