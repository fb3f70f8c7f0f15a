package importer

import (
	"fmt"
	"strconv"
	"strings"

	"mirdata/internal/bb"
	"mirdata/internal/canon"
	"mirdata/internal/mir"
)

// LineOptions configures measurement-line parsing for a whole run.
type LineOptions struct {
	// SourceName is the provenance label stamped on every example.
	SourceName string
	// Delimiter separates fields of a measurement line.
	Delimiter string
	// NameColumn is the field index holding the block identifier.
	NameColumn uint
	// ThroughputColumn is the field index holding the throughput value.
	ThroughputColumn uint
	// Scaling multiplies every parsed throughput value.
	Scaling float64
}

// Validate rejects option combinations before any file is processed.
func (o LineOptions) Validate() error {
	if o.SourceName == "" {
		return fmt.Errorf("source name must not be empty")
	}
	if o.Delimiter == "" {
		return fmt.Errorf("delimiter must not be empty")
	}
	if o.NameColumn == o.ThroughputColumn {
		return fmt.Errorf("block name column and throughput column must differ (both %d)", o.NameColumn)
	}
	if o.Scaling < 0 {
		return fmt.Errorf("throughput scaling must be non-negative, got %g", o.Scaling)
	}
	return nil
}

// ParseLine converts one measurement line into a dataset example.
//
// The line is split on the delimiter; the block identifier and throughput are
// taken from their configured columns, the identifier is resolved against mod
// (first match in module order wins), and the matched block is canonicalized.
//
// Failures are typed: *MalformedLineError when the line cannot supply both
// fields, *BlockNotFoundError when no block matches, *CanonicalizationError
// when the canonicalizer rejects the block. Pure: no I/O, no counters.
func ParseLine(line string, opts LineOptions, mod *mir.Module, c canon.Canonicalizer) (bb.Example, error) {
	fields := strings.Split(line, opts.Delimiter)

	name, err := field(fields, opts.NameColumn, "block name")
	if err != nil {
		return bb.Example{}, err
	}
	rawTput, err := field(fields, opts.ThroughputColumn, "throughput")
	if err != nil {
		return bb.Example{}, err
	}
	throughput, err := strconv.ParseFloat(rawTput, 64)
	if err != nil {
		return bb.Example{}, &MalformedLineError{
			Reason: fmt.Sprintf("throughput %q is not numeric", rawTput),
		}
	}

	block := mod.BlockByName(name)
	if block == nil {
		return bb.Example{}, &BlockNotFoundError{Name: name}
	}

	canonical, err := c.Canonicalize(block)
	if err != nil {
		return bb.Example{}, &CanonicalizationError{Block: name, Err: err}
	}

	return bb.Example{
		SourceName: opts.SourceName,
		Throughput: throughput * opts.Scaling,
		Block:      canonical,
	}, nil
}

// field extracts and trims the idx-th field, failing with MalformedLineError
// when the column is absent or blank.
func field(fields []string, idx uint, what string) (string, error) {
	if uint(len(fields)) <= idx {
		return "", &MalformedLineError{
			Reason: fmt.Sprintf("%s column %d out of range (%d fields)", what, idx, len(fields)),
		}
	}
	v := strings.TrimSpace(fields[idx])
	if v == "" {
		return "", &MalformedLineError{
			Reason: fmt.Sprintf("%s column %d is empty", what, idx),
		}
	}
	return v, nil
}
