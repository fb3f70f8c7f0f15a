// Package canon normalizes raw machine instructions into the representation
// stored in datasets. Canonicalizers are selected by target triple; the import
// pipeline treats them as an opaque capability so other targets can be added
// without touching the driver.
package canon

import (
	"fmt"
	"strings"

	"mirdata/internal/bb"
	"mirdata/internal/mir"
)

// Canonicalizer converts a machine basic block into its normalized form.
type Canonicalizer interface {
	// Triple returns the target triple this canonicalizer serves.
	Triple() string

	// Canonicalize normalizes the block. Errors mean the block cannot be
	// represented in the dataset (empty block, unusable instruction).
	Canonicalize(b *mir.Block) (bb.BasicBlock, error)
}

// ForTriple returns the canonicalizer for the given target triple.
// An unknown triple is a configuration error; callers treat it as fatal.
func ForTriple(triple string) (Canonicalizer, error) {
	arch, _, _ := strings.Cut(triple, "-")
	switch arch {
	case "x86_64", "amd64":
		return &x86Canonicalizer{triple: triple}, nil
	default:
		return nil, fmt.Errorf("unsupported target triple: %q (supported: x86_64)", triple)
	}
}
