package importer

import "fmt"

// BlockNotFoundError reports a measurement line whose identifier matches no
// basic block in the loaded module. Expected and non-fatal: measurement data
// routinely references blocks eliminated from this module extract.
type BlockNotFoundError struct {
	Name string
}

func (e *BlockNotFoundError) Error() string {
	return fmt.Sprintf("basic block %q not found in module", e.Name)
}

// MalformedLineError reports a measurement line that cannot be split into the
// required columns or whose throughput field is not numeric.
type MalformedLineError struct {
	Reason string
}

func (e *MalformedLineError) Error() string {
	return "malformed measurement line: " + e.Reason
}

// CanonicalizationError reports that the canonicalizer rejected a matched
// block. Fatal for the line, not for the run.
type CanonicalizationError struct {
	Block string
	Err   error
}

func (e *CanonicalizationError) Error() string {
	return fmt.Sprintf("failed to canonicalize block %q: %v", e.Block, e.Err)
}

func (e *CanonicalizationError) Unwrap() error { return e.Err }
