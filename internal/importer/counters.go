package importer

import "fmt"

// Counters accumulates run-wide progress. Initialized at run start, mutated
// only by the driver loop, returned once the input directory is exhausted.
//
// BlocksProcessed counts attempts: a line that ends up skipped still counts.
// FilesSkipped counts module files that failed to load or had no readable
// measurement file.
type Counters struct {
	FilesProcessed  uint64
	FilesSkipped    uint64
	BlocksProcessed uint64
	BlocksSkipped   uint64
}

// String renders the counters in progress-log form.
func (c Counters) String() string {
	return fmt.Sprintf("files=%d skipped_files=%d blocks=%d skipped_blocks=%d",
		c.FilesProcessed, c.FilesSkipped, c.BlocksProcessed, c.BlocksSkipped)
}
