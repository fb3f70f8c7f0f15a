// Package dataset implements the on-disk container for training examples:
// a msgpack stream holding one header followed by any number of records,
// written append-only in processing order.
package dataset

import "time"

// SchemaVersion is the current container schema.
// Increment when Header or record format changes.
const SchemaVersion uint16 = 1

// Header opens every dataset file.
type Header struct {
	Schema     uint16    `msgpack:"schema"`
	RunID      string    `msgpack:"run_id"`
	SourceName string    `msgpack:"source_name"`
	CreatedAt  time.Time `msgpack:"created_at"`
}
