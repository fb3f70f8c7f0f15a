package dataset

import (
	"bufio"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/vmihailenco/msgpack/v5"

	"mirdata/internal/bb"
)

// Writer appends examples to a dataset file. Not safe for concurrent use;
// the import pipeline is sequential by design.
type Writer struct {
	f   *os.File
	bw  *bufio.Writer
	enc *msgpack.Encoder
	hdr Header
	n   int
}

// Create opens path for writing, truncating any existing file, and writes the
// dataset header. The caller must Close the writer on every exit path.
func Create(path, sourceName string) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open dataset for writing")
	}
	bw := bufio.NewWriter(f)
	w := &Writer{
		f:   f,
		bw:  bw,
		enc: msgpack.NewEncoder(bw),
		hdr: Header{
			Schema:     SchemaVersion,
			RunID:      uuid.NewString(),
			SourceName: sourceName,
			CreatedAt:  time.Now().UTC(),
		},
	}
	if err := w.enc.Encode(&w.hdr); err != nil {
		_ = f.Close()
		return nil, errors.Wrap(err, "failed to write dataset header")
	}
	return w, nil
}

// Header returns the header written to this file.
func (w *Writer) Header() Header { return w.hdr }

// Len returns the number of records appended so far.
func (w *Writer) Len() int { return w.n }

// Append serializes one example at the end of the stream.
func (w *Writer) Append(ex bb.Example) error {
	if err := w.enc.Encode(&ex); err != nil {
		return errors.Wrapf(err, "failed to append record %d", w.n)
	}
	w.n++
	return nil
}

// Flush forces buffered records to disk.
func (w *Writer) Flush() error {
	return w.bw.Flush()
}

// Close flushes and closes the underlying file.
func (w *Writer) Close() error {
	flushErr := w.bw.Flush()
	closeErr := w.f.Close()
	if flushErr != nil {
		return flushErr
	}
	return closeErr
}
