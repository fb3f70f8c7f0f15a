package dataset

import (
	"bufio"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/vmihailenco/msgpack/v5"

	"mirdata/internal/bb"
)

// Reader iterates the records of a dataset file.
type Reader struct {
	f   *os.File
	dec *msgpack.Decoder
	hdr Header
}

// Open reads and validates the header of the dataset at path.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open dataset")
	}
	dec := msgpack.NewDecoder(bufio.NewReader(f))
	var hdr Header
	if err := dec.Decode(&hdr); err != nil {
		_ = f.Close()
		return nil, errors.Wrap(err, "failed to read dataset header")
	}
	if hdr.Schema != SchemaVersion {
		_ = f.Close()
		return nil, errors.Errorf("unsupported dataset schema %d (expected %d)", hdr.Schema, SchemaVersion)
	}
	return &Reader{f: f, dec: dec, hdr: hdr}, nil
}

// Header returns the dataset header.
func (r *Reader) Header() Header { return r.hdr }

// Next decodes the next record. Returns io.EOF after the last one.
func (r *Reader) Next() (bb.Example, error) {
	var ex bb.Example
	err := r.dec.Decode(&ex)
	if err == io.EOF {
		return bb.Example{}, io.EOF
	}
	if err != nil {
		return bb.Example{}, errors.Wrap(err, "failed to decode record")
	}
	return ex, nil
}

// Close releases the underlying file.
func (r *Reader) Close() error {
	return r.f.Close()
}
