package trace

import (
	"io"
	"sync"
	"sync/atomic"
	"time"
)

var globalSeq uint64

// NextSeq returns a monotonically increasing sequence number.
func NextSeq() uint64 {
	return atomic.AddUint64(&globalSeq, 1)
}

// StreamTracer writes events immediately to an io.Writer.
type StreamTracer struct {
	mu     sync.Mutex
	w      io.Writer
	owned  io.Closer // closed by Close when the tracer opened the output
	level  Level
	format Format
	start  time.Time
}

// NewStreamTracer creates a new StreamTracer. owned may be nil.
func NewStreamTracer(w io.Writer, owned io.Closer, level Level, format Format) *StreamTracer {
	return &StreamTracer{
		w:      w,
		owned:  owned,
		level:  level,
		format: format,
		start:  time.Now(),
	}
}

// Emit writes an event to the output.
func (t *StreamTracer) Emit(ev Event) {
	if !t.level.ShouldEmit(ev.Scope) {
		return
	}
	ev.Seq = NextSeq()
	data := FormatEvent(ev, t.start, t.format)

	t.mu.Lock()
	defer t.mu.Unlock()
	// best-effort write: trace failures must not disturb the import
	_, _ = t.w.Write(data)
}

// Flush ensures all buffered data is written.
func (t *StreamTracer) Flush() error {
	if flusher, ok := t.w.(interface{ Flush() error }); ok {
		return flusher.Flush()
	}
	return nil
}

// Close flushes and closes the output if the tracer owns it.
func (t *StreamTracer) Close() error {
	if err := t.Flush(); err != nil {
		return err
	}
	if t.owned != nil {
		return t.owned.Close()
	}
	return nil
}

// Level returns the tracing level.
func (t *StreamTracer) Level() Level { return t.level }

// Enabled reports whether tracing is active.
func (t *StreamTracer) Enabled() bool { return t.level > LevelOff }
