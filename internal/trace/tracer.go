package trace

import (
	"fmt"
	"io"
	"os"
)

// Tracer is the main interface for emitting trace events.
type Tracer interface {
	// Emit records a trace event. Must be goroutine-safe.
	Emit(ev Event)

	// Flush ensures all buffered events are written.
	Flush() error

	// Close flushes and releases resources.
	Close() error

	// Level returns the current tracing level.
	Level() Level

	// Enabled returns true if tracing is active (Level > LevelOff).
	Enabled() bool
}

// Config holds tracer configuration.
type Config struct {
	Level      Level
	Format     Format
	Output     io.Writer // takes precedence over OutputPath when set
	OutputPath string    // "-" for stderr
}

// New creates a Tracer based on Config.
func New(cfg Config) (Tracer, error) {
	if cfg.Level == LevelOff {
		return Nop, nil
	}

	w := cfg.Output
	var owned io.Closer
	if w == nil {
		switch cfg.OutputPath {
		case "", "-":
			w = os.Stderr
		default:
			f, err := os.Create(cfg.OutputPath)
			if err != nil {
				return nil, fmt.Errorf("failed to open trace output: %w", err)
			}
			w = f
			owned = f
		}
	}
	return NewStreamTracer(w, owned, cfg.Level, cfg.Format), nil
}
