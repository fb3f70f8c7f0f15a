package trace

import "time"

// Kind represents the type of trace event.
type Kind uint8

const (
	// KindSpanBegin marks the start of a logical operation.
	KindSpanBegin Kind = iota + 1
	// KindSpanEnd marks the end of a logical operation.
	KindSpanEnd
	// KindPoint represents an instant event.
	KindPoint
)

// String returns the string representation of Kind.
func (k Kind) String() string {
	switch k {
	case KindSpanBegin:
		return "begin"
	case KindSpanEnd:
		return "end"
	case KindPoint:
		return "point"
	default:
		return "unknown"
	}
}

// Scope indicates the granularity level of the event. Lower numeric values
// represent coarser events.
type Scope uint8

const (
	// ScopeDriver represents run-level operations (scan, flush, summary).
	ScopeDriver Scope = iota + 1
	// ScopeFile represents per-module-file processing.
	ScopeFile
	// ScopeLine represents per-measurement-line processing.
	ScopeLine
)

// String returns the string representation of Scope.
func (s Scope) String() string {
	switch s {
	case ScopeDriver:
		return "driver"
	case ScopeFile:
		return "file"
	case ScopeLine:
		return "line"
	default:
		return "unknown"
	}
}

// Event represents a single trace event.
type Event struct {
	Time   time.Time // wall-clock timestamp
	Seq    uint64    // global sequence number (monotonic)
	Kind   Kind      // event kind
	Scope  Scope     // granularity level
	SpanID uint64    // unique span identifier (0 for points)
	Name   string    // e.g., "import", "load:a.mir"
	Detail string    // optional detail message
}
