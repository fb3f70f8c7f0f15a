package trace

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Format represents the output format for trace events.
type Format uint8

const (
	// FormatText is human-readable text.
	FormatText Format = iota
	// FormatNDJSON is newline-delimited JSON.
	FormatNDJSON
)

// ParseFormat converts a string to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "text":
		return FormatText, nil
	case "ndjson", "json":
		return FormatNDJSON, nil
	default:
		return FormatText, fmt.Errorf("invalid trace format: %q (expected: text|ndjson)", s)
	}
}

// FormatEvent formats an event according to the specified format.
// start is the tracer start time, used for relative timestamps.
func FormatEvent(ev Event, start time.Time, format Format) []byte {
	switch format {
	case FormatNDJSON:
		return formatNDJSON(ev)
	default:
		return formatText(ev, start)
	}
}

func formatNDJSON(ev Event) []byte {
	type jsonEvent struct {
		Time   string `json:"time"`
		Seq    uint64 `json:"seq"`
		Kind   string `json:"kind"`
		Scope  string `json:"scope"`
		SpanID uint64 `json:"span_id,omitempty"`
		Name   string `json:"name"`
		Detail string `json:"detail,omitempty"`
	}
	j := jsonEvent{
		Time:   ev.Time.Format("2006-01-02T15:04:05.000000Z07:00"),
		Seq:    ev.Seq,
		Kind:   ev.Kind.String(),
		Scope:  ev.Scope.String(),
		SpanID: ev.SpanID,
		Name:   ev.Name,
		Detail: ev.Detail,
	}
	data, _ := json.Marshal(j)
	return append(data, '\n')
}

// formatText renders "[elapsed] →/←/· name (detail)".
func formatText(ev Event, start time.Time) []byte {
	var sb strings.Builder

	elapsed := ev.Time.Sub(start)
	sb.WriteString(fmt.Sprintf("[%9.3fms] ", float64(elapsed)/float64(time.Millisecond)))

	switch ev.Kind {
	case KindSpanBegin:
		sb.WriteString("→ ")
	case KindSpanEnd:
		sb.WriteString("← ")
	default:
		sb.WriteString("· ")
	}
	sb.WriteString(ev.Name)
	if ev.Detail != "" {
		sb.WriteString(" (")
		sb.WriteString(ev.Detail)
		sb.WriteString(")")
	}
	sb.WriteString("\n")
	return []byte(sb.String())
}
