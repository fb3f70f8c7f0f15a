package trace

import (
	"sync/atomic"
	"time"
)

var globalSpans uint64

// NextSpanID returns a unique span ID.
func NextSpanID() uint64 {
	return atomic.AddUint64(&globalSpans, 1)
}

// Span provides RAII-style span tracking around a logical operation.
type Span struct {
	tracer  Tracer
	id      uint64
	scope   Scope
	name    string
	started time.Time
}

// Begin starts a new span and emits a SpanBegin event.
func Begin(t Tracer, scope Scope, name string) *Span {
	if t == nil || !t.Enabled() || !t.Level().ShouldEmit(scope) {
		return &Span{tracer: Nop}
	}

	id := NextSpanID()
	now := time.Now()
	t.Emit(Event{
		Time:   now,
		Kind:   KindSpanBegin,
		Scope:  scope,
		SpanID: id,
		Name:   name,
	})
	return &Span{tracer: t, id: id, scope: scope, name: name, started: now}
}

// End emits a SpanEnd event and returns the duration.
func (s *Span) End(detail string) time.Duration {
	if s == nil || s.tracer == nil || !s.tracer.Enabled() {
		return 0
	}
	dur := time.Since(s.started)
	s.tracer.Emit(Event{
		Time:   time.Now(),
		Kind:   KindSpanEnd,
		Scope:  s.scope,
		SpanID: s.id,
		Name:   s.name,
		Detail: detail,
	})
	return dur
}

// Point emits an instant event.
func Point(t Tracer, scope Scope, name, detail string) {
	if t == nil || !t.Enabled() || !t.Level().ShouldEmit(scope) {
		return
	}
	t.Emit(Event{
		Time:   time.Now(),
		Kind:   KindPoint,
		Scope:  scope,
		Name:   name,
		Detail: detail,
	})
}
