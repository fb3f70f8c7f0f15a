// Package trace provides the import pipeline's leveled event tracer.
//
// Enable tracing via command-line flags:
//
//	mirdata import --trace=- --trace-level=detail ...
//
// Levels control verbosity: off, phase (run boundaries), detail (per-file
// events), debug (per-line events). Tracers are propagated through the
// pipeline via context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	t := trace.FromContext(ctx)
//	span := trace.Begin(t, trace.ScopeFile, "load:foo.mir")
//	defer span.End("")
package trace
