// Package trace emits structured events for lcc runs.
//
// Enable it from the command line:
//
//	lcc check --trace=- --trace-level=phase src/
//
// Events are grouped by scope: ScopeDriver for a CLI command or a directory
// walk, ScopeFile for one source file, ScopePhase for scan_spans and
// validate inside a file. The level decides the finest scope written.
//
// Tracers travel through context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopeFile, "check", trace.ParentID(ctx))
//	defer span.End("")
//
// The nop tracer is the default and costs one interface call per event.
package trace
