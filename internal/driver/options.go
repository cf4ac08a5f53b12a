package driver

import (
	"lcc/internal/ast"
	"lcc/internal/diag"
	"lcc/internal/observ"
	"lcc/internal/parser"
	"lcc/internal/source"
	"lcc/internal/token"
)

// DefaultMaxDiagnostics is used when Options.MaxDiagnostics is not positive.
const DefaultMaxDiagnostics = 100

// Options configures a check.
type Options struct {
	MaxDiagnostics int
	ClassMode      parser.ClassMode
	NormalizeNFC   bool
	// EnableTimings attaches an OBS6001 info diagnostic with phase durations.
	EnableTimings bool
	Progress      ProgressSink
}

func (o Options) maxDiagnostics() int {
	if o.MaxDiagnostics <= 0 {
		return DefaultMaxDiagnostics
	}
	return o.MaxDiagnostics
}

// Result is the outcome of checking one file.
type Result struct {
	FileSet *source.FileSet
	File    *source.File
	Spans   []token.Inert
	Decls   []ast.Decl
	// Bag holds recoverable diagnostics (and the timings entry).
	Bag *diag.Bag
	// Fatal is set when scanning stopped; Spans and Decls are then nil.
	Fatal  *diag.Diagnostic
	Timing *observ.Report
}

// Diagnostics returns what should be shown to the user: only the fatal one
// when scanning stopped, otherwise the sorted bag.
func (r *Result) Diagnostics() []*diag.Diagnostic {
	if r == nil {
		return nil
	}
	if r.Fatal != nil {
		return []*diag.Diagnostic{r.Fatal}
	}
	if r.Bag == nil {
		return nil
	}
	return r.Bag.Items()
}

// Failed reports whether the file counts as a failed compilation:
// a fatal or any diagnostic of severity Warning or above.
func (r *Result) Failed() bool {
	if r == nil {
		return false
	}
	return r.Fatal != nil || (r.Bag != nil && r.Bag.HasWarnings())
}
