package diag

import "lcc/internal/source"

// Reporter receives recoverable diagnostics from the scanner and the validator
// as they are found. Fatal ones are returned, never reported.
type Reporter interface {
	Report(code Code, sev Severity, primary source.Span, msg string, notes []Note)
}

// ReporterFunc adapts a plain function to Reporter.
type ReporterFunc func(code Code, sev Severity, primary source.Span, msg string, notes []Note)

func (f ReporterFunc) Report(code Code, sev Severity, primary source.Span, msg string, notes []Note) {
	if f != nil {
		f(code, sev, primary, msg, notes)
	}
}

// BagReporter stores every report in Bag.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(code Code, sev Severity, primary source.Span, msg string, notes []Note) {
	if r.Bag != nil {
		r.Bag.Add(&Diagnostic{Severity: sev, Code: code, Message: msg, Primary: primary, Notes: notes})
	}
}

// ReportBuilder collects notes for one diagnostic; Emit sends it once.
// A nil Reporter turns the builder into a no-op.
type ReportBuilder struct {
	to    Reporter
	d     Diagnostic
	fired bool
}

// ReportError starts an error diagnostic.
func ReportError(r Reporter, code Code, primary source.Span, msg string) *ReportBuilder {
	return newReport(r, SevError, code, primary, msg)
}

// ReportWarning starts a warning diagnostic.
func ReportWarning(r Reporter, code Code, primary source.Span, msg string) *ReportBuilder {
	return newReport(r, SevWarning, code, primary, msg)
}

func newReport(r Reporter, sev Severity, code Code, primary source.Span, msg string) *ReportBuilder {
	return &ReportBuilder{to: r, d: Diagnostic{Severity: sev, Code: code, Message: msg, Primary: primary}}
}

// WithNote attaches a secondary location, e.g. the previous declaration.
func (b *ReportBuilder) WithNote(sp source.Span, msg string) *ReportBuilder {
	b.d.Notes = append(b.d.Notes, Note{Span: sp, Msg: msg})
	return b
}

func (b *ReportBuilder) Emit() {
	if b.fired || b.to == nil {
		return
	}
	b.fired = true
	b.to.Report(b.d.Code, b.d.Severity, b.d.Primary, b.d.Message, b.d.Notes)
}
