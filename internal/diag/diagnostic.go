package diag

import (
	"lcc/internal/source"
)

type Note struct {
	Span source.Span
	Msg  string
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	// Whole marks a file-level diagnostic: Primary.File is meaningful,
	// the offsets are not and no line/column is printed.
	Whole bool
	Notes []Note
}

func New(sev Severity, code Code, primary source.Span, msg string) *Diagnostic {
	return &Diagnostic{
		Severity: sev,
		Code:     code,
		Primary:  primary,
		Message:  msg,
	}
}

func NewError(code Code, primary source.Span, msg string) *Diagnostic {
	return New(SevError, code, primary, msg)
}

// NewFatal builds a diagnostic that halts scanning of the file at primary.
func NewFatal(code Code, primary source.Span, msg string) *Diagnostic {
	return New(SevFatal, code, primary, msg)
}

// NewFileFatal builds a fatal diagnostic without a position.
func NewFileFatal(code Code, file source.FileID, msg string) *Diagnostic {
	d := New(SevFatal, code, source.Span{File: file}, msg)
	d.Whole = true
	return d
}

func (d *Diagnostic) WithNote(sp source.Span, msg string) *Diagnostic {
	d.Notes = append(d.Notes, Note{Span: sp, Msg: msg})
	return d
}

// IsFatal reports whether d aborts the file.
func (d *Diagnostic) IsFatal() bool {
	return d != nil && d.Severity >= SevFatal
}
