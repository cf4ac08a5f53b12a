// Package diag defines the diagnostic model shared by the span scanner and the
// declaration validator.
//
// Diagnostic is the central record: Severity (Info, Warning, Error, Fatal),
// Code (numeric, rendered as LEX/SYN/SEM/IO/OBS + four digits), Message,
// Primary span and optional Notes. Positions are never stored; formatters
// recompute line/column from Primary through a source.FileSet.
//
// A Fatal diagnostic means the rest of the file is not trustworthy. Fatal
// records are returned by the phases as values; recoverable ones are pushed
// through a Reporter as soon as they are found. Whole marks file-level
// diagnostics that have no meaningful position.
//
// Package diag does not perform formatting beyond the one-line golden/short
// form; pretty, json and sarif rendering lives in internal/diagfmt.
package diag
