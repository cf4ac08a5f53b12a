package lexer

import (
	"bytes"

	"lcc/internal/diag"
	"lcc/internal/source"
	"lcc/internal/token"
)

// Result is the outcome of ScanSpans. Exactly one of Spans/Fatal is
// meaningful: when Fatal is set, Spans is nil.
type Result struct {
	Spans []token.Inert
	Fatal *diag.Diagnostic
}

// Ok reports whether the file is lexically well formed.
func (r Result) Ok() bool {
	return r.Fatal == nil
}

type scanner struct {
	file  *source.File
	opts  Options
	spans []token.Inert

	single Cursor // '
	double Cursor // "
	line   Cursor // //
	block  Cursor // ///
}

// ScanSpans walks file once and classifies every string literal and comment.
// The returned spans are ordered by Start and never overlap.
func ScanSpans(file *source.File, opts Options) Result {
	sc := &scanner{
		file:   file,
		opts:   opts,
		single: NewCursor(file, string(token.SingleQuote)),
		double: NewCursor(file, string(token.DoubleQuote)),
		line:   NewCursor(file, token.LineOpener),
		block:  NewCursor(file, token.BlockMarker),
	}
	if fatal := sc.run(); fatal != nil {
		return Result{Fatal: fatal}
	}
	return Result{Spans: sc.spans}
}

func (sc *scanner) run() *diag.Diagnostic {
	var pos uint32
	for {
		// курсоры, оказавшиеся внутри уже записанного span, догоняют pos
		sc.single.Seek(pos)
		sc.double.Seek(pos)
		sc.line.Seek(pos)
		sc.block.Seek(pos)

		next := min(sc.single.Pos, sc.double.Pos, sc.line.Pos, sc.block.Pos)
		if next == notFound {
			return nil
		}

		var (
			span  token.Inert
			fatal *diag.Diagnostic
		)
		switch {
		// комментарии выигрывают у строк при равенстве
		case sc.block.Pos == next:
			span, fatal = sc.scanBlockComment(next)
		case sc.line.Pos == next:
			span = sc.scanLineComment(next)
		case sc.double.Pos == next:
			span, fatal = sc.scanString(next, token.DoubleQuote)
		default:
			span, fatal = sc.scanString(next, token.SingleQuote)
		}
		if fatal != nil {
			return fatal
		}
		sc.spans = append(sc.spans, span)
		pos = span.Span.End
	}
}

func (sc *scanner) scanBlockComment(open uint32) (token.Inert, *diag.Diagnostic) {
	content := sc.file.Content
	marker := uint32(len(token.BlockMarker))
	bodyStart := open + marker
	idx := bytes.Index(content[bodyStart:], []byte(token.BlockMarker))
	if idx < 0 {
		return token.Inert{}, diag.NewFatal(
			diag.LexUnterminatedBlockComment,
			sc.file.Span(int(open), int(bodyStart)),
			"unterminated block comment",
		)
	}
	end := int(bodyStart) + idx + int(marker)
	return token.Inert{Kind: token.BlockComment, Span: sc.file.Span(int(open), end)}, nil
}

func (sc *scanner) scanLineComment(open uint32) token.Inert {
	content := sc.file.Content
	end := len(content)
	if nl := bytes.IndexByte(content[open:], token.Newline); nl >= 0 {
		end = int(open) + nl
	}
	return token.Inert{Kind: token.LineComment, Span: sc.file.Span(int(open), end)}
}

func (sc *scanner) scanString(open uint32, quote byte) (token.Inert, *diag.Diagnostic) {
	content := sc.file.Content

	if backslashRun(content, 0, open)%2 == 1 {
		sc.report(diag.LexUnexpectedBackslash, sc.file.Span(int(open)-1, int(open)+1), "unexpected backslash before quote")
	}

	from := int(open) + 1
	for {
		idx := bytes.IndexByte(content[from:], quote)
		if idx < 0 {
			return token.Inert{}, diag.NewFatal(
				diag.LexUnterminatedString,
				sc.file.Span(int(open), int(open)+1),
				"unterminated string",
			)
		}
		closer := from + idx
		// нечётное число '\' перед кавычкой: она экранирована
		if backslashRun(content, open+1, toOff(closer))%2 == 1 {
			from = closer + 1
			continue
		}
		return token.Inert{Kind: token.StringLit, Span: sc.file.Span(int(open), closer+1)}, nil
	}
}
