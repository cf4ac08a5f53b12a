// Package testkit checks structural invariants of scanner and validator
// output. Tests and fuzzers call it after every successful run.
package testkit

import (
	"bytes"
	"fmt"

	"fortio.org/safecast"

	"lcc/internal/ast"
	"lcc/internal/source"
	"lcc/internal/token"
)

// CheckSpanInvariants verifies scanner output for sf:
// 1) spans are inside the content, non-empty and belong to sf
// 2) spans are ordered by Start and pairwise disjoint
// 3) each span starts and ends with the delimiters of its kind
func CheckSpanInvariants(spans []token.Inert, sf *source.File) error {
	if sf == nil {
		return fmt.Errorf("nil file")
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}

	var prevEnd uint32
	for i, sp := range spans {
		s := sp.Span
		if s.File != sf.ID {
			return fmt.Errorf("span %d: file mismatch: got=%d want=%d", i, s.File, sf.ID)
		}
		if s.End <= s.Start || s.End > lenContent {
			return fmt.Errorf("span %d: bad bounds %v (content %d)", i, s, lenContent)
		}
		if i > 0 && s.Start < prevEnd {
			return fmt.Errorf("span %d: %v overlaps or precedes previous end %d", i, s, prevEnd)
		}
		prevEnd = s.End
		if err := checkDelimiters(sp, sf.Content[s.Start:s.End]); err != nil {
			return fmt.Errorf("span %d %v: %w", i, s, err)
		}
	}
	return nil
}

func checkDelimiters(sp token.Inert, text []byte) error {
	switch sp.Kind {
	case token.StringLit:
		if len(text) < 2 || (text[0] != token.SingleQuote && text[0] != token.DoubleQuote) || text[len(text)-1] != text[0] {
			return fmt.Errorf("string literal not delimited by matching quotes: %q", text)
		}
	case token.LineComment:
		if !bytes.HasPrefix(text, []byte(token.LineOpener)) {
			return fmt.Errorf("line comment without //: %q", text)
		}
		if bytes.IndexByte(text, token.Newline) >= 0 {
			return fmt.Errorf("line comment spans a newline: %q", text)
		}
	case token.BlockComment:
		marker := []byte(token.BlockMarker)
		if len(text) < 2*len(marker) || !bytes.HasPrefix(text, marker) || !bytes.HasSuffix(text, marker) {
			return fmt.Errorf("block comment not delimited by ///: %q", text)
		}
	default:
		return fmt.Errorf("unknown kind %d", sp.Kind)
	}
	return nil
}

// covered reports whether off lies inside one of the spans.
func covered(spans []token.Inert, off uint32) bool {
	for _, sp := range spans {
		if sp.Span.Contains(off) {
			return true
		}
	}
	return false
}

// CheckDeclInvariants verifies validator output against the scanner spans:
// 1) every decl span is inside the content and starts with its live keyword
// 2) headers lie inside their decl and names are non-empty
// 3) top-level decls do not overlap; methods lie inside their class
// 4) no two functions share a qualified name, no two classes share a name
func CheckDeclInvariants(decls []ast.Decl, spans []token.Inert, sf *source.File) error {
	if sf == nil {
		return fmt.Errorf("nil file")
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}

	classes := make(map[string]source.Span)
	funcs := make(map[string]struct{})
	var top []source.Span

	for i := range decls {
		d := &decls[i]
		if d.Span.End > lenContent || d.Span.End <= d.Span.Start {
			return fmt.Errorf("decl %q: bad span %v", d.Name, d.Span)
		}
		kw := token.KwFunc
		if d.Kind == ast.DeclClass {
			kw = token.KwClass
		}
		if !bytes.HasPrefix(sf.Content[d.Span.Start:], kw.Bytes()) {
			return fmt.Errorf("decl %q: span does not start with %q", d.Name, kw.Text())
		}
		if covered(spans, d.Span.Start) {
			return fmt.Errorf("decl %q: keyword at %d is inside a string or comment", d.Name, d.Span.Start)
		}
		if !d.Span.ContainsSpan(d.Header) {
			return fmt.Errorf("decl %q: header %v outside %v", d.Name, d.Header, d.Span)
		}
		if d.Name == "" {
			return fmt.Errorf("decl at %d has no name", d.Span.Start)
		}

		switch d.Kind {
		case ast.DeclClass:
			if _, dup := classes[d.Name]; dup {
				return fmt.Errorf("duplicate class %q accepted", d.Name)
			}
			classes[d.Name] = d.Span
		case ast.DeclFunc:
			q := d.QualifiedName()
			if _, dup := funcs[q]; dup {
				return fmt.Errorf("duplicate function %q accepted", q)
			}
			funcs[q] = struct{}{}
		}

		if d.Owner == "" {
			for _, other := range top {
				if other.Overlaps(d.Span) {
					return fmt.Errorf("decl %q %v overlaps %v", d.Name, d.Span, other)
				}
			}
			top = append(top, d.Span)
		}
	}

	for i := range decls {
		d := &decls[i]
		if !d.IsMethod() {
			continue
		}
		// класс мог быть отвергнут, тогда методов быть не должно
		cls, ok := classes[d.Owner]
		if !ok {
			return fmt.Errorf("method %q without accepted class", d.QualifiedName())
		}
		if !cls.ContainsSpan(d.Span) {
			return fmt.Errorf("method %q %v outside class %v", d.QualifiedName(), d.Span, cls)
		}
	}
	return nil
}
