package parser

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"lcc/internal/ast"
	"lcc/internal/diag"
	"lcc/internal/source"
)

// declName extracts the name in [from, to). With compact set, inner
// whitespace is dropped ("gre et" names "greet"). On failure the name stays
// empty so that no naming checks run on it.
func (v *validator) declName(decl *ast.Decl, kwSpan source.Span, from, to uint32, compact bool) bool {
	sp := v.trimSpan(from, to)
	raw := v.text(sp.Start, sp.End)
	if raw == "" {
		v.report(diag.SynMissingName, kwSpan, fmt.Sprintf("missing %s name", decl.Kind)).Emit()
		return false
	}
	name := raw
	if compact {
		name = strings.Join(strings.Fields(raw), "")
	}
	if !isIdent(name) {
		v.report(diag.SynInvalidName, sp, fmt.Sprintf("invalid %s name %q", decl.Kind, raw)).Emit()
		return false
	}
	decl.Name = name
	decl.NameSpan = sp
	return true
}

// matchParen finds the live ')' closing the '(' at open, before limit.
func (v *validator) matchParen(open, limit uint32) (uint32, bool) {
	depth := 0
	var (
		closeAt uint32
		found   bool
	)
	v.mask.Walk(open, limit, func(off uint32, b byte) bool {
		switch b {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				closeAt, found = off, true
				return false
			}
		}
		return true
	})
	return closeAt, found
}

// params parses `type name [= default]` entries separated by live commas in
// [from, to). Multi-word types keep every word but the last.
func (v *validator) params(from, to uint32) ([]ast.Param, bool) {
	if v.trimmed(from, to) == "" {
		return nil, true
	}
	ok := true
	var out []ast.Param
	for _, piece := range v.splitParams(from, to) {
		sp := v.trimSpan(piece.Start, piece.End)
		if sp.Empty() {
			v.report(diag.SynMalformedParam, v.span(piece.Start, piece.Start), "empty parameter").Emit()
			ok = false
			continue
		}

		declEnd := sp.End
		def := ""
		eq, hasEq := v.mask.NextLive("=", sp.Start, sp.End)
		if hasEq {
			declEnd = eq
			def = v.trimmed(eq+1, sp.End)
		}
		words := strings.Fields(v.text(sp.Start, declEnd))
		if len(words) < 2 || (hasEq && def == "") || !isIdent(words[len(words)-1]) {
			v.report(diag.SynMalformedParam, sp,
				fmt.Sprintf("malformed parameter %q, expected `type name [= default]`", v.text(sp.Start, sp.End))).Emit()
			ok = false
			continue
		}
		out = append(out, ast.Param{
			Type:    strings.Join(words[:len(words)-1], " "),
			Name:    words[len(words)-1],
			Default: def,
			Span:    sp,
		})
	}
	return out, ok
}

// splitParams cuts [from, to) at live commas outside nested brackets, so a
// default such as f(1, 2) stays in one piece.
func (v *validator) splitParams(from, to uint32) []source.Span {
	var parts []source.Span
	start, depth := from, 0
	v.mask.Walk(from, to, func(off uint32, b byte) bool {
		switch b {
		case '(', '[':
			depth++
		case ')', ']':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, v.span(start, off))
				start = off + 1
			}
		}
		return true
	})
	return append(parts, v.span(start, to))
}

// isIdent: буква или '_' в начале, дальше буквы, цифры и '_'.
func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if r == utf8.RuneError {
			return false
		}
		if r == '_' || unicode.IsLetter(r) {
			continue
		}
		if i > 0 && unicode.IsDigit(r) {
			continue
		}
		return false
	}
	return true
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\v' || b == '\f'
}
