package parser

import (
	"fmt"
	"strings"

	"lcc/internal/ast"
	"lcc/internal/diag"
	"lcc/internal/source"
	"lcc/internal/token"
)

// class validates the body opened by the live "class" at `at`, then its
// methods, and returns the offset to resume scanning from.
func (v *validator) class(at uint32, r region) (uint32, *diag.Diagnostic) {
	kwLen := uint32(len(token.KwClass.Text()))
	if v.isCloserAt(at) {
		return 0, diag.NewFatal(diag.SynStrayEndclass, v.span(at-3, at+kwLen), "endclass without matching class")
	}
	p, ok := v.pair(token.KwClass, at, r.to)
	if !ok {
		return 0, diag.NewFatal(diag.SynUnfinishedClass, v.span(at, at+kwLen), "unfinished class declaration")
	}

	hdrEnd := v.lineEnd(at+kwLen, p.close)
	decl, valid := v.classHeader(at, v.cutLineComment(at+kwLen, hdrEnd))
	decl.Span = v.span(at, p.end)

	outer := v.span(at, at+kwLen)
	for _, n := range p.nested {
		v.report(diag.SynNestedClass, v.span(n, n+kwLen), "illegal nested class").
			WithNote(outer, "enclosing class starts here").
			Emit()
		valid = false
	}

	if decl.Name != "" {
		if prev, dup := v.classes[decl.Name]; dup {
			v.report(diag.SemaDuplicateClass, decl.NameSpan, fmt.Sprintf("duplicate class declaration '%s'", decl.Name)).
				WithNote(prev, "previous declaration here").
				Emit()
			valid = false
		}
	}

	if valid {
		v.classes[decl.Name] = decl.NameSpan
		if r.collect {
			v.decls = append(v.decls, decl)
		}
	}

	// тело с вложенным классом не разбираем на методы
	if len(p.nested) == 0 {
		methods := region{from: hdrEnd, to: p.close, owner: decl.Name, collect: r.collect && valid}
		if methods.owner == "" {
			methods.owner = "?"
		}
		if fatal := v.scanRegion(methods); fatal != nil {
			return 0, fatal
		}
	}
	return p.end, nil
}

// classHeader parses `class <Name>[(<params>)] [inherits A, B | A and B]`.
func (v *validator) classHeader(at, hdrEnd uint32) (decl ast.Decl, valid bool) {
	kwSpan := v.span(at, at+uint32(len(token.KwClass.Text())))
	decl = ast.Decl{Kind: ast.DeclClass, Header: v.span(at, hdrEnd)}
	valid = true

	headEnd := hdrEnd
	inh, hasInh := v.mask.NextLive(token.KwInherits.Text(), kwSpan.End, hdrEnd)
	if hasInh {
		headEnd = inh
	}

	nameEnd := headEnd
	open, hasOpen := v.mask.NextLive("(", kwSpan.End, headEnd)
	if hasOpen {
		nameEnd = open
		closeAt, ok := v.matchParen(open, headEnd)
		if !ok {
			v.report(diag.SynUnclosedParamList, v.span(open, open+1), "unclosed parameter list").Emit()
			valid = false
		} else {
			decl.ParamsRaw = v.trimmed(open+1, closeAt)
			params, ok := v.params(open+1, closeAt)
			decl.Params = params
			if !ok {
				valid = false
			}
		}
	}

	if !v.declName(&decl, kwSpan, kwSpan.End, nameEnd, false) {
		valid = false
	}

	if hasInh {
		inhSpan := v.span(inh, inh+uint32(len(token.KwInherits.Text())))
		supers, ok := v.supers(inhSpan, hdrEnd)
		decl.Supers = supers
		if !ok {
			valid = false
		}
	}
	return decl, valid
}

// supers parses the list after "inherits": names separated by ',' or 'and'.
func (v *validator) supers(inh source.Span, hdrEnd uint32) ([]string, bool) {
	if v.trimmed(inh.End, hdrEnd) == "" {
		v.report(diag.SynMissingSuperclass, inh, "missing superclass after 'inherits'").Emit()
		return nil, false
	}
	and := token.KwAnd.Text()
	ok := true
	var out []string
	for _, piece := range v.mask.SplitLive(inh.End, hdrEnd, ',') {
		sp := v.trimSpan(piece.Start, piece.End)
		words := strings.Fields(v.text(sp.Start, sp.End))
		if len(words) == 0 {
			v.report(diag.SynMissingSuperclass, v.span(piece.Start, piece.Start), "missing superclass name").Emit()
			ok = false
			continue
		}
		// A and B and C: имена на чётных позициях, 'and' на нечётных
		for i, w := range words {
			if i%2 == 1 {
				if w != and {
					v.report(diag.SynInvalidName, sp, fmt.Sprintf("expected ',' or 'and' between superclasses, got %q", w)).Emit()
					ok = false
					break
				}
				if i == len(words)-1 {
					v.report(diag.SynMissingSuperclass, sp, "missing superclass name after 'and'").Emit()
					ok = false
				}
				continue
			}
			if !isIdent(w) || w == and {
				v.report(diag.SynInvalidName, sp, fmt.Sprintf("invalid superclass name %q", w)).Emit()
				ok = false
				continue
			}
			out = append(out, w)
		}
	}
	return out, ok
}
