package parser

import (
	"fmt"

	"lcc/internal/ast"
	"lcc/internal/diag"
	"lcc/internal/token"
)

// function validates the body opened by the live "func" at `at` and returns
// the offset to resume scanning from.
func (v *validator) function(at uint32, r region) (uint32, *diag.Diagnostic) {
	kwLen := uint32(len(token.KwFunc.Text()))
	if v.isCloserAt(at) {
		return 0, diag.NewFatal(diag.SynStrayEndfunc, v.span(at-3, at+kwLen), "endfunc without matching func")
	}
	p, ok := v.pair(token.KwFunc, at, r.to)
	if !ok {
		return 0, diag.NewFatal(diag.SynUnfinishedFunc, v.span(at, at+kwLen), "unfinished function declaration")
	}

	hdrEnd := v.lineEnd(at+kwLen, p.close)
	decl, valid := v.funcHeader(at, v.cutLineComment(at+kwLen, hdrEnd))
	decl.Span = v.span(at, p.end)
	decl.Owner = r.owner

	if !v.checkNestedInFunc(p) {
		valid = false
	}
	if decl.Name != "" && !v.checkFuncName(&decl, r.owner) {
		valid = false
	}

	if valid {
		v.funcs[funcKey(r.owner, decl.Name)] = decl.NameSpan
		if r.collect {
			v.decls = append(v.decls, decl)
		}
	}
	return p.end, nil
}

// funcHeader parses `func <name>(<params>): <return type>` in [at, hdrEnd).
// Header problems are reported; valid is false if any was found.
func (v *validator) funcHeader(at, hdrEnd uint32) (decl ast.Decl, valid bool) {
	kwSpan := v.span(at, at+uint32(len(token.KwFunc.Text())))
	nameFrom := kwSpan.End
	decl = ast.Decl{Kind: ast.DeclFunc, Header: v.span(at, hdrEnd)}
	valid = true

	open, hasOpen := v.mask.NextLive("(", nameFrom, hdrEnd)
	var (
		closeAt  uint32
		hasClose bool
	)
	if hasOpen {
		closeAt, hasClose = v.matchParen(open, hdrEnd)
	}

	var (
		colon    uint32
		hasColon bool
	)
	switch {
	case hasClose:
		colon, hasColon = v.mask.NextLive(":", closeAt+1, hdrEnd)
	case !hasOpen:
		colon, hasColon = v.mask.NextLive(":", nameFrom, hdrEnd)
	}

	nameEnd := hdrEnd
	if hasOpen {
		nameEnd = open
	} else if hasColon {
		nameEnd = colon
	}

	if hasColon {
		decl.Returns = v.trimmed(colon+1, hdrEnd)
	}
	if decl.Returns == "" && (hasClose || !hasOpen) {
		where := hdrEnd
		if hasClose {
			where = closeAt + 1
		}
		v.report(diag.SynMissingReturnType, v.span(where, where), "missing return type").
			WithNote(kwSpan, "expected `func name(params): type`").
			Emit()
		valid = false
	}

	switch {
	case !hasOpen:
		v.report(diag.SynMissingParamList, kwSpan, "missing parameter list").Emit()
		valid = false
	case !hasClose:
		v.report(diag.SynUnclosedParamList, v.span(open, open+1), "unclosed parameter list").Emit()
		valid = false
	}

	if !v.declName(&decl, kwSpan, nameFrom, nameEnd, true) {
		valid = false
	}

	if hasClose {
		decl.ParamsRaw = v.trimmed(open+1, closeAt)
		params, ok := v.params(open+1, closeAt)
		decl.Params = params
		if !ok {
			valid = false
		}
	}
	return decl, valid
}

// checkNestedInFunc reports every live func/class opener inside the body and
// any endclass there that closes nothing.
func (v *validator) checkNestedInFunc(p pairing) bool {
	ok := true
	outer := v.span(p.open, p.open+uint32(len(token.KwFunc.Text())))
	for _, n := range p.nested {
		v.report(diag.SynNestedFunc, v.span(n, n+uint32(len(token.KwFunc.Text()))), "illegal nested function").
			WithNote(outer, "enclosing function starts here").
			Emit()
		ok = false
	}

	classLen := uint32(len(token.KwClass.Text()))
	open := 0
	for at, found := v.nextLive(token.KwClass, outer.End, p.close); found; at, found = v.nextLive(token.KwClass, at+classLen, p.close) {
		if v.isCloserAt(at) {
			if open > 0 {
				open--
				continue
			}
			v.report(diag.SynStrayEndclass, v.span(at-3, at+classLen), "endclass without matching class").Emit()
			ok = false
			continue
		}
		open++
		v.report(diag.SynNestedClass, v.span(at, at+classLen), "illegal nested class").
			WithNote(outer, "enclosing function starts here").
			Emit()
		ok = false
	}
	return ok
}

// checkFuncName rejects main and names already taken in the same scope.
func (v *validator) checkFuncName(decl *ast.Decl, owner string) bool {
	sp := decl.NameSpan
	if decl.Name == "main" {
		v.report(diag.SemaReservedMain, sp, "main is reserved for top-level scope").Emit()
		return false
	}
	if prev, dup := v.funcs[funcKey(owner, decl.Name)]; dup {
		v.report(diag.SemaDuplicateFunction, sp, fmt.Sprintf("duplicate function declaration '%s'", decl.QualifiedName())).
			WithNote(prev, "previous declaration here").
			Emit()
		return false
	}
	return true
}

func funcKey(owner, name string) string {
	return owner + "\x00" + name
}
