package testkit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lcc/internal/ast"
	"lcc/internal/lexer"
	"lcc/internal/parser"
	"lcc/internal/source"
	"lcc/internal/token"
)

func scanAndValidate(t *testing.T, src string) (*source.File, []token.Inert, []ast.Decl) {
	t.Helper()
	fs := source.NewFileSet()
	f := fs.Get(fs.AddVirtual("k.lc", []byte(src)))
	scan := lexer.ScanSpans(f, lexer.Options{})
	require.Nil(t, scan.Fatal)
	res := parser.Validate(f, scan.Spans, parser.Options{})
	require.Nil(t, res.Fatal)
	return f, scan.Spans, res.Decls
}

func TestInvariantsHoldOnValidOutput(t *testing.T) {
	src := "/// c ///\nclass A inherits B\n func m(str s = \"x\"): int\n endfunc\nendclass\nfunc f(): void // endfunc\nendfunc\n"
	f, spans, decls := scanAndValidate(t, src)
	require.Len(t, decls, 3)
	assert.NoError(t, CheckSpanInvariants(spans, f))
	assert.NoError(t, CheckDeclInvariants(decls, spans, f))
}

func TestSpanInvariantViolations(t *testing.T) {
	fs := source.NewFileSet()
	f := fs.Get(fs.AddVirtual("s.lc", []byte("'a' // c\n\"b\"")))
	str := token.Inert{Kind: token.StringLit, Span: source.Span{File: f.ID, Start: 0, End: 3}}
	line := token.Inert{Kind: token.LineComment, Span: source.Span{File: f.ID, Start: 4, End: 8}}

	require.NoError(t, CheckSpanInvariants([]token.Inert{str, line}, f))

	tests := map[string][]token.Inert{
		"unordered":   {line, str},
		"overlap":     {str, {Kind: token.StringLit, Span: source.Span{File: f.ID, Start: 2, End: 5}}},
		"out of file": {{Kind: token.StringLit, Span: source.Span{File: f.ID, Start: 9, End: 40}}},
		"wrong file":  {{Kind: token.StringLit, Span: source.Span{File: f.ID + 1, Start: 0, End: 3}}},
		"bad kind":    {{Kind: token.LineComment, Span: source.Span{File: f.ID, Start: 0, End: 3}}},
		"newline":     {{Kind: token.LineComment, Span: source.Span{File: f.ID, Start: 4, End: 9}}},
		"empty":       {{Kind: token.StringLit, Span: source.Span{File: f.ID, Start: 1, End: 1}}},
	}
	for name, spans := range tests {
		assert.Error(t, CheckSpanInvariants(spans, f), name)
	}
}

func TestDeclInvariantViolations(t *testing.T) {
	f, spans, decls := scanAndValidate(t, "func a(): int\nendfunc\nfunc b(): int\nendfunc\n")
	require.Len(t, decls, 2)

	dup := append([]ast.Decl(nil), decls...)
	dup[1].Name = "a"
	assert.ErrorContains(t, CheckDeclInvariants(dup, spans, f), "duplicate function")

	overlap := append([]ast.Decl(nil), decls...)
	overlap[1].Span.Start = 0
	overlap[1].Header.Start = 0
	assert.ErrorContains(t, CheckDeclInvariants(overlap, spans, f), "overlaps")

	orphan := append([]ast.Decl(nil), decls...)
	orphan[0].Owner = "Ghost"
	assert.ErrorContains(t, CheckDeclInvariants(orphan, spans, f), "without accepted class")

	shifted := append([]ast.Decl(nil), decls...)
	shifted[0].Span.Start = 1
	assert.ErrorContains(t, CheckDeclInvariants(shifted, spans, f), "does not start with")
}
