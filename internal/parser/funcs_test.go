package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lcc/internal/ast"
	"lcc/internal/diag"
	"lcc/internal/source"
)

func TestValidateSimpleFunction(t *testing.T) {
	v := validateSource(t, "func greet(): void\n print(\"hi\")\nendfunc", ClassModePair)

	require.True(t, v.res.Ok())
	require.Zero(t, v.bag.Len(), diagnosticsSummary(v.bag))
	require.Len(t, v.res.Decls, 1)

	d := v.res.Decls[0]
	assert.Equal(t, ast.DeclFunc, d.Kind)
	assert.Equal(t, "greet", d.Name)
	assert.Equal(t, "void", d.Returns)
	assert.Empty(t, d.Params)
	assert.Equal(t, uint32(0), d.Span.Start)
	assert.Equal(t, v.file.Len(), d.Span.End)
	assert.Equal(t, "func greet(): void", string(v.file.Content[d.Header.Start:d.Header.End]))
}

func TestValidateIgnoresKeywordsInInertSpans(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []string
	}{
		{
			name: "line comment",
			src:  "// a comment with func inside\nfunc x(): int\n return 1\nendfunc",
			want: []string{"x"},
		},
		{
			name: "string in body",
			src:  "func a(): str\n s = \"func class endfunc\"\nendfunc",
			want: []string{"a"},
		},
		{
			name: "block comment and quotes",
			src:  "/// func x(): int ///\nx = 'endfunc'\ny = \"endclass\"",
			want: []string{},
		},
		{
			name: "no keywords at all",
			src:  "print('hello')",
			want: []string{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := validateSource(t, tt.src, ClassModePair)
			require.True(t, v.res.Ok())
			assert.Zero(t, v.bag.Len(), diagnosticsSummary(v.bag))
			assert.Equal(t, tt.want, v.names())
		})
	}
}

func TestValidateNestedFunctionInvalidatesOuter(t *testing.T) {
	src := "func a(): int\n func b(): int\n endfunc\nendfunc\nfunc c(): int\nendfunc"
	v := validateSource(t, src, ClassModePair)

	require.True(t, v.res.Ok())
	assert.Equal(t, []diag.Code{diag.SynNestedFunc}, v.codes())
	assert.Equal(t, source.LineCol{Line: 2, Col: 2}, v.at(v.bag.Items()[0].Primary))
	require.Len(t, v.bag.Items()[0].Notes, 1)
	// внешний endfunc не считается лишним, c принимается
	assert.Equal(t, []string{"c"}, v.names())
}

func TestValidateNestedReportsEveryOccurrence(t *testing.T) {
	src := "func a(): int\n func b(): int\n func c(): int\n endfunc\n class D\n endclass\nendfunc"
	v := validateSource(t, src, ClassModePair)

	require.True(t, v.res.Ok())
	assert.Equal(t, []diag.Code{diag.SynNestedFunc, diag.SynNestedFunc, diag.SynNestedClass}, v.codes())
	assert.Empty(t, v.res.Decls)
}

func TestValidateMissingEndfuncKeepsNextFunction(t *testing.T) {
	src := "func a(): int\n func b(): int\nendfunc\nfunc c(): int\nendfunc"
	v := validateSource(t, src, ClassModePair)

	require.True(t, v.res.Ok())
	assert.Equal(t, []diag.Code{diag.SynNestedFunc}, v.codes(), diagnosticsSummary(v.bag))
	assert.Equal(t, source.LineCol{Line: 2, Col: 2}, v.at(v.bag.Items()[0].Primary))
	// a заканчивается на первом endfunc, c разбирается отдельно
	assert.Equal(t, []string{"c"}, v.names())
	require.Len(t, v.res.Decls, 1)
	assert.Equal(t, source.LineCol{Line: 4, Col: 1}, v.at(v.res.Decls[0].Span))
}

func TestValidateEmptyFuncBody(t *testing.T) {
	v := validateSource(t, "func endfunc", ClassModePair)

	require.True(t, v.res.Ok())
	assert.Equal(t, []diag.Code{diag.SynMissingReturnType, diag.SynMissingParamList, diag.SynMissingName}, v.codes(), diagnosticsSummary(v.bag))
	assert.Empty(t, v.res.Decls)
}

func TestValidateStrayEndclassInFunction(t *testing.T) {
	v := validateSource(t, "func a(): int\n endclass\nendfunc", ClassModePair)
	require.True(t, v.res.Ok())
	assert.Equal(t, []diag.Code{diag.SynStrayEndclass}, v.codes())
	assert.Empty(t, v.res.Decls)
}

func TestValidateDuplicates(t *testing.T) {
	src := "func add(): int\nendfunc\nfunc a dd(): int\nendfunc\nfunc sub(): int\nendfunc"
	v := validateSource(t, src, ClassModePair)

	require.True(t, v.res.Ok())
	require.Equal(t, []diag.Code{diag.SemaDuplicateFunction}, v.codes())
	d := v.bag.Items()[0]
	assert.Equal(t, source.LineCol{Line: 3, Col: 6}, v.at(d.Primary))
	require.Len(t, d.Notes, 1)
	assert.Equal(t, source.LineCol{Line: 1, Col: 6}, v.at(d.Notes[0].Span))
	assert.Equal(t, []string{"add", "sub"}, v.names())
}

func TestValidateReservedMain(t *testing.T) {
	v := validateSource(t, "func main(): void\nendfunc", ClassModePair)
	require.True(t, v.res.Ok())
	assert.Equal(t, []diag.Code{diag.SemaReservedMain}, v.codes())
	assert.Empty(t, v.res.Decls)
}

func TestValidateHeaderErrors(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		codes []diag.Code
	}{
		{"no colon", "func a()\nendfunc", []diag.Code{diag.SynMissingReturnType}},
		{"empty return type", "func a():  \nendfunc", []diag.Code{diag.SynMissingReturnType}},
		{"no parens", "func a: int\nendfunc", []diag.Code{diag.SynMissingParamList}},
		{"nothing", "func a\nendfunc", []diag.Code{diag.SynMissingReturnType, diag.SynMissingParamList}},
		{"unclosed", "func a(int x: int\nendfunc", []diag.Code{diag.SynUnclosedParamList}},
		{"missing name", "func (): int\nendfunc", []diag.Code{diag.SynMissingName}},
		{"invalid name", "func 1abc(): int\nendfunc", []diag.Code{diag.SynInvalidName}},
		{"one word param", "func a(x): int\nendfunc", []diag.Code{diag.SynMalformedParam}},
		{"empty default", "func a(int x =): int\nendfunc", []diag.Code{diag.SynMalformedParam}},
		{"trailing comma", "func a(int x,): int\nendfunc", []diag.Code{diag.SynMalformedParam}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := validateSource(t, tt.src, ClassModePair)
			require.True(t, v.res.Ok())
			assert.Equal(t, tt.codes, v.codes(), diagnosticsSummary(v.bag))
			assert.Empty(t, v.res.Decls)
		})
	}
}

func TestValidateResumesAfterInvalidBody(t *testing.T) {
	src := "func a()\nendfunc\nfunc b(): int\nendfunc"
	v := validateSource(t, src, ClassModePair)
	require.True(t, v.res.Ok())
	assert.Equal(t, []diag.Code{diag.SynMissingReturnType}, v.codes())
	assert.Equal(t, []string{"b"}, v.names())
}

func TestValidateParams(t *testing.T) {
	src := "func add(int a, int b = 2, unsigned int c = f(1, 2), str s = \",\"): int\nendfunc"
	v := validateSource(t, src, ClassModePair)

	require.True(t, v.res.Ok())
	require.Zero(t, v.bag.Len(), diagnosticsSummary(v.bag))
	require.Len(t, v.res.Decls, 1)
	d := v.res.Decls[0]
	assert.Equal(t, `int a, int b = 2, unsigned int c = f(1, 2), str s = ","`, d.ParamsRaw)
	assert.Equal(t, []ast.Param{
		{Type: "int", Name: "a"},
		{Type: "int", Name: "b", Default: "2"},
		{Type: "unsigned int", Name: "c", Default: "f(1, 2)"},
		{Type: "str", Name: "s", Default: `","`},
	}, stripSpans(d.Params))
}

func stripSpans(params []ast.Param) []ast.Param {
	out := make([]ast.Param, len(params))
	for i, p := range params {
		p.Span = source.Span{}
		out[i] = p
	}
	return out
}

func TestValidateFatalPairing(t *testing.T) {
	tests := []struct {
		name string
		src  string
		code diag.Code
		pos  source.LineCol
	}{
		{"unfinished", "func a(): int\n return 1\n", diag.SynUnfinishedFunc, source.LineCol{Line: 1, Col: 1}},
		{"unfinished second", "func a(): int\nendfunc\n func b(): int", diag.SynUnfinishedFunc, source.LineCol{Line: 3, Col: 2}},
		{"stray endfunc", "endfunc", diag.SynStrayEndfunc, source.LineCol{Line: 1, Col: 1}},
		{"extra endfunc", "func a(): int\nendfunc\nendfunc", diag.SynStrayEndfunc, source.LineCol{Line: 3, Col: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := validateSource(t, tt.src, ClassModePair)
			require.NotNil(t, v.res.Fatal)
			assert.Nil(t, v.res.Decls)
			assert.Equal(t, diag.SevFatal, v.res.Fatal.Severity)
			assert.Equal(t, tt.code, v.res.Fatal.Code)
			assert.Equal(t, tt.pos, v.at(v.res.Fatal.Primary))
		})
	}
}

func TestValidateWithoutReporter(t *testing.T) {
	fs := source.NewFileSet()
	f := fs.Get(fs.AddVirtual("quiet.lc", []byte("func main(): void\nendfunc\nfunc ok(): int\nendfunc")))
	res := Validate(f, nil, Options{})
	require.True(t, res.Ok())
	require.Len(t, res.Funcs(), 1)
	assert.Equal(t, "ok", res.Funcs()[0].Name)
}

func TestValidateHeaderTrailingComment(t *testing.T) {
	v := validateSource(t, "func f(int n): int // returns n: int\nendfunc\nclass C inherits B // and D\nendclass", ClassModePair)
	require.True(t, v.res.Ok())
	require.Zero(t, v.bag.Len(), diagnosticsSummary(v.bag))
	require.Len(t, v.res.Decls, 2)

	fn := v.res.Decls[0]
	assert.Equal(t, "int", fn.Returns)
	assert.Equal(t, "func f(int n): int ", string(v.file.Content[fn.Header.Start:fn.Header.End]))
	assert.Equal(t, []string{"B"}, v.res.Decls[1].Supers)
}

func TestOffset(t *testing.T) {
	assert.Equal(t, uint32(7), offset(7))
	assert.Panics(t, func() { offset(-1) })
}
