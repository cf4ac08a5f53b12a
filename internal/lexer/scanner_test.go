package lexer_test

import (
	"strings"
	"testing"

	"lcc/internal/diag"
	"lcc/internal/lexer"
	"lcc/internal/source"
	"lcc/internal/token"
)

// testReporter собирает все диагностики, полученные от сканера
type testReporter struct {
	diagnostics []diag.Diagnostic
}

func (r *testReporter) Report(code diag.Code, sev diag.Severity, primary source.Span, msg string, notes []diag.Note) {
	r.diagnostics = append(r.diagnostics, diag.Diagnostic{
		Severity: sev,
		Code:     code,
		Message:  msg,
		Primary:  primary,
		Notes:    notes,
	})
}

func scan(t *testing.T, src string) (*source.File, lexer.Result, *testReporter) {
	t.Helper()
	fs := source.NewFileSet()
	f := fs.Get(fs.AddVirtual("test.lc", []byte(src)))
	rep := &testReporter{}
	return f, lexer.ScanSpans(f, lexer.Options{Reporter: rep}), rep
}

type spanText struct {
	kind token.InertKind
	text string
}

func texts(f *source.File, spans []token.Inert) []spanText {
	out := make([]spanText, 0, len(spans))
	for _, sp := range spans {
		out = append(out, spanText{sp.Kind, sp.Text(f.Content)})
	}
	return out
}

func TestScanSpansClassification(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []spanText
	}{
		{"empty", "", nil},
		{"no inert text", "func a(): int\nendfunc", nil},
		{
			"comment marker inside string",
			`x = "a // b" // tail` + "\nnext",
			[]spanText{{token.StringLit, `"a // b"`}, {token.LineComment, "// tail"}},
		},
		{
			"quote inside comment",
			"// don't\ny = 'ok'",
			[]spanText{{token.LineComment, "// don't"}, {token.StringLit, "'ok'"}},
		},
		{
			"other quote kind is literal",
			`"it's" 'say "hi"'`,
			[]spanText{{token.StringLit, `"it's"`}, {token.StringLit, `'say "hi"'`}},
		},
		{
			"block comment hides everything",
			"a /// func \" ' // x\n endfunc /// b",
			[]spanText{{token.BlockComment, "/// func \" ' // x\n endfunc ///"}},
		},
		{
			"line comment at eof",
			"x // no newline",
			[]spanText{{token.LineComment, "// no newline"}},
		},
		{
			"escaped quote inside string",
			`s = "a\"b" + 'c\'d'`,
			[]spanText{{token.StringLit, `"a\"b"`}, {token.StringLit, `'c\'d'`}},
		},
		{
			"string across lines",
			"\"one\ntwo\" z",
			[]spanText{{token.StringLit, "\"one\ntwo\""}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, res, rep := scan(t, tt.src)
			if res.Fatal != nil {
				t.Fatalf("unexpected fatal: %s", res.Fatal.Message)
			}
			if len(rep.diagnostics) != 0 {
				t.Fatalf("unexpected diagnostics: %+v", rep.diagnostics)
			}
			got := texts(f, res.Spans)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d spans %+v, want %d %+v", len(got), got, len(tt.want), tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("span %d: got %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestScanSpansEscapeParity(t *testing.T) {
	for n := 0; n <= 4; n++ {
		src := `x = "a` + strings.Repeat(`\`, n) + `"` + "\n"
		_, res, _ := scan(t, src)
		terminated := res.Fatal == nil
		if want := n%2 == 0; terminated != want {
			t.Errorf("N=%d: terminated=%v, want %v", n, terminated, want)
		}
		if !terminated && res.Fatal.Code != diag.LexUnterminatedString {
			t.Errorf("N=%d: unexpected fatal code %s", n, res.Fatal.Code.ID())
		}
	}
}

func TestScanSpansUnterminatedString(t *testing.T) {
	src := "func a(): int\n print(\"oops\nendfunc"
	f, res, _ := scan(t, src)
	if res.Fatal == nil {
		t.Fatal("expected fatal")
	}
	if res.Spans != nil {
		t.Fatalf("spans must be nil on fatal, got %v", res.Spans)
	}
	if res.Fatal.Severity != diag.SevFatal || res.Fatal.Code != diag.LexUnterminatedString {
		t.Fatalf("unexpected fatal %+v", res.Fatal)
	}
	if pos := f.Position(res.Fatal.Primary.Start); pos != (source.LineCol{Line: 2, Col: 8}) {
		t.Fatalf("fatal at %+v, want 2:8", pos)
	}
}

func TestScanSpansUnterminatedBlockComment(t *testing.T) {
	src := "func a(): int\n'ok' /// never closed\nendfunc"
	f, res, _ := scan(t, src)
	if res.Fatal == nil || res.Fatal.Code != diag.LexUnterminatedBlockComment {
		t.Fatalf("expected unterminated block comment, got %+v", res.Fatal)
	}
	if pos := f.Position(res.Fatal.Primary.Start); pos != (source.LineCol{Line: 2, Col: 6}) {
		t.Fatalf("fatal at %+v, want 2:6", pos)
	}
}

func TestScanSpansUnexpectedBackslash(t *testing.T) {
	f, res, rep := scan(t, `x = \"a" + \\"b"`)
	if res.Fatal != nil {
		t.Fatalf("unexpected fatal: %s", res.Fatal.Message)
	}
	if len(res.Spans) != 2 {
		t.Fatalf("want 2 spans, got %+v", texts(f, res.Spans))
	}
	// только первая кавычка: перед второй чётное число '\'
	if len(rep.diagnostics) != 1 {
		t.Fatalf("want 1 diagnostic, got %+v", rep.diagnostics)
	}
	d := rep.diagnostics[0]
	if d.Code != diag.LexUnexpectedBackslash || d.Severity != diag.SevError {
		t.Fatalf("unexpected diagnostic %+v", d)
	}
	if d.Primary.Start != 4 || d.Primary.End != 6 {
		t.Fatalf("unexpected span %v", d.Primary)
	}
}

func TestScanSpansNilReporter(t *testing.T) {
	fs := source.NewFileSet()
	f := fs.Get(fs.AddVirtual("nil.lc", []byte(`\"a"`)))
	res := lexer.ScanSpans(f, lexer.Options{})
	if !res.Ok() || len(res.Spans) != 1 {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestScanSpansOrderedAndDisjoint(t *testing.T) {
	src := "'a' \"b\" // c\n/// d ///'e'\"f\"//g"
	_, res, _ := scan(t, src)
	if res.Fatal != nil {
		t.Fatalf("unexpected fatal: %s", res.Fatal.Message)
	}
	if len(res.Spans) != 7 {
		t.Fatalf("want 7 spans, got %d", len(res.Spans))
	}
	for i := 1; i < len(res.Spans); i++ {
		prev, cur := res.Spans[i-1].Span, res.Spans[i].Span
		if prev.End > cur.Start {
			t.Fatalf("spans %d and %d overlap or are unordered: %v %v", i-1, i, prev, cur)
		}
	}
}
