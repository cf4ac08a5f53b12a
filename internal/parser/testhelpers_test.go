package parser

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"lcc/internal/diag"
	"lcc/internal/lexer"
	"lcc/internal/source"
)

type validated struct {
	res  Result
	bag  *diag.Bag
	file *source.File
}

func validateSource(t *testing.T, src string, mode ClassMode) validated {
	t.Helper()
	fs := source.NewFileSet()
	f := fs.Get(fs.AddVirtual("test.lc", []byte(src)))
	scan := lexer.ScanSpans(f, lexer.Options{})
	require.Nil(t, scan.Fatal, "scanner fatal on test input")

	bag := diag.NewBag(100)
	res := Validate(f, scan.Spans, Options{Reporter: diag.BagReporter{Bag: bag}, ClassMode: mode})
	return validated{res: res, bag: bag, file: f}
}

func (v validated) codes() []diag.Code {
	out := make([]diag.Code, 0, v.bag.Len())
	for _, d := range v.bag.Items() {
		out = append(out, d.Code)
	}
	return out
}

func (v validated) names() []string {
	out := make([]string, 0, len(v.res.Decls))
	for _, d := range v.res.Decls {
		out = append(out, d.QualifiedName())
	}
	return out
}

func (v validated) at(sp source.Span) source.LineCol {
	return v.file.Position(sp.Start)
}

func diagnosticsSummary(bag *diag.Bag) string {
	if bag == nil {
		return "<nil bag>"
	}
	diags := bag.Items()
	if len(diags) == 0 {
		return "<none>"
	}
	lines := make([]string, len(diags))
	for i, d := range diags {
		lines[i] = fmt.Sprintf("[%s] %s", d.Code.ID(), d.Message)
	}
	return strings.Join(lines, "; ")
}
