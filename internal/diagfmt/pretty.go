package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"lcc/internal/diag"
	"lcc/internal/source"
)

type palette struct {
	sev      map[diag.Severity]*color.Color
	location *color.Color
	gutter   *color.Color
	caret    *color.Color
	note     *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		sev: map[diag.Severity]*color.Color{
			diag.SevFatal:   color.New(color.FgRed, color.Bold),
			diag.SevError:   color.New(color.FgRed, color.Bold),
			diag.SevWarning: color.New(color.FgYellow, color.Bold),
			diag.SevInfo:    color.New(color.FgCyan),
		},
		location: color.New(color.Bold),
		gutter:   color.New(color.FgBlue),
		caret:    color.New(color.FgGreen, color.Bold),
		note:     color.New(color.FgCyan, color.Bold),
	}
	all := []*color.Color{p.location, p.gutter, p.caret, p.note}
	for _, c := range p.sev {
		all = append(all, c)
	}
	for _, c := range all {
		// глобальный color.NoColor не трогаем
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Ожидается уже отсортированный срез (bag.Sort()).
// Для каждой диагностики печатает
//
//	<path>:<line>:<col>: <SEV> <CODE>: <Message>
//
// затем строку исходника с подчёркиванием ^~~~ по Span и, если ShowNotes, заметки.
// Диагностики уровня файла (Whole) печатаются без позиции и без контекста.
func Pretty(w io.Writer, diags []*diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) {
	p := newPalette(opts.Color)
	for i, d := range diags {
		if i > 0 {
			fmt.Fprintln(w)
		}
		f := lookup(fs, d.Primary)
		sevColor := p.sev[d.Severity]
		if sevColor == nil {
			sevColor = p.sev[diag.SevInfo]
		}
		fmt.Fprintf(w, "%s %s %s: %s\n",
			p.location.Sprint(location(fs, f, d.Primary, d.Whole, opts.PathMode)+":"),
			sevColor.Sprint(d.Severity.String()),
			d.Code.ID(),
			d.Message)
		if f != nil && !d.Whole {
			writeSnippet(w, f, d.Primary, int(opts.Context), p)
		}
		if !opts.ShowNotes {
			continue
		}
		for _, n := range d.Notes {
			nf := lookup(fs, n.Span)
			fmt.Fprintf(w, "  %s %s %s\n",
				p.note.Sprint("note:"),
				location(fs, nf, n.Span, d.Whole, opts.PathMode)+":",
				n.Msg)
		}
	}
}

func location(fs *source.FileSet, f *source.File, sp source.Span, whole bool, mode PathMode) string {
	if f == nil {
		return "<unknown>"
	}
	path := displayPath(fs, f, mode)
	if whole {
		return path
	}
	pos := f.Position(sp.Start)
	return fmt.Sprintf("%s:%d:%d", path, pos.Line, pos.Col)
}

// writeSnippet печатает строку с позицией sp и context строк перед ней.
func writeSnippet(w io.Writer, f *source.File, sp source.Span, context int, p palette) {
	pos := f.Position(sp.Start)
	first := int(pos.Line) - context
	if first < 1 {
		first = 1
	}
	gutterWidth := len(fmt.Sprint(pos.Line))

	for line := first; line <= int(pos.Line); line++ {
		text := f.GetLine(uint32(line)) // #nosec G115 -- line <= pos.Line
		fmt.Fprintf(w, "%s %s\n",
			p.gutter.Sprintf("%*d |", gutterWidth, line),
			expandTabs(text))
	}

	text := f.GetLine(pos.Line)
	col := int(pos.Col) - 1
	if col > len(text) {
		col = len(text)
	}
	// подчёркивание не переходит на следующую строку
	end := col + int(sp.Len())
	if end > len(text) {
		end = len(text)
	}
	pad := runewidth.StringWidth(expandTabs(text[:col]))
	width := runewidth.StringWidth(expandTabs(text[col:end]))
	marker := "^"
	if width > 1 {
		marker += strings.Repeat("~", width-1)
	}
	fmt.Fprintf(w, "%s %s%s\n",
		p.gutter.Sprintf("%*s |", gutterWidth, ""),
		strings.Repeat(" ", pad),
		p.caret.Sprint(marker))
}

// runewidth считает '\t' нулевой ширины
func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", "    ")
}
