package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"lcc/internal/source"
	"lcc/internal/token"
)

// SpanOutput is one inert span in `lcc spans` output.
type SpanOutput struct {
	Kind      string `json:"kind"`
	Start     uint32 `json:"start"`
	End       uint32 `json:"end"`
	StartLine uint32 `json:"start_line"`
	StartCol  uint32 `json:"start_col"`
	EndLine   uint32 `json:"end_line"`
	EndCol    uint32 `json:"end_col"`
	Text      string `json:"text"`
}

func spanOutput(sp token.Inert, f *source.File) SpanOutput {
	start, end := f.Position(sp.Span.Start), f.Position(sp.Span.End)
	return SpanOutput{
		Kind:      sp.Kind.String(),
		Start:     sp.Span.Start,
		End:       sp.Span.End,
		StartLine: start.Line,
		StartCol:  start.Col,
		EndLine:   end.Line,
		EndCol:    end.Col,
		Text:      sp.Text(f.Content),
	}
}

// FormatSpansPretty печатает спаны по одному на строку:
//
//	  1: string        2:8-2:14   "oops"
func FormatSpansPretty(w io.Writer, spans []token.Inert, f *source.File) error {
	for i, sp := range spans {
		o := spanOutput(sp, f)
		pos := fmt.Sprintf("%d:%d-%d:%d", o.StartLine, o.StartCol, o.EndLine, o.EndCol)
		if _, err := fmt.Fprintf(w, "%3d: %-13s %-12s %q\n", i+1, o.Kind, pos, o.Text); err != nil {
			return err
		}
	}
	return nil
}

// FormatSpansJSON выводит спаны массивом JSON.
func FormatSpansJSON(w io.Writer, spans []token.Inert, f *source.File) error {
	out := make([]SpanOutput, 0, len(spans))
	for _, sp := range spans {
		out = append(out, spanOutput(sp, f))
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}
