package lexer

import (
	"bytes"
	"fmt"
	"sort"

	"fortio.org/safecast"

	"lcc/internal/source"
	"lcc/internal/token"
)

// Mask answers "is this offset inside a string or comment" over the spans
// produced by ScanSpans. A keyword occurrence never straddles a span
// boundary, so checking its first byte is enough.
type Mask struct {
	file  *source.File
	spans []token.Inert
}

// NewMask wraps ordered, non-overlapping spans of file.
func NewMask(file *source.File, spans []token.Inert) *Mask {
	return &Mask{file: file, spans: spans}
}

// File returns the masked file.
func (m *Mask) File() *source.File {
	return m.file
}

// Spans returns the underlying spans; callers must not modify them.
func (m *Mask) Spans() []token.Inert {
	return m.spans
}

// Covering returns the span containing off.
func (m *Mask) Covering(off uint32) (token.Inert, bool) {
	// первый span, который заканчивается после off
	i := sort.Search(len(m.spans), func(i int) bool {
		return m.spans[i].Span.End > off
	})
	if i < len(m.spans) && m.spans[i].Span.Start <= off {
		return m.spans[i], true
	}
	return token.Inert{}, false
}

// Live reports whether off lies outside every span.
func (m *Mask) Live(off uint32) bool {
	_, covered := m.Covering(off)
	return !covered
}

// NextLive finds the first live occurrence of kw fully inside [from, before).
// An occurrence that falls in a span restarts the search at that span's end.
func (m *Mask) NextLive(kw string, from, before uint32) (uint32, bool) {
	limit := min(before, m.file.Len())
	needle := []byte(kw)
	for from < limit {
		idx := bytes.Index(m.file.Content[from:limit], needle)
		if idx < 0 {
			return 0, false
		}
		at := from + toOff(idx)
		if sp, covered := m.Covering(at); covered {
			from = sp.Span.End
			continue
		}
		return at, true
	}
	return 0, false
}

// CountLive counts non-overlapping live occurrences of kw in [from, before).
func (m *Mask) CountLive(kw string, from, before uint32) int {
	n := 0
	step := toOff(len(kw))
	for {
		at, ok := m.NextLive(kw, from, before)
		if !ok {
			return n
		}
		n++
		from = at + step
	}
}

// Walk calls fn for every live byte in [from, to) in order, jumping over
// spans. Returning false from fn stops the walk.
func (m *Mask) Walk(from, to uint32, fn func(off uint32, b byte) bool) {
	to = min(to, m.file.Len())
	for off := from; off < to; {
		if sp, covered := m.Covering(off); covered {
			off = sp.Span.End
			continue
		}
		if !fn(off, m.file.Content[off]) {
			return
		}
		off++
	}
}

// SplitLive cuts [from, to) at every live sep byte. Separators are not
// included in the pieces; an empty region yields no pieces.
func (m *Mask) SplitLive(from, to uint32, sep byte) []source.Span {
	if from >= to {
		return nil
	}
	var parts []source.Span
	start := from
	m.Walk(from, to, func(off uint32, b byte) bool {
		if b == sep {
			parts = append(parts, source.Span{File: m.file.ID, Start: start, End: off})
			start = off + 1
		}
		return true
	})
	return append(parts, source.Span{File: m.file.ID, Start: start, End: to})
}

func toOff(n int) uint32 {
	off, err := safecast.Conv[uint32](n)
	if err != nil {
		panic(fmt.Errorf("offset overflow: %w", err))
	}
	return off
}
