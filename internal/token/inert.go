package token

import (
	"lcc/internal/source"
)

// Inert is a string literal or comment span.
type Inert struct {
	Kind InertKind
	Span source.Span
}

// Text slices the span out of content.
func (in Inert) Text(content []byte) string {
	if int(in.Span.End) > len(content) || in.Span.Start > in.Span.End {
		return ""
	}
	return string(content[in.Span.Start:in.Span.End])
}
