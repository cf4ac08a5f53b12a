package trace

import (
	"sync/atomic"
	"time"
)

var seq, spanIDs atomic.Uint64

// NextSeq returns the next global event number.
func NextSeq() uint64 { return seq.Add(1) }

// NextSpanID returns a fresh span ID; 0 is never returned.
func NextSpanID() uint64 { return spanIDs.Add(1) }

// Span is an open begin/end pair. A span created while its scope is not
// traced is inert: End, WithExtra and ID do nothing.
type Span struct {
	t       Tracer
	head    Event // поля begin-события, переиспользуются в end
	started time.Time
}

func traced(t Tracer, scope Scope) bool {
	return t != nil && t.Enabled() && t.Level().ShouldEmit(scope)
}

// Begin emits a begin event under parent (0 for a root span).
func Begin(t Tracer, scope Scope, name string, parent uint64) *Span {
	if !traced(t, scope) {
		return &Span{}
	}
	s := &Span{
		t:       t,
		started: time.Now(),
		head:    Event{Scope: scope, SpanID: NextSpanID(), ParentID: parent, Name: name},
	}
	ev := s.head
	ev.Time, ev.Seq, ev.Kind = s.started, NextSeq(), KindSpanBegin
	t.Emit(&ev)
	return s
}

// End emits the end event with detail and the collected extras, and returns
// the span duration.
func (s *Span) End(detail string) time.Duration {
	if s == nil || s.t == nil {
		return 0
	}
	now := time.Now()
	ev := s.head
	ev.Time, ev.Seq, ev.Kind, ev.Detail = now, NextSeq(), KindSpanEnd, detail
	s.t.Emit(&ev)
	return now.Sub(s.started)
}

// WithExtra attaches key=value to the end event.
func (s *Span) WithExtra(key, value string) *Span {
	if s == nil || s.t == nil {
		return s
	}
	if s.head.Extra == nil {
		s.head.Extra = make(map[string]string)
	}
	s.head.Extra[key] = value
	return s
}

func (s *Span) ID() uint64 {
	if s == nil {
		return 0
	}
	return s.head.SpanID
}

// Point emits an instant event under parent.
func Point(t Tracer, scope Scope, name string, parent uint64, detail string) {
	if !traced(t, scope) {
		return
	}
	t.Emit(&Event{
		Time:     time.Now(),
		Seq:      NextSeq(),
		Kind:     KindPoint,
		Scope:    scope,
		SpanID:   NextSpanID(),
		ParentID: parent,
		Name:     name,
		Detail:   detail,
	})
}
