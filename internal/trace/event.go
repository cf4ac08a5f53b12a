package trace

import "time"

// Kind is the type of a trace event.
type Kind uint8

const (
	KindSpanBegin Kind = iota + 1
	KindSpanEnd
	KindPoint
)

var kindNames = [...]string{KindSpanBegin: "begin", KindSpanEnd: "end", KindPoint: "point"}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "unknown"
}

// Scope is the granularity of an event: a whole run, one file, or one phase
// of a file. Scopes line up with Level, so LevelFile traces driver and file
// events but not phases.
type Scope uint8

const (
	ScopeDriver Scope = iota + 1
	ScopeFile
	ScopePhase
)

var scopeNames = [...]string{ScopeDriver: "driver", ScopeFile: "file", ScopePhase: "phase"}

func (s Scope) String() string {
	if int(s) < len(scopeNames) && scopeNames[s] != "" {
		return scopeNames[s]
	}
	return "unknown"
}

// Event is one trace record.
type Event struct {
	Time     time.Time
	Seq      uint64 // глобальный монотонный номер
	Kind     Kind
	Scope    Scope
	SpanID   uint64
	ParentID uint64 // 0 для корня
	Name     string // "check_dir", "check", "scan_spans", "validate"
	Detail   string
	Extra    map[string]string
}
