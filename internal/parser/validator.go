package parser

import (
	"bytes"
	"fmt"
	"sort"

	"fortio.org/safecast"

	"lcc/internal/ast"
	"lcc/internal/diag"
	"lcc/internal/lexer"
	"lcc/internal/source"
	"lcc/internal/token"
)

type validator struct {
	file  *source.File
	mask  *lexer.Mask
	opts  Options
	kw    keywordSet
	decls []ast.Decl

	// принятые имена -> span имени первого объявления
	funcs   map[string]source.Span
	classes map[string]source.Span
}

// region is a byte range searched for declarations.
type region struct {
	from, to uint32
	owner    string // класс-владелец для методов
	collect  bool   // false: только диагностики, без добавления Decl
}

// pairing is an opener matched with its closer.
type pairing struct {
	open   uint32
	close  uint32   // начало закрывающего ключевого слова
	end    uint32   // конец закрывающего ключевого слова
	nested []uint32 // живые вложенные открывающие того же вида
}

// Validate pairs declaration openers with their closers over the live text of
// file and extracts each declaration's signature. spans must be the result of
// lexer.ScanSpans on the same file.
func Validate(file *source.File, spans []token.Inert, opts Options) Result {
	v := &validator{
		file:    file,
		mask:    lexer.NewMask(file, spans),
		opts:    opts,
		kw:      prefilter(file.Content),
		funcs:   make(map[string]source.Span),
		classes: make(map[string]source.Span),
	}
	if fatal := v.run(); fatal != nil {
		return Result{Fatal: fatal}
	}
	return Result{Decls: v.decls}
}

func (v *validator) run() *diag.Diagnostic {
	top := region{from: 0, to: v.file.Len(), collect: true}
	if fatal := v.scanRegion(top); fatal != nil {
		return fatal
	}
	if v.opts.ClassMode == ClassModeParity {
		return v.checkParity()
	}
	return nil
}

// scanRegion: Seeking -> Pairing -> Validating -> Emitting -> Seeking.
// Every iteration resumes after the closer of the processed body.
func (v *validator) scanRegion(r region) *diag.Diagnostic {
	pairClasses := r.owner == "" && v.opts.ClassMode == ClassModePair
	pos := r.from
	for pos < r.to {
		fn, hasFn := v.nextLive(token.KwFunc, pos, r.to)
		var (
			cl    uint32
			hasCl bool
		)
		if pairClasses {
			cl, hasCl = v.nextLive(token.KwClass, pos, r.to)
		}

		var (
			end   uint32
			fatal *diag.Diagnostic
		)
		switch {
		case hasFn && (!hasCl || fn < cl):
			end, fatal = v.function(fn, r)
		case hasCl:
			end, fatal = v.class(cl, r)
		default:
			return nil
		}
		if fatal != nil {
			return fatal
		}
		pos = end
	}
	return nil
}

func (v *validator) nextLive(kind token.Kind, from, before uint32) (uint32, bool) {
	if !v.kw.has(kind) {
		return 0, false
	}
	return v.mask.NextLive(kind.Text(), from, before)
}

// pair matches the opener at `at` with the first live closer. A nested opener
// inside the body extends it by one more closer, but only while no new opener
// of the same kind sits between the two closers; otherwise the first closer
// ends the body and the following declaration is scanned on its own.
func (v *validator) pair(kind token.Kind, at, limit uint32) (pairing, bool) {
	opener, closer := kind.Text(), kind.Closer().Text()
	openLen, closeLen := uint32(len(opener)), uint32(len(closer))

	p := pairing{open: at}
	cur := at + openLen
	closeAt, ok := v.mask.NextLive(closer, cur, limit)
	if !ok {
		return p, false
	}

	pending := 0
	for {
		for n, found := v.mask.NextLive(opener, cur, closeAt); found; n, found = v.mask.NextLive(opener, n+openLen, closeAt) {
			p.nested = append(p.nested, n)
			pending++
		}
		if pending == 0 {
			break
		}
		next, ok := v.mask.NextLive(closer, closeAt+closeLen, limit)
		if !ok {
			// вложенному не хватило своего закрывающего: тело заканчивается на последнем найденном
			break
		}
		if _, opens := v.mask.NextLive(opener, closeAt+closeLen, next); opens {
			break
		}
		pending--
		cur = closeAt + closeLen
		closeAt = next
	}

	p.close = closeAt
	p.end = closeAt + closeLen
	return p, true
}

// isCloserAt reports whether the opener keyword at `at` is the tail of
// "endfunc"/"endclass".
func (v *validator) isCloserAt(at uint32) bool {
	return at >= 3 && bytes.Equal(v.file.Content[at-3:at], []byte("end"))
}

func (v *validator) span(start, end uint32) source.Span {
	return source.Span{File: v.file.ID, Start: start, End: end}
}

func (v *validator) text(start, end uint32) string {
	if start >= end {
		return ""
	}
	return string(v.file.Content[start:end])
}

// lineEnd returns the offset of the first '\n' at or after from, capped at limit.
func (v *validator) lineEnd(from, limit uint32) uint32 {
	if from >= limit {
		return limit
	}
	if idx := bytes.IndexByte(v.file.Content[from:limit], '\n'); idx >= 0 {
		return from + offset(idx)
	}
	return limit
}

// cutLineComment returns the start of the first line comment in [from, to), or to.
func (v *validator) cutLineComment(from, to uint32) uint32 {
	spans := v.mask.Spans()
	i := sort.Search(len(spans), func(i int) bool { return spans[i].Span.End > from })
	for ; i < len(spans) && spans[i].Span.Start < to; i++ {
		if spans[i].Kind == token.LineComment {
			return max(from, spans[i].Span.Start)
		}
	}
	return to
}

// trimSpan shrinks [start, end) to exclude surrounding ASCII whitespace.
func (v *validator) trimSpan(start, end uint32) source.Span {
	for start < end && isSpace(v.file.Content[start]) {
		start++
	}
	for end > start && isSpace(v.file.Content[end-1]) {
		end--
	}
	return v.span(start, end)
}

func (v *validator) trimmed(start, end uint32) string {
	sp := v.trimSpan(start, end)
	return v.text(sp.Start, sp.End)
}

func (v *validator) report(code diag.Code, sp source.Span, msg string) *diag.ReportBuilder {
	return diag.ReportError(v.opts.Reporter, code, sp, msg)
}

func offset(n int) uint32 {
	off, err := safecast.Conv[uint32](n)
	if err != nil {
		panic(fmt.Errorf("offset overflow: %w", err))
	}
	return off
}
