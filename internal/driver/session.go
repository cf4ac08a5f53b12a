package driver

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"lcc/internal/diag"
	"lcc/internal/lexer"
	"lcc/internal/observ"
	"lcc/internal/parser"
	"lcc/internal/source"
	"lcc/internal/token"
	"lcc/internal/trace"
)

// session checks one already loaded file.
type session struct {
	fs       *source.FileSet
	file     *source.File
	opts     Options
	bag      *diag.Bag
	reporter *diag.DedupReporter
	timer    *observ.Timer
	// scanOnly останавливается после сканера (lcc spans).
	scanOnly bool
	started  time.Time
}

func newSession(fs *source.FileSet, id source.FileID, opts Options) *session {
	bag := diag.NewBag(opts.maxDiagnostics())
	s := &session{
		fs:       fs,
		file:     fs.Get(id),
		opts:     opts,
		bag:      bag,
		reporter: diag.NewDedupReporter(diag.BagReporter{Bag: bag}),
	}
	if opts.EnableTimings {
		s.timer = observ.NewTimer()
	}
	return s
}

func (s *session) run(ctx context.Context) (*Result, error) {
	s.started = time.Now()
	ctx, span := trace.Start(ctx, trace.ScopeFile, "check")
	span.WithExtra("path", s.file.Path)
	if flags := s.file.Flags.String(); flags != "" {
		span.WithExtra("flags", flags)
	}

	res := &Result{FileSet: s.fs, File: s.file, Bag: s.bag}
	err := s.phases(ctx, res)
	s.finish(res)
	if n := s.reporter.Suppressed(); n > 0 {
		span.WithExtra("deduped", strconv.Itoa(n))
	}

	switch {
	case err != nil:
		span.End(err.Error())
	case res.Fatal != nil:
		span.End(res.Fatal.Code.ID())
	default:
		span.End(fmt.Sprintf("%d decls, %d diags", len(res.Decls), s.bag.Len()))
	}
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (s *session) phases(ctx context.Context, res *Result) error {
	if s.file.Len() == 0 {
		s.bag.Add(&diag.Diagnostic{
			Severity: diag.SevWarning,
			Code:     diag.IOEmptyFile,
			Message:  "empty source file",
			Primary:  source.Span{File: s.file.ID},
			Whole:    true,
		})
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	scanned := s.scan(ctx)
	if scanned.Fatal != nil {
		res.Fatal = scanned.Fatal
		return nil
	}
	res.Spans = scanned.Spans
	if s.scanOnly {
		return nil
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	validated := s.validate(ctx, scanned.Spans)
	if validated.Fatal != nil {
		res.Fatal = validated.Fatal
		res.Spans = nil
		return nil
	}
	res.Decls = validated.Decls
	return nil
}

func (s *session) scan(ctx context.Context) lexer.Result {
	_, span := trace.Start(ctx, trace.ScopePhase, "scan_spans")
	emit(s.opts.Progress, s.file.Path, StageScan, StatusWorking, 0)
	end := s.timer.Measure("scan_spans")

	res := lexer.ScanSpans(s.file, lexer.Options{Reporter: s.reporter})

	note := strconv.Itoa(len(res.Spans)) + " spans"
	if res.Fatal != nil {
		note = "fatal " + res.Fatal.Code.ID()
	}
	end(note)
	span.End(note)
	return res
}

func (s *session) validate(ctx context.Context, spans []token.Inert) parser.Result {
	_, span := trace.Start(ctx, trace.ScopePhase, "validate")
	emit(s.opts.Progress, s.file.Path, StageValidate, StatusWorking, 0)
	end := s.timer.Measure("validate")

	res := parser.Validate(s.file, spans, parser.Options{
		Reporter:  s.reporter,
		ClassMode: s.opts.ClassMode,
	})

	note := strconv.Itoa(len(res.Decls)) + " decls"
	if res.Fatal != nil {
		note = "fatal " + res.Fatal.Code.ID()
	}
	end(note)
	span.WithExtra("class_mode", s.opts.ClassMode.String()).End(note)
	return res
}

func (s *session) finish(res *Result) {
	if s.timer != nil {
		report := s.timer.Report()
		res.Timing = &report
		appendTimingDiagnostic(s.bag, s.file.ID, timingPayload{
			Kind:    "file",
			Path:    s.file.Path,
			TotalMS: report.TotalMS,
			Phases:  report.Phases,
		})
	}
	s.bag.Sort()

	status := StatusDone
	if res.Failed() {
		status = StatusError
	}
	emit(s.opts.Progress, s.file.Path, StageValidate, status, time.Since(s.started))
}
