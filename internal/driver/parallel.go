package driver

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"lcc/internal/diag"
	"lcc/internal/observ"
	"lcc/internal/source"
	"lcc/internal/trace"
)

// SourceExt is the extension of lcc source files.
const SourceExt = ".lc"

// DirResult holds per-file results in path order.
type DirResult struct {
	FileSet *source.FileSet
	Files   []*Result
	Timing  *observ.Report
}

// Failed reports whether any file failed.
func (r *DirResult) Failed() bool {
	for _, f := range r.Files {
		if f.Failed() {
			return true
		}
	}
	return false
}

// ListFiles returns the sorted *.lc files under dir.
func ListFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, SourceExt) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

// CheckDir checks every *.lc file under dir with at most jobs workers
// (GOMAXPROCS when jobs <= 0). Files are loaded up front so the FileSet is
// read-only while workers run. Files that fail to load get an IO4001
// diagnostic instead of an error.
func CheckDir(ctx context.Context, dir string, opts Options, jobs int) (*DirResult, error) {
	ctx, span := trace.Start(ctx, trace.ScopeDriver, "check_dir")
	defer span.End("")

	files, err := ListFiles(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}
	span.WithExtra("files", fmt.Sprint(len(files)))

	fileSet := source.NewFileSetWithBase(dir)
	out := &DirResult{FileSet: fileSet, Files: make([]*Result, len(files))}
	if len(files) == 0 {
		return out, nil
	}

	for _, path := range files {
		emit(opts.Progress, path, StageLoad, StatusQueued, 0)
	}

	// Предзагрузка: Add не потокобезопасен
	ids := make([]source.FileID, len(files))
	loadErrs := make([]error, len(files))
	for i, path := range files {
		ids[i], loadErrs[i] = fileSet.LoadWithOptions(path, source.LoadOptions{NormalizeNFC: opts.NormalizeNFC})
		if loadErrs[i] != nil {
			// пустой виртуальный файл, чтобы у диагностики был путь
			ids[i] = fileSet.Add(path, nil, source.FileVirtual)
		}
	}

	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if loadErrs[i] != nil {
				out.Files[i] = loadFailure(fileSet, ids[i], opts, loadErrs[i])
				emit(opts.Progress, files[i], StageLoad, StatusError, 0)
				return nil
			}
			// индекс i уникален для горутины, мьютекс не нужен
			res, err := newSession(fileSet, ids[i], opts).run(gctx)
			if err != nil {
				return err
			}
			out.Files[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return out, err
	}

	if opts.EnableTimings {
		reports := make([]observ.Report, 0, len(out.Files))
		for _, f := range out.Files {
			if f.Timing != nil {
				reports = append(reports, *f.Timing)
			}
		}
		merged := observ.Merge(reports...)
		out.Timing = &merged
	}
	return out, nil
}

func loadFailure(fs *source.FileSet, id source.FileID, opts Options, err error) *Result {
	bag := diag.NewBag(opts.maxDiagnostics())
	bag.Add(&diag.Diagnostic{
		Severity: diag.SevError,
		Code:     diag.IOLoadFileError,
		Message:  "failed to load file: " + err.Error(),
		Primary:  source.Span{File: id},
		Whole:    true,
	})
	return &Result{FileSet: fs, File: fs.Get(id), Bag: bag}
}
