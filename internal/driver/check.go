package driver

import (
	"context"
	"fmt"

	"lcc/internal/source"
)

// CheckFile loads path and runs the scanner and the validator over it.
// I/O problems come back as errors; source problems as diagnostics.
func CheckFile(ctx context.Context, path string, opts Options) (*Result, error) {
	fs := source.NewFileSet()
	id, err := load(fs, path, opts)
	if err != nil {
		return nil, err
	}
	return newSession(fs, id, opts).run(ctx)
}

// CheckSource checks in-memory content registered under name.
func CheckSource(ctx context.Context, name string, content []byte, opts Options) (*Result, error) {
	fs := source.NewFileSet()
	normalized, flags := source.Normalize(content, source.LoadOptions{NormalizeNFC: opts.NormalizeNFC})
	id := fs.Add(name, normalized, flags|source.FileVirtual)
	return newSession(fs, id, opts).run(ctx)
}

// ScanFile runs only the span scanner; Decls stays empty.
func ScanFile(ctx context.Context, path string, opts Options) (*Result, error) {
	fs := source.NewFileSet()
	id, err := load(fs, path, opts)
	if err != nil {
		return nil, err
	}
	s := newSession(fs, id, opts)
	s.scanOnly = true
	return s.run(ctx)
}

func load(fs *source.FileSet, path string, opts Options) (source.FileID, error) {
	id, err := fs.LoadWithOptions(path, source.LoadOptions{NormalizeNFC: opts.NormalizeNFC})
	if err != nil {
		return 0, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return id, nil
}
