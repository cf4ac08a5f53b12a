package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"lcc/internal/diag"
	"lcc/internal/source"
)

// TestPathModes проверяет различные режимы форматирования путей
func TestPathModes(t *testing.T) {
	fs := source.NewFileSet()
	content := []byte("func a(): int\n print(\"oops\nendfunc\n")
	fileID := fs.AddVirtual("/home/user/project/src/test.lc", content)
	fs.SetBaseDir("/home/user/project")

	diags := []*diag.Diagnostic{
		diag.NewFatal(diag.LexUnterminatedString, source.Span{File: fileID, Start: 21, End: 22}, "unterminated string"),
	}

	tests := []struct {
		name     string
		mode     PathMode
		contains string
	}{
		{name: "Absolute path", mode: PathModeAbsolute, contains: "/home/user/project/src/test.lc:2:8:"},
		{name: "Relative path", mode: PathModeRelative, contains: "src/test.lc:2:8:"},
		{name: "Basename only", mode: PathModeBasename, contains: "test.lc:2:8:"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Pretty(&buf, diags, fs, PrettyOpts{Context: 1, PathMode: tt.mode})
			output := buf.String()

			if !strings.Contains(output, tt.contains) {
				t.Errorf("Expected output to contain %q, got:\n%s", tt.contains, output)
			}
			if !strings.Contains(output, "FATAL LEX1002: unterminated string") {
				t.Errorf("Expected header in output, got:\n%s", output)
			}
		})
	}
}

// TestPathModeAuto проверяет авто-режим выбора пути
func TestPathModeAuto(t *testing.T) {
	fs := source.NewFileSet()

	tests := []struct {
		name     string
		path     string
		expected string
	}{
		{name: "Short path - as is", path: "test.lc", expected: "test.lc:1:1"},
		{name: "Long absolute path - basename", path: "/very/long/absolute/path/to/some/nested/directory/file.lc", expected: "file.lc:1:1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fileID := fs.AddVirtual(tt.path, []byte("endfunc\n"))
			diags := []*diag.Diagnostic{
				diag.NewFatal(diag.SynStrayEndfunc, source.Span{File: fileID, Start: 0, End: 7}, "endfunc without matching body"),
			}

			var buf bytes.Buffer
			Pretty(&buf, diags, fs, PrettyOpts{PathMode: PathModeAuto})
			output := buf.String()

			if !strings.HasPrefix(output, tt.expected) {
				t.Errorf("Expected output to start with %q, got:\n%s", tt.expected, output)
			}
		})
	}
}

func TestPrettySnippetAndCaret(t *testing.T) {
	fs := source.NewFileSet()
	content := []byte("func a(): int\nendfunc\nfunc a(): int\nendfunc\n")
	fileID := fs.AddVirtual("dup.lc", content)

	d := diag.NewError(diag.SemaDuplicateFunction, source.Span{File: fileID, Start: 27, End: 28}, "duplicate function declaration 'a'").
		WithNote(source.Span{File: fileID, Start: 5, End: 6}, "previous declaration here")

	var buf bytes.Buffer
	Pretty(&buf, []*diag.Diagnostic{d}, fs, PrettyOpts{Context: 1, PathMode: PathModeBasename, ShowNotes: true})

	want := strings.Join([]string{
		"dup.lc:3:6: ERROR SEM3002: duplicate function declaration 'a'",
		"2 | endfunc",
		"3 | func a(): int",
		"  |      ^",
		"  note: dup.lc:1:6: previous declaration here",
		"",
	}, "\n")
	if got := buf.String(); got != want {
		t.Fatalf("unexpected output:\n%s\nwant:\n%s", got, want)
	}
}

func TestPrettyUnderlineWidth(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("w.lc", []byte("\"日本\" func"))

	d := diag.NewError(diag.SynMissingParamList, source.Span{File: fileID, Start: 9, End: 13}, "missing parameter list")
	var buf bytes.Buffer
	Pretty(&buf, []*diag.Diagnostic{d}, fs, PrettyOpts{PathMode: PathModeBasename})

	lines := strings.Split(buf.String(), "\n")
	if len(lines) < 3 {
		t.Fatalf("expected snippet, got:\n%s", buf.String())
	}
	// `"日本" ` занимает 7 колонок на экране
	if lines[2] != "  |        ^~~~" {
		t.Fatalf("unexpected caret line %q", lines[2])
	}
}

func TestPrettyWholeFile(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("cls.lc", []byte("class A\n"))

	d := diag.NewFileFatal(diag.SynIncompleteClassParity, fileID, "incomplete class definition")
	var buf bytes.Buffer
	Pretty(&buf, []*diag.Diagnostic{d}, fs, PrettyOpts{Context: 2, PathMode: PathModeBasename})

	want := "cls.lc: FATAL SYN2013: incomplete class definition\n"
	if got := buf.String(); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestPrettyNotesHidden(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("n.lc", []byte("func f(): int\n func g(): int\n endfunc\nendfunc\n"))
	d := diag.NewError(diag.SynNestedFunc, source.Span{File: fileID, Start: 15, End: 19}, "illegal nested function").
		WithNote(source.Span{File: fileID, Start: 0, End: 4}, "enclosing function starts here")

	var buf bytes.Buffer
	Pretty(&buf, []*diag.Diagnostic{d}, fs, PrettyOpts{PathMode: PathModeBasename})
	if strings.Contains(buf.String(), "note:") {
		t.Fatalf("notes must be hidden without ShowNotes:\n%s", buf.String())
	}
}

func TestPrettyColor(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("c.lc", []byte("endfunc"))
	d := diag.NewFatal(diag.SynStrayEndfunc, source.Span{File: fileID, Start: 0, End: 7}, "endfunc without matching body")

	var plain, colored bytes.Buffer
	Pretty(&plain, []*diag.Diagnostic{d}, fs, PrettyOpts{PathMode: PathModeBasename})
	Pretty(&colored, []*diag.Diagnostic{d}, fs, PrettyOpts{Color: true, PathMode: PathModeBasename})

	if strings.Contains(plain.String(), "\x1b[") {
		t.Fatalf("plain output contains escape codes: %q", plain.String())
	}
	if !strings.Contains(colored.String(), "\x1b[") {
		t.Fatalf("colored output has no escape codes: %q", colored.String())
	}
}
