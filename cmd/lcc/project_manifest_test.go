package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"lcc/internal/parser"
)

func newTestCommand(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	root := &cobra.Command{Use: "lcc"}
	registerPersistentFlags(root)
	child := &cobra.Command{Use: "check", RunE: func(*cobra.Command, []string) error { return nil }}
	child.Flags().String("class-mode", "pair", "")
	child.Flags().Int("jobs", 0, "")
	child.Flags().Bool("nfc", false, "")
	root.AddCommand(child)
	if err := child.ParseFlags(args); err != nil {
		t.Fatalf("ParseFlags(%v): %v", args, err)
	}
	return child
}

func writeManifest(t *testing.T, dir, data string) string {
	t.Helper()
	path := filepath.Join(dir, manifestName)
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("write %s: %v", manifestName, err)
	}
	return path
}

const parityManifest = `[package]
name = "demo"

[check]
class_mode = "parity"
max_diagnostics = 7
normalize_nfc = true
jobs = 3
`

func TestFindManifestWalksUp(t *testing.T) {
	root := t.TempDir()
	want := writeManifest(t, root, parityManifest)
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	src := filepath.Join(nested, "x.lc")
	if err := os.WriteFile(src, []byte("func f(): int\nendfunc\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	for _, start := range []string{nested, src} {
		got, ok, err := findManifest(start)
		if err != nil || !ok {
			t.Fatalf("findManifest(%q) = %q, %v, %v", start, got, ok, err)
		}
		if got != want {
			t.Fatalf("findManifest(%q) = %q, want %q", start, got, want)
		}
	}
}

func TestFindManifestMissing(t *testing.T) {
	_, ok, err := findManifest(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// temp dirs normally have no lcc.toml above them
	if ok {
		t.Skip("lcc.toml found above the temp dir")
	}
}

func TestLoadProjectConfig(t *testing.T) {
	path := writeManifest(t, t.TempDir(), parityManifest)
	cfg, err := loadProjectConfig(path)
	if err != nil {
		t.Fatalf("loadProjectConfig: %v", err)
	}
	if cfg.Package.Name != "demo" {
		t.Fatalf("name = %q, want demo", cfg.Package.Name)
	}
	want := checkConfig{ClassMode: "parity", MaxDiagnostics: 7, NormalizeNFC: true, Jobs: 3}
	if cfg.Check != want {
		t.Fatalf("check = %+v, want %+v", cfg.Check, want)
	}
}

func TestLoadProjectConfigErrors(t *testing.T) {
	cases := []struct {
		name string
		data string
		want string
	}{
		{"no package", "[check]\njobs = 1\n", "missing [package]"},
		{"no name", "[package]\n", "missing [package].name"},
		{"blank name", "[package]\nname = \"  \"\n", "missing [package].name"},
		{"bad mode", "[package]\nname = \"x\"\n[check]\nclass_mode = \"nested\"\n", "class_mode"},
		{"negative jobs", "[package]\nname = \"x\"\n[check]\njobs = -1\n", "jobs"},
		{"unknown key", "[package]\nname = \"x\"\n[check]\nstrict = true\n", "unknown key check.strict"},
		{"bad toml", "[package\n", "failed to parse TOML"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeManifest(t, t.TempDir(), tc.data)
			_, err := loadProjectConfig(path)
			if err == nil {
				t.Fatalf("expected error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("error %q does not mention %q", err, tc.want)
			}
		})
	}
}

func TestCheckOptionsFromManifest(t *testing.T) {
	path := writeManifest(t, t.TempDir(), parityManifest)
	manifest, err := loadProjectManifest(path)
	if err != nil {
		t.Fatal(err)
	}

	opts, jobs, err := checkOptions(newTestCommand(t), manifest)
	if err != nil {
		t.Fatalf("checkOptions: %v", err)
	}
	if opts.ClassMode != parser.ClassModeParity || opts.MaxDiagnostics != 7 || !opts.NormalizeNFC || jobs != 3 {
		t.Fatalf("unexpected options %+v jobs=%d", opts, jobs)
	}
}

func TestCheckOptionsFlagsOverrideManifest(t *testing.T) {
	path := writeManifest(t, t.TempDir(), parityManifest)
	manifest, err := loadProjectManifest(path)
	if err != nil {
		t.Fatal(err)
	}

	cmd := newTestCommand(t, "--class-mode=pair", "--jobs=1", "--max-diagnostics=50", "--timings")
	opts, jobs, err := checkOptions(cmd, manifest)
	if err != nil {
		t.Fatalf("checkOptions: %v", err)
	}
	if opts.ClassMode != parser.ClassModePair {
		t.Fatalf("class mode = %v, want pair", opts.ClassMode)
	}
	if opts.MaxDiagnostics != 50 || jobs != 1 || !opts.EnableTimings {
		t.Fatalf("unexpected options %+v jobs=%d", opts, jobs)
	}
	// не переопределён флагом
	if !opts.NormalizeNFC {
		t.Fatalf("normalize_nfc from manifest was lost")
	}
}

func TestCheckOptionsWithoutManifest(t *testing.T) {
	opts, jobs, err := checkOptions(newTestCommand(t, "--class-mode=parity"), nil)
	if err != nil {
		t.Fatalf("checkOptions: %v", err)
	}
	if opts.ClassMode != parser.ClassModeParity || opts.MaxDiagnostics != 100 || jobs != 0 {
		t.Fatalf("unexpected options %+v jobs=%d", opts, jobs)
	}

	if _, _, err := checkOptions(newTestCommand(t, "--class-mode=odd"), nil); err == nil {
		t.Fatalf("expected error for unknown class mode")
	}
}

func TestResolveManifestExplicitConfig(t *testing.T) {
	path := writeManifest(t, t.TempDir(), parityManifest)
	cmd := newTestCommand(t, "--config="+path)
	manifest, err := resolveManifest(cmd, t.TempDir())
	if err != nil {
		t.Fatalf("resolveManifest: %v", err)
	}
	if manifest == nil || manifest.Config.Package.Name != "demo" {
		t.Fatalf("unexpected manifest %+v", manifest)
	}
}

func TestRunInit(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "proj")
	cmd := newTestCommand(t)
	var out bytes.Buffer
	cmd.SetOut(&out)

	if err := runInit(cmd, []string{dir}); err != nil {
		t.Fatalf("runInit: %v", err)
	}
	cfg, err := loadProjectConfig(filepath.Join(dir, manifestName))
	if err != nil {
		t.Fatalf("generated manifest does not load: %v", err)
	}
	if cfg.Package.Name != "proj" || cfg.Check.ClassMode != "pair" {
		t.Fatalf("unexpected generated config %+v", cfg)
	}
	if _, err := os.Stat(filepath.Join(dir, "hello.lc")); err != nil {
		t.Fatalf("hello.lc not written: %v", err)
	}
	if !strings.Contains(out.String(), "Initialized lcc project") {
		t.Fatalf("unexpected output %q", out.String())
	}

	if err := runInit(cmd, []string{dir}); err == nil || !strings.Contains(err.Error(), "already initialized") {
		t.Fatalf("second init should refuse, got %v", err)
	}
}
