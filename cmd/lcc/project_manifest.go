package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"lcc/internal/driver"
	"lcc/internal/parser"
)

const manifestName = "lcc.toml"

type projectManifest struct {
	Path   string
	Root   string
	Config projectConfig
}

type projectConfig struct {
	Package packageConfig `toml:"package"`
	Check   checkConfig   `toml:"check"`
}

type packageConfig struct {
	Name string `toml:"name"`
}

type checkConfig struct {
	ClassMode      string `toml:"class_mode"`
	MaxDiagnostics int    `toml:"max_diagnostics"`
	NormalizeNFC   bool   `toml:"normalize_nfc"`
	Jobs           int    `toml:"jobs"`
}

// findManifest walks up from start (a file or a directory) looking for lcc.toml.
func findManifest(start string) (string, bool, error) {
	if start == "" {
		start = "."
	}
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	if st, err := os.Stat(dir); err == nil && !st.IsDir() {
		dir = filepath.Dir(dir)
	}
	for {
		candidate := filepath.Join(dir, manifestName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

func loadProjectManifest(path string) (*projectManifest, error) {
	cfg, err := loadProjectConfig(path)
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return &projectManifest{
		Path:   abs,
		Root:   filepath.Dir(abs),
		Config: cfg,
	}, nil
}

func loadProjectConfig(path string) (projectConfig, error) {
	var cfg projectConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return projectConfig{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("package") {
		return projectConfig{}, fmt.Errorf("%s: missing [package]", path)
	}
	if !meta.IsDefined("package", "name") || strings.TrimSpace(cfg.Package.Name) == "" {
		return projectConfig{}, fmt.Errorf("%s: missing [package].name", path)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return projectConfig{}, fmt.Errorf("%s: unknown key %s", path, undecoded[0].String())
	}
	if _, err := parser.ParseClassMode(cfg.Check.ClassMode); err != nil {
		return projectConfig{}, fmt.Errorf("%s: [check].class_mode: %w", path, err)
	}
	if cfg.Check.MaxDiagnostics < 0 {
		return projectConfig{}, fmt.Errorf("%s: [check].max_diagnostics must not be negative", path)
	}
	if cfg.Check.Jobs < 0 {
		return projectConfig{}, fmt.Errorf("%s: [check].jobs must not be negative", path)
	}
	return cfg, nil
}

// resolveManifest returns the manifest named by --config, or the one found
// above target, or nil when there is none.
func resolveManifest(cmd *cobra.Command, target string) (*projectManifest, error) {
	explicit, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}
	if explicit != "" {
		return loadProjectManifest(explicit)
	}
	path, ok, err := findManifest(target)
	if err != nil || !ok {
		return nil, err
	}
	return loadProjectManifest(path)
}

// checkOptions merges the manifest with flags; explicitly set flags win.
func checkOptions(cmd *cobra.Command, manifest *projectManifest) (driver.Options, int, error) {
	var opts driver.Options
	jobs := 0
	classMode := ""
	if manifest != nil {
		opts.MaxDiagnostics = manifest.Config.Check.MaxDiagnostics
		opts.NormalizeNFC = manifest.Config.Check.NormalizeNFC
		jobs = manifest.Config.Check.Jobs
		classMode = manifest.Config.Check.ClassMode
	}

	root := cmd.Root().PersistentFlags()
	if manifest == nil || root.Changed("max-diagnostics") {
		v, err := root.GetInt("max-diagnostics")
		if err != nil {
			return opts, 0, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
		}
		opts.MaxDiagnostics = v
	}
	timings, err := root.GetBool("timings")
	if err != nil {
		return opts, 0, fmt.Errorf("failed to get timings flag: %w", err)
	}
	opts.EnableTimings = timings

	flags := cmd.Flags()
	if flags.Lookup("class-mode") != nil && (manifest == nil || flags.Changed("class-mode")) {
		if classMode, err = flags.GetString("class-mode"); err != nil {
			return opts, 0, fmt.Errorf("failed to get class-mode flag: %w", err)
		}
	}
	if opts.ClassMode, err = parser.ParseClassMode(classMode); err != nil {
		return opts, 0, err
	}
	if flags.Lookup("jobs") != nil && (manifest == nil || flags.Changed("jobs")) {
		if jobs, err = flags.GetInt("jobs"); err != nil {
			return opts, 0, fmt.Errorf("failed to get jobs flag: %w", err)
		}
	}
	if flags.Lookup("nfc") != nil && flags.Changed("nfc") {
		if opts.NormalizeNFC, err = flags.GetBool("nfc"); err != nil {
			return opts, 0, fmt.Errorf("failed to get nfc flag: %w", err)
		}
	}
	return opts, jobs, nil
}
