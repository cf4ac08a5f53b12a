package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Initialize an lcc project",
	Long: `Initialize an lcc project by writing a default manifest (lcc.toml) and a
sample source file (hello.lc). If [dir] is omitted, the current directory is
used; a missing directory is created.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

// runInit refuses to overwrite an existing lcc.toml; an existing hello.lc is kept.
func runInit(cmd *cobra.Command, args []string) error {
	target := "."
	if len(args) == 1 {
		target = args[0]
	}
	target, err := filepath.Abs(target)
	if err != nil {
		return err
	}

	// Ensure directory exists
	if st, err := os.Stat(target); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return err
		}
		if err = os.MkdirAll(target, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %q: %w", target, err)
		}
	} else if !st.IsDir() {
		return fmt.Errorf("%q is not a directory", target)
	}

	name := strings.TrimSpace(filepath.Base(target))
	if name == "" || name == "." || name == string(filepath.Separator) {
		name = "lcc-project"
	}

	manifestPath := filepath.Join(target, manifestName)
	if _, err := os.Stat(manifestPath); err == nil {
		return fmt.Errorf("project already initialized: %s exists", manifestPath)
	}
	if err := os.WriteFile(manifestPath, []byte(defaultManifest(name)), 0o600); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}

	samplePath := filepath.Join(target, "hello.lc")
	createdSample := false
	if _, err := os.Stat(samplePath); errors.Is(err, os.ErrNotExist) {
		if err := os.WriteFile(samplePath, []byte(defaultSample), 0o600); err != nil {
			return fmt.Errorf("failed to write hello.lc: %w", err)
		}
		createdSample = true
	}

	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")
	if quiet {
		return nil
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Initialized lcc project in %s\n", target)
	fmt.Fprintf(out, "  - %s\n", manifestName)
	if createdSample {
		fmt.Fprintln(out, "  - hello.lc")
	} else {
		fmt.Fprintln(out, "  - hello.lc (existing)")
	}
	return nil
}

func defaultManifest(name string) string {
	return fmt.Sprintf(`# lcc project manifest
[package]
name = %q

[check]
# pair: class/endclass are paired like func/endfunc
# parity: only an even number of "class" is required
class_mode = "pair"
max_diagnostics = 100
normalize_nfc = false
# 0 = GOMAXPROCS
jobs = 0
`, name)
}

const defaultSample = `// hello.lc
func greet(str who = "world"): str
 return "hello, " + who
endfunc
`
