package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"lcc/internal/diag"
	"lcc/internal/diagfmt"
	"lcc/internal/driver"
	"lcc/internal/observ"
	"lcc/internal/source"
	"lcc/internal/version"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] <file.lc|directory>",
	Short: "Check an lcc source file or directory",
	Long: `Check finds the inert spans (strings and comments) of lcc source files and
validates their func/endfunc and class/endclass declarations. A directory is
checked file by file in parallel. The exit status is non-zero when any file has
a warning, an error or a fatal diagnostic.`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().String("format", "pretty", "output format (pretty|short|json|sarif)")
	checkCmd.Flags().String("class-mode", "pair", "class structure check (pair|parity)")
	checkCmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	checkCmd.Flags().Bool("nfc", false, "apply Unicode NFC normalization on load")
	checkCmd.Flags().Bool("fullpath", false, "emit absolute file paths in output")
	checkCmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
	checkCmd.Flags().String("ui", "auto", "progress UI for directories (auto|on|off)")
}

// checkOutput is everything the formatters need, for a file or a directory.
type checkOutput struct {
	fs     *source.FileSet
	diags  []*diag.Diagnostic
	files  int
	failed bool
	timing *observ.Report
}

// runCheck executes the "check" command and returns errFailed when the
// diagnostics make the check fail.
func runCheck(cmd *cobra.Command, args []string) error {
	target := args[0]

	// Получаем флаги
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	format = strings.ToLower(format)
	switch format {
	case "pretty", "short", "json", "sarif":
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	withNotes, err := cmd.Flags().GetBool("with-notes")
	if err != nil {
		return fmt.Errorf("failed to get with-notes flag: %w", err)
	}

	fullPath, err := cmd.Flags().GetBool("fullpath")
	if err != nil {
		return fmt.Errorf("failed to get fullpath flag: %w", err)
	}

	uiFlag, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiFlag)
	if err != nil {
		return err
	}

	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}

	st, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", target, err)
	}

	manifest, err := resolveManifest(cmd, target)
	if err != nil {
		return err
	}
	opts, jobs, err := checkOptions(cmd, manifest)
	if err != nil {
		return err
	}

	var out checkOutput
	pathMode := diagfmt.PathModeAuto
	if st.IsDir() {
		pathMode = diagfmt.PathModeRelative
		withUI := (format == "pretty" || format == "short") && !quiet && shouldUseTUI(mode)
		out, err = checkDirectory(cmd, target, opts, jobs, withUI)
	} else {
		out, err = checkSingleFile(cmd, target, opts)
	}
	if err != nil {
		return err
	}
	if fullPath {
		pathMode = diagfmt.PathModeAbsolute
	}

	stdout := cmd.OutOrStdout()
	switch format {
	case "pretty":
		diagfmt.Pretty(stdout, withoutTimings(out.diags), out.fs, diagfmt.PrettyOpts{
			Color:     useColor(cmd, os.Stdout),
			Context:   1,
			PathMode:  pathMode,
			ShowNotes: withNotes,
		})
	case "short":
		if text := diag.FormatShortDiagnostics(withoutTimings(out.diags), out.fs, withNotes, pathMode.String()); text != "" {
			fmt.Fprintln(stdout, text)
		}
	case "json":
		err = diagfmt.JSON(stdout, out.diags, out.fs, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         pathMode,
			IncludeNotes:     withNotes,
		})
	case "sarif":
		err = diagfmt.Sarif(stdout, out.diags, out.fs, diagfmt.SarifRunMeta{
			ToolName:       "lcc",
			ToolVersion:    version.Current().Version,
			InvocationArgs: os.Args[1:],
		})
	}
	if err != nil {
		return fmt.Errorf("failed to write %s output: %w", format, err)
	}

	if !quiet {
		errOut := cmd.ErrOrStderr()
		if out.timing != nil {
			printTimings(errOut, *out.timing)
		}
		if !out.failed && (format == "pretty" || format == "short") {
			fmt.Fprintf(errOut, "ok: %d %s checked\n", out.files, plural(out.files, "file", "files"))
		}
	}

	if out.failed {
		return errFailed
	}
	return nil
}

func checkSingleFile(cmd *cobra.Command, path string, opts driver.Options) (checkOutput, error) {
	res, err := driver.CheckFile(cmd.Context(), path, opts)
	if err != nil {
		return checkOutput{}, err
	}
	return checkOutput{
		fs:     res.FileSet,
		diags:  res.Diagnostics(),
		files:  1,
		failed: res.Failed(),
		timing: res.Timing,
	}, nil
}

func checkDirectory(cmd *cobra.Command, dir string, opts driver.Options, jobs int, withUI bool) (checkOutput, error) {
	var (
		res *driver.DirResult
		err error
	)
	if withUI {
		res, err = runCheckDirWithUI(cmd.Context(), "lcc check "+filepath.Base(dir), dir, opts, jobs)
	} else {
		res, err = driver.CheckDir(cmd.Context(), dir, opts, jobs)
	}
	if err != nil {
		return checkOutput{}, err
	}
	out := checkOutput{
		fs:     res.FileSet,
		files:  len(res.Files),
		failed: res.Failed(),
		timing: res.Timing,
	}
	for _, f := range res.Files {
		out.diags = append(out.diags, f.Diagnostics()...)
	}
	return out, nil
}

// withoutTimings drops OBS6001 entries; text formats print timings as a table instead.
func withoutTimings(diags []*diag.Diagnostic) []*diag.Diagnostic {
	out := make([]*diag.Diagnostic, 0, len(diags))
	for _, d := range diags {
		if d.Code == diag.ObsTimings {
			continue
		}
		out = append(out, d)
	}
	return out
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

func printTimings(w io.Writer, report observ.Report) {
	fmt.Fprintln(w, "timings:")
	for _, p := range report.Phases {
		fmt.Fprintf(w, "  %-12s %8.3f ms\n", p.Name, p.DurationMS)
	}
	fmt.Fprintf(w, "  %-12s %8.3f ms\n", "total", report.TotalMS)
}
