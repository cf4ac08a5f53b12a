package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"lcc/internal/diagfmt"
	"lcc/internal/driver"
)

var spansCmd = &cobra.Command{
	Use:   "spans [flags] file.lc",
	Short: "Dump the inert spans of an lcc source file",
	Long:  `Spans lists the strings and comments of an lcc source file, in source order`,
	Args:  cobra.ExactArgs(1),
	RunE:  runSpans,
}

func init() {
	spansCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	spansCmd.Flags().Bool("nfc", false, "apply Unicode NFC normalization on load")
}

func runSpans(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}

	manifest, err := resolveManifest(cmd, filePath)
	if err != nil {
		return err
	}
	opts, _, err := checkOptions(cmd, manifest)
	if err != nil {
		return err
	}

	result, err := driver.ScanFile(cmd.Context(), filePath, opts)
	if err != nil {
		return fmt.Errorf("scanning failed: %w", err)
	}

	// Выводим диагностику в stderr, если есть
	if result.Failed() {
		diagfmt.Pretty(os.Stderr, withoutTimings(result.Diagnostics()), result.FileSet, diagfmt.PrettyOpts{
			Color:   useColor(cmd, os.Stderr),
			Context: 1,
		})
	}
	if result.Fatal != nil {
		return errFailed
	}

	switch format {
	case "pretty":
		return diagfmt.FormatSpansPretty(cmd.OutOrStdout(), result.Spans, result.File)
	case "json":
		return diagfmt.FormatSpansJSON(cmd.OutOrStdout(), result.Spans, result.File)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
