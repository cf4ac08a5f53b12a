package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"lcc/internal/diagfmt"
	"lcc/internal/driver"
)

var declsCmd = &cobra.Command{
	Use:   "decls [flags] file.lc",
	Short: "Dump the accepted declarations of an lcc source file",
	Long: `Decls validates an lcc source file and writes its accepted functions, classes
and methods. The msgpack format is meant for tools that consume the declarations.`,
	Args: cobra.ExactArgs(1),
	RunE: runDecls,
}

func init() {
	declsCmd.Flags().String("format", "pretty", "output format (pretty|json|yaml|msgpack)")
	declsCmd.Flags().StringP("output", "o", "", "write to file instead of stdout")
	declsCmd.Flags().String("class-mode", "pair", "class structure check (pair|parity)")
	declsCmd.Flags().Bool("nfc", false, "apply Unicode NFC normalization on load")
}

func runDecls(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return fmt.Errorf("failed to get output flag: %w", err)
	}

	var write func(io.Writer) error
	switch format {
	case "pretty", "json", "yaml", "msgpack":
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	if format == "msgpack" && outputPath == "" && isTerminal(os.Stdout) {
		return errors.New("refusing to write msgpack to a terminal (use -o)")
	}

	manifest, err := resolveManifest(cmd, filePath)
	if err != nil {
		return err
	}
	opts, _, err := checkOptions(cmd, manifest)
	if err != nil {
		return err
	}

	result, err := driver.CheckFile(cmd.Context(), filePath, opts)
	if err != nil {
		return err
	}

	if diags := withoutTimings(result.Diagnostics()); len(diags) > 0 {
		diagfmt.Pretty(os.Stderr, diags, result.FileSet, diagfmt.PrettyOpts{
			Color:   useColor(cmd, os.Stderr),
			Context: 1,
		})
	}
	if result.Fatal != nil {
		return errFailed
	}

	switch format {
	case "pretty":
		write = func(w io.Writer) error { return diagfmt.FormatDeclsPretty(w, result.Decls, result.File) }
	case "json":
		write = func(w io.Writer) error { return diagfmt.FormatDeclsJSON(w, result.Decls, result.File) }
	case "yaml":
		write = func(w io.Writer) error { return diagfmt.FormatDeclsYAML(w, result.Decls, result.File) }
	case "msgpack":
		write = func(w io.Writer) error { return diagfmt.FormatDeclsMsgpack(w, result.Decls, result.File) }
	}

	if outputPath == "" {
		err = write(cmd.OutOrStdout())
	} else {
		err = writeFile(outputPath, write)
	}
	if err != nil {
		return fmt.Errorf("failed to write %s output: %w", format, err)
	}
	if result.Failed() {
		return errFailed
	}
	return nil
}

func writeFile(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return write(f)
}
