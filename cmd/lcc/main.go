package main

import (
	"errors"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"lcc/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "lcc",
	Short: "lcc source checker",
	Long:  `lcc finds the inert spans and validates the func/class declarations of .lc source files`,
	// диагностики уже напечатаны, cobra не должна повторять ошибку
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cleanup, err := setupProfiling(cmd)
		if err != nil {
			return err
		}
		profCleanup = cleanup
		if traceCleanup, err = setupTracing(cmd); err != nil {
			return err
		}
		return nil
	},
}

// errFailed is returned when diagnostics have been printed and the process
// must exit non-zero without another message.
var errFailed = errors.New("check failed")

// main registers subcommands and persistent flags and executes the root command.
// Any error exits with status 1.
func main() {
	// Устанавливаем версию для автоматического флага --version
	rootCmd.Version = version.Current().Version

	// Добавляем команды
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(spansCmd)
	rootCmd.AddCommand(declsCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	registerPersistentFlags(rootCmd)

	rootCmd.SilenceErrors = true
	err := rootCmd.Execute()
	runTraceCleanup()
	runProfCleanup()
	if err != nil {
		if !errors.Is(err, errFailed) {
			os.Stderr.WriteString("lcc: " + err.Error() + "\n")
		}
		os.Exit(1)
	}
}

func registerPersistentFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.String("color", "auto", "colorize output (auto|on|off)")
	flags.Bool("quiet", false, "suppress non-essential output")
	flags.Bool("timings", false, "show timing information")
	flags.Int("max-diagnostics", 100, "maximum number of diagnostics to show")
	flags.String("config", "", "path to lcc.toml (default: search upwards from the target)")
	flags.String("trace", "", "trace output file (- for stderr)")
	flags.String("trace-level", "off", "trace level (off|driver|file|phase)")
	flags.String("cpu-profile", "", "write a CPU profile to file")
	flags.String("mem-profile", "", "write a heap profile to file on exit")
	flags.String("runtime-trace", "", "write a Go runtime trace to file")
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// useColor resolves the --color flag against the given stream.
func useColor(cmd *cobra.Command, f *os.File) bool {
	colorFlag, _ := cmd.Root().PersistentFlags().GetString("color")
	switch colorFlag {
	case "on":
		return true
	case "off":
		return false
	default:
		return isTerminal(f)
	}
}
