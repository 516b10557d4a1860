package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	_ "setlint/internal/rules/duplicatevalue"
	"setlint/internal/version"
)

// errFindings завершает процесс с кодом 1 без сообщения: диагностики уже
// напечатаны.
var errFindings = errors.New("diagnostics reported")

var rootCmd = &cobra.Command{
	Use:   "setlint",
	Short: "Duplicate set item linter for Python",
	Long: `setlint reports set literals that contain the same item twice, like {1, 1},
and can rewrite them so that only the first occurrence of every item is kept.`,
	SilenceUsage:       true,
	SilenceErrors:      true,
	PersistentPreRunE:  setupRun,
	PersistentPostRunE: func(*cobra.Command, []string) error { return finishRun() },
}

func init() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(fixCmd)
	rootCmd.AddCommand(rulesCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to show")
	rootCmd.PersistentFlags().String("config", "", "path to setlint.toml (default: search upwards from the target)")
	rootCmd.PersistentFlags().String("log-file", "", "write a structured log to this file")
	rootCmd.PersistentFlags().Bool("verbose", false, "log debug events")
	rootCmd.PersistentFlags().String("cpu-profile", "", "write a CPU profile to this file")
	rootCmd.PersistentFlags().String("mem-profile", "", "write a heap profile to this file on exit")
	rootCmd.PersistentFlags().String("runtime-trace", "", "write a runtime trace to this file")
}

// main executes the root command. Exit codes: 0 clean, 1 diagnostics
// reported, 2 usage or I/O failure.
func main() {
	err := rootCmd.Execute()
	if finishErr := finishRun(); finishErr != nil {
		fmt.Fprintf(os.Stderr, "setlint: %v\n", finishErr)
	}
	if err != nil {
		os.Exit(exitCode(err))
	}
}

func exitCode(err error) int {
	if errors.Is(err, errFindings) {
		return 1
	}
	fmt.Fprintf(os.Stderr, "setlint: %v\n", err)
	return 2
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
