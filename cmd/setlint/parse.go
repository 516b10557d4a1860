package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"setlint/internal/diag"
	"setlint/internal/diagfmt"
	"setlint/internal/driver"
	"setlint/internal/source"
)

var parseCmd = &cobra.Command{
	Use:    "parse [flags] file.py",
	Short:  "Dump the syntax tree of a Python file",
	Args:   cobra.ExactArgs(1),
	Hidden: true,
	RunE:   runParse,
}

func init() {
	parseCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runParse(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	result, err := driver.Parse(args[0], maxDiagnostics)
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}
	if err := printDumpDiagnostics(cmd, result.Bag, result.FileSet); err != nil {
		return err
	}

	switch format {
	case "pretty":
		return diagfmt.FormatASTPretty(cmd.OutOrStdout(), result.Builder, result.FileID, result.FileSet)
	case "json":
		return diagfmt.FormatASTJSON(cmd.OutOrStdout(), result.Builder, result.FileID, result.FileSet)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// printDumpDiagnostics prints lexer/parser diagnostics of the dump commands
// to stderr.
func printDumpDiagnostics(cmd *cobra.Command, bag *diag.Bag, fs *source.FileSet) error {
	if !bag.HasErrors() && !bag.HasWarnings() {
		return nil
	}
	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return err
	}
	colored, err := useColor(colorFlag, os.Stderr)
	if err != nil {
		return err
	}
	diagfmt.Pretty(os.Stderr, bag, fs, diagfmt.PrettyOpts{Color: colored, Context: 2})
	return nil
}
