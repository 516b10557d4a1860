package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"setlint/internal/driver"
	"setlint/internal/fix"
)

var fixCmd = &cobra.Command{
	Use:   "fix [flags] [file.py|directory]...",
	Short: "Remove duplicate set items in place",
	Long: `Fix runs the checks and applies their safe fixes: every set literal with
duplicates is rewritten to keep the first occurrence of each item.`,
	RunE: runFix,
}

func init() {
	fixCmd.Flags().Bool("all", false, "apply all safe fixes")
	fixCmd.Flags().Bool("once", false, "apply the first available fix (default)")
	fixCmd.Flags().String("id", "", "apply fix with a specific identifier")
	fixCmd.Flags().Bool("dry-run", false, "report what would change without writing files")
	fixCmd.MarkFlagsMutuallyExclusive("all", "once", "id")
	addRunFlags(fixCmd)
}

// fixMode: --id важнее всего, затем --all; по умолчанию один фикс.
func fixMode(cmd *cobra.Command) (fix.ApplyMode, string) {
	flags := cmd.Flags()
	if id, _ := flags.GetString("id"); id != "" {
		return fix.ApplyModeID, id
	}
	if all, _ := flags.GetBool("all"); all {
		return fix.ApplyModeAll, ""
	}
	return fix.ApplyModeOnce, ""
}

func runFix(cmd *cobra.Command, args []string) error {
	mode, targetID := fixMode(cmd)
	dryRun, err := cmd.Flags().GetBool("dry-run")
	if err != nil {
		return err
	}

	setup, err := prepareRun(cmd, args)
	if err != nil {
		return err
	}
	// правки меняют файлы: кэш диагностик для них бесполезен
	setup.opts.Cache = nil

	res, err := driver.Check(cmd.Context(), setup.targets, setup.opts)
	if err != nil {
		return fmt.Errorf("fix: check failed: %w", err)
	}
	applied, applyErr := fix.Apply(res.FileSet, res.Diagnostics(), fix.ApplyOptions{
		Mode:     mode,
		TargetID: targetID,
		DryRun:   dryRun,
		Logger:   slog.Default(),
	})
	return handleApplyResult(cmd.OutOrStdout(), applied, applyErr, dryRun)
}

// handleApplyResult prints the applied, changed and skipped sections.
// ErrNoFixes is reported as a message, not as a failure.
func handleApplyResult(out io.Writer, res *fix.ApplyResult, applyErr error, dryRun bool) error {
	if res == nil {
		return applyErr
	}
	verb, updated := "Applied", "Updated files:"
	if dryRun {
		verb, updated = "Would apply", "Would update:"
	}

	var b strings.Builder
	if len(res.Applied) > 0 {
		fmt.Fprintf(&b, "%s %d fix(es):\n", verb, len(res.Applied))
		for _, a := range res.Applied {
			fmt.Fprintf(&b, "  %s [%s] at %s (%d edits, %s)\n",
				a.Title, a.ID, orDefault(a.PrimaryPath, "(unknown location)"), a.EditCount, a.Applicability)
		}
	}
	if len(res.FileChanges) > 0 {
		b.WriteString(updated + "\n")
		for _, ch := range res.FileChanges {
			fmt.Fprintf(&b, "  %s (%d edits)\n", ch.Path, ch.EditCount)
		}
	}
	if len(res.Skipped) > 0 {
		b.WriteString("Skipped fixes:\n")
		for _, s := range res.Skipped {
			b.WriteString("  ")
			if s.Title != "" {
				b.WriteString(s.Title + " ")
			}
			fmt.Fprintf(&b, "[%s]: %s\n", orDefault(s.ID, "(unnamed)"), s.Reason)
		}
	}

	var result error
	switch {
	case errors.Is(applyErr, fix.ErrNoFixes) && len(res.Applied) == 0:
		b.WriteString("No applicable fixes found.\n")
	case applyErr != nil:
		result = applyErr
	case len(res.Applied) == 0:
		b.WriteString("No fixes applied.\n")
	}
	if _, err := io.WriteString(out, b.String()); err != nil {
		return err
	}
	return result
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
