package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"setlint/internal/diag"
	"setlint/internal/diagfmt"
	"setlint/internal/driver"
	"setlint/internal/lint"
	"setlint/internal/observ"
	"setlint/internal/source"
	"setlint/internal/version"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] [file.py|directory]...",
	Short: "Report duplicate items in set literals",
	Long: `Check lints every *.py and *.pyi file under the given paths (the current
directory by default) and prints one diagnostic per duplicate set item.`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().String("format", "pretty", "output format (pretty|short|json|sarif)")
	checkCmd.Flags().String("path-mode", "auto", "path display mode (auto|absolute|relative|basename)")
	checkCmd.Flags().Bool("with-notes", false, "include diagnostic notes")
	checkCmd.Flags().Bool("suggest", false, "include fix suggestions")
	checkCmd.Flags().Bool("preview", false, "include before/after fix previews (implies --suggest)")
	checkCmd.Flags().String("ui", "auto", "progress UI (auto|on|off)")
	checkCmd.Flags().Bool("exit-zero", false, "exit with status 0 even when diagnostics are reported")
	addRunFlags(checkCmd)
}

// addRunFlags registers flags shared by check and fix.
func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().StringSlice("select", nil, "rule codes to enable (default: all)")
	cmd.Flags().StringSlice("ignore", nil, "rule codes to disable")
	cmd.Flags().StringSlice("exclude", nil, "paths or globs to skip (replaces lint.exclude)")
	cmd.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
	cmd.Flags().Bool("no-cache", false, "do not read or write the result cache")
	cmd.Flags().Bool("clear-cache", false, "drop cached results before running")
}

// runSetup is what check and fix need to call the driver.
type runSetup struct {
	st      *settings
	targets []string
	opts    driver.Options
}

func prepareRun(cmd *cobra.Command, args []string) (*runSetup, error) {
	targets := args
	if len(targets) == 0 {
		targets = []string{"."}
	}
	st, err := loadSettings(cmd, targets[0])
	if err != nil {
		return nil, err
	}

	rules, unknown := lint.Select(st.selected, st.ignored)
	if len(unknown) > 0 {
		return nil, fmt.Errorf("unknown rule code(s): %v", unknown)
	}
	if len(rules) == 0 {
		fmt.Fprintln(st.stderr(), "warning: no rules selected")
	}

	showTimings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return nil, fmt.Errorf("failed to get timings flag: %w", err)
	}
	opts := driver.Options{
		Rules:          rules,
		MaxDiagnostics: st.maxDiagnostics,
		Jobs:           st.v.GetInt("jobs"),
		Logger:         slog.Default(),
		Exclude:        st.cfg.Excluded,
		Timings:        showTimings,
	}
	if rules == nil {
		// пустой выбор, а не "все правила"
		opts.Rules = []*lint.Rule{}
	}

	if !st.v.GetBool("no-cache") {
		cache, cacheErr := driver.OpenDiskCache("setlint")
		if cacheErr != nil {
			slog.Warn("cache disabled", "err", cacheErr)
		} else {
			if st.v.GetBool("clear-cache") {
				if err := cache.DropAll(); err != nil {
					return nil, fmt.Errorf("failed to clear cache: %w", err)
				}
			}
			opts.Cache = cache
		}
	}
	return &runSetup{st: st, targets: targets, opts: opts}, nil
}

func runCheck(cmd *cobra.Command, args []string) error {
	setup, err := prepareRun(cmd, args)
	if err != nil {
		return err
	}
	st := setup.st

	mode, err := readUIMode(st.v.GetString("ui"))
	if err != nil {
		return err
	}

	var res *driver.CheckResult
	if !st.quiet && st.format == "pretty" && shouldUseTUI(mode) {
		res, err = runCheckWithUI(cmd.Context(), "Checking", setup.targets, setup.opts)
	} else {
		res, err = driver.Check(cmd.Context(), setup.targets, setup.opts)
	}
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}

	bag := res.Bag(st.maxDiagnostics)
	if err := renderBag(cmd.OutOrStdout(), st, res.FileSet, bag, os.Args[1:]); err != nil {
		return err
	}
	if st.format == "pretty" || st.format == "short" {
		printSummary(st.stderr(), bag)
	}
	if setup.opts.Timings {
		printTimings(st.stderr(), res)
	}

	if st.v.GetBool("exit-zero") {
		return nil
	}
	if bag.HasErrors() || bag.HasWarnings() {
		return errFindings
	}
	return nil
}

func renderBag(out io.Writer, st *settings, fs *source.FileSet, bag *diag.Bag, invocation []string) error {
	withNotes := st.v.GetBool("with-notes")
	preview := st.v.GetBool("preview")
	suggest := st.v.GetBool("suggest") || preview

	switch st.format {
	case "pretty":
		diagfmt.Pretty(out, bag, fs, diagfmt.PrettyOpts{
			Color:       st.color,
			Context:     1,
			PathMode:    st.pathMode,
			ShowNotes:   withNotes,
			ShowFixes:   suggest,
			ShowPreview: preview,
		})
		return nil
	case "short":
		return diagfmt.Short(out, bag, fs, st.pathMode, withNotes)
	case "json":
		return diagfmt.JSON(out, bag, fs, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         st.pathMode,
			Max:              st.maxDiagnostics,
			IncludeNotes:     withNotes,
			IncludeFixes:     suggest,
			IncludePreviews:  preview,
		})
	case "sarif":
		return diagfmt.Sarif(out, bag, fs, sarifMeta(invocation))
	default:
		return fmt.Errorf("unknown format %q", st.format)
	}
}

func sarifMeta(invocation []string) diagfmt.SarifRunMeta {
	meta := diagfmt.SarifRunMeta{
		ToolName:       "setlint",
		ToolVersion:    version.Version,
		InvocationArgs: invocation,
	}
	for _, r := range lint.Rules() {
		meta.Rules = append(meta.Rules, diagfmt.SarifRule{ID: r.ID(), Name: r.Name, Summary: r.Summary})
	}
	return meta
}

func printSummary(out io.Writer, bag *diag.Bag) {
	if bag.Len() == 0 {
		fmt.Fprintln(out, "All checks passed!")
		return
	}
	fixable := 0
	for _, d := range bag.Items() {
		if len(d.Fixes) > 0 {
			fixable++
		}
	}
	fmt.Fprintf(out, "Found %d diagnostic(s).\n", bag.Len())
	if fixable > 0 {
		fmt.Fprintf(out, "%d fixable with `setlint fix --all`.\n", fixable)
	}
}

func printTimings(out io.Writer, res *driver.CheckResult) {
	var reports []observ.Report
	for _, f := range res.Files {
		if f.Timing != nil {
			reports = append(reports, *f.Timing)
		}
	}
	if len(reports) == 0 {
		return
	}
	fmt.Fprintln(out, observ.Aggregate(reports).String())
}
