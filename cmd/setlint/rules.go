package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"setlint/internal/lint"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List available rules",
	Args:  cobra.NoArgs,
	RunE:  runRules,
}

func init() {
	rulesCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

type ruleRow struct {
	Code    string `json:"code"`
	Name    string `json:"name"`
	Fixable bool   `json:"fixable"`
	Summary string `json:"summary"`
}

func collectRuleRows() []ruleRow {
	rules := lint.Rules()
	rows := make([]ruleRow, 0, len(rules))
	for _, r := range rules {
		rows = append(rows, ruleRow{Code: r.ID(), Name: r.Name, Fixable: r.Fixable, Summary: r.Summary})
	}
	return rows
}

func runRules(cmd *cobra.Command, _ []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return err
	}
	colored, err := useColor(colorFlag, os.Stdout)
	if err != nil {
		return err
	}

	rows := collectRuleRows()
	switch strings.ToLower(format) {
	case "pretty":
		return renderRulesTable(cmd.OutOrStdout(), rows, colored)
	case "json":
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	default:
		return fmt.Errorf("unsupported format %q (must be pretty or json)", format)
	}
}

func renderRulesTable(out io.Writer, rows []ruleRow, colored bool) error {
	header := []string{"CODE", "NAME", "FIX", "SUMMARY"}
	cells := make([][]string, 0, len(rows))
	for _, r := range rows {
		fixable := ""
		if r.Fixable {
			fixable = "yes"
		}
		cells = append(cells, []string{r.Code, r.Name, fixable, r.Summary})
	}

	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range cells {
		for i, c := range row {
			widths[i] = max(widths[i], runewidth.StringWidth(c))
		}
	}

	bold := lipgloss.NewStyle()
	if colored {
		bold = bold.Bold(true)
	}
	line := func(row []string) string {
		parts := make([]string, len(row))
		for i, c := range row {
			if i == len(row)-1 {
				parts[i] = c
				continue
			}
			parts[i] = runewidth.FillRight(c, widths[i])
		}
		return strings.TrimRight(strings.Join(parts, "  "), " ")
	}

	if _, err := fmt.Fprintln(out, bold.Render(line(header))); err != nil {
		return err
	}
	for _, row := range cells {
		if _, err := fmt.Fprintln(out, line(row)); err != nil {
			return err
		}
	}
	return nil
}
