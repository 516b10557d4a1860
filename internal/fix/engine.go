package fix

import (
	"errors"
	"fmt"
	"log/slog"

	"setlint/internal/diag"
	"setlint/internal/source"
)

// ErrNoFixes is returned when no fixes were applied.
var ErrNoFixes = errors.New("no applicable fixes found")

// ApplyMode determines selection strategy for fixes.
type ApplyMode uint8

const (
	ApplyModeOnce ApplyMode = iota
	ApplyModeAll
	ApplyModeID
)

// ApplyOptions configures how fixes are selected.
type ApplyOptions struct {
	Mode     ApplyMode
	TargetID string
	// DryRun computes the new contents without writing them; virtual files
	// are accepted in this mode.
	DryRun bool
	Logger *slog.Logger
}

func (o ApplyOptions) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}

// AppliedFix records a successfully applied fix.
type AppliedFix struct {
	ID            string
	Title         string
	Code          diag.Code
	Message       string
	Applicability diag.FixApplicability
	PrimaryPath   string
	EditCount     int
}

// SkippedFix captures a skipped or failed fix with a reason.
type SkippedFix struct {
	ID     string
	Title  string
	Reason string
}

// FileChange summarises modifications performed on a file.
type FileChange struct {
	FileID    source.FileID
	Path      string
	EditCount int
	// Content is the new text as the linter sees it (LF line endings, no BOM).
	Content []byte
}

// ApplyResult aggregates applied fixes, skipped ones, and file changes.
type ApplyResult struct {
	Applied     []AppliedFix
	Skipped     []SkippedFix
	FileChanges []FileChange
}

type candidate struct {
	diag  diag.Diagnostic
	fix   diag.Fix
	order int
}

// Apply collects fixes from diagnostics, selects a subset according to opts, and applies them.
func Apply(fs *source.FileSet, diagnostics []diag.Diagnostic, opts ApplyOptions) (*ApplyResult, error) {
	result := &ApplyResult{
		Applied:     make([]AppliedFix, 0),
		Skipped:     make([]SkippedFix, 0),
		FileChanges: make([]FileChange, 0),
	}
	if fs == nil {
		return result, fmt.Errorf("fix: FileSet is nil")
	}
	log := opts.logger()
	skip := func(msg string, list []SkippedFix) {
		for _, s := range list {
			log.Debug(msg, "id", s.ID, "reason", s.Reason)
		}
		result.Skipped = append(result.Skipped, list...)
	}

	candidates, skipped := gatherCandidates(diag.FixBuildContext{FileSet: fs}, diagnostics)
	skip("fix skipped", skipped)
	orderCandidates(candidates)

	selected, skipped := selectCandidates(candidates, opts)
	result.Skipped = append(result.Skipped, skipped...)
	if len(selected) == 0 {
		return result, ErrNoFixes
	}

	ap := newApplier(fs, opts)
	for _, cand := range selected {
		if reason := ap.stage(cand); reason != "" {
			skip("fix not applied", []SkippedFix{{ID: cand.fix.ID, Title: cand.fix.Title, Reason: reason}})
			continue
		}
		result.Applied = append(result.Applied, ap.describe(cand))
	}
	if len(result.Applied) == 0 {
		return result, ErrNoFixes
	}

	changes, err := ap.flush()
	result.FileChanges = append(result.FileChanges, changes...)
	return result, err
}
