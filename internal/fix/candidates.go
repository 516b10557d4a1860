package fix

import (
	"cmp"
	"fmt"
	"slices"

	"setlint/internal/diag"
)

// gatherCandidates раскрывает фиксы всех диагностик в кандидатов.
//
// Один *diag.Fix может висеть на нескольких диагностиках: по ID он попадает
// в кандидаты один раз, повторы уходят в skipped с причиной "duplicate fix id".
// Фикс без ID получает его из кода, файла, начала диагностики и индекса.
func gatherCandidates(ctx diag.FixBuildContext, diagnostics []diag.Diagnostic) ([]candidate, []SkippedFix) {
	var (
		cands []candidate
		skips []SkippedFix
		seen  = make(map[string]bool)
	)
	for _, d := range diagnostics {
		if len(d.Fixes) == 0 {
			continue
		}
		resolved, err := diag.MaterializeFixes(ctx, d.Fixes)
		if err != nil {
			skips = append(skips, SkippedFix{Title: d.Message, Reason: fmt.Sprintf("failed to build fixes: %v", err)})
			continue
		}
		for idx, f := range resolved {
			if f.ID == "" {
				f.ID = fmt.Sprintf("%s-%d-%d-%d", d.Code.ID(), d.Primary.File, d.Primary.Start, idx)
			}
			reason := ""
			switch {
			case len(f.Edits) == 0:
				reason = "fix has no edits"
			case seen[f.ID]:
				reason = "duplicate fix id"
			}
			if reason != "" {
				skips = append(skips, SkippedFix{ID: f.ID, Title: f.Title, Reason: reason})
				continue
			}
			seen[f.ID] = true
			cands = append(cands, candidate{diag: d, fix: f, order: len(cands)})
		}
	}
	return cands, skips
}

// orderCandidates: файл, начало и конец основного спана, порядок появления,
// код, предпочтительные раньше, затем ID и заголовок.
func orderCandidates(cands []candidate) {
	slices.SortStableFunc(cands, func(a, b candidate) int {
		pa, pb := a.diag.Primary, b.diag.Primary
		return cmp.Or(
			cmp.Compare(pa.File, pb.File),
			cmp.Compare(pa.Start, pb.Start),
			cmp.Compare(pa.End, pb.End),
			cmp.Compare(a.order, b.order),
			cmp.Compare(a.diag.Code, b.diag.Code),
			cmp.Compare(preferredRank(a.fix), preferredRank(b.fix)),
			cmp.Compare(a.fix.ID, b.fix.ID),
			cmp.Compare(a.fix.Title, b.fix.Title),
		)
	})
}

func preferredRank(f diag.Fix) int {
	if f.IsPreferred {
		return 0
	}
	return 1
}

func selectCandidates(cands []candidate, opts ApplyOptions) ([]candidate, []SkippedFix) {
	switch opts.Mode {
	case ApplyModeID:
		return selectByID(cands, opts.TargetID)
	case ApplyModeAll:
		return selectSafe(cands)
	case ApplyModeOnce:
		return selectFirst(cands)
	}
	return nil, nil
}

func selectByID(cands []candidate, id string) ([]candidate, []SkippedFix) {
	i := slices.IndexFunc(cands, func(c candidate) bool { return c.fix.ID == id })
	switch {
	case i < 0:
		return nil, []SkippedFix{{ID: id, Reason: "fix id not found"}}
	case cands[i].fix.RequiresAll:
		return nil, []SkippedFix{{ID: id, Reason: "fix requires all fixes to be applied"}}
	}
	return cands[i : i+1], nil
}

// selectSafe берёт только безопасные фиксы; остальные пропускаются с их применимостью.
func selectSafe(cands []candidate) ([]candidate, []SkippedFix) {
	var (
		picked []candidate
		skips  []SkippedFix
	)
	for _, c := range cands {
		if c.fix.Applicability != diag.FixApplicabilityAlwaysSafe {
			skips = append(skips, SkippedFix{ID: c.fix.ID, Title: c.fix.Title, Reason: "applicability is " + c.fix.Applicability.String()})
			continue
		}
		picked = append(picked, c)
	}
	return picked, skips
}

// selectFirst: первый безопасный фикс, иначе первый любой, кроме RequiresAll.
func selectFirst(cands []candidate) ([]candidate, []SkippedFix) {
	var skips []SkippedFix
	fallback := -1
	for i, c := range cands {
		if c.fix.RequiresAll {
			skips = append(skips, SkippedFix{ID: c.fix.ID, Title: c.fix.Title, Reason: "fix requires all fixes to be applied"})
			continue
		}
		if c.fix.Applicability == diag.FixApplicabilityAlwaysSafe {
			return cands[i : i+1], skips
		}
		if fallback < 0 {
			fallback = i
		}
	}
	if fallback < 0 {
		return nil, skips
	}
	return cands[fallback : fallback+1], skips
}
