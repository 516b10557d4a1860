package diag

import (
	"testing"

	"setlint/internal/source"
)

func TestBagLimitAndSort(t *testing.T) {
	b := NewBag(3)
	b.Add(Diagnostic{Severity: SevWarning, Code: LintDuplicateSetValue, Primary: source.Span{Start: 10, End: 11}})
	b.Add(Diagnostic{Severity: SevError, Code: SynUnexpectedToken, Primary: source.Span{Start: 2, End: 3}})
	b.Add(Diagnostic{Severity: SevWarning, Code: LintDuplicateSetValue, Primary: source.Span{Start: 2, End: 3}})
	if b.Add(Diagnostic{Code: LexBadNumber}) {
		t.Fatal("bag accepted diagnostic beyond its limit")
	}
	b.Sort()
	items := b.Items()
	if items[0].Severity != SevError || items[1].Code != LintDuplicateSetValue || items[2].Primary.Start != 10 {
		t.Fatalf("unexpected order: %+v", items)
	}
	if !b.HasErrors() || !b.HasWarnings() {
		t.Fatal("expected errors and warnings")
	}
}

func TestBagMergeGrows(t *testing.T) {
	a := NewBag(1)
	a.Add(Diagnostic{Code: LexBadNumber})
	other := NewBag(2)
	other.Add(Diagnostic{Code: SynUnexpectedToken})
	other.Add(Diagnostic{Code: SynExpectColon})
	a.Merge(other)
	if a.Len() != 3 {
		t.Fatalf("expected 3 diagnostics after merge, got %d", a.Len())
	}
}

func TestDedupReporterDropsRepeats(t *testing.T) {
	bag := NewBag(10)
	r := NewDedupReporter(BagReporter{Bag: bag})
	sp := source.Span{Start: 1, End: 2}
	r.Report(LintDuplicateSetValue, SevWarning, sp, "dup", nil, nil)
	r.Report(LintDuplicateSetValue, SevWarning, sp, "dup", nil, nil)
	r.Report(LintDuplicateSetValue, SevWarning, sp, "other", nil, nil)
	if bag.Len() != 2 {
		t.Fatalf("expected 2 diagnostics, got %d", bag.Len())
	}
}

func TestSharedFixSurvivesReporting(t *testing.T) {
	bag := NewBag(10)
	shared := &Fix{ID: "shared", Title: "t", Edits: []TextEdit{{NewText: "x"}}}
	ReportWarning(BagReporter{Bag: bag}, LintDuplicateSetValue, source.Span{Start: 1}, "a").WithFixSuggestion(shared).Emit()
	ReportWarning(BagReporter{Bag: bag}, LintDuplicateSetValue, source.Span{Start: 2}, "b").WithFixSuggestion(shared).Emit()
	items := bag.Items()
	if items[0].Fixes[0] != items[1].Fixes[0] {
		t.Fatal("diagnostics must reference the same fix value")
	}
}

func TestFixResolveThunk(t *testing.T) {
	f := &Fix{
		ID:    "lazy",
		Title: "Lazy",
		Thunk: FixThunkFunc(func(FixBuildContext) (Fix, error) {
			return Fix{Title: "ignored", Edits: []TextEdit{{NewText: "y"}}}, nil
		}),
	}
	got, err := f.Resolve(FixBuildContext{})
	if err != nil {
		t.Fatal(err)
	}
	if got.ID != "lazy" || got.Title != "Lazy" || len(got.Edits) != 1 || got.Thunk != nil {
		t.Fatalf("unexpected resolved fix: %+v", got)
	}
}
