package fix

import (
	"testing"

	"setlint/internal/diag"
	"setlint/internal/source"
)

// TestReplaceSpan проверяет, что правка переносит guard и новый текст
func TestReplaceSpan(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.py", []byte("x = {1, 1}"))

	span := source.Span{File: fileID, Start: 4, End: 10}
	fix := ReplaceSpan("Remove duplicate items", span, "{1}", "{1, 1}")

	if len(fix.Edits) != 1 {
		t.Fatalf("expected 1 edit, got %d", len(fix.Edits))
	}
	edit := fix.Edits[0]
	if edit.NewText != "{1}" || edit.OldText != "{1, 1}" || edit.Span != span {
		t.Errorf("unexpected edit %+v", edit)
	}
}

// TestDeleteSpan проверяет удаление с guard
func TestDeleteSpan(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.py", []byte("a, b"))

	span := source.Span{File: fileID, Start: 1, End: 4}
	fix := DeleteSpan("Remove tail", span, ", b", WithRequiresAll())

	if !fix.RequiresAll {
		t.Error("expected RequiresAll to be true")
	}
	edit := fix.Edits[0]
	if edit.NewText != "" {
		t.Errorf("expected empty NewText for deletion, got %q", edit.NewText)
	}
	if edit.OldText != ", b" {
		t.Errorf("expected OldText ', b', got %q", edit.OldText)
	}
}

// TestMultipleOptions проверяет комбинацию нескольких опций
func TestMultipleOptions(t *testing.T) {
	span := source.Span{}
	fix := ReplaceSpan(
		"Test fix",
		span,
		"x",
		"",
		Preferred(),
		WithID("custom-id"),
		WithKind(diag.FixKindRefactor),
		WithApplicability(diag.FixApplicabilitySafeWithHeuristics),
	)

	if !fix.IsPreferred {
		t.Error("expected IsPreferred to be true")
	}
	if fix.ID != "custom-id" {
		t.Errorf("expected ID 'custom-id', got %q", fix.ID)
	}
	if fix.Kind != diag.FixKindRefactor {
		t.Errorf("expected Kind FixKindRefactor, got %v", fix.Kind)
	}
	if fix.Applicability != diag.FixApplicabilitySafeWithHeuristics {
		t.Errorf("expected Applicability SafeWithHeuristics, got %v", fix.Applicability)
	}
}

// TestWithThunk проверяет ленивую сборку правки
func TestWithThunk(t *testing.T) {
	span := source.Span{Start: 0, End: 1}
	thunk := diag.FixThunkFunc(func(diag.FixBuildContext) (diag.Fix, error) {
		return diag.Fix{Edits: []diag.TextEdit{{Span: span, NewText: "y"}}}, nil
	})
	fix := ReplaceSpan("Lazy", span, "", "", WithThunk(thunk), WithID("lazy"))

	resolved, err := fix.Resolve(diag.FixBuildContext{})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if resolved.ID != "lazy" || resolved.Title != "Lazy" {
		t.Errorf("metadata from the builder should win: %+v", resolved)
	}
	if len(resolved.Edits) != 1 || resolved.Edits[0].NewText != "y" {
		t.Errorf("edits should come from the thunk: %+v", resolved.Edits)
	}
}

// TestNilOption проверяет, что nil опции игнорируются
func TestNilOption(t *testing.T) {
	var nilOpt Option
	fix := ReplaceSpan("Test fix", source.Span{}, "a", "", nilOpt, WithRequiresAll())
	if !fix.RequiresAll {
		t.Error("expected RequiresAll to be true")
	}
}

// TestDefaults проверяет значения по умолчанию
func TestDefaults(t *testing.T) {
	fix := ReplaceSpan("Test fix", source.Span{}, "a", "")
	if fix.Applicability != diag.FixApplicabilityAlwaysSafe {
		t.Errorf("expected default Applicability AlwaysSafe, got %v", fix.Applicability)
	}
	if fix.Kind != diag.FixKindQuickFix {
		t.Errorf("expected default Kind QuickFix, got %v", fix.Kind)
	}
}
