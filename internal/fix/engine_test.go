package fix

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"setlint/internal/diag"
	"setlint/internal/source"
)

func TestGatherCandidatesSkipsDuplicateFixIDs(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.py", []byte(""))
	span := source.Span{File: fileID, Start: 0, End: 0}

	diagnostics := []diag.Diagnostic{{
		Code:    diag.LintDuplicateSetValue,
		Message: "duplicate",
		Primary: span,
		Fixes: []*diag.Fix{
			{
				ID:    "fix-duplicate",
				Title: "insert",
				Edits: []diag.TextEdit{{Span: span, NewText: "x"}},
			},
			{
				ID:    "fix-duplicate",
				Title: "insert again",
				Edits: []diag.TextEdit{{Span: span, NewText: "x"}},
			},
		},
	}}

	ctx := diag.FixBuildContext{FileSet: fs}
	candidates, skips := gatherCandidates(ctx, diagnostics)

	if len(candidates) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(candidates))
	}
	if len(skips) != 1 {
		t.Fatalf("expected 1 skipped fix, got %d", len(skips))
	}
	skip := skips[0]
	if skip.ID != "fix-duplicate" {
		t.Fatalf("expected skipped fix id 'fix-duplicate', got %q", skip.ID)
	}
	if skip.Reason != "duplicate fix id" {
		t.Fatalf("expected duplicate fix reason, got %q", skip.Reason)
	}
}

// sharedFixDiagnostics mimics a set literal with two duplicates: both
// diagnostics carry the same *diag.Fix.
func sharedFixDiagnostics(fileID source.FileID, content string) []diag.Diagnostic {
	whole := source.Span{File: fileID, Start: 4, End: uint32(len(content))}
	shared := ReplaceSpan("Remove duplicate items", whole, "{1}", content[4:], WithID("B033@test.py:4-13"))
	return []diag.Diagnostic{
		{Severity: diag.SevWarning, Code: diag.LintDuplicateSetValue, Primary: source.Span{File: fileID, Start: 8, End: 9}, Fixes: []*diag.Fix{shared}},
		{Severity: diag.SevWarning, Code: diag.LintDuplicateSetValue, Primary: source.Span{File: fileID, Start: 11, End: 12}, Fixes: []*diag.Fix{shared}},
	}
}

func TestApplySharedFixOnce(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.py")
	content := "x = {1, 1, 1}"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	fs := source.NewFileSetWithBase(dir)
	fileID, err := fs.Load(path)
	if err != nil {
		t.Fatal(err)
	}

	res, err := Apply(fs, sharedFixDiagnostics(fileID, content), ApplyOptions{Mode: ApplyModeAll})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if len(res.Applied) != 1 {
		t.Fatalf("applied = %d, want 1", len(res.Applied))
	}
	if len(res.Skipped) != 1 || res.Skipped[0].Reason != "duplicate fix id" {
		t.Fatalf("skipped = %+v", res.Skipped)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "x = {1}" {
		t.Fatalf("file = %q", got)
	}
	if len(res.FileChanges) != 1 || res.FileChanges[0].Path != "a.py" {
		t.Fatalf("changes = %+v", res.FileChanges)
	}
}

func TestApplyRestoresCRLF(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "crlf.py")
	if err := os.WriteFile(path, []byte("x = {1, 1, 1}\r\ny = 2\r\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	fs := source.NewFileSetWithBase(dir)
	fileID, err := fs.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Apply(fs, sharedFixDiagnostics(fileID, "x = {1, 1, 1}"), ApplyOptions{Mode: ApplyModeOnce}); err != nil {
		t.Fatalf("apply: %v", err)
	}
	got, _ := os.ReadFile(path)
	if string(got) != "x = {1}\r\ny = 2\r\n" {
		t.Fatalf("file = %q", got)
	}
}

func TestApplyGuardMismatch(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.py", []byte("x = {2, 2, 2}"))
	diags := sharedFixDiagnostics(fileID, "x = {1, 1, 1}")

	res, err := Apply(fs, diags, ApplyOptions{Mode: ApplyModeAll, DryRun: true})
	if !errors.Is(err, ErrNoFixes) {
		t.Fatalf("err = %v, want ErrNoFixes", err)
	}
	found := false
	for _, s := range res.Skipped {
		if s.Reason == "existing text does not match expected content" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected guard skip, got %+v", res.Skipped)
	}
}

func TestApplyVirtualRequiresDryRun(t *testing.T) {
	content := "x = {1, 1, 1}"
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.py", []byte(content))

	res, err := Apply(fs, sharedFixDiagnostics(fileID, content), ApplyOptions{Mode: ApplyModeAll})
	if !errors.Is(err, ErrNoFixes) {
		t.Fatalf("err = %v", err)
	}
	if res.Skipped[len(res.Skipped)-1].Reason != "target file is virtual" {
		t.Fatalf("skipped = %+v", res.Skipped)
	}

	res, err = Apply(fs, sharedFixDiagnostics(fileID, content), ApplyOptions{Mode: ApplyModeAll, DryRun: true})
	if err != nil {
		t.Fatalf("dry run: %v", err)
	}
	if string(res.FileChanges[0].Content) != "x = {1}" {
		t.Fatalf("content = %q", res.FileChanges[0].Content)
	}
}

func TestApplyConflictingFixes(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.py", []byte("abcdef"))
	a := ReplaceSpan("a", source.Span{File: fileID, Start: 0, End: 4}, "X", "abcd", WithID("a"))
	b := ReplaceSpan("b", source.Span{File: fileID, Start: 2, End: 6}, "Y", "cdef", WithID("b"))
	diags := []diag.Diagnostic{
		{Code: diag.LintDuplicateSetValue, Primary: source.Span{File: fileID, Start: 0, End: 1}, Fixes: []*diag.Fix{a}},
		{Code: diag.LintDuplicateSetValue, Primary: source.Span{File: fileID, Start: 2, End: 3}, Fixes: []*diag.Fix{b}},
	}
	res, err := Apply(fs, diags, ApplyOptions{Mode: ApplyModeAll, DryRun: true})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if len(res.Applied) != 1 || res.Applied[0].ID != "a" {
		t.Fatalf("applied = %+v", res.Applied)
	}
	if string(res.FileChanges[0].Content) != "Xef" {
		t.Fatalf("content = %q", res.FileChanges[0].Content)
	}
}

func TestApplyByID(t *testing.T) {
	content := "x = {1, 1, 1}"
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.py", []byte(content))

	res, err := Apply(fs, sharedFixDiagnostics(fileID, content), ApplyOptions{Mode: ApplyModeID, TargetID: "missing", DryRun: true})
	if !errors.Is(err, ErrNoFixes) {
		t.Fatalf("err = %v", err)
	}
	if res.Skipped[len(res.Skipped)-1].Reason != "fix id not found" {
		t.Fatalf("skipped = %+v", res.Skipped)
	}

	res, err = Apply(fs, sharedFixDiagnostics(fileID, content), ApplyOptions{Mode: ApplyModeID, TargetID: "B033@test.py:4-13", DryRun: true})
	if err != nil || len(res.Applied) != 1 {
		t.Fatalf("apply by id: %v %+v", err, res)
	}
}

func TestOverlaps(t *testing.T) {
	edit := func(start, end uint32) diag.TextEdit {
		return diag.TextEdit{Span: source.Span{File: 1, Start: start, End: end}}
	}
	tests := []struct {
		name string
		a, b diag.TextEdit
		want bool
	}{
		{"two inserts", edit(3, 3), edit(3, 3), false},
		{"insert at span start", edit(2, 2), edit(2, 5), true},
		{"insert at span end", edit(5, 5), edit(2, 5), false},
		{"adjacent", edit(0, 2), edit(2, 4), false},
		{"nested", edit(0, 6), edit(2, 3), true},
		{"other file", edit(0, 6), diag.TextEdit{Span: source.Span{File: 2, Start: 0, End: 6}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := overlaps(tt.a, tt.b); got != tt.want {
				t.Fatalf("overlaps = %v, want %v", got, tt.want)
			}
			if got := overlaps(tt.b, tt.a); got != tt.want {
				t.Fatalf("overlaps (swapped) = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRenderOutOfOrderEdits(t *testing.T) {
	edits := []diag.TextEdit{
		{Span: source.Span{Start: 4, End: 6}, NewText: "EF"},
		{Span: source.Span{Start: 0, End: 0}, NewText: ">"},
		{Span: source.Span{Start: 1, End: 3}, NewText: ""},
	}
	if got := string(render([]byte("abcdef"), edits)); got != ">adEF" {
		t.Fatalf("render = %q", got)
	}
}
