package fuzztests

import (
	"context"
	"errors"
	"testing"

	"setlint/internal/diag"
	"setlint/internal/driver"
	"setlint/internal/fix"
	"setlint/internal/logx"
	_ "setlint/internal/rules/duplicatevalue"
	"setlint/internal/source"
)

func lintVirtual(t *testing.T, content []byte) (*source.FileSet, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("fuzz.py", content)
	res, err := driver.CheckFile(context.Background(), fs, id, driver.Options{MaxDiagnostics: 4096})
	if err != nil {
		t.Fatalf("CheckFile: %v", err)
	}
	return fs, res.Bag
}

func countCode(bag *diag.Bag, code diag.Code) int {
	n := 0
	for _, d := range bag.Items() {
		if d.Code == code {
			n++
		}
	}
	return n
}

// FuzzFixConverges applies every safe fix to syntactically valid input and
// checks that the result still parses and has fewer duplicate items.
func FuzzFixConverges(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		fs, bag := lintVirtual(t, input)
		if bag.HasErrors() {
			return
		}
		before := countCode(bag, diag.LintDuplicateSetValue)

		res, err := fix.Apply(fs, bag.Items(), fix.ApplyOptions{
			Mode:   fix.ApplyModeAll,
			DryRun: true,
			Logger: logx.Discard(),
		})
		if errors.Is(err, fix.ErrNoFixes) {
			return
		}
		if err != nil {
			t.Fatalf("Apply: %v", err)
		}
		if len(res.FileChanges) != 1 {
			t.Fatalf("want one changed file, got %d", len(res.FileChanges))
		}

		fixed := res.FileChanges[0].Content
		_, after := lintVirtual(t, fixed)
		if after.HasErrors() {
			t.Fatalf("fix produced invalid source:\n%s", fixed)
		}
		if got := countCode(after, diag.LintDuplicateSetValue); got >= before {
			t.Fatalf("duplicates did not decrease: %d -> %d\n%s", before, got, fixed)
		}
	})
}
