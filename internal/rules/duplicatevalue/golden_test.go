package duplicatevalue

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"setlint/internal/ast"
	"setlint/internal/diag"
	"setlint/internal/lint"
	"setlint/internal/parser"
	"setlint/internal/source"
)

func TestGoldenDiagnostics(t *testing.T) {
	inputs, err := filepath.Glob(filepath.Join("testdata", "*.py"))
	if err != nil {
		t.Fatal(err)
	}
	if len(inputs) == 0 {
		t.Fatal("no testdata inputs")
	}
	for _, input := range inputs {
		t.Run(filepath.Base(input), func(t *testing.T) {
			fs := source.NewFileSet()
			id, err := fs.Load(input)
			if err != nil {
				t.Fatal(err)
			}
			file := fs.Get(id)

			bag := diag.NewBag(100)
			reporter := diag.BagReporter{Bag: bag}
			b := ast.NewBuilder(ast.Hints{}, nil)
			res := parser.ParseSource(file, b, parser.Options{Reporter: reporter, MaxErrors: 100})
			err = lint.Run(context.Background(), b, res.File, file, lint.Options{
				Rules:    []*lint.Rule{Rule},
				Reporter: reporter,
				Noqa:     lint.CollectNoqa(file),
			})
			if err != nil {
				t.Fatalf("lint: %v", err)
			}

			items := bag.Items()
			ptrs := make([]*diag.Diagnostic, len(items))
			for i := range items {
				ptrs[i] = &items[i]
			}
			got := diag.FormatGoldenDiagnostics(ptrs, fs, true)

			want, err := os.ReadFile(strings.TrimSuffix(input, ".py") + ".golden")
			if err != nil {
				t.Fatal(err)
			}
			if got != strings.TrimRight(string(want), "\n") {
				t.Fatalf("golden mismatch for %s:\nwant:\n%s\n\ngot:\n%s", input, want, got)
			}
		})
	}
}
