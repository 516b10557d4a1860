package duplicatevalue

import (
	"context"
	"slices"
	"strings"
	"testing"

	"setlint/internal/ast"
	"setlint/internal/comparable"
	"setlint/internal/diag"
	"setlint/internal/fix"
	"setlint/internal/lint"
	"setlint/internal/parser"
	"setlint/internal/source"
)

type linted struct {
	fs    *source.FileSet
	file  *source.File
	b     *ast.Builder
	fid   ast.FileID
	diags []diag.Diagnostic
}

func lintSource(t *testing.T, src string) linted {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.py", []byte(src)))
	syntax := diag.NewBag(10)
	b := ast.NewBuilder(ast.Hints{}, nil)
	res := parser.ParseSource(file, b, parser.Options{Reporter: diag.BagReporter{Bag: syntax}})
	if syntax.Len() != 0 {
		t.Fatalf("parse %q: %d diagnostics", src, syntax.Len())
	}
	bag := diag.NewBag(100)
	err := lint.Run(context.Background(), b, res.File, file, lint.Options{
		Rules:    []*lint.Rule{Rule},
		Reporter: diag.BagReporter{Bag: bag},
	})
	if err != nil {
		t.Fatalf("lint: %v", err)
	}
	return linted{fs: fs, file: file, b: b, fid: res.File, diags: bag.Items()}
}

func (l linted) primaries() []string {
	out := make([]string, len(l.diags))
	for i, d := range l.diags {
		out[i] = l.file.Slice(d.Primary)
	}
	return out
}

func TestScenarios(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		values   []string // duplicate values in report order
		fixText  string
		fixRange string
	}{
		{"trailing repeat", "x = {1, 2, 3, 1}\n", []string{"1"}, "{1, 2, 3}", "{1, 2, 3, 1}"},
		{"repeated twice", "x = {1, 2, 2, 2}\n", []string{"2", "2"}, "{1, 2}", "{1, 2, 2, 2}"},
		{"calls are not compared", "x = {f(), f()}\n", nil, "", ""},
		{"kinds differ", "x = {1, \"1\"}\n", nil, "", ""},
		{"all unique", "x = {1, 2, 3}\n", nil, "", ""},
		{"int spellings", "x = {1, 0x1, 0b1}\n", []string{"0x1", "0b1"}, "{1}", "{1, 0x1, 0b1}"},
		{"quote styles", "x = {'a', \"a\"}\n", []string{"\"a\""}, "{'a'}", "{'a', \"a\"}"},
		{"implicit concatenation", "x = {'ab', 'a' 'b'}\n", []string{"'a' 'b'"}, "{'ab'}", "{'ab', 'a' 'b'}"},
		{"multi-line concatenation kept on one line", "x = {('a'\n     'b'), 'ab'}\n", []string{"'ab'"}, "{('a' 'b')}", "{('a'\n     'b'), 'ab'}"},
		{"tuples of literals", "x = {(1, 'a'), (1, \"a\")}\n", []string{"(1, \"a\")"}, "{(1, 'a')}", "{(1, 'a'), (1, \"a\")}"},
		{"no cross-kind unification", "x = {1, 1.0, True, 1j}\n", nil, "", ""},
		{"names are not compared", "x = {a, a, a.b, a.b}\n", nil, "", ""},
		{"unary minus is not a literal", "x = {-1, -1}\n", nil, "", ""},
		{"non-literals kept in place", "x = {a, 1, a, 1, b}\n", []string{"1"}, "{a, 1, a, b}", "{a, 1, a, 1, b}"},
		{"starred kept", "x = {*xs, 'k', 'k'}\n", []string{"'k'"}, "{*xs, 'k'}", "{*xs, 'k', 'k'}"},
		{"bytes vs str", "x = {b'a', 'a', b'a'}\n", []string{"b'a'"}, "{b'a', 'a'}", "{b'a', 'a', b'a'}"},
		{"None and Ellipsis", "x = {None, ..., None, ...}\n", []string{"None", "..."}, "{None, ...}", "{None, ..., None, ...}"},
		{"comprehension is not a display", "x = {v for v in (1, 1)}\n", nil, "", ""},
		{"f-string with fields", "x = {f'{a}', f'{a}'}\n", nil, "", ""},
		{"f-string is not a string", "x = {'a', f'a'}\n", nil, "", ""},
		{"f-strings are not compared", "x = {f'a', f'a'}\n", nil, "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := lintSource(t, tt.src)
			if len(l.diags) != len(tt.values) {
				t.Fatalf("got %d diagnostics %q, want %d", len(l.diags), l.primaries(), len(tt.values))
			}
			if len(tt.values) == 0 {
				return
			}
			shared := l.diags[0].Fixes[0]
			for i, d := range l.diags {
				wantMsg := "Sets should not contain duplicate item `" + tt.values[i] + "`"
				if d.Message != wantMsg {
					t.Errorf("diag %d: message %q, want %q", i, d.Message, wantMsg)
				}
				if d.Code != diag.LintDuplicateSetValue || d.Severity != diag.SevWarning {
					t.Errorf("diag %d: code %s severity %s", i, d.Code.ID(), d.Severity)
				}
				if got := l.file.Slice(d.Primary); got != tt.values[i] {
					t.Errorf("diag %d: anchored at %q, want %q", i, got, tt.values[i])
				}
				if len(d.Notes) != 1 || d.Notes[0].Msg != "Remove duplicate item `"+tt.values[i]+"`" {
					t.Errorf("diag %d: notes %+v", i, d.Notes)
				}
				if len(d.Fixes) != 1 || d.Fixes[0] != shared {
					t.Fatalf("diag %d: fix is not the shared one", i)
				}
			}
			if shared.Title != "Remove duplicate items" || shared.Applicability != diag.FixApplicabilityAlwaysSafe {
				t.Errorf("fix metadata: %q %s", shared.Title, shared.Applicability)
			}
			if len(shared.Edits) != 1 {
				t.Fatalf("fix has %d edits, want 1", len(shared.Edits))
			}
			edit := shared.Edits[0]
			if edit.NewText != tt.fixText {
				t.Errorf("fix text %q, want %q", edit.NewText, tt.fixText)
			}
			if got := l.file.Slice(edit.Span); got != tt.fixRange || edit.OldText != tt.fixRange {
				t.Errorf("fix range %q (guard %q), want %q", got, edit.OldText, tt.fixRange)
			}
			if !strings.HasPrefix(shared.ID, "B033@test.py:") {
				t.Errorf("fix id %q", shared.ID)
			}
		})
	}
}

func TestRuleRegistered(t *testing.T) {
	r, ok := lint.Lookup("B033")
	if !ok || r != Rule {
		t.Fatalf("B033 lookup = %v, %v", r, ok)
	}
	if Rule.Code != diag.LintDuplicateSetValue || !Rule.Fixable {
		t.Fatalf("rule = %+v", Rule)
	}
	l := lintSource(t, "x = {1, 1}\n")
	if len(l.diags) != 1 || l.diags[0].Code != Rule.Code {
		t.Fatalf("diagnostics = %+v", l.diags)
	}
	if want := "B033@test.py:4-10"; l.diags[0].Fixes[0].ID != want {
		t.Fatalf("fix id %q, want %q", l.diags[0].Fixes[0].ID, want)
	}
}

func TestSetsAreIndependent(t *testing.T) {
	l := lintSource(t, "a = {1, 1}\nb = [{2, 2}, {3}]\n")
	if len(l.diags) != 2 {
		t.Fatalf("got %d diagnostics, want 2", len(l.diags))
	}
	if l.diags[0].Fixes[0] == l.diags[1].Fixes[0] || l.diags[0].Fixes[0].ID == l.diags[1].Fixes[0].ID {
		t.Fatalf("different sets must not share a fix")
	}
}

func TestMultilineSet(t *testing.T) {
	src := "x = {\n    1,  # one\n    2,\n    1,\n}\n"
	l := lintSource(t, src)
	if len(l.diags) != 1 {
		t.Fatalf("got %d diagnostics, want 1", len(l.diags))
	}
	pos := l.file.Position(l.diags[0].Primary.Start)
	if pos.Line != 4 || pos.Col != 5 {
		t.Fatalf("anchored at %d:%d, want 4:5", pos.Line, pos.Col)
	}
	if got := l.diags[0].Fixes[0].Edits[0].NewText; got != "{1, 2}" {
		t.Fatalf("fix text %q", got)
	}
}

// scanOf runs scan on the first set display of src.
func scanOf(t *testing.T, src string) (*lint.Context, []ast.ExprID, scanResult) {
	t.Helper()
	l := lintSource(t, src)
	var elts []ast.ExprID
	ast.Inspect(l.b, l.fid, func(id ast.ExprID) bool {
		if s, ok := l.b.Exprs.Set(id); ok && elts == nil {
			elts = s.Elts
		}
		return true
	})
	if elts == nil {
		t.Fatalf("no set in %q", src)
	}
	ctx := lint.NewContext(l.b, l.file, diag.NopReporter{})
	return ctx, elts, scan(ctx, elts)
}

func TestScanOrderAndCountLaw(t *testing.T) {
	ctx, elts, res := scanOf(t, "{1, a, 2, 1, a, 2, 3, 'x', 'x', g(), g()}\n")
	wantUnique := []int{0, 1, 2, 4, 6, 7, 9, 10}
	wantDup := []int{3, 5, 8}
	if !slices.Equal(res.unique, wantUnique) || !slices.Equal(res.duplicate, wantDup) {
		t.Fatalf("scan = %v / %v, want %v / %v", res.unique, res.duplicate, wantUnique, wantDup)
	}
	if len(res.unique)+len(res.duplicate) != len(elts) {
		t.Fatalf("indices lost")
	}

	// ключи уникальных литералов совпадают с ключами всех литералов
	all := map[comparable.Key]struct{}{}
	kept := map[comparable.Key]struct{}{}
	literals := 0
	for i, elt := range elts {
		if !ctx.IsLiteral(elt) {
			continue
		}
		literals++
		all[ctx.Key(elt)] = struct{}{}
		for _, u := range res.unique {
			if u == i {
				kept[ctx.Key(elt)] = struct{}{}
			}
		}
	}
	if len(all) != len(kept) {
		t.Fatalf("unique elements lost a value: %d of %d", len(kept), len(all))
	}
	if len(res.duplicate) != literals-len(all) {
		t.Fatalf("count law: %d duplicates, %d literals, %d distinct", len(res.duplicate), literals, len(all))
	}
}

func TestScanNoDuplicates(t *testing.T) {
	for _, src := range []string{"{1, 2, 3}\n", "{a, b, a}\n", "{f(), f()}\n"} {
		_, elts, res := scanOf(t, src)
		if len(res.duplicate) != 0 || len(res.unique) != len(elts) {
			t.Fatalf("%q: scan = %v / %v", src, res.unique, res.duplicate)
		}
	}
}

func TestSynthesizeFixPropagatesGeneratorErrors(t *testing.T) {
	ctx, elts, _ := scanOf(t, "{1, 1}\n")
	_, err := synthesizeFix(ctx, ast.NoExprID, append(elts, ast.ExprID(9999)), []int{0, 2})
	if err == nil {
		t.Fatalf("want error for a dangling element")
	}
}

func TestFixAppliesOnceAndIsIdempotent(t *testing.T) {
	sources := []string{
		"x = {1, 2, 3, 1}\n",
		"x = {1, 2, 2, 2}\n",
		"s = {'a', \"a\", b'a', 1, 1.0, 0x1}\n",
		"def f():\n    return {None, None, (1, 'a'), (1, \"a\")}\n",
		"x = {1, 1, f({2, 2})}\n",
	}
	for _, src := range sources {
		t.Run(src, func(t *testing.T) {
			content := src
			for pass := 0; pass < 3; pass++ {
				l := lintSource(t, content)
				if len(l.diags) == 0 {
					if pass == 0 {
						t.Fatalf("expected diagnostics on the first pass")
					}
					return
				}
				res, err := fix.Apply(l.fs, l.diags, fix.ApplyOptions{Mode: fix.ApplyModeAll, DryRun: true})
				if err != nil {
					t.Fatalf("apply: %v", err)
				}
				for _, skip := range res.Skipped {
					if skip.Reason != "duplicate fix id" && !strings.HasPrefix(skip.Reason, "conflicts with") {
						t.Fatalf("unexpected skip %+v", skip)
					}
				}
				content = string(res.FileChanges[0].Content)
			}
			t.Fatalf("still has diagnostics after 3 passes: %q", content)
		})
	}
}

func TestSharedFixMergedByEngine(t *testing.T) {
	l := lintSource(t, "x = {1, 2, 2, 2}\n")
	res, err := fix.Apply(l.fs, l.diags, fix.ApplyOptions{Mode: fix.ApplyModeAll, DryRun: true})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if len(res.Applied) != 1 {
		t.Fatalf("applied %d fixes, want 1", len(res.Applied))
	}
	if len(res.Skipped) != 1 || res.Skipped[0].Reason != "duplicate fix id" {
		t.Fatalf("skipped = %+v", res.Skipped)
	}
	if got := string(res.FileChanges[0].Content); got != "x = {1, 2}\n" {
		t.Fatalf("content = %q", got)
	}
}

func TestRegistered(t *testing.T) {
	r, ok := lint.Lookup("B033")
	if !ok || r != Rule {
		t.Fatalf("B033 not registered")
	}
	if !r.Fixable {
		t.Fatalf("B033 must be fixable")
	}
}
