package lint

import (
	"context"
	"strings"
	"testing"

	"setlint/internal/diag"
)

func TestParseNoqa(t *testing.T) {
	tests := []struct {
		comment string
		ok      bool
		codes   []string
	}{
		{"# noqa", true, nil},
		{"#noqa", true, nil},
		{"# NOQA", true, nil},
		{"# noqa: B033", true, []string{"B033"}},
		{"# noqa:b033,X1", true, []string{"B033", "X1"}},
		{"# noqa: B033 X1", true, []string{"B033", "X1"}},
		{"# type: ignore # noqa: B033", true, []string{"B033"}},
		{"# noqa: not a code", true, nil},
		{"# no qa", false, nil},
		{"# plain comment", false, nil},
	}
	for _, tt := range tests {
		t.Run(tt.comment, func(t *testing.T) {
			entry, ok := parseNoqa(tt.comment)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if !ok {
				return
			}
			if tt.codes == nil {
				if entry.codes != nil {
					t.Fatalf("want blanket noqa, got codes %v", entry.codes)
				}
				return
			}
			if len(entry.codes) != len(tt.codes) {
				t.Fatalf("codes = %v, want %v", entry.codes, tt.codes)
			}
			for _, c := range tt.codes {
				if _, ok := entry.codes[c]; !ok {
					t.Fatalf("missing code %s in %v", c, entry.codes)
				}
			}
		})
	}
}

func TestCollectNoqaSkipsUnmarkedFiles(t *testing.T) {
	p := parse(t, "x = {1, 1}\n")
	if n := CollectNoqa(p.file); n != nil {
		t.Fatalf("CollectNoqa = %v, want nil", n)
	}
}

func TestNoqaSuppression(t *testing.T) {
	src := strings.Join([]string{
		"a = {1}  # noqa",
		"b = {2}  # noqa: B033",
		"c = {3}  # noqa: X100",
		"d = {4}",
		"e = {",
		"    5,",
		"}  # noqa",
		"",
	}, "\n")
	p := parse(t, src)
	noqa := CollectNoqa(p.file)
	if len(noqa) != 4 {
		t.Fatalf("collected %d noqa lines, want 4", len(noqa))
	}
	var seen []string
	bag := diag.NewBag(10)
	err := Run(context.Background(), p.b, p.id, p.file, Options{
		Rules:    []*Rule{spanRule(diag.LintDuplicateSetValue, &seen)},
		Reporter: diag.BagReporter{Bag: bag},
		Noqa:     noqa,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	var kept []string
	for _, d := range bag.Items() {
		kept = append(kept, p.file.Slice(d.Primary))
	}
	// диагностика многострочного множества начинается на строке 5, без noqa
	want := []string{"{3}", "{4}", "{\n    5,\n}"}
	if strings.Join(kept, "|") != strings.Join(want, "|") {
		t.Fatalf("kept %q, want %q", kept, want)
	}
}

func TestNoqaNeverSuppressesSyntaxErrors(t *testing.T) {
	n := Noqa{1: noqaLine{}}
	if n.Suppresses(diag.SynUnexpectedToken, 1) {
		t.Fatalf("syntax errors must not be suppressed")
	}
	if !n.Suppresses(diag.LintDuplicateSetValue, 1) {
		t.Fatalf("blanket noqa must suppress rules")
	}
	if n.Suppresses(diag.LintDuplicateSetValue, 2) {
		t.Fatalf("other lines must not be suppressed")
	}
}
