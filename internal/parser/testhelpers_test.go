package parser

import (
	"fmt"
	"strings"
	"testing"

	"setlint/internal/ast"
	"setlint/internal/diag"
	"setlint/internal/source"
)

type parsed struct {
	b    *ast.Builder
	file ast.FileID
	bag  *diag.Bag
	src  *source.File
}

func parseTestInput(t *testing.T, input string) parsed {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.py", []byte(input))
	src := fs.Get(id)
	bag := diag.NewBag(100)
	b := ast.NewBuilder(ast.Hints{}, nil)
	res := ParseSource(src, b, Options{Reporter: diag.BagReporter{Bag: bag}})
	return parsed{b: b, file: res.File, bag: bag, src: src}
}

// mustParse fails the test if parsing produced any diagnostics.
func mustParse(t *testing.T, input string) parsed {
	t.Helper()
	p := parseTestInput(t, input)
	if p.bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics for %q: %s", input, diagnosticsSummary(p.bag))
	}
	return p
}

func diagnosticsSummary(bag *diag.Bag) string {
	if bag == nil {
		return "<nil bag>"
	}
	diags := bag.Items()
	if len(diags) == 0 {
		return "<none>"
	}
	lines := make([]string, len(diags))
	for i, d := range diags {
		lines[i] = fmt.Sprintf("[%s] %s", d.Code.ID(), d.Message)
	}
	return strings.Join(lines, "; ")
}

func (p parsed) body() []ast.StmtID {
	return p.b.Files.Get(p.file).Body
}

// exprOf returns the single expression of the n-th top-level expression statement.
func (p parsed) exprOf(t *testing.T, n int) ast.ExprID {
	t.Helper()
	body := p.body()
	if n >= len(body) {
		t.Fatalf("want statement %d, have %d", n, len(body))
	}
	st := p.b.Stmts.Get(body[n])
	if st.Kind != ast.StmtExpr {
		t.Fatalf("statement %d: want Expr, got %s", n, st.Kind)
	}
	data, _ := p.b.Stmts.SimpleData(body[n])
	return data.Values[0]
}

func (p parsed) text(id ast.ExprID) string {
	return p.src.Slice(p.b.Exprs.Get(id).Span)
}

func (p parsed) kind(id ast.ExprID) ast.ExprKind {
	return p.b.Exprs.Get(id).Kind
}

// count returns how many expressions of kind the file contains.
func (p parsed) count(kind ast.ExprKind) int {
	n := 0
	ast.Inspect(p.b, p.file, func(id ast.ExprID) bool {
		if p.kind(id) == kind {
			n++
		}
		return true
	})
	return n
}
