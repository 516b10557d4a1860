package generator

import (
	"errors"
	"testing"

	"setlint/internal/ast"
	"setlint/internal/diag"
	"setlint/internal/parser"
	"setlint/internal/source"
)

func parseExpr(t *testing.T, src string) (*ast.Builder, ast.ExprID) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("gen.py", []byte(src+"\n")))
	bag := diag.NewBag(10)
	b := ast.NewBuilder(ast.Hints{}, nil)
	res := parser.ParseSource(file, b, parser.Options{Reporter: diag.BagReporter{Bag: bag}})
	if bag.Len() != 0 {
		t.Fatalf("parse %q: %d diagnostics", src, bag.Len())
	}
	body := b.Files.Get(res.File).Body
	data, ok := b.Stmts.SimpleData(body[0])
	if !ok || len(data.Values) != 1 {
		t.Fatalf("parse %q: not an expression statement", src)
	}
	return b, data.Values[0]
}

func TestExprRoundTrip(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"1", "1"},
		{"0x_ff", "0x_ff"},
		{"x", "x"},
		{"'a'", "'a'"},
		{`'a'   "b"`, `'a' "b"`},
		{"('a'\n    'b')", "('a' 'b')"},
		{`f'{x!r}'`, `f'{x!r}'`},
		{"None", "None"},
		{"...", "..."},
		{"(1,2)", "(1, 2)"},
		{"(1,)", "(1,)"},
		{"()", "()"},
		{"[1,2]", "[1, 2]"},
		{"{1,2}", "{1, 2}"},
		{"{*a,b}", "{*a, b}"},
		{"{1:2,**m}", "{1: 2, **m}"},
		{"a+b*c", "a + b * c"},
		{"(a+b)*c", "(a + b) * c"},
		{"a**-b", "a ** -b"},
		{"not a", "not a"},
		{"~x", "~x"},
		{"a and b or c", "a and b or c"},
		{"a<b<=c", "a < b <= c"},
		{"x is not None", "x is not None"},
		{"x not in y", "x not in y"},
		{"a if b else c", "a if b else c"},
		{"x.y.z", "x.y.z"},
		{"1 .real", "1 .real"},
		{"f(x,*y,k=1,**z)", "f(x, *y, k=1, **z)"},
		{"f(x for x in y)", "f(x for x in y)"},
		{"(x for x in y)", "(x for x in y)"},
		{"[x for x in y if x if not x]", "[x for x in y if x if not x]"},
		{"{k: v for k, v in items}", "{k: v for k, v in items}"},
		{"{x async for x in y}", "{x async for x in y}"},
		{"a[1:2]", "a[1:2]"},
		{"a[::2]", "a[::2]"},
		{"a[i]", "a[i]"},
		{"lambda: 0", "lambda: 0"},
		{"lambda x, *a, k=1, **kw: x", "lambda x, *a, k=1, **kw: x"},
		{"(x := 1)", "(x := 1)"},
		{"(yield x)", "(yield x)"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			b, id := parseExpr(t, tt.src)
			got, err := New(b.Exprs, b.Strings).Expr(id)
			if err != nil {
				t.Fatalf("Expr: %v", err)
			}
			if got != tt.want {
				t.Fatalf("Expr(%s) = %q, want %q", tt.src, got, tt.want)
			}
		})
	}
}

func TestSet(t *testing.T) {
	b, id := parseExpr(t, "{1, 'a', (2, 3), 1}")
	set, ok := b.Exprs.Set(id)
	if !ok {
		t.Fatalf("not a set")
	}
	g := New(b.Exprs, b.Strings)

	got, err := g.Set(set.Elts[:3])
	if err != nil || got != "{1, 'a', (2, 3)}" {
		t.Fatalf("Set = %q, %v", got, err)
	}
	got, err = g.Set([]ast.ExprID{set.Elts[2], set.Elts[0]})
	if err != nil || got != "{(2, 3), 1}" {
		t.Fatalf("Set reordered = %q, %v", got, err)
	}
	got, err = g.Set(nil)
	if err != nil || got != "set()" {
		t.Fatalf("Set(nil) = %q, %v", got, err)
	}
}

func TestMalformed(t *testing.T) {
	b := ast.NewBuilder(ast.Hints{}, nil)
	g := New(b.Exprs, b.Strings)
	if _, err := g.Expr(ast.NoExprID); !errors.Is(err, ErrMalformed) {
		t.Fatalf("Expr(NoExprID) err = %v", err)
	}
	if _, err := g.Set([]ast.ExprID{42}); !errors.Is(err, ErrMalformed) {
		t.Fatalf("Set(bad) err = %v", err)
	}
	// генератор переиспользуется после ошибки
	id := b.Exprs.NewName(source.Span{}, b.Strings.Intern("ok"))
	if got, err := g.Expr(id); err != nil || got != "ok" {
		t.Fatalf("Expr after error = %q, %v", got, err)
	}
}
