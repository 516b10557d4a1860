package comparable

import (
	"testing"

	"setlint/internal/ast"
	"setlint/internal/diag"
	"setlint/internal/parser"
	"setlint/internal/source"
)

// parseExpr parses a single expression statement and returns its root.
func parseExpr(t *testing.T, b *ast.Builder, src string) ast.ExprID {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("key.py", []byte(src+"\n")))
	bag := diag.NewBag(10)
	res := parser.ParseSource(file, b, parser.Options{Reporter: diag.BagReporter{Bag: bag}})
	if bag.Len() != 0 {
		t.Fatalf("parse %q: %d diagnostics", src, bag.Len())
	}
	body := b.Files.Get(res.File).Body
	data, ok := b.Stmts.SimpleData(body[0])
	if !ok || len(data.Values) != 1 {
		t.Fatalf("parse %q: not an expression statement", src)
	}
	return data.Values[0]
}

func keysOf(t *testing.T, a, b string) (Key, Key) {
	t.Helper()
	builder := ast.NewBuilder(ast.Hints{}, nil)
	ida := parseExpr(t, builder, a)
	idb := parseExpr(t, builder, b)
	return KeyOf(builder.Exprs, builder.Strings, ida), KeyOf(builder.Exprs, builder.Strings, idb)
}

func TestKeyEquality(t *testing.T) {
	tests := []struct {
		a, b string
	}{
		{"1", "1"},
		{"1", "0x1"},
		{"10", "0b1010"},
		{"8", "0o10"},
		{"1_000", "1000"},
		{"123456789012345678901234567890", "0x18EE90FF6C373E0EE4E3F0AD2"},
		{"1.0", "1.00"},
		{"1.5", "15e-1"},
		{"1e500", "2e500"},
		{"2j", "2.0J"},
		{"'a'", `"a"`},
		{"'a'", "'''a'''"},
		{`"ab"`, `"a" "b"`},
		{`'\n'`, `"\x0a"`},
		{`'é'`, `'é'`},
		{`r'\d'`, `'\\d'`},
		{`b'a'`, `B"a"`},
		{`b'\x61'`, `b'a'`},
		{`f'a{{b}}'`, `f"a{{b}}"`},
		{"True", "True"},
		{"None", "None"},
		{"...", "..."},
		{"(1, 2)", "(1,2)"},
		{"(1, 'a')", "(0x1, \"a\")"},
		{"((1))", "1"},
		{"x", "x"},
		{"a.b(c, d=1)", "a . b ( c , d = 1 )"},
		{"-1", "- 1"},
		{"[1, {2: 3}]", "[1,{2:3}]"},
	}
	for _, tt := range tests {
		t.Run(tt.a+"=="+tt.b, func(t *testing.T) {
			ka, kb := keysOf(t, tt.a, tt.b)
			if ka != kb {
				t.Fatalf("keys differ:\n%q\n%q", ka, kb)
			}
		})
	}
}

func TestKeyInequality(t *testing.T) {
	tests := []struct {
		a, b string
	}{
		{"1", "1.0"},
		{"1", "True"},
		{"0", "False"},
		{"1", "'1'"},
		{`b"a"`, `"a"`},
		{"1", "1j"},
		{"1", "2"},
		{"'a'", "'A'"},
		{"(1, 2)", "(2, 1)"},
		{"(1,)", "1"},
		{"[1]", "(1,)"},
		{"None", "..."},
		{"x", "y"},
		{"f(x)", "f(y)"},
		{"a - b", "b - a"},
		{`f'{x}'`, `f'{y}'`},
		{`f'a'`, `'a'`},
		{`f'a{{b}}'`, `'a{b}'`},
		{`'\N{BULLET}'`, `'\\N{BULLET}'`},
		{`'\\'`, `'\\\\'`},
		{"-1", "1"},
		{"a < b", "a <= b"},
		{"a and b", "a or b"},
	}
	for _, tt := range tests {
		t.Run(tt.a+"!="+tt.b, func(t *testing.T) {
			ka, kb := keysOf(t, tt.a, tt.b)
			if ka == kb {
				t.Fatalf("keys should differ: %q", ka)
			}
		})
	}
}

func TestIsLiteral(t *testing.T) {
	tests := []struct {
		src  string
		want bool
	}{
		{"1", true},
		{"1.5", true},
		{"2j", true},
		{"'a'", true},
		{"'a' 'b'", true},
		{"b'a'", true},
		{"True", true},
		{"None", true},
		{"...", true},
		{"(1)", true},
		{"(1, 'a', (None,))", true},
		{"()", true},
		{"f'plain'", false},
		{"f'{x}'", false},
		{"'a' f'{x}'", false},
		{"-1", false},
		{"x", false},
		{"x.y", false},
		{"f()", false},
		{"(1, x)", false},
		{"[1]", false},
		{"{1}", false},
		{"1 + 2", false},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			b := ast.NewBuilder(ast.Hints{}, nil)
			id := parseExpr(t, b, tt.src)
			if got := IsLiteral(b.Exprs, b.Strings, id); got != tt.want {
				t.Fatalf("IsLiteral(%s) = %v, want %v", tt.src, got, tt.want)
			}
		})
	}
}

func TestKeyInvalidID(t *testing.T) {
	b := ast.NewBuilder(ast.Hints{}, nil)
	if k := KeyOf(b.Exprs, b.Strings, ast.NoExprID); k != "_" {
		t.Fatalf("key of NoExprID = %q", k)
	}
}

func TestDecodeString(t *testing.T) {
	tests := []struct {
		text    string
		value   string
		isBytes bool
		ok      bool
	}{
		{`'abc'`, "abc", false, true},
		{`"a\tb"`, "a\tb", false, true},
		{`'\101'`, "A", false, true},
		{`'\0'`, "\x00", false, true},
		{`'\q'`, `\q`, false, true},
		{`b'A'`, `A`, true, true},
		{`'\U0001F600'`, "\U0001F600", false, true},
		{`'\ud800'`, "", false, false},
		{`'\N{DASH}'`, "", false, false},
		{`rb'\x00'`, `\x00`, true, true},
		{`'''a\
b'''`, "ab", false, true},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			value, isBytes, ok := decodeString(tt.text)
			if ok != tt.ok || (ok && (value != tt.value || isBytes != tt.isBytes)) {
				t.Fatalf("decodeString(%s) = %q, %v, %v", tt.text, value, isBytes, ok)
			}
		})
	}
}
