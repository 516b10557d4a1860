package lexer_test

import (
	"fmt"
	"strings"
	"testing"

	"setlint/internal/diag"
	"setlint/internal/lexer"
	"setlint/internal/source"
	"setlint/internal/token"
)

func makeTestLexer(input string) (*lexer.Lexer, *diag.Bag) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.py", []byte(input)))
	bag := diag.NewBag(32)
	return lexer.New(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}}), bag
}

func collectAllTokens(lx *lexer.Lexer) []token.Token {
	tokens := make([]token.Token, 0)
	for {
		tok := lx.Next()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			return tokens
		}
	}
}

func tokensToString(tokens []token.Token) string {
	parts := make([]string, len(tokens))
	for i, tok := range tokens {
		parts[i] = fmt.Sprintf("%v(%q)", tok.Kind, tok.Text)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// expectTokens сравнивает последовательность видов токенов (без EOF).
func expectTokens(t *testing.T, input string, expected ...token.Kind) []token.Token {
	t.Helper()
	lx, bag := makeTestLexer(input)
	tokens := collectAllTokens(lx)
	tokens = tokens[:len(tokens)-1]

	if len(tokens) != len(expected) {
		t.Fatalf("Expected %d tokens, got %d\nInput: %q\nTokens: %v\nDiags: %v",
			len(expected), len(tokens), input, tokensToString(tokens), bag.Items())
	}
	for i, tok := range tokens {
		if tok.Kind != expected[i] {
			t.Errorf("Token %d: expected %v, got %v (text: %q)", i, expected[i], tok.Kind, tok.Text)
		}
	}
	return tokens
}

func expectSingleToken(t *testing.T, input string, kind token.Kind) {
	t.Helper()
	lx, bag := makeTestLexer(input)
	tok := lx.Next()
	if tok.Kind != kind {
		t.Errorf("%q: expected kind %v, got %v", input, kind, tok.Kind)
	}
	if tok.Text != input {
		t.Errorf("%q: expected text %q, got %q", input, input, tok.Text)
	}
	if bag.Len() != 0 {
		t.Errorf("%q: unexpected diagnostics %v", input, bag.Items())
	}
}

func TestIdentifiersAndKeywords(t *testing.T) {
	for _, in := range []string{"foo", "_bar", "__init__", "x123", "match", "case", "_", "переменная", "ﬁle"} {
		expectSingleToken(t, in, token.Ident)
	}
	expectSingleToken(t, "None", token.KwNone)
	expectSingleToken(t, "lambda", token.KwLambda)
	expectSingleToken(t, "True", token.KwTrue)
}

func TestNumbers(t *testing.T) {
	cases := []struct {
		in   string
		kind token.Kind
	}{
		{"0", token.IntLit},
		{"123", token.IntLit},
		{"1_000", token.IntLit},
		{"0x1F", token.IntLit},
		{"0o17", token.IntLit},
		{"0b1010", token.IntLit},
		{"00", token.IntLit},
		{"1.5", token.FloatLit},
		{"1.", token.FloatLit},
		{".5", token.FloatLit},
		{"1e10", token.FloatLit},
		{"1.5E-3", token.FloatLit},
		{"2j", token.ImagLit},
		{"1.5J", token.ImagLit},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			expectSingleToken(t, tc.in, tc.kind)
		})
	}
}

func TestBadNumbers(t *testing.T) {
	for _, in := range []string{"012", "1__0", "1_", "0x", "0b2"} {
		_, bag := func() (*lexer.Lexer, *diag.Bag) {
			lx, bag := makeTestLexer(in)
			collectAllTokens(lx)
			return lx, bag
		}()
		if bag.Len() == 0 || bag.Items()[0].Code != diag.LexBadNumber {
			t.Errorf("%q: expected LexBadNumber, got %v", in, bag.Items())
		}
	}
}

func TestStrings(t *testing.T) {
	cases := []struct {
		in   string
		kind token.Kind
	}{
		{`"a"`, token.StringLit},
		{`'a'`, token.StringLit},
		{`"it's"`, token.StringLit},
		{`'\''`, token.StringLit},
		{`r"\d"`, token.StringLit},
		{`U"x"`, token.StringLit},
		{`b"x"`, token.BytesLit},
		{`Rb'x'`, token.BytesLit},
		{`f"{x}"`, token.FStringLit},
		{`rf"{x!r:>10}"`, token.FStringLit},
		{`f"{x["k"]}"`, token.FStringLit},
		{`f"{{literal}}"`, token.FStringLit},
		{"'''a\n'b'\n'''", token.StringLit},
		{`""""""`, token.StringLit},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			expectSingleToken(t, tc.in, tc.kind)
		})
	}
}

func TestInvalidPrefixIsIdentifier(t *testing.T) {
	expectTokens(t, `bf"x"`, token.Ident, token.StringLit, token.Newline)
	expectTokens(t, `ur"x"`, token.Ident, token.StringLit, token.Newline)
}

func TestUnterminatedString(t *testing.T) {
	lx, bag := makeTestLexer("x = 'abc\ny = 1\n")
	tokens := collectAllTokens(lx)
	if bag.Len() != 1 || bag.Items()[0].Code != diag.LexUnterminatedString {
		t.Fatalf("expected one unterminated string error, got %v", bag.Items())
	}
	// лексер продолжает со следующей строки
	var sawY bool
	for _, tok := range tokens {
		if tok.Kind == token.Ident && tok.Text == "y" {
			sawY = true
		}
	}
	if !sawY {
		t.Fatalf("lexer did not recover: %s", tokensToString(tokens))
	}
}

func TestOperatorsGreedy(t *testing.T) {
	expectTokens(t, "a **= b // c ... d := e -> f != g",
		token.Ident, token.DoubleStarAssign, token.Ident, token.DoubleSlash, token.Ident,
		token.Ellipsis, token.Ident, token.ColonEq, token.Ident, token.Arrow, token.Ident,
		token.NotEq, token.Ident, token.Newline)
}

func TestLogicalLines(t *testing.T) {
	src := "x = {1,\n  2}  # trailing\n\n# only comment\ny = 1 + \\\n  2"
	tokens := expectTokens(t, src,
		token.Ident, token.Assign, token.LBrace, token.IntLit, token.Comma, token.IntLit, token.RBrace, token.Newline,
		token.Ident, token.Assign, token.IntLit, token.Plus, token.IntLit, token.Newline)

	// комментарии и пустые строки попадают в trivia следующего токена
	var kinds []token.TriviaKind
	for _, tr := range tokens[8].Leading {
		kinds = append(kinds, tr.Kind)
	}
	want := []token.TriviaKind{token.TriviaNewline, token.TriviaComment, token.TriviaNewline}
	if fmt.Sprint(kinds) != fmt.Sprint(want) {
		t.Fatalf("unexpected leading trivia %v", kinds)
	}
	if tokens[7].Leading[1].Kind != token.TriviaComment || tokens[7].Leading[1].Text != "# trailing" {
		t.Fatalf("trailing comment not attached to Newline: %+v", tokens[7].Leading)
	}
	// последний Newline синтетический (пустой span)
	if !tokens[13].Span.Empty() {
		t.Fatalf("expected synthetic newline at EOF, got %v", tokens[13].Span)
	}
}

func TestBlankFileHasNoNewline(t *testing.T) {
	expectTokens(t, "\n\n   # nothing\n")
}

func TestUnmatchedBracket(t *testing.T) {
	lx, bag := makeTestLexer("x)\n")
	collectAllTokens(lx)
	if bag.Len() != 1 || bag.Items()[0].Code != diag.LexUnmatchedBracket {
		t.Fatalf("expected unmatched bracket error, got %v", bag.Items())
	}
}

func TestUnknownChar(t *testing.T) {
	lx, bag := makeTestLexer("a $ b")
	tokens := collectAllTokens(lx)
	if tokens[1].Kind != token.Invalid {
		t.Fatalf("expected Invalid, got %v", tokens[1].Kind)
	}
	if bag.Len() != 1 || bag.Items()[0].Code != diag.LexUnknownChar {
		t.Fatalf("expected LexUnknownChar, got %v", bag.Items())
	}
}

func TestSpansCoverText(t *testing.T) {
	src := "s = {'a', b'b', 0x1}\n"
	lx, _ := makeTestLexer(src)
	for _, tok := range collectAllTokens(lx) {
		if got := src[tok.Span.Start:tok.Span.End]; got != tok.Text {
			t.Errorf("span text %q != token text %q", got, tok.Text)
		}
	}
}

func TestNormalizeIdent(t *testing.T) {
	if got := lexer.NormalizeIdent("ﬁle"); got != "file" {
		t.Fatalf("NormalizeIdent(ﬁle) = %q", got)
	}
	if got := lexer.NormalizeIdent("plain"); got != "plain" {
		t.Fatalf("NormalizeIdent(plain) = %q", got)
	}
}

func TestIndentDedent(t *testing.T) {
	src := "if a:\n    x = 1\n    if b:\n\ty\nz\n"
	expectTokens(t, src,
		token.KwIf, token.Ident, token.Colon, token.Newline,
		token.Indent, token.Ident, token.Assign, token.IntLit, token.Newline,
		token.KwIf, token.Ident, token.Colon, token.Newline,
		token.Indent, token.Ident, token.Newline,
		token.Dedent, token.Dedent, token.Ident, token.Newline)
}

func TestDedentsClosedAtEOF(t *testing.T) {
	expectTokens(t, "def f():\n  return {1}",
		token.KwDef, token.Ident, token.LParen, token.RParen, token.Colon, token.Newline,
		token.Indent, token.KwReturn, token.LBrace, token.IntLit, token.RBrace, token.Newline,
		token.Dedent)
}

func TestBadDedent(t *testing.T) {
	lx, bag := makeTestLexer("if a:\n    x\n  y\n")
	collectAllTokens(lx)
	if bag.Len() != 1 || bag.Items()[0].Code != diag.LexBadDedent {
		t.Fatalf("expected LexBadDedent, got %v", bag.Items())
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	lx, _ := makeTestLexer("a b")
	if p := lx.Peek(); p.Text != "a" {
		t.Fatalf("Peek() = %q", p.Text)
	}
	if n := lx.Next(); n.Text != "a" {
		t.Fatalf("Next() after Peek = %q", n.Text)
	}
	if n := lx.Next(); n.Text != "b" {
		t.Fatalf("second Next() = %q", n.Text)
	}
}
