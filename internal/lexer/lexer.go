package lexer

import (
	"setlint/internal/diag"
	"setlint/internal/source"
	"setlint/internal/token"
)

// maxTokenLength bounds a single token; longer input is reported and the
// rest of the file is skipped.
const maxTokenLength = 1 << 16

// tabSize follows the CPython tokenizer: a tab advances to the next multiple of 8.
const tabSize = 8

type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	queue  []token.Token  // готовые токены (Indent/Dedent + отложенный токен)
	hold   []token.Trivia // накопленные leading trivia

	// depth counts open brackets; line breaks inside brackets are trivia.
	depth int
	// lineHasToken is set once the current logical line produced a token.
	lineHasToken bool
	// indents is the stack of open indentation columns; the bottom is 0.
	indents []int
	done    bool
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:    file,
		cursor:  NewCursor(file),
		opts:    opts,
		indents: []int{0},
	}
}

// Next возвращает следующий значимый токен с уже собранным Leading.
// Каждая непустая логическая строка завершается Newline, включая последнюю;
// перед EOF закрываются все открытые уровни отступа.
// После EOF всегда возвращает EOF.
func (lx *Lexer) Next() token.Token {
	if len(lx.queue) > 0 {
		tok := lx.queue[0]
		lx.queue = lx.queue[1:]
		return tok
	}
	if lx.done {
		return token.Token{Kind: token.EOF, Span: lx.emptySpan()}
	}

	if nl, ok := lx.collectLeadingTrivia(); ok {
		nl.Leading = lx.takeHold()
		lx.lineHasToken = false
		return nl
	}

	if lx.cursor.EOF() {
		return lx.finish()
	}

	atLineStart := !lx.lineHasToken && lx.depth == 0
	tok := lx.scanToken()
	tok.Leading = lx.takeHold()
	if tok.Kind == token.Invalid && tok.Span.Len() > maxTokenLength {
		return tok
	}
	lx.lineHasToken = true

	if atLineStart {
		if pre := lx.indentTokens(tok); len(pre) > 0 {
			lx.queue = append(lx.queue, pre[1:]...)
			lx.queue = append(lx.queue, tok)
			return pre[0]
		}
	}
	return tok
}

func (lx *Lexer) scanToken() token.Token {
	ch := lx.cursor.Peek()
	var tok token.Token

	switch {
	case isIdentStartByte(ch) || ch >= runeSelf:
		tok = lx.scanIdentOrKeyword()
	case isDec(ch):
		tok = lx.scanNumber()
	case ch == '.' && lx.isNumberAfterDot():
		tok = lx.scanNumber()
	case ch == '"' || ch == '\'':
		tok = lx.scanString(lx.cursor.Mark(), 0)
	default:
		tok = lx.scanOperatorOrPunct()
	}

	if tok.Span.Len() > maxTokenLength {
		lx.errLex(diag.LexTokenTooLong, tok.Span, "token exceeds maximum length")
		lx.cursor.Off = lx.cursor.Limit
		lx.lineHasToken = false
		lx.indents = lx.indents[:1]
		lx.done = true
		tok = token.Token{Kind: token.Invalid, Span: tok.Span}
	}
	return tok
}

// indentTokens compares the column of the first token of a logical line
// with the indentation stack and returns the Indent/Dedent tokens to emit
// before it.
func (lx *Lexer) indentTokens(first token.Token) []token.Token {
	col := lx.column(first.Span.Start)
	top := lx.indents[len(lx.indents)-1]
	at := source.Span{File: lx.file.ID, Start: first.Span.Start, End: first.Span.Start}

	switch {
	case col == top:
		return nil
	case col > top:
		lx.indents = append(lx.indents, col)
		return []token.Token{{Kind: token.Indent, Span: at}}
	}

	var out []token.Token
	for len(lx.indents) > 1 && lx.indents[len(lx.indents)-1] > col {
		lx.indents = lx.indents[:len(lx.indents)-1]
		out = append(out, token.Token{Kind: token.Dedent, Span: at})
	}
	if lx.indents[len(lx.indents)-1] != col {
		lx.errLex(diag.LexBadDedent, first.Span, "unindent does not match any outer indentation level")
		lx.indents = append(lx.indents, col)
	}
	return out
}

// column measures the indentation width of the line containing off.
func (lx *Lexer) column(off uint32) int {
	start := off
	for start > 0 && lx.file.Content[start-1] != '\n' {
		start--
	}
	col := 0
	for i := start; i < off; i++ {
		switch lx.file.Content[i] {
		case '\t':
			col = (col/tabSize + 1) * tabSize
		case '\f':
			col = 0
		default:
			col++
		}
	}
	return col
}

// finish emits the trailing Newline and Dedent tokens followed by EOF.
func (lx *Lexer) finish() token.Token {
	lx.done = true
	sp := lx.emptySpan()
	// Leading из hold к EOF не приклеиваем
	lx.hold = nil
	if lx.lineHasToken {
		lx.queue = append(lx.queue, token.Token{Kind: token.Newline, Span: sp})
		lx.lineHasToken = false
	}
	for len(lx.indents) > 1 {
		lx.indents = lx.indents[:len(lx.indents)-1]
		lx.queue = append(lx.queue, token.Token{Kind: token.Dedent, Span: sp})
	}
	lx.queue = append(lx.queue, token.Token{Kind: token.EOF, Span: sp})
	return lx.Next()
}

// Peek возвращает следующий токен, не потребляя его.
func (lx *Lexer) Peek() token.Token {
	t := lx.Next()
	lx.queue = append([]token.Token{t}, lx.queue...)
	return t
}

// Depth reports the current bracket nesting.
func (lx *Lexer) Depth() int { return lx.depth }

func (lx *Lexer) takeHold() []token.Trivia {
	if len(lx.hold) == 0 {
		return nil
	}
	out := lx.hold
	lx.hold = nil
	return out
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}

func (lx *Lexer) text(sp source.Span) string {
	return string(lx.file.Content[sp.Start:sp.End])
}

// Tokenize lexes the whole file, including the trailing EOF token.
func Tokenize(file *source.File, opts Options) []token.Token {
	lx := New(file, opts)
	out := make([]token.Token, 0, len(file.Content)/4+1)
	for {
		tok := lx.Next()
		out = append(out, tok)
		if tok.Kind == token.EOF {
			return out
		}
	}
}
