package lexer

import (
	"strings"

	"setlint/internal/diag"
	"setlint/internal/token"
)

// scanIdentOrKeyword сканирует Ident, ключевое слово или строку с префиксом
// (r"...", b'...', f"""...""" и т.д.). Token.Text - ровно исходный срез.
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()

	r, sz := lx.peekRune()
	if sz == 0 {
		sp := lx.cursor.SpanFrom(start)
		return token.Token{Kind: token.Invalid, Span: sp}
	}
	if r < runeSelf {
		lx.cursor.Bump()
		for isIdentContinueByte(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
	} else {
		if !isIdentStartRune(r) {
			lx.bumpRune()
			sp := lx.cursor.SpanFrom(start)
			lx.errLex(diag.LexUnknownChar, sp, "invalid character in identifier")
			return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
		}
		lx.bumpRune()
	}
	for {
		b := lx.cursor.Peek()
		if b < runeSelf {
			if !isIdentContinueByte(b) {
				break
			}
			lx.cursor.Bump()
			continue
		}
		r2, sz2 := lx.peekRune()
		if sz2 == 0 || !isIdentContinueRune(r2) {
			break
		}
		lx.bumpRune()
	}

	sp := lx.cursor.SpanFrom(start)
	text := lx.text(sp)

	if q := lx.cursor.Peek(); (q == '"' || q == '\'') && len(text) <= 2 {
		if flags, ok := stringPrefix(text); ok {
			return lx.scanString(start, flags)
		}
	}

	if k, ok := token.LookupKeyword(text); ok {
		return token.Token{Kind: k, Span: sp, Text: text}
	}
	return token.Token{Kind: token.Ident, Span: sp, Text: text}
}

type prefixFlags uint8

const (
	prefixRaw prefixFlags = 1 << iota
	prefixBytes
	prefixFormat
	prefixUnicode
)

// stringPrefix validates a literal prefix such as "rb" or "F".
func stringPrefix(text string) (prefixFlags, bool) {
	var flags prefixFlags
	for _, c := range strings.ToLower(text) {
		var f prefixFlags
		switch c {
		case 'r':
			f = prefixRaw
		case 'b':
			f = prefixBytes
		case 'f':
			f = prefixFormat
		case 'u':
			f = prefixUnicode
		default:
			return 0, false
		}
		if flags&f != 0 {
			return 0, false
		}
		flags |= f
	}
	switch {
	case flags&prefixUnicode != 0 && flags != prefixUnicode:
		return 0, false
	case flags&prefixBytes != 0 && flags&prefixFormat != 0:
		return 0, false
	}
	return flags, true
}
