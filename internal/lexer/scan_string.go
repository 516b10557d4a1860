package lexer

import (
	"setlint/internal/diag"
	"setlint/internal/token"
)

// scanString сканирует строковый литерал; курсор стоит на открывающей кавычке,
// start указывает на начало префикса (если он есть).
// Escape-последовательности не декодируются: "\" просто съедает следующий байт.
// Для f-строк отслеживаются поля {...}, внутри которых допускаются вложенные строки.
func (lx *Lexer) scanString(start Mark, flags prefixFlags) token.Token {
	kind := token.StringLit
	switch {
	case flags&prefixBytes != 0:
		kind = token.BytesLit
	case flags&prefixFormat != 0:
		kind = token.FStringLit
	}

	if !lx.scanQuoted(flags&prefixFormat != 0) {
		sp := lx.cursor.SpanFrom(start)
		return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
	}
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: kind, Span: sp, Text: lx.text(sp)}
}

// scanQuoted consumes one quoted body and reports whether it was terminated.
func (lx *Lexer) scanQuoted(format bool) bool {
	start := lx.cursor.Mark()
	quote := lx.cursor.Bump()
	triple := false
	if lx.cursor.Peek() == quote && lx.cursor.PeekAt(1) == quote {
		lx.cursor.Off += 2
		triple = true
	}

	fieldDepth := 0
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch {
		case b == '\\':
			lx.cursor.Bump()
			lx.cursor.Bump()
			continue
		case b == '\n' && !triple && fieldDepth == 0:
			sp := lx.cursor.SpanFrom(start)
			lx.errLex(diag.LexUnterminatedString, sp, "unterminated string literal")
			return false
		case format && b == '{':
			if fieldDepth == 0 && lx.cursor.PeekAt(1) == '{' {
				lx.cursor.Off += 2
				continue
			}
			fieldDepth++
		case format && b == '}' && fieldDepth > 0:
			fieldDepth--
		case format && fieldDepth > 0 && (b == '"' || b == '\''):
			// вложенная строка внутри поля f-строки
			if !lx.scanQuoted(false) {
				return false
			}
			continue
		case b == quote && fieldDepth == 0:
			if !triple {
				lx.cursor.Bump()
				return true
			}
			if lx.cursor.PeekAt(1) == quote && lx.cursor.PeekAt(2) == quote {
				lx.cursor.Off += 3
				return true
			}
		}
		lx.cursor.Bump()
	}

	sp := lx.cursor.SpanFrom(start)
	if triple {
		lx.errLex(diag.LexUnterminatedString, sp, "unterminated triple-quoted string literal")
	} else {
		lx.errLex(diag.LexUnterminatedString, sp, "unterminated string literal")
	}
	return false
}
