package lexer

import (
	"setlint/internal/diag"
	"setlint/internal/token"
)

// Поддержка: 0, 123, 1_000, 0b..., 0o..., 0x..., 1.0, 1., .5, 1e-3, 1.0E+10, 2j, 1.5J.
// Неверные формы - репорт через errLex, токен по возможности завершаем.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	kind := token.IntLit

	emit := func() token.Token {
		sp := lx.cursor.SpanFrom(start)
		text := lx.text(sp)
		if badUnderscores(text) {
			lx.errLex(diag.LexBadNumber, sp, "invalid underscore placement in numeric literal")
		}
		return token.Token{Kind: kind, Span: sp, Text: text}
	}

	if lx.cursor.Peek() == '0' {
		var digit func(byte) bool
		switch lx.cursor.PeekAt(1) {
		case 'x', 'X':
			digit = isHex
		case 'o', 'O':
			digit = isOct
		case 'b', 'B':
			digit = isBin
		}
		if digit != nil {
			lx.cursor.Off += 2
			n := 0
			for {
				b := lx.cursor.Peek()
				if b == '_' {
					lx.cursor.Bump()
					continue
				}
				if !digit(b) {
					break
				}
				lx.cursor.Bump()
				n++
			}
			if n == 0 || isDec(lx.cursor.Peek()) {
				for isHex(lx.cursor.Peek()) {
					lx.cursor.Bump()
				}
				sp := lx.cursor.SpanFrom(start)
				lx.errLex(diag.LexBadNumber, sp, "invalid digit in numeric literal")
				return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
			}
			return emit()
		}
	}

	leadingZero := lx.cursor.Peek() == '0'
	lx.skipDecimal()

	if lx.cursor.Peek() == '.' {
		kind = token.FloatLit
		lx.cursor.Bump()
		lx.skipDecimal()
	}

	if b := lx.cursor.Peek(); b == 'e' || b == 'E' {
		mark := lx.cursor.Mark()
		lx.cursor.Bump()
		if s := lx.cursor.Peek(); s == '+' || s == '-' {
			lx.cursor.Bump()
		}
		if isDec(lx.cursor.Peek()) {
			kind = token.FloatLit
			lx.skipDecimal()
		} else {
			// "1else" и подобное: 'e' не относится к числу
			lx.cursor.Reset(mark)
		}
	}

	if b := lx.cursor.Peek(); b == 'j' || b == 'J' {
		lx.cursor.Bump()
		kind = token.ImagLit
	}

	if kind == token.IntLit && leadingZero {
		sp := lx.cursor.SpanFrom(start)
		for _, c := range lx.text(sp) {
			if c != '0' && c != '_' {
				lx.errLex(diag.LexBadNumber, sp, "leading zeros in decimal integer literals are not permitted")
				break
			}
		}
	}
	return emit()
}

func (lx *Lexer) skipDecimal() {
	for isDec(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
		lx.cursor.Bump()
	}
}

// badUnderscores reports a trailing '_' or two adjacent ones.
func badUnderscores(text string) bool {
	for i := 0; i < len(text); i++ {
		if text[i] != '_' {
			continue
		}
		if i+1 >= len(text) || text[i+1] == '_' {
			return true
		}
		if !isHex(text[i+1]) {
			return true
		}
	}
	return false
}
