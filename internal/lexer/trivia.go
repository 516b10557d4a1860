package lexer

import (
	"setlint/internal/diag"
	"setlint/internal/token"
)

// collectLeadingTrivia собирает подряд идущие trivia перед значимым токеном.
//   - ' ', '\t', '\f' коалесцируются в один TriviaSpace
//   - '\n' внутри скобок или на пустой строке -> TriviaNewline
//   - '\n' в конце непустой логической строки -> токен Newline (ok == true)
//   - '#...' до '\n' -> TriviaComment
//   - '\\' + '\n' -> TriviaContinuation
func (lx *Lexer) collectLeadingTrivia() (token.Token, bool) {
	for !lx.cursor.EOF() {
		start := lx.cursor.Mark()
		b := lx.cursor.Peek()

		switch {
		case b == ' ' || b == '\t' || b == '\f':
			for {
				b2 := lx.cursor.Peek()
				if b2 != ' ' && b2 != '\t' && b2 != '\f' {
					break
				}
				lx.cursor.Bump()
			}
			lx.pushTrivia(token.TriviaSpace, start)

		case b == '\n':
			lx.cursor.Bump()
			if lx.depth == 0 && lx.lineHasToken {
				sp := lx.cursor.SpanFrom(start)
				return token.Token{Kind: token.Newline, Span: sp, Text: "\n"}, true
			}
			lx.pushTrivia(token.TriviaNewline, start)

		case b == '#':
			for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
				lx.cursor.Bump()
			}
			lx.pushTrivia(token.TriviaComment, start)

		case b == '\\':
			lx.cursor.Bump()
			if !lx.cursor.Eat('\n') {
				sp := lx.cursor.SpanFrom(start)
				lx.errLex(diag.LexBadContinuation, sp, "unexpected character after line continuation character")
			}
			lx.pushTrivia(token.TriviaContinuation, start)

		default:
			return token.Token{}, false
		}
	}
	return token.Token{}, false
}

func (lx *Lexer) pushTrivia(kind token.TriviaKind, start Mark) {
	sp := lx.cursor.SpanFrom(start)
	lx.hold = append(lx.hold, token.Trivia{
		Kind: kind,
		Span: sp,
		Text: lx.text(sp),
	})
}
