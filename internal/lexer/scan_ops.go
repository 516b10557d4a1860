package lexer

import (
	"setlint/internal/diag"
	"setlint/internal/token"
)

// multiOps упорядочены по длине: первое совпадение и есть самое длинное.
var multiOps = []struct {
	text string
	kind token.Kind
}{
	{"**=", token.DoubleStarAssign},
	{"//=", token.DoubleSlashAssign},
	{"<<=", token.ShlAssign},
	{">>=", token.ShrAssign},
	{"...", token.Ellipsis},
	{"**", token.DoubleStar},
	{"//", token.DoubleSlash},
	{"<<", token.Shl},
	{">>", token.Shr},
	{"<=", token.LtEq},
	{">=", token.GtEq},
	{"==", token.EqEq},
	{"!=", token.NotEq},
	{"->", token.Arrow},
	{":=", token.ColonEq},
	{"+=", token.PlusAssign},
	{"-=", token.MinusAssign},
	{"*=", token.StarAssign},
	{"/=", token.SlashAssign},
	{"%=", token.PercentAssign},
	{"@=", token.AtAssign},
	{"&=", token.AmpAssign},
	{"|=", token.PipeAssign},
	{"^=", token.CaretAssign},
}

func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()
	emit := func(k token.Kind) token.Token {
		sp := lx.cursor.SpanFrom(start)
		return token.Token{Kind: k, Span: sp, Text: lx.text(sp)}
	}

	for _, op := range multiOps {
		if lx.cursor.EatString(op.text) {
			return emit(op.kind)
		}
	}

	b := lx.cursor.Bump()
	switch b {
	case '(':
		lx.depth++
		return emit(token.LParen)
	case '[':
		lx.depth++
		return emit(token.LBracket)
	case '{':
		lx.depth++
		return emit(token.LBrace)
	case ')', ']', '}':
		kind := map[byte]token.Kind{')': token.RParen, ']': token.RBracket, '}': token.RBrace}[b]
		if lx.depth == 0 {
			lx.errLex(diag.LexUnmatchedBracket, lx.cursor.SpanFrom(start), "unmatched '"+string(b)+"'")
		} else {
			lx.depth--
		}
		return emit(kind)
	case '+':
		return emit(token.Plus)
	case '-':
		return emit(token.Minus)
	case '*':
		return emit(token.Star)
	case '/':
		return emit(token.Slash)
	case '%':
		return emit(token.Percent)
	case '@':
		return emit(token.At)
	case '&':
		return emit(token.Amp)
	case '|':
		return emit(token.Pipe)
	case '^':
		return emit(token.Caret)
	case '~':
		return emit(token.Tilde)
	case '<':
		return emit(token.Lt)
	case '>':
		return emit(token.Gt)
	case ',':
		return emit(token.Comma)
	case ':':
		return emit(token.Colon)
	case '.':
		return emit(token.Dot)
	case ';':
		return emit(token.Semicolon)
	case '=':
		return emit(token.Assign)
	}

	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnknownChar, sp, "invalid character '"+lx.text(sp)+"'")
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
}
