package parser

import (
	"setlint/internal/ast"
	"setlint/internal/token"
)

// Таблица приоритетов для бинарных операторов (уровень bitwise_or и выше).
// Чем больше число, тем выше приоритет.
const (
	precBitOr          = 1 // |
	precBitXor         = 2 // ^
	precBitAnd         = 3 // &
	precShift          = 4 // << >>
	precAdditive       = 5 // + -
	precMultiplicative = 6 // * @ / // %
)

// binaryPrec возвращает приоритет оператора или -1, если токен не бинарный оператор.
// "**" разбирается отдельно в parsePower: он связывает сильнее унарных операторов слева.
func binaryPrec(kind token.Kind) int {
	switch kind {
	case token.Pipe:
		return precBitOr
	case token.Caret:
		return precBitXor
	case token.Amp:
		return precBitAnd
	case token.Shl, token.Shr:
		return precShift
	case token.Plus, token.Minus:
		return precAdditive
	case token.Star, token.At, token.Slash, token.DoubleSlash, token.Percent:
		return precMultiplicative
	default:
		return -1
	}
}

var binaryOps = map[token.Kind]ast.ExprBinaryOp{
	token.Plus:        ast.ExprBinaryAdd,
	token.Minus:       ast.ExprBinarySub,
	token.Star:        ast.ExprBinaryMul,
	token.At:          ast.ExprBinaryMatMul,
	token.Slash:       ast.ExprBinaryDiv,
	token.DoubleSlash: ast.ExprBinaryFloorDiv,
	token.Percent:     ast.ExprBinaryMod,
	token.DoubleStar:  ast.ExprBinaryPow,
	token.Shl:         ast.ExprBinaryShl,
	token.Shr:         ast.ExprBinaryShr,
	token.Amp:         ast.ExprBinaryBitAnd,
	token.Pipe:        ast.ExprBinaryBitOr,
	token.Caret:       ast.ExprBinaryBitXor,
}

var augAssignOps = map[token.Kind]ast.ExprBinaryOp{
	token.PlusAssign:        ast.ExprBinaryAdd,
	token.MinusAssign:       ast.ExprBinarySub,
	token.StarAssign:        ast.ExprBinaryMul,
	token.AtAssign:          ast.ExprBinaryMatMul,
	token.SlashAssign:       ast.ExprBinaryDiv,
	token.DoubleSlashAssign: ast.ExprBinaryFloorDiv,
	token.PercentAssign:     ast.ExprBinaryMod,
	token.DoubleStarAssign:  ast.ExprBinaryPow,
	token.ShlAssign:         ast.ExprBinaryShl,
	token.ShrAssign:         ast.ExprBinaryShr,
	token.AmpAssign:         ast.ExprBinaryBitAnd,
	token.PipeAssign:        ast.ExprBinaryBitOr,
	token.CaretAssign:       ast.ExprBinaryBitXor,
}

var simpleCmpOps = map[token.Kind]ast.ExprCmpOp{
	token.EqEq:  ast.ExprCmpEq,
	token.NotEq: ast.ExprCmpNotEq,
	token.Lt:    ast.ExprCmpLt,
	token.LtEq:  ast.ExprCmpLtEq,
	token.Gt:    ast.ExprCmpGt,
	token.GtEq:  ast.ExprCmpGtEq,
	token.KwIn:  ast.ExprCmpIn,
	token.KwIs:  ast.ExprCmpIs,
}

// startsExpr reports whether a token can begin an expression.
func startsExpr(k token.Kind) bool {
	switch k {
	case token.Ident, token.IntLit, token.FloatLit, token.ImagLit, token.StringLit,
		token.BytesLit, token.FStringLit, token.KwTrue, token.KwFalse, token.KwNone,
		token.Ellipsis, token.LParen, token.LBracket, token.LBrace, token.Minus,
		token.Plus, token.Tilde, token.KwNot, token.KwLambda, token.KwAwait,
		token.Star:
		return true
	}
	return false
}
