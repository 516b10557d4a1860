package ast

import (
	"setlint/internal/source"
)

type ExprKind uint8

const (
	ExprName ExprKind = iota
	ExprLit
	ExprTuple
	ExprList
	ExprSet
	ExprDict
	ExprListComp
	ExprSetComp
	ExprDictComp
	ExprGenerator
	ExprAttribute
	ExprCall
	ExprKeyword
	ExprSubscript
	ExprSlice
	ExprUnary
	ExprBinary
	ExprBool
	ExprCompare
	ExprTernary
	ExprLambda
	ExprStarred
	ExprNamed
	ExprAwait
	ExprYield
	ExprYieldFrom
	ExprGroup
)

var exprKindNames = [...]string{
	ExprName:      "Name",
	ExprLit:       "Lit",
	ExprTuple:     "Tuple",
	ExprList:      "List",
	ExprSet:       "Set",
	ExprDict:      "Dict",
	ExprListComp:  "ListComp",
	ExprSetComp:   "SetComp",
	ExprDictComp:  "DictComp",
	ExprGenerator: "Generator",
	ExprAttribute: "Attribute",
	ExprCall:      "Call",
	ExprKeyword:   "Keyword",
	ExprSubscript: "Subscript",
	ExprSlice:     "Slice",
	ExprUnary:     "Unary",
	ExprBinary:    "Binary",
	ExprBool:      "Bool",
	ExprCompare:   "Compare",
	ExprTernary:   "Ternary",
	ExprLambda:    "Lambda",
	ExprStarred:   "Starred",
	ExprNamed:     "Named",
	ExprAwait:     "Await",
	ExprYield:     "Yield",
	ExprYieldFrom: "YieldFrom",
	ExprGroup:     "Group",
}

func (k ExprKind) String() string {
	if int(k) < len(exprKindNames) {
		return exprKindNames[k]
	}
	return "Expr(?)"
}

// Expr is the common header of every expression; kind-specific data lives in
// a per-kind arena addressed by Payload.
type Expr struct {
	Kind    ExprKind
	Span    source.Span
	Payload PayloadID
}

type ExprLitKind uint8

const (
	ExprLitInt ExprLitKind = iota
	ExprLitFloat
	ExprLitImaginary
	ExprLitString
	ExprLitBytes
	ExprLitFString
	ExprLitTrue
	ExprLitFalse
	ExprLitNone
	ExprLitEllipsis
)

func (k ExprLitKind) String() string {
	switch k {
	case ExprLitInt:
		return "int"
	case ExprLitFloat:
		return "float"
	case ExprLitImaginary:
		return "complex"
	case ExprLitString:
		return "str"
	case ExprLitBytes:
		return "bytes"
	case ExprLitFString:
		return "fstring"
	case ExprLitTrue:
		return "True"
	case ExprLitFalse:
		return "False"
	case ExprLitNone:
		return "None"
	case ExprLitEllipsis:
		return "Ellipsis"
	}
	return "lit(?)"
}

type ExprUnaryOp uint8

const (
	ExprUnaryPos    ExprUnaryOp = iota // +x
	ExprUnaryNeg                       // -x
	ExprUnaryInvert                    // ~x
	ExprUnaryNot                       // not x
)

var unaryOpText = [...]string{"+", "-", "~", "not "}

func (op ExprUnaryOp) String() string { return unaryOpText[op] }

type ExprBinaryOp uint8

const (
	ExprBinaryAdd ExprBinaryOp = iota
	ExprBinarySub
	ExprBinaryMul
	ExprBinaryMatMul
	ExprBinaryDiv
	ExprBinaryFloorDiv
	ExprBinaryMod
	ExprBinaryPow
	ExprBinaryShl
	ExprBinaryShr
	ExprBinaryBitAnd
	ExprBinaryBitOr
	ExprBinaryBitXor
)

var binaryOpText = [...]string{"+", "-", "*", "@", "/", "//", "%", "**", "<<", ">>", "&", "|", "^"}

func (op ExprBinaryOp) String() string { return binaryOpText[op] }

type ExprBoolOp uint8

const (
	ExprBoolAnd ExprBoolOp = iota
	ExprBoolOr
)

func (op ExprBoolOp) String() string {
	if op == ExprBoolAnd {
		return "and"
	}
	return "or"
}

type ExprCmpOp uint8

const (
	ExprCmpEq ExprCmpOp = iota
	ExprCmpNotEq
	ExprCmpLt
	ExprCmpLtEq
	ExprCmpGt
	ExprCmpGtEq
	ExprCmpIs
	ExprCmpIsNot
	ExprCmpIn
	ExprCmpNotIn
)

var cmpOpText = [...]string{"==", "!=", "<", "<=", ">", ">=", "is", "is not", "in", "not in"}

func (op ExprCmpOp) String() string { return cmpOpText[op] }
