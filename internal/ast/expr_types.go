package ast

import "setlint/internal/source"

type ExprNameData struct {
	// Name is NFKC-normalized.
	Name source.StringID
}

// ExprLiteralData keeps the raw source text of a literal. Implicitly
// concatenated strings ("a" "b") have one part per token.
type ExprLiteralData struct {
	Kind  ExprLitKind
	Parts []source.StringID
}

type ExprTupleData struct {
	Elts          []ExprID
	Parenthesized bool
}

type ExprListData struct {
	Elts []ExprID
}

type ExprSetData struct {
	Elts []ExprID
}

// DictEntry with Key == NoExprID is a "**mapping" unpacking.
type DictEntry struct {
	Key   ExprID
	Value ExprID
}

type ExprDictData struct {
	Entries []DictEntry
}

type Comprehension struct {
	Target  ExprID
	Iter    ExprID
	Ifs     []ExprID
	IsAsync bool
}

// ExprCompData backs list/set/dict comprehensions and generator expressions.
// Value is only set for dict comprehensions.
type ExprCompData struct {
	Elt        ExprID
	Value      ExprID
	Generators []Comprehension
}

type ExprAttributeData struct {
	Value ExprID
	Attr  source.StringID
}

// ExprCallData.Args holds positional arguments, Starred (*args) and
// Keyword (name=value, **kwargs) nodes in source order.
type ExprCallData struct {
	Func ExprID
	Args []ExprID
}

// ExprKeywordData with Name == NoStringID is a "**mapping" argument.
type ExprKeywordData struct {
	Name  source.StringID
	Value ExprID
}

type ExprSubscriptData struct {
	Value ExprID
	Index ExprID
}

type ExprSliceData struct {
	Lower ExprID
	Upper ExprID
	Step  ExprID
}

type ExprUnaryData struct {
	Op      ExprUnaryOp
	Operand ExprID
}

type ExprBinaryData struct {
	Op    ExprBinaryOp
	Left  ExprID
	Right ExprID
}

type ExprBoolData struct {
	Op     ExprBoolOp
	Values []ExprID
}

type ExprCompareData struct {
	Left        ExprID
	Ops         []ExprCmpOp
	Comparators []ExprID
}

type ExprTernaryData struct {
	Body   ExprID
	Test   ExprID
	OrElse ExprID
}

type ParamKind uint8

const (
	ParamNormal ParamKind = iota
	ParamVarArgs          // *args
	ParamKwArgs           // **kwargs
	ParamPosOnly          // "/" marker
	ParamKwOnly           // bare "*" marker
)

type Param struct {
	Kind       ParamKind
	Name       source.StringID
	Span       source.Span
	Annotation ExprID
	Default    ExprID
}

type ExprLambdaData struct {
	Params []Param
	Body   ExprID
}

// ExprWrapData backs the single-operand forms: Starred, Await, Yield,
// YieldFrom and Group. Value may be NoExprID for a bare yield.
type ExprWrapData struct {
	Value ExprID
}

type ExprNamedData struct {
	Target ExprID
	Value  ExprID
}
