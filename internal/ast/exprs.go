package ast

import (
	"setlint/internal/source"
)

// Exprs manages allocation of expressions.
type Exprs struct {
	Arena      *Arena[Expr]
	Names      *Arena[ExprNameData]
	Literals   *Arena[ExprLiteralData]
	Tuples     *Arena[ExprTupleData]
	Lists      *Arena[ExprListData]
	Sets       *Arena[ExprSetData]
	Dicts      *Arena[ExprDictData]
	Comps      *Arena[ExprCompData]
	Attributes *Arena[ExprAttributeData]
	Calls      *Arena[ExprCallData]
	Keywords   *Arena[ExprKeywordData]
	Subscripts *Arena[ExprSubscriptData]
	Slices     *Arena[ExprSliceData]
	Unaries    *Arena[ExprUnaryData]
	Binaries   *Arena[ExprBinaryData]
	Bools      *Arena[ExprBoolData]
	Compares   *Arena[ExprCompareData]
	Ternaries  *Arena[ExprTernaryData]
	Lambdas    *Arena[ExprLambdaData]
	Wraps      *Arena[ExprWrapData]
	Named      *Arena[ExprNamedData]
}

// NewExprs creates a new Exprs with per-kind arenas preallocated using capHint as the initial capacity.
// If capHint is 0, a default capacity of 1<<8 is used for the header arena; payload arenas start smaller.
func NewExprs(capHint uint) *Exprs {
	if capHint == 0 {
		capHint = 1 << 8
	}
	small := capHint / 8
	return &Exprs{
		Arena:      NewArena[Expr](capHint),
		Names:      NewArena[ExprNameData](capHint / 2),
		Literals:   NewArena[ExprLiteralData](capHint / 2),
		Tuples:     NewArena[ExprTupleData](small),
		Lists:      NewArena[ExprListData](small),
		Sets:       NewArena[ExprSetData](small),
		Dicts:      NewArena[ExprDictData](small),
		Comps:      NewArena[ExprCompData](small),
		Attributes: NewArena[ExprAttributeData](small),
		Calls:      NewArena[ExprCallData](small),
		Keywords:   NewArena[ExprKeywordData](small),
		Subscripts: NewArena[ExprSubscriptData](small),
		Slices:     NewArena[ExprSliceData](small),
		Unaries:    NewArena[ExprUnaryData](small),
		Binaries:   NewArena[ExprBinaryData](small),
		Bools:      NewArena[ExprBoolData](small),
		Compares:   NewArena[ExprCompareData](small),
		Ternaries:  NewArena[ExprTernaryData](small),
		Lambdas:    NewArena[ExprLambdaData](small),
		Wraps:      NewArena[ExprWrapData](small),
		Named:      NewArena[ExprNamedData](small),
	}
}

func (e *Exprs) new(kind ExprKind, span source.Span, payload uint32) ExprID {
	return ExprID(e.Arena.Allocate(Expr{
		Kind:    kind,
		Span:    span,
		Payload: PayloadID(payload),
	}))
}

// Get returns the expression with the given ID.
func (e *Exprs) Get(id ExprID) *Expr {
	return e.Arena.Get(uint32(id))
}

func (e *Exprs) payload(id ExprID, kinds ...ExprKind) (uint32, bool) {
	expr := e.Get(id)
	if expr == nil {
		return 0, false
	}
	for _, k := range kinds {
		if expr.Kind == k {
			return uint32(expr.Payload), true
		}
	}
	return 0, false
}

// SetSpan overrides the span of an expression (used when wrapping parentheses).
func (e *Exprs) SetSpan(id ExprID, sp source.Span) {
	if expr := e.Get(id); expr != nil {
		expr.Span = sp
	}
}

func (e *Exprs) NewName(span source.Span, name source.StringID) ExprID {
	return e.new(ExprName, span, e.Names.Allocate(ExprNameData{Name: name}))
}

func (e *Exprs) Name(id ExprID) (*ExprNameData, bool) {
	p, ok := e.payload(id, ExprName)
	if !ok {
		return nil, false
	}
	return e.Names.Get(p), true
}

func (e *Exprs) NewLiteral(span source.Span, kind ExprLitKind, parts ...source.StringID) ExprID {
	return e.new(ExprLit, span, e.Literals.Allocate(ExprLiteralData{Kind: kind, Parts: parts}))
}

func (e *Exprs) Literal(id ExprID) (*ExprLiteralData, bool) {
	p, ok := e.payload(id, ExprLit)
	if !ok {
		return nil, false
	}
	return e.Literals.Get(p), true
}

func (e *Exprs) NewTuple(span source.Span, elts []ExprID, parenthesized bool) ExprID {
	return e.new(ExprTuple, span, e.Tuples.Allocate(ExprTupleData{Elts: elts, Parenthesized: parenthesized}))
}

func (e *Exprs) Tuple(id ExprID) (*ExprTupleData, bool) {
	p, ok := e.payload(id, ExprTuple)
	if !ok {
		return nil, false
	}
	return e.Tuples.Get(p), true
}

func (e *Exprs) NewList(span source.Span, elts []ExprID) ExprID {
	return e.new(ExprList, span, e.Lists.Allocate(ExprListData{Elts: elts}))
}

func (e *Exprs) List(id ExprID) (*ExprListData, bool) {
	p, ok := e.payload(id, ExprList)
	if !ok {
		return nil, false
	}
	return e.Lists.Get(p), true
}

// NewSet creates a set display. An empty element list is not a valid set
// literal in source ("{}" is a dict) but is allowed for synthetic trees.
func (e *Exprs) NewSet(span source.Span, elts []ExprID) ExprID {
	return e.new(ExprSet, span, e.Sets.Allocate(ExprSetData{Elts: elts}))
}

func (e *Exprs) Set(id ExprID) (*ExprSetData, bool) {
	p, ok := e.payload(id, ExprSet)
	if !ok {
		return nil, false
	}
	return e.Sets.Get(p), true
}

func (e *Exprs) NewDict(span source.Span, entries []DictEntry) ExprID {
	return e.new(ExprDict, span, e.Dicts.Allocate(ExprDictData{Entries: entries}))
}

func (e *Exprs) Dict(id ExprID) (*ExprDictData, bool) {
	p, ok := e.payload(id, ExprDict)
	if !ok {
		return nil, false
	}
	return e.Dicts.Get(p), true
}

// NewComp creates a comprehension; kind is one of ExprListComp, ExprSetComp,
// ExprDictComp or ExprGenerator.
func (e *Exprs) NewComp(kind ExprKind, span source.Span, elt, value ExprID, gens []Comprehension) ExprID {
	return e.new(kind, span, e.Comps.Allocate(ExprCompData{Elt: elt, Value: value, Generators: gens}))
}

func (e *Exprs) Comp(id ExprID) (*ExprCompData, bool) {
	p, ok := e.payload(id, ExprListComp, ExprSetComp, ExprDictComp, ExprGenerator)
	if !ok {
		return nil, false
	}
	return e.Comps.Get(p), true
}

func (e *Exprs) NewAttribute(span source.Span, value ExprID, attr source.StringID) ExprID {
	return e.new(ExprAttribute, span, e.Attributes.Allocate(ExprAttributeData{Value: value, Attr: attr}))
}

func (e *Exprs) Attribute(id ExprID) (*ExprAttributeData, bool) {
	p, ok := e.payload(id, ExprAttribute)
	if !ok {
		return nil, false
	}
	return e.Attributes.Get(p), true
}

func (e *Exprs) NewCall(span source.Span, fn ExprID, args []ExprID) ExprID {
	return e.new(ExprCall, span, e.Calls.Allocate(ExprCallData{Func: fn, Args: args}))
}

func (e *Exprs) Call(id ExprID) (*ExprCallData, bool) {
	p, ok := e.payload(id, ExprCall)
	if !ok {
		return nil, false
	}
	return e.Calls.Get(p), true
}

func (e *Exprs) NewKeyword(span source.Span, name source.StringID, value ExprID) ExprID {
	return e.new(ExprKeyword, span, e.Keywords.Allocate(ExprKeywordData{Name: name, Value: value}))
}

func (e *Exprs) Keyword(id ExprID) (*ExprKeywordData, bool) {
	p, ok := e.payload(id, ExprKeyword)
	if !ok {
		return nil, false
	}
	return e.Keywords.Get(p), true
}

func (e *Exprs) NewSubscript(span source.Span, value, index ExprID) ExprID {
	return e.new(ExprSubscript, span, e.Subscripts.Allocate(ExprSubscriptData{Value: value, Index: index}))
}

func (e *Exprs) Subscript(id ExprID) (*ExprSubscriptData, bool) {
	p, ok := e.payload(id, ExprSubscript)
	if !ok {
		return nil, false
	}
	return e.Subscripts.Get(p), true
}

func (e *Exprs) NewSlice(span source.Span, lower, upper, step ExprID) ExprID {
	return e.new(ExprSlice, span, e.Slices.Allocate(ExprSliceData{Lower: lower, Upper: upper, Step: step}))
}

func (e *Exprs) Slice(id ExprID) (*ExprSliceData, bool) {
	p, ok := e.payload(id, ExprSlice)
	if !ok {
		return nil, false
	}
	return e.Slices.Get(p), true
}

func (e *Exprs) NewUnary(span source.Span, op ExprUnaryOp, operand ExprID) ExprID {
	return e.new(ExprUnary, span, e.Unaries.Allocate(ExprUnaryData{Op: op, Operand: operand}))
}

func (e *Exprs) Unary(id ExprID) (*ExprUnaryData, bool) {
	p, ok := e.payload(id, ExprUnary)
	if !ok {
		return nil, false
	}
	return e.Unaries.Get(p), true
}

func (e *Exprs) NewBinary(span source.Span, op ExprBinaryOp, left, right ExprID) ExprID {
	return e.new(ExprBinary, span, e.Binaries.Allocate(ExprBinaryData{Op: op, Left: left, Right: right}))
}

func (e *Exprs) Binary(id ExprID) (*ExprBinaryData, bool) {
	p, ok := e.payload(id, ExprBinary)
	if !ok {
		return nil, false
	}
	return e.Binaries.Get(p), true
}

func (e *Exprs) NewBool(span source.Span, op ExprBoolOp, values []ExprID) ExprID {
	return e.new(ExprBool, span, e.Bools.Allocate(ExprBoolData{Op: op, Values: values}))
}

func (e *Exprs) Bool(id ExprID) (*ExprBoolData, bool) {
	p, ok := e.payload(id, ExprBool)
	if !ok {
		return nil, false
	}
	return e.Bools.Get(p), true
}

func (e *Exprs) NewCompare(span source.Span, left ExprID, ops []ExprCmpOp, comparators []ExprID) ExprID {
	return e.new(ExprCompare, span, e.Compares.Allocate(ExprCompareData{Left: left, Ops: ops, Comparators: comparators}))
}

func (e *Exprs) Compare(id ExprID) (*ExprCompareData, bool) {
	p, ok := e.payload(id, ExprCompare)
	if !ok {
		return nil, false
	}
	return e.Compares.Get(p), true
}

func (e *Exprs) NewTernary(span source.Span, body, test, orElse ExprID) ExprID {
	return e.new(ExprTernary, span, e.Ternaries.Allocate(ExprTernaryData{Body: body, Test: test, OrElse: orElse}))
}

func (e *Exprs) Ternary(id ExprID) (*ExprTernaryData, bool) {
	p, ok := e.payload(id, ExprTernary)
	if !ok {
		return nil, false
	}
	return e.Ternaries.Get(p), true
}

func (e *Exprs) NewLambda(span source.Span, params []Param, body ExprID) ExprID {
	return e.new(ExprLambda, span, e.Lambdas.Allocate(ExprLambdaData{Params: params, Body: body}))
}

func (e *Exprs) Lambda(id ExprID) (*ExprLambdaData, bool) {
	p, ok := e.payload(id, ExprLambda)
	if !ok {
		return nil, false
	}
	return e.Lambdas.Get(p), true
}

// NewWrap creates one of the single-operand forms (Starred, Await, Yield,
// YieldFrom, Group).
func (e *Exprs) NewWrap(kind ExprKind, span source.Span, value ExprID) ExprID {
	return e.new(kind, span, e.Wraps.Allocate(ExprWrapData{Value: value}))
}

func (e *Exprs) Wrap(id ExprID) (*ExprWrapData, bool) {
	p, ok := e.payload(id, ExprStarred, ExprAwait, ExprYield, ExprYieldFrom, ExprGroup)
	if !ok {
		return nil, false
	}
	return e.Wraps.Get(p), true
}

func (e *Exprs) NewNamed(span source.Span, target, value ExprID) ExprID {
	return e.new(ExprNamed, span, e.Named.Allocate(ExprNamedData{Target: target, Value: value}))
}

func (e *Exprs) NamedExpr(id ExprID) (*ExprNamedData, bool) {
	p, ok := e.payload(id, ExprNamed)
	if !ok {
		return nil, false
	}
	return e.Named.Get(p), true
}

// Unparen strips any number of grouping parentheses.
func (e *Exprs) Unparen(id ExprID) ExprID {
	for {
		w, ok := e.payload(id, ExprGroup)
		if !ok {
			return id
		}
		id = e.Wraps.Get(w).Value
	}
}
