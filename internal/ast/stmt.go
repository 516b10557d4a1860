package ast

import (
	"setlint/internal/source"
)

type StmtKind uint8

const (
	StmtExpr StmtKind = iota
	StmtAssign
	StmtAnnAssign
	StmtAugAssign
	StmtTypeAlias
	StmtReturn
	StmtDel
	StmtAssert
	StmtRaise
	StmtGlobal
	StmtNonlocal
	StmtPass
	StmtBreak
	StmtContinue
	StmtImport
	StmtImportFrom
	StmtIf
	StmtWhile
	StmtFor
	StmtWith
	StmtFunctionDef
	StmtClassDef
	StmtTry
	StmtMatch
)

var stmtKindNames = [...]string{
	StmtExpr:        "Expr",
	StmtAssign:      "Assign",
	StmtAnnAssign:   "AnnAssign",
	StmtAugAssign:   "AugAssign",
	StmtTypeAlias:   "TypeAlias",
	StmtReturn:      "Return",
	StmtDel:         "Del",
	StmtAssert:      "Assert",
	StmtRaise:       "Raise",
	StmtGlobal:      "Global",
	StmtNonlocal:    "Nonlocal",
	StmtPass:        "Pass",
	StmtBreak:       "Break",
	StmtContinue:    "Continue",
	StmtImport:      "Import",
	StmtImportFrom:  "ImportFrom",
	StmtIf:          "If",
	StmtWhile:       "While",
	StmtFor:         "For",
	StmtWith:        "With",
	StmtFunctionDef: "FunctionDef",
	StmtClassDef:    "ClassDef",
	StmtTry:         "Try",
	StmtMatch:       "Match",
}

func (k StmtKind) String() string {
	if int(k) < len(stmtKindNames) {
		return stmtKindNames[k]
	}
	return "Stmt(?)"
}

type Stmt struct {
	Kind    StmtKind
	Span    source.Span
	Payload PayloadID
}

// StmtSimpleData holds the operands of the one-line statements:
//
//	Expr      [value]
//	Return    [] or [value]
//	Del       targets
//	Assert    [test] or [test, msg]
//	Raise     [], [exc] or [exc, cause]
//	Global    names (ExprName)
//	Nonlocal  names (ExprName)
type StmtSimpleData struct {
	Values []ExprID
}

// StmtAssignData backs Assign (a = b = value), AnnAssign (a: T = value),
// AugAssign (a += value) and TypeAlias (type A = value).
type StmtAssignData struct {
	Targets    []ExprID
	Annotation ExprID
	Op         ExprBinaryOp
	Value      ExprID
}

type ImportAlias struct {
	Name   source.StringID // dotted name or "*"
	AsName source.StringID
	Span   source.Span
}

type StmtImportData struct {
	Module source.StringID // only for ImportFrom; NoStringID for "from . import x"
	Level  int             // leading dots in ImportFrom
	Names  []ImportAlias
}

// StmtIfData backs If and While. An elif chain is a nested If in OrElse.
type StmtIfData struct {
	Test   ExprID
	Body   []StmtID
	OrElse []StmtID
}

type StmtForData struct {
	Target  ExprID
	Iter    ExprID
	Body    []StmtID
	OrElse  []StmtID
	IsAsync bool
}

type WithItem struct {
	Context ExprID
	Vars    ExprID
}

type StmtWithData struct {
	Items   []WithItem
	Body    []StmtID
	IsAsync bool
}

type StmtFuncData struct {
	Name       source.StringID
	Params     []Param
	Returns    ExprID
	Decorators []ExprID
	Body       []StmtID
	IsAsync    bool
}

type StmtClassData struct {
	Name       source.StringID
	Args       []ExprID
	Decorators []ExprID
	Body       []StmtID
}

type ExceptHandler struct {
	Span source.Span
	Type ExprID
	Name source.StringID
	Body []StmtID
	Star bool // except*
}

type StmtTryData struct {
	Body     []StmtID
	Handlers []ExceptHandler
	OrElse   []StmtID
	Finally  []StmtID
}

// MatchCase keeps the pattern as an expression tree; patterns share their
// syntax with expressions closely enough for traversal purposes.
type MatchCase struct {
	Span    source.Span
	Pattern ExprID
	Guard   ExprID
	Body    []StmtID
}

type StmtMatchData struct {
	Subject ExprID
	Cases   []MatchCase
}

type Stmts struct {
	Arena   *Arena[Stmt]
	Simple  *Arena[StmtSimpleData]
	Assigns *Arena[StmtAssignData]
	Imports *Arena[StmtImportData]
	Ifs     *Arena[StmtIfData]
	Fors    *Arena[StmtForData]
	Withs   *Arena[StmtWithData]
	Funcs   *Arena[StmtFuncData]
	Classes *Arena[StmtClassData]
	Tries   *Arena[StmtTryData]
	Matches *Arena[StmtMatchData]
}

func NewStmts(capHint uint) *Stmts {
	if capHint == 0 {
		capHint = 1 << 8
	}
	small := capHint / 8
	return &Stmts{
		Arena:   NewArena[Stmt](capHint),
		Simple:  NewArena[StmtSimpleData](capHint / 2),
		Assigns: NewArena[StmtAssignData](capHint / 2),
		Imports: NewArena[StmtImportData](small),
		Ifs:     NewArena[StmtIfData](small),
		Fors:    NewArena[StmtForData](small),
		Withs:   NewArena[StmtWithData](small),
		Funcs:   NewArena[StmtFuncData](small),
		Classes: NewArena[StmtClassData](small),
		Tries:   NewArena[StmtTryData](small),
		Matches: NewArena[StmtMatchData](small),
	}
}

func (s *Stmts) new(kind StmtKind, span source.Span, payload uint32) StmtID {
	return StmtID(s.Arena.Allocate(Stmt{
		Kind:    kind,
		Span:    span,
		Payload: PayloadID(payload),
	}))
}

func (s *Stmts) Get(id StmtID) *Stmt {
	return s.Arena.Get(uint32(id))
}

func (s *Stmts) payload(id StmtID, kinds ...StmtKind) (uint32, bool) {
	st := s.Get(id)
	if st == nil {
		return 0, false
	}
	for _, k := range kinds {
		if st.Kind == k {
			return uint32(st.Payload), true
		}
	}
	return 0, false
}

// NewBare creates a statement without payload (pass, break, continue).
func (s *Stmts) NewBare(kind StmtKind, span source.Span) StmtID {
	return s.new(kind, span, 0)
}

func (s *Stmts) NewSimple(kind StmtKind, span source.Span, values ...ExprID) StmtID {
	return s.new(kind, span, s.Simple.Allocate(StmtSimpleData{Values: values}))
}

func (s *Stmts) SimpleData(id StmtID) (*StmtSimpleData, bool) {
	p, ok := s.payload(id, StmtExpr, StmtReturn, StmtDel, StmtAssert, StmtRaise, StmtGlobal, StmtNonlocal)
	if !ok {
		return nil, false
	}
	return s.Simple.Get(p), true
}

func (s *Stmts) NewAssign(kind StmtKind, span source.Span, data StmtAssignData) StmtID {
	return s.new(kind, span, s.Assigns.Allocate(data))
}

func (s *Stmts) Assign(id StmtID) (*StmtAssignData, bool) {
	p, ok := s.payload(id, StmtAssign, StmtAnnAssign, StmtAugAssign, StmtTypeAlias)
	if !ok {
		return nil, false
	}
	return s.Assigns.Get(p), true
}

func (s *Stmts) NewImport(kind StmtKind, span source.Span, data StmtImportData) StmtID {
	return s.new(kind, span, s.Imports.Allocate(data))
}

func (s *Stmts) Import(id StmtID) (*StmtImportData, bool) {
	p, ok := s.payload(id, StmtImport, StmtImportFrom)
	if !ok {
		return nil, false
	}
	return s.Imports.Get(p), true
}

func (s *Stmts) NewIf(kind StmtKind, span source.Span, data StmtIfData) StmtID {
	return s.new(kind, span, s.Ifs.Allocate(data))
}

func (s *Stmts) If(id StmtID) (*StmtIfData, bool) {
	p, ok := s.payload(id, StmtIf, StmtWhile)
	if !ok {
		return nil, false
	}
	return s.Ifs.Get(p), true
}

func (s *Stmts) NewFor(span source.Span, data StmtForData) StmtID {
	return s.new(StmtFor, span, s.Fors.Allocate(data))
}

func (s *Stmts) For(id StmtID) (*StmtForData, bool) {
	p, ok := s.payload(id, StmtFor)
	if !ok {
		return nil, false
	}
	return s.Fors.Get(p), true
}

func (s *Stmts) NewWith(span source.Span, data StmtWithData) StmtID {
	return s.new(StmtWith, span, s.Withs.Allocate(data))
}

func (s *Stmts) With(id StmtID) (*StmtWithData, bool) {
	p, ok := s.payload(id, StmtWith)
	if !ok {
		return nil, false
	}
	return s.Withs.Get(p), true
}

func (s *Stmts) NewFunc(span source.Span, data StmtFuncData) StmtID {
	return s.new(StmtFunctionDef, span, s.Funcs.Allocate(data))
}

func (s *Stmts) Func(id StmtID) (*StmtFuncData, bool) {
	p, ok := s.payload(id, StmtFunctionDef)
	if !ok {
		return nil, false
	}
	return s.Funcs.Get(p), true
}

func (s *Stmts) NewClass(span source.Span, data StmtClassData) StmtID {
	return s.new(StmtClassDef, span, s.Classes.Allocate(data))
}

func (s *Stmts) Class(id StmtID) (*StmtClassData, bool) {
	p, ok := s.payload(id, StmtClassDef)
	if !ok {
		return nil, false
	}
	return s.Classes.Get(p), true
}

func (s *Stmts) NewTry(span source.Span, data StmtTryData) StmtID {
	return s.new(StmtTry, span, s.Tries.Allocate(data))
}

func (s *Stmts) Try(id StmtID) (*StmtTryData, bool) {
	p, ok := s.payload(id, StmtTry)
	if !ok {
		return nil, false
	}
	return s.Tries.Get(p), true
}

func (s *Stmts) NewMatch(span source.Span, data StmtMatchData) StmtID {
	return s.new(StmtMatch, span, s.Matches.Allocate(data))
}

func (s *Stmts) Match(id StmtID) (*StmtMatchData, bool) {
	p, ok := s.payload(id, StmtMatch)
	if !ok {
		return nil, false
	}
	return s.Matches.Get(p), true
}
