package ast

// Children calls fn for every direct sub-expression of id in source order.
// Optional operands that are absent (NoExprID) are skipped.
func (e *Exprs) Children(id ExprID, fn func(ExprID)) {
	expr := e.Get(id)
	if expr == nil {
		return
	}
	visit := func(ids ...ExprID) {
		for _, c := range ids {
			if c.IsValid() {
				fn(c)
			}
		}
	}
	p := uint32(expr.Payload)
	switch expr.Kind {
	case ExprName, ExprLit:
	case ExprTuple:
		visit(e.Tuples.Get(p).Elts...)
	case ExprList:
		visit(e.Lists.Get(p).Elts...)
	case ExprSet:
		visit(e.Sets.Get(p).Elts...)
	case ExprDict:
		for _, entry := range e.Dicts.Get(p).Entries {
			visit(entry.Key, entry.Value)
		}
	case ExprListComp, ExprSetComp, ExprDictComp, ExprGenerator:
		data := e.Comps.Get(p)
		visit(data.Elt, data.Value)
		for _, g := range data.Generators {
			visit(g.Target, g.Iter)
			visit(g.Ifs...)
		}
	case ExprAttribute:
		visit(e.Attributes.Get(p).Value)
	case ExprCall:
		data := e.Calls.Get(p)
		visit(data.Func)
		visit(data.Args...)
	case ExprKeyword:
		visit(e.Keywords.Get(p).Value)
	case ExprSubscript:
		data := e.Subscripts.Get(p)
		visit(data.Value, data.Index)
	case ExprSlice:
		data := e.Slices.Get(p)
		visit(data.Lower, data.Upper, data.Step)
	case ExprUnary:
		visit(e.Unaries.Get(p).Operand)
	case ExprBinary:
		data := e.Binaries.Get(p)
		visit(data.Left, data.Right)
	case ExprBool:
		visit(e.Bools.Get(p).Values...)
	case ExprCompare:
		data := e.Compares.Get(p)
		visit(data.Left)
		visit(data.Comparators...)
	case ExprTernary:
		data := e.Ternaries.Get(p)
		visit(data.Body, data.Test, data.OrElse)
	case ExprLambda:
		data := e.Lambdas.Get(p)
		visitParams(data.Params, fn)
		visit(data.Body)
	case ExprStarred, ExprAwait, ExprYield, ExprYieldFrom, ExprGroup:
		visit(e.Wraps.Get(p).Value)
	case ExprNamed:
		data := e.Named.Get(p)
		visit(data.Target, data.Value)
	}
}

func visitParams(params []Param, fn func(ExprID)) {
	for _, prm := range params {
		if prm.Annotation.IsValid() {
			fn(prm.Annotation)
		}
		if prm.Default.IsValid() {
			fn(prm.Default)
		}
	}
}

// Children calls exprFn for every expression owned directly by the
// statement and stmtFn for every nested statement, in source order.
// Match-case patterns are not reported; their guards are.
func (s *Stmts) Children(id StmtID, exprFn func(ExprID), stmtFn func(StmtID)) {
	st := s.Get(id)
	if st == nil {
		return
	}
	exprs := func(ids ...ExprID) {
		for _, c := range ids {
			if c.IsValid() {
				exprFn(c)
			}
		}
	}
	stmts := func(ids []StmtID) {
		for _, c := range ids {
			if c.IsValid() {
				stmtFn(c)
			}
		}
	}
	p := uint32(st.Payload)
	switch st.Kind {
	case StmtExpr, StmtReturn, StmtDel, StmtAssert, StmtRaise, StmtGlobal, StmtNonlocal:
		exprs(s.Simple.Get(p).Values...)
	case StmtAssign, StmtAnnAssign, StmtAugAssign, StmtTypeAlias:
		data := s.Assigns.Get(p)
		exprs(data.Targets...)
		exprs(data.Annotation, data.Value)
	case StmtIf, StmtWhile:
		data := s.Ifs.Get(p)
		exprs(data.Test)
		stmts(data.Body)
		stmts(data.OrElse)
	case StmtFor:
		data := s.Fors.Get(p)
		exprs(data.Target, data.Iter)
		stmts(data.Body)
		stmts(data.OrElse)
	case StmtWith:
		data := s.Withs.Get(p)
		for _, item := range data.Items {
			exprs(item.Context, item.Vars)
		}
		stmts(data.Body)
	case StmtFunctionDef:
		data := s.Funcs.Get(p)
		exprs(data.Decorators...)
		visitParams(data.Params, exprFn)
		exprs(data.Returns)
		stmts(data.Body)
	case StmtClassDef:
		data := s.Classes.Get(p)
		exprs(data.Decorators...)
		exprs(data.Args...)
		stmts(data.Body)
	case StmtTry:
		data := s.Tries.Get(p)
		stmts(data.Body)
		for _, h := range data.Handlers {
			exprs(h.Type)
			stmts(h.Body)
		}
		stmts(data.OrElse)
		stmts(data.Finally)
	case StmtMatch:
		data := s.Matches.Get(p)
		exprs(data.Subject)
		for _, c := range data.Cases {
			exprs(c.Guard)
			stmts(c.Body)
		}
	}
}

// Inspect walks every expression of file depth-first in pre-order. When fn
// returns false the children of that expression are skipped.
func Inspect(b *Builder, file FileID, fn func(ExprID) bool) {
	f := b.Files.Get(file)
	if f == nil {
		return
	}
	var walkExpr func(ExprID)
	walkExpr = func(id ExprID) {
		if !fn(id) {
			return
		}
		b.Exprs.Children(id, walkExpr)
	}
	var walkStmt func(StmtID)
	walkStmt = func(id StmtID) {
		b.Stmts.Children(id, walkExpr, walkStmt)
	}
	for _, st := range f.Body {
		walkStmt(st)
	}
}

// InspectExpr walks the subtree rooted at root in pre-order.
func InspectExpr(exprs *Exprs, root ExprID, fn func(ExprID) bool) {
	var walk func(ExprID)
	walk = func(id ExprID) {
		if !fn(id) {
			return
		}
		exprs.Children(id, walk)
	}
	if root.IsValid() {
		walk(root)
	}
}
