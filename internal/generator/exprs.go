package generator

import (
	"setlint/internal/ast"
	"setlint/internal/source"
)

// literal reproduces the token text; implicitly concatenated parts are
// joined by a single space.
func (g *Generator) literal(id ast.ExprID) {
	lit, ok := g.exprs.Literal(id)
	if !ok {
		g.fail(id)
		return
	}
	switch lit.Kind {
	case ast.ExprLitTrue, ast.ExprLitFalse, ast.ExprLitNone:
		g.w.WriteString(lit.Kind.String())
		return
	case ast.ExprLitEllipsis:
		g.w.WriteString("...")
		return
	}
	if len(lit.Parts) == 0 {
		g.fail(id)
		return
	}
	for i, part := range lit.Parts {
		if i > 0 {
			g.w.Space()
		}
		g.w.WriteString(g.lookup(part))
	}
}

func (g *Generator) tuple(id ast.ExprID) {
	t, ok := g.exprs.Tuple(id)
	if !ok {
		g.fail(id)
		return
	}
	parens := t.Parenthesized || len(t.Elts) == 0
	if parens {
		_ = g.w.WriteByte('(')
	}
	g.list(t.Elts)
	if len(t.Elts) == 1 {
		_ = g.w.WriteByte(',')
	}
	if parens {
		_ = g.w.WriteByte(')')
	}
}

func (g *Generator) dict(id ast.ExprID) {
	d, ok := g.exprs.Dict(id)
	if !ok {
		g.fail(id)
		return
	}
	_ = g.w.WriteByte('{')
	for i, entry := range d.Entries {
		if i > 0 {
			g.w.WriteString(", ")
		}
		if !entry.Key.IsValid() {
			g.w.WriteString("**")
			g.expr(entry.Value)
			continue
		}
		g.expr(entry.Key)
		g.w.WriteString(": ")
		g.expr(entry.Value)
	}
	_ = g.w.WriteByte('}')
}

// comprehension writes a display comprehension. A generator expression that
// is the sole argument of a call borrows the call's parentheses, so brackets
// is false there.
func (g *Generator) comprehension(id ast.ExprID, kind ast.ExprKind, brackets bool) {
	c, ok := g.exprs.Comp(id)
	if !ok {
		g.fail(id)
		return
	}
	var open, closing byte
	switch kind {
	case ast.ExprListComp:
		open, closing = '[', ']'
	case ast.ExprSetComp, ast.ExprDictComp:
		open, closing = '{', '}'
	default:
		open, closing = '(', ')'
	}
	if brackets {
		_ = g.w.WriteByte(open)
	}
	g.expr(c.Elt)
	if kind == ast.ExprDictComp {
		g.w.WriteString(": ")
		g.expr(c.Value)
	}
	for _, gen := range c.Generators {
		if gen.IsAsync {
			g.w.WriteString(" async")
		}
		g.w.WriteString(" for ")
		g.expr(gen.Target)
		g.w.WriteString(" in ")
		g.expr(gen.Iter)
		for _, cond := range gen.Ifs {
			g.w.WriteString(" if ")
			g.expr(cond)
		}
	}
	if brackets {
		_ = g.w.WriteByte(closing)
	}
}

func (g *Generator) attribute(id ast.ExprID) {
	a, ok := g.exprs.Attribute(id)
	if !ok {
		g.fail(id)
		return
	}
	g.expr(a.Value)
	// 1.real читается как float "1." и имя
	if lit, ok := g.exprs.Literal(a.Value); ok && lit.Kind == ast.ExprLitInt {
		g.w.Space()
	}
	_ = g.w.WriteByte('.')
	g.w.WriteString(g.lookup(a.Attr))
}

func (g *Generator) call(id ast.ExprID) {
	c, ok := g.exprs.Call(id)
	if !ok {
		g.fail(id)
		return
	}
	g.expr(c.Func)
	_ = g.w.WriteByte('(')
	if len(c.Args) == 1 {
		if arg := g.exprs.Get(c.Args[0]); arg != nil && arg.Kind == ast.ExprGenerator {
			g.comprehension(c.Args[0], ast.ExprGenerator, false)
			_ = g.w.WriteByte(')')
			return
		}
	}
	g.list(c.Args)
	_ = g.w.WriteByte(')')
}

func (g *Generator) keyword(id ast.ExprID) {
	kw, ok := g.exprs.Keyword(id)
	if !ok {
		g.fail(id)
		return
	}
	if kw.Name == source.NoStringID {
		g.w.WriteString("**")
	} else {
		g.w.WriteString(g.lookup(kw.Name))
		_ = g.w.WriteByte('=')
	}
	g.expr(kw.Value)
}

func (g *Generator) lambda(id ast.ExprID) {
	l, ok := g.exprs.Lambda(id)
	if !ok {
		g.fail(id)
		return
	}
	g.w.WriteString("lambda")
	for i, prm := range l.Params {
		if i == 0 {
			_ = g.w.WriteByte(' ')
		} else {
			g.w.WriteString(", ")
		}
		switch prm.Kind {
		case ast.ParamPosOnly:
			_ = g.w.WriteByte('/')
			continue
		case ast.ParamKwOnly:
			_ = g.w.WriteByte('*')
			continue
		case ast.ParamVarArgs:
			_ = g.w.WriteByte('*')
		case ast.ParamKwArgs:
			g.w.WriteString("**")
		}
		g.w.WriteString(g.lookup(prm.Name))
		if prm.Default.IsValid() {
			_ = g.w.WriteByte('=')
			g.expr(prm.Default)
		}
	}
	g.w.WriteString(": ")
	g.expr(l.Body)
}

func (g *Generator) wrap(id ast.ExprID, kind ast.ExprKind) {
	w, ok := g.exprs.Wrap(id)
	if !ok {
		g.fail(id)
		return
	}
	switch kind {
	case ast.ExprStarred:
		_ = g.w.WriteByte('*')
		g.expr(w.Value)
	case ast.ExprAwait:
		g.w.WriteString("await ")
		g.expr(w.Value)
	case ast.ExprYield:
		g.w.WriteString("yield")
		if w.Value.IsValid() {
			_ = g.w.WriteByte(' ')
			g.expr(w.Value)
		}
	case ast.ExprYieldFrom:
		g.w.WriteString("yield from ")
		g.expr(w.Value)
	case ast.ExprGroup:
		_ = g.w.WriteByte('(')
		g.expr(w.Value)
		_ = g.w.WriteByte(')')
	}
}
