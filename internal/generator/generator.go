package generator

import (
	"errors"
	"fmt"

	"setlint/internal/ast"
	"setlint/internal/source"
)

// ErrMalformed is returned when a subtree references a missing node.
var ErrMalformed = errors.New("generator: malformed expression tree")

// Generator regenerates text for expressions of one arena.
type Generator struct {
	exprs *ast.Exprs
	strs  *source.Interner
	w     writer
	err   error
}

func New(exprs *ast.Exprs, strs *source.Interner) *Generator {
	return &Generator{exprs: exprs, strs: strs}
}

// Expr returns the source text of the subtree rooted at id.
func (g *Generator) Expr(id ast.ExprID) (string, error) {
	g.reset()
	g.expr(id)
	return g.result()
}

// Set returns the text of a set display holding elts in order, as if a set
// literal with exactly those elements had been written. An empty elts yields
// "set()", the only spelling of an empty set.
func (g *Generator) Set(elts []ast.ExprID) (string, error) {
	g.reset()
	if len(elts) == 0 {
		g.w.WriteString("set()")
		return g.result()
	}
	_ = g.w.WriteByte('{')
	g.list(elts)
	_ = g.w.WriteByte('}')
	return g.result()
}

func (g *Generator) reset() {
	g.w.Reset()
	g.err = nil
}

func (g *Generator) result() (string, error) {
	if g.err != nil {
		return "", g.err
	}
	return g.w.String(), nil
}

func (g *Generator) fail(id ast.ExprID) {
	if g.err == nil {
		g.err = fmt.Errorf("%w: expression #%d", ErrMalformed, id)
	}
}

func (g *Generator) lookup(id source.StringID) string {
	s, ok := g.strs.Lookup(id)
	if !ok {
		g.err = fmt.Errorf("%w: string #%d", ErrMalformed, id)
	}
	return s
}

func (g *Generator) list(ids []ast.ExprID) {
	for i, id := range ids {
		if i > 0 {
			g.w.WriteString(", ")
		}
		g.expr(id)
	}
}

func (g *Generator) expr(id ast.ExprID) {
	if g.err != nil {
		return
	}
	e := g.exprs.Get(id)
	if e == nil {
		g.fail(id)
		return
	}
	switch e.Kind {
	case ast.ExprName:
		n, ok := g.exprs.Name(id)
		if !ok {
			g.fail(id)
			return
		}
		g.w.WriteString(g.lookup(n.Name))
	case ast.ExprLit:
		g.literal(id)
	case ast.ExprTuple:
		g.tuple(id)
	case ast.ExprList:
		l, ok := g.exprs.List(id)
		if !ok {
			g.fail(id)
			return
		}
		_ = g.w.WriteByte('[')
		g.list(l.Elts)
		_ = g.w.WriteByte(']')
	case ast.ExprSet:
		s, ok := g.exprs.Set(id)
		if !ok {
			g.fail(id)
			return
		}
		_ = g.w.WriteByte('{')
		g.list(s.Elts)
		_ = g.w.WriteByte('}')
	case ast.ExprDict:
		g.dict(id)
	case ast.ExprListComp, ast.ExprSetComp, ast.ExprDictComp, ast.ExprGenerator:
		g.comprehension(id, e.Kind, true)
	case ast.ExprAttribute:
		g.attribute(id)
	case ast.ExprCall:
		g.call(id)
	case ast.ExprKeyword:
		g.keyword(id)
	case ast.ExprSubscript:
		s, ok := g.exprs.Subscript(id)
		if !ok {
			g.fail(id)
			return
		}
		g.expr(s.Value)
		_ = g.w.WriteByte('[')
		g.expr(s.Index)
		_ = g.w.WriteByte(']')
	case ast.ExprSlice:
		s, ok := g.exprs.Slice(id)
		if !ok {
			g.fail(id)
			return
		}
		g.optional(s.Lower)
		_ = g.w.WriteByte(':')
		g.optional(s.Upper)
		if s.Step.IsValid() {
			_ = g.w.WriteByte(':')
			g.expr(s.Step)
		}
	case ast.ExprUnary:
		u, ok := g.exprs.Unary(id)
		if !ok {
			g.fail(id)
			return
		}
		g.w.WriteString(u.Op.String())
		g.expr(u.Operand)
	case ast.ExprBinary:
		b, ok := g.exprs.Binary(id)
		if !ok {
			g.fail(id)
			return
		}
		g.expr(b.Left)
		g.w.WriteString(" " + b.Op.String() + " ")
		g.expr(b.Right)
	case ast.ExprBool:
		b, ok := g.exprs.Bool(id)
		if !ok {
			g.fail(id)
			return
		}
		for i, v := range b.Values {
			if i > 0 {
				g.w.WriteString(" " + b.Op.String() + " ")
			}
			g.expr(v)
		}
	case ast.ExprCompare:
		c, ok := g.exprs.Compare(id)
		if !ok || len(c.Ops) != len(c.Comparators) {
			g.fail(id)
			return
		}
		g.expr(c.Left)
		for i, op := range c.Ops {
			g.w.WriteString(" " + op.String() + " ")
			g.expr(c.Comparators[i])
		}
	case ast.ExprTernary:
		t, ok := g.exprs.Ternary(id)
		if !ok {
			g.fail(id)
			return
		}
		g.expr(t.Body)
		g.w.WriteString(" if ")
		g.expr(t.Test)
		g.w.WriteString(" else ")
		g.expr(t.OrElse)
	case ast.ExprLambda:
		g.lambda(id)
	case ast.ExprStarred, ast.ExprAwait, ast.ExprYield, ast.ExprYieldFrom, ast.ExprGroup:
		g.wrap(id, e.Kind)
	case ast.ExprNamed:
		n, ok := g.exprs.NamedExpr(id)
		if !ok {
			g.fail(id)
			return
		}
		g.expr(n.Target)
		g.w.WriteString(" := ")
		g.expr(n.Value)
	default:
		g.fail(id)
	}
}

func (g *Generator) optional(id ast.ExprID) {
	if id.IsValid() {
		g.expr(id)
	}
}
