package comparable

import (
	"strconv"
	"strings"

	"setlint/internal/ast"
	"setlint/internal/source"
)

// Key is the canonical form of an expression. Keys are plain strings so
// they can index maps directly.
type Key string

// KeyOf computes the canonical key of id. It is pure and linear in the size
// of the subtree. An invalid id yields "_".
func KeyOf(exprs *ast.Exprs, strs *source.Interner, id ast.ExprID) Key {
	k := keyer{exprs: exprs, strs: strs}
	k.expr(id)
	return Key(k.b.String())
}

// keyer пишет самоограниченную запись: составные узлы закрываются ')',
// строки идут с префиксом длины, поэтому конкатенация однозначна.
type keyer struct {
	exprs *ast.Exprs
	strs  *source.Interner
	b     strings.Builder
}

func (k *keyer) open(tag string) {
	k.b.WriteString(tag)
	k.b.WriteByte('(')
}

func (k *keyer) close() {
	k.b.WriteByte(')')
}

func (k *keyer) str(s string) {
	k.b.WriteString(strconv.Itoa(len(s)))
	k.b.WriteByte(':')
	k.b.WriteString(s)
}

func (k *keyer) name(id source.StringID) {
	if id == source.NoStringID {
		k.b.WriteByte('-')
		return
	}
	k.str(k.strs.MustLookup(id))
}

func (k *keyer) list(ids []ast.ExprID) {
	k.b.WriteString(strconv.Itoa(len(ids)))
	k.b.WriteByte(';')
	for _, id := range ids {
		k.expr(id)
	}
}

func (k *keyer) expr(id ast.ExprID) {
	if !id.IsValid() {
		k.b.WriteByte('_')
		return
	}
	id = k.exprs.Unparen(id)
	e := k.exprs.Get(id)
	if e == nil {
		return
	}
	switch e.Kind {
	case ast.ExprLit:
		lit, _ := k.exprs.Literal(id)
		k.literal(lit)
		return
	case ast.ExprName:
		n, _ := k.exprs.Name(id)
		k.open("name")
		k.name(n.Name)
		k.close()
		return
	}

	k.open(e.Kind.String())
	switch e.Kind {
	case ast.ExprTuple:
		// скобки не влияют на значение: (1, 2) == 1, 2
		tup, _ := k.exprs.Tuple(id)
		k.list(tup.Elts)
	case ast.ExprList:
		l, _ := k.exprs.List(id)
		k.list(l.Elts)
	case ast.ExprSet:
		s, _ := k.exprs.Set(id)
		k.list(s.Elts)
	case ast.ExprDict:
		d, _ := k.exprs.Dict(id)
		k.b.WriteString(strconv.Itoa(len(d.Entries)))
		k.b.WriteByte(';')
		for _, entry := range d.Entries {
			k.expr(entry.Key)
			k.expr(entry.Value)
		}
	case ast.ExprListComp, ast.ExprSetComp, ast.ExprDictComp, ast.ExprGenerator:
		c, _ := k.exprs.Comp(id)
		k.expr(c.Elt)
		k.expr(c.Value)
		for _, g := range c.Generators {
			if g.IsAsync {
				k.b.WriteString("async")
			}
			k.open("for")
			k.expr(g.Target)
			k.expr(g.Iter)
			k.list(g.Ifs)
			k.close()
		}
	case ast.ExprAttribute:
		a, _ := k.exprs.Attribute(id)
		k.expr(a.Value)
		k.name(a.Attr)
	case ast.ExprCall:
		c, _ := k.exprs.Call(id)
		k.expr(c.Func)
		k.list(c.Args)
	case ast.ExprKeyword:
		kw, _ := k.exprs.Keyword(id)
		k.name(kw.Name)
		k.expr(kw.Value)
	case ast.ExprSubscript:
		s, _ := k.exprs.Subscript(id)
		k.expr(s.Value)
		k.expr(s.Index)
	case ast.ExprSlice:
		s, _ := k.exprs.Slice(id)
		k.expr(s.Lower)
		k.expr(s.Upper)
		k.expr(s.Step)
	case ast.ExprUnary:
		u, _ := k.exprs.Unary(id)
		k.b.WriteString(u.Op.String())
		k.expr(u.Operand)
	case ast.ExprBinary:
		bin, _ := k.exprs.Binary(id)
		k.b.WriteString(bin.Op.String())
		k.expr(bin.Left)
		k.expr(bin.Right)
	case ast.ExprBool:
		bo, _ := k.exprs.Bool(id)
		k.b.WriteString(bo.Op.String())
		k.list(bo.Values)
	case ast.ExprCompare:
		c, _ := k.exprs.Compare(id)
		k.expr(c.Left)
		for i, op := range c.Ops {
			k.b.WriteString(op.String())
			k.expr(c.Comparators[i])
		}
	case ast.ExprTernary:
		t, _ := k.exprs.Ternary(id)
		k.expr(t.Body)
		k.expr(t.Test)
		k.expr(t.OrElse)
	case ast.ExprLambda:
		l, _ := k.exprs.Lambda(id)
		for _, p := range l.Params {
			k.b.WriteString(strconv.Itoa(int(p.Kind)))
			k.name(p.Name)
			k.expr(p.Default)
		}
		k.b.WriteByte(';')
		k.expr(l.Body)
	case ast.ExprStarred, ast.ExprAwait, ast.ExprYield, ast.ExprYieldFrom:
		w, _ := k.exprs.Wrap(id)
		k.expr(w.Value)
	case ast.ExprNamed:
		n, _ := k.exprs.NamedExpr(id)
		k.expr(n.Target)
		k.expr(n.Value)
	}
	k.close()
}

func (k *keyer) literal(lit *ast.ExprLiteralData) {
	switch lit.Kind {
	case ast.ExprLitTrue:
		k.b.WriteString("True")
		return
	case ast.ExprLitFalse:
		k.b.WriteString("False")
		return
	case ast.ExprLitNone:
		k.b.WriteString("None")
		return
	case ast.ExprLitEllipsis:
		k.b.WriteString("Ellipsis")
		return
	}

	text := k.strs.MustLookup(lit.Parts[0])
	switch lit.Kind {
	case ast.ExprLitInt:
		if v, ok := decodeInt(text); ok {
			k.open("int")
			k.b.WriteString(v)
			k.close()
			return
		}
	case ast.ExprLitFloat:
		if bits, ok := decodeFloat(text); ok {
			k.open("float")
			k.b.WriteString(strconv.FormatUint(bits, 16))
			k.close()
			return
		}
	case ast.ExprLitImaginary:
		if bits, ok := decodeFloat(text[:len(text)-1]); ok {
			k.open("complex")
			k.b.WriteString(strconv.FormatUint(bits, 16))
			k.close()
			return
		}
	case ast.ExprLitString, ast.ExprLitBytes, ast.ExprLitFString:
		if k.stringValue(lit) {
			return
		}
	}
	k.sourceText(lit)
}

// stringValue keys str/bytes/f-string literals by their concatenated value
// under a tag per kind, so 'a' and f'a' never share a key. f-strings with
// replacement fields are keyed by source text instead.
func (k *keyer) stringValue(lit *ast.ExprLiteralData) bool {
	var value strings.Builder
	for _, part := range lit.Parts {
		text := k.strs.MustLookup(part)
		if hasReplacementField(text) {
			return false
		}
		v, _, ok := decodeString(text)
		if !ok {
			return false
		}
		value.WriteString(v)
	}
	tag := "str"
	switch lit.Kind {
	case ast.ExprLitBytes:
		tag = "bytes"
	case ast.ExprLitFString:
		tag = "fstr"
	}
	k.open(tag)
	k.str(value.String())
	k.close()
	return true
}

// sourceText is the fallback for literals whose value cannot be computed:
// equal spellings still share a key, different spellings never collide
// with a decoded value.
func (k *keyer) sourceText(lit *ast.ExprLiteralData) {
	k.open("src" + lit.Kind.String())
	for _, part := range lit.Parts {
		k.str(k.strs.MustLookup(part))
	}
	k.close()
}
