package comparable

import (
	"setlint/internal/ast"
	"setlint/internal/source"
)

// IsLiteral reports whether id is a literal whose runtime equality is known
// statically: numbers, strings, bytes, booleans, None, Ellipsis and tuples
// made only of literals. Grouping parentheses are looked through. f-strings
// (even without fields) and unary minus are not literals.
func IsLiteral(exprs *ast.Exprs, strs *source.Interner, id ast.ExprID) bool {
	id = exprs.Unparen(id)
	e := exprs.Get(id)
	if e == nil {
		return false
	}
	switch e.Kind {
	case ast.ExprLit:
		lit, _ := exprs.Literal(id)
		return lit.Kind != ast.ExprLitFString
	case ast.ExprTuple:
		tup, _ := exprs.Tuple(id)
		for _, elt := range tup.Elts {
			if !IsLiteral(exprs, strs, elt) {
				return false
			}
		}
		return true
	}
	return false
}
