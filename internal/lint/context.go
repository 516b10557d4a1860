package lint

import (
	"fmt"

	"setlint/internal/ast"
	"setlint/internal/comparable"
	"setlint/internal/diag"
	"setlint/internal/generator"
	"setlint/internal/source"
)

// Context is what a rule sees of one file. It is created per file and is
// not shared between goroutines.
type Context struct {
	File     *source.File
	Exprs    *ast.Exprs
	Strings  *source.Interner
	Reporter diag.Reporter

	gen *generator.Generator
}

// NewContext prepares the rule context for one parsed file.
func NewContext(b *ast.Builder, file *source.File, r diag.Reporter) *Context {
	return &Context{
		File:     file,
		Exprs:    b.Exprs,
		Strings:  b.Strings,
		Reporter: r,
		gen:      generator.New(b.Exprs, b.Strings),
	}
}

// Key returns the structural equality key of id.
func (c *Context) Key(id ast.ExprID) comparable.Key {
	return comparable.KeyOf(c.Exprs, c.Strings, id)
}

// IsLiteral reports whether id is a literal with statically known equality.
func (c *Context) IsLiteral(id ast.ExprID) bool {
	return comparable.IsLiteral(c.Exprs, c.Strings, id)
}

// Text regenerates the source text of id.
func (c *Context) Text(id ast.ExprID) (string, error) {
	return c.gen.Expr(id)
}

// SetText regenerates a set display holding elts in order.
func (c *Context) SetText(elts []ast.ExprID) (string, error) {
	return c.gen.Set(elts)
}

// Source returns the original text under sp.
func (c *Context) Source(sp source.Span) string {
	return c.File.Slice(sp)
}

// Span returns the source span of id.
func (c *Context) Span(id ast.ExprID) source.Span {
	if e := c.Exprs.Get(id); e != nil {
		return e.Span
	}
	return source.Span{File: c.File.ID}
}

// FixID builds a fix identifier that is stable for one rule and one span of
// one file. Diagnostics that share a fix share its ID.
func (c *Context) FixID(code diag.Code, sp source.Span) string {
	return fmt.Sprintf("%s@%s:%d-%d", code.ID(), c.File.Path, sp.Start, sp.End)
}
