// Package testkit holds assertions shared by parser, lint and fuzz tests.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"setlint/internal/ast"
	"setlint/internal/source"
)

// CheckSpanInvariants runs span invariants on a parsed file:
//  1. file.Span belongs to sf and ends within its content
//  2. every statement lies inside file.Span; top-level statements are ordered
//  3. every expression span is well-formed and within the content
//  4. set elements lie inside their literal, in source order, without overlap
//
// The whole-literal replacement of duplicate fixes relies on (4).
func CheckSpanInvariants(b *ast.Builder, fileID ast.FileID, sf *source.File) error {
	if b == nil || sf == nil {
		return fmt.Errorf("nil builder or file")
	}
	f := b.Files.Get(fileID)
	if f == nil {
		return fmt.Errorf("file node not found")
	}

	// 1) file span sanity
	if f.Span.File != sf.ID {
		return fmt.Errorf("file span points to different file id: got=%d want=%d", f.Span.File, sf.ID)
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	if f.Span.End > lenContent {
		return fmt.Errorf("file span end beyond content: %d > %d", f.Span.End, lenContent)
	}

	wellFormed := func(what string, sp source.Span) error {
		if sp.File != sf.ID {
			return fmt.Errorf("%s span file mismatch: got=%d want=%d", what, sp.File, sf.ID)
		}
		if sp.Start > sp.End || sp.End > lenContent {
			return fmt.Errorf("%s span %v is malformed (content length %d)", what, sp, lenContent)
		}
		return nil
	}

	var firstErr error
	fail := func(err error) {
		if firstErr == nil {
			firstErr = err
		}
	}

	var walkExpr func(ast.ExprID)
	walkExpr = func(id ast.ExprID) {
		expr := b.Exprs.Get(id)
		if expr == nil {
			fail(fmt.Errorf("nil expr for id=%d", id))
			return
		}
		if err := wellFormed(expr.Kind.String(), expr.Span); err != nil {
			fail(err)
			return
		}
		if set, ok := b.Exprs.Set(id); ok {
			fail(checkSetElements(b, expr.Span, set.Elts))
		}
		b.Exprs.Children(id, walkExpr)
	}
	var walkStmt func(ast.StmtID)
	walkStmt = func(id ast.StmtID) {
		st := b.Stmts.Get(id)
		if st == nil {
			fail(fmt.Errorf("nil stmt for id=%d", id))
			return
		}
		if err := wellFormed(st.Kind.String(), st.Span); err != nil {
			fail(err)
			return
		}
		// 2) statement inside file
		if st.Span.Start < f.Span.Start || st.Span.End > f.Span.End {
			fail(fmt.Errorf("%s span %v is outside file span %v", st.Kind, st.Span, f.Span))
		}
		b.Stmts.Children(id, walkExpr, walkStmt)
	}

	var prev uint32
	for i, id := range f.Body {
		walkStmt(id)
		if st := b.Stmts.Get(id); st != nil {
			if i > 0 && st.Span.Start < prev {
				fail(fmt.Errorf("top-level statement %d starts at %d before previous %d", i, st.Span.Start, prev))
			}
			prev = st.Span.Start
		}
	}
	return firstErr
}

func checkSetElements(b *ast.Builder, outer source.Span, elts []ast.ExprID) error {
	var prevEnd uint32
	for i, id := range elts {
		elt := b.Exprs.Get(id)
		if elt == nil {
			return fmt.Errorf("nil set element %d", i)
		}
		sp := elt.Span
		if sp.Start < outer.Start || sp.End > outer.End {
			return fmt.Errorf("set element %v is outside literal %v", sp, outer)
		}
		if i > 0 && sp.Start < prevEnd {
			return fmt.Errorf("set element %d at %v overlaps the previous one", i, sp)
		}
		prevEnd = sp.End
	}
	return nil
}
