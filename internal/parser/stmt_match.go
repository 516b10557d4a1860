package parser

import (
	"setlint/internal/ast"
	"setlint/internal/diag"
	"setlint/internal/source"
	"setlint/internal/token"
)

// tryMatch разбирает оператор match, если "match" в начале строки используется
// как soft keyword. handled == false: это обычное имя, разбор продолжает вызывающий.
func (p *Parser) tryMatch() ([]ast.StmtID, bool) {
	next := p.lx.Peek().Kind
	switch next {
	case token.Ident, token.IntLit, token.FloatLit, token.ImagLit, token.StringLit,
		token.BytesLit, token.FStringLit, token.KwTrue, token.KwFalse, token.KwNone,
		token.LBrace, token.Tilde, token.KwLambda, token.KwAwait:
		// "match x" не может быть выражением
		return p.compound(func() (ast.StmtID, bool) {
			kw := p.advance()
			subject, ok := p.parseStarNamedExpressions()
			if !ok {
				return ast.NoStmtID, false
			}
			return p.parseMatchBody(kw.Span, subject)
		}), true
	case token.LParen, token.LBracket, token.Minus, token.Plus, token.Star:
	default:
		return nil, false
	}

	// match(x), match[x], match -x, match *x: решаем после разбора выражения
	kw := p.advance()
	head := p.arenas.Exprs.NewName(kw.Span, p.intern("match"))
	after := p.tok.Span.Start
	p.pending = head
	expr, ok := p.parseStarNamedExpressions()
	if !ok {
		p.pending = ast.NoExprID
		p.resyncLine()
		return nil, true
	}
	if !p.at(token.Colon) || p.lx.Peek().Kind != token.Newline {
		st, ok := p.finishExprStatement(kw.Span, expr)
		return p.continueSimpleStatements(st, ok), true
	}
	return p.compound(func() (ast.StmtID, bool) {
		subject, ok := p.rebaseMatchSubject(expr, head, after)
		if !ok {
			p.errAt(diag.SynUnexpectedToken, p.exprSpan(expr), "invalid match subject")
			return ast.NoStmtID, false
		}
		return p.parseMatchBody(kw.Span, subject)
	}), true
}

// rebaseMatchSubject перестраивает выражение, разобранное с именем match в
// голове, в выражение без него: match(x) -> (x), match[a] -> [a], match - x -> -x.
func (p *Parser) rebaseMatchSubject(id, head ast.ExprID, start uint32) (ast.ExprID, bool) {
	exprs := p.arenas.Exprs
	e := exprs.Get(id)
	if e == nil {
		return ast.NoExprID, false
	}
	span := source.Span{File: e.Span.File, Start: start, End: e.Span.End}

	switch e.Kind {
	case ast.ExprCall:
		call, _ := exprs.Call(id)
		if call.Func != head {
			fn, ok := p.rebaseMatchSubject(call.Func, head, start)
			return exprs.NewCall(span, fn, call.Args), ok
		}
		for _, arg := range call.Args {
			if exprs.Get(arg).Kind == ast.ExprKeyword {
				return ast.NoExprID, false
			}
		}
		if len(call.Args) == 1 {
			return exprs.NewWrap(ast.ExprGroup, span, call.Args[0]), true
		}
		return exprs.NewTuple(span, call.Args, true), true
	case ast.ExprSubscript:
		sub, _ := exprs.Subscript(id)
		if sub.Value != head {
			value, ok := p.rebaseMatchSubject(sub.Value, head, start)
			return exprs.NewSubscript(span, value, sub.Index), ok
		}
		elts := []ast.ExprID{sub.Index}
		if t, ok := exprs.Tuple(sub.Index); ok && !t.Parenthesized {
			elts = t.Elts
		}
		for _, elt := range elts {
			if exprs.Get(elt).Kind == ast.ExprSlice {
				return ast.NoExprID, false
			}
		}
		return exprs.NewList(span, elts), true
	case ast.ExprAttribute:
		attr, _ := exprs.Attribute(id)
		value, ok := p.rebaseMatchSubject(attr.Value, head, start)
		return exprs.NewAttribute(span, value, attr.Attr), ok
	case ast.ExprBinary:
		bin, _ := exprs.Binary(id)
		if bin.Left != head {
			left, ok := p.rebaseMatchSubject(bin.Left, head, start)
			return exprs.NewBinary(span, bin.Op, left, bin.Right), ok
		}
		switch bin.Op {
		case ast.ExprBinarySub:
			return exprs.NewUnary(span, ast.ExprUnaryNeg, bin.Right), true
		case ast.ExprBinaryAdd:
			return exprs.NewUnary(span, ast.ExprUnaryPos, bin.Right), true
		case ast.ExprBinaryMul:
			return exprs.NewWrap(ast.ExprStarred, span, bin.Right), true
		}
	case ast.ExprCompare:
		cmp, _ := exprs.Compare(id)
		left, ok := p.rebaseMatchSubject(cmp.Left, head, start)
		return exprs.NewCompare(span, left, cmp.Ops, cmp.Comparators), ok
	case ast.ExprTuple:
		t, _ := exprs.Tuple(id)
		if t.Parenthesized || len(t.Elts) == 0 {
			break
		}
		first, ok := p.rebaseMatchSubject(t.Elts[0], head, start)
		elts := append([]ast.ExprID{first}, t.Elts[1:]...)
		return exprs.NewTuple(span, elts, false), ok
	case ast.ExprTernary:
		tern, _ := exprs.Ternary(id)
		body, ok := p.rebaseMatchSubject(tern.Body, head, start)
		return exprs.NewTernary(span, body, tern.Test, tern.OrElse), ok
	case ast.ExprBool:
		b, _ := exprs.Bool(id)
		first, ok := p.rebaseMatchSubject(b.Values[0], head, start)
		values := append([]ast.ExprID{first}, b.Values[1:]...)
		return exprs.NewBool(span, b.Op, values), ok
	}
	return ast.NoExprID, false
}

// parseMatchBody - ":" NEWLINE INDENT case+ DEDENT после subject.
func (p *Parser) parseMatchBody(start source.Span, subject ast.ExprID) (ast.StmtID, bool) {
	if _, ok := p.expect(token.Colon, diag.SynExpectColon, "expected ':' after match subject, got "+p.describe()); !ok {
		return ast.NoStmtID, false
	}
	if _, ok := p.expect(token.Newline, diag.SynExpectNewline, "expected end of line after 'match', got "+p.describe()); !ok {
		return ast.NoStmtID, false
	}
	data := ast.StmtMatchData{Subject: subject}
	if _, ok := p.expect(token.Indent, diag.SynUnexpectedToken, "expected an indented block of case clauses"); !ok {
		return p.arenas.Stmts.NewMatch(p.spanFrom(start), data), true
	}
	for !p.atOr(token.Dedent, token.EOF) {
		if !p.atSoft("case") {
			p.err(diag.SynUnexpectedToken, "expected 'case', got "+p.describe())
			p.parseStatement()
			continue
		}
		c, ok := p.parseCase()
		if !ok {
			p.resyncLine()
			if p.at(token.Indent) {
				p.parseIndented()
			}
			continue
		}
		data.Cases = append(data.Cases, c)
	}
	p.eat(token.Dedent)
	return p.arenas.Stmts.NewMatch(p.spanFrom(start), data), true
}

func (p *Parser) parseCase() (ast.MatchCase, bool) {
	kw := p.advance()
	p.inPattern = true
	pattern, ok := p.parseStarNamedExpressions()
	if ok && p.at(token.KwAs) {
		pattern, ok = p.parseAsPattern(pattern)
	}
	p.inPattern = false
	if !ok {
		return ast.MatchCase{}, false
	}
	c := ast.MatchCase{Pattern: pattern}
	if p.eat(token.KwIf) {
		if c.Guard, ok = p.parseNamedExpr(); !ok {
			return ast.MatchCase{}, false
		}
	}
	c.Body = p.parseSuite("case pattern")
	c.Span = p.spanFrom(kw.Span)
	return c, true
}
