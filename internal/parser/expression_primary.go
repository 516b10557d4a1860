package parser

import (
	"setlint/internal/ast"
	"setlint/internal/diag"
	"setlint/internal/lexer"
	"setlint/internal/source"
	"setlint/internal/token"
)

// parsePrimary - atom, за которым следуют трейлеры: ".name", "(args)", "[index]".
func (p *Parser) parsePrimary() (ast.ExprID, bool) {
	expr, ok := p.parseAtom()
	if !ok {
		return ast.NoExprID, false
	}
	for {
		switch p.tok.Kind {
		case token.Dot:
			p.advance()
			if !p.at(token.Ident) {
				p.err(diag.SynExpectIdentifier, "expected attribute name after '.', got "+p.describe())
				return ast.NoExprID, false
			}
			name := p.advance()
			expr = p.arenas.Exprs.NewAttribute(p.spanFrom(p.exprSpan(expr)), expr, p.intern(lexer.NormalizeIdent(name.Text)))
		case token.LParen:
			args, ok := p.parseCallArgs()
			if !ok {
				return ast.NoExprID, false
			}
			expr = p.arenas.Exprs.NewCall(p.spanFrom(p.exprSpan(expr)), expr, args)
		case token.LBracket:
			p.advance()
			index, ok := p.parseSlices()
			if !ok {
				return ast.NoExprID, false
			}
			if _, ok := p.expect(token.RBracket, diag.SynUnclosedBracket, "expected ']' after subscript"); !ok {
				return ast.NoExprID, false
			}
			expr = p.arenas.Exprs.NewSubscript(p.spanFrom(p.exprSpan(expr)), expr, index)
		default:
			return expr, true
		}
	}
}

// parseCallArgs разбирает "(...)" вызова, включая единственный генератор без
// собственных скобок: f(x for x in y).
func (p *Parser) parseCallArgs() ([]ast.ExprID, bool) {
	p.advance() // (
	var args []ast.ExprID
	for !p.at(token.RParen) {
		arg, ok := p.parseCallArg()
		if !ok {
			return nil, false
		}
		args = append(args, arg)
		if !p.eat(token.Comma) {
			break
		}
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' after call arguments, got "+p.describe()); !ok {
		return nil, false
	}
	return args, true
}

func (p *Parser) parseCallArg() (ast.ExprID, bool) {
	switch p.tok.Kind {
	case token.Star:
		star := p.advance()
		value, ok := p.parseExpression()
		if !ok {
			return ast.NoExprID, false
		}
		return p.arenas.Exprs.NewWrap(ast.ExprStarred, p.spanFrom(star.Span), value), true
	case token.DoubleStar:
		star := p.advance()
		value, ok := p.parseExpression()
		if !ok {
			return ast.NoExprID, false
		}
		return p.arenas.Exprs.NewKeyword(p.spanFrom(star.Span), source.NoStringID, value), true
	}

	arg, ok := p.parseNamedExpr()
	if !ok {
		return ast.NoExprID, false
	}
	if p.at(token.Assign) {
		name, isName := p.arenas.Exprs.Name(arg)
		if !isName {
			p.errAt(diag.SynInvalidTarget, p.exprSpan(arg), "expression cannot be used as a keyword argument name")
			return ast.NoExprID, false
		}
		p.advance()
		value, ok := p.parseExpression()
		if !ok {
			return ast.NoExprID, false
		}
		return p.arenas.Exprs.NewKeyword(p.spanFrom(p.exprSpan(arg)), name.Name, value), true
	}
	if p.atComprehension() {
		gens, ok := p.parseComprehensions()
		if !ok {
			return ast.NoExprID, false
		}
		return p.arenas.Exprs.NewComp(ast.ExprGenerator, p.spanFrom(p.exprSpan(arg)), arg, ast.NoExprID, gens), true
	}
	return arg, true
}

// parseSlices - индекс подписки. "a[1, 2:3]" даёт Tuple без скобок.
func (p *Parser) parseSlices() (ast.ExprID, bool) {
	first, ok := p.parseSlice()
	if !ok || !p.at(token.Comma) {
		return first, ok
	}
	elts := []ast.ExprID{first}
	for p.eat(token.Comma) {
		if p.at(token.RBracket) {
			break
		}
		e, ok := p.parseSlice()
		if !ok {
			return ast.NoExprID, false
		}
		elts = append(elts, e)
	}
	return p.arenas.Exprs.NewTuple(p.spanFrom(p.exprSpan(first)), elts, false), true
}

func (p *Parser) parseSlice() (ast.ExprID, bool) {
	start := p.tok.Span
	lower := ast.NoExprID
	if !p.at(token.Colon) {
		e, ok := p.parseStarNamedExpr()
		if !ok || !p.at(token.Colon) {
			return e, ok
		}
		lower = e
	}
	p.advance() // :
	upper, ok := p.parseOptionalSliceBound()
	if !ok {
		return ast.NoExprID, false
	}
	step := ast.NoExprID
	if p.eat(token.Colon) {
		if step, ok = p.parseOptionalSliceBound(); !ok {
			return ast.NoExprID, false
		}
	}
	return p.arenas.Exprs.NewSlice(p.spanFrom(start), lower, upper, step), true
}

func (p *Parser) parseOptionalSliceBound() (ast.ExprID, bool) {
	if !startsExpr(p.tok.Kind) || p.at(token.Star) {
		return ast.NoExprID, true
	}
	return p.parseExpression()
}

func (p *Parser) atComprehension() bool {
	if p.at(token.KwFor) {
		return true
	}
	return p.at(token.KwAsync) && p.lx.Peek().Kind == token.KwFor
}

// parseComprehensions - одна или несколько клауз "for ... in ... [if ...]".
// iter и условия разбираются на уровне disjunction, чтобы "if" не стал тернарным.
func (p *Parser) parseComprehensions() ([]ast.Comprehension, bool) {
	var gens []ast.Comprehension
	for p.atComprehension() {
		isAsync := p.eat(token.KwAsync)
		p.advance() // for
		target, ok := p.parseTargetList()
		if !ok {
			return nil, false
		}
		if _, ok := p.expect(token.KwIn, diag.SynForMissingIn, "expected 'in' in comprehension, got "+p.describe()); !ok {
			return nil, false
		}
		iter, ok := p.parseDisjunction()
		if !ok {
			return nil, false
		}
		gen := ast.Comprehension{Target: target, Iter: iter, IsAsync: isAsync}
		for p.eat(token.KwIf) {
			cond, ok := p.parseDisjunction()
			if !ok {
				return nil, false
			}
			gen.Ifs = append(gen.Ifs, cond)
		}
		gens = append(gens, gen)
	}
	return gens, true
}

// parseTargetList - цели for: "a, (b, c), *d". Разбираются на уровне
// bitwise_or, поэтому "in" не поглощается сравнением.
func (p *Parser) parseTargetList() (ast.ExprID, bool) {
	return p.parseExprList(p.parseTarget)
}

func (p *Parser) parseTarget() (ast.ExprID, bool) {
	if p.at(token.Star) {
		return p.parseStarred()
	}
	return p.parseBitOr(0)
}
