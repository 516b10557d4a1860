package parser

import (
	"setlint/internal/ast"
	"setlint/internal/diag"
	"setlint/internal/token"
)

// parseStarExpressions - star_expressions: "a, *b, c" без скобок становится Tuple.
func (p *Parser) parseStarExpressions() (ast.ExprID, bool) {
	return p.parseExprList(p.parseStarExpr)
}

// parseStarNamedExpressions - то же, но элементы могут быть "x := v".
func (p *Parser) parseStarNamedExpressions() (ast.ExprID, bool) {
	return p.parseExprList(p.parseStarNamedExpr)
}

func (p *Parser) parseExprList(elem func() (ast.ExprID, bool)) (ast.ExprID, bool) {
	first, ok := elem()
	if !ok || !p.at(token.Comma) {
		return first, ok
	}
	elts := []ast.ExprID{first}
	for p.eat(token.Comma) {
		if !startsExpr(p.tok.Kind) {
			break // завершающая запятая
		}
		e, ok := elem()
		if !ok {
			return ast.NoExprID, false
		}
		elts = append(elts, e)
	}
	span := p.spanFrom(p.exprSpan(first))
	return p.arenas.Exprs.NewTuple(span, elts, false), true
}

// parseStarExpr - "*" bitwise_or | expression
func (p *Parser) parseStarExpr() (ast.ExprID, bool) {
	if p.at(token.Star) && p.prefixAllowed() {
		return p.parseStarred()
	}
	return p.parseExpression()
}

// parseStarNamedExpr - "*" bitwise_or | named_expression
func (p *Parser) parseStarNamedExpr() (ast.ExprID, bool) {
	var expr ast.ExprID
	var ok bool
	if p.at(token.Star) && p.prefixAllowed() {
		expr, ok = p.parseStarred()
	} else {
		expr, ok = p.parseNamedExpr()
	}
	if !ok || !p.inPattern || !p.at(token.KwAs) {
		return expr, ok
	}
	return p.parseAsPattern(expr)
}

// parseAsPattern - "pattern as name" внутри case.
func (p *Parser) parseAsPattern(pattern ast.ExprID) (ast.ExprID, bool) {
	p.advance() // as
	name, sp, ok := p.parseName()
	if !ok {
		return ast.NoExprID, false
	}
	target := p.arenas.Exprs.NewName(sp, name)
	return p.arenas.Exprs.NewNamed(p.spanFrom(p.exprSpan(pattern)), target, pattern), true
}

func (p *Parser) parseStarred() (ast.ExprID, bool) {
	star := p.advance()
	value, ok := p.parseBitOr(0)
	if !ok {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewWrap(ast.ExprStarred, p.spanFrom(star.Span), value), true
}

// parseNamedExpr - NAME ":=" expression | expression
func (p *Parser) parseNamedExpr() (ast.ExprID, bool) {
	target, ok := p.parseExpression()
	if !ok || !p.at(token.ColonEq) {
		return target, ok
	}
	if _, isName := p.arenas.Exprs.Name(target); !isName {
		p.errAt(diag.SynInvalidTarget, p.exprSpan(target), "cannot use assignment expressions with this target")
	}
	p.advance()
	value, ok := p.parseExpression()
	if !ok {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewNamed(p.spanFrom(p.exprSpan(target)), target, value), true
}

// parseExpression - lambda | disjunction ["if" disjunction "else" expression]
func (p *Parser) parseExpression() (ast.ExprID, bool) {
	if p.at(token.KwLambda) && p.prefixAllowed() {
		return p.parseLambda()
	}
	body, ok := p.parseDisjunction()
	if !ok || !p.at(token.KwIf) || p.inPattern {
		return body, ok
	}
	p.advance()
	test, ok := p.parseDisjunction()
	if !ok {
		return ast.NoExprID, false
	}
	if _, ok := p.expect(token.KwElse, diag.SynUnexpectedToken, "expected 'else' after conditional expression"); !ok {
		return ast.NoExprID, false
	}
	orElse, ok := p.parseExpression()
	if !ok {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewTernary(p.spanFrom(p.exprSpan(body)), body, test, orElse), true
}

func (p *Parser) parseLambda() (ast.ExprID, bool) {
	kw := p.advance()
	params, ok := p.parseParams(token.Colon, false)
	if !ok {
		return ast.NoExprID, false
	}
	if _, ok := p.expect(token.Colon, diag.SynExpectColon, "expected ':' after lambda parameters"); !ok {
		return ast.NoExprID, false
	}
	body, ok := p.parseExpression()
	if !ok {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewLambda(p.spanFrom(kw.Span), params, body), true
}

func (p *Parser) parseDisjunction() (ast.ExprID, bool) {
	return p.parseBoolChain(token.KwOr, ast.ExprBoolOr, p.parseConjunction)
}

func (p *Parser) parseConjunction() (ast.ExprID, bool) {
	return p.parseBoolChain(token.KwAnd, ast.ExprBoolAnd, p.parseInversion)
}

func (p *Parser) parseBoolChain(kw token.Kind, op ast.ExprBoolOp, operand func() (ast.ExprID, bool)) (ast.ExprID, bool) {
	first, ok := operand()
	if !ok || !p.at(kw) {
		return first, ok
	}
	values := []ast.ExprID{first}
	for p.eat(kw) {
		next, ok := operand()
		if !ok {
			return ast.NoExprID, false
		}
		values = append(values, next)
	}
	return p.arenas.Exprs.NewBool(p.spanFrom(p.exprSpan(first)), op, values), true
}

func (p *Parser) parseInversion() (ast.ExprID, bool) {
	if !p.at(token.KwNot) || !p.prefixAllowed() {
		return p.parseComparison()
	}
	kw := p.advance()
	operand, ok := p.parseInversion()
	if !ok {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewUnary(p.spanFrom(kw.Span), ast.ExprUnaryNot, operand), true
}

// parseComparison - цепочки сравнений "a < b <= c" остаются одним узлом Compare.
func (p *Parser) parseComparison() (ast.ExprID, bool) {
	left, ok := p.parseBitOr(0)
	if !ok {
		return ast.NoExprID, false
	}
	var ops []ast.ExprCmpOp
	var comparators []ast.ExprID
	for {
		op, isCmp := p.cmpOp()
		if !isCmp {
			break
		}
		right, ok := p.parseBitOr(0)
		if !ok {
			return ast.NoExprID, false
		}
		ops = append(ops, op)
		comparators = append(comparators, right)
	}
	if len(ops) == 0 {
		return left, true
	}
	return p.arenas.Exprs.NewCompare(p.spanFrom(p.exprSpan(left)), left, ops, comparators), true
}

// cmpOp съедает оператор сравнения, включая составные "not in" и "is not".
func (p *Parser) cmpOp() (ast.ExprCmpOp, bool) {
	if p.at(token.KwNot) {
		if p.lx.Peek().Kind != token.KwIn {
			return 0, false
		}
		p.advance()
		p.advance()
		return ast.ExprCmpNotIn, true
	}
	op, ok := simpleCmpOps[p.tok.Kind]
	if !ok {
		return 0, false
	}
	p.advance()
	if op == ast.ExprCmpIs && p.eat(token.KwNot) {
		op = ast.ExprCmpIsNot
	}
	return op, true
}

// parseBitOr реализует Pratt parsing для бинарных операторов от "|" до "*".
func (p *Parser) parseBitOr(minPrec int) (ast.ExprID, bool) {
	left, ok := p.parseFactor()
	if !ok {
		return ast.NoExprID, false
	}
	for {
		prec := binaryPrec(p.tok.Kind)
		if prec < 0 || prec < minPrec {
			break
		}
		opTok := p.advance()
		right, ok := p.parseBitOr(prec + 1)
		if !ok {
			return ast.NoExprID, false
		}
		left = p.arenas.Exprs.NewBinary(p.spanFrom(p.exprSpan(left)), binaryOps[opTok.Kind], left, right)
	}
	return left, true
}

// parseFactor - ("+" | "-" | "~") factor | power
func (p *Parser) parseFactor() (ast.ExprID, bool) {
	if !p.prefixAllowed() {
		return p.parsePower()
	}
	var op ast.ExprUnaryOp
	switch p.tok.Kind {
	case token.Plus:
		op = ast.ExprUnaryPos
	case token.Minus:
		op = ast.ExprUnaryNeg
	case token.Tilde:
		op = ast.ExprUnaryInvert
	default:
		return p.parsePower()
	}
	opTok := p.advance()
	operand, ok := p.parseFactor()
	if !ok {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewUnary(p.spanFrom(opTok.Span), op, operand), true
}

// parsePower - await_primary ["**" factor]; "**" правоассоциативен и
// связывает сильнее унарного минуса слева: -2**2 == -(2**2).
func (p *Parser) parsePower() (ast.ExprID, bool) {
	base, ok := p.parseAwaitPrimary()
	if !ok || !p.at(token.DoubleStar) {
		return base, ok
	}
	p.advance()
	exp, ok := p.parseFactor()
	if !ok {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewBinary(p.spanFrom(p.exprSpan(base)), ast.ExprBinaryPow, base, exp), true
}

func (p *Parser) parseAwaitPrimary() (ast.ExprID, bool) {
	if !p.at(token.KwAwait) || !p.prefixAllowed() {
		return p.parsePrimary()
	}
	kw := p.advance()
	value, ok := p.parsePrimary()
	if !ok {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewWrap(ast.ExprAwait, p.spanFrom(kw.Span), value), true
}

// parseYield - "yield" ["from" expression | star_expressions]
func (p *Parser) parseYield() (ast.ExprID, bool) {
	kw := p.advance()
	if p.eat(token.KwFrom) {
		value, ok := p.parseExpression()
		if !ok {
			return ast.NoExprID, false
		}
		return p.arenas.Exprs.NewWrap(ast.ExprYieldFrom, p.spanFrom(kw.Span), value), true
	}
	value := ast.NoExprID
	if startsExpr(p.tok.Kind) {
		var ok bool
		if value, ok = p.parseStarExpressions(); !ok {
			return ast.NoExprID, false
		}
	}
	return p.arenas.Exprs.NewWrap(ast.ExprYield, p.spanFrom(kw.Span), value), true
}

// parseYieldOrStarExpressions is the right-hand side of assignments and
// expression statements.
func (p *Parser) parseYieldOrStarExpressions() (ast.ExprID, bool) {
	if p.at(token.KwYield) && p.prefixAllowed() {
		return p.parseYield()
	}
	return p.parseStarExpressions()
}
