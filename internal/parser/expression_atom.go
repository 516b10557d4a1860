package parser

import (
	"setlint/internal/ast"
	"setlint/internal/diag"
	"setlint/internal/lexer"
	"setlint/internal/source"
	"setlint/internal/token"
)

func (p *Parser) parseAtom() (ast.ExprID, bool) {
	if p.pending.IsValid() {
		atom := p.pending
		p.pending = ast.NoExprID
		return atom, true
	}
	switch p.tok.Kind {
	case token.Ident:
		tok := p.advance()
		return p.arenas.Exprs.NewName(tok.Span, p.intern(lexer.NormalizeIdent(tok.Text))), true
	case token.IntLit:
		return p.literal(ast.ExprLitInt), true
	case token.FloatLit:
		return p.literal(ast.ExprLitFloat), true
	case token.ImagLit:
		return p.literal(ast.ExprLitImaginary), true
	case token.KwTrue:
		return p.literal(ast.ExprLitTrue), true
	case token.KwFalse:
		return p.literal(ast.ExprLitFalse), true
	case token.KwNone:
		return p.literal(ast.ExprLitNone), true
	case token.Ellipsis:
		return p.literal(ast.ExprLitEllipsis), true
	case token.StringLit, token.BytesLit, token.FStringLit:
		return p.parseStrings(), true
	case token.LParen:
		return p.parseParenAtom()
	case token.LBracket:
		return p.parseListAtom()
	case token.LBrace:
		return p.parseBraceAtom()
	case token.Invalid:
		// лексер уже сообщил об ошибке
		p.advance()
		return ast.NoExprID, false
	}
	p.err(diag.SynExpectExpression, "expected expression, got "+p.describe())
	return ast.NoExprID, false
}

func (p *Parser) literal(kind ast.ExprLitKind) ast.ExprID {
	tok := p.advance()
	return p.arenas.Exprs.NewLiteral(tok.Span, kind, p.intern(tok.Text))
}

// parseStrings склеивает соседние строковые токены в один литерал ("a" "b").
// Смешивать bytes и str нельзя.
func (p *Parser) parseStrings() ast.ExprID {
	start := p.tok.Span
	var parts []source.StringID
	var sawBytes, sawStr, sawF bool
	for p.atOr(token.StringLit, token.BytesLit, token.FStringLit) {
		tok := p.advance()
		parts = append(parts, p.intern(tok.Text))
		switch tok.Kind {
		case token.BytesLit:
			sawBytes = true
		case token.FStringLit:
			sawF = true
		default:
			sawStr = true
		}
	}
	span := p.spanFrom(start)
	if sawBytes && (sawStr || sawF) {
		p.errAt(diag.SynUnexpectedToken, span, "cannot mix bytes and nonbytes literals")
	}
	kind := ast.ExprLitString
	switch {
	case sawF:
		kind = ast.ExprLitFString
	case sawBytes && !sawStr:
		kind = ast.ExprLitBytes
	}
	return p.arenas.Exprs.NewLiteral(span, kind, parts...)
}

// parseParenAtom: "()" | "(yield ...)" | "(x)" | "(x,)" | "(x for ...)".
func (p *Parser) parseParenAtom() (ast.ExprID, bool) {
	lp := p.advance()
	if p.eat(token.RParen) {
		return p.arenas.Exprs.NewTuple(p.spanFrom(lp.Span), nil, true), true
	}
	if p.at(token.KwYield) {
		y, ok := p.parseYield()
		if !ok || !p.closeParen() {
			return ast.NoExprID, false
		}
		return p.arenas.Exprs.NewWrap(ast.ExprGroup, p.spanFrom(lp.Span), y), true
	}

	first, ok := p.parseStarNamedExpr()
	if !ok {
		return ast.NoExprID, false
	}
	switch {
	case p.atComprehension():
		gens, ok := p.parseComprehensions()
		if !ok || !p.closeParen() {
			return ast.NoExprID, false
		}
		return p.arenas.Exprs.NewComp(ast.ExprGenerator, p.spanFrom(lp.Span), first, ast.NoExprID, gens), true
	case p.at(token.Comma):
		elts, ok := p.parseElements(first, token.RParen)
		if !ok || !p.closeParen() {
			return ast.NoExprID, false
		}
		return p.arenas.Exprs.NewTuple(p.spanFrom(lp.Span), elts, true), true
	}
	if !p.closeParen() {
		return ast.NoExprID, false
	}
	if p.arenas.Exprs.Get(first).Kind == ast.ExprStarred {
		p.errAt(diag.SynStarredNotAllowed, p.exprSpan(first), "cannot use starred expression here")
	}
	return p.arenas.Exprs.NewWrap(ast.ExprGroup, p.spanFrom(lp.Span), first), true
}

func (p *Parser) closeParen() bool {
	_, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')', got "+p.describe())
	return ok
}

// parseElements дочитывает список элементов после первого: ", b, *c,".
func (p *Parser) parseElements(first ast.ExprID, closer token.Kind) ([]ast.ExprID, bool) {
	elts := []ast.ExprID{first}
	for p.eat(token.Comma) {
		if p.at(closer) {
			break
		}
		e, ok := p.parseStarNamedExpr()
		if !ok {
			return nil, false
		}
		elts = append(elts, e)
	}
	return elts, true
}

func (p *Parser) parseListAtom() (ast.ExprID, bool) {
	lb := p.advance()
	if p.eat(token.RBracket) {
		return p.arenas.Exprs.NewList(p.spanFrom(lb.Span), nil), true
	}
	first, ok := p.parseStarNamedExpr()
	if !ok {
		return ast.NoExprID, false
	}
	if p.atComprehension() {
		gens, ok := p.parseComprehensions()
		if !ok || !p.closeBracket() {
			return ast.NoExprID, false
		}
		return p.arenas.Exprs.NewComp(ast.ExprListComp, p.spanFrom(lb.Span), first, ast.NoExprID, gens), true
	}
	elts, ok := p.parseElements(first, token.RBracket)
	if !ok || !p.closeBracket() {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewList(p.spanFrom(lb.Span), elts), true
}

func (p *Parser) closeBracket() bool {
	_, ok := p.expect(token.RBracket, diag.SynUnclosedBracket, "expected ']', got "+p.describe())
	return ok
}

func (p *Parser) closeBrace() bool {
	_, ok := p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}', got "+p.describe())
	return ok
}

// parseBraceAtom решает по первому элементу, что внутри фигурных скобок:
// "{}" - пустой dict, "{k: v}" и "{**m}" - dict, иначе set или set comprehension.
func (p *Parser) parseBraceAtom() (ast.ExprID, bool) {
	lb := p.advance()
	if p.eat(token.RBrace) {
		return p.arenas.Exprs.NewDict(p.spanFrom(lb.Span), nil), true
	}
	if p.at(token.DoubleStar) {
		return p.parseDictRest(lb.Span, ast.NoExprID)
	}

	first, ok := p.parseStarNamedExpr()
	if !ok {
		return ast.NoExprID, false
	}
	if p.at(token.Colon) {
		return p.parseDictRest(lb.Span, first)
	}
	if p.atComprehension() {
		gens, ok := p.parseComprehensions()
		if !ok || !p.closeBrace() {
			return ast.NoExprID, false
		}
		return p.arenas.Exprs.NewComp(ast.ExprSetComp, p.spanFrom(lb.Span), first, ast.NoExprID, gens), true
	}
	elts, ok := p.parseElements(first, token.RBrace)
	if !ok || !p.closeBrace() {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewSet(p.spanFrom(lb.Span), elts), true
}

// parseDictRest продолжает разбор dict после "{". firstKey уже разобран,
// если не равен NoExprID; иначе текущий токен "**".
func (p *Parser) parseDictRest(open source.Span, firstKey ast.ExprID) (ast.ExprID, bool) {
	entry, ok := p.parseDictEntry(firstKey)
	if !ok {
		return ast.NoExprID, false
	}
	if firstKey.IsValid() && p.atComprehension() {
		gens, ok := p.parseComprehensions()
		if !ok || !p.closeBrace() {
			return ast.NoExprID, false
		}
		return p.arenas.Exprs.NewComp(ast.ExprDictComp, p.spanFrom(open), entry.Key, entry.Value, gens), true
	}
	entries := []ast.DictEntry{entry}
	for p.eat(token.Comma) {
		if p.at(token.RBrace) {
			break
		}
		next, ok := p.parseDictEntry(ast.NoExprID)
		if !ok {
			return ast.NoExprID, false
		}
		entries = append(entries, next)
	}
	if !p.closeBrace() {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewDict(p.spanFrom(open), entries), true
}

func (p *Parser) parseDictEntry(key ast.ExprID) (ast.DictEntry, bool) {
	if !key.IsValid() {
		if p.eat(token.DoubleStar) {
			value, ok := p.parseBitOr(0)
			return ast.DictEntry{Value: value}, ok
		}
		var ok bool
		if key, ok = p.parseExpression(); !ok {
			return ast.DictEntry{}, false
		}
	}
	if _, ok := p.expect(token.Colon, diag.SynExpectColon, "expected ':' in dict entry, got "+p.describe()); !ok {
		return ast.DictEntry{}, false
	}
	value, ok := p.parseExpression()
	if !ok {
		return ast.DictEntry{}, false
	}
	return ast.DictEntry{Key: key, Value: value}, true
}
