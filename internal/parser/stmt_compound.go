package parser

import (
	"setlint/internal/ast"
	"setlint/internal/diag"
	"setlint/internal/source"
	"setlint/internal/token"
)

func (p *Parser) parseCompound() (ast.StmtID, bool) {
	start := p.tok.Span
	switch p.tok.Kind {
	case token.KwIf:
		return p.parseIf(ast.StmtIf)
	case token.KwWhile:
		return p.parseIf(ast.StmtWhile)
	case token.KwFor:
		return p.parseFor(start, false)
	case token.KwWith:
		return p.parseWith(start, false)
	case token.KwDef:
		return p.parseFuncDef(start, nil, false)
	case token.KwClass:
		return p.parseClassDef(start, nil)
	case token.KwTry:
		return p.parseTry()
	case token.KwAsync:
		p.advance()
		return p.parseAsync(start, nil)
	case token.At:
		return p.parseDecorated()
	}
	p.err(diag.SynUnexpectedToken, "unexpected "+p.describe())
	return ast.NoStmtID, false
}

func (p *Parser) parseAsync(start source.Span, decorators []ast.ExprID) (ast.StmtID, bool) {
	switch {
	case p.at(token.KwDef):
		return p.parseFuncDef(start, decorators, true)
	case decorators != nil:
	case p.at(token.KwFor):
		return p.parseFor(start, true)
	case p.at(token.KwWith):
		return p.parseWith(start, true)
	}
	p.err(diag.SynUnexpectedToken, "expected 'def', 'for' or 'with' after 'async', got "+p.describe())
	return ast.NoStmtID, false
}

// parseIf разбирает if/elif/else и while/else. elif становится вложенным If в OrElse.
func (p *Parser) parseIf(kind ast.StmtKind) (ast.StmtID, bool) {
	kw := p.advance()
	test, ok := p.parseNamedExpr()
	if !ok {
		return ast.NoStmtID, false
	}
	data := ast.StmtIfData{Test: test, Body: p.parseSuite("condition")}
	switch {
	case kind == ast.StmtIf && p.at(token.KwElif):
		if nested, ok := p.parseIf(ast.StmtIf); ok {
			data.OrElse = []ast.StmtID{nested}
		} else {
			p.resyncLine()
			if p.at(token.Indent) {
				p.parseIndented()
			}
		}
	case p.at(token.KwElse):
		p.advance()
		data.OrElse = p.parseSuite("'else'")
	}
	return p.arenas.Stmts.NewIf(kind, p.spanFrom(kw.Span), data), true
}

func (p *Parser) parseFor(start source.Span, isAsync bool) (ast.StmtID, bool) {
	p.advance() // for
	target, ok := p.parseTargetList()
	if !ok {
		return ast.NoStmtID, false
	}
	p.checkTarget(target, "assign")
	if _, ok := p.expect(token.KwIn, diag.SynForMissingIn, "expected 'in' after for target, got "+p.describe()); !ok {
		return ast.NoStmtID, false
	}
	iter, ok := p.parseStarExpressions()
	if !ok {
		return ast.NoStmtID, false
	}
	data := ast.StmtForData{Target: target, Iter: iter, IsAsync: isAsync}
	data.Body = p.parseSuite("for clause")
	if p.eat(token.KwElse) {
		data.OrElse = p.parseSuite("'else'")
	}
	return p.arenas.Stmts.NewFor(p.spanFrom(start), data), true
}

func (p *Parser) parseWith(start source.Span, isAsync bool) (ast.StmtID, bool) {
	p.advance() // with
	var items []ast.WithItem
	var ok bool
	if p.at(token.LParen) {
		items, ok = p.parseParenWithItems()
	} else {
		items, ok = p.parseWithItems()
	}
	if !ok {
		return ast.NoStmtID, false
	}
	data := ast.StmtWithData{Items: items, IsAsync: isAsync}
	data.Body = p.parseSuite("with items")
	return p.arenas.Stmts.NewWith(p.spanFrom(start), data), true
}

func (p *Parser) parseWithItems() ([]ast.WithItem, bool) {
	var items []ast.WithItem
	for {
		item, ok := p.parseWithItem()
		if !ok {
			return nil, false
		}
		items = append(items, item)
		if !p.eat(token.Comma) {
			return items, true
		}
	}
}

func (p *Parser) parseWithItem() (ast.WithItem, bool) {
	ctx, ok := p.parseExpression()
	if !ok {
		return ast.WithItem{}, false
	}
	item := ast.WithItem{Context: ctx}
	if p.eat(token.KwAs) {
		if item.Vars, ok = p.parseTarget(); !ok {
			return ast.WithItem{}, false
		}
		p.checkTarget(item.Vars, "assign")
	}
	return item, true
}

// parseParenWithItems: "with (a as b, c):". Если после ")" нет ':', скобки
// были частью первого выражения ("with (a, b) as c:", "with (a).b:") -
// тогда они превращаются в атом и разбор идёт обычным путём.
func (p *Parser) parseParenWithItems() ([]ast.WithItem, bool) {
	lp := p.advance()
	var items []ast.WithItem
	sawAs, trailingComma := false, false
	for !p.at(token.RParen) {
		ctx, ok := p.parseStarNamedExpr()
		if !ok {
			return nil, false
		}
		item := ast.WithItem{Context: ctx}
		if p.eat(token.KwAs) {
			sawAs = true
			if item.Vars, ok = p.parseTarget(); !ok {
				return nil, false
			}
		}
		items = append(items, item)
		trailingComma = p.eat(token.Comma)
		if !trailingComma {
			break
		}
	}
	if !p.closeParen() {
		return nil, false
	}
	if p.at(token.Colon) || sawAs {
		return items, true
	}

	elts := make([]ast.ExprID, len(items))
	for i, it := range items {
		elts[i] = it.Context
	}
	span := p.spanFrom(lp.Span)
	if len(elts) == 1 && !trailingComma {
		p.pending = p.arenas.Exprs.NewWrap(ast.ExprGroup, span, elts[0])
	} else {
		p.pending = p.arenas.Exprs.NewTuple(span, elts, true)
	}
	return p.parseWithItems()
}

func (p *Parser) parseDecorated() (ast.StmtID, bool) {
	start := p.tok.Span
	var decorators []ast.ExprID
	for p.eat(token.At) {
		dec, ok := p.parseNamedExpr()
		if !ok {
			return ast.NoStmtID, false
		}
		decorators = append(decorators, dec)
		if _, ok := p.expect(token.Newline, diag.SynExpectNewline, "expected end of line after decorator, got "+p.describe()); !ok {
			return ast.NoStmtID, false
		}
	}
	switch p.tok.Kind {
	case token.KwDef:
		return p.parseFuncDef(start, decorators, false)
	case token.KwClass:
		return p.parseClassDef(start, decorators)
	case token.KwAsync:
		p.advance()
		return p.parseAsync(start, decorators)
	}
	p.err(diag.SynUnexpectedToken, "expected function or class definition after decorator, got "+p.describe())
	return ast.NoStmtID, false
}

func (p *Parser) parseFuncDef(start source.Span, decorators []ast.ExprID, isAsync bool) (ast.StmtID, bool) {
	p.advance() // def
	name, _, ok := p.parseName()
	if !ok {
		return ast.NoStmtID, false
	}
	if p.at(token.LBracket) && !p.skipBracketed() {
		return ast.NoStmtID, false
	}
	if _, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' after function name, got "+p.describe()); !ok {
		return ast.NoStmtID, false
	}
	params, ok := p.parseParams(token.RParen, true)
	if !ok || !p.closeParen() {
		return ast.NoStmtID, false
	}
	data := ast.StmtFuncData{Name: name, Params: params, Decorators: decorators, IsAsync: isAsync}
	if p.eat(token.Arrow) {
		if data.Returns, ok = p.parseExpression(); !ok {
			return ast.NoStmtID, false
		}
	}
	data.Body = p.parseSuite("function signature")
	return p.arenas.Stmts.NewFunc(p.spanFrom(start), data), true
}

func (p *Parser) parseClassDef(start source.Span, decorators []ast.ExprID) (ast.StmtID, bool) {
	p.advance() // class
	name, _, ok := p.parseName()
	if !ok {
		return ast.NoStmtID, false
	}
	if p.at(token.LBracket) && !p.skipBracketed() {
		return ast.NoStmtID, false
	}
	data := ast.StmtClassData{Name: name, Decorators: decorators}
	if p.at(token.LParen) {
		if data.Args, ok = p.parseCallArgs(); !ok {
			return ast.NoStmtID, false
		}
	}
	data.Body = p.parseSuite("class definition")
	return p.arenas.Stmts.NewClass(p.spanFrom(start), data), true
}

func (p *Parser) parseTry() (ast.StmtID, bool) {
	kw := p.advance()
	data := ast.StmtTryData{Body: p.parseSuite("'try'")}
	handlers := false
	for p.at(token.KwExcept) {
		handlers = true
		h, ok := p.parseExceptHandler()
		if !ok {
			p.resyncLine()
			if p.at(token.Indent) {
				p.parseIndented()
			}
			continue
		}
		data.Handlers = append(data.Handlers, h)
	}
	if p.eat(token.KwElse) {
		data.OrElse = p.parseSuite("'else'")
	}
	if p.eat(token.KwFinally) {
		handlers = true
		data.Finally = p.parseSuite("'finally'")
	}
	if !handlers {
		p.err(diag.SynUnexpectedToken, "expected 'except' or 'finally' block")
	}
	return p.arenas.Stmts.NewTry(p.spanFrom(kw.Span), data), true
}

func (p *Parser) parseExceptHandler() (ast.ExceptHandler, bool) {
	kw := p.advance()
	h := ast.ExceptHandler{Star: p.eat(token.Star), Name: source.NoStringID}
	if !p.at(token.Colon) {
		typ, ok := p.parseExprList(p.parseExpression)
		if !ok {
			return h, false
		}
		h.Type = typ
		if p.eat(token.KwAs) {
			if h.Name, _, ok = p.parseName(); !ok {
				return h, false
			}
		}
	}
	h.Body = p.parseSuite("'except'")
	h.Span = p.spanFrom(kw.Span)
	return h, true
}
