package parser

import (
	"strings"

	"setlint/internal/ast"
	"setlint/internal/diag"
	"setlint/internal/lexer"
	"setlint/internal/source"
	"setlint/internal/token"
)

// parseStatement разбирает одну логическую строку простых операторов или один
// составной оператор. Всегда продвигается хотя бы на один токен.
func (p *Parser) parseStatement() []ast.StmtID {
	switch p.tok.Kind {
	case token.Newline, token.Dedent:
		p.advance()
		return nil
	case token.Indent:
		p.err(diag.SynUnexpectedToken, "unexpected indent")
		// блок всё равно разбираем, чтобы не потерять его содержимое
		return p.parseIndented()
	case token.KwIf, token.KwWhile, token.KwFor, token.KwWith, token.KwDef,
		token.KwClass, token.KwTry, token.KwAsync, token.At:
		return p.compound(p.parseCompound)
	}
	if p.atSoft("match") {
		if stmts, handled := p.tryMatch(); handled {
			return stmts
		}
	}
	return p.parseSimpleStatements()
}

// compound выполняет разбор составного оператора. При ошибке в заголовке
// строка пропускается, а операторы вложенного блока поднимаются на текущий
// уровень, чтобы их содержимое всё равно проверялось.
func (p *Parser) compound(parse func() (ast.StmtID, bool)) []ast.StmtID {
	st, ok := parse()
	if ok {
		return []ast.StmtID{st}
	}
	p.resyncLine()
	if p.at(token.Indent) {
		return p.parseIndented()
	}
	return nil
}

func (p *Parser) parseSimpleStatements() []ast.StmtID {
	st, ok := p.parseSimpleStatement()
	return p.continueSimpleStatements(st, ok)
}

// continueSimpleStatements дочитывает "; stmt" до конца строки после уже
// разобранного первого оператора.
func (p *Parser) continueSimpleStatements(st ast.StmtID, ok bool) []ast.StmtID {
	var out []ast.StmtID
	for {
		if !ok {
			p.resyncLine()
			return out
		}
		out = append(out, st)
		if !p.eat(token.Semicolon) || p.atOr(token.Newline, token.EOF) {
			break
		}
		st, ok = p.parseSimpleStatement()
	}
	if !p.eat(token.Newline) && !p.at(token.EOF) {
		p.err(diag.SynExpectNewline, "expected end of line, got "+p.describe())
		p.resyncLine()
	}
	return out
}

// parseBlock - тело после ':'. Либо простые операторы на той же строке,
// либо NEWLINE INDENT ... DEDENT.
func (p *Parser) parseBlock() []ast.StmtID {
	if !p.at(token.Newline) {
		return p.parseSimpleStatements()
	}
	p.advance()
	if !p.at(token.Indent) {
		p.err(diag.SynUnexpectedToken, "expected an indented block")
		return nil
	}
	return p.parseIndented()
}

// parseIndented разбирает INDENT stmt* DEDENT; текущий токен - Indent.
func (p *Parser) parseIndented() []ast.StmtID {
	p.advance()
	var body []ast.StmtID
	for !p.atOr(token.Dedent, token.EOF) {
		body = append(body, p.parseStatement()...)
	}
	p.eat(token.Dedent)
	return body
}

// parseSuite ожидает ':' и тело. Без ':' строка пропускается, но следующий
// за ней блок всё равно разбирается.
func (p *Parser) parseSuite(what string) []ast.StmtID {
	if _, ok := p.expect(token.Colon, diag.SynExpectColon, "expected ':' after "+what+", got "+p.describe()); !ok {
		p.resyncLine()
		if !p.at(token.Indent) {
			return nil
		}
		return p.parseIndented()
	}
	return p.parseBlock()
}

func (p *Parser) parseSimpleStatement() (ast.StmtID, bool) {
	start := p.tok.Span
	stmts := p.arenas.Stmts
	switch p.tok.Kind {
	case token.KwPass:
		p.advance()
		return stmts.NewBare(ast.StmtPass, start), true
	case token.KwBreak:
		p.advance()
		return stmts.NewBare(ast.StmtBreak, start), true
	case token.KwContinue:
		p.advance()
		return stmts.NewBare(ast.StmtContinue, start), true
	case token.KwReturn:
		p.advance()
		if !startsExpr(p.tok.Kind) {
			return stmts.NewSimple(ast.StmtReturn, start), true
		}
		value, ok := p.parseStarExpressions()
		if !ok {
			return ast.NoStmtID, false
		}
		return stmts.NewSimple(ast.StmtReturn, p.spanFrom(start), value), true
	case token.KwRaise:
		return p.parseRaise()
	case token.KwDel:
		p.advance()
		targets, ok := p.parseTargetList()
		if !ok {
			return ast.NoStmtID, false
		}
		p.checkTarget(targets, "delete")
		return stmts.NewSimple(ast.StmtDel, p.spanFrom(start), targets), true
	case token.KwAssert:
		p.advance()
		values, ok := p.parseExprSequence(2)
		if !ok {
			return ast.NoStmtID, false
		}
		return stmts.NewSimple(ast.StmtAssert, p.spanFrom(start), values...), true
	case token.KwGlobal, token.KwNonlocal:
		return p.parseNameList()
	case token.KwImport:
		return p.parseImport()
	case token.KwFrom:
		return p.parseImportFrom()
	}
	if p.atSoft("type") && p.lx.Peek().Kind == token.Ident {
		return p.parseTypeAlias()
	}
	first, ok := p.parseYieldOrStarExpressions()
	if !ok {
		return ast.NoStmtID, false
	}
	return p.finishExprStatement(start, first)
}

// finishExprStatement решает по токену после первого выражения, что это:
// присваивание, аннотированное, составное присваивание или просто выражение.
func (p *Parser) finishExprStatement(start source.Span, first ast.ExprID) (ast.StmtID, bool) {
	stmts := p.arenas.Stmts
	switch {
	case p.at(token.Colon):
		p.advance()
		p.checkTarget(first, "annotate")
		ann, ok := p.parseExpression()
		if !ok {
			return ast.NoStmtID, false
		}
		data := ast.StmtAssignData{Targets: []ast.ExprID{first}, Annotation: ann}
		if p.eat(token.Assign) {
			if data.Value, ok = p.parseYieldOrStarExpressions(); !ok {
				return ast.NoStmtID, false
			}
		}
		return stmts.NewAssign(ast.StmtAnnAssign, p.spanFrom(start), data), true
	case p.tok.IsAugAssign():
		op := augAssignOps[p.advance().Kind]
		p.checkTarget(first, "augment")
		value, ok := p.parseYieldOrStarExpressions()
		if !ok {
			return ast.NoStmtID, false
		}
		data := ast.StmtAssignData{Targets: []ast.ExprID{first}, Op: op, Value: value}
		return stmts.NewAssign(ast.StmtAugAssign, p.spanFrom(start), data), true
	case p.at(token.Assign):
		exprs := []ast.ExprID{first}
		for p.eat(token.Assign) {
			next, ok := p.parseYieldOrStarExpressions()
			if !ok {
				return ast.NoStmtID, false
			}
			exprs = append(exprs, next)
		}
		targets := exprs[:len(exprs)-1]
		for _, t := range targets {
			p.checkTarget(t, "assign")
		}
		data := ast.StmtAssignData{Targets: targets, Value: exprs[len(exprs)-1]}
		return stmts.NewAssign(ast.StmtAssign, p.spanFrom(start), data), true
	}
	return stmts.NewSimple(ast.StmtExpr, p.spanFrom(start), first), true
}

// checkTarget репортит цели, которым нельзя присваивать. Разбор продолжается.
func (p *Parser) checkTarget(id ast.ExprID, verb string) {
	e := p.arenas.Exprs.Get(id)
	if e == nil {
		return
	}
	switch e.Kind {
	case ast.ExprName, ast.ExprAttribute, ast.ExprSubscript:
		return
	case ast.ExprTuple, ast.ExprList:
		if verb == "augment" || verb == "annotate" {
			break
		}
		var elts []ast.ExprID
		if t, ok := p.arenas.Exprs.Tuple(id); ok {
			elts = t.Elts
		} else if l, ok := p.arenas.Exprs.List(id); ok {
			elts = l.Elts
		}
		for _, elt := range elts {
			p.checkTarget(elt, verb)
		}
		return
	case ast.ExprStarred, ast.ExprGroup:
		if w, ok := p.arenas.Exprs.Wrap(id); ok && (e.Kind == ast.ExprGroup || verb == "assign" || verb == "delete") {
			p.checkTarget(w.Value, verb)
			return
		}
	}
	p.errAt(diag.SynInvalidTarget, e.Span, "cannot "+verb+" to "+strings.ToLower(e.Kind.String())+" expression")
}

// parseExprSequence - до max выражений через запятую (assert test, msg).
func (p *Parser) parseExprSequence(max int) ([]ast.ExprID, bool) {
	var out []ast.ExprID
	for {
		e, ok := p.parseExpression()
		if !ok {
			return nil, false
		}
		out = append(out, e)
		if len(out) == max || !p.eat(token.Comma) {
			return out, true
		}
	}
}

func (p *Parser) parseRaise() (ast.StmtID, bool) {
	kw := p.advance()
	if !startsExpr(p.tok.Kind) {
		return p.arenas.Stmts.NewSimple(ast.StmtRaise, kw.Span), true
	}
	exc, ok := p.parseExpression()
	if !ok {
		return ast.NoStmtID, false
	}
	values := []ast.ExprID{exc}
	if p.eat(token.KwFrom) {
		cause, ok := p.parseExpression()
		if !ok {
			return ast.NoStmtID, false
		}
		values = append(values, cause)
	}
	return p.arenas.Stmts.NewSimple(ast.StmtRaise, p.spanFrom(kw.Span), values...), true
}

func (p *Parser) parseNameList() (ast.StmtID, bool) {
	kw := p.advance()
	kind := ast.StmtGlobal
	if kw.Kind == token.KwNonlocal {
		kind = ast.StmtNonlocal
	}
	var names []ast.ExprID
	for {
		name, sp, ok := p.parseName()
		if !ok {
			return ast.NoStmtID, false
		}
		names = append(names, p.arenas.Exprs.NewName(sp, name))
		if !p.eat(token.Comma) {
			break
		}
	}
	return p.arenas.Stmts.NewSimple(kind, p.spanFrom(kw.Span), names...), true
}

// parseTypeAlias - "type X[T] = value". Параметры типа пропускаются.
func (p *Parser) parseTypeAlias() (ast.StmtID, bool) {
	kw := p.advance()
	name, sp, ok := p.parseName()
	if !ok {
		return ast.NoStmtID, false
	}
	if p.at(token.LBracket) && !p.skipBracketed() {
		return ast.NoStmtID, false
	}
	if _, ok := p.expect(token.Assign, diag.SynUnexpectedToken, "expected '=' in type alias, got "+p.describe()); !ok {
		return ast.NoStmtID, false
	}
	value, ok := p.parseExpression()
	if !ok {
		return ast.NoStmtID, false
	}
	data := ast.StmtAssignData{Targets: []ast.ExprID{p.arenas.Exprs.NewName(sp, name)}, Value: value}
	return p.arenas.Stmts.NewAssign(ast.StmtTypeAlias, p.spanFrom(kw.Span), data), true
}

// skipBracketed пропускает сбалансированную группу скобок, начиная с открывающей.
func (p *Parser) skipBracketed() bool {
	var stack []token.Kind
	for {
		switch p.tok.Kind {
		case token.LParen:
			stack = append(stack, token.RParen)
		case token.LBracket:
			stack = append(stack, token.RBracket)
		case token.LBrace:
			stack = append(stack, token.RBrace)
		case token.RParen, token.RBracket, token.RBrace:
			if len(stack) == 0 || stack[len(stack)-1] != p.tok.Kind {
				p.err(diag.SynUnexpectedToken, "unexpected "+p.describe())
				return false
			}
			stack = stack[:len(stack)-1]
		case token.Newline, token.EOF:
			p.err(diag.SynUnclosedBracket, "unclosed bracket")
			return false
		}
		p.advance()
		if len(stack) == 0 {
			return true
		}
	}
}

// parseDottedName - a.b.c, имена нормализуются по отдельности.
func (p *Parser) parseDottedName() (string, bool) {
	var parts []string
	for {
		if !p.at(token.Ident) {
			p.err(diag.SynImportBadName, "expected module name, got "+p.describe())
			return "", false
		}
		parts = append(parts, lexer.NormalizeIdent(p.advance().Text))
		if !p.eat(token.Dot) {
			return strings.Join(parts, "."), true
		}
	}
}

func (p *Parser) parseImport() (ast.StmtID, bool) {
	kw := p.advance()
	var names []ast.ImportAlias
	for {
		start := p.tok.Span
		dotted, ok := p.parseDottedName()
		if !ok {
			return ast.NoStmtID, false
		}
		alias := ast.ImportAlias{Name: p.intern(dotted), AsName: source.NoStringID}
		if p.eat(token.KwAs) {
			if alias.AsName, _, ok = p.parseName(); !ok {
				return ast.NoStmtID, false
			}
		}
		alias.Span = p.spanFrom(start)
		names = append(names, alias)
		if !p.eat(token.Comma) {
			break
		}
	}
	return p.arenas.Stmts.NewImport(ast.StmtImport, p.spanFrom(kw.Span), ast.StmtImportData{Names: names}), true
}

func (p *Parser) parseImportFrom() (ast.StmtID, bool) {
	kw := p.advance()
	data := ast.StmtImportData{Module: source.NoStringID}
	for p.atOr(token.Dot, token.Ellipsis) {
		if p.advance().Kind == token.Ellipsis {
			data.Level += 3
		} else {
			data.Level++
		}
	}
	if !p.at(token.KwImport) || data.Level == 0 {
		module, ok := p.parseDottedName()
		if !ok {
			return ast.NoStmtID, false
		}
		data.Module = p.intern(module)
	}
	if _, ok := p.expect(token.KwImport, diag.SynImportBadName, "expected 'import', got "+p.describe()); !ok {
		return ast.NoStmtID, false
	}

	if p.at(token.Star) {
		star := p.advance()
		data.Names = []ast.ImportAlias{{Name: p.intern("*"), Span: star.Span}}
		return p.arenas.Stmts.NewImport(ast.StmtImportFrom, p.spanFrom(kw.Span), data), true
	}

	paren := p.eat(token.LParen)
	for {
		start := p.tok.Span
		name, _, ok := p.parseName()
		if !ok {
			return ast.NoStmtID, false
		}
		alias := ast.ImportAlias{Name: name, AsName: source.NoStringID}
		if p.eat(token.KwAs) {
			if alias.AsName, _, ok = p.parseName(); !ok {
				return ast.NoStmtID, false
			}
		}
		alias.Span = p.spanFrom(start)
		data.Names = append(data.Names, alias)
		if !p.eat(token.Comma) {
			break
		}
		if paren && p.at(token.RParen) {
			break
		}
	}
	if paren && !p.closeParen() {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewImport(ast.StmtImportFrom, p.spanFrom(kw.Span), data), true
}
