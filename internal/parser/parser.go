package parser

import (
	"slices"

	"setlint/internal/ast"
	"setlint/internal/diag"
	"setlint/internal/lexer"
	"setlint/internal/source"
	"setlint/internal/token"
)

type Options struct {
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter
}

// Enough - проверить, достигли ли мы максимального количества ошибок
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

type Result struct {
	File   ast.FileID
	Errors uint
}

// Parser - состояние парсера на один файл
type Parser struct {
	lx       *lexer.Lexer // поток токенов
	arenas   *ast.Builder // построитель аренных узлов
	file     ast.FileID
	src      *source.File
	opts     Options
	tok      token.Token // текущий (ещё не съеденный) токен
	lastSpan source.Span // span последнего съеденного токена для лучшей диагностики

	// pending - уже разобранный атом, который вернёт следующий parseAtom.
	// Нужен там, где решение принимается после разбора головы выражения
	// (soft keyword match, скобки после with).
	pending ast.ExprID
	// inPattern: разбираем образец case, где допустимо "p as name",
	// а "if" начинает guard, а не тернарное выражение.
	inPattern bool
}

// ParseFile - входная точка для разбора одного файла.
// Лексер должен быть создан для того же source.File.
func ParseFile(src *source.File, lx *lexer.Lexer, arenas *ast.Builder, opts Options) Result {
	start := source.Span{File: src.ID}
	p := Parser{
		lx:       lx,
		arenas:   arenas,
		file:     arenas.NewFile(start),
		src:      src,
		opts:     opts,
		lastSpan: start,
	}
	p.tok = lx.Next()

	for !p.at(token.EOF) {
		for _, st := range p.parseStatement() {
			p.arenas.PushStmt(p.file, st)
		}
	}
	end := p.tok.Span.End
	p.arenas.Files.Get(p.file).Span = source.Span{File: src.ID, Start: 0, End: end}
	return Result{File: p.file, Errors: p.opts.CurrentErrors}
}

// ParseSource lexes and parses src, reporting lexer and parser errors to opts.Reporter.
func ParseSource(src *source.File, arenas *ast.Builder, opts Options) Result {
	lx := lexer.New(src, lexer.Options{Reporter: opts.Reporter})
	return ParseFile(src, lx, arenas, opts)
}

func (p *Parser) at(k token.Kind) bool {
	return p.tok.Kind == k
}

func (p *Parser) atOr(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.tok.Kind)
}

// atSoft reports whether the current token is the identifier word
// (soft keywords: match, case, type).
func (p *Parser) atSoft(word string) bool {
	return p.tok.Kind == token.Ident && p.tok.Text == word
}

// advance - съедает текущий токен и обновляет lastSpan
func (p *Parser) advance() token.Token {
	tok := p.tok
	if tok.Kind == token.EOF {
		return tok
	}
	if tok.Kind != token.Invalid && !tok.Span.Empty() {
		p.lastSpan = tok.Span
	}
	p.tok = p.lx.Next()
	return tok
}

func (p *Parser) eat(k token.Kind) bool {
	if p.at(k) {
		p.advance()
		return true
	}
	return false
}

// expect - ожидаем конкретный токен. Если нет - репортим и возвращаем false.
func (p *Parser) expect(k token.Kind, code diag.Code, msg string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	p.err(code, msg)
	return token.Token{Kind: token.Invalid, Span: p.diagSpan()}, false
}

// diagSpan - лучший span для диагностики: на Newline/EOF/Dedent указываем
// сразу за последним съеденным токеном.
func (p *Parser) diagSpan() source.Span {
	if p.atOr(token.EOF, token.Newline, token.Dedent, token.Indent) || p.tok.Span.Empty() {
		return source.Span{File: p.lastSpan.File, Start: p.lastSpan.End, End: p.lastSpan.End}
	}
	return p.tok.Span
}

// репортует ошибку и передает текущий спан
func (p *Parser) err(code diag.Code, msg string) bool {
	return p.report(code, diag.SevError, p.diagSpan(), msg)
}

func (p *Parser) errAt(code diag.Code, sp source.Span, msg string) bool {
	return p.report(code, diag.SevError, sp, msg)
}

func (p *Parser) report(code diag.Code, sev diag.Severity, sp source.Span, msg string) bool {
	if sev == diag.SevError {
		if p.opts.Enough() {
			return false // достигли максимального количества ошибок
		}
		p.opts.CurrentErrors++
	}
	if p.opts.Reporter == nil {
		return false
	}
	p.opts.Reporter.Report(code, sev, sp, msg, nil, nil)
	return true
}

// describe renders the current token for messages.
func (p *Parser) describe() string {
	switch p.tok.Kind {
	case token.EOF:
		return "end of file"
	case token.Newline:
		return "end of line"
	case token.Indent:
		return "indent"
	case token.Dedent:
		return "dedent"
	}
	return "'" + p.tok.Text + "'"
}

// resyncLine пропускает токены до конца логической строки (включительно).
func (p *Parser) resyncLine() {
	for !p.atOr(token.Newline, token.EOF) {
		p.advance()
	}
	p.eat(token.Newline)
}

// spanFrom covers start up to the last consumed token.
func (p *Parser) spanFrom(start source.Span) source.Span {
	return start.Cover(p.lastSpan)
}

func (p *Parser) exprSpan(id ast.ExprID) source.Span {
	if e := p.arenas.Exprs.Get(id); e != nil {
		return e.Span
	}
	return p.lastSpan
}

// prefixAllowed is false while a pending atom waits to be consumed: the
// current token then continues that atom instead of starting a new one.
func (p *Parser) prefixAllowed() bool {
	return !p.pending.IsValid()
}

func (p *Parser) intern(s string) source.StringID {
	return p.arenas.Strings.Intern(s)
}

// parseName ожидает Ident и интернирует его нормализованную форму.
func (p *Parser) parseName() (source.StringID, source.Span, bool) {
	if p.at(token.Ident) {
		tok := p.advance()
		return p.intern(lexer.NormalizeIdent(tok.Text)), tok.Span, true
	}
	p.err(diag.SynExpectIdentifier, "expected identifier, got "+p.describe())
	return source.NoStringID, p.diagSpan(), false
}
