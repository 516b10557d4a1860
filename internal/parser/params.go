package parser

import (
	"setlint/internal/ast"
	"setlint/internal/diag"
	"setlint/internal/source"
	"setlint/internal/token"
)

// parseParams разбирает список параметров до closer (")" для def, ":" для lambda).
// Аннотации допустимы только в def.
func (p *Parser) parseParams(closer token.Kind, annotations bool) ([]ast.Param, bool) {
	var params []ast.Param
	for !p.at(closer) {
		start := p.tok.Span
		param := ast.Param{Annotation: ast.NoExprID, Default: ast.NoExprID}
		switch p.tok.Kind {
		case token.Slash:
			p.advance()
			param.Kind = ast.ParamPosOnly
		case token.Star:
			p.advance()
			param.Kind = ast.ParamKwOnly
			if p.at(token.Ident) {
				param.Kind = ast.ParamVarArgs
				if !p.parseParamName(&param, annotations, true) {
					return nil, false
				}
			}
		case token.DoubleStar:
			p.advance()
			param.Kind = ast.ParamKwArgs
			if !p.parseParamName(&param, annotations, false) {
				return nil, false
			}
		default:
			param.Kind = ast.ParamNormal
			if !p.parseParamName(&param, annotations, false) {
				return nil, false
			}
			if p.eat(token.Assign) {
				def, ok := p.parseExpression()
				if !ok {
					return nil, false
				}
				param.Default = def
			}
		}
		param.Span = p.spanFrom(start)
		params = append(params, param)
		if !p.eat(token.Comma) {
			break
		}
	}
	if !p.at(closer) {
		p.err(diag.SynLambdaBadParams, "invalid parameter list, got "+p.describe())
		return nil, false
	}
	return params, true
}

// parseParamName читает имя и необязательную аннотацию; для *args она может
// быть распакована (*args: *Ts).
func (p *Parser) parseParamName(param *ast.Param, annotations, starredAnn bool) bool {
	var name source.StringID
	var ok bool
	if name, _, ok = p.parseName(); !ok {
		return false
	}
	param.Name = name
	if !annotations || !p.eat(token.Colon) {
		return true
	}
	var ann ast.ExprID
	if starredAnn {
		ann, ok = p.parseStarExpr()
	} else {
		ann, ok = p.parseExpression()
	}
	param.Annotation = ann
	return ok
}
