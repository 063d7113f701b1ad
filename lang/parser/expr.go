package parser

import (
	"github.com/tallforasmurf/plox/lang/ast"
	"github.com/tallforasmurf/plox/lang/token"
)

var (
	binopPriority = [...]struct{ left, right int }{
		token.OR:   {1, 1},
		token.AND:  {2, 2},
		token.EQEQ: {3, 3}, token.BANGEQ: {3, 3},
		token.GT: {4, 4}, token.GE: {4, 4},
		token.LT: {4, 4}, token.LE: {4, 4},
		token.PLUS: {5, 5}, token.MINUS: {5, 5},
		token.STAR: {6, 6}, token.SLASH: {6, 6},
	}
	unopPriority = 7
)

func (p *parser) parseExpr() ast.Expr {
	return p.parseAssignExpr()
}

// parseAssignExpr parses an assignment, which is right-associative and has
// the lowest priority. The left-hand side is parsed as an expression, then
// converted to an assignment target if it is a valid one.
func (p *parser) parseAssignExpr() ast.Expr {
	left := p.parseSubExpr(0)
	if p.tok != token.EQ {
		return left
	}

	eqRaw := p.val.Raw
	eqPos := p.expect(token.EQ)
	value := p.parseAssignExpr()

	switch left := left.(type) {
	case *ast.IdentExpr:
		return &ast.AssignExpr{Name: left.Name, Start: left.Start, Value: value}
	case *ast.DotExpr:
		return &ast.SetExpr{Left: left.Left, Name: left.Name, NamePos: left.NamePos, Value: value}
	default:
		p.error(eqPos, "at '"+eqRaw+"'", "Invalid target for assignment")
		start, _ := left.Span()
		_, end := value.Span()
		return &ast.BadExpr{Start: start, End: end}
	}
}

// parses a SubExpr where the binary operator has a priority higher than the
// provided priority (for precedence climbing).
func (p *parser) parseSubExpr(priority int) ast.Expr {
	var left ast.Expr

	if p.tok.IsUnop() {
		typ := p.tok
		op := p.expect(p.tok)
		left = &ast.UnaryOpExpr{Type: typ, Op: op, Right: p.parseSubExpr(unopPriority)}
	} else {
		left = p.parseSuffixedExpr()
	}

	for p.tok.IsBinop() && binopPriority[p.tok].left > priority {
		typ := p.tok
		op := p.expect(p.tok)
		right := p.parseSubExpr(binopPriority[typ].right)
		if typ == token.AND || typ == token.OR {
			left = &ast.LogicalExpr{Left: left, Type: typ, Op: op, Right: right}
		} else {
			left = &ast.BinOpExpr{Left: left, Type: typ, Op: op, Right: right}
		}
	}
	return left
}

// parseSuffixedExpr parses a primary expression followed by any number of
// call and property-access suffixes, so that chains like f().g.h()(x)
// parse correctly.
func (p *parser) parseSuffixedExpr() ast.Expr {
	e := p.parsePrimaryExpr()
	for {
		switch p.tok {
		case token.LPAREN:
			e = p.parseCallExpr(e)
		case token.DOT:
			dot := p.expect(token.DOT)
			name := p.parseIdentExpr()
			e = &ast.DotExpr{Left: e, Dot: dot, Name: name.Name, NamePos: name.Start}
		default:
			return e
		}
	}
}

func (p *parser) parseCallExpr(fn ast.Expr) *ast.CallExpr {
	var expr ast.CallExpr
	expr.Fn = fn
	expr.Lparen = p.expect(token.LPAREN)

	if p.tok != token.RPAREN {
		var args []ast.Expr
		for {
			if len(args) == maxParams {
				p.error(p.val.Pos, p.where(), "Cannot have more than 255 arguments.")
			}
			args = append(args, p.parseExpr())
			if p.tok != token.COMMA {
				break
			}
			p.expect(token.COMMA)
		}
		expr.Args = args
	}
	expr.Rparen = p.expect(token.RPAREN)
	return &expr
}

func (p *parser) parsePrimaryExpr() ast.Expr {
	switch p.tok {
	case token.TRUE, token.FALSE, token.NIL:
		lit := &ast.LiteralExpr{Type: p.tok, Raw: p.val.Raw}
		lit.Start = p.expect(p.tok)
		return lit

	case token.NUMBER:
		lit := &ast.LiteralExpr{Type: p.tok, Raw: p.val.Raw, Value: p.val.Float}
		lit.Start = p.expect(token.NUMBER)
		return lit

	case token.STRING:
		lit := &ast.LiteralExpr{Type: p.tok, Raw: p.val.Raw, Value: p.val.String}
		lit.Start = p.expect(token.STRING)
		return lit

	case token.IDENT:
		return p.parseIdentExpr()

	case token.THIS:
		return &ast.ThisExpr{Start: p.expect(token.THIS)}

	case token.SUPER:
		var expr ast.SuperExpr
		expr.Super = p.expect(token.SUPER)
		p.expect(token.DOT)
		name := p.parseIdentExpr()
		expr.Name = name.Name
		expr.NamePos = name.Start
		return &expr

	case token.LPAREN:
		var expr ast.ParenExpr
		expr.Lparen = p.expect(token.LPAREN)
		expr.Expr = p.parseExpr()
		expr.Rparen = p.expect(token.RPAREN)
		return &expr

	default:
		p.errorExpected(p.val.Pos, "expression")
		panic(errPanicMode)
	}
}

func (p *parser) parseIdentExpr() *ast.IdentExpr {
	var exp ast.IdentExpr
	exp.Name = p.val.Raw
	exp.Start = p.expect(token.IDENT)
	return &exp
}
