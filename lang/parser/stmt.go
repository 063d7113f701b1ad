package parser

import (
	"github.com/tallforasmurf/plox/lang/ast"
	"github.com/tallforasmurf/plox/lang/token"
)

// maxParams bounds the number of parameters and arguments of a function.
const maxParams = 255

func (p *parser) parseProgram() *ast.Program {
	var prog ast.Program

	var list []ast.Stmt
	for p.tok != token.EOF {
		if stmt := p.parseDecl(); stmt != nil {
			list = append(list, stmt)
		}
	}
	prog.Stmts = list
	prog.EOF = p.val.Pos
	return &prog
}

// parseDecl parses a declaration or statement. On a parse error it
// synchronizes to the next safe point and generates a BadStmt for the
// interval.
func (p *parser) parseDecl() (stmt ast.Stmt) {
	start := p.val.Pos

	defer func() {
		if err := recover(); err != nil {
			if err == errPanicMode {
				stmt = &ast.BadStmt{
					Start: start,
					End:   p.syncAfterError(),
				}
				return
			}
			panic(err)
		}
	}()

	switch p.tok {
	case token.SEMICOLON:
		// ignore empty statements
		p.advance()
		return nil
	case token.CLASS:
		return p.parseClassStmt()
	case token.FUN:
		funPos := p.expect(token.FUN)
		return p.parseFunction(funPos)
	case token.VAR:
		return p.parseVarStmt()
	default:
		return p.parseStmt()
	}
}

func (p *parser) parseStmt() ast.Stmt {
	switch p.tok {
	case token.FOR:
		return p.parseForStmt()
	case token.IF:
		return p.parseIfStmt()
	case token.PRINT:
		return p.parsePrintStmt()
	case token.RETURN:
		return p.parseReturnStmt()
	case token.WHILE:
		return p.parseWhileStmt()
	case token.BREAK:
		return p.parseBreakStmt()
	case token.LBRACE:
		return p.parseBlockStmt()
	default:
		return p.parseExprStmt()
	}
}

func (p *parser) parseVarStmt() *ast.VarStmt {
	var stmt ast.VarStmt
	stmt.Var = p.expect(token.VAR)

	name := p.parseIdentExpr()
	stmt.Name = name.Name
	stmt.NamePos = name.Start

	if p.tok == token.EQ {
		p.expect(token.EQ)
		stmt.Init = p.parseExpr()
	}
	p.expect(token.SEMICOLON)
	return &stmt
}

func (p *parser) parseBlockStmt() *ast.BlockStmt {
	var stmt ast.BlockStmt
	stmt.Lbrace = p.expect(token.LBRACE)

	var list []ast.Stmt
	for !tokenIn(p.tok, token.RBRACE, token.EOF) {
		if s := p.parseDecl(); s != nil {
			list = append(list, s)
		}
	}
	stmt.Stmts = list
	stmt.Rbrace = p.expect(token.RBRACE)
	return &stmt
}

func (p *parser) parseIfStmt() *ast.IfStmt {
	var stmt ast.IfStmt
	stmt.If = p.expect(token.IF)
	p.expect(token.LPAREN)
	stmt.Cond = p.parseExpr()
	p.expect(token.RPAREN)
	stmt.Then = p.parseStmt()
	if p.tok == token.ELSE {
		p.expect(token.ELSE)
		stmt.Else = p.parseStmt()
	}
	return &stmt
}

func (p *parser) parsePrintStmt() *ast.PrintStmt {
	var stmt ast.PrintStmt
	stmt.Print = p.expect(token.PRINT)
	stmt.Expr = p.parseExpr()
	p.expect(token.SEMICOLON)
	return &stmt
}

func (p *parser) parseReturnStmt() *ast.ReturnStmt {
	var stmt ast.ReturnStmt
	stmt.Return = p.expect(token.RETURN)
	if p.tok != token.SEMICOLON {
		stmt.Expr = p.parseExpr()
	}
	p.expect(token.SEMICOLON)
	return &stmt
}

func (p *parser) parseWhileStmt() *ast.WhileStmt {
	var stmt ast.WhileStmt
	stmt.While = p.expect(token.WHILE)
	p.expect(token.LPAREN)
	stmt.Cond = p.parseExpr()
	p.expect(token.RPAREN)

	p.loopDepth++
	stmt.Body = p.parseStmt()
	p.loopDepth--
	return &stmt
}

func (p *parser) parseBreakStmt() *ast.BreakStmt {
	var stmt ast.BreakStmt
	raw := p.val.Raw
	stmt.Break = p.expect(token.BREAK)
	if p.loopDepth == 0 {
		p.error(stmt.Break, "at '"+raw+"'", "Break statement only allowed within a loop.")
	}
	p.expect(token.SEMICOLON)
	return &stmt
}

// parseForStmt parses a for statement and desugars it into a while wrapped
// as needed:
//
//	{ init; while (cond) { body; increment; } }
//
// A missing condition becomes a literal true, a missing init or increment
// simply omits that piece.
func (p *parser) parseForStmt() ast.Stmt {
	forPos := p.expect(token.FOR)
	p.expect(token.LPAREN)

	var init ast.Stmt
	switch p.tok {
	case token.SEMICOLON:
		p.expect(token.SEMICOLON)
	case token.VAR:
		init = p.parseVarStmt()
	default:
		init = p.parseExprStmt()
	}

	var cond ast.Expr
	if p.tok != token.SEMICOLON {
		cond = p.parseExpr()
	}
	p.expect(token.SEMICOLON)

	var post ast.Expr
	if p.tok != token.RPAREN {
		post = p.parseExpr()
	}
	p.expect(token.RPAREN)

	p.loopDepth++
	body := p.parseStmt()
	p.loopDepth--

	_, bodyEnd := body.Span()
	if post != nil {
		body = &ast.BlockStmt{
			Lbrace: forPos,
			Stmts:  []ast.Stmt{body, &ast.ExprStmt{Expr: post}},
			Rbrace: bodyEnd,
		}
	}
	if cond == nil {
		cond = &ast.LiteralExpr{Type: token.TRUE, Start: forPos, Raw: "true"}
	}

	var loop ast.Stmt = &ast.WhileStmt{While: forPos, Cond: cond, Body: body}
	if init != nil {
		loop = &ast.BlockStmt{
			Lbrace: forPos,
			Stmts:  []ast.Stmt{init, loop},
			Rbrace: bodyEnd,
		}
	}
	return loop
}

func (p *parser) parseExprStmt() *ast.ExprStmt {
	var stmt ast.ExprStmt
	stmt.Expr = p.parseExpr()
	p.expect(token.SEMICOLON)
	return &stmt
}

// parseFunction parses a function declaration after the fun keyword has
// been consumed, or a method declaration (funPos is then the zero Pos).
func (p *parser) parseFunction(funPos token.Pos) *ast.FuncStmt {
	var stmt ast.FuncStmt
	stmt.Fun = funPos

	name := p.parseIdentExpr()
	stmt.Name = name.Name
	stmt.NamePos = name.Start

	p.expect(token.LPAREN)
	if p.tok != token.RPAREN {
		var params []*ast.IdentExpr
		for {
			if len(params) == maxParams {
				p.error(p.val.Pos, p.where(), "Cannot have more than 255 parameters.")
			}
			params = append(params, p.parseIdentExpr())
			if p.tok != token.COMMA {
				break
			}
			p.expect(token.COMMA)
		}
		stmt.Params = params
	}
	p.expect(token.RPAREN)

	stmt.Lbrace = p.expect(token.LBRACE)

	// the body is not a loop body even if the declaration is inside a loop
	outerLoopDepth := p.loopDepth
	p.loopDepth = 0

	var body []ast.Stmt
	for !tokenIn(p.tok, token.RBRACE, token.EOF) {
		if s := p.parseDecl(); s != nil {
			body = append(body, s)
		}
	}
	stmt.Body = body
	p.loopDepth = outerLoopDepth

	stmt.Rbrace = p.expect(token.RBRACE)
	return &stmt
}

func (p *parser) parseClassStmt() *ast.ClassStmt {
	var stmt ast.ClassStmt
	stmt.Class = p.expect(token.CLASS)

	name := p.parseIdentExpr()
	stmt.Name = name.Name
	stmt.NamePos = name.Start

	if p.tok == token.LT {
		p.expect(token.LT)
		stmt.Superclass = p.parseIdentExpr()
	}

	p.expect(token.LBRACE)
	var methods []*ast.FuncStmt
	for !tokenIn(p.tok, token.RBRACE, token.EOF) {
		methods = append(methods, p.parseFunction(token.NoPos))
	}
	stmt.Methods = methods
	stmt.Rbrace = p.expect(token.RBRACE)
	return &stmt
}
