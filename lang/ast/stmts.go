package ast

import (
	"fmt"

	"github.com/tallforasmurf/plox/lang/token"
)

type (
	// BadStmt represents a bad statement that failed to parse.
	BadStmt struct {
		Start token.Pos
		End   token.Pos
	}

	// BlockStmt represents a braced block of statements, which establishes
	// a scope.
	BlockStmt struct {
		Lbrace token.Pos
		Stmts  []Stmt
		Rbrace token.Pos
	}

	// BreakStmt represents a break statement, which transfers control past
	// the end of the innermost enclosing loop.
	BreakStmt struct {
		Break token.Pos
	}

	// ClassStmt represents a class declaration statement.
	ClassStmt struct {
		Class      token.Pos
		Name       string
		NamePos    token.Pos
		Superclass *IdentExpr // nil if no superclass clause
		Methods    []*FuncStmt
		Rbrace     token.Pos
	}

	// ExprStmt represents an expression used as a statement, evaluated for
	// its side effects.
	ExprStmt struct {
		Expr Expr
	}

	// FuncStmt represents a function declaration statement or a method
	// declaration inside a class. The body statements execute directly in
	// the call scope that binds the parameters, there is no separate block
	// scope for the body.
	FuncStmt struct {
		Fun     token.Pos // zero for methods, there is no 'fun' keyword
		Name    string
		NamePos token.Pos
		Params  []*IdentExpr
		Lbrace  token.Pos
		Body    []Stmt
		Rbrace  token.Pos
	}

	// IfStmt represents an if statement with an optional else branch.
	IfStmt struct {
		If   token.Pos
		Cond Expr
		Then Stmt
		Else Stmt // may be nil
	}

	// PrintStmt represents a print statement.
	PrintStmt struct {
		Print token.Pos
		Expr  Expr
	}

	// ReturnStmt represents a return statement with an optional value.
	ReturnStmt struct {
		Return token.Pos
		Expr   Expr // may be nil
	}

	// VarStmt represents a variable declaration with an optional
	// initializer.
	VarStmt struct {
		Var     token.Pos
		Name    string
		NamePos token.Pos
		Init    Expr // may be nil
	}

	// WhileStmt represents a while loop. The for statement is desugared by
	// the parser into a while (wrapped in a block when the for has an
	// initializer), so the AST has no for node.
	WhileStmt struct {
		While token.Pos
		Cond  Expr
		Body  Stmt
	}
)

func (n *BadStmt) Format(f fmt.State, verb rune) {
	format(f, verb, n, "!bad stmt!", nil)
}
func (n *BadStmt) Span() (start, end token.Pos) {
	return n.Start, n.End
}
func (n *BadStmt) Walk(v Visitor) {}
func (n *BadStmt) stmt()          {}

func (n *BlockStmt) Format(f fmt.State, verb rune) {
	format(f, verb, n, "block", map[string]int{"stmts": len(n.Stmts)})
}
func (n *BlockStmt) Span() (start, end token.Pos) {
	return n.Lbrace, n.Rbrace + token.Pos(len(token.RBRACE.String()))
}
func (n *BlockStmt) Walk(v Visitor) {
	for _, s := range n.Stmts {
		Walk(v, s)
	}
}
func (n *BlockStmt) stmt() {}

func (n *BreakStmt) Format(f fmt.State, verb rune) {
	format(f, verb, n, "break", nil)
}
func (n *BreakStmt) Span() (start, end token.Pos) {
	return n.Break, n.Break + token.Pos(len(token.BREAK.String()))
}
func (n *BreakStmt) Walk(v Visitor) {}
func (n *BreakStmt) stmt()          {}

func (n *ClassStmt) Format(f fmt.State, verb rune) {
	var inherits int
	if n.Superclass != nil {
		inherits = 1
	}
	format(f, verb, n, "class decl "+n.Name, map[string]int{
		"inherits": inherits,
		"methods":  len(n.Methods),
	})
}
func (n *ClassStmt) Span() (start, end token.Pos) {
	return n.Class, n.Rbrace + token.Pos(len(token.RBRACE.String()))
}
func (n *ClassStmt) Walk(v Visitor) {
	if n.Superclass != nil {
		Walk(v, n.Superclass)
	}
	for _, m := range n.Methods {
		Walk(v, m)
	}
}
func (n *ClassStmt) stmt() {}

func (n *ExprStmt) Format(f fmt.State, verb rune) { format(f, verb, n, "expr stmt", nil) }
func (n *ExprStmt) Span() (start, end token.Pos)  { return n.Expr.Span() }
func (n *ExprStmt) Walk(v Visitor)                { Walk(v, n.Expr) }
func (n *ExprStmt) stmt()                         {}

func (n *FuncStmt) Format(f fmt.State, verb rune) {
	format(f, verb, n, "fun decl "+n.Name, map[string]int{"params": len(n.Params)})
}
func (n *FuncStmt) Span() (start, end token.Pos) {
	start = n.Fun
	if !start.IsValid() {
		start = n.NamePos
	}
	return start, n.Rbrace + token.Pos(len(token.RBRACE.String()))
}
func (n *FuncStmt) Walk(v Visitor) {
	for _, p := range n.Params {
		Walk(v, p)
	}
	for _, s := range n.Body {
		Walk(v, s)
	}
}
func (n *FuncStmt) stmt() {}

func (n *IfStmt) Format(f fmt.State, verb rune) {
	lbl := "if"
	if n.Else != nil {
		lbl += " else"
	}
	format(f, verb, n, lbl, nil)
}
func (n *IfStmt) Span() (start, end token.Pos) {
	_, end = n.Then.Span()
	if n.Else != nil {
		_, end = n.Else.Span()
	}
	return n.If, end
}
func (n *IfStmt) Walk(v Visitor) {
	Walk(v, n.Cond)
	Walk(v, n.Then)
	if n.Else != nil {
		Walk(v, n.Else)
	}
}
func (n *IfStmt) stmt() {}

func (n *PrintStmt) Format(f fmt.State, verb rune) {
	format(f, verb, n, "print", nil)
}
func (n *PrintStmt) Span() (start, end token.Pos) {
	_, end = n.Expr.Span()
	return n.Print, end
}
func (n *PrintStmt) Walk(v Visitor) {
	Walk(v, n.Expr)
}
func (n *PrintStmt) stmt() {}

func (n *ReturnStmt) Format(f fmt.State, verb rune) {
	var exprCount int
	if n.Expr != nil {
		exprCount = 1
	}
	format(f, verb, n, "return", map[string]int{"expr": exprCount})
}
func (n *ReturnStmt) Span() (start, end token.Pos) {
	end = n.Return + token.Pos(len(token.RETURN.String()))
	if n.Expr != nil {
		_, end = n.Expr.Span()
	}
	return n.Return, end
}
func (n *ReturnStmt) Walk(v Visitor) {
	if n.Expr != nil {
		Walk(v, n.Expr)
	}
}
func (n *ReturnStmt) stmt() {}

func (n *VarStmt) Format(f fmt.State, verb rune) {
	format(f, verb, n, "var decl "+n.Name, nil)
}
func (n *VarStmt) Span() (start, end token.Pos) {
	end = n.NamePos + token.Pos(len(n.Name))
	if n.Init != nil {
		_, end = n.Init.Span()
	}
	return n.Var, end
}
func (n *VarStmt) Walk(v Visitor) {
	if n.Init != nil {
		Walk(v, n.Init)
	}
}
func (n *VarStmt) stmt() {}

func (n *WhileStmt) Format(f fmt.State, verb rune) {
	format(f, verb, n, "while", nil)
}
func (n *WhileStmt) Span() (start, end token.Pos) {
	_, end = n.Body.Span()
	return n.While, end
}
func (n *WhileStmt) Walk(v Visitor) {
	Walk(v, n.Cond)
	Walk(v, n.Body)
}
func (n *WhileStmt) stmt() {}
