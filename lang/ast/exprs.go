package ast

import (
	"fmt"

	"github.com/tallforasmurf/plox/lang/token"
)

// Unwrap the expression inside the parens. It unwraps multiple ParenExpr
// recursively until it reaches a non-ParenExpr.
func Unwrap(e Expr) Expr {
	if pe, ok := e.(*ParenExpr); ok {
		return Unwrap(pe.Expr)
	}
	return e
}

type (
	// AssignExpr represents an assignment to a variable, e.g. x = y + z.
	AssignExpr struct {
		Name  string
		Start token.Pos // position of the name
		Value Expr

		// Binding is filled by the resolver (*resolver.Binding, indirect to
		// avoid an import cycle). It is nil for an assignment to a global.
		Binding any
	}

	// BadExpr represents a bad expression that failed to parse.
	BadExpr struct {
		Start token.Pos
		End   token.Pos
	}

	// BinOpExpr represents a binary expression, e.g. x + y.
	BinOpExpr struct {
		Left  Expr
		Type  token.Token // binary operator token type
		Op    token.Pos
		Right Expr
	}

	// CallExpr represents a function or class call, e.g. x(y, z).
	CallExpr struct {
		Fn     Expr
		Lparen token.Pos
		Args   []Expr
		Rparen token.Pos
	}

	// DotExpr represents a property access expression, e.g. x.y.
	DotExpr struct {
		Left    Expr
		Dot     token.Pos
		Name    string
		NamePos token.Pos
	}

	// IdentExpr represents a variable reference.
	IdentExpr struct {
		Start token.Pos
		Name  string

		// Binding is filled by the resolver (*resolver.Binding, indirect to
		// avoid an import cycle). It is nil for a reference to a global.
		Binding any
	}

	// LiteralExpr represents a literal number, string, boolean or nil.
	LiteralExpr struct {
		Type  token.Token // NUMBER, STRING, TRUE, FALSE or NIL
		Start token.Pos
		Raw   string // uninterpreted text
		Value any    // = float64 | string (nil for nil/true/false)
	}

	// LogicalExpr represents a short-circuiting binary expression, e.g.
	// x or y.
	LogicalExpr struct {
		Left  Expr
		Type  token.Token // AND or OR
		Op    token.Pos
		Right Expr
	}

	// ParenExpr represents an expression wrapped in parentheses.
	ParenExpr struct {
		Lparen token.Pos
		Expr   Expr
		Rparen token.Pos
	}

	// SetExpr represents a property assignment, e.g. x.y = z.
	SetExpr struct {
		Left    Expr
		Name    string
		NamePos token.Pos
		Value   Expr
	}

	// SuperExpr represents a superclass method access, e.g. super.x.
	SuperExpr struct {
		Super   token.Pos
		Name    string
		NamePos token.Pos

		// Binding is filled by the resolver (*resolver.Binding, indirect to
		// avoid an import cycle).
		Binding any
	}

	// ThisExpr represents the receiver reference inside a method.
	ThisExpr struct {
		Start token.Pos

		// Binding is filled by the resolver (*resolver.Binding, indirect to
		// avoid an import cycle).
		Binding any
	}

	// UnaryOpExpr represents a unary operator expression, e.g. -x or !x.
	UnaryOpExpr struct {
		Type  token.Token // BANG or MINUS
		Op    token.Pos
		Right Expr
	}
)

func (n *AssignExpr) Format(f fmt.State, verb rune) {
	format(f, verb, n, "assign "+n.Name, nil)
}
func (n *AssignExpr) Span() (start, end token.Pos) {
	_, end = n.Value.Span()
	return n.Start, end
}
func (n *AssignExpr) Walk(v Visitor) {
	Walk(v, n.Value)
}
func (n *AssignExpr) expr() {}

func (n *BadExpr) Format(f fmt.State, verb rune) {
	format(f, verb, n, "!bad expr!", nil)
}
func (n *BadExpr) Span() (start, end token.Pos) {
	return n.Start, n.End
}
func (n *BadExpr) Walk(v Visitor) {}
func (n *BadExpr) expr()          {}

func (n *BinOpExpr) Format(f fmt.State, verb rune) {
	format(f, verb, n, "binary "+n.Type.GoString(), nil)
}
func (n *BinOpExpr) Span() (start, end token.Pos) {
	start, _ = n.Left.Span()
	_, end = n.Right.Span()
	return start, end
}
func (n *BinOpExpr) Walk(v Visitor) {
	Walk(v, n.Left)
	Walk(v, n.Right)
}
func (n *BinOpExpr) expr() {}

func (n *CallExpr) Format(f fmt.State, verb rune) {
	format(f, verb, n, "call", map[string]int{"args": len(n.Args)})
}
func (n *CallExpr) Span() (start, end token.Pos) {
	start, _ = n.Fn.Span()
	return start, n.Rparen + token.Pos(len(token.RPAREN.String()))
}
func (n *CallExpr) Walk(v Visitor) {
	Walk(v, n.Fn)
	for _, e := range n.Args {
		Walk(v, e)
	}
}
func (n *CallExpr) expr() {}

func (n *DotExpr) Format(f fmt.State, verb rune) {
	format(f, verb, n, "get "+n.Name, nil)
}
func (n *DotExpr) Span() (start, end token.Pos) {
	start, _ = n.Left.Span()
	return start, n.NamePos + token.Pos(len(n.Name))
}
func (n *DotExpr) Walk(v Visitor) {
	Walk(v, n.Left)
}
func (n *DotExpr) expr() {}

func (n *IdentExpr) Format(f fmt.State, verb rune) {
	format(f, verb, n, n.Name, nil)
}
func (n *IdentExpr) Span() (start, end token.Pos) {
	return n.Start, n.Start + token.Pos(len(n.Name))
}
func (n *IdentExpr) Walk(v Visitor) {}
func (n *IdentExpr) expr()          {}

func (n *LiteralExpr) Format(f fmt.State, verb rune) {
	format(f, verb, n, "literal "+n.Raw, nil)
}
func (n *LiteralExpr) Span() (start, end token.Pos) {
	return n.Start, n.Start + token.Pos(len(n.Raw))
}
func (n *LiteralExpr) Walk(v Visitor) {}
func (n *LiteralExpr) expr()          {}

func (n *LogicalExpr) Format(f fmt.State, verb rune) {
	format(f, verb, n, "logical "+n.Type.String(), nil)
}
func (n *LogicalExpr) Span() (start, end token.Pos) {
	start, _ = n.Left.Span()
	_, end = n.Right.Span()
	return start, end
}
func (n *LogicalExpr) Walk(v Visitor) {
	Walk(v, n.Left)
	Walk(v, n.Right)
}
func (n *LogicalExpr) expr() {}

func (n *ParenExpr) Format(f fmt.State, verb rune) {
	format(f, verb, n, "(expr)", nil)
}
func (n *ParenExpr) Span() (start, end token.Pos) {
	return n.Lparen, n.Rparen + token.Pos(len(token.RPAREN.String()))
}
func (n *ParenExpr) Walk(v Visitor) {
	Walk(v, n.Expr)
}
func (n *ParenExpr) expr() {}

func (n *SetExpr) Format(f fmt.State, verb rune) {
	format(f, verb, n, "set "+n.Name, nil)
}
func (n *SetExpr) Span() (start, end token.Pos) {
	start, _ = n.Left.Span()
	_, end = n.Value.Span()
	return start, end
}
func (n *SetExpr) Walk(v Visitor) {
	Walk(v, n.Left)
	Walk(v, n.Value)
}
func (n *SetExpr) expr() {}

func (n *SuperExpr) Format(f fmt.State, verb rune) {
	format(f, verb, n, "super "+n.Name, nil)
}
func (n *SuperExpr) Span() (start, end token.Pos) {
	return n.Super, n.NamePos + token.Pos(len(n.Name))
}
func (n *SuperExpr) Walk(v Visitor) {}
func (n *SuperExpr) expr()          {}

func (n *ThisExpr) Format(f fmt.State, verb rune) {
	format(f, verb, n, "this", nil)
}
func (n *ThisExpr) Span() (start, end token.Pos) {
	return n.Start, n.Start + token.Pos(len(token.THIS.String()))
}
func (n *ThisExpr) Walk(v Visitor) {}
func (n *ThisExpr) expr()          {}

func (n *UnaryOpExpr) Format(f fmt.State, verb rune) {
	format(f, verb, n, "unary "+n.Type.GoString(), nil)
}
func (n *UnaryOpExpr) Span() (start, end token.Pos) {
	_, end = n.Right.Span()
	return n.Op, end
}
func (n *UnaryOpExpr) Walk(v Visitor) {
	Walk(v, n.Right)
}
func (n *UnaryOpExpr) expr() {}
