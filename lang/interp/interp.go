// Package interp implements the tree-walking interpreter that executes a
// resolved Lox program. It owns the global environment, walks the
// statement tree against a chain of runtime scopes, and implements
// function calls with closures, class instantiation, method dispatch,
// inheritance via super and the non-local control flow of return and
// break.
package interp

import (
	"context"
	"fmt"
	"io"

	"github.com/tallforasmurf/plox/lang/ast"
	"github.com/tallforasmurf/plox/lang/resolver"
	"github.com/tallforasmurf/plox/lang/token"
	"github.com/tallforasmurf/plox/lang/types"
)

// Interpreter executes statements and evaluates expressions. It is not
// safe for concurrent use; a REPL reuses a single Interpreter across
// lines so that globals persist.
type Interpreter struct {
	globals *Environment
	env     *Environment
	stdout  io.Writer

	// retval carries the value of a return statement while the ctrlReturn
	// signal unwinds to the enclosing call.
	retval types.Value
}

// New creates an Interpreter that writes print output to stdout. The
// global environment is pre-populated with the clock native.
func New(stdout io.Writer) *Interpreter {
	g := NewEnvironment(nil)
	g.Define("clock", clock)
	return &Interpreter{globals: g, env: g, stdout: stdout}
}

// Stdout returns the writer that receives print output.
func (it *Interpreter) Stdout() io.Writer { return it.stdout }

// Run executes the program statements in order. The returned error, if
// non-nil, is guaranteed to be a *RuntimeError; it aborts the program but
// leaves the interpreter usable for subsequent runs (the REPL case).
func (it *Interpreter) Run(ctx context.Context, prog *ast.Program) error {
	for _, s := range prog.Stmts {
		if _, err := it.execStmt(s); err != nil {
			return err
		}
	}
	return nil
}

// Eval evaluates a single expression and returns its value, for the
// REPL's desk-calculator mode. The returned error, if non-nil, is
// guaranteed to be a *RuntimeError.
func (it *Interpreter) Eval(ctx context.Context, e ast.Expr) (types.Value, error) {
	return it.eval(e)
}

// execStmt executes a single statement and reports the unwinding signal
// in flight, if any.
func (it *Interpreter) execStmt(stmt ast.Stmt) (ctrl, error) {
	switch stmt := stmt.(type) {
	case *ast.BlockStmt:
		return it.execBlock(stmt.Stmts, NewEnvironment(it.env))

	case *ast.BreakStmt:
		return ctrlBreak, nil

	case *ast.ClassStmt:
		return ctrlNone, it.execClass(stmt)

	case *ast.ExprStmt:
		_, err := it.eval(stmt.Expr)
		return ctrlNone, err

	case *ast.FuncStmt:
		fn := &Function{decl: stmt, closure: it.env}
		it.env.Define(stmt.Name, fn)
		return ctrlNone, nil

	case *ast.IfStmt:
		cond, err := it.eval(stmt.Cond)
		if err != nil {
			return ctrlNone, err
		}
		if cond.Truth() {
			return it.execStmt(stmt.Then)
		}
		if stmt.Else != nil {
			return it.execStmt(stmt.Else)
		}
		return ctrlNone, nil

	case *ast.PrintStmt:
		v, err := it.eval(stmt.Expr)
		if err != nil {
			return ctrlNone, err
		}
		fmt.Fprintln(it.stdout, v.String())
		return ctrlNone, nil

	case *ast.ReturnStmt:
		var v types.Value = types.Nil
		if stmt.Expr != nil {
			var err error
			if v, err = it.eval(stmt.Expr); err != nil {
				return ctrlNone, err
			}
		}
		it.retval = v
		return ctrlReturn, nil

	case *ast.VarStmt:
		var v types.Value = types.Nil
		if stmt.Init != nil {
			var err error
			if v, err = it.eval(stmt.Init); err != nil {
				return ctrlNone, err
			}
		}
		it.env.Define(stmt.Name, v)
		return ctrlNone, nil

	case *ast.WhileStmt:
		for {
			cond, err := it.eval(stmt.Cond)
			if err != nil {
				return ctrlNone, err
			}
			if !cond.Truth() {
				return ctrlNone, nil
			}
			c, err := it.execStmt(stmt.Body)
			if err != nil {
				return ctrlNone, err
			}
			if c == ctrlBreak {
				return ctrlNone, nil
			}
			if c == ctrlReturn {
				return c, nil
			}
		}

	default:
		panic(fmt.Sprintf("unexpected stmt %T", stmt))
	}
}

// execBlock executes the statements in the provided environment and
// restores the enclosing environment on every exit path, normal or
// unwinding.
func (it *Interpreter) execBlock(stmts []ast.Stmt, env *Environment) (ctrl, error) {
	prev := it.env
	it.env = env
	defer func() { it.env = prev }()

	for _, s := range stmts {
		if c, err := it.execStmt(s); c != ctrlNone || err != nil {
			return c, err
		}
	}
	return ctrlNone, nil
}

// execClass executes a class declaration:
//
//  1. evaluate the superclass expression, which must be a class
//  2. define the class name as nil in the current environment
//  3. if there is a superclass, push an environment binding super to it
//  4. build the methods with that environment as closure
//  5. create the class object, popping the super environment
//  6. assign the class object back to the class name
func (it *Interpreter) execClass(stmt *ast.ClassStmt) error {
	var super *Class
	if stmt.Superclass != nil {
		sv, err := it.eval(stmt.Superclass)
		if err != nil {
			return err
		}
		cls, ok := sv.(*Class)
		if !ok {
			return errAt(stmt.Superclass.Start, "at '"+stmt.Superclass.Name+"'",
				"Superclass must be a class.")
		}
		super = cls
	}

	it.env.Define(stmt.Name, types.Nil)

	env := it.env
	if super != nil {
		env = NewEnvironment(it.env)
		env.Define("super", super)
	}

	methods := make(map[string]*Function, len(stmt.Methods))
	for _, m := range stmt.Methods {
		methods[m.Name] = &Function{decl: m, closure: env, isInit: m.Name == "init"}
	}

	cls := &Class{Name: stmt.Name, Super: super, methods: methods}
	it.env.Assign(stmt.Name, cls)
	return nil
}

func (it *Interpreter) eval(expr ast.Expr) (types.Value, error) {
	switch expr := expr.(type) {
	case *ast.AssignExpr:
		v, err := it.eval(expr.Value)
		if err != nil {
			return nil, err
		}
		if b, ok := expr.Binding.(*resolver.Binding); ok {
			it.env.AssignAt(b.Depth, expr.Name, v)
			return v, nil
		}
		if !it.globals.Assign(expr.Name, v) {
			return nil, errAt(expr.Start, "at '"+expr.Name+"'",
				"Undefined variable '%s'.", expr.Name)
		}
		return v, nil

	case *ast.BinOpExpr:
		return it.evalBinOp(expr)

	case *ast.CallExpr:
		return it.evalCall(expr)

	case *ast.DotExpr:
		obj, err := it.eval(expr.Left)
		if err != nil {
			return nil, err
		}
		inst, ok := obj.(*Instance)
		if !ok {
			return nil, errAt(expr.NamePos, "at '"+expr.Name+"'",
				"Only instances have properties")
		}
		v, ok := inst.Get(expr.Name)
		if !ok {
			return nil, errAt(expr.NamePos, "at '"+expr.Name+"'",
				"Undefined property '%s'.", expr.Name)
		}
		return v, nil

	case *ast.IdentExpr:
		return it.lookupVar(expr.Name, expr.Binding, expr.Start)

	case *ast.LiteralExpr:
		switch expr.Type {
		case token.NIL:
			return types.Nil, nil
		case token.TRUE:
			return types.True, nil
		case token.FALSE:
			return types.False, nil
		case token.NUMBER:
			return types.Float(expr.Value.(float64)), nil
		case token.STRING:
			return types.String(expr.Value.(string)), nil
		default:
			panic(fmt.Sprintf("unexpected literal type %v", expr.Type))
		}

	case *ast.LogicalExpr:
		left, err := it.eval(expr.Left)
		if err != nil {
			return nil, err
		}
		// the result is the operand's value, not a coerced boolean
		if expr.Type == token.OR {
			if left.Truth() {
				return left, nil
			}
		} else if !left.Truth() {
			return left, nil
		}
		return it.eval(expr.Right)

	case *ast.ParenExpr:
		return it.eval(expr.Expr)

	case *ast.SetExpr:
		obj, err := it.eval(expr.Left)
		if err != nil {
			return nil, err
		}
		inst, ok := obj.(*Instance)
		if !ok {
			return nil, errAt(expr.NamePos, "at '"+expr.Name+"'",
				"Only instances have fields")
		}
		v, err := it.eval(expr.Value)
		if err != nil {
			return nil, err
		}
		inst.Set(expr.Name, v)
		return v, nil

	case *ast.SuperExpr:
		return it.evalSuper(expr)

	case *ast.ThisExpr:
		return it.lookupVar("this", expr.Binding, expr.Start)

	case *ast.UnaryOpExpr:
		right, err := it.eval(expr.Right)
		if err != nil {
			return nil, err
		}
		if expr.Type == token.BANG {
			return !right.Truth(), nil
		}
		f, ok := right.(types.Float)
		if !ok {
			return nil, errAt(expr.Op, "at '-'", "Operand must be a number.")
		}
		return -f, nil

	default:
		panic(fmt.Sprintf("unexpected expr %T", expr))
	}
}

// lookupVar reads a variable: scope-exact access when the resolver fixed
// a depth, dynamic global lookup otherwise.
func (it *Interpreter) lookupVar(name string, binding any, pos token.Pos) (types.Value, error) {
	if b, ok := binding.(*resolver.Binding); ok {
		if v, ok := it.env.GetAt(b.Depth, name); ok {
			return v, nil
		}
	} else if v, ok := it.globals.Get(name); ok {
		return v, nil
	}
	return nil, errAt(pos, "at '"+name+"'", "Undefined variable '%s'.", name)
}

func (it *Interpreter) evalBinOp(expr *ast.BinOpExpr) (types.Value, error) {
	left, err := it.eval(expr.Left)
	if err != nil {
		return nil, err
	}
	right, err := it.eval(expr.Right)
	if err != nil {
		return nil, err
	}

	// equality applies to any operands and never errors
	switch expr.Type {
	case token.EQEQ:
		return types.Bool(types.Equal(left, right)), nil
	case token.BANGEQ:
		return types.Bool(!types.Equal(left, right)), nil
	}

	where := "at '" + expr.Type.String() + "'"

	if expr.Type == token.PLUS {
		// + is overloaded: numeric addition or string concatenation
		if ls, ok := left.(types.String); ok {
			if rs, ok := right.(types.String); ok {
				return ls + rs, nil
			}
		}
		lf, lok := left.(types.Float)
		rf, rok := right.(types.Float)
		if !lok || !rok {
			return nil, errAt(expr.Op, where, "Operands must be two numbers or two strings.")
		}
		return lf + rf, nil
	}

	// the remaining operators require number operands
	lf, lok := left.(types.Float)
	rf, rok := right.(types.Float)
	if !lok || !rok {
		return nil, errAt(expr.Op, where, "Operands must be numbers.")
	}

	switch expr.Type {
	case token.MINUS:
		return lf - rf, nil
	case token.STAR:
		return lf * rf, nil
	case token.SLASH:
		if rf == 0 {
			return nil, errAt(expr.Op, where, "Cannot divide by zero.")
		}
		return lf / rf, nil
	case token.GT:
		return types.Bool(lf > rf), nil
	case token.GE:
		return types.Bool(lf >= rf), nil
	case token.LT:
		return types.Bool(lf < rf), nil
	case token.LE:
		return types.Bool(lf <= rf), nil
	default:
		panic(fmt.Sprintf("unexpected binary operator %v", expr.Type))
	}
}

func (it *Interpreter) evalCall(expr *ast.CallExpr) (types.Value, error) {
	callee, err := it.eval(expr.Fn)
	if err != nil {
		return nil, err
	}

	// arguments evaluate left to right, before the callee is validated
	args := make([]types.Value, 0, len(expr.Args))
	for _, a := range expr.Args {
		v, err := it.eval(a)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
	}

	fn, ok := callee.(Callable)
	if !ok {
		return nil, errAt(expr.Rparen, "at ')'", "Only functions and classes can be called.")
	}
	if len(args) != fn.Arity() {
		return nil, errAt(expr.Rparen, "at ')'",
			"Expected %d arguments but got %d.", fn.Arity(), len(args))
	}
	return fn.Call(it, args)
}

// evalSuper dispatches a super.name access: the superclass is found at
// the resolved depth and the receiver one scope inside it, by resolver
// construction.
func (it *Interpreter) evalSuper(expr *ast.SuperExpr) (types.Value, error) {
	b, ok := expr.Binding.(*resolver.Binding)
	if !ok {
		panic("super expression without binding")
	}

	sv, _ := it.env.GetAt(b.Depth, "super")
	super := sv.(*Class)
	tv, _ := it.env.GetAt(b.Depth-1, "this")
	this := tv.(*Instance)

	m := super.FindMethod(expr.Name)
	if m == nil {
		return nil, errAt(expr.NamePos, "at '"+expr.Name+"'",
			"Undefined property '%s'.", expr.Name)
	}
	return m.Bind(this), nil
}
