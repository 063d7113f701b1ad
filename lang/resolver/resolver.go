// Package resolver implements the static resolution pre-pass that runs
// between the parser and the interpreter. It computes, for every variable
// reference, the exact number of lexical scopes to walk at runtime, and
// diagnoses the semantic errors that the parser cannot see: a local read
// in its own initializer, a redeclaration in the same scope, this outside
// a class, super outside a subclass, return outside a function and a
// valued return inside an initializer.
//
// The global scope is not represented on the resolver's scope stack,
// global names are resolved dynamically by the interpreter.
package resolver

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/exp/maps"

	"github.com/tallforasmurf/plox/lang/ast"
	"github.com/tallforasmurf/plox/lang/scanner"
	"github.com/tallforasmurf/plox/lang/token"
)

// Mode is a set of bit flags that configures the resolving. By default (0),
// the references are resolved and all errors are reported except unused
// local names, which are only reported with ReportUnused.
type Mode uint

// List of supported resolver modes, which can be combined with bitwise or.
const (
	ReportUnused Mode = 1 << iota // report local names that are never referenced in their scope.
)

// ResolveProgram takes a program from a successful parse result and
// resolves the variable references used in the source code. On success,
// the AST is enriched with binding information and is ready to be
// executed.
//
// An AST that resulted in errors in the parse phase should never be passed
// to the resolver, the behavior is undefined.
//
// The returned error, if non-nil, is guaranteed to be a scanner.ErrorList.
func ResolveProgram(ctx context.Context, prog *ast.Program, mode Mode) error {
	var r resolver
	r.filename = prog.Name
	r.mode = mode

	for _, s := range prog.Stmts {
		r.stmt(s)
	}
	r.errors.Sort()
	return r.errors.Err()
}

type scope map[string]*nameInfo

type resolver struct {
	filename string
	mode     Mode
	errors   scanner.ErrorList

	// scopes is the stack of local scopes, innermost last. The global scope
	// is not on the stack.
	scopes []scope

	curFn    funcKind
	curClass classKind
}

func (r *resolver) error(pos token.Pos, where, msg string) {
	r.errors.Add(pos.ToPosition(r.filename, -1), where+": "+msg)
}

func (r *resolver) errorf(pos token.Pos, where, format string, args ...interface{}) {
	r.error(pos, where, fmt.Sprintf(format, args...))
}

func (r *resolver) beginScope() {
	r.scopes = append(r.scopes, make(scope))
}

// endScope pops the innermost scope and, if the ReportUnused mode is set,
// reports the names that were never referenced in it.
func (r *resolver) endScope() {
	dying := r.scopes[len(r.scopes)-1]
	r.scopes = r.scopes[:len(r.scopes)-1]

	if r.mode&ReportUnused == 0 {
		return
	}
	names := maps.Keys(dying)
	sort.Strings(names)
	for _, name := range names {
		if info := dying[name]; info.state != used {
			pos := token.MakePos(info.line, 1)
			r.errorf(pos, "at '"+name+"'", "Variable %s never referenced in its scope", name)
		}
	}
}

// declare adds name to the innermost scope (if any) in the declared state,
// where it is not yet legal to reference it. A second declaration of the
// same name in the same scope is an error.
func (r *resolver) declare(name string, pos token.Pos) {
	if len(r.scopes) == 0 {
		return
	}
	sc := r.scopes[len(r.scopes)-1]
	if _, ok := sc[name]; ok {
		r.error(pos, "at '"+name+"'", "Variable with this name already declared in this scope.")
		return
	}
	line, _ := pos.LineCol()
	sc[name] = &nameInfo{state: declared, line: line}
}

// define marks name as legal to reference in the innermost scope (if any).
func (r *resolver) define(name string) {
	if len(r.scopes) == 0 {
		return
	}
	if info, ok := r.scopes[len(r.scopes)-1][name]; ok {
		if info.state < defined {
			info.state = defined
		}
		return
	}
	r.scopes[len(r.scopes)-1][name] = &nameInfo{state: defined}
}

// defineImplicit defines name in the innermost scope and marks it used, for
// the synthetic this and super names which are never subject to the
// unused-name report.
func (r *resolver) defineImplicit(name string) {
	r.scopes[len(r.scopes)-1][name] = &nameInfo{state: used}
}

// resolveLocal walks the scopes from innermost outward looking for name.
// On the first match it marks the name used and returns its binding with
// the scope distance (0 = innermost). It returns nil if no scope contains
// the name, meaning a global reference.
func (r *resolver) resolveLocal(name string) *Binding {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if info, ok := r.scopes[i][name]; ok {
			info.state = used
			return &Binding{Depth: len(r.scopes) - 1 - i}
		}
	}
	return nil
}

func (r *resolver) stmt(stmt ast.Stmt) {
	switch stmt := stmt.(type) {
	case *ast.BadStmt:
		// nothing to do, never executed

	case *ast.BlockStmt:
		r.beginScope()
		for _, s := range stmt.Stmts {
			r.stmt(s)
		}
		r.endScope()

	case *ast.BreakStmt:
		// the parser validates break placement

	case *ast.ClassStmt:
		r.class(stmt)

	case *ast.ExprStmt:
		r.expr(stmt.Expr)

	case *ast.FuncStmt:
		r.declare(stmt.Name, stmt.NamePos)
		r.define(stmt.Name)
		r.function(stmt, funcFunction)

	case *ast.IfStmt:
		r.expr(stmt.Cond)
		r.stmt(stmt.Then)
		if stmt.Else != nil {
			r.stmt(stmt.Else)
		}

	case *ast.PrintStmt:
		r.expr(stmt.Expr)

	case *ast.ReturnStmt:
		if r.curFn == funcNone {
			r.error(stmt.Return, "at 'return'", "Cannot return from top-level code.")
		}
		if stmt.Expr != nil {
			if r.curFn == funcInitializer {
				r.error(stmt.Return, "at 'return'", "Cannot return a value from an initializer.")
			}
			r.expr(stmt.Expr)
		}

	case *ast.VarStmt:
		r.declare(stmt.Name, stmt.NamePos)
		if stmt.Init != nil {
			// resolved between declare and define so that a reference to the
			// name inside its own initializer is caught
			r.expr(stmt.Init)
		}
		r.define(stmt.Name)

	case *ast.WhileStmt:
		r.expr(stmt.Cond)
		r.stmt(stmt.Body)

	default:
		panic(fmt.Sprintf("unexpected stmt %T", stmt))
	}
}

func (r *resolver) expr(expr ast.Expr) {
	switch expr := expr.(type) {
	case *ast.AssignExpr:
		r.expr(expr.Value)
		if b := r.resolveLocal(expr.Name); b != nil {
			expr.Binding = b
		}

	case *ast.BadExpr:
		// nothing to do, never executed

	case *ast.BinOpExpr:
		r.expr(expr.Left)
		r.expr(expr.Right)

	case *ast.CallExpr:
		r.expr(expr.Fn)
		for _, e := range expr.Args {
			r.expr(e)
		}

	case *ast.DotExpr:
		// ignore the name, property access is a runtime lookup
		r.expr(expr.Left)

	case *ast.IdentExpr:
		if len(r.scopes) > 0 {
			if info, ok := r.scopes[len(r.scopes)-1][expr.Name]; ok && info.state == declared {
				r.error(expr.Start, "at '"+expr.Name+"'", "Cannot refer to local variable in its own initializer")
			}
		}
		if b := r.resolveLocal(expr.Name); b != nil {
			expr.Binding = b
		}

	case *ast.LiteralExpr:
		// nothing to do

	case *ast.LogicalExpr:
		r.expr(expr.Left)
		r.expr(expr.Right)

	case *ast.ParenExpr:
		r.expr(expr.Expr)

	case *ast.SetExpr:
		r.expr(expr.Left)
		r.expr(expr.Value)

	case *ast.SuperExpr:
		switch {
		case r.curClass == classNone:
			r.error(expr.Super, "at 'super'", "Cannot use 'super' outside of a class.")
		case r.curClass != classSubclass:
			r.error(expr.Super, "at 'super'", "Cannot use 'super' in a class with no superclass.")
		default:
			if b := r.resolveLocal("super"); b != nil {
				expr.Binding = b
			}
		}

	case *ast.ThisExpr:
		if r.curClass == classNone {
			r.error(expr.Start, "at 'this'", "Cannot use 'this' outside of a class.")
			break
		}
		if b := r.resolveLocal("this"); b != nil {
			expr.Binding = b
		}

	case *ast.UnaryOpExpr:
		r.expr(expr.Right)

	default:
		panic(fmt.Sprintf("unexpected expr %T", expr))
	}
}

// function resolves a function or method body: a new scope in which every
// parameter is defined and the body statements are resolved directly (the
// body block does not open a second scope).
func (r *resolver) function(fn *ast.FuncStmt, kind funcKind) {
	enclosing := r.curFn
	r.curFn = kind

	r.beginScope()
	for _, param := range fn.Params {
		r.declare(param.Name, param.Start)
		r.define(param.Name)
	}
	for _, s := range fn.Body {
		r.stmt(s)
	}
	r.endScope()

	r.curFn = enclosing
}

func (r *resolver) class(cl *ast.ClassStmt) {
	enclosing := r.curClass
	r.curClass = classClass

	r.declare(cl.Name, cl.NamePos)
	r.define(cl.Name)

	if cl.Superclass != nil {
		if cl.Superclass.Name == cl.Name {
			r.error(cl.Superclass.Start, "at '"+cl.Superclass.Name+"'", "A class cannot inherit from itself.")
		}
		r.curClass = classSubclass
		r.expr(cl.Superclass)

		// synthetic scope that binds super for the methods' closures
		r.beginScope()
		r.defineImplicit("super")
	}

	// synthetic scope that binds this, always exactly one scope inside the
	// super scope
	r.beginScope()
	r.defineImplicit("this")

	for _, m := range cl.Methods {
		kind := funcMethod
		if m.Name == "init" {
			kind = funcInitializer
		}
		r.function(m, kind)
	}

	r.endScope()
	if cl.Superclass != nil {
		r.endScope()
	}
	r.curClass = enclosing
}
