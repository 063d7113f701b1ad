package interp

import (
	"github.com/dolthub/swiss"

	"github.com/tallforasmurf/plox/lang/types"
)

// Environment is a scope at runtime: a mapping from names to values with
// an optional enclosing parent, forming the scope chain. The global
// environment has no parent; every other environment has exactly one,
// fixed at creation.
type Environment struct {
	parent *Environment
	vars   *swiss.Map[string, types.Value]
}

// NewEnvironment creates an environment enclosed by parent. A nil parent
// creates a global environment.
func NewEnvironment(parent *Environment) *Environment {
	return &Environment{
		parent: parent,
		vars:   swiss.NewMap[string, types.Value](8),
	}
}

// Define unconditionally sets name to v in this scope. Redefinition
// replaces the previous value, which is only reachable at the global
// scope since the resolver forbids redeclaration in local scopes.
func (e *Environment) Define(name string, v types.Value) {
	e.vars.Put(name, v)
}

// Get returns the value of name from its nearest enclosing definition,
// or false if no scope in the chain contains it.
func (e *Environment) Get(name string) (types.Value, bool) {
	for env := e; env != nil; env = env.parent {
		if v, ok := env.vars.Get(name); ok {
			return v, true
		}
	}
	return nil, false
}

// Assign sets name to v at its nearest enclosing definition, or returns
// false if no scope in the chain contains it.
func (e *Environment) Assign(name string, v types.Value) bool {
	for env := e; env != nil; env = env.parent {
		if env.vars.Has(name) {
			env.vars.Put(name, v)
			return true
		}
	}
	return false
}

// Ancestor returns the environment depth hops parent-ward (0 = e itself).
func (e *Environment) Ancestor(depth int) *Environment {
	env := e
	for i := 0; i < depth; i++ {
		env = env.parent
	}
	return env
}

// GetAt returns the value of name at exactly depth hops up the chain, with
// no chain walk. A miss is not possible if the resolver was correct.
func (e *Environment) GetAt(depth int, name string) (types.Value, bool) {
	return e.Ancestor(depth).vars.Get(name)
}

// AssignAt sets name to v at exactly depth hops up the chain, with no
// chain walk.
func (e *Environment) AssignAt(depth int, name string, v types.Value) {
	e.Ancestor(depth).vars.Put(name, v)
}
