package interp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tallforasmurf/plox/lang/parser"
	"github.com/tallforasmurf/plox/lang/resolver"
	"github.com/tallforasmurf/plox/lang/types"
)

func TestEnvironmentDefineGet(t *testing.T) {
	g := NewEnvironment(nil)
	g.Define("a", types.Float(1))

	v, ok := g.Get("a")
	require.True(t, ok)
	require.Equal(t, types.Float(1), v)

	_, ok = g.Get("b")
	require.False(t, ok)

	// redefinition replaces
	g.Define("a", types.String("x"))
	v, _ = g.Get("a")
	require.Equal(t, types.String("x"), v)
}

func TestEnvironmentChain(t *testing.T) {
	g := NewEnvironment(nil)
	g.Define("a", types.Float(1))
	g.Define("b", types.Float(2))

	child := NewEnvironment(g)
	child.Define("a", types.Float(10))

	// get finds the nearest definition
	v, _ := child.Get("a")
	require.Equal(t, types.Float(10), v)
	v, _ = child.Get("b")
	require.Equal(t, types.Float(2), v)

	// assign mutates the nearest definition
	require.True(t, child.Assign("b", types.Float(20)))
	v, _ = g.Get("b")
	require.Equal(t, types.Float(20), v)

	require.False(t, child.Assign("c", types.Float(3)))
}

func TestEnvironmentAt(t *testing.T) {
	g := NewEnvironment(nil)
	g.Define("a", types.Float(1))
	mid := NewEnvironment(g)
	mid.Define("a", types.Float(2))
	leaf := NewEnvironment(mid)

	require.Same(t, leaf, leaf.Ancestor(0))
	require.Same(t, mid, leaf.Ancestor(1))
	require.Same(t, g, leaf.Ancestor(2))

	v, ok := leaf.GetAt(1, "a")
	require.True(t, ok)
	require.Equal(t, types.Float(2), v)
	v, _ = leaf.GetAt(2, "a")
	require.Equal(t, types.Float(1), v)

	leaf.AssignAt(2, "a", types.Float(100))
	v, _ = g.Get("a")
	require.Equal(t, types.Float(100), v)

	// scope-exact access does not walk the chain
	_, ok = leaf.GetAt(0, "a")
	require.False(t, ok)
}

// after execution of any statement list, the interpreter's environment is
// back to the globals, on normal exit and on error unwind alike.
func TestEnvironmentRestored(t *testing.T) {
	ctx := context.Background()
	run := func(src string) error {
		prog, err := parser.ParseChunk(ctx, "test", []byte(src))
		require.NoError(t, err)
		require.NoError(t, resolver.ResolveProgram(ctx, prog, 0))

		it := New(nilWriter{})
		err = it.Run(ctx, prog)
		require.Same(t, it.globals, it.env)
		return err
	}

	require.NoError(t, run(`{ var a = 1; { var b = 2; print a + b; } }`))
	require.Error(t, run(`{ var a = 1; { missing; } }`))
	require.NoError(t, run(`fun f() { var x = 1; return x; } f();`))
	require.Error(t, run(`fun f() { var x = nil; return x + 1; } { f(); }`))
}

type nilWriter struct{}

func (nilWriter) Write(p []byte) (int, error) { return len(p), nil }
