package parser_test

import (
	"bytes"
	"context"
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/mna/mainer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tallforasmurf/plox/internal/filetest"
	"github.com/tallforasmurf/plox/internal/maincmd"
	"github.com/tallforasmurf/plox/lang/ast"
	"github.com/tallforasmurf/plox/lang/parser"
	"github.com/tallforasmurf/plox/lang/token"
)

var testUpdateParserTests = flag.Bool("test.update-parser-tests", false, "If set, replace expected parser test results with actual results.")

func init() {
	color.NoColor = true
}

func TestParser(t *testing.T) {
	ctx := context.Background()
	srcDir, resultDir := filepath.Join("testdata", "in"), filepath.Join("testdata", "out")

	for _, fi := range filetest.SourceFiles(t, srcDir, ".lox") {
		t.Run(fi.Name(), func(t *testing.T) {
			var buf, ebuf bytes.Buffer
			stdio := mainer.Stdio{
				Stdout: &buf,
				Stderr: &ebuf,
			}

			// error is ignored, we just want it to be printed to ebuf
			_ = maincmd.ParseFile(ctx, stdio, token.PosNone, "", filepath.Join(srcDir, fi.Name()))
			filetest.DiffOutput(t, fi, buf.String(), resultDir, testUpdateParserTests)
			filetest.DiffErrors(t, fi, ebuf.String(), resultDir, testUpdateParserTests)

			if t.Failed() && testing.Verbose() {
				b, err := os.ReadFile(filepath.Join(srcDir, fi.Name()))
				if assert.NoError(t, err) {
					t.Logf("source file:\n%s\n", string(b))
				}
			}
		})
	}
}

func TestAssignRightAssociative(t *testing.T) {
	ctx := context.Background()
	prog, err := parser.ParseChunk(ctx, "test", []byte("a = b = 1;"))
	require.NoError(t, err)
	require.Len(t, prog.Stmts, 1)

	es := prog.Stmts[0].(*ast.ExprStmt)
	outer := es.Expr.(*ast.AssignExpr)
	require.Equal(t, "a", outer.Name)
	inner := outer.Value.(*ast.AssignExpr)
	require.Equal(t, "b", inner.Name)
	_ = inner.Value.(*ast.LiteralExpr)
}

func TestAssignInvalidTarget(t *testing.T) {
	ctx := context.Background()
	_, err := parser.ParseChunk(ctx, "test", []byte("1 + 2 = 3;"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "Invalid target for assignment")
}

func TestSetTarget(t *testing.T) {
	ctx := context.Background()
	prog, err := parser.ParseChunk(ctx, "test", []byte("a.b.c = 1;"))
	require.NoError(t, err)

	es := prog.Stmts[0].(*ast.ExprStmt)
	set := es.Expr.(*ast.SetExpr)
	require.Equal(t, "c", set.Name)
	get := set.Left.(*ast.DotExpr)
	require.Equal(t, "b", get.Name)
}

func TestCallChain(t *testing.T) {
	ctx := context.Background()
	prog, err := parser.ParseChunk(ctx, "test", []byte("f().g.h()(x);"))
	require.NoError(t, err)

	es := prog.Stmts[0].(*ast.ExprStmt)
	outer := es.Expr.(*ast.CallExpr) // ...(x)
	require.Len(t, outer.Args, 1)
	mid := outer.Fn.(*ast.CallExpr) // .h()
	get := mid.Fn.(*ast.DotExpr)    // .h
	require.Equal(t, "h", get.Name)
	getG := get.Left.(*ast.DotExpr) // .g
	require.Equal(t, "g", getG.Name)
	inner := getG.Left.(*ast.CallExpr) // f()
	require.Equal(t, "f", inner.Fn.(*ast.IdentExpr).Name)
}

func TestBreakOutsideLoop(t *testing.T) {
	ctx := context.Background()
	_, err := parser.ParseChunk(ctx, "test", []byte("break;"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "Break statement only allowed within a loop.")

	// a break inside a function declared inside a loop is not in that loop
	_, err = parser.ParseChunk(ctx, "test", []byte("while (true) { fun f() { break; } }"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "Break statement only allowed within a loop.")

	_, err = parser.ParseChunk(ctx, "test", []byte("while (true) { break; }"))
	require.NoError(t, err)

	_, err = parser.ParseChunk(ctx, "test", []byte("for (;;) { break; }"))
	require.NoError(t, err)
}
