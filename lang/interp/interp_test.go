package interp_test

import (
	"bytes"
	"context"
	"flag"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/mna/mainer"
	"github.com/stretchr/testify/require"

	"github.com/tallforasmurf/plox/internal/filetest"
	"github.com/tallforasmurf/plox/internal/maincmd"
	"github.com/tallforasmurf/plox/lang/ast"
	"github.com/tallforasmurf/plox/lang/interp"
	"github.com/tallforasmurf/plox/lang/parser"
	"github.com/tallforasmurf/plox/lang/resolver"
	"github.com/tallforasmurf/plox/lang/types"
)

var testUpdateInterpTests = flag.Bool("test.update-interp-tests", false, "If set, replace expected interpreter test results with actual results.")

func init() {
	color.NoColor = true
}

// TestRun drives full programs end-to-end through the same path as the
// CLI and compares stdout and stderr against the golden files.
func TestRun(t *testing.T) {
	ctx := context.Background()
	srcDir, resultDir := filepath.Join("testdata", "in"), filepath.Join("testdata", "out")

	for _, fi := range filetest.SourceFiles(t, srcDir, ".lox") {
		t.Run(fi.Name(), func(t *testing.T) {
			var buf, ebuf bytes.Buffer
			stdio := mainer.Stdio{
				Stdout: &buf,
				Stderr: &ebuf,
			}

			var c maincmd.Cmd
			code := c.RunFile(ctx, stdio, filepath.Join(srcDir, fi.Name()))
			if ebuf.Len() > 0 {
				require.Equal(t, mainer.ExitCode(65), code)
			} else {
				require.Equal(t, mainer.Success, code)
			}

			filetest.DiffOutput(t, fi, buf.String(), resultDir, testUpdateInterpTests)
			filetest.DiffErrors(t, fi, ebuf.String(), resultDir, testUpdateInterpTests)
		})
	}
}

func runProgram(t *testing.T, it *interp.Interpreter, src string) error {
	t.Helper()
	ctx := context.Background()
	prog, err := parser.ParseChunk(ctx, "test", []byte(src))
	require.NoError(t, err)
	require.NoError(t, resolver.ResolveProgram(ctx, prog, 0))
	return it.Run(ctx, prog)
}

func TestRuntimeErrorValue(t *testing.T) {
	var buf bytes.Buffer
	it := interp.New(&buf)

	err := runProgram(t, it, `var a = 1; { { print a + nil; } }`)
	require.Error(t, err)

	rerr, ok := err.(*interp.RuntimeError)
	require.True(t, ok)
	line, _ := rerr.Pos.LineCol()
	require.Equal(t, 1, line)
	require.Equal(t, "at '+'", rerr.Where)
	require.Equal(t, "Operands must be two numbers or two strings.", rerr.Msg)
}

// a runtime error aborts the program but leaves the interpreter usable,
// with the globals intact (the REPL case).
func TestInterpreterUsableAfterError(t *testing.T) {
	var buf bytes.Buffer
	it := interp.New(&buf)

	require.Error(t, runProgram(t, it, `var a = "kept"; { { missing; } }`))
	require.NoError(t, runProgram(t, it, `print a;`))
	require.Equal(t, "kept\n", buf.String())
}

func TestGlobalsPersistAcrossRuns(t *testing.T) {
	var buf bytes.Buffer
	it := interp.New(&buf)

	require.NoError(t, runProgram(t, it, `var n = 1; fun next() { n = n + 1; return n; }`))
	require.NoError(t, runProgram(t, it, `print next(); print next();`))
	require.Equal(t, "2\n3\n", buf.String())
}

func TestEval(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer
	it := interp.New(&buf)

	prog, err := parser.ParseChunk(ctx, "test", []byte(`1 + 2 * 3;`))
	require.NoError(t, err)
	require.NoError(t, resolver.ResolveProgram(ctx, prog, 0))

	es := prog.Stmts[0].(*ast.ExprStmt)
	v, err := it.Eval(ctx, es.Expr)
	require.NoError(t, err)
	require.Equal(t, types.Float(7), v)
}

func TestClock(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer
	it := interp.New(&buf)

	prog, err := parser.ParseChunk(ctx, "test", []byte(`var t = clock(); print t > 0;`))
	require.NoError(t, err)
	require.NoError(t, resolver.ResolveProgram(ctx, prog, 0))
	require.NoError(t, it.Run(ctx, prog))
	require.Equal(t, "true\n", buf.String())
}
