package maincmd

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/mna/mainer"
	"github.com/stretchr/testify/require"
)

func init() {
	color.NoColor = true
}

func testStdio(stdin string) (mainer.Stdio, *bytes.Buffer, *bytes.Buffer) {
	var out, errb bytes.Buffer
	return mainer.Stdio{
		Stdin:  strings.NewReader(stdin),
		Stdout: &out,
		Stderr: &errb,
	}, &out, &errb
}

func TestUsageExitCode(t *testing.T) {
	t.Setenv("PLOX_PROMPT", "> ")
	var c Cmd
	stdio, _, ebuf := testStdio("")
	code := c.Main([]string{"plox", "a.lox", "b.lox"}, stdio)
	require.Equal(t, mainer.ExitCode(64), code)
	require.Contains(t, ebuf.String(), "Usage: plox [script]")
}

func TestNoInputExitCode(t *testing.T) {
	var c Cmd
	stdio, _, ebuf := testStdio("")
	code := c.RunFile(context.Background(), stdio, filepath.Join("testdata", "does-not-exist.lox"))
	require.Equal(t, mainer.ExitCode(66), code)
	require.Contains(t, ebuf.String(), "problem accessing")
}

func TestRunFileExitCodes(t *testing.T) {
	ctx := context.Background()

	cases := []struct {
		file string
		code mainer.ExitCode
	}{
		{"ok.lox", 0},
		{"parse_error.lox", 65},
		{"resolve_error.lox", 65},
		{"runtime_error.lox", 65},
	}
	for _, cse := range cases {
		t.Run(cse.file, func(t *testing.T) {
			var c Cmd
			stdio, _, _ := testStdio("")
			code := c.RunFile(ctx, stdio, filepath.Join("testdata", cse.file))
			require.Equal(t, cse.code, code)
		})
	}
}

// a parse or resolve error must prevent execution entirely
func TestErrorPreventsExecution(t *testing.T) {
	ctx := context.Background()

	var c Cmd
	stdio, buf, ebuf := testStdio("")
	code := c.RunFile(ctx, stdio, filepath.Join("testdata", "resolve_error.lox"))
	require.Equal(t, mainer.ExitCode(65), code)
	require.Empty(t, buf.String())
	require.Contains(t, ebuf.String(), "Cannot return from top-level code.")
}

func TestRepl(t *testing.T) {
	t.Setenv("PLOX_PROMPT", "> ")
	t.Setenv("PLOX_NO_COLOR", "true")

	var c Cmd
	stdio, buf, ebuf := testStdio("1 + 2\nvar a = 3;\nprint a;\n")
	code := c.Main([]string{"plox"}, stdio)
	require.Equal(t, mainer.Success, code)
	require.Empty(t, ebuf.String())

	want := "> 3\n" + // desk-calculator mode prints the expression value
		"> " + // var declaration, no output
		"> 3\n" + // print a;
		"> \n" + farewell + "\n"
	require.Equal(t, want, buf.String())
}

// the had-error flag clears after each line, an error does not poison the
// session and globals persist across lines
func TestReplRecovers(t *testing.T) {
	t.Setenv("PLOX_PROMPT", "> ")
	t.Setenv("PLOX_NO_COLOR", "true")

	var c Cmd
	stdio, buf, ebuf := testStdio("var a = 1\nmissing\nprint a;\n")
	code := c.Main([]string{"plox"}, stdio)
	require.Equal(t, mainer.Success, code)

	// first line gets its semicolon appended and defines a; second errors
	require.Contains(t, ebuf.String(), "Undefined variable 'missing'.")
	require.Equal(t, "> > > 1\n> \n"+farewell+"\n", buf.String())
}
