package maincmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/mna/mainer"

	"github.com/tallforasmurf/plox/lang/ast"
	"github.com/tallforasmurf/plox/lang/interp"
	"github.com/tallforasmurf/plox/lang/parser"
	"github.com/tallforasmurf/plox/lang/resolver"
)

// replName identifies the interactive chunks in error positions.
const replName = "repl"

// farewell printed when the interactive prompt ends on EOF or interrupt.
const farewell = "k thx byeee"

// RunFile reads the file as UTF-8 and runs it: parse, resolve, execute.
// It returns 0 on success, 65 if any error occurred and 66 if the file
// cannot be read.
func (c *Cmd) RunFile(ctx context.Context, stdio mainer.Stdio, path string) mainer.ExitCode {
	b, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(stdio.Stderr, "problem accessing %s: %s\n", path, err)
		return exitNoInput
	}

	rep := reporterTo(stdio.Stderr)
	it := interp.New(stdio.Stdout)
	c.run(ctx, it, rep, path, b, false)
	if rep.hadError {
		return exitData
	}
	return mainer.Success
}

// Repl runs the interactive prompt: read a line, append a semicolon if
// the line does not end in one, run it. The had-error flag is cleared
// after each line, and globals persist across lines in a single
// interpreter. EOF or an interrupt prints the farewell and exits 0.
func (c *Cmd) Repl(ctx context.Context, stdio mainer.Stdio) mainer.ExitCode {
	rep := reporterTo(stdio.Stderr)
	it := interp.New(stdio.Stdout)
	sc := bufio.NewScanner(stdio.Stdin)

	for {
		if ctx.Err() != nil {
			break
		}
		fmt.Fprint(stdio.Stdout, c.conf.Prompt)
		if !sc.Scan() {
			break
		}
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if !strings.HasSuffix(line, ";") {
			line += ";"
		}
		c.run(ctx, it, rep, replName, []byte(line), true)
		rep.hadError = false
	}

	fmt.Fprintln(stdio.Stdout)
	fmt.Fprintln(stdio.Stdout, farewell)
	return mainer.Success
}

// run takes a chunk of source through the full pipeline: parse, resolve
// and, when both phases are clean, execute. In calculator mode a chunk
// that is a single expression statement prints the expression's value
// instead of running it.
func (c *Cmd) run(ctx context.Context, it *interp.Interpreter, rep *reporter, name string, src []byte, calculator bool) {
	prog, err := parser.ParseChunk(ctx, name, src)
	if err != nil {
		rep.reportErr(err)
		return
	}

	if err := resolver.ResolveProgram(ctx, prog, c.resolveMode()); err != nil {
		rep.reportErr(err)
		return
	}

	if calculator && len(prog.Stmts) == 1 {
		if es, ok := prog.Stmts[0].(*ast.ExprStmt); ok {
			v, err := it.Eval(ctx, es.Expr)
			if err != nil {
				rep.reportErr(err)
				return
			}
			fmt.Fprintln(it.Stdout(), v.String())
			return
		}
	}

	if err := it.Run(ctx, prog); err != nil {
		rep.reportErr(err)
	}
}
