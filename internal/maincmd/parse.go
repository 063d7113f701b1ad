package maincmd

import (
	"context"

	"github.com/mna/mainer"

	"github.com/tallforasmurf/plox/lang/ast"
	"github.com/tallforasmurf/plox/lang/parser"
	"github.com/tallforasmurf/plox/lang/resolver"
	"github.com/tallforasmurf/plox/lang/token"
)

// ParseFile executes the parser phase and pretty-prints the resulting
// AST to stdout. Errors print to stderr through the error sink.
func ParseFile(ctx context.Context, stdio mainer.Stdio, posMode token.PosMode, nodeFmt, file string) error {
	printer := ast.Printer{
		Output:  stdio.Stdout,
		Pos:     posMode,
		NodeFmt: nodeFmt,
	}
	prog, err := parser.ParseFile(ctx, file)
	if prog != nil {
		if perr := printer.Print(prog); perr != nil {
			reporterTo(stdio.Stderr).reportErr(perr)
			return perr
		}
	}
	if err != nil {
		reporterTo(stdio.Stderr).reportErr(err)
	}
	return err
}

// ResolveFile executes the parser and resolver phases and pretty-prints
// the resulting AST to stdout. Errors print to stderr through the error
// sink; resolution errors do not prevent the AST from printing.
func ResolveFile(ctx context.Context, stdio mainer.Stdio, posMode token.PosMode, nodeFmt string, mode resolver.Mode, file string) error {
	prog, err := parser.ParseFile(ctx, file)
	if err != nil {
		reporterTo(stdio.Stderr).reportErr(err)
		return err
	}

	err = resolver.ResolveProgram(ctx, prog, mode)

	printer := ast.Printer{
		Output:  stdio.Stdout,
		Pos:     posMode,
		NodeFmt: nodeFmt,
	}
	if perr := printer.Print(prog); perr != nil {
		reporterTo(stdio.Stderr).reportErr(perr)
		return perr
	}
	if err != nil {
		reporterTo(stdio.Stderr).reportErr(err)
	}
	return err
}
