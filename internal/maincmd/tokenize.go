package maincmd

import (
	"context"
	"fmt"

	"github.com/mna/mainer"

	"github.com/tallforasmurf/plox/lang/scanner"
	"github.com/tallforasmurf/plox/lang/token"
)

// TokenizeFile executes the scanner phase only and prints the resulting
// tokens, one per line, to stdout. Scan errors print to stderr through
// the error sink.
func TokenizeFile(ctx context.Context, stdio mainer.Stdio, posMode token.PosMode, file string) error {
	toks, err := scanner.ScanFile(ctx, file)
	for _, tok := range toks {
		if pos := token.FormatPos(posMode, tok.Value.Pos); pos != "" {
			fmt.Fprintf(stdio.Stdout, "%s: ", pos)
		}
		fmt.Fprintf(stdio.Stdout, "%s", tok.Token)
		if lit := tok.Token.Literal(tok.Value); lit != "" {
			fmt.Fprintf(stdio.Stdout, " %s", lit)
		}
		fmt.Fprintln(stdio.Stdout)
	}
	if err != nil {
		reporterTo(stdio.Stderr).reportErr(err)
	}
	return err
}
