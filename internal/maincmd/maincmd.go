// Package maincmd implements the plox command-line tool: it runs a Lox
// script or an interactive prompt, owns the error sink and the exit
// codes, and exposes the debug modes that print the token stream or the
// AST instead of executing.
package maincmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/caarlos0/env/v6"
	"github.com/fatih/color"
	"github.com/mna/mainer"

	"github.com/tallforasmurf/plox/lang/interp"
	"github.com/tallforasmurf/plox/lang/resolver"
	"github.com/tallforasmurf/plox/lang/scanner"
	"github.com/tallforasmurf/plox/lang/token"
)

const binName = "plox"

// exit codes per BSD sysexits: 64 is EX_USAGE, 65 is EX_DATAERR and 66 is
// EX_NOINPUT.
const (
	exitUsage   = mainer.ExitCode(64)
	exitData    = mainer.ExitCode(65)
	exitNoInput = mainer.ExitCode(66)
)

var (
	shortUsage = fmt.Sprintf(`
Usage: %s [script]
Run '%[1]s --help' for details.
`, binName)

	longUsage = fmt.Sprintf(`Usage: %s [<option>...] [script]
       %[1]s -h|--help
       %[1]s -v|--version

Tree-walking interpreter for the Lox programming language. With a script
path, runs the script; without one, starts an interactive prompt.

Valid flag options are:
       -h --help                 Show this help and exit.
       -v --version              Print version and exit.
       --tokenize                Print the token stream of the script
                                 instead of executing it.
       --parse                   Print the abstract syntax tree (AST) of
                                 the script instead of executing it.
       --resolve                 Parse and resolve the script, print the
                                 AST and report resolution errors, without
                                 executing it.
       --strict-unused           Report local variables that are never
                                 referenced in their scope as errors.

The environment variables PLOX_PROMPT and PLOX_NO_COLOR configure the
prompt of the interactive mode and disable colored error output.
`, binName)
)

// config is the environment-driven configuration of the tool.
type config struct {
	Prompt  string `env:"PLOX_PROMPT" envDefault:"> "`
	NoColor bool   `env:"PLOX_NO_COLOR"`
}

// Cmd is the plox command.
type Cmd struct {
	BuildVersion string
	BuildDate    string

	Help    bool `flag:"h,help"`
	Version bool `flag:"v,version"`

	Tokenize     bool `flag:"tokenize"`
	Parse        bool `flag:"parse"`
	Resolve      bool `flag:"resolve"`
	StrictUnused bool `flag:"strict-unused"`

	args []string
	conf config
}

func (c *Cmd) SetArgs(args []string) {
	c.args = args
}

func (c *Cmd) Validate() error {
	if c.Help || c.Version {
		return nil
	}

	var modes int
	for _, b := range []bool{c.Tokenize, c.Parse, c.Resolve} {
		if b {
			modes++
		}
	}
	if modes > 1 {
		return errors.New("at most one of --tokenize, --parse and --resolve can be set")
	}
	if modes == 1 && len(c.args) != 1 {
		return errors.New("a single script must be provided with --tokenize, --parse or --resolve")
	}
	return nil
}

func (c *Cmd) Main(args []string, stdio mainer.Stdio) mainer.ExitCode {
	p := mainer.Parser{EnvVars: false}
	if err := p.Parse(args, c); err != nil {
		fmt.Fprintf(stdio.Stderr, "invalid arguments: %s\n%s", err, shortUsage)
		return exitUsage
	}

	switch {
	case c.Help:
		fmt.Fprint(stdio.Stdout, longUsage)
		return mainer.Success

	case c.Version:
		fmt.Fprintf(stdio.Stdout, "%s %s %s\n", binName, c.BuildVersion, c.BuildDate)
		return mainer.Success
	}

	if err := env.Parse(&c.conf); err != nil {
		fmt.Fprintf(stdio.Stderr, "invalid environment: %s\n", err)
		return exitUsage
	}
	if c.conf.NoColor {
		color.NoColor = true
	}

	ctx := mainer.CancelOnSignal(context.Background(), os.Interrupt)

	switch {
	case len(c.args) > 1:
		fmt.Fprintf(stdio.Stderr, "Usage: %s [script]\n", binName)
		return exitUsage

	case len(c.args) == 1:
		path := c.args[0]
		switch {
		case c.Tokenize:
			if err := TokenizeFile(ctx, stdio, token.PosLong, path); err != nil {
				return exitData
			}
			return mainer.Success
		case c.Parse:
			if err := ParseFile(ctx, stdio, token.PosNone, "", path); err != nil {
				return exitData
			}
			return mainer.Success
		case c.Resolve:
			if err := ResolveFile(ctx, stdio, token.PosNone, "", c.resolveMode(), path); err != nil {
				return exitData
			}
			return mainer.Success
		default:
			return c.RunFile(ctx, stdio, path)
		}

	default:
		return c.Repl(ctx, stdio)
	}
}

func (c *Cmd) resolveMode() resolver.Mode {
	var mode resolver.Mode
	if c.StrictUnused {
		mode |= resolver.ReportUnused
	}
	return mode
}

// reporter is the error sink: a pair of a formatter and a had-error flag,
// created per run (or per debug-mode call) and shared by every phase of
// that run. Every diagnostic prints to stderr as
//
//	Error in line {line} {where}: {message}
func reporterTo(w io.Writer) *reporter {
	return &reporter{w: w, color: color.New(color.FgHiRed)}
}

type reporter struct {
	w        io.Writer
	color    *color.Color
	hadError bool
}

// report formats a single diagnostic and latches the had-error flag. The
// where label is "chr N" for scan errors, "at 'lexeme'" or "at end" for
// everything else.
func (r *reporter) report(line int, where, msg string) {
	r.color.Fprintf(r.w, "Error in line %d %s: %s\n", line, where, msg)
	r.hadError = true
}

// reportErr reports an error returned by one of the language phases:
// either a scanner.ErrorList whose messages already carry their location
// label, or an interp.RuntimeError.
func (r *reporter) reportErr(err error) {
	var rerr *interp.RuntimeError
	if errors.As(err, &rerr) {
		line, _ := rerr.Pos.LineCol()
		r.report(line, rerr.Where, rerr.Msg)
		return
	}

	var el scanner.ErrorList
	if errors.As(err, &el) {
		for _, e := range el {
			// the message is already "{where}: {message}"
			r.color.Fprintf(r.w, "Error in line %d %s\n", e.Pos.Line, e.Msg)
		}
		r.hadError = true
		return
	}

	fmt.Fprintln(r.w, err)
	r.hadError = true
}
