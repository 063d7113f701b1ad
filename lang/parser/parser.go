// Package parser implements the parser that transforms Lox source code
// into an abstract syntax tree (AST).
package parser

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/tallforasmurf/plox/lang/ast"
	"github.com/tallforasmurf/plox/lang/scanner"
	"github.com/tallforasmurf/plox/lang/token"
)

// ParseFile is a helper function that parses a single source file and
// returns the AST and any error encountered. The error, if non-nil, is
// guaranteed to be a scanner.ErrorList.
func ParseFile(ctx context.Context, file string) (*ast.Program, error) {
	b, err := os.ReadFile(file)
	if err != nil {
		var el scanner.ErrorList
		el.Add(token.Position{Filename: file}, err.Error())
		return nil, el.Err()
	}
	return ParseChunk(ctx, file, b)
}

// ParseChunk is a helper function that parses a single chunk from a slice
// of bytes and returns the AST and any error encountered. The chunk is
// identified as filename in error positions. The error, if non-nil, is
// guaranteed to be a scanner.ErrorList.
func ParseChunk(ctx context.Context, filename string, src []byte) (*ast.Program, error) {
	var p parser
	p.init(filename, src)
	prog := p.parseProgram()
	prog.Name = filename
	p.errors.Sort()
	return prog, p.errors.Err()
}

// parser parses source files and generates an AST.
type parser struct {
	// those fields are immutable after p.init
	filename string
	scanner  scanner.Scanner
	errors   scanner.ErrorList

	// current token
	tok token.Token
	val token.Value

	// loopDepth tracks the nesting of enclosing loops, so that a break
	// statement outside any loop can be diagnosed. Function bodies reset it,
	// a break inside a function declared inside a loop is not in that loop.
	loopDepth int
}

func (p *parser) init(filename string, src []byte) {
	p.filename = filename
	p.scanner.Init(filename, src, func(pos token.Position, msg string) {
		p.errors.Add(pos, fmt.Sprintf("chr %d: %s", pos.Offset, msg))
	})
	p.loopDepth = 0

	// advance to first token
	p.advance()
}

func (p *parser) advance() {
	p.tok = p.scanner.Scan(&p.val)
}

var errPanicMode = errors.New("panic")

// expect returns the position of the current token and consumes it if it is
// one of the expected tokens, otherwise it reports an error and panics with
// errPanicMode which gets recovered at the statement level, resulting in a
// BadStmt.
func (p *parser) expect(toks ...token.Token) token.Pos {
	pos := p.val.Pos

	var buf strings.Builder
	var ok bool
	for i, tok := range toks {
		if p.tok == tok {
			ok = true
			break
		}
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(tok.GoString())
	}

	if !ok {
		var lbl string
		if len(toks) > 1 {
			lbl = "one of " + buf.String()
		} else {
			lbl = buf.String()
		}
		p.errorExpected(pos, lbl)
		panic(errPanicMode)
	}

	p.advance()
	return pos
}

// where returns the error location label of the current token, "at 'x'" for
// a regular token and "at end" for EOF, per the error sink contract.
func (p *parser) where() string {
	if p.tok == token.EOF {
		return "at end"
	}
	return "at '" + p.val.Raw + "'"
}

// error records an error at pos with an explicit location label.
func (p *parser) error(pos token.Pos, where, msg string) {
	p.errors.Add(pos.ToPosition(p.filename, -1), where+": "+msg)
}

func (p *parser) errorExpected(pos token.Pos, msg string) {
	msg = "expected " + msg
	if pos == p.val.Pos {
		// the error happened at the current position;
		// make the error message more specific
		switch lit := p.tok.Literal(p.val); lit {
		case "":
			msg += ", found " + p.tok.GoString()
		default:
			// print 123 rather than 'NUMBER', etc.
			msg += ", found " + lit
		}
	}
	p.error(pos, p.where(), msg)
}

// syncAfterError discards tokens until just past a semicolon or at a
// keyword that starts a statement, and returns the position where parsing
// resumes.
func (p *parser) syncAfterError() token.Pos {
	for p.tok != token.EOF {
		if p.tok == token.SEMICOLON {
			p.advance()
			return p.val.Pos
		}
		if p.tok.IsStmtStart() {
			return p.val.Pos
		}
		p.advance()
	}
	return p.val.Pos
}

func tokenIn(t token.Token, toks ...token.Token) bool {
	for _, tok := range toks {
		if t == tok {
			return true
		}
	}
	return false
}
