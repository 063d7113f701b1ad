package interp

import (
	"fmt"

	"github.com/tallforasmurf/plox/lang/token"
)

// RuntimeError is the error type of every runtime failure: type
// mismatches, arity mismatches, undefined names and properties, and
// arithmetic errors. It carries the position and location label of the
// offending token for the error sink.
type RuntimeError struct {
	Pos   token.Pos
	Where string // location label, e.g. "at 'x'"
	Msg   string
}

func (e *RuntimeError) Error() string {
	l, _ := e.Pos.LineCol()
	return fmt.Sprintf("line %d %s: %s", l, e.Where, e.Msg)
}

func errAt(pos token.Pos, where, format string, args ...interface{}) *RuntimeError {
	return &RuntimeError{Pos: pos, Where: where, Msg: fmt.Sprintf(format, args...)}
}

// ctrl is the unwinding signal of the non-local control flow statements.
// It is not an error: break is caught by the innermost enclosing while,
// return by the innermost enclosing call. Blocks propagate it upward
// while still restoring their environment.
type ctrl uint8

const (
	ctrlNone   ctrl = iota
	ctrlBreak       // unwinding to the innermost enclosing loop
	ctrlReturn      // unwinding to the innermost enclosing call
)
