package token

import (
	"fmt"
	"testing"
)

func TestPosLineCol(t *testing.T) {
	cases := []struct {
		line, col int
	}{
		{1, 1},
		{1, 80},
		{42, 7},
		{MaxLines, 1},
		{1, MaxCols},
		{MaxLines, MaxCols},
	}
	for _, c := range cases {
		t.Run(fmt.Sprintf("%d:%d", c.line, c.col), func(t *testing.T) {
			p := MakePos(c.line, c.col)
			l, col := p.LineCol()
			if l != c.line || col != c.col {
				t.Errorf("want %d:%d, got %d:%d", c.line, c.col, l, col)
			}
			if !p.IsValid() {
				t.Errorf("want valid Pos for %d:%d", c.line, c.col)
			}
		})
	}
}

func TestPosColumnArithmetic(t *testing.T) {
	// end positions are computed by adding the lexeme length to the start
	p := MakePos(3, 10) + Pos(5)
	l, c := p.LineCol()
	if l != 3 || c != 15 {
		t.Errorf("want 3:15, got %d:%d", l, c)
	}
}

func TestNoPos(t *testing.T) {
	if NoPos.IsValid() {
		t.Error("NoPos must not be valid")
	}
	if MakePos(0, 3).IsValid() {
		t.Error("unknown line must not be valid")
	}
}

func TestFormatPos(t *testing.T) {
	cases := []struct {
		pos  Pos
		mode PosMode
		want string
	}{
		{NoPos, PosLong, "-:-"},
		{NoPos, PosRaw, "0"},
		{NoPos, PosNone, ""},
		{MakePos(1, 1), PosLong, "1:1"},
		{MakePos(12, 34), PosLong, "12:34"},
		{MakePos(1, 2), PosRaw, fmt.Sprint(uint32(MakePos(1, 2)))},
		{MakePos(1, 2), PosNone, ""},
	}
	for _, c := range cases {
		t.Run(fmt.Sprintf("%d:%d", c.pos, c.mode), func(t *testing.T) {
			got := FormatPos(c.mode, c.pos)
			if got != c.want {
				t.Errorf("want %q, got %q", c.want, got)
			}
		})
	}
}

func TestToPosition(t *testing.T) {
	p := MakePos(7, 3)
	lp := p.ToPosition("test.lox", 42)
	if lp.Filename != "test.lox" || lp.Line != 7 || lp.Column != 3 || lp.Offset != 42 {
		t.Errorf("unexpected Position: %+v", lp)
	}
}
