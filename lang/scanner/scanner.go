// Some of the scanner package is adapted from the Go source code:
// https://cs.opensource.google/go/go/+/refs/tags/go1.22.1:src/go/scanner/scanner.go
//
// Copyright 2009 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package scanner implements the scanner (lexer) that tokenizes Lox source
// code for the parser to consume.
package scanner

import (
	"bytes"
	"context"
	"fmt"
	"go/scanner"
	"os"
	"strconv"
	"unicode"
	"unicode/utf8"

	"github.com/tallforasmurf/plox/lang/token"
)

type (
	Error     = scanner.Error
	ErrorList = scanner.ErrorList
)

var PrintError = scanner.PrintError

// TokenAndValue combines the token type with the token value type in the
// same struct.
type TokenAndValue struct {
	Token token.Token
	Value token.Value
}

// ScanFile is a helper function that tokenizes a single source file and
// returns the list of tokens terminated by EOF, and any error encountered.
// The error, if non-nil, is guaranteed to be an ErrorList.
func ScanFile(ctx context.Context, file string) ([]TokenAndValue, error) {
	b, err := os.ReadFile(file)
	if err != nil {
		var el ErrorList
		el.Add(token.Position{Filename: file}, err.Error())
		return nil, el.Err()
	}
	return ScanChunk(ctx, file, b)
}

// ScanChunk is a helper function that tokenizes a single chunk of source
// bytes and returns the list of tokens terminated by EOF, and any error
// encountered. The chunk is identified as filename in error positions. The
// error, if non-nil, is guaranteed to be an ErrorList.
func ScanChunk(ctx context.Context, filename string, src []byte) ([]TokenAndValue, error) {
	var (
		s      Scanner
		tokVal token.Value
		el     ErrorList
	)

	s.Init(filename, src, func(pos token.Position, msg string) {
		el.Add(pos, fmt.Sprintf("chr %d: %s", pos.Offset, msg))
	})

	var toks []TokenAndValue
	for {
		tok := s.Scan(&tokVal)
		toks = append(toks, TokenAndValue{Token: tok, Value: tokVal})
		if tok == token.EOF {
			break
		}
	}
	el.Sort()
	return toks, el.Err()
}

// Scanner tokenizes source files for the parser to consume.
type Scanner struct {
	// immutable state after Init
	name string // filename for error positions
	src  []byte
	err  func(pos token.Position, msg string)

	// mutable scanning state
	invalidByte byte // when cur==RuneError due to failed utf8 decode, this is the invalid byte
	cur         rune // current character
	off         int  // character offset in bytes of cur
	roff        int  // reading offset in bytes (position after current character)
	line        int  // 1-based line number of cur
	lineOff     int  // byte offset of the start of the current line
}

// byte order mark, only permitted as very first characters
var bom = [2]byte{0xFE, 0xFF}

// Init initializes the scanner to tokenize a new source chunk, identified
// as filename in error positions.
func (s *Scanner) Init(filename string, src []byte, errHandler func(token.Position, string)) {
	s.name = filename
	s.src = src
	s.err = errHandler

	s.invalidByte = 0
	s.cur = ' '
	s.off = 0
	s.roff = 0
	s.line = 1
	s.lineOff = 0

	// skip initial BOM if present
	if len(src) >= len(bom) && bytes.Equal(src[:len(bom)], bom[:]) {
		s.off += len(bom)
		s.roff += len(bom)
	}
	s.advance()
}

// peek returns the byte following the most recently read character without
// advancing the scanner. If the scanner is at EOF, peek returns 0.
func (s *Scanner) peek() byte {
	if s.roff < len(s.src) {
		return s.src[s.roff]
	}
	return 0
}

// read the next Unicode char into s.cur; s.cur < 0 means end-of-file.
func (s *Scanner) advance() {
	if s.roff >= len(s.src) {
		s.off = len(s.src)
		if s.cur == '\n' {
			s.line++
			s.lineOff = s.off
		}
		s.cur = -1
		return
	}

	s.off = s.roff
	if s.cur == '\n' {
		s.line++
		s.lineOff = s.off
	}

	// fast path if the rune is an ASCII char, no decoding necessary
	s.invalidByte = 0
	r, w := rune(s.src[s.roff]), 1
	if r >= utf8.RuneSelf {
		// not ASCII
		r, w = utf8.DecodeRune(s.src[s.roff:])
		if r == utf8.RuneError && w == 1 {
			s.error(s.off, "illegal UTF-8 encoding")
			// store the actual invalid byte
			s.invalidByte = s.src[s.roff]
		}
	}
	s.roff += w
	s.cur = r
}

func (s *Scanner) error(off int, msg string) {
	if s.err != nil {
		col := off - s.lineOff + 1
		if col < 1 {
			col = 1
		}
		s.err(token.Position{Filename: s.name, Offset: off, Line: s.line, Column: col}, msg)
	}
}

// pos returns the Pos value of the current character.
func (s *Scanner) pos() token.Pos {
	return token.MakePos(s.line, s.off-s.lineOff+1)
}

// advance only if the current char matches any of the specified ones.
func (s *Scanner) advanceIf(matches ...byte) bool {
	if bytes.ContainsRune(matches, s.cur) {
		s.advance()
		return true
	}
	return false
}

// Scan returns the next token in the source chunk. Comments and whitespace
// are skipped, no token is emitted for them, and scanning continues after
// an invalid character has been reported.
func (s *Scanner) Scan(tokVal *token.Value) (tok token.Token) {
	for {
		s.skipWhitespace()

		// current token start
		pos := s.pos()
		start := s.off

		switch cur := s.cur; {
		case isLetter(cur):
			// keywords and identifiers
			lit := s.ident()
			tok = token.IDENT
			if len(lit) > 1 {
				// keywords are longer than one letter - avoid lookup otherwise
				tok = token.LookupKw(lit)
			}
			*tokVal = token.Value{Raw: lit, Pos: pos}

		case isDecimal(cur):
			lit := s.number()
			tok = token.NUMBER
			v, err := strconv.ParseFloat(lit, 64)
			if err != nil {
				// syntax is guaranteed by the scan, only a range error is possible
				s.error(start, "number literal value out of range")
			}
			*tokVal = token.Value{Raw: lit, Pos: pos, Float: v}

		default:
			// keywords, identifiers and numbers are done

			s.advance() // always make progress
			switch cur {
			case '(':
				tok = token.LPAREN
			case ')':
				tok = token.RPAREN
			case '{':
				tok = token.LBRACE
			case '}':
				tok = token.RBRACE
			case ',':
				tok = token.COMMA
			case '.':
				tok = token.DOT
			case '-':
				tok = token.MINUS
			case '+':
				tok = token.PLUS
			case ';':
				tok = token.SEMICOLON
			case '*':
				tok = token.STAR

			case '/':
				if s.advanceIf('/') {
					// line comment, no token emitted
					for s.cur != '\n' && s.cur != -1 {
						s.advance()
					}
					continue
				}
				tok = token.SLASH

			case '!':
				tok = token.BANG
				if s.advanceIf('=') {
					tok = token.BANGEQ
				}
			case '=':
				tok = token.EQ
				if s.advanceIf('=') {
					tok = token.EQEQ
				}
			case '<':
				tok = token.LT
				if s.advanceIf('=') {
					tok = token.LE
				}
			case '>':
				tok = token.GT
				if s.advanceIf('=') {
					tok = token.GE
				}

			case '"':
				lit, val, ok := s.stringLit()
				if !ok {
					// unterminated, error already reported; resume at EOF
					continue
				}
				tok = token.STRING
				*tokVal = token.Value{Raw: lit, Pos: pos, String: val}
				return tok

			case -1:
				tok = token.EOF
				*tokVal = token.Value{Raw: "", Pos: pos}
				return tok

			default:
				if cur == utf8.RuneError && s.invalidByte > 0 {
					cur = rune(s.invalidByte)
					s.invalidByte = 0
				}
				s.error(start, fmt.Sprintf("Unexpected character %#U", cur))
				// no token emitted, keep scanning
				continue
			}
			*tokVal = token.Value{Raw: string(s.src[start:s.off]), Pos: pos}
		}
		return tok
	}
}

func (s *Scanner) ident() string {
	start := s.off
	for isLetter(s.cur) || isDigit(s.cur) {
		s.advance()
	}
	return string(s.src[start:s.off])
}

// number scans a number literal: one or more decimal digits, optionally
// followed by a dot and one or more decimal digits. A trailing dot is not
// part of the number (it is a DOT token).
func (s *Scanner) number() string {
	start := s.off
	for isDecimal(s.cur) {
		s.advance()
	}
	if s.cur == '.' && isDecimal(rune(s.peek())) {
		s.advance()
		for isDecimal(s.cur) {
			s.advance()
		}
	}
	return string(s.src[start:s.off])
}

// stringLit scans a string literal after the opening quote has been
// consumed. Strings may span multiple lines and there is no escape
// processing, the value is the exact text between the quotes.
func (s *Scanner) stringLit() (lit, val string, ok bool) {
	start := s.off - 1 // opening quote already consumed
	for s.cur != '"' {
		if s.cur == -1 {
			s.error(s.off, "Unterminated string")
			return "", "", false
		}
		s.advance()
	}
	s.advance() // closing quote
	raw := string(s.src[start:s.off])
	return raw, raw[1 : len(raw)-1], true
}

func (s *Scanner) skipWhitespace() {
	for isWhitespace(s.cur) {
		s.advance()
	}
}

func isWhitespace(rn rune) bool {
	return rn == ' ' || rn == '\t' || rn == '\n' || rn == '\r'
}

func isLetter(rn rune) bool {
	return 'a' <= rn && rn <= 'z' ||
		'A' <= rn && rn <= 'Z' ||
		rn == '_' ||
		rn >= utf8.RuneSelf && unicode.IsLetter(rn)
}

func isDecimal(rn rune) bool {
	return '0' <= rn && rn <= '9'
}

func isDigit(rn rune) bool {
	return isDecimal(rn) ||
		rn >= utf8.RuneSelf && unicode.IsDigit(rn)
}
