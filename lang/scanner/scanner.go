// Some of the scanner package is adapted from the Go source code:
// https://cs.opensource.google/go/go/+/refs/tags/go1.22.1:src/go/scanner/scanner.go
//
// Copyright 2009 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scanner

import (
	"context"
	"fmt"
	"go/scanner"
	"os"
	"strconv"
	"unicode/utf8"

	"github.com/mna/lox/lang/token"
)

type (
	Error     = scanner.Error
	ErrorList = scanner.ErrorList
)

var PrintError = scanner.PrintError

// TokenAndValue combines the token kind with the token value in the same
// struct, the pair the parser actually consumes.
type TokenAndValue struct {
	Token token.Token
	Value token.Value
}

// ScanFiles tokenizes the given source files and returns the resulting
// tokens grouped by file, along with any error encountered. The error, if
// non-nil, is an ErrorList.
func ScanFiles(ctx context.Context, files ...string) (*token.FileSet, [][]TokenAndValue, error) {
	if len(files) == 0 {
		return nil, nil, nil
	}

	var (
		s      Scanner
		tokVal token.Value
		el     ErrorList
	)

	fs := token.NewFileSet()
	tokensByFile := make([][]TokenAndValue, len(files))
	for i, file := range files {
		b, err := os.ReadFile(file)
		if err != nil {
			el.Add(token.Position{Filename: file}, err.Error())
			continue
		}

		fsf := fs.AddFile(file, -1, len(b))
		s.Init(fsf, b, el.Add)
		for {
			tok := s.Scan(&tokVal)
			tokensByFile[i] = append(tokensByFile[i], TokenAndValue{
				Token: tok,
				Value: tokVal,
			})
			if tok == token.EOF {
				break
			}
		}
	}
	el.Sort()
	return fs, tokensByFile, el.Err()
}

// Scanner tokenizes Lox source text for the parser to consume.
type Scanner struct {
	// immutable state after Init
	file *token.File
	src  []byte
	err  func(pos token.Position, msg string)

	// mutable scanning state
	cur  rune // current character, -1 at EOF
	off  int  // byte offset of cur
	roff int  // byte offset following cur
}

// Init prepares the scanner to tokenize a new file. It panics if the file
// size does not match the length of src.
func (s *Scanner) Init(file *token.File, src []byte, errHandler func(token.Position, string)) {
	if file.Size() != len(src) {
		panic(fmt.Sprintf("file size (%d) does not match src len (%d)", file.Size(), len(src)))
	}

	s.file = file
	s.src = src
	s.err = errHandler
	s.cur = ' '
	s.off = 0
	s.roff = 0
	s.advance()
}

func (s *Scanner) peek() byte {
	if s.roff < len(s.src) {
		return s.src[s.roff]
	}
	return 0
}

func (s *Scanner) advance() {
	if s.roff >= len(s.src) {
		s.off = len(s.src)
		if s.cur == '\n' {
			s.file.AddLine(s.off)
		}
		s.cur = -1
		return
	}

	s.off = s.roff
	if s.cur == '\n' {
		s.file.AddLine(s.off)
	}

	r, w := rune(s.src[s.roff]), 1
	if r >= utf8.RuneSelf {
		r, w = utf8.DecodeRune(s.src[s.roff:])
		if r == utf8.RuneError && w == 1 {
			s.error(s.off, "illegal UTF-8 encoding")
		}
	}
	s.roff += w
	s.cur = r
}

func (s *Scanner) error(off int, msg string) {
	if s.err != nil {
		s.err(s.file.Position(s.file.Pos(off)), msg)
	}
}

func (s *Scanner) advanceIf(match byte) bool {
	if s.cur == rune(match) {
		s.advance()
		return true
	}
	return false
}

// Scan returns the next token, writing its payload into tokVal.
func (s *Scanner) Scan(tokVal *token.Value) (tok token.Token) {
	s.skipWhitespaceAndComments()

	pos := s.file.Pos(s.off)
	start := s.off

	switch cur := s.cur; {
	case isAlpha(cur):
		lit := s.ident()
		tok = token.LookupIdent(lit)
		*tokVal = token.Value{Raw: lit, Pos: pos}

	case isDigit(cur):
		lit := s.number()
		tok = token.NUMBER
		*tokVal = token.Value{Raw: lit, Pos: pos}
		v, err := strconv.ParseFloat(lit, 64)
		if err != nil {
			s.error(start, "invalid number literal")
		}
		tokVal.Float = v

	case cur == '"':
		s.advance()
		lit, val := s.shortString()
		tok = token.STRING
		*tokVal = token.Value{Raw: lit, Pos: pos, String: val}

	default:
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
		case -1:
			tok = token.EOF
		default:
			s.error(start, fmt.Sprintf("unexpected character %#U", cur))
			tok = token.ILLEGAL
		}
		if tok != token.EOF {
			*tokVal = token.Value{Raw: string(s.src[start:s.off]), Pos: pos}
		} else {
			*tokVal = token.Value{Raw: "", Pos: pos}
		}
	}
	return tok
}

func (s *Scanner) ident() string {
	start := s.off
	for isAlpha(s.cur) || isDigit(s.cur) {
		s.advance()
	}
	return string(s.src[start:s.off])
}

// skipWhitespaceAndComments skips ' ', '\t', '\r', '\n' and "//" line
// comments, which carry to end-of-line and produce no token.
func (s *Scanner) skipWhitespaceAndComments() {
	for {
		switch {
		case isWhitespace(s.cur):
			s.advance()
		case s.cur == '/' && s.peek() == '/':
			for s.cur != '\n' && s.cur != -1 {
				s.advance()
			}
		default:
			return
		}
	}
}

func isWhitespace(rn rune) bool {
	return rn == ' ' || rn == '\t' || rn == '\n' || rn == '\r'
}

func isAlpha(rn rune) bool {
	return 'a' <= rn && rn <= 'z' || 'A' <= rn && rn <= 'Z' || rn == '_'
}

func isDigit(rn rune) bool {
	return '0' <= rn && rn <= '9'
}
