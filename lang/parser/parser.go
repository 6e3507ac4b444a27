// Package parser implements the recursive-descent, error-recovering parser
// that turns a token stream into the statement-level abstract syntax tree
// consumed by the resolver and interpreter.
package parser

import (
	"context"
	"errors"
	"os"
	"strings"

	"golang.org/x/exp/slices"

	"github.com/mna/lox/lang/ast"
	"github.com/mna/lox/lang/scanner"
	"github.com/mna/lox/lang/token"
)

// ParseFiles parses the given source files and returns the fileset along
// with one []ast.Stmt per file, and any error encountered. The error, if
// non-nil, is guaranteed to be a scanner.ErrorList.
func ParseFiles(ctx context.Context, files ...string) (*token.FileSet, [][]ast.Stmt, error) {
	if len(files) == 0 {
		return nil, nil, nil
	}

	var p parser
	fs := token.NewFileSet()
	res := make([][]ast.Stmt, 0, len(files))

	for _, file := range files {
		b, err := os.ReadFile(file)
		if err != nil {
			p.errors.Add(token.Position{Filename: file}, err.Error())
			res = append(res, nil)
			continue
		}

		p.init(fs, file, b)
		res = append(res, p.parseProgram())
	}
	p.errors.Sort()
	return fs, res, p.errors.Err()
}

// ParseFile parses a single file's worth of source, registering it in fset
// under filename, and returns the resulting statements and any error. The
// error, if non-nil, is guaranteed to be a scanner.ErrorList. Used by the
// REPL, which adds one line at a time to a shared fset.
func ParseFile(fset *token.FileSet, filename string, src []byte) ([]ast.Stmt, error) {
	var p parser
	p.init(fset, filename, src)
	stmts := p.parseProgram()
	return stmts, p.errors.Err()
}

// parser parses a token stream into statements, recording errors and
// resynchronizing at statement boundaries rather than aborting on the first
// one.
type parser struct {
	scanner scanner.Scanner
	errors  scanner.ErrorList
	file    *token.File

	tok token.Token
	val token.Value
}

func (p *parser) init(fset *token.FileSet, filename string, src []byte) {
	p.file = fset.AddFile(filename, -1, len(src))
	p.scanner.Init(p.file, src, p.errors.Add)
	p.advance()
}

func (p *parser) advance() {
	p.tok = p.scanner.Scan(&p.val)
}

// errPanicMode is recovered at the declaration level, after which the parser
// resynchronizes by discarding tokens.
var errPanicMode = errors.New("panic")

// expect consumes the current token if it is one of toks and returns its
// position, otherwise it records an error and aborts the current
// declaration via errPanicMode.
func (p *parser) expect(toks ...token.Token) token.Pos {
	pos := p.val.Pos
	for _, tok := range toks {
		if p.tok == tok {
			p.advance()
			return pos
		}
	}

	var buf strings.Builder
	for i, tok := range toks {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(tok.GoString())
	}
	lbl := buf.String()
	if len(toks) > 1 {
		lbl = "one of " + lbl
	}
	p.errorExpected(pos, lbl)
	panic(errPanicMode)
}

// match consumes the current token and returns true if it is tok, otherwise
// it leaves the parser state untouched and returns false.
func (p *parser) match(tok token.Token) bool {
	if p.tok == tok {
		p.advance()
		return true
	}
	return false
}

func (p *parser) error(pos token.Pos, msg string) {
	p.errors.Add(p.file.Position(pos), msg)
}

func (p *parser) errorExpected(pos token.Pos, msg string) {
	msg = "expected " + msg
	if pos == p.val.Pos {
		switch lit := p.tok.Literal(p.val); lit {
		case "":
			msg += ", found " + p.tok.GoString()
		default:
			msg += ", found " + lit
		}
	}
	p.error(pos, msg)
}

// parseProgram implements: program → declaration* EOF
func (p *parser) parseProgram() []ast.Stmt {
	var stmts []ast.Stmt
	for p.tok != token.EOF {
		if s, ok := p.declaration(); ok {
			stmts = append(stmts, s)
		}
	}
	return stmts
}

// declaration recovers from a panic raised by expect, reporting a single
// error per malformed declaration and resynchronizing at the next
// statement boundary. ok is false if the declaration produced no usable
// statement (a parse error was recorded and recovered from).
func (p *parser) declaration() (stmt ast.Stmt, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			if r != errPanicMode {
				panic(r)
			}
			p.synchronize()
			stmt, ok = nil, false
		}
	}()

	switch p.tok {
	case token.CLASS:
		return p.classDecl(), true
	case token.FUN:
		return p.funDecl(), true
	case token.VAR:
		return p.varDecl(), true
	default:
		return p.statement(), true
	}
}

// declStartTokens are the tokens that may legally begin a new declaration;
// synchronize stops discarding tokens as soon as one of these is current.
var declStartTokens = []token.Token{
	token.CLASS, token.FUN, token.VAR, token.FOR, token.IF, token.WHILE, token.PRINT, token.RETURN,
}

// synchronize discards tokens until it has just consumed a ';' or is about
// to consume a statement-starting keyword, so that parsing of the next
// declaration can proceed on a clean boundary.
func (p *parser) synchronize() {
	for p.tok != token.EOF {
		if p.tok == token.SEMICOLON {
			p.advance()
			return
		}
		if slices.Contains(declStartTokens, p.tok) {
			return
		}
		p.advance()
	}
}

const maxArgs = 255
