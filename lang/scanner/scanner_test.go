package scanner_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mna/lox/lang/scanner"
	"github.com/mna/lox/lang/token"
)

func scanAll(t *testing.T, src string) ([]scanner.TokenAndValue, []string) {
	t.Helper()

	var (
		s      scanner.Scanner
		tokVal token.Value
		toks   []scanner.TokenAndValue
		errs   []string
	)

	fs := token.NewFileSet()
	f := fs.AddFile("test.lox", -1, len(src))
	s.Init(f, []byte(src), func(pos token.Position, msg string) {
		errs = append(errs, msg)
	})
	for {
		tok := s.Scan(&tokVal)
		toks = append(toks, scanner.TokenAndValue{Token: tok, Value: tokVal})
		if tok == token.EOF {
			break
		}
	}
	return toks, errs
}

func kinds(toks []scanner.TokenAndValue) []token.Token {
	out := make([]token.Token, len(toks))
	for i, tv := range toks {
		out[i] = tv.Token
	}
	return out
}

func TestScanPunctuationAndOperators(t *testing.T) {
	toks, errs := scanAll(t, `(){},.-+;*/ ! != = == < <= > >=`)
	require.Empty(t, errs)
	require.Equal(t, []token.Token{
		token.LPAREN, token.RPAREN, token.LBRACE, token.RBRACE, token.COMMA,
		token.DOT, token.MINUS, token.PLUS, token.SEMICOLON, token.STAR,
		token.SLASH, token.BANG, token.BANGEQ, token.EQ, token.EQEQ,
		token.LT, token.LE, token.GT, token.GE, token.EOF,
	}, kinds(toks))
}

func TestScanLineComment(t *testing.T) {
	toks, errs := scanAll(t, "1 // a comment\n2")
	require.Empty(t, errs)
	require.Equal(t, []token.Token{token.NUMBER, token.NUMBER, token.EOF}, kinds(toks))
	require.Equal(t, "1", toks[0].Value.Raw)
	require.Equal(t, "2", toks[1].Value.Raw)
}

func TestScanNumbers(t *testing.T) {
	toks, errs := scanAll(t, `123 123.45 0.5`)
	require.Empty(t, errs)
	require.Equal(t, []token.Token{token.NUMBER, token.NUMBER, token.NUMBER, token.EOF}, kinds(toks))
	require.Equal(t, 123.0, toks[0].Value.Float)
	require.Equal(t, 123.45, toks[1].Value.Float)
	require.Equal(t, 0.5, toks[2].Value.Float)
}

func TestScanNumberTrailingDotNotConsumed(t *testing.T) {
	toks, errs := scanAll(t, `123.`)
	require.Empty(t, errs)
	require.Equal(t, []token.Token{token.NUMBER, token.DOT, token.EOF}, kinds(toks))
	require.Equal(t, "123", toks[0].Value.Raw)
}

func TestScanString(t *testing.T) {
	toks, errs := scanAll(t, `"hello world"`)
	require.Empty(t, errs)
	require.Equal(t, []token.Token{token.STRING, token.EOF}, kinds(toks))
	require.Equal(t, "hello world", toks[0].Value.String)
	require.Equal(t, `"hello world"`, toks[0].Value.Raw)
}

func TestScanMultilineString(t *testing.T) {
	toks, errs := scanAll(t, "\"a\nb\"")
	require.Empty(t, errs)
	require.Equal(t, token.STRING, toks[0].Token)
	require.Equal(t, "a\nb", toks[0].Value.String)
}

func TestScanUnterminatedString(t *testing.T) {
	_, errs := scanAll(t, `"abc`)
	require.Len(t, errs, 1)
	require.Contains(t, errs[0], "unterminated string")
}

func TestScanIdentifiersAndKeywords(t *testing.T) {
	toks, errs := scanAll(t, `and class else false for fun if nil or print return super this true var while foo _bar1`)
	require.Empty(t, errs)
	require.Equal(t, []token.Token{
		token.AND, token.CLASS, token.ELSE, token.FALSE, token.FOR, token.FUN,
		token.IF, token.NIL, token.OR, token.PRINT, token.RETURN, token.SUPER,
		token.THIS, token.TRUE, token.VAR, token.WHILE,
		token.IDENT, token.IDENT, token.EOF,
	}, kinds(toks))
}

func TestScanIllegalCharacter(t *testing.T) {
	toks, errs := scanAll(t, `@`)
	require.Len(t, errs, 1)
	require.Equal(t, token.ILLEGAL, toks[0].Token)
}
