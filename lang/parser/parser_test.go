package parser_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mna/lox/internal/difftest"
	"github.com/mna/lox/lang/ast"
	"github.com/mna/lox/lang/parser"
	"github.com/mna/lox/lang/token"
)

func printTree(t *testing.T, stmts []ast.Stmt) string {
	t.Helper()

	var buf bytes.Buffer
	printer := ast.Printer{Output: &buf}
	for _, s := range stmts {
		require.NoError(t, printer.Print(s))
	}
	return buf.String()
}

func TestParseExpressionStatement(t *testing.T) {
	fs := token.NewFileSet()
	stmts, err := parser.ParseFile(fs, "test.lox", []byte(`1 + 2 * 3;`))
	require.NoError(t, err)

	difftest.Text(t, "tree", ""+
		"expr stmt\n"+
		". binary '+'\n"+
		". . number literal 1\n"+
		". . binary '*'\n"+
		". . . number literal 2\n"+
		". . . number literal 3\n",
		printTree(t, stmts))
}

func TestParseVarDeclAndBlock(t *testing.T) {
	fs := token.NewFileSet()
	stmts, err := parser.ParseFile(fs, "test.lox", []byte(`
var a = 1;
{
  print a;
}
`))
	require.NoError(t, err)

	difftest.Text(t, "tree", ""+
		"var a\n"+
		". number literal 1\n"+
		"block\n"+
		". print\n"+
		". . a\n",
		printTree(t, stmts))
}

func TestParseClassWithSuperclass(t *testing.T) {
	fs := token.NewFileSet()
	stmts, err := parser.ParseFile(fs, "test.lox", []byte(`
class B < A {
  hi() { return 1; }
}
`))
	require.NoError(t, err)

	difftest.Text(t, "tree", ""+
		"class B\n"+
		". A\n"+
		". fun hi\n"+
		". . return\n"+
		". . . number literal 1\n",
		printTree(t, stmts))
}

func TestParseForLoopDesugarsToWhile(t *testing.T) {
	fs := token.NewFileSet()
	stmts, err := parser.ParseFile(fs, "test.lox", []byte(`for (var i = 0; i < 3; i = i + 1) print i;`))
	require.NoError(t, err)
	require.Len(t, stmts, 1)

	block, ok := stmts[0].(*ast.BlockStmt)
	require.True(t, ok, "desugared for-loop must wrap the init clause and the while loop in a block")
	require.Len(t, block.Stmts, 2)

	_, ok = block.Stmts[0].(*ast.VarStmt)
	require.True(t, ok)
	_, ok = block.Stmts[1].(*ast.WhileStmt)
	require.True(t, ok)
}

func TestParseMissingSemicolonIsReported(t *testing.T) {
	fs := token.NewFileSet()
	_, err := parser.ParseFile(fs, "test.lox", []byte(`var a = 1`))
	require.Error(t, err)
	require.Contains(t, err.Error(), "expected ';'")
}

func TestParseSynchronizesAfterError(t *testing.T) {
	fs := token.NewFileSet()
	stmts, err := parser.ParseFile(fs, "test.lox", []byte(`
var a = ;
print 1;
`))
	require.Error(t, err)
	require.Len(t, stmts, 1)
	_, ok := stmts[0].(*ast.PrintStmt)
	require.True(t, ok, "parser must resynchronize at the next statement after a malformed declaration")
}

func TestParseTooManyArgumentsIsReported(t *testing.T) {
	fs := token.NewFileSet()
	var b bytes.Buffer
	b.WriteString("f(")
	for i := 0; i < 256; i++ {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString("1")
	}
	b.WriteString(");")

	_, err := parser.ParseFile(fs, "test.lox", b.Bytes())
	require.Error(t, err)
	require.Contains(t, err.Error(), "255 arguments")
}
