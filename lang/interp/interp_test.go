package interp_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mna/lox/lang/interp"
	"github.com/mna/lox/lang/parser"
	"github.com/mna/lox/lang/resolver"
	"github.com/mna/lox/lang/token"
)

// run parses, resolves and evaluates src, returning stdout and any error
// from any of the three phases.
func run(t *testing.T, src string) (string, error) {
	t.Helper()

	fs := token.NewFileSet()
	stmts, err := parser.ParseFile(fs, "test.lox", []byte(src))
	if err != nil {
		return "", err
	}
	if err := resolver.Resolve(fs, stmts); err != nil {
		return "", err
	}

	var buf bytes.Buffer
	in := interp.New(fs, &buf)
	_, err = in.Run(stmts)
	return buf.String(), err
}

func TestArithmeticPrecedence(t *testing.T) {
	out, err := run(t, `print 1 + 2 * 3;`)
	require.NoError(t, err)
	require.Equal(t, "7\n", out)
}

func TestStringConcatenationAndComparison(t *testing.T) {
	out, err := run(t, `print "a" + "b"; print 1 < 2;`)
	require.NoError(t, err)
	require.Equal(t, "ab\ntrue\n", out)
}

func TestClosureCapturesVariableNotValue(t *testing.T) {
	out, err := run(t, `
var a = "global";
{
  fun showA() { print a; }
  showA();
  var a = "block";
  showA();
}
`)
	require.NoError(t, err)
	require.Equal(t, "global\nglobal\n", out)
}

func TestFibonacciRecursion(t *testing.T) {
	out, err := run(t, `fun fib(n){ if (n<2) return n; return fib(n-1)+fib(n-2);} print fib(10);`)
	require.NoError(t, err)
	require.Equal(t, "55\n", out)
}

func TestClassInitAndMethod(t *testing.T) {
	out, err := run(t, `class A { init(x){this.x=x;} get(){return this.x;} } print A(7).get();`)
	require.NoError(t, err)
	require.Equal(t, "7\n", out)
}

func TestInheritanceWithSuper(t *testing.T) {
	out, err := run(t, `class A { hi(){ return "A"; } } class B < A { hi(){ return super.hi() + "B"; } } print B().hi();`)
	require.NoError(t, err)
	require.Equal(t, "AB\n", out)
}

func TestSelfReferentialInitializerRejected(t *testing.T) {
	fs := token.NewFileSet()
	stmts, err := parser.ParseFile(fs, "test.lox", []byte(`{ var a = a; }`))
	require.NoError(t, err)

	err = resolver.Resolve(fs, stmts)
	require.Error(t, err)
	require.Contains(t, err.Error(), "own initializer")
}

func TestReturnOutsideFunctionRejected(t *testing.T) {
	fs := token.NewFileSet()
	stmts, err := parser.ParseFile(fs, "test.lox", []byte(`return 1;`))
	require.NoError(t, err)

	err = resolver.Resolve(fs, stmts)
	require.Error(t, err)
	require.Contains(t, err.Error(), "return from top-level")
}

func TestDivisionByZeroFollowsIEEE754(t *testing.T) {
	out, err := run(t, `print 1 / 0; print -1 / 0; print 0 / 0;`)
	require.NoError(t, err)
	require.Equal(t, "+Inf\n-Inf\nNaN\n", out)
}

func TestForLoopDesugaring(t *testing.T) {
	out, err := run(t, `
var sum = 0;
for (var i = 0; i < 5; i = i + 1) {
  sum = sum + i;
}
print sum;
`)
	require.NoError(t, err)
	require.Equal(t, "10\n", out)
}

func TestUndefinedVariableIsRuntimeError(t *testing.T) {
	_, err := run(t, `print nope;`)
	require.Error(t, err)
	require.Contains(t, err.Error(), "Undefined variable")
}

func TestPropertyAccessOnNonInstanceIsRuntimeError(t *testing.T) {
	_, err := run(t, `var x = 1; print x.y;`)
	require.Error(t, err)
	require.Contains(t, err.Error(), "Only instances have properties")
}

func TestFieldShadowsMethod(t *testing.T) {
	out, err := run(t, `
class Box { get() { return "method"; } }
var b = Box();
b.get = "field";
print b.get;
`)
	require.NoError(t, err)
	require.Equal(t, "field\n", out)
}
