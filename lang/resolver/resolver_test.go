package resolver_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mna/lox/lang/ast"
	"github.com/mna/lox/lang/resolver"
	"github.com/mna/lox/lang/token"
)

func ident(name string) *ast.Ident { return &ast.Ident{Name: name} }

func varExpr(name string) *ast.VariableExpr {
	return &ast.VariableExpr{Name: ident(name), Depth: ast.UnresolvedDepth}
}

func fset() *token.FileSet {
	fs := token.NewFileSet()
	fs.AddFile("test.lox", -1, 1024)
	return fs
}

// { var a = 1; { var a = a; print a; } }
func TestResolveNestedShadowOwnInitializerError(t *testing.T) {
	innerA := varExpr("a")
	stmts := []ast.Stmt{
		&ast.BlockStmt{Stmts: []ast.Stmt{
			&ast.VarStmt{Name: ident("a"), Init: &ast.LiteralExpr{Value: 1.0}},
			&ast.BlockStmt{Stmts: []ast.Stmt{
				&ast.VarStmt{Name: ident("a"), Init: innerA},
				&ast.PrintStmt{Expr: varExpr("a")},
			}},
		}},
	}

	err := resolver.Resolve(fset(), stmts)
	require.Error(t, err)
	require.Contains(t, err.Error(), "own initializer")
}

func TestResolveLocalDepth(t *testing.T) {
	var use *ast.VariableExpr
	stmts := []ast.Stmt{
		&ast.BlockStmt{Stmts: []ast.Stmt{
			&ast.VarStmt{Name: ident("a"), Init: &ast.LiteralExpr{Value: 1.0}},
			&ast.BlockStmt{Stmts: []ast.Stmt{
				&ast.BlockStmt{Stmts: []ast.Stmt{
					(func() ast.Stmt {
						use = varExpr("a")
						return &ast.PrintStmt{Expr: use}
					})(),
				}},
			}},
		}},
	}

	err := resolver.Resolve(fset(), stmts)
	require.NoError(t, err)
	require.Equal(t, 2, use.Depth)
}

func TestResolveGlobalStaysUnresolved(t *testing.T) {
	use := varExpr("a")
	stmts := []ast.Stmt{
		&ast.VarStmt{Name: ident("a"), Init: &ast.LiteralExpr{Value: 1.0}},
		&ast.PrintStmt{Expr: use},
	}

	err := resolver.Resolve(fset(), stmts)
	require.NoError(t, err)
	require.Equal(t, ast.UnresolvedDepth, use.Depth)
}

func TestResolveDuplicateLocalDeclarationError(t *testing.T) {
	stmts := []ast.Stmt{
		&ast.BlockStmt{Stmts: []ast.Stmt{
			&ast.VarStmt{Name: ident("a")},
			&ast.VarStmt{Name: ident("a")},
		}},
	}

	err := resolver.Resolve(fset(), stmts)
	require.Error(t, err)
	require.Contains(t, err.Error(), "Already a variable with this name in this scope.")
}

func TestResolveReturnOutsideFunctionError(t *testing.T) {
	stmts := []ast.Stmt{
		&ast.ReturnStmt{},
	}

	err := resolver.Resolve(fset(), stmts)
	require.Error(t, err)
	require.Contains(t, err.Error(), "Can't return from top-level code.")
}

func TestResolveReturnValueFromInitializerError(t *testing.T) {
	stmts := []ast.Stmt{
		&ast.ClassStmt{
			Name: ident("Foo"),
			Methods: []*ast.FunctionStmt{
				{Name: ident("init"), Body: []ast.Stmt{
					&ast.ReturnStmt{Value: &ast.LiteralExpr{Value: 1.0}},
				}},
			},
		},
	}

	err := resolver.Resolve(fset(), stmts)
	require.Error(t, err)
	require.Contains(t, err.Error(), "Can't return a value from an initializer.")
}

func TestResolveThisOutsideClassError(t *testing.T) {
	stmts := []ast.Stmt{
		&ast.ExpressionStmt{Expr: &ast.ThisExpr{Depth: ast.UnresolvedDepth}},
	}

	err := resolver.Resolve(fset(), stmts)
	require.Error(t, err)
	require.Contains(t, err.Error(), "Can't use 'this' outside of a class.")
}

func TestResolveSuperWithoutSuperclassError(t *testing.T) {
	stmts := []ast.Stmt{
		&ast.ClassStmt{
			Name: ident("Foo"),
			Methods: []*ast.FunctionStmt{
				{Name: ident("bar"), Body: []ast.Stmt{
					&ast.ExpressionStmt{Expr: &ast.SuperExpr{Method: ident("baz"), Depth: ast.UnresolvedDepth}},
				}},
			},
		},
	}

	err := resolver.Resolve(fset(), stmts)
	require.Error(t, err)
	require.Contains(t, err.Error(), "no superclass")
}

func TestResolveClassInheritsItselfError(t *testing.T) {
	stmts := []ast.Stmt{
		&ast.ClassStmt{
			Name:       ident("Foo"),
			Superclass: &ast.VariableExpr{Name: ident("Foo"), Depth: ast.UnresolvedDepth},
		},
	}

	err := resolver.Resolve(fset(), stmts)
	require.Error(t, err)
	require.Contains(t, err.Error(), "can't inherit from itself")
}

func TestResolveMethodThisDepth(t *testing.T) {
	var this *ast.ThisExpr
	stmts := []ast.Stmt{
		&ast.ClassStmt{
			Name: ident("Foo"),
			Methods: []*ast.FunctionStmt{
				{Name: ident("bar"), Body: []ast.Stmt{
					(func() ast.Stmt {
						this = &ast.ThisExpr{Depth: ast.UnresolvedDepth}
						return &ast.ExpressionStmt{Expr: this}
					})(),
				}},
			},
		},
	}

	err := resolver.Resolve(fset(), stmts)
	require.NoError(t, err)
	require.Equal(t, 1, this.Depth)
}
