// Package resolver implements the static analysis pass that runs between
// parsing and evaluation. It walks the AST once, maintaining a stack of
// lexical scopes, and annotates every variable reference, assignment,
// "this" and "super" expression with the number of enclosing environments
// to walk up to find its binding at runtime (ast.UnresolvedDepth for names
// that must be looked up in the global environment).
//
// It also enforces the static errors the grammar alone cannot catch: a
// local variable used in its own initializer, a return outside a function,
// a return with a value from an initializer, and this/super used outside
// the scope that makes them meaningful.
package resolver

import (
	"context"
	"fmt"

	"github.com/mna/lox/lang/ast"
	"github.com/mna/lox/lang/scanner"
	"github.com/mna/lox/lang/token"
)

// functionType tracks what kind of function body the resolver is currently
// inside, to validate "return" and to distinguish a class initializer.
type functionType int

const (
	fnNone functionType = iota
	fnFunction
	fnMethod
	fnInitializer
)

// classType tracks what kind of class body the resolver is currently
// inside, to validate "this" and "super".
type classType int

const (
	classNone classType = iota
	classClass
	classSubclass
)

// ResolveFiles resolves the bindings used across the given statement lists,
// one per file, mutating the AST in place. The returned error, if non-nil,
// is a scanner.ErrorList.
func ResolveFiles(ctx context.Context, fset *token.FileSet, stmtsByFile [][]ast.Stmt, files []string) error {
	if len(stmtsByFile) == 0 {
		return nil
	}

	var r resolver
	for i, stmts := range stmtsByFile {
		var name string
		if i < len(files) {
			name = files[i]
		}
		r.file = fset.File(firstPos(stmts))
		r.fileName = name
		r.scopes = nil
		r.fn = fnNone
		r.cls = classNone
		r.resolveStmts(stmts)
	}
	r.errors.Sort()
	return r.errors.Err()
}

func firstPos(stmts []ast.Stmt) token.Pos {
	if len(stmts) == 0 {
		return token.NoPos
	}
	start, _ := stmts[0].Span()
	return start
}

// Resolve resolves a single file's statements in isolation, for use by the
// script runner, the REPL and tests.
func Resolve(fset *token.FileSet, stmts []ast.Stmt) error {
	return ResolveFiles(context.Background(), fset, [][]ast.Stmt{stmts}, nil)
}

type resolver struct {
	file     *token.File
	fileName string
	errors   scanner.ErrorList

	// scopes is the stack of block scopes currently open, innermost last.
	// The implicit top-level (global) scope is never pushed here: a name
	// that resolves to no entry in scopes is a global, looked up by name at
	// runtime rather than by depth.
	scopes []map[string]bool

	fn  functionType
	cls classType
}

func (r *resolver) errorf(pos token.Pos, format string, args ...interface{}) {
	position := token.Position{}
	if r.file != nil {
		position = r.file.Position(pos)
	}
	r.errors.Add(position, fmt.Sprintf(format, args...))
}

func (r *resolver) beginScope() {
	r.scopes = append(r.scopes, map[string]bool{})
}

func (r *resolver) endScope() {
	r.scopes = r.scopes[:len(r.scopes)-1]
}

func (r *resolver) declare(name *ast.Ident) {
	if len(r.scopes) == 0 {
		return
	}
	scope := r.scopes[len(r.scopes)-1]
	if _, ok := scope[name.Name]; ok {
		r.errorf(name.NamePos, "Already a variable with this name in this scope.")
		return
	}
	scope[name.Name] = false
}

func (r *resolver) define(name *ast.Ident) {
	if len(r.scopes) == 0 {
		return
	}
	r.scopes[len(r.scopes)-1][name.Name] = true
}

// resolveLocal computes the depth of name, walking the scope stack from the
// innermost scope outward, and calls setDepth with it. If name isn't found
// in any open scope, setDepth is not called and the reference is left at
// its default UnresolvedDepth (global).
func (r *resolver) resolveLocal(name string, setDepth func(depth int)) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if _, ok := r.scopes[i][name]; ok {
			setDepth(len(r.scopes) - 1 - i)
			return
		}
	}
}

func (r *resolver) resolveStmts(stmts []ast.Stmt) {
	for _, s := range stmts {
		r.resolveStmt(s)
	}
}

func (r *resolver) resolveStmt(stmt ast.Stmt) {
	switch stmt := stmt.(type) {
	case *ast.BlockStmt:
		r.beginScope()
		r.resolveStmts(stmt.Stmts)
		r.endScope()

	case *ast.ClassStmt:
		r.resolveClassStmt(stmt)

	case *ast.ExpressionStmt:
		r.resolveExpr(stmt.Expr)

	case *ast.FunctionStmt:
		r.declare(stmt.Name)
		r.define(stmt.Name)
		r.resolveFunction(stmt, fnFunction)

	case *ast.IfStmt:
		r.resolveExpr(stmt.Cond)
		r.resolveStmt(stmt.Then)
		if stmt.Else != nil {
			r.resolveStmt(stmt.Else)
		}

	case *ast.PrintStmt:
		r.resolveExpr(stmt.Expr)

	case *ast.ReturnStmt:
		if r.fn == fnNone {
			r.errorf(stmt.Tok, "Can't return from top-level code.")
		}
		if stmt.Value != nil {
			if r.fn == fnInitializer {
				r.errorf(stmt.Tok, "Can't return a value from an initializer.")
			}
			r.resolveExpr(stmt.Value)
		}

	case *ast.VarStmt:
		r.declare(stmt.Name)
		if stmt.Init != nil {
			r.resolveExpr(stmt.Init)
		}
		r.define(stmt.Name)

	case *ast.WhileStmt:
		r.resolveExpr(stmt.Cond)
		r.resolveStmt(stmt.Body)

	default:
		panic(fmt.Sprintf("resolver: unexpected stmt %T", stmt))
	}
}

func (r *resolver) resolveClassStmt(stmt *ast.ClassStmt) {
	enclosingClass := r.cls
	r.cls = classClass

	r.declare(stmt.Name)
	r.define(stmt.Name)

	if stmt.Superclass != nil {
		if stmt.Superclass.Name.Name == stmt.Name.Name {
			r.errorf(stmt.Superclass.Name.NamePos, "A class can't inherit from itself.")
		}
		r.cls = classSubclass
		r.resolveExpr(stmt.Superclass)

		r.beginScope()
		r.scopes[len(r.scopes)-1]["super"] = true
	}

	r.beginScope()
	r.scopes[len(r.scopes)-1]["this"] = true

	for _, m := range stmt.Methods {
		decl := fnMethod
		if m.Name.Name == "init" {
			decl = fnInitializer
		}
		r.resolveFunction(m, decl)
	}

	r.endScope()
	if stmt.Superclass != nil {
		r.endScope()
	}

	r.cls = enclosingClass
}

func (r *resolver) resolveFunction(fn *ast.FunctionStmt, kind functionType) {
	enclosingFn := r.fn
	r.fn = kind

	r.beginScope()
	for _, p := range fn.Params {
		r.declare(p)
		r.define(p)
	}
	r.resolveStmts(fn.Body)
	r.endScope()

	r.fn = enclosingFn
}

func (r *resolver) resolveExpr(expr ast.Expr) {
	switch expr := expr.(type) {
	case *ast.AssignExpr:
		r.resolveExpr(expr.Value)
		r.resolveLocal(expr.Name.Name, func(d int) { expr.Depth = d })

	case *ast.BinaryExpr:
		r.resolveExpr(expr.Left)
		r.resolveExpr(expr.Right)

	case *ast.CallExpr:
		r.resolveExpr(expr.Callee)
		for _, a := range expr.Args {
			r.resolveExpr(a)
		}

	case *ast.GetExpr:
		r.resolveExpr(expr.Object)

	case *ast.GroupingExpr:
		r.resolveExpr(expr.Expr)

	case *ast.LiteralExpr:
		// nothing to resolve

	case *ast.LogicalExpr:
		r.resolveExpr(expr.Left)
		r.resolveExpr(expr.Right)

	case *ast.SetExpr:
		r.resolveExpr(expr.Value)
		r.resolveExpr(expr.Object)

	case *ast.SuperExpr:
		if r.cls == classNone {
			r.errorf(expr.Tok, "Can't use 'super' outside of a class.")
		} else if r.cls != classSubclass {
			r.errorf(expr.Tok, "Can't use 'super' in a class with no superclass.")
		}
		r.resolveLocal("super", func(d int) { expr.Depth = d })

	case *ast.ThisExpr:
		if r.cls == classNone {
			r.errorf(expr.Tok, "Can't use 'this' outside of a class.")
		}
		r.resolveLocal("this", func(d int) { expr.Depth = d })

	case *ast.UnaryExpr:
		r.resolveExpr(expr.Right)

	case *ast.VariableExpr:
		if len(r.scopes) > 0 {
			if defined, ok := r.scopes[len(r.scopes)-1][expr.Name.Name]; ok && !defined {
				r.errorf(expr.Name.NamePos, "Can't read local variable in its own initializer.")
			}
		}
		r.resolveLocal(expr.Name.Name, func(d int) { expr.Depth = d })

	default:
		panic(fmt.Sprintf("resolver: unexpected expr %T", expr))
	}
}
