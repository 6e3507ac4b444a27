package interp

import (
	"fmt"
	"io"

	"github.com/mna/lox/lang/ast"
	"github.com/mna/lox/lang/token"
)

// Interp is the tree-walking evaluator. It holds the global environment
// (created fresh per run, but reused across REPL lines) and the current
// local environment, which changes as the walk enters and leaves blocks and
// function calls.
type Interp struct {
	globals *Environment
	env     *Environment
	fset    *token.FileSet
	Stdout  io.Writer
}

// New creates an evaluator with a fresh global environment pre-populated
// with the native bindings (clock, File). fset is used only to translate
// token.Pos values into line:column positions when formatting
// RuntimeError; stdout receives the output of "print" and is also where
// the REPL echoes top-level expression results.
func New(fset *token.FileSet, stdout io.Writer) *Interp {
	globals := NewEnvironment(nil)
	defineGlobals(globals)
	return &Interp{globals: globals, env: globals, fset: fset, Stdout: stdout}
}

// Position translates pos into a file:line:column Position for error
// reporting, using the FileSet this Interp was created with.
func (in *Interp) Position(pos token.Pos) token.Position {
	return in.fset.Position(pos)
}

// Run executes stmts in source order against in's environment. It returns
// the value of the last top-level expression statement (or NoValue, for
// any other kind of statement, or if stmts is empty) so that the REPL can
// decide whether to echo it, and the first RuntimeError encountered, if
// any. A genuine controlReturn escaping to this level would mean the
// resolver failed to reject a top-level "return" - Run treats that as a
// runtime error rather than panicking, since it is a defensive
// impossibility rather than an expected outcome.
func (in *Interp) Run(stmts []ast.Stmt) (Value, error) {
	var last Value = NoValue
	for _, stmt := range stmts {
		if expr, ok := stmt.(*ast.ExpressionStmt); ok {
			v, err := in.eval(expr.Expr)
			if err != nil {
				return nil, unwindToError(err)
			}
			last = v
			continue
		}

		if err := in.exec(stmt); err != nil {
			return nil, unwindToError(err)
		}
		last = NoValue
	}
	return last, nil
}

func unwindToError(err error) error {
	if ret, ok := err.(*controlReturn); ok {
		return &RuntimeError{Message: fmt.Sprintf("return used outside of a function call (value: %s)", ret.value)}
	}
	return err
}

func (in *Interp) exec(stmt ast.Stmt) error {
	switch stmt := stmt.(type) {
	case *ast.ExpressionStmt:
		_, err := in.eval(stmt.Expr)
		return err

	case *ast.PrintStmt:
		v, err := in.eval(stmt.Expr)
		if err != nil {
			return err
		}
		fmt.Fprintln(in.Stdout, stringify(v))
		return nil

	case *ast.VarStmt:
		val := Value(Nil)
		if stmt.Init != nil {
			v, err := in.eval(stmt.Init)
			if err != nil {
				return err
			}
			val = v
		}
		in.env.Define(stmt.Name.Name, val)
		return nil

	case *ast.BlockStmt:
		return in.executeBlock(stmt.Stmts, NewEnvironment(in.env))

	case *ast.IfStmt:
		cond, err := in.eval(stmt.Cond)
		if err != nil {
			return err
		}
		switch {
		case isTruthy(cond):
			return in.exec(stmt.Then)
		case stmt.Else != nil:
			return in.exec(stmt.Else)
		default:
			return nil
		}

	case *ast.WhileStmt:
		for {
			cond, err := in.eval(stmt.Cond)
			if err != nil {
				return err
			}
			if !isTruthy(cond) {
				return nil
			}
			if err := in.exec(stmt.Body); err != nil {
				return err
			}
		}

	case *ast.FunctionStmt:
		in.env.Define(stmt.Name.Name, &Function{Declaration: stmt, Closure: in.env})
		return nil

	case *ast.ReturnStmt:
		val := Value(Nil)
		if stmt.Value != nil {
			v, err := in.eval(stmt.Value)
			if err != nil {
				return err
			}
			val = v
		}
		return &controlReturn{value: val}

	case *ast.ClassStmt:
		return in.execClassStmt(stmt)

	default:
		panic(fmt.Sprintf("interp: unexpected stmt %T", stmt))
	}
}

// executeBlock runs stmts against env, restoring the previously current
// environment on the way out regardless of how execution ended (normal
// completion, a RuntimeError, or a controlReturn unwinding through).
func (in *Interp) executeBlock(stmts []ast.Stmt, env *Environment) error {
	previous := in.env
	in.env = env
	defer func() { in.env = previous }()

	for _, s := range stmts {
		if err := in.exec(s); err != nil {
			return err
		}
	}
	return nil
}

func (in *Interp) execClassStmt(stmt *ast.ClassStmt) error {
	var super *Class
	if stmt.Superclass != nil {
		v, err := in.eval(stmt.Superclass)
		if err != nil {
			return err
		}
		sc, ok := v.(*Class)
		if !ok {
			return newRuntimeError(stmt.Superclass.Name.NamePos, "Superclass must be a class.")
		}
		super = sc
	}

	// The class name is declared (as nil) before its methods are built so a
	// method that captures its own class's closure sees a binding already in
	// scope; it is assigned its real value only once the Class is complete.
	in.env.Define(stmt.Name.Name, Nil)

	methodsEnv := in.env
	if super != nil {
		methodsEnv = NewEnvironment(in.env)
		methodsEnv.Define("super", super)
	}

	methods := make(map[string]Method, len(stmt.Methods))
	for _, m := range stmt.Methods {
		methods[m.Name.Name] = &Function{
			Declaration:   m,
			Closure:       methodsEnv,
			IsInitializer: m.Name.Name == "init",
		}
	}

	class := &Class{ClassName: stmt.Name.Name, Superclass: super, Methods: methods}
	in.env.Assign(stmt.Name.Name, class)
	return nil
}

func (in *Interp) eval(expr ast.Expr) (Value, error) {
	switch expr := expr.(type) {
	case *ast.LiteralExpr:
		return literalValue(expr), nil

	case *ast.GroupingExpr:
		return in.eval(expr.Expr)

	case *ast.UnaryExpr:
		return in.evalUnary(expr)

	case *ast.BinaryExpr:
		return in.evalBinary(expr)

	case *ast.LogicalExpr:
		return in.evalLogical(expr)

	case *ast.VariableExpr:
		return in.lookUpVariable(expr.Name.Name, expr.Depth, expr.Name.NamePos)

	case *ast.AssignExpr:
		return in.evalAssign(expr)

	case *ast.CallExpr:
		return in.evalCall(expr)

	case *ast.GetExpr:
		return in.evalGet(expr)

	case *ast.SetExpr:
		return in.evalSet(expr)

	case *ast.ThisExpr:
		return in.lookUpVariable("this", expr.Depth, expr.Tok)

	case *ast.SuperExpr:
		return in.evalSuper(expr)

	default:
		panic(fmt.Sprintf("interp: unexpected expr %T", expr))
	}
}

func literalValue(lit *ast.LiteralExpr) Value {
	if lit.Value == ast.NoValue {
		return NoValue
	}
	switch v := lit.Value.(type) {
	case nil:
		return Nil
	case bool:
		return Bool(v)
	case float64:
		return Number(v)
	case string:
		return String(v)
	default:
		return Nil
	}
}

func (in *Interp) evalUnary(expr *ast.UnaryExpr) (Value, error) {
	right, err := in.eval(expr.Right)
	if err != nil {
		return nil, err
	}
	switch expr.Op {
	case token.BANG:
		return Bool(!isTruthy(right)), nil
	case token.MINUS:
		n, ok := right.(Number)
		if !ok {
			return nil, newRuntimeError(expr.OpPos, "Operand must be a number.")
		}
		return -n, nil
	default:
		panic(fmt.Sprintf("interp: unexpected unary operator %v", expr.Op))
	}
}

func (in *Interp) evalBinary(expr *ast.BinaryExpr) (Value, error) {
	left, err := in.eval(expr.Left)
	if err != nil {
		return nil, err
	}
	right, err := in.eval(expr.Right)
	if err != nil {
		return nil, err
	}

	switch expr.Op {
	case token.MINUS, token.STAR, token.SLASH:
		ln, lok := left.(Number)
		rn, rok := right.(Number)
		if !lok || !rok {
			return nil, newRuntimeError(expr.OpPos, "Operands must be numbers (got %s).", joinTypes(left, right))
		}
		switch expr.Op {
		case token.MINUS:
			return ln - rn, nil
		case token.STAR:
			return ln * rn, nil
		default: // token.SLASH
			return ln / rn, nil
		}

	case token.PLUS:
		if ln, lok := left.(Number); lok {
			if rn, rok := right.(Number); rok {
				return ln + rn, nil
			}
		}
		if ls, lok := left.(String); lok {
			if rs, rok := right.(String); rok {
				return ls + rs, nil
			}
		}
		return nil, newRuntimeError(expr.OpPos, "Operands must be two numbers or two strings (got %s).", joinTypes(left, right))

	case token.GT, token.GE, token.LT, token.LE:
		ln, lok := left.(Number)
		rn, rok := right.(Number)
		if !lok || !rok {
			return nil, newRuntimeError(expr.OpPos, "Operands must be numbers (got %s).", joinTypes(left, right))
		}
		switch expr.Op {
		case token.GT:
			return Bool(ln > rn), nil
		case token.GE:
			return Bool(ln >= rn), nil
		case token.LT:
			return Bool(ln < rn), nil
		default: // token.LE
			return Bool(ln <= rn), nil
		}

	case token.EQEQ:
		return Bool(valuesEqual(left, right)), nil
	case token.BANGEQ:
		return Bool(!valuesEqual(left, right)), nil

	default:
		panic(fmt.Sprintf("interp: unexpected binary operator %v", expr.Op))
	}
}

func (in *Interp) evalLogical(expr *ast.LogicalExpr) (Value, error) {
	left, err := in.eval(expr.Left)
	if err != nil {
		return nil, err
	}
	if expr.Op == token.OR {
		if isTruthy(left) {
			return left, nil
		}
	} else {
		if !isTruthy(left) {
			return left, nil
		}
	}
	return in.eval(expr.Right)
}

func (in *Interp) lookUpVariable(name string, depth int, pos token.Pos) (Value, error) {
	if depth == ast.UnresolvedDepth {
		v, ok := in.globals.Get(name)
		if !ok {
			return nil, newRuntimeError(pos, "Undefined variable '%s'.", name)
		}
		return v, nil
	}
	v, ok := in.env.GetAt(depth, name)
	if !ok {
		return nil, newRuntimeError(pos, "Undefined variable '%s'.", name)
	}
	return v, nil
}

func (in *Interp) evalAssign(expr *ast.AssignExpr) (Value, error) {
	v, err := in.eval(expr.Value)
	if err != nil {
		return nil, err
	}

	ok := false
	if expr.Depth == ast.UnresolvedDepth {
		ok = in.globals.Assign(expr.Name.Name, v)
	} else {
		ok = in.env.AssignAt(expr.Depth, expr.Name.Name, v)
	}
	if !ok {
		return nil, newRuntimeError(expr.Name.NamePos, "Undefined variable '%s'.", expr.Name.Name)
	}
	return v, nil
}

func (in *Interp) evalCall(expr *ast.CallExpr) (Value, error) {
	calleeVal, err := in.eval(expr.Callee)
	if err != nil {
		return nil, err
	}

	args := make([]Value, len(expr.Args))
	for i, a := range expr.Args {
		v, err := in.eval(a)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}

	callable, ok := calleeVal.(Callable)
	if !ok {
		return nil, newRuntimeError(expr.Paren, "Can only call functions and classes.")
	}
	if len(args) != callable.Arity() {
		return nil, newRuntimeError(expr.Paren, "Expected %d arguments but got %d.", callable.Arity(), len(args))
	}
	return callable.Call(in, args)
}

func (in *Interp) evalGet(expr *ast.GetExpr) (Value, error) {
	objVal, err := in.eval(expr.Object)
	if err != nil {
		return nil, err
	}
	inst, ok := objVal.(*Instance)
	if !ok {
		return nil, newRuntimeError(expr.Name.NamePos, "Only instances have properties.")
	}
	v, err := inst.Get(expr.Name.Name)
	if err != nil {
		return nil, newRuntimeError(expr.Name.NamePos, "%s", err)
	}
	return v, nil
}

func (in *Interp) evalSet(expr *ast.SetExpr) (Value, error) {
	objVal, err := in.eval(expr.Object)
	if err != nil {
		return nil, err
	}
	inst, ok := objVal.(*Instance)
	if !ok {
		return nil, newRuntimeError(expr.Name.NamePos, "Only instances have fields.")
	}
	v, err := in.eval(expr.Value)
	if err != nil {
		return nil, err
	}
	inst.Set(expr.Name.Name, v)
	return v, nil
}

func (in *Interp) evalSuper(expr *ast.SuperExpr) (Value, error) {
	superVal, ok := in.env.GetAt(expr.Depth, "super")
	if !ok {
		return nil, newRuntimeError(expr.Tok, "Undefined variable 'super'.")
	}
	super, ok := superVal.(*Class)
	if !ok {
		return nil, newRuntimeError(expr.Tok, "'super' is not bound to a class.")
	}

	thisVal, ok := in.env.GetAt(expr.Depth-1, "this")
	if !ok {
		return nil, newRuntimeError(expr.Tok, "Undefined variable 'this'.")
	}
	this, ok := thisVal.(*Instance)
	if !ok {
		return nil, newRuntimeError(expr.Tok, "'this' is not bound to an instance.")
	}

	method := super.FindMethod(expr.Method.Name)
	if method == nil {
		return nil, newRuntimeError(expr.Method.NamePos, "Undefined property '%s'.", expr.Method.Name)
	}
	return method.Bind(this), nil
}
