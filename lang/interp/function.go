package interp

import (
	"fmt"

	"github.com/mna/lox/lang/ast"
)

// Method is implemented by anything storable in a Class's method table: a
// user-declared Function, or a NativeMethod backing an optional native
// class such as File. Binding bridges the method's defining shape to a
// concrete receiver.
type Method interface {
	Bind(recv *Instance) Callable
}

// Function is a user function: a closure pairing the function's AST
// declaration with the environment chain in force at its definition site.
// The same representation backs top-level functions, methods (unbound) and
// bound methods (closure extended with a one-entry "this" frame).
type Function struct {
	Declaration   *ast.FunctionStmt
	Closure       *Environment
	IsInitializer bool
}

var (
	_ Value    = (*Function)(nil)
	_ Callable = (*Function)(nil)
	_ Method   = (*Function)(nil)
)

func (f *Function) String() string { return fmt.Sprintf("<fn %s>", f.Name()) }
func (f *Function) Type() string   { return "function" }
func (f *Function) Name() string   { return f.Declaration.Name.Name }
func (f *Function) Arity() int     { return len(f.Declaration.Params) }

// Bind produces a fresh function sharing the same declaration and kind,
// whose closure is a new one-entry frame {"this": recv} layered on top of
// the method's own closure. The fresh frame is created per bind, so two
// instances of the same class never share a "this" binding.
func (f *Function) Bind(recv *Instance) Callable {
	env := NewEnvironment(f.Closure)
	env.Define("this", recv)
	return &Function{Declaration: f.Declaration, Closure: env, IsInitializer: f.IsInitializer}
}

// Call executes the function body in a fresh environment enclosed by the
// function's closure, with each parameter bound to its argument.
func (f *Function) Call(in *Interp, args []Value) (Value, error) {
	env := NewEnvironment(f.Closure)
	for i, p := range f.Declaration.Params {
		env.Define(p.Name, args[i])
	}

	err := in.executeBlock(f.Declaration.Body, env)
	if ret, ok := err.(*controlReturn); ok {
		if f.IsInitializer {
			return f.boundThis(), nil
		}
		return ret.value, nil
	}
	if err != nil {
		return nil, err
	}
	if f.IsInitializer {
		return f.boundThis(), nil
	}
	return Nil, nil
}

// boundThis returns the receiver a bound initializer was called on: the
// "this" binding one frame up from the call's fresh frame, i.e. at depth 0
// relative to the closure itself.
func (f *Function) boundThis() Value {
	v, _ := f.Closure.Get("this")
	return v
}
