package interp

import "github.com/dolthub/swiss"

// Environment is a mutable name-to-value mapping with an optional link to
// an enclosing environment, forming the chain that backs lexical scoping
// and closures. Lookups by depth (computed ahead of time by the resolver)
// walk a fixed number of enclosing links rather than searching by name,
// which is what lets a closure keep observing the binding captured at its
// definition site even after a same-named local shadows it later.
//
// Bindings are stored in a github.com/dolthub/swiss.Map rather than a
// built-in map: every variable read and write in a running program goes
// through Environment, making it the hottest map in the evaluator.
type Environment struct {
	values    *swiss.Map[string, Value]
	enclosing *Environment
}

// NewEnvironment creates an environment enclosed by enclosing, or a
// top-level (global) environment if enclosing is nil.
func NewEnvironment(enclosing *Environment) *Environment {
	return &Environment{values: swiss.NewMap[string, Value](8), enclosing: enclosing}
}

// Define binds name to v in the innermost (this) environment, overwriting
// any existing binding for name in this frame. Used for both "var"
// declarations and function/class declarations.
func (e *Environment) Define(name string, v Value) {
	e.values.Put(name, v)
}

// Get looks up name directly in this environment, without considering any
// enclosing environment. Used for global lookups, where the evaluator
// holds a direct reference to the global environment rather than walking a
// chain.
func (e *Environment) Get(name string) (Value, bool) {
	return e.values.Get(name)
}

// Assign rebinds an existing name directly in this environment. It reports
// false, changing nothing, if name is not already bound here.
func (e *Environment) Assign(name string, v Value) bool {
	if !e.values.Has(name) {
		return false
	}
	e.values.Put(name, v)
	return true
}

// ancestor walks distance enclosing links outward from e.
func (e *Environment) ancestor(distance int) *Environment {
	env := e
	for i := 0; i < distance; i++ {
		env = env.enclosing
	}
	return env
}

// GetAt looks up name in the environment distance hops out from e.
func (e *Environment) GetAt(distance int, name string) (Value, bool) {
	return e.ancestor(distance).Get(name)
}

// AssignAt rebinds name in the environment distance hops out from e. It
// reports false if name is not already bound there.
func (e *Environment) AssignAt(distance int, name string, v Value) bool {
	return e.ancestor(distance).Assign(name, v)
}
