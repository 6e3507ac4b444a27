// Package interp implements the tree-walking evaluator: the runtime value
// universe, the chain of environments that backs closures and scopes, and
// the statement/expression tree walk itself. It consumes the AST produced
// by the parser after the resolver has annotated every variable reference
// with its lexical depth.
package interp

import (
	"fmt"
	"strconv"
	"strings"
)

// Value is the interface implemented by every runtime value the evaluator
// manipulates. It mirrors the teacher's machine.Value: a value need only
// describe itself and its dynamic type, with type-specific behavior (call,
// property access) expressed through additional, narrower interfaces.
type Value interface {
	String() string
	Type() string
}

// String is a Lox string value.
type String string

func (s String) String() string { return string(s) }
func (s String) Type() string   { return "string" }

// Number is a Lox number, always a float64 per the language's single
// numeric type.
type Number float64

func (n Number) String() string {
	// Lox numbers print without a trailing ".0" when they are integral,
	// matching the reference interpreter's formatting.
	s := strconv.FormatFloat(float64(n), 'f', -1, 64)
	return s
}
func (n Number) Type() string { return "number" }

// Bool is a Lox boolean.
type Bool bool

func (b Bool) String() string { return strconv.FormatBool(bool(b)) }
func (b Bool) Type() string   { return "boolean" }

// NilType is the type of Nil. Its only legal value is Nil.
type NilType struct{}

// Nil is the singleton Lox nil value.
var Nil = NilType{}

func (NilType) String() string { return "nil" }
func (NilType) Type() string   { return "nil" }

// noValueType is the internal sentinel produced by evaluating a stray ";"
// expression statement (ast.NoValue). It is never observable by user code;
// the REPL uses it to decide whether to echo a top-level expression's
// result.
type noValueType struct{}

// NoValue is the sentinel Value meaning "this statement produced nothing
// worth displaying".
var NoValue Value = noValueType{}

func (noValueType) String() string { return "" }
func (noValueType) Type() string   { return "no-value" }

// Callable is implemented by any value that may appear as the callee of a
// call expression: user functions, bound methods, classes (as their own
// constructor) and native functions.
type Callable interface {
	Value
	Name() string
	Arity() int
	Call(in *Interp, args []Value) (Value, error)
}

// isTruthy implements Lox truthiness: only Bool(false) and Nil are falsey,
// every other value (including 0 and "") is truthy.
func isTruthy(v Value) bool {
	switch v := v.(type) {
	case NilType:
		return false
	case Bool:
		return bool(v)
	default:
		return true
	}
}

// valuesEqual implements Lox's "==": String/Number compare by value, the
// booleans and nil compare to their own kind, and everything else
// (callables, instances) falls back to identity via the default Go
// equality on the underlying pointer, or false across differing dynamic
// types.
func valuesEqual(a, b Value) bool {
	switch a := a.(type) {
	case String:
		bs, ok := b.(String)
		return ok && a == bs
	case Number:
		bn, ok := b.(Number)
		return ok && a == bn
	case Bool:
		bb, ok := b.(Bool)
		return ok && a == bb
	case NilType:
		_, ok := b.(NilType)
		return ok
	default:
		return a == b
	}
}

// stringify renders v the way "print" and the REPL do: strings print their
// raw text with no quoting, numbers print as their decimal representation,
// booleans as true/false, nil as nil.
func stringify(v Value) string {
	return v.String()
}

// joinTypes is a small helper used when building runtime error messages
// that need to describe the operand types involved.
func joinTypes(vs ...Value) string {
	var b strings.Builder
	for i, v := range vs {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s", v.Type())
	}
	return b.String()
}
