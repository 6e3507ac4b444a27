package interp

import (
	"fmt"

	"github.com/mna/lox/lang/token"
)

// RuntimeError is the error raised by the tree walk itself: a type
// mismatch, an undefined variable, a non-callable callee, an arity
// mismatch, and so on. It carries the position of the expression or
// statement that triggered it so the driver can format
// "[line N] Error: message" per spec.md §6.
type RuntimeError struct {
	Pos     token.Pos
	Message string
}

func (e *RuntimeError) Error() string { return e.Message }

func newRuntimeError(pos token.Pos, format string, args ...interface{}) error {
	return &RuntimeError{Pos: pos, Message: fmt.Sprintf(format, args...)}
}

// controlReturn is the typed, internal unwind used to implement "return":
// it carries the return value up through any number of active blocks,
// loops and ifs, to be caught by the enclosing Function.Call. It must
// never escape to user-visible error reporting; Interp.Run turns one that
// reaches the top level into a RuntimeError.
type controlReturn struct {
	value Value
}

func (c *controlReturn) Error() string { return "return outside of a function call" }
