package ast

import (
	"fmt"
	"go/token"

	loxtoken "github.com/mna/lox/lang/token"
)

// UnresolvedDepth is the sentinel Depth value the parser assigns to a
// VariableExpr, AssignExpr, ThisExpr or SuperExpr before the resolver runs.
// After resolution it is replaced by the number of environments to walk up
// to find the binding, or left unresolved (global) at -1.
const UnresolvedDepth = -1

// NoValue is the sentinel LiteralExpr.Value used for a stray ";" statement:
// an expression statement whose expression produces no value, distinct from
// a literal "nil".
var NoValue = new(struct{})

type (
	// LiteralExpr represents a number, string, true, false or nil literal.
	LiteralExpr struct {
		Tok   loxtoken.Token // NUMBER, STRING, TRUE, FALSE or NIL
		Start token.Pos
		Raw   string      // uninterpreted source text
		Value interface{} // float64 | string | bool | nil
	}

	// GroupingExpr represents a parenthesized expression.
	GroupingExpr struct {
		Lparen token.Pos
		Expr   Expr
		Rparen token.Pos
	}

	// UnaryExpr represents a unary operator expression, e.g. -4 or !ok.
	UnaryExpr struct {
		Op    loxtoken.Token // MINUS or BANG
		OpPos token.Pos
		Right Expr
	}

	// BinaryExpr represents a binary arithmetic, comparison or equality
	// expression, e.g. x + y.
	BinaryExpr struct {
		Left  Expr
		Op    loxtoken.Token
		OpPos token.Pos
		Right Expr
	}

	// LogicalExpr represents a short-circuiting "and"/"or" expression.
	LogicalExpr struct {
		Left  Expr
		Op    loxtoken.Token // AND or OR
		OpPos token.Pos
		Right Expr
	}

	// VariableExpr represents a reference to a variable by name.
	VariableExpr struct {
		Name *Ident

		// Depth is filled by the resolver: the number of enclosing environments
		// to walk up to find the binding, or UnresolvedDepth if it must be
		// looked up in the global environment.
		Depth int
	}

	// AssignExpr represents an assignment to a variable, e.g. x = 1.
	AssignExpr struct {
		Name   *Ident
		Equals token.Pos
		Value  Expr

		// Depth is filled by the resolver, same meaning as VariableExpr.Depth.
		Depth int
	}

	// CallExpr represents a function or method call, e.g. f(a, b).
	CallExpr struct {
		Callee Expr
		Paren  token.Pos // position of the closing ')', used for runtime errors
		Args   []Expr
	}

	// GetExpr represents a property access, e.g. obj.field.
	GetExpr struct {
		Object Expr
		Dot    token.Pos
		Name   *Ident
	}

	// SetExpr represents a property assignment, e.g. obj.field = 1.
	SetExpr struct {
		Object Expr
		Dot    token.Pos
		Name   *Ident
		Value  Expr
	}

	// ThisExpr represents a "this" expression inside a method body.
	ThisExpr struct {
		Tok token.Pos

		// Depth is filled by the resolver, same meaning as VariableExpr.Depth.
		Depth int
	}

	// SuperExpr represents a "super.method" expression inside a subclass
	// method body.
	SuperExpr struct {
		Tok    token.Pos
		Dot    token.Pos
		Method *Ident

		// Depth is filled by the resolver, same meaning as VariableExpr.Depth.
		Depth int
	}
)

func (n *LiteralExpr) Format(f fmt.State, verb rune) {
	format(f, verb, n, n.Tok.String()+" "+n.Raw, nil)
}
func (n *LiteralExpr) Span() (start, end token.Pos) {
	return n.Start, n.Start + token.Pos(len(n.Raw))
}
func (n *LiteralExpr) Walk(_ Visitor) {}
func (n *LiteralExpr) expr()          {}

func (n *GroupingExpr) Format(f fmt.State, verb rune) { format(f, verb, n, "(expr)", nil) }
func (n *GroupingExpr) Span() (start, end token.Pos) {
	return n.Lparen, n.Rparen + 1
}
func (n *GroupingExpr) Walk(v Visitor) { Walk(v, n.Expr) }
func (n *GroupingExpr) expr()          {}

func (n *UnaryExpr) Format(f fmt.State, verb rune) {
	format(f, verb, n, "unary "+n.Op.GoString(), nil)
}
func (n *UnaryExpr) Span() (start, end token.Pos) {
	_, end = n.Right.Span()
	return n.OpPos, end
}
func (n *UnaryExpr) Walk(v Visitor) { Walk(v, n.Right) }
func (n *UnaryExpr) expr()          {}

func (n *BinaryExpr) Format(f fmt.State, verb rune) {
	format(f, verb, n, "binary "+n.Op.GoString(), nil)
}
func (n *BinaryExpr) Span() (start, end token.Pos) {
	start, _ = n.Left.Span()
	_, end = n.Right.Span()
	return start, end
}
func (n *BinaryExpr) Walk(v Visitor) {
	Walk(v, n.Left)
	Walk(v, n.Right)
}
func (n *BinaryExpr) expr() {}

func (n *LogicalExpr) Format(f fmt.State, verb rune) {
	format(f, verb, n, "logical "+n.Op.String(), nil)
}
func (n *LogicalExpr) Span() (start, end token.Pos) {
	start, _ = n.Left.Span()
	_, end = n.Right.Span()
	return start, end
}
func (n *LogicalExpr) Walk(v Visitor) {
	Walk(v, n.Left)
	Walk(v, n.Right)
}
func (n *LogicalExpr) expr() {}

func (n *VariableExpr) Format(f fmt.State, verb rune) { format(f, verb, n, n.Name.Name, nil) }
func (n *VariableExpr) Span() (start, end token.Pos)  { return n.Name.Span() }
func (n *VariableExpr) Walk(_ Visitor)                {}
func (n *VariableExpr) expr()                         {}

func (n *AssignExpr) Format(f fmt.State, verb rune) {
	format(f, verb, n, "assign "+n.Name.Name, nil)
}
func (n *AssignExpr) Span() (start, end token.Pos) {
	start, _ = n.Name.Span()
	_, end = n.Value.Span()
	return start, end
}
func (n *AssignExpr) Walk(v Visitor) { Walk(v, n.Value) }
func (n *AssignExpr) expr()          {}

func (n *CallExpr) Format(f fmt.State, verb rune) {
	format(f, verb, n, "call", map[string]int{"args": len(n.Args)})
}
func (n *CallExpr) Span() (start, end token.Pos) {
	start, _ = n.Callee.Span()
	return start, n.Paren + 1
}
func (n *CallExpr) Walk(v Visitor) {
	Walk(v, n.Callee)
	for _, a := range n.Args {
		Walk(v, a)
	}
}
func (n *CallExpr) expr() {}

func (n *GetExpr) Format(f fmt.State, verb rune) { format(f, verb, n, "expr."+n.Name.Name, nil) }
func (n *GetExpr) Span() (start, end token.Pos) {
	start, _ = n.Object.Span()
	_, end = n.Name.Span()
	return start, end
}
func (n *GetExpr) Walk(v Visitor) { Walk(v, n.Object) }
func (n *GetExpr) expr()          {}

func (n *SetExpr) Format(f fmt.State, verb rune) { format(f, verb, n, "expr."+n.Name.Name+"=", nil) }
func (n *SetExpr) Span() (start, end token.Pos) {
	start, _ = n.Object.Span()
	_, end = n.Value.Span()
	return start, end
}
func (n *SetExpr) Walk(v Visitor) {
	Walk(v, n.Object)
	Walk(v, n.Value)
}
func (n *SetExpr) expr() {}

func (n *ThisExpr) Format(f fmt.State, verb rune) { format(f, verb, n, "this", nil) }
func (n *ThisExpr) Span() (start, end token.Pos) {
	return n.Tok, n.Tok + token.Pos(len("this"))
}
func (n *ThisExpr) Walk(_ Visitor) {}
func (n *ThisExpr) expr()          {}

func (n *SuperExpr) Format(f fmt.State, verb rune) {
	format(f, verb, n, "super."+n.Method.Name, nil)
}
func (n *SuperExpr) Span() (start, end token.Pos) {
	_, end = n.Method.Span()
	return n.Tok, end
}
func (n *SuperExpr) Walk(_ Visitor) {}
func (n *SuperExpr) expr()          {}
