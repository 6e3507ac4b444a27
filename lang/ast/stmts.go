package ast

import (
	"fmt"
	"go/token"
)

type (
	// ExpressionStmt represents an expression evaluated for its side effects.
	ExpressionStmt struct {
		Expr Expr
	}

	// PrintStmt represents a "print" statement.
	PrintStmt struct {
		Tok  token.Pos
		Expr Expr
	}

	// VarStmt represents a "var" declaration, with an optional initializer.
	VarStmt struct {
		Tok  token.Pos
		Name *Ident
		Init Expr // nil if not initialized, implicitly nil-valued
	}

	// BlockStmt represents a brace-delimited sequence of statements
	// introducing a new lexical scope.
	BlockStmt struct {
		Lbrace token.Pos
		Stmts  []Stmt
		Rbrace token.Pos
	}

	// IfStmt represents an if/else statement. Else is nil if there is no
	// else branch; it holds a nested *IfStmt for "else if" chains.
	IfStmt struct {
		Tok  token.Pos
		Cond Expr
		Then Stmt
		Else Stmt
	}

	// WhileStmt represents a while loop. A desugared "for" loop is a
	// *WhileStmt whose body is wrapped in a *BlockStmt with the increment
	// clause appended when there is one; when there is an initializer, the
	// loop is itself wrapped in a *BlockStmt after it.
	WhileStmt struct {
		Tok  token.Pos
		Cond Expr
		Body Stmt
	}

	// FunctionStmt represents a function declaration or a method inside a
	// class body.
	FunctionStmt struct {
		Fun    token.Pos // position of "fun", or of the method name if implicit
		Name   *Ident
		Params []*Ident
		Body   []Stmt
		End    token.Pos
	}

	// ReturnStmt represents a return statement. Value is nil for a bare
	// "return;", which evaluates to nil.
	ReturnStmt struct {
		Tok   token.Pos
		Value Expr
	}

	// ClassStmt represents a class declaration, with an optional superclass
	// reference and zero or more methods.
	ClassStmt struct {
		Tok        token.Pos
		Name       *Ident
		Superclass *VariableExpr // nil if no "< Superclass" clause
		Methods    []*FunctionStmt
		End        token.Pos
	}
)

func (n *ExpressionStmt) Format(f fmt.State, verb rune) { format(f, verb, n, "expr stmt", nil) }
func (n *ExpressionStmt) Span() (start, end token.Pos)  { return n.Expr.Span() }
func (n *ExpressionStmt) Walk(v Visitor)                { Walk(v, n.Expr) }
func (n *ExpressionStmt) stmt()                         {}

func (n *PrintStmt) Format(f fmt.State, verb rune) { format(f, verb, n, "print", nil) }
func (n *PrintStmt) Span() (start, end token.Pos) {
	_, end = n.Expr.Span()
	return n.Tok, end
}
func (n *PrintStmt) Walk(v Visitor) { Walk(v, n.Expr) }
func (n *PrintStmt) stmt()          {}

func (n *VarStmt) Format(f fmt.State, verb rune) {
	var init int
	if n.Init != nil {
		init = 1
	}
	format(f, verb, n, "var "+n.Name.Name, map[string]int{"init": init})
}
func (n *VarStmt) Span() (start, end token.Pos) {
	_, end = n.Name.Span()
	if n.Init != nil {
		_, end = n.Init.Span()
	}
	return n.Tok, end
}
func (n *VarStmt) Walk(v Visitor) {
	if n.Init != nil {
		Walk(v, n.Init)
	}
}
func (n *VarStmt) stmt() {}

func (n *BlockStmt) Format(f fmt.State, verb rune) {
	format(f, verb, n, "block", map[string]int{"stmts": len(n.Stmts)})
}
func (n *BlockStmt) Span() (start, end token.Pos) { return n.Lbrace, n.Rbrace + 1 }
func (n *BlockStmt) Walk(v Visitor) {
	for _, s := range n.Stmts {
		Walk(v, s)
	}
}
func (n *BlockStmt) stmt() {}

func (n *IfStmt) Format(f fmt.State, verb rune) {
	lbl := "if"
	if n.Else != nil {
		lbl += " else"
	}
	format(f, verb, n, lbl, nil)
}
func (n *IfStmt) Span() (start, end token.Pos) {
	_, end = n.Then.Span()
	if n.Else != nil {
		_, end = n.Else.Span()
	}
	return n.Tok, end
}
func (n *IfStmt) Walk(v Visitor) {
	Walk(v, n.Cond)
	Walk(v, n.Then)
	if n.Else != nil {
		Walk(v, n.Else)
	}
}
func (n *IfStmt) stmt() {}

func (n *WhileStmt) Format(f fmt.State, verb rune) { format(f, verb, n, "while", nil) }
func (n *WhileStmt) Span() (start, end token.Pos) {
	_, end = n.Body.Span()
	return n.Tok, end
}
func (n *WhileStmt) Walk(v Visitor) {
	Walk(v, n.Cond)
	Walk(v, n.Body)
}
func (n *WhileStmt) stmt() {}

func (n *FunctionStmt) Format(f fmt.State, verb rune) {
	format(f, verb, n, "fun "+n.Name.Name, map[string]int{"params": len(n.Params)})
}
func (n *FunctionStmt) Span() (start, end token.Pos) { return n.Fun, n.End + 1 }
func (n *FunctionStmt) Walk(v Visitor) {
	for _, s := range n.Body {
		Walk(v, s)
	}
}
func (n *FunctionStmt) stmt() {}

func (n *ReturnStmt) Format(f fmt.State, verb rune) {
	var hasVal int
	if n.Value != nil {
		hasVal = 1
	}
	format(f, verb, n, "return", map[string]int{"value": hasVal})
}
func (n *ReturnStmt) Span() (start, end token.Pos) {
	end = n.Tok + token.Pos(len("return"))
	if n.Value != nil {
		_, end = n.Value.Span()
	}
	return n.Tok, end
}
func (n *ReturnStmt) Walk(v Visitor) {
	if n.Value != nil {
		Walk(v, n.Value)
	}
}
func (n *ReturnStmt) stmt() {}

func (n *ClassStmt) Format(f fmt.State, verb rune) {
	var inherits int
	if n.Superclass != nil {
		inherits = 1
	}
	format(f, verb, n, "class "+n.Name.Name, map[string]int{
		"inherits": inherits,
		"methods":  len(n.Methods),
	})
}
func (n *ClassStmt) Span() (start, end token.Pos) { return n.Tok, n.End + 1 }
func (n *ClassStmt) Walk(v Visitor) {
	if n.Superclass != nil {
		Walk(v, n.Superclass)
	}
	for _, m := range n.Methods {
		Walk(v, m)
	}
}
func (n *ClassStmt) stmt() {}
