// Package ast defines the types that represent the abstract syntax tree of
// a Lox program: expressions, statements, and the small set of helpers
// (Visitor, Walk, Printer) used to traverse and inspect them.
package ast

import (
	"fmt"
	"go/token"
	"sort"
	"strings"
)

// Node represents any node in the AST.
type Node interface {
	// Every Node implements fmt.Formatter so it can print a description of
	// itself. The only supported verbs are 'v' and 's'. The '#' flag prints
	// count information about children nodes. A width sets the number of
	// runes to print for the node description, padded on the left unless
	// the '-' flag is set (pad right) or '+' is set (no padding, truncate
	// only if longer).
	fmt.Formatter

	// Span reports the start and end position of the node.
	Span() (start, end token.Pos)

	// Walk enters each child node to implement the Visitor pattern.
	Walk(v Visitor)
}

// Expr represents an expression in the AST.
type Expr interface {
	Node
	expr()
}

// Stmt represents a statement in the AST.
type Stmt interface {
	Node
	stmt()
}

// Ident is a bare identifier: a variable, parameter, function or class
// name. It is not itself an Expr - VariableExpr wraps an Ident where an
// identifier is used as an expression.
type Ident struct {
	Name    string
	NamePos token.Pos
}

func (n *Ident) Format(f fmt.State, verb rune) { format(f, verb, n, n.Name, nil) }
func (n *Ident) Span() (start, end token.Pos) {
	return n.NamePos, n.NamePos + token.Pos(len(n.Name))
}
func (n *Ident) Walk(_ Visitor) {}

func format(f fmt.State, verb rune, n Node, label string, counts map[string]int) {
	if verb != 'v' && verb != 's' {
		fmt.Fprintf(f, "%%!%c(%T)", verb, n)
		return
	}

	label = strings.ReplaceAll(label, "\r\n", "⏎")
	label = strings.ReplaceAll(label, "\n", "⏎")
	label = strings.ReplaceAll(label, "\t", "⭾")

	if w, ok := f.Width(); ok {
		minus, plus := f.Flag('-'), f.Flag('+')
		runes := []rune(label)
		switch {
		case len(runes) >= w:
			runes = runes[:w]
		case minus:
			runes = append(runes, []rune(strings.Repeat(" ", w-len(runes)))...)
		case !plus:
			runes = append([]rune(strings.Repeat(" ", w-len(runes))), runes...)
		}
		label = string(runes)
	}

	fmt.Fprint(f, label)
	if f.Flag('#') && len(counts) > 0 {
		keys := make([]string, 0, len(counts))
		for k := range counts {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		fmt.Fprint(f, " {")
		for i, k := range keys {
			if i > 0 {
				fmt.Fprint(f, ", ")
			}
			fmt.Fprintf(f, "%s=%d", k, counts[k])
		}
		fmt.Fprint(f, "}")
	}
}
