package ast

import (
	"fmt"
	"go/token"
	"io"
	"strings"
)

// Printer controls pretty-printing of AST nodes, used by the debug
// "parse"/"resolve" CLI subcommands to inspect the tree produced by a phase.
type Printer struct {
	// Output is the io.Writer to print to.
	Output io.Writer

	// Positions, if true, prints each node's start:end source position
	// alongside its description. Fset must then be non-nil.
	Positions bool
	Fset      *token.FileSet

	// NodeFmt is the format string used to print the node description. The
	// verb must be 's' or 'v'; width, '#' and '-' are supported as described
	// on Node.Format. Defaults to "%v".
	NodeFmt string
}

// Print pretty-prints n, walking its children with indentation.
func (p *Printer) Print(n Node) error {
	nodeFmt := p.NodeFmt
	if nodeFmt == "" {
		nodeFmt = "%v"
	}
	pp := &printer{w: p.Output, positions: p.Positions, fset: p.Fset, nodeFmt: nodeFmt}
	Walk(pp, n)
	return pp.err
}

type printer struct {
	w         io.Writer
	positions bool
	fset      *token.FileSet
	nodeFmt   string
	depth     int
	err       error
}

func (p *printer) Visit(n Node, dir VisitDirection) Visitor {
	if dir == VisitExit || p.err != nil {
		p.depth--
		return nil
	}

	p.depth++
	p.printNode(n, p.depth-1)
	return p
}

func (p *printer) printNode(n Node, indent int) {
	if p.err != nil {
		return
	}

	format := "%s"
	args := []interface{}{strings.Repeat(". ", indent)}
	if p.positions && p.fset != nil {
		start, end := n.Span()
		format += "[%s:%s] "
		args = append(args, p.fset.Position(start).String(), p.fset.Position(end).String())
	}
	format += p.nodeFmt + "\n"
	args = append(args, n)

	_, p.err = fmt.Fprintf(p.w, format, args...)
}
