package maincmd

import (
	"context"

	"github.com/mna/mainer"

	"github.com/mna/lox/lang/ast"
	"github.com/mna/lox/lang/parser"
	"github.com/mna/lox/lang/resolver"
	"github.com/mna/lox/lang/scanner"
)

// Resolve scans, parses and resolves files, then pretty-prints the syntax
// tree with the '#' child-count details. The resolved scope depths written
// onto the tree are not printed.
func (c *Cmd) Resolve(ctx context.Context, stdio mainer.Stdio, files []string) error {
	fs, stmtsByFile, err := parser.ParseFiles(ctx, files...)
	if err != nil {
		scanner.PrintError(stdio.Stderr, err)
		return &exitError{code: 65, err: err}
	}

	if rerr := resolver.ResolveFiles(ctx, fs, stmtsByFile, files); rerr != nil {
		scanner.PrintError(stdio.Stderr, rerr)
		return &exitError{code: 65, err: rerr}
	}

	printer := ast.Printer{Output: stdio.Stdout, Positions: true, Fset: fs, NodeFmt: "%#v"}
	for _, stmts := range stmtsByFile {
		for _, s := range stmts {
			if perr := printer.Print(s); perr != nil {
				return perr
			}
		}
	}
	return nil
}
