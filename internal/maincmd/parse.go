package maincmd

import (
	"context"

	"github.com/mna/mainer"

	"github.com/mna/lox/lang/ast"
	"github.com/mna/lox/lang/parser"
	"github.com/mna/lox/lang/scanner"
)

// Parse scans and parses files and pretty-prints the resulting syntax tree,
// one top-level statement at a time, in source order per file.
func (c *Cmd) Parse(ctx context.Context, stdio mainer.Stdio, files []string) error {
	fs, stmtsByFile, err := parser.ParseFiles(ctx, files...)

	printer := ast.Printer{Output: stdio.Stdout, Positions: true, Fset: fs}
	for _, stmts := range stmtsByFile {
		for _, s := range stmts {
			if perr := printer.Print(s); perr != nil {
				return perr
			}
		}
	}

	if err != nil {
		scanner.PrintError(stdio.Stderr, err)
		return &exitError{code: 65, err: err}
	}
	return nil
}
