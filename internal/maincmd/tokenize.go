package maincmd

import (
	"context"
	"fmt"

	"github.com/mna/mainer"

	"github.com/mna/lox/lang/scanner"
)

// Tokenize scans files and prints the resulting token stream, one token per
// line, as "position kind literal".
func (c *Cmd) Tokenize(ctx context.Context, stdio mainer.Stdio, files []string) error {
	fs, tokensByFile, err := scanner.ScanFiles(ctx, files...)
	for _, toks := range tokensByFile {
		for _, tv := range toks {
			pos := fs.Position(tv.Value.Pos)
			fmt.Fprintf(stdio.Stdout, "%-16s %-12s", pos, tv.Token)
			if lit := tv.Token.Literal(tv.Value); lit != "" {
				fmt.Fprintf(stdio.Stdout, " %s", lit)
			}
			fmt.Fprintln(stdio.Stdout)
		}
	}
	if err != nil {
		scanner.PrintError(stdio.Stderr, err)
		return &exitError{code: 65, err: err}
	}
	return nil
}
