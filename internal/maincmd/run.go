package maincmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/mna/mainer"

	"github.com/mna/lox/lang/interp"
	"github.com/mna/lox/lang/parser"
	"github.com/mna/lox/lang/resolver"
	"github.com/mna/lox/lang/scanner"
	"github.com/mna/lox/lang/token"
)

// RunFile reads files[0], evaluates it start to finish and returns once the
// program terminates. A scan or parse or resolve failure is reported and
// mapped to exit code 65; a runtime error is reported and mapped to 70.
func (c *Cmd) RunFile(ctx context.Context, stdio mainer.Stdio, files []string) error {
	path := files[0]
	src, err := os.ReadFile(path)
	if err != nil {
		return &exitError{code: mainer.InvalidArgs, err: err}
	}

	fs := token.NewFileSet()
	stmts, perr := parser.ParseFile(fs, path, src)
	if perr != nil {
		scanner.PrintError(stdio.Stderr, perr)
		return &exitError{code: 65, err: perr}
	}
	if rerr := resolver.Resolve(fs, stmts); rerr != nil {
		scanner.PrintError(stdio.Stderr, rerr)
		return &exitError{code: 65, err: rerr}
	}

	in := interp.New(fs, stdio.Stdout)
	if _, err := in.Run(stmts); err != nil {
		reportRuntimeError(stdio.Stderr, in, err)
		return &exitError{code: 70, err: err}
	}
	return nil
}

// REPL reads one line at a time from stdio.Stdin, evaluating each against a
// single Interp whose global environment persists across lines. It shows
// the "> " prompt when stdin is a terminal, and echoes the value of a line's
// last statement when that statement is an expression statement whose value
// is not NoValue; earlier statements on the same line are not echoed. A
// scan/parse/resolve error or a runtime error is reported to stderr but
// does not end the session; only EOF on stdin does.
func (c *Cmd) REPL(ctx context.Context, stdio mainer.Stdio, _ []string) error {
	fs := token.NewFileSet()
	in := interp.New(fs, stdio.Stdout)

	// The prompt is only useful when a human is typing at a terminal; piping
	// a script through stdin should not have "> " interleaved into its output.
	prompt := isInteractive(stdio.Stdin)

	lines := bufio.NewScanner(stdio.Stdin)
	for {
		if prompt {
			fmt.Fprint(stdio.Stdout, "> ")
		}
		if !lines.Scan() {
			return lines.Err()
		}

		stmts, perr := parser.ParseFile(fs, "<stdin>", []byte(lines.Text()))
		if perr != nil {
			scanner.PrintError(stdio.Stderr, perr)
			continue
		}
		if rerr := resolver.Resolve(fs, stmts); rerr != nil {
			scanner.PrintError(stdio.Stderr, rerr)
			continue
		}

		v, err := in.Run(stmts)
		if err != nil {
			reportRuntimeError(stdio.Stderr, in, err)
			continue
		}
		if v != interp.NoValue {
			fmt.Fprintln(stdio.Stdout, v)
		}
	}
}

// isInteractive reports whether r is a terminal, so the REPL's "> " prompt
// can be suppressed when stdin is a pipe or a redirected file.
func isInteractive(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func reportRuntimeError(w io.Writer, in *interp.Interp, err error) {
	if rerr, ok := err.(*interp.RuntimeError); ok {
		fmt.Fprintf(w, "[line %d] Error: %s\n", in.Position(rerr.Pos).Line, rerr.Message)
		return
	}
	fmt.Fprintln(w, err)
}
