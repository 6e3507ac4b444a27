// Package maincmd implements the lox command-line entrypoint: argument
// parsing and dispatch, the REPL, running a script file, and the debug
// subcommands (tokenize/parse/resolve) that print one pipeline phase's
// intermediate result. Everything here is glue over the lang/* packages,
// per spec.md §1's framing of the CLI as a thin external collaborator.
package maincmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/mna/mainer"
)

const binName = "lox"

var (
	shortUsage = fmt.Sprintf("usage: %s [file]\n", binName)

	longUsage = fmt.Sprintf(`usage: %s [file]
       %[1]s -h|--help
       %[1]s -v|--version
       %[1]s tokenize|parse|resolve <file>...

Tree-walking interpreter for the Lox programming language.

With no arguments, %[1]s starts an interactive REPL. With exactly one
argument, it is read as a path and run as a script.

The <command> can be one of the debug subcommands, which run a single
pipeline phase over one or more files and print its intermediate result
instead of evaluating the program:
       tokenize <file>...        Run the scanner and print the resulting
                                 tokens.
       parse <file>...           Run the scanner and parser and print the
                                 resulting syntax tree.
       resolve <file>...         Run the scanner, parser and resolver and
                                 print the syntax tree with child counts
                                 (resolution depths are not printed).

Valid flag options are:
       -h --help                 Show this help and exit.
       -v --version              Print version and exit.
`, binName)
)

// debugCommands names the first positional argument values that select a
// single-phase debug subcommand rather than a script path.
var debugCommands = map[string]bool{"tokenize": true, "parse": true, "resolve": true}

type Cmd struct {
	BuildVersion string
	BuildDate    string

	Help    bool `flag:"h,help"`
	Version bool `flag:"v,version"`

	args  []string
	cmdFn func(context.Context, mainer.Stdio, []string) error
}

func (c *Cmd) SetArgs(args []string) {
	c.args = args
}

func (c *Cmd) SetFlags(map[string]bool) {}

// Validate resolves c.args into exactly one of: the REPL (no args), a
// script to run (one arg, not a debug command name), a debug subcommand
// (first arg names one, with at least one file following), or a usage
// error (anything else - notably two or more plain file arguments, which
// spec.md §6 does not define a combined-run mode for).
func (c *Cmd) Validate() error {
	if c.Help || c.Version {
		return nil
	}

	switch {
	case len(c.args) == 0:
		c.cmdFn = c.REPL
		return nil

	case debugCommands[c.args[0]]:
		if len(c.args[1:]) == 0 {
			return fmt.Errorf("%s: at least one file must be provided", c.args[0])
		}
		cmds := buildCmds(c)
		c.cmdFn = cmds[c.args[0]]
		return nil

	case len(c.args) == 1:
		c.cmdFn = c.RunFile
		return nil

	default:
		return errors.New("usage: lox [file]")
	}
}

func (c *Cmd) Main(args []string, stdio mainer.Stdio) mainer.ExitCode {
	p := mainer.Parser{
		EnvVars:   false,
		EnvPrefix: binName + "_",
	}
	if err := p.Parse(args, c); err != nil {
		fmt.Fprintf(stdio.Stderr, "invalid arguments: %s\n%s", err, shortUsage)
		return mainer.InvalidArgs
	}

	switch {
	case c.Help:
		fmt.Fprint(stdio.Stdout, longUsage)
		return mainer.Success

	case c.Version:
		fmt.Fprintf(stdio.Stdout, "%s %s %s\n", binName, c.BuildVersion, c.BuildDate)
		return mainer.Success
	}

	fileArgs := c.args
	if len(c.args) > 0 && debugCommands[c.args[0]] {
		fileArgs = c.args[1:]
	}

	ctx := mainer.CancelOnSignal(context.Background(), os.Interrupt)
	if err := c.cmdFn(ctx, stdio, fileArgs); err != nil {
		var ee *exitError
		if errors.As(err, &ee) {
			return ee.code
		}
		return mainer.Failure
	}
	return mainer.Success
}

// exitError pairs an error with the process exit code it should map to,
// per spec.md §6: 65 for a scan/parse/resolve error, 70 for a runtime
// error that aborted a script.
type exitError struct {
	code mainer.ExitCode
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

// buildCmds mirrors the teacher's reflection-based dispatch: any exported
// method on v matching the (context.Context, mainer.Stdio, []string) error
// signature is registered under its lowercased name.
func buildCmds(v interface{}) map[string]func(context.Context, mainer.Stdio, []string) error {
	cmds := make(map[string]func(context.Context, mainer.Stdio, []string) error)

	vv := reflect.ValueOf(v)
	vt := vv.Type()
	for i := 0; i < vt.NumMethod(); i++ {
		m := vt.Method(i)
		mt := m.Type

		if mt.NumIn() != 4 || mt.NumOut() != 1 {
			continue
		}
		if rt := mt.Out(0); rt.Kind() != reflect.Interface || rt.Name() != "error" {
			continue
		}
		if p1 := mt.In(1); p1.Kind() != reflect.Interface || p1.Name() != "Context" {
			continue
		}
		if p2 := mt.In(2); p2.Kind() != reflect.Struct || p2.Name() != "Stdio" {
			continue
		}
		if p3 := mt.In(3); p3.Kind() != reflect.Slice || p3.Elem().Name() != "string" {
			continue
		}
		cmds[strings.ToLower(m.Name)] = vv.Method(i).Interface().(func(context.Context, mainer.Stdio, []string) error)
	}
	return cmds
}
