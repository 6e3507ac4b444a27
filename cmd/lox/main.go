// Command lox is a tree-walking interpreter for the Lox programming
// language: run a script file, or start an interactive REPL when invoked
// with no arguments.
package main

import (
	"os"

	"github.com/mna/mainer"

	"github.com/mna/lox/internal/maincmd"
)

var (
	version   = "{v}"
	buildDate = "{d}"
)

func main() {
	c := maincmd.Cmd{BuildVersion: version, BuildDate: buildDate}
	os.Exit(int(c.Main(os.Args, mainer.CurrentStdio())))
}
