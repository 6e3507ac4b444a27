package token

import "go/token"

// Positions are represented with the standard library's go/token machinery
// rather than a parallel implementation: Pos is an opaque, comparable offset
// into a FileSet, File tracks line boundaries for one source file to turn a
// Pos into a line:column Position, and FileSet holds the set of Files making
// up a scan/parse/resolve run.
type (
	Pos      = token.Pos
	Position = token.Position
	File     = token.File
	FileSet  = token.FileSet
)

// NoPos is the zero Pos, denoting an unknown or absent position.
const NoPos = token.NoPos

// NewFileSet creates a new, empty FileSet.
func NewFileSet() *FileSet { return token.NewFileSet() }

// Value holds the payload that accompanies a scanned token: its raw source
// text, the position it starts at, and - for NUMBER and STRING tokens - the
// parsed value.
type Value struct {
	Raw   string
	Pos   Pos
	Float float64
	String string
}
