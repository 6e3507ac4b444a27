// Package difftest provides a small diff-based assertion used by the lang/*
// package tests to compare generated output (pretty-printed tokens, trees,
// or error text) against an inline expected string, instead of a
// field-by-field struct comparison that would make the diff's exact shape
// hard to read.
package difftest

import (
	"testing"

	"github.com/kylelemons/godebug/diff"
)

// Text fails the test and logs a unified diff if got does not match want
// exactly. label is included in the failure message to identify which of a
// test's several outputs (tokens, tree, errors) disagreed.
func Text(t *testing.T, label, want, got string) {
	t.Helper()

	if patch := diff.Diff(want, got); patch != "" {
		t.Errorf("diff %s:\n%s\n", label, patch)
	}
}
