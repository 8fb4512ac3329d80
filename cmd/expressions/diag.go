package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/abatkin/expressions/interp"
	"github.com/abatkin/expressions/parser"
)

// reportErr renders err to stderr, colorizing the error kind (followed by
// the line number and message, uncolored) the way the teacher's own test
// harness colorized reference-vs-actual diffs — repurposed here for runtime
// diagnostics instead of test output.
func reportErr(err error) {
	switch e := err.(type) {
	case *parser.ParseError:
		color.New(color.FgRed, color.Bold).Fprintf(os.Stderr, "parse error")
		fmt.Fprintf(os.Stderr, " (line %d): %s\n", e.Line, e.Message)
	case *interp.Error:
		color.New(color.FgRed, color.Bold).Fprintf(os.Stderr, e.Kind.String())
		fmt.Fprintf(os.Stderr, " (line %d): %s\n", e.Line, e.Message)
	default:
		color.New(color.FgRed).Fprintln(os.Stderr, err.Error())
	}
}
