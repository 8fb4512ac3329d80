// Command expressions is the CLI front end: run a program file, evaluate a
// single expression, or start an interactive REPL.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
