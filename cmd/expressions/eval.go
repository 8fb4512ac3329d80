package main

import (
	"fmt"
	"os"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	expressions "github.com/abatkin/expressions"
	"github.com/abatkin/expressions/value"
)

func noGlobals(name string) (value.Value, bool) { return nil, false }

func evalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eval <expr>",
		Short: "Evaluate a single expression and print its result",
		Long: heredoc.Doc(`
			Evaluate a single expression against the builtin registry and
			print the as_str_lossy rendering of the result.

			No program-level variables are bound; only globals such as
			len, type, and the built-in string/list/dict members are in
			scope. Use "run" for statements, assignment, and functions.
		`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			expr, err := expressions.ParseExpression(args[0])
			if err != nil {
				reportErr(err)
				os.Exit(1)
			}
			v, err := expressions.EvaluateExpression(expr, noGlobals)
			if err != nil {
				reportErr(err)
				os.Exit(1)
			}
			fmt.Println(v)
			return nil
		},
	}
	return cmd
}
