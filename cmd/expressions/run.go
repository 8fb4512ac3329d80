package main

import (
	"fmt"
	"os"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"

	expressions "github.com/abatkin/expressions"
	"github.com/abatkin/expressions/lexer"
)

func runCmd() *cobra.Command {
	var inline string

	cmd := &cobra.Command{
		Use:   "run [file]",
		Short: "Execute an expressions-language program",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := sourceFrom(args, inline)
			if err != nil {
				return err
			}

			if _, lexErr := lexer.Tokenize(src); lexErr != nil {
				if merr, ok := lexErr.(*multierror.Error); ok {
					for _, e := range merr.Errors {
						log.Debugf("lexical diagnostic: %v", e)
					}
				}
			}

			prog, err := expressions.ParseProgram(src)
			if err != nil {
				reportErr(err)
				os.Exit(1)
			}

			_, err = expressions.RunProgram(prog, expressions.HostConfig{Stdout: os.Stdout})
			if err != nil {
				reportErr(err)
				os.Exit(1)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&inline, "expr", "e", "", "run a program given directly on the command line")
	return cmd
}

func sourceFrom(args []string, inline string) (string, error) {
	if inline != "" {
		return inline, nil
	}
	if len(args) == 1 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", args[0], err)
		}
		return string(data), nil
	}
	return "", fmt.Errorf("run requires a file argument or -e")
}
