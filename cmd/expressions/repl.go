package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	expressions "github.com/abatkin/expressions"
)

func replCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive session",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRepl()
		},
	}
}

func runRepl() error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "expr> ",
		HistoryFile:     historyFile(),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return fmt.Errorf("starting readline: %w", err)
	}
	defer rl.Close()

	session := expressions.NewSession(expressions.HostConfig{Stdout: os.Stdout})

	var pending strings.Builder
	for {
		prompt := "expr> "
		if pending.Len() > 0 {
			prompt = "   .. "
		}
		rl.SetPrompt(prompt)

		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			pending.Reset()
			continue
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		pending.WriteString(line)
		pending.WriteString("\n")

		if !balanced(pending.String()) {
			continue
		}

		src := pending.String()
		pending.Reset()
		if strings.TrimSpace(src) == "" {
			continue
		}

		prog, perr := expressions.ParseProgram(src)
		if perr != nil {
			reportErr(perr)
			continue
		}
		if _, err := session.Run(prog.Stmts); err != nil {
			reportErr(err)
		}
	}
}

// balanced reports whether src has no unterminated (), [], or {} nesting,
// so the REPL knows to keep reading continuation lines rather than
// submitting a syntactically incomplete block.
func balanced(src string) bool {
	depth := 0
	inString := false
	var quote byte
	for i := 0; i < len(src); i++ {
		c := src[i]
		if inString {
			if c == '\\' {
				i++
				continue
			}
			if c == quote {
				inString = false
			}
			continue
		}
		switch c {
		case '"', '\'':
			inString = true
			quote = c
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		}
	}
	return depth <= 0
}

func historyFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".expressions_history"
	}
	return home + "/.expressions_history"
}
