package main

import (
	"github.com/sirupsen/logrus"
	easy "github.com/t-tomalak/logrus-easy-formatter"
	"github.com/spf13/cobra"
)

var log = logrus.New()

var verbose bool

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "expressions",
		Short: "Run and evaluate expressions-language programs",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			log.SetFormatter(&easy.Formatter{LogFormat: "[%lvl%] %msg%\n"})
			if verbose {
				log.SetLevel(logrus.DebugLevel)
			} else {
				log.SetLevel(logrus.WarnLevel)
			}
		},
	}
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log each lexical diagnostic found by run")

	cmd.AddCommand(runCmd())
	cmd.AddCommand(evalCmd())
	cmd.AddCommand(replCmd())
	return cmd
}
