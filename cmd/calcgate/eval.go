package main

import (
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/aretw0/calcgate"
	"github.com/aretw0/calcgate/internal/cli"
)

var evalCmd = &cobra.Command{
	Use:   "eval [expression]",
	Short: "Evaluate expressions from the command line",
	Long: `With an argument, evaluates it once and prints the JSON outcome.
Without one, reads expressions from stdin: an interactive prompt on a terminal,
one JSON line per input line otherwise.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		app, err := cli.Build(ctx, cfg)
		if err != nil {
			return err
		}
		defer app.Close()

		if len(args) > 0 {
			outcome, err := app.Calculator.Calculate(ctx, strings.Join(args, " "))
			if err != nil {
				return err
			}
			return cli.WriteOutcome(cmd.OutOrStdout(), outcome)
		}

		return cli.RunREPL(ctx, app.Calculator, cli.REPLOptions{
			In:          cmd.InOrStdin(),
			Out:         cmd.OutOrStdout(),
			Interactive: term.IsTerminal(int(os.Stdin.Fd())),
			Version:     calcgate.Version,
			Journal:     app.Journal,
		})
	},
}

func init() {
	rootCmd.AddCommand(evalCmd)
}
