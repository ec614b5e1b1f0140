package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/calcgate/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "calcgate",
	Short: "calcgate puts an HTTP API in front of a command line calculator",
	Long: `calcgate accepts arithmetic expressions over HTTP (or MCP, or the command line),
hands each one to a calculator process and returns the first "Result:" it prints as JSON.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	pf := rootCmd.PersistentFlags()
	pf.StringP("config", "c", "", "YAML configuration file")
	pf.String("log-level", "", "Log level: debug, info, warn, error")
	pf.String("log-format", "", "Log format: text or json")
	pf.String("evaluator", "", "Evaluator kind: process, expr or static")
	pf.String("command", "", "Calculator executable for the process evaluator (default ./calculator)")
	pf.StringSlice("arg", nil, "Argument passed to the calculator executable (repeatable)")
	pf.Duration("timeout", 0, "Per-evaluation timeout; 0 waits for the calculator forever")
	pf.String("journal", "", "Journal kind: none, memory or redis")
	pf.String("redis-addr", "", "Redis address for the redis journal")
}

// loadConfig reads the config file and applies every flag the user set explicitly.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.LogLevel, _ = flags.GetString("log-level")
	}
	if flags.Changed("log-format") {
		cfg.LogFormat, _ = flags.GetString("log-format")
	}
	if flags.Changed("evaluator") {
		cfg.Evaluator.Kind, _ = flags.GetString("evaluator")
	}
	if flags.Changed("command") {
		cfg.Evaluator.Command, _ = flags.GetString("command")
	}
	if flags.Changed("arg") {
		cfg.Evaluator.Args, _ = flags.GetStringSlice("arg")
	}
	if flags.Changed("timeout") {
		cfg.Evaluator.Timeout, _ = flags.GetDuration("timeout")
	}
	if flags.Changed("journal") {
		cfg.Journal.Kind, _ = flags.GetString("journal")
	}
	if flags.Changed("redis-addr") {
		cfg.Journal.RedisAddr, _ = flags.GetString("redis-addr")
	}
	return cfg, cfg.Validate()
}
