package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/calcgate"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of calcgate",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "calcgate version %s\n", strings.TrimSpace(calcgate.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
