package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"appsuite-be/internal/config"
)

// Cfg is loaded once before any subcommand runs.
var Cfg *config.Config

var RootCmd = &cobra.Command{
	Use:   "appsuite",
	Short: "Small web apps: URL shorteners, notes, regex tester and name statistics.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		Cfg = config.Load()
	},
	SilenceUsage: true,
}

func Execute() {
	if err := RootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
