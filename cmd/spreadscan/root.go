package main

import (
	"context"

	"github.com/spf13/cobra"
)

// Execute wires the subcommands and runs the CLI.
func Execute(ctx context.Context) error {
	root := &cobra.Command{
		Use:   "spreadscan",
		Short: "Options-spread screening and entry decisions",
	}
	root.PersistentFlags().String("config", "", "path to YAML config (defaults used when empty)")
	root.PersistentFlags().String("data-dir", "", "override the snapshot data directory")
	root.PersistentFlags().String("as-of", "", "evaluation date (YYYY-MM-DD, default today)")

	root.AddCommand(evaluateCmd())
	root.AddCommand(scanCmd())
	root.AddCommand(regimeCmd())
	return root.ExecuteContext(ctx)
}
