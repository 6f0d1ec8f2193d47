package main

import (
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command. Configuration is read from SR_* environment variables.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scoperival",
		Short: "Competitor website change monitor",
		Long: `Scoperival tracks pages of competitor websites, detects content changes
and asks a language model what each change means strategically.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewScanCmd())
	cmd.AddCommand(NewDiscoverCmd())
	cmd.AddCommand(NewMigrateCmd())

	return cmd
}
