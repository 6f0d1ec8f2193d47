package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/Houeta/scoperival/internal/config"
	"github.com/Houeta/scoperival/internal/repository/sqlite"
	"github.com/Houeta/scoperival/migrations"
	"github.com/spf13/cobra"
)

// NewMigrateCmd creates the command managing the database schema.
func NewMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "migrate [" + strings.Join(migrations.Commands, "|") + "]",
		Short:     "Manage the database schema (default: up)",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: migrations.Commands,
		RunE: func(cmd *cobra.Command, args []string) error {
			command := "up"
			if len(args) == 1 {
				command = args[0]
			}
			if !slices.Contains(migrations.Commands, command) {
				return fmt.Errorf("%w: %s", migrations.ErrUnknownCommand, command)
			}

			cfg := config.MustLoad()

			dtb, err := sqlite.Open(cmd.Context(), cfg.StoragePath)
			if err != nil {
				return err
			}
			defer dtb.Close()

			return migrations.Command(dtb, command, gooseLogger{out: cmd.OutOrStdout()})
		},
	}
}
