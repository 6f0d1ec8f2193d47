package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Houeta/scoperival/internal/config"
	"github.com/spf13/cobra"
)

var ErrEmptyOwner = errors.New("--owner is required")

type scanOutput struct {
	Message      string `json:"message"`
	PagesScanned int    `json:"pages_scanned"`
	PagesSkipped int    `json:"pages_skipped"`
	Changes      any    `json:"changes"`
}

// NewScanCmd creates the command scanning one competitor once.
func NewScanCmd() *cobra.Command {
	var owner string

	cmd := &cobra.Command{
		Use:   "scan <competitor-id>",
		Short: "Scan all tracked pages of a competitor once",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if owner == "" {
				return ErrEmptyOwner
			}

			cfg := config.MustLoad()
			logger := setupLogger(cfg.Env, cmd.ErrOrStderr())

			application, err := newApp(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			defer application.Close()

			result, err := application.competitors.Scan(cmd.Context(), owner, args[0])
			if err != nil {
				return fmt.Errorf("scan failed: %w", err)
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")

			return enc.Encode(scanOutput{
				Message:      result.Message(),
				PagesScanned: result.PagesScanned,
				PagesSkipped: result.PagesSkipped,
				Changes:      result.Changes,
			})
		},
	}

	cmd.Flags().StringVar(&owner, "owner", "", "ID of the user owning the competitor")

	return cmd
}
