package main

import (
	"encoding/json"
	"time"

	"github.com/Houeta/scoperival/internal/services/discovery"
	"github.com/spf13/cobra"
)

// NewDiscoverCmd creates the command suggesting trackable pages of a domain.
// It needs no storage, so only the probe timeout flag configures it.
func NewDiscoverCmd() *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "discover <domain>",
		Short: "Probe a domain for pricing, features, blog and changelog pages",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := setupLogger(envProd, cmd.ErrOrStderr())

			suggestions, err := discovery.NewDiscoverer(logger, timeout).Discover(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")

			return enc.Encode(map[string]any{"suggestions": suggestions})
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", discovery.DefaultProbeTimeout, "timeout of each probe")

	return cmd
}
