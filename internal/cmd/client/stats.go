package client

import (
	"github.com/spf13/cobra"
)

// NewStatsCommand constructs the `stats` command.
func NewStatsCommand(baseURL BaseURLFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show pipeline counters",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var resp map[string]any
			if err := getJSON(cmd.Context(), baseURL(), "/v1/webhooks/stats", &resp); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), resp)
		},
	}
}

// NewStatusCommand constructs the `status` command.
func NewStatusCommand(baseURL BaseURLFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show queue and worker status",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var resp map[string]any
			if err := getJSON(cmd.Context(), baseURL(), "/v1/webhooks/status", &resp); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), resp)
		},
	}
}
