package client

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewEventsCommand constructs the `events` command group.
func NewEventsCommand(baseURL BaseURLFunc) *cobra.Command {
	eventsCmd := &cobra.Command{Use: "events", Short: "Archived event operations"}
	eventsCmd.AddCommand(newEventsRecentCommand(baseURL))
	eventsCmd.AddCommand(newAnalysesRecentCommand(baseURL))
	return eventsCmd
}

func newEventsRecentCommand(baseURL BaseURLFunc) *cobra.Command {
	recentCmd := &cobra.Command{
		Use:   "recent",
		Short: "List recently accepted events, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			limit, _ := cmd.Flags().GetInt("limit")
			var resp map[string]any
			path := fmt.Sprintf("/v1/events/recent?limit=%d", limit)
			if err := getJSON(cmd.Context(), baseURL(), path, &resp); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), resp)
		},
	}
	recentCmd.Flags().Int("limit", 50, "Maximum events to return")
	return recentCmd
}

func newAnalysesRecentCommand(baseURL BaseURLFunc) *cobra.Command {
	analysesCmd := &cobra.Command{
		Use:   "analyses",
		Short: "List recent analysis outcomes, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			limit, _ := cmd.Flags().GetInt("limit")
			var resp map[string]any
			path := fmt.Sprintf("/v1/analyses/recent?limit=%d", limit)
			if err := getJSON(cmd.Context(), baseURL(), path, &resp); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), resp)
		},
	}
	analysesCmd.Flags().Int("limit", 50, "Maximum analyses to return")
	return analysesCmd
}
