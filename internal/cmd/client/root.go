package client

import (
	"github.com/spf13/cobra"
)

// NewRoot constructs the root Cobra command for the minthook client.
// It registers the webhook, stats, and events command groups.
func NewRoot(baseURL BaseURLFunc) *cobra.Command {
	root := &cobra.Command{
		Use:   "minthook",
		Short: "Minthook client commands",
	}
	root.AddCommand(NewWebhookCommand(baseURL))
	root.AddCommand(NewStatsCommand(baseURL))
	root.AddCommand(NewStatusCommand(baseURL))
	root.AddCommand(NewEventsCommand(baseURL))
	return root
}
