// Package client contains Cobra CLI commands for minthook.
package client

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewWebhookCommand constructs the `webhook` command group.
func NewWebhookCommand(baseURL BaseURLFunc) *cobra.Command {
	webhookCmd := &cobra.Command{Use: "webhook", Short: "Webhook operations"}
	webhookCmd.AddCommand(newWebhookSubmitCommand(baseURL))
	return webhookCmd
}

// newWebhookSubmitCommand constructs the `webhook submit` subcommand. It
// replays a payload through the ingestion endpoint, mainly for testing
// extraction and dedup behavior against a live server.
func newWebhookSubmitCommand(baseURL BaseURLFunc) *cobra.Command {
	submitCmd := &cobra.Command{
		Use:   "submit",
		Short: "Submit a webhook payload",
		RunE: func(cmd *cobra.Command, _ []string) error {
			eventType, _ := cmd.Flags().GetString("type")
			payload, _ := cmd.Flags().GetString("payload")
			file, _ := cmd.Flags().GetString("file")

			switch eventType {
			case "mint", "pool", "tx":
			default:
				return fmt.Errorf("invalid --type %q; expected mint, pool, or tx", eventType)
			}

			body := []byte(payload)
			if file != "" {
				b, err := os.ReadFile(file)
				if err != nil {
					return err
				}
				body = b
			}
			if len(body) == 0 {
				return fmt.Errorf("provide --payload or --file")
			}

			var resp map[string]any
			if err := postJSON(cmd.Context(), baseURL(), "/v1/webhooks/helius/"+eventType, body, &resp); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), resp)
		},
	}
	submitCmd.Flags().StringP("type", "t", "mint", "Event type: mint|pool|tx")
	submitCmd.Flags().StringP("payload", "p", "", "Inline JSON payload")
	submitCmd.Flags().StringP("file", "f", "", "Read payload from file")
	return submitCmd
}
