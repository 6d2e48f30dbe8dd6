package cmd

import (
	"webdam/internal/cli"

	"github.com/spf13/cobra"
)

// newAccountCmd creates the account command.
func newAccountCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "account",
		Short: "Show the account subscription details",
		Long: `Show the account subscription details: the account's web
host, seat usage and disk quota.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := newCatalogClient()
			if err != nil {
				return err
			}

			sub, err := client.GetAccountSubscriptionDetails(cmd.Context())
			if err != nil {
				return err
			}

			cli.RenderSubscription(cmd.OutOrStdout(), sub)
			return nil
		},
	}
}
