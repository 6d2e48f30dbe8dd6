package cmd

import (
	"fmt"

	"webdam/internal/cli"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"
)

// newAuthStatusCmd creates the auth status command.
func newAuthStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the current authentication state",
		Long: `Show the current authentication state: whether a service
account is configured and whether a stored user token exists, with its
expiry.`,
		RunE: runAuthStatus,
	}
}

func runAuthStatus(cmd *cobra.Command, args []string) error {
	cfg, dir, err := loadConfig()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Endpoint: %s\n\n", cfg.API.BaseURL)

	if cfg.HasServiceCredentials() {
		fmt.Fprintf(out, "%s Service account configured (%s)\n",
			text.FgGreen.Sprint("✓"), cfg.API.Username)
	} else {
		fmt.Fprintf(out, "%s No service account configured\n", text.FgYellow.Sprint("-"))
	}

	token, exists, err := cli.NewTokenStore(dir).Peek()
	if err != nil {
		return err
	}
	switch {
	case !exists:
		fmt.Fprintf(out, "%s No user token stored. Run 'webdam auth login' to obtain one.\n",
			text.FgYellow.Sprint("-"))
	case token.Valid(0):
		fmt.Fprintf(out, "%s User token stored, expires %s\n",
			text.FgGreen.Sprint("✓"), cli.FormatExpiry(token.ExpiresAt))
	default:
		fmt.Fprintf(out, "%s User token stored but %s. Run 'webdam auth login' to renew.\n",
			text.FgYellow.Sprint("✗"), cli.FormatExpiry(token.ExpiresAt))
	}

	// A live round trip proves the credentials actually work, not just
	// that they are present.
	if cfg.HasServiceCredentials() {
		client, _, err := newCatalogClient()
		if err != nil {
			return err
		}
		sub, err := client.GetAccountSubscriptionDetails(cmd.Context())
		if err != nil {
			fmt.Fprintf(out, "\n%s Connection check failed: %v\n", text.FgRed.Sprint("✗"), err)
			return nil
		}
		fmt.Fprintf(out, "\n%s Connected to account %s\n", text.FgGreen.Sprint("✓"), sub.URL)
	}

	return nil
}
