package cmd

import (
	"github.com/spf13/cobra"
)

// newAuthCmd creates the parent command grouping the authentication
// subcommands.
func newAuthCmd() *cobra.Command {
	authCmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage authentication to the Webdam API",
		Long: `Manage authentication to the Webdam API.

Two credential modes exist. The service account from the configuration
is used by default; 'auth login' additionally obtains a user-delegated
token through the OAuth authorization-code flow, used by commands run
with --as-user.`,
	}

	authCmd.AddCommand(newAuthLoginCmd())
	authCmd.AddCommand(newAuthStatusCmd())
	authCmd.AddCommand(newAuthLogoutCmd())
	return authCmd
}
