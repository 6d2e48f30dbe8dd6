package cmd

import (
	"fmt"

	"webdam/internal/cli"

	"github.com/spf13/cobra"
)

// newAuthLogoutCmd creates the auth logout command.
func newAuthLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Discard the stored user token",
		Long: `Discard the stored user token.

The token is only removed locally; the authorization server keeps its
own record of the grant.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, dir, err := loadConfig()
			if err != nil {
				return err
			}
			if err := cli.NewTokenStore(dir).Clear(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
			return nil
		},
	}
}
