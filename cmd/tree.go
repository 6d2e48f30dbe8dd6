package cmd

import (
	"fmt"

	"webdam/internal/cli"
	"webdam/internal/dam"

	"github.com/spf13/cobra"
)

// newTreeCmd creates the tree command.
func newTreeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tree [folder-id]",
		Short: "Print the flattened folder tree",
		Long: `Print every folder reachable from the given folder (the
root when omitted) as a flat id-to-name listing, sorted by name.

Subtrees are fetched concurrently; traversal stops with an error if the
hierarchy nests deeper than the supported limit.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := newCatalogClient()
			if err != nil {
				return err
			}

			rootID := dam.RootFolderID
			if len(args) == 1 {
				rootID = dam.ID(args[0])
			}

			s := cli.NewSpinner("Walking folder tree...")
			s.Start()
			flat, err := client.FlattenFolderTree(cmd.Context(), rootID)
			s.Stop()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, id := range dam.SortedFolderIDs(flat) {
				fmt.Fprintf(out, "%s\t%s\n", id, flat[id])
			}
			fmt.Fprintf(out, "\n%d folders\n", len(flat))
			return nil
		},
	}
}
