package cmd

import (
	"strings"

	"webdam/internal/cli"
	"webdam/internal/dam"

	"github.com/spf13/cobra"
)

// newSearchCmd creates the search command.
func newSearchCmd() *cobra.Command {
	var (
		flags    listFlags
		folderID string
	)

	searchCmd := &cobra.Command{
		Use:   "search [keyword...]",
		Short: "Search assets across the account",
		Long: `Search assets by keyword, optionally scoped to a folder or
filtered by type. When a type filter is active the facet count for that
type governs paging, so page numbers stay consistent with what is shown.

Examples:
  webdam search sunset beach
  webdam search --types image --folder 12
  webdam search logo --sort-by datemodified --sort-dir desc`,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, cfg, err := newCatalogClient()
			if err != nil {
				return err
			}

			query, err := flags.query(cfg.Browser.PageSize)
			if err != nil {
				return err
			}
			query.Keyword = strings.Join(args, " ")
			query.FolderID = dam.ID(folderID)

			s := cli.NewSpinner("Searching...")
			s.Start()
			result, err := client.SearchAssets(cmd.Context(), query)
			s.Stop()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			cli.RenderAssets(out, result, flags.page,
				dam.LastPage(result.TotalCount, query.Limit))
			cli.RenderFacetCounts(out, result.FacetCounts)
			return nil
		},
	}

	flags.register(searchCmd)
	searchCmd.Flags().StringVar(&folderID, "folder", "", "Restrict the search to a folder id")
	return searchCmd
}
