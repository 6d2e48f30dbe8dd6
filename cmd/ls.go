package cmd

import (
	"fmt"

	"webdam/internal/cli"
	"webdam/internal/dam"

	"github.com/spf13/cobra"
)

// Listing flags shared by ls and search.
type listFlags struct {
	page     int
	pageSize int
	sortBy   string
	sortDir  string
	types    string
}

func (f *listFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.page, "page", 0, "Page to show (0-indexed)")
	cmd.Flags().IntVar(&f.pageSize, "page-size", 0, "Assets per page (default from config)")
	cmd.Flags().StringVar(&f.sortBy, "sort-by", dam.SortByDateCreated,
		"Sort field: filename, filesize, datecreated or datemodified")
	cmd.Flags().StringVar(&f.sortDir, "sort-dir", dam.SortAscending, "Sort direction: asc or desc")
	cmd.Flags().StringVar(&f.types, "types", "",
		"Asset type filter: image, audiovideo, document, presentation or other")
}

// query turns the flags into a catalog query, validating the enumerated
// values.
func (f listFlags) query(defaultPageSize int) (dam.SearchQuery, error) {
	switch f.sortBy {
	case dam.SortByFilename, dam.SortByFilesize, dam.SortByDateCreated, dam.SortByDateModified:
	default:
		return dam.SearchQuery{}, fmt.Errorf("unknown sort field %q", f.sortBy)
	}
	switch f.sortDir {
	case dam.SortAscending, dam.SortDescending:
	default:
		return dam.SearchQuery{}, fmt.Errorf("unknown sort direction %q", f.sortDir)
	}
	switch f.types {
	case "", dam.TypeImage, dam.TypeAudioVideo, dam.TypeDocument, dam.TypePresentation, dam.TypeOther:
	default:
		return dam.SearchQuery{}, fmt.Errorf("unknown asset type %q", f.types)
	}
	if f.page < 0 {
		return dam.SearchQuery{}, fmt.Errorf("page must not be negative")
	}

	pageSize := f.pageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}

	return dam.SearchQuery{
		TypeFilter: f.types,
		SortField:  f.sortBy,
		SortDir:    f.sortDir,
		Offset:     f.page * pageSize,
		Limit:      pageSize,
	}, nil
}

// newLsCmd creates the ls command.
func newLsCmd() *cobra.Command {
	var flags listFlags

	lsCmd := &cobra.Command{
		Use:   "ls [folder-id]",
		Short: "List folders and assets",
		Long: `List the contents of a folder.

Without an argument the top-level folders are listed. With a folder id,
its subfolders and one page of its assets are shown.

Examples:
  webdam ls
  webdam ls 12 --page 2 --sort-by filename --sort-dir desc
  webdam ls 12 --types image`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, cfg, err := newCatalogClient()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			if len(args) == 0 {
				folders, err := client.ListTopLevelFolders(ctx)
				if err != nil {
					return err
				}
				cli.RenderFolders(out, folders)
				return nil
			}

			query, err := flags.query(cfg.Browser.PageSize)
			if err != nil {
				return err
			}

			id := dam.ID(args[0])
			folder, err := client.GetFolder(ctx, id)
			if err != nil {
				return err
			}
			result, err := client.GetFolderAssets(ctx, id, query)
			if err != nil {
				return err
			}

			if len(folder.Folders) > 0 {
				cli.RenderFolders(out, folder.Folders)
				fmt.Fprintln(out)
			}
			cli.RenderAssets(out, result, flags.page, dam.LastPage(result.TotalCount, query.Limit))
			return nil
		},
	}

	flags.register(lsCmd)
	return lsCmd
}
