package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"webdam/internal/cli"
	"webdam/internal/dam"

	"github.com/spf13/cobra"
)

// newAssetCmd creates the parent command grouping the asset
// subcommands.
func newAssetCmd() *cobra.Command {
	assetCmd := &cobra.Command{
		Use:   "asset",
		Short: "Inspect and download individual assets",
	}

	assetCmd.AddCommand(newAssetGetCmd())
	assetCmd.AddCommand(newAssetDownloadCmd())
	assetCmd.AddCommand(newAssetBatchCmd())
	return assetCmd
}

// newAssetGetCmd creates the asset get command.
func newAssetGetCmd() *cobra.Command {
	var withExpiration bool

	getCmd := &cobra.Command{
		Use:   "get <asset-id>",
		Short: "Show the full metadata of one asset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := newCatalogClient()
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			asset, err := client.GetAsset(ctx, dam.ID(args[0]), withExpiration)
			if err != nil {
				return err
			}

			// The deep link needs the account host; its absence only costs
			// the link, not the command.
			var webURL string
			if sub, err := client.GetAccountSubscriptionDetails(ctx); err == nil {
				webURL = dam.AssetWebURL(sub.URL, asset.ID)
			}

			cli.RenderAssetDetail(cmd.OutOrStdout(), asset, webURL)
			return nil
		},
	}

	getCmd.Flags().BoolVar(&withExpiration, "expiration", false,
		"Include expiration details")
	return getCmd
}

// newAssetDownloadCmd creates the asset download command.
func newAssetDownloadCmd() *cobra.Command {
	var outputPath string

	downloadCmd := &cobra.Command{
		Use:   "download <asset-id>",
		Short: "Download the original binary of an asset",
		Long: `Download the original binary of an asset.

The file is written under the asset's filename in the current directory
unless --output names a destination. With --output - the bytes go to
stdout.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := newCatalogClient()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			id := dam.ID(args[0])

			if outputPath == "-" {
				body, err := client.DownloadAsset(ctx, id)
				if err != nil {
					return err
				}
				defer body.Close()
				_, err = io.Copy(cmd.OutOrStdout(), body)
				return err
			}

			dest := outputPath
			if dest == "" {
				asset, err := client.GetAsset(ctx, id, false)
				if err != nil {
					return err
				}
				dest = filepath.Base(asset.Filename)
			}
			if dest == "" || dest == "." {
				dest = string(id)
			}

			s := cli.NewSpinner("Downloading...")
			s.Start()
			body, err := client.DownloadAsset(ctx, id)
			if err != nil {
				s.Stop()
				return err
			}
			defer body.Close()

			file, err := os.Create(dest)
			if err != nil {
				s.Stop()
				return err
			}
			written, err := io.Copy(file, body)
			s.Stop()
			if closeErr := file.Close(); err == nil {
				err = closeErr
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%s)\n", dest, cli.FormatBytes(written))
			return nil
		},
	}

	downloadCmd.Flags().StringVarP(&outputPath, "output", "o", "",
		"Destination path, or - for stdout")
	return downloadCmd
}

// newAssetBatchCmd creates the asset batch command.
func newAssetBatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "batch <asset-id>...",
		Short: "Show several assets in one call",
		Long: `Show several assets in one call.

The lookup is best-effort: ids that no longer resolve are omitted from
the listing instead of failing the batch.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := newCatalogClient()
			if err != nil {
				return err
			}

			ids := make([]dam.ID, 0, len(args))
			for _, arg := range args {
				ids = append(ids, dam.ID(arg))
			}

			assets, err := client.GetAssetsBatch(cmd.Context(), ids)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			cli.RenderAssets(out, &dam.SearchResult{
				TotalCount: len(assets),
				Items:      assets,
			}, 0, 0)
			if len(assets) < len(ids) {
				fmt.Fprintf(out, "%d of %d ids resolved\n", len(assets), len(ids))
			}
			return nil
		},
	}
}
