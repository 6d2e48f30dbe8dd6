package cli

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"webdam/internal/dam"
)

// NewSpinner creates the standard progress spinner used while the CLI
// waits on the catalog API.
func NewSpinner(suffix string) *spinner.Spinner {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " " + suffix
	return s
}

// newTable creates a table with the standard styling.
func newTable(output io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(output)
	t.SetStyle(table.StyleRounded)
	return t
}

// RenderFolders renders a folder listing.
func RenderFolders(output io.Writer, folders []dam.Folder) {
	if len(folders) == 0 {
		fmt.Fprintln(output, text.FgYellow.Sprint("No folders found"))
		return
	}

	t := newTable(output)
	t.AppendHeader(table.Row{
		text.FgHiCyan.Sprint("ID"),
		text.FgHiCyan.Sprint("NAME"),
		text.FgHiCyan.Sprint("ASSETS"),
		text.FgHiCyan.Sprint("SUBFOLDERS"),
	})
	for _, f := range folders {
		t.AppendRow(table.Row{f.ID, f.Name, f.AssetCount, len(f.Folders)})
	}
	t.Render()
}

// RenderAssets renders one page of assets with its position in the
// result set.
func RenderAssets(output io.Writer, result *dam.SearchResult, page, lastPage int) {
	if result == nil || len(result.Items) == 0 {
		fmt.Fprintln(output, text.FgYellow.Sprint("No assets found"))
		return
	}

	t := newTable(output)
	t.AppendHeader(table.Row{
		text.FgHiCyan.Sprint("ID"),
		text.FgHiCyan.Sprint("FILENAME"),
		text.FgHiCyan.Sprint("TYPE"),
		text.FgHiCyan.Sprint("SIZE"),
		text.FgHiCyan.Sprint("STATUS"),
		text.FgHiCyan.Sprint("CREATED"),
	})
	for _, a := range result.Items {
		status := string(a.Status)
		if a.Status != dam.StatusActive {
			status = text.FgYellow.Sprint(status)
		}
		t.AppendRow(table.Row{a.ID, a.Filename, a.Filetype, FormatBytes(a.Filesize), status, a.DateCreated})
	}
	t.Render()

	fmt.Fprintf(output, "Page %d of %d, %d assets total\n", page+1, lastPage+1, result.TotalCount)
}

// RenderFacetCounts renders per-type result counts on one line, sorted
// by type name.
func RenderFacetCounts(output io.Writer, facets map[string]int) {
	if len(facets) == 0 {
		return
	}

	types := make([]string, 0, len(facets))
	for t := range facets {
		types = append(types, t)
	}
	sort.Strings(types)

	parts := make([]string, 0, len(types))
	for _, t := range types {
		parts = append(parts, fmt.Sprintf("%s %d", t, facets[t]))
	}
	fmt.Fprintf(output, "By type: %s\n", strings.Join(parts, ", "))
}

// RenderAssetDetail renders the full metadata of one asset as key-value
// rows.
func RenderAssetDetail(output io.Writer, asset *dam.Asset, webURL string) {
	t := newTable(output)
	t.AppendHeader(table.Row{
		text.FgHiCyan.Sprint("FIELD"),
		text.FgHiCyan.Sprint("VALUE"),
	})

	t.AppendRow(table.Row{"ID", asset.ID})
	t.AppendRow(table.Row{"Filename", asset.Filename})
	t.AppendRow(table.Row{"Type", asset.Filetype})
	t.AppendRow(table.Row{"Size", FormatBytes(asset.Filesize)})
	if asset.Width > 0 || asset.Height > 0 {
		t.AppendRow(table.Row{"Dimensions", fmt.Sprintf("%dx%d", asset.Width, asset.Height)})
	}
	if asset.Colorspace != "" {
		t.AppendRow(table.Row{"Colorspace", asset.Colorspace})
	}
	t.AppendRow(table.Row{"Status", asset.Status})
	t.AppendRow(table.Row{"Version", asset.Version})
	if asset.Description != "" {
		t.AppendRow(table.Row{"Description", asset.Description})
	}
	t.AppendRow(table.Row{"Created", asset.DateCreated})
	t.AppendRow(table.Row{"Modified", asset.DateModified})
	if asset.DateCaptured != "" {
		t.AppendRow(table.Row{"Captured", asset.DateCaptured})
	}
	if asset.Folder != nil {
		t.AppendRow(table.Row{"Folder", fmt.Sprintf("%s (%s)", asset.Folder.Name, asset.Folder.ID)})
	}
	if asset.User != nil {
		t.AppendRow(table.Row{"Uploaded by", asset.User.Name})
	}
	if asset.Expiration != nil {
		expiry := asset.Expiration.Date
		if asset.Expiration.Notes != "" {
			expiry += " (" + asset.Expiration.Notes + ")"
		}
		t.AppendRow(table.Row{"Expires", expiry})
	}
	for _, field := range asset.XMPMetadata {
		t.AppendRow(table.Row{field.Label, field.Value})
	}
	if preview := asset.PreviewURL(); preview != "" {
		t.AppendRow(table.Row{"Preview", preview})
	}
	if webURL != "" {
		t.AppendRow(table.Row{"Web", webURL})
	}

	t.Render()
}

// RenderSubscription renders the account subscription summary.
func RenderSubscription(output io.Writer, sub *dam.Subscription) {
	t := newTable(output)
	t.AppendHeader(table.Row{
		text.FgHiCyan.Sprint("FIELD"),
		text.FgHiCyan.Sprint("VALUE"),
	})
	t.AppendRow(table.Row{"Account URL", sub.URL})
	t.AppendRow(table.Row{"Seats", fmt.Sprintf("%d / %d", sub.UsedSeats, sub.MaxSeats)})
	t.AppendRow(table.Row{"Disk usage", fmt.Sprintf("%s / %s",
		FormatBytes(sub.DiskUsedMB*1024*1024), FormatBytes(sub.DiskQuotaMB*1024*1024))})
	t.Render()
}

// FormatBytes renders a byte count in a human-readable unit.
func FormatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}

// FormatExpiry formats a token expiry as "in X" or "expired X ago".
func FormatExpiry(expiresAt time.Time) string {
	remaining := time.Until(expiresAt)
	if remaining > 0 {
		return "in " + FormatDuration(remaining)
	}
	return text.FgYellow.Sprintf("expired %s ago", FormatDuration(-remaining))
}

// FormatDuration formats a duration in a human-readable way.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		return "expired"
	}
	if d < time.Minute {
		return "< 1 minute"
	}
	if d < time.Hour {
		minutes := int(d.Minutes())
		if minutes == 1 {
			return "1 minute"
		}
		return fmt.Sprintf("%d minutes", minutes)
	}
	if d < 24*time.Hour {
		hours := int(d.Hours())
		if hours == 1 {
			return "1 hour"
		}
		return fmt.Sprintf("%d hours", hours)
	}
	days := int(d.Hours() / 24)
	if days == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", days)
}
