package cli

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"webdam/internal/dam"
)

func TestRenderFolders(t *testing.T) {
	var buf bytes.Buffer
	RenderFolders(&buf, []dam.Folder{
		{ID: "10", Name: "Marketing", AssetCount: 42},
		{ID: "20", Name: "Legal", AssetCount: 0, Folders: []dam.Folder{{ID: "21"}}},
	})

	out := buf.String()
	assert.Contains(t, out, "Marketing")
	assert.Contains(t, out, "42")
	assert.Contains(t, out, "Legal")
}

func TestRenderFolders_Empty(t *testing.T) {
	var buf bytes.Buffer
	RenderFolders(&buf, nil)
	assert.Contains(t, buf.String(), "No folders found")
}

func TestRenderAssets(t *testing.T) {
	var buf bytes.Buffer
	RenderAssets(&buf, &dam.SearchResult{
		TotalCount: 130,
		Items: []dam.Asset{
			{ID: "1", Filename: "beach.jpg", Filetype: "jpg", Filesize: 2048, Status: dam.StatusActive},
		},
	}, 2, 10)

	out := buf.String()
	assert.Contains(t, out, "beach.jpg")
	assert.Contains(t, out, "2.0 KiB")
	assert.Contains(t, out, "Page 3 of 11, 130 assets total")
}

func TestRenderAssets_Empty(t *testing.T) {
	var buf bytes.Buffer
	RenderAssets(&buf, &dam.SearchResult{}, 0, 0)
	assert.Contains(t, buf.String(), "No assets found")
}

func TestRenderAssetDetail(t *testing.T) {
	var buf bytes.Buffer
	RenderAssetDetail(&buf, &dam.Asset{
		ID:          "3455969",
		Filename:    "archipelago.jpg",
		Filetype:    "jpg",
		Filesize:    1048576,
		Width:       4000,
		Height:      3000,
		Status:      dam.StatusActive,
		DateCreated: "2017-03-22 18:34:43",
		XMPMetadata: []dam.MetadataField{{Label: "Camera", Value: "ILCE-7M3"}},
	}, "https://demo.webdamdb.com/cloud/#asset/3455969")

	out := buf.String()
	assert.Contains(t, out, "archipelago.jpg")
	assert.Contains(t, out, "4000x3000")
	assert.Contains(t, out, "Camera")
	assert.Contains(t, out, "ILCE-7M3")
	assert.Contains(t, out, "#asset/3455969")
}

func TestRenderSubscription(t *testing.T) {
	var buf bytes.Buffer
	RenderSubscription(&buf, &dam.Subscription{
		URL:         "demo.webdamdb.com",
		UsedSeats:   3,
		MaxSeats:    10,
		DiskUsedMB:  2048,
		DiskQuotaMB: 10240,
	})

	out := buf.String()
	assert.Contains(t, out, "demo.webdamdb.com")
	assert.Contains(t, out, "3 / 10")
	assert.Contains(t, out, "2.0 GiB")
}

func TestRenderFacetCounts(t *testing.T) {
	var buf bytes.Buffer
	RenderFacetCounts(&buf, map[string]int{"image": 90, "document": 30})
	assert.Equal(t, "By type: document 30, image 90\n", buf.String())

	buf.Reset()
	RenderFacetCounts(&buf, nil)
	assert.Empty(t, buf.String())
}

func TestFormatBytes(t *testing.T) {
	assert.Equal(t, "512 B", FormatBytes(512))
	assert.Equal(t, "1.0 KiB", FormatBytes(1024))
	assert.Equal(t, "1.5 MiB", FormatBytes(1572864))
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "< 1 minute", FormatDuration(30*time.Second))
	assert.Equal(t, "1 minute", FormatDuration(90*time.Second))
	assert.Equal(t, "5 minutes", FormatDuration(5*time.Minute))
	assert.Equal(t, "2 hours", FormatDuration(2*time.Hour))
	assert.Equal(t, "3 days", FormatDuration(72*time.Hour))
	assert.Equal(t, "expired", FormatDuration(-time.Minute))
}

func TestFormatExpiry(t *testing.T) {
	assert.Contains(t, FormatExpiry(time.Now().Add(2*time.Hour)), "in ")
	assert.Contains(t, FormatExpiry(time.Now().Add(-2*time.Hour)), "expired")
}
