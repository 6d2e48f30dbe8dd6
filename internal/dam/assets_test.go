package dam

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const assetJSON = `{
	"id": 3455969,
	"filename": "archipelago.jpg",
	"filetype": "jpg",
	"filesize": 1048576,
	"width": 4000,
	"height": 3000,
	"colorspace": "RGB",
	"version": 2,
	"description": "Aerial shot",
	"status": "active",
	"datecreated": "2017-03-22 18:34:43",
	"datemodified": "2017-04-02 09:12:01",
	"datecaptured": "2017-03-20 11:00:00",
	"folder": {"id": 12, "name": "Banners"},
	"user": {"name": "jdoe"},
	"thumbnailurls": [
		{"size": "100", "url": "https://cdn.example.com/t/100.jpg"},
		{"size": "550", "url": "https://cdn.example.com/t/550.jpg"}
	],
	"xmp_metadata": [
		{"label": "Camera", "value": "ILCE-7M3"},
		{"label": "Lens", "value": "FE 24-70"}
	]
}`

func TestGetAsset(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/assets/3455969", r.URL.Path)
		assert.Empty(t, r.URL.Query().Get("expand"))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, assetJSON)
	})

	asset, err := client.GetAsset(context.Background(), "3455969", false)
	require.NoError(t, err)

	assert.Equal(t, ID("3455969"), asset.ID)
	assert.Equal(t, "archipelago.jpg", asset.Filename)
	assert.Equal(t, int64(1048576), asset.Filesize)
	assert.Equal(t, StatusActive, asset.Status)
	assert.Equal(t, "2017-03-22 18:34:43", asset.DateCreated)
	require.NotNil(t, asset.Folder)
	assert.Equal(t, ID("12"), asset.Folder.ID)
	require.NotNil(t, asset.User)
	assert.Equal(t, "jdoe", asset.User.Name)
	require.Len(t, asset.XMPMetadata, 2)
	assert.Equal(t, "Camera", asset.XMPMetadata[0].Label)

	// Highest-resolution thumbnail wins for previews.
	assert.Equal(t, "https://cdn.example.com/t/550.jpg", asset.PreviewURL())
}

func TestGetAsset_WithExpiration(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "expiration", r.URL.Query().Get("expand"))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id":1,"filename":"a.jpg","status":"active",
			"expiration":{"date":"2027-01-01","notes":"license ends"}}`)
	})

	asset, err := client.GetAsset(context.Background(), "1", true)
	require.NoError(t, err)
	require.NotNil(t, asset.Expiration)
	assert.Equal(t, "2027-01-01", asset.Expiration.Date)
	assert.Equal(t, "license ends", asset.Expiration.Notes)
}

func TestGetAsset_NotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := client.GetAsset(context.Background(), "404404", false)
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "asset", notFound.Resource)
	assert.Equal(t, ID("404404"), notFound.ID)
}

func TestGetAssetsBatch_OmitsMissingIDs(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/assets/list", r.URL.Path)
		assert.Equal(t, "1,2,999", r.URL.Query().Get("ids"))
		w.Header().Set("Content-Type", "application/json")
		// The server answers null for the id that doesn't resolve.
		fmt.Fprint(w, `[{"id":1,"filename":"a.jpg","status":"active"},
			{"id":2,"filename":"b.jpg","status":"active"}, null]`)
	})

	assets, err := client.GetAssetsBatch(context.Background(), []ID{"1", "2", "999"})
	require.NoError(t, err)
	require.Len(t, assets, 2)
	assert.Equal(t, ID("1"), assets[0].ID)
	assert.Equal(t, ID("2"), assets[1].ID)
}

func TestGetAssetsBatch_AllMissing(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	assets, err := client.GetAssetsBatch(context.Background(), []ID{"998", "999"})
	require.NoError(t, err, "an empty batch is best-effort, not an error")
	assert.Empty(t, assets)
}

func TestGetAssetsBatch_NoIDs(t *testing.T) {
	// No network call is placed for an empty id set; a handler that
	// fails the test guards against one.
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("No request expected for an empty batch")
	})

	assets, err := client.GetAssetsBatch(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, assets)
}

func TestSearchAssets(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/search", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "beach", q.Get("query"))
		assert.Equal(t, "24", q.Get("limit"))
		assert.Equal(t, "10", q.Get("folderid"))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"total_count":42,"assets":[{"id":7,"filename":"beach.jpg","status":"active"}],
			"facets":{"types":{"image":40,"audiovideo":2}}}`)
	})

	result, err := client.SearchAssets(context.Background(), SearchQuery{
		Keyword:  "beach",
		Limit:    24,
		FolderID: "10",
	})
	require.NoError(t, err)
	assert.Equal(t, 42, result.TotalCount)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "beach.jpg", result.Items[0].Filename)
	assert.Equal(t, 40, result.FacetCounts["image"])
}

func TestSearchAssets_EmptyKeywordWithTypeFilter(t *testing.T) {
	// An empty keyword with a type filter still goes through the search
	// endpoint so facet counts stay consistent with the result set.
	var hitSearch bool
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/search", r.URL.Path)
		hitSearch = true
		q := r.URL.Query()
		assert.Empty(t, q.Get("query"))
		assert.Equal(t, "image", q.Get("types"))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"total_count":90,"assets":[{"id":1,"filename":"a.png","status":"active"}],
			"facets":{"types":{"image":90}}}`)
	})

	result, err := client.SearchAssets(context.Background(), SearchQuery{TypeFilter: TypeImage})
	require.NoError(t, err)
	assert.True(t, hitSearch)
	assert.Equal(t, 90, result.TotalCount)
	assert.Equal(t, map[string]int{"image": 90}, result.FacetCounts)
}

func TestDownloadAsset(t *testing.T) {
	payload := []byte("binary image data")
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/assets/55/download", r.URL.Path)
		w.Write(payload)
	})

	body, err := client.DownloadAsset(context.Background(), "55")
	require.NoError(t, err)
	defer body.Close()

	data, err := io.ReadAll(body)
	require.NoError(t, err)
	assert.Equal(t, payload, data)
}

func TestDownloadAsset_NotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := client.DownloadAsset(context.Background(), "55")
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestGetAccountSubscriptionDetails(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/subscription", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"url":"demo.webdamdb.com","usedseats":3,"maxseats":10,
			"diskusagemb":2048,"diskquotamb":10240}`)
	})

	sub, err := client.GetAccountSubscriptionDetails(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "demo.webdamdb.com", sub.URL)
	assert.Equal(t, 3, sub.UsedSeats)
	assert.Equal(t, 10, sub.MaxSeats)
	assert.Equal(t, int64(10240), sub.DiskQuotaMB)

	assert.Equal(t, "https://demo.webdamdb.com/cloud/#asset/77", AssetWebURL(sub.URL, "77"))
}
