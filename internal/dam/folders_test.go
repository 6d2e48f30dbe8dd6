package dam

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// treeHandler serves a fixed folder tree:
//
//	root
//	├── 10 Marketing
//	│   ├── 11 Logos
//	│   └── 12 Banners
//	│       └── 13 Archived
//	└── 20 Legal
func treeHandler(t *testing.T) http.HandlerFunc {
	folders := map[string]string{
		"10": `{"id":10,"name":"Marketing","parent":0,"numassets":5,"folders":[
			{"id":11,"name":"Logos","parent":10,"numassets":2},
			{"id":12,"name":"Banners","parent":10,"numassets":1}]}`,
		"11": `{"id":"11","name":"Logos","parent":"10","numassets":2,"folders":[]}`,
		"12": `{"id":12,"name":"Banners","parent":10,"numassets":1,"folders":[
			{"id":13,"name":"Archived","parent":12,"numassets":0}]}`,
		"13": `{"id":13,"name":"Archived","parent":12,"numassets":0,"folders":[]}`,
		"20": `{"id":20,"name":"Legal","parent":0,"numassets":7,"folders":[]}`,
	}

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.URL.Path == "/folders":
			fmt.Fprint(w, `[{"id":10,"name":"Marketing","parent":0,"numassets":5},
				{"id":20,"name":"Legal","parent":0,"numassets":7}]`)
		case strings.HasPrefix(r.URL.Path, "/folders/"):
			id := strings.TrimPrefix(r.URL.Path, "/folders/")
			body, ok := folders[id]
			if !ok {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			fmt.Fprint(w, body)
		default:
			t.Errorf("Unexpected request: %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}
}

func TestListTopLevelFolders(t *testing.T) {
	client := newTestClient(t, treeHandler(t))

	folders, err := client.ListTopLevelFolders(context.Background())
	require.NoError(t, err)
	require.Len(t, folders, 2)
	assert.Equal(t, ID("10"), folders[0].ID)
	assert.Equal(t, "Marketing", folders[0].Name)
	assert.Equal(t, 5, folders[0].AssetCount)
	assert.True(t, folders[0].ParentID.IsRoot())
}

func TestGetFolder(t *testing.T) {
	client := newTestClient(t, treeHandler(t))

	folder, err := client.GetFolder(context.Background(), "12")
	require.NoError(t, err)
	assert.Equal(t, "Banners", folder.Name)
	require.Len(t, folder.Folders, 1)
	assert.Equal(t, ID("13"), folder.Folders[0].ID)
}

func TestGetFolder_NotFound(t *testing.T) {
	client := newTestClient(t, treeHandler(t))

	_, err := client.GetFolder(context.Background(), "999")
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "folder", notFound.Resource)
	assert.Equal(t, ID("999"), notFound.ID)
}

func TestFlattenFolderTree_FromRoot(t *testing.T) {
	client := newTestClient(t, treeHandler(t))

	flat, err := client.FlattenFolderTree(context.Background(), RootFolderID)
	require.NoError(t, err)

	want := map[ID]string{
		"10": "Marketing",
		"11": "Logos",
		"12": "Banners",
		"13": "Archived",
		"20": "Legal",
	}
	assert.Equal(t, want, flat)
}

func TestFlattenFolderTree_FromSubfolder(t *testing.T) {
	client := newTestClient(t, treeHandler(t))

	flat, err := client.FlattenFolderTree(context.Background(), "12")
	require.NoError(t, err)
	assert.Equal(t, map[ID]string{"13": "Archived"}, flat)
}

func TestFlattenFolderTree_CycleHitsDepthCap(t *testing.T) {
	// A deliberately malformed backend where folder 1 and 2 contain each
	// other. The traversal must fail with TraversalTooDeepError instead
	// of looping forever.
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/folders":
			fmt.Fprint(w, `[{"id":1,"name":"A","parent":0}]`)
		case "/folders/1":
			fmt.Fprint(w, `{"id":1,"name":"A","parent":2,"folders":[{"id":2,"name":"B","parent":1}]}`)
		case "/folders/2":
			fmt.Fprint(w, `{"id":2,"name":"B","parent":1,"folders":[{"id":1,"name":"A","parent":2}]}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	_, err := client.FlattenFolderTree(context.Background(), RootFolderID)
	var tooDeep *TraversalTooDeepError
	require.ErrorAs(t, err, &tooDeep)
	assert.Equal(t, maxTraversalDepth, tooDeep.Depth)
}

func TestGetFolderAssets(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/folders/10/assets", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "12", q.Get("limit"))
		assert.Equal(t, "24", q.Get("offset"))
		assert.Equal(t, "datecreated", q.Get("sortby"), "default sort field")
		assert.Equal(t, "asc", q.Get("sortdir"), "default sort direction")

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"total_count":130,"items":[
			{"id":100,"filename":"logo.png","status":"active","filetype":"png"},
			{"id":101,"filename":"old.png","status":"inactive","filetype":"png"}],
			"facets":{"types":{"image":90,"document":40}}}`)
	})

	result, err := client.GetFolderAssets(context.Background(), "10", SearchQuery{Offset: 24})
	require.NoError(t, err)
	assert.Equal(t, 130, result.TotalCount)
	require.Len(t, result.Items, 2)
	assert.Equal(t, ID("100"), result.Items[0].ID)
	assert.Equal(t, 90, result.FacetCounts["image"])
}

func TestGetFolderAssets_TypeFilterUsesFacetCount(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "image", r.URL.Query().Get("types"))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"total_count":130,"items":[{"id":100,"filename":"logo.png","status":"active"}],
			"facets":{"types":{"image":90,"document":40}}}`)
	})

	result, err := client.GetFolderAssets(context.Background(), "10", SearchQuery{TypeFilter: TypeImage})
	require.NoError(t, err)
	// The facet count is authoritative when a filter is active; the raw
	// folder count spans all types.
	assert.Equal(t, 90, result.TotalCount)
}

func TestSortedFolderIDs(t *testing.T) {
	flat := map[ID]string{"3": "Zeta", "1": "Alpha", "2": "Alpha"}
	assert.Equal(t, []ID{"1", "2", "3"}, SortedFolderIDs(flat))
}

func TestFolderWireDecoding_MixedIDTypes(t *testing.T) {
	// The API sends ids both as numbers and as strings.
	var folder Folder
	require.NoError(t, json.Unmarshal([]byte(`{"id":"11","name":"Logos","parent":10}`), &folder))
	assert.Equal(t, ID("11"), folder.ID)
	assert.Equal(t, ID("10"), folder.ParentID)
}
