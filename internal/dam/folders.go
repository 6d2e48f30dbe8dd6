package dam

import (
	"context"
	"net/url"
	"sort"

	"golang.org/x/sync/errgroup"

	"webdam/pkg/logging"
)

const (
	// maxTraversalDepth caps folder-tree flattening. The API enforces a
	// tree, so the cap only trips if that invariant breaks upstream.
	maxTraversalDepth = 50

	// flattenConcurrency bounds parallel sibling fetches during
	// flattening.
	flattenConcurrency = 4
)

// ListTopLevelFolders returns the folders directly under the synthetic
// root. Assets never attach to the root itself.
func (c *Client) ListTopLevelFolders(ctx context.Context) ([]Folder, error) {
	var folders []Folder
	if err := c.getJSON(ctx, "list top-level folders", "/folders", nil, &folders, nil); err != nil {
		return nil, err
	}
	return folders, nil
}

// GetFolder retrieves one folder with its immediate sub-folders (not
// recursively populated).
func (c *Client) GetFolder(ctx context.Context, id ID) (*Folder, error) {
	var folder Folder
	notFound := &NotFoundError{Resource: "folder", ID: id}
	if err := c.getJSON(ctx, "get folder", "/folders/"+url.PathEscape(string(id)), nil, &folder, notFound); err != nil {
		return nil, err
	}
	return &folder, nil
}

// folderAssetsResponse is the wire shape of GET /folders/{id}/assets.
type folderAssetsResponse struct {
	Items      []Asset    `json:"items"`
	Folders    []Folder   `json:"folders"`
	TotalCount int        `json:"total_count"`
	Facets     facetsWire `json:"facets"`
}

type facetsWire struct {
	Types map[string]int `json:"types"`
}

// GetFolderAssets returns one page of a folder's assets with server-side
// paging, sorting and type filtering applied. TotalCount is authoritative
// for pager rendering; when a type filter is active the facet count for
// that type replaces the folder's raw asset count, since the raw count
// spans all types.
func (c *Client) GetFolderAssets(ctx context.Context, id ID, query SearchQuery) (*SearchResult, error) {
	var resp folderAssetsResponse
	notFound := &NotFoundError{Resource: "folder", ID: id}
	path := "/folders/" + url.PathEscape(string(id)) + "/assets"
	if err := c.getJSON(ctx, "get folder assets", path, query.values(), &resp, notFound); err != nil {
		return nil, err
	}

	result := &SearchResult{
		TotalCount:  resp.TotalCount,
		Items:       resp.Items,
		FacetCounts: resp.Facets.Types,
	}
	if query.TypeFilter != "" {
		if count, ok := resp.Facets.Types[query.TypeFilter]; ok {
			result.TotalCount = count
		}
	}
	return result, nil
}

// FlattenFolderTree walks the folder tree below rootID depth-first and
// returns a flat id-to-name table of every reachable folder. Sibling
// subtrees are fetched concurrently but merged in sibling order, so the
// result is deterministic. Depth is capped defensively; exceeding the
// cap fails with TraversalTooDeepError instead of recursing unbounded.
func (c *Client) FlattenFolderTree(ctx context.Context, rootID ID) (map[ID]string, error) {
	var children []Folder
	var err error
	if rootID.IsRoot() {
		children, err = c.ListTopLevelFolders(ctx)
	} else {
		var folder *Folder
		folder, err = c.GetFolder(ctx, rootID)
		if err == nil {
			children = folder.Folders
		}
	}
	if err != nil {
		return nil, err
	}

	flat, err := c.flatten(ctx, children, 1)
	if err != nil {
		return nil, err
	}

	logging.Debug("Catalog", "Flattened folder tree below %s: %d folders", orRoot(rootID), len(flat))
	return flat, nil
}

// flatten recursively collects (id, name) pairs for folders and all
// their descendants. Each sibling subtree is resolved in its own
// goroutine; merging happens afterwards in sibling order.
func (c *Client) flatten(ctx context.Context, folders []Folder, depth int) (map[ID]string, error) {
	if len(folders) == 0 {
		return map[ID]string{}, nil
	}
	if depth > maxTraversalDepth {
		return nil, &TraversalTooDeepError{FolderID: folders[0].ID, Depth: maxTraversalDepth}
	}

	subtrees := make([]map[ID]string, len(folders))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(flattenConcurrency)

	for i, folder := range folders {
		i, folder := i, folder
		g.Go(func() error {
			sub, err := c.GetFolder(gctx, folder.ID)
			if err != nil {
				return err
			}
			below, err := c.flatten(gctx, sub.Folders, depth+1)
			if err != nil {
				return err
			}
			below[folder.ID] = folder.Name
			subtrees[i] = below
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	flat := make(map[ID]string)
	for _, subtree := range subtrees {
		for id, name := range subtree {
			flat[id] = name
		}
	}
	return flat, nil
}

// SortedFolderIDs returns the keys of a flattened tree ordered by name,
// then id, for stable rendering.
func SortedFolderIDs(flat map[ID]string) []ID {
	ids := make([]ID, 0, len(flat))
	for id := range flat {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		if flat[ids[i]] != flat[ids[j]] {
			return flat[ids[i]] < flat[ids[j]]
		}
		return ids[i] < ids[j]
	})
	return ids
}

func orRoot(id ID) ID {
	if id.IsRoot() {
		return RootFolderID
	}
	return id
}
