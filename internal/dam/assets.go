package dam

import (
	"context"
	"io"
	"net/url"
	"strings"

	"webdam/pkg/logging"
)

// GetAsset retrieves a single asset snapshot. includeExpiration asks the
// API to expand the optional expiration details.
func (c *Client) GetAsset(ctx context.Context, id ID, includeExpiration bool) (*Asset, error) {
	query := url.Values{}
	if includeExpiration {
		query.Set("expand", "expiration")
	}

	var asset Asset
	notFound := &NotFoundError{Resource: "asset", ID: id}
	if err := c.getJSON(ctx, "get asset", "/assets/"+url.PathEscape(string(id)), query, &asset, notFound); err != nil {
		return nil, err
	}
	return &asset, nil
}

// GetAssetsBatch retrieves several assets in one call. Best-effort: ids
// that do not resolve are silently omitted from the result and never
// fail the batch. The returned order follows the server's response.
func (c *Client) GetAssetsBatch(ctx context.Context, ids []ID) ([]Asset, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	joined := make([]string, 0, len(ids))
	for _, id := range ids {
		joined = append(joined, string(id))
	}
	query := url.Values{}
	query.Set("ids", strings.Join(joined, ","))

	// The API returns null entries for unresolvable ids; a fully empty
	// batch comes back as 404. Both are part of best-effort, not errors.
	var wire []*Asset
	err := c.getJSON(ctx, "get assets batch", "/assets/list", query, &wire, errBatchEmpty)
	if err == errBatchEmpty {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	assets := make([]Asset, 0, len(wire))
	for _, a := range wire {
		if a == nil {
			continue
		}
		assets = append(assets, *a)
	}
	if len(assets) < len(ids) {
		logging.Debug("Catalog", "Asset batch resolved %d of %d ids", len(assets), len(ids))
	}
	return assets, nil
}

// errBatchEmpty marks the 404 a batch lookup returns when none of the
// requested ids resolve. Internal to GetAssetsBatch.
var errBatchEmpty = &NotFoundError{Resource: "asset batch"}

// searchResponse is the wire shape of GET /search.
type searchResponse struct {
	TotalCount int        `json:"total_count"`
	Assets     []Asset    `json:"assets"`
	Facets     facetsWire `json:"facets"`
}

// SearchAssets performs a keyword/type search. An empty keyword with a
// type filter still goes through this path, never the folder listing,
// so facet counts stay consistent with the displayed result set.
func (c *Client) SearchAssets(ctx context.Context, query SearchQuery) (*SearchResult, error) {
	var resp searchResponse
	if err := c.getJSON(ctx, "search assets", "/search", query.values(), &resp, nil); err != nil {
		return nil, err
	}
	result := &SearchResult{
		TotalCount:  resp.TotalCount,
		Items:       resp.Assets,
		FacetCounts: resp.Facets.Types,
	}
	if query.TypeFilter != "" {
		if count, ok := resp.Facets.Types[query.TypeFilter]; ok {
			result.TotalCount = count
		}
	}
	return result, nil
}

// DownloadAsset streams the asset's binary content. The caller must
// close the returned reader.
func (c *Client) DownloadAsset(ctx context.Context, id ID) (io.ReadCloser, error) {
	notFound := &NotFoundError{Resource: "asset", ID: id}
	resp, err := c.do(ctx, "download asset", "/assets/"+url.PathEscape(string(id))+"/download", nil, notFound)
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}

// GetAccountSubscriptionDetails retrieves the account subscription
// metadata. Doubles as the connectivity and credential health check: bad
// credentials surface as InvalidCredentialsError here before any
// browsing is attempted.
func (c *Client) GetAccountSubscriptionDetails(ctx context.Context) (*Subscription, error) {
	var sub Subscription
	if err := c.getJSON(ctx, "get subscription", "/subscription", nil, &sub, nil); err != nil {
		return nil, err
	}
	return &sub, nil
}
