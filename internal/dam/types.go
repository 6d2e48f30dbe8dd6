package dam

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
)

// ID is an opaque Webdam resource identifier. The API is inconsistent
// about whether ids arrive as JSON numbers or strings, so unmarshalling
// accepts both.
type ID string

// RootFolderID is the synthetic root of the folder tree. It never holds
// assets directly and its parent is itself.
const RootFolderID ID = "0"

// IsRoot reports whether the id names the synthetic root folder.
func (id ID) IsRoot() bool {
	return id == RootFolderID || id == ""
}

// UnmarshalJSON accepts both `"123"` and `123` on the wire.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*id = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id is neither string nor number: %w", err)
	}
	*id = ID(n.String())
	return nil
}

// Asset lifecycle states as reported by the API.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
	StatusDeleted  = "deleted"
	StatusPending  = "pending"
)

// Thumbnail is one entry of an asset's or folder's thumbnail list. The
// API orders the list by ascending resolution.
type Thumbnail struct {
	Size string `json:"size,omitempty"`
	URL  string `json:"url"`
}

// Folder is a node of the folder tree as returned by one API call.
// Folders contains the immediate sub-folders only (one level).
type Folder struct {
	ID            ID          `json:"id"`
	Name          string      `json:"name"`
	ParentID      ID          `json:"parent"`
	AssetCount    int         `json:"numassets"`
	Folders       []Folder    `json:"folders,omitempty"`
	ThumbnailURLs []Thumbnail `json:"thumbnailurls,omitempty"`
}

// FolderRef is the containing-folder reference embedded in an asset.
type FolderRef struct {
	ID   ID     `json:"id"`
	Name string `json:"name"`
}

// UserRef is the owning-user reference embedded in an asset.
type UserRef struct {
	Name string `json:"name"`
}

// Expiration carries optional asset expiration details, present only
// when explicitly requested.
type Expiration struct {
	Date  string `json:"date"`
	Notes string `json:"notes,omitempty"`
}

// MetadataField is one label/value pair of an asset's extended (XMP)
// metadata.
type MetadataField struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Asset is an immutable snapshot of a DAM asset as returned by one API
// call. The client never mutates or caches assets across calls.
type Asset struct {
	ID            ID              `json:"id"`
	Filename      string          `json:"filename"`
	Filetype      string          `json:"filetype"`
	Filesize      int64           `json:"filesize"`
	Width         int             `json:"width"`
	Height        int             `json:"height"`
	Colorspace    string          `json:"colorspace"`
	Version       int             `json:"version"`
	Description   string          `json:"description"`
	Status        string          `json:"status"`
	DateCreated   string          `json:"datecreated"`
	DateModified  string          `json:"datemodified"`
	DateCaptured  string          `json:"datecaptured,omitempty"`
	Folder        *FolderRef      `json:"folder,omitempty"`
	User          *UserRef        `json:"user,omitempty"`
	Expiration    *Expiration     `json:"expiration,omitempty"`
	ThumbnailURLs []Thumbnail     `json:"thumbnailurls,omitempty"`
	XMPMetadata   []MetadataField `json:"xmp_metadata,omitempty"`
}

// PreviewURL returns the best available thumbnail URL, preferring higher
// resolutions. Empty when the asset has no thumbnails.
func (a *Asset) PreviewURL() string {
	if len(a.ThumbnailURLs) == 0 {
		return ""
	}
	return a.ThumbnailURLs[len(a.ThumbnailURLs)-1].URL
}

// Sort fields accepted by the API.
const (
	SortByFilename     = "filename"
	SortByFilesize     = "filesize"
	SortByDateCreated  = "datecreated"
	SortByDateModified = "datemodified"
)

// Sort directions accepted by the API.
const (
	SortAscending  = "asc"
	SortDescending = "desc"
)

// Type filter values accepted by the API.
const (
	TypeImage        = "image"
	TypeAudioVideo   = "audiovideo"
	TypeDocument     = "document"
	TypePresentation = "presentation"
	TypeOther        = "other"
)

// Page size bounds. The API's behavior without an explicit limit is
// undefined, so every listing call sends one.
const (
	DefaultPageSize = 12
	MaxPageSize     = 100
)

// SearchQuery is a pure value describing one page of a listing or search.
// Zero values select the documented defaults (sort by creation date,
// ascending, DefaultPageSize).
type SearchQuery struct {
	Keyword    string
	TypeFilter string
	SortField  string
	SortDir    string
	Offset     int
	Limit      int
	FolderID   ID // restricts a search to one folder subtree
}

// values renders the query as wire parameters, applying defaults and the
// page-size bound.
func (q SearchQuery) values() url.Values {
	v := url.Values{}
	v.Set("limit", strconv.Itoa(q.boundedLimit()))
	v.Set("offset", strconv.Itoa(max(q.Offset, 0)))

	sortField := q.SortField
	if sortField == "" {
		sortField = SortByDateCreated
	}
	v.Set("sortby", sortField)

	sortDir := q.SortDir
	if sortDir == "" {
		sortDir = SortAscending
	}
	v.Set("sortdir", sortDir)

	if q.TypeFilter != "" {
		v.Set("types", q.TypeFilter)
	}
	if q.Keyword != "" {
		v.Set("query", q.Keyword)
	}
	if !q.FolderID.IsRoot() {
		v.Set("folderid", string(q.FolderID))
	}
	return v
}

func (q SearchQuery) boundedLimit() int {
	switch {
	case q.Limit <= 0:
		return DefaultPageSize
	case q.Limit > MaxPageSize:
		return MaxPageSize
	default:
		return q.Limit
	}
}

// SearchResult is one page of assets plus the pagination facts needed to
// render a pager.
type SearchResult struct {
	// TotalCount is the authoritative total for pager rendering. When a
	// type filter is active this is the facet count for that type, not
	// the folder's raw asset count.
	TotalCount int

	// Items is the requested page of assets in server order.
	Items []Asset

	// FacetCounts maps type-filter values to their result counts.
	FacetCounts map[string]int
}

// LastPage returns the 0-indexed last page for a result set of
// totalCount items at the given page size.
func LastPage(totalCount, pageSize int) int {
	if pageSize <= 0 || totalCount <= 0 {
		return 0
	}
	return totalCount / pageSize
}

// Subscription describes the account the credentials are bound to. Used
// for connectivity checks and for deep links into the provider's own UI.
type Subscription struct {
	URL         string `json:"url"`
	UsedSeats   int    `json:"usedseats"`
	MaxSeats    int    `json:"maxseats"`
	DiskUsedMB  int64  `json:"diskusagemb"`
	DiskQuotaMB int64  `json:"diskquotamb"`
}

// AssetWebURL builds a deep link to an asset inside the provider's web
// UI, e.g. https://demo.webdamdb.com/cloud/#asset/12345.
func AssetWebURL(subscriptionURL string, id ID) string {
	return fmt.Sprintf("https://%s/cloud/#asset/%s", subscriptionURL, id)
}
