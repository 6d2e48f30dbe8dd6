package browser

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"webdam/internal/dam"
	"webdam/pkg/logging"
)

// Crumb is one entry of the breadcrumb trail.
type Crumb struct {
	ID   dam.ID
	Name string
}

// rootCrumb is the synthetic root folder. It exists only client-side;
// the API has no folder "0".
var rootCrumb = Crumb{ID: dam.RootFolderID, Name: "Home"}

// View is the data needed to render one browser screen: either a folder
// view (subfolders plus a page of assets) or a search overlay.
type View struct {
	// Folder is the folder being viewed. Nil while a search overlay is
	// active.
	Folder *dam.Folder

	// Breadcrumbs is the trail from root to the current folder. It is
	// unchanged by search overlays.
	Breadcrumbs []Crumb

	// Subfolders are the immediate children of the current folder.
	Subfolders []dam.Folder

	// Result is the current page of assets (folder contents or search
	// hits). Nil at the root, which holds no assets.
	Result *dam.SearchResult

	// Page is the 0-indexed current page, LastPage the 0-indexed last
	// page derived from the authoritative total count.
	Page     int
	LastPage int

	// SearchActive marks a search overlay.
	SearchActive bool
}

// Session is a folder-browser navigation session: an explicit ordered
// breadcrumb stack with push and pop-to transitions, plus a search
// overlay that leaves the stack untouched. Sessions hold navigation
// state only; every view fetches fresh data through the catalog client.
//
// A session belongs to one user interaction (one picker instance) and is
// not safe for concurrent use.
type Session struct {
	ID     string
	client *dam.Client
	crumbs []Crumb

	// lastQuery carries the page/sort/filter settings across transitions
	// within the same folder.
	lastQuery dam.SearchQuery
}

// NewSession starts a navigation session at the synthetic root folder.
func NewSession(client *dam.Client) *Session {
	return &Session{
		ID:     uuid.NewString(),
		client: client,
		crumbs: []Crumb{rootCrumb},
	}
}

// Current returns the folder id the session is at.
func (s *Session) Current() Crumb {
	return s.crumbs[len(s.crumbs)-1]
}

// Breadcrumbs returns a copy of the trail from root to the current
// folder.
func (s *Session) Breadcrumbs() []Crumb {
	trail := make([]Crumb, len(s.crumbs))
	copy(trail, s.crumbs)
	return trail
}

// Root renders the root view: top-level folders only, no assets.
func (s *Session) Root(ctx context.Context) (*View, error) {
	folders, err := s.client.ListTopLevelFolders(ctx)
	if err != nil {
		return nil, err
	}
	s.crumbs = []Crumb{rootCrumb}
	return &View{
		Breadcrumbs: s.Breadcrumbs(),
		Subfolders:  folders,
	}, nil
}

// EnterFolder pushes a child folder onto the trail and renders it.
// Entering a folder resets paging to the first page; sort and filter
// settings carry over.
func (s *Session) EnterFolder(ctx context.Context, id dam.ID, query dam.SearchQuery) (*View, error) {
	if id.IsRoot() {
		return s.Root(ctx)
	}

	query.Offset = 0
	view, err := s.renderFolder(ctx, id, query)
	if err != nil {
		return nil, err
	}

	s.crumbs = append(s.crumbs, Crumb{ID: view.Folder.ID, Name: view.Folder.Name})
	view.Breadcrumbs = s.Breadcrumbs()

	logging.Debug("Browser", "Session %s entered folder %s (depth %d)", s.ID, id, len(s.crumbs))
	return view, nil
}

// NavigateBreadcrumb pops the trail down to the target crumb, discarding
// every crumb above it, and renders the target folder. The target must
// already be on the trail.
func (s *Session) NavigateBreadcrumb(ctx context.Context, id dam.ID, query dam.SearchQuery) (*View, error) {
	at := -1
	for i, crumb := range s.crumbs {
		if crumb.ID == id {
			at = i
			break
		}
	}
	if at < 0 {
		return nil, fmt.Errorf("browser: folder %s is not on the breadcrumb trail", id)
	}

	s.crumbs = s.crumbs[:at+1]
	if s.Current().ID.IsRoot() {
		return s.Root(ctx)
	}

	query.Offset = 0
	view, err := s.renderFolder(ctx, id, query)
	if err != nil {
		return nil, err
	}
	view.Breadcrumbs = s.Breadcrumbs()
	return view, nil
}

// Page re-renders the current folder at the paging/sort/filter settings
// in query without touching the trail.
func (s *Session) Page(ctx context.Context, query dam.SearchQuery) (*View, error) {
	current := s.Current()
	if current.ID.IsRoot() {
		return s.Root(ctx)
	}
	view, err := s.renderFolder(ctx, current.ID, query)
	if err != nil {
		return nil, err
	}
	view.Breadcrumbs = s.Breadcrumbs()
	return view, nil
}

// Search renders a search overlay. The breadcrumb trail is left exactly
// as it was: leaving search (by navigating or re-rendering the current
// folder) restores the prior folder view unchanged.
func (s *Session) Search(ctx context.Context, query dam.SearchQuery) (*View, error) {
	result, err := s.client.SearchAssets(ctx, query)
	if err != nil {
		return nil, err
	}

	pageSize := query.Limit
	if pageSize <= 0 {
		pageSize = dam.DefaultPageSize
	}

	return &View{
		Breadcrumbs:  s.Breadcrumbs(),
		Result:       result,
		Page:         pageOf(query.Offset, pageSize),
		LastPage:     dam.LastPage(result.TotalCount, pageSize),
		SearchActive: true,
	}, nil
}

// CloseSearch re-renders the folder the session was at before the search
// overlay opened, with the paging/sort/filter settings it had then.
func (s *Session) CloseSearch(ctx context.Context) (*View, error) {
	return s.Page(ctx, s.lastQuery)
}

// renderFolder fetches a folder and one page of its assets.
func (s *Session) renderFolder(ctx context.Context, id dam.ID, query dam.SearchQuery) (*View, error) {
	folder, err := s.client.GetFolder(ctx, id)
	if err != nil {
		return nil, err
	}

	query.FolderID = ""
	result, err := s.client.GetFolderAssets(ctx, id, query)
	if err != nil {
		return nil, err
	}

	pageSize := query.Limit
	if pageSize <= 0 {
		pageSize = dam.DefaultPageSize
	}

	s.lastQuery = query
	return &View{
		Folder:     folder,
		Subfolders: folder.Folders,
		Result:     result,
		Page:       pageOf(query.Offset, pageSize),
		LastPage:   dam.LastPage(result.TotalCount, pageSize),
	}, nil
}

// Selectable reports whether an asset may be picked from a view: only
// active assets are eligible.
func Selectable(a *dam.Asset) bool {
	return a.Status == dam.StatusActive
}

func pageOf(offset, pageSize int) int {
	if pageSize <= 0 || offset <= 0 {
		return 0
	}
	return offset / pageSize
}
