package dam

import (
	"fmt"
)

// The catalog client reports every remote-call failure as exactly one of
// the typed errors below. Callers branch with errors.As; none of these
// are retried automatically.

// NotFoundError indicates that an id did not resolve to a resource.
type NotFoundError struct {
	// Resource names what was looked up, e.g. "asset" or "folder".
	Resource string
	ID       ID
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("dam: %s %s not found", e.Resource, e.ID)
}

// InvalidCredentialsError indicates the API rejected the static service
// credentials or the delegated token. The user must re-authenticate.
type InvalidCredentialsError struct {
	// Status is the HTTP status that triggered the rejection, or 0 when
	// the client refused to place the call (expired delegated token).
	Status int
	Reason string
}

func (e *InvalidCredentialsError) Error() string {
	if e.Reason != "" {
		return "dam: invalid credentials: " + e.Reason
	}
	return fmt.Sprintf("dam: invalid credentials (status %d)", e.Status)
}

// NetworkError indicates a transport failure, a timeout or a server-side
// (5xx) condition. Transient; the caller may retry the whole operation.
type NetworkError struct {
	Op  string
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("dam: %s: network error calling %s: %v", e.Op, e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// MalformedResponseError indicates the API returned a body that does not
// match the documented shape. Treated as a defect and surfaced verbatim,
// never silently coerced.
type MalformedResponseError struct {
	URL string
	Err error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("dam: malformed response from %s: %v", e.URL, e.Err)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}

// TraversalTooDeepError is returned when folder-tree flattening hits the
// defensive depth cap. The API guarantees a tree, so reaching the cap
// means an upstream invariant broke.
type TraversalTooDeepError struct {
	FolderID ID
	Depth    int
}

func (e *TraversalTooDeepError) Error() string {
	return fmt.Sprintf("dam: folder traversal exceeded depth %d at folder %s", e.Depth, e.FolderID)
}
