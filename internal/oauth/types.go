package oauth

import (
	"fmt"
	"time"
)

// Token represents a Webdam OAuth access token with associated metadata.
// The broker returns tokens by value; persisting them (per user, per
// session) is the caller's responsibility.
type Token struct {
	// AccessToken is the bearer token used for authorization.
	AccessToken string `json:"access_token"`

	// TokenType is typically "Bearer".
	TokenType string `json:"token_type,omitempty"`

	// RefreshToken is used to obtain new access tokens (optional).
	RefreshToken string `json:"refresh_token,omitempty"`

	// ExpiresIn is the token lifetime in seconds as reported by the API.
	ExpiresIn int `json:"expires_in,omitempty"`

	// ExpiresAt is the calculated expiration timestamp.
	ExpiresAt time.Time `json:"expires_at,omitempty"`
}

// Valid reports whether the token can still be used. A token that expires
// within the given margin counts as expired so that a call started now
// does not ride on a token that lapses mid-flight.
func (t *Token) Valid(margin time.Duration) bool {
	if t.AccessToken == "" {
		return false
	}
	if t.ExpiresAt.IsZero() {
		return false // Webdam always sets expires_in; no expiry means a broken token
	}
	return time.Now().Add(margin).Before(t.ExpiresAt)
}

// ExchangeErrorKind classifies why a code-for-token exchange failed.
type ExchangeErrorKind int

const (
	// KindInvalidCredentials indicates the API rejected the code or the
	// client credentials (HTTP 4xx). The flow must be restarted.
	KindInvalidCredentials ExchangeErrorKind = iota
	// KindNetwork indicates a transport failure or timeout.
	KindNetwork
	// KindMalformedResponse indicates the API returned a body that does
	// not match the documented token response shape.
	KindMalformedResponse
)

// String returns a human-readable name for the exchange error kind.
func (k ExchangeErrorKind) String() string {
	switch k {
	case KindInvalidCredentials:
		return "invalid credentials"
	case KindNetwork:
		return "network error"
	case KindMalformedResponse:
		return "malformed response"
	default:
		return "unknown"
	}
}

// ExchangeError is returned when exchanging an authorization code fails.
// No partial token is ever returned alongside it, and the broker never
// retries: the caller restarts the flow from AuthorizationURL.
type ExchangeError struct {
	Kind   ExchangeErrorKind
	Status int // HTTP status, 0 when the request never completed
	Reason error
}

func (e *ExchangeError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("oauth: token exchange failed (%s, status %d)", e.Kind, e.Status)
	}
	return fmt.Sprintf("oauth: token exchange failed (%s)", e.Kind)
}

func (e *ExchangeError) Unwrap() error {
	return e.Reason
}
