package dam

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"webdam/internal/oauth"
	"webdam/pkg/logging"
)

const (
	// DefaultBaseURL is the production Webdam API endpoint.
	DefaultBaseURL = "https://apiv2.webdamdb.com"

	// defaultTimeout bounds every remote call. A call that exceeds it
	// fails with NetworkError rather than hanging.
	defaultTimeout = 30 * time.Second

	// tokenExpiryMargin is how close to expiry a token may be before the
	// client refuses to use it.
	tokenExpiryMargin = 30 * time.Second
)

// Config holds the static client parameters, set once at construction.
type Config struct {
	// BaseURL of the DAM API. Empty selects DefaultBaseURL.
	BaseURL string

	// Timeout for each remote call. Zero selects the default.
	Timeout time.Duration
}

// CredentialSource supplies a bearer token for each request. The two
// implementations are ServiceCredentials (shared account credentials for
// background access) and DelegatedToken (a per-user token obtained via
// the OAuth broker). Which mode to use is the caller's policy; the
// client is simply parameterized by it at construction.
type CredentialSource interface {
	// BearerToken returns a usable access token or fails with one of the
	// typed errors of this package.
	BearerToken(ctx context.Context) (string, error)
}

// ServiceCredentials authorizes calls with the static service account
// via the OAuth2 password grant. The minted token is the single cache
// this package holds: it is reused across calls and re-minted after
// expiry, guarded by a mutex so concurrent calls mint at most once.
type ServiceCredentials struct {
	Username     string
	Password     string
	ClientID     string
	ClientSecret string

	baseURL    string
	httpClient *http.Client

	mu     sync.Mutex
	cached oauth.Token
}

// NewServiceCredentials binds service-account credentials to the API
// endpoint they authenticate against.
func NewServiceCredentials(cfg Config, username, password, clientID, clientSecret string) *ServiceCredentials {
	return &ServiceCredentials{
		Username:     username,
		Password:     password,
		ClientID:     clientID,
		ClientSecret: clientSecret,
		baseURL:      baseURLOrDefault(cfg.BaseURL),
		httpClient:   &http.Client{Timeout: timeoutOrDefault(cfg.Timeout)},
	}
}

// BearerToken returns the cached service token, minting a fresh one via
// the password grant when the cache is empty or near expiry.
func (s *ServiceCredentials) BearerToken(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cached.Valid(tokenExpiryMargin) {
		return s.cached.AccessToken, nil
	}

	token, err := s.mint(ctx)
	if err != nil {
		return "", err
	}
	s.cached = token

	logging.Debug("Catalog", "Minted service token (expires_in=%d)", token.ExpiresIn)
	return token.AccessToken, nil
}

func (s *ServiceCredentials) mint(ctx context.Context) (oauth.Token, error) {
	data := url.Values{}
	data.Set("grant_type", "password")
	data.Set("username", s.Username)
	data.Set("password", s.Password)
	data.Set("client_id", s.ClientID)
	data.Set("client_secret", s.ClientSecret)

	endpoint := s.baseURL + "/oauth2/token"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(data.Encode()))
	if err != nil {
		return oauth.Token{}, &NetworkError{Op: "mint service token", URL: endpoint, Err: err}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return oauth.Token{}, &NetworkError{Op: "mint service token", URL: endpoint, Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		// fall through to decode
	case resp.StatusCode >= 500:
		return oauth.Token{}, &NetworkError{
			Op: "mint service token", URL: endpoint,
			Err: fmt.Errorf("server returned status %d", resp.StatusCode),
		}
	default:
		// 400/401 here means the configured username/password or client
		// id/secret are wrong.
		return oauth.Token{}, &InvalidCredentialsError{Status: resp.StatusCode}
	}

	var token oauth.Token
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return oauth.Token{}, &MalformedResponseError{URL: endpoint, Err: err}
	}
	if token.AccessToken == "" {
		return oauth.Token{}, &MalformedResponseError{
			URL: endpoint,
			Err: errors.New("token response missing access_token"),
		}
	}
	token.ExpiresAt = time.Now().Add(time.Duration(token.ExpiresIn) * time.Second)
	return token, nil
}

// DelegatedToken authorizes calls with a previously obtained end-user
// token, passed in by value. The client never refreshes it: expiry is
// advisory data the caller inspects, and an expired token fails every
// call with InvalidCredentials until the user re-authenticates.
type DelegatedToken struct {
	Token oauth.Token
}

// BearerToken returns the delegated token or fails without a network
// call when the token is expired.
func (d DelegatedToken) BearerToken(_ context.Context) (string, error) {
	if !d.Token.Valid(tokenExpiryMargin) {
		return "", &InvalidCredentialsError{Reason: "delegated token expired, re-authentication required"}
	}
	return d.Token.AccessToken, nil
}

// Client is a typed facade over the Webdam REST API. It holds only
// immutable configuration and a credential source after construction;
// every operation is a synchronous request/response unit of work and
// instances are safe for concurrent use.
type Client struct {
	baseURL    string
	creds      CredentialSource
	httpClient *http.Client
}

// NewClient creates a catalog client bound to exactly one credential
// mode.
func NewClient(cfg Config, creds CredentialSource) *Client {
	return &Client{
		baseURL:    baseURLOrDefault(cfg.BaseURL),
		creds:      creds,
		httpClient: &http.Client{Timeout: timeoutOrDefault(cfg.Timeout)},
	}
}

// do performs an authorized GET and classifies transport- and
// status-level failures. notFound, when non-nil, is returned for a 404;
// a nil notFound treats 404 as an unexpected response. On success the
// caller owns the response body.
func (c *Client) do(ctx context.Context, op, path string, query url.Values, notFound error) (*http.Response, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	token, err := c.creds.BearerToken(ctx)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, &NetworkError{Op: op, URL: u, Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &NetworkError{Op: op, URL: u, Err: err}
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return resp, nil
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		resp.Body.Close()
		// A 401 mid-flight is surfaced as-is, never silently retried
		// with a refreshed token.
		return nil, &InvalidCredentialsError{Status: resp.StatusCode}
	case resp.StatusCode == http.StatusNotFound:
		resp.Body.Close()
		if notFound != nil {
			return nil, notFound
		}
		return nil, &MalformedResponseError{URL: u, Err: errors.New("unexpected status 404")}
	case resp.StatusCode >= 500:
		resp.Body.Close()
		return nil, &NetworkError{Op: op, URL: u, Err: fmt.Errorf("server returned status %d", resp.StatusCode)}
	default:
		resp.Body.Close()
		return nil, &MalformedResponseError{URL: u, Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}
}

// getJSON performs an authorized GET and decodes the JSON body into out.
func (c *Client) getJSON(ctx context.Context, op, path string, query url.Values, out interface{}, notFound error) error {
	resp, err := c.do(ctx, op, path, query, notFound)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &NetworkError{Op: op, URL: c.baseURL + path, Err: err}
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &MalformedResponseError{URL: c.baseURL + path, Err: err}
	}
	return nil
}

func baseURLOrDefault(base string) string {
	if base == "" {
		return DefaultBaseURL
	}
	return strings.TrimSuffix(base, "/")
}

func timeoutOrDefault(d time.Duration) time.Duration {
	if d <= 0 {
		return defaultTimeout
	}
	return d
}
