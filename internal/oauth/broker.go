package oauth

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"webdam/pkg/logging"
)

const (
	// defaultTimeout bounds the server-to-server token exchange. No remote
	// call may hang past this; expiry surfaces as a network-kind error.
	defaultTimeout = 30 * time.Second

	// stateLength is the number of random bytes in a state parameter.
	stateLength = 32
)

// Config holds the static parameters of the authorization-code flow.
// All fields are fixed for the process lifetime.
type Config struct {
	// BaseURL is the DAM API base, e.g. "https://apiv2.webdamdb.com".
	BaseURL string

	// ClientID and ClientSecret identify this integration to the API.
	ClientID     string
	ClientSecret string

	// CallbackURL is the absolute URL the provider redirects back to
	// after the user authorizes, e.g. "https://cms.example.com/webdam/authFinish".
	CallbackURL string
}

// Broker manages the authorization-code OAuth2 flow against the DAM API.
// It builds authorize URLs, validates anti-forgery state and exchanges
// authorization codes for tokens. The broker holds no per-flow state:
// the caller persists the state parameter and the resulting token.
type Broker struct {
	cfg        Config
	httpClient *http.Client
}

// NewBroker creates a broker for the given configuration. A nil httpClient
// selects a default client with a bounded timeout.
func NewBroker(cfg Config, httpClient *http.Client) *Broker {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &Broker{
		cfg:        cfg,
		httpClient: httpClient,
	}
}

// AuthorizationURL builds the provider authorize URL for a new flow and
// returns it together with a fresh single-use state parameter. The caller
// must keep the state (e.g. in a short-lived session) and hand it back to
// ValidateState when the provider redirects to the callback. returnPath is
// embedded in the redirect URI so the caller can resume where the user
// left off.
func (b *Broker) AuthorizationURL(returnPath string) (string, string, error) {
	state, err := generateState()
	if err != nil {
		return "", "", fmt.Errorf("failed to generate state: %w", err)
	}

	authURL, err := url.Parse(strings.TrimSuffix(b.cfg.BaseURL, "/") + "/oauth2/authorize")
	if err != nil {
		return "", "", fmt.Errorf("invalid base URL: %w", err)
	}

	query := authURL.Query()
	query.Set("response_type", "code")
	query.Set("state", state)
	query.Set("redirect_uri", b.redirectURI(returnPath))
	query.Set("client_id", b.cfg.ClientID)
	authURL.RawQuery = query.Encode()

	logging.Debug("OAuth", "Generated auth URL for return path %s", returnPath)

	return authURL.String(), state, nil
}

// ValidateState compares the state received on the callback against the
// state issued for this flow. The comparison does not short-circuit on a
// prefix match. Any mismatch or absence returns false; it never errors.
func (b *Broker) ValidateState(received, expected string) bool {
	if received == "" || expected == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(received), []byte(expected)) == 1
}

// ExchangeCode exchanges an authorization code for a token. returnPath
// must match the value passed to AuthorizationURL, since the provider
// verifies that the redirect URI is identical in both requests.
//
// Failures are returned as *ExchangeError and are never retried here; the
// caller restarts the flow from AuthorizationURL.
func (b *Broker) ExchangeCode(ctx context.Context, code, returnPath string) (Token, error) {
	data := url.Values{}
	data.Set("grant_type", "authorization_code")
	data.Set("code", code)
	data.Set("redirect_uri", b.redirectURI(returnPath))
	data.Set("client_id", b.cfg.ClientID)
	data.Set("client_secret", b.cfg.ClientSecret)

	endpoint := strings.TrimSuffix(b.cfg.BaseURL, "/") + "/oauth2/token"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(data.Encode()))
	if err != nil {
		return Token{}, &ExchangeError{Kind: KindNetwork, Reason: err}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return Token{}, &ExchangeError{Kind: KindNetwork, Reason: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Token{}, &ExchangeError{Kind: KindNetwork, Status: resp.StatusCode, Reason: err}
	}

	if resp.StatusCode != http.StatusOK {
		// Log the body for debugging but keep it out of the error message;
		// provider error descriptions can contain sensitive hints.
		logging.Debug("OAuth", "Token exchange failed: status=%d body=%s", resp.StatusCode, string(body))
		kind := KindInvalidCredentials
		if resp.StatusCode >= 500 {
			kind = KindNetwork
		}
		return Token{}, &ExchangeError{Kind: kind, Status: resp.StatusCode}
	}

	var token Token
	if err := json.Unmarshal(body, &token); err != nil {
		return Token{}, &ExchangeError{Kind: KindMalformedResponse, Status: resp.StatusCode, Reason: err}
	}
	if token.AccessToken == "" {
		return Token{}, &ExchangeError{
			Kind:   KindMalformedResponse,
			Status: resp.StatusCode,
			Reason: fmt.Errorf("token response missing access_token"),
		}
	}

	token.ExpiresAt = time.Now().Add(time.Duration(token.ExpiresIn) * time.Second)

	logging.Debug("OAuth", "Successfully exchanged code for token (expires_in=%d)", token.ExpiresIn)

	return token, nil
}

// redirectURI builds the callback URL with the return path embedded, so
// that the finishing handler knows where to send the user afterwards.
func (b *Broker) redirectURI(returnPath string) string {
	if returnPath == "" {
		return b.cfg.CallbackURL
	}
	sep := "?"
	if strings.Contains(b.cfg.CallbackURL, "?") {
		sep = "&"
	}
	return b.cfg.CallbackURL + sep + "auth_finish_redirect=" + url.QueryEscape(returnPath)
}

// generateState creates a cryptographically random, unguessable state
// parameter for one authorization attempt.
func generateState() (string, error) {
	nonce := make([]byte, stateLength)
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(nonce), nil
}
