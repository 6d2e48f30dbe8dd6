package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"webdam/internal/oauth"
	"webdam/pkg/logging"
)

const tokenFileName = "token.json"

// tokenExpiryBuffer is the margin added when checking token validity.
// This accounts for clock skew and the request that is about to be made.
const tokenExpiryBuffer = 30 * time.Second

// TokenStore persists the delegated user token between CLI invocations.
//
// SECURITY: the token file is written with 0600 permissions and its
// directory with 0700. Token values are never logged.
type TokenStore struct {
	dir string
}

// NewTokenStore creates a store rooted at the given config directory.
func NewTokenStore(dir string) *TokenStore {
	return &TokenStore{dir: dir}
}

// Save persists a token, replacing any previous one.
func (s *TokenStore) Save(token oauth.Token) error {
	if err := os.MkdirAll(s.dir, 0700); err != nil {
		return fmt.Errorf("failed to create token directory: %w", err)
	}

	data, err := json.MarshalIndent(token, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal token: %w", err)
	}

	path := filepath.Join(s.dir, tokenFileName)
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}

	logging.Info("CLI", "Stored user token at %s (expires %s)", path, token.ExpiresAt.Format(time.RFC3339))
	return nil
}

// Load returns the stored token. A missing file yields AuthRequiredError;
// an expired token yields AuthExpiredError.
func (s *TokenStore) Load(endpoint string) (oauth.Token, error) {
	path := filepath.Join(s.dir, tokenFileName)

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return oauth.Token{}, &AuthRequiredError{Endpoint: endpoint}
		}
		return oauth.Token{}, fmt.Errorf("failed to read token file: %w", err)
	}

	var token oauth.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return oauth.Token{}, fmt.Errorf("failed to unmarshal token file %s: %w", path, err)
	}

	if !token.Valid(tokenExpiryBuffer) {
		return oauth.Token{}, &AuthExpiredError{Endpoint: endpoint}
	}

	return token, nil
}

// Peek returns the stored token without validity checks, plus whether
// one exists at all. Used by status reporting.
func (s *TokenStore) Peek() (oauth.Token, bool, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, tokenFileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return oauth.Token{}, false, nil
		}
		return oauth.Token{}, false, err
	}

	var token oauth.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return oauth.Token{}, false, err
	}
	return token, true, nil
}

// Clear removes the stored token. Clearing an empty store is not an
// error.
func (s *TokenStore) Clear() error {
	err := os.Remove(filepath.Join(s.dir, tokenFileName))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	logging.Info("CLI", "Cleared stored user token")
	return nil
}
