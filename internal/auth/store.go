package auth

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/desertthunder/ytbak/internal/shared"
	"golang.org/x/oauth2"
)

// TokenStore persists the single bearer token record to a JSON file.
type TokenStore struct {
	path string
}

// NewTokenStore creates a TokenStore backed by the file at path.
func NewTokenStore(path string) *TokenStore {
	return &TokenStore{path: path}
}

// Path returns the location of the stored token record.
func (t *TokenStore) Path() string {
	return t.path
}

// Load reads the stored token.
//
// A missing file is not an error: it returns (nil, nil) and signals that the
// authorization flow must run. An unreadable or corrupt record returns a
// wrapped [shared.ErrCredentialLoad].
func (t *TokenStore) Load() (*oauth2.Token, error) {
	data, err := os.ReadFile(t.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrCredentialLoad, err)
	}

	var token oauth2.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrCredentialLoad, err)
	}
	if token.AccessToken == "" {
		return nil, fmt.Errorf("%w: record has no access token", shared.ErrCredentialLoad)
	}

	return &token, nil
}

// Save overwrites the stored token record with the given token.
func (t *TokenStore) Save(token *oauth2.Token) error {
	if err := os.MkdirAll(filepath.Dir(t.path), 0755); err != nil {
		return fmt.Errorf("failed to create token directory: %w", err)
	}

	data, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("failed to marshal token: %w", err)
	}

	if err := os.WriteFile(t.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}

	return nil
}
