package session

import (
	"os"
	"path/filepath"
	"strings"
)

// TokenStore persists the bearer token as a single file under the user
// config dir, the CLI counterpart of the browser's localStorage key. It
// implements api.TokenSource.
type TokenStore struct {
	path string
}

// NewTokenStore uses an explicit file path, mainly for tests.
func NewTokenStore(path string) *TokenStore {
	return &TokenStore{path: path}
}

// DefaultTokenStore stores the token under <user config dir>/minefin/token.
func DefaultTokenStore() (*TokenStore, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return nil, err
	}
	return &TokenStore{path: filepath.Join(dir, "minefin", "token")}, nil
}

// Token returns the persisted token, or "" when none is stored.
func (s *TokenStore) Token() string {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(raw))
}

// Save writes the token, creating the parent directory if needed. The file
// is owner-readable only.
func (s *TokenStore) Save(token string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(s.path, []byte(token), 0o600)
}

// Clear removes the persisted token. A token that was never stored is fine.
func (s *TokenStore) Clear() error {
	err := os.Remove(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
