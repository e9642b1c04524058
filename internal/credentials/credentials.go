// Package credentials persists the bearer token used to talk to the clinic
// backend. Clearing it is the forced-logout action run on a 401.
package credentials

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Store is a token file on disk.
type Store struct {
	path string
}

// New returns a Store backed by the file at path.
func New(path string) *Store {
	return &Store{path: path}
}

// Path returns the token file location.
func (s *Store) Path() string {
	return s.path
}

// Load returns the saved token, or "" when none is stored.
func (s *Store) Load() (string, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read credentials: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// Save writes the token with owner-only permissions.
func (s *Store) Save(token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return errors.New("token is empty")
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create credentials dir: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(token+"\n"), 0o600); err != nil {
		return fmt.Errorf("write credentials: %w", err)
	}
	return nil
}

// Clear removes the stored token. Clearing an empty store is not an error.
func (s *Store) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("clear credentials: %w", err)
	}
	return nil
}

// DefaultPath resolves the token file location in priority order:
// 1. DERMAQUIZ_CREDENTIALS environment variable
// 2. $XDG_CONFIG_HOME/dermaquiz/token
// 3. ~/.config/dermaquiz/token
func DefaultPath() (string, error) {
	if p := os.Getenv("DERMAQUIZ_CREDENTIALS"); p != "" {
		return p, nil
	}
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "dermaquiz", "token"), nil
}
