package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	tokenFileName = "token.json"
	userFileName  = "user.json"

	// TokenEnv overrides the stored token, handy for scripting.
	TokenEnv = "PENNYWISE_TOKEN"
)

// User is the locally persisted profile.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Storage persists the two session keys: the bearer token and the profile.
type Storage interface {
	ReadToken() (string, error)
	WriteToken(token string) error
	ReadUser() (*User, error)
	WriteUser(u User) error
	// Clear removes both keys. Clearing an already-empty storage is a no-op.
	Clear() error
}

// tokenInfo is the on-disk token shape.
type tokenInfo struct {
	Token     string    `json:"token"`
	CreatedAt time.Time `json:"created_at"`
}

// FileStorage keeps the session keys as two files under dir, owner-only.
type FileStorage struct {
	dir string
}

func NewFileStorage(dir string) *FileStorage { return &FileStorage{dir: dir} }

func (f *FileStorage) ReadToken() (string, error) {
	// env override wins over the file
	if env := strings.TrimSpace(os.Getenv(TokenEnv)); env != "" {
		return stripBearer(env), nil
	}

	b, err := os.ReadFile(filepath.Join(f.dir, tokenFileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil // not logged in
		}
		return "", fmt.Errorf("read token: %w", err)
	}
	var ti tokenInfo
	if err := json.Unmarshal(b, &ti); err != nil {
		return "", fmt.Errorf("parse token: %w", err)
	}
	return stripBearer(ti.Token), nil
}

func (f *FileStorage) WriteToken(token string) error {
	token = stripBearer(strings.TrimSpace(token))
	if token == "" {
		return fmt.Errorf("empty token")
	}
	if err := os.MkdirAll(f.dir, 0o700); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	b, err := json.MarshalIndent(tokenInfo{Token: token, CreatedAt: time.Now()}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	if err := os.WriteFile(filepath.Join(f.dir, tokenFileName), b, 0o600); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}

func (f *FileStorage) ReadUser() (*User, error) {
	b, err := os.ReadFile(filepath.Join(f.dir, userFileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read user: %w", err)
	}
	var u User
	if err := json.Unmarshal(b, &u); err != nil {
		return nil, fmt.Errorf("parse user: %w", err)
	}
	return &u, nil
}

func (f *FileStorage) WriteUser(u User) error {
	if err := os.MkdirAll(f.dir, 0o700); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	b, err := json.MarshalIndent(u, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	if err := os.WriteFile(filepath.Join(f.dir, userFileName), b, 0o600); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}

func (f *FileStorage) Clear() error {
	for _, name := range []string{tokenFileName, userFileName} {
		if err := os.Remove(filepath.Join(f.dir, name)); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("remove %s: %w", name, err)
		}
	}
	return nil
}

func stripBearer(s string) string {
	if strings.HasPrefix(strings.ToLower(s), "bearer ") {
		return strings.TrimSpace(s[7:])
	}
	return s
}
