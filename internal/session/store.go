package session

import (
	"context"
	"errors"
	"io"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/AdnanMGHaider/pennywise-cli/internal/api"
)

// Route is a navigation target raised by the store's side effects.
type Route string

const (
	RouteDashboard Route = "dashboard"
	RouteLanding   Route = "landing"
)

// Session is an authenticated identity. Token presence does not guarantee
// validity; Restore verifies against the profile endpoint before trusting it.
type Session struct {
	User  User
	Token string
}

// AuthAPI is the slice of the backend the store needs. *api.Client satisfies
// it; tests substitute a fake.
type AuthAPI interface {
	Login(ctx context.Context, username, password string) (api.AuthResponse, error)
	Register(ctx context.Context, username, email, password string) (api.AuthResponse, error)
	Profile(ctx context.Context, token string) (api.UserProfile, error)
}

// Store owns the session lifecycle: restore from storage at startup, login,
// register, logout. Storage and navigation are injected so tests can observe
// both side effects.
type Store struct {
	storage  Storage
	backend  AuthAPI
	navigate func(Route)
	log      *logrus.Logger

	mu      sync.RWMutex
	current *Session
}

func NewStore(storage Storage, backend AuthAPI, navigate func(Route), log *logrus.Logger) *Store {
	if navigate == nil {
		navigate = func(Route) {}
	}
	if log == nil {
		log = logrus.New()
		log.Out = io.Discard
	}
	return &Store{storage: storage, backend: backend, navigate: navigate, log: log}
}

// Restore loads the persisted session and verifies the token against the
// profile endpoint before trusting it. Any verification failure, including a
// network one, clears the persisted keys; a stale session is worse than a
// fresh login prompt.
func (s *Store) Restore(ctx context.Context) error {
	token, err := s.storage.ReadToken()
	if err != nil {
		return err
	}
	if token == "" {
		return nil // not logged in
	}

	profile, err := s.backend.Profile(ctx, token)
	if err != nil {
		s.log.WithField("error", err.Error()).Warn("stored token failed verification")
		s.clear()
		return nil
	}

	user := User{ID: profile.ID, Username: profile.Username, Email: profile.Email}
	// refresh the stored profile in case the backend updated it
	if err := s.storage.WriteUser(user); err != nil {
		return err
	}

	s.mu.Lock()
	s.current = &Session{User: user, Token: token}
	s.mu.Unlock()
	s.log.WithField("username", user.Username).Info("session restored")
	return nil
}

// Login exchanges credentials for a session. Every backend rejection maps to
// the same generic AuthError; the UI never learns whether the user or the
// password was wrong.
func (s *Store) Login(ctx context.Context, identifier, secret string) error {
	resp, err := s.backend.Login(ctx, identifier, secret)
	if err != nil {
		s.log.WithField("username", identifier).Warn("login rejected")
		return &api.AuthError{Message: "Invalid credentials"}
	}
	return s.establish(resp, identifier)
}

// Register creates an account and logs it in. Backend error text is surfaced
// when available (duplicate username and the like).
func (s *Store) Register(ctx context.Context, name, email, secret string) error {
	resp, err := s.backend.Register(ctx, name, email, secret)
	if err != nil {
		var ve *api.ValidationError
		if errors.As(err, &ve) && ve.Message != "" {
			return &api.AuthError{Message: ve.Message}
		}
		var fe *api.FetchError
		if errors.As(err, &fe) && fe.Message != "" {
			return &api.AuthError{Message: fe.Message}
		}
		return &api.AuthError{Message: "Registration failed"}
	}
	return s.establish(resp, name)
}

func (s *Store) establish(resp api.AuthResponse, fallbackName string) error {
	token := resp.BearerToken()
	if token == "" {
		return &api.AuthError{Message: "Invalid credentials"}
	}
	username := resp.Username
	if username == "" {
		username = fallbackName
	}
	user := User{ID: resp.ID, Username: username, Email: resp.Email}

	if err := s.storage.WriteToken(token); err != nil {
		return err
	}
	if err := s.storage.WriteUser(user); err != nil {
		return err
	}

	s.mu.Lock()
	s.current = &Session{User: user, Token: token}
	s.mu.Unlock()

	s.log.WithField("username", user.Username).Info("session established")
	s.navigate(RouteDashboard)
	return nil
}

// Logout clears the persisted keys and the in-memory session, then routes to
// the landing page. Pages call it on any 401/403.
func (s *Store) Logout() {
	s.clear()
	s.log.Info("session cleared")
	s.navigate(RouteLanding)
}

func (s *Store) clear() {
	if err := s.storage.Clear(); err != nil {
		s.log.WithField("error", err.Error()).Warn("clearing session storage")
	}
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()
}

// Session returns a copy of the current session, or nil when unauthenticated.
func (s *Store) Session() *Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil
	}
	copied := *s.current
	return &copied
}

// Token is the current bearer token, empty when unauthenticated.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return ""
	}
	return s.current.Token
}

func (s *Store) Authenticated() bool { return s.Token() != "" }
