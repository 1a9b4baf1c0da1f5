package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// Identity describes the authenticated user as known to the client.
type Identity struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
}

type storedSession struct {
	Identity
	Token string `json:"token"`
}

// Store holds the client-side session state and persists it across process
// restarts. It is the single owner of the session grant: the auth operations
// set it, and logout or any 401 response clears it. All other components only
// read it.
type Store struct {
	mu      sync.RWMutex
	path    string
	session *storedSession
}

// DefaultSessionPath returns the well-known location of the persisted session.
func DefaultSessionPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve config directory: %w", err)
	}
	return filepath.Join(dir, "workout-tracker", "session.json"), nil
}

// NewStore constructs a Store backed by the file at path, loading any
// previously persisted session. A missing or unreadable file yields an empty
// store rather than an error; the server re-validates the token anyway.
func NewStore(path string) *Store {
	store := &Store{path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		return store
	}

	var session storedSession
	if err := json.Unmarshal(data, &session); err != nil || session.Token == "" {
		return store
	}

	store.session = &session
	return store
}

// SetSession records the authenticated identity and token, persisting them
// before returning so a restart cannot observe a half-set session.
func (s *Store) SetSession(identity Identity, token string) error {
	if token == "" {
		return errors.New("session token must not be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	session := &storedSession{Identity: identity, Token: token}

	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to persist session: %w", err)
	}

	s.session = session
	return nil
}

// ClearSession drops the in-memory session and removes the persisted file.
// Clearing an already empty store is a no-op.
func (s *Store) ClearSession() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.session = nil
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		// The in-memory state is authoritative for this process; a leftover
		// file only matters on the next start, where the server will reject
		// the stale token.
		_ = err
	}
}

// IsAuthenticated reports whether a session grant is currently held.
func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session != nil
}

// CurrentUser returns the identity of the authenticated user, if any.
func (s *Store) CurrentUser() (Identity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil {
		return Identity{}, false
	}
	return s.session.Identity, true
}

// Token returns the held session grant, or the empty string when absent.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil {
		return ""
	}
	return s.session.Token
}
