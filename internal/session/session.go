// Package session persists the admin session locally and gates access to
// protected views while the stored session is being resolved.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Session is the locally persisted admin identity.
type Session struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Token    string `json:"token"`
}

// State is the resolution state of the stored session.
type State int

const (
	// StateLoading means the store has not yet been read.
	StateLoading State = iota
	// StateAuthenticated means a session is present.
	StateAuthenticated
	// StateUnauthenticated means no session is stored.
	StateUnauthenticated
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateAuthenticated:
		return "authenticated"
	case StateUnauthenticated:
		return "unauthenticated"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Store is a file-backed session store. It starts in StateLoading; Load
// resolves it to StateAuthenticated or StateUnauthenticated.
type Store struct {
	path string

	mu      sync.Mutex
	state   State
	current *Session
}

// NewStore creates a store over the given file path. Nothing is read until Load.
func NewStore(path string) *Store {
	return &Store{
		path:  path,
		state: StateLoading,
	}
}

// Load reads the persisted session. A missing file resolves to
// StateUnauthenticated; a corrupt file is treated the same and removed.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.state = StateUnauthenticated
			s.current = nil
			return nil
		}
		return fmt.Errorf("failed to read session file: %w", err)
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil || sess.Token == "" {
		// Stale or corrupt session file
		_ = os.Remove(s.path)
		s.state = StateUnauthenticated
		s.current = nil
		return nil
	}

	s.state = StateAuthenticated
	s.current = &sess
	return nil
}

// State returns the current resolution state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Current returns the stored session, or nil when not authenticated.
func (s *Store) Current() *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil
	}
	copied := *s.current
	return &copied
}

// Set persists a new session and marks the store authenticated.
func (s *Store) Set(sess Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}

	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}

	s.state = StateAuthenticated
	s.current = &sess
	return nil
}

// Clear removes the persisted session and marks the store unauthenticated.
// Clearing an absent session is a no-op.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove session file: %w", err)
	}

	s.state = StateUnauthenticated
	s.current = nil
	return nil
}
