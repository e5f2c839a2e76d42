// Package identity persists the player id the server assigns, so a restart
// reconnects as the same participant instead of requesting a fresh one.
package identity

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
)

var ErrInvalidID = errors.New("invalid player id")

type record struct {
	PlayerID string `json:"playerId"`
}

// Store is a file-backed single-value store. Writes are atomic (temp file
// plus rename) so a crash mid-write never corrupts the saved id.
type Store struct {
	path string

	mu     sync.Mutex
	cached string
	loaded bool
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// Get returns the persisted player id, or ok=false if none was ever
// assigned.
func (s *Store) Get() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		s.cached = s.load()
		s.loaded = true
	}
	return s.cached, s.cached != ""
}

// Set validates and persists the id, making it visible to every later Get,
// including after a process restart.
func (s *Store) Set(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidID, id)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(record{PlayerID: id})
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create identity dir: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write identity file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace identity file: %w", err)
	}

	s.cached = id
	s.loaded = true
	return nil
}

// Clear forgets the persisted id. Not part of the normal flow; kept for
// starting over against a wiped server.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cached = ""
	s.loaded = true
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func (s *Store) load() string {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return ""
	}
	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return ""
	}
	if _, err := uuid.Parse(rec.PlayerID); err != nil {
		return ""
	}
	return rec.PlayerID
}
