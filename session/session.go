// Package session is the single source of truth for who is logged in and
// with what token. The record is persisted as a small JSON file so a session
// survives process restarts, and guarded by a lock so concurrent readers
// always observe a consistent whole-record snapshot.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// AdminRole is the role string the server assigns to administrators
const AdminRole = "admin"

// record is the persisted session shape
type record struct {
	LoggedIn bool   `json:"logged_in"`
	Role     string `json:"role,omitempty"`
	Token    string `json:"token,omitempty"`
}

// Manager holds the current session and mirrors every change to disk
type Manager struct {
	path string

	mu  sync.RWMutex
	cur record
}

// DefaultPath returns the standard location of the session file
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".streamctl-session.json"
	}
	return filepath.Join(home, ".streamctl", "session.json")
}

// Load restores a session from path. A missing or corrupt file yields an
// unauthenticated session, not an error. An empty path keeps the session
// in memory only.
func Load(path string) (*Manager, error) {
	m := &Manager{path: path}
	if path == "" {
		return m, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return m, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	if err := json.Unmarshal(data, &m.cur); err != nil {
		m.cur = record{}
		return m, nil
	}

	// A session without a token is not a session.
	if m.cur.Token == "" {
		m.cur = record{}
	}

	return m, nil
}

// Save marks the session authenticated with the given role and token. It
// fully replaces any prior session; there are no merge semantics.
func (m *Manager) Save(role, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	next := record{LoggedIn: true, Role: role, Token: token}
	if err := m.write(next); err != nil {
		return err
	}
	m.cur = next
	return nil
}

// Clear resets the session to unauthenticated and removes the session file
func (m *Manager) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.path != "" {
		if err := os.Remove(m.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to remove session file: %w", err)
		}
	}
	m.cur = record{}
	return nil
}

// Token returns the current bearer token; ok is false when unauthenticated
func (m *Manager) Token() (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.cur.LoggedIn || m.cur.Token == "" {
		return "", false
	}
	return m.cur.Token, true
}

// IsAuthenticated reports whether a session is established
func (m *Manager) IsAuthenticated() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cur.LoggedIn && m.cur.Token != ""
}

// Role returns the server-assigned role of the current session
func (m *Manager) Role() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cur.Role
}

// IsAdmin reports whether the current session has the admin role
func (m *Manager) IsAdmin() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cur.LoggedIn && m.cur.Role == AdminRole
}

// write persists the record atomically: a full temp-file write followed by
// a rename, so a reader never sees a partially written session.
func (m *Manager) write(r record) error {
	if m.path == "" {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(m.path), 0o700); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}

	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	tmp := m.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	if err := os.Rename(tmp, m.path); err != nil {
		return fmt.Errorf("failed to replace session file: %w", err)
	}
	return nil
}
