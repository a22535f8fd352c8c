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

// User is the identity returned by the auth endpoints.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Snapshot is the persisted and broadcast form of a session.
type Snapshot struct {
	Token string `json:"token"`
	User  *User  `json:"user,omitempty"`
}

func (s Snapshot) Authenticated() bool { return s.Token != "" }

// TokenStore persists the session between process runs.
type TokenStore interface {
	Load() (Snapshot, error)
	Save(Snapshot) error
	Clear() error
}

// Session is the client's auth state. It starts empty; call Hydrate to
// restore a stored session. Every change is persisted and then broadcast.
type Session struct {
	mu        sync.Mutex
	store     TokenStore
	snap      Snapshot
	listeners map[int]func(Snapshot)
	nextID    int
}

// NewSession returns an empty session. store may be nil for an in-memory session.
func NewSession(store TokenStore) *Session {
	return &Session{store: store, listeners: map[int]func(Snapshot){}}
}

// Hydrate loads the stored session, if any.
func (s *Session) Hydrate() error {
	if s.store == nil {
		return nil
	}
	snap, err := s.store.Load()
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}
	s.replace(snap)
	return nil
}

func (s *Session) Set(token string, user User) error {
	snap := Snapshot{Token: token, User: &user}
	if s.store != nil {
		if err := s.store.Save(snap); err != nil {
			return fmt.Errorf("save session: %w", err)
		}
	}
	s.replace(snap)
	return nil
}

// Clear drops the token and user and removes the stored copy.
func (s *Session) Clear() error {
	var err error
	if s.store != nil {
		err = s.store.Clear()
	}
	s.replace(Snapshot{})
	return err
}

// Subscribe registers fn for every change and returns a function that removes it.
func (s *Session) Subscribe(fn func(Snapshot)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap
}

func (s *Session) Token() string { return s.Snapshot().Token }

func (s *Session) User() *User { return s.Snapshot().User }

func (s *Session) replace(snap Snapshot) {
	s.mu.Lock()
	s.snap = snap
	listeners := make([]func(Snapshot), 0, len(s.listeners))
	for _, fn := range s.listeners {
		listeners = append(listeners, fn)
	}
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(snap)
	}
}

// FileTokenStore keeps the session as a JSON file readable only by the owner.
type FileTokenStore struct {
	Path string
}

func (f FileTokenStore) Load() (Snapshot, error) {
	var snap Snapshot
	b, err := os.ReadFile(f.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return snap, nil
	}
	if err != nil {
		return snap, err
	}
	if err := json.Unmarshal(b, &snap); err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}

func (f FileTokenStore) Save(snap Snapshot) error {
	b, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(f.Path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(f.Path, b, 0o600)
}

func (f FileTokenStore) Clear() error {
	if err := os.Remove(f.Path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
