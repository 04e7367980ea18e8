// Package session keeps login state on the server.  The browser holds a
// signed cookie naming a session id; the Store decides whether that session
// is still live and which account it belongs to.
package session

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrSessionNotFound is returned by a Store for unknown or expired sessions.
var ErrSessionNotFound = errors.New("session not found")

// Store persists session id -> account id bindings.
type Store interface {
	Save(ctx context.Context, sessionID string, accountID uint64, ttl time.Duration) error
	Load(ctx context.Context, sessionID string) (uint64, error)
	Delete(ctx context.Context, sessionID string) error
}

type memoryEntry struct {
	accountID uint64
	expires   time.Time
}

// MemoryStore is a process-local Store.  Sessions do not survive a restart
// and are not shared between instances; use RedisStore for that.  Expired
// sessions are dropped on Load and swept on every Save.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]memoryEntry
	now      func() time.Time
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]memoryEntry), now: time.Now}
}

func (s *MemoryStore) Save(_ context.Context, sessionID string, accountID uint64, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	// Abandoned sessions are never loaded again, so drop them here.
	for id, e := range s.sessions {
		if !now.Before(e.expires) {
			delete(s.sessions, id)
		}
	}
	s.sessions[sessionID] = memoryEntry{accountID: accountID, expires: now.Add(ttl)}
	return nil
}

func (s *MemoryStore) Load(_ context.Context, sessionID string) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.sessions[sessionID]
	if !ok {
		return 0, ErrSessionNotFound
	}
	if !s.now().Before(e.expires) {
		delete(s.sessions, sessionID)
		return 0, ErrSessionNotFound
	}
	return e.accountID, nil
}

func (s *MemoryStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}

// Len reports the number of stored sessions, expired ones included.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
