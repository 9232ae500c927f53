package session

import (
	"context"
	"sync"
	"time"
)

// MemoryStore holds sessions in process memory. Suits a single instance and
// tests; a restart logs everyone out.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]memoryEntry
}

type memoryEntry struct {
	token   string
	expires time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]memoryEntry)}
}

func (s *MemoryStore) SaveToken(_ context.Context, sessionID, token string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionID] = memoryEntry{token: token, expires: time.Now().Add(ttl)}
	return nil
}

func (s *MemoryStore) Token(_ context.Context, sessionID string) (string, error) {
	s.mu.RLock()
	entry, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if !ok || time.Now().After(entry.expires) {
		return "", ErrNotFound
	}
	return entry.token, nil
}

func (s *MemoryStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}
