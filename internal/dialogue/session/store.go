// Package session stores dialogue state per conversation id. Sessions are
// ephemeral: they disappear on booking, rejection, opt-out, or idle timeout.
package session

import (
	"context"
	"sync"
	"time"

	"exterior_chat_backend/internal/dialogue/engine"
)

// Store is the persistence contract for dialogue sessions. Get returns
// (nil, nil) for an unknown conversation id.
type Store interface {
	Get(ctx context.Context, conversationID string) (*engine.Session, error)
	Put(ctx context.Context, s *engine.Session) error
	Delete(ctx context.Context, conversationID string) error
}

// MemoryStore keeps sessions in process memory. Suitable for a single
// instance; use the Redis store when running more than one.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*engine.Session
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]*engine.Session)}
}

// Get returns the session for the conversation id, or nil when absent.
func (m *MemoryStore) Get(_ context.Context, conversationID string) (*engine.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[conversationID]
	if !ok {
		return nil, nil
	}
	copied := *s
	return &copied, nil
}

// Put stores the session keyed by its conversation id.
func (m *MemoryStore) Put(_ context.Context, s *engine.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := *s
	m.sessions[s.ID] = &copied
	return nil
}

// Delete removes the session. Deleting an absent session is not an error.
func (m *MemoryStore) Delete(_ context.Context, conversationID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, conversationID)
	return nil
}

// EvictIdle removes sessions not updated within the TTL and reports how many
// were dropped. The janitor calls this periodically.
func (m *MemoryStore) EvictIdle(idleTTL time.Duration) int {
	cutoff := time.Now().UTC().Add(-idleTTL)

	m.mu.Lock()
	defer m.mu.Unlock()

	evicted := 0
	for id, s := range m.sessions {
		if s.UpdatedAt.Before(cutoff) {
			delete(m.sessions, id)
			evicted++
		}
	}
	return evicted
}

// Len reports the number of live sessions.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
