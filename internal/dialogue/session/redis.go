package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"exterior_chat_backend/internal/dialogue/engine"
)

const keyPrefix = "dialogue:session:"

// RedisStore keeps sessions in Redis with an idle TTL, refreshed on every
// write. Safe to share across instances.
type RedisStore struct {
	client  *redis.Client
	idleTTL time.Duration
}

// NewRedisStore wraps the client. idleTTL bounds how long an untouched
// conversation survives.
func NewRedisStore(client *redis.Client, idleTTL time.Duration) *RedisStore {
	return &RedisStore{client: client, idleTTL: idleTTL}
}

// Get returns the session for the conversation id, or nil when absent.
func (r *RedisStore) Get(ctx context.Context, conversationID string) (*engine.Session, error) {
	raw, err := r.client.Get(ctx, keyPrefix+conversationID).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading session %s: %w", conversationID, err)
	}

	var s engine.Session
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("decoding session %s: %w", conversationID, err)
	}
	return &s, nil
}

// Put stores the session and refreshes its idle TTL.
func (r *RedisStore) Put(ctx context.Context, s *engine.Session) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encoding session %s: %w", s.ID, err)
	}
	if err := r.client.Set(ctx, keyPrefix+s.ID, raw, r.idleTTL).Err(); err != nil {
		return fmt.Errorf("writing session %s: %w", s.ID, err)
	}
	return nil
}

// Delete removes the session. Deleting an absent session is not an error.
func (r *RedisStore) Delete(ctx context.Context, conversationID string) error {
	if err := r.client.Del(ctx, keyPrefix+conversationID).Err(); err != nil {
		return fmt.Errorf("deleting session %s: %w", conversationID, err)
	}
	return nil
}
