package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"exterior_chat_backend/internal/dialogue/engine"
)

func newTestRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStore(client, time.Hour), mr
}

func TestRedisStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestRedisStore(t)

	if s, err := store.Get(ctx, "unknown"); err != nil || s != nil {
		t.Fatalf("expected nil for unknown id, got %+v, %v", s, err)
	}

	s := engine.NewSession("conv-1")
	s.Stage = engine.StageDoorsQuantity
	s.Service = "doors"
	s.Details["door_type"] = "exterior"

	if err := store.Put(ctx, s); err != nil {
		t.Fatal(err)
	}

	got, err := store.Get(ctx, "conv-1")
	if err != nil {
		t.Fatal(err)
	}
	if got == nil || got.Stage != engine.StageDoorsQuantity {
		t.Fatalf("unexpected session: %+v", got)
	}
	if got.Details["door_type"] != "exterior" {
		t.Fatalf("details lost in round trip: %+v", got.Details)
	}

	if err := store.Delete(ctx, "conv-1"); err != nil {
		t.Fatal(err)
	}
	if s, _ := store.Get(ctx, "conv-1"); s != nil {
		t.Fatalf("expected deletion, got %+v", s)
	}
}

func TestRedisStoreExpiresIdleSessions(t *testing.T) {
	ctx := context.Background()
	store, mr := newTestRedisStore(t)

	s := engine.NewSession("conv-ttl")
	if err := store.Put(ctx, s); err != nil {
		t.Fatal(err)
	}

	mr.FastForward(2 * time.Hour)

	got, err := store.Get(ctx, "conv-ttl")
	if err != nil {
		t.Fatal(err)
	}
	if got != nil {
		t.Fatalf("expected TTL expiry, got %+v", got)
	}
}
