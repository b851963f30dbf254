package session

import (
	"context"
	"testing"
	"time"

	"exterior_chat_backend/internal/dialogue/engine"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	if s, err := store.Get(ctx, "unknown"); err != nil || s != nil {
		t.Fatalf("expected nil for unknown id, got %+v, %v", s, err)
	}

	s := engine.NewSession("conv-1")
	s.Stage = engine.StageAwaitingZip
	if err := store.Put(ctx, s); err != nil {
		t.Fatal(err)
	}

	got, err := store.Get(ctx, "conv-1")
	if err != nil {
		t.Fatal(err)
	}
	if got == nil || got.Stage != engine.StageAwaitingZip {
		t.Fatalf("unexpected session: %+v", got)
	}

	// The stored copy is isolated from later caller mutation.
	got.Stage = engine.StageScheduling
	again, _ := store.Get(ctx, "conv-1")
	if again.Stage != engine.StageAwaitingZip {
		t.Fatalf("store must hand out copies, got stage %q", again.Stage)
	}

	if err := store.Delete(ctx, "conv-1"); err != nil {
		t.Fatal(err)
	}
	if s, _ := store.Get(ctx, "conv-1"); s != nil {
		t.Fatalf("expected deletion, got %+v", s)
	}
	if err := store.Delete(ctx, "conv-1"); err != nil {
		t.Fatalf("double delete must be a no-op, got %v", err)
	}
}

func TestMemoryStoreEvictIdle(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	stale := engine.NewSession("stale")
	stale.UpdatedAt = time.Now().UTC().Add(-2 * time.Hour)
	fresh := engine.NewSession("fresh")

	if err := store.Put(ctx, stale); err != nil {
		t.Fatal(err)
	}
	if err := store.Put(ctx, fresh); err != nil {
		t.Fatal(err)
	}

	if n := store.EvictIdle(time.Hour); n != 1 {
		t.Fatalf("expected 1 eviction, got %d", n)
	}
	if s, _ := store.Get(ctx, "stale"); s != nil {
		t.Fatal("stale session must be gone")
	}
	if s, _ := store.Get(ctx, "fresh"); s == nil {
		t.Fatal("fresh session must survive")
	}
}
