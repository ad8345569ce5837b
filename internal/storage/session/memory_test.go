package session

import (
	"context"
	"testing"
	"time"
)

func TestMemoryStorePopsOnce(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	ctx := context.Background()

	if err := store.SaveLastOrders(ctx, "s1", []int64{1, 2}); err != nil {
		t.Fatalf("save: %v", err)
	}
	ids, _ := store.PopLastOrders(ctx, "s1")
	if len(ids) != 2 {
		t.Fatalf("unexpected ids %v", ids)
	}
	if ids, _ := store.PopLastOrders(ctx, "s1"); ids != nil {
		t.Fatalf("expected second pop to be empty, got %v", ids)
	}

	_ = store.PushFlash(ctx, "s1", "success", "one")
	_ = store.PushFlash(ctx, "s1", "error", "two")
	flashes, _ := store.PopFlashes(ctx, "s1")
	if len(flashes) != 2 || flashes[1].Level != "error" {
		t.Fatalf("unexpected flashes %+v", flashes)
	}
	if flashes, _ := store.PopFlashes(ctx, "s1"); flashes != nil {
		t.Fatalf("expected flashes cleared, got %+v", flashes)
	}
}

func TestMemoryStoreExpires(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	now := time.Now()
	store.now = func() time.Time { return now }
	ctx := context.Background()

	_ = store.SaveLastOrders(ctx, "s1", []int64{1})
	_ = store.PushFlash(ctx, "s1", "success", "one")
	now = now.Add(2 * time.Minute)

	if ids, _ := store.PopLastOrders(ctx, "s1"); ids != nil {
		t.Fatalf("expected expired ids, got %v", ids)
	}
	if flashes, _ := store.PopFlashes(ctx, "s1"); flashes != nil {
		t.Fatalf("expected expired flashes, got %+v", flashes)
	}
}
