package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"dispatch/internal/docstore"
)

// newTestClient returns a client backed by an in-process Redis server.
func newTestClient(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return client, mr
}

// ──────────────────────────────────────────────
// CACHE STORE
// ──────────────────────────────────────────────

func TestCacheStore_MissReturnsNil(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t)
	cache := NewCacheStore(client)

	doc, err := cache.GetDocument(context.Background(), docstore.CollectionCargos, "missing")
	if err != nil || doc != nil {
		t.Errorf("expected nil, nil on miss, got %v, %v", doc, err)
	}
}

func TestCacheStore_RoundTripAndInvalidate(t *testing.T) {
	t.Parallel()

	client, mr := newTestClient(t)
	cache := NewCacheStore(client)
	ctx := context.Background()

	in := docstore.Document{ID: "c1", Fields: docstore.Fields{"status": "booked", "order": 3}}
	if err := cache.SetDocument(ctx, docstore.CollectionCargos, in); err != nil {
		t.Fatalf("set: %v", err)
	}
	if ttl := mr.TTL(documentKey(docstore.CollectionCargos, "c1")); ttl != DocumentCacheTTL {
		t.Errorf("expected ttl %v, got %v", DocumentCacheTTL, ttl)
	}

	out, err := cache.GetDocument(ctx, docstore.CollectionCargos, "c1")
	if err != nil || out == nil {
		t.Fatalf("get: %v, %v", out, err)
	}
	if out.ID != "c1" || out.Fields.String("status") != "booked" || out.Fields.Int("order") != 3 {
		t.Errorf("unexpected document %+v", out)
	}

	if err := cache.InvalidateDocument(ctx, docstore.CollectionCargos, "c1"); err != nil {
		t.Fatalf("invalidate: %v", err)
	}
	if out, _ := cache.GetDocument(ctx, docstore.CollectionCargos, "c1"); out != nil {
		t.Error("expected miss after invalidate")
	}
}

func TestCacheStore_BatchAndExpiry(t *testing.T) {
	t.Parallel()

	client, mr := newTestClient(t)
	cache := NewCacheStore(client)
	ctx := context.Background()

	docs := []docstore.Document{
		{ID: "d1", Fields: docstore.Fields{"name": "Ann"}},
		{ID: "d2", Fields: docstore.Fields{"name": "Bob"}},
	}
	if err := cache.SetDocumentsBatch(ctx, docstore.CollectionDrivers, docs); err != nil {
		t.Fatalf("batch: %v", err)
	}
	for _, want := range docs {
		got, err := cache.GetDocument(ctx, docstore.CollectionDrivers, want.ID)
		if err != nil || got == nil || got.Fields.String("name") != want.Fields.String("name") {
			t.Errorf("expected %s cached, got %v, %v", want.ID, got, err)
		}
	}

	mr.FastForward(DocumentCacheTTL + time.Second)
	if got, _ := cache.GetDocument(ctx, docstore.CollectionDrivers, "d1"); got != nil {
		t.Error("expected entry to expire")
	}
}

func TestCacheStore_ServerDownIsError(t *testing.T) {
	t.Parallel()

	client, mr := newTestClient(t)
	cache := NewCacheStore(client)
	mr.Close()

	if _, err := cache.GetDocument(context.Background(), docstore.CollectionCargos, "c1"); err == nil {
		t.Error("expected an error with the server down")
	}
}

// ──────────────────────────────────────────────
// LOCK STORE
// ──────────────────────────────────────────────

func TestLockStore_AcquireIsExclusive(t *testing.T) {
	t.Parallel()

	client, mr := newTestClient(t)
	locks := NewLockStore(client)
	ctx := context.Background()

	token, err := locks.AcquireReorderLock(ctx, "d1", time.Minute)
	if err != nil || token == "" {
		t.Fatalf("expected lock, got %q, %v", token, err)
	}
	if got, _ := mr.Get(reorderLockKey("d1")); got != token {
		t.Errorf("expected stored token %q, got %q", token, got)
	}

	second, err := locks.AcquireReorderLock(ctx, "d1", time.Minute)
	if err != nil || second != "" {
		t.Errorf("expected held lock, got %q, %v", second, err)
	}

	other, err := locks.AcquireReorderLock(ctx, "d2", time.Minute)
	if err != nil || other == "" {
		t.Errorf("expected independent lock per driver, got %q, %v", other, err)
	}
}

func TestLockStore_ReleaseWithToken(t *testing.T) {
	t.Parallel()

	client, mr := newTestClient(t)
	locks := NewLockStore(client)
	ctx := context.Background()

	token, _ := locks.AcquireReorderLock(ctx, "d1", time.Minute)
	if err := locks.ReleaseReorderLock(ctx, "d1", token); err != nil {
		t.Fatalf("release: %v", err)
	}
	if mr.Exists(reorderLockKey("d1")) {
		t.Error("expected lock to be released")
	}

	again, err := locks.AcquireReorderLock(ctx, "d1", time.Minute)
	if err != nil || again == "" {
		t.Errorf("expected lock to be free, got %q, %v", again, err)
	}
}

func TestLockStore_ExpiredTokenKeepsNewerLock(t *testing.T) {
	t.Parallel()

	client, mr := newTestClient(t)
	locks := NewLockStore(client)
	ctx := context.Background()

	stale, _ := locks.AcquireReorderLock(ctx, "d1", time.Second)
	mr.FastForward(2 * time.Second)

	current, err := locks.AcquireReorderLock(ctx, "d1", time.Minute)
	if err != nil || current == "" {
		t.Fatalf("expected lock after expiry, got %q, %v", current, err)
	}

	if err := locks.ReleaseReorderLock(ctx, "d1", stale); err != nil {
		t.Fatalf("release: %v", err)
	}
	if got, _ := mr.Get(reorderLockKey("d1")); got != current {
		t.Errorf("expected newer holder %q to keep the lock, got %q", current, got)
	}
}
