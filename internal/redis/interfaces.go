package redis

import (
	"context"
	"time"

	"dispatch/internal/docstore"
)

// DocumentCacheInterface defines the interface for document snapshot caching.
type DocumentCacheInterface interface {
	GetDocument(ctx context.Context, collection, id string) (*docstore.Document, error)
	SetDocument(ctx context.Context, collection string, doc docstore.Document) error
	SetDocumentsBatch(ctx context.Context, collection string, docs []docstore.Document) error
	InvalidateDocument(ctx context.Context, collection, id string) error
}

// LockStoreInterface defines the interface for distributed locking.
type LockStoreInterface interface {
	AcquireReorderLock(ctx context.Context, driverID string, ttl time.Duration) (token string, err error)
	ReleaseReorderLock(ctx context.Context, driverID, token string) error
}

// Ensure concrete types implement interfaces.
var (
	_ DocumentCacheInterface = (*CacheStore)(nil)
	_ LockStoreInterface     = (*LockStore)(nil)
)
