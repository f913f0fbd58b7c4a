package redis

import (
	"context"

	"go.uber.org/zap"

	"dispatch/internal/docstore"
)

// CachedStore is a docstore.Store that serves Get from a Redis read-through
// cache. Writes go to the wrapped store first and then drop the cached copy.
type CachedStore struct {
	next   docstore.Store
	cache  DocumentCacheInterface
	logger *zap.Logger
}

// NewCachedStore wraps next with the given document cache.
func NewCachedStore(next docstore.Store, cache DocumentCacheInterface, logger *zap.Logger) *CachedStore {
	return &CachedStore{next: next, cache: cache, logger: logger}
}

// List reads through to the wrapped store and warms the cache with the result.
func (s *CachedStore) List(ctx context.Context, collection string) ([]docstore.Document, error) {
	docs, err := s.next.List(ctx, collection)
	if err != nil {
		return nil, err
	}
	if err := s.cache.SetDocumentsBatch(ctx, collection, docs); err != nil {
		s.logger.Warn("document cache warm failed", zap.String("collection", collection), zap.Error(err))
	}
	return docs, nil
}

// Get returns the cached snapshot when present.
func (s *CachedStore) Get(ctx context.Context, collection, id string) (*docstore.Document, error) {
	cached, err := s.cache.GetDocument(ctx, collection, id)
	if err == nil && cached != nil {
		return cached, nil
	}
	if err != nil {
		s.logger.Warn("document cache read failed", zap.String("collection", collection), zap.String("id", id), zap.Error(err))
	}

	doc, err := s.next.Get(ctx, collection, id)
	if err != nil {
		return nil, err
	}
	if err := s.cache.SetDocument(ctx, collection, *doc); err != nil {
		s.logger.Warn("document cache write failed", zap.String("collection", collection), zap.String("id", id), zap.Error(err))
	}
	return doc, nil
}

// GetFresh reads the wrapped store and leaves the cache untouched.
func (s *CachedStore) GetFresh(ctx context.Context, collection, id string) (*docstore.Document, error) {
	return s.next.Get(ctx, collection, id)
}

// Add writes to the wrapped store; new documents are cached on first read.
func (s *CachedStore) Add(ctx context.Context, collection string, fields docstore.Fields) (string, error) {
	return s.next.Add(ctx, collection, fields)
}

// Update writes to the wrapped store and invalidates the cached copy.
func (s *CachedStore) Update(ctx context.Context, collection, id string, fields docstore.Fields) error {
	if err := s.next.Update(ctx, collection, id, fields); err != nil {
		return err
	}
	s.invalidate(ctx, collection, id)
	return nil
}

// Delete removes from the wrapped store and invalidates the cached copy.
func (s *CachedStore) Delete(ctx context.Context, collection, id string) error {
	if err := s.next.Delete(ctx, collection, id); err != nil {
		return err
	}
	s.invalidate(ctx, collection, id)
	return nil
}

func (s *CachedStore) invalidate(ctx context.Context, collection, id string) {
	if err := s.cache.InvalidateDocument(ctx, collection, id); err != nil {
		// The entry expires after DocumentCacheTTL.
		s.logger.Warn("document cache invalidation failed", zap.String("collection", collection), zap.String("id", id), zap.Error(err))
	}
}

var (
	_ docstore.Store       = (*CachedStore)(nil)
	_ docstore.FreshReader = (*CachedStore)(nil)
)
