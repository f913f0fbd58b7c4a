package redis

import (
	"bytes"
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"dispatch/internal/docstore"
)

// CacheStore handles document snapshot caching in Redis.
type CacheStore struct {
	client *redis.Client
}

// NewCacheStore creates a new CacheStore.
func NewCacheStore(client *redis.Client) *CacheStore {
	return &CacheStore{client: client}
}

// DocumentCacheTTL bounds how long a snapshot can outlive a missed invalidation.
const DocumentCacheTTL = 30 * time.Second

const documentCachePrefix = "cache:doc:"

func documentKey(collection, id string) string {
	return documentCachePrefix + collection + ":" + id
}

// cachedDocument is the JSON form of a cached document.
type cachedDocument struct {
	ID     string          `json:"id"`
	Fields docstore.Fields `json:"fields"`
}

// GetDocument retrieves a document from cache. A miss returns nil, nil.
func (s *CacheStore) GetDocument(ctx context.Context, collection, id string) (*docstore.Document, error) {
	data, err := s.client.Get(ctx, documentKey(collection, id)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // Cache miss
		}
		return nil, err
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var cached cachedDocument
	if err := dec.Decode(&cached); err != nil {
		return nil, err
	}
	return &docstore.Document{ID: cached.ID, Fields: cached.Fields}, nil
}

// SetDocument stores a document in cache.
func (s *CacheStore) SetDocument(ctx context.Context, collection string, doc docstore.Document) error {
	data, err := json.Marshal(cachedDocument{ID: doc.ID, Fields: doc.Fields})
	if err != nil {
		return err
	}
	return s.client.Set(ctx, documentKey(collection, doc.ID), data, DocumentCacheTTL).Err()
}

// SetDocumentsBatch stores multiple documents in cache using a pipeline.
func (s *CacheStore) SetDocumentsBatch(ctx context.Context, collection string, docs []docstore.Document) error {
	if len(docs) == 0 {
		return nil
	}

	pipe := s.client.Pipeline()

	for _, doc := range docs {
		data, err := json.Marshal(cachedDocument{ID: doc.ID, Fields: doc.Fields})
		if err != nil {
			continue // Skip invalid entries
		}
		pipe.Set(ctx, documentKey(collection, doc.ID), data, DocumentCacheTTL)
	}

	_, err := pipe.Exec(ctx)
	return err
}

// InvalidateDocument removes a document from cache.
func (s *CacheStore) InvalidateDocument(ctx context.Context, collection, id string) error {
	return s.client.Del(ctx, documentKey(collection, id)).Err()
}
