package app

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"dispatch/internal/config"
	"dispatch/internal/docstore"
	"dispatch/internal/docstore/postgres"
	internalRedis "dispatch/internal/redis"
)

// NewDocumentStore selects the document store backend. db is required for
// the postgres backend; redisClient, when non-nil and caching is enabled,
// puts a read-through cache in front of it.
func NewDocumentStore(ctx context.Context, cfg config.DocStoreConfig, db *sql.DB, redisClient *redis.Client, logger *zap.Logger) (docstore.Store, error) {
	var store docstore.Store

	switch cfg.Backend {
	case config.DocStoreMemory:
		store = docstore.NewMemory()
	case config.DocStorePostgres:
		if db == nil {
			return nil, fmt.Errorf("postgres document store requires a database connection")
		}
		if err := postgres.EnsureSchema(ctx, db); err != nil {
			return nil, fmt.Errorf("failed to ensure document schema: %w", err)
		}
		store = postgres.NewStore(db)
	default:
		return nil, fmt.Errorf("unknown document store backend %q", cfg.Backend)
	}

	if cfg.CacheEnabled && redisClient != nil {
		store = internalRedis.NewCachedStore(store, internalRedis.NewCacheStore(redisClient), logger)
	}

	logger.Info("document store ready",
		zap.String("backend", cfg.Backend),
		zap.Bool("cache", cfg.CacheEnabled && redisClient != nil),
	)
	return store, nil
}
