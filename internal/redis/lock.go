package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// releaseScript deletes the lock only while it still holds the caller's token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// LockStore handles distributed locking in Redis.
type LockStore struct {
	client *redis.Client
}

// NewLockStore creates a new LockStore.
func NewLockStore(client *redis.Client) *LockStore {
	return &LockStore{client: client}
}

func reorderLockKey(driverID string) string {
	return fmt.Sprintf("lock:reorder:%s", driverID)
}

// AcquireReorderLock attempts to acquire the reorder lock of a driver's cargo list.
// Returns the holder token, or "" if the lock is already held.
func (s *LockStore) AcquireReorderLock(ctx context.Context, driverID string, ttl time.Duration) (string, error) {
	token := uuid.NewString()

	ok, err := s.client.SetNX(ctx, reorderLockKey(driverID), token, ttl).Result()
	if err != nil {
		return "", err
	}
	if !ok {
		return "", nil
	}

	return token, nil
}

// ReleaseReorderLock releases the reorder lock of a driver's cargo list if it
// is still held under token. A lock that expired and was taken by another
// holder is left alone.
func (s *LockStore) ReleaseReorderLock(ctx context.Context, driverID, token string) error {
	return releaseScript.Run(ctx, s.client, []string{reorderLockKey(driverID)}, token).Err()
}
