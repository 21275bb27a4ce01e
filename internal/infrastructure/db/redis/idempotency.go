package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// IdempotencyStore remembers the result of a request keyed by the caller's
// Idempotency-Key so a retry can be answered without repeating side effects.
// Key format: idem:<scope>:<key>
type IdempotencyStore struct {
	client *redis.Client
}

// NewIdempotencyStore creates an IdempotencyStore wrapping the given Redis client.
func NewIdempotencyStore(client *redis.Client) *IdempotencyStore {
	return &IdempotencyStore{client: client}
}

// Get returns the stored value for scope/key. A missing key is not an error.
func (s *IdempotencyStore) Get(ctx context.Context, scope, key string) (string, bool, error) {
	v, err := s.client.Get(ctx, s.key(scope, key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("idempotency get: %w", err)
	}
	return v, true, nil
}

// Put records value for scope/key. An existing value is kept, so the first
// writer wins when two retries race.
func (s *IdempotencyStore) Put(ctx context.Context, scope, key, value string, ttl time.Duration) error {
	if err := s.client.SetNX(ctx, s.key(scope, key), value, ttl).Err(); err != nil {
		return fmt.Errorf("idempotency put: %w", err)
	}
	return nil
}

func (s *IdempotencyStore) key(scope, key string) string {
	return fmt.Sprintf("idem:%s:%s", scope, key)
}
