package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultIdempotencyTTL = 24 * time.Hour

// IdempotencyStore maps an owner's Idempotency-Key to the product it created.
// Key format: idempotency:product:<owner>:<key>
type IdempotencyStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewIdempotencyStore creates an IdempotencyStore wrapping the given Redis
// client. A non-positive ttl selects 24 hours.
func NewIdempotencyStore(client *redis.Client, ttl time.Duration) *IdempotencyStore {
	if ttl <= 0 {
		ttl = defaultIdempotencyTTL
	}
	return &IdempotencyStore{client: client, ttl: ttl}
}

// Lookup returns the product id remembered for key, if any.
func (s *IdempotencyStore) Lookup(ctx context.Context, owner, key string) (string, bool, error) {
	id, err := s.client.Get(ctx, s.key(owner, key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("idempotency lookup: %w", err)
	}
	return id, true, nil
}

// Remember records productID for key. The first writer wins; later calls for
// the same key leave the stored id untouched.
func (s *IdempotencyStore) Remember(ctx context.Context, owner, key, productID string) error {
	if err := s.client.SetNX(ctx, s.key(owner, key), productID, s.ttl).Err(); err != nil {
		return fmt.Errorf("idempotency remember: %w", err)
	}
	return nil
}

func (s *IdempotencyStore) key(owner, key string) string {
	return fmt.Sprintf("idempotency:product:%s:%s", owner, key)
}
