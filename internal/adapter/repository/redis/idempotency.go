package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	idempotencyPrefix = "idem:"

	// Value stored while the first request is still being handled.
	// Replays that race the original see it and fall through.
	inFlightMarker = "\x00pending"
)

// IdempotencyStore backs the idempotency middleware with redis. Keys
// are reserved with SETNX so only one of several concurrent requests
// with the same key runs the handler.
type IdempotencyStore struct {
	client *redis.Client
}

func NewIdempotencyStore(client *redis.Client) *IdempotencyStore {
	return &IdempotencyStore{client: client}
}

// Reserve claims key for ttl. When another request already holds it,
// the stored response is returned, or nil if that request has not
// finished yet.
func (s *IdempotencyStore) Reserve(ctx context.Context, key string, ttl time.Duration) ([]byte, bool, error) {
	fullKey := idempotencyPrefix + key

	claimed, err := s.client.SetNX(ctx, fullKey, inFlightMarker, ttl).Result()
	if err != nil {
		return nil, false, err
	}
	if claimed {
		return nil, true, nil
	}

	existing, err := s.client.Get(ctx, fullKey).Bytes()
	if errors.Is(err, redis.Nil) {
		// Key expired between SETNX and GET. Treat as in flight.
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	if string(existing) == inFlightMarker {
		return nil, false, nil
	}

	return existing, false, nil
}

// Store replaces the in-flight marker with the final response.
func (s *IdempotencyStore) Store(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	return s.client.Set(ctx, idempotencyPrefix+key, response, ttl).Err()
}
