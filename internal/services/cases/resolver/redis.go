package resolver

import (
	"context"
	stderrs "errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultRedisPrefix namespaces resolver keys in a shared Redis
const DefaultRedisPrefix = "caserelay:datasource:"

// RedisStore shares resolved ids across processes; ttl 0 stores without expiry
type RedisStore struct {
	c      redis.UniversalClient
	prefix string
	ttl    time.Duration
}

// NewRedisStore wraps c; an empty prefix uses DefaultRedisPrefix
func NewRedisStore(c redis.UniversalClient, prefix string, ttl time.Duration) *RedisStore {
	if prefix == "" {
		prefix = DefaultRedisPrefix
	}
	return &RedisStore{c: c, prefix: prefix, ttl: ttl}
}

// Get implements Store
func (s *RedisStore) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := s.c.Get(ctx, s.prefix+key).Result()
	if stderrs.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

// Set implements Store
func (s *RedisStore) Set(ctx context.Context, key, val string) error {
	return s.c.Set(ctx, s.prefix+key, val, s.ttl).Err()
}

// Delete implements Deleter
func (s *RedisStore) Delete(ctx context.Context, key string) error {
	return s.c.Del(ctx, s.prefix+key).Err()
}

// Ping checks connectivity for readiness probes
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.c.Ping(ctx).Err()
}
