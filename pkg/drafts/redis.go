package drafts

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "fluxo:drafts:"

// RedisStore keeps drafts in redis with an optional expiry.
type RedisStore struct {
	client redis.UniversalClient
	ttl    time.Duration
	logger *slog.Logger
}

// NewRedisStore connects to the redis server at url, e.g.
// redis://localhost:6379/0. A zero ttl keeps drafts until deleted.
func NewRedisStore(ctx context.Context, logger *slog.Logger, url string, ttl time.Duration) (*RedisStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()

		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return NewRedisStoreWithClient(client, ttl, logger), nil
}

func NewRedisStoreWithClient(client redis.UniversalClient, ttl time.Duration, logger *slog.Logger) *RedisStore {
	return &RedisStore{
		client: client,
		ttl:    ttl,
		logger: logger.With("module", "drafts_redis"),
	}
}

func (s *RedisStore) Get(ctx context.Context, key Key) ([]byte, error) {
	value, err := s.client.Get(ctx, redisKeyPrefix+string(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to read draft %s: %w", key, err)
	}

	return value, nil
}

func (s *RedisStore) Set(ctx context.Context, key Key, value []byte) error {
	if err := s.client.Set(ctx, redisKeyPrefix+string(key), value, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write draft %s: %w", key, err)
	}

	return nil
}

func (s *RedisStore) Delete(ctx context.Context, key Key) error {
	if err := s.client.Del(ctx, redisKeyPrefix+string(key)).Err(); err != nil {
		return fmt.Errorf("failed to delete draft %s: %w", key, err)
	}

	return nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
