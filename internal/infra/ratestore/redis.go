package ratestore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore счётчики запросов в Redis для RequestGuard
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore создает новый экземпляр хранилища счётчиков
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Incr инкрементирует счётчик и возвращает новое значение.
// TTL устанавливается только при создании ключа, чтобы окно не продлевалось
// каждым запросом
func (s *RedisStore) Incr(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	pipe := s.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, ttl)

	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("ratestore: incr %s: %w", key, err)
	}

	return incr.Val(), nil
}

// Get возвращает текущее значение счётчика (0, если ключа нет)
func (s *RedisStore) Get(ctx context.Context, key string) (int64, error) {
	val, err := s.client.Get(ctx, key).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("ratestore: get %s: %w", key, err)
	}

	return val, nil
}
