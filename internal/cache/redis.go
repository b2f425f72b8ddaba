package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"weather-cache/internal/metrics"
)

// RedisCache is the direct adapter: every operation is a single round trip
// on the shared go-redis client.
type RedisCache[T any] struct {
	redis *redis.Client
	log   *zap.Logger
}

func NewRedisCache[T any](client *redis.Client, log *zap.Logger) *RedisCache[T] {
	if log == nil {
		log = zap.NewNop()
	}
	return &RedisCache[T]{
		redis: client,
		log:   log.With(zap.String("module", "cache.direct")),
	}
}

func (c *RedisCache[T]) Set(ctx context.Context, key string, value T, expiry time.Duration) error {
	if err := checkKey(key); err != nil {
		return err
	}
	if err := checkExpiry(expiry); err != nil {
		return err
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}

	c.log.Info("storing value into cache", zap.String("key", key), zap.Duration("expiry", expiry))
	if err := c.redis.Set(ctx, key, data, expiry).Err(); err != nil {
		return fmt.Errorf("redis SET %s: %w", key, err)
	}
	metrics.CacheWrites.WithLabelValues(string(ModeDirect), "set").Inc()
	c.log.Info("stored value into cache", zap.String("key", key))
	return nil
}

func (c *RedisCache[T]) Get(ctx context.Context, key string) (T, bool, error) {
	var zero T
	if err := checkKey(key); err != nil {
		return zero, false, err
	}

	c.log.Info("looking for a cached value", zap.String("key", key))

	exists, err := c.redis.Exists(ctx, key).Result()
	if err != nil {
		metrics.CacheLookups.WithLabelValues(string(ModeDirect), "error").Inc()
		return zero, false, fmt.Errorf("redis EXISTS %s: %w", key, err)
	}
	if exists == 0 {
		metrics.CacheLookups.WithLabelValues(string(ModeDirect), "miss").Inc()
		c.log.Info("no cached value found", zap.String("key", key))
		return zero, false, nil
	}

	data, err := c.redis.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		// expired between EXISTS and GET
		metrics.CacheLookups.WithLabelValues(string(ModeDirect), "miss").Inc()
		c.log.Info("no cached value found", zap.String("key", key))
		return zero, false, nil
	}
	if err != nil {
		metrics.CacheLookups.WithLabelValues(string(ModeDirect), "error").Inc()
		return zero, false, fmt.Errorf("redis GET %s: %w", key, err)
	}

	var value T
	if err := json.Unmarshal(data, &value); err != nil {
		metrics.CacheLookups.WithLabelValues(string(ModeDirect), "error").Inc()
		return zero, false, fmt.Errorf("decode %s: %w", key, err)
	}

	metrics.CacheLookups.WithLabelValues(string(ModeDirect), "hit").Inc()
	c.log.Info("found cached value", zap.String("key", key))
	return value, true, nil
}

func (c *RedisCache[T]) Invalidate(ctx context.Context, key string) error {
	if err := checkKey(key); err != nil {
		return err
	}

	c.log.Info("invalidating cached value", zap.String("key", key))
	if err := c.redis.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis DEL %s: %w", key, err)
	}
	metrics.CacheWrites.WithLabelValues(string(ModeDirect), "invalidate").Inc()
	c.log.Info("invalidated cached value", zap.String("key", key))
	return nil
}
