package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	rediscache "github.com/go-redis/cache/v9"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"weather-cache/internal/metrics"
)

// DistributedCache is the distributed adapter. Connection handling and expiry
// live in github.com/go-redis/cache; this type only adds JSON encoding.
//
// No local in-process tier is configured, so an Invalidate on one replica is
// visible to every other replica immediately.
type DistributedCache[T any] struct {
	cache *rediscache.Cache
	log   *zap.Logger
}

func NewDistributedCache[T any](client *redis.Client, log *zap.Logger) *DistributedCache[T] {
	if log == nil {
		log = zap.NewNop()
	}
	return &DistributedCache[T]{
		cache: rediscache.New(&rediscache.Options{Redis: client}),
		log:   log.With(zap.String("module", "cache.distributed")),
	}
}

// Set stores the JSON text as a string item.
func (c *DistributedCache[T]) Set(ctx context.Context, key string, value T, expiry time.Duration) error {
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
	err = c.cache.Set(&rediscache.Item{
		Ctx:   ctx,
		Key:   key,
		Value: string(data),
		TTL:   expiry,
	})
	if err != nil {
		return fmt.Errorf("distributed cache set %s: %w", key, err)
	}
	metrics.CacheWrites.WithLabelValues(string(ModeDistributed), "set").Inc()
	c.log.Info("stored value into cache", zap.String("key", key))
	return nil
}

func (c *DistributedCache[T]) Get(ctx context.Context, key string) (T, bool, error) {
	var zero T
	if err := checkKey(key); err != nil {
		return zero, false, err
	}

	c.log.Info("looking for a cached value", zap.String("key", key))

	var raw string
	err := c.cache.Get(ctx, key, &raw)
	if errors.Is(err, rediscache.ErrCacheMiss) {
		metrics.CacheLookups.WithLabelValues(string(ModeDistributed), "miss").Inc()
		c.log.Info("no cached value found", zap.String("key", key))
		return zero, false, nil
	}
	if err != nil {
		metrics.CacheLookups.WithLabelValues(string(ModeDistributed), "error").Inc()
		return zero, false, fmt.Errorf("distributed cache get %s: %w", key, err)
	}

	var value T
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		metrics.CacheLookups.WithLabelValues(string(ModeDistributed), "error").Inc()
		return zero, false, fmt.Errorf("decode %s: %w", key, err)
	}

	metrics.CacheLookups.WithLabelValues(string(ModeDistributed), "hit").Inc()
	c.log.Info("found cached value", zap.String("key", key))
	return value, true, nil
}

func (c *DistributedCache[T]) Invalidate(ctx context.Context, key string) error {
	if err := checkKey(key); err != nil {
		return err
	}

	c.log.Info("invalidating cached value", zap.String("key", key))
	err := c.cache.Delete(ctx, key)
	if err != nil && !errors.Is(err, rediscache.ErrCacheMiss) {
		return fmt.Errorf("distributed cache delete %s: %w", key, err)
	}
	metrics.CacheWrites.WithLabelValues(string(ModeDistributed), "invalidate").Inc()
	c.log.Info("invalidated cached value", zap.String("key", key))
	return nil
}
