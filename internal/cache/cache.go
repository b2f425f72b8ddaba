// Package cache provides a generic caching abstraction over Redis with two
// interchangeable adapters: RedisCache talks to the client directly and
// DistributedCache goes through github.com/go-redis/cache.
//
// Values are stored as JSON text, so entries written by one adapter can be
// read by the other.
package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"weather-cache/pkg/apperrors"
)

// Service stores values of type T under string keys with a time-to-live.
type Service[T any] interface {
	// Set stores value under key; the entry expires after expiry, which must be at least one second.
	Set(ctx context.Context, key string, value T, expiry time.Duration) error
	// Get returns the stored value and true, or the zero value and false when absent.
	Get(ctx context.Context, key string) (T, bool, error)
	// Invalidate removes key. Removing an absent key is not an error.
	Invalidate(ctx context.Context, key string) error
}

// Mode selects which adapter backs a Service.
type Mode string

const (
	ModeDirect      Mode = "direct"
	ModeDistributed Mode = "distributed"
)

var (
	ErrInvalidKey      = apperrors.ErrInvalidArgument.WithInternal(errors.New("cache key must not be empty"))
	ErrInvalidExpiry   = apperrors.ErrInvalidArgument.WithInternal(errors.New("cache expiry must be at least one second"))
	ErrUnsupportedMode = apperrors.ErrConfig.WithInternal(errors.New("unsupported cache mode"))
)

// ParseMode accepts exactly "direct" or "distributed".
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeDirect, ModeDistributed:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("%w: '%s'. Valid options are 'direct' or 'distributed'", ErrUnsupportedMode, s)
	}
}

// New builds the adapter for mode on top of client.
func New[T any](mode Mode, client *redis.Client, log *zap.Logger) (Service[T], error) {
	switch mode {
	case ModeDirect:
		return NewRedisCache[T](client, log), nil
	case ModeDistributed:
		return NewDistributedCache[T](client, log), nil
	default:
		return nil, fmt.Errorf("%w: '%s'", ErrUnsupportedMode, mode)
	}
}

func checkKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return ErrInvalidKey
	}
	return nil
}

// checkExpiry rejects TTLs the adapters would treat differently: go-redis reads 0 as
// "never expire" and negatives as "keep TTL", while go-redis/cache substitutes its own default.
func checkExpiry(expiry time.Duration) error {
	if expiry < time.Second {
		return fmt.Errorf("%w: got %s", ErrInvalidExpiry, expiry)
	}
	return nil
}
