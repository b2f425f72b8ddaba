package db

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"weather-cache/internal/config"
)

const pingTimeout = 5 * time.Second

// ConnectRedis opens the shared client and verifies the server answers PING.
// The client is safe for concurrent use and is handed to whichever cache adapter is selected.
func ConnectRedis(ctx context.Context, cfg *config.Config, log *zap.Logger) (*redis.Client, error) {
	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid Redis URL: %w", err)
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}

	log.Info("redis connected", zap.String("addr", opt.Addr), zap.Int("db", opt.DB))
	return client, nil
}
