package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"weather-cache/internal/cache"
	"weather-cache/pkg/apperrors"
	"weather-cache/pkg/validator"
)

const defaultRedisURL = "redis://localhost:6379"

type Config struct {
	CacheMode    cache.Mode    `env:"CACHE_MODE" validate:"oneof=direct distributed"`
	RedisURL     string        `env:"REDIS_URL" validate:"required"`
	Port         string        `env:"PORT" validate:"required,numeric"`
	LogLevel     string        `env:"LOG_LEVEL"`
	ForecastTTL  time.Duration `env:"FORECAST_TTL" validate:"gte=1s"`
	KafkaBrokers []string      `env:"KAFKA_BROKERS"`
	KafkaTopic   string        `env:"KAFKA_TOPIC" validate:"required_with=KafkaBrokers"`
}

// Load builds the configuration from process arguments and the environment.
// The cache mode is the single positional argument and defaults to "direct".
// A .env file in the working directory is loaded when present.
func Load(args []string) (*Config, error) {
	_ = godotenv.Load()

	if len(args) > 1 {
		return nil, apperrors.ErrConfig.WithInternal(
			fmt.Errorf("expected at most one argument (cache mode), got %d", len(args)))
	}
	modeArg := string(cache.ModeDirect)
	if len(args) == 1 {
		modeArg = args[0]
	}
	mode, err := cache.ParseMode(modeArg)
	if err != nil {
		return nil, err
	}

	ttl, err := time.ParseDuration(getEnv("FORECAST_TTL", "10m"))
	if err != nil {
		return nil, apperrors.ErrConfig.WithInternal(fmt.Errorf("invalid FORECAST_TTL: %w", err))
	}

	cfg := &Config{
		CacheMode:    mode,
		RedisURL:     getEnv("REDIS_URL", defaultRedisURL),
		Port:         getEnv("PORT", "8080"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		ForecastTTL:  ttl,
		KafkaBrokers: splitList(os.Getenv("KAFKA_BROKERS")),
		KafkaTopic:   getEnv("KAFKA_TOPIC", "forecast-events"),
	}

	if err := validator.ValidateStruct(cfg); err != nil {
		return nil, apperrors.ErrConfig.WithInternal(err)
	}
	return cfg, nil
}

// EventsEnabled reports whether forecast events should be published.
func (c *Config) EventsEnabled() bool {
	return len(c.KafkaBrokers) > 0
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
