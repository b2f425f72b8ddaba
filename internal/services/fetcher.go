package services

import (
	"context"

	"weather-cache/internal/models"
)

// Generator produces a fresh forecast on cache miss and decides the cache key for a city.
type Generator interface {
	CacheKey(city string) string
	Generate(ctx context.Context, city string) (*models.Forecast, error)
}
