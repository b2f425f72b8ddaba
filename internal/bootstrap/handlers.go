package bootstrap

import (
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"weather-cache/internal/cache"
	"weather-cache/internal/config"
	"weather-cache/internal/handlers"
	"weather-cache/internal/models"
	"weather-cache/internal/services"
)

type BootstrapBundle struct {
	WeatherHandler *handlers.WeatherHandler
}

// InitBootstrap builds the forecast stack for cfg.CacheMode. events may be nil.
func InitBootstrap(cfg *config.Config, redisClient *redis.Client, events services.EventPublisher, log *zap.Logger) (*BootstrapBundle, error) {
	forecastCache, err := cache.New[models.Forecast](cfg.CacheMode, redisClient, log)
	if err != nil {
		return nil, err
	}

	forecastService := services.NewForecastService(
		forecastCache,
		services.NewRandomGenerator(),
		cfg.ForecastTTL,
		events,
		log,
	)

	return &BootstrapBundle{
		WeatherHandler: handlers.NewWeatherHandler(forecastService, log),
	}, nil
}
