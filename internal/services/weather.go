package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"weather-cache/internal/cache"
	"weather-cache/internal/kafka"
	"weather-cache/internal/metrics"
	"weather-cache/internal/models"
	"weather-cache/pkg/apperrors"
	"weather-cache/pkg/validator"
)

const DefaultForecastTTL = 10 * time.Minute

// EventPublisher receives forecast lifecycle events. Implementations must not block.
type EventPublisher interface {
	PublishEvent(event kafka.ForecastEvent)
}

type ForecastService struct {
	cache     cache.Service[models.Forecast]
	generator Generator
	expiry    time.Duration
	events    EventPublisher
	log       *zap.Logger
}

// NewForecastService wires a cache-through forecast lookup. events may be nil.
func NewForecastService(
	c cache.Service[models.Forecast],
	generator Generator,
	expiry time.Duration,
	events EventPublisher,
	log *zap.Logger,
) *ForecastService {
	if expiry <= 0 {
		expiry = DefaultForecastTTL
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &ForecastService{
		cache:     c,
		generator: generator,
		expiry:    expiry,
		events:    events,
		log:       log.With(zap.String("module", "forecast")),
	}
}

// GetForecast returns the cached forecast for city, generating and caching a new one on miss.
func (s *ForecastService) GetForecast(ctx context.Context, city string) (*models.Forecast, error) {
	city, err := validCity(city)
	if err != nil {
		return nil, err
	}
	key := s.generator.CacheKey(city)

	cached, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("forecast lookup for %q: %w", city, err)
	}
	if ok {
		s.log.Debug("cache hit", zap.String("city", city), zap.String("key", key))
		return &cached, nil
	}

	forecast, err := s.generator.Generate(ctx, city)
	if err != nil {
		return nil, fmt.Errorf("generate forecast for %q: %w", city, err)
	}
	metrics.ForecastsGenerated.Inc()

	if err := s.cache.Set(ctx, key, *forecast, s.expiry); err != nil {
		return nil, fmt.Errorf("store forecast for %q: %w", city, err)
	}
	s.log.Info("forecast generated", zap.String("city", city), zap.String("key", key))

	s.publish(kafka.ForecastEvent{
		Type:     kafka.EventGenerated,
		City:     city,
		Key:      key,
		Forecast: forecast,
	})
	return forecast, nil
}

// InvalidateForecast drops any cached forecast for city.
func (s *ForecastService) InvalidateForecast(ctx context.Context, city string) error {
	city, err := validCity(city)
	if err != nil {
		return err
	}
	key := s.generator.CacheKey(city)

	if err := s.cache.Invalidate(ctx, key); err != nil {
		return fmt.Errorf("invalidate forecast for %q: %w", city, err)
	}

	s.publish(kafka.ForecastEvent{
		Type: kafka.EventInvalidated,
		City: city,
		Key:  key,
	})
	return nil
}

func (s *ForecastService) publish(event kafka.ForecastEvent) {
	if s.events == nil {
		return
	}
	event.At = time.Now().UTC()
	s.events.PublishEvent(event)
}

func validCity(city string) (string, error) {
	city = strings.TrimSpace(city)
	if err := validator.ValidateVar(city, "required"); err != nil {
		return "", apperrors.ErrInvalidCity
	}
	return city, nil
}
