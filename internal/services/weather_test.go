package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"weather-cache/internal/cache"
	"weather-cache/internal/kafka"
	"weather-cache/internal/models"
	"weather-cache/pkg/apperrors"
)

// countingGenerator wraps RandomGenerator and counts regenerations.
type countingGenerator struct {
	RandomGenerator
	mu    sync.Mutex
	calls int
	err   error
}

func (g *countingGenerator) Generate(ctx context.Context, city string) (*models.Forecast, error) {
	g.mu.Lock()
	g.calls++
	g.mu.Unlock()
	if g.err != nil {
		return nil, g.err
	}
	return g.RandomGenerator.Generate(ctx, city)
}

type recordingPublisher struct {
	events []kafka.ForecastEvent
}

func (p *recordingPublisher) PublishEvent(event kafka.ForecastEvent) {
	p.events = append(p.events, event)
}

func newService(t *testing.T, mode cache.Mode) (*ForecastService, *countingGenerator, *miniredis.Miniredis, *recordingPublisher) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	log := zaptest.NewLogger(t)
	c, err := cache.New[models.Forecast](mode, client, log)
	require.NoError(t, err)

	gen := &countingGenerator{}
	pub := &recordingPublisher{}
	return NewForecastService(c, gen, time.Minute, pub, log), gen, mr, pub
}

func eachMode(t *testing.T, fn func(t *testing.T, mode cache.Mode)) {
	for _, mode := range []cache.Mode{cache.ModeDirect, cache.ModeDistributed} {
		t.Run(string(mode), func(t *testing.T) { fn(t, mode) })
	}
}

func TestGetForecastCachesResult(t *testing.T) {
	eachMode(t, func(t *testing.T, mode cache.Mode) {
		svc, gen, mr, pub := newService(t, mode)
		ctx := context.Background()

		first, err := svc.GetForecast(ctx, "Paris")
		require.NoError(t, err)
		require.Equal(t, "Paris", first.City)

		second, err := svc.GetForecast(ctx, "Paris")
		require.NoError(t, err)
		require.Equal(t, first.GeneratedAt.UnixNano(), second.GeneratedAt.UnixNano())
		require.Equal(t, first.TemperatureC, second.TemperatureC)
		require.Equal(t, first.Summary, second.Summary)

		require.Equal(t, 1, gen.calls)
		require.True(t, mr.Exists("weather:paris"))
		require.Equal(t, time.Minute, mr.TTL("weather:paris"))

		require.Len(t, pub.events, 1)
		require.Equal(t, kafka.EventGenerated, pub.events[0].Type)
		require.Equal(t, "weather:paris", pub.events[0].Key)
	})
}

func TestInvalidateForcesRegeneration(t *testing.T) {
	eachMode(t, func(t *testing.T, mode cache.Mode) {
		svc, gen, mr, pub := newService(t, mode)
		ctx := context.Background()

		_, err := svc.GetForecast(ctx, "Paris")
		require.NoError(t, err)

		require.NoError(t, svc.InvalidateForecast(ctx, "Paris"))
		require.False(t, mr.Exists("weather:paris"))

		_, err = svc.GetForecast(ctx, "Paris")
		require.NoError(t, err)
		require.Equal(t, 2, gen.calls)

		require.Len(t, pub.events, 3)
		require.Equal(t, kafka.EventInvalidated, pub.events[1].Type)
		require.Nil(t, pub.events[1].Forecast)
	})
}

func TestInvalidateWithoutEntrySucceeds(t *testing.T) {
	eachMode(t, func(t *testing.T, mode cache.Mode) {
		svc, _, _, _ := newService(t, mode)
		require.NoError(t, svc.InvalidateForecast(context.Background(), "Atlantis"))
	})
}

func TestExpiredEntryIsRegenerated(t *testing.T) {
	eachMode(t, func(t *testing.T, mode cache.Mode) {
		svc, gen, mr, _ := newService(t, mode)
		ctx := context.Background()

		_, err := svc.GetForecast(ctx, "Oslo")
		require.NoError(t, err)

		mr.FastForward(2 * time.Minute)

		_, err = svc.GetForecast(ctx, "Oslo")
		require.NoError(t, err)
		require.Equal(t, 2, gen.calls)
	})
}

func TestBlankCityIsRejected(t *testing.T) {
	svc, gen, mr, _ := newService(t, cache.ModeDirect)
	ctx := context.Background()

	for _, city := range []string{"", " ", "\t\n"} {
		_, err := svc.GetForecast(ctx, city)
		require.ErrorIs(t, err, apperrors.ErrInvalidCity)

		require.ErrorIs(t, svc.InvalidateForecast(ctx, city), apperrors.ErrInvalidCity)
	}
	require.Zero(t, gen.calls)
	require.Empty(t, mr.Keys())
}

func TestCityKeyIgnoresCaseAndPadding(t *testing.T) {
	svc, gen, _, _ := newService(t, cache.ModeDirect)
	ctx := context.Background()

	_, err := svc.GetForecast(ctx, "Paris")
	require.NoError(t, err)
	_, err = svc.GetForecast(ctx, "  paris ")
	require.NoError(t, err)
	require.Equal(t, 1, gen.calls)
}

func TestStoreFailureIsReturned(t *testing.T) {
	svc, gen, mr, _ := newService(t, cache.ModeDirect)
	mr.Close()

	_, err := svc.GetForecast(context.Background(), "Paris")
	require.Error(t, err)
	require.NotErrorIs(t, err, apperrors.ErrInvalidCity)
	require.Zero(t, gen.calls)

	require.Error(t, svc.InvalidateForecast(context.Background(), "Paris"))
}

func TestGeneratorFailureIsNotCached(t *testing.T) {
	svc, gen, mr, pub := newService(t, cache.ModeDirect)
	gen.err = errors.New("generator down")

	_, err := svc.GetForecast(context.Background(), "Paris")
	require.ErrorIs(t, err, gen.err)
	require.False(t, mr.Exists("weather:paris"))
	require.Empty(t, pub.events)
}

func TestNilPublisherIsAllowed(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	svc := NewForecastService(cache.NewRedisCache[models.Forecast](client, nil), NewRandomGenerator(), 0, nil, nil)
	f, err := svc.GetForecast(context.Background(), "Lima")
	require.NoError(t, err)
	require.Equal(t, "Lima", f.City)
	require.Equal(t, DefaultForecastTTL, mr.TTL("weather:lima"))
}
