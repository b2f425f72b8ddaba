package services

import (
	"context"
	"math/rand"
	"strings"
	"time"

	"weather-cache/internal/models"
)

var summaries = []string{
	"Freezing", "Bracing", "Chilly", "Cool", "Mild",
	"Warm", "Balmy", "Hot", "Sweltering", "Scorching",
}

// RandomGenerator makes up a forecast for today. Values carry no meaning beyond
// being distinguishable between generations.
type RandomGenerator struct {
	now func() time.Time
}

func NewRandomGenerator() *RandomGenerator {
	return &RandomGenerator{now: time.Now}
}

func (RandomGenerator) CacheKey(city string) string {
	return "weather:" + strings.ToLower(strings.TrimSpace(city))
}

func (g RandomGenerator) Generate(ctx context.Context, city string) (*models.Forecast, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	now := time.Now
	if g.now != nil {
		now = g.now
	}
	at := now().UTC()

	tempC := rand.Intn(75) - 20
	return &models.Forecast{
		City:         strings.TrimSpace(city),
		Date:         at.Format(time.DateOnly),
		TemperatureC: tempC,
		TemperatureF: 32 + int(float64(tempC)/0.5556),
		Summary:      summaries[rand.Intn(len(summaries))],
		GeneratedAt:  at,
	}, nil
}
