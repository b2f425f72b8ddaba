package models

import "time"

// Forecast is the record cached per city. It is never modified after generation.
type Forecast struct {
	City         string    `json:"city"`
	Date         string    `json:"date"` // YYYY-MM-DD, UTC
	TemperatureC int       `json:"temperature_c"`
	TemperatureF int       `json:"temperature_f"`
	Summary      string    `json:"summary"`
	GeneratedAt  time.Time `json:"generated_at"`
}
