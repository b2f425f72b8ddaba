package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"weather-cache/internal/models"
	"weather-cache/pkg/apperrors"
	"weather-cache/pkg/response"
)

type ForecastService interface {
	GetForecast(ctx context.Context, city string) (*models.Forecast, error)
	InvalidateForecast(ctx context.Context, city string) error
}

type WeatherHandler struct {
	forecasts ForecastService
	log       *zap.Logger
}

func NewWeatherHandler(forecasts ForecastService, log *zap.Logger) *WeatherHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &WeatherHandler{
		forecasts: forecasts,
		log:       log.With(zap.String("module", "handlers.weather")),
	}
}

// GetForecast serves GET /weatherforecast/{city}.
func (h *WeatherHandler) GetForecast(w http.ResponseWriter, r *http.Request) {
	city := strings.TrimSpace(chi.URLParam(r, "city"))
	if city == "" {
		response.Error(w, apperrors.ErrInvalidCity)
		return
	}

	forecast, err := h.forecasts.GetForecast(r.Context(), city)
	if err != nil {
		h.fail(w, r, city, err)
		return
	}

	response.JSON(w, http.StatusOK, forecast)
}

// Invalidate serves GET /invalidate/{city}.
func (h *WeatherHandler) Invalidate(w http.ResponseWriter, r *http.Request) {
	city := strings.TrimSpace(chi.URLParam(r, "city"))
	if city == "" {
		response.Error(w, apperrors.ErrInvalidCity)
		return
	}

	if err := h.forecasts.InvalidateForecast(r.Context(), city); err != nil {
		h.fail(w, r, city, err)
		return
	}

	response.OK(w)
}

func (h *WeatherHandler) fail(w http.ResponseWriter, r *http.Request, city string, err error) {
	if errors.Is(err, context.Canceled) {
		h.log.Info("request aborted", zap.String("city", city), zap.String("path", r.URL.Path))
		return
	}
	h.log.Error("forecast request failed",
		zap.String("city", city),
		zap.String("path", r.URL.Path),
		zap.Error(err))
	response.Error(w, err)
}
