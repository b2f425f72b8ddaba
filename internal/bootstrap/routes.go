package bootstrap

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"weather-cache/internal/handlers"
	"weather-cache/internal/middleware"
)

func InitRoutes(weatherHandler *handlers.WeatherHandler, log *zap.Logger) chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.RequestLogger(log))
	r.Use(chimw.Recoverer)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(200)
		w.Write([]byte("OK"))
	})
	r.Handle("/metrics", promhttp.Handler())

	// The bare prefixes answer 400 rather than 404 so an empty city is reported as such.
	r.Get("/weatherforecast/", weatherHandler.GetForecast)
	r.Get("/weatherforecast/{city}", weatherHandler.GetForecast)
	r.Get("/invalidate/", weatherHandler.Invalidate)
	r.Get("/invalidate/{city}", weatherHandler.Invalidate)

	return r
}
