package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"go.uber.org/zap"

	"weather-cache/internal/bootstrap"
	"weather-cache/internal/config"
	"weather-cache/internal/db"
	"weather-cache/internal/kafka"
	"weather-cache/internal/services"
	"weather-cache/pkg/logger"
)

func main() {
	if err := logger.Init("info"); err != nil {
		panic(err)
	}
	defer logger.Sync()

	if err := run(os.Args[1:]); err != nil {
		logger.Logger().Error("server exited", zap.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}
}

// run loads configuration first, so an unsupported cache mode fails before
// any connection is opened or the listener is bound.
func run(args []string) error {
	cfg, err := config.Load(args)
	if err != nil {
		return err
	}
	if err := logger.Init(cfg.LogLevel); err != nil {
		return err
	}
	log := logger.WithModule("server")

	redisClient, err := db.ConnectRedis(context.Background(), cfg, log)
	if err != nil {
		return err
	}

	var producer *kafka.Producer
	var events services.EventPublisher
	if cfg.EventsEnabled() {
		producer, err = kafka.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopic, logger.Logger())
		if err != nil {
			_ = redisClient.Close()
			return err
		}
		events = producer
	}

	bundle, err := bootstrap.InitBootstrap(cfg, redisClient, events, logger.Logger())
	if err != nil {
		_ = bootstrap.Shutdown(context.Background(), nil, redisClient, producer)
		return err
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           bootstrap.InitRoutes(bundle.WeatherHandler, logger.Logger()),
		ReadHeaderTimeout: 10 * time.Second,
	}
	stopped := bootstrap.GracefulShutdown(srv, redisClient, producer, log)

	log.Info("server started",
		zap.String("addr", srv.Addr),
		zap.String("cache_mode", string(cfg.CacheMode)),
		zap.Bool("events", cfg.EventsEnabled()))

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		_ = bootstrap.Shutdown(context.Background(), nil, redisClient, producer)
		return err
	}
	return <-stopped
}
