package bootstrap

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"weather-cache/internal/kafka"
)

const shutdownTimeout = 10 * time.Second

// GracefulShutdown waits for SIGINT or SIGTERM in the background and then runs Shutdown.
// The returned channel receives Shutdown's result.
func GracefulShutdown(srv *http.Server, redisClient *redis.Client, producer *kafka.Producer, log *zap.Logger) <-chan error {
	done := make(chan error, 1)
	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig

		log.Info("shutting down gracefully")

		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		done <- Shutdown(ctx, srv, redisClient, producer)
	}()
	return done
}

// Shutdown drains in-flight requests before closing the store and broker clients.
func Shutdown(ctx context.Context, srv *http.Server, redisClient *redis.Client, producer *kafka.Producer) error {
	var err error
	if srv != nil {
		err = multierr.Append(err, srv.Shutdown(ctx))
	}
	err = multierr.Append(err, producer.Close())
	if redisClient != nil {
		err = multierr.Append(err, redisClient.Close())
	}
	return err
}
