package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fakhrymubarak/weather-dashboard/internal/config"
	"github.com/fakhrymubarak/weather-dashboard/internal/handler"
	"github.com/fakhrymubarak/weather-dashboard/internal/httpapi"
	"github.com/fakhrymubarak/weather-dashboard/internal/metrics"
	"github.com/fakhrymubarak/weather-dashboard/internal/redis"
	"github.com/fakhrymubarak/weather-dashboard/internal/repository"
	"github.com/fakhrymubarak/weather-dashboard/internal/service"
)

func newServer(secrets config.Secrets) *http.Server {
	m := metrics.New()
	svc := service.NewForecastService(
		repository.NewForecastRepository(secrets.WeatherAPIKey),
		repository.NewUsageRepository(),
		m,
	)

	return &http.Server{
		Addr:              ":" + config.GetServerPort(),
		Handler:           httpapi.NewRouter(handler.NewForecastHandler(svc), m),
		ReadHeaderTimeout: config.GetServerTimeout("read_header_timeout", 15*time.Second),
		ReadTimeout:       config.GetServerTimeout("read_timeout", 15*time.Second),
		WriteTimeout:      config.GetServerTimeout("write_timeout", 30*time.Second),
		IdleTimeout:       config.GetServerTimeout("idle_timeout", 60*time.Second),
	}
}

func main() {
	port := config.GetServerPort()
	logger := config.GetLogger()
	defer func() { _ = logger.Sync() }()

	secrets, err := config.LoadSecrets()
	if err != nil {
		logger.Fatalw("Loading secrets failed", "error", err)
	}
	if secrets.WeatherAPIKey == "" {
		logger.Warnw("WEATHER_API_KEY is not set, forecast requests will fail")
	}

	if redis.GetClient() == nil {
		logger.Infow("Usage accounting disabled, redis.addr is empty")
	} else if err := redis.Ping(context.Background()); err != nil {
		logger.Warnw("Redis unreachable, usage accounting will fail", "addr", config.GetRedisAddr(), "error", err)
	}
	defer func() { _ = redis.Close() }()

	srv := newServer(secrets)

	go func() {
		logger.Infow("Weather proxy running", "port", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Errorw("server error", "error", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.GetServerTimeout("shutdown_timeout", 5*time.Second))
	defer cancel()

	logger.Infow("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorw("shutdown error", "error", err)
		os.Exit(1)
	}
}
