package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/astromapa/natal-chart-service/internal/adapter/counter"
	"github.com/astromapa/natal-chart-service/internal/adapter/ephemeris"
	"github.com/astromapa/natal-chart-service/internal/adapter/httpapi"
	kafkaadapter "github.com/astromapa/natal-chart-service/internal/adapter/kafka"
	"github.com/astromapa/natal-chart-service/internal/adapter/nominatim"
	"github.com/astromapa/natal-chart-service/internal/adapter/tzlookup"
	"github.com/astromapa/natal-chart-service/internal/chart"
	"github.com/astromapa/natal-chart-service/internal/config"
	"github.com/astromapa/natal-chart-service/internal/domain"
	"github.com/astromapa/natal-chart-service/internal/observability"
	"github.com/astromapa/natal-chart-service/internal/report"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	geocoderClient := nominatim.NewClient(cfg.GeocoderURL, cfg.GeocoderUserAgent, cfg.GeocoderTimeout, metrics, logger)
	geocoder := nominatim.NewCachedGeocoder(geocoderClient, cfg.GeocoderCacheSize, metrics)
	logger.Info("geocoder ready", "url", cfg.GeocoderURL, "cache_size", cfg.GeocoderCacheSize)

	timezones, err := tzlookup.NewResolver()
	if err != nil {
		logger.Error("failed to load timezone index", "error", err)
		os.Exit(1)
	}

	// Ephemeris source is feature-flagged via EPHEMERIS_URL. Without it the
	// built-in provider serves a reduced body set.
	var provider domain.EphemerisProvider
	if cfg.EphemerisURL != "" {
		provider = ephemeris.NewClient(cfg.EphemerisURL, cfg.EphemerisToken, cfg.EphemerisTimeout, logger)
		metrics.RemoteEphemeris.Set(1)
		logger.Info("remote ephemeris enabled", "url", cfg.EphemerisURL)
	} else {
		meeus := ephemeris.NewMeeusProvider()
		provider = meeus
		metrics.RemoteEphemeris.Set(0)
		logger.Info("built-in ephemeris enabled", "bodies", len(meeus.Bodies()))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var accessCounter domain.AccessCounter
	var redisCounter *counter.RedisCounter
	switch cfg.CounterBackend {
	case config.CounterBackendRedis:
		redisCounter, err = counter.NewRedisCounter(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			logger.Error("failed to connect to redis counter", "error", err, "addr", cfg.RedisAddr)
			os.Exit(1)
		}
		accessCounter = redisCounter
		logger.Info("redis counter enabled", "addr", cfg.RedisAddr)
	default:
		fileCounter, ferr := counter.NewFileCounter(cfg.CounterFile)
		if ferr != nil {
			logger.Error("failed to open counter file", "error", ferr, "path", cfg.CounterFile)
			os.Exit(1)
		}
		accessCounter = fileCounter
		logger.Info("file counter enabled", "path", cfg.CounterFile)
	}

	var publisher domain.ChartPublisher
	var kafkaPublisher *kafkaadapter.Publisher
	if cfg.KafkaEnabled {
		kafkaPublisher = kafkaadapter.NewPublisher(cfg, logger)
		publisher = kafkaPublisher
		logger.Info("kafka audit publisher enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaAuditTopic)
	} else {
		logger.Info("kafka audit publisher disabled")
	}

	service := chart.NewService(geocoder, timezones, provider, accessCounter, publisher, logger, metrics)
	renderer := report.NewPDFRenderer()

	srv := httpapi.NewServer(cfg.HTTPAddr, service, accessCounter, renderer, service, cfg.RequestTimeout, logger, metrics)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if kafkaPublisher != nil {
		if err := kafkaPublisher.Close(); err != nil {
			logger.Error("kafka publisher close error", "error", err)
		}
	}
	if redisCounter != nil {
		if err := redisCounter.Close(); err != nil {
			logger.Error("redis counter close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
