package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/aquawatch/bloom-risk-engine/internal/adapter/http"
	kafkaadapter "github.com/aquawatch/bloom-risk-engine/internal/adapter/kafka"
	"github.com/aquawatch/bloom-risk-engine/internal/config"
	"github.com/aquawatch/bloom-risk-engine/internal/domain"
	"github.com/aquawatch/bloom-risk-engine/internal/observability"
	"github.com/aquawatch/bloom-risk-engine/internal/pipeline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	modelCfg := domain.DefaultModelConfig()
	modelCfg.Forecast.Samples = cfg.ForecastSamples
	modelCfg.Forecast.Seed = cfg.ForecastSeed
	modelCfg.Forecast.Workers = cfg.ForecastWorkers
	modelCfg.Trend.Alpha = cfg.TrendAlpha

	reader := kafkaadapter.NewReader(cfg, logger)
	writer := kafkaadapter.NewWriter(cfg, logger)
	transformer := pipeline.NewTransformer(modelCfg, logger, metrics)

	cache := httpadapter.NewBundleCache(cfg.CacheSize, metrics)
	loader := httpadapter.NewRecordingLoader(writer, cache)

	p := pipeline.New(reader, transformer, loader, logger, metrics, cfg.BatchSize)

	srv := httpadapter.NewServer(cfg.HTTPAddr, p, cache, modelCfg, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Start scoring pipeline.
	go func() {
		if err := p.Run(ctx); err != nil {
			logger.Error("pipeline error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if err := reader.Close(); err != nil {
		logger.Error("kafka reader close error", "error", err)
	}
	if err := writer.Close(); err != nil {
		logger.Error("kafka writer close error", "error", err)
	}

	logger.Info("shutdown complete")
}
