package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/marine-bulletin-service/internal/adapter/httpadapter"
	"github.com/couchcryptid/marine-bulletin-service/internal/app"
	"github.com/couchcryptid/marine-bulletin-service/internal/config"
	"github.com/couchcryptid/marine-bulletin-service/internal/observability"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	a, err := app.New(cfg, metrics, logger)
	if err != nil {
		logger.Error("failed to initialize", "error", err)
		os.Exit(1)
	}

	if !cfg.IsProduction() {
		logger.Warn("refresh endpoint is open to all callers", "app_env", cfg.AppEnv)
	} else if cfg.RefreshSecret == "" {
		logger.Info("REFRESH_SECRET not set; only the scheduler may refresh", "scheduler", cfg.SchedulerUserAgent)
	}

	srv := httpadapter.NewServer(cfg.HTTPAddr, httpadapter.Deps{
		Reader:     a.Reader,
		Refresher:  a.Orchestrator,
		Forecaster: a.Aggregator,
		Objects:    a.Store,
		Ready:      a.Store,
	}, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

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
	if err := a.Close(); err != nil {
		logger.Error("close resources", "error", err)
	}

	logger.Info("shutdown complete")
}
