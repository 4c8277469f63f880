// Package app assembles the service components from configuration.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/couchcryptid/marine-bulletin-service/internal/adapter/dhmz"
	kafkaadapter "github.com/couchcryptid/marine-bulletin-service/internal/adapter/kafka"
	"github.com/couchcryptid/marine-bulletin-service/internal/adapter/memstore"
	"github.com/couchcryptid/marine-bulletin-service/internal/adapter/openmeteo"
	"github.com/couchcryptid/marine-bulletin-service/internal/adapter/sqlite"
	"github.com/couchcryptid/marine-bulletin-service/internal/bulletin"
	"github.com/couchcryptid/marine-bulletin-service/internal/config"
	"github.com/couchcryptid/marine-bulletin-service/internal/domain"
	"github.com/couchcryptid/marine-bulletin-service/internal/forecast"
	"github.com/couchcryptid/marine-bulletin-service/internal/observability"
)

// Store is an object store that can report readiness.
type Store interface {
	domain.ObjectStore
	CheckReadiness(ctx context.Context) error
}

// App holds the wired components.
type App struct {
	Store        Store
	Fetcher      *dhmz.Client
	Cache        *bulletin.CacheStore
	Reader       *bulletin.Reader
	Orchestrator *bulletin.Orchestrator
	Aggregator   *forecast.Aggregator

	closers []func() error
}

// New builds every component described by cfg.
func New(cfg *config.Config, metrics *observability.Metrics, logger *slog.Logger) (*App, error) {
	a := &App{}

	switch cfg.StoreDriver {
	case config.StoreMemory:
		a.Store = memstore.New(cfg.PublicBaseURL)
		logger.Warn("using in-memory object store; cached bulletins are lost on restart")
	default:
		s, err := sqlite.Open(cfg.StorePath, cfg.PublicBaseURL)
		if err != nil {
			return nil, fmt.Errorf("open object store: %w", err)
		}
		a.Store = s
		a.closers = append(a.closers, s.Close)
		logger.Info("sqlite object store opened", "path", cfg.StorePath)
	}

	var publisher domain.RefreshPublisher
	if cfg.KafkaEnabled() {
		p := kafkaadapter.NewPublisher(cfg, logger)
		publisher = p
		a.closers = append(a.closers, p.Close)
		logger.Info("refresh events enabled", "topic", cfg.KafkaRefreshTopic, "brokers", cfg.KafkaBrokers)
	} else {
		logger.Info("refresh events disabled")
	}

	a.Fetcher = dhmz.NewClient(dhmz.Options{
		BaseURL:   cfg.BulletinBaseURL,
		LangParam: cfg.BulletinLangParam,
		UserAgent: cfg.BulletinUserAgent,
		Timeout:   cfg.BulletinTimeout,
		RetryMax:  cfg.BulletinRetryMax,
	}, metrics, logger)

	a.Cache = bulletin.NewCacheStore(a.Store)
	a.Reader = bulletin.NewReader(a.Cache, metrics)
	a.Orchestrator = bulletin.NewOrchestrator(
		a.Fetcher,
		a.Cache,
		cfg.BulletinLangs,
		bulletin.AccessPolicy{
			Production:     cfg.IsProduction(),
			Secret:         cfg.RefreshSecret,
			SchedulerAgent: cfg.SchedulerUserAgent,
		},
		publisher,
		metrics,
		logger,
	)

	meteo := openmeteo.NewClient(cfg.OpenMeteoBaseURL, cfg.OpenMeteoTimeout, metrics, logger)
	a.Aggregator = forecast.NewAggregator(meteo, cfg.InlandStation, cfg.CoastalStation, metrics, logger)

	return a, nil
}

// Close releases stores and producers in reverse order of creation.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
