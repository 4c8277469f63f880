package bulletin

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/couchcryptid/marine-bulletin-service/internal/blocks"
	"github.com/couchcryptid/marine-bulletin-service/internal/domain"
	"github.com/couchcryptid/marine-bulletin-service/internal/extract"
	"github.com/couchcryptid/marine-bulletin-service/internal/observability"
)

// Report summarizes one refresh run.
type Report struct {
	RunID       string              `json:"-"`
	OK          bool                `json:"ok"`
	RefreshedAt string              `json:"refreshedAt"`
	Results     []domain.LangResult `json:"results"`
}

// Orchestrator refreshes the cache for every configured language.
type Orchestrator struct {
	fetcher   domain.BulletinFetcher
	cache     *CacheStore
	langs     []domain.Lang
	access    AccessPolicy
	publisher domain.RefreshPublisher
	metrics   *observability.Metrics
	logger    *slog.Logger
}

// NewOrchestrator creates an Orchestrator. publisher may be nil.
func NewOrchestrator(
	fetcher domain.BulletinFetcher,
	cache *CacheStore,
	langs []domain.Lang,
	access AccessPolicy,
	publisher domain.RefreshPublisher,
	metrics *observability.Metrics,
	logger *slog.Logger,
) *Orchestrator {
	return &Orchestrator{
		fetcher:   fetcher,
		cache:     cache,
		langs:     langs,
		access:    access,
		publisher: publisher,
		metrics:   metrics,
		logger:    logger,
	}
}

// Refresh processes languages one after another. A failing language is
// recorded in its result and does not affect the others; the run is OK when
// at least one language was stored.
func (o *Orchestrator) Refresh(ctx context.Context) Report {
	start := time.Now()
	runID := uuid.NewString()
	refreshedAt := domain.Clock().Now().UTC()
	logger := o.logger.With("run_id", runID)

	report := Report{
		RunID:       runID,
		RefreshedAt: refreshedAt.Format(time.RFC3339),
		Results:     make([]domain.LangResult, 0, len(o.langs)),
	}
	events := make([]domain.RefreshEvent, 0, len(o.langs))

	for _, lang := range o.langs {
		result, info, err := o.refreshLang(ctx, lang)
		event := domain.RefreshEvent{RunID: runID, Lang: lang, RefreshedAt: refreshedAt}
		if err != nil {
			result = domain.LangResult{Lang: lang, Error: err.Error()}
			event.Error = result.Error
			o.metrics.RefreshLanguages.WithLabelValues(string(lang), "failed").Inc()
			logger.Warn("bulletin refresh failed", "lang", lang, "error", err)
		} else {
			report.OK = true
			event.OK = true
			event.Title = result.Title
			event.IssuedAt = result.IssuedAt
			event.ObjectURL = info.URL
			o.metrics.RefreshLanguages.WithLabelValues(string(lang), "ok").Inc()
			logger.Info("bulletin refreshed", "lang", lang, "title", result.Title, "object", info.Key)
		}
		report.Results = append(report.Results, result)
		events = append(events, event)
	}

	outcome := "failed"
	if report.OK {
		outcome = "ok"
	}
	o.metrics.RefreshRuns.WithLabelValues(outcome).Inc()
	o.metrics.RefreshDuration.Observe(time.Since(start).Seconds())

	o.publish(ctx, logger, events)
	return report
}

func (o *Orchestrator) refreshLang(ctx context.Context, lang domain.Lang) (domain.LangResult, domain.ObjectInfo, error) {
	page, err := o.fetcher.FetchBulletinHTML(ctx, lang)
	if err != nil {
		return domain.LangResult{}, domain.ObjectInfo{}, err
	}

	res := extract.Extract(page, lang)
	o.metrics.ExtractionPath.WithLabelValues(string(lang), res.Path).Inc()

	payload := domain.BulletinPayload{
		SourceURL: o.fetcher.SourceURL(lang),
		Title:     res.Title,
		IssuedAt:  formatIssued(res.IssuedAt),
		FetchedAt: domain.Clock().Now().UTC().Format(time.RFC3339),
		Blocks:    blocks.Map(res.Sections),
	}

	info, err := o.cache.Put(ctx, lang, payload)
	if err != nil {
		return domain.LangResult{}, domain.ObjectInfo{}, err
	}
	return domain.LangResult{
		Lang:     lang,
		OK:       true,
		IssuedAt: payload.IssuedAt,
		Title:    payload.Title,
	}, info, nil
}

func (o *Orchestrator) publish(ctx context.Context, logger *slog.Logger, events []domain.RefreshEvent) {
	if o.publisher == nil {
		return
	}
	if err := o.publisher.PublishRefresh(ctx, events); err != nil {
		o.metrics.EventErrors.Inc()
		logger.Error("publish refresh events", "error", err)
		return
	}
	o.metrics.EventsPublished.Add(float64(len(events)))
}

func formatIssued(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format(time.RFC3339)
	return &s
}
