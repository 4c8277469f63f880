package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the service.
type Metrics struct {
	// Refresh orchestration.
	RefreshRuns      *prometheus.CounterVec // labels: outcome={ok,failed}
	RefreshLanguages *prometheus.CounterVec // labels: lang, outcome={ok,failed}
	ExtractionPath   *prometheus.CounterVec // labels: lang, path={structural,fallback}
	RefreshDuration  prometheus.Histogram

	// Upstream calls.
	UpstreamDuration *prometheus.HistogramVec // labels: source={bulletin,open_meteo}
	UpstreamErrors   *prometheus.CounterVec   // labels: source

	// Read paths.
	BulletinReads *prometheus.CounterVec // labels: lang, outcome={hit,miss,error}
	BoraRequests  *prometheus.CounterVec // labels: outcome={ok,error}
	BoraLevel     prometheus.Gauge       // 0=none … 3=storm

	// Refresh event publishing.
	EventsPublished prometheus.Counter
	EventErrors     prometheus.Counter
}

// NewMetrics creates and registers all service metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		RefreshRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "marine_bulletin",
			Name:      "refresh_runs_total",
			Help:      "Refresh invocations by overall outcome.",
		}, []string{"outcome"}),
		RefreshLanguages: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "marine_bulletin",
			Name:      "refresh_languages_total",
			Help:      "Per-language refresh results.",
		}, []string{"lang", "outcome"}),
		ExtractionPath: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "marine_bulletin",
			Name:      "extraction_path_total",
			Help:      "Bulletin extractions by the path that produced the sections.",
		}, []string{"lang", "path"}),
		RefreshDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "marine_bulletin",
			Name:      "refresh_duration_seconds",
			Help:      "Duration of a complete refresh over all languages.",
			Buckets:   []float64{0.5, 1, 2.5, 5, 10, 20, 30, 60},
		}),
		UpstreamDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "marine_bulletin",
			Name:      "upstream_request_duration_seconds",
			Help:      "External request duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"source"}),
		UpstreamErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "marine_bulletin",
			Name:      "upstream_errors_total",
			Help:      "Failed external requests by source.",
		}, []string{"source"}),
		BulletinReads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "marine_bulletin",
			Name:      "bulletin_reads_total",
			Help:      "Bulletin read requests by language and outcome.",
		}, []string{"lang", "outcome"}),
		BoraRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "marine_bulletin",
			Name:      "bora_requests_total",
			Help:      "Differential forecast requests by outcome.",
		}, []string{"outcome"}),
		BoraLevel: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "marine_bulletin",
			Name:      "bora_level",
			Help:      "Last computed alert level: 0 none, 1 watch, 2 bora, 3 storm.",
		}),
		EventsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "marine_bulletin",
			Name:      "refresh_events_published_total",
			Help:      "Refresh events written to Kafka.",
		}),
		EventErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "marine_bulletin",
			Name:      "refresh_event_errors_total",
			Help:      "Refresh event batches that failed to publish.",
		}),
	}

	prometheus.MustRegister(
		m.RefreshRuns,
		m.RefreshLanguages,
		m.ExtractionPath,
		m.RefreshDuration,
		m.UpstreamDuration,
		m.UpstreamErrors,
		m.BulletinReads,
		m.BoraRequests,
		m.BoraLevel,
		m.EventsPublished,
		m.EventErrors,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		RefreshRuns:      prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "marine_bulletin", Name: "refresh_runs_total"}, []string{"outcome"}),
		RefreshLanguages: prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "marine_bulletin", Name: "refresh_languages_total"}, []string{"lang", "outcome"}),
		ExtractionPath:   prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "marine_bulletin", Name: "extraction_path_total"}, []string{"lang", "path"}),
		RefreshDuration:  prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "marine_bulletin", Name: "refresh_duration_seconds"}),
		UpstreamDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: "marine_bulletin", Name: "upstream_request_duration_seconds"}, []string{"source"}),
		UpstreamErrors:   prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "marine_bulletin", Name: "upstream_errors_total"}, []string{"source"}),
		BulletinReads:    prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "marine_bulletin", Name: "bulletin_reads_total"}, []string{"lang", "outcome"}),
		BoraRequests:     prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "marine_bulletin", Name: "bora_requests_total"}, []string{"outcome"}),
		BoraLevel:        prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "marine_bulletin", Name: "bora_level"}),
		EventsPublished:  prometheus.NewCounter(prometheus.CounterOpts{Namespace: "marine_bulletin", Name: "refresh_events_published_total"}),
		EventErrors:      prometheus.NewCounter(prometheus.CounterOpts{Namespace: "marine_bulletin", Name: "refresh_event_errors_total"}),
	}
}
