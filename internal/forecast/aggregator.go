// Package forecast derives the bora outlook from the pressure difference
// between a coastal and an inland station.
package forecast

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/couchcryptid/marine-bulletin-service/internal/domain"
	"github.com/couchcryptid/marine-bulletin-service/internal/observability"
)

// rangeDays is how far past today the station series are requested.
const rangeDays = 7

// Aggregator fetches both stations and builds the chart payload.
type Aggregator struct {
	source  domain.StationSource
	inland  domain.Station
	coastal domain.Station
	metrics *observability.Metrics
	logger  *slog.Logger
}

// NewAggregator creates an Aggregator over source.
func NewAggregator(source domain.StationSource, inland, coastal domain.Station, metrics *observability.Metrics, logger *slog.Logger) *Aggregator {
	return &Aggregator{
		source:  source,
		inland:  inland,
		coastal: coastal,
		metrics: metrics,
		logger:  logger,
	}
}

// Forecast fetches the current delta series and builds charts relative to
// the present instant. Any upstream failure fails the whole call.
func (a *Aggregator) Forecast(ctx context.Context) (Charts, error) {
	now := domain.Clock().Now().UTC()
	series, err := a.FetchDeltaSeries(ctx, now)
	if err != nil {
		a.metrics.BoraRequests.WithLabelValues("error").Inc()
		return Charts{}, err
	}
	charts := BuildCharts(series, now)
	a.metrics.BoraRequests.WithLabelValues("ok").Inc()
	a.metrics.BoraLevel.Set(float64(charts.Next36h.Level.Severity()))
	a.logger.Debug("bora forecast built", "points", len(series), "min_delta", charts.Next36h.MinDelta, "level", charts.Next36h.Level)
	return charts, nil
}

// FetchDeltaSeries requests both stations concurrently over
// [today, today+7d] (UTC dates around now) and joins them by timestamp.
func (a *Aggregator) FetchDeltaSeries(ctx context.Context, now time.Time) ([]domain.DeltaPoint, error) {
	from := now.UTC().Truncate(24 * time.Hour)
	to := from.AddDate(0, 0, rangeDays)

	var inland, coastal domain.StationSeries
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s, err := a.source.FetchStationSeries(gctx, a.inland, from, to)
		if err != nil {
			return fmt.Errorf("inland station %s: %w", a.inland.Name, err)
		}
		inland = s
		return nil
	})
	g.Go(func() error {
		s, err := a.source.FetchStationSeries(gctx, a.coastal, from, to)
		if err != nil {
			return fmt.Errorf("coastal station %s: %w", a.coastal.Name, err)
		}
		coastal = s
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return Align(coastal, inland), nil
}

// Align joins the two series on shared timestamps, in coastal series order.
// Hours where either pressure is missing are skipped.
func Align(coastal, inland domain.StationSeries) []domain.DeltaPoint {
	inlandAt := make(map[int64]float64, len(inland.Times))
	for i, t := range inland.Times {
		if p := at(inland.Pressure, i); p != nil {
			inlandAt[t.Unix()] = *p
		}
	}

	points := make([]domain.DeltaPoint, 0, len(coastal.Times))
	for i, t := range coastal.Times {
		cp := at(coastal.Pressure, i)
		ip, ok := inlandAt[t.Unix()]
		if cp == nil || !ok {
			continue
		}
		t = t.UTC()
		points = append(points, domain.DeltaPoint{
			TimestampUTC:     t,
			HourUTC:          t.Hour(),
			Day:              t.Day(),
			Month:            int(t.Month()),
			Delta:            round1(*cp - ip),
			CoastalPressure:  *cp,
			InlandPressure:   ip,
			CoastalWindSpeed: at(coastal.WindSpeed, i),
			CoastalWindDir:   at(coastal.WindDir, i),
		})
	}
	return points
}

func at(values []*float64, i int) *float64 {
	if i >= len(values) {
		return nil
	}
	return values[i]
}
