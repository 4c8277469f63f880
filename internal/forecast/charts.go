package forecast

import (
	"fmt"
	"math"
	"time"

	"github.com/couchcryptid/marine-bulletin-service/internal/domain"
)

const (
	next36hWindow = 36 * time.Hour
	h48Window     = 48 * time.Hour
	kmhPerKnot    = 1.852
)

// tickHours are the UTC hours sampled for chart series.
var tickHours = map[int]bool{0: true, 6: true, 12: true, 18: true}

// Charts is the payload served to the bora widget.
type Charts struct {
	Week    domain.ChartSeries `json:"week"`
	H48     domain.ChartSeries `json:"h48"`
	Next36h Outlook            `json:"next36h"`
	Now     *Current           `json:"now"`
}

// Outlook classifies the lowest delta of the coming 36 hours.
type Outlook struct {
	MinDelta float64           `json:"minDelta"`
	Level    domain.AlertLevel `json:"level"`
}

// Current describes the point nearest to the present instant.
type Current struct {
	TimestampUTC    time.Time `json:"timestampUtc"`
	Delta           float64   `json:"delta"`
	CoastalPressure float64   `json:"coastalPressure"`
	InlandPressure  float64   `json:"inlandPressure"`
	WindKn          *float64  `json:"windKn"`
	WindDir         *float64  `json:"windDir"`
}

// BuildCharts derives every chart element from series relative to now.
func BuildCharts(series []domain.DeltaPoint, now time.Time) Charts {
	minDelta := Next36hMinDelta(series, now)
	charts := Charts{
		Week:    ticks(series, time.Time{}, time.Time{}),
		H48:     ticks(series, now, now.Add(h48Window)),
		Next36h: Outlook{MinDelta: minDelta, Level: domain.ClassifyLevel(minDelta)},
	}
	if p, ok := NearestNow(series, now); ok {
		charts.Now = &Current{
			TimestampUTC:    p.TimestampUTC,
			Delta:           p.Delta,
			CoastalPressure: p.CoastalPressure,
			InlandPressure:  p.InlandPressure,
			WindKn:          WindKnots(p.CoastalWindSpeed),
			WindDir:         p.CoastalWindDir,
		}
	}
	return charts
}

// NearestNow returns the point closest in time to now. Ties go to the
// earlier point in series order.
func NearestNow(series []domain.DeltaPoint, now time.Time) (domain.DeltaPoint, bool) {
	if len(series) == 0 {
		return domain.DeltaPoint{}, false
	}
	best := 0
	bestDist := absDuration(series[0].TimestampUTC.Sub(now))
	for i := 1; i < len(series); i++ {
		if d := absDuration(series[i].TimestampUTC.Sub(now)); d < bestDist {
			best, bestDist = i, d
		}
	}
	return series[best], true
}

// Next36hMinDelta is the minimum delta within [now, now+36h], or 0 when
// no point falls in the window.
func Next36hMinDelta(series []domain.DeltaPoint, now time.Time) float64 {
	end := now.Add(next36hWindow)
	found := false
	minDelta := 0.0
	for _, p := range series {
		if p.TimestampUTC.Before(now) || p.TimestampUTC.After(end) {
			continue
		}
		if !found || p.Delta < minDelta {
			minDelta = p.Delta
			found = true
		}
	}
	return minDelta
}

// WindKnots converts km/h to knots rounded to one decimal.
func WindKnots(kmh *float64) *float64 {
	if kmh == nil {
		return nil
	}
	kn := round1(*kmh / kmhPerKnot)
	return &kn
}

// ticks samples points at tick hours. Zero from/to leave that side open.
func ticks(series []domain.DeltaPoint, from, to time.Time) domain.ChartSeries {
	var out domain.ChartSeries
	for _, p := range series {
		if !tickHours[p.HourUTC] {
			continue
		}
		if !from.IsZero() && p.TimestampUTC.Before(from) {
			continue
		}
		if !to.IsZero() && p.TimestampUTC.After(to) {
			continue
		}
		out.Labels = append(out.Labels, tickLabel(p))
		out.Data = append(out.Data, p.Delta)
	}
	return out
}

func tickLabel(p domain.DeltaPoint) string {
	if p.HourUTC == 0 {
		return fmt.Sprintf("%02d.%02d", p.Day, p.Month)
	}
	return fmt.Sprintf("%02d", p.HourUTC)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
