package forecast

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/marine-bulletin-service/internal/domain"
)

var base = time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)

func point(offset time.Duration, delta float64) domain.DeltaPoint {
	t := base.Add(offset)
	return domain.DeltaPoint{
		TimestampUTC: t,
		HourUTC:      t.Hour(),
		Day:          t.Day(),
		Month:        int(t.Month()),
		Delta:        delta,
	}
}

func TestNearestNow(t *testing.T) {
	series := []domain.DeltaPoint{
		point(0, -1),
		point(6*time.Hour, -2),
		point(12*time.Hour, -3),
	}

	tests := []struct {
		name string
		now  time.Time
		want float64
	}{
		{name: "exact", now: base.Add(6 * time.Hour), want: -2},
		{name: "closer to later", now: base.Add(10 * time.Hour), want: -3},
		{name: "tie goes to first", now: base.Add(9 * time.Hour), want: -2},
		{name: "before range", now: base.Add(-48 * time.Hour), want: -1},
		{name: "after range", now: base.Add(72 * time.Hour), want: -3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, ok := NearestNow(series, tt.now)
			require.True(t, ok)
			assert.Equal(t, tt.want, p.Delta)
		})
	}

	_, ok := NearestNow(nil, base)
	assert.False(t, ok)
}

func TestNext36hMinDelta(t *testing.T) {
	series := []domain.DeltaPoint{
		point(0, -12),
		point(2*time.Hour, -1),
		point(20*time.Hour, -4.5),
		point(38*time.Hour, -3), // window end is inclusive
		point(39*time.Hour, -20),
	}
	now := base.Add(2 * time.Hour)

	assert.Equal(t, -4.5, Next36hMinDelta(series, now))
	assert.Equal(t, 0.0, Next36hMinDelta(series, base.Add(100*time.Hour)), "empty window")
	assert.Equal(t, 0.0, Next36hMinDelta(nil, now))
}

func TestNext36hMinDelta_PositiveOnly(t *testing.T) {
	series := []domain.DeltaPoint{point(time.Hour, 2.5), point(2*time.Hour, 1.2)}

	minDelta := Next36hMinDelta(series, base)
	assert.Equal(t, 1.2, minDelta)
	assert.Equal(t, domain.LevelNone, domain.ClassifyLevel(minDelta))
}

func TestTicks(t *testing.T) {
	var series []domain.DeltaPoint
	for h := 0; h < 30; h++ {
		series = append(series, point(time.Duration(h)*time.Hour, float64(-h)/10))
	}

	week := ticks(series, time.Time{}, time.Time{})
	assert.Equal(t, []string{"09.03", "06", "12", "18", "10.03"}, week.Labels)
	assert.Equal(t, []float64{0, -0.6, -1.2, -1.8, -2.4}, week.Data)

	window := ticks(series, base.Add(5*time.Hour), base.Add(18*time.Hour))
	assert.Equal(t, []string{"06", "12", "18"}, window.Labels)
}

func TestWindKnots(t *testing.T) {
	assert.Nil(t, WindKnots(nil))

	kn := WindKnots(ptr(50))
	require.NotNil(t, kn)
	assert.Equal(t, 27.0, *kn)

	kn = WindKnots(ptr(10))
	assert.Equal(t, 5.4, *kn)
}

func TestBuildCharts_StormLevelAndNow(t *testing.T) {
	series := []domain.DeltaPoint{
		point(0, -3),
		point(6*time.Hour, -8),
		point(12*time.Hour, -6),
	}
	series[0].CoastalWindSpeed = ptr(18.52)
	dir := 40.0
	series[0].CoastalWindDir = &dir

	charts := BuildCharts(series, base.Add(time.Hour))

	assert.Equal(t, -8.0, charts.Next36h.MinDelta)
	assert.Equal(t, domain.LevelStorm, charts.Next36h.Level)
	require.NotNil(t, charts.Now)
	assert.Equal(t, -3.0, charts.Now.Delta)
	assert.Equal(t, 10.0, *charts.Now.WindKn)
	assert.Equal(t, 40.0, *charts.Now.WindDir)
	assert.Equal(t, []string{"06", "12"}, charts.H48.Labels)
	assert.Equal(t, []string{"09.03", "06", "12"}, charts.Week.Labels)
}
