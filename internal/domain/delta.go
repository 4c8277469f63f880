package domain

import (
	"context"
	"encoding/json"
	"time"
)

// Station is a fixed reference point queried from the weather model.
type Station struct {
	Name      string
	Latitude  float64
	Longitude float64
	// WithWind requests hourly wind speed and direction alongside pressure.
	WithWind bool
}

// StationSeries holds hourly model output for one station. Slices are
// index-aligned with Times; nil entries mark values the model left empty.
type StationSeries struct {
	Times     []time.Time
	Pressure  []*float64 // hPa, mean sea level
	WindSpeed []*float64 // km/h at 10 m
	WindDir   []*float64 // degrees at 10 m
}

// StationSource fetches hourly series for a station over [from, to] (dates, UTC).
type StationSource interface {
	FetchStationSeries(ctx context.Context, station Station, from, to time.Time) (StationSeries, error)
}

// DeltaPoint is one hour of the coastal minus inland pressure differential.
type DeltaPoint struct {
	TimestampUTC     time.Time `json:"timestampUtc"`
	HourUTC          int       `json:"hourUtc"`
	Day              int       `json:"day"`
	Month            int       `json:"month"`
	Delta            float64   `json:"delta"`
	CoastalPressure  float64   `json:"coastalPressure"`
	InlandPressure   float64   `json:"inlandPressure"`
	CoastalWindSpeed *float64  `json:"coastalWindSpeed"`
	CoastalWindDir   *float64  `json:"coastalWindDir"`
}

// ChartSeries pairs labels and values positionally.
type ChartSeries struct {
	Labels []string
	Data   []float64
}

// MarshalJSON emits empty arrays instead of null.
func (c ChartSeries) MarshalJSON() ([]byte, error) {
	labels, data := c.Labels, c.Data
	if labels == nil {
		labels = []string{}
	}
	if data == nil {
		data = []float64{}
	}
	return json.Marshal(struct {
		Labels []string  `json:"labels"`
		Data   []float64 `json:"data"`
	}{labels, data})
}

// AlertLevel is the bora hazard classification.
type AlertLevel string

const (
	LevelNone  AlertLevel = "none"
	LevelWatch AlertLevel = "watch"
	LevelBora  AlertLevel = "bora"
	LevelStorm AlertLevel = "storm"
)

// Thresholds in hPa. A boundary value belongs to the more severe level.
const (
	stormThreshold = -8.0
	boraThreshold  = -4.0
)

// ClassifyLevel maps the minimum delta of the forecast horizon to a level.
func ClassifyLevel(minDelta float64) AlertLevel {
	switch {
	case minDelta <= stormThreshold:
		return LevelStorm
	case minDelta <= boraThreshold:
		return LevelBora
	case minDelta < 0:
		return LevelWatch
	default:
		return LevelNone
	}
}

// Severity orders levels for metrics: none=0 … storm=3.
func (l AlertLevel) Severity() int {
	switch l {
	case LevelWatch:
		return 1
	case LevelBora:
		return 2
	case LevelStorm:
		return 3
	default:
		return 0
	}
}
