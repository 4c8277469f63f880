// Package openmeteo reads hourly model output from the Open-Meteo forecast API.
package openmeteo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/tidwall/gjson"

	"github.com/couchcryptid/marine-bulletin-service/internal/domain"
	"github.com/couchcryptid/marine-bulletin-service/internal/observability"
)

const (
	sourceName   = "open_meteo"
	dateLayout   = "2006-01-02"
	timeLayout   = "2006-01-02T15:04"
	maxBodyBytes = 4 << 20
)

// Client implements domain.StationSource.
type Client struct {
	httpClient *http.Client
	baseURL    string
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates an Open-Meteo client. Requests are single attempts.
func NewClient(baseURL string, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		metrics:    metrics,
		logger:     logger,
	}
}

// FetchStationSeries returns the hourly series for station between the
// calendar dates of from and to, inclusive, in UTC.
func (c *Client) FetchStationSeries(ctx context.Context, station domain.Station, from, to time.Time) (domain.StationSeries, error) {
	hourly := "pressure_msl"
	if station.WithWind {
		hourly += ",wind_speed_10m,wind_direction_10m"
	}
	params := url.Values{
		"latitude":   {strconv.FormatFloat(station.Latitude, 'f', -1, 64)},
		"longitude":  {strconv.FormatFloat(station.Longitude, 'f', -1, 64)},
		"start_date": {from.UTC().Format(dateLayout)},
		"end_date":   {to.UTC().Format(dateLayout)},
		"hourly":     {hourly},
		"timezone":   {"UTC"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return domain.StationSeries{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.metrics.UpstreamDuration.WithLabelValues(sourceName).Observe(time.Since(start).Seconds())
	if err != nil {
		c.metrics.UpstreamErrors.WithLabelValues(sourceName).Inc()
		return domain.StationSeries{}, &domain.UpstreamError{Source: sourceName, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		c.metrics.UpstreamErrors.WithLabelValues(sourceName).Inc()
		return domain.StationSeries{}, &domain.UpstreamError{Source: sourceName, Status: resp.StatusCode, Err: fmt.Errorf("read body: %w", err)}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.metrics.UpstreamErrors.WithLabelValues(sourceName).Inc()
		upErr := &domain.UpstreamError{Source: sourceName, Status: resp.StatusCode}
		if reason := gjson.GetBytes(body, "reason"); reason.Exists() {
			upErr.Err = errors.New(reason.String())
		}
		return domain.StationSeries{}, upErr
	}

	series, err := parseSeries(body, station.WithWind)
	if err != nil {
		c.metrics.UpstreamErrors.WithLabelValues(sourceName).Inc()
		return domain.StationSeries{}, &domain.UpstreamError{Source: sourceName, Status: resp.StatusCode, Err: err}
	}

	c.logger.Debug("station series fetched", "station", station.Name, "points", len(series.Times))
	return series, nil
}

func parseSeries(body []byte, withWind bool) (domain.StationSeries, error) {
	if !gjson.ValidBytes(body) {
		return domain.StationSeries{}, errors.New("decode response: invalid json")
	}
	hourly := gjson.GetBytes(body, "hourly")
	times := hourly.Get("time").Array()

	series := domain.StationSeries{
		Times:    make([]time.Time, 0, len(times)),
		Pressure: values(hourly.Get("pressure_msl"), len(times)),
	}
	for i, ts := range times {
		t, err := time.ParseInLocation(timeLayout, ts.String(), time.UTC)
		if err != nil {
			return domain.StationSeries{}, fmt.Errorf("decode time %d: %w", i, err)
		}
		series.Times = append(series.Times, t)
	}
	if withWind {
		series.WindSpeed = values(hourly.Get("wind_speed_10m"), len(times))
		series.WindDir = values(hourly.Get("wind_direction_10m"), len(times))
	}
	return series, nil
}

// values reads a numeric array padded or cut to n entries; nulls and
// missing trailing entries stay nil.
func values(arr gjson.Result, n int) []*float64 {
	out := make([]*float64, n)
	for i, v := range arr.Array() {
		if i >= n {
			break
		}
		if v.Type != gjson.Number {
			continue
		}
		f := v.Float()
		out[i] = &f
	}
	return out
}
