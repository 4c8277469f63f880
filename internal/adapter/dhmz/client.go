// Package dhmz fetches the Adriatic marine bulletin pages from the national
// weather service website.
package dhmz

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/couchcryptid/marine-bulletin-service/internal/domain"
	"github.com/couchcryptid/marine-bulletin-service/internal/observability"
)

const (
	sourceName   = "bulletin"
	maxBodyBytes = 2 << 20
)

// languageCodes maps bulletin languages to the site's query values.
var languageCodes = map[domain.Lang]string{
	domain.LangHR: "hr",
	domain.LangEN: "en",
	domain.LangDE: "de",
	domain.LangIT: "it",
}

// Client implements domain.BulletinFetcher.
type Client struct {
	baseURL   string
	langParam string
	userAgent string
	http      *retryablehttp.Client
	metrics   *observability.Metrics
	logger    *slog.Logger
}

// Options configures a Client.
type Options struct {
	BaseURL   string
	LangParam string
	UserAgent string
	Timeout   time.Duration
	RetryMax  int
}

// NewClient creates a bulletin page client. With RetryMax 0 every fetch is a
// single attempt.
func NewClient(opts Options, metrics *observability.Metrics, logger *slog.Logger) *Client {
	rc := retryablehttp.NewClient()
	rc.HTTPClient = &http.Client{Timeout: opts.Timeout}
	rc.RetryMax = opts.RetryMax
	rc.RetryWaitMin = 500 * time.Millisecond
	rc.RetryWaitMax = 5 * time.Second
	rc.Logger = logger
	// Hand the final response back so its status can be reported.
	rc.ErrorHandler = retryablehttp.PassthroughErrorHandler

	return &Client{
		baseURL:   opts.BaseURL,
		langParam: opts.LangParam,
		userAgent: opts.UserAgent,
		http:      rc,
		metrics:   metrics,
		logger:    logger,
	}
}

// SourceURL returns the page address for lang.
func (c *Client) SourceURL(lang domain.Lang) string {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return c.baseURL
	}
	code, ok := languageCodes[lang]
	if !ok {
		code = string(lang)
	}
	q := u.Query()
	q.Set(c.langParam, code)
	u.RawQuery = q.Encode()
	return u.String()
}

// FetchBulletinHTML downloads the bulletin page for lang. The request asks
// every cache on the way to revalidate: the site changes pages without
// reliable Last-Modified or ETag headers.
func (c *Client) FetchBulletinHTML(ctx context.Context, lang domain.Lang) (string, error) {
	src := c.SourceURL(lang)
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	req.Header.Set("Cache-Control", "no-cache, no-store, max-age=0")
	req.Header.Set("Pragma", "no-cache")

	start := time.Now()
	resp, err := c.http.Do(req)
	c.metrics.UpstreamDuration.WithLabelValues(sourceName).Observe(time.Since(start).Seconds())
	if err != nil {
		c.metrics.UpstreamErrors.WithLabelValues(sourceName).Inc()
		return "", &domain.UpstreamError{Source: sourceName, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.metrics.UpstreamErrors.WithLabelValues(sourceName).Inc()
		return "", &domain.UpstreamError{Source: sourceName, Status: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		c.metrics.UpstreamErrors.WithLabelValues(sourceName).Inc()
		return "", &domain.UpstreamError{Source: sourceName, Status: resp.StatusCode, Err: fmt.Errorf("read body: %w", err)}
	}

	c.logger.Debug("bulletin page fetched", "lang", lang, "url", src, "bytes", len(body))
	return string(body), nil
}
