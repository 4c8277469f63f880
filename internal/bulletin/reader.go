package bulletin

import (
	"context"
	"errors"

	"github.com/couchcryptid/marine-bulletin-service/internal/domain"
	"github.com/couchcryptid/marine-bulletin-service/internal/observability"
)

// ReadResult is a cached bulletin together with the language that served it.
type ReadResult struct {
	Lang    domain.Lang
	Payload domain.BulletinPayload
}

// Reader answers bulletin requests from the cache.
type Reader struct {
	cache   *CacheStore
	metrics *observability.Metrics
}

// NewReader creates a Reader over cache.
func NewReader(cache *CacheStore, metrics *observability.Metrics) *Reader {
	return &Reader{cache: cache, metrics: metrics}
}

// Read normalizes the requested language and returns its cached bulletin.
// The returned Lang is set even when err is non-nil.
func (r *Reader) Read(ctx context.Context, requested string) (ReadResult, error) {
	lang := domain.NormalizeLang(requested)
	payload, err := r.cache.Get(ctx, lang)
	switch {
	case err == nil:
		r.metrics.BulletinReads.WithLabelValues(string(lang), "hit").Inc()
	case errors.Is(err, domain.ErrCacheMiss):
		r.metrics.BulletinReads.WithLabelValues(string(lang), "miss").Inc()
	default:
		r.metrics.BulletinReads.WithLabelValues(string(lang), "error").Inc()
	}
	if err != nil {
		return ReadResult{Lang: lang}, err
	}
	return ReadResult{Lang: lang, Payload: payload}, nil
}
