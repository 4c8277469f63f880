package bulletin

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/couchcryptid/marine-bulletin-service/internal/domain"
)

// ContentType is stored with every cache object.
const ContentType = "application/json; charset=utf-8"

const storeSource = "store"

// CacheKey returns the object key holding lang's bulletin.
func CacheKey(lang domain.Lang) string {
	return "bulletins/" + string(lang) + ".json"
}

// CacheStore persists one BulletinPayload per language.
type CacheStore struct {
	store domain.ObjectStore
}

// NewCacheStore wraps an object store.
func NewCacheStore(store domain.ObjectStore) *CacheStore {
	return &CacheStore{store: store}
}

// Put overwrites the cache object for lang.
func (c *CacheStore) Put(ctx context.Context, lang domain.Lang, payload domain.BulletinPayload) (domain.ObjectInfo, error) {
	data, err := encodePayload(payload)
	if err != nil {
		return domain.ObjectInfo{}, fmt.Errorf("encode bulletin %s: %w", lang, err)
	}
	info, err := c.store.Put(ctx, CacheKey(lang), data, ContentType)
	if err != nil {
		return domain.ObjectInfo{}, &domain.UpstreamError{Source: storeSource, Err: err}
	}
	return info, nil
}

// encodePayload renders payload as compact JSON with markup characters left
// unescaped, so bulletin text is stored exactly as extracted.
func encodePayload(payload domain.BulletinPayload) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(payload); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Get returns the cached payload for lang. It fails with domain.ErrCacheMiss
// when nothing was stored, a *domain.MalformedCacheObjectError when the
// object does not decode, and a *domain.UpstreamError when the store fails.
func (c *CacheStore) Get(ctx context.Context, lang domain.Lang) (domain.BulletinPayload, error) {
	key := CacheKey(lang)
	info, err := c.store.Head(ctx, key)
	if err != nil {
		return domain.BulletinPayload{}, storeErr(err)
	}
	data, err := c.store.Open(ctx, info)
	if err != nil {
		return domain.BulletinPayload{}, storeErr(err)
	}

	var payload domain.BulletinPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return domain.BulletinPayload{}, &domain.MalformedCacheObjectError{Key: key, Err: err}
	}
	return payload, nil
}

func storeErr(err error) error {
	if errors.Is(err, domain.ErrCacheMiss) {
		return domain.ErrCacheMiss
	}
	return &domain.UpstreamError{Source: storeSource, Err: err}
}
