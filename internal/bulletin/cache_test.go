package bulletin

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/marine-bulletin-service/internal/domain"
)

func TestCacheKey(t *testing.T) {
	assert.Equal(t, "bulletins/hr.json", CacheKey(domain.LangHR))
}

func TestCacheStore_PutGet(t *testing.T) {
	cache, store := newMemCache()
	ctx := context.Background()

	issued := "2026-10-16T06:00:00Z"
	payload := domain.BulletinPayload{
		SourceURL: "https://bulletin.test/jadran?lang=en",
		Title:     "Forecast",
		IssuedAt:  &issued,
		FetchedAt: "2026-10-16T07:00:00Z",
		Blocks: domain.Blocks{
			Warning: domain.CanonicalBlock{Label: "Warning", Text: "None."},
		},
	}

	info, err := cache.Put(ctx, domain.LangEN, payload)
	require.NoError(t, err)
	assert.Equal(t, "bulletins/en.json", info.Key)
	assert.Equal(t, ContentType, info.ContentType)

	got, err := cache.Get(ctx, domain.LangEN)
	require.NoError(t, err)
	assert.Equal(t, payload, got)

	raw, err := store.Open(ctx, info)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"sourceUrl": "https://bulletin.test/jadran?lang=en",
		"title": "Forecast",
		"issuedAt": "2026-10-16T06:00:00Z",
		"fetchedAt": "2026-10-16T07:00:00Z",
		"blocks": {
			"warning": {"label": "Warning", "text": "None."},
			"synopsis": {"label": "", "text": ""},
			"forecast_12h": {"label": "", "text": ""},
			"outlook_12h": {"label": "", "text": ""}
		}
	}`, string(raw))
}

func TestCacheStore_NullIssuedAt(t *testing.T) {
	cache, store := newMemCache()
	ctx := context.Background()

	info, err := cache.Put(ctx, domain.LangDE, domain.BulletinPayload{Title: "t"})
	require.NoError(t, err)

	raw, err := store.Open(ctx, info)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"issuedAt":null`)
}

func TestCacheStore_MarkupCharactersStoredVerbatim(t *testing.T) {
	cache, store := newMemCache()
	ctx := context.Background()

	payload := domain.BulletinPayload{
		Title: "Wind & sea",
		Blocks: domain.Blocks{
			Forecast12h: domain.CanonicalBlock{Label: "Forecast", Text: "Gusts <40 kt> & rising"},
		},
	}
	info, err := cache.Put(ctx, domain.LangEN, payload)
	require.NoError(t, err)

	raw, err := store.Open(ctx, info)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"text":"Gusts <40 kt> & rising"`)
	assert.NotContains(t, string(raw), `\u003c`)
	assert.False(t, strings.HasSuffix(string(raw), "\n"))

	got, err := cache.Get(ctx, domain.LangEN)
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

func TestCacheStore_GetMiss(t *testing.T) {
	cache, _ := newMemCache()

	_, err := cache.Get(context.Background(), domain.LangIT)
	assert.ErrorIs(t, err, domain.ErrCacheMiss)
}

func TestCacheStore_GetMalformed(t *testing.T) {
	cache, store := newMemCache()
	ctx := context.Background()
	_, err := store.Put(ctx, CacheKey(domain.LangHR), []byte("{not json"), ContentType)
	require.NoError(t, err)

	_, err = cache.Get(ctx, domain.LangHR)

	var malformed *domain.MalformedCacheObjectError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, "bulletins/hr.json", malformed.Key)
}

func TestCacheStore_StoreFailure(t *testing.T) {
	cache := NewCacheStore(failingStore{})
	ctx := context.Background()

	_, err := cache.Get(ctx, domain.LangEN)
	var upErr *domain.UpstreamError
	require.ErrorAs(t, err, &upErr)
	assert.ErrorIs(t, err, errStoreDown)
	assert.NotErrorIs(t, err, domain.ErrCacheMiss)

	_, err = cache.Put(ctx, domain.LangEN, domain.BulletinPayload{})
	require.ErrorAs(t, err, &upErr)
}
