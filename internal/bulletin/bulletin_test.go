package bulletin

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/couchcryptid/marine-bulletin-service/internal/adapter/memstore"
	"github.com/couchcryptid/marine-bulletin-service/internal/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeFetcher serves a generated bulletin per language unless the language
// is listed in failures.
type fakeFetcher struct {
	mu       sync.Mutex
	failures map[domain.Lang]error
	calls    []domain.Lang
}

func (f *fakeFetcher) FetchBulletinHTML(_ context.Context, lang domain.Lang) (string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, lang)
	f.mu.Unlock()
	if err := f.failures[lang]; err != nil {
		return "", err
	}
	return bulletinPage(lang), nil
}

func (f *fakeFetcher) SourceURL(lang domain.Lang) string {
	return "https://bulletin.test/jadran?lang=" + string(lang)
}

func bulletinPage(lang domain.Lang) string {
	return fmt.Sprintf(`<html><body><div id="sadrzaj">
		<h4>Bulletin %[1]s, issued on 16.10.2026 at 06 UTC</h4>
		<h5>Warning</h5><p>Gale warning %[1]s.</p>
		<h5>Synopsis</h5><p>Ridge over the Alps.</p>
		<h5>Forecast for the next 12 hours</h5><p>NE 15-25 kt.</p>
		<h5>Outlook for the next 12 hours</h5><p>Bora weakening.</p>
	</div></body></html>`, lang)
}

// failingStore fails every operation.
type failingStore struct{}

var errStoreDown = errors.New("store down")

func (failingStore) Put(context.Context, string, []byte, string) (domain.ObjectInfo, error) {
	return domain.ObjectInfo{}, errStoreDown
}

func (failingStore) Head(context.Context, string) (domain.ObjectInfo, error) {
	return domain.ObjectInfo{}, errStoreDown
}

func (failingStore) Open(context.Context, domain.ObjectInfo) ([]byte, error) {
	return nil, errStoreDown
}

// recordingPublisher captures published events.
type recordingPublisher struct {
	events []domain.RefreshEvent
	err    error
}

func (p *recordingPublisher) PublishRefresh(_ context.Context, events []domain.RefreshEvent) error {
	p.events = append(p.events, events...)
	return p.err
}

func newMemCache() (*CacheStore, *memstore.Store) {
	store := memstore.New("")
	return NewCacheStore(store), store
}
