// Package sqlite implements domain.ObjectStore on an embedded SQLite file.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/couchcryptid/marine-bulletin-service/internal/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS objects (
  key          TEXT PRIMARY KEY,
  content_type TEXT NOT NULL,
  body         BLOB NOT NULL,
  updated_at   INTEGER NOT NULL
);`

// Store keeps one row per object key; Put overwrites.
type Store struct {
	db         *sql.DB
	publicBase string
}

// Open opens (creating if needed) the database at path. publicBase prefixes
// the URLs reported in ObjectInfo.
func Open(path, publicBase string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create store dir: %w", err)
		}
	}
	dsn := "file:" + path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{db: db, publicBase: publicBase}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// CheckReadiness implements the readiness probe.
func (s *Store) CheckReadiness(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Put(ctx context.Context, key string, data []byte, contentType string) (domain.ObjectInfo, error) {
	now := domain.Clock().Now().UTC().Truncate(time.Millisecond)
	_, err := s.db.ExecContext(ctx, `
INSERT INTO objects(key, content_type, body, updated_at) VALUES(?,?,?,?)
ON CONFLICT(key) DO UPDATE SET
  content_type = excluded.content_type,
  body = excluded.body,
  updated_at = excluded.updated_at`,
		key, contentType, data, now.UnixMilli())
	if err != nil {
		return domain.ObjectInfo{}, fmt.Errorf("put %s: %w", key, err)
	}
	return s.info(key, contentType, int64(len(data)), now), nil
}

func (s *Store) Head(ctx context.Context, key string) (domain.ObjectInfo, error) {
	var (
		contentType string
		size        int64
		updatedAt   int64
	)
	err := s.db.QueryRowContext(ctx,
		"SELECT content_type, length(body), updated_at FROM objects WHERE key = ?", key).
		Scan(&contentType, &size, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ObjectInfo{}, domain.ErrCacheMiss
	}
	if err != nil {
		return domain.ObjectInfo{}, fmt.Errorf("head %s: %w", key, err)
	}
	return s.info(key, contentType, size, time.UnixMilli(updatedAt).UTC()), nil
}

func (s *Store) Open(ctx context.Context, info domain.ObjectInfo) ([]byte, error) {
	var body []byte
	err := s.db.QueryRowContext(ctx, "SELECT body FROM objects WHERE key = ?", info.Key).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", info.Key, err)
	}
	return body, nil
}

func (s *Store) info(key, contentType string, size int64, updatedAt time.Time) domain.ObjectInfo {
	return domain.ObjectInfo{
		Key:         key,
		URL:         s.publicBase + "/objects/" + key,
		ContentType: contentType,
		Size:        size,
		UpdatedAt:   updatedAt,
	}
}
