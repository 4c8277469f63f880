// Package memstore is an in-process domain.ObjectStore for tests and
// single-instance development runs.
package memstore

import (
	"context"
	"sync"

	"github.com/couchcryptid/marine-bulletin-service/internal/domain"
)

type object struct {
	info domain.ObjectInfo
	body []byte
}

// Store holds objects in a map guarded by a mutex.
type Store struct {
	mu         sync.RWMutex
	objects    map[string]object
	publicBase string
}

// New returns an empty store.
func New(publicBase string) *Store {
	return &Store{objects: make(map[string]object), publicBase: publicBase}
}

func (s *Store) Put(_ context.Context, key string, data []byte, contentType string) (domain.ObjectInfo, error) {
	info := domain.ObjectInfo{
		Key:         key,
		URL:         s.publicBase + "/objects/" + key,
		ContentType: contentType,
		Size:        int64(len(data)),
		UpdatedAt:   domain.Clock().Now().UTC(),
	}
	body := append([]byte(nil), data...)

	s.mu.Lock()
	s.objects[key] = object{info: info, body: body}
	s.mu.Unlock()
	return info, nil
}

func (s *Store) Head(_ context.Context, key string) (domain.ObjectInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	obj, ok := s.objects[key]
	if !ok {
		return domain.ObjectInfo{}, domain.ErrCacheMiss
	}
	return obj.info, nil
}

func (s *Store) Open(_ context.Context, info domain.ObjectInfo) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	obj, ok := s.objects[info.Key]
	if !ok {
		return nil, domain.ErrCacheMiss
	}
	return append([]byte(nil), obj.body...), nil
}

// CheckReadiness always succeeds.
func (s *Store) CheckReadiness(context.Context) error { return nil }
