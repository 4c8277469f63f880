package domain

import (
	"context"
	"time"
)

// ObjectInfo describes a stored object without its body.
type ObjectInfo struct {
	Key         string
	URL         string
	ContentType string
	Size        int64
	UpdatedAt   time.Time
}

// ObjectStore is an overwrite-only key/value blob store with public reads.
// Head returns ErrCacheMiss when the key does not exist.
type ObjectStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (ObjectInfo, error)
	Head(ctx context.Context, key string) (ObjectInfo, error)
	Open(ctx context.Context, info ObjectInfo) ([]byte, error)
}
