package domain

import (
	"errors"
	"fmt"
)

// ErrCacheMiss reports that no cached object exists for a key.
var ErrCacheMiss = errors.New("cache miss")

// UpstreamError reports a failed call to an external source: either a
// non-success HTTP status or a transport failure (Status 0).
type UpstreamError struct {
	Source string
	Status int
	Err    error
}

func (e *UpstreamError) Error() string {
	switch {
	case e.Status != 0 && e.Err != nil:
		return fmt.Sprintf("%s: upstream status %d: %v", e.Source, e.Status, e.Err)
	case e.Status != 0:
		return fmt.Sprintf("%s: upstream status %d", e.Source, e.Status)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Source, e.Err)
	default:
		return e.Source + ": upstream failure"
	}
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// MalformedCacheObjectError reports a stored object that failed to decode.
type MalformedCacheObjectError struct {
	Key string
	Err error
}

func (e *MalformedCacheObjectError) Error() string {
	return fmt.Sprintf("malformed cache object %q: %v", e.Key, e.Err)
}

func (e *MalformedCacheObjectError) Unwrap() error { return e.Err }
