package repositories

import (
	"context"
	"io"
	"time"
)

// ObjectInfo describes a stored object.
type ObjectInfo struct {
	Path         string
	Size         int64
	LastModified time.Time
}

// ObjectStore holds uploaded binaries addressed by path. SignedURL and
// Exists report a missing object with domainerrors.ErrNotFound.
type ObjectStore interface {
	Put(ctx context.Context, path string, body io.Reader, size int64, contentType string) error
	SignedURL(ctx context.Context, path string, ttl time.Duration) (string, error)
	Exists(ctx context.Context, path string) (bool, error)
	Delete(ctx context.Context, path string) error
	List(ctx context.Context, prefix string) ([]ObjectInfo, error)
}

// URLCache keeps short lived signed URLs keyed by object path.
type URLCache interface {
	Get(ctx context.Context, path string) (string, bool)
	Set(ctx context.Context, path, url string, ttl time.Duration)
	Invalidate(ctx context.Context, path string)
}
