package redis

import (
	"context"
	"time"
)

const signedURLPrefix = "img-url:"

// URLCache caches signed object URLs. A nil client turns every call into a miss.
type URLCache struct{}

func NewURLCache() *URLCache {
	return &URLCache{}
}

func (c *URLCache) Get(ctx context.Context, path string) (string, bool) {
	v, err := Get(ctx, signedURLPrefix+path)
	if err != nil || v == "" {
		return "", false
	}
	return v, true
}

func (c *URLCache) Set(ctx context.Context, path, url string, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	_ = Set(ctx, signedURLPrefix+path, url, ttl)
}

// Invalidate drops a cached URL, used when an object is deleted.
func (c *URLCache) Invalidate(ctx context.Context, path string) {
	_ = Del(ctx, signedURLPrefix+path)
}
