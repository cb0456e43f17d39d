package cache

import (
	"context"
	"errors"
	"time"

	pkgcache "TradeLens/pkg/cache"
)

// BytesCache stores raw backend response bodies with a TTL.
type BytesCache interface {
	GetBytes(ctx context.Context, key string) (b []byte, ok bool, err error)
	SetBytes(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// ResponseCache adapts a pkg/cache.Service to BytesCache under its own key namespace.
type ResponseCache struct {
	store     pkgcache.Service
	namespace string
}

func NewResponseCache(store pkgcache.Service, namespace string) *ResponseCache {
	return &ResponseCache{store: store, namespace: namespace}
}

func (c *ResponseCache) GetBytes(ctx context.Context, key string) ([]byte, bool, error) {
	var b []byte
	err := c.store.Get(ctx, pkgcache.GenerateKey(c.namespace, key), &b)
	if errors.Is(err, pkgcache.ErrCacheMiss) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

func (c *ResponseCache) SetBytes(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return c.store.Set(ctx, pkgcache.GenerateKey(c.namespace, key), value, ttl)
}

var _ BytesCache = (*ResponseCache)(nil)
