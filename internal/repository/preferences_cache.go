package repository

import (
	"context"
	"errors"
	"fmt"

	"TradeLens/internal/domain/models"
	"TradeLens/internal/domain/repository"
	pkgcache "TradeLens/pkg/cache"
)

const preferencePrefix = "pref"

// CachePreferences stores preferences in a cache.Service without expiry.
// Backed by the memory cache it lives for the process; backed by redis it
// survives restarts and is shared between replicas.
type CachePreferences struct {
	store pkgcache.Service
}

var _ repository.Preferences = (*CachePreferences)(nil)

// NewCachePreferences creates a preference store over store.
func NewCachePreferences(store pkgcache.Service) *CachePreferences {
	return &CachePreferences{store: store}
}

func (p *CachePreferences) Get(ctx context.Context, key string) (string, bool, error) {
	if !models.IsPreferenceKey(key) {
		return "", false, fmt.Errorf("%w: %s", repository.ErrUnknownPreference, key)
	}
	var value string
	err := p.store.Get(ctx, pkgcache.GenerateKey(preferencePrefix, key), &value)
	if errors.Is(err, pkgcache.ErrCacheMiss) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get preference %s: %w", key, err)
	}
	return value, true, nil
}

func (p *CachePreferences) Set(ctx context.Context, key, value string) error {
	if !models.IsPreferenceKey(key) {
		return fmt.Errorf("%w: %s", repository.ErrUnknownPreference, key)
	}
	if err := p.store.Set(ctx, pkgcache.GenerateKey(preferencePrefix, key), value, 0); err != nil {
		return fmt.Errorf("set preference %s: %w", key, err)
	}
	return nil
}

// All returns every stored preference. Keys never written are absent.
func (p *CachePreferences) All(ctx context.Context) (map[string]string, error) {
	out := make(map[string]string, len(models.PreferenceDefaults))
	for key := range models.PreferenceDefaults {
		v, ok, err := p.Get(ctx, key)
		if err != nil {
			return nil, err
		}
		if ok {
			out[key] = v
		}
	}
	return out, nil
}

func (p *CachePreferences) Close() error {
	return p.store.Close()
}
