package repository

import (
	"context"
	"errors"
)

// ErrUnknownPreference is returned for keys outside the allowed set.
var ErrUnknownPreference = errors.New("unknown preference key")

// Preferences is the user preference store injected into the view layer.
type Preferences interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	All(ctx context.Context) (map[string]string, error)
	Close() error
}

// EventPublisher emits domain events to downstream consumers.
type EventPublisher interface {
	Publish(ctx context.Context, key string, event any) error
	Close() error
}

// Metrics records backend fetch and feed activity.
type Metrics interface {
	RecordFetch(endpoint string, seconds float64, err error)
	RecordCacheHit(endpoint string)
	RecordBroadcast(kind string, clients int)
}
