// Package db defines the key-value store contract used by the embedding cache.
package db

import (
	"context"
	"time"
)

// KVStore provides byte-value key-value operations with expiry.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Pinger checks store connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Store is the full cache store contract.
type Store interface {
	KVStore
	Pinger
	Close()
}
