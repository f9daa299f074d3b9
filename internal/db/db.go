package db

import (
	"context"
	"time"
)

// Store is the result-page cache backend.
type Store interface {
	Pinger
	PageStore
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks backend connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PageStore reads and writes serialized pages. Every write expires.
type PageStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}
