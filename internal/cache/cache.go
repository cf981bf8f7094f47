// Package cache stores raw upstream response bodies keyed by request URL.
package cache

import (
	"context"
	"time"
)

// Store is a time-boxed key/value cache. A read past the entry's TTL is a miss.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error
}
