package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bluele/gcache"
)

// DefaultMaxEntries bounds the in-memory cache; the least recently used entry
// is dropped once the bound is reached.
const DefaultMaxEntries = 10000

// Memory is the in-process Store. There is no background sweep: an expired
// entry is dropped when it is next read, overwritten or pushed out by the LRU bound.
type Memory struct {
	c gcache.Cache
}

// NewMemory constructs a Memory cache holding at most maxEntries entries.
func NewMemory(maxEntries int) *Memory {
	return NewMemoryWithClock(maxEntries, gcache.NewRealClock())
}

// NewMemoryWithClock constructs a Memory cache driven by the given clock (for tests).
func NewMemoryWithClock(maxEntries int, clock gcache.Clock) *Memory {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &Memory{c: gcache.New(maxEntries).LRU().Clock(clock).Build()}
}

// Get returns the payload stored under key if it has not expired.
func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	v, err := m.c.Get(key)
	if err != nil {
		if errors.Is(err, gcache.KeyNotFoundError) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("memory cache get %s: %w", key, err)
	}
	b, ok := v.([]byte)
	if !ok {
		return nil, false, fmt.Errorf("memory cache get %s: unexpected value type %T", key, v)
	}
	return b, true, nil
}

// Set stores payload under key for ttl.
func (m *Memory) Set(_ context.Context, key string, payload []byte, ttl time.Duration) error {
	if err := m.c.SetWithExpire(key, payload, ttl); err != nil {
		return fmt.Errorf("memory cache set %s: %w", key, err)
	}
	return nil
}
