package cache

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// ErrMiss is returned by Get when the key is absent or its entry has expired.
var ErrMiss = errors.New("cache: miss")

type memoryEntry[T any] struct {
	value    T
	expireAt time.Time
}

// Memory is a fixed-TTL in-process cache. Entries expire lazily on read;
// there is no sweeper and no size bound. Concurrent misses for the same key
// may both repopulate it; last write wins, which is acceptable within the
// freshness window.
type Memory[T any] struct {
	clock      clockwork.Clock
	expiration time.Duration

	mu      sync.RWMutex
	entries map[string]memoryEntry[T]
}

func NewMemory[T any](clock clockwork.Clock, expiration time.Duration) *Memory[T] {
	return &Memory[T]{
		clock:      clock,
		expiration: expiration,
		entries:    make(map[string]memoryEntry[T]),
	}
}

func (c *Memory[T]) Set(_ context.Context, key string, value T) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = memoryEntry[T]{
		value:    value,
		expireAt: c.clock.Now().Add(c.expiration),
	}
	return nil
}

//nolint:ireturn
func (c *Memory[T]) Get(_ context.Context, key string) (T, error) {
	var zero T

	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return zero, ErrMiss
	}

	if !c.clock.Now().Before(e.expireAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return zero, ErrMiss
	}

	return e.value, nil
}
