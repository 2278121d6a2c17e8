// Package cache holds rendered listing responses between writes. Any write
// to blog content purges everything; entries also expire after a TTL.
//
// Readers take a Generation before querying and hand it back to Set. A value
// computed before a purge is stored under the old generation and never served.
package cache

import (
	"context"
	"sync"
)

// Store is a byte cache keyed by normalized request strings. A negative
// generation means the store could not tell; Set ignores it.
type Store interface {
	Generation(ctx context.Context) int64
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, gen int64, key string, value []byte)
	Purge(ctx context.Context)
}

type noop struct{}

func (noop) Generation(context.Context) int64           { return -1 }
func (noop) Get(context.Context, string) ([]byte, bool) { return nil, false }
func (noop) Set(context.Context, int64, string, []byte) {}
func (noop) Purge(context.Context)                      {}

var (
	mu     sync.RWMutex
	active Store = noop{}
)

// Use installs s as the process-wide listing cache. A nil s disables caching.
func Use(s Store) {
	mu.Lock()
	defer mu.Unlock()
	if s == nil {
		s = noop{}
	}
	active = s
}

func current() Store {
	mu.RLock()
	defer mu.RUnlock()
	return active
}

func Generation(ctx context.Context) int64 {
	return current().Generation(ctx)
}

func Get(ctx context.Context, key string) ([]byte, bool) {
	return current().Get(ctx, key)
}

// Set stores value when gen is still the current generation.
func Set(ctx context.Context, gen int64, key string, value []byte) {
	current().Set(ctx, gen, key, value)
}

// Invalidate drops every cached listing.
func Invalidate(ctx context.Context) {
	current().Purge(ctx)
}
