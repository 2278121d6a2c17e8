package cache

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

type lruItem struct {
	data      []byte
	gen       int64
	expiresAt time.Time
}

// LRU is an in-process Store with a fixed capacity and per-entry TTL.
type LRU struct {
	cache *lru.Cache[string, lruItem]
	ttl   time.Duration
	now   func() time.Time
	epoch atomic.Int64
}

func NewLRU(size int, ttl time.Duration) (*LRU, error) {
	l, err := lru.New[string, lruItem](size)
	if err != nil {
		return nil, fmt.Errorf("create lru cache: %w", err)
	}
	return &LRU{cache: l, ttl: ttl, now: time.Now}, nil
}

func (c *LRU) Generation(context.Context) int64 {
	return c.epoch.Load()
}

func (c *LRU) Get(_ context.Context, key string) ([]byte, bool) {
	item, ok := c.cache.Get(key)
	if !ok {
		return nil, false
	}
	// An item added by a reader that raced a purge carries the old epoch.
	if item.gen != c.epoch.Load() || c.now().After(item.expiresAt) {
		c.cache.Remove(key)
		return nil, false
	}
	return item.data, true
}

func (c *LRU) Set(_ context.Context, gen int64, key string, value []byte) {
	if gen < 0 || gen != c.epoch.Load() {
		return
	}
	c.cache.Add(key, lruItem{data: value, gen: gen, expiresAt: c.now().Add(c.ttl)})
}

func (c *LRU) Purge(context.Context) {
	c.epoch.Add(1)
	c.cache.Purge()
}
