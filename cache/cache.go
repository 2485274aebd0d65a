package cache

import (
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Cache is an in-process seen-set with per-entry TTL, used to deduplicate
// repositories across the enumeration paths of a single run. Nothing
// survives the process.
type Cache struct {
	lru *lru.Cache[string, time.Time]
}

func New(size int) (*Cache, error) {
	l, err := lru.New[string, time.Time](size)
	if err != nil {
		return nil, err
	}
	return &Cache{lru: l}, nil
}

// Seen marks key and reports whether it was already present and unexpired.
func (c *Cache) Seen(key string, ttl time.Duration) bool {
	if expiresAt, ok := c.lru.Get(key); ok && time.Now().Before(expiresAt) {
		return true
	}
	c.lru.Add(key, time.Now().Add(ttl))
	return false
}
