package user

import (
	"strings"
	"sync/atomic"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// CacheConfig sizes the identity cache
type CacheConfig struct {
	Size int
	TTL  time.Duration
}

// CacheStats reports cache effectiveness
type CacheStats struct {
	Hits   int64 `json:"hits"`
	Misses int64 `json:"misses"`
	Size   int   `json:"size"`
}

// cachedIdentity wraps a username → user ID mapping with version metadata
type cachedIdentity struct {
	Version  string
	UserID   string
	CachedAt time.Time
}

// identityCache maps usernames to user IDs. Balances are never cached; they always come
// from the ledger.
type identityCache struct {
	lru    *expirable.LRU[string, *cachedIdentity]
	hits   atomic.Int64
	misses atomic.Int64
}

func newIdentityCache(config CacheConfig) *identityCache {
	if config.Size <= 0 {
		config.Size = DefaultCacheSize
	}
	if config.TTL <= 0 {
		config.TTL = DefaultCacheTTL
	}
	return &identityCache{
		lru: expirable.NewLRU[string, *cachedIdentity](config.Size, nil, config.TTL),
	}
}

func cacheKey(username string) string {
	return strings.ToLower(username)
}

// Get returns the user ID for username. Entries from another schema version are dropped.
func (c *identityCache) Get(username string) (string, bool) {
	key := cacheKey(username)
	entry, found := c.lru.Get(key)
	if !found {
		c.misses.Add(1)
		return "", false
	}

	if entry.Version != CacheSchemaVersion {
		c.lru.Remove(key)
		c.misses.Add(1)
		return "", false
	}

	c.hits.Add(1)
	return entry.UserID, true
}

// Set stores the mapping with the current schema version
func (c *identityCache) Set(username, userID string) {
	c.lru.Add(cacheKey(username), &cachedIdentity{
		Version:  CacheSchemaVersion,
		UserID:   userID,
		CachedAt: time.Now(),
	})
}

// Invalidate removes a username
func (c *identityCache) Invalidate(username string) {
	c.lru.Remove(cacheKey(username))
}

// GetStats returns hit/miss counters and the current size
func (c *identityCache) GetStats() CacheStats {
	return CacheStats{
		Hits:   c.hits.Load(),
		Misses: c.misses.Load(),
		Size:   c.lru.Len(),
	}
}
