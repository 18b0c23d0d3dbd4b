package main

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// matchesTTL is how long a computed match list stays valid. Candidate pools
// shift quickly (availability toggles, location updates), so the window is
// deliberately short.
const matchesTTL = 2 * time.Minute

type cacheEntry struct {
	matches  []UserMatch
	storedAt time.Time
}

// matchCache is a process-wide cache of computed match lists, keyed by the
// requesting user's id. It is constructed once in main and passed by handle
// to every component that needs it; tests inject a fake clock through now.
//
// An entry older than the TTL is never served. Invalidation is an immediate
// point delete, not a lazy expiry: every match-request mutation removes both
// participants' entries before the mutation reports success.
type matchCache struct {
	mu      sync.RWMutex
	entries map[uuid.UUID]cacheEntry
	ttl     time.Duration
	now     func() time.Time
}

func newMatchCache(ttl time.Duration) *matchCache {
	return &matchCache{
		entries: make(map[uuid.UUID]cacheEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// get returns the cached match list for userID if one exists and is younger
// than the TTL. Expired entries are deleted on read to keep the map from
// accumulating dead keys.
func (c *matchCache) get(userID uuid.UUID) ([]UserMatch, bool) {
	c.mu.RLock()
	e, ok := c.entries[userID]
	now := c.now()
	c.mu.RUnlock()

	if !ok {
		matchCacheLookups.WithLabelValues("miss").Inc()
		return nil, false
	}
	if now.Sub(e.storedAt) >= c.ttl {
		c.mu.Lock()
		// Re-check under the write lock; a concurrent set may have
		// refreshed the entry since we released the read lock.
		if cur, still := c.entries[userID]; still && c.now().Sub(cur.storedAt) >= c.ttl {
			delete(c.entries, userID)
		}
		c.mu.Unlock()
		matchCacheLookups.WithLabelValues("miss").Inc()
		return nil, false
	}
	matchCacheLookups.WithLabelValues("hit").Inc()
	return e.matches, true
}

// set stores matches for userID, replacing any prior entry and restarting
// the TTL. The write is a single map assignment, so callers never observe a
// partially written entry.
func (c *matchCache) set(userID uuid.UUID, matches []UserMatch) {
	c.mu.Lock()
	c.entries[userID] = cacheEntry{matches: matches, storedAt: c.now()}
	c.mu.Unlock()
}

// invalidate removes the entry for userID unconditionally. No-op if absent.
func (c *matchCache) invalidate(userID uuid.UUID) {
	c.mu.Lock()
	delete(c.entries, userID)
	c.mu.Unlock()
	matchCacheInvalidations.Inc()
}

// len reports the number of live entries, expired or not. Used by tests.
func (c *matchCache) len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
