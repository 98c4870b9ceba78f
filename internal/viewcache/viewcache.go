// Package viewcache implements the view-count deduplication window.
//
// A plan view only counts once per viewer key (user identity or client IP,
// combined with the User-Agent string) within the configured TTL. State is
// process-local on purpose: the planner runs as a single instance and a
// restart simply resets the window. The Cache is injected into the detail
// handler, so a shared external store can replace it without touching
// handler code if the service is ever scaled out.
package viewcache

import (
	"sync"
	"time"
)

// Cache tracks which viewer keys have recently seen which plans.
type Cache struct {
	mu   sync.Mutex
	ttl  time.Duration
	seen map[string]map[string]time.Time // plan id -> viewer key -> expiry

	done chan struct{}
	once sync.Once
}

// New creates a Cache whose entries expire after ttl and are swept every
// sweepInterval by a background goroutine. Call Stop on shutdown.
func New(ttl, sweepInterval time.Duration) *Cache {
	c := &Cache{
		ttl:  ttl,
		seen: make(map[string]map[string]time.Time),
		done: make(chan struct{}),
	}
	go c.sweep(sweepInterval)
	return c
}

// Seen records a sighting of planID by viewerKey and reports whether that
// pair was already recorded within the TTL window. The first sighting
// returns false; the caller increments the persisted counter only then.
func (c *Cache) Seen(planID, viewerKey string) bool {
	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	viewers := c.seen[planID]
	if viewers == nil {
		viewers = make(map[string]time.Time)
		c.seen[planID] = viewers
	}

	if expiry, ok := viewers[viewerKey]; ok && now.Before(expiry) {
		return true
	}
	viewers[viewerKey] = now.Add(c.ttl)
	return false
}

// Len returns the number of plans with at least one live window entry.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.seen)
}

// Stop terminates the background sweeper. Safe to call more than once.
func (c *Cache) Stop() {
	c.once.Do(func() { close(c.done) })
}

func (c *Cache) sweep(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return
		case now := <-ticker.C:
			c.evictExpired(now)
		}
	}
}

func (c *Cache) evictExpired(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for planID, viewers := range c.seen {
		for key, expiry := range viewers {
			if !now.Before(expiry) {
				delete(viewers, key)
			}
		}
		if len(viewers) == 0 {
			delete(c.seen, planID)
		}
	}
}
