package server

import (
	"sync"
	"time"
)

// statusCache memoizes the upstream health probe result so repeated
// /health requests do not each hit the remote API. Joke responses are
// never cached.
type statusCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	status  string
	expires time.Time
}

func newStatusCache(ttl time.Duration) *statusCache {
	return &statusCache{ttl: ttl}
}

// get returns the cached status, running probe only when the previous
// result has expired.
func (c *statusCache) get(probe func() string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if time.Now().Before(c.expires) {
		return c.status
	}
	c.status = probe()
	c.expires = time.Now().Add(c.ttl)
	return c.status
}
