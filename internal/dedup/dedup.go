package dedup

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"github.com/sifthq/minthook/internal/stats"
)

// DefaultWindow is the deduplication window used when none is configured.
const DefaultWindow = 300 * time.Second

// Cache maps event fingerprints to the time they were last accepted.
type Cache struct {
	mu      sync.Mutex
	window  time.Duration
	entries map[string]time.Time // fingerprint -> lastSeen
	order   []cacheItem          // insertion order, for lazy eviction
	head    int
	stats   *stats.Collector

	now func() time.Time
}

type cacheItem struct {
	fingerprint string
	seenAt      time.Time
}

// NewCache builds a Cache with the given window. A nil stats collector is
// replaced with a discard collector so callers can omit it in tests.
func NewCache(window time.Duration, st *stats.Collector) *Cache {
	if window <= 0 {
		window = DefaultWindow
	}
	if st == nil {
		st = stats.NewCollector()
	}
	return &Cache{
		window:  window,
		entries: make(map[string]time.Time),
		stats:   st,
		now:     time.Now,
	}
}

// Fingerprint returns the stable hash for (token, eventType, bucket).
// bucket is the window-aligned unix second: floor(now/window)*window.
func Fingerprint(token, eventType string, bucket int64) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s\x00%s\x00%d", token, eventType, bucket)
	return hex.EncodeToString(h.Sum(nil))
}

// IsDuplicate reports whether an event for (token, eventType) was already
// accepted within the window, recording the fingerprint when it was not.
// An empty token always reports false and records nothing.
func (c *Cache) IsDuplicate(token, eventType string) bool {
	if token == "" {
		return false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	c.evictLocked(now)

	windowSec := int64(c.window / time.Second)
	bucket := now.Unix() / windowSec * windowSec
	fp := Fingerprint(token, eventType, bucket)

	if seen, ok := c.entries[fp]; ok && now.Sub(seen) <= c.window {
		c.stats.DuplicatePrevented()
		return true
	}
	c.entries[fp] = now
	c.order = append(c.order, cacheItem{fingerprint: fp, seenAt: now})
	return false
}

// Len returns the number of live fingerprints. Intended for tests and the
// status surface.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.evictLocked(c.now())
	return len(c.entries)
}

// evictLocked drops entries older than the window. Entries expire in
// insertion order, so the scan stops at the first live item.
func (c *Cache) evictLocked(now time.Time) {
	for c.head < len(c.order) {
		it := c.order[c.head]
		if now.Sub(it.seenAt) <= c.window {
			break
		}
		// Only delete when the map still holds this timestamp; a re-accepted
		// fingerprint has a newer entry that must survive.
		if seen, ok := c.entries[it.fingerprint]; ok && seen.Equal(it.seenAt) {
			delete(c.entries, it.fingerprint)
		}
		c.head++
	}

	// Compact the order slice once the consumed prefix dominates.
	if c.head > 4096 && c.head*2 > len(c.order) {
		rest := make([]cacheItem, len(c.order)-c.head)
		copy(rest, c.order[c.head:])
		c.order = rest
		c.head = 0
	}
}
