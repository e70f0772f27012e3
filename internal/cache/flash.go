// Package cache provides the in-memory result cache used by the study tools.
package cache

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"log/slog"
	"sync"
	"time"
)

const (
	// DefaultTTL is the default time-to-live for cache entries.
	DefaultTTL = 5 * time.Minute

	// CleanupInterval is how often the background cleaner runs.
	CleanupInterval = 1 * time.Minute
)

// Entry is a cached result with its expiration time.
type Entry struct {
	Value     string
	ExpireAt  time.Time
	CreatedAt time.Time
}

// expired reports whether the entry is stale at now.
func (e *Entry) expired(now time.Time) bool {
	return !now.Before(e.ExpireAt)
}

// FlashCache is a thread-safe TTL cache keyed by content hash.
// A TTL of zero or less disables the cache: Get always misses and Set is a no-op.
type FlashCache struct {
	mu      sync.RWMutex
	entries map[string]*Entry
	ttl     time.Duration
	logger  *slog.Logger
	now     func() time.Time

	stop     chan struct{}
	stopOnce sync.Once

	hits   int64
	misses int64
}

// Option configures a FlashCache.
type Option func(*FlashCache)

// WithTTL sets a custom TTL for cache entries.
func WithTTL(ttl time.Duration) Option {
	return func(c *FlashCache) {
		c.ttl = ttl
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *FlashCache) {
		c.logger = logger
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(c *FlashCache) {
		if now != nil {
			c.now = now
		}
	}
}

// New creates a FlashCache and starts its background cleaner.
// Call Close to stop the cleaner.
func New(opts ...Option) *FlashCache {
	c := &FlashCache{
		entries: make(map[string]*Entry),
		ttl:     DefaultTTL,
		logger:  slog.Default(),
		now:     time.Now,
		stop:    make(chan struct{}),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.Enabled() {
		go c.startCleanup()
	}

	return c
}

// Key hashes the given parts into a cache key. Parts are length-prefixed so
// ("ab","c") and ("a","bc") produce different keys.
func Key(parts ...string) string {
	h := sha256.New()
	var lenBuf [8]byte
	for _, p := range parts {
		binary.LittleEndian.PutUint64(lenBuf[:], uint64(len(p)))
		h.Write(lenBuf[:])
		h.Write([]byte(p))
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Enabled reports whether the cache stores anything.
func (c *FlashCache) Enabled() bool {
	return c != nil && c.ttl > 0
}

// Get retrieves a cached value by key.
func (c *FlashCache) Get(key string) (string, bool) {
	if !c.Enabled() {
		return "", false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	entry, exists := c.entries[key]
	if !exists {
		c.misses++
		return "", false
	}

	if entry.expired(c.now()) {
		delete(c.entries, key)
		c.misses++
		return "", false
	}

	c.hits++
	return entry.Value, true
}

// Set stores a value with the configured TTL.
func (c *FlashCache) Set(key, value string) {
	if !c.Enabled() {
		return
	}

	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = &Entry{
		Value:     value,
		ExpireAt:  now.Add(c.ttl),
		CreatedAt: now,
	}
}

// Close stops the background cleaner. It is safe to call more than once.
func (c *FlashCache) Close() {
	if c == nil {
		return
	}
	c.stopOnce.Do(func() { close(c.stop) })
}

func (c *FlashCache) startCleanup() {
	ticker := time.NewTicker(CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.cleanup()
		case <-c.stop:
			return
		}
	}
}

// cleanup removes all expired entries from the cache.
func (c *FlashCache) cleanup() {
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()

	expired := 0
	for key, entry := range c.entries {
		if entry.expired(now) {
			delete(c.entries, key)
			expired++
		}
	}

	if expired > 0 && c.logger != nil {
		c.logger.Debug("cache cleanup",
			slog.Int("expired_entries", expired),
			slog.Int("remaining_entries", len(c.entries)),
		)
	}
}

// Stats returns cache hit/miss statistics.
func (c *FlashCache) Stats() (hits, misses int64, size int) {
	if c == nil {
		return 0, 0, 0
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits, c.misses, len(c.entries)
}
