package session

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"garage/internal/domain"
)

const (
	DefaultMaxSize               = 1000
	DefaultMaxAge                = time.Hour
	DefaultMaxMessagesPerSession = 6
	DefaultMaxRequestsPerMinute  = 60
	DefaultSweepInterval         = 5 * time.Minute

	rateWindow = time.Minute
)

// Cache bounds the memory and request rate of per-conversation chat state.
// Message windows are evicted LRU at capacity and expire after maxAge of
// inactivity. Each session also carries a sliding-window rate limiter keyed
// by the same id but with an independent lifecycle: capacity eviction does
// not touch rate windows, only age pruning and explicit deletion do.
type Cache struct {
	mu          sync.Mutex
	entries     map[string]*entry
	rateWindows map[string][]time.Time

	maxSize     int
	maxAge      time.Duration
	maxMessages int
	maxRequests int

	now  func() time.Time
	stop chan struct{}
}

type entry struct {
	messages     []domain.Message
	createdAt    time.Time
	lastAccessed time.Time
	accessCount  int
}

// NewCache creates a session cache. Zero or negative parameters fall back to
// the package defaults.
func NewCache(maxSize int, maxAge time.Duration, maxMessages, maxRequestsPerMinute int) *Cache {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	if maxAge <= 0 {
		maxAge = DefaultMaxAge
	}
	if maxMessages <= 0 {
		maxMessages = DefaultMaxMessagesPerSession
	}
	if maxRequestsPerMinute <= 0 {
		maxRequestsPerMinute = DefaultMaxRequestsPerMinute
	}
	return &Cache{
		entries:     make(map[string]*entry),
		rateWindows: make(map[string][]time.Time),
		maxSize:     maxSize,
		maxAge:      maxAge,
		maxMessages: maxMessages,
		maxRequests: maxRequestsPerMinute,
		now:         time.Now,
	}
}

// Get returns the session if present and not expired. Expired entries are
// deleted on access and reported as absent. A hit bumps the access metadata.
func (c *Cache) Get(sessionID string) (domain.Session, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[sessionID]
	if !ok {
		return domain.Session{}, false
	}

	now := c.now()
	if now.Sub(e.lastAccessed) > c.maxAge {
		delete(c.entries, sessionID)
		return domain.Session{}, false
	}

	e.lastAccessed = now
	e.accessCount++

	msgs := make([]domain.Message, len(e.messages))
	copy(msgs, e.messages)
	return domain.Session{
		Messages:     msgs,
		CreatedAt:    e.createdAt,
		LastAccessed: e.lastAccessed,
	}, true
}

// Set inserts or replaces a session window. The message list is always
// truncated to the most recent maxMessages entries. Inserting a new key at
// capacity first evicts the least recently touched session.
func (c *Cache) Set(sessionID string, messages []domain.Message) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()

	existing, exists := c.entries[sessionID]
	if !exists && len(c.entries) >= c.maxSize {
		c.evictOldest()
	}

	if len(messages) > c.maxMessages {
		messages = messages[len(messages)-c.maxMessages:]
	}
	msgs := make([]domain.Message, len(messages))
	copy(msgs, messages)

	createdAt := now
	if exists {
		createdAt = existing.createdAt
	}
	c.entries[sessionID] = &entry{
		messages:     msgs,
		createdAt:    createdAt,
		lastAccessed: now,
		accessCount:  1,
	}
}

// CheckRateLimit reports whether the session is under its per-minute request
// ceiling and, when it is, consumes one request. Check and consume happen
// under one lock so callers need no separate commit step.
func (c *Cache) CheckRateLimit(sessionID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()

	var recent []time.Time
	for _, t := range c.rateWindows[sessionID] {
		if now.Sub(t) < rateWindow {
			recent = append(recent, t)
		}
	}

	if len(recent) >= c.maxRequests {
		c.rateWindows[sessionID] = recent
		return false
	}

	c.rateWindows[sessionID] = append(recent, now)
	return true
}

// Delete removes the session's message window and its rate window together.
func (c *Cache) Delete(sessionID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.rateWindows, sessionID)
	_, ok := c.entries[sessionID]
	delete(c.entries, sessionID)
	return ok
}

// Clear removes all sessions and rate windows.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]*entry)
	c.rateWindows = make(map[string][]time.Time)
}

// Len returns the number of live message entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Stats summarizes every cached session without leaking message bodies.
func (c *Cache) Stats() []domain.SessionStat {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	stats := make([]domain.SessionStat, 0, len(c.entries))
	for id, e := range c.entries {
		stats = append(stats, domain.SessionStat{
			SessionID:    id,
			MessageCount: len(e.messages),
			AccessCount:  e.accessCount,
			Age:          now.Sub(e.lastAccessed),
		})
	}
	return stats
}

// Start launches the periodic sweep that evicts expired sessions and prunes
// stale rate windows. Stop releases the ticker.
func (c *Cache) Start(interval time.Duration) {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	if c.stop != nil {
		close(c.stop)
	}
	c.stop = make(chan struct{})
	go func(stop chan struct{}) {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				c.sweep()
			case <-stop:
				return
			}
		}
	}(c.stop)
}

// Stop shuts down the background sweep.
func (c *Cache) Stop() {
	if c.stop != nil {
		close(c.stop)
		c.stop = nil
	}
}

// sweep evicts every session whose inactivity exceeds maxAge along with its
// rate window, then drops rate timestamps that slid out of the window.
func (c *Cache) sweep() {
	c.mu.Lock()

	now := c.now()
	removed := 0
	for id, e := range c.entries {
		if now.Sub(e.lastAccessed) > c.maxAge {
			delete(c.entries, id)
			delete(c.rateWindows, id)
			removed++
		}
	}

	for id, times := range c.rateWindows {
		var recent []time.Time
		for _, t := range times {
			if now.Sub(t) < rateWindow {
				recent = append(recent, t)
			}
		}
		if len(recent) == 0 {
			if _, ok := c.entries[id]; !ok {
				delete(c.rateWindows, id)
				continue
			}
		}
		c.rateWindows[id] = recent
	}

	c.mu.Unlock()

	if removed > 0 {
		log.Info("swept expired sessions", "count", removed)
	}
}

// evictOldest removes the entry with the oldest lastAccessed. The caller
// must hold the lock. Rate windows are left alone here; they follow their
// own lifecycle.
func (c *Cache) evictOldest() {
	var oldestID string
	var oldest time.Time

	first := true
	for id, e := range c.entries {
		if first || e.lastAccessed.Before(oldest) {
			oldestID = id
			oldest = e.lastAccessed
			first = false
		}
	}

	if oldestID != "" {
		delete(c.entries, oldestID)
	}
}
