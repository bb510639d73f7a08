package session

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"garage/internal/domain"
)

// fakeClock lets tests advance time deterministically.
type fakeClock struct {
	current time.Time
}

func (f *fakeClock) Now() time.Time {
	return f.current
}

func (f *fakeClock) Advance(d time.Duration) {
	f.current = f.current.Add(d)
}

func newTestCache(maxSize int, maxAge time.Duration, maxMessages, maxRequests int) (*Cache, *fakeClock) {
	clock := &fakeClock{current: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	c := NewCache(maxSize, maxAge, maxMessages, maxRequests)
	c.now = clock.Now
	return c, clock
}

func messages(n int) []domain.Message {
	msgs := make([]domain.Message, n)
	for i := range msgs {
		msgs[i] = domain.Message{Role: "user", Content: fmt.Sprintf("message %d", i)}
	}
	return msgs
}

func TestGet_Absent(t *testing.T) {
	c, _ := newTestCache(10, time.Hour, 6, 60)

	_, ok := c.Get("missing")
	assert.False(t, ok)
}

func TestSetAndGet(t *testing.T) {
	c, _ := newTestCache(10, time.Hour, 6, 60)

	c.Set("s1", messages(2))

	sess, ok := c.Get("s1")
	require.True(t, ok)
	assert.Len(t, sess.Messages, 2)
}

func TestSet_TruncatesToWindow(t *testing.T) {
	c, _ := newTestCache(10, time.Hour, 6, 60)

	c.Set("s1", messages(10))

	sess, ok := c.Get("s1")
	require.True(t, ok)
	require.Len(t, sess.Messages, 6)
	// The window keeps the most recent messages.
	assert.Equal(t, "message 4", sess.Messages[0].Content)
	assert.Equal(t, "message 9", sess.Messages[5].Content)
}

func TestSet_LRUEviction(t *testing.T) {
	c, clock := newTestCache(2, time.Hour, 6, 60)

	c.Set("a", messages(1))
	clock.Advance(time.Second)
	c.Set("b", messages(1))
	clock.Advance(time.Second)
	c.Set("c", messages(1))

	_, ok := c.Get("a")
	assert.False(t, ok, "oldest entry should have been evicted")
	_, ok = c.Get("b")
	assert.True(t, ok)
	_, ok = c.Get("c")
	assert.True(t, ok)
}

func TestSet_LRUConsidersReads(t *testing.T) {
	c, clock := newTestCache(2, time.Hour, 6, 60)

	c.Set("a", messages(1))
	clock.Advance(time.Second)
	c.Set("b", messages(1))
	clock.Advance(time.Second)

	// Reading "a" makes "b" the globally oldest entry.
	_, ok := c.Get("a")
	require.True(t, ok)
	clock.Advance(time.Second)

	c.Set("c", messages(1))

	_, ok = c.Get("b")
	assert.False(t, ok, "least recently touched entry should have been evicted")
	_, ok = c.Get("a")
	assert.True(t, ok)
}

func TestCapacityInvariant(t *testing.T) {
	c, clock := newTestCache(10, time.Hour, 6, 60)

	for i := 0; i < 100; i++ {
		c.Set(fmt.Sprintf("s%d", i), messages(1))
		clock.Advance(time.Millisecond)
		assert.LessOrEqual(t, c.Len(), 10)
	}
}

func TestGet_LazyExpiry(t *testing.T) {
	c, clock := newTestCache(10, time.Hour, 6, 60)

	c.Set("s1", messages(1))
	clock.Advance(time.Hour + time.Minute)

	_, ok := c.Get("s1")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len(), "expired entry should be deleted on access")
}

func TestGet_RefreshesLastAccessed(t *testing.T) {
	c, clock := newTestCache(10, time.Hour, 6, 60)

	c.Set("s1", messages(1))

	// Keep touching the entry just under the expiry horizon.
	for i := 0; i < 3; i++ {
		clock.Advance(50 * time.Minute)
		_, ok := c.Get("s1")
		require.True(t, ok, "refreshed entry should not expire")
	}
}

func TestCheckRateLimit(t *testing.T) {
	c, _ := newTestCache(10, time.Hour, 6, 3)

	for i := 0; i < 3; i++ {
		assert.True(t, c.CheckRateLimit("s1"), "request %d should be allowed", i+1)
	}
	assert.False(t, c.CheckRateLimit("s1"), "request over the ceiling should be rejected")
}

func TestCheckRateLimit_WindowSlides(t *testing.T) {
	c, clock := newTestCache(10, time.Hour, 6, 2)

	assert.True(t, c.CheckRateLimit("s1"))
	assert.True(t, c.CheckRateLimit("s1"))
	assert.False(t, c.CheckRateLimit("s1"))

	clock.Advance(61 * time.Second)
	assert.True(t, c.CheckRateLimit("s1"), "old requests should slide out of the window")
}

func TestCheckRateLimit_PerSession(t *testing.T) {
	c, _ := newTestCache(10, time.Hour, 6, 1)

	assert.True(t, c.CheckRateLimit("s1"))
	assert.True(t, c.CheckRateLimit("s2"), "sessions must be limited independently")
	assert.False(t, c.CheckRateLimit("s1"))
}

func TestDelete_RemovesRateWindow(t *testing.T) {
	c, _ := newTestCache(10, time.Hour, 6, 1)

	c.Set("s1", messages(1))
	require.True(t, c.CheckRateLimit("s1"))
	require.False(t, c.CheckRateLimit("s1"))

	assert.True(t, c.Delete("s1"))

	_, ok := c.Get("s1")
	assert.False(t, ok)
	assert.True(t, c.CheckRateLimit("s1"), "deleting a session resets its rate window")
}

func TestClear(t *testing.T) {
	c, _ := newTestCache(10, time.Hour, 6, 1)

	c.Set("s1", messages(1))
	c.Set("s2", messages(1))
	require.True(t, c.CheckRateLimit("s1"))

	c.Clear()

	assert.Equal(t, 0, c.Len())
	assert.True(t, c.CheckRateLimit("s1"))
}

func TestSweep_EvictsExpired(t *testing.T) {
	c, clock := newTestCache(10, time.Hour, 6, 60)

	c.Set("old", messages(1))
	require.True(t, c.CheckRateLimit("old"))

	clock.Advance(30 * time.Minute)
	c.Set("fresh", messages(1))

	clock.Advance(45 * time.Minute) // "old" is now 75 minutes stale
	c.sweep()

	assert.Equal(t, 1, c.Len())
	_, ok := c.Get("fresh")
	assert.True(t, ok)
	_, ok = c.Get("old")
	assert.False(t, ok)
}

func TestStats(t *testing.T) {
	c, clock := newTestCache(10, time.Hour, 6, 60)

	c.Set("s1", messages(3))
	clock.Advance(2 * time.Minute)

	stats := c.Stats()
	require.Len(t, stats, 1)
	assert.Equal(t, "s1", stats[0].SessionID)
	assert.Equal(t, 3, stats[0].MessageCount)
	assert.Equal(t, 1, stats[0].AccessCount)
	assert.Equal(t, 2*time.Minute, stats[0].Age)
}

func TestStartStop(t *testing.T) {
	c, _ := newTestCache(10, time.Hour, 6, 60)

	c.Start(10 * time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	c.Stop()
}

func TestStart_RestartStopsPreviousSweeper(t *testing.T) {
	c, _ := newTestCache(10, time.Hour, 6, 60)

	c.Start(time.Hour)
	first := c.stop
	c.Start(time.Hour)
	defer c.Stop()

	select {
	case <-first:
	case <-time.After(time.Second):
		t.Fatal("previous sweeper was not stopped on restart")
	}
}
