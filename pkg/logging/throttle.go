// pkg/logging/throttle.go
package logging

import (
	"sync"
	"time"
)

// Throttle bounds how often hot-loop code may emit a log line per key.
// The flight and camera loops run at display rate, so even a rare
// per-frame warning would flood the output without one of these in
// front of it. Keys are a small fixed set of warning sites, so unlike a
// per-client limiter no background cleanup is needed.
type Throttle struct {
	maxPerWindow int
	window       time.Duration
	mu           sync.Mutex
	buckets      map[string]*throttleBucket
	now          func() time.Time
}

// throttleBucket tracks the remaining budget for a single key.
type throttleBucket struct {
	tokens     int
	lastRefill time.Time
}

// NewThrottle creates a throttle allowing maxPerWindow log lines per key
// in each window.
func NewThrottle(maxPerWindow int, window time.Duration) *Throttle {
	return &Throttle{
		maxPerWindow: maxPerWindow,
		window:       window,
		buckets:      make(map[string]*throttleBucket),
		now:          time.Now,
	}
}

// Allow reports whether another log line may be emitted for key.
func (t *Throttle) Allow(key string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	b, ok := t.buckets[key]
	if !ok {
		b = &throttleBucket{tokens: t.maxPerWindow, lastRefill: now}
		t.buckets[key] = b
	}

	// Refill proportionally to the fraction of the window that elapsed.
	elapsed := now.Sub(b.lastRefill)
	if elapsed > 0 && b.tokens < t.maxPerWindow {
		refill := int(float64(t.maxPerWindow) * (float64(elapsed) / float64(t.window)))
		if refill > 0 {
			b.tokens += refill
			if b.tokens > t.maxPerWindow {
				b.tokens = t.maxPerWindow
			}
			b.lastRefill = now
		}
	}

	if b.tokens > 0 {
		b.tokens--
		return true
	}
	return false
}
