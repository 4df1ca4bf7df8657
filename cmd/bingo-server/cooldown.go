package main

import (
	"fmt"
	"net/http"
	"sync"
	"time"
)

// cooldown rate-limits per-caller button mashing. One action per
// window, everything else is told to slow down.
type cooldown struct {
	window time.Duration
	mu     sync.Mutex
	last   map[string]time.Time
}

func newCooldown(window time.Duration) *cooldown {
	return &cooldown{window: window, last: map[string]time.Time{}}
}

func (c *cooldown) retryIn(caller string) time.Duration {
	if c.window <= 0 {
		return 0
	}
	now := time.Now()
	c.mu.Lock()
	defer c.mu.Unlock()
	if last, ok := c.last[caller]; ok {
		if wait := c.window - now.Sub(last); wait > 0 {
			return wait
		}
	}
	c.last[caller] = now
	return 0
}

func (c *cooldown) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if wait := c.retryIn(callerID(r)); wait > 0 {
			w.Header().Set("Retry-After", fmt.Sprintf("%.1f", wait.Seconds()))
			writeHTTPError(w, http.StatusTooManyRequests, "slow_down")
			return
		}
		next.ServeHTTP(w, r)
	})
}
