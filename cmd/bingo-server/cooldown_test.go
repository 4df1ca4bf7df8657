package main

import (
	"net/http"
	"testing"
	"time"

	"bingo-hall/internal/testutil"
)

func TestCooldownLimitsRepeatedActions(t *testing.T) {
	a := newTestApp(t)
	a.cfg.ClaimCooldown = time.Hour
	r := a.router()
	testutil.StartedGame(t, a.store, "h1", "p1")

	rec, _ := doJSON(t, r, http.MethodGet, "/api/games/h1/card", "p1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("first card fetch: %d", rec.Code)
	}
	rec, body := doJSON(t, r, http.MethodGet, "/api/games/h1/card", "p1", "")
	if rec.Code != http.StatusTooManyRequests || body["error"] != "slow_down" {
		t.Fatalf("expected 429 slow_down, got %d %v", rec.Code, body)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Fatal("expected Retry-After header")
	}

	// Other callers have their own window.
	rec, _ = doJSON(t, r, http.MethodGet, "/api/games/h1/card", "h1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("second caller should not share the window: %d", rec.Code)
	}
}

func TestCooldownDisabledWhenZero(t *testing.T) {
	c := newCooldown(0)
	for i := 0; i < 5; i++ {
		if wait := c.retryIn("p1"); wait != 0 {
			t.Fatalf("zero window should never throttle, got %v", wait)
		}
	}
}
