package config

import (
	"testing"
	"time"
)

func TestLoadServerDefaults(t *testing.T) {
	cfg, err := LoadServer()
	if err != nil {
		t.Fatalf("LoadServer() error = %v", err)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("HTTPAddr = %q, want :8080", cfg.HTTPAddr)
	}
	if cfg.DataFile != "bingo_state.json" {
		t.Fatalf("DataFile = %q, want bingo_state.json", cfg.DataFile)
	}
	if cfg.DrawInterval != 5*time.Second {
		t.Fatalf("DrawInterval = %v, want 5s", cfg.DrawInterval)
	}
	if cfg.DefaultSeats != 10 || cfg.MaxSeats != 25 {
		t.Fatalf("seat defaults = %d/%d, want 10/25", cfg.DefaultSeats, cfg.MaxSeats)
	}
	if cfg.PushEnabled {
		t.Fatal("PushEnabled should default to false")
	}
}

func TestLoadServerParseTypes(t *testing.T) {
	t.Setenv("DRAW_INTERVAL", "250ms")
	t.Setenv("CLAIM_COOLDOWN", "1s")
	t.Setenv("PUSH_ENABLED", "true")
	t.Setenv("PUSH_WEBHOOK_URL", "https://example.com/webhooks/1/tok")
	t.Setenv("PUSH_RETRY_MAX", "5")

	cfg, err := LoadServer()
	if err != nil {
		t.Fatalf("LoadServer() error = %v", err)
	}
	if cfg.DrawInterval != 250*time.Millisecond {
		t.Fatalf("DrawInterval = %v, want 250ms", cfg.DrawInterval)
	}
	if cfg.ClaimCooldown != time.Second {
		t.Fatalf("ClaimCooldown = %v, want 1s", cfg.ClaimCooldown)
	}
	if !cfg.PushEnabled || cfg.PushWebhookURL == "" {
		t.Fatalf("push config not parsed: %+v", cfg)
	}
	if cfg.PushRetryMax != 5 {
		t.Fatalf("PushRetryMax = %d, want 5", cfg.PushRetryMax)
	}
}
