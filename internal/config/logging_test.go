package config

import "testing"

func TestLoadLogDefaults(t *testing.T) {
	cfg, err := LoadLog()
	if err != nil {
		t.Fatalf("LoadLog() error = %v", err)
	}
	if cfg.Level != "info" {
		t.Fatalf("Level = %q, want info", cfg.Level)
	}
	if cfg.File != "" {
		t.Fatalf("File = %q, want empty (stdout)", cfg.File)
	}
	if cfg.MaxMB != 64 {
		t.Fatalf("MaxMB = %d, want 64", cfg.MaxMB)
	}
}

func TestLoadLogFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FILE", "/tmp/bingo.log")
	t.Setenv("LOG_FILE_MAX_MB", "5")

	cfg, err := LoadLog()
	if err != nil {
		t.Fatalf("LoadLog() error = %v", err)
	}
	if cfg.Level != "debug" || cfg.File != "/tmp/bingo.log" || cfg.MaxMB != 5 {
		t.Fatalf("unexpected log config: %+v", cfg)
	}
}
