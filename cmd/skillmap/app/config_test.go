package app

import (
	"testing"
)

// TestLoadConfig verifies environment variables reach the config.
func TestLoadConfig(t *testing.T) {
	t.Setenv("DATA_DIR", "/tmp/skillmap-data")
	t.Setenv("DATABASE_URL", "sqlite:///tmp/skillmap.db")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}

	if cfg.DataDir != "/tmp/skillmap-data" {
		t.Errorf("DataDir = %q, want /tmp/skillmap-data", cfg.DataDir)
	}
	if cfg.DatabaseURL != "sqlite:///tmp/skillmap.db" {
		t.Errorf("DatabaseURL = %q", cfg.DatabaseURL)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
	if cfg.Inference != "keyword" {
		t.Errorf("Inference = %q, want keyword", cfg.Inference)
	}
	if cfg.ListenAddr != ":8080" {
		t.Errorf("ListenAddr = %q, want :8080", cfg.ListenAddr)
	}
}

// TestUpdateFromFlags verifies flags override loaded values only when set.
func TestUpdateFromFlags(t *testing.T) {
	cfg := &Config{Format: "yaml", LogLevel: "warn"}

	cfg.UpdateFromFlags(true, false, true, "", "")
	if !cfg.Verbose || !cfg.NoColor {
		t.Error("boolean flags were not applied")
	}
	if cfg.Format != "yaml" || cfg.LogLevel != "warn" {
		t.Errorf("empty flags overwrote config: format=%q level=%q", cfg.Format, cfg.LogLevel)
	}

	cfg.UpdateFromFlags(false, true, false, "json", "error")
	if cfg.Format != "json" || cfg.LogLevel != "error" {
		t.Errorf("flags not applied: format=%q level=%q", cfg.Format, cfg.LogLevel)
	}
}
