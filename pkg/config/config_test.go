package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfigMissingFileReturnsDefaults(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.ServerURL != "http://localhost:8080" {
		t.Errorf("ServerURL: expected default, got %q", cfg.ServerURL)
	}
	if cfg.Search.Debounce.Duration != 300*time.Millisecond {
		t.Errorf("Debounce: expected 300ms, got %v", cfg.Search.Debounce.Duration)
	}
	if cfg.Search.MinQueryLength != 2 {
		t.Errorf("MinQueryLength: expected 2, got %d", cfg.Search.MinQueryLength)
	}
	if cfg.Search.CategoryTimeout.Duration != 10*time.Second {
		t.Errorf("CategoryTimeout: expected 10s, got %v", cfg.Search.CategoryTimeout.Duration)
	}
	if cfg.Search.CatalogLimit != 25 {
		t.Errorf("CatalogLimit: expected 25, got %d", cfg.Search.CatalogLimit)
	}
}

func TestLoadConfigFillsMissingFields(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())

	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
server_url = "https://property.example.mil"
token = "abc123"

[search]
debounce = "150ms"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.ServerURL != "https://property.example.mil" {
		t.Errorf("ServerURL: got %q", cfg.ServerURL)
	}
	if cfg.Token != "abc123" {
		t.Errorf("Token: got %q", cfg.Token)
	}
	if cfg.Search.Debounce.Duration != 150*time.Millisecond {
		t.Errorf("Debounce: expected 150ms, got %v", cfg.Search.Debounce.Duration)
	}
	// Unspecified fields fall back to defaults.
	if cfg.Search.CategoryTimeout.Duration != 10*time.Second {
		t.Errorf("CategoryTimeout: expected default 10s, got %v", cfg.Search.CategoryTimeout.Duration)
	}
	if cfg.Search.MinQueryLength != 2 {
		t.Errorf("MinQueryLength: expected default 2, got %d", cfg.Search.MinQueryLength)
	}
}

func TestSaveAndReloadRoundTrip(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())

	cfg, err := GetDefaultConfig()
	if err != nil {
		t.Fatal(err)
	}
	cfg.Token = "secret"
	cfg.Search.Categories = []string{"property", "person"}

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := cfg.SaveConfig(path); err != nil {
		t.Fatalf("saving: %v", err)
	}

	reloaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("reloading: %v", err)
	}
	if reloaded.Token != "secret" {
		t.Errorf("Token: got %q", reloaded.Token)
	}
	if len(reloaded.Search.Categories) != 2 {
		t.Errorf("Categories: got %v", reloaded.Search.Categories)
	}
}

func TestSaveTemplateConfig(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())

	cfg, err := GetDefaultConfig()
	if err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := cfg.SaveTemplateConfig(path); err != nil {
		t.Fatalf("saving template: %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("loading template: %v", err)
	}
	if loaded.Search.Debounce.Duration != 300*time.Millisecond {
		t.Errorf("template debounce: got %v", loaded.Search.Debounce.Duration)
	}
}

func TestRecentDBPath(t *testing.T) {
	cfg := &Config{StorageDir: "/tmp/hrx-test"}
	if got := cfg.RecentDBPath(); got != filepath.Join("/tmp/hrx-test", "recent.db") {
		t.Errorf("RecentDBPath: got %q", got)
	}
}
