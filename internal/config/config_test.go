package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/radiantjxn/groups-catalog/internal/group"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Addr != ":3000" {
		t.Errorf("addr = %q", cfg.Addr)
	}
	if cfg.Cooldown.Std() != 15*time.Minute {
		t.Errorf("cooldown = %v", cfg.Cooldown.Std())
	}
	if cfg.PageTimeout.Std() != 30*time.Second {
		t.Errorf("pageTimeout = %v", cfg.PageTimeout.Std())
	}
	if cfg.DetailTimeout.Std() != 20*time.Second {
		t.Errorf("detailTimeout = %v", cfg.DetailTimeout.Std())
	}
	if !cfg.Headless {
		t.Error("headless should default to true")
	}
	if len(cfg.SourcePages) != 4 {
		t.Errorf("sourcePages = %d", len(cfg.SourcePages))
	}
}

func TestLoadYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
addr: ":8080"
cooldown: 30m
headless: false
source_pages:
  - type: Grow
    url: https://x.test/groups/grow
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Addr != ":8080" {
		t.Errorf("addr = %q", cfg.Addr)
	}
	if cfg.Cooldown.Std() != 30*time.Minute {
		t.Errorf("cooldown = %v", cfg.Cooldown.Std())
	}
	if cfg.Headless {
		t.Error("headless should be false from file")
	}
	if len(cfg.SourcePages) != 1 || cfg.SourcePages[0].Type != group.TypeGrow {
		t.Errorf("sourcePages = %v", cfg.SourcePages)
	}
	// Unset keys keep their defaults.
	if cfg.PageTimeout.Std() != 30*time.Second {
		t.Errorf("pageTimeout = %v", cfg.PageTimeout.Std())
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("GROUPS_CATALOG_ADDR", ":9090")
	t.Setenv("GROUPS_CATALOG_COOLDOWN", "1h")
	t.Setenv("GROUPS_CATALOG_HEADLESS", "false")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Addr != ":9090" {
		t.Errorf("addr = %q", cfg.Addr)
	}
	if cfg.Cooldown.Std() != time.Hour {
		t.Errorf("cooldown = %v", cfg.Cooldown.Std())
	}
	if cfg.Headless {
		t.Error("headless should be false from env")
	}
}

func TestLoadEnvBeatsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(`addr: ":8080"`), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("GROUPS_CATALOG_ADDR", ":9090")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Addr != ":9090" {
		t.Errorf("env should beat file, addr = %q", cfg.Addr)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("explicitly named missing file should error")
	}
}

func TestLoadInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad duration", "cooldown: soon"},
		{"bad page type", "source_pages:\n  - type: Mingle\n    url: https://x.test"},
		{"empty url", "source_pages:\n  - type: Grow\n    url: \"\""},
		{"not yaml", "{{{"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Error("expected error")
			}
		})
	}
}
