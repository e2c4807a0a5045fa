package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/radiantjxn/groups-catalog/internal/group"
)

func testCatalog(now time.Time) *group.Catalog {
	return &group.Catalog{
		LastUpdated: now,
		SourcePages: group.DefaultSourcePages(),
		Groups: []group.Entry{
			{
				ID:   "iron-sharpens-east",
				Name: "Iron Sharpens East",
				URL:  "https://x.test/groups/grow/iron-sharpens-east",
				Tags: group.Tags{Type: group.TypeGrow, Location: "The Annex"},
			},
			{
				ID:   "women-of-the-word",
				Name: "Women of the Word",
				URL:  "https://x.test/groups/grow/women-of-the-word",
				Tags: group.Tags{Type: group.TypeGrow},
			},
		},
	}
}

func TestSaveAndLoad(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}

	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	if err := store.Save(testCatalog(now)); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got == nil {
		t.Fatal("Load returned nil after Save")
	}
	if !got.LastUpdated.Equal(now) {
		t.Errorf("lastUpdated = %v, want %v", got.LastUpdated, now)
	}
	if len(got.Groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(got.Groups))
	}
	if got.Groups[0].ID != "iron-sharpens-east" {
		t.Errorf("first group = %q", got.Groups[0].ID)
	}
	if got.Groups[0].Tags.Location != "The Annex" {
		t.Errorf("location = %q", got.Groups[0].Tags.Location)
	}
}

func TestLoadNoCatalog(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}

	got, err := store.Load()
	if err != nil {
		t.Fatalf("Load of missing catalog should not error: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil catalog, got %+v", got)
	}
}

func TestLoadCorruptCatalog(t *testing.T) {
	dir := t.TempDir()
	store, err := New(dir)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}

	if err := os.WriteFile(store.CatalogPath(), []byte("{broken"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := store.Load(); err == nil {
		t.Error("expected error for corrupt catalog file")
	}
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	store, err := New(dir)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}

	if err := store.Save(testCatalog(time.Now().UTC())); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if strings.Contains(e.Name(), ".tmp-") {
			t.Errorf("temp file left behind: %s", e.Name())
		}
	}
	if len(entries) != 1 {
		t.Errorf("expected only catalog.json, got %d entries", len(entries))
	}
}

func TestSaveOverwrites(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}

	first := testCatalog(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	if err := store.Save(first); err != nil {
		t.Fatalf("first Save failed: %v", err)
	}

	second := testCatalog(time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC))
	second.Groups = second.Groups[:1]
	if err := store.Save(second); err != nil {
		t.Fatalf("second Save failed: %v", err)
	}

	got, err := store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(got.Groups) != 1 {
		t.Errorf("expected latest save to win, got %d groups", len(got.Groups))
	}
}

func TestNewCreatesDataDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	if _, err := New(dir); err != nil {
		t.Fatalf("New failed: %v", err)
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		t.Errorf("data directory not created: %v", err)
	}
}
