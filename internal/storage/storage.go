package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/radiantjxn/groups-catalog/internal/group"
)

const catalogFile = "catalog.json"

// Store handles persistence of the catalog artifact
type Store struct {
	dataDir string
}

// New creates a new Store instance
func New(dataDir string) (*Store, error) {
	// Expand ~ to home directory
	if strings.HasPrefix(dataDir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, dataDir[2:])
	}

	// Create data directory if it doesn't exist
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	return &Store{
		dataDir: dataDir,
	}, nil
}

// CatalogPath returns the path of the published catalog file.
func (s *Store) CatalogPath() string {
	return filepath.Join(s.dataDir, catalogFile)
}

// Load reads the last published catalog from disk. A missing file is not an
// error; it returns nil so callers can tell "never refreshed" apart from a
// read failure.
func (s *Store) Load() (*group.Catalog, error) {
	data, err := os.ReadFile(s.CatalogPath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading catalog: %w", err)
	}

	var c group.Catalog
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}
	if c.Groups == nil {
		c.Groups = []group.Entry{}
	}
	return &c, nil
}

// Save writes the catalog to disk. The write goes through a temp file and a
// rename so readers never observe a half-written catalog.
func (s *Store) Save(c *group.Catalog) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding catalog: %w", err)
	}

	tmp, err := os.CreateTemp(s.dataDir, catalogFile+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp catalog: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("writing catalog: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp catalog: %w", err)
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("setting catalog permissions: %w", err)
	}

	if err := os.Rename(tmpPath, s.CatalogPath()); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("publishing catalog: %w", err)
	}
	return nil
}
