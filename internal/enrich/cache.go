package enrich

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// fileCache remembers fixes by city across runs, so re-running
// enrichment on overlapping data never re-queries the API. Ids are
// database-local and stored zeroed; the caller re-points them.
type fileCache struct {
	path    string
	entries map[string]Fix
}

func openCache(path string) (*fileCache, error) {
	c := &fileCache{path: path, entries: make(map[string]Fix)}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return c, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cache %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &c.entries); err != nil {
		return nil, fmt.Errorf("failed to parse cache %s: %w", path, err)
	}
	return c, nil
}

func (c *fileCache) get(city string) (Fix, bool) {
	fix, ok := c.entries[city]
	return fix, ok
}

func (c *fileCache) put(city string, fix Fix) {
	fix.ID = 0
	c.entries[city] = fix
}

func (c *fileCache) save() error {
	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}
	data, err := json.MarshalIndent(c.entries, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(c.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write cache %s: %w", c.path, err)
	}
	return nil
}
