// Package storage provides the engine's collaborator data sources:
// filesystem-backed content stores for locations, options and NPCs,
// and save-game stores backed by Redis or a local file.
package storage

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
)

// JSONFileCache reads JSON files at most once, so the content stores
// can re-resolve on every call without touching the disk again.
type JSONFileCache struct {
	files  map[string][]byte
	logger *slog.Logger
}

// NewJSONFileCache creates an empty cache.
func NewJSONFileCache(logger *slog.Logger) *JSONFileCache {
	if logger == nil {
		logger = slog.Default()
	}
	return &JSONFileCache{files: make(map[string][]byte), logger: logger}
}

// Read unmarshals the file at path into out. A missing file is
// remembered and reported as os.ErrNotExist without re-reading.
func (c *JSONFileCache) Read(path string, out any) error {
	raw, ok := c.files[path]
	if !ok {
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				c.files[path] = nil
				return fmt.Errorf("%w: %s", os.ErrNotExist, path)
			}
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		c.files[path] = data
		raw = data
	}
	if raw == nil {
		return fmt.Errorf("%w: %s", os.ErrNotExist, path)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

// Clear drops the cached files.
func (c *JSONFileCache) Clear() {
	c.files = make(map[string][]byte)
}
