package storage

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/jwebster45206/scene-engine/pkg/inventory"
)

// ItemStore loads item records from `<baseDir>/<id>.json`. Unknown
// ids resolve to a bare item named after the id, so content can refer
// to items that carry no extra metadata.
type ItemStore struct {
	baseDir string
	cache   *JSONFileCache
	logger  *slog.Logger
	items   map[string]inventory.Item
}

// NewItemStore creates a store rooted at baseDir.
func NewItemStore(baseDir string, cache *JSONFileCache, logger *slog.Logger) *ItemStore {
	if cache == nil {
		cache = NewJSONFileCache(logger)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ItemStore{
		baseDir: baseDir,
		cache:   cache,
		logger:  logger,
		items:   make(map[string]inventory.Item),
	}
}

// Get resolves one item by id. Always returns a usable item.
func (s *ItemStore) Get(id string) inventory.Item {
	id = strings.TrimSpace(id)
	if id == "" {
		return inventory.Item{}
	}
	if it, ok := s.items[id]; ok {
		return it
	}

	var it inventory.Item
	path := filepath.Join(s.baseDir, id+".json")
	if err := s.cache.Read(path, &it); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.logger.Warn("malformed item file", "item", id, "error", err)
		}
		it = inventory.Item{}
	}
	it.ID = id
	if it.Name == "" {
		it.Name = id
	}
	s.items[id] = it
	return it
}

// GetMany resolves items in id order.
func (s *ItemStore) GetMany(ids []string) []inventory.Item {
	out := make([]inventory.Item, 0, len(ids))
	for _, id := range ids {
		if strings.TrimSpace(id) == "" {
			continue
		}
		out = append(out, s.Get(id))
	}
	return out
}
