package storage

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/jwebster45206/scene-engine/pkg/content"
)

// OptionStore loads option records from
// `<baseDir>/<locationId>/options.json`, an object keyed by option id.
type OptionStore struct {
	baseDir string
	cache   *JSONFileCache
	logger  *slog.Logger
	byLoc   map[string]map[string]*content.Option
}

// NewOptionStore creates a store rooted at baseDir.
func NewOptionStore(baseDir string, cache *JSONFileCache, logger *slog.Logger) *OptionStore {
	if cache == nil {
		cache = NewJSONFileCache(logger)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &OptionStore{
		baseDir: baseDir,
		cache:   cache,
		logger:  logger,
		byLoc:   make(map[string]map[string]*content.Option),
	}
}

func (s *OptionStore) ensureLoaded(locationID string) map[string]*content.Option {
	if m, ok := s.byLoc[locationID]; ok {
		return m
	}

	raw := make(map[string]content.Option)
	path := filepath.Join(s.baseDir, locationID, "options.json")
	if err := s.cache.Read(path, &raw); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.logger.Warn("malformed options file", "location", locationID, "error", err)
		}
	}

	m := make(map[string]*content.Option, len(raw))
	for id, opt := range raw {
		o := opt
		o.ID = id
		m[id] = &o
	}
	s.byLoc[locationID] = m
	return m
}

// Get returns one option, or nil when unknown.
func (s *OptionStore) Get(locationID, optionID string) *content.Option {
	return s.ensureLoaded(locationID)[optionID]
}

// GetMany resolves option ids in order, dropping unknown ids.
func (s *OptionStore) GetMany(locationID string, ids []string) []*content.Option {
	m := s.ensureLoaded(locationID)
	var out []*content.Option
	for _, id := range ids {
		if opt, ok := m[id]; ok {
			out = append(out, opt)
		}
	}
	return out
}
