package storage

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/jwebster45206/scene-engine/pkg/content"
)

// LocationStore loads location catalogs from
// `<baseDir>/<locationId>/info.json`. A missing or malformed file
// resolves to an empty catalog: navigation degrades, it does not fail.
type LocationStore struct {
	baseDir string
	cache   *JSONFileCache
	logger  *slog.Logger
	byID    map[string]*content.Location
}

// NewLocationStore creates a store rooted at baseDir.
func NewLocationStore(baseDir string, cache *JSONFileCache, logger *slog.Logger) *LocationStore {
	if cache == nil {
		cache = NewJSONFileCache(logger)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &LocationStore{
		baseDir: baseDir,
		cache:   cache,
		logger:  logger,
		byID:    make(map[string]*content.Location),
	}
}

// Get returns the location catalog. Repeated calls are cheap.
func (s *LocationStore) Get(locationID string) (*content.Location, error) {
	if loc, ok := s.byID[locationID]; ok {
		return loc, nil
	}

	loc := &content.Location{ID: locationID}
	path := filepath.Join(s.baseDir, locationID, "info.json")
	if err := s.cache.Read(path, loc); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.logger.Warn("malformed location file", "location", locationID, "error", err)
		}
	}
	if loc.ID == "" {
		loc.ID = locationID
	}
	s.byID[locationID] = loc
	return loc, nil
}
