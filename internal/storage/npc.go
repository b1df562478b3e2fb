package storage

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/jwebster45206/scene-engine/pkg/content"
)

// NPCStore loads NPC records from `<baseDir>/<locationId>/npc.json`,
// an array of NPC objects. A record without an id falls back to its
// name.
type NPCStore struct {
	baseDir string
	cache   *JSONFileCache
	logger  *slog.Logger
	byLoc   map[string][]*content.NPC
}

// NewNPCStore creates a store rooted at baseDir.
func NewNPCStore(baseDir string, cache *JSONFileCache, logger *slog.Logger) *NPCStore {
	if cache == nil {
		cache = NewJSONFileCache(logger)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &NPCStore{
		baseDir: baseDir,
		cache:   cache,
		logger:  logger,
		byLoc:   make(map[string][]*content.NPC),
	}
}

func (s *NPCStore) ensureLoaded(locationID string) []*content.NPC {
	if list, ok := s.byLoc[locationID]; ok {
		return list
	}

	var raw []content.NPC
	path := filepath.Join(s.baseDir, locationID, "npc.json")
	if err := s.cache.Read(path, &raw); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.logger.Warn("malformed npc file", "location", locationID, "error", err)
		}
	}

	list := make([]*content.NPC, 0, len(raw))
	for _, npc := range raw {
		n := npc
		if n.ID == "" {
			n.ID = n.Name
		}
		if n.ID == "" {
			continue
		}
		list = append(list, &n)
	}
	s.byLoc[locationID] = list
	return list
}

// Get returns one NPC, or nil when unknown.
func (s *NPCStore) Get(locationID, npcID string) *content.NPC {
	for _, npc := range s.ensureLoaded(locationID) {
		if npc.ID == npcID {
			return npc
		}
	}
	return nil
}

// List returns the location's NPCs in declaration order.
func (s *NPCStore) List(locationID string) []*content.NPC {
	list := s.ensureLoaded(locationID)
	out := make([]*content.NPC, len(list))
	copy(out, list)
	return out
}
