package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/jwebster45206/scene-engine/pkg/state"
)

// FileSaveStore keeps a single save slot as a JSON file on disk.
type FileSaveStore struct {
	path   string
	logger *slog.Logger
}

var _ SaveStore = (*FileSaveStore)(nil)

// NewFileSaveStore creates a store writing to path.
func NewFileSaveStore(path string, logger *slog.Logger) *FileSaveStore {
	return &FileSaveStore{
		path:   path,
		logger: logger,
	}
}

func (s *FileSaveStore) Ping(ctx context.Context) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("save directory unavailable: %w", err)
	}
	return nil
}

func (s *FileSaveStore) Save(ctx context.Context, gs *state.GameState) error {
	gs.UpdatedAt = time.Now().UTC()
	data, err := json.MarshalIndent(gs, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal game state: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create save directory: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write save file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace save file: %w", err)
	}

	s.logger.Debug("game state saved", "id", gs.ID, "path", s.path)
	return nil
}

func (s *FileSaveStore) load() (*state.GameState, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read save file: %w", err)
	}

	var gs state.GameState
	if err := json.Unmarshal(data, &gs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal save file: %w", err)
	}
	return &gs, nil
}

func (s *FileSaveStore) Load(ctx context.Context, id uuid.UUID) (*state.GameState, error) {
	gs, err := s.load()
	if err != nil || gs == nil {
		return gs, err
	}
	if gs.ID != id {
		return nil, nil
	}
	return gs, nil
}

func (s *FileSaveStore) LoadLatest(ctx context.Context) (*state.GameState, error) {
	return s.load()
}

func (s *FileSaveStore) Delete(ctx context.Context, id uuid.UUID) error {
	gs, err := s.load()
	if err != nil {
		return err
	}
	if gs == nil || gs.ID != id {
		return nil
	}
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete save file: %w", err)
	}
	return nil
}

func (s *FileSaveStore) Close() error {
	return nil
}
