package game

import (
	"context"
	"log/slog"

	"github.com/jwebster45206/scene-engine/internal/storage"
)

// AutoSaver snapshots the session after every step, whether the step
// succeeded or not. A failed save is logged but never fails the turn.
type AutoSaver struct {
	store  storage.SaveStore
	game   *Game
	logger *slog.Logger
}

// NewAutoSaver wraps a session with persistence.
func NewAutoSaver(store storage.SaveStore, g *Game, logger *slog.Logger) *AutoSaver {
	if logger == nil {
		logger = slog.Default()
	}
	return &AutoSaver{store: store, game: g, logger: logger}
}

// After runs fn and persists the session state afterwards.
func (s *AutoSaver) After(ctx context.Context, fn func() (any, error)) (any, error) {
	result, err := fn()
	if s.store != nil {
		if saveErr := s.store.Save(ctx, s.game.Snapshot()); saveErr != nil {
			s.logger.Error("autosave failed", "error", saveErr)
		}
	}
	return result, err
}

// Step runs one turn with autosave.
func (s *AutoSaver) Step(ctx context.Context) (any, error) {
	return s.After(ctx, func() (any, error) {
		return s.game.RunStep(ctx)
	})
}
