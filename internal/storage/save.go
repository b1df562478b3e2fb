package storage

import (
	"context"

	"github.com/google/uuid"

	"github.com/jwebster45206/scene-engine/pkg/state"
)

// SaveStore persists game state snapshots.
type SaveStore interface {
	Ping(ctx context.Context) error
	Save(ctx context.Context, gs *state.GameState) error
	Load(ctx context.Context, id uuid.UUID) (*state.GameState, error)
	LoadLatest(ctx context.Context) (*state.GameState, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Close() error
}
