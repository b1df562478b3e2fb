// Package state defines the serializable snapshot of a play session.
// Snapshots are taken between turns only; a turn is synchronous once
// started, so a snapshot never observes a half-applied effect.
package state

import (
	"time"

	"github.com/google/uuid"
	"github.com/jwebster45206/scene-engine/pkg/inventory"
	"github.com/jwebster45206/scene-engine/pkg/nav"
	"github.com/jwebster45206/scene-engine/pkg/world"
)

// GameState is the complete persisted state of one session.
type GameState struct {
	ID        uuid.UUID        `json:"id"`
	Pointer   *nav.Pointer     `json:"pointer,omitempty"`
	History   []nav.Pointer    `json:"history,omitempty"`
	Time      float64          `json:"time"`
	Traits    map[string]int   `json:"traits,omitempty"`
	Events    []string         `json:"events,omitempty"`
	World     world.Snapshot   `json:"world,omitempty"`
	Inventory []inventory.Item `json:"inventory,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// NewGameState creates an empty session snapshot with a fresh ID.
func NewGameState() *GameState {
	now := time.Now()
	return &GameState{
		ID:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}
