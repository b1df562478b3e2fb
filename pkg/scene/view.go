// Package scene assembles the options a player can pick and runs the
// per-turn loop that dispatches the chosen option through the effect
// interpreter.
package scene

import (
	"context"

	"github.com/jwebster45206/scene-engine/pkg/nav"
)

// ChoiceDTO is one selectable entry shown to the player.
type ChoiceDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// NPCView is the presentation form of the currently selected NPC.
type NPCView struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Text        string `json:"text,omitempty"`
}

// TimeDTO is the clock readout shown at the top of a turn.
type TimeDTO struct {
	Time   string `json:"time"`
	Window string `json:"window"`
}

// SceneDTO is the presentation form of one turn.
type SceneDTO struct {
	Location    nav.LocationDTO `json:"location"`
	Description []string        `json:"description,omitempty"`
	CurrentNPC  *NPCView        `json:"currentNpc,omitempty"`
	Choices     []ChoiceDTO     `json:"choices"`
}

// View is the presentation boundary. Each call is the turn loop's only
// suspension point: the controller issues at most one call at a time
// and fully awaits it. A returned empty pick means the player (or the
// input stream) cancelled, which ends the turn normally.
type View interface {
	ShowTime(ctx context.Context, dto TimeDTO) error
	ShowScene(ctx context.Context, dto *SceneDTO) (string, error)
	ShowPath(ctx context.Context, choices []ChoiceDTO) (string, error)
	ShowInventory(ctx context.Context, lines []string) error
	ShowMessage(ctx context.Context, text string) error
	ShowChoiceResult(ctx context.Context, text string) error
}
