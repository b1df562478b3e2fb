// Package nav resolves "where the player is": it owns the navigation
// pointer and its history, maps the pointer to a concrete time-gated
// scene, and preloads the locations reachable from it.
package nav

import "github.com/jwebster45206/scene-engine/pkg/content"

// Pointer identifies the current narrative position. A zero SceneID
// means the position has not been resolved to a scene yet.
type Pointer struct {
	LocationID string `json:"locationId"`
	SceneID    string `json:"sceneId,omitempty"`
}

// Scene is the read-only view of the pointer's resolved scene. It is
// recomputed on every lookup and never persisted; only the pointer is.
type Scene struct {
	ID          string
	LocationID  string
	Description []string
	OptionIDs   []string
	NPCIDs      []string
	Path        []string
	Inventory   []content.SceneItem
}

// LocationSource loads location catalogs. Implementations must be safe
// to call repeatedly for the same id; caching is their concern.
type LocationSource interface {
	Get(locationID string) (*content.Location, error)
}

// Oracle reports game time for scene gating.
type Oracle interface {
	Window() string
	CurrentTime() float64
}
