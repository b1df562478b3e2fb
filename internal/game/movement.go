package game

import (
	"github.com/jwebster45206/scene-engine/pkg/inventory"
	"github.com/jwebster45206/scene-engine/pkg/nav"
	"github.com/jwebster45206/scene-engine/pkg/scene"
)

// Movement applies navigation results to the cache and scales travel
// time by the best speed item carried. Speed is recomputed on every
// inventory change.
type Movement struct {
	cache *nav.Cache
	inv   *inventory.Inventory
	speed float64
}

var _ scene.TravelTimer = (*Movement)(nil)

// NewMovement creates a movement manager. The inventory may be nil,
// which pins speed at 1.
func NewMovement(cache *nav.Cache, inv *inventory.Inventory) *Movement {
	m := &Movement{cache: cache, inv: inv, speed: 1}
	if inv != nil {
		inv.Subscribe(func(inventory.Event) {
			m.Recompute()
		})
	}
	m.Recompute()
	return m
}

// Recompute rescans the inventory for the best speed factor.
func (m *Movement) Recompute() {
	speed := 1.0
	if m.inv != nil {
		for _, it := range m.inv.All() {
			if it.Speed > speed {
				speed = it.Speed
			}
		}
	}
	m.speed = speed
}

// Speed returns the current travel speed factor, never below 1.
func (m *Movement) Speed() float64 { return m.speed }

// ComputeTime scales a declared cost: travel costs are divided by the
// speed factor, everything else passes through. Non-positive costs
// collapse to zero.
func (m *Movement) ComputeTime(normal float64, kind string) float64 {
	if normal <= 0 {
		return 0
	}
	if kind == scene.TravelKind {
		return normal / m.speed
	}
	return normal
}

// Go applies a navigation result (a pointer or a "go:" token) to the
// cache.
func (m *Movement) Go(result any) {
	m.cache.ApplyResult(result)
}

// SetCurrent moves the pointer directly.
func (m *Movement) SetCurrent(locationID, sceneID string) {
	m.cache.SetCurrent(locationID, sceneID)
}
