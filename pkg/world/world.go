// Package world tracks per-location item availability across three
// layers: defaults seeded by scene declarations, explicit additions, and
// explicit removals. Net availability is max(0, defaults+added-removed).
package world

import "github.com/jwebster45206/scene-engine/pkg/content"

type counts map[string]map[string]int // locationID → itemID → count

func (c counts) get(loc, item string) int {
	return c[loc][item]
}

func (c counts) set(loc, item string, v int) {
	if v < 0 {
		v = 0
	}
	m, ok := c[loc]
	if !ok {
		m = make(map[string]int)
		c[loc] = m
	}
	m[item] = v
}

func (c counts) inc(loc, item string, delta int) {
	c.set(loc, item, c.get(loc, item)+delta)
}

func (c counts) clone() counts {
	out := make(counts, len(c))
	for loc, m := range c {
		mm := make(map[string]int, len(m))
		for item, v := range m {
			mm[item] = v
		}
		out[loc] = mm
	}
	return out
}

// State is the world item ledger. It is single-owner and not safe for
// concurrent use; the engine mutates it only on the active turn's stack.
type State struct {
	defaults counts
	added    counts
	removed  counts
}

// NewState creates an empty ledger.
func NewState() *State {
	return &State{
		defaults: make(counts),
		added:    make(counts),
		removed:  make(counts),
	}
}

// Reset clears all three layers.
func (s *State) Reset() {
	s.defaults = make(counts)
	s.added = make(counts)
	s.removed = make(counts)
}

// ApplySceneInventory raises location defaults to the declared
// quantities. Defaults only ever go up, so revisiting a scene never
// restores items the player already removed.
func (s *State) ApplySceneInventory(locationID string, items []content.SceneItem) {
	if locationID == "" {
		return
	}
	for _, it := range items {
		if it.ID == "" {
			continue
		}
		qty := it.Quantity
		if qty < 0 {
			qty = 0
		}
		if qty > s.defaults.get(locationID, it.ID) {
			s.defaults.set(locationID, it.ID, qty)
		}
	}
}

// AddLocationItem records an explicit gain.
func (s *State) AddLocationItem(locationID, itemID string, qty int) {
	if locationID == "" || itemID == "" || qty == 0 {
		return
	}
	s.added.inc(locationID, itemID, qty)
}

// RemoveLocationItem records an explicit loss, clamped to what is
// actually available. Over-removal silently drops the remainder.
func (s *State) RemoveLocationItem(locationID, itemID string, qty int) {
	if locationID == "" || itemID == "" || qty <= 0 {
		return
	}
	available := s.net(locationID, itemID)
	take := qty
	if take > available {
		take = available
	}
	if take > 0 {
		s.removed.inc(locationID, itemID, take)
	}
}

// HasLocationItem reports whether at least qty of the item is available.
func (s *State) HasLocationItem(locationID, itemID string, qty int) bool {
	if locationID == "" || itemID == "" {
		return false
	}
	if qty <= 0 {
		qty = 1
	}
	return s.net(locationID, itemID) >= qty
}

func (s *State) net(loc, item string) int {
	n := s.defaults.get(loc, item) + s.added.get(loc, item) - s.removed.get(loc, item)
	if n < 0 {
		return 0
	}
	return n
}

// ItemCounts is a per-item view of the ledger layers.
type ItemCounts struct {
	Defaults int `json:"defaults"`
	Added    int `json:"added"`
	Removed  int `json:"removed"`
	Net      int `json:"net"`
}

// LocationSnapshot returns the ledger rows for one location.
func (s *State) LocationSnapshot(locationID string) map[string]ItemCounts {
	snap := make(map[string]ItemCounts)
	collect := func(c counts, pick func(*ItemCounts, int)) {
		for item, v := range c[locationID] {
			row := snap[item]
			pick(&row, v)
			snap[item] = row
		}
	}
	collect(s.defaults, func(r *ItemCounts, v int) { r.Defaults = v })
	collect(s.added, func(r *ItemCounts, v int) { r.Added = v })
	collect(s.removed, func(r *ItemCounts, v int) { r.Removed = v })
	for item, row := range snap {
		net := row.Defaults + row.Added - row.Removed
		if net < 0 {
			net = 0
		}
		row.Net = net
		snap[item] = row
	}
	return snap
}

// Snapshot is the serializable form of the ledger.
type Snapshot struct {
	Defaults map[string]map[string]int `json:"defaults,omitempty"`
	Added    map[string]map[string]int `json:"added,omitempty"`
	Removed  map[string]map[string]int `json:"removed,omitempty"`
}

// Snapshot copies the ledger for persistence.
func (s *State) Snapshot() Snapshot {
	return Snapshot{
		Defaults: s.defaults.clone(),
		Added:    s.added.clone(),
		Removed:  s.removed.clone(),
	}
}

// Restore replaces the ledger with a saved snapshot.
func (s *State) Restore(snap Snapshot) {
	s.Reset()
	restore := func(dst counts, src map[string]map[string]int) {
		for loc, m := range src {
			for item, v := range m {
				dst.set(loc, item, v)
			}
		}
	}
	restore(s.defaults, snap.Defaults)
	restore(s.added, snap.Added)
	restore(s.removed, snap.Removed)
}
