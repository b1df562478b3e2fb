// Package inventory holds the player's carried items. Items may carry
// trait deltas (applied by the session wiring when gained or lost) and a
// travel speed factor consumed by the movement manager.
package inventory

// TraitValue is a trait adjustment granted while an item is held.
type TraitValue struct {
	TraitName string `json:"traitName"`
	Value     int    `json:"value"`
}

// Item is a carried object.
type Item struct {
	ID          string       `json:"id"`
	Name        string       `json:"name,omitempty"`
	Description string       `json:"description,omitempty"`
	Speed       float64      `json:"speed,omitempty"`
	TraitValues []TraitValue `json:"traitValues,omitempty"`
}

// DisplayName prefers the name over the id.
func (it Item) DisplayName() string {
	if it.Name != "" {
		return it.Name
	}
	return it.ID
}

// Event types emitted on inventory changes.
const (
	EventItemAdded   = "itemAdded"
	EventItemRemoved = "itemRemoved"
)

// Event describes one inventory change.
type Event struct {
	Type string
	Item Item
}

// Inventory is the player's item list. Duplicate ids stack as repeated
// entries; counts are derived.
type Inventory struct {
	items []Item
	subs  []func(Event)
}

// New creates an empty inventory.
func New() *Inventory {
	return &Inventory{}
}

// Add appends an item and notifies subscribers.
func (inv *Inventory) Add(item Item) {
	if item.ID == "" {
		return
	}
	inv.items = append(inv.items, item)
	inv.notify(Event{Type: EventItemAdded, Item: item})
}

// Remove drops one instance of the item id. It reports whether an item
// was actually removed.
func (inv *Inventory) Remove(itemID string) bool {
	for i, it := range inv.items {
		if it.ID == itemID {
			inv.items = append(inv.items[:i], inv.items[i+1:]...)
			inv.notify(Event{Type: EventItemRemoved, Item: it})
			return true
		}
	}
	return false
}

// Count returns how many instances of the item id are held.
func (inv *Inventory) Count(itemID string) int {
	n := 0
	for _, it := range inv.items {
		if it.ID == itemID {
			n++
		}
	}
	return n
}

// HasItem reports whether at least qty instances are held.
func (inv *Inventory) HasItem(itemID string, qty int) bool {
	if qty <= 0 {
		qty = 1
	}
	return inv.Count(itemID) >= qty
}

// All returns a copy of the item list in acquisition order.
func (inv *Inventory) All() []Item {
	out := make([]Item, len(inv.items))
	copy(out, inv.items)
	return out
}

// Restore replaces the contents without notifying subscribers; used when
// loading a save, where trait effects are restored separately.
func (inv *Inventory) Restore(items []Item) {
	inv.items = make([]Item, len(items))
	copy(inv.items, items)
}

// Subscribe registers a change listener.
func (inv *Inventory) Subscribe(fn func(Event)) {
	if fn != nil {
		inv.subs = append(inv.subs, fn)
	}
}

func (inv *Inventory) notify(e Event) {
	for _, fn := range inv.subs {
		fn(e)
	}
}
