// Package traits tracks the player's personality ledger. Each trait
// belongs to a light or dark side and holds a value clamped to [0, 10];
// effects adjust traits and requirements compare against them.
package traits

// Value bounds for every trait.
const (
	MinValue = 0
	MaxValue = 10
)

// Trait sides.
const (
	SideLight = "light"
	SideDark  = "dark"
)

// Trait is one named personality axis.
type Trait struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Side        string `json:"side,omitempty" yaml:"side,omitempty"`
	Value       int    `json:"value" yaml:"value,omitempty"`
}

func clamp(v int) int {
	if v < MinValue {
		return MinValue
	}
	if v > MaxValue {
		return MaxValue
	}
	return v
}

// Set holds the session's traits and notifies subscribers on change.
type Set struct {
	traits []*Trait
	subs   []func(Trait)
}

// NewSet creates a trait set from a catalog. Initial values are clamped.
func NewSet(catalog []Trait) *Set {
	s := &Set{traits: make([]*Trait, 0, len(catalog))}
	for _, t := range catalog {
		t.Value = clamp(t.Value)
		tc := t
		s.traits = append(s.traits, &tc)
	}
	return s
}

// DefaultCatalog is the stock light/dark trait pairing used when the
// world manifest declares none.
func DefaultCatalog() []Trait {
	return []Trait{
		{Name: "kindness", Side: SideLight, Description: "Warmth toward strangers."},
		{Name: "courage", Side: SideLight, Description: "Willingness to face danger."},
		{Name: "honesty", Side: SideLight, Description: "Telling the truth when it costs."},
		{Name: "greed", Side: SideDark, Description: "Hunger for coin above all."},
		{Name: "wrath", Side: SideDark, Description: "Quickness to anger."},
		{Name: "deceit", Side: SideDark, Description: "Comfort with a convenient lie."},
	}
}

// All returns the traits in catalog order.
func (s *Set) All() []Trait {
	out := make([]Trait, len(s.traits))
	for i, t := range s.traits {
		out[i] = *t
	}
	return out
}

// GetTraitByName returns a copy of the named trait.
func (s *Set) GetTraitByName(name string) (Trait, bool) {
	t := s.find(name)
	if t == nil {
		return Trait{}, false
	}
	return *t, true
}

// TraitValue returns the named trait's current value. It backs the
// requirement interpreter's trait comparisons.
func (s *Set) TraitValue(name string) (int, bool) {
	t := s.find(name)
	if t == nil {
		return 0, false
	}
	return t.Value, true
}

func (s *Set) find(name string) *Trait {
	for _, t := range s.traits {
		if t.Name == name {
			return t
		}
	}
	return nil
}

// IncrementTrait adjusts the named trait by delta, clamping to bounds.
// Unknown names are ignored.
func (s *Set) IncrementTrait(name string, delta int) {
	t := s.find(name)
	if t == nil {
		return
	}
	t.Value = clamp(t.Value + delta)
	s.notify(*t)
}

// UpdateTraitValue sets the named trait to an absolute value.
func (s *Set) UpdateTraitValue(name string, value int) bool {
	t := s.find(name)
	if t == nil {
		return false
	}
	t.Value = clamp(value)
	s.notify(*t)
	return true
}

// TotalBySide sums the values of all traits on one side.
func (s *Set) TotalBySide(side string) int {
	total := 0
	for _, t := range s.traits {
		if t.Side == side {
			total += t.Value
		}
	}
	return total
}

// Snapshot returns name → value for persistence.
func (s *Set) Snapshot() map[string]int {
	out := make(map[string]int, len(s.traits))
	for _, t := range s.traits {
		out[t.Name] = t.Value
	}
	return out
}

// Restore applies saved values. Names not in the catalog are dropped.
func (s *Set) Restore(values map[string]int) {
	for name, v := range values {
		if t := s.find(name); t != nil {
			t.Value = clamp(v)
		}
	}
}

// Subscribe registers a listener called with the updated trait.
func (s *Set) Subscribe(fn func(Trait)) {
	if fn != nil {
		s.subs = append(s.subs, fn)
	}
}

func (s *Set) notify(t Trait) {
	for _, fn := range s.subs {
		fn(t)
	}
}
