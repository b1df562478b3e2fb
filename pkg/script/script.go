// Package script implements the two mini-languages embedded in content:
// effect programs, which mutate session state and produce navigation
// payloads, and requirement programs, which gate options and NPCs.
//
// Both languages share the same shape: a definition is a bare token
// string, a list (implicit sequence/AND), or a structured object, and it
// compiles into a small expression tree of tagged variants. Compilation
// is total: unknown heads become an explicit pass-through variant
// instead of an error, so malformed content degrades instead of
// breaking the session. Trees are rebuilt per evaluation; definitions
// are tiny and the evaluation context changes between calls.
package script

import (
	"strconv"
	"strings"
)

// Bus is the synchronous event bus effects emit on.
type Bus interface {
	Emit(eventType string, payload any)
}

// EventLog records fired domain-event tokens for later `event:` checks.
type EventLog interface {
	Add(token string)
	Has(token string) bool
}

// TraitService reads and adjusts trait values.
type TraitService interface {
	IncrementTrait(name string, delta int)
	TraitValue(name string) (int, bool)
}

// Clock reports game time for `time:` requirements.
type Clock interface {
	Window() string
	CurrentTime() float64
}

// PlayerInventory answers `has:player:` requirements.
type PlayerInventory interface {
	HasItem(itemID string, qty int) bool
}

// WorldItems answers `has:location:` requirements.
type WorldItems interface {
	HasLocationItem(locationID, itemID string, qty int) bool
}

// Env carries the call-site context requirements evaluate against.
type Env struct {
	LocationID   string
	SceneID      string
	CurrentNPCID string
	Path         []string
}

// DomainEvent is the bus payload for content-defined effect tokens.
type DomainEvent struct {
	Token string   `json:"token"`
	Args  []string `json:"args,omitempty"`
}

// TimeCost is the bus payload for time-advance effects.
type TimeCost struct {
	Time float64 `json:"time"`
}

// parseNumber reads a numeric token segment.
func parseNumber(s string) (float64, bool) {
	n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return n, err == nil
}

// asString converts decoded-JSON scalars to a token string.
func asString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

// asList accepts both []any (decoded JSON) and []string.
func asList(v any) ([]any, bool) {
	switch l := v.(type) {
	case []any:
		return l, true
	case []string:
		out := make([]any, len(l))
		for i, s := range l {
			out[i] = s
		}
		return out, true
	}
	return nil, false
}

// asNumber accepts the numeric types a decoded or literal definition
// can carry.
func asNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

// stringField reads a string value from a decoded-JSON object under the
// first present key.
func stringField(m map[string]any, keys ...string) string {
	for _, k := range keys {
		if s, ok := m[k].(string); ok && s != "" {
			return s
		}
	}
	return ""
}
