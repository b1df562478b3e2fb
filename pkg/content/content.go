// Package content defines the JSON-shaped records that describe a game
// world: locations, scenes, options and NPCs. These are plain data types;
// loading and caching are the storage layer's concern.
package content

import "encoding/json"

// StringList accepts either a single JSON string or an array of strings.
// Scene descriptions use both forms interchangeably.
type StringList []string

func (sl *StringList) UnmarshalJSON(data []byte) error {
	var one string
	if err := json.Unmarshal(data, &one); err == nil {
		if one == "" {
			*sl = nil
		} else {
			*sl = StringList{one}
		}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*sl = StringList(many)
	return nil
}

// SceneItem declares an item present in a scene, seeding the world ledger.
type SceneItem struct {
	ID       string `json:"id"`
	Quantity int    `json:"quantity,omitempty"`
}

func (si *SceneItem) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID       string `json:"id"`
		Quantity *int   `json:"quantity"`
		Qty      *int   `json:"qty"`
		Count    *int   `json:"count"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	si.ID = raw.ID
	// First present wins; a missing quantity means one.
	switch {
	case raw.Quantity != nil:
		si.Quantity = *raw.Quantity
	case raw.Qty != nil:
		si.Quantity = *raw.Qty
	case raw.Count != nil:
		si.Quantity = *raw.Count
	default:
		si.Quantity = 1
	}
	if si.Quantity < 0 {
		si.Quantity = 0
	}
	return nil
}

// Scene is one node in a location's content graph.
type Scene struct {
	ID          string      `json:"id"`
	Title       string      `json:"title,omitempty"`
	Description StringList  `json:"description,omitempty"`
	OptionIDs   []string    `json:"optionIds,omitempty"`
	NPCIDs      []string    `json:"npcIds,omitempty"`
	Path        []string    `json:"path,omitempty"`
	Inventory   []SceneItem `json:"inventory,omitempty"`

	// Availability gate: either a named window ("any", "day", "night")
	// or a numeric hour range. From/To are pointers so that an absent
	// bound is distinguishable from hour zero.
	Window string   `json:"window,omitempty"`
	From   *float64 `json:"from,omitempty"`
	To     *float64 `json:"to,omitempty"`
}

// Location is the top-level content record for one place in the world,
// loaded from `<locations>/<id>/info.json`.
type Location struct {
	ID           string   `json:"id,omitempty"`
	Name         string   `json:"name,omitempty"`
	Title        string   `json:"title,omitempty"`
	Background   any      `json:"background,omitempty"`
	StartSceneID string   `json:"startSceneId,omitempty"`
	Path         []string `json:"path,omitempty"`
	Scenes       []Scene  `json:"scenes,omitempty"`
}

// DisplayName prefers the explicit title, then name, then the id.
func (l *Location) DisplayName() string {
	if l.Title != "" {
		return l.Title
	}
	if l.Name != "" {
		return l.Name
	}
	return l.ID
}

// FindScene returns the scene with the given id, or nil.
func (l *Location) FindScene(id string) *Scene {
	for i := range l.Scenes {
		if l.Scenes[i].ID == id {
			return &l.Scenes[i]
		}
	}
	return nil
}

// Option is a selectable action, loaded from `options.json`. Effect and
// Requirements are free-form: the mini-language interpreters accept a
// string, a list, or a structured object and never reject content.
type Option struct {
	ID           string  `json:"id"`
	Name         string  `json:"name,omitempty"`
	Text         string  `json:"text,omitempty"`
	Effect       any     `json:"effect,omitempty"`
	Effects      any     `json:"effects,omitempty"`
	Requirements any     `json:"requirements,omitempty"`
	Time         float64 `json:"time,omitempty"`
	Result       string  `json:"result,omitempty"`
}

// Label prefers text, then name, then the id.
func (o *Option) Label() string {
	if o.Text != "" {
		return o.Text
	}
	if o.Name != "" {
		return o.Name
	}
	return o.ID
}

// EffectDef returns whichever of the effect/effects keys is populated.
func (o *Option) EffectDef() any {
	if o.Effect != nil {
		return o.Effect
	}
	return o.Effects
}

// DialogueNode is one line of scripted NPC dialogue.
type DialogueNode struct {
	ID   string `json:"id,omitempty"`
	Text string `json:"text,omitempty"`
}

// NPC is a character reachable from scenes, loaded from `npc.json`.
type NPC struct {
	ID              string         `json:"id"`
	Name            string         `json:"name,omitempty"`
	Description     string         `json:"description,omitempty"`
	Options         []string       `json:"options,omitempty"`
	Requirements    any            `json:"requirements,omitempty"`
	Dialogue        []DialogueNode `json:"dialogue,omitempty"`
	StartDialogueID string         `json:"startDialogueId,omitempty"`
}

// DisplayName prefers the name over the id.
func (n *NPC) DisplayName() string {
	if n.Name != "" {
		return n.Name
	}
	return n.ID
}

// Greeting returns the NPC's opening dialogue line, if any. The start
// node is used when declared, otherwise the first node.
func (n *NPC) Greeting() string {
	if len(n.Dialogue) == 0 {
		return ""
	}
	if n.StartDialogueID != "" {
		for _, d := range n.Dialogue {
			if d.ID == n.StartDialogueID {
				return d.Text
			}
		}
	}
	return n.Dialogue[0].Text
}
