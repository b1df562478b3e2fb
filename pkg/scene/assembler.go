package scene

import (
	"log/slog"

	"github.com/jwebster45206/scene-engine/pkg/content"
	"github.com/jwebster45206/scene-engine/pkg/nav"
	"github.com/jwebster45206/scene-engine/pkg/script"
)

// Synthetic choice ids the assembler always offers.
const (
	ChoiceTravel    = "go"
	ChoiceInventory = "inventory"
	ChoiceExit      = "exit"
	ChoiceBack      = "back"

	talkPrefix = "talk:"
	goPrefix   = "go:"
)

// OptionSource resolves option ids within a location.
type OptionSource interface {
	GetMany(locationID string, ids []string) []*content.Option
}

// NPCSource resolves NPCs within a location.
type NPCSource interface {
	Get(locationID, npcID string) *content.NPC
	List(locationID string) []*content.NPC
}

// RequirementChecker gates options and NPCs.
type RequirementChecker interface {
	Passes(def any, env script.Env) bool
}

// Context is the mutable per-turn selection state.
type Context struct {
	CurrentNPCID string
}

// Choice is one assembled option with its backing content, if any.
type Choice struct {
	ID     string
	Name   string
	Option *content.Option
	Time   float64
}

// Assembler merges the option sources of a scene into one deduplicated,
// requirement-filtered choice list.
type Assembler struct {
	options  OptionSource
	npcs     NPCSource
	registry *nav.Registry
	req      RequirementChecker
	logger   *slog.Logger
}

// NewAssembler creates an assembler over the given sources.
func NewAssembler(options OptionSource, npcs NPCSource, registry *nav.Registry, req RequirementChecker, logger *slog.Logger) *Assembler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Assembler{options: options, npcs: npcs, registry: registry, req: req, logger: logger}
}

func (a *Assembler) env(sc *nav.Scene, ctx *Context) script.Env {
	env := script.Env{
		LocationID: sc.LocationID,
		SceneID:    sc.ID,
		Path:       sc.Path,
	}
	if ctx != nil {
		env.CurrentNPCID = ctx.CurrentNPCID
	}
	return env
}

// BuildChoices assembles the scene's choices in fixed order: talk
// entries, options of the selected NPC, the scene's own options, a
// travel entry when the scene has outbound paths, and the synthetic
// inventory and exit entries. Duplicated ids keep their first
// occurrence.
func (a *Assembler) BuildChoices(sc *nav.Scene, ctx *Context) []Choice {
	env := a.env(sc, ctx)

	merged := a.talkChoices(sc, ctx, env)
	merged = append(merged, a.npcOptionChoices(sc, ctx, env)...)
	merged = append(merged, a.sceneOptionChoices(sc, env)...)
	if len(sc.Path) > 0 {
		merged = append(merged, a.travelChoice(sc))
	}
	merged = append(merged,
		Choice{ID: ChoiceInventory, Name: "Inventory"},
		Choice{ID: ChoiceExit, Name: "Exit"},
	)
	return dedupeByID(merged)
}

// travelChoice is the entry that opens the travel sub-menu. A location
// may declare a "go" option to set the base travel time.
func (a *Assembler) travelChoice(sc *nav.Scene) Choice {
	choice := Choice{ID: ChoiceTravel, Name: "Travel"}
	if opts := a.options.GetMany(sc.LocationID, []string{ChoiceTravel}); len(opts) > 0 {
		choice.Option = opts[0]
		choice.Time = opts[0].Time
	}
	return choice
}

// talkChoices offers one entry per NPC the scene permits. A scene with
// no declared allow-list permits every NPC known at the location.
func (a *Assembler) talkChoices(sc *nav.Scene, ctx *Context, env script.Env) []Choice {
	var npcs []*content.NPC
	if len(sc.NPCIDs) > 0 {
		for _, id := range sc.NPCIDs {
			if npc := a.npcs.Get(sc.LocationID, id); npc != nil {
				npcs = append(npcs, npc)
			}
		}
	} else {
		npcs = a.npcs.List(sc.LocationID)
	}

	current := ""
	if ctx != nil {
		current = ctx.CurrentNPCID
	}

	var out []Choice
	for _, npc := range npcs {
		if !a.req.Passes(npc.Requirements, env) {
			continue
		}
		name := "Talk: " + npc.DisplayName()
		if npc.ID == current {
			name += " ✓"
		}
		out = append(out, Choice{ID: talkPrefix + npc.ID, Name: name})
	}
	return out
}

// npcOptionChoices expands the selected NPC's option ids. A scene with
// an allow-list only honors a selection contained in it.
func (a *Assembler) npcOptionChoices(sc *nav.Scene, ctx *Context, env script.Env) []Choice {
	if ctx == nil || ctx.CurrentNPCID == "" {
		return nil
	}
	if len(sc.NPCIDs) > 0 && !contains(sc.NPCIDs, ctx.CurrentNPCID) {
		return nil
	}
	npc := a.npcs.Get(sc.LocationID, ctx.CurrentNPCID)
	if npc == nil {
		return nil
	}
	return a.optionChoices(sc.LocationID, npc.Options, env)
}

func (a *Assembler) sceneOptionChoices(sc *nav.Scene, env script.Env) []Choice {
	return a.optionChoices(sc.LocationID, sc.OptionIDs, env)
}

func (a *Assembler) optionChoices(locationID string, ids []string, env script.Env) []Choice {
	var out []Choice
	for _, opt := range a.options.GetMany(locationID, ids) {
		if !a.req.Passes(opt.Requirements, env) {
			continue
		}
		out = append(out, Choice{ID: opt.ID, Name: opt.Label(), Option: opt, Time: opt.Time})
	}
	return out
}

// BuildPathChoices turns the scene's outbound path into travel entries,
// keeping only destinations already known to the location registry.
// Travel time comes from the destination's own option record when one
// exists, otherwise from the base travel option.
func (a *Assembler) BuildPathChoices(sc *nav.Scene, ctx *Context, base *content.Option) []Choice {
	var baseTime float64
	if base != nil {
		baseTime = base.Time
	}

	var out []Choice
	for _, dst := range sc.Path {
		dto, ok := a.registry.DTO(dst)
		if !ok {
			continue
		}
		choice := Choice{ID: goPrefix + dst, Name: dto.Name, Time: baseTime}
		if opts := a.options.GetMany(sc.LocationID, []string{goPrefix + dst}); len(opts) > 0 {
			choice.Option = opts[0]
			if opts[0].Time > 0 {
				choice.Time = opts[0].Time
			}
		}
		out = append(out, choice)
	}
	return dedupeByID(out)
}

// BuildSceneDTO prepares the presentation payload for one turn.
func (a *Assembler) BuildSceneDTO(sc *nav.Scene, ctx *Context, choices []Choice) *SceneDTO {
	dto := &SceneDTO{Description: sc.Description}
	if loc, ok := a.registry.DTO(sc.LocationID); ok {
		dto.Location = loc
	} else {
		dto.Location = nav.LocationDTO{ID: sc.LocationID, Name: sc.LocationID}
	}
	if ctx != nil && ctx.CurrentNPCID != "" {
		dto.CurrentNPC = a.npcView(sc.LocationID, ctx.CurrentNPCID)
	}
	for _, c := range choices {
		dto.Choices = append(dto.Choices, ChoiceDTO{ID: c.ID, Name: c.Name})
	}
	return dto
}

func (a *Assembler) npcView(locationID, npcID string) *NPCView {
	npc := a.npcs.Get(locationID, npcID)
	if npc == nil {
		return nil
	}
	view := &NPCView{ID: npc.ID, Name: npc.DisplayName(), Description: npc.Description}
	if msg := npc.Greeting(); msg != "" {
		view.Text = npc.DisplayName() + ": " + msg
	}
	return view
}

func dedupeByID(choices []Choice) []Choice {
	seen := make(map[string]struct{}, len(choices))
	out := choices[:0]
	for _, c := range choices {
		if _, ok := seen[c.ID]; ok {
			continue
		}
		seen[c.ID] = struct{}{}
		out = append(out, c)
	}
	return out
}

func contains(list []string, want string) bool {
	for _, s := range list {
		if s == want {
			return true
		}
	}
	return false
}
