package script

import (
	"log/slog"
	"strings"

	"github.com/jwebster45206/scene-engine/pkg/nav"
)

// action is the closed variant set of the effect language. Actions run
// left to right; a navigation action yields the payload the turn ends
// with, everything else yields nil.
type action interface {
	run(ctx *effectContext) any
}

type effectContext struct {
	bus    Bus
	traits TraitService
	log    EventLog
}

// seqAction runs children in order and keeps the last non-nil result.
type seqAction struct {
	children []action
}

func (a *seqAction) run(ctx *effectContext) any {
	var last any
	for _, child := range a.children {
		if res := child.run(ctx); res != nil {
			last = res
		}
	}
	return last
}

// goAction emits a "go" event and returns the navigation payload.
type goAction struct {
	locationID string
	sceneID    string
}

func (a *goAction) run(ctx *effectContext) any {
	if a.locationID == "" && a.sceneID == "" {
		return nil
	}
	// A scene-only go is ambiguous until the cache resolves it against
	// the current location, so it travels as its token form.
	var payload any
	if a.locationID == "" {
		payload = "go:" + a.sceneID
	} else {
		payload = nav.Pointer{LocationID: a.locationID, SceneID: a.sceneID}
	}
	if ctx.bus != nil {
		ctx.bus.Emit("go", payload)
	}
	return payload
}

// timeAction advances game time through the bus.
type timeAction struct {
	cost float64
}

func (a *timeAction) run(ctx *effectContext) any {
	if a.cost > 0 && ctx.bus != nil {
		ctx.bus.Emit("effect", TimeCost{Time: a.cost})
	}
	return nil
}

// traitAction adjusts one trait value.
type traitAction struct {
	name  string
	delta int
}

func (a *traitAction) run(ctx *effectContext) any {
	if a.name != "" && a.delta != 0 && ctx.traits != nil {
		ctx.traits.IncrementTrait(a.name, a.delta)
	}
	return nil
}

// domainEventAction records an opaque content token and rebroadcasts it
// both namespaced and bare, so external collaborators can subscribe
// without the engine knowing about them.
type domainEventAction struct {
	token string
	args  []string
}

func (a *domainEventAction) run(ctx *effectContext) any {
	if a.token == "" {
		return nil
	}
	if ctx.log != nil {
		ctx.log.Add(a.token)
	}
	if ctx.bus != nil {
		payload := DomainEvent{Token: a.token, Args: a.args}
		ctx.bus.Emit("effect:"+a.token, payload)
		ctx.bus.Emit(a.token, payload)
	}
	return nil
}

// Effects interprets effect definitions against the session services.
type Effects struct {
	bus    Bus
	traits TraitService
	log    EventLog
	logger *slog.Logger
}

// NewEffects creates an effect interpreter. Any service may be nil; the
// corresponding actions then degrade to no-ops.
func NewEffects(bus Bus, traits TraitService, log EventLog, logger *slog.Logger) *Effects {
	if logger == nil {
		logger = slog.Default()
	}
	return &Effects{bus: bus, traits: traits, log: log, logger: logger}
}

// InterpretOptions carries per-call context for Interpret.
type InterpretOptions struct {
	// TimeCost, when positive, is prepended as a time advance before
	// the definition's own actions: context cost first, content second.
	TimeCost float64
}

// Interpret compiles the definition and executes it, returning the last
// navigation payload produced, or nil. It never fails: unknown or
// malformed pieces compile to no-ops.
func (e *Effects) Interpret(def any, opts InterpretOptions) any {
	var parts []action
	if opts.TimeCost > 0 {
		parts = append(parts, &timeAction{cost: opts.TimeCost})
	}
	parts = append(parts, flatten(compileEffect(def))...)

	seq := &seqAction{children: parts}
	e.logger.Debug("interpreting effect", "actions", len(seq.children))
	return seq.run(&effectContext{bus: e.bus, traits: e.traits, log: e.log})
}

// flatten splices nested sequences so a compiled definition is one flat
// action list.
func flatten(a action) []action {
	if a == nil {
		return nil
	}
	if seq, ok := a.(*seqAction); ok {
		var out []action
		for _, child := range seq.children {
			out = append(out, flatten(child)...)
		}
		return out
	}
	return []action{a}
}

// compileEffect maps a definition value onto the action variants.
func compileEffect(def any) action {
	if def == nil {
		return &seqAction{}
	}

	if list, ok := asList(def); ok {
		seq := &seqAction{}
		for _, item := range list {
			seq.children = append(seq.children, flatten(compileEffect(item))...)
		}
		return seq
	}

	if token, ok := asString(def); ok {
		return compileEffectToken(strings.TrimSpace(token))
	}

	if obj, ok := def.(map[string]any); ok {
		return compileEffectObject(obj)
	}

	return &seqAction{}
}

func compileEffectToken(token string) action {
	if token == "" {
		return &seqAction{}
	}
	head, rest, _ := strings.Cut(token, ":")
	switch head {
	case "go":
		if rest == "" {
			return &seqAction{}
		}
		first, second, _ := strings.Cut(rest, ":")
		if second == "" {
			// A lone segment names a scene of the current location;
			// the navigation cache resolves it.
			return &goAction{sceneID: first}
		}
		return &goAction{locationID: first, sceneID: second}
	case "time":
		if n, ok := parseNumber(rest); ok && n > 0 {
			return &timeAction{cost: n}
		}
		return &seqAction{}
	case "trait", "changeTrait":
		name, deltaStr, ok := strings.Cut(rest, ":")
		if !ok || name == "" {
			return &seqAction{}
		}
		if n, ok := parseNumber(deltaStr); ok {
			return &traitAction{name: name, delta: int(n)}
		}
		return &seqAction{}
	}
	return &domainEventAction{token: token}
}

func compileEffectObject(obj map[string]any) action {
	// Wrapper keys recurse transparently.
	if inner, ok := obj["effects"]; ok {
		return compileEffect(inner)
	}
	if inner, ok := obj["effect"]; ok {
		return compileEffect(inner)
	}

	if goDef, ok := obj["go"]; ok {
		switch g := goDef.(type) {
		case string:
			locationID, sceneID, _ := strings.Cut(g, ":")
			return &goAction{locationID: locationID, sceneID: sceneID}
		case map[string]any:
			return &goAction{
				locationID: stringField(g, "locationId", "location"),
				sceneID:    stringField(g, "sceneId"),
			}
		}
	}

	if traitDef, ok := obj["trait"].(map[string]any); ok {
		name := stringField(traitDef, "name")
		if delta, ok := asNumber(traitDef["delta"]); ok && name != "" {
			return &traitAction{name: name, delta: int(delta)}
		}
		return &seqAction{}
	}

	if cost, ok := asNumber(obj["time"]); ok && cost > 0 {
		return &timeAction{cost: cost}
	}

	// { locationId, sceneId } shorthand for a go.
	if locationID := stringField(obj, "locationId", "location"); locationID != "" {
		return &goAction{locationID: locationID, sceneID: stringField(obj, "sceneId")}
	}

	// A bare token object is a domain event.
	if token := stringField(obj, "token"); token != "" {
		return &domainEventAction{token: token, args: stringArgs(obj["args"])}
	}

	return &seqAction{}
}

func stringArgs(v any) []string {
	list, ok := asList(v)
	if !ok {
		if s, ok := asString(v); ok {
			return []string{s}
		}
		return nil
	}
	var out []string
	for _, item := range list {
		if s, ok := asString(item); ok {
			out = append(out, s)
		}
	}
	return out
}
