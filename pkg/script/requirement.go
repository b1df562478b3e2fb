package script

import (
	"log/slog"
	"math"
	"strings"
)

// predicate is the closed variant set of the requirement language.
// Evaluation is read-only and total: every malformed or unrecognized
// token evaluates to an alwaysExpr, so unrecognized content never
// blocks a player.
type predicate interface {
	eval(svc *Requirements, env Env) bool
}

// alwaysExpr is the fail-open leaf.
type alwaysExpr struct{}

func (alwaysExpr) eval(*Requirements, Env) bool { return true }

// notExpr negates its inner predicate.
type notExpr struct {
	inner predicate
}

func (p *notExpr) eval(svc *Requirements, env Env) bool {
	return !p.inner.eval(svc, env)
}

// allExpr is the implicit AND over a requirement list.
type allExpr struct {
	items []predicate
}

func (p *allExpr) eval(svc *Requirements, env Env) bool {
	for _, item := range p.items {
		if !item.eval(svc, env) {
			return false
		}
	}
	return true
}

// hasPlayerItemExpr checks the player's inventory.
type hasPlayerItemExpr struct {
	itemID string
	qty    int
}

func (p *hasPlayerItemExpr) eval(svc *Requirements, _ Env) bool {
	if svc.inventory == nil {
		return false
	}
	return svc.inventory.HasItem(p.itemID, p.qty)
}

// hasLocationItemExpr checks the world ledger at the current location.
type hasLocationItemExpr struct {
	itemID string
}

func (p *hasLocationItemExpr) eval(svc *Requirements, env Env) bool {
	if svc.world == nil {
		return false
	}
	return svc.world.HasLocationItem(env.LocationID, p.itemID, 1)
}

// envMatchExpr compares one env field against an expected id. It backs
// the currentNpc/npc and currentScene/scene heads.
type envMatchExpr struct {
	field func(Env) string
	want  string
}

func (p *envMatchExpr) eval(_ *Requirements, env Env) bool {
	return p.field(env) == p.want
}

// timeWindowExpr matches the named day/night window.
type timeWindowExpr struct {
	window string
}

func (p *timeWindowExpr) eval(svc *Requirements, _ Env) bool {
	if p.window == "any" {
		return true
	}
	if svc.clock == nil {
		return false
	}
	return svc.clock.Window() == p.window
}

// timeRangeExpr matches an inclusive hour range.
type timeRangeExpr struct {
	from, to float64
}

func (p *timeRangeExpr) eval(svc *Requirements, _ Env) bool {
	if svc.clock == nil {
		return false
	}
	now := svc.clock.CurrentTime()
	return now >= p.from && now <= p.to
}

// eventSeenExpr checks the domain-event log.
type eventSeenExpr struct {
	token string
}

func (p *eventSeenExpr) eval(svc *Requirements, _ Env) bool {
	return svc.log != nil && svc.log.Has(p.token)
}

// traitCompareExpr compares a trait value against a threshold. A
// missing trait reads as zero.
type traitCompareExpr struct {
	name string
	op   string
	rhs  float64
}

func (p *traitCompareExpr) eval(svc *Requirements, _ Env) bool {
	value := 0
	if svc.traits != nil {
		if v, ok := svc.traits.TraitValue(p.name); ok {
			value = v
		}
	}
	lhs := float64(value)
	switch p.op {
	case ">":
		return lhs > p.rhs
	case ">=":
		return lhs >= p.rhs
	case "<":
		return lhs < p.rhs
	case "<=":
		return lhs <= p.rhs
	case "=", "==":
		return lhs == p.rhs
	case "!=":
		return lhs != p.rhs
	}
	return lhs >= p.rhs
}

// Requirements evaluates requirement definitions against read-only
// service handles. All services are optional.
type Requirements struct {
	clock     Clock
	log       EventLog
	traits    TraitService
	inventory PlayerInventory
	world     WorldItems
	logger    *slog.Logger
}

// RequirementServices bundles the handles a Requirements reads from.
type RequirementServices struct {
	Clock     Clock
	Log       EventLog
	Traits    TraitService
	Inventory PlayerInventory
	World     WorldItems
	Logger    *slog.Logger
}

// NewRequirements creates a requirement interpreter.
func NewRequirements(svc RequirementServices) *Requirements {
	logger := svc.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Requirements{
		clock:     svc.Clock,
		log:       svc.Log,
		traits:    svc.Traits,
		inventory: svc.Inventory,
		world:     svc.World,
		logger:    logger,
	}
}

// Passes compiles the definition and evaluates it. A nil definition is
// vacuously true; a list is an implicit AND; an object may carry `all`
// and `not` keys. No evaluation has side effects.
func (r *Requirements) Passes(def any, env Env) bool {
	return r.compile(def).eval(r, env)
}

func (r *Requirements) compile(def any) predicate {
	if def == nil {
		return alwaysExpr{}
	}

	if token, ok := asString(def); ok {
		return r.compileToken(strings.TrimSpace(token))
	}

	if list, ok := asList(def); ok {
		all := &allExpr{}
		for _, item := range list {
			all.items = append(all.items, r.compile(item))
		}
		return all
	}

	if obj, ok := def.(map[string]any); ok {
		all := &allExpr{}
		if inner, ok := obj["all"]; ok {
			all.items = append(all.items, r.compile(inner))
		}
		if inner, ok := obj["not"]; ok {
			all.items = append(all.items, &notExpr{inner: r.compile(inner)})
		}
		if len(all.items) > 0 {
			return all
		}
	}

	return alwaysExpr{}
}

func (r *Requirements) compileToken(token string) predicate {
	if token == "" {
		return alwaysExpr{}
	}

	if rest, ok := strings.CutPrefix(token, "not:"); ok {
		return &notExpr{inner: r.compileToken(rest)}
	}

	head, rest, _ := strings.Cut(token, ":")
	switch head {
	case "has":
		return r.compileHas(rest)
	case "currentNpc", "npc":
		return &envMatchExpr{field: func(e Env) string { return e.CurrentNPCID }, want: rest}
	case "currentScene", "scene":
		return &envMatchExpr{field: func(e Env) string { return e.SceneID }, want: rest}
	case "time":
		return r.compileTime(rest)
	case "event", "effect":
		// The log stores effect tokens; both heads read it.
		return &eventSeenExpr{token: rest}
	case "trait":
		return r.compileTrait(rest)
	}

	r.logger.Debug("unknown requirement token", "token", token)
	return alwaysExpr{}
}

func (r *Requirements) compileHas(rest string) predicate {
	scope, rest, _ := strings.Cut(rest, ":")
	switch scope {
	case "player":
		itemID, qtyStr, hasQty := strings.Cut(rest, ":")
		qty := 1
		if hasQty {
			if n, ok := parseNumber(qtyStr); ok && n >= 1 {
				qty = int(n)
			}
		}
		if itemID == "" {
			return alwaysExpr{}
		}
		return &hasPlayerItemExpr{itemID: itemID, qty: qty}
	case "location":
		if rest == "" {
			return alwaysExpr{}
		}
		return &hasLocationItemExpr{itemID: rest}
	}
	return alwaysExpr{}
}

func (r *Requirements) compileTime(rest string) predicate {
	switch rest {
	case "any", "day", "night":
		return &timeWindowExpr{window: rest}
	}
	fromStr, toStr, hasTo := strings.Cut(rest, ":")
	from, okFrom := parseNumber(fromStr)
	if !okFrom {
		return alwaysExpr{}
	}
	to := from
	if hasTo {
		n, ok := parseNumber(toStr)
		if !ok {
			return alwaysExpr{}
		}
		to = n
	}
	return &timeRangeExpr{from: from, to: to}
}

func (r *Requirements) compileTrait(rest string) predicate {
	parts := strings.Split(rest, ":")
	name := parts[0]
	if name == "" {
		return alwaysExpr{}
	}
	switch len(parts) {
	case 1:
		// Bare trait: current value at least one.
		return &traitCompareExpr{name: name, op: ">=", rhs: 1}
	case 2:
		// trait:<name>:<number> means "at least this value".
		if n, ok := parseNumber(parts[1]); ok {
			return &traitCompareExpr{name: name, op: ">=", rhs: n}
		}
		return alwaysExpr{}
	default:
		op := parts[1]
		switch op {
		case ">", ">=", "<", "<=", "=", "==", "!=":
		default:
			op = ">="
		}
		n, ok := parseNumber(parts[2])
		if !ok {
			n = math.NaN()
		}
		if math.IsNaN(n) {
			return alwaysExpr{}
		}
		return &traitCompareExpr{name: name, op: op, rhs: n}
	}
}
