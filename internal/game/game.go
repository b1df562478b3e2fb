// Package game wires a complete play session: content stores, the
// navigation cache, the clock, traits, inventory, the world ledger and
// the effect/requirement interpreters, connected through the event bus.
package game

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jwebster45206/scene-engine/internal/config"
	"github.com/jwebster45206/scene-engine/internal/storage"
	"github.com/jwebster45206/scene-engine/pkg/clock"
	"github.com/jwebster45206/scene-engine/pkg/events"
	"github.com/jwebster45206/scene-engine/pkg/inventory"
	"github.com/jwebster45206/scene-engine/pkg/nav"
	"github.com/jwebster45206/scene-engine/pkg/scene"
	"github.com/jwebster45206/scene-engine/pkg/script"
	"github.com/jwebster45206/scene-engine/pkg/state"
	"github.com/jwebster45206/scene-engine/pkg/traits"
	"github.com/jwebster45206/scene-engine/pkg/world"
)

// Domain-event token prefixes the session reacts to.
const (
	takePrefix = "take:"
	dropPrefix = "drop:"
)

// Options configures a session. View is required; everything else has
// a working default.
type Options struct {
	// DataDir holds locations/ and items/ content trees.
	DataDir  string
	Manifest *config.WorldManifest
	View     scene.View
	// Start overrides the manifest's start pointer, typically from a
	// restored save.
	Start  *nav.Pointer
	Logger *slog.Logger
}

// Game is one wired play session. It is not safe for concurrent use;
// a session runs one synchronous turn at a time.
type Game struct {
	id        uuid.UUID
	createdAt time.Time

	logger *slog.Logger
	view   scene.View

	bus      *events.Bus
	eventLog *events.Log
	clock    *clock.Clock
	traits   *traits.Set
	inv      *inventory.Inventory
	world    *world.State

	items      *storage.ItemStore
	cache      *nav.Cache
	movement   *Movement
	effects    *script.Effects
	controller *scene.Controller

	sctx        *scene.Context
	dayOver     bool
	dayNotified bool
}

// New builds a session from content on disk.
func New(opts Options) (*Game, error) {
	if opts.View == nil {
		return nil, fmt.Errorf("game requires a view")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	manifest := opts.Manifest
	if manifest == nil {
		manifest = config.DefaultWorldManifest()
	}

	g := &Game{
		id:        uuid.New(),
		createdAt: time.Now().UTC(),
		logger:    logger,
		view:      opts.View,
		sctx:      &scene.Context{},
	}

	start, end, daySettings := manifest.ClockSettings()
	g.clock = clock.New(start, end, daySettings)
	g.traits = traits.NewSet(manifest.TraitCatalog())
	g.inv = inventory.New()
	g.world = world.NewState()
	g.bus = events.NewBus(logger)
	g.eventLog = events.NewLog()

	jsonCache := storage.NewJSONFileCache(logger)
	locDir := filepath.Join(opts.DataDir, "locations")
	locations := storage.NewLocationStore(locDir, jsonCache, logger)
	options := storage.NewOptionStore(locDir, jsonCache, logger)
	npcs := storage.NewNPCStore(locDir, jsonCache, logger)
	g.items = storage.NewItemStore(filepath.Join(opts.DataDir, "items"), jsonCache, logger)

	startPtr := opts.Start
	if startPtr == nil || startPtr.LocationID == "" {
		startPtr = &nav.Pointer{
			LocationID: manifest.Start.Location,
			SceneID:    manifest.Start.Scene,
		}
	}
	g.cache = nav.NewCache(nav.CacheOptions{
		Source: locations,
		Oracle: g.clock,
		Logger: logger,
		Start:  startPtr,
	})

	g.movement = NewMovement(g.cache, g.inv)
	g.effects = script.NewEffects(g.bus, g.traits, g.eventLog, logger)
	requirements := script.NewRequirements(script.RequirementServices{
		Clock:     g.clock,
		Log:       g.eventLog,
		Traits:    g.traits,
		Inventory: g.inv,
		World:     g.world,
		Logger:    logger,
	})
	assembler := scene.NewAssembler(options, npcs, g.cache.Registry(), requirements, logger)
	g.controller = scene.NewController(scene.ControllerOptions{
		View:      opts.View,
		Assembler: assembler,
		Effects:   g.effects,
		Timer:     g.movement,
		Inventory: &inventoryLines{inv: g.inv},
		Logger:    logger,
	})

	g.addListeners()
	return g, nil
}

// addListeners connects the cross-cutting reactions: navigation
// payloads move the pointer, time costs tick the clock, take and drop
// tokens transfer items, and item trait deltas apply to the ledger.
func (g *Game) addListeners() {
	g.bus.On("go", func(payload any) {
		g.movement.Go(payload)
	})

	g.bus.On("effect", func(payload any) {
		if tc, ok := payload.(script.TimeCost); ok && tc.Time > 0 {
			g.clock.Tick(tc.Time)
		}
	})

	g.bus.OnAny(func(eventType string, payload any) {
		if itemID, ok := strings.CutPrefix(eventType, takePrefix); ok {
			g.takeItem(itemID)
			return
		}
		if itemID, ok := strings.CutPrefix(eventType, dropPrefix); ok {
			g.dropItem(itemID)
		}
	})

	g.inv.Subscribe(func(e inventory.Event) {
		for _, tv := range e.Item.TraitValues {
			delta := tv.Value
			if e.Type == inventory.EventItemRemoved {
				delta = -delta
			}
			g.traits.IncrementTrait(tv.TraitName, delta)
		}
	})

	g.clock.Subscribe(func(e clock.Event) {
		if e.DayOver {
			g.dayOver = true
		}
	})
}

// takeItem moves one item from the current location to the player.
func (g *Game) takeItem(itemID string) {
	itemID = strings.TrimSpace(itemID)
	ptr := g.cache.Pointer()
	if itemID == "" || ptr == nil {
		return
	}
	if !g.world.HasLocationItem(ptr.LocationID, itemID, 1) {
		g.logger.Debug("take ignored, item not at location", "item", itemID, "location", ptr.LocationID)
		return
	}
	g.world.RemoveLocationItem(ptr.LocationID, itemID, 1)
	g.inv.Add(g.items.Get(itemID))
}

// dropItem moves one item from the player to the current location.
func (g *Game) dropItem(itemID string) {
	itemID = strings.TrimSpace(itemID)
	ptr := g.cache.Pointer()
	if itemID == "" || ptr == nil {
		return
	}
	if !g.inv.Remove(itemID) {
		g.logger.Debug("drop ignored, item not carried", "item", itemID)
		return
	}
	g.world.AddLocationItem(ptr.LocationID, itemID, 1)
}

// RunStep runs one turn: seed the scene's world items, show the clock,
// run the controller and apply its navigation result.
func (g *Game) RunStep(ctx context.Context) (any, error) {
	sc := g.cache.CurrentScene()
	if sc == nil {
		return nil, nil
	}
	g.world.ApplySceneInventory(sc.LocationID, sc.Inventory)

	if err := g.view.ShowTime(ctx, scene.TimeDTO{
		Time:   clock.FormatTime(g.clock.CurrentTime()),
		Window: g.clock.Window(),
	}); err != nil {
		return nil, err
	}

	result, err := g.controller.Run(ctx, sc, g.sctx)
	if err != nil {
		return nil, err
	}
	g.cache.ApplyResult(result)

	if g.dayOver && !g.dayNotified {
		g.dayNotified = true
		if err := g.view.ShowMessage(ctx, "The day has ended."); err != nil {
			return result, err
		}
	}
	return result, nil
}

// Run loops turns until the player exits, the view cancels or the
// context is done.
func (g *Game) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		result, err := g.RunStep(ctx)
		if err != nil {
			return err
		}
		if result == nil {
			return nil
		}
		if s, ok := result.(string); ok && s == scene.ChoiceExit {
			return nil
		}
	}
}

// CurrentScene exposes the resolved scene for callers outside the turn
// loop.
func (g *Game) CurrentScene() *nav.Scene { return g.cache.CurrentScene() }

// Pointer returns the current navigation pointer.
func (g *Game) Pointer() *nav.Pointer { return g.cache.Pointer() }

// Clock returns the session clock.
func (g *Game) Clock() *clock.Clock { return g.clock }

// Traits returns the session trait ledger.
func (g *Game) Traits() *traits.Set { return g.traits }

// Inventory returns the player inventory.
func (g *Game) Inventory() *inventory.Inventory { return g.inv }

// EventLog returns the domain-event log.
func (g *Game) EventLog() *events.Log { return g.eventLog }

// Snapshot captures the session as a persistable game state. Taken
// between turns only.
func (g *Game) Snapshot() *state.GameState {
	return &state.GameState{
		ID:        g.id,
		Pointer:   g.cache.Pointer(),
		History:   g.cache.History(),
		Time:      g.clock.CurrentTime(),
		Traits:    g.traits.Snapshot(),
		Events:    g.eventLog.Tokens(),
		World:     g.world.Snapshot(),
		Inventory: g.inv.All(),
		CreatedAt: g.createdAt,
		UpdatedAt: time.Now().UTC(),
	}
}

// Restore loads a saved game state into the session.
func (g *Game) Restore(gs *state.GameState) {
	if gs == nil {
		return
	}
	g.id = gs.ID
	if !gs.CreatedAt.IsZero() {
		g.createdAt = gs.CreatedAt
	}
	if gs.Time > 0 {
		g.clock.SetTime(gs.Time)
	}
	g.traits.Restore(gs.Traits)
	g.eventLog.Load(gs.Events)
	g.world.Restore(gs.World)
	g.inv.Restore(gs.Inventory)
	g.movement.Recompute()
	if gs.Pointer != nil && gs.Pointer.LocationID != "" {
		g.cache.SetCurrent(gs.Pointer.LocationID, gs.Pointer.SceneID)
	}
	g.cache.LoadHistory(gs.History)
}

// inventoryLines renders the player inventory for display, grouping
// repeated items into counts.
type inventoryLines struct {
	inv *inventory.Inventory
}

func (l *inventoryLines) List() []string {
	var lines []string
	seen := make(map[string]bool)
	for _, it := range l.inv.All() {
		if seen[it.ID] {
			continue
		}
		seen[it.ID] = true
		line := it.DisplayName()
		if n := l.inv.Count(it.ID); n > 1 {
			line = fmt.Sprintf("%s (x%d)", line, n)
		}
		lines = append(lines, line)
	}
	return lines
}
