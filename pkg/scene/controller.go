package scene

import (
	"context"
	"log/slog"
	"strings"

	"github.com/jwebster45206/scene-engine/pkg/content"
	"github.com/jwebster45206/scene-engine/pkg/nav"
	"github.com/jwebster45206/scene-engine/pkg/script"
)

// TravelKind marks time costs that movement-speed modifiers may scale.
const TravelKind = "travel"

// EffectRunner dispatches a chosen option's effect program.
type EffectRunner interface {
	Interpret(def any, opts script.InterpretOptions) any
}

// TravelTimer scales a declared time cost by kind. The session's
// movement manager implements it; a nil timer leaves costs unscaled.
type TravelTimer interface {
	ComputeTime(normal float64, kind string) float64
}

// InventoryLister snapshots the player's inventory for display.
type InventoryLister interface {
	List() []string
}

// Controller runs one turn: it presents assembled choices, branches on
// the picked id, and dispatches effects. A Run ends with the effect's
// navigation result, a raw picked id, or nil when the view cancels.
type Controller struct {
	view      View
	assembler *Assembler
	effects   EffectRunner
	timer     TravelTimer
	inv       InventoryLister
	logger    *slog.Logger
}

// ControllerOptions configures a Controller. View, Assembler and
// Effects are required; Timer and Inventory are optional.
type ControllerOptions struct {
	View      View
	Assembler *Assembler
	Effects   EffectRunner
	Timer     TravelTimer
	Inventory InventoryLister
	Logger    *slog.Logger
}

// NewController creates a turn controller.
func NewController(opts ControllerOptions) *Controller {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		view:      opts.View,
		assembler: opts.Assembler,
		effects:   opts.Effects,
		timer:     opts.Timer,
		inv:       opts.Inventory,
		logger:    logger,
	}
}

// Run loops until the turn produces a terminal result. Talk and
// inventory picks loop within the same turn; travel and effect picks
// terminate it. A nil result means the view cancelled.
func (c *Controller) Run(ctx context.Context, sc *nav.Scene, sctx *Context) (any, error) {
	if sc == nil {
		return nil, nil
	}
	if sctx == nil {
		sctx = &Context{}
	}

	for {
		choices := c.assembler.BuildChoices(sc, sctx)
		dto := c.assembler.BuildSceneDTO(sc, sctx, choices)

		picked, err := c.view.ShowScene(ctx, dto)
		if err != nil {
			return nil, err
		}
		if picked == "" {
			return nil, nil
		}
		c.logger.Debug("option picked", "scene", sc.ID, "picked", picked)

		if npcID, ok := strings.CutPrefix(picked, talkPrefix); ok && npcID != "" {
			sctx.CurrentNPCID = npcID
			continue
		}

		if picked == ChoiceInventory {
			if err := c.showInventory(ctx); err != nil {
				return nil, err
			}
			continue
		}

		if picked == ChoiceTravel {
			result, done, err := c.runTravel(ctx, sc, sctx, findChoice(choices, picked))
			if err != nil {
				return nil, err
			}
			if done {
				return result, nil
			}
			continue
		}

		if choice := findChoice(choices, picked); choice != nil && choice.Option != nil {
			return c.runOption(ctx, choice)
		}

		// Synthetic or unmatched pick ends the turn as a raw id.
		return picked, nil
	}
}

func (c *Controller) showInventory(ctx context.Context) error {
	var lines []string
	if c.inv != nil {
		lines = c.inv.List()
	}
	return c.view.ShowInventory(ctx, lines)
}

// runTravel opens the travel sub-menu. Picking back (or nothing)
// returns to the main loop; picking a destination dispatches its
// declared effect, or a synthesized go token, with travel-scaled time.
func (c *Controller) runTravel(ctx context.Context, sc *nav.Scene, sctx *Context, base *Choice) (any, bool, error) {
	var baseOption *content.Option
	if base != nil && base.Option != nil {
		baseOption = base.Option
	}

	paths := c.assembler.BuildPathChoices(sc, sctx, baseOption)
	dtos := make([]ChoiceDTO, 0, len(paths)+1)
	for _, p := range paths {
		dtos = append(dtos, ChoiceDTO{ID: p.ID, Name: p.Name})
	}
	dtos = append(dtos, ChoiceDTO{ID: ChoiceBack, Name: "Back"})

	picked, err := c.view.ShowPath(ctx, dtos)
	if err != nil {
		return nil, false, err
	}
	if picked == "" || picked == ChoiceBack {
		return nil, false, nil
	}

	choice := findChoice(paths, picked)
	if choice == nil {
		return nil, false, nil
	}

	def := any(choice.ID)
	if choice.Option != nil && choice.Option.EffectDef() != nil {
		def = choice.Option.EffectDef()
	}

	result := c.effects.Interpret(def, script.InterpretOptions{
		TimeCost: c.computeTime(choice.Time, TravelKind),
	})
	if result == nil {
		// The interpreter produced nothing; fall back to a plain
		// location move.
		dst, _ := strings.CutPrefix(choice.ID, goPrefix)
		result = nav.Pointer{LocationID: dst}
	}
	return result, true, nil
}

// runOption dispatches a regular option: inline narrative first, then
// its effect (or the raw id when no effect is declared).
func (c *Controller) runOption(ctx context.Context, choice *Choice) (any, error) {
	opt := choice.Option
	if opt.Result != "" {
		if err := c.view.ShowChoiceResult(ctx, opt.Result); err != nil {
			return nil, err
		}
	}

	def := opt.EffectDef()
	if def == nil {
		def = choice.ID
	}

	result := c.effects.Interpret(def, script.InterpretOptions{
		TimeCost: c.computeTime(opt.Time, ""),
	})
	if result != nil {
		return result, nil
	}
	return choice.ID, nil
}

func (c *Controller) computeTime(normal float64, kind string) float64 {
	if normal <= 0 {
		return 0
	}
	if c.timer == nil {
		return normal
	}
	return c.timer.ComputeTime(normal, kind)
}

func findChoice(choices []Choice, id string) *Choice {
	for i := range choices {
		if choices[i].ID == id {
			return &choices[i]
		}
	}
	return nil
}
