package nav

import (
	"log/slog"
	"strings"

	"github.com/jwebster45206/scene-engine/pkg/content"
)

// Cache owns the navigation pointer and its history. It resolves the
// pointer to a concrete scene through the location source, gates the
// resolution on game time, and preloads every location reachable from
// the resolved scene so neighbor lookups never block later.
type Cache struct {
	src      LocationSource
	registry *Registry
	oracle   Oracle
	logger   *slog.Logger

	ptr     *Pointer
	history []Pointer
}

// CacheOptions configures a Cache. Registry defaults to a fresh one;
// Oracle may be nil, which disables time gating.
type CacheOptions struct {
	Source   LocationSource
	Registry *Registry
	Oracle   Oracle
	Logger   *slog.Logger
	Start    *Pointer
}

// NewCache creates a cache. When Start is set, the pointer is resolved
// immediately.
func NewCache(opts CacheOptions) *Cache {
	c := &Cache{
		src:      opts.Source,
		registry: opts.Registry,
		oracle:   opts.Oracle,
		logger:   opts.Logger,
	}
	if c.registry == nil {
		c.registry = NewRegistry()
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	if opts.Start != nil && opts.Start.LocationID != "" {
		c.SetCurrent(opts.Start.LocationID, opts.Start.SceneID)
	}
	return c
}

// Registry exposes the flyweight store for choice builders.
func (c *Cache) Registry() *Registry { return c.registry }

// Pointer returns a copy of the current pointer, or nil before the
// first resolution.
func (c *Cache) Pointer() *Pointer {
	if c.ptr == nil {
		return nil
	}
	p := *c.ptr
	return &p
}

// History returns a copy of the pointer history. Mutating it does not
// affect the cache.
func (c *Cache) History() []Pointer {
	out := make([]Pointer, len(c.history))
	copy(out, c.history)
	return out
}

// LoadHistory replaces the pointer history, keeping the current pointer
// untouched. Used when restoring a saved session.
func (c *Cache) LoadHistory(h []Pointer) {
	c.history = make([]Pointer, len(h))
	copy(c.history, h)
	if n := len(c.history); c.ptr != nil && (n == 0 || c.history[n-1] != *c.ptr) {
		c.history = append(c.history, *c.ptr)
	}
}

// ensureLocation loads and registers a location. Malformed or missing
// content degrades to an empty catalog rather than failing the turn.
func (c *Cache) ensureLocation(locationID string) *content.Location {
	info, err := c.src.Get(locationID)
	if err != nil || info == nil {
		if err != nil {
			c.logger.Warn("location lookup failed", "location", locationID, "error", err)
		}
		info = &content.Location{ID: locationID}
	}
	c.registry.Ensure(locationID, info.DisplayName(), info.Background)
	return info
}

// SetCurrent registers the location, resolves the target scene and
// records the move. Resolution order: the requested scene if it exists,
// else the location's declared start scene, else its first scene, else
// the literal request. With an oracle attached, a scene disallowed at
// the current time is swapped for the first allowed scene before the
// pointer is recorded.
func (c *Cache) SetCurrent(locationID, sceneID string) Pointer {
	if locationID == "" {
		// Nothing to navigate to; keep the current position.
		if c.ptr != nil {
			return *c.ptr
		}
		return Pointer{}
	}

	info := c.ensureLocation(locationID)
	resolved := resolveSceneID(info, sceneID)

	if c.oracle != nil && len(info.Scenes) > 0 {
		if picked := info.FindScene(resolved); !sceneAllowed(picked, c.oracle) {
			if alt := firstAllowed(info, c.oracle); alt != nil {
				resolved = alt.ID
			}
		}
	}

	c.preloadReachable(info, resolved)

	next := Pointer{LocationID: locationID, SceneID: resolved}
	c.ptr = &next
	if n := len(c.history); n == 0 || c.history[n-1] != next {
		c.history = append(c.history, next)
	}
	return next
}

func resolveSceneID(info *content.Location, sceneID string) string {
	if sceneID != "" && info.FindScene(sceneID) != nil {
		return sceneID
	}
	if info.StartSceneID != "" && info.FindScene(info.StartSceneID) != nil {
		return info.StartSceneID
	}
	if len(info.Scenes) > 0 {
		return info.Scenes[0].ID
	}
	return sceneID
}

func firstAllowed(info *content.Location, oracle Oracle) *content.Scene {
	for i := range info.Scenes {
		if sceneAllowed(&info.Scenes[i], oracle) {
			return &info.Scenes[i]
		}
	}
	return nil
}

// preloadReachable registers every destination on the resolved scene's
// outbound path.
func (c *Cache) preloadReachable(info *content.Location, sceneID string) {
	path := info.Path
	if sc := info.FindScene(sceneID); sc != nil && len(sc.Path) > 0 {
		path = sc.Path
	}
	for _, dst := range path {
		if dst != "" && !c.registry.Has(dst) {
			c.ensureLocation(dst)
		}
	}
}

// CurrentScene returns the scene view for the pointer, or nil before
// the first resolution. The time gate is re-checked on every call: if
// the clock has since moved past the resolved scene's window, the
// pointer silently swaps to the first allowed scene without touching
// history.
func (c *Cache) CurrentScene() *Scene {
	if c.ptr == nil {
		return nil
	}
	locationID := c.ptr.LocationID
	sceneID := c.ptr.SceneID

	info := c.ensureLocation(locationID)
	if c.oracle != nil && len(info.Scenes) > 0 {
		if picked := info.FindScene(sceneID); !sceneAllowed(picked, c.oracle) {
			if alt := firstAllowed(info, c.oracle); alt != nil {
				sceneID = alt.ID
				c.ptr = &Pointer{LocationID: locationID, SceneID: sceneID}
			}
		}
	}

	view := &Scene{ID: sceneID, LocationID: locationID, Path: info.Path}
	if sc := info.FindScene(sceneID); sc != nil {
		view.Description = sc.Description
		view.OptionIDs = sc.OptionIDs
		view.NPCIDs = sc.NPCIDs
		view.Inventory = sc.Inventory
		if len(sc.Path) > 0 {
			view.Path = sc.Path
		}
	}
	return view
}

// ApplyResult advances the pointer from a turn result. Accepted forms:
// a Pointer (or *Pointer) naming the destination, or the string token
// "go:<locationId>", which defers to that location's start scene.
// Anything else leaves the pointer unchanged.
func (c *Cache) ApplyResult(result any) *Pointer {
	if c.ptr == nil || result == nil {
		return c.Pointer()
	}
	switch r := result.(type) {
	case Pointer:
		c.applyPointer(r)
	case *Pointer:
		if r != nil {
			c.applyPointer(*r)
		}
	case string:
		if rest, ok := strings.CutPrefix(r, "go:"); ok && rest != "" {
			c.applyGoToken(rest)
		}
	}
	return c.Pointer()
}

// applyGoToken resolves the body of a "go:" token. Two segments name a
// location and scene. A single segment is tried as a scene of the
// current location first, then as a location id.
func (c *Cache) applyGoToken(rest string) {
	first, second, _ := strings.Cut(rest, ":")
	if second != "" {
		c.SetCurrent(first, second)
		return
	}
	if info := c.ensureLocation(c.ptr.LocationID); info.FindScene(first) != nil {
		c.SetCurrent(c.ptr.LocationID, first)
		return
	}
	c.SetCurrent(first, "")
}

func (c *Cache) applyPointer(p Pointer) {
	switch {
	case p.SceneID != "":
		locationID := p.LocationID
		if locationID == "" {
			locationID = c.ptr.LocationID
		}
		c.SetCurrent(locationID, p.SceneID)
	case p.LocationID != "" && p.LocationID != c.ptr.LocationID:
		c.SetCurrent(p.LocationID, "")
	}
}
