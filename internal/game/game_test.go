package game

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/jwebster45206/scene-engine/internal/config"
	"github.com/jwebster45206/scene-engine/pkg/scene"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// scriptedView feeds a queue of picks and records what is shown.
type scriptedView struct {
	picks []string

	times    []scene.TimeDTO
	scenes   []*scene.SceneDTO
	paths    [][]scene.ChoiceDTO
	messages []string
	results  []string
}

func (v *scriptedView) next() string {
	if len(v.picks) == 0 {
		return ""
	}
	pick := v.picks[0]
	v.picks = v.picks[1:]
	return pick
}

func (v *scriptedView) ShowTime(ctx context.Context, dto scene.TimeDTO) error {
	v.times = append(v.times, dto)
	return nil
}

func (v *scriptedView) ShowScene(ctx context.Context, dto *scene.SceneDTO) (string, error) {
	v.scenes = append(v.scenes, dto)
	return v.next(), nil
}

func (v *scriptedView) ShowPath(ctx context.Context, choices []scene.ChoiceDTO) (string, error) {
	v.paths = append(v.paths, choices)
	return v.next(), nil
}

func (v *scriptedView) ShowInventory(ctx context.Context, lines []string) error { return nil }

func (v *scriptedView) ShowMessage(ctx context.Context, text string) error {
	v.messages = append(v.messages, text)
	return nil
}

func (v *scriptedView) ShowChoiceResult(ctx context.Context, text string) error {
	v.results = append(v.results, text)
	return nil
}

// writeWorld lays out a two-location content tree: a market whose
// start scene holds apples and leads to a buy scene, and a shop
// reachable by road.
func writeWorld(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	files := map[string]string{
		"locations/market/info.json": `{
			"name": "The Market",
			"startSceneId": "start",
			"path": ["shop"],
			"scenes": [
				{"id": "start", "description": "Stalls crowd the square.",
				 "optionIds": ["look_around", "pocket_apple"],
				 "path": ["shop"],
				 "inventory": [{"id": "apple", "qty": 3}]},
				{"id": "buy", "description": "A trader beckons.",
				 "optionIds": ["haggle"], "path": ["shop"]}
			]
		}`,
		"locations/market/options.json": `{
			"look_around": {"text": "Look around", "effect": "go:buy", "time": 0.5},
			"pocket_apple": {"text": "Pocket an apple",
				"requirements": ["has:location:apple"],
				"effect": ["take:apple", "changeTrait:greed:1"],
				"result": "You slip an apple into your coat."},
			"haggle": {"text": "Haggle", "effect": [{"time": 1}, "met_trader"]},
			"go": {"text": "Travel", "time": 2}
		}`,
		"locations/shop/info.json": `{
			"name": "Cobbler's Shop",
			"startSceneId": "enter",
			"path": ["market"],
			"scenes": [
				{"id": "enter", "description": "Leather and wax.",
				 "optionIds": ["buy_boots"], "path": ["market"],
				 "inventory": [{"id": "boots"}]}
			]
		}`,
		"locations/shop/options.json": `{
			"buy_boots": {"text": "Buy boots",
				"requirements": ["has:location:boots"],
				"effect": ["take:boots"]},
			"go": {"text": "Travel", "time": 2}
		}`,
		"items/boots.json": `{"name": "Sturdy Boots", "speed": 2,
			"traitValues": [{"traitName": "courage", "value": 1}]}`,
	}
	for rel, body := range files {
		path := filepath.Join(dir, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			t.Fatalf("write %s: %v", rel, err)
		}
	}
	return dir
}

func testManifest() *config.WorldManifest {
	m := config.DefaultWorldManifest()
	m.Start.Location = "market"
	return m
}

func newTestGame(t *testing.T, view scene.View) *Game {
	t.Helper()
	g, err := New(Options{
		DataDir:  writeWorld(t),
		Manifest: testManifest(),
		View:     view,
		Logger:   testLogger(),
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return g
}

func TestGameStartsAtManifestLocation(t *testing.T) {
	g := newTestGame(t, &scriptedView{})

	sc := g.CurrentScene()
	if sc == nil {
		t.Fatal("no current scene")
	}
	if sc.LocationID != "market" || sc.ID != "start" {
		t.Errorf("scene = %s/%s, want market/start", sc.LocationID, sc.ID)
	}
	if g.Clock().CurrentTime() != 9 {
		t.Errorf("clock = %v, want the stock 9", g.Clock().CurrentTime())
	}
}

func TestStepShowsClockAndChoices(t *testing.T) {
	view := &scriptedView{picks: []string{"exit"}}
	g := newTestGame(t, view)

	result, err := g.RunStep(context.Background())
	if err != nil {
		t.Fatalf("RunStep failed: %v", err)
	}
	if result != scene.ChoiceExit {
		t.Errorf("result = %v, want exit", result)
	}
	if len(view.times) != 1 || view.times[0].Time != "09:00" {
		t.Errorf("times = %+v, want one 09:00 readout", view.times)
	}
	if view.times[0].Window != "day" {
		t.Errorf("window = %q, want day", view.times[0].Window)
	}
	if len(view.scenes) != 1 {
		t.Fatalf("scenes shown = %d, want 1", len(view.scenes))
	}
	if view.scenes[0].Location.Name != "The Market" {
		t.Errorf("location = %+v", view.scenes[0].Location)
	}
}

func TestEffectNavigationAndTime(t *testing.T) {
	view := &scriptedView{picks: []string{"look_around"}}
	g := newTestGame(t, view)

	if _, err := g.RunStep(context.Background()); err != nil {
		t.Fatalf("RunStep failed: %v", err)
	}

	// The scene-only go token resolves within the current location.
	ptr := g.Pointer()
	if ptr == nil || ptr.LocationID != "market" || ptr.SceneID != "buy" {
		t.Errorf("pointer = %+v, want market/buy", ptr)
	}
	// The option's declared half hour advanced the clock.
	if got := g.Clock().CurrentTime(); got != 9.5 {
		t.Errorf("clock = %v, want 9.5", got)
	}
}

func TestTakeEffectMovesItemAndTrait(t *testing.T) {
	view := &scriptedView{picks: []string{"pocket_apple"}}
	g := newTestGame(t, view)

	if _, err := g.RunStep(context.Background()); err != nil {
		t.Fatalf("RunStep failed: %v", err)
	}

	if !g.Inventory().HasItem("apple", 1) {
		t.Error("apple not carried after take")
	}
	if got, _ := g.Traits().TraitValue("greed"); got != 1 {
		t.Errorf("greed = %d, want 1", got)
	}
	if len(view.results) != 1 || view.results[0] != "You slip an apple into your coat." {
		t.Errorf("results = %v", view.results)
	}

	// A second take still finds apples; the scene seeded three.
	view.picks = []string{"pocket_apple"}
	if _, err := g.RunStep(context.Background()); err != nil {
		t.Fatalf("second RunStep failed: %v", err)
	}
	if got := g.Inventory().Count("apple"); got != 2 {
		t.Errorf("carried apples = %d, want 2", got)
	}
}

func TestTakeRequiresItemAtLocation(t *testing.T) {
	view := &scriptedView{picks: []string{"pocket_apple", "pocket_apple", "pocket_apple"}}
	g := newTestGame(t, view)

	for i := 0; i < 3; i++ {
		if _, err := g.RunStep(context.Background()); err != nil {
			t.Fatalf("RunStep failed: %v", err)
		}
	}
	if got := g.Inventory().Count("apple"); got != 3 {
		t.Fatalf("carried apples = %d, want 3", got)
	}

	// All three are gone, so the requirement now hides the option.
	view.picks = nil
	if _, err := g.RunStep(context.Background()); err != nil {
		t.Fatalf("RunStep failed: %v", err)
	}
	last := view.scenes[len(view.scenes)-1]
	for _, c := range last.Choices {
		if c.ID == "pocket_apple" {
			t.Errorf("exhausted option still offered: %+v", last.Choices)
		}
	}
}

func TestTravelToAdjacentLocation(t *testing.T) {
	view := &scriptedView{picks: []string{"go", "go:shop"}}
	g := newTestGame(t, view)

	if _, err := g.RunStep(context.Background()); err != nil {
		t.Fatalf("RunStep failed: %v", err)
	}

	ptr := g.Pointer()
	if ptr == nil || ptr.LocationID != "shop" || ptr.SceneID != "enter" {
		t.Errorf("pointer = %+v, want shop/enter", ptr)
	}
	// The base go option costs two hours at walking speed.
	if got := g.Clock().CurrentTime(); got != 11 {
		t.Errorf("clock = %v, want 11", got)
	}
}

func TestBootsSpeedHalvesTravel(t *testing.T) {
	view := &scriptedView{picks: []string{
		"go", "go:shop", // walk to the shop, 2h
		"buy_boots",     // boots double movement speed
		"go", "go:market", // ride back, 1h
	}}
	g := newTestGame(t, view)

	for i := 0; i < 3; i++ {
		if _, err := g.RunStep(context.Background()); err != nil {
			t.Fatalf("RunStep %d failed: %v", i, err)
		}
	}

	if !g.Inventory().HasItem("boots", 1) {
		t.Fatal("boots not carried")
	}
	// Boots also carry a courage bonus.
	if got, _ := g.Traits().TraitValue("courage"); got != 1 {
		t.Errorf("courage = %d, want 1", got)
	}
	// 9 + 2 (walk) + 1 (return at speed 2) = 12.
	if got := g.Clock().CurrentTime(); got != 12 {
		t.Errorf("clock = %v, want 12", got)
	}
	ptr := g.Pointer()
	if ptr == nil || ptr.LocationID != "market" {
		t.Errorf("pointer = %+v, want market", ptr)
	}
}

func TestDomainEventRecorded(t *testing.T) {
	view := &scriptedView{picks: []string{"look_around", "haggle"}}
	g := newTestGame(t, view)

	for i := 0; i < 2; i++ {
		if _, err := g.RunStep(context.Background()); err != nil {
			t.Fatalf("RunStep failed: %v", err)
		}
	}
	if !g.EventLog().Has("met_trader") {
		t.Error("met_trader not recorded")
	}
	// haggle costs a structured hour on top of look_around's half.
	if got := g.Clock().CurrentTime(); got != 10.5 {
		t.Errorf("clock = %v, want 10.5", got)
	}
}

func TestDayOverMessageShownOnce(t *testing.T) {
	view := &scriptedView{picks: []string{"exit"}}
	g := newTestGame(t, view)

	// Force the clock past the end of day.
	g.Clock().Tick(21)

	if _, err := g.RunStep(context.Background()); err != nil {
		t.Fatalf("RunStep failed: %v", err)
	}
	if len(view.messages) != 1 || view.messages[0] != "The day has ended." {
		t.Errorf("messages = %v", view.messages)
	}

	view.picks = []string{"exit"}
	if _, err := g.RunStep(context.Background()); err != nil {
		t.Fatalf("RunStep failed: %v", err)
	}
	if len(view.messages) != 1 {
		t.Errorf("day-over message repeated: %v", view.messages)
	}
}

func TestRunStopsOnExit(t *testing.T) {
	view := &scriptedView{picks: []string{"look_around", "exit"}}
	g := newTestGame(t, view)

	if err := g.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(view.scenes) != 2 {
		t.Errorf("scenes shown = %d, want 2", len(view.scenes))
	}
}

func TestSnapshotRestoreRoundTrip(t *testing.T) {
	view := &scriptedView{picks: []string{"pocket_apple", "look_around"}}
	g := newTestGame(t, view)

	for i := 0; i < 2; i++ {
		if _, err := g.RunStep(context.Background()); err != nil {
			t.Fatalf("RunStep failed: %v", err)
		}
	}

	snap := g.Snapshot()
	if snap.Pointer == nil || snap.Pointer.SceneID != "buy" {
		t.Fatalf("snapshot pointer = %+v", snap.Pointer)
	}
	if snap.Time != 9.5 {
		t.Errorf("snapshot time = %v", snap.Time)
	}
	if len(snap.History) < 2 {
		t.Errorf("snapshot history = %+v, want at least 2 entries", snap.History)
	}

	restored := newTestGame(t, &scriptedView{picks: []string{"exit"}})
	restored.Restore(snap)

	if restored.Clock().CurrentTime() != 9.5 {
		t.Errorf("restored clock = %v", restored.Clock().CurrentTime())
	}
	if got, _ := restored.Traits().TraitValue("greed"); got != 1 {
		t.Errorf("restored greed = %d", got)
	}
	if !restored.Inventory().HasItem("apple", 1) {
		t.Error("restored inventory missing apple")
	}
	ptr := restored.Pointer()
	if ptr == nil || ptr.LocationID != "market" || ptr.SceneID != "buy" {
		t.Errorf("restored pointer = %+v, want market/buy", ptr)
	}
	if got := restored.Snapshot().History; len(got) != len(snap.History) {
		t.Errorf("restored history = %+v, want %+v", got, snap.History)
	}

	if _, err := restored.RunStep(context.Background()); err != nil {
		t.Fatalf("restored RunStep failed: %v", err)
	}
}

func TestInventoryLinesGroupsDuplicates(t *testing.T) {
	g := newTestGame(t, &scriptedView{})
	g.Inventory().Add(g.items.Get("apple"))
	g.Inventory().Add(g.items.Get("apple"))
	g.Inventory().Add(g.items.Get("boots"))

	lines := (&inventoryLines{inv: g.Inventory()}).List()
	if len(lines) != 2 {
		t.Fatalf("lines = %v, want 2", lines)
	}
	if lines[0] != "apple (x2)" {
		t.Errorf("lines[0] = %q, want apple (x2)", lines[0])
	}
	if lines[1] != "Sturdy Boots" {
		t.Errorf("lines[1] = %q", lines[1])
	}
}
