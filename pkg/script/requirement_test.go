package script

import (
	"testing"

	"github.com/jwebster45206/scene-engine/pkg/clock"
	"github.com/jwebster45206/scene-engine/pkg/events"
	"github.com/jwebster45206/scene-engine/pkg/inventory"
	"github.com/jwebster45206/scene-engine/pkg/traits"
	"github.com/jwebster45206/scene-engine/pkg/world"
)

type reqFixture struct {
	req    *Requirements
	clock  *clock.Clock
	log    *events.Log
	traits *traits.Set
	inv    *inventory.Inventory
	world  *world.State
}

func newReqFixture() *reqFixture {
	f := &reqFixture{
		clock:  clock.New(9, 5, clock.DefaultDaySettings()),
		log:    events.NewLog(),
		traits: traits.NewSet(traits.DefaultCatalog()),
		inv:    inventory.New(),
		world:  world.NewState(),
	}
	f.req = NewRequirements(RequirementServices{
		Clock:     f.clock,
		Log:       f.log,
		Traits:    f.traits,
		Inventory: f.inv,
		World:     f.world,
		Logger:    testLogger(),
	})
	return f
}

func TestPassesFailOpen(t *testing.T) {
	f := newReqFixture()

	tests := []struct {
		name string
		def  any
	}{
		{"nil definition", nil},
		{"empty string", ""},
		{"unknown token", "unknown:token"},
		{"empty list", []any{}},
		{"empty object", map[string]any{}},
		{"numeric definition", 42},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !f.req.Passes(tt.def, Env{}) {
				t.Errorf("Passes(%#v) = false, want fail-open true", tt.def)
			}
		})
	}
}

func TestTraitComparisons(t *testing.T) {
	f := newReqFixture()
	f.traits.IncrementTrait("greed", 5)

	tests := []struct {
		def  string
		want bool
	}{
		{"trait:greed:>=:5", true},
		{"trait:greed:>=:6", false},
		{"trait:greed:>:4", true},
		{"trait:greed:<:5", false},
		{"trait:greed:<=:5", true},
		{"trait:greed:=:5", true},
		{"trait:greed:!=:5", false},
		{"trait:greed:5", true},
		{"trait:greed:6", false},
		{"trait:greed", true},
		{"trait:kindness", false},  // value zero
		{"trait:luck:>=:1", false}, // unknown trait reads as zero
	}
	for _, tt := range tests {
		if got := f.req.Passes(tt.def, Env{}); got != tt.want {
			t.Errorf("Passes(%q) = %v, want %v", tt.def, got, tt.want)
		}
	}
}

func TestEnvMatches(t *testing.T) {
	f := newReqFixture()
	env := Env{LocationID: "market", SceneID: "start", CurrentNPCID: "bob"}

	tests := []struct {
		def  string
		want bool
	}{
		{"currentNpc:bob", true},
		{"npc:bob", true},
		{"currentNpc:mira", false},
		{"not:currentNpc:bob", false},
		{"not:currentNpc:mira", true},
		{"currentScene:start", true},
		{"scene:buy", false},
	}
	for _, tt := range tests {
		if got := f.req.Passes(tt.def, env); got != tt.want {
			t.Errorf("Passes(%q) = %v, want %v", tt.def, got, tt.want)
		}
	}
}

func TestHasRequirements(t *testing.T) {
	f := newReqFixture()
	f.inv.Add(inventory.Item{ID: "apple"})
	f.inv.Add(inventory.Item{ID: "apple"})
	f.world.AddLocationItem("market", "lantern", 1)

	env := Env{LocationID: "market"}
	tests := []struct {
		def  string
		want bool
	}{
		{"has:player:apple", true},
		{"has:player:apple:2", true},
		{"has:player:apple:3", false},
		{"has:player:rope", false},
		{"has:location:lantern", true},
		{"has:location:rope", false},
		{"has:wagon:apple", true}, // unknown scope fails open
	}
	for _, tt := range tests {
		if got := f.req.Passes(tt.def, env); got != tt.want {
			t.Errorf("Passes(%q) = %v, want %v", tt.def, got, tt.want)
		}
	}
}

func TestTimeRequirements(t *testing.T) {
	f := newReqFixture() // clock at 9:00, day window

	tests := []struct {
		def  string
		want bool
	}{
		{"time:any", true},
		{"time:day", true},
		{"time:night", false},
		{"time:8:10", true},
		{"time:9:9", true}, // inclusive single hour
		{"time:10:12", false},
		{"time:bogus:10", true}, // malformed fails open
	}
	for _, tt := range tests {
		if got := f.req.Passes(tt.def, Env{}); got != tt.want {
			t.Errorf("Passes(%q) = %v, want %v", tt.def, got, tt.want)
		}
	}
}

func TestTimeWithoutClock(t *testing.T) {
	req := NewRequirements(RequirementServices{Logger: testLogger()})

	if !req.Passes("time:any", Env{}) {
		t.Error("time:any must pass without a clock")
	}
	if req.Passes("time:day", Env{}) {
		t.Error("window check must fail without a clock")
	}
	if req.Passes("time:9:17", Env{}) {
		t.Error("range check must fail without a clock")
	}
}

func TestEventRequirements(t *testing.T) {
	f := newReqFixture()
	f.log.Add("met_trader")

	if !f.req.Passes("event:met_trader", Env{}) {
		t.Error("event head missed a logged token")
	}
	if !f.req.Passes("effect:met_trader", Env{}) {
		t.Error("effect head missed a logged token")
	}
	if f.req.Passes("event:alarm_raised", Env{}) {
		t.Error("unseen event passed")
	}
	if !f.req.Passes("not:event:alarm_raised", Env{}) {
		t.Error("negated unseen event failed")
	}
}

func TestListIsImplicitAnd(t *testing.T) {
	f := newReqFixture()
	f.log.Add("met_trader")
	f.inv.Add(inventory.Item{ID: "apple"})

	def := []any{"event:met_trader", "has:player:apple"}
	if !f.req.Passes(def, Env{}) {
		t.Error("all-true list failed")
	}

	def = []any{"event:met_trader", "has:player:rope"}
	if f.req.Passes(def, Env{}) {
		t.Error("list with one false item passed")
	}
}

func TestObjectAllAndNot(t *testing.T) {
	f := newReqFixture()
	f.log.Add("met_trader")

	def := map[string]any{
		"all": []any{"event:met_trader"},
		"not": "event:alarm_raised",
	}
	if !f.req.Passes(def, Env{}) {
		t.Error("all+not object failed")
	}

	f.log.Add("alarm_raised")
	if f.req.Passes(def, Env{}) {
		t.Error("not clause ignored a logged token")
	}
}

func TestPassesHasNoSideEffects(t *testing.T) {
	f := newReqFixture()
	f.req.Passes("event:met_trader", Env{})

	if f.log.Has("met_trader") {
		t.Error("requirement evaluation wrote to the event log")
	}
}
