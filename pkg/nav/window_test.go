package nav

import (
	"testing"

	"github.com/jwebster45206/scene-engine/pkg/content"
)

func TestSceneAllowed(t *testing.T) {
	day := &fakeOracle{window: "day", time: 10}
	night := &fakeOracle{window: "night", time: 22}

	tests := []struct {
		name   string
		scene  *content.Scene
		oracle Oracle
		want   bool
	}{
		{"nil scene", nil, day, true},
		{"no constraints", &content.Scene{ID: "s"}, day, true},
		{"window any", &content.Scene{Window: "any"}, night, true},
		{"window day at day", &content.Scene{Window: "day"}, day, true},
		{"window day at night", &content.Scene{Window: "day"}, night, false},
		{"window night at night", &content.Scene{Window: "night"}, night, true},
		{"window case-insensitive", &content.Scene{Window: "Day"}, day, true},
		{"unknown window fails open", &content.Scene{Window: "dusk"}, night, true},
		{"missing bound fails open", &content.Scene{From: ptrFloat(9)}, night, true},
		{"range inside", &content.Scene{From: ptrFloat(9), To: ptrFloat(17)}, day, true},
		{"range boundary start", &content.Scene{From: ptrFloat(10), To: ptrFloat(17)}, day, true},
		{"range boundary end excluded", &content.Scene{From: ptrFloat(5), To: ptrFloat(10)}, day, false},
		{"range outside", &content.Scene{From: ptrFloat(11), To: ptrFloat(17)}, day, false},
		{"exact hour match", &content.Scene{From: ptrFloat(10), To: ptrFloat(10)}, day, true},
		{"exact hour miss", &content.Scene{From: ptrFloat(9), To: ptrFloat(9)}, day, false},
		{"wrapped range late side", &content.Scene{From: ptrFloat(21), To: ptrFloat(5)}, night, true},
		{"wrapped range early side", &content.Scene{From: ptrFloat(21), To: ptrFloat(5)}, &fakeOracle{time: 3}, true},
		{"wrapped range outside", &content.Scene{From: ptrFloat(21), To: ptrFloat(5)}, day, false},
		{"hours normalize past 24", &content.Scene{From: ptrFloat(33), To: ptrFloat(41)}, day, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sceneAllowed(tt.scene, tt.oracle); got != tt.want {
				t.Errorf("sceneAllowed = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSceneAllowedNilOracle(t *testing.T) {
	sc := &content.Scene{Window: "night"}
	if !sceneAllowed(sc, nil) {
		t.Error("nil oracle should disable gating")
	}
}
