package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for rel, body := range files {
		path := filepath.Join(dir, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	}
	return dir
}

func validTree(t *testing.T) string {
	return writeTree(t, map[string]string{
		"locations/market/info.json": `{
			"name": "The Market",
			"startSceneId": "start",
			"path": ["shop"],
			"scenes": [
				{"id": "start", "optionIds": ["look_around"], "npcIds": ["mira"],
				 "path": ["shop"]},
				{"id": "lantern_rounds", "window": "night"},
				{"id": "dawn_market", "from": 5, "to": 9}
			]
		}`,
		"locations/market/options.json": `{
			"look_around": {"text": "Look around", "time": 0.5}
		}`,
		"locations/market/npc.json": `[
			{"id": "mira", "name": "Mira", "dialogue": [{"id": "hi", "text": "Hello"}]}
		]`,
		"locations/shop/info.json": `{
			"name": "Shop",
			"startSceneId": "enter",
			"scenes": [{"id": "enter", "path": ["market"]}]
		}`,
	})
}

func TestValidatorAcceptsValidTree(t *testing.T) {
	v := &ContentValidator{}
	require.NoError(t, v.validateDir(validTree(t)))
	assert.Empty(t, v.errors)
}

func TestValidatorMissingLocationsDir(t *testing.T) {
	v := &ContentValidator{}
	assert.Error(t, v.validateDir(t.TempDir()))
}

func TestValidatorReportsBrokenReferences(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"locations/market/info.json": `{
			"startSceneId": "missing",
			"path": ["nowhere"],
			"scenes": [
				{"id": "start", "optionIds": ["undefined_option"],
				 "npcIds": ["ghost"], "path": ["void"]}
			]
		}`,
		"locations/market/options.json": `{}`,
	})

	v := &ContentValidator{}
	require.NoError(t, v.validateDir(dir))

	joined := strings.Join(v.errors, "\n")
	assert.Contains(t, joined, `startSceneId "missing"`)
	assert.Contains(t, joined, `path destination "nowhere"`)
	assert.Contains(t, joined, `option "undefined_option"`)
	assert.Contains(t, joined, `npc "ghost"`)
	assert.Contains(t, joined, `path destination "void"`)
}

func TestValidatorSchemaViolations(t *testing.T) {
	tests := []struct {
		name string
		info string
	}{
		{"missing scene id", `{"scenes": [{"title": "anonymous"}]}`},
		{"bad window", `{"scenes": [{"id": "a", "window": "dusk"}]}`},
		{"invalid json", `{not json`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := writeTree(t, map[string]string{
				"locations/market/info.json": tt.info,
			})
			v := &ContentValidator{}
			require.NoError(t, v.validateDir(dir))
			assert.NotEmpty(t, v.errors)
		})
	}
}

func TestValidatorHourRanges(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"locations/market/info.json": `{
			"scenes": [
				{"id": "a", "from": -1, "to": 50},
				{"id": "b", "from": 3}
			]
		}`,
	})

	v := &ContentValidator{}
	require.NoError(t, v.validateDir(dir))
	require.Len(t, v.errors, 3)

	joined := strings.Join(v.errors, "\n")
	assert.Contains(t, joined, "from hour -1 out of range")
	assert.Contains(t, joined, "to hour 50 out of range")
	assert.Contains(t, joined, "from and to must be set together")
}

func TestValidatorLocationIDPattern(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"locations/Bad-Name/info.json": `{"scenes": [{"id": "a"}]}`,
	})

	v := &ContentValidator{}
	require.NoError(t, v.validateDir(dir))
	require.Len(t, v.errors, 1)
	assert.Contains(t, v.errors[0], "must be lowercase")
}

func TestValidatorTokenChecks(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"locations/market/info.json": `{"scenes": [{"id": "start"}]}`,
		"locations/market/options.json": `{
			"ok": {"effect": ["go:shop", "changeTrait:greed:1", "take:apple", "met_trader"],
			       "requirements": ["has:player:apple", "time:day", "not:event:met_trader"]},
			"bad_go": {"effect": "go:"},
			"bad_trait": {"effect": "changeTrait:greed:lots"},
			"bad_time": {"effect": "time:soon"},
			"bad_take": {"effect": "take: "},
			"bad_scope": {"requirements": ["has:backpack:apple"]},
			"bad_range": {"requirements": ["time:9:late"]}
		}`,
	})

	v := &ContentValidator{}
	require.NoError(t, v.validateDir(dir))

	joined := strings.Join(v.errors, "\n")
	assert.Contains(t, joined, `malformed go token "go:"`)
	assert.Contains(t, joined, "non-numeric trait delta")
	assert.Contains(t, joined, "non-numeric time")
	assert.Contains(t, joined, "take token names no item")
	assert.Contains(t, joined, "unknown has scope")
	assert.Contains(t, joined, `malformed time requirement "time:9:late"`)
	// The well-formed option contributes no errors.
	assert.NotContains(t, joined, `options.json ok:`)
	require.Len(t, v.errors, 6)
}

func TestValidIDPattern(t *testing.T) {
	valid := []string{"market", "old-mill", "cellar_2", "a"}
	invalid := []string{"", "Market", "-leading", "_leading", "with space"}

	for _, id := range valid {
		assert.True(t, validIDPattern.MatchString(id), id)
	}
	for _, id := range invalid {
		assert.False(t, validIDPattern.MatchString(id), id)
	}
}
