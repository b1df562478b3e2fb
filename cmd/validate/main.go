package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/jwebster45206/scene-engine/pkg/content"
)

const infoSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "properties": {
    "id": {"type": "string"},
    "name": {"type": "string"},
    "background": {"type": "string"},
    "startSceneId": {"type": "string"},
    "path": {"type": "array", "items": {"type": "string"}},
    "scenes": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "id": {"type": "string", "minLength": 1},
          "title": {"type": "string"},
          "description": {},
          "optionIds": {"type": "array", "items": {"type": "string"}},
          "npcIds": {"type": "array", "items": {"type": "string"}},
          "path": {"type": "array", "items": {"type": "string"}},
          "window": {"type": "string", "enum": ["any", "day", "night"]},
          "from": {"type": "number"},
          "to": {"type": "number"},
          "inventory": {"type": "array"}
        },
        "required": ["id"]
      }
    }
  }
}`

const optionsSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "additionalProperties": {
    "type": "object",
    "properties": {
      "name": {"type": "string"},
      "text": {"type": "string"},
      "time": {"type": "number", "minimum": 0},
      "result": {"type": "string"}
    }
  }
}`

const npcSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "array",
  "items": {
    "type": "object",
    "properties": {
      "id": {"type": "string"},
      "name": {"type": "string"},
      "description": {"type": "string"},
      "options": {"type": "array", "items": {"type": "string"}},
      "dialogue": {"type": "array"},
      "startDialogueId": {"type": "string"}
    },
    "anyOf": [
      {"required": ["id"]},
      {"required": ["name"]}
    ]
  }
}`

var validIDPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <data-dir>\n", os.Args[0])
		os.Exit(1)
	}

	v := &ContentValidator{}
	if err := v.validateDir(os.Args[1]); err != nil {
		fmt.Fprintf(os.Stderr, "Validation failed: %v\n", err)
		os.Exit(1)
	}
	if len(v.errors) > 0 {
		fmt.Fprintf(os.Stderr, "Validation failed with %d error(s):\n", len(v.errors))
		for _, e := range v.errors {
			fmt.Fprintf(os.Stderr, "  - %s\n", e)
		}
		os.Exit(1)
	}
	fmt.Println("Content is valid!")
}

// ContentValidator accumulates every problem found so a single run
// reports the full picture.
type ContentValidator struct {
	errors []string
	locDir string

	info    *jsonschema.Schema
	options *jsonschema.Schema
	npc     *jsonschema.Schema

	locations map[string]*content.Location
	optionIDs map[string]map[string]bool
	npcIDs    map[string]map[string]bool
}

func (v *ContentValidator) addError(format string, args ...any) {
	v.errors = append(v.errors, fmt.Sprintf(format, args...))
}

func compileSchema(name, src string) (*jsonschema.Schema, error) {
	c := jsonschema.NewCompiler()
	if err := c.AddResource(name, strings.NewReader(src)); err != nil {
		return nil, fmt.Errorf("failed to add schema %s: %w", name, err)
	}
	s, err := c.Compile(name)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema %s: %w", name, err)
	}
	return s, nil
}

func (v *ContentValidator) validateDir(dataDir string) error {
	var err error
	if v.info, err = compileSchema("info.schema.json", infoSchema); err != nil {
		return err
	}
	if v.options, err = compileSchema("options.schema.json", optionsSchema); err != nil {
		return err
	}
	if v.npc, err = compileSchema("npc.schema.json", npcSchema); err != nil {
		return err
	}

	v.locDir = filepath.Join(dataDir, "locations")
	entries, err := os.ReadDir(v.locDir)
	if err != nil {
		return fmt.Errorf("failed to read locations directory: %w", err)
	}

	v.locations = make(map[string]*content.Location)
	v.optionIDs = make(map[string]map[string]bool)
	v.npcIDs = make(map[string]map[string]bool)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		v.validateLocation(entry.Name())
	}

	v.checkReferences()
	return nil
}

func (v *ContentValidator) validateLocation(id string) {
	fmt.Printf("Validating %s...\n", id)

	if !validIDPattern.MatchString(id) {
		v.addError("%s: location id must be lowercase (letters, digits, - or _)", id)
	}

	dir := filepath.Join(v.locDir, id)
	if raw := v.validateFile(filepath.Join(dir, "info.json"), v.info, true); raw != nil {
		var loc content.Location
		if err := json.Unmarshal(raw, &loc); err != nil {
			v.addError("%s/info.json: %v", id, err)
		} else {
			if loc.ID == "" {
				loc.ID = id
			}
			v.locations[id] = &loc
		}
	}

	if raw := v.validateFile(filepath.Join(dir, "options.json"), v.options, false); raw != nil {
		var opts map[string]content.Option
		if err := json.Unmarshal(raw, &opts); err == nil {
			ids := make(map[string]bool, len(opts))
			for key, opt := range opts {
				ids[key] = true
				v.checkEffectTokens(id, key, opt.EffectDef())
				v.checkRequirementTokens(id, key, opt.Requirements)
			}
			v.optionIDs[id] = ids
		}
	}

	if raw := v.validateFile(filepath.Join(dir, "npc.json"), v.npc, false); raw != nil {
		var npcs []content.NPC
		if err := json.Unmarshal(raw, &npcs); err == nil {
			ids := make(map[string]bool, len(npcs))
			for _, npc := range npcs {
				if npc.ID != "" {
					ids[npc.ID] = true
				} else if npc.Name != "" {
					ids[npc.Name] = true
				}
			}
			v.npcIDs[id] = ids
		}
	}
}

// validateFile checks one JSON file against its schema and returns the
// raw bytes when readable. Optional files may be absent.
func (v *ContentValidator) validateFile(path string, schema *jsonschema.Schema, required bool) []byte {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !required {
			return nil
		}
		v.addError("%s: %v", path, err)
		return nil
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		v.addError("%s: invalid JSON: %v", path, err)
		return nil
	}
	if err := schema.Validate(doc); err != nil {
		v.addError("%s: %v", path, err)
		return nil
	}
	return data
}

// checkEffectTokens flags string tokens the interpreter would compile
// to a no-op for structural reasons. Bare tokens are legal domain
// events, so only the reserved heads are checked.
func (v *ContentValidator) checkEffectTokens(loc, opt string, def any) {
	switch d := def.(type) {
	case string:
		head, rest, ok := strings.Cut(d, ":")
		if !ok {
			return
		}
		switch head {
		case "go":
			segs := strings.Split(rest, ":")
			if rest == "" || len(segs) > 2 || segs[0] == "" {
				v.addError("%s/options.json %s: malformed go token %q", loc, opt, d)
			}
		case "trait", "changeTrait":
			name, delta, ok := strings.Cut(rest, ":")
			if !ok || name == "" {
				v.addError("%s/options.json %s: %s token needs a name and delta: %q", loc, opt, head, d)
				return
			}
			if _, err := strconv.Atoi(delta); err != nil {
				v.addError("%s/options.json %s: non-numeric trait delta in %q", loc, opt, d)
			}
		case "time":
			if _, err := strconv.ParseFloat(rest, 64); err != nil {
				v.addError("%s/options.json %s: non-numeric time in %q", loc, opt, d)
			}
		case "take", "drop":
			if strings.TrimSpace(rest) == "" {
				v.addError("%s/options.json %s: %s token names no item: %q", loc, opt, head, d)
			}
		}
	case []any:
		for _, item := range d {
			v.checkEffectTokens(loc, opt, item)
		}
	}
}

// checkRequirementTokens flags string predicates that can never hold or
// that the interpreter would silently pass. Unknown heads are legal
// (fail-open), so only reserved heads get structural checks.
func (v *ContentValidator) checkRequirementTokens(loc, opt string, def any) {
	switch d := def.(type) {
	case string:
		token := strings.TrimPrefix(d, "not:")
		head, rest, ok := strings.Cut(token, ":")
		if !ok {
			return
		}
		switch head {
		case "has":
			scope, _, _ := strings.Cut(rest, ":")
			if scope != "player" && scope != "location" {
				v.addError("%s/options.json %s: unknown has scope in %q", loc, opt, d)
			}
		case "time":
			if rest == "day" || rest == "night" || rest == "any" {
				return
			}
			for _, part := range strings.Split(rest, ":") {
				if _, err := strconv.ParseFloat(part, 64); err != nil {
					v.addError("%s/options.json %s: malformed time requirement %q", loc, opt, d)
					return
				}
			}
		}
	case []any:
		for _, item := range d {
			v.checkRequirementTokens(loc, opt, item)
		}
	}
}

// checkReferences verifies cross-file integrity: scene option and NPC
// ids must resolve, path destinations must be known locations, and
// time windows must be coherent.
func (v *ContentValidator) checkReferences() {
	for id, loc := range v.locations {
		if loc.StartSceneID != "" && loc.FindScene(loc.StartSceneID) == nil {
			v.addError("%s: startSceneId %q matches no scene", id, loc.StartSceneID)
		}

		for _, dst := range loc.Path {
			if _, ok := v.locations[dst]; !ok {
				v.addError("%s: path destination %q is not a known location", id, dst)
			}
		}

		for i := range loc.Scenes {
			sc := &loc.Scenes[i]
			for _, opt := range sc.OptionIDs {
				if !v.optionIDs[id][opt] {
					v.addError("%s/%s: option %q is not defined in options.json", id, sc.ID, opt)
				}
			}
			for _, npc := range sc.NPCIDs {
				if !v.npcIDs[id][npc] {
					v.addError("%s/%s: npc %q is not defined in npc.json", id, sc.ID, npc)
				}
			}
			for _, dst := range sc.Path {
				if _, ok := v.locations[dst]; !ok {
					v.addError("%s/%s: path destination %q is not a known location", id, sc.ID, dst)
				}
			}
			if sc.From != nil && (*sc.From < 0 || *sc.From >= 48) {
				v.addError("%s/%s: from hour %v out of range", id, sc.ID, *sc.From)
			}
			if sc.To != nil && (*sc.To < 0 || *sc.To >= 48) {
				v.addError("%s/%s: to hour %v out of range", id, sc.ID, *sc.To)
			}
			if (sc.From == nil) != (sc.To == nil) && sc.Window == "" {
				v.addError("%s/%s: from and to must be set together", id, sc.ID)
			}
		}
	}
}
