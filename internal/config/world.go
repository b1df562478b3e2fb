package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/jwebster45206/scene-engine/pkg/clock"
	"github.com/jwebster45206/scene-engine/pkg/traits"
)

// WorldManifest is the per-world settings file, `world.yaml` in the
// content directory. Every field is optional; missing pieces fall back
// to stock defaults.
type WorldManifest struct {
	Name  string `yaml:"name"`
	Start struct {
		Location string `yaml:"location"`
		Scene    string `yaml:"scene"`
	} `yaml:"start"`
	Day struct {
		StartTime  *float64 `yaml:"startTime"`
		EndTime    *float64 `yaml:"endTime"`
		NightStart *float64 `yaml:"nightStart"`
		NightEnd   *float64 `yaml:"nightEnd"`
	} `yaml:"day"`
	Traits []traits.Trait `yaml:"traits"`
}

// DefaultWorldManifest is used when the content directory carries no
// manifest.
func DefaultWorldManifest() *WorldManifest {
	m := &WorldManifest{}
	m.Start.Location = "start"
	return m
}

// LoadWorld reads world.yaml from the content directory. A missing
// file is not an error; malformed YAML is.
func LoadWorld(dataDir string) (*WorldManifest, error) {
	path := filepath.Join(dataDir, "world.yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultWorldManifest(), nil
		}
		return nil, fmt.Errorf("failed to read world manifest: %w", err)
	}
	m := DefaultWorldManifest()
	if err := yaml.Unmarshal(data, m); err != nil {
		return nil, fmt.Errorf("failed to parse world manifest: %w", err)
	}
	if m.Start.Location == "" {
		m.Start.Location = "start"
	}
	return m, nil
}

// ClockSettings resolves the manifest's day settings.
func (m *WorldManifest) ClockSettings() (start, end float64, settings clock.DaySettings) {
	start, end = 9, 5
	settings = clock.DefaultDaySettings()
	if m.Day.StartTime != nil {
		start = *m.Day.StartTime
	}
	if m.Day.EndTime != nil {
		end = *m.Day.EndTime
	}
	if m.Day.NightStart != nil {
		settings.NightStart = *m.Day.NightStart
	}
	if m.Day.NightEnd != nil {
		settings.NightEnd = *m.Day.NightEnd
	}
	return start, end, settings
}

// TraitCatalog returns the manifest's traits, or the stock catalog.
func (m *WorldManifest) TraitCatalog() []traits.Trait {
	if len(m.Traits) > 0 {
		return m.Traits
	}
	return traits.DefaultCatalog()
}
