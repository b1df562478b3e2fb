package nav

import (
	"math"
	"strings"

	"github.com/jwebster45206/scene-engine/pkg/clock"
	"github.com/jwebster45206/scene-engine/pkg/content"
)

const hourEpsilon = 1e-9

// sceneAllowed reports whether the scene may be shown at the oracle's
// current time. Scenes with no constraints, unknown window names, or a
// missing bound are always allowed (fail-open).
func sceneAllowed(sc *content.Scene, oracle Oracle) bool {
	if sc == nil || oracle == nil {
		return true
	}

	switch win := strings.ToLower(sc.Window); win {
	case "":
		// fall through to the numeric range
	case "any":
		return true
	case clock.WindowDay, clock.WindowNight:
		return oracle.Window() == win
	default:
		return true
	}

	if sc.From == nil || sc.To == nil {
		return true
	}

	from := clock.Normalize(*sc.From)
	to := clock.Normalize(*sc.To)
	now := clock.Normalize(oracle.CurrentTime())

	// from == to means "exactly this hour".
	if from == to {
		return math.Abs(now-from) < hourEpsilon
	}
	// Plain range [from, to).
	if from < to {
		return now >= from && now < to
	}
	// Wrapped range, e.g. 21 → 5: [from, 24) or [0, to).
	return now >= from || now < to
}
