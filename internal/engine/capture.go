package engine

import (
	"math"
	"math/rand"

	"github.com/vmoranv/pokebattle/internal/game"
)

// CaptureOutcome is the result of one ball throw.
type CaptureOutcome struct {
	// Value is the computed catch value, clamped to [0, 255].
	Value int
	// Shakes is how many times the ball rocked before the verdict.
	// A successful throw always reports three shakes.
	Shakes int
	// Success reports whether the target was caught.
	Success bool
}

// captureStatusMultiplier rewards throwing at an incapacitated target.
func captureStatusMultiplier(cfg Config, kind game.StatusKind) float64 {
	switch kind {
	case game.StatusSleep, game.StatusFreeze:
		return cfg.BallStatusStrongMultiplier
	case game.StatusParalysis, game.StatusPoison, game.StatusBurn:
		return cfg.BallStatusWeakMultiplier
	}
	return 1.0
}

// shakeBand maps the catch value to the number of shakes shown on a
// failed throw, so near misses visibly rock longer.
func shakeBand(value int) int {
	switch {
	case value < 10:
		return 0
	case value < 30:
		return 1
	case value < 70:
		return 2
	}
	return 3
}

// AttemptCapture resolves a ball throw against a wild target. The value
// scales with missing HP, the species catch rate, the ball modifier and
// the target's status; the success draw is always rolled, even at the
// clamping bounds, so the caller sees a consistent RNG stream.
func AttemptCapture(cfg Config, rng *rand.Rand, target *game.Combatant, catchRate int, ballModifier float64) CaptureOutcome {
	maxHP := target.Stats.HP
	hpTerm := float64(3*maxHP-2*target.CurrentHP) / float64(3*maxHP)
	value := int(math.Floor(hpTerm * float64(catchRate) * ballModifier * captureStatusMultiplier(cfg, target.Status.Kind)))
	if value < 0 {
		value = 0
	}
	if value > 255 {
		value = 255
	}

	out := CaptureOutcome{Value: value}
	// Draw is uniform over [0, 255), so a clamped value of 255 always
	// captures.
	if rng.Intn(255) < value {
		out.Success = true
		out.Shakes = 3
		return out
	}
	out.Shakes = shakeBand(value)
	return out
}
