package engine

import (
	"math/rand"

	"github.com/vmoranv/pokebattle/internal/game"
)

// HitChance computes the final percentage chance of a move connecting,
// before the random draw. Always-hit moves and moves against an exposed
// (charging) defender bypass the computation entirely.
func HitChance(attacker, defender *game.Combatant, move *game.Move) float64 {
	if move.AlwaysHits || defender.HasVolatile(game.VolatileCharging) {
		return 100
	}
	chance := float64(move.Accuracy) *
		AccuracyStageMultiplier(attacker.Stages.Accuracy) /
		AccuracyStageMultiplier(defender.Stages.Evasion)
	if chance < 0 {
		return 0
	}
	if chance > 100 {
		return 100
	}
	return chance
}

// rollHit draws uniformly in [0,100) and reports whether the move lands.
func rollHit(rng *rand.Rand, attacker, defender *game.Combatant, move *game.Move) bool {
	chance := HitChance(attacker, defender, move)
	return rng.Float64()*100 < chance
}
