package engine

import (
	"math/rand"

	"github.com/vmoranv/pokebattle/internal/game"
)

// statusImmunities maps a major status to the elemental types that cannot
// receive it.
var statusImmunities = map[game.StatusKind][]game.Type{
	game.StatusBurn:      {game.TypeFire},
	game.StatusFreeze:    {game.TypeIce},
	game.StatusParalysis: {game.TypeElectric},
	game.StatusPoison:    {game.TypePoison, game.TypeSteel},
}

// immuneToStatus reports whether the combatant's typing blocks the status.
func immuneToStatus(c *game.Combatant, kind game.StatusKind) bool {
	for _, blocked := range statusImmunities[kind] {
		for _, t := range c.Types {
			if t == blocked {
				return true
			}
		}
	}
	return false
}

// ApplyMajorStatus attempts to put the combatant under a major status.
// It fails silently (reported as "no effect") when the target already has
// one or its typing grants immunity.
func ApplyMajorStatus(cfg Config, rng *rand.Rand, c *game.Combatant, kind game.StatusKind) bool {
	if kind == game.StatusNone {
		return false
	}
	if c.Status.Kind != game.StatusNone {
		return false
	}
	if immuneToStatus(c, kind) {
		return false
	}
	turns := -1
	if kind == game.StatusSleep {
		turns = cfg.SleepMinTurns + rng.Intn(cfg.SleepMaxTurns-cfg.SleepMinTurns+1)
	}
	c.Status = game.MajorStatus{Kind: kind, TurnsLeft: turns}
	return true
}

// CureMajorStatus clears the combatant's major status. The stat penalties
// tied to a status (burn's attack halving, paralysis in ordering) are
// computed on the fly, so curing leaves no residue.
func CureMajorStatus(c *game.Combatant) bool {
	if c.Status.Kind == game.StatusNone {
		return false
	}
	c.Status = game.MajorStatus{Kind: game.StatusNone}
	return true
}

// ApplyVolatileStatus adds a volatile condition. Confusion receives a
// random countdown; flinch and charging last until consumed or cleared.
func ApplyVolatileStatus(cfg Config, rng *rand.Rand, c *game.Combatant, kind game.VolatileKind) bool {
	if c.HasVolatile(kind) {
		return false
	}
	turns := -1
	if kind == game.VolatileConfusion {
		turns = cfg.ConfusionMinTurns + rng.Intn(cfg.ConfusionMaxTurns-cfg.ConfusionMinTurns+1)
	}
	c.AddVolatile(kind, turns)
	return true
}

// actionGate is the outcome of the pre-action status check.
type actionGate struct {
	// Prevented means the declared action does not execute this turn.
	Prevented bool
	// Reason names the condition that prevented the action.
	Reason string
	// Woke / Thawed report a status that ended during the check.
	Woke   bool
	Thawed bool
	// SelfHitDamage is non-zero when confusion made the combatant strike
	// itself instead of acting.
	SelfHitDamage int
}

// checkCanAct runs the action-prevention rules in fixed order: sleep,
// freeze, paralysis, flinch, confusion. It mutates status counters
// (sleep countdown, flinch consumption) as a side effect.
func checkCanAct(cfg Config, rng *rand.Rand, c *game.Combatant) actionGate {
	switch c.Status.Kind {
	case game.StatusSleep:
		c.Status.TurnsLeft--
		if c.Status.TurnsLeft <= 0 {
			c.Status = game.MajorStatus{Kind: game.StatusNone}
			return actionGate{Woke: true}
		}
		return actionGate{Prevented: true, Reason: string(game.StatusSleep)}
	case game.StatusFreeze:
		if rng.Float64() < cfg.ThawChance {
			c.Status = game.MajorStatus{Kind: game.StatusNone}
			return actionGate{Thawed: true}
		}
		return actionGate{Prevented: true, Reason: string(game.StatusFreeze)}
	case game.StatusParalysis:
		if rng.Float64() < cfg.ParalysisStopChance {
			return actionGate{Prevented: true, Reason: string(game.StatusParalysis)}
		}
	}

	// Flinch lasts exactly one action and is consumed here.
	if c.HasVolatile(game.VolatileFlinch) {
		c.RemoveVolatile(game.VolatileFlinch)
		return actionGate{Prevented: true, Reason: string(game.VolatileFlinch)}
	}

	if c.HasVolatile(game.VolatileConfusion) {
		if rng.Float64() < cfg.ConfusionSelfHitChance {
			return actionGate{
				Prevented:     true,
				Reason:        string(game.VolatileConfusion),
				SelfHitDamage: confusionSelfDamage(cfg, rng, c),
			}
		}
	}
	return actionGate{}
}

// endOfTurnStatusDamage returns the residual damage a major status deals
// at end of turn (poison ~1/8 max HP, burn ~1/16), 0 otherwise.
func endOfTurnStatusDamage(cfg Config, c *game.Combatant) int {
	switch c.Status.Kind {
	case game.StatusPoison:
		return atLeastOne(c.Stats.HP / cfg.PoisonResidualDivisor)
	case game.StatusBurn:
		return atLeastOne(c.Stats.HP / cfg.BurnResidualDivisor)
	}
	return 0
}

// decrementVolatiles runs the end-of-turn countdowns: confusion expires
// at zero, and an unconsumed flinch never outlives the turn.
func decrementVolatiles(c *game.Combatant) []game.VolatileKind {
	var expired []game.VolatileKind
	if v, ok := c.Volatiles[game.VolatileConfusion]; ok && v.TurnsLeft > 0 {
		v.TurnsLeft--
		if v.TurnsLeft <= 0 {
			c.RemoveVolatile(game.VolatileConfusion)
			expired = append(expired, game.VolatileConfusion)
		}
	}
	if c.HasVolatile(game.VolatileFlinch) {
		c.RemoveVolatile(game.VolatileFlinch)
		expired = append(expired, game.VolatileFlinch)
	}
	if c.HasVolatile(game.VolatileCharging) {
		c.RemoveVolatile(game.VolatileCharging)
		expired = append(expired, game.VolatileCharging)
	}
	return expired
}

func atLeastOne(v int) int {
	if v < 1 {
		return 1
	}
	return v
}
