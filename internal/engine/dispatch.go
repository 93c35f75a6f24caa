package engine

import (
	"math/rand"

	"github.com/vmoranv/pokebattle/internal/game"
)

// effectTarget carries everything a secondary effect may touch.
type effectTarget struct {
	attacker *game.Combatant
	defender *game.Combatant
	field    *game.FieldState
}

// recipient picks the combatant the effect lands on.
func (t effectTarget) recipient(fx game.MoveEffect) *game.Combatant {
	if fx.SelfTarget {
		return t.attacker
	}
	return t.defender
}

type effectFunc func(cfg Config, rng *rand.Rand, tgt effectTarget, fx game.MoveEffect) bool

func majorStatusEffect(kind game.StatusKind) effectFunc {
	return func(cfg Config, rng *rand.Rand, tgt effectTarget, fx game.MoveEffect) bool {
		return ApplyMajorStatus(cfg, rng, tgt.recipient(fx), kind)
	}
}

func volatileEffect(kind game.VolatileKind) effectFunc {
	return func(cfg Config, rng *rand.Rand, tgt effectTarget, fx game.MoveEffect) bool {
		return ApplyVolatileStatus(cfg, rng, tgt.recipient(fx), kind)
	}
}

func statStageEffect(cfg Config, rng *rand.Rand, tgt effectTarget, fx game.MoveEffect) bool {
	c := tgt.recipient(fx)
	before := c.Stages.Get(fx.Stat)
	c.Stages.Set(fx.Stat, ClampStage(before+fx.Stages))
	return c.Stages.Get(fx.Stat) != before
}

func fieldEffect(kind game.EffectKind) effectFunc {
	return func(cfg Config, rng *rand.Rand, tgt effectTarget, fx game.MoveEffect) bool {
		return applyFieldEffect(cfg, tgt.field, kind)
	}
}

// effectFuncs is the closed dispatch table for move secondary effects.
// Catalog validation rejects any effect kind absent from this table, so
// resolution never meets an unknown kind.
var effectFuncs = map[game.EffectKind]effectFunc{
	game.EffectBurn:            majorStatusEffect(game.StatusBurn),
	game.EffectPoison:          majorStatusEffect(game.StatusPoison),
	game.EffectParalysis:       majorStatusEffect(game.StatusParalysis),
	game.EffectSleep:           majorStatusEffect(game.StatusSleep),
	game.EffectFreeze:          majorStatusEffect(game.StatusFreeze),
	game.EffectConfusion:       volatileEffect(game.VolatileConfusion),
	game.EffectFlinch:          volatileEffect(game.VolatileFlinch),
	game.EffectStatStage:       statStageEffect,
	game.EffectSunlight:        fieldEffect(game.EffectSunlight),
	game.EffectRain:            fieldEffect(game.EffectRain),
	game.EffectSandstorm:       fieldEffect(game.EffectSandstorm),
	game.EffectGrassyTerrain:   fieldEffect(game.EffectGrassyTerrain),
	game.EffectElectricTerrain: fieldEffect(game.EffectElectricTerrain),
	game.EffectMistyTerrain:    fieldEffect(game.EffectMistyTerrain),
}

// KnownEffect reports whether the effect kind has a registered handler.
// Move catalogs are validated against this at startup.
func KnownEffect(kind game.EffectKind) bool {
	_, ok := effectFuncs[kind]
	return ok
}

// applyMoveEffect rolls the effect chance and dispatches on success.
// It returns whether the effect actually changed anything.
func applyMoveEffect(cfg Config, rng *rand.Rand, tgt effectTarget, fx *game.MoveEffect) bool {
	if fx == nil {
		return false
	}
	// Chance 0 means unconditional (status moves omit it).
	if fx.Chance > 0 && fx.Chance < 100 && rng.Float64()*100 >= float64(fx.Chance) {
		return false
	}
	fn, ok := effectFuncs[fx.Kind]
	if !ok {
		return false
	}
	return fn(cfg, rng, tgt, *fx)
}
