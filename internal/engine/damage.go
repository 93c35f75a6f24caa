package engine

import (
	"math"
	"math/rand"

	"github.com/vmoranv/pokebattle/internal/game"
)

// DamageBreakdown reports the computed damage together with the factors
// that produced it, so callers can log the full calculation.
type DamageBreakdown struct {
	Amount        int     `json:"amount"`
	Critical      bool    `json:"critical"`
	Effectiveness float64 `json:"effectiveness"`
	STAB          float64 `json:"stab"`
	RandomFactor  float64 `json:"random_factor"`
	FieldModifier float64 `json:"field_modifier"`
}

// randomFactor draws one of the 16 classic variance values
// 0.85, 0.86, ... 1.00.
func randomFactor(rng *rand.Rand) float64 {
	return 0.85 + float64(rng.Intn(16))*0.01
}

// ComputeDamage resolves the damage a move deals, including the stage
// modifiers on the stat pair, burn's physical attack penalty, type
// effectiveness, STAB, critical roll, field modifier and random variance.
// Status moves and immune matchups deal exactly 0; any other positive
// power deals at least 1.
func ComputeDamage(cfg Config, rng *rand.Rand, attacker, defender *game.Combatant, move *game.Move, field game.FieldState) DamageBreakdown {
	if move.Category == game.CategoryStatus || move.Power <= 0 {
		return DamageBreakdown{Effectiveness: 1, STAB: 1, RandomFactor: 1, FieldModifier: 1}
	}

	var attack, defense float64
	switch move.Category {
	case game.CategoryPhysical:
		attack = float64(attacker.Stats.Attack) * StageMultiplier(attacker.Stages.Attack)
		if attacker.Status.Kind == game.StatusBurn {
			attack /= 2
		}
		defense = float64(defender.Stats.Defense) * StageMultiplier(defender.Stages.Defense)
	case game.CategorySpecial:
		attack = float64(attacker.Stats.SpAttack) * StageMultiplier(attacker.Stages.SpAttack)
		defense = float64(defender.Stats.SpDefense) * StageMultiplier(defender.Stages.SpDefense)
	}
	if defense < 1 {
		defense = 1
	}

	out := DamageBreakdown{
		Effectiveness: cfg.TypeChart.Effectiveness(move.Type, defender.Types),
		STAB:          1,
		RandomFactor:  randomFactor(rng),
		FieldModifier: fieldDamageModifier(field, move),
	}
	for _, t := range attacker.Types {
		if t == move.Type {
			out.STAB = cfg.StabMultiplier
			break
		}
	}
	crit := 1.0
	if rng.Float64() < cfg.CritRate {
		out.Critical = true
		crit = cfg.CritMultiplier
	}

	base := ((2*float64(attacker.Level)/5+2)*float64(move.Power)*(attack/defense))/50 + 2
	modifier := out.Effectiveness * crit * out.RandomFactor * out.STAB * out.FieldModifier
	out.Amount = int(math.Floor(base * modifier))

	if out.Effectiveness == 0 {
		out.Amount = 0
	} else if out.Amount < 1 {
		out.Amount = 1
	}
	return out
}

// confusionSelfDamage computes the self-inflicted strike of a confused
// combatant: a typeless physical hit with attacker == defender, no STAB,
// no type or field modifier.
func confusionSelfDamage(cfg Config, rng *rand.Rand, c *game.Combatant) int {
	attack := float64(c.Stats.Attack) * StageMultiplier(c.Stages.Attack)
	if c.Status.Kind == game.StatusBurn {
		attack /= 2
	}
	defense := float64(c.Stats.Defense) * StageMultiplier(c.Stages.Defense)
	if defense < 1 {
		defense = 1
	}
	base := ((2*float64(c.Level)/5+2)*float64(cfg.ConfusionSelfHitPower)*(attack/defense))/50 + 2
	dmg := int(math.Floor(base * randomFactor(rng)))
	if dmg < 1 {
		dmg = 1
	}
	return dmg
}
