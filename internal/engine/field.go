package engine

import "github.com/vmoranv/pokebattle/internal/game"

func isWeather(kind game.EffectKind) bool {
	switch kind {
	case game.EffectSunlight, game.EffectRain, game.EffectSandstorm:
		return true
	}
	return false
}

func isTerrain(kind game.EffectKind) bool {
	switch kind {
	case game.EffectGrassyTerrain, game.EffectElectricTerrain, game.EffectMistyTerrain:
		return true
	}
	return false
}

// applyFieldEffect installs a weather or terrain on the field. A new
// effect in the same slot overwrites whatever was there, including the
// same effect (its duration restarts).
func applyFieldEffect(cfg Config, field *game.FieldState, kind game.EffectKind) bool {
	fx := &game.FieldEffect{Kind: kind, TurnsLeft: cfg.FieldEffectDuration}
	switch {
	case isWeather(kind):
		field.Weather = fx
	case isTerrain(kind):
		field.Terrain = fx
	default:
		return false
	}
	return true
}

// fieldDamageModifier returns the multiplier the active weather and
// terrain apply to a move of the given type.
func fieldDamageModifier(field game.FieldState, move *game.Move) float64 {
	mod := 1.0
	if field.Weather != nil {
		switch field.Weather.Kind {
		case game.EffectSunlight:
			if move.Type == game.TypeFire {
				mod *= 1.5
			}
			if move.Type == game.TypeWater {
				mod *= 0.5
			}
		case game.EffectRain:
			if move.Type == game.TypeWater {
				mod *= 1.5
			}
			if move.Type == game.TypeFire {
				mod *= 0.5
			}
		}
	}
	if field.Terrain != nil {
		switch field.Terrain.Kind {
		case game.EffectGrassyTerrain:
			if move.Type == game.TypeGrass {
				mod *= 1.5
			}
		case game.EffectElectricTerrain:
			if move.Type == game.TypeElectric {
				mod *= 1.5
			}
		case game.EffectMistyTerrain:
			if move.Type == game.TypeDragon {
				mod *= 0.5
			}
		}
	}
	return mod
}

func hasType(c *game.Combatant, t game.Type) bool {
	for _, ct := range c.Types {
		if ct == t {
			return true
		}
	}
	return false
}

// sandstormChip returns the residual damage sandstorm deals to the
// combatant, 0 for rock, ground and steel types.
func sandstormChip(cfg Config, c *game.Combatant) int {
	if hasType(c, game.TypeRock) || hasType(c, game.TypeGround) || hasType(c, game.TypeSteel) {
		return 0
	}
	return atLeastOne(c.Stats.HP / cfg.FieldResidualDivisor)
}

// grassyHeal returns the end-of-turn healing grassy terrain grants to
// grass types, 0 for everyone else.
func grassyHeal(cfg Config, c *game.Combatant) int {
	if !hasType(c, game.TypeGrass) {
		return 0
	}
	return atLeastOne(c.Stats.HP / cfg.FieldResidualDivisor)
}

// tickFieldSlot decrements one field slot and reports whether it expired.
func tickFieldSlot(fx **game.FieldEffect) (game.EffectKind, bool) {
	if *fx == nil {
		return "", false
	}
	(*fx).TurnsLeft--
	if (*fx).TurnsLeft <= 0 {
		kind := (*fx).Kind
		*fx = nil
		return kind, true
	}
	return "", false
}
