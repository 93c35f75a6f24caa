package engine

import (
	"fmt"
	"math"

	"github.com/vmoranv/pokebattle/internal/game"
)

// SpeciesSource resolves static species data during growth evaluation.
type SpeciesSource interface {
	SpeciesByID(id uint) (*game.Species, error)
}

// GrowthSource resolves both species and move data; learn-table moves
// need their PP looked up when they enter a slot.
type GrowthSource interface {
	MoveSource
	SpeciesSource
}

// ExpForLevel returns the total experience required to be at the given
// level under the growth rate. Level 1 always maps to zero.
func ExpForLevel(rate game.GrowthRate, level int) int {
	if level <= 1 {
		return 0
	}
	n := float64(level)
	switch rate {
	case game.GrowthFast:
		return int(math.Floor(4 * n * n * n / 5))
	case game.GrowthMediumSlow:
		return int(math.Floor(6*n*n*n/5 - 15*n*n + 100*n - 140))
	case game.GrowthSlow:
		return int(math.Floor(5 * n * n * n / 4))
	}
	// medium_fast and any unknown rate
	return int(n * n * n)
}

// ExpGain computes the experience awarded for defeating one combatant.
// Trainer battles pay out more than wild ones; the gain is never zero.
func ExpGain(cfg Config, baseYield, defeatedLevel int, trainer bool) int {
	gain := float64(baseYield*defeatedLevel) / float64(cfg.ExpGainDivisor)
	if trainer {
		gain *= cfg.TrainerExpMultiplier
	}
	return atLeastOne(int(math.Floor(gain)))
}

// GrowthContext carries the trigger inputs that do not live on the
// combatant itself.
type GrowthContext struct {
	// TimeOfDay is "day" or "night"; empty skips time-gated rules.
	TimeOfDay string
	// UsedItemID is set when growth is evaluated after an item use.
	UsedItemID uint
}

// GrowthRecord reports everything a growth evaluation changed.
type GrowthRecord struct {
	ExpGained  int   `json:"exp_gained"`
	LevelsFrom int   `json:"levels_from"`
	LevelsTo   int   `json:"levels_to"`
	// LearnedMoveIDs are moves added into free slots.
	LearnedMoveIDs []uint `json:"learned_move_ids,omitempty"`
	// PendingMoveIDs are newly reachable moves that found no free slot;
	// the owner chooses what to forget.
	PendingMoveIDs []uint `json:"pending_move_ids,omitempty"`
	// EvolvedTo is the new species ID, 0 when no evolution fired.
	EvolvedTo uint `json:"evolved_to,omitempty"`
}

const maxMoveSlots = 4

// EvaluateGrowth applies an experience gain to the combatant: level ups,
// stat recomputation, learn-table moves, then at most one evolution. The
// combatant is mutated in place; callers pass a clone when they need the
// original preserved.
func EvaluateGrowth(cfg Config, data GrowthSource, c *game.Combatant, expGained int, ctx GrowthContext) (*GrowthRecord, error) {
	sp, err := data.SpeciesByID(c.SpeciesID)
	if err != nil {
		return nil, fmt.Errorf("growth for %s: %w", c.InstanceID, err)
	}

	rec := &GrowthRecord{ExpGained: expGained, LevelsFrom: c.Level, LevelsTo: c.Level}
	c.Experience += expGained

	for c.Level < cfg.MaxLevel && c.Experience >= ExpForLevel(sp.GrowthRate, c.Level+1) {
		c.Level++
		rec.LevelsTo = c.Level
		for _, lm := range sp.LearnTable {
			if lm.Level != c.Level {
				continue
			}
			if knowsMove(c, lm.MoveID) {
				continue
			}
			if len(c.Moves) < maxMoveSlots {
				mv, err := data.MoveByID(lm.MoveID)
				if err != nil {
					return nil, fmt.Errorf("learn move %d: %w", lm.MoveID, err)
				}
				c.Moves = append(c.Moves, game.MoveSlot{MoveID: mv.ID, PP: mv.PP})
				rec.LearnedMoveIDs = append(rec.LearnedMoveIDs, mv.ID)
			} else {
				rec.PendingMoveIDs = append(rec.PendingMoveIDs, lm.MoveID)
			}
		}
	}

	if rec.LevelsTo > rec.LevelsFrom {
		if err := recomputeStats(c, sp.BaseStats); err != nil {
			return nil, err
		}
	}

	evolved, err := tryEvolve(cfg, data, c, sp, ctx, rec.LevelsTo > rec.LevelsFrom)
	if err != nil {
		return nil, err
	}
	rec.EvolvedTo = evolved
	return rec, nil
}

func knowsMove(c *game.Combatant, moveID uint) bool {
	for _, s := range c.Moves {
		if s.MoveID == moveID {
			return true
		}
	}
	return false
}

// recomputeStats rederives the stat block and carries HP damage over:
// current HP grows by the max-HP delta, never past the new maximum.
func recomputeStats(c *game.Combatant, base game.StatBlock) error {
	old := c.Stats
	stats, err := DeriveStats(base, c.Level, c.IVs, c.EVs, c.Nature)
	if err != nil {
		return err
	}
	c.Stats = stats
	c.CurrentHP += stats.HP - old.HP
	if c.CurrentHP > stats.HP {
		c.CurrentHP = stats.HP
	}
	if c.CurrentHP < 0 {
		c.CurrentHP = 0
	}
	return nil
}

// ruleSatisfied checks one evolution trigger against the combatant.
func ruleSatisfied(cfg Config, c *game.Combatant, rule game.EvolutionRule, ctx GrowthContext, leveled bool) bool {
	switch rule.Method {
	case game.EvolveByLevel:
		return leveled && c.Level >= rule.Level
	case game.EvolveByItem:
		return ctx.UsedItemID != 0 && ctx.UsedItemID == rule.ItemID
	case game.EvolveByFriendship:
		threshold := rule.MinFriendship
		if threshold == 0 {
			threshold = cfg.FriendshipEvolutionThreshold
		}
		if c.Friendship < threshold {
			return false
		}
		if rule.TimeOfDay != "" && rule.TimeOfDay != ctx.TimeOfDay {
			return false
		}
		return leveled
	case game.EvolveByTrade:
		return c.Traded
	}
	return false
}

// tryEvolve fires the first satisfied evolution rule, if any, swapping
// the combatant's species, typing and stats.
func tryEvolve(cfg Config, species SpeciesSource, c *game.Combatant, sp *game.Species, ctx GrowthContext, leveled bool) (uint, error) {
	for _, rule := range sp.Evolutions {
		if !ruleSatisfied(cfg, c, rule, ctx, leveled) {
			continue
		}
		next, err := species.SpeciesByID(rule.ToSpeciesID)
		if err != nil {
			return 0, fmt.Errorf("evolve %s: %w", c.InstanceID, err)
		}
		c.SpeciesID = next.ID
		c.Types = append([]game.Type(nil), next.Types...)
		c.Traded = false
		if err := recomputeStats(c, next.BaseStats); err != nil {
			return 0, err
		}
		return next.ID, nil
	}
	return 0, nil
}
