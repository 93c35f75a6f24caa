package service

import (
	"fmt"
	"math/rand"

	"github.com/google/uuid"

	"github.com/vmoranv/pokebattle/internal/engine"
	"github.com/vmoranv/pokebattle/internal/game"
	"github.com/vmoranv/pokebattle/internal/metadata"
	"github.com/vmoranv/pokebattle/internal/storage"
)

const maxIV = 31

// NewCombatant builds a fresh creature instance of the given species:
// random IVs, a random nature from the catalog, zero EVs, the most
// recent learn-table moves for its level, full HP.
func NewCombatant(catalog *metadata.Catalog, speciesID uint, level int, rng *rand.Rand) (*game.Combatant, error) {
	sp, err := catalog.SpeciesByID(speciesID)
	if err != nil {
		return nil, err
	}

	ivs := game.StatBlock{
		HP:        rng.Intn(maxIV + 1),
		Attack:    rng.Intn(maxIV + 1),
		Defense:   rng.Intn(maxIV + 1),
		SpAttack:  rng.Intn(maxIV + 1),
		SpDefense: rng.Intn(maxIV + 1),
		Speed:     rng.Intn(maxIV + 1),
	}
	nature := game.Nature{}
	if natures := catalog.Natures(); len(natures) > 0 {
		nature = natures[rng.Intn(len(natures))]
	}

	stats, err := engine.DeriveStats(sp.BaseStats, level, ivs, game.StatBlock{}, nature)
	if err != nil {
		return nil, fmt.Errorf("species %d at level %d: %w", speciesID, level, err)
	}

	c := &game.Combatant{
		InstanceID: uuid.NewString(),
		SpeciesID:  sp.ID,
		Nickname:   sp.Name,
		Level:      level,
		IVs:        ivs,
		Nature:     nature,
		Stats:      stats,
		CurrentHP:  stats.HP,
		Types:      append([]game.Type(nil), sp.Types...),
		Experience: engine.ExpForLevel(sp.GrowthRate, level),
	}
	for _, lm := range sp.LearnTable {
		if lm.Level > level {
			continue
		}
		mv, err := catalog.MoveByID(lm.MoveID)
		if err != nil {
			return nil, err
		}
		c.Moves = append(c.Moves, game.MoveSlot{MoveID: mv.ID, PP: mv.PP})
		if len(c.Moves) > 4 {
			c.Moves = c.Moves[1:] // keep the four most recent
		}
	}
	return c, nil
}

// CreatureRepo is the minimal repository surface for creature operations.
type CreatureRepo interface {
	CreateCreature(c *storage.CreatureRow) error
	GetCreatureByInstanceID(id string) (*storage.CreatureRow, error)
	UpdateCreature(c *storage.CreatureRow) error
}

// SpawnCreature creates and persists a new creature owned by the player.
func SpawnCreature(repo CreatureRepo, catalog *metadata.Catalog, ownerUUID string, speciesID uint, level int, rng *rand.Rand) (*storage.CreatureRow, error) {
	c, err := NewCombatant(catalog, speciesID, level, rng)
	if err != nil {
		return nil, err
	}
	row := &storage.CreatureRow{OwnerUUID: ownerUUID}
	if err := row.SetCombatant(c); err != nil {
		return nil, err
	}
	if err := repo.CreateCreature(row); err != nil {
		return nil, err
	}
	return row, nil
}

// GrantExperience applies an experience award to a stored creature and
// persists the result: level ups, learned moves and any evolution.
func GrantExperience(repo CreatureRepo, catalog *metadata.Catalog, cfg engine.Config, instanceID string, amount int, ctx engine.GrowthContext) (*engine.GrowthRecord, error) {
	row, err := repo.GetCreatureByInstanceID(instanceID)
	if err != nil {
		return nil, ErrCreatureNotFound
	}
	c, err := row.Combatant()
	if err != nil {
		return nil, err
	}
	rec, err := engine.EvaluateGrowth(cfg, catalog, c, amount, ctx)
	if err != nil {
		return nil, err
	}
	if err := row.SetCombatant(c); err != nil {
		return nil, err
	}
	if err := repo.UpdateCreature(row); err != nil {
		return nil, err
	}
	return rec, nil
}
