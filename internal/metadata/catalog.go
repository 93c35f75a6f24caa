package metadata

import (
	"fmt"
	"sort"

	"github.com/vmoranv/pokebattle/internal/engine"
	"github.com/vmoranv/pokebattle/internal/game"
)

// NotFoundError reports a lookup for an identifier the catalog does not
// hold.
type NotFoundError struct {
	Kind string
	ID   uint
	Name string
}

func (e *NotFoundError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("%s %q not found", e.Kind, e.Name)
	}
	return fmt.Sprintf("%s %d not found", e.Kind, e.ID)
}

// ItemKind categorizes what an item does when used.
type ItemKind string

const (
	ItemHeal     ItemKind = "heal"
	ItemCure     ItemKind = "cure"
	ItemBall     ItemKind = "ball"
	ItemCatalyst ItemKind = "catalyst" // evolution trigger
)

// Item is an immutable static item record. Battle items carry the
// resolved effect values the engine consumes.
type Item struct {
	ID           uint     `json:"id"`
	Name         string   `json:"name"`
	Kind         ItemKind `json:"kind"`
	HealAmount   int      `json:"heal_amount,omitempty"`
	CuresStatus  bool     `json:"cures_status,omitempty"`
	BallModifier float64  `json:"ball_modifier,omitempty"`
}

// Catalog is the immutable static game data, built once at startup and
// shared read-only across requests. It satisfies the engine's
// MoveSource and SpeciesSource lookups.
type Catalog struct {
	species map[uint]*game.Species
	moves   map[uint]*game.Move
	natures map[string]game.Nature
	items   map[uint]*Item
	chart   game.TypeChart
}

// NewCatalog indexes the static data and cross-validates it: learn
// tables and evolutions must reference known entries, move effects must
// use effect kinds the engine dispatches on, and natures must point at
// real battle stats. A catalog that passes here cannot produce an
// unknown-key failure mid battle.
func NewCatalog(species []game.Species, moves []game.Move, natures []game.Nature, items []Item, chart game.TypeChart) (*Catalog, error) {
	c := &Catalog{
		species: make(map[uint]*game.Species, len(species)),
		moves:   make(map[uint]*game.Move, len(moves)),
		natures: make(map[string]game.Nature, len(natures)),
		items:   make(map[uint]*Item, len(items)),
		chart:   chart,
	}

	for i := range moves {
		mv := &moves[i]
		if mv.ID == 0 {
			return nil, fmt.Errorf("move %q: missing id", mv.Name)
		}
		if _, dup := c.moves[mv.ID]; dup {
			return nil, fmt.Errorf("duplicate move id %d", mv.ID)
		}
		if mv.Effect.Kind != "" && !engine.KnownEffect(mv.Effect.Kind) {
			return nil, fmt.Errorf("move %q: unknown effect kind %q", mv.Name, mv.Effect.Kind)
		}
		if mv.Effect.Chance < 0 || mv.Effect.Chance > 100 {
			return nil, fmt.Errorf("move %q: effect chance %d outside [0,100]", mv.Name, mv.Effect.Chance)
		}
		if !mv.AlwaysHits && (mv.Accuracy < 0 || mv.Accuracy > 100) {
			return nil, fmt.Errorf("move %q: accuracy %d outside [0,100]", mv.Name, mv.Accuracy)
		}
		c.moves[mv.ID] = mv
	}

	for i := range species {
		sp := &species[i]
		if sp.ID == 0 {
			return nil, fmt.Errorf("species %q: missing id", sp.Name)
		}
		if _, dup := c.species[sp.ID]; dup {
			return nil, fmt.Errorf("duplicate species id %d", sp.ID)
		}
		if sp.CatchRate < 0 || sp.CatchRate > 255 {
			return nil, fmt.Errorf("species %q: catch rate %d outside [0,255]", sp.Name, sp.CatchRate)
		}
		switch sp.GrowthRate {
		case game.GrowthFast, game.GrowthMediumFast, game.GrowthMediumSlow, game.GrowthSlow:
		default:
			return nil, fmt.Errorf("species %q: unknown growth rate %q", sp.Name, sp.GrowthRate)
		}
		c.species[sp.ID] = sp
	}

	// Reference checks after both indexes exist.
	for _, sp := range c.species {
		for _, lm := range sp.LearnTable {
			if _, ok := c.moves[lm.MoveID]; !ok {
				return nil, fmt.Errorf("species %q: learn table references unknown move %d", sp.Name, lm.MoveID)
			}
		}
		for _, ev := range sp.Evolutions {
			if _, ok := c.species[ev.ToSpeciesID]; !ok {
				return nil, fmt.Errorf("species %q: evolution references unknown species %d", sp.Name, ev.ToSpeciesID)
			}
		}
	}

	for _, n := range natures {
		if n.Name == "" {
			return nil, fmt.Errorf("nature with empty name")
		}
		if _, dup := c.natures[n.Name]; dup {
			return nil, fmt.Errorf("duplicate nature %q", n.Name)
		}
		if err := validNatureStat(n.Up); err != nil {
			return nil, fmt.Errorf("nature %q: %w", n.Name, err)
		}
		if err := validNatureStat(n.Down); err != nil {
			return nil, fmt.Errorf("nature %q: %w", n.Name, err)
		}
		c.natures[n.Name] = n
	}

	for i := range items {
		it := &items[i]
		if it.ID == 0 {
			return nil, fmt.Errorf("item %q: missing id", it.Name)
		}
		if _, dup := c.items[it.ID]; dup {
			return nil, fmt.Errorf("duplicate item id %d", it.ID)
		}
		if it.Kind == ItemBall && it.BallModifier <= 0 {
			return nil, fmt.Errorf("item %q: ball without modifier", it.Name)
		}
		c.items[it.ID] = it
	}
	return c, nil
}

func validNatureStat(s game.StatName) error {
	switch s {
	case "", game.StatAttack, game.StatDefense, game.StatSpAttack, game.StatSpDefense, game.StatSpeed:
		return nil
	}
	return fmt.Errorf("invalid nature stat %q", s)
}

// SpeciesByID implements engine.SpeciesSource.
func (c *Catalog) SpeciesByID(id uint) (*game.Species, error) {
	sp, ok := c.species[id]
	if !ok {
		return nil, &NotFoundError{Kind: "species", ID: id}
	}
	return sp, nil
}

// MoveByID implements engine.MoveSource.
func (c *Catalog) MoveByID(id uint) (*game.Move, error) {
	mv, ok := c.moves[id]
	if !ok {
		return nil, &NotFoundError{Kind: "move", ID: id}
	}
	return mv, nil
}

func (c *Catalog) NatureByName(name string) (game.Nature, error) {
	n, ok := c.natures[name]
	if !ok {
		return game.Nature{}, &NotFoundError{Kind: "nature", Name: name}
	}
	return n, nil
}

func (c *Catalog) ItemByID(id uint) (*Item, error) {
	it, ok := c.items[id]
	if !ok {
		return nil, &NotFoundError{Kind: "item", ID: id}
	}
	return it, nil
}

// Chart returns the type effectiveness chart.
func (c *Catalog) Chart() game.TypeChart { return c.chart }

// Natures returns all natures in stable name order.
func (c *Catalog) Natures() []game.Nature {
	names := make([]string, 0, len(c.natures))
	for name := range c.natures {
		names = append(names, name)
	}
	sort.Strings(names)
	out := make([]game.Nature, 0, len(names))
	for _, name := range names {
		out = append(out, c.natures[name])
	}
	return out
}

// Species returns all species in ID order, for listing endpoints.
func (c *Catalog) Species() []*game.Species {
	out := make([]*game.Species, 0, len(c.species))
	for _, sp := range c.species {
		out = append(out, sp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
