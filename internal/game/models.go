package game

// StatName identifies one of the non-HP battle stats.
type StatName string

const (
	StatAttack    StatName = "attack"
	StatDefense   StatName = "defense"
	StatSpAttack  StatName = "sp_attack"
	StatSpDefense StatName = "sp_defense"
	StatSpeed     StatName = "speed"
	StatAccuracy  StatName = "accuracy"
	StatEvasion   StatName = "evasion"
)

// StatBlock is the derived (or base, or IV/EV) stat sextuple.
type StatBlock struct {
	HP        int `json:"hp"`
	Attack    int `json:"attack"`
	Defense   int `json:"defense"`
	SpAttack  int `json:"sp_attack"`
	SpDefense int `json:"sp_defense"`
	Speed     int `json:"speed"`
}

// StageSet holds the seven stat stages, each clamped to [-6, +6].
type StageSet struct {
	Attack    int `json:"attack"`
	Defense   int `json:"defense"`
	SpAttack  int `json:"sp_attack"`
	SpDefense int `json:"sp_defense"`
	Speed     int `json:"speed"`
	Accuracy  int `json:"accuracy"`
	Evasion   int `json:"evasion"`
}

// Get returns the stage value for a stat name.
func (s *StageSet) Get(name StatName) int {
	switch name {
	case StatAttack:
		return s.Attack
	case StatDefense:
		return s.Defense
	case StatSpAttack:
		return s.SpAttack
	case StatSpDefense:
		return s.SpDefense
	case StatSpeed:
		return s.Speed
	case StatAccuracy:
		return s.Accuracy
	case StatEvasion:
		return s.Evasion
	}
	return 0
}

// Set assigns the stage value for a stat name (caller clamps).
func (s *StageSet) Set(name StatName, v int) {
	switch name {
	case StatAttack:
		s.Attack = v
	case StatDefense:
		s.Defense = v
	case StatSpAttack:
		s.SpAttack = v
	case StatSpDefense:
		s.SpDefense = v
	case StatSpeed:
		s.Speed = v
	case StatAccuracy:
		s.Accuracy = v
	case StatEvasion:
		s.Evasion = v
	}
}

// Nature is a fixed multiplier profile over two non-HP stats:
// +10% on Up, -10% on Down. A neutral nature has Up == Down == "".
type Nature struct {
	Name string   `json:"name"`
	Up   StatName `json:"up"`
	Down StatName `json:"down"`
}

// Multiplier returns the nature multiplier applied to the given stat.
func (n Nature) Multiplier(stat StatName) float64 {
	if n.Up == n.Down {
		return 1.0
	}
	switch stat {
	case n.Up:
		return 1.1
	case n.Down:
		return 0.9
	}
	return 1.0
}

// GrowthRate selects the cumulative experience curve for a species.
type GrowthRate string

const (
	GrowthFast       GrowthRate = "fast"
	GrowthMediumFast GrowthRate = "medium_fast"
	GrowthMediumSlow GrowthRate = "medium_slow"
	GrowthSlow       GrowthRate = "slow"
)

// MoveCategory splits moves into the damage pair they use.
type MoveCategory string

const (
	CategoryPhysical MoveCategory = "physical"
	CategorySpecial  MoveCategory = "special"
	CategoryStatus   MoveCategory = "status"
)

// EffectKind is the closed set of secondary effects a move can carry.
// The engine maps each kind to an implementation function in a dispatch
// table built at startup; the metadata catalog rejects unknown kinds.
type EffectKind string

const (
	EffectNone EffectKind = ""

	// Major statuses
	EffectBurn      EffectKind = "burn"
	EffectPoison    EffectKind = "poison"
	EffectParalysis EffectKind = "paralysis"
	EffectSleep     EffectKind = "sleep"
	EffectFreeze    EffectKind = "freeze"

	// Volatile statuses
	EffectConfusion EffectKind = "confusion"
	EffectFlinch    EffectKind = "flinch"

	// Stat stage change (uses Stat/Stages/SelfTarget on MoveEffect)
	EffectStatStage EffectKind = "stat_stage"

	// Weather slot
	EffectSunlight  EffectKind = "sunlight"
	EffectRain      EffectKind = "rain"
	EffectSandstorm EffectKind = "sandstorm"

	// Terrain slot
	EffectGrassyTerrain   EffectKind = "grassy_terrain"
	EffectElectricTerrain EffectKind = "electric_terrain"
	EffectMistyTerrain    EffectKind = "misty_terrain"
)

// MoveEffect describes the secondary effect attached to a move.
type MoveEffect struct {
	Kind EffectKind `json:"kind"`
	// Chance is a percentage in [0,100]; 0 means always (for status moves).
	Chance int `json:"chance"`
	// Stat/Stages/SelfTarget apply only when Kind == EffectStatStage.
	Stat       StatName `json:"stat,omitempty"`
	Stages     int      `json:"stages,omitempty"`
	SelfTarget bool     `json:"self_target,omitempty"`
}

// Move is an immutable static move record.
type Move struct {
	ID       uint         `json:"id"`
	Name     string       `json:"name"`
	Type     Type         `json:"type"`
	Category MoveCategory `json:"category"`
	Power    int          `json:"power"`
	// Accuracy is a percentage in [0,100]; ignored when AlwaysHits.
	Accuracy   int        `json:"accuracy"`
	AlwaysHits bool       `json:"always_hits"`
	Priority   int        `json:"priority"`
	PP         int        `json:"pp"`
	Effect     MoveEffect `json:"effect"`
}

// EvolutionMethod names a trigger condition category for evolution.
type EvolutionMethod string

const (
	EvolveByLevel      EvolutionMethod = "level_up"
	EvolveByItem       EvolutionMethod = "use_item"
	EvolveByFriendship EvolutionMethod = "friendship"
	EvolveByTrade      EvolutionMethod = "trade"
)

// EvolutionRule is one alternative trigger set; the first satisfied rule
// fires. Zero values mean "no constraint" for optional fields.
type EvolutionRule struct {
	ToSpeciesID   uint            `json:"to_species_id"`
	Method        EvolutionMethod `json:"method"`
	Level         int             `json:"level,omitempty"`
	ItemID        uint            `json:"item_id,omitempty"`
	MinFriendship int             `json:"min_friendship,omitempty"`
	// TimeOfDay constrains friendship evolutions ("day"/"night", empty = any).
	TimeOfDay string `json:"time_of_day,omitempty"`
}

// LearnedMove is one row of a species level-up learn table.
type LearnedMove struct {
	Level  int  `json:"level"`
	MoveID uint `json:"move_id"`
}

// Species is an immutable static species record.
type Species struct {
	ID           uint            `json:"id"`
	Name         string          `json:"name"`
	BaseStats    StatBlock       `json:"base_stats"`
	Types        []Type          `json:"types"`
	CatchRate    int             `json:"catch_rate"` // 3..255
	GrowthRate   GrowthRate      `json:"growth_rate"`
	BaseExpYield int             `json:"base_exp_yield"`
	LearnTable   []LearnedMove   `json:"learn_table"`
	Evolutions   []EvolutionRule `json:"evolutions"`
}

// StatusKind is a major status condition; at most one at a time.
type StatusKind string

const (
	StatusNone      StatusKind = ""
	StatusSleep     StatusKind = "sleep"
	StatusParalysis StatusKind = "paralysis"
	StatusPoison    StatusKind = "poison"
	StatusBurn      StatusKind = "burn"
	StatusFreeze    StatusKind = "freeze"
)

// MajorStatus pairs a status kind with its remaining duration.
// TurnsLeft is meaningful only for sleep; -1 means "until cured".
type MajorStatus struct {
	Kind      StatusKind `json:"kind"`
	TurnsLeft int        `json:"turns_left"`
}

// VolatileKind is a non-exclusive, battle-scoped condition.
type VolatileKind string

const (
	VolatileConfusion VolatileKind = "confusion"
	VolatileFlinch    VolatileKind = "flinch"
	// VolatileCharging marks a combatant exposed mid charge move;
	// moves against it cannot miss.
	VolatileCharging VolatileKind = "charging"
)

// VolatileStatus tracks one active volatile condition.
// TurnsLeft of -1 means no countdown.
type VolatileStatus struct {
	TurnsLeft int `json:"turns_left"`
}

// MoveSlot is a known move with its remaining PP.
type MoveSlot struct {
	MoveID uint `json:"move_id"`
	PP     int  `json:"pp"`
}

// Combatant is a creature instance participating in a battle. The engine
// treats it as a snapshot: ResolveTurn clones the whole battle state and
// mutates only the clone.
type Combatant struct {
	InstanceID string    `json:"instance_id"`
	SpeciesID  uint      `json:"species_id"`
	Nickname   string    `json:"nickname"`
	Level      int       `json:"level"`
	IVs        StatBlock `json:"ivs"`
	EVs        StatBlock `json:"evs"`
	Nature     Nature    `json:"nature"`

	// Derived; recomputed whenever level or base inputs change.
	Stats     StatBlock `json:"stats"`
	CurrentHP int       `json:"current_hp"`

	Stages    StageSet                         `json:"stages"`
	Status    MajorStatus                      `json:"status"`
	Volatiles map[VolatileKind]*VolatileStatus `json:"volatiles,omitempty"`

	Moves []MoveSlot `json:"moves"`
	// Types defaults to the species types unless overridden.
	Types []Type `json:"types"`

	Experience int  `json:"experience"`
	Friendship int  `json:"friendship"`
	HeldItemID uint `json:"held_item_id,omitempty"`
	Traded     bool `json:"traded,omitempty"`
}

// Fainted reports whether the combatant is out of the battle.
func (c *Combatant) Fainted() bool { return c.CurrentHP <= 0 }

// HasVolatile reports whether the given volatile condition is active.
func (c *Combatant) HasVolatile(k VolatileKind) bool {
	if c.Volatiles == nil {
		return false
	}
	_, ok := c.Volatiles[k]
	return ok
}

// AddVolatile activates a volatile condition with the given countdown.
func (c *Combatant) AddVolatile(k VolatileKind, turns int) {
	if c.Volatiles == nil {
		c.Volatiles = make(map[VolatileKind]*VolatileStatus)
	}
	c.Volatiles[k] = &VolatileStatus{TurnsLeft: turns}
}

// RemoveVolatile clears a volatile condition if present.
func (c *Combatant) RemoveVolatile(k VolatileKind) {
	if c.Volatiles != nil {
		delete(c.Volatiles, k)
	}
}

// ApplyDamage reduces current HP, clamping at zero.
func (c *Combatant) ApplyDamage(dmg int) {
	c.CurrentHP -= dmg
	if c.CurrentHP < 0 {
		c.CurrentHP = 0
	}
}

// Heal raises current HP, clamping at max HP.
func (c *Combatant) Heal(amount int) {
	c.CurrentHP += amount
	if c.CurrentHP > c.Stats.HP {
		c.CurrentHP = c.Stats.HP
	}
}

// Clone returns a deep copy of the combatant.
func (c *Combatant) Clone() *Combatant {
	out := *c
	out.Moves = append([]MoveSlot(nil), c.Moves...)
	out.Types = append([]Type(nil), c.Types...)
	if c.Volatiles != nil {
		out.Volatiles = make(map[VolatileKind]*VolatileStatus, len(c.Volatiles))
		for k, v := range c.Volatiles {
			vs := *v
			out.Volatiles[k] = &vs
		}
	}
	return &out
}
