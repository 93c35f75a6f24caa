package engine

import "github.com/vmoranv/pokebattle/internal/game"

// Config carries every tunable constant the engine uses. It is threaded
// into each entry point explicitly so simulation runs are deterministic
// and test-isolated; nothing in this package reads global state.
type Config struct {
	// Critical hits
	CritRate       float64
	CritMultiplier float64

	StabMultiplier float64

	// Major status behavior
	ParalysisStopChance   float64
	ThawChance            float64
	SleepMinTurns         int
	SleepMaxTurns         int
	BurnResidualDivisor   int // fraction of max HP lost per turn (1/N)
	PoisonResidualDivisor int

	// Volatile status behavior
	ConfusionMinTurns      int
	ConfusionMaxTurns      int
	ConfusionSelfHitChance float64
	ConfusionSelfHitPower  int

	// Field effects
	FieldEffectDuration  int
	FieldResidualDivisor int // sandstorm chip / grassy heal (1/N of max HP)

	// Capture
	BallStatusStrongMultiplier float64 // sleep, freeze
	BallStatusWeakMultiplier   float64 // paralysis, poison, burn

	// Growth
	MaxLevel                     int
	ExpGainDivisor               int
	TrainerExpMultiplier         float64
	FriendshipEvolutionThreshold int

	// TypeChart resolves move-type effectiveness. An empty chart treats
	// every matchup as neutral.
	TypeChart game.TypeChart
}

// DefaultConfig returns the engine constants used in production. The
// source material leaves crit rate, field durations and the friendship
// threshold open; the values here are the documented choices.
func DefaultConfig() Config {
	return Config{
		CritRate:       1.0 / 16.0,
		CritMultiplier: 1.5,

		StabMultiplier: 1.5,

		ParalysisStopChance:   0.25,
		ThawChance:            0.20,
		SleepMinTurns:         2,
		SleepMaxTurns:         4,
		BurnResidualDivisor:   16,
		PoisonResidualDivisor: 8,

		ConfusionMinTurns:      2,
		ConfusionMaxTurns:      5,
		ConfusionSelfHitChance: 1.0 / 3.0,
		ConfusionSelfHitPower:  40,

		FieldEffectDuration:  5,
		FieldResidualDivisor: 16,

		BallStatusStrongMultiplier: 2.5,
		BallStatusWeakMultiplier:   1.5,

		MaxLevel:                     100,
		ExpGainDivisor:               7,
		TrainerExpMultiplier:         1.5,
		FriendshipEvolutionThreshold: 220,

		TypeChart: game.TypeChart{},
	}
}
