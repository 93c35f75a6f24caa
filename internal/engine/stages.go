package engine

// Stat stages range over [-6, +6]. Battle stats use halves (2/2 based),
// accuracy and evasion use thirds (3/3 based), matching the two classic
// lookup tables.

// ClampStage caps a stage value to the legal [-6, +6] range. Pushing past
// a bound is not an error; the orchestrator records it as a no-op effect.
func ClampStage(stage int) int {
	if stage > 6 {
		return 6
	}
	if stage < -6 {
		return -6
	}
	return stage
}

// StageMultiplier maps a battle-stat stage to its multiplier:
// (2+s)/2 for s >= 0, 2/(2-s) for s < 0.
func StageMultiplier(stage int) float64 {
	stage = ClampStage(stage)
	if stage >= 0 {
		return float64(2+stage) / 2.0
	}
	return 2.0 / float64(2-stage)
}

// AccuracyStageMultiplier maps an accuracy or evasion stage to its
// multiplier: (3+s)/3 for s >= 0, 3/(3-s) for s < 0.
func AccuracyStageMultiplier(stage int) float64 {
	stage = ClampStage(stage)
	if stage >= 0 {
		return float64(3+stage) / 3.0
	}
	return 3.0 / float64(3-stage)
}
