package engine

import "errors"

var (
	// ErrInvalidStatInput reports an out-of-range level, IV or EV. This is
	// a caller bug and is never retried.
	ErrInvalidStatInput = errors.New("invalid stat input")

	// ErrInvalidAction reports a declared action that cannot be executed
	// (0 PP, bad move index, switch to a fainted slot). The orchestrator
	// converts it to a forced no-op instead of aborting the turn.
	ErrInvalidAction = errors.New("invalid action")

	// ErrIllegalStateTransition reports an operation on a battle that is
	// already terminal. No state is mutated.
	ErrIllegalStateTransition = errors.New("illegal state transition")
)
