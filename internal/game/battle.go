package game

// BattleKind distinguishes wild encounters from trainer battles.
type BattleKind string

const (
	BattleWild    BattleKind = "wild"
	BattleTrainer BattleKind = "trainer"
)

// Battle status values.
const (
	StatusWaiting    = "waiting"
	StatusInProgress = "in_progress"
	StatusFinished   = "finished"
)

// Battle phase values.
const (
	PhasePlanning  = "planning"
	PhaseResolving = "resolving"
	PhaseResolved  = "resolved"
)

// ActionKind is a declared action for one side of a turn.
type ActionKind string

const (
	ActionNone    ActionKind = ""
	ActionMove    ActionKind = "move"
	ActionItem    ActionKind = "item"
	ActionSwitch  ActionKind = "switch"
	ActionCapture ActionKind = "capture"
	ActionForfeit ActionKind = "forfeit"
)

// Action is one side's declared action for the current turn.
type Action struct {
	Kind ActionKind `json:"kind"`
	// MoveIndex indexes the actor's move slots when Kind == ActionMove.
	MoveIndex int `json:"move_index,omitempty"`
	// SwitchTo indexes the side's party when Kind == ActionSwitch.
	SwitchTo int `json:"switch_to,omitempty"`
	// ItemID identifies the consumed item when Kind == ActionItem. The
	// item's battle effect is carried in HealAmount and CuresStatus; the
	// resolution loop never looks items up.
	ItemID uint `json:"item_id,omitempty"`
	// HealAmount is the HP an item restores when Kind == ActionItem.
	HealAmount int `json:"heal_amount,omitempty"`
	// CuresStatus makes an item clear the actor's major status.
	CuresStatus bool `json:"cures_status,omitempty"`
	// BallModifier is the capture-item multiplier when Kind == ActionCapture.
	BallModifier float64 `json:"ball_modifier,omitempty"`
	// CatchRate is the target species' catch rate, resolved by the caller
	// alongside BallModifier.
	CatchRate int `json:"catch_rate,omitempty"`
}

// FieldEffect is one active battle-wide effect with its countdown.
type FieldEffect struct {
	Kind      EffectKind `json:"kind"`
	TurnsLeft int        `json:"turns_left"`
}

// FieldState holds the weather slot and the terrain slot. A newly
// applied effect overwrites the prior effect in the same slot.
type FieldState struct {
	Weather *FieldEffect `json:"weather,omitempty"`
	Terrain *FieldEffect `json:"terrain,omitempty"`
}

// Clone returns a deep copy of the field state.
func (f FieldState) Clone() FieldState {
	out := FieldState{}
	if f.Weather != nil {
		w := *f.Weather
		out.Weather = &w
	}
	if f.Terrain != nil {
		t := *f.Terrain
		out.Terrain = &t
	}
	return out
}

// Side is one participant: a party of combatants with one active slot.
type Side struct {
	OwnerUUID string       `json:"owner_uuid"`
	OwnerName string       `json:"owner_name"`
	Party     []*Combatant `json:"party"`
	Active    int          `json:"active"`
	// Pending holds the declared action for the current turn, nil until
	// declared. The orchestrator consumes and clears it.
	Pending *Action `json:"pending,omitempty"`
}

// ActiveCombatant returns the active combatant, nil when the slot is empty.
func (s *Side) ActiveCombatant() *Combatant {
	if s.Active < 0 || s.Active >= len(s.Party) {
		return nil
	}
	return s.Party[s.Active]
}

// Defeated reports whether no combatant on the side has HP left.
func (s *Side) Defeated() bool {
	for _, c := range s.Party {
		if !c.Fainted() {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of the side, without the pending action.
func (s *Side) Clone() *Side {
	out := &Side{OwnerUUID: s.OwnerUUID, OwnerName: s.OwnerName, Active: s.Active}
	out.Party = make([]*Combatant, len(s.Party))
	for i, c := range s.Party {
		out.Party[i] = c.Clone()
	}
	return out
}

// BattleState is the full mutable state of one battle. It is owned by a
// single caller at a time; the engine never retains a reference.
type BattleState struct {
	BattleUUID string     `json:"battle_uuid"`
	Kind       BattleKind `json:"kind"`
	Sides      [2]*Side   `json:"sides"`
	Field      FieldState `json:"field"`
	Turn       int        `json:"turn"`
	Status     string     `json:"status"`
	Phase      string     `json:"phase"`
	WinnerSide int        `json:"winner_side"` // -1 until finished
}

// Terminal reports whether the battle has reached an end state.
func (b *BattleState) Terminal() bool {
	return b.Status == StatusFinished || b.Sides[0].Defeated() || b.Sides[1].Defeated()
}

// Clone returns a deep copy of the battle state. Pending actions are not
// carried over; the orchestrator receives actions explicitly.
func (b *BattleState) Clone() *BattleState {
	out := &BattleState{
		BattleUUID: b.BattleUUID,
		Kind:       b.Kind,
		Field:      b.Field.Clone(),
		Turn:       b.Turn,
		Status:     b.Status,
		Phase:      b.Phase,
		WinnerSide: b.WinnerSide,
	}
	out.Sides[0] = b.Sides[0].Clone()
	out.Sides[1] = b.Sides[1].Clone()
	return out
}
