package storage

import (
	"encoding/json"
	"time"

	"gorm.io/gorm"

	"github.com/vmoranv/pokebattle/internal/game"
)

// PlayerProfile is the persisted per-player record.
type PlayerProfile struct {
	gorm.Model
	PlayerUUID    string `gorm:"uniqueIndex" json:"player_uuid"`
	Name          string `json:"name"`
	BattlesPlayed int    `json:"battles_played"`
	Wins          int    `json:"wins"`
	Captures      int    `json:"captures"`
}

// CreatureRow persists one owned creature. The full combatant snapshot
// lives in Data as JSON; the indexed columns exist for queries and
// listing without decoding every blob.
type CreatureRow struct {
	gorm.Model
	InstanceID string `gorm:"uniqueIndex" json:"instance_id"`
	OwnerUUID  string `gorm:"index" json:"owner_uuid"`
	SpeciesID  uint   `json:"species_id"`
	Nickname   string `json:"nickname"`
	Level      int    `json:"level"`
	Experience int    `json:"experience"`
	Data       []byte `json:"-"`
}

// Combatant decodes the stored snapshot.
func (c *CreatureRow) Combatant() (*game.Combatant, error) {
	var out game.Combatant
	if err := json.Unmarshal(c.Data, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SetCombatant stores the snapshot and refreshes the indexed columns.
func (c *CreatureRow) SetCombatant(cb *game.Combatant) error {
	b, err := json.Marshal(cb)
	if err != nil {
		return err
	}
	c.Data = b
	c.InstanceID = cb.InstanceID
	c.SpeciesID = cb.SpeciesID
	c.Nickname = cb.Nickname
	c.Level = cb.Level
	c.Experience = cb.Experience
	return nil
}

// BattleRow persists one battle. The mutable battle state, including
// any declared-but-unresolved actions, is the State JSON blob.
type BattleRow struct {
	gorm.Model
	BattleUUID string `gorm:"uniqueIndex" json:"battle_uuid"`
	Kind       string `json:"kind"`
	HostUUID   string `gorm:"index" json:"host_uuid"`
	GuestUUID  string `gorm:"index" json:"guest_uuid"`
	Status     string `json:"status"`
	Turn       int    `json:"turn"`
	WinnerSide int    `json:"winner_side"`
	// ActionDeadline bounds how long a planning phase may sit idle
	// before the timeout sweep forfeits the battle.
	ActionDeadline *time.Time `json:"action_deadline,omitempty"`
	State          []byte     `json:"-"`
	// LastTurnLog holds the structured log of the most recently resolved
	// turn, for reads and the live stream.
	LastTurnLog []byte `json:"-"`
}

// BattleState decodes the stored state.
func (b *BattleRow) BattleState() (*game.BattleState, error) {
	var out game.BattleState
	if err := json.Unmarshal(b.State, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SetBattleState stores the state and refreshes the indexed columns.
func (b *BattleRow) SetBattleState(st *game.BattleState) error {
	raw, err := json.Marshal(st)
	if err != nil {
		return err
	}
	b.State = raw
	b.BattleUUID = st.BattleUUID
	b.Kind = string(st.Kind)
	b.Status = st.Status
	b.Turn = st.Turn
	b.WinnerSide = st.WinnerSide
	return nil
}
