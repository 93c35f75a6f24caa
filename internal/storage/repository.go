package storage

import "time"

type Repository interface {
	CreatePlayer(p *PlayerProfile) error
	GetPlayerByUUID(uuid string) (*PlayerProfile, error)
	UpdatePlayer(p *PlayerProfile) error
	// GetTopPlayers returns profiles ordered by wins, then captures.
	GetTopPlayers(limit int) ([]*PlayerProfile, error)

	CreateCreature(c *CreatureRow) error
	GetCreatureByInstanceID(id string) (*CreatureRow, error)
	GetCreaturesByOwner(ownerUUID string) ([]*CreatureRow, error)
	UpdateCreature(c *CreatureRow) error

	CreateBattle(b *BattleRow) error
	GetBattleByUUID(uuid string) (*BattleRow, error)
	UpdateBattle(b *BattleRow) error
	// FindTimedOutBattles returns in-progress battles whose action
	// deadline is at or before the provided time. The caller decides how
	// to resolve them (forfeiting the silent side, for example).
	FindTimedOutBattles(now time.Time) ([]*BattleRow, error)
}
