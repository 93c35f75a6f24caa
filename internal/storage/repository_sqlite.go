package storage

import (
	"time"

	"gorm.io/gorm"
)

type sqliteRepository struct {
	db *gorm.DB
}

func NewSQLiteRepository(db *gorm.DB) Repository {
	return &sqliteRepository{db: db}
}

func (r *sqliteRepository) CreatePlayer(p *PlayerProfile) error {
	return r.db.Create(p).Error
}

func (r *sqliteRepository) GetPlayerByUUID(uuid string) (*PlayerProfile, error) {
	var p PlayerProfile
	if err := r.db.Where("player_uuid = ?", uuid).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *sqliteRepository) UpdatePlayer(p *PlayerProfile) error {
	return r.db.Save(p).Error
}

// GetTopPlayers returns top N profiles ordered by Wins desc, then
// Captures desc, with name as a stable tiebreak.
func (r *sqliteRepository) GetTopPlayers(limit int) ([]*PlayerProfile, error) {
	if limit <= 0 {
		limit = 10
	}
	var players []*PlayerProfile
	if err := r.db.Model(&PlayerProfile{}).
		Order("wins DESC").
		Order("captures DESC").
		Order("name ASC").
		Limit(limit).
		Find(&players).Error; err != nil {
		return nil, err
	}
	return players, nil
}

func (r *sqliteRepository) CreateCreature(c *CreatureRow) error {
	return r.db.Create(c).Error
}

func (r *sqliteRepository) GetCreatureByInstanceID(id string) (*CreatureRow, error) {
	var c CreatureRow
	if err := r.db.Where("instance_id = ?", id).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *sqliteRepository) GetCreaturesByOwner(ownerUUID string) ([]*CreatureRow, error) {
	var creatures []*CreatureRow
	if err := r.db.Where("owner_uuid = ?", ownerUUID).Order("created_at").Find(&creatures).Error; err != nil {
		return nil, err
	}
	return creatures, nil
}

func (r *sqliteRepository) UpdateCreature(c *CreatureRow) error {
	return r.db.Save(c).Error
}

func (r *sqliteRepository) CreateBattle(b *BattleRow) error {
	return r.db.Create(b).Error
}

func (r *sqliteRepository) GetBattleByUUID(uuid string) (*BattleRow, error) {
	var b BattleRow
	if err := r.db.Where("battle_uuid = ?", uuid).First(&b).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *sqliteRepository) UpdateBattle(b *BattleRow) error {
	return r.db.Save(b).Error
}

func (r *sqliteRepository) FindTimedOutBattles(now time.Time) ([]*BattleRow, error) {
	var battles []*BattleRow
	if err := r.db.Where("status = ? AND action_deadline IS NOT NULL AND action_deadline <= ?",
		"in_progress", now).Find(&battles).Error; err != nil {
		return nil, err
	}
	return battles, nil
}
