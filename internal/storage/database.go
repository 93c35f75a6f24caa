package storage

import (
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func OpenAndMigrate(dataSourceName string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dataSourceName), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	// Keep schema updated via AutoMigrate; static game data never lives
	// in the database, the config file is the single source of truth.
	if err := db.AutoMigrate(&PlayerProfile{}, &CreatureRow{}, &BattleRow{}); err != nil {
		return nil, err
	}
	return db, nil
}
