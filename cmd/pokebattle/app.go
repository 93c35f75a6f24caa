package main

import (
	"github.com/vmoranv/pokebattle/internal/config"
	"github.com/vmoranv/pokebattle/internal/logging"
	"github.com/vmoranv/pokebattle/internal/storage"
)

func loadGameDataOrExit(path string) *config.LoadedConfig {
	cfg, err := config.LoadGameData(path)
	if err != nil {
		logging.Fatal("Missing or invalid game data", err, logging.Fields{"game_data_path": path, "hint": "create a game_data.json with 'species_list' and 'move_list' arrays plus optional natures, items, type_chart, tuning and server keys"})
	}
	return cfg
}

func createRepositoryOrExit(dbPath string) storage.Repository {
	db, err := storage.OpenAndMigrate(dbPath)
	if err != nil {
		logging.Fatal("Failed to initialize database", err, logging.Fields{"db_path": dbPath})
	}
	return storage.NewSQLiteRepository(db)
}
