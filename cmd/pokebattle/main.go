package main

import (
	"os"

	"github.com/vmoranv/pokebattle/internal/api"
	"github.com/vmoranv/pokebattle/internal/config"
	"github.com/vmoranv/pokebattle/internal/constants"
	"github.com/vmoranv/pokebattle/internal/logging"

	"github.com/gin-gonic/gin"
)

func main() {
	envCfg, err := config.LoadEnv()
	if err != nil {
		logging.Fatal("Invalid environment configuration", err, nil)
	}
	logging.SetLevel(envCfg.LogLevel)

	cfg := loadGameDataOrExit(envCfg.GameDataPath)
	repo := createRepositoryOrExit(envCfg.DatabasePath)
	handler := api.NewBattleHandler(repo, cfg.Catalog, cfg.Engine, cfg.ActionTimeout)

	startTimeoutScanner(repo, cfg.Catalog, cfg.Engine, cfg.ActionTimeout)

	router := gin.Default()

	apiRoutes := router.Group(constants.RouteAPIPrefix)
	{
		// Static game data
		apiRoutes.GET(constants.RouteSpecies, handler.ListSpecies)
		apiRoutes.GET(constants.RouteVersion, api.Version)

		// Players and their creatures
		apiRoutes.POST(constants.RoutePlayers, handler.CreatePlayer)
		apiRoutes.GET(constants.RoutePlayers, handler.ListLeaderboard)
		apiRoutes.GET(constants.RoutePlayerByID, handler.GetPlayer)
		apiRoutes.GET(constants.RoutePlayerCreatures, handler.ListPlayerCreatures)
		apiRoutes.POST(constants.RoutePlayerCreatures, handler.SpawnCreature)

		// Battles
		apiRoutes.POST(constants.RouteBattles, handler.CreateBattle)
		apiRoutes.GET(constants.RouteBattleByID, handler.GetBattle)
		apiRoutes.POST(constants.RouteBattleAction, handler.SubmitAction)
		apiRoutes.POST(constants.RouteBattleCapture, handler.ThrowBall)
		apiRoutes.POST(constants.RouteBattleForfeit, handler.Forfeit)
		apiRoutes.GET(constants.RouteBattleStream, handler.StreamBattle)
	}

	// Start server on the configured address; an explicit env var wins
	// over the game data file.
	addr := cfg.ServerAddress
	if os.Getenv(constants.EnvServerAddress) != "" {
		addr = envCfg.Address
	}
	logging.Info("Server started", logging.Fields{constants.LogFieldAddr: addr})
	if err := router.Run(addr); err != nil {
		logging.Fatal("Failed to start server", err, nil)
	}
}
