package main

import (
	"time"

	"github.com/vmoranv/pokebattle/internal/engine"
	"github.com/vmoranv/pokebattle/internal/metadata"
	"github.com/vmoranv/pokebattle/internal/service"
)

// startTimeoutScanner periodically forfeits battles whose planning
// deadline passed. A zero timeout disables the scanner.
func startTimeoutScanner(repo service.TimeoutRepo, catalog *metadata.Catalog, cfg engine.Config, actionTimeout time.Duration) {
	if actionTimeout <= 0 {
		return
	}
	go func() {
		ticker := time.NewTicker(5 * time.Second)
		defer ticker.Stop()
		for range ticker.C {
			service.SweepTimedOutBattles(repo, catalog, cfg, actionTimeout, time.Now())
		}
	}()
}
