package api

import (
	"time"

	"github.com/vmoranv/pokebattle/internal/engine"
	"github.com/vmoranv/pokebattle/internal/metadata"
	"github.com/vmoranv/pokebattle/internal/storage"
)

// BattleHandler groups all HTTP handlers around the shared repository,
// the static catalog and the engine configuration.
type BattleHandler struct {
	repo          storage.Repository
	catalog       *metadata.Catalog
	cfg           engine.Config
	actionTimeout time.Duration
	hub           *StreamHub
}

// NewBattleHandler creates a BattleHandler with the given dependencies
// and configured per-turn action timeout.
func NewBattleHandler(repo storage.Repository, catalog *metadata.Catalog, cfg engine.Config, actionTimeout time.Duration) *BattleHandler {
	return &BattleHandler{
		repo:          repo,
		catalog:       catalog,
		cfg:           cfg,
		actionTimeout: actionTimeout,
		hub:           NewStreamHub(),
	}
}

// Hub exposes the stream hub so other components can publish.
func (h *BattleHandler) Hub() *StreamHub { return h.hub }
