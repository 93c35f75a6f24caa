package api

import (
	"math/rand"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vmoranv/pokebattle/internal/constants"
	"github.com/vmoranv/pokebattle/internal/dedupe"
	"github.com/vmoranv/pokebattle/internal/logging"
	"github.com/vmoranv/pokebattle/internal/service"
	"github.com/vmoranv/pokebattle/internal/storage"
)

// createPlayerRequest is the POST /players payload. PlayerUUID is
// optional; one is assigned when omitted.
type createPlayerRequest struct {
	PlayerUUID string `json:"player_uuid"`
	Name       string `json:"name"`
}

// CreatePlayer registers a player profile.
func (h *BattleHandler) CreatePlayer(c *gin.Context) {
	var req createPlayerRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	if req.PlayerUUID == "" {
		req.PlayerUUID = uuid.NewString()
	}
	if existing, err := h.repo.GetPlayerByUUID(req.PlayerUUID); err == nil && existing != nil {
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	profile := &storage.PlayerProfile{PlayerUUID: req.PlayerUUID, Name: req.Name}
	if err := h.repo.CreatePlayer(profile); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	out, err := MarshalIntoSnakeTimestamps(profile)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	c.JSON(http.StatusCreated, out)
}

// GetPlayer returns a player profile with its battle counters.
func (h *BattleHandler) GetPlayer(c *gin.Context) {
	profile, err := h.repo.GetPlayerByUUID(c.Param("playerUUID"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrPlayerNotFound})
		return
	}
	out, err := MarshalIntoSnakeTimestamps(profile)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrPlayerNotFound})
		return
	}
	c.JSON(http.StatusOK, out)
}

// ListLeaderboard returns the top players by wins, limited to top 10 by
// default. Accepts ?limit=N up to 100.
func (h *BattleHandler) ListLeaderboard(c *gin.Context) {
	limit := 10
	if s := c.Query("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}
	v, err, _ := dedupe.LeaderboardGroup.Do(strconv.Itoa(limit), func() (interface{}, error) {
		return h.repo.GetTopPlayers(limit)
	})
	players, _ := v.([]*storage.PlayerProfile)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrPlayerNotFound})
		return
	}
	out, err := MarshalIntoSnakeTimestamps(players)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrPlayerNotFound})
		return
	}
	c.JSON(http.StatusOK, out)
}

// ListPlayerCreatures returns every creature owned by a player.
func (h *BattleHandler) ListPlayerCreatures(c *gin.Context) {
	rows, err := h.repo.GetCreaturesByOwner(c.Param("playerUUID"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchCreatures})
		return
	}
	out := make([]interface{}, 0, len(rows))
	for _, row := range rows {
		cb, err := row.Combatant()
		if err != nil {
			continue
		}
		out = append(out, cb)
	}
	c.JSON(http.StatusOK, out)
}

// spawnCreatureRequest is the POST /players/:playerUUID/creatures payload.
type spawnCreatureRequest struct {
	SpeciesID uint `json:"species_id"`
	Level     int  `json:"level"`
}

// SpawnCreature creates a new creature instance for the player.
func (h *BattleHandler) SpawnCreature(c *gin.Context) {
	ownerUUID := c.Param("playerUUID")
	if _, err := h.repo.GetPlayerByUUID(ownerUUID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrPlayerNotFound})
		return
	}
	var req spawnCreatureRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Level <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	row, err := service.SpawnCreature(h.repo, h.catalog, ownerUUID, req.SpeciesID, req.Level, rand.New(rand.NewSource(time.Now().UnixNano())))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	cb, err := row.Combatant()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	logging.Info("creature spawned", logging.Fields{
		constants.LogFieldPlayerUUID: ownerUUID,
		constants.LogFieldCreatureID: row.InstanceID,
		constants.LogFieldSpeciesID:  req.SpeciesID,
	})
	c.JSON(http.StatusCreated, cb)
}
