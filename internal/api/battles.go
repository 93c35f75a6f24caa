package api

import (
	"encoding/json"
	"errors"
	"math/rand"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vmoranv/pokebattle/internal/constants"
	"github.com/vmoranv/pokebattle/internal/dedupe"
	"github.com/vmoranv/pokebattle/internal/engine"
	"github.com/vmoranv/pokebattle/internal/game"
	"github.com/vmoranv/pokebattle/internal/logging"
	"github.com/vmoranv/pokebattle/internal/service"
	"github.com/vmoranv/pokebattle/internal/storage"
)

// createBattleRequest is the POST /battles payload.
type createBattleRequest struct {
	Kind      game.BattleKind `json:"kind"`
	HostUUID  string          `json:"host_uuid"`
	HostName  string          `json:"host_name"`
	HostParty []string        `json:"host_party"`

	GuestUUID  string   `json:"guest_uuid,omitempty"`
	GuestName  string   `json:"guest_name,omitempty"`
	GuestParty []string `json:"guest_party,omitempty"`

	WildSpeciesID uint `json:"wild_species_id,omitempty"`
	WildLevel     int  `json:"wild_level,omitempty"`
}

// battlePayload decodes the stored blobs so clients receive the full
// state instead of raw bytes.
func battlePayload(row *storage.BattleRow) (gin.H, error) {
	state, err := row.BattleState()
	if err != nil {
		return nil, err
	}
	out := gin.H{
		"battle_uuid": row.BattleUUID,
		"kind":        row.Kind,
		"status":      row.Status,
		"turn":        row.Turn,
		"winner_side": row.WinnerSide,
		"state":       state,
	}
	if row.ActionDeadline != nil {
		out["action_deadline"] = row.ActionDeadline
	}
	if len(row.LastTurnLog) > 0 {
		var turnLog engine.TurnLog
		if err := json.Unmarshal(row.LastTurnLog, &turnLog); err == nil {
			out["last_turn_log"] = turnLog
		}
	}
	return out, nil
}

// CreateBattle starts a wild or trainer battle.
func (h *BattleHandler) CreateBattle(c *gin.Context) {
	var req createBattleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	row, err := service.StartBattle(h.repo, h.catalog, service.StartBattleRequest{
		Kind:          req.Kind,
		HostUUID:      req.HostUUID,
		HostName:      req.HostName,
		HostParty:     req.HostParty,
		GuestUUID:     req.GuestUUID,
		GuestName:     req.GuestName,
		GuestParty:    req.GuestParty,
		WildSpeciesID: req.WildSpeciesID,
		WildLevel:     req.WildLevel,
		ActionTimeout: h.actionTimeout,
	}, rand.New(rand.NewSource(time.Now().UnixNano())))
	if err != nil {
		status, msg := mapServiceError(err)
		c.JSON(status, gin.H{constants.JSONKeyError: msg})
		return
	}
	logging.Info("battle created", logging.Fields{
		constants.LogFieldBattleID:   row.BattleUUID,
		constants.LogFieldPlayerUUID: req.HostUUID,
		"kind":                       string(req.Kind),
	})
	payload, err := battlePayload(row)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedCreateBattle})
		return
	}
	c.JSON(http.StatusCreated, payload)
}

// GetBattle returns a battle by UUID, including the decoded state and
// the most recent turn log. Concurrent reads of the same battle share
// one repository lookup.
func (h *BattleHandler) GetBattle(c *gin.Context) {
	battleUUID := c.Param("battleUUID")
	if _, err := uuid.Parse(battleUUID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidBattleID})
		return
	}
	v, err, _ := dedupe.BattleGroup.Do(battleUUID, func() (interface{}, error) {
		return h.repo.GetBattleByUUID(battleUUID)
	})
	row, _ := v.(*storage.BattleRow)
	if err != nil || row == nil {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrBattleNotFound})
		return
	}
	payload, err := battlePayload(row)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchBattles})
		return
	}
	c.JSON(http.StatusOK, payload)
}

// actionRequest is the POST /battles/:battleUUID/action payload.
type actionRequest struct {
	PlayerUUID string          `json:"player_uuid"`
	Kind       game.ActionKind `json:"kind"`
	MoveIndex  int             `json:"move_index"`
	SwitchTo   int             `json:"switch_to"`
	ItemID     uint            `json:"item_id"`
}

// SubmitAction stores one side's declared action. The turn resolves as
// soon as both sides have declared; the resulting log is returned and
// published to stream subscribers.
func (h *BattleHandler) SubmitAction(c *gin.Context) {
	var req actionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	h.declare(c, req.PlayerUUID, service.ActionRequest{
		Kind:      req.Kind,
		MoveIndex: req.MoveIndex,
		SwitchTo:  req.SwitchTo,
		ItemID:    req.ItemID,
	})
}

// captureRequest is the POST /battles/:battleUUID/capture payload.
type captureRequest struct {
	PlayerUUID string `json:"player_uuid"`
	BallItemID uint   `json:"ball_item_id"`
}

// ThrowBall declares a capture attempt with the given ball item.
func (h *BattleHandler) ThrowBall(c *gin.Context) {
	var req captureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	h.declare(c, req.PlayerUUID, service.ActionRequest{Kind: game.ActionCapture, ItemID: req.BallItemID})
}

// forfeitRequest is the POST /battles/:battleUUID/forfeit payload.
type forfeitRequest struct {
	PlayerUUID string `json:"player_uuid"`
}

// Forfeit concedes the battle for the declaring side.
func (h *BattleHandler) Forfeit(c *gin.Context) {
	var req forfeitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	h.declare(c, req.PlayerUUID, service.ActionRequest{Kind: game.ActionForfeit})
}

func (h *BattleHandler) declare(c *gin.Context, playerUUID string, req service.ActionRequest) {
	battleUUID := c.Param("battleUUID")
	if _, err := uuid.Parse(battleUUID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidBattleID})
		return
	}
	seed := time.Now().UnixNano()
	row, turnLog, resolved, err := service.DeclareAction(h.repo, h.catalog, h.cfg, battleUUID, playerUUID, req, h.actionTimeout, seed)
	if err != nil {
		status, msg := mapServiceError(err)
		c.JSON(status, gin.H{constants.JSONKeyError: msg})
		return
	}
	payload, err := battlePayload(row)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedUpdateBattle})
		return
	}
	payload["resolved"] = resolved
	if resolved {
		h.hub.Publish(battleUUID, turnLog)
	}
	c.JSON(http.StatusOK, payload)
}

// mapServiceError translates service sentinel errors to HTTP responses.
func mapServiceError(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrBattleNotFound):
		return http.StatusNotFound, constants.ErrBattleNotFound
	case errors.Is(err, service.ErrBattleNotInProgress):
		return http.StatusConflict, constants.ErrBattleNotInProgress
	case errors.Is(err, service.ErrActionsLocked):
		return http.StatusConflict, constants.ErrBattleNotInProgress
	case errors.Is(err, service.ErrActionAlreadyDeclared):
		return http.StatusConflict, constants.ErrActionAlreadyDeclared
	case errors.Is(err, service.ErrPlayerNotInBattle):
		return http.StatusForbidden, constants.ErrNotPartOfThisBattle
	case errors.Is(err, service.ErrCaptureRequiresWild):
		return http.StatusBadRequest, constants.ErrCaptureNotAllowed
	case errors.Is(err, service.ErrPlayerNotFound):
		return http.StatusNotFound, constants.ErrPlayerNotFound
	case errors.Is(err, service.ErrCreatureNotFound):
		return http.StatusNotFound, constants.ErrCreatureNotFound
	case errors.Is(err, service.ErrNotOwner),
		errors.Is(err, service.ErrEmptyParty),
		errors.Is(err, service.ErrPartyTooLarge):
		return http.StatusBadRequest, err.Error()
	}
	return http.StatusInternalServerError, constants.ErrInvalidRequest
}
