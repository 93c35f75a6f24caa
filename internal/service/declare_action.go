package service

import (
	"encoding/json"
	"math/rand"
	"time"

	"github.com/vmoranv/pokebattle/internal/constants"
	"github.com/vmoranv/pokebattle/internal/engine"
	"github.com/vmoranv/pokebattle/internal/game"
	"github.com/vmoranv/pokebattle/internal/logging"
	"github.com/vmoranv/pokebattle/internal/metadata"
	"github.com/vmoranv/pokebattle/internal/storage"
)

// ActionRepo is the minimal repository interface required by DeclareAction.
type ActionRepo interface {
	GetBattleByUUID(uuid string) (*storage.BattleRow, error)
	UpdateBattle(b *storage.BattleRow) error
	CreateCreature(c *storage.CreatureRow) error
	GetCreatureByInstanceID(id string) (*storage.CreatureRow, error)
	UpdateCreature(c *storage.CreatureRow) error
	GetPlayerByUUID(uuid string) (*storage.PlayerProfile, error)
	CreatePlayer(p *storage.PlayerProfile) error
	UpdatePlayer(p *storage.PlayerProfile) error
}

// ActionRequest is a player's declared action for the current turn, as
// received from the API. Items are referenced by ID and resolved against
// the catalog here.
type ActionRequest struct {
	Kind      game.ActionKind `json:"kind"`
	MoveIndex int             `json:"move_index"`
	SwitchTo  int             `json:"switch_to"`
	ItemID    uint            `json:"item_id"`
}

// DeclareAction stores one side's action and resolves the turn once both
// sides have declared. In a wild battle the wild side declares
// automatically. Returns the updated row, the turn log when the turn
// resolved, and whether it resolved.
func DeclareAction(repo ActionRepo, catalog *metadata.Catalog, cfg engine.Config, battleUUID, playerUUID string, req ActionRequest, actionTimeout time.Duration, seed int64) (*storage.BattleRow, *engine.TurnLog, bool, error) {
	row, err := repo.GetBattleByUUID(battleUUID)
	if err != nil || row == nil {
		return nil, nil, false, ErrBattleNotFound
	}
	state, err := row.BattleState()
	if err != nil {
		return nil, nil, false, err
	}
	if state.Status != game.StatusInProgress {
		return nil, nil, false, ErrBattleNotInProgress
	}
	if state.Phase != game.PhasePlanning {
		return nil, nil, false, ErrActionsLocked
	}

	side := sideIndexOf(state, playerUUID)
	if side < 0 {
		return nil, nil, false, ErrPlayerNotInBattle
	}
	if state.Sides[side].Pending != nil {
		return nil, nil, false, ErrActionAlreadyDeclared
	}

	action, err := resolveAction(catalog, state, side, req)
	if err != nil {
		return nil, nil, false, err
	}
	state.Sides[side].Pending = &action

	if state.Kind == game.BattleWild {
		declareWildAction(catalog, state, seed)
	}

	if state.Sides[0].Pending == nil || state.Sides[1].Pending == nil {
		if err := row.SetBattleState(state); err != nil {
			return nil, nil, false, err
		}
		if err := repo.UpdateBattle(row); err != nil {
			return nil, nil, false, err
		}
		return row, nil, false, nil
	}

	turnLog, err := resolvePendingTurn(repo, catalog, cfg, row, state, actionTimeout, seed)
	if err != nil {
		return nil, nil, false, err
	}
	return row, turnLog, true, nil
}

// resolvePendingTurn runs the engine on a state where both sides have a
// declared action and persists the result on the row.
func resolvePendingTurn(repo ActionRepo, catalog *metadata.Catalog, cfg engine.Config, row *storage.BattleRow, state *game.BattleState, actionTimeout time.Duration, seed int64) (*engine.TurnLog, error) {
	a0, a1 := *state.Sides[0].Pending, *state.Sides[1].Pending
	next, turnLog, err := engine.ResolveTurn(cfg, catalog, state, a0, a1, seed)
	if err != nil {
		return nil, err
	}
	logging.Info("turn resolved", logging.Fields{
		constants.LogFieldBattleID: state.BattleUUID,
		constants.LogFieldTurn:     turnLog.Turn,
		constants.LogFieldSeed:     seed,
	})

	if next.Status == game.StatusFinished {
		row.ActionDeadline = nil
		if err := finishBattle(repo, catalog, cfg, next, turnLog); err != nil {
			logging.Error("post-battle bookkeeping failed", err, logging.Fields{constants.LogFieldBattleID: state.BattleUUID})
		}
	} else {
		next.Phase = game.PhasePlanning
		if actionTimeout > 0 {
			deadline := time.Now().Add(actionTimeout)
			row.ActionDeadline = &deadline
		}
	}

	if err := row.SetBattleState(next); err != nil {
		return nil, err
	}
	if raw, err := json.Marshal(turnLog); err == nil {
		row.LastTurnLog = raw
	}
	if err := repo.UpdateBattle(row); err != nil {
		return turnLog, err
	}
	return turnLog, nil
}

func sideIndexOf(state *game.BattleState, playerUUID string) int {
	for i, s := range state.Sides {
		if s.OwnerUUID != "" && s.OwnerUUID == playerUUID {
			return i
		}
	}
	return -1
}

// resolveAction turns an API request into an engine action, resolving
// item references against the catalog. A ball item becomes a capture
// action carrying the target's catch rate.
func resolveAction(catalog *metadata.Catalog, state *game.BattleState, side int, req ActionRequest) (game.Action, error) {
	switch req.Kind {
	case game.ActionMove:
		return game.Action{Kind: game.ActionMove, MoveIndex: req.MoveIndex}, nil
	case game.ActionSwitch:
		return game.Action{Kind: game.ActionSwitch, SwitchTo: req.SwitchTo}, nil
	case game.ActionForfeit:
		return game.Action{Kind: game.ActionForfeit}, nil
	case game.ActionItem, game.ActionCapture:
		item, err := catalog.ItemByID(req.ItemID)
		if err != nil {
			return game.Action{}, err
		}
		if item.Kind == metadata.ItemBall {
			if state.Kind != game.BattleWild {
				return game.Action{}, ErrCaptureRequiresWild
			}
			target := state.Sides[1-side].ActiveCombatant()
			if target == nil {
				return game.Action{}, ErrBattleNotInProgress
			}
			sp, err := catalog.SpeciesByID(target.SpeciesID)
			if err != nil {
				return game.Action{}, err
			}
			return game.Action{
				Kind:         game.ActionCapture,
				ItemID:       item.ID,
				BallModifier: item.BallModifier,
				CatchRate:    sp.CatchRate,
			}, nil
		}
		return game.Action{
			Kind:        game.ActionItem,
			ItemID:      item.ID,
			HealAmount:  item.HealAmount,
			CuresStatus: item.CuresStatus,
		}, nil
	}
	return game.Action{}, ErrActionsLocked
}

// declareWildAction picks the wild side's move: a uniformly random slot
// with PP remaining.
func declareWildAction(catalog *metadata.Catalog, state *game.BattleState, seed int64) {
	wild := state.Sides[1]
	if wild.Pending != nil {
		return
	}
	active := wild.ActiveCombatant()
	if active == nil {
		wild.Pending = &game.Action{}
		return
	}
	rng := rand.New(rand.NewSource(seed))
	var usable []int
	for i, slot := range active.Moves {
		if slot.PP > 0 {
			if _, err := catalog.MoveByID(slot.MoveID); err == nil {
				usable = append(usable, i)
			}
		}
	}
	if len(usable) == 0 {
		wild.Pending = &game.Action{}
		return
	}
	wild.Pending = &game.Action{Kind: game.ActionMove, MoveIndex: usable[rng.Intn(len(usable))]}
}
