package service

import (
	"encoding/json"
	"time"

	"github.com/vmoranv/pokebattle/internal/constants"
	"github.com/vmoranv/pokebattle/internal/engine"
	"github.com/vmoranv/pokebattle/internal/game"
	"github.com/vmoranv/pokebattle/internal/logging"
	"github.com/vmoranv/pokebattle/internal/metadata"
	"github.com/vmoranv/pokebattle/internal/storage"
)

// TimeoutRepo extends ActionRepo with the deadline scan.
type TimeoutRepo interface {
	ActionRepo
	FindTimedOutBattles(now time.Time) ([]*storage.BattleRow, error)
}

// SweepTimedOutBattles forfeits every side that let its action deadline
// pass. A side that already declared keeps its action; the silent side
// forfeits. When nobody declared the battle ends in a draw.
func SweepTimedOutBattles(repo TimeoutRepo, catalog *metadata.Catalog, cfg engine.Config, actionTimeout time.Duration, now time.Time) {
	rows, err := repo.FindTimedOutBattles(now)
	if err != nil {
		logging.Error("timeout scan failed", err, nil)
		return
	}
	for _, row := range rows {
		if err := handleTimedOutBattle(repo, catalog, cfg, row, actionTimeout, now); err != nil {
			logging.Error("timeout handling failed", err, logging.Fields{constants.LogFieldBattleID: row.BattleUUID})
		}
	}
}

func handleTimedOutBattle(repo TimeoutRepo, catalog *metadata.Catalog, cfg engine.Config, row *storage.BattleRow, actionTimeout time.Duration, now time.Time) error {
	state, err := row.BattleState()
	if err != nil {
		return err
	}
	if state.Status != game.StatusInProgress {
		row.ActionDeadline = nil
		return repo.UpdateBattle(row)
	}

	seed := now.UnixNano()
	if state.Kind == game.BattleWild {
		declareWildAction(catalog, state, seed)
	}

	silent := 0
	for _, side := range state.Sides {
		if side.Pending == nil {
			side.Pending = &game.Action{Kind: game.ActionForfeit}
			silent++
		}
	}
	logging.Info("action deadline passed", logging.Fields{
		constants.LogFieldBattleID: state.BattleUUID,
		constants.LogFieldTurn:     state.Turn,
		"silent_sides":             silent,
	})

	if silent == 2 {
		return finishAsDraw(repo, catalog, cfg, row, state, seed)
	}
	_, err = resolvePendingTurn(repo, catalog, cfg, row, state, actionTimeout, seed)
	return err
}

// finishAsDraw ends a battle where neither side acted before the
// deadline. Nobody wins; creatures and profiles still settle.
func finishAsDraw(repo TimeoutRepo, catalog *metadata.Catalog, cfg engine.Config, row *storage.BattleRow, state *game.BattleState, seed int64) error {
	state.Status = game.StatusFinished
	state.Phase = game.PhaseResolved
	state.WinnerSide = -1
	state.Sides[0].Pending = nil
	state.Sides[1].Pending = nil

	turnLog := &engine.TurnLog{Turn: state.Turn, Seed: seed, Events: []engine.Event{
		{Type: engine.EventBattleEnded, Side: -1, Reason: "deadline"},
	}}
	row.ActionDeadline = nil
	if err := finishBattle(repo, catalog, cfg, state, turnLog); err != nil {
		logging.Error("post-battle bookkeeping failed", err, logging.Fields{constants.LogFieldBattleID: state.BattleUUID})
	}
	if err := row.SetBattleState(state); err != nil {
		return err
	}
	if raw, err := json.Marshal(turnLog); err == nil {
		row.LastTurnLog = raw
	}
	return repo.UpdateBattle(row)
}
