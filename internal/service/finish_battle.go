package service

import (
	"time"

	"github.com/vmoranv/pokebattle/internal/constants"
	"github.com/vmoranv/pokebattle/internal/engine"
	"github.com/vmoranv/pokebattle/internal/game"
	"github.com/vmoranv/pokebattle/internal/logging"
	"github.com/vmoranv/pokebattle/internal/metadata"
	"github.com/vmoranv/pokebattle/internal/storage"
)

// finishBattle applies post-battle bookkeeping: player profile counters,
// persisting a captured creature to its new owner, experience for the
// winner, and writing every surviving creature's state back to its row.
func finishBattle(repo ActionRepo, catalog *metadata.Catalog, cfg engine.Config, state *game.BattleState, turnLog *engine.TurnLog) error {
	captorSide, captured := captureResult(state, turnLog)

	for i, side := range state.Sides {
		if side.OwnerUUID == "" {
			continue
		}
		profile, err := upsertProfile(repo, side.OwnerUUID, side.OwnerName)
		if err != nil {
			return err
		}
		profile.BattlesPlayed++
		if state.WinnerSide == i {
			profile.Wins++
		}
		if captured != nil && captorSide == i {
			profile.Captures++
		}
		if err := repo.UpdatePlayer(profile); err != nil {
			return err
		}
	}

	if captured != nil {
		if err := persistCapture(repo, state.Sides[captorSide].OwnerUUID, captured); err != nil {
			return err
		}
	} else if state.WinnerSide >= 0 && state.Sides[state.WinnerSide].OwnerUUID != "" {
		awardExperience(catalog, cfg, state)
	}

	for _, side := range state.Sides {
		if side.OwnerUUID == "" {
			continue
		}
		syncPartyRows(repo, side)
	}
	return nil
}

// captureResult reports whether the battle ended in a successful capture
// and, if so, which side threw the ball and which combatant was caught.
func captureResult(state *game.BattleState, turnLog *engine.TurnLog) (int, *game.Combatant) {
	for _, e := range turnLog.Events {
		if e.Type == engine.EventCaptureThrow && e.Capture != nil && e.Capture.Success {
			return e.Side, state.Sides[1-e.Side].ActiveCombatant()
		}
	}
	return -1, nil
}

func upsertProfile(repo ActionRepo, uuid, name string) (*storage.PlayerProfile, error) {
	profile, err := repo.GetPlayerByUUID(uuid)
	if err == nil && profile != nil {
		return profile, nil
	}
	profile = &storage.PlayerProfile{PlayerUUID: uuid, Name: name}
	if err := repo.CreatePlayer(profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// persistCapture stores the caught creature under its new owner. Battle
// scoped state does not follow it out of the encounter.
func persistCapture(repo ActionRepo, ownerUUID string, c *game.Combatant) error {
	caught := c.Clone()
	caught.Stages = game.StageSet{}
	caught.Volatiles = nil
	row := &storage.CreatureRow{OwnerUUID: ownerUUID}
	if err := row.SetCombatant(caught); err != nil {
		return err
	}
	return repo.CreateCreature(row)
}

// awardExperience grants the winner's active combatant experience for
// every fainted opponent and runs growth in place, so the level, moves
// and a possible evolution land in the state before rows are synced.
func awardExperience(catalog *metadata.Catalog, cfg engine.Config, state *game.BattleState) {
	winner := state.Sides[state.WinnerSide]
	recipient := firstConscious(winner)
	if recipient == nil {
		return
	}
	trainer := state.Kind == game.BattleTrainer
	total := 0
	for _, beaten := range state.Sides[1-state.WinnerSide].Party {
		if !beaten.Fainted() {
			continue
		}
		sp, err := catalog.SpeciesByID(beaten.SpeciesID)
		if err != nil {
			continue
		}
		total += engine.ExpGain(cfg, sp.BaseExpYield, beaten.Level, trainer)
	}
	if total == 0 {
		return
	}
	rec, err := engine.EvaluateGrowth(cfg, catalog, recipient, total, engine.GrowthContext{TimeOfDay: timeOfDay(time.Now())})
	if err != nil {
		logging.Error("growth evaluation failed", err, logging.Fields{constants.LogFieldCreatureID: recipient.InstanceID})
		return
	}
	logging.Info("experience awarded", logging.Fields{
		constants.LogFieldCreatureID: recipient.InstanceID,
		"exp_gained":                 rec.ExpGained,
		"level":                      rec.LevelsTo,
	})
}

func firstConscious(s *game.Side) *game.Combatant {
	if c := s.ActiveCombatant(); c != nil && !c.Fainted() {
		return c
	}
	for _, c := range s.Party {
		if !c.Fainted() {
			return c
		}
	}
	return nil
}

// syncPartyRows writes each owned combatant back to its creature row.
// Missing rows are skipped; the battle state stays authoritative during
// play and the row catches up here.
func syncPartyRows(repo ActionRepo, side *game.Side) {
	for _, c := range side.Party {
		row, err := repo.GetCreatureByInstanceID(c.InstanceID)
		if err != nil || row == nil {
			continue
		}
		saved := c.Clone()
		saved.Stages = game.StageSet{}
		saved.Volatiles = nil
		if saved.CurrentHP < 0 {
			saved.CurrentHP = 0
		}
		if err := row.SetCombatant(saved); err != nil {
			continue
		}
		if err := repo.UpdateCreature(row); err != nil {
			logging.Error("creature sync failed", err, logging.Fields{constants.LogFieldCreatureID: c.InstanceID})
		}
	}
}

// timeOfDay maps a clock hour onto the day/night gate used by
// friendship evolutions.
func timeOfDay(now time.Time) string {
	h := now.Hour()
	if h >= 6 && h < 18 {
		return "day"
	}
	return "night"
}
