package service

import (
	"errors"
	"testing"
	"time"

	"github.com/vmoranv/pokebattle/internal/engine"
	"github.com/vmoranv/pokebattle/internal/game"
)

func TestDeclareAction_WildResolvesImmediately(t *testing.T) {
	repo := newMockRepo()
	catalog := testCatalog(t)
	cfg := testConfig(catalog)
	row := startWildBattle(t, repo, catalog, "host-1", 5)

	updated, turnLog, resolved, err := DeclareAction(repo, catalog, cfg, row.BattleUUID, "host-1",
		ActionRequest{Kind: game.ActionMove, MoveIndex: 0}, 0, 42)
	if err != nil {
		t.Fatalf("DeclareAction: %v", err)
	}
	if !resolved || turnLog == nil {
		t.Fatal("wild battle should resolve on the host's declaration")
	}
	if turnLog.Seed != 42 {
		t.Fatalf("log seed = %d, want 42", turnLog.Seed)
	}
	if len(updated.LastTurnLog) == 0 {
		t.Fatal("LastTurnLog not stored")
	}

	st := battleState(t, updated)
	if st.Status == game.StatusInProgress {
		if st.Turn != 2 || st.Phase != game.PhasePlanning {
			t.Fatalf("turn=%d phase=%q after resolution", st.Turn, st.Phase)
		}
		if st.Sides[0].Pending != nil || st.Sides[1].Pending != nil {
			t.Fatal("pending actions not cleared")
		}
	}
}

func TestDeclareAction_SameSeedSameOutcome(t *testing.T) {
	catalog := testCatalog(t)
	cfg := testConfig(catalog)

	run := func() []byte {
		repo := newMockRepo()
		row := startWildBattle(t, repo, catalog, "host-1", 5)
		// rebuild the state so both runs start identical
		st := battleState(t, row)
		st.BattleUUID = "fixed"
		for _, s := range st.Sides {
			for _, c := range s.Party {
				c.InstanceID = "fixed-" + c.Nickname
			}
		}
		if err := row.SetBattleState(st); err != nil {
			t.Fatalf("SetBattleState: %v", err)
		}
		repo.battles["fixed"] = row

		updated, _, _, err := DeclareAction(repo, catalog, cfg, "fixed", "host-1",
			ActionRequest{Kind: game.ActionMove, MoveIndex: 0}, 0, 99)
		if err != nil {
			t.Fatalf("DeclareAction: %v", err)
		}
		return updated.State
	}

	if string(run()) != string(run()) {
		t.Fatal("same seed produced different states")
	}
}

func TestDeclareAction_TrainerWaitsForBoth(t *testing.T) {
	repo := newMockRepo()
	catalog := testCatalog(t)
	cfg := testConfig(catalog)
	row := startTrainerBattle(t, repo, catalog, "host-1", "guest-1")

	_, turnLog, resolved, err := DeclareAction(repo, catalog, cfg, row.BattleUUID, "host-1",
		ActionRequest{Kind: game.ActionMove, MoveIndex: 0}, 0, 1)
	if err != nil {
		t.Fatalf("host declaration: %v", err)
	}
	if resolved || turnLog != nil {
		t.Fatal("turn resolved with only one declaration")
	}
	st := battleState(t, repo.battles[row.BattleUUID])
	if st.Sides[0].Pending == nil {
		t.Fatal("host action not stored")
	}

	_, turnLog, resolved, err = DeclareAction(repo, catalog, cfg, row.BattleUUID, "guest-1",
		ActionRequest{Kind: game.ActionMove, MoveIndex: 0}, 0, 1)
	if err != nil {
		t.Fatalf("guest declaration: %v", err)
	}
	if !resolved || turnLog == nil {
		t.Fatal("turn did not resolve after both declared")
	}
}

func TestDeclareAction_ItemResolvedFromCatalog(t *testing.T) {
	repo := newMockRepo()
	catalog := testCatalog(t)
	cfg := testConfig(catalog)
	row := startTrainerBattle(t, repo, catalog, "host-1", "guest-1")

	_, _, _, err := DeclareAction(repo, catalog, cfg, row.BattleUUID, "host-1",
		ActionRequest{Kind: game.ActionItem, ItemID: 1}, 0, 1)
	if err != nil {
		t.Fatalf("DeclareAction: %v", err)
	}

	pending := battleState(t, repo.battles[row.BattleUUID]).Sides[0].Pending
	if pending == nil || pending.Kind != game.ActionItem {
		t.Fatalf("pending = %+v", pending)
	}
	if pending.HealAmount != 20 || pending.CuresStatus {
		t.Fatalf("item effect not resolved: %+v", pending)
	}
}

func TestDeclareAction_BallBecomesCapture(t *testing.T) {
	repo := newMockRepo()
	catalog := testCatalog(t)
	cfg := testConfig(catalog)
	row := startWildBattle(t, repo, catalog, "host-1", 5)

	updated, turnLog, resolved, err := DeclareAction(repo, catalog, cfg, row.BattleUUID, "host-1",
		ActionRequest{Kind: game.ActionItem, ItemID: 4}, 0, 7)
	if err != nil {
		t.Fatalf("DeclareAction: %v", err)
	}
	if !resolved {
		t.Fatal("wild battle should resolve")
	}

	var throw *engine.Event
	for i, e := range turnLog.Events {
		if e.Type == engine.EventCaptureThrow {
			throw = &turnLog.Events[i]
		}
	}
	if throw == nil || throw.Capture == nil {
		t.Fatal("no capture throw in turn log")
	}

	st := battleState(t, updated)
	if throw.Capture.Success {
		if st.Status != game.StatusFinished || st.WinnerSide != 0 {
			t.Fatalf("capture succeeded but status=%q winner=%d", st.Status, st.WinnerSide)
		}
		if repo.players["host-1"].Captures != 1 {
			t.Fatal("capture not counted on the profile")
		}
	} else if st.Status == game.StatusFinished && st.WinnerSide == 0 {
		t.Fatal("battle ended for host without a successful capture")
	}
}

func TestDeclareAction_CaptureRejectedInTrainerBattle(t *testing.T) {
	repo := newMockRepo()
	catalog := testCatalog(t)
	cfg := testConfig(catalog)
	row := startTrainerBattle(t, repo, catalog, "host-1", "guest-1")

	_, _, _, err := DeclareAction(repo, catalog, cfg, row.BattleUUID, "host-1",
		ActionRequest{Kind: game.ActionItem, ItemID: 3}, 0, 1)
	if !errors.Is(err, ErrCaptureRequiresWild) {
		t.Fatalf("err = %v, want ErrCaptureRequiresWild", err)
	}
}

func TestDeclareAction_Validation(t *testing.T) {
	repo := newMockRepo()
	catalog := testCatalog(t)
	cfg := testConfig(catalog)
	row := startTrainerBattle(t, repo, catalog, "host-1", "guest-1")
	move := ActionRequest{Kind: game.ActionMove, MoveIndex: 0}

	if _, _, _, err := DeclareAction(repo, catalog, cfg, "missing", "host-1", move, 0, 1); !errors.Is(err, ErrBattleNotFound) {
		t.Fatalf("unknown battle: err = %v", err)
	}
	if _, _, _, err := DeclareAction(repo, catalog, cfg, row.BattleUUID, "stranger", move, 0, 1); !errors.Is(err, ErrPlayerNotInBattle) {
		t.Fatalf("stranger: err = %v", err)
	}

	if _, _, _, err := DeclareAction(repo, catalog, cfg, row.BattleUUID, "host-1", move, 0, 1); err != nil {
		t.Fatalf("first declaration: %v", err)
	}
	if _, _, _, err := DeclareAction(repo, catalog, cfg, row.BattleUUID, "host-1", move, 0, 1); !errors.Is(err, ErrActionAlreadyDeclared) {
		t.Fatalf("double declaration: err = %v", err)
	}

	// finished battles reject further actions
	st := battleState(t, repo.battles[row.BattleUUID])
	st.Status = game.StatusFinished
	if err := repo.battles[row.BattleUUID].SetBattleState(st); err != nil {
		t.Fatalf("SetBattleState: %v", err)
	}
	if _, _, _, err := DeclareAction(repo, catalog, cfg, row.BattleUUID, "guest-1", move, 0, 1); !errors.Is(err, ErrBattleNotInProgress) {
		t.Fatalf("finished battle: err = %v", err)
	}
}

func TestDeclareAction_ResetsDeadlineWhileRunning(t *testing.T) {
	repo := newMockRepo()
	catalog := testCatalog(t)
	cfg := testConfig(catalog)
	row := startWildBattle(t, repo, catalog, "host-1", 5)

	updated, _, resolved, err := DeclareAction(repo, catalog, cfg, row.BattleUUID, "host-1",
		ActionRequest{Kind: game.ActionMove, MoveIndex: 0}, 30*time.Second, 5)
	if err != nil {
		t.Fatalf("DeclareAction: %v", err)
	}
	if !resolved {
		t.Fatal("wild battle should resolve")
	}
	st := battleState(t, updated)
	if st.Status == game.StatusInProgress && updated.ActionDeadline == nil {
		t.Fatal("deadline not renewed for the next turn")
	}
	if st.Status == game.StatusFinished && updated.ActionDeadline != nil {
		t.Fatal("deadline left on a finished battle")
	}
}
