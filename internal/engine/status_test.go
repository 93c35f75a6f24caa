package engine

import (
	"math/rand"
	"testing"

	"github.com/vmoranv/pokebattle/internal/game"
)

func TestApplyMajorStatus_Exclusivity(t *testing.T) {
	cfg := DefaultConfig()
	rng := rand.New(rand.NewSource(1))
	c := newTestCombatant(50, flatStats(100), game.TypeNormal)

	if !ApplyMajorStatus(cfg, rng, c, game.StatusBurn) {
		t.Fatal("first status must apply")
	}
	if ApplyMajorStatus(cfg, rng, c, game.StatusPoison) {
		t.Fatal("second status must silently fail")
	}
	if c.Status.Kind != game.StatusBurn {
		t.Fatalf("status overwritten: got %s", c.Status.Kind)
	}
}

func TestApplyMajorStatus_TypeImmunities(t *testing.T) {
	cfg := DefaultConfig()
	rng := rand.New(rand.NewSource(1))

	cases := []struct {
		typ    game.Type
		status game.StatusKind
	}{
		{game.TypeFire, game.StatusBurn},
		{game.TypeIce, game.StatusFreeze},
		{game.TypeElectric, game.StatusParalysis},
		{game.TypePoison, game.StatusPoison},
		{game.TypeSteel, game.StatusPoison},
	}
	for _, tc := range cases {
		c := newTestCombatant(50, flatStats(100), tc.typ)
		if ApplyMajorStatus(cfg, rng, c, tc.status) {
			t.Fatalf("%s type must be immune to %s", tc.typ, tc.status)
		}
	}
}

func TestApplyMajorStatus_SleepDuration(t *testing.T) {
	cfg := DefaultConfig()
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 50; i++ {
		c := newTestCombatant(50, flatStats(100), game.TypeNormal)
		if !ApplyMajorStatus(cfg, rng, c, game.StatusSleep) {
			t.Fatal("sleep must apply to a clean target")
		}
		if c.Status.TurnsLeft < cfg.SleepMinTurns || c.Status.TurnsLeft > cfg.SleepMaxTurns {
			t.Fatalf("sleep turns %d outside [%d,%d]", c.Status.TurnsLeft, cfg.SleepMinTurns, cfg.SleepMaxTurns)
		}
	}
}

func TestCureMajorStatus(t *testing.T) {
	c := newTestCombatant(50, flatStats(100), game.TypeNormal)
	if CureMajorStatus(c) {
		t.Fatal("curing a clean target must report false")
	}
	c.Status = game.MajorStatus{Kind: game.StatusPoison, TurnsLeft: -1}
	if !CureMajorStatus(c) {
		t.Fatal("cure must succeed")
	}
	if c.Status.Kind != game.StatusNone {
		t.Fatalf("status not cleared: %s", c.Status.Kind)
	}
}

func TestCheckCanAct_SleepCountdownAndWake(t *testing.T) {
	cfg := DefaultConfig()
	rng := rand.New(rand.NewSource(1))
	c := newTestCombatant(50, flatStats(100), game.TypeNormal)
	c.Status = game.MajorStatus{Kind: game.StatusSleep, TurnsLeft: 2}

	gate := checkCanAct(cfg, rng, c)
	if !gate.Prevented || gate.Reason != "sleep" {
		t.Fatalf("turn 1: expected sleep prevention, got %+v", gate)
	}
	gate = checkCanAct(cfg, rng, c)
	if gate.Prevented || !gate.Woke {
		t.Fatalf("turn 2: expected wake, got %+v", gate)
	}
	if c.Status.Kind != game.StatusNone {
		t.Fatalf("status not cleared on wake: %s", c.Status.Kind)
	}
}

func TestCheckCanAct_Paralysis(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	c := newTestCombatant(50, flatStats(100), game.TypeNormal)
	c.Status = game.MajorStatus{Kind: game.StatusParalysis, TurnsLeft: -1}

	always := DefaultConfig()
	always.ParalysisStopChance = 1
	if gate := checkCanAct(always, rng, c); !gate.Prevented {
		t.Fatal("stop chance 1.0 must prevent the action")
	}

	never := DefaultConfig()
	never.ParalysisStopChance = 0
	if gate := checkCanAct(never, rng, c); gate.Prevented {
		t.Fatal("stop chance 0 must not prevent the action")
	}
}

func TestCheckCanAct_ParalysisRateConverges(t *testing.T) {
	cfg := DefaultConfig()
	rng := rand.New(rand.NewSource(7))
	c := newTestCombatant(50, flatStats(100), game.TypeNormal)
	c.Status = game.MajorStatus{Kind: game.StatusParalysis, TurnsLeft: -1}

	const n = 10000
	prevented := 0
	for i := 0; i < n; i++ {
		if checkCanAct(cfg, rng, c).Prevented {
			prevented++
		}
	}
	rate := float64(prevented) / n
	if rate < cfg.ParalysisStopChance-0.02 || rate > cfg.ParalysisStopChance+0.02 {
		t.Fatalf("prevented rate %.4f, expected near %.2f", rate, cfg.ParalysisStopChance)
	}
}

func TestCheckCanAct_ThawRateConverges(t *testing.T) {
	cfg := DefaultConfig()
	rng := rand.New(rand.NewSource(7))

	const n = 10000
	thawed := 0
	for i := 0; i < n; i++ {
		c := newTestCombatant(50, flatStats(100), game.TypeNormal)
		c.Status = game.MajorStatus{Kind: game.StatusFreeze, TurnsLeft: -1}
		if checkCanAct(cfg, rng, c).Thawed {
			thawed++
		}
	}
	rate := float64(thawed) / n
	if rate < cfg.ThawChance-0.02 || rate > cfg.ThawChance+0.02 {
		t.Fatalf("thaw rate %.4f, expected near %.2f", rate, cfg.ThawChance)
	}
}

func TestCheckCanAct_FreezeThaw(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	c := newTestCombatant(50, flatStats(100), game.TypeNormal)
	c.Status = game.MajorStatus{Kind: game.StatusFreeze, TurnsLeft: -1}

	frozen := DefaultConfig()
	frozen.ThawChance = 0
	if gate := checkCanAct(frozen, rng, c); !gate.Prevented {
		t.Fatal("thaw chance 0 must keep the target frozen")
	}

	thaw := DefaultConfig()
	thaw.ThawChance = 1
	gate := checkCanAct(thaw, rng, c)
	if gate.Prevented || !gate.Thawed {
		t.Fatalf("thaw chance 1.0 must thaw, got %+v", gate)
	}
	if c.Status.Kind != game.StatusNone {
		t.Fatal("freeze not cleared on thaw")
	}
}

func TestCheckCanAct_FlinchConsumedOnce(t *testing.T) {
	cfg := DefaultConfig()
	rng := rand.New(rand.NewSource(1))
	c := newTestCombatant(50, flatStats(100), game.TypeNormal)
	c.AddVolatile(game.VolatileFlinch, -1)

	if gate := checkCanAct(cfg, rng, c); !gate.Prevented {
		t.Fatal("flinch must prevent the action")
	}
	if c.HasVolatile(game.VolatileFlinch) {
		t.Fatal("flinch must be consumed by the prevention")
	}
	if gate := checkCanAct(cfg, rng, c); gate.Prevented {
		t.Fatal("flinch must not prevent twice")
	}
}

func TestCheckCanAct_ConfusionSelfHit(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ConfusionSelfHitChance = 1
	rng := rand.New(rand.NewSource(1))
	c := newTestCombatant(50, flatStats(100), game.TypeNormal)
	c.AddVolatile(game.VolatileConfusion, 3)

	gate := checkCanAct(cfg, rng, c)
	if !gate.Prevented || gate.SelfHitDamage < 1 {
		t.Fatalf("forced confusion must self-hit, got %+v", gate)
	}

	cfg.ConfusionSelfHitChance = 0
	if gate := checkCanAct(cfg, rng, c); gate.Prevented {
		t.Fatal("self-hit chance 0 must let the action through")
	}
}

func TestEndOfTurnStatusDamage(t *testing.T) {
	cfg := DefaultConfig()
	c := newTestCombatant(50, flatStats(160), game.TypeNormal)

	c.Status = game.MajorStatus{Kind: game.StatusPoison}
	if got := endOfTurnStatusDamage(cfg, c); got != 20 {
		t.Fatalf("poison on 160 max HP: expected 20, got %d", got)
	}
	c.Status = game.MajorStatus{Kind: game.StatusBurn}
	if got := endOfTurnStatusDamage(cfg, c); got != 10 {
		t.Fatalf("burn on 160 max HP: expected 10, got %d", got)
	}
	c.Status = game.MajorStatus{Kind: game.StatusParalysis}
	if got := endOfTurnStatusDamage(cfg, c); got != 0 {
		t.Fatalf("paralysis has no residual, got %d", got)
	}
}

func TestDecrementVolatiles(t *testing.T) {
	c := newTestCombatant(50, flatStats(100), game.TypeNormal)
	c.AddVolatile(game.VolatileConfusion, 1)
	c.AddVolatile(game.VolatileFlinch, -1)

	expired := decrementVolatiles(c)
	if len(expired) != 2 {
		t.Fatalf("expected confusion and flinch to expire, got %v", expired)
	}
	if c.HasVolatile(game.VolatileConfusion) || c.HasVolatile(game.VolatileFlinch) {
		t.Fatal("expired volatiles still present")
	}
}
