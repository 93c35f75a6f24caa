package engine

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"

	"github.com/vmoranv/pokebattle/internal/game"
)

// MoveSource resolves static move data during resolution. The metadata
// catalog implements it.
type MoveSource interface {
	MoveByID(id uint) (*game.Move, error)
}

// Event types emitted into the turn log.
const (
	EventActionInvalid = "action_invalid"
	EventSwitch        = "switch"
	EventItemUsed      = "item_used"
	EventForfeit       = "forfeit"
	EventCaptureThrow  = "capture_throw"
	EventMoveUsed      = "move_used"
	EventMoveMissed    = "move_missed"
	EventMoveNoEffect  = "move_no_effect"
	EventDamage        = "damage"
	EventEffectApplied = "effect_applied"
	EventPrevented     = "action_prevented"
	EventStatusEnded   = "status_ended"
	EventSelfHit       = "confusion_self_hit"
	EventFaint         = "faint"
	EventPromoted      = "promoted"
	EventResidual      = "residual"
	EventFieldHeal     = "field_heal"
	EventFieldExpired  = "field_expired"
	EventBattleEnded   = "battle_ended"
)

// Event is one structured entry of a turn log. Only the fields relevant
// to the event type are set; clients render their own text from these.
type Event struct {
	Type string `json:"type"`
	// Side is the acting (or affected) side index.
	Side   int    `json:"side"`
	Target int    `json:"target,omitempty"`
	MoveID uint   `json:"move_id,omitempty"`
	ItemID uint   `json:"item_id,omitempty"`
	Reason string `json:"reason,omitempty"`
	Amount int    `json:"amount,omitempty"`

	Damage  *DamageBreakdown `json:"damage,omitempty"`
	Capture *CaptureOutcome  `json:"capture,omitempty"`
	// Effect names the status, stage or field effect involved.
	Effect string `json:"effect,omitempty"`
	Stages int    `json:"stages,omitempty"`
}

// TurnLog is the full structured record of one resolved turn.
type TurnLog struct {
	Turn   int     `json:"turn"`
	Seed   int64   `json:"seed"`
	Events []Event `json:"events"`
}

// plannedAction is one side's action with its computed ordering keys.
type plannedAction struct {
	side   int
	action game.Action
	// tier orders action kinds before move priority is considered.
	tier     int
	priority int
	speed    int
	move     *game.Move
	// actor is the combatant the action was declared for. A replacement
	// promoted mid-turn does not inherit the slot's declared move.
	actor *game.Combatant
}

// turnContext carries everything one ResolveTurn call needs.
type turnContext struct {
	cfg   Config
	rng   *rand.Rand
	moves MoveSource
	state *game.BattleState
	log   *TurnLog
}

func (tc *turnContext) add(e Event) { tc.log.Events = append(tc.log.Events, e) }

func (tc *turnContext) side(i int) *game.Side { return tc.state.Sides[i] }

func (tc *turnContext) active(i int) *game.Combatant {
	return tc.state.Sides[i].ActiveCombatant()
}

// ResolveTurn resolves one full turn of a battle. It never mutates the
// input state: the returned state is a deep clone with the turn applied.
// All randomness is drawn from a generator seeded with seed, so the same
// inputs always produce the same outcome.
func ResolveTurn(cfg Config, moves MoveSource, state *game.BattleState, a0, a1 game.Action, seed int64) (*game.BattleState, *TurnLog, error) {
	if state.Status != game.StatusInProgress || state.Terminal() {
		return nil, nil, ErrIllegalStateTransition
	}

	tc := &turnContext{
		cfg:   cfg,
		rng:   rand.New(rand.NewSource(seed)),
		moves: moves,
		state: state.Clone(),
		log:   &TurnLog{Turn: state.Turn, Seed: seed},
	}
	tc.state.Phase = game.PhaseResolving

	plans := tc.buildPlans([2]game.Action{a0, a1})
	tc.executePlans(plans)
	if !tc.state.Terminal() {
		tc.endOfTurn()
	}
	tc.finalizeTurn()
	return tc.state, tc.log, nil
}

// actionTier orders action kinds: forfeits resolve first, then switches,
// items and capture throws, and moves last among themselves.
func actionTier(kind game.ActionKind) int {
	switch kind {
	case game.ActionForfeit:
		return 4
	case game.ActionSwitch:
		return 3
	case game.ActionItem:
		return 2
	case game.ActionCapture:
		return 1
	}
	return 0
}

// validateAction checks a declared action against the current state.
// Invalid actions degrade to a logged no-op rather than failing the
// turn; the wrapped ErrInvalidAction carries the reject reason.
func (tc *turnContext) validateAction(side int, a game.Action) (game.Action, *game.Move, error) {
	actor := tc.active(side)
	switch a.Kind {
	case game.ActionMove:
		if actor == nil || a.MoveIndex < 0 || a.MoveIndex >= len(actor.Moves) {
			return a, nil, fmt.Errorf("%w: no move in slot %d", ErrInvalidAction, a.MoveIndex)
		}
		slot := actor.Moves[a.MoveIndex]
		if slot.PP <= 0 {
			return a, nil, fmt.Errorf("%w: move slot %d has no PP", ErrInvalidAction, a.MoveIndex)
		}
		mv, err := tc.moves.MoveByID(slot.MoveID)
		if err != nil {
			return a, nil, fmt.Errorf("%w: %v", ErrInvalidAction, err)
		}
		return a, mv, nil
	case game.ActionSwitch:
		s := tc.side(side)
		if a.SwitchTo < 0 || a.SwitchTo >= len(s.Party) || a.SwitchTo == s.Active {
			return a, nil, fmt.Errorf("%w: cannot switch to party index %d", ErrInvalidAction, a.SwitchTo)
		}
		if s.Party[a.SwitchTo].Fainted() {
			return a, nil, fmt.Errorf("%w: switch target has fainted", ErrInvalidAction)
		}
		return a, nil, nil
	case game.ActionItem:
		if actor == nil || (a.HealAmount <= 0 && !a.CuresStatus) {
			return a, nil, fmt.Errorf("%w: item has no usable effect", ErrInvalidAction)
		}
		return a, nil, nil
	case game.ActionCapture:
		if tc.state.Kind != game.BattleWild || a.BallModifier <= 0 || a.CatchRate <= 0 {
			return a, nil, fmt.Errorf("%w: capture not possible here", ErrInvalidAction)
		}
		if tc.active(1 - side) == nil {
			return a, nil, fmt.Errorf("%w: no capture target", ErrInvalidAction)
		}
		return a, nil, nil
	case game.ActionForfeit:
		return a, nil, nil
	}
	return a, nil, fmt.Errorf("%w: unknown kind %q", ErrInvalidAction, a.Kind)
}

// effectiveSpeed is the stage-modified speed, halved under paralysis.
func effectiveSpeed(c *game.Combatant) int {
	spd := int(float64(c.Stats.Speed) * StageMultiplier(c.Stages.Get(game.StatSpeed)))
	if c.Status.Kind == game.StatusParalysis {
		spd /= 2
	}
	return spd
}

func (tc *turnContext) buildPlans(actions [2]game.Action) []plannedAction {
	var plans []plannedAction
	for side, a := range actions {
		err := errors.New("no action declared")
		var mv *game.Move
		if a.Kind != game.ActionNone {
			a, mv, err = tc.validateAction(side, a)
		}
		if err != nil {
			tc.add(Event{Type: EventActionInvalid, Side: side, Reason: string(a.Kind)})
			continue
		}
		p := plannedAction{side: side, action: a, tier: actionTier(a.Kind), move: mv}
		if actor := tc.active(side); actor != nil {
			p.actor = actor
			p.speed = effectiveSpeed(actor)
		}
		if mv != nil {
			p.priority = mv.Priority
		}
		plans = append(plans, p)
	}
	// Stable sort keeps declaration order for exact ties.
	sort.SliceStable(plans, func(i, j int) bool {
		if plans[i].tier != plans[j].tier {
			return plans[i].tier > plans[j].tier
		}
		if plans[i].priority != plans[j].priority {
			return plans[i].priority > plans[j].priority
		}
		return plans[i].speed > plans[j].speed
	})
	return plans
}

func (tc *turnContext) executePlans(plans []plannedAction) {
	for i := range plans {
		if tc.state.Terminal() {
			return
		}
		tc.execute(&plans[i])
	}
}

func (tc *turnContext) execute(p *plannedAction) {
	switch p.action.Kind {
	case game.ActionForfeit:
		tc.add(Event{Type: EventForfeit, Side: p.side})
		tc.finish(1 - p.side)
	case game.ActionSwitch:
		tc.execSwitch(p)
	case game.ActionItem:
		tc.execItem(p)
	case game.ActionCapture:
		tc.execCapture(p)
	case game.ActionMove:
		tc.execMove(p)
	}
}

func (tc *turnContext) execSwitch(p *plannedAction) {
	s := tc.side(p.side)
	out := s.ActiveCombatant()
	if out != nil {
		// Stages and volatiles do not survive leaving the field.
		out.Stages = game.StageSet{}
		out.Volatiles = nil
	}
	s.Active = p.action.SwitchTo
	tc.add(Event{Type: EventSwitch, Side: p.side, Target: p.action.SwitchTo})
}

func (tc *turnContext) execItem(p *plannedAction) {
	actor := tc.active(p.side)
	if actor == nil || actor != p.actor || actor.Fainted() {
		return
	}
	e := Event{Type: EventItemUsed, Side: p.side, ItemID: p.action.ItemID}
	if p.action.HealAmount > 0 {
		before := actor.CurrentHP
		actor.Heal(p.action.HealAmount)
		e.Amount = actor.CurrentHP - before
	}
	if p.action.CuresStatus && CureMajorStatus(actor) {
		e.Effect = "cured"
	}
	tc.add(e)
}

func (tc *turnContext) execCapture(p *plannedAction) {
	target := tc.active(1 - p.side)
	if target == nil || target.Fainted() {
		return
	}
	out := AttemptCapture(tc.cfg, tc.rng, target, p.action.CatchRate, p.action.BallModifier)
	tc.add(Event{Type: EventCaptureThrow, Side: p.side, Capture: &out})
	if out.Success {
		tc.finish(p.side)
	}
}

func (tc *turnContext) execMove(p *plannedAction) {
	attacker := tc.active(p.side)
	if attacker == nil || attacker != p.actor || attacker.Fainted() {
		return
	}

	gate := checkCanAct(tc.cfg, tc.rng, attacker)
	if gate.Woke {
		tc.add(Event{Type: EventStatusEnded, Side: p.side, Effect: string(game.StatusSleep)})
	}
	if gate.Thawed {
		tc.add(Event{Type: EventStatusEnded, Side: p.side, Effect: string(game.StatusFreeze)})
	}
	if gate.Prevented {
		tc.add(Event{Type: EventPrevented, Side: p.side, Reason: gate.Reason})
		if gate.SelfHitDamage > 0 {
			attacker.ApplyDamage(gate.SelfHitDamage)
			tc.add(Event{Type: EventSelfHit, Side: p.side, Amount: gate.SelfHitDamage})
			tc.checkFaint(p.side)
		}
		return
	}

	attacker.Moves[p.action.MoveIndex].PP--
	tc.add(Event{Type: EventMoveUsed, Side: p.side, MoveID: p.move.ID})

	defender := tc.active(1 - p.side)
	if defender == nil || defender.Fainted() {
		tc.add(Event{Type: EventMoveNoEffect, Side: p.side, MoveID: p.move.ID})
		return
	}

	if !rollHit(tc.rng, attacker, defender, p.move) {
		tc.add(Event{Type: EventMoveMissed, Side: p.side, MoveID: p.move.ID})
		return
	}

	tgt := effectTarget{attacker: attacker, defender: defender, field: &tc.state.Field}
	if p.move.Category == game.CategoryStatus {
		if applyMoveEffect(tc.cfg, tc.rng, tgt, &p.move.Effect) {
			tc.add(tc.effectEvent(p, defender))
		} else {
			tc.add(Event{Type: EventMoveNoEffect, Side: p.side, MoveID: p.move.ID})
		}
		return
	}

	dmg := ComputeDamage(tc.cfg, tc.rng, attacker, defender, p.move, tc.state.Field)
	if dmg.Effectiveness == 0 {
		tc.add(Event{Type: EventMoveNoEffect, Side: p.side, MoveID: p.move.ID})
		return
	}
	defender.ApplyDamage(dmg.Amount)
	tc.add(Event{Type: EventDamage, Side: p.side, Target: 1 - p.side, Amount: dmg.Amount, Damage: &dmg})

	if tc.checkFaint(1 - p.side) {
		return
	}
	if p.move.Effect.Kind != "" && applyMoveEffect(tc.cfg, tc.rng, tgt, &p.move.Effect) {
		tc.add(tc.effectEvent(p, defender))
	}
}

func (tc *turnContext) effectEvent(p *plannedAction, defender *game.Combatant) Event {
	e := Event{Type: EventEffectApplied, Side: p.side, Effect: string(p.move.Effect.Kind)}
	if p.move.Effect.SelfTarget {
		e.Target = p.side
	} else {
		e.Target = 1 - p.side
	}
	if p.move.Effect.Kind == game.EffectStatStage {
		e.Stages = p.move.Effect.Stages
		e.Reason = string(p.move.Effect.Stat)
	}
	return e
}

// checkFaint records a faint on the given side and promotes the next
// healthy party member, or ends the battle when none is left.
func (tc *turnContext) checkFaint(side int) bool {
	s := tc.side(side)
	c := s.ActiveCombatant()
	if c == nil || !c.Fainted() {
		return false
	}
	tc.add(Event{Type: EventFaint, Side: side})
	tc.bringReserve(side)
	return true
}

func (tc *turnContext) bringReserve(side int) {
	s := tc.side(side)
	for i, c := range s.Party {
		if !c.Fainted() {
			s.Active = i
			tc.add(Event{Type: EventPromoted, Side: side, Target: i})
			return
		}
	}
	tc.finish(1 - side)
}

// endOfTurn applies the fixed residual order: field effects first, then
// major statuses, then volatile countdowns.
func (tc *turnContext) endOfTurn() {
	tc.tickField()
	if tc.state.Terminal() {
		return
	}
	for side := 0; side < 2; side++ {
		c := tc.active(side)
		if c == nil || c.Fainted() {
			continue
		}
		if dmg := endOfTurnStatusDamage(tc.cfg, c); dmg > 0 {
			c.ApplyDamage(dmg)
			tc.add(Event{Type: EventResidual, Side: side, Effect: string(c.Status.Kind), Amount: dmg})
			tc.checkFaint(side)
		}
	}
	for side := 0; side < 2; side++ {
		c := tc.active(side)
		if c == nil {
			continue
		}
		for _, kind := range decrementVolatiles(c) {
			tc.add(Event{Type: EventStatusEnded, Side: side, Effect: string(kind)})
		}
	}
}

func (tc *turnContext) tickField() {
	field := &tc.state.Field
	if field.Weather != nil && field.Weather.Kind == game.EffectSandstorm {
		for side := 0; side < 2; side++ {
			c := tc.active(side)
			if c == nil || c.Fainted() {
				continue
			}
			if dmg := sandstormChip(tc.cfg, c); dmg > 0 {
				c.ApplyDamage(dmg)
				tc.add(Event{Type: EventResidual, Side: side, Effect: string(game.EffectSandstorm), Amount: dmg})
				tc.checkFaint(side)
			}
		}
	}
	if field.Terrain != nil && field.Terrain.Kind == game.EffectGrassyTerrain {
		for side := 0; side < 2; side++ {
			c := tc.active(side)
			if c == nil || c.Fainted() {
				continue
			}
			if heal := grassyHeal(tc.cfg, c); heal > 0 && c.CurrentHP < c.Stats.HP {
				before := c.CurrentHP
				c.Heal(heal)
				tc.add(Event{Type: EventFieldHeal, Side: side, Effect: string(game.EffectGrassyTerrain), Amount: c.CurrentHP - before})
			}
		}
	}
	if kind, expired := tickFieldSlot(&field.Weather); expired {
		tc.add(Event{Type: EventFieldExpired, Effect: string(kind)})
	}
	if kind, expired := tickFieldSlot(&field.Terrain); expired {
		tc.add(Event{Type: EventFieldExpired, Effect: string(kind)})
	}
}

// finish marks the battle over with the given winning side.
func (tc *turnContext) finish(winner int) {
	if tc.state.Status == game.StatusFinished {
		return
	}
	tc.state.Status = game.StatusFinished
	tc.state.WinnerSide = winner
	tc.add(Event{Type: EventBattleEnded, Side: winner})
}

func (tc *turnContext) finalizeTurn() {
	if tc.state.Status != game.StatusFinished {
		switch {
		case tc.side(0).Defeated() && tc.side(1).Defeated():
			tc.state.Status = game.StatusFinished
			tc.state.WinnerSide = -1
			tc.add(Event{Type: EventBattleEnded, Side: -1})
		case tc.side(0).Defeated():
			tc.finish(1)
		case tc.side(1).Defeated():
			tc.finish(0)
		}
	}
	tc.state.Turn++
	tc.state.Phase = game.PhaseResolved
	tc.side(0).Pending = nil
	tc.side(1).Pending = nil
}
