package service

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/vmoranv/pokebattle/internal/game"
	"github.com/vmoranv/pokebattle/internal/metadata"
	"github.com/vmoranv/pokebattle/internal/storage"
)

const maxPartySize = 6

// StartBattleRepo is the minimal repository interface required by StartBattle.
type StartBattleRepo interface {
	GetCreatureByInstanceID(id string) (*storage.CreatureRow, error)
	CreateBattle(b *storage.BattleRow) error
}

// StartBattleRequest describes a new battle. A wild battle names a
// species and level for the opponent; a trainer battle names the guest
// player and party.
type StartBattleRequest struct {
	Kind     game.BattleKind
	HostUUID string
	HostName string
	// HostParty lists owned creature instance IDs, in party order.
	HostParty []string

	GuestUUID  string
	GuestName  string
	GuestParty []string

	WildSpeciesID uint
	WildLevel     int

	// ActionTimeout bounds each planning phase; zero disables the sweep.
	ActionTimeout time.Duration
}

// StartBattle validates the parties, assembles the initial battle state
// and persists it. Battle-scoped state (stages, volatiles) starts clean;
// HP, PP and major statuses carry in from the stored creatures.
func StartBattle(repo StartBattleRepo, catalog *metadata.Catalog, req StartBattleRequest, rng *rand.Rand) (*storage.BattleRow, error) {
	host, err := loadParty(repo, req.HostUUID, req.HostParty)
	if err != nil {
		return nil, err
	}

	state := &game.BattleState{
		BattleUUID: uuid.NewString(),
		Kind:       req.Kind,
		Turn:       1,
		Status:     game.StatusInProgress,
		Phase:      game.PhasePlanning,
		WinnerSide: -1,
	}
	state.Sides[0] = &game.Side{OwnerUUID: req.HostUUID, OwnerName: req.HostName, Party: host}

	switch req.Kind {
	case game.BattleWild:
		wild, err := NewCombatant(catalog, req.WildSpeciesID, req.WildLevel, rng)
		if err != nil {
			return nil, fmt.Errorf("wild opponent: %w", err)
		}
		state.Sides[1] = &game.Side{Party: []*game.Combatant{wild}}
	case game.BattleTrainer:
		guest, err := loadParty(repo, req.GuestUUID, req.GuestParty)
		if err != nil {
			return nil, err
		}
		state.Sides[1] = &game.Side{OwnerUUID: req.GuestUUID, OwnerName: req.GuestName, Party: guest}
	default:
		return nil, fmt.Errorf("unknown battle kind %q", req.Kind)
	}

	row := &storage.BattleRow{HostUUID: req.HostUUID, GuestUUID: req.GuestUUID}
	if err := row.SetBattleState(state); err != nil {
		return nil, err
	}
	if req.ActionTimeout > 0 {
		deadline := time.Now().Add(req.ActionTimeout)
		row.ActionDeadline = &deadline
	}
	if err := repo.CreateBattle(row); err != nil {
		return nil, err
	}
	return row, nil
}

// loadParty resolves instance IDs into battle-ready combatants, checking
// ownership and clearing battle-scoped state.
func loadParty(repo StartBattleRepo, ownerUUID string, ids []string) ([]*game.Combatant, error) {
	if len(ids) == 0 {
		return nil, ErrEmptyParty
	}
	if len(ids) > maxPartySize {
		return nil, ErrPartyTooLarge
	}
	party := make([]*game.Combatant, 0, len(ids))
	for _, id := range ids {
		row, err := repo.GetCreatureByInstanceID(id)
		if err != nil {
			return nil, ErrCreatureNotFound
		}
		if row.OwnerUUID != ownerUUID {
			return nil, ErrNotOwner
		}
		c, err := row.Combatant()
		if err != nil {
			return nil, err
		}
		c.Stages = game.StageSet{}
		c.Volatiles = nil
		party = append(party, c)
	}
	return party, nil
}
