package service

import (
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/vmoranv/pokebattle/internal/engine"
	"github.com/vmoranv/pokebattle/internal/game"
	"github.com/vmoranv/pokebattle/internal/metadata"
	"github.com/vmoranv/pokebattle/internal/storage"
)

var errMockNotFound = errors.New("not found")

// mockRepo is an in-memory repository for service tests.
type mockRepo struct {
	players   map[string]*storage.PlayerProfile
	creatures map[string]*storage.CreatureRow
	battles   map[string]*storage.BattleRow
	timedOut  []string
}

func newMockRepo() *mockRepo {
	return &mockRepo{
		players:   map[string]*storage.PlayerProfile{},
		creatures: map[string]*storage.CreatureRow{},
		battles:   map[string]*storage.BattleRow{},
	}
}

func (m *mockRepo) CreatePlayer(p *storage.PlayerProfile) error {
	m.players[p.PlayerUUID] = p
	return nil
}

func (m *mockRepo) GetPlayerByUUID(uuid string) (*storage.PlayerProfile, error) {
	p, ok := m.players[uuid]
	if !ok {
		return nil, errMockNotFound
	}
	return p, nil
}

func (m *mockRepo) UpdatePlayer(p *storage.PlayerProfile) error {
	m.players[p.PlayerUUID] = p
	return nil
}

func (m *mockRepo) GetTopPlayers(limit int) ([]*storage.PlayerProfile, error) {
	out := make([]*storage.PlayerProfile, 0, len(m.players))
	for _, p := range m.players {
		out = append(out, p)
	}
	return out, nil
}

func (m *mockRepo) CreateCreature(c *storage.CreatureRow) error {
	m.creatures[c.InstanceID] = c
	return nil
}

func (m *mockRepo) GetCreatureByInstanceID(id string) (*storage.CreatureRow, error) {
	c, ok := m.creatures[id]
	if !ok {
		return nil, errMockNotFound
	}
	return c, nil
}

func (m *mockRepo) GetCreaturesByOwner(ownerUUID string) ([]*storage.CreatureRow, error) {
	var out []*storage.CreatureRow
	for _, c := range m.creatures {
		if c.OwnerUUID == ownerUUID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *mockRepo) UpdateCreature(c *storage.CreatureRow) error {
	m.creatures[c.InstanceID] = c
	return nil
}

func (m *mockRepo) CreateBattle(b *storage.BattleRow) error {
	m.battles[b.BattleUUID] = b
	return nil
}

func (m *mockRepo) GetBattleByUUID(uuid string) (*storage.BattleRow, error) {
	b, ok := m.battles[uuid]
	if !ok {
		return nil, errMockNotFound
	}
	return b, nil
}

func (m *mockRepo) UpdateBattle(b *storage.BattleRow) error {
	m.battles[b.BattleUUID] = b
	return nil
}

func (m *mockRepo) FindTimedOutBattles(now time.Time) ([]*storage.BattleRow, error) {
	var out []*storage.BattleRow
	for _, id := range m.timedOut {
		if b, ok := m.battles[id]; ok {
			out = append(out, b)
		}
	}
	return out, nil
}

// testCatalog builds the static data used across the service tests:
// three species (the first evolves into the second at level 16), three
// moves and a small item set.
func testCatalog(t *testing.T) *metadata.Catalog {
	t.Helper()
	species := []game.Species{
		{
			ID:           1,
			Name:         "emberling",
			BaseStats:    game.StatBlock{HP: 39, Attack: 52, Defense: 43, SpAttack: 60, SpDefense: 50, Speed: 65},
			Types:        []game.Type{game.TypeFire},
			CatchRate:    45,
			GrowthRate:   game.GrowthMediumFast,
			BaseExpYield: 62,
			LearnTable: []game.LearnedMove{
				{Level: 1, MoveID: 1},
				{Level: 5, MoveID: 2},
			},
			Evolutions: []game.EvolutionRule{
				{ToSpeciesID: 2, Method: game.EvolveByLevel, Level: 16},
			},
		},
		{
			ID:           2,
			Name:         "emberclaw",
			BaseStats:    game.StatBlock{HP: 58, Attack: 64, Defense: 58, SpAttack: 80, SpDefense: 65, Speed: 80},
			Types:        []game.Type{game.TypeFire},
			CatchRate:    45,
			GrowthRate:   game.GrowthMediumFast,
			BaseExpYield: 142,
			LearnTable:   []game.LearnedMove{{Level: 1, MoveID: 1}},
		},
		{
			ID:           3,
			Name:         "puffle",
			BaseStats:    game.StatBlock{HP: 40, Attack: 45, Defense: 40, SpAttack: 35, SpDefense: 35, Speed: 56},
			Types:        []game.Type{game.TypeNormal},
			CatchRate:    255,
			GrowthRate:   game.GrowthMediumFast,
			BaseExpYield: 50,
			LearnTable: []game.LearnedMove{
				{Level: 1, MoveID: 1},
				{Level: 4, MoveID: 3},
			},
		},
	}
	moves := []game.Move{
		{ID: 1, Name: "tackle", Type: game.TypeNormal, Category: game.CategoryPhysical, Power: 40, Accuracy: 100, PP: 35},
		{ID: 2, Name: "ember", Type: game.TypeFire, Category: game.CategorySpecial, Power: 40, Accuracy: 100, PP: 25,
			Effect: game.MoveEffect{Kind: game.EffectBurn, Chance: 10}},
		{ID: 3, Name: "harden", Type: game.TypeNormal, Category: game.CategoryStatus, Accuracy: 100, PP: 30,
			Effect: game.MoveEffect{Kind: game.EffectStatStage, Stat: game.StatDefense, Stages: 1, SelfTarget: true}},
	}
	natures := []game.Nature{
		{Name: "hardy"},
		{Name: "adamant", Up: game.StatAttack, Down: game.StatSpAttack},
	}
	items := []metadata.Item{
		{ID: 1, Name: "potion", Kind: metadata.ItemHeal, HealAmount: 20},
		{ID: 2, Name: "antidote", Kind: metadata.ItemCure, CuresStatus: true},
		{ID: 3, Name: "capture ball", Kind: metadata.ItemBall, BallModifier: 1.0},
		{ID: 4, Name: "greater ball", Kind: metadata.ItemBall, BallModifier: 1.5},
	}
	chart := game.TypeChart{
		game.TypeFire:  {game.TypeGrass: 2.0, game.TypeWater: 0.5, game.TypeFire: 0.5},
		game.TypeWater: {game.TypeFire: 2.0},
	}
	catalog, err := metadata.NewCatalog(species, moves, natures, items, chart)
	if err != nil {
		t.Fatalf("building test catalog: %v", err)
	}
	return catalog
}

func testConfig(catalog *metadata.Catalog) engine.Config {
	cfg := engine.DefaultConfig()
	cfg.TypeChart = catalog.Chart()
	return cfg
}

// spawnFor creates and persists a creature for the given owner.
func spawnFor(t *testing.T, repo *mockRepo, catalog *metadata.Catalog, owner string, speciesID uint, level int, seed int64) *storage.CreatureRow {
	t.Helper()
	row, err := SpawnCreature(repo, catalog, owner, speciesID, level, rand.New(rand.NewSource(seed)))
	if err != nil {
		t.Fatalf("SpawnCreature: %v", err)
	}
	return row
}

// startWildBattle persists a ready-to-play wild battle for the host.
func startWildBattle(t *testing.T, repo *mockRepo, catalog *metadata.Catalog, host string, wildLevel int) *storage.BattleRow {
	t.Helper()
	c := spawnFor(t, repo, catalog, host, 1, 10, 7)
	row, err := StartBattle(repo, catalog, StartBattleRequest{
		Kind:          game.BattleWild,
		HostUUID:      host,
		HostName:      "Host",
		HostParty:     []string{c.InstanceID},
		WildSpeciesID: 3,
		WildLevel:     wildLevel,
	}, rand.New(rand.NewSource(11)))
	if err != nil {
		t.Fatalf("StartBattle: %v", err)
	}
	return row
}

// startTrainerBattle persists a trainer battle between two players with
// one creature each.
func startTrainerBattle(t *testing.T, repo *mockRepo, catalog *metadata.Catalog, host, guest string) *storage.BattleRow {
	t.Helper()
	hc := spawnFor(t, repo, catalog, host, 1, 10, 7)
	gc := spawnFor(t, repo, catalog, guest, 3, 10, 9)
	row, err := StartBattle(repo, catalog, StartBattleRequest{
		Kind:       game.BattleTrainer,
		HostUUID:   host,
		HostName:   "Host",
		HostParty:  []string{hc.InstanceID},
		GuestUUID:  guest,
		GuestName:  "Guest",
		GuestParty: []string{gc.InstanceID},
	}, rand.New(rand.NewSource(11)))
	if err != nil {
		t.Fatalf("StartBattle: %v", err)
	}
	return row
}

func battleState(t *testing.T, row *storage.BattleRow) *game.BattleState {
	t.Helper()
	st, err := row.BattleState()
	if err != nil {
		t.Fatalf("decoding battle state: %v", err)
	}
	return st
}
