package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/vmoranv/pokebattle/internal/constants"
	"github.com/vmoranv/pokebattle/internal/engine"
	"github.com/vmoranv/pokebattle/internal/game"
	"github.com/vmoranv/pokebattle/internal/metadata"
)

// Env holds the process-level settings read from the environment.
type Env struct {
	Address      string `env:"POKEBATTLE_ADDR" envDefault:":8080"`
	DatabasePath string `env:"POKEBATTLE_DB" envDefault:"pokebattle.db"`
	GameDataPath string `env:"POKEBATTLE_GAME_DATA" envDefault:"game_data.json"`
	LogLevel     string `env:"POKEBATTLE_LOG_LEVEL" envDefault:"info"`
}

// LoadEnv parses the environment settings.
func LoadEnv() (Env, error) {
	var e Env
	if err := env.Parse(&e); err != nil {
		return Env{}, fmt.Errorf("failed to parse environment (%s, %s, %s): %w",
			constants.EnvServerAddress, constants.EnvDatabasePath, constants.EnvGameDataPath, err)
	}
	return e, nil
}

// tuning holds optional overrides for the engine constants. Absent keys
// keep their defaults.
type tuning struct {
	CritRate                     *float64 `json:"crit_rate"`
	CritMultiplier               *float64 `json:"crit_multiplier"`
	StabMultiplier               *float64 `json:"stab_multiplier"`
	ParalysisStopChance          *float64 `json:"paralysis_stop_chance"`
	ThawChance                   *float64 `json:"thaw_chance"`
	FieldEffectDuration          *int     `json:"field_effect_duration"`
	MaxLevel                     *int     `json:"max_level"`
	TrainerExpMultiplier         *float64 `json:"trainer_exp_multiplier"`
	FriendshipEvolutionThreshold *int     `json:"friendship_evolution_threshold"`
}

type rawConfig struct {
	SpeciesList []game.Species                `json:"species_list"`
	MoveList    []game.Move                   `json:"move_list"`
	Natures     []game.Nature                 `json:"natures"`
	Items       []metadata.Item               `json:"items"`
	TypeChart   map[string]map[string]float64 `json:"type_chart"`
	Tuning      *tuning                       `json:"tuning"`
	Server      *struct {
		Address              string `json:"address"`
		ActionTimeoutSeconds int    `json:"action_timeout_seconds"`
	} `json:"server"`
}

// LoadedConfig contains the validated static game data and the server
// address to bind to.
type LoadedConfig struct {
	Catalog       *metadata.Catalog
	Engine        engine.Config
	ServerAddress string
	// ActionTimeout bounds each planning phase; zero disables the
	// timeout sweep.
	ActionTimeout time.Duration
}

// LoadGameData reads the game data file at path, validates it through the
// metadata catalog and returns the engine configuration with any tuning
// overrides applied. It requires non-empty `species_list` and
// `move_list` keys (snake_case).
func LoadGameData(path string) (*LoadedConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read game data file %s: %w", path, err)
	}
	var rc rawConfig
	if err := json.Unmarshal(b, &rc); err != nil {
		return nil, fmt.Errorf("failed to parse game data file %s: %w", path, err)
	}

	if len(rc.SpeciesList) == 0 {
		return nil, fmt.Errorf("game data file %s: species_list is empty (provide 'species_list' array)", path)
	}
	if len(rc.MoveList) == 0 {
		return nil, fmt.Errorf("game data file %s: move_list is empty (provide 'move_list' array)", path)
	}

	chart := make(game.TypeChart, len(rc.TypeChart))
	for atk, row := range rc.TypeChart {
		inner := make(map[game.Type]float64, len(row))
		for def, mult := range row {
			if mult < 0 {
				return nil, fmt.Errorf("game data file %s: type chart %s->%s has negative multiplier", path, atk, def)
			}
			inner[game.Type(def)] = mult
		}
		chart[game.Type(atk)] = inner
	}

	catalog, err := metadata.NewCatalog(rc.SpeciesList, rc.MoveList, rc.Natures, rc.Items, chart)
	if err != nil {
		return nil, fmt.Errorf("game data file %s: %w", path, err)
	}

	cfg := engine.DefaultConfig()
	cfg.TypeChart = chart
	if t := rc.Tuning; t != nil {
		if t.CritRate != nil {
			cfg.CritRate = *t.CritRate
		}
		if t.CritMultiplier != nil {
			cfg.CritMultiplier = *t.CritMultiplier
		}
		if t.StabMultiplier != nil {
			cfg.StabMultiplier = *t.StabMultiplier
		}
		if t.ParalysisStopChance != nil {
			cfg.ParalysisStopChance = *t.ParalysisStopChance
		}
		if t.ThawChance != nil {
			cfg.ThawChance = *t.ThawChance
		}
		if t.FieldEffectDuration != nil {
			cfg.FieldEffectDuration = *t.FieldEffectDuration
		}
		if t.MaxLevel != nil {
			cfg.MaxLevel = *t.MaxLevel
		}
		if t.TrainerExpMultiplier != nil {
			cfg.TrainerExpMultiplier = *t.TrainerExpMultiplier
		}
		if t.FriendshipEvolutionThreshold != nil {
			cfg.FriendshipEvolutionThreshold = *t.FriendshipEvolutionThreshold
		}
	}

	addr := ":8080"
	var actionTimeout time.Duration
	if rc.Server != nil {
		if rc.Server.Address != "" {
			addr = rc.Server.Address
		}
		if rc.Server.ActionTimeoutSeconds < 0 {
			return nil, fmt.Errorf("game data file %s: negative action timeout", path)
		}
		actionTimeout = time.Duration(rc.Server.ActionTimeoutSeconds) * time.Second
	}

	return &LoadedConfig{
		Catalog:       catalog,
		Engine:        cfg,
		ServerAddress: addr,
		ActionTimeout: actionTimeout,
	}, nil
}
