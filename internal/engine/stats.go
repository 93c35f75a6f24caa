package engine

import (
	"fmt"
	"math"

	"github.com/vmoranv/pokebattle/internal/game"
)

// DeriveStats computes a combatant's effective stat sextuple from species
// base stats, level, individual variation values, effort values and
// nature. HP uses its own formula and is always at least 1.
func DeriveStats(base game.StatBlock, level int, ivs, evs game.StatBlock, nature game.Nature) (game.StatBlock, error) {
	if level < 1 || level > 100 {
		return game.StatBlock{}, fmt.Errorf("%w: level %d outside [1,100]", ErrInvalidStatInput, level)
	}
	for _, v := range []int{ivs.HP, ivs.Attack, ivs.Defense, ivs.SpAttack, ivs.SpDefense, ivs.Speed} {
		if v < 0 {
			return game.StatBlock{}, fmt.Errorf("%w: negative IV %d", ErrInvalidStatInput, v)
		}
	}
	for _, v := range []int{evs.HP, evs.Attack, evs.Defense, evs.SpAttack, evs.SpDefense, evs.Speed} {
		if v < 0 {
			return game.StatBlock{}, fmt.Errorf("%w: negative EV %d", ErrInvalidStatInput, v)
		}
	}

	out := game.StatBlock{
		HP:        deriveHP(base.HP, ivs.HP, evs.HP, level),
		Attack:    deriveStat(base.Attack, ivs.Attack, evs.Attack, level, nature.Multiplier(game.StatAttack)),
		Defense:   deriveStat(base.Defense, ivs.Defense, evs.Defense, level, nature.Multiplier(game.StatDefense)),
		SpAttack:  deriveStat(base.SpAttack, ivs.SpAttack, evs.SpAttack, level, nature.Multiplier(game.StatSpAttack)),
		SpDefense: deriveStat(base.SpDefense, ivs.SpDefense, evs.SpDefense, level, nature.Multiplier(game.StatSpDefense)),
		Speed:     deriveStat(base.Speed, ivs.Speed, evs.Speed, level, nature.Multiplier(game.StatSpeed)),
	}
	if out.HP < 1 {
		out.HP = 1
	}
	return out, nil
}

// deriveHP: floor((2*base + iv + floor(ev/4)) * level / 100) + level + 10
func deriveHP(base, iv, ev, level int) int {
	return (2*base+iv+ev/4)*level/100 + level + 10
}

// deriveStat: floor(((2*base + iv + floor(ev/4)) * level / 100 + 5) * nature)
func deriveStat(base, iv, ev, level int, nature float64) int {
	core := (2*base+iv+ev/4)*level/100 + 5
	return int(math.Floor(float64(core) * nature))
}
