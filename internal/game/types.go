package game

// Type is an elemental type carried by species and moves.
type Type string

const (
	TypeNormal   Type = "normal"
	TypeFire     Type = "fire"
	TypeWater    Type = "water"
	TypeGrass    Type = "grass"
	TypeElectric Type = "electric"
	TypeIce      Type = "ice"
	TypeFighting Type = "fighting"
	TypePoison   Type = "poison"
	TypeGround   Type = "ground"
	TypeFlying   Type = "flying"
	TypePsychic  Type = "psychic"
	TypeBug      Type = "bug"
	TypeRock     Type = "rock"
	TypeGhost    Type = "ghost"
	TypeDragon   Type = "dragon"
	TypeDark     Type = "dark"
	TypeSteel    Type = "steel"
	TypeFairy    Type = "fairy"
)

// AllTypes lists every valid elemental type, used for config validation.
var AllTypes = []Type{
	TypeNormal, TypeFire, TypeWater, TypeGrass, TypeElectric, TypeIce,
	TypeFighting, TypePoison, TypeGround, TypeFlying, TypePsychic, TypeBug,
	TypeRock, TypeGhost, TypeDragon, TypeDark, TypeSteel, TypeFairy,
}

// TypeChart maps attacking type -> defending type -> multiplier.
// Missing entries default to 1.0. Valid multipliers are 0, 0.5, 1 and 2;
// dual-typed defenders multiply the per-type values.
type TypeChart map[Type]map[Type]float64

// Effectiveness returns the combined multiplier of an attacking type
// against the given defending types.
func (tc TypeChart) Effectiveness(attacking Type, defending []Type) float64 {
	mult := 1.0
	for _, dt := range defending {
		if row, ok := tc[attacking]; ok {
			if m, ok := row[dt]; ok {
				mult *= m
				continue
			}
		}
	}
	return mult
}
