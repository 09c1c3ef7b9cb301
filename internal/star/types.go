package star

import "planets-galaxy/internal/random"

// Type classifies a system: one of the single-star tiers or a binary pairing
type Type string

const (
	TypeRedDwarf      Type = "red_dwarf"
	TypeYellowDwarf   Type = "yellow_dwarf"
	TypeWhiteDwarf    Type = "white_dwarf"
	TypeOrangeGiant   Type = "orange_giant"
	TypeBlueGiant     Type = "blue_giant"
	TypeRedSupergiant Type = "red_supergiant"
	TypeNeutronStar   Type = "neutron_star"
	TypeBlackHole     Type = "black_hole"

	TypeBinaryTwinDwarf    Type = "binary_twin_dwarf"
	TypeBinaryYellowRed    Type = "binary_yellow_red"
	TypeBinaryOrangeYellow Type = "binary_orange_yellow"
	TypeBinaryBlueWhite    Type = "binary_blue_white"
)

// AllTypes lists every variant; Lookup must answer for each of them
var AllTypes = []Type{
	TypeRedDwarf, TypeYellowDwarf, TypeWhiteDwarf, TypeOrangeGiant,
	TypeBlueGiant, TypeRedSupergiant, TypeNeutronStar, TypeBlackHole,
	TypeBinaryTwinDwarf, TypeBinaryYellowRed, TypeBinaryOrangeYellow, TypeBinaryBlueWhite,
}

type Range struct {
	Min int
	Max int
}

type Pair struct {
	Primary   Type
	Secondary Type
}

type Profile struct {
	Footprint int
	GridSize  int
	Planets   Range
	Asteroids Range
	Weight    float64
	// Special tiers are decorative and never receive bodies
	Special bool
}

const (
	binaryGridSize   = 40
	defaultFootprint = 8
)

// Lookup is total over AllTypes; ok is false only for values outside the enum,
// such as an unrecognised string read back from storage.
func Lookup(t Type) (Profile, bool) {
	switch t {
	case TypeRedDwarf:
		return Profile{Footprint: 8, GridSize: 24, Planets: Range{3, 5}, Asteroids: Range{1, 2}, Weight: 30}, true
	case TypeYellowDwarf:
		return Profile{Footprint: 10, GridSize: 28, Planets: Range{3, 6}, Asteroids: Range{1, 3}, Weight: 22}, true
	case TypeWhiteDwarf:
		return Profile{Footprint: 8, GridSize: 20, Planets: Range{3, 4}, Asteroids: Range{0, 2}, Weight: 12}, true
	case TypeOrangeGiant:
		return Profile{Footprint: 12, GridSize: 32, Planets: Range{3, 7}, Asteroids: Range{1, 3}, Weight: 10}, true
	case TypeBlueGiant:
		return Profile{Footprint: 14, GridSize: 36, Planets: Range{4, 8}, Asteroids: Range{2, 4}, Weight: 6}, true
	case TypeRedSupergiant:
		return Profile{Footprint: 18, GridSize: 40, Planets: Range{5, 9}, Asteroids: Range{2, 5}, Weight: 3}, true
	case TypeNeutronStar:
		return Profile{Footprint: 8, GridSize: 10, Weight: 2, Special: true}, true
	case TypeBlackHole:
		return Profile{Footprint: 12, GridSize: 26, Weight: 1, Special: true}, true
	case TypeBinaryTwinDwarf:
		return binaryProfile(5), true
	case TypeBinaryYellowRed:
		return binaryProfile(4), true
	case TypeBinaryOrangeYellow:
		return binaryProfile(3), true
	case TypeBinaryBlueWhite:
		return binaryProfile(2), true
	}
	return Profile{}, false
}

// LookupOrDefault substitutes a conservative single-star profile for unknown types
func LookupOrDefault(t Type) Profile {
	if profile, ok := Lookup(t); ok {
		return profile
	}
	return Profile{Footprint: defaultFootprint, GridSize: 24, Planets: Range{3, 4}, Asteroids: Range{0, 1}}
}

func binaryProfile(weight float64) Profile {
	return Profile{
		Footprint: defaultFootprint,
		GridSize:  binaryGridSize,
		Planets:   Range{3, 6},
		Asteroids: Range{1, 3},
		Weight:    weight,
	}
}

// BinaryComposition returns the component stars of a binary type
func BinaryComposition(t Type) (Pair, bool) {
	switch t {
	case TypeBinaryTwinDwarf:
		return Pair{Primary: TypeRedDwarf, Secondary: TypeRedDwarf}, true
	case TypeBinaryYellowRed:
		return Pair{Primary: TypeYellowDwarf, Secondary: TypeRedDwarf}, true
	case TypeBinaryOrangeYellow:
		return Pair{Primary: TypeOrangeGiant, Secondary: TypeYellowDwarf}, true
	case TypeBinaryBlueWhite:
		return Pair{Primary: TypeBlueGiant, Secondary: TypeWhiteDwarf}, true
	}
	return Pair{}, false
}

func IsBinary(t Type) bool {
	_, ok := BinaryComposition(t)
	return ok
}

// SelectionWeights feeds random.WeightedChoice when drawing a system type
func SelectionWeights() []random.Weighted[Type] {
	weights := make([]random.Weighted[Type], 0, len(AllTypes))
	for _, t := range AllTypes {
		profile, _ := Lookup(t)
		weights = append(weights, random.Weighted[Type]{Item: t, Weight: profile.Weight})
	}
	return weights
}
