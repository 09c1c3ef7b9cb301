package hyperlane

import (
	"fmt"

	"planets-galaxy/internal/shared/errors"
	"planets-galaxy/internal/spatial"

	"github.com/spf13/viper"
)

type LaneType string

const (
	LaneTypeTrunk  LaneType = "trunk"
	LaneTypeBranch LaneType = "branch"
	LaneTypeRim    LaneType = "rim"
)

// ReferenceSectors is the side length the canonical table is authored for
const ReferenceSectors = 6

// Lane endpoints and core sectors are sector coordinates. Via lists the core
// sectors the route must pass through.
type Lane struct {
	Name     string          `mapstructure:"name"`
	Color    string          `mapstructure:"color"`
	Type     LaneType        `mapstructure:"type"`
	Priority int             `mapstructure:"priority"`
	From     spatial.Point   `mapstructure:"from"`
	To       spatial.Point   `mapstructure:"to"`
	Via      []spatial.Point `mapstructure:"via"`
}

var canonicalLanes = []Lane{
	{
		Name: "Imperial Spine", Color: "#f5c542", Type: LaneTypeTrunk, Priority: 3,
		From: spatial.Point{X: 1, Y: 1}, To: spatial.Point{X: 6, Y: 6},
		Via: []spatial.Point{{X: 3, Y: 3}, {X: 4, Y: 4}},
	},
	{
		Name: "Merchant Way", Color: "#42c5f5", Type: LaneTypeTrunk, Priority: 2,
		From: spatial.Point{X: 1, Y: 6}, To: spatial.Point{X: 6, Y: 1},
		Via: []spatial.Point{{X: 3, Y: 4}, {X: 4, Y: 3}},
	},
	{
		Name: "Northern Reach", Color: "#5cd65c", Type: LaneTypeBranch, Priority: 1,
		From: spatial.Point{X: 2, Y: 1}, To: spatial.Point{X: 5, Y: 6},
		Via: []spatial.Point{{X: 3, Y: 3}},
	},
	{
		Name: "Southern Drift", Color: "#b05cd6", Type: LaneTypeBranch, Priority: 1,
		From: spatial.Point{X: 6, Y: 2}, To: spatial.Point{X: 1, Y: 5},
		Via: []spatial.Point{{X: 4, Y: 3}},
	},
	{
		Name: "Rim Passage", Color: "#9e9e9e", Type: LaneTypeRim, Priority: 0,
		From: spatial.Point{X: 1, Y: 3}, To: spatial.Point{X: 6, Y: 4},
	},
}

// CanonicalLanes returns the built-in lane table mapped onto a galaxy of
// sectorsPerSide sectors.
func CanonicalLanes(sectorsPerSide int) []Lane {
	return scaleLanes(canonicalLanes, ReferenceSectors, sectorsPerSide)
}

type lanesFile struct {
	ReferenceSectors int    `mapstructure:"reference_sectors"`
	Lanes            []Lane `mapstructure:"lanes"`
}

// LoadLanes reads a lane table from a YAML, JSON or TOML file. Coordinates are
// authored against reference_sectors (default 6) and scaled to sectorsPerSide.
func LoadLanes(path string, sectorsPerSide int) ([]Lane, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetDefault("reference_sectors", ReferenceSectors)

	if err := v.ReadInConfig(); err != nil {
		return nil, errors.WrapValidation(fmt.Sprintf("failed to read lanes file %s", path), err)
	}

	var file lanesFile
	if err := v.Unmarshal(&file); err != nil {
		return nil, errors.WrapValidation(fmt.Sprintf("failed to decode lanes file %s", path), err)
	}
	if err := validateLanes(file.Lanes, file.ReferenceSectors); err != nil {
		return nil, err
	}

	return scaleLanes(file.Lanes, file.ReferenceSectors, sectorsPerSide), nil
}

func validateLanes(lanes []Lane, reference int) error {
	if reference < 1 {
		return errors.Validationf("reference_sectors must be positive, got %d", reference)
	}
	if len(lanes) == 0 {
		return errors.Validation("lanes file defines no lanes")
	}

	names := make(map[string]bool, len(lanes))
	for _, lane := range lanes {
		if lane.Name == "" {
			return errors.Validation("lane without a name")
		}
		if names[lane.Name] {
			return errors.Validationf("duplicate lane %q", lane.Name)
		}
		names[lane.Name] = true

		for _, p := range append([]spatial.Point{lane.From, lane.To}, lane.Via...) {
			if !p.InBounds(reference) {
				return errors.Validationf("lane %q: sector %s outside a %d×%d galaxy", lane.Name, p, reference, reference)
			}
		}
	}
	return nil
}

func scaleLanes(lanes []Lane, from, to int) []Lane {
	scaled := make([]Lane, 0, len(lanes))
	for _, lane := range lanes {
		l := lane
		l.From = scaleSector(lane.From, from, to)
		l.To = scaleSector(lane.To, from, to)
		l.Via = make([]spatial.Point, 0, len(lane.Via))
		for _, p := range lane.Via {
			l.Via = append(l.Via, scaleSector(p, from, to))
		}
		scaled = append(scaled, l)
	}
	return scaled
}

// scaleSector maps 1..from onto 1..to keeping both edges fixed
func scaleSector(p spatial.Point, from, to int) spatial.Point {
	if from <= 1 || from == to {
		return p.Clamp(to)
	}
	ratio := float64(to-1) / float64(from-1)
	return spatial.Point{
		X: 1 + roundHalfUp(float64(p.X-1)*ratio),
		Y: 1 + roundHalfUp(float64(p.Y-1)*ratio),
	}.Clamp(to)
}
