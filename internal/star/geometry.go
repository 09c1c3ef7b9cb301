package star

import (
	"math"

	"planets-galaxy/internal/spatial"
)

// Zone is the no-placement disk around a star
type Zone struct {
	Radius      int `json:"radius"`
	BufferZone  int `json:"buffer_zone"`
	TotalRadius int `json:"total_radius"`
}

type Star struct {
	Type   Type          `json:"type"`
	Center spatial.Point `json:"center"`
	Radius int           `json:"radius"`
	Size   int           `json:"size"`
	Zone   Zone          `json:"zone"`
}

type Layout struct {
	Primary   Star `json:"primary"`
	Secondary Star `json:"secondary"`
}

// FootprintSize is the star's visual size on a system grid, never more than
// half the grid so the exclusion zone cannot swallow the whole system.
func FootprintSize(t Type, gridSize int) int {
	size := defaultFootprint
	if profile, ok := Lookup(t); ok {
		size = max(profile.Footprint, defaultFootprint)
	}
	return max(min(size, gridSize/2), 1)
}

func bufferFor(size int) int {
	switch {
	case size >= 10:
		return 4
	case size >= 6:
		return 3
	case size >= 5:
		return 3
	default:
		return 2
	}
}

func Exclusion(t Type, gridSize int) Zone {
	size := FootprintSize(t, gridSize)
	radius := size / 2
	buffer := bufferFor(size)
	return Zone{
		Radius:      radius,
		BufferZone:  buffer,
		TotalRadius: radius + buffer,
	}
}

func IsInsideExclusionZone(p, center spatial.Point, zone Zone) bool {
	return spatial.Distance(p, center) <= float64(zone.TotalRadius)
}

func Center(gridSize int) spatial.Point {
	return spatial.Point{X: gridSize / 2, Y: gridSize / 2}
}

// MinBinarySeparation is the closest two binary components may sit
func MinBinarySeparation(primary, secondary Star) float64 {
	return float64(primary.Radius + secondary.Radius + 2)
}

// MinBinaryGridSize is the smallest grid on which any pair of component
// types keeps MinBinarySeparation
const MinBinaryGridSize = 10

// BinaryLayout puts the primary up-left and the secondary down-right of the
// grid center, far enough apart that their footprints never touch. Below
// MinBinaryGridSize the offset is clamped to stay on the grid and the
// separation no longer holds.
func BinaryLayout(gridSize int, primary, secondary Type) Layout {
	center := Center(gridSize)
	p := newStar(primary, gridSize)
	s := newStar(secondary, gridSize)

	// both stars sit on the diagonal, so each axis carries sep/(2·√2)
	sep := MinBinarySeparation(p, s)
	offset := int(math.Ceil(sep / (2 * math.Sqrt2)))
	offset = max(offset, gridSize/6)
	offset = min(offset, center.X-1)

	p.Center = center.Add(-offset, -offset)
	s.Center = center.Add(offset, offset)

	return Layout{Primary: p, Secondary: s}
}

func newStar(t Type, gridSize int) Star {
	zone := Exclusion(t, gridSize)
	return Star{
		Type:   t,
		Radius: zone.Radius,
		Size:   FootprintSize(t, gridSize),
		Zone:   zone,
	}
}

// Stars lists every star of a system with its center and zone. Binary types
// with a registered composition yield two stars; everything else yields one.
func Stars(t Type, gridSize int) []Star {
	if pair, ok := BinaryComposition(t); ok {
		layout := BinaryLayout(gridSize, pair.Primary, pair.Secondary)
		return []Star{layout.Primary, layout.Secondary}
	}
	s := newStar(t, gridSize)
	s.Center = Center(gridSize)
	return []Star{s}
}

// IsSafeForBody reports whether p lies outside every star zone of the system.
// When both component types are given the system is treated as binary.
func IsSafeForBody(p spatial.Point, t Type, gridSize int, primary, secondary *Type) bool {
	if primary != nil && secondary != nil {
		layout := BinaryLayout(gridSize, *primary, *secondary)
		return !IsInsideExclusionZone(p, layout.Primary.Center, layout.Primary.Zone) &&
			!IsInsideExclusionZone(p, layout.Secondary.Center, layout.Secondary.Zone)
	}
	return !IsInsideExclusionZone(p, Center(gridSize), Exclusion(t, gridSize))
}
