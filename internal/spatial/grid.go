package spatial

import "math"

func (p Point) Add(dx, dy int) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

func (p Point) InBounds(size int) bool {
	return p.X >= 1 && p.Y >= 1 && p.X <= size && p.Y <= size
}

// Clamp pulls p into [1, size] on both axes
func (p Point) Clamp(size int) Point {
	return Point{X: clampInt(p.X, 1, size), Y: clampInt(p.Y, 1, size)}
}

func Manhattan(a, b Point) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

func Chebyshev(a, b Point) int {
	return max(abs(a.X-b.X), abs(a.Y-b.Y))
}

func Distance(a, b Point) float64 {
	dx, dy := float64(a.X-b.X), float64(a.Y-b.Y)
	return math.Sqrt(dx*dx + dy*dy)
}

// ToGalaxy maps a field inside a sector onto the galaxy-wide grid
func ToGalaxy(sf SectorField, fieldsPerSector int) Point {
	return Point{
		X: (sf.Sector.X-1)*fieldsPerSector + sf.Field.X,
		Y: (sf.Sector.Y-1)*fieldsPerSector + sf.Field.Y,
	}
}

// FromGalaxy is the inverse of ToGalaxy. ok is false when p falls outside a
// galaxy of sectorsPerSide × sectorsPerSide sectors.
func FromGalaxy(p Point, fieldsPerSector, sectorsPerSide int) (SectorField, bool) {
	if !p.InBounds(fieldsPerSector * sectorsPerSide) {
		return SectorField{}, false
	}
	sf := SectorField{
		Sector: Point{X: (p.X-1)/fieldsPerSector + 1, Y: (p.Y-1)/fieldsPerSector + 1},
		Field:  Point{X: (p.X-1)%fieldsPerSector + 1, Y: (p.Y-1)%fieldsPerSector + 1},
	}
	return sf, true
}

// SectorCenter returns the galaxy coordinate of the middle field of a sector
func SectorCenter(sector Point, fieldsPerSector int) Point {
	mid := fieldsPerSector / 2
	return ToGalaxy(SectorField{Sector: sector, Field: Point{X: mid, Y: mid}}, fieldsPerSector)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
