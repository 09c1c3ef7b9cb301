package planet

import (
	"math"

	"planets-galaxy/internal/spatial"
)

type cellState uint8

const (
	cellFree cellState = iota
	cellStar
	cellBody
)

// Occupancy is the dense claimed-coordinate grid of one system's generation pass
type Occupancy struct {
	size  int
	cells []cellState
}

func NewOccupancy(size int) *Occupancy {
	return &Occupancy{
		size:  size,
		cells: make([]cellState, size*size),
	}
}

func (o *Occupancy) Size() int {
	return o.size
}

func (o *Occupancy) index(p spatial.Point) int {
	return (p.Y-1)*o.size + (p.X - 1)
}

// Occupied treats out-of-bounds points as occupied
func (o *Occupancy) Occupied(p spatial.Point) bool {
	if !p.InBounds(o.size) {
		return true
	}
	return o.cells[o.index(p)] != cellFree
}

func (o *Occupancy) IsStar(p spatial.Point) bool {
	return p.InBounds(o.size) && o.cells[o.index(p)] == cellStar
}

// ClaimBody marks p as taken by a body; false when p was not free
func (o *Occupancy) ClaimBody(p spatial.Point) bool {
	if o.Occupied(p) {
		return false
	}
	o.cells[o.index(p)] = cellBody
	return true
}

// ClaimDisk reserves every in-bounds coordinate within radius of center for a star
func (o *Occupancy) ClaimDisk(center spatial.Point, radius float64) int {
	claimed := 0
	r := int(math.Ceil(radius))
	for y := center.Y - r; y <= center.Y+r; y++ {
		for x := center.X - r; x <= center.X+r; x++ {
			p := spatial.Point{X: x, Y: y}
			if !p.InBounds(o.size) || spatial.Distance(p, center) > radius {
				continue
			}
			if o.cells[o.index(p)] == cellFree {
				claimed++
			}
			o.cells[o.index(p)] = cellStar
		}
	}
	return claimed
}

// Clear reports whether nothing within minDist of p is claimed. Star cells
// only count when includeStars is set.
func (o *Occupancy) Clear(p spatial.Point, minDist float64, includeStars bool) bool {
	if o.Occupied(p) {
		return false
	}
	r := int(math.Ceil(minDist))
	for y := p.Y - r; y <= p.Y+r; y++ {
		for x := p.X - r; x <= p.X+r; x++ {
			q := spatial.Point{X: x, Y: y}
			if !q.InBounds(o.size) || spatial.Distance(p, q) >= minDist {
				continue
			}
			switch o.cells[o.index(q)] {
			case cellBody:
				return false
			case cellStar:
				if includeStars {
					return false
				}
			}
		}
	}
	return true
}

// Claimed lists every occupied coordinate in row-major order
func (o *Occupancy) Claimed() []spatial.Point {
	var points []spatial.Point
	for i, state := range o.cells {
		if state != cellFree {
			points = append(points, spatial.Point{X: i%o.size + 1, Y: i/o.size + 1})
		}
	}
	return points
}
