package spatial

import "fmt"

type Scale string

const (
	ScaleGalaxy Scale = "galaxy"
	ScaleSector Scale = "sector"
	ScaleSystem Scale = "system"
)

// Point is a 1-based grid coordinate
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// SectorField locates a galaxy-space coordinate as a field inside a sector
type SectorField struct {
	Sector Point `json:"sector"`
	Field  Point `json:"field"`
}

// Diagnostic records an item skipped after its placement budget ran out
type Diagnostic struct {
	Scale    Scale  `json:"scale"`
	Owner    string `json:"owner"`
	Item     string `json:"item"`
	Attempts int    `json:"attempts"`
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s %s: %s not placed after %d attempts", d.Scale, d.Owner, d.Item, d.Attempts)
}
