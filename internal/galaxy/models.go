package galaxy

import (
	"time"

	"planets-galaxy/internal/spatial"

	"github.com/google/uuid"
)

type Scale string

const (
	ScaleSmall  Scale = "small"
	ScaleMedium Scale = "medium"
	ScaleLarge  Scale = "large"
	// ScaleAuto is resolved to one of the concrete scales by a seeded draw
	ScaleAuto Scale = "auto"
)

type Galaxy struct {
	ID              uuid.UUID `json:"id"`
	Seed            string    `json:"seed"`
	Name            string    `json:"name"`
	Scale           Scale     `json:"scale"`
	SectorsPerSide  int       `json:"sectors_per_side"`
	FieldsPerSector int       `json:"fields_per_sector"`
	RunID           uuid.UUID `json:"run_id"`
	Completed       bool      `json:"completed"`
	CreatedAt       time.Time `json:"created_at"`
}

// Bounds is the largest galaxy-space coordinate
func (g *Galaxy) Bounds() spatial.Point {
	side := g.SectorsPerSide * g.FieldsPerSector
	return spatial.Point{X: side, Y: side}
}
