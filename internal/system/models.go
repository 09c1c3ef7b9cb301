package system

import (
	"planets-galaxy/internal/spatial"
	"planets-galaxy/internal/star"

	"github.com/google/uuid"
)

type System struct {
	ID               uuid.UUID     `json:"id"`
	SectorID         uuid.UUID     `json:"sector_id"`
	Sector           spatial.Point `json:"sector"`
	Field            spatial.Point `json:"field"`
	Name             string        `json:"name"`
	Type             star.Type     `json:"system_type"`
	GridSize         int           `json:"grid_size"`
	IsBinary         bool          `json:"is_binary"`
	PrimarySubType   *star.Type    `json:"primary_sub_type,omitempty"`
	SecondarySubType *star.Type    `json:"secondary_sub_type,omitempty"`
	BodyCount        int           `json:"body_count"`
}

// Location is the system's position on the galaxy-wide grid
func (s System) Location() spatial.SectorField {
	return spatial.SectorField{Sector: s.Sector, Field: s.Field}
}
