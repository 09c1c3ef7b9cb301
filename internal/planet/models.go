package planet

import (
	"github.com/google/uuid"
)

type PlanetType string

const (
	PlanetTypeBarren      PlanetType = "barren"
	PlanetTypeTerrestrial PlanetType = "terrestrial"
	PlanetTypeGasGiant    PlanetType = "gas_giant"
	PlanetTypeIce         PlanetType = "ice"
	PlanetTypeVolcanic    PlanetType = "volcanic"
)

type Kind string

const (
	KindPlanet        Kind = "planet"
	KindMoon          Kind = "moon"
	KindAsteroidField Kind = "asteroid_field"
)

type Layer string

const (
	LayerOrbit       Layer = "orbit"
	LayerSurface     Layer = "surface"
	LayerUnderground Layer = "underground"
)

// Cell is one tile of a body's own sub-grid
type Cell struct {
	X       int    `json:"x"`
	Y       int    `json:"y"`
	Layer   Layer  `json:"layer"`
	Terrain string `json:"terrain"`
}

type Body struct {
	ID         uuid.UUID  `json:"id"`
	SystemID   uuid.UUID  `json:"system_id"`
	ParentID   *uuid.UUID `json:"parent_body_id,omitempty"`
	Kind       Kind       `json:"kind"`
	Name       string     `json:"name"`
	PlanetType PlanetType `json:"planet_type,omitempty"`
	Size       int        `json:"size"`
	GridX      int        `json:"grid_x"`
	GridY      int        `json:"grid_y"`
	Cells      []Cell     `json:"cells"`
}
