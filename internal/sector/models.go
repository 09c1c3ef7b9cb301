package sector

import (
	"planets-galaxy/internal/spatial"

	"github.com/google/uuid"
)

type Environment string

const (
	EnvironmentNormal        Environment = "normal"
	EnvironmentNebula        Environment = "nebula"
	EnvironmentAsteroidDense Environment = "asteroid_dense"
)

type Sector struct {
	ID          uuid.UUID     `json:"id"`
	GalaxyID    uuid.UUID     `json:"galaxy_id"`
	Coord       spatial.Point `json:"coord"`
	Name        string        `json:"name"`
	Environment Environment   `json:"environment"`
}
