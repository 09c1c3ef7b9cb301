package sector

import (
	"fmt"
	"log/slog"

	"planets-galaxy/internal/random"
	"planets-galaxy/internal/shared/errors"
	"planets-galaxy/internal/spatial"

	"github.com/google/uuid"
)

var environmentWeights = []random.Weighted[Environment]{
	{Item: EnvironmentNormal, Weight: 70},
	{Item: EnvironmentNebula, Weight: 20},
	{Item: EnvironmentAsteroidDense, Weight: 10},
}

var sectorNames = []string{
	"Alpha", "Beta", "Gamma", "Delta", "Epsilon", "Zeta", "Eta", "Theta",
	"Iota", "Kappa", "Lambda", "Mu", "Nu", "Xi", "Omicron", "Pi",
	"Rho", "Sigma", "Tau", "Upsilon", "Phi", "Chi", "Psi", "Omega",
	"Prime", "Core", "Frontier", "Outer", "Inner", "Central", "Remote",
	"Azure", "Crimson", "Golden", "Silver", "Emerald", "Violet", "Amber",
}

type Service struct {
	logger *slog.Logger
}

func NewService(logger *slog.Logger) *Service {
	logger.Debug("Initializing sector service")

	return &Service{
		logger: logger.With("component", "sector_service"),
	}
}

// SeedFor derives the per-sector stream seed so a sector's content does not
// depend on how many draws earlier sectors consumed.
func SeedFor(galaxySeed string, coord spatial.Point) string {
	return random.Derive(galaxySeed, fmt.Sprintf("sector/%d/%d", coord.X, coord.Y))
}

// Generate lays out a sectorsPerSide×sectorsPerSide grid in row-major order
func (s *Service) Generate(rng *random.Source, galaxyID uuid.UUID, sectorsPerSide int) ([]Sector, error) {
	logger := s.logger.With("operation", "generate_sectors", "galaxy_id", galaxyID, "sectors_per_side", sectorsPerSide)
	logger.Debug("Generating sectors")

	if sectorsPerSide < 1 {
		return nil, errors.Validationf("sectors per side must be positive, got %d", sectorsPerSide)
	}

	sectors := make([]Sector, 0, sectorsPerSide*sectorsPerSide)
	for y := 1; y <= sectorsPerSide; y++ {
		for x := 1; x <= sectorsPerSide; x++ {
			env, err := random.WeightedChoice(rng, environmentWeights)
			if err != nil {
				return nil, err
			}
			base, err := random.Choice(rng, sectorNames)
			if err != nil {
				return nil, err
			}

			coord := spatial.Point{X: x, Y: y}
			sectors = append(sectors, Sector{
				ID:          uuid.NewSHA1(galaxyID, []byte(fmt.Sprintf("sector/%d/%d", x, y))),
				GalaxyID:    galaxyID,
				Coord:       coord,
				Name:        fmt.Sprintf("%s %d-%d", base, x, y),
				Environment: env,
			})
		}
	}

	logger.Info("Sectors generated", "count", len(sectors))
	return sectors, nil
}

// SystemCount draws how many systems a sector of the given environment holds
func SystemCount(rng *random.Source, env Environment) (int, error) {
	switch env {
	case EnvironmentNebula:
		return rng.NextInt(0, 2)
	case EnvironmentAsteroidDense:
		return rng.NextInt(2, 4)
	default:
		return rng.NextInt(3, 5)
	}
}
