package galaxy

import (
	"fmt"
	"log/slog"

	"planets-galaxy/internal/random"
	"planets-galaxy/internal/shared/errors"

	"github.com/google/uuid"
)

// Namespace roots every generated ID; a galaxy's ID is derived from its seed
var Namespace = uuid.MustParse("6f1c9a52-3d4e-5b7a-8c2d-0e9f1a2b3c4d")

var scaleWeights = []random.Weighted[Scale]{
	{Item: ScaleSmall, Weight: 2},
	{Item: ScaleMedium, Weight: 5},
	{Item: ScaleLarge, Weight: 3},
}

var galaxyNames = []string{
	"Andromeda", "Triangulum", "Sombrero", "Whirlpool", "Cartwheel",
	"Pinwheel", "Sunflower", "Tadpole", "Cigar", "Black Eye",
}

type Service struct {
	logger *slog.Logger
}

func NewService(logger *slog.Logger) *Service {
	logger.Debug("Initializing galaxy service")

	return &Service{
		logger: logger.With("component", "galaxy_service"),
	}
}

func IDFor(seed string) uuid.UUID {
	return uuid.NewSHA1(Namespace, []byte(seed))
}

func SectorsPerSide(scale Scale) (int, error) {
	switch scale {
	case ScaleSmall:
		return 4, nil
	case ScaleMedium:
		return 6, nil
	case ScaleLarge:
		return 8, nil
	}
	return 0, errors.Validationf("unknown galaxy scale %q", scale)
}

// ResolveScale turns ScaleAuto into a concrete scale; other values pass through
func ResolveScale(rng *random.Source, scale Scale) (Scale, error) {
	if scale != ScaleAuto {
		return scale, nil
	}
	return random.WeightedChoice(rng, scaleWeights)
}

// Create builds the galaxy record for seed. runID identifies this generation run
// and is the only value not derived from the seed.
func (s *Service) Create(rng *random.Source, seed string, scale Scale, fieldsPerSector int, runID uuid.UUID) (*Galaxy, error) {
	logger := s.logger.With("operation", "create_galaxy", "seed", seed, "scale", scale)
	logger.Debug("Creating galaxy")

	if fieldsPerSector < 3 {
		return nil, errors.Validationf("fields per sector must be at least 3, got %d", fieldsPerSector)
	}

	resolved, err := ResolveScale(rng, scale)
	if err != nil {
		return nil, err
	}
	side, err := SectorsPerSide(resolved)
	if err != nil {
		return nil, err
	}
	base, err := random.Choice(rng, galaxyNames)
	if err != nil {
		return nil, err
	}

	g := &Galaxy{
		ID:              IDFor(seed),
		Seed:            seed,
		Name:            fmt.Sprintf("%s %s", base, seed),
		Scale:           resolved,
		SectorsPerSide:  side,
		FieldsPerSector: fieldsPerSector,
		RunID:           runID,
	}

	logger.Info("Galaxy created", "galaxy_id", g.ID, "resolved_scale", resolved, "sectors_per_side", side)
	return g, nil
}
