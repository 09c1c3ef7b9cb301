package system

import (
	"fmt"
	"log/slog"

	"planets-galaxy/internal/random"
	"planets-galaxy/internal/sector"
	"planets-galaxy/internal/shared/errors"
	"planets-galaxy/internal/spatial"
	"planets-galaxy/internal/star"

	"github.com/google/uuid"
)

const (
	fieldAttempts      = 100
	minFieldSeparation = 3
)

type Service struct {
	logger *slog.Logger
}

func NewService(logger *slog.Logger) *Service {
	logger.Debug("Initializing system service")

	return &Service{
		logger: logger.With("component", "system_service"),
	}
}

// Generate places count systems inside one sector. Systems whose field or name
// cannot be found within budget are skipped and reported as diagnostics.
func (s *Service) Generate(rng *random.Source, sec sector.Sector, count, fieldsPerSector int, names *NameRegistry) ([]System, []spatial.Diagnostic, error) {
	logger := s.logger.With("operation", "generate_systems", "sector", sec.Coord, "count", count)
	logger.Debug("Generating systems")

	if fieldsPerSector < 3 {
		return nil, nil, errors.Validationf("fields per sector must be at least 3, got %d", fieldsPerSector)
	}

	var (
		systems     []System
		diagnostics []spatial.Diagnostic
		taken       []spatial.Point
	)

	skip := func(item string, attempts int) {
		diagnostics = append(diagnostics, spatial.Diagnostic{
			Scale:    spatial.ScaleSector,
			Owner:    sec.Name,
			Item:     item,
			Attempts: attempts,
		})
		logger.Warn("Placement attempts exhausted", "item", item, "attempts", attempts)
	}

	for i := 0; i < count; i++ {
		field, ok, err := pickField(rng, taken, fieldsPerSector)
		if err != nil {
			return nil, nil, err
		}
		if !ok {
			skip(fmt.Sprintf("system field %d", i+1), fieldAttempts)
			continue
		}

		name, ok, err := names.Next(rng)
		if err != nil {
			return nil, nil, err
		}
		if !ok {
			skip(fmt.Sprintf("system name at %s", field), nameAttempts)
			continue
		}

		sys, err := newSystem(rng, sec, field, name)
		if err != nil {
			return nil, nil, err
		}
		taken = append(taken, field)
		systems = append(systems, sys)
	}

	logger.Debug("Systems generated", "created", len(systems), "skipped", len(diagnostics))
	return systems, diagnostics, nil
}

// pickField samples fields in [2, F-1] at Chebyshev distance ≥3 from taken
func pickField(rng *random.Source, taken []spatial.Point, fieldsPerSector int) (spatial.Point, bool, error) {
	for attempt := 0; attempt < fieldAttempts; attempt++ {
		x, err := rng.NextInt(2, fieldsPerSector-1)
		if err != nil {
			return spatial.Point{}, false, err
		}
		y, err := rng.NextInt(2, fieldsPerSector-1)
		if err != nil {
			return spatial.Point{}, false, err
		}

		candidate := spatial.Point{X: x, Y: y}
		free := true
		for _, p := range taken {
			if spatial.Chebyshev(candidate, p) < minFieldSeparation {
				free = false
				break
			}
		}
		if free {
			return candidate, true, nil
		}
	}
	return spatial.Point{}, false, nil
}

func newSystem(rng *random.Source, sec sector.Sector, field spatial.Point, name string) (System, error) {
	typ, err := random.WeightedChoice(rng, star.SelectionWeights())
	if err != nil {
		return System{}, err
	}

	sys := System{
		ID:       uuid.NewSHA1(sec.ID, []byte(fmt.Sprintf("system/%d/%d", field.X, field.Y))),
		SectorID: sec.ID,
		Sector:   sec.Coord,
		Field:    field,
		Name:     name,
		Type:     typ,
		GridSize: star.LookupOrDefault(typ).GridSize,
	}

	// a binary type without a registered composition is treated as a single star
	if pair, ok := star.BinaryComposition(typ); ok {
		primary, secondary := pair.Primary, pair.Secondary
		sys.IsBinary = true
		sys.PrimarySubType = &primary
		sys.SecondarySubType = &secondary
	}
	return sys, nil
}
