package hyperlane

import (
	"planets-galaxy/internal/random"
	"planets-galaxy/internal/spatial"
	"planets-galaxy/internal/system"
)

// Anchor picks the galaxy coordinate a lane enters a sector at: the system
// with the most bodies, ties broken by a seeded draw. A sector without
// systems anchors at its center field.
func Anchor(rng *random.Source, sector spatial.Point, systems []system.System, fieldsPerSector int) (spatial.Point, error) {
	var best []system.System
	for _, s := range systems {
		if s.Sector != sector {
			continue
		}
		switch {
		case len(best) == 0 || s.BodyCount > best[0].BodyCount:
			best = []system.System{s}
		case s.BodyCount == best[0].BodyCount:
			best = append(best, s)
		}
	}

	if len(best) == 0 {
		return spatial.SectorCenter(sector, fieldsPerSector), nil
	}

	pick, err := random.Choice(rng, best)
	if err != nil {
		return spatial.Point{}, err
	}
	return spatial.ToGalaxy(pick.Location(), fieldsPerSector), nil
}
