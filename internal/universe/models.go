package universe

import (
	"planets-galaxy/internal/galaxy"
	"planets-galaxy/internal/hyperlane"
	"planets-galaxy/internal/planet"
	"planets-galaxy/internal/sector"
	"planets-galaxy/internal/spatial"
	"planets-galaxy/internal/system"
)

type Options struct {
	Scale           galaxy.Scale
	FieldsPerSector int
	Tuning          hyperlane.Tuning
	// LanesFile, when set, replaces the canonical lane table and is scaled
	// to the resolved galaxy size. Lanes is used as-is and wins over both.
	LanesFile string
	Lanes     []hyperlane.Lane
}

func DefaultOptions() Options {
	return Options{
		Scale:           galaxy.ScaleMedium,
		FieldsPerSector: 20,
		Tuning:          hyperlane.DefaultTuning(),
	}
}

// SectorContents is everything generated inside one sector
type SectorContents struct {
	Sector  sector.Sector
	Systems []system.System
	Bodies  []planet.Body
}

type Result struct {
	Galaxy         *galaxy.Galaxy
	Skipped        bool
	Sectors        int
	Systems        int
	Planets        int
	Moons          int
	AsteroidFields int
	Lanes          int
	Tiles          int
	Diagnostics    []spatial.Diagnostic
}

func (r *Result) addBodies(bodies []planet.Body) {
	for _, b := range bodies {
		switch b.Kind {
		case planet.KindPlanet:
			r.Planets++
		case planet.KindMoon:
			r.Moons++
		case planet.KindAsteroidField:
			r.AsteroidFields++
		}
	}
}
