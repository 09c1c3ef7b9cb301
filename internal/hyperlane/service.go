package hyperlane

import (
	"fmt"
	"log/slog"

	"planets-galaxy/internal/random"
	"planets-galaxy/internal/spatial"
	"planets-galaxy/internal/system"
)

// Route is one synthesized lane in galaxy coordinates
type Route struct {
	Lane   Lane
	Path   []spatial.Point
	Missed []spatial.Point
}

type Plan struct {
	Routes []Route
	Tiles  *TileSet
}

// Layout describes the galaxy grid the lanes are drawn on
type Layout struct {
	Seed            string
	SectorsPerSide  int
	FieldsPerSector int
}

func (l Layout) bounds() spatial.Point {
	side := l.SectorsPerSide * l.FieldsPerSector
	return spatial.Point{X: side, Y: side}
}

type Service struct {
	tuning Tuning
	logger *slog.Logger
}

func NewService(tuning Tuning, logger *slog.Logger) *Service {
	logger.Debug("Initializing hyperlane service")

	return &Service{
		tuning: tuning,
		logger: logger.With("component", "hyperlane_service"),
	}
}

// Build routes every lane between its anchor systems through its core sectors
// and merges the resulting tiles. systems must be fully populated so anchors
// can rank them by body count.
func (s *Service) Build(layout Layout, lanes []Lane, systems []system.System) (*Plan, error) {
	logger := s.logger.With("operation", "build_lanes", "seed", layout.Seed, "lanes", len(lanes))
	logger.Debug("Building hyperlanes")

	synth := NewSynthesizer(layout.bounds(), s.tuning)
	plan := &Plan{Tiles: NewTileSet()}

	for _, lane := range lanes {
		laneSeed := random.Derive(layout.Seed, "lane/"+lane.Name)
		rng := random.New(laneSeed)

		from, err := Anchor(rng, lane.From, systems, layout.FieldsPerSector)
		if err != nil {
			return nil, err
		}
		to, err := Anchor(rng, lane.To, systems, layout.FieldsPerSector)
		if err != nil {
			return nil, err
		}

		via := make([]spatial.Point, 0, len(lane.Via))
		for _, core := range lane.Via {
			via = append(via, spatial.SectorCenter(core, layout.FieldsPerSector))
		}

		path, err := synth.Synthesize(from, to, via, laneSeed)
		if err != nil {
			return nil, fmt.Errorf("failed to synthesize lane %s: %w", lane.Name, err)
		}

		route := Route{Lane: lane, Path: path, Missed: missing(path, via)}
		if len(route.Missed) > 0 {
			logger.Warn("Lane shortcut a core sector", "lane", lane.Name, "missed", len(route.Missed))
		}

		tiles := ToTiles(path, lane, layout.FieldsPerSector, layout.SectorsPerSide)
		plan.Tiles.Merge(tiles)
		plan.Routes = append(plan.Routes, route)

		logger.Debug("Lane routed", "lane", lane.Name, "from", from, "to", to, "length", len(path))
	}

	logger.Info("Hyperlanes built", "routes", len(plan.Routes), "tiles", plan.Tiles.Len())
	return plan, nil
}

// missing lists points of want that path never visits
func missing(path, want []spatial.Point) []spatial.Point {
	visited := make(map[spatial.Point]bool, len(path))
	for _, p := range path {
		visited[p] = true
	}
	var out []spatial.Point
	for _, p := range want {
		if !visited[p] {
			out = append(out, p)
		}
	}
	return out
}
