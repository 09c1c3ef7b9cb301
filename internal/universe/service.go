package universe

import (
	"context"
	"log/slog"

	"planets-galaxy/internal/galaxy"
	"planets-galaxy/internal/hyperlane"
	"planets-galaxy/internal/planet"
	"planets-galaxy/internal/random"
	"planets-galaxy/internal/sector"
	"planets-galaxy/internal/shared/errors"
	"planets-galaxy/internal/system"

	"github.com/google/uuid"
)

type Service struct {
	store     Store
	lock      Lock
	opts      Options
	galaxies  *galaxy.Service
	sectors   *sector.Service
	systems   *system.Service
	populator *planet.Populator
	lanes     *hyperlane.Service
	logger    *slog.Logger
}

func NewService(store Store, lock Lock, opts Options, logger *slog.Logger) *Service {
	logger.Debug("Initializing universe service")

	return &Service{
		store:     store,
		lock:      lock,
		opts:      opts,
		galaxies:  galaxy.NewService(logger),
		sectors:   sector.NewService(logger),
		systems:   system.NewService(logger),
		populator: planet.NewPopulator(logger),
		lanes:     hyperlane.NewService(opts.Tuning, logger),
		logger:    logger.With("component", "universe_service"),
	}
}

// Generate builds and persists the galaxy for seed: sectors, then systems and
// bodies sector by sector, then hyperlanes. A seed whose galaxy is already
// complete is skipped.
func (s *Service) Generate(ctx context.Context, seed string) (*Result, error) {
	logger := s.logger.With("operation", "generate", "seed", seed)
	logger.Info("Starting galaxy generation")

	if seed == "" {
		return nil, errors.Validation("seed must not be empty")
	}

	exists, err := s.store.GalaxyExists(ctx, seed)
	if err != nil {
		return nil, errors.WrapExternal("failed to check for existing galaxy", err)
	}
	if exists {
		logger.Info("Galaxy already generated, skipping")
		return &Result{Skipped: true}, nil
	}

	runID := uuid.New()
	token := runID.String()
	acquired, err := s.lock.Acquire(ctx, seed, token)
	if err != nil {
		return nil, err
	}
	if !acquired {
		return nil, errors.Conflictf("generation for seed %q is already running", seed)
	}
	defer func() {
		if err := s.lock.Release(context.WithoutCancel(ctx), seed, token); err != nil {
			logger.Error("Failed to release generation lock", "error", err)
		}
	}()

	// a run that held the lock before us may have finished the galaxy
	exists, err = s.store.GalaxyExists(ctx, seed)
	if err != nil {
		return nil, errors.WrapExternal("failed to check for existing galaxy", err)
	}
	if exists {
		logger.Info("Galaxy completed by another run, skipping")
		return &Result{Skipped: true}, nil
	}

	result, err := s.generate(ctx, seed, runID)
	if err != nil {
		logger.Error("Galaxy generation failed", "error", err)
		return nil, err
	}

	logger.Info("Galaxy generation completed",
		"galaxy_id", result.Galaxy.ID,
		"scale", result.Galaxy.Scale,
		"sectors", result.Sectors,
		"systems", result.Systems,
		"planets", result.Planets,
		"moons", result.Moons,
		"asteroid_fields", result.AsteroidFields,
		"lanes", result.Lanes,
		"tiles", result.Tiles,
		"diagnostics", len(result.Diagnostics),
	)
	return result, nil
}

func (s *Service) generate(ctx context.Context, seed string, runID uuid.UUID) (*Result, error) {
	rng := random.New(random.Derive(seed, "galaxy"))

	g, err := s.galaxies.Create(rng, seed, s.opts.Scale, s.opts.FieldsPerSector, runID)
	if err != nil {
		return nil, err
	}
	if err := s.store.SaveGalaxy(ctx, g); err != nil {
		return nil, errors.WrapExternal("failed to save galaxy", err)
	}

	sectors, err := s.sectors.Generate(rng, g.ID, g.SectorsPerSide)
	if err != nil {
		return nil, err
	}
	if err := s.store.SaveSectors(ctx, sectors); err != nil {
		return nil, errors.WrapExternal("failed to save sectors", err)
	}

	result := &Result{Galaxy: g, Sectors: len(sectors)}
	names := system.NewNameRegistry()
	var allSystems []system.System

	for _, sec := range sectors {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		contents, err := s.populateSector(seed, sec, g.FieldsPerSector, names, result)
		if err != nil {
			return nil, err
		}
		if err := s.store.SaveSectorContents(ctx, contents); err != nil {
			return nil, errors.WrapExternal("failed to save sector "+sec.Name, err)
		}
		allSystems = append(allSystems, contents.Systems...)
	}
	result.Systems = len(allSystems)

	lanes, err := s.laneTable(g.SectorsPerSide)
	if err != nil {
		return nil, err
	}
	plan, err := s.lanes.Build(hyperlane.Layout{
		Seed:            seed,
		SectorsPerSide:  g.SectorsPerSide,
		FieldsPerSector: g.FieldsPerSector,
	}, lanes, allSystems)
	if err != nil {
		return nil, err
	}

	tiles := plan.Tiles.Tiles()
	if err := s.store.UpsertHyperlaneTiles(ctx, g.ID, tiles); err != nil {
		return nil, errors.WrapExternal("failed to save hyperlane tiles", err)
	}
	result.Lanes = len(plan.Routes)
	result.Tiles = len(tiles)

	if err := s.store.CompleteGalaxy(ctx, g.ID); err != nil {
		return nil, errors.WrapExternal("failed to complete galaxy", err)
	}
	g.Completed = true

	return result, nil
}

// Inspect reads the stored galaxy for seed back and counts what it holds.
// Diagnostics are not persisted, so the result carries none.
func (s *Service) Inspect(ctx context.Context, seed string) (*Result, error) {
	logger := s.logger.With("operation", "inspect", "seed", seed)
	logger.Debug("Inspecting stored galaxy")

	g, err := s.store.GalaxyBySeed(ctx, seed)
	if err != nil {
		return nil, readError("galaxy", err)
	}
	sectors, err := s.store.SectorsByGalaxy(ctx, g.ID)
	if err != nil {
		return nil, readError("sectors", err)
	}

	result := &Result{Galaxy: g, Sectors: len(sectors)}
	lanes := make(map[string]bool)
	for _, sec := range sectors {
		systems, err := s.store.SystemsBySector(ctx, sec.ID)
		if err != nil {
			return nil, readError("systems of sector "+sec.Name, err)
		}
		result.Systems += len(systems)

		for _, sys := range systems {
			bodies, err := s.store.BodiesBySystem(ctx, sys.ID)
			if err != nil {
				return nil, readError("bodies of system "+sys.Name, err)
			}
			result.addBodies(bodies)
		}

		tiles, err := s.store.TilesBySector(ctx, g.ID, sec.Coord)
		if err != nil {
			return nil, readError("hyperlane tiles of sector "+sec.Name, err)
		}
		result.Tiles += len(tiles)
		for _, t := range tiles {
			lanes[t.LaneName] = true
		}
	}
	result.Lanes = len(lanes)

	logger.Info("Stored galaxy inspected",
		"galaxy_id", g.ID,
		"completed", g.Completed,
		"sectors", result.Sectors,
		"systems", result.Systems,
		"tiles", result.Tiles,
	)
	return result, nil
}

func readError(what string, err error) error {
	if errors.GetType(err) == errors.ErrorTypeNotFound {
		return err
	}
	return errors.WrapExternal("failed to read "+what, err)
}

func (s *Service) laneTable(sectorsPerSide int) ([]hyperlane.Lane, error) {
	switch {
	case s.opts.Lanes != nil:
		return s.opts.Lanes, nil
	case s.opts.LanesFile != "":
		return hyperlane.LoadLanes(s.opts.LanesFile, sectorsPerSide)
	}
	return hyperlane.CanonicalLanes(sectorsPerSide), nil
}

// populateSector draws the sector's systems from its own stream and fills
// each with bodies
func (s *Service) populateSector(seed string, sec sector.Sector, fieldsPerSector int, names *system.NameRegistry, result *Result) (SectorContents, error) {
	rng := random.New(sector.SeedFor(seed, sec.Coord))
	contents := SectorContents{Sector: sec}

	count, err := sector.SystemCount(rng, sec.Environment)
	if err != nil {
		return contents, err
	}
	systems, diags, err := s.systems.Generate(rng, sec, count, fieldsPerSector, names)
	if err != nil {
		return contents, err
	}
	result.Diagnostics = append(result.Diagnostics, diags...)

	for i := range systems {
		sys := &systems[i]
		populated, err := s.populator.Populate(planet.Request{
			SystemID:   sys.ID,
			SystemName: sys.Name,
			Seed:       seed,
			Type:       sys.Type,
			GridSize:   sys.GridSize,
			Primary:    sys.PrimarySubType,
			Secondary:  sys.SecondarySubType,
		})
		if err != nil {
			return contents, err
		}

		sys.BodyCount = len(populated.Bodies)
		contents.Bodies = append(contents.Bodies, populated.Bodies...)
		result.Diagnostics = append(result.Diagnostics, populated.Diagnostics...)
		result.addBodies(populated.Bodies)
	}

	contents.Systems = systems
	return contents, nil
}
