package universe

import (
	"context"
	"sync"

	"planets-galaxy/internal/galaxy"
	"planets-galaxy/internal/hyperlane"
	"planets-galaxy/internal/planet"
	"planets-galaxy/internal/sector"
	"planets-galaxy/internal/shared/errors"
	"planets-galaxy/internal/spatial"
	"planets-galaxy/internal/system"

	"github.com/google/uuid"
)

// Reader reads back what earlier runs stored. GalaxyBySeed returns a not
// found error when the seed was never generated.
type Reader interface {
	GalaxyBySeed(ctx context.Context, seed string) (*galaxy.Galaxy, error)
	SectorsByGalaxy(ctx context.Context, galaxyID uuid.UUID) ([]sector.Sector, error)
	SystemsBySector(ctx context.Context, sectorID uuid.UUID) ([]system.System, error)
	BodiesBySystem(ctx context.Context, systemID uuid.UUID) ([]planet.Body, error)
	TilesBySector(ctx context.Context, galaxyID uuid.UUID, coord spatial.Point) ([]hyperlane.Tile, error)
}

// Store is the persistence sink a generation run writes to, in call order
type Store interface {
	Reader
	GalaxyExists(ctx context.Context, seed string) (bool, error)
	SaveGalaxy(ctx context.Context, g *galaxy.Galaxy) error
	SaveSectors(ctx context.Context, sectors []sector.Sector) error
	SaveSectorContents(ctx context.Context, contents SectorContents) error
	UpsertHyperlaneTiles(ctx context.Context, galaxyID uuid.UUID, tiles []hyperlane.Tile) error
	CompleteGalaxy(ctx context.Context, galaxyID uuid.UUID) error
}

// Lock keeps two runs from generating the same seed at once
type Lock interface {
	Acquire(ctx context.Context, seed, token string) (bool, error)
	Release(ctx context.Context, seed, token string) error
}

// MemoryStore keeps generated galaxies in memory for tests and dry runs
type MemoryStore struct {
	mu       sync.Mutex
	galaxies map[string]*galaxy.Galaxy
	sectors  map[uuid.UUID][]sector.Sector
	systems  map[uuid.UUID][]system.System
	bodies   map[uuid.UUID][]planet.Body
	tiles    map[uuid.UUID]*hyperlane.TileSet
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		galaxies: make(map[string]*galaxy.Galaxy),
		sectors:  make(map[uuid.UUID][]sector.Sector),
		systems:  make(map[uuid.UUID][]system.System),
		bodies:   make(map[uuid.UUID][]planet.Body),
		tiles:    make(map[uuid.UUID]*hyperlane.TileSet),
	}
}

func (m *MemoryStore) GalaxyExists(_ context.Context, seed string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	g, ok := m.galaxies[seed]
	return ok && g.Completed, nil
}

func (m *MemoryStore) SaveGalaxy(_ context.Context, g *galaxy.Galaxy) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if existing, ok := m.galaxies[g.Seed]; ok && existing.Completed {
		return errors.Conflictf("galaxy for seed %q already exists", g.Seed)
	}
	stored := *g
	m.galaxies[g.Seed] = &stored
	delete(m.sectors, g.ID)
	delete(m.tiles, g.ID)
	return nil
}

func (m *MemoryStore) SaveSectors(_ context.Context, sectors []sector.Sector) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, s := range sectors {
		m.sectors[s.GalaxyID] = append(m.sectors[s.GalaxyID], s)
	}
	return nil
}

func (m *MemoryStore) SaveSectorContents(_ context.Context, contents SectorContents) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.systems[contents.Sector.ID] = append([]system.System(nil), contents.Systems...)
	for _, s := range contents.Systems {
		delete(m.bodies, s.ID)
	}
	for _, b := range contents.Bodies {
		m.bodies[b.SystemID] = append(m.bodies[b.SystemID], b)
	}
	return nil
}

func (m *MemoryStore) UpsertHyperlaneTiles(_ context.Context, galaxyID uuid.UUID, tiles []hyperlane.Tile) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	ts, ok := m.tiles[galaxyID]
	if !ok {
		ts = hyperlane.NewTileSet()
		m.tiles[galaxyID] = ts
	}
	ts.Merge(tiles)
	return nil
}

func (m *MemoryStore) CompleteGalaxy(_ context.Context, galaxyID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, g := range m.galaxies {
		if g.ID == galaxyID {
			g.Completed = true
			return nil
		}
	}
	return errors.NotFoundf("galaxy %s not found", galaxyID)
}

func (m *MemoryStore) GalaxyBySeed(_ context.Context, seed string) (*galaxy.Galaxy, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	g, ok := m.galaxies[seed]
	if !ok {
		return nil, errors.NotFoundf("galaxy with seed %q not found", seed)
	}
	copied := *g
	return &copied, nil
}

func (m *MemoryStore) SectorsByGalaxy(_ context.Context, galaxyID uuid.UUID) ([]sector.Sector, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]sector.Sector(nil), m.sectors[galaxyID]...), nil
}

func (m *MemoryStore) SystemsBySector(_ context.Context, sectorID uuid.UUID) ([]system.System, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]system.System(nil), m.systems[sectorID]...), nil
}

func (m *MemoryStore) BodiesBySystem(_ context.Context, systemID uuid.UUID) ([]planet.Body, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]planet.Body(nil), m.bodies[systemID]...), nil
}

func (m *MemoryStore) TilesBySector(_ context.Context, galaxyID uuid.UUID, coord spatial.Point) ([]hyperlane.Tile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ts, ok := m.tiles[galaxyID]
	if !ok {
		return nil, nil
	}
	var tiles []hyperlane.Tile
	for _, t := range ts.Tiles() {
		if t.Sector == coord {
			tiles = append(tiles, t)
		}
	}
	return tiles, nil
}
