package universe

import (
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"

	"planets-galaxy/internal/galaxy"
	"planets-galaxy/internal/hyperlane"
	"planets-galaxy/internal/planet"
	"planets-galaxy/internal/sector"
	"planets-galaxy/internal/shared/errors"
	"planets-galaxy/internal/shared/logger"
	"planets-galaxy/internal/shared/redis"
	"planets-galaxy/internal/spatial"
	"planets-galaxy/internal/star"
	"planets-galaxy/internal/system"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func smallOptions() Options {
	opts := DefaultOptions()
	opts.Scale = galaxy.ScaleSmall
	return opts
}

func newTestService(store Store, lock Lock, opts Options) *Service {
	return NewService(store, lock, opts, logger.Discard())
}

func TestGeneratePersistsEverything(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	svc := newTestService(store, redis.NewMemoryLock(), smallOptions())

	result, err := svc.Generate(ctx, "planets")
	require.NoError(t, err)
	require.False(t, result.Skipped)

	g := result.Galaxy
	require.NotNil(t, g)
	assert.True(t, g.Completed)
	assert.Equal(t, 4, g.SectorsPerSide)
	assert.Equal(t, 16, result.Sectors)
	assert.Positive(t, result.Systems)
	assert.GreaterOrEqual(t, result.Planets, 3*countNonSpecial(t, store, g.ID))
	assert.Equal(t, len(hyperlane.CanonicalLanes(4)), result.Lanes)
	assert.Positive(t, result.Tiles)

	stored, ok := storedGalaxy(t, store, "planets")
	require.True(t, ok)
	assert.True(t, stored.Completed)

	sectors := storedSectors(t, store, g.ID)
	require.Len(t, sectors, 16)

	systems, bodies := 0, 0
	for _, sec := range sectors {
		for _, sys := range storedSystems(t, store, sec.ID) {
			systems++
			systemBodies := storedBodies(t, store, sys.ID)
			assert.Len(t, systemBodies, sys.BodyCount)
			bodies += len(systemBodies)

			for _, b := range systemBodies {
				pt := spatial.Point{X: b.GridX, Y: b.GridY}
				assert.True(t, star.IsSafeForBody(pt, sys.Type, sys.GridSize, sys.PrimarySubType, sys.SecondarySubType))
			}
		}
	}
	assert.Equal(t, result.Systems, systems)
	assert.Equal(t, result.Planets+result.Moons+result.AsteroidFields, bodies)
	assert.Len(t, storedTiles(t, store, g.ID), result.Tiles)
}

func storedGalaxy(t *testing.T, r Reader, seed string) (*galaxy.Galaxy, bool) {
	t.Helper()
	g, err := r.GalaxyBySeed(context.Background(), seed)
	if errors.GetType(err) == errors.ErrorTypeNotFound {
		return nil, false
	}
	require.NoError(t, err)
	return g, true
}

func storedSectors(t *testing.T, r Reader, galaxyID uuid.UUID) []sector.Sector {
	t.Helper()
	sectors, err := r.SectorsByGalaxy(context.Background(), galaxyID)
	require.NoError(t, err)
	return sectors
}

func storedSystems(t *testing.T, r Reader, sectorID uuid.UUID) []system.System {
	t.Helper()
	systems, err := r.SystemsBySector(context.Background(), sectorID)
	require.NoError(t, err)
	return systems
}

func storedBodies(t *testing.T, r Reader, systemID uuid.UUID) []planet.Body {
	t.Helper()
	bodies, err := r.BodiesBySystem(context.Background(), systemID)
	require.NoError(t, err)
	return bodies
}

func storedTiles(t *testing.T, r Reader, galaxyID uuid.UUID) []hyperlane.Tile {
	t.Helper()
	var tiles []hyperlane.Tile
	for _, sec := range storedSectors(t, r, galaxyID) {
		inSector, err := r.TilesBySector(context.Background(), galaxyID, sec.Coord)
		require.NoError(t, err)
		tiles = append(tiles, inSector...)
	}
	return tiles
}

func countNonSpecial(t *testing.T, store Reader, galaxyID uuid.UUID) int {
	t.Helper()
	n := 0
	for _, sec := range storedSectors(t, store, galaxyID) {
		for _, sys := range storedSystems(t, store, sec.ID) {
			if !star.LookupOrDefault(sys.Type).Special {
				n++
			}
		}
	}
	return n
}

func TestGenerateIsDeterministic(t *testing.T) {
	ctx := context.Background()
	first, second := NewMemoryStore(), NewMemoryStore()

	a, err := newTestService(first, redis.NewMemoryLock(), smallOptions()).Generate(ctx, "test-seed")
	require.NoError(t, err)
	b, err := newTestService(second, redis.NewMemoryLock(), smallOptions()).Generate(ctx, "test-seed")
	require.NoError(t, err)

	assert.Equal(t, a.Galaxy.ID, b.Galaxy.ID)
	assert.NotEqual(t, a.Galaxy.RunID, b.Galaxy.RunID)
	assert.Equal(t, a.Systems, b.Systems)
	assert.Equal(t, a.Planets, b.Planets)
	assert.Equal(t, a.Diagnostics, b.Diagnostics)

	sectorsA, sectorsB := storedSectors(t, first, a.Galaxy.ID), storedSectors(t, second, b.Galaxy.ID)
	require.Equal(t, sectorsA, sectorsB)
	for _, sec := range sectorsA {
		systemsA := storedSystems(t, first, sec.ID)
		require.Equal(t, systemsA, storedSystems(t, second, sec.ID))
		for _, sys := range systemsA {
			assert.Equal(t, storedBodies(t, first, sys.ID), storedBodies(t, second, sys.ID))
		}
	}
	assert.Equal(t, storedTiles(t, first, a.Galaxy.ID), storedTiles(t, second, b.Galaxy.ID))
}

func TestGenerateSkipsExistingGalaxy(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	svc := newTestService(store, redis.NewMemoryLock(), smallOptions())

	_, err := svc.Generate(ctx, "once")
	require.NoError(t, err)

	again, err := svc.Generate(ctx, "once")
	require.NoError(t, err)
	assert.True(t, again.Skipped)
	assert.Nil(t, again.Galaxy)
}

func TestGenerateRefusesWhileLocked(t *testing.T) {
	ctx := context.Background()
	lock := redis.NewMemoryLock()
	ok, err := lock.Acquire(ctx, "busy", "other-run")
	require.NoError(t, err)
	require.True(t, ok)

	store := NewMemoryStore()
	_, err = newTestService(store, lock, smallOptions()).Generate(ctx, "busy")
	require.Error(t, err)
	assert.Equal(t, errors.ErrorTypeConflict, errors.GetType(err))

	_, stored := storedGalaxy(t, store, "busy")
	assert.False(t, stored)
}

func TestGenerateReleasesLock(t *testing.T) {
	ctx := context.Background()
	lock := redis.NewMemoryLock()

	_, err := newTestService(NewMemoryStore(), lock, smallOptions()).Generate(ctx, "release")
	require.NoError(t, err)

	ok, err := lock.Acquire(ctx, "release", "next-run")
	require.NoError(t, err)
	assert.True(t, ok)
}

// finishingLock lets a rival run complete the galaxy while this run waits
// for the lock
type finishingLock struct {
	*redis.MemoryLock
	rival func()
}

func (l *finishingLock) Acquire(ctx context.Context, seed, token string) (bool, error) {
	l.rival()
	return l.MemoryLock.Acquire(ctx, seed, token)
}

func TestGenerateSkipsGalaxyFinishedWhileWaiting(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	lock := &finishingLock{MemoryLock: redis.NewMemoryLock()}
	lock.rival = func() {
		_, err := newTestService(store, redis.NewMemoryLock(), smallOptions()).Generate(ctx, "raced")
		require.NoError(t, err)
	}

	result, err := newTestService(store, lock, smallOptions()).Generate(ctx, "raced")
	require.NoError(t, err)
	assert.True(t, result.Skipped)

	ok, err := lock.MemoryLock.Acquire(ctx, "raced", "next")
	require.NoError(t, err)
	assert.True(t, ok, "the skipping run releases its lock")
}

func TestInspectReadsBackGeneratedGalaxy(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	svc := newTestService(store, redis.NewMemoryLock(), smallOptions())

	generated, err := svc.Generate(ctx, "read-back")
	require.NoError(t, err)

	inspected, err := svc.Inspect(ctx, "read-back")
	require.NoError(t, err)
	assert.Equal(t, generated.Galaxy.ID, inspected.Galaxy.ID)
	assert.True(t, inspected.Galaxy.Completed)
	assert.Equal(t, generated.Sectors, inspected.Sectors)
	assert.Equal(t, generated.Systems, inspected.Systems)
	assert.Equal(t, generated.Planets, inspected.Planets)
	assert.Equal(t, generated.Moons, inspected.Moons)
	assert.Equal(t, generated.AsteroidFields, inspected.AsteroidFields)
	assert.Equal(t, generated.Tiles, inspected.Tiles)
	assert.Positive(t, inspected.Lanes)
	assert.LessOrEqual(t, inspected.Lanes, generated.Lanes)
	assert.Empty(t, inspected.Diagnostics)
}

func TestInspectUnknownSeed(t *testing.T) {
	_, err := newTestService(NewMemoryStore(), redis.NewMemoryLock(), smallOptions()).Inspect(context.Background(), "never")
	assert.Equal(t, errors.ErrorTypeNotFound, errors.GetType(err))
}

type failingStore struct {
	*MemoryStore
	failOn string
}

func (f *failingStore) SaveSectorContents(ctx context.Context, contents SectorContents) error {
	if f.failOn == "sector" {
		return stderrors.New("disk full")
	}
	return f.MemoryStore.SaveSectorContents(ctx, contents)
}

func (f *failingStore) SectorsByGalaxy(ctx context.Context, galaxyID uuid.UUID) ([]sector.Sector, error) {
	if f.failOn == "read" {
		return nil, stderrors.New("connection reset")
	}
	return f.MemoryStore.SectorsByGalaxy(ctx, galaxyID)
}

func (f *failingStore) UpsertHyperlaneTiles(ctx context.Context, galaxyID uuid.UUID, tiles []hyperlane.Tile) error {
	if f.failOn == "tiles" {
		return stderrors.New("connection reset")
	}
	return f.MemoryStore.UpsertHyperlaneTiles(ctx, galaxyID, tiles)
}

func TestGenerateWrapsStoreFailures(t *testing.T) {
	for _, failOn := range []string{"sector", "tiles"} {
		t.Run(failOn, func(t *testing.T) {
			ctx := context.Background()
			store := &failingStore{MemoryStore: NewMemoryStore(), failOn: failOn}
			lock := redis.NewMemoryLock()

			_, err := newTestService(store, lock, smallOptions()).Generate(ctx, "fragile")
			require.Error(t, err)
			assert.Equal(t, errors.ErrorTypeExternal, errors.GetType(err))

			g, ok := storedGalaxy(t, store, "fragile")
			require.True(t, ok)
			assert.False(t, g.Completed, "a failed run never completes")

			ok, err = lock.Acquire(ctx, "fragile", "retry")
			require.NoError(t, err)
			assert.True(t, ok, "lock is released after failure")
		})
	}
}

func TestInspectWrapsReadFailures(t *testing.T) {
	ctx := context.Background()
	store := &failingStore{MemoryStore: NewMemoryStore()}
	svc := newTestService(store, redis.NewMemoryLock(), smallOptions())

	_, err := svc.Generate(ctx, "unreadable")
	require.NoError(t, err)

	store.failOn = "read"
	_, err = svc.Inspect(ctx, "unreadable")
	assert.Equal(t, errors.ErrorTypeExternal, errors.GetType(err))
}

func TestGenerateRetriesIncompleteGalaxy(t *testing.T) {
	ctx := context.Background()
	store := &failingStore{MemoryStore: NewMemoryStore(), failOn: "tiles"}

	_, err := newTestService(store, redis.NewMemoryLock(), smallOptions()).Generate(ctx, "retry")
	require.Error(t, err)

	store.failOn = ""
	result, err := newTestService(store, redis.NewMemoryLock(), smallOptions()).Generate(ctx, "retry")
	require.NoError(t, err)
	assert.False(t, result.Skipped)
	assert.Len(t, storedSectors(t, store, result.Galaxy.ID), 16)
}

func TestGenerateWithCustomLanes(t *testing.T) {
	opts := smallOptions()
	opts.Lanes = []hyperlane.Lane{{
		Name: "Only Road", Color: "#123456", Type: hyperlane.LaneTypeTrunk, Priority: 1,
		From: spatial.Point{X: 1, Y: 1}, To: spatial.Point{X: 4, Y: 1},
	}}

	store := NewMemoryStore()
	result, err := newTestService(store, redis.NewMemoryLock(), opts).Generate(context.Background(), "custom")
	require.NoError(t, err)
	assert.Equal(t, 1, result.Lanes)

	for _, tile := range storedTiles(t, store, result.Galaxy.ID) {
		assert.Equal(t, "Only Road", tile.LaneName)
		assert.Equal(t, 1, tile.Sector.Y, "a lane along the top row stays in it")
	}
}

func TestGenerateLoadsLanesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lanes.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
reference_sectors: 6
lanes:
  - name: Diagonal
    color: "#abcdef"
    type: branch
    priority: 2
    from: {x: 1, y: 1}
    to: {x: 6, y: 6}
`), 0o600))

	opts := smallOptions()
	opts.LanesFile = path

	store := NewMemoryStore()
	result, err := newTestService(store, redis.NewMemoryLock(), opts).Generate(context.Background(), "from-file")
	require.NoError(t, err)
	assert.Equal(t, 1, result.Lanes)

	corners := map[spatial.Point]bool{}
	for _, tile := range storedTiles(t, store, result.Galaxy.ID) {
		assert.Equal(t, "Diagonal", tile.LaneName)
		corners[tile.Sector] = true
	}
	assert.True(t, corners[spatial.Point{X: 1, Y: 1}])
	assert.True(t, corners[spatial.Point{X: 4, Y: 4}], "scaled to the small galaxy")
}

func TestGenerateRejectsBadLanesFile(t *testing.T) {
	opts := smallOptions()
	opts.LanesFile = filepath.Join(t.TempDir(), "absent.yaml")

	_, err := newTestService(NewMemoryStore(), redis.NewMemoryLock(), opts).Generate(context.Background(), "bad-file")
	assert.True(t, errors.IsValidation(err))
}

func TestGenerateRejectsEmptySeed(t *testing.T) {
	_, err := newTestService(NewMemoryStore(), redis.NewMemoryLock(), smallOptions()).Generate(context.Background(), "")
	assert.True(t, errors.IsValidation(err))
}

func TestGenerateStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestService(NewMemoryStore(), redis.NewMemoryLock(), smallOptions()).Generate(ctx, "cancelled")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestResultCountsBodies(t *testing.T) {
	var r Result
	r.addBodies([]planet.Body{
		{Kind: planet.KindPlanet}, {Kind: planet.KindPlanet}, {Kind: planet.KindMoon}, {Kind: planet.KindAsteroidField},
	})
	assert.Equal(t, 2, r.Planets)
	assert.Equal(t, 1, r.Moons)
	assert.Equal(t, 1, r.AsteroidFields)
}

var (
	_ Store = (*MemoryStore)(nil)
	_ Store = (*PostgresStore)(nil)
	_ Lock  = (*redis.MemoryLock)(nil)
	_ Lock  = (*redis.Lock)(nil)
)
