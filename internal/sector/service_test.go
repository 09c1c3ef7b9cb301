package sector

import (
	"testing"

	"planets-galaxy/internal/random"
	"planets-galaxy/internal/shared/errors"
	"planets-galaxy/internal/shared/logger"
	"planets-galaxy/internal/spatial"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateCoversGrid(t *testing.T) {
	svc := NewService(logger.Discard())
	galaxyID := uuid.NewSHA1(uuid.NameSpaceOID, []byte("planets"))

	sectors, err := svc.Generate(random.New("planets"), galaxyID, 6)
	require.NoError(t, err)
	require.Len(t, sectors, 36)

	seen := make(map[spatial.Point]bool)
	ids := make(map[uuid.UUID]bool)
	for _, s := range sectors {
		assert.True(t, s.Coord.InBounds(6))
		assert.False(t, seen[s.Coord])
		assert.False(t, ids[s.ID])
		assert.Equal(t, galaxyID, s.GalaxyID)
		assert.Contains(t, []Environment{EnvironmentNormal, EnvironmentNebula, EnvironmentAsteroidDense}, s.Environment)
		assert.NotEmpty(t, s.Name)
		seen[s.Coord] = true
		ids[s.ID] = true
	}
	assert.Equal(t, spatial.Point{X: 1, Y: 1}, sectors[0].Coord)
	assert.Equal(t, spatial.Point{X: 2, Y: 1}, sectors[1].Coord)
}

func TestGenerateIsDeterministic(t *testing.T) {
	svc := NewService(logger.Discard())
	galaxyID := uuid.New()

	a, err := svc.Generate(random.New("seed"), galaxyID, 4)
	require.NoError(t, err)
	b, err := svc.Generate(random.New("seed"), galaxyID, 4)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestGenerateRejectsEmptyGrid(t *testing.T) {
	svc := NewService(logger.Discard())
	_, err := svc.Generate(random.New("seed"), uuid.New(), 0)
	assert.True(t, errors.IsValidation(err))
}

func TestSystemCountRanges(t *testing.T) {
	tests := []struct {
		env      Environment
		min, max int
	}{
		{EnvironmentNormal, 3, 5},
		{EnvironmentNebula, 0, 2},
		{EnvironmentAsteroidDense, 2, 4},
	}

	rng := random.New("counts")
	for _, tt := range tests {
		t.Run(string(tt.env), func(t *testing.T) {
			for i := 0; i < 200; i++ {
				n, err := SystemCount(rng, tt.env)
				require.NoError(t, err)
				assert.GreaterOrEqual(t, n, tt.min)
				assert.LessOrEqual(t, n, tt.max)
			}
		})
	}
}

func TestSeedForIsPerSector(t *testing.T) {
	assert.NotEqual(t, SeedFor("planets", spatial.Point{X: 1, Y: 2}), SeedFor("planets", spatial.Point{X: 2, Y: 1}))
	assert.Equal(t, SeedFor("planets", spatial.Point{X: 3, Y: 4}), SeedFor("planets", spatial.Point{X: 3, Y: 4}))
	assert.NotEqual(t, SeedFor("planets-1", spatial.Point{X: 3, Y: 4}), SeedFor("planets-2", spatial.Point{X: 3, Y: 4}))
}

func TestSystemCountVariesAcrossSectors(t *testing.T) {
	for _, seed := range []string{"alpha", "galaxy-42", "test-seed", "zz"} {
		for _, env := range []Environment{EnvironmentNormal, EnvironmentNebula, EnvironmentAsteroidDense} {
			counts := make(map[int]bool)
			for y := 1; y <= 8; y++ {
				for x := 1; x <= 8; x++ {
					n, err := SystemCount(random.New(SeedFor(seed, spatial.Point{X: x, Y: y})), env)
					require.NoError(t, err)
					counts[n] = true
				}
			}
			assert.Len(t, counts, 3, "seed %s environment %s", seed, env)
		}
	}
}
