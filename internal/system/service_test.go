package system

import (
	"fmt"
	"testing"

	"planets-galaxy/internal/random"
	"planets-galaxy/internal/sector"
	"planets-galaxy/internal/shared/errors"
	"planets-galaxy/internal/shared/logger"
	"planets-galaxy/internal/spatial"
	"planets-galaxy/internal/star"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSector(x, y int) sector.Sector {
	return sector.Sector{
		ID:          uuid.NewSHA1(uuid.NameSpaceOID, []byte(fmt.Sprintf("%d/%d", x, y))),
		Coord:       spatial.Point{X: x, Y: y},
		Name:        fmt.Sprintf("Alpha %d-%d", x, y),
		Environment: sector.EnvironmentNormal,
	}
}

func TestGenerateSpacesSystems(t *testing.T) {
	svc := NewService(logger.Discard())
	names := NewNameRegistry()

	for i := 0; i < 30; i++ {
		sec := testSector(i%6+1, i/6+1)
		systems, diags, err := svc.Generate(random.New(fmt.Sprintf("fields-%d", i)), sec, 5, 20, names)
		require.NoError(t, err)
		assert.Empty(t, diags)
		require.Len(t, systems, 5)

		for a := range systems {
			f := systems[a].Field
			assert.GreaterOrEqual(t, f.X, 2)
			assert.LessOrEqual(t, f.X, 19)
			assert.GreaterOrEqual(t, f.Y, 2)
			assert.LessOrEqual(t, f.Y, 19)
			assert.Equal(t, sec.ID, systems[a].SectorID)
			assert.Equal(t, sec.Coord, systems[a].Sector)

			for b := a + 1; b < len(systems); b++ {
				assert.GreaterOrEqual(t, spatial.Chebyshev(f, systems[b].Field), minFieldSeparation)
			}
		}
	}
}

func TestGenerateResolvesBinaryComposition(t *testing.T) {
	svc := NewService(logger.Discard())
	names := NewNameRegistry()
	binaries := 0

	for i := 0; i < 60; i++ {
		systems, _, err := svc.Generate(random.New(fmt.Sprintf("binary-%d", i)), testSector(1, 1), 5, 20, names)
		require.NoError(t, err)

		for _, sys := range systems {
			profile := star.LookupOrDefault(sys.Type)
			assert.Equal(t, profile.GridSize, sys.GridSize)
			assert.Equal(t, star.IsBinary(sys.Type), sys.IsBinary)
			if !sys.IsBinary {
				assert.Nil(t, sys.PrimarySubType)
				assert.Nil(t, sys.SecondarySubType)
				continue
			}
			binaries++
			pair, _ := star.BinaryComposition(sys.Type)
			require.NotNil(t, sys.PrimarySubType)
			require.NotNil(t, sys.SecondarySubType)
			assert.Equal(t, pair.Primary, *sys.PrimarySubType)
			assert.Equal(t, pair.Secondary, *sys.SecondarySubType)
		}
	}
	assert.Positive(t, binaries)
}

func TestGenerateIsDeterministic(t *testing.T) {
	svc := NewService(logger.Discard())
	a, _, err := svc.Generate(random.New("same"), testSector(2, 3), 4, 20, NewNameRegistry())
	require.NoError(t, err)
	b, _, err := svc.Generate(random.New("same"), testSector(2, 3), 4, 20, NewNameRegistry())
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestGenerateSkipsWhenFieldsRunOut(t *testing.T) {
	svc := NewService(logger.Discard())

	// a 4-field sector only offers [2,3]², room for a single system
	systems, diags, err := svc.Generate(random.New("crowded"), testSector(1, 1), 3, 4, NewNameRegistry())
	require.NoError(t, err)
	assert.Len(t, systems, 1)
	require.Len(t, diags, 2)
	assert.Equal(t, spatial.ScaleSector, diags[0].Scale)
	assert.Equal(t, fieldAttempts, diags[0].Attempts)
}

func TestGenerateRejectsTinySectors(t *testing.T) {
	svc := NewService(logger.Discard())
	_, _, err := svc.Generate(random.New("tiny"), testSector(1, 1), 1, 2, NewNameRegistry())
	assert.True(t, errors.IsValidation(err))
}

func TestNameRegistry(t *testing.T) {
	names := NewNameRegistry()
	names.Reserve("Vega")

	assert.False(t, names.Available("Vega"))
	assert.False(t, names.Available("Vegs"), "one edit away")
	assert.False(t, names.Available("vega"), "case-insensitive")
	assert.False(t, names.Available("Vela"), "substitution is one edit")
	assert.True(t, names.Available("Rigel"))
}

func TestNameRegistryKeepsNamesDistinct(t *testing.T) {
	names := NewNameRegistry()
	rng := random.New("names")

	var drawn []string
	for i := 0; i < 200; i++ {
		name, ok, err := names.Next(rng)
		require.NoError(t, err)
		if ok {
			drawn = append(drawn, name)
		}
	}
	require.Len(t, drawn, names.Len())
	assert.Greater(t, len(drawn), 150)

	seen := make(map[string]bool)
	for _, n := range drawn {
		assert.False(t, seen[n], n)
		seen[n] = true
	}
}
