package spatial

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistances(t *testing.T) {
	a, b := Point{X: 1, Y: 1}, Point{X: 4, Y: 5}
	assert.Equal(t, 7, Manhattan(a, b))
	assert.Equal(t, 4, Chebyshev(a, b))
	assert.InDelta(t, 5.0, Distance(a, b), 1e-12)
}

func TestBoundsAndClamp(t *testing.T) {
	assert.True(t, Point{X: 1, Y: 20}.InBounds(20))
	assert.False(t, Point{X: 0, Y: 5}.InBounds(20))
	assert.False(t, Point{X: 21, Y: 5}.InBounds(20))
	assert.Equal(t, Point{X: 1, Y: 20}, Point{X: -3, Y: 27}.Clamp(20))
}

func TestGalaxyConversionRoundTrip(t *testing.T) {
	const fields, sectors = 20, 6
	for x := 1; x <= fields*sectors; x += 7 {
		for y := 1; y <= fields*sectors; y += 11 {
			p := Point{X: x, Y: y}
			sf, ok := FromGalaxy(p, fields, sectors)
			require.True(t, ok)
			require.True(t, sf.Sector.InBounds(sectors))
			require.True(t, sf.Field.InBounds(fields))
			assert.Equal(t, p, ToGalaxy(sf, fields))
		}
	}
}

func TestFromGalaxyBoundaries(t *testing.T) {
	sf, ok := FromGalaxy(Point{X: 20, Y: 21}, 20, 6)
	require.True(t, ok)
	assert.Equal(t, Point{X: 1, Y: 2}, sf.Sector)
	assert.Equal(t, Point{X: 20, Y: 1}, sf.Field)

	_, ok = FromGalaxy(Point{X: 121, Y: 5}, 20, 6)
	assert.False(t, ok)
	_, ok = FromGalaxy(Point{X: 0, Y: 5}, 20, 6)
	assert.False(t, ok)
}

func TestSectorCenter(t *testing.T) {
	assert.Equal(t, Point{X: 50, Y: 70}, SectorCenter(Point{X: 3, Y: 4}, 20))
}
