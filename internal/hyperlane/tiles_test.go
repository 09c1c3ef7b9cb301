package hyperlane

import (
	"testing"

	"planets-galaxy/internal/spatial"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	spine  = Lane{Name: "Spine", Color: "#f00", Type: LaneTypeTrunk, Priority: 3}
	branch = Lane{Name: "Branch", Color: "#0f0", Type: LaneTypeBranch, Priority: 1}
)

func TestToTilesConvertsAndDropsOutOfBounds(t *testing.T) {
	points := []spatial.Point{{X: 1, Y: 1}, {X: 20, Y: 21}, {X: 41, Y: 3}, {X: 0, Y: 4}}
	tiles := ToTiles(points, spine, 20, 2)
	require.Len(t, tiles, 2)

	assert.Equal(t, spatial.Point{X: 1, Y: 1}, tiles[0].Sector)
	assert.Equal(t, spatial.Point{X: 1, Y: 1}, tiles[0].Field)
	assert.Equal(t, spatial.Point{X: 1, Y: 2}, tiles[1].Sector)
	assert.Equal(t, spatial.Point{X: 20, Y: 1}, tiles[1].Field)
	assert.Equal(t, "Spine", tiles[1].LaneName)
	assert.Equal(t, 3, tiles[1].Priority)
	assert.False(t, tiles[1].Convergence)
}

func TestTileSetMergePriority(t *testing.T) {
	shared := spatial.Point{X: 5, Y: 5}
	ts := NewTileSet()

	ts.Merge(ToTiles([]spatial.Point{{X: 4, Y: 5}, shared}, branch, 20, 1))
	ts.Merge(ToTiles([]spatial.Point{shared, {X: 5, Y: 6}}, spine, 20, 1))
	require.Equal(t, 3, ts.Len())

	key := spatial.SectorField{Sector: spatial.Point{X: 1, Y: 1}, Field: shared}
	tile, ok := ts.Get(key)
	require.True(t, ok)
	assert.Equal(t, "Spine", tile.LaneName, "higher priority wins")
	assert.True(t, tile.Convergence)

	tiles := ts.Tiles()
	assert.Equal(t, "Branch", tiles[0].LaneName)
	assert.False(t, tiles[0].Convergence)
	assert.Equal(t, key, tiles[1].Key(), "first-claimed order is kept")
}

func TestTileSetMergeKeepsIncumbentOnLowerPriority(t *testing.T) {
	shared := spatial.Point{X: 2, Y: 2}
	ts := NewTileSet()
	ts.Merge(ToTiles([]spatial.Point{shared}, spine, 20, 1))
	ts.Merge(ToTiles([]spatial.Point{shared}, branch, 20, 1))

	tile, ok := ts.Get(spatial.SectorField{Sector: spatial.Point{X: 1, Y: 1}, Field: shared})
	require.True(t, ok)
	assert.Equal(t, "Spine", tile.LaneName)
	assert.True(t, tile.Convergence)
}

func TestTileSetMergeIsIdempotentPerLane(t *testing.T) {
	ts := NewTileSet()
	tiles := ToTiles([]spatial.Point{{X: 1, Y: 1}, {X: 1, Y: 2}}, spine, 20, 1)
	ts.Merge(tiles)
	ts.Merge(tiles)

	assert.Equal(t, 2, ts.Len())
	for _, tile := range ts.Tiles() {
		assert.False(t, tile.Convergence)
	}
}
