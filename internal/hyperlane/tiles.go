package hyperlane

import (
	"planets-galaxy/internal/spatial"
)

// Tile is one field of the galaxy grid claimed by a lane
type Tile struct {
	Sector      spatial.Point `json:"sector"`
	Field       spatial.Point `json:"field"`
	LaneName    string        `json:"lane_name"`
	LaneColor   string        `json:"lane_color"`
	LaneType    LaneType      `json:"lane_type"`
	Priority    int           `json:"priority"`
	Convergence bool          `json:"convergence"`
}

func (t Tile) Key() spatial.SectorField {
	return spatial.SectorField{Sector: t.Sector, Field: t.Field}
}

// ToTiles converts a galaxy-space path into lane tiles, dropping coordinates
// that fall outside the galaxy.
func ToTiles(points []spatial.Point, lane Lane, fieldsPerSector, sectorsPerSide int) []Tile {
	tiles := make([]Tile, 0, len(points))
	for _, p := range points {
		sf, ok := spatial.FromGalaxy(p, fieldsPerSector, sectorsPerSide)
		if !ok {
			continue
		}
		tiles = append(tiles, Tile{
			Sector:    sf.Sector,
			Field:     sf.Field,
			LaneName:  lane.Name,
			LaneColor: lane.Color,
			LaneType:  lane.Type,
			Priority:  lane.Priority,
		})
	}
	return tiles
}

// TileSet merges tiles of many lanes keyed by (sector, field). Where lanes
// overlap the higher priority lane owns the tile and it is marked as a
// convergence tile; on equal priority the first lane keeps it.
type TileSet struct {
	tiles map[spatial.SectorField]Tile
	order []spatial.SectorField
}

func NewTileSet() *TileSet {
	return &TileSet{tiles: make(map[spatial.SectorField]Tile)}
}

func (ts *TileSet) Merge(tiles []Tile) {
	for _, t := range tiles {
		key := t.Key()
		existing, ok := ts.tiles[key]
		if !ok {
			ts.tiles[key] = t
			ts.order = append(ts.order, key)
			continue
		}
		if existing.LaneName == t.LaneName {
			continue
		}
		if t.Priority > existing.Priority {
			existing = t
		}
		existing.Convergence = true
		ts.tiles[key] = existing
	}
}

func (ts *TileSet) Len() int {
	return len(ts.order)
}

// Tiles lists the merged tiles in first-claimed order
func (ts *TileSet) Tiles() []Tile {
	out := make([]Tile, 0, len(ts.order))
	for _, key := range ts.order {
		out = append(out, ts.tiles[key])
	}
	return out
}

func (ts *TileSet) Get(sf spatial.SectorField) (Tile, bool) {
	t, ok := ts.tiles[sf]
	return t, ok
}
