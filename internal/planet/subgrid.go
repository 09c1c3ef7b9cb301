package planet

import (
	"planets-galaxy/internal/random"
)

type terrainTable []random.Weighted[string]

var orbitTerrain = terrainTable{
	{Item: "void", Weight: 70},
	{Item: "debris", Weight: 15},
	{Item: "station_slot", Weight: 10},
	{Item: "satellite", Weight: 5},
}

var undergroundTerrain = terrainTable{
	{Item: "bedrock", Weight: 55},
	{Item: "ore", Weight: 20},
	{Item: "cavern", Weight: 15},
	{Item: "crystal", Weight: 5},
	{Item: "aquifer", Weight: 5},
}

var gasGiantInterior = terrainTable{
	{Item: "dense_gas", Weight: 80},
	{Item: "metallic_hydrogen", Weight: 20},
}

func surfaceTerrain(t PlanetType) terrainTable {
	switch t {
	case PlanetTypeTerrestrial:
		return terrainTable{
			{Item: "plains", Weight: 35},
			{Item: "forest", Weight: 25},
			{Item: "ocean", Weight: 25},
			{Item: "mountains", Weight: 10},
			{Item: "desert", Weight: 5},
		}
	case PlanetTypeGasGiant:
		return terrainTable{
			{Item: "cloud", Weight: 50},
			{Item: "storm", Weight: 40},
			{Item: "vortex", Weight: 10},
		}
	case PlanetTypeIce:
		return terrainTable{
			{Item: "glacier", Weight: 50},
			{Item: "tundra", Weight: 30},
			{Item: "rock", Weight: 15},
			{Item: "cryovolcano", Weight: 5},
		}
	case PlanetTypeVolcanic:
		return terrainTable{
			{Item: "basalt", Weight: 40},
			{Item: "lava", Weight: 35},
			{Item: "ash", Weight: 20},
			{Item: "vent", Weight: 5},
		}
	default:
		return terrainTable{
			{Item: "rock", Weight: 50},
			{Item: "crater", Weight: 30},
			{Item: "dust", Weight: 20},
		}
	}
}

func undergroundFor(t PlanetType) terrainTable {
	if t == PlanetTypeGasGiant {
		return gasGiantInterior
	}
	return undergroundTerrain
}

// buildSubGrid fills a size×size grid top to bottom: orbit rows (when
// withOrbit), surface rows, then underground rows.
func buildSubGrid(rng *random.Source, t PlanetType, size int, withOrbit bool) ([]Cell, error) {
	orbitRows := 0
	if withOrbit {
		orbitRows = max(1, size/6)
	}
	undergroundRows := max(1, size/4)

	surface := surfaceTerrain(t)
	underground := undergroundFor(t)

	cells := make([]Cell, 0, size*size)
	for y := 1; y <= size; y++ {
		layer, table := LayerSurface, surface
		switch {
		case y <= orbitRows:
			layer, table = LayerOrbit, orbitTerrain
		case y > size-undergroundRows:
			layer, table = LayerUnderground, underground
		}

		for x := 1; x <= size; x++ {
			terrain, err := random.WeightedChoice(rng, table)
			if err != nil {
				return nil, err
			}
			cells = append(cells, Cell{X: x, Y: y, Layer: layer, Terrain: terrain})
		}
	}
	return cells, nil
}
