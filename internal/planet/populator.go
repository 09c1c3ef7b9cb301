package planet

import (
	"fmt"
	"log/slog"
	"math"

	"planets-galaxy/internal/random"
	"planets-galaxy/internal/shared/errors"
	"planets-galaxy/internal/spatial"
	"planets-galaxy/internal/star"

	"github.com/google/uuid"
)

const (
	minPlanets           = 3
	placementAttempts    = 50
	moonAttempts         = 20
	moonChance           = 0.30
	maxMoons             = 3
	moonReach            = 2 // 5×5 neighbourhood around the parent
	asteroidChance       = 0.60
	orbitalSeparation    = 3.0
	fallbackSeparation   = 2.0
	asteroidSeparation   = 3.0
	orbitFractionOfGrid  = 0.4
	minimumOrbitalSpread = 3.0
	orbitalBands         = 3
)

var planetTypeWeights = []random.Weighted[PlanetType]{
	{Item: PlanetTypeBarren, Weight: 15},
	{Item: PlanetTypeTerrestrial, Weight: 40},
	{Item: PlanetTypeGasGiant, Weight: 20},
	{Item: PlanetTypeIce, Weight: 15},
	{Item: PlanetTypeVolcanic, Weight: 10},
}

var moonTypeWeights = []random.Weighted[PlanetType]{
	{Item: PlanetTypeBarren, Weight: 60},
	{Item: PlanetTypeIce, Weight: 30},
	{Item: PlanetTypeVolcanic, Weight: 10},
}

type Request struct {
	SystemID   uuid.UUID
	SystemName string
	Seed       string
	Type       star.Type
	GridSize   int
	// Primary and Secondary are set together for binary systems
	Primary   *star.Type
	Secondary *star.Type
}

type Result struct {
	Bodies      []Body
	Stars       []star.Star
	Occupancy   *Occupancy
	Diagnostics []spatial.Diagnostic
}

func (r *Result) Count(kind Kind) int {
	n := 0
	for _, b := range r.Bodies {
		if b.Kind == kind {
			n++
		}
	}
	return n
}

type Populator struct {
	logger *slog.Logger
}

func NewPopulator(logger *slog.Logger) *Populator {
	return &Populator{logger: logger.With("component", "planet_populator")}
}

// pass carries the working state of a single Populate call
type pass struct {
	req    Request
	rng    *random.Source
	occ    *Occupancy
	result *Result
	logger *slog.Logger
}

// Populate places planets, moons and asteroid fields around a system's stars.
// Items that cannot be placed within their attempt budget are skipped and
// reported in Result.Diagnostics; only invalid requests return an error.
func (p *Populator) Populate(req Request) (*Result, error) {
	if req.GridSize < 1 {
		return nil, errors.Validationf("invalid grid size %d for system %s", req.GridSize, req.SystemName)
	}
	if req.Primary != nil && req.Secondary != nil && req.GridSize < star.MinBinaryGridSize {
		return nil, errors.Validationf("grid size %d too small for binary system %s, need at least %d",
			req.GridSize, req.SystemName, star.MinBinaryGridSize)
	}

	logger := p.logger.With("operation", "populate", "system", req.SystemName, "type", req.Type)

	ps := &pass{
		req:    req,
		rng:    random.New(random.Derive(req.Seed, "system/"+req.SystemName)),
		occ:    NewOccupancy(req.GridSize),
		result: &Result{},
		logger: logger,
	}
	ps.result.Occupancy = ps.occ
	ps.result.Stars = systemStars(req)

	for _, s := range ps.result.Stars {
		ps.occ.ClaimDisk(s.Center, float64(s.Zone.TotalRadius))
	}

	profile := star.LookupOrDefault(req.Type)
	if profile.Special {
		logger.Debug("Special system left empty")
		return ps.result, nil
	}

	target, err := ps.rng.NextInt(profile.Planets.Min, profile.Planets.Max)
	if err != nil {
		return nil, err
	}

	planets, err := ps.placeOrbitalPlanets(target)
	if err != nil {
		return nil, err
	}
	if planets, err = ps.fillMinimumPlanets(planets); err != nil {
		return nil, err
	}
	if err := ps.placeMoons(planets); err != nil {
		return nil, err
	}
	if err := ps.placeAsteroids(profile.Asteroids); err != nil {
		return nil, err
	}

	logger.Debug("System populated",
		"planets", ps.result.Count(KindPlanet),
		"moons", ps.result.Count(KindMoon),
		"asteroid_fields", ps.result.Count(KindAsteroidField),
		"skipped", len(ps.result.Diagnostics),
	)
	return ps.result, nil
}

func systemStars(req Request) []star.Star {
	if req.Primary != nil && req.Secondary != nil {
		layout := star.BinaryLayout(req.GridSize, *req.Primary, *req.Secondary)
		return []star.Star{layout.Primary, layout.Secondary}
	}
	return star.Stars(req.Type, req.GridSize)
}

// orbitalSpan returns the radii between which planets orbit the grid center:
// from just past the outermost star zone to 40% of the grid.
func orbitalSpan(stars []star.Star, gridSize int) (float64, float64) {
	center := star.Center(gridSize)
	inner := 0.0
	for _, s := range stars {
		inner = math.Max(inner, spatial.Distance(center, s.Center)+float64(s.Zone.TotalRadius))
	}
	inner++
	outer := math.Max(float64(gridSize)*orbitFractionOfGrid, inner+minimumOrbitalSpread)
	return inner, outer
}

func (ps *pass) placeOrbitalPlanets(target int) ([]Body, error) {
	center := star.Center(ps.req.GridSize)
	inner, outer := orbitalSpan(ps.result.Stars, ps.req.GridSize)
	bandWidth := (outer - inner) / orbitalBands

	var planets []Body
	for i := 0; i < target; i++ {
		band := i * orbitalBands / target
		lo := inner + bandWidth*float64(band)
		hi := lo + bandWidth

		placed := false
		for attempt := 0; attempt < placementAttempts; attempt++ {
			radius, err := ps.rng.NextFloat(lo, hi)
			if err != nil {
				return nil, err
			}
			degrees, err := ps.rng.NextFloat(0, 360)
			if err != nil {
				return nil, err
			}
			pt := polarToGrid(center, radius, degrees)
			if !pt.InBounds(ps.req.GridSize) || !ps.occ.Clear(pt, orbitalSeparation, false) {
				continue
			}

			body, err := ps.newPlanet(pt, len(planets))
			if err != nil {
				return nil, err
			}
			planets = append(planets, body)
			placed = true
			break
		}

		if !placed {
			ps.skip(fmt.Sprintf("planet in band %d", band+1), placementAttempts)
		}
	}
	return planets, nil
}

// fillMinimumPlanets tops a sparse system up to minPlanets with uniform
// sampling and a looser separation; a deficit that survives is only reported.
func (ps *pass) fillMinimumPlanets(planets []Body) ([]Body, error) {
	for len(planets) < minPlanets {
		placed := false
		for attempt := 0; attempt < placementAttempts; attempt++ {
			pt, err := ps.uniformPoint()
			if err != nil {
				return nil, err
			}
			if !ps.occ.Clear(pt, fallbackSeparation, false) {
				continue
			}

			body, err := ps.newPlanet(pt, len(planets))
			if err != nil {
				return nil, err
			}
			planets = append(planets, body)
			placed = true
			break
		}

		if !placed {
			ps.skip(fmt.Sprintf("fallback planet %d", len(planets)+1), placementAttempts)
			break
		}
	}
	return planets, nil
}

func (ps *pass) placeMoons(planets []Body) error {
	for _, parent := range planets {
		if !ps.rng.NextBoolean(moonChance) {
			continue
		}
		count, err := ps.rng.NextInt(1, maxMoons)
		if err != nil {
			return err
		}

		parentPoint := spatial.Point{X: parent.GridX, Y: parent.GridY}
		for m := 0; m < count; m++ {
			placed := false
			for attempt := 0; attempt < moonAttempts; attempt++ {
				dx, err := ps.rng.NextInt(-moonReach, moonReach)
				if err != nil {
					return err
				}
				dy, err := ps.rng.NextInt(-moonReach, moonReach)
				if err != nil {
					return err
				}
				if dx == 0 && dy == 0 {
					continue
				}

				pt := parentPoint.Add(dx, dy)
				if !ps.occ.ClaimBody(pt) {
					continue
				}
				if err := ps.addMoon(parent, pt, m); err != nil {
					return err
				}
				placed = true
				break
			}

			if !placed {
				ps.skip(fmt.Sprintf("moon %d of %s", m+1, parent.Name), moonAttempts)
			}
		}
	}
	return nil
}

func (ps *pass) placeAsteroids(r star.Range) error {
	if r.Max == 0 || !ps.rng.NextBoolean(asteroidChance) {
		return nil
	}
	count, err := ps.rng.NextInt(r.Min, r.Max)
	if err != nil {
		return err
	}

	for i := 0; i < count; i++ {
		placed := false
		for attempt := 0; attempt < placementAttempts; attempt++ {
			pt, err := ps.uniformPoint()
			if err != nil {
				return err
			}
			if !ps.occ.Clear(pt, asteroidSeparation, true) {
				continue
			}

			ps.occ.ClaimBody(pt)
			ps.result.Bodies = append(ps.result.Bodies, Body{
				ID:       ps.bodyID("asteroid_field", i),
				SystemID: ps.req.SystemID,
				Kind:     KindAsteroidField,
				Name:     fmt.Sprintf("%s Belt %c", ps.req.SystemName, 'A'+rune(i)),
				GridX:    pt.X,
				GridY:    pt.Y,
				Cells:    []Cell{},
			})
			placed = true
			break
		}

		if !placed {
			ps.skip(fmt.Sprintf("asteroid field %d", i+1), placementAttempts)
		}
	}
	return nil
}

func (ps *pass) newPlanet(pt spatial.Point, index int) (Body, error) {
	planetType, err := random.WeightedChoice(ps.rng, planetTypeWeights)
	if err != nil {
		return Body{}, err
	}
	size, err := ps.rng.NextInt(planetSizeRange(planetType))
	if err != nil {
		return Body{}, err
	}
	cells, err := buildSubGrid(ps.rng, planetType, size, true)
	if err != nil {
		return Body{}, err
	}

	ps.occ.ClaimBody(pt)
	body := Body{
		ID:         ps.bodyID("planet", index),
		SystemID:   ps.req.SystemID,
		Kind:       KindPlanet,
		Name:       fmt.Sprintf("%s %s", ps.req.SystemName, roman(index+1)),
		PlanetType: planetType,
		Size:       size,
		GridX:      pt.X,
		GridY:      pt.Y,
		Cells:      cells,
	}
	ps.result.Bodies = append(ps.result.Bodies, body)
	return body, nil
}

func (ps *pass) addMoon(parent Body, pt spatial.Point, index int) error {
	moonType, err := random.WeightedChoice(ps.rng, moonTypeWeights)
	if err != nil {
		return err
	}
	size, err := ps.rng.NextInt(6, 8)
	if err != nil {
		return err
	}
	cells, err := buildSubGrid(ps.rng, moonType, size, false)
	if err != nil {
		return err
	}

	parentID := parent.ID
	ps.result.Bodies = append(ps.result.Bodies, Body{
		ID:         uuid.NewSHA1(parent.ID, []byte(fmt.Sprintf("moon/%d", index))),
		SystemID:   ps.req.SystemID,
		ParentID:   &parentID,
		Kind:       KindMoon,
		Name:       fmt.Sprintf("%s %c", parent.Name, 'a'+rune(index)),
		PlanetType: moonType,
		Size:       size,
		GridX:      pt.X,
		GridY:      pt.Y,
		Cells:      cells,
	})
	return nil
}

func (ps *pass) uniformPoint() (spatial.Point, error) {
	x, err := ps.rng.NextInt(1, ps.req.GridSize)
	if err != nil {
		return spatial.Point{}, err
	}
	y, err := ps.rng.NextInt(1, ps.req.GridSize)
	if err != nil {
		return spatial.Point{}, err
	}
	return spatial.Point{X: x, Y: y}, nil
}

func (ps *pass) bodyID(kind string, index int) uuid.UUID {
	return uuid.NewSHA1(ps.req.SystemID, []byte(fmt.Sprintf("%s/%d", kind, index)))
}

func (ps *pass) skip(item string, attempts int) {
	d := spatial.Diagnostic{
		Scale:    spatial.ScaleSystem,
		Owner:    ps.req.SystemName,
		Item:     item,
		Attempts: attempts,
	}
	ps.result.Diagnostics = append(ps.result.Diagnostics, d)
	ps.logger.Warn("Placement attempts exhausted", "item", item, "attempts", attempts)
}

func planetSizeRange(t PlanetType) (int, int) {
	switch t {
	case PlanetTypeGasGiant:
		return 14, 18
	case PlanetTypeTerrestrial:
		return 10, 14
	default:
		return 8, 12
	}
}

// polarToGrid rounds half up, matching floor(v + 0.5) rather than Go's
// round-half-away-from-zero.
func polarToGrid(center spatial.Point, radius, degrees float64) spatial.Point {
	rad := degrees * math.Pi / 180
	return spatial.Point{
		X: center.X + int(math.Floor(radius*math.Cos(rad)+0.5)),
		Y: center.Y + int(math.Floor(radius*math.Sin(rad)+0.5)),
	}
}

var romanNumerals = []struct {
	value  int
	symbol string
}{
	{10, "X"}, {9, "IX"}, {5, "V"}, {4, "IV"}, {1, "I"},
}

func roman(n int) string {
	out := ""
	for _, r := range romanNumerals {
		for n >= r.value {
			out += r.symbol
			n -= r.value
		}
	}
	return out
}
