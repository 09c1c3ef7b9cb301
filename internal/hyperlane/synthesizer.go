// Package hyperlane synthesizes orthogonal routes across the galaxy grid and
// turns them into persisted lane tiles.
package hyperlane

import (
	"math"
	"slices"
	"sort"

	"planets-galaxy/internal/noise"
	"planets-galaxy/internal/random"
	"planets-galaxy/internal/shared/errors"
	"planets-galaxy/internal/spatial"
)

const (
	unitsPerWaypoint = 20
	minWaypoints     = 2
	maxOffset        = 2
	detourThreshold  = 3
	minDetourSteps   = 2
	maxDetourSteps   = 4
	noiseScale       = 0.15
	noiseOctaves     = 3
	noisePersistence = 0.5
)

// Tuning holds the aesthetic constants of the segment walk
type Tuning struct {
	DetourProbability float64
	AxisBias          float64
}

func DefaultTuning() Tuning {
	return Tuning{DetourProbability: 0.15, AxisBias: 0.70}
}

type Synthesizer struct {
	bounds spatial.Point
	tuning Tuning
}

func NewSynthesizer(bounds spatial.Point, tuning Tuning) *Synthesizer {
	return &Synthesizer{bounds: bounds, tuning: tuning}
}

// route is the per-call state: the stream every decision is drawn from and the
// noise field that bends waypoints
type route struct {
	rng    *random.Source
	field  *noise.Field
	tuning Tuning
}

// Synthesize returns an orthogonal, gap-free, duplicate-free path from start
// to end that visits each mandatory point via an L-shaped approach. Mandatory
// points are visited in order of their progress along start→end.
func (s *Synthesizer) Synthesize(start, end spatial.Point, mandatory []spatial.Point, seed string) ([]spatial.Point, error) {
	for _, p := range append([]spatial.Point{start, end}, mandatory...) {
		if !s.inBounds(p) {
			return nil, errors.Validationf("route point %s outside galaxy bounds %s", p, s.bounds)
		}
	}

	r := &route{
		rng:    random.New(seed),
		field:  noise.New(seed + "/noise"),
		tuning: s.tuning,
	}

	targets := append([]spatial.Point{start}, orderByProgress(start, end, distinct(mandatory, start, end))...)
	targets = append(targets, end)

	// every leg's stops are drawn before any walking starts
	legs := make([][]spatial.Point, 0, len(targets)-1)
	for i := 0; i+1 < len(targets); i++ {
		from, to := targets[i], targets[i+1]
		stops := append([]spatial.Point{from}, r.waypoints(from, to)...)
		if i+1 < len(targets)-1 {
			stops = append(stops, r.corner(stops[len(stops)-1], to))
		}
		legs = append(legs, append(stops, to))
	}

	path := []spatial.Point{start}
	used := map[spatial.Point]bool{start: true}
	for i, stops := range legs {
		leg := []spatial.Point{stops[0]}
		for j := 0; j+1 < len(stops); j++ {
			segment, err := r.walk(stops[j], stops[j+1])
			if err != nil {
				return nil, err
			}
			leg = append(leg, segment[1:]...)
		}
		leg = eraseLoops(leg)

		// a leg may not touch earlier legs or a target still ahead of it
		target := targets[i+1]
		ahead := make(map[spatial.Point]bool)
		for _, p := range targets[i+2:] {
			if p != target {
				ahead[p] = true
			}
		}
		blocked := func(p spatial.Point) bool { return used[p] || ahead[p] }

		if crosses(leg[1:], blocked) {
			if detour, ok := s.avoid(leg[0], target, blocked); ok {
				leg = detour
			}
		}

		for _, p := range leg[1:] {
			used[p] = true
		}
		path = append(path, leg[1:]...)
	}

	// only a leg with no way around its obstacles can leave a loop behind
	return eraseLoops(path), nil
}

// distinct drops repeated points and points equal to start or end, which the
// route visits anyway
func distinct(points []spatial.Point, start, end spatial.Point) []spatial.Point {
	seen := map[spatial.Point]bool{start: true, end: true}
	out := make([]spatial.Point, 0, len(points))
	for _, p := range points {
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	return out
}

func crosses(points []spatial.Point, blocked func(spatial.Point) bool) bool {
	for _, p := range points {
		if blocked(p) {
			return true
		}
	}
	return false
}

// avoid finds a shortest orthogonal path from a to b through cells that are
// not blocked. a itself may be blocked.
func (s *Synthesizer) avoid(a, b spatial.Point, blocked func(spatial.Point) bool) ([]spatial.Point, bool) {
	if blocked(b) {
		return nil, false
	}

	steps := [4]spatial.Point{{X: 1}, {X: -1}, {Y: 1}, {Y: -1}}
	parent := map[spatial.Point]spatial.Point{a: a}
	queue := []spatial.Point{a}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur == b {
			path := []spatial.Point{b}
			for p := b; p != a; {
				p = parent[p]
				path = append(path, p)
			}
			slices.Reverse(path)
			return path, true
		}
		for _, d := range steps {
			next := cur.Add(d.X, d.Y)
			if _, seen := parent[next]; seen || !s.inBounds(next) || blocked(next) {
				continue
			}
			parent[next] = cur
			queue = append(queue, next)
		}
	}
	return nil, false
}

func (s *Synthesizer) inBounds(p spatial.Point) bool {
	return p.X >= 1 && p.Y >= 1 && p.X <= s.bounds.X && p.Y <= s.bounds.Y
}

func orderByProgress(start, end spatial.Point, points []spatial.Point) []spatial.Point {
	dx, dy := end.X-start.X, end.Y-start.Y
	ordered := append([]spatial.Point(nil), points...)
	sort.SliceStable(ordered, func(i, j int) bool {
		pi := (ordered[i].X-start.X)*dx + (ordered[i].Y-start.Y)*dy
		pj := (ordered[j].X-start.X)*dx + (ordered[j].Y-start.Y)*dy
		return pi < pj
	})
	return ordered
}

// waypoints interpolates intermediates between from and to, alternately
// front-loading progress on X and Y, then nudges one axis of each by a noise
// offset. Every waypoint stays inside the box spanned by its predecessor and
// to, so the walk between them never has to turn back.
func (r *route) waypoints(from, to spatial.Point) []spatial.Point {
	count := max(minWaypoints, spatial.Manhattan(from, to)/unitsPerWaypoint)
	dx, dy := float64(to.X-from.X), float64(to.Y-from.Y)

	prev := from
	points := make([]spatial.Point, 0, count)
	for i := 1; i <= count; i++ {
		t := float64(i) / float64(count+1)
		tx, ty := t, t
		if i%2 == 0 {
			tx = frontLoad(t)
		} else {
			ty = frontLoad(t)
		}

		wp := spatial.Point{
			X: from.X + roundHalfUp(dx*tx),
			Y: from.Y + roundHalfUp(dy*ty),
		}

		offset := roundHalfUp(maxOffset * r.field.OctaveNoise2D(
			float64(wp.X)*noiseScale, float64(wp.Y)*noiseScale, noiseOctaves, noisePersistence))
		if r.rng.NextBoolean(0.5) {
			wp.X += offset
		} else {
			wp.Y += offset
		}
		// the front-loaded axis alternates, so either axis may lag behind prev
		wp.X = between(wp.X, prev.X, to.X)
		wp.Y = between(wp.Y, prev.Y, to.Y)

		points = append(points, wp)
		prev = wp
	}
	return points
}

// corner is the bend of the L-shaped approach from p into target
func (r *route) corner(p, target spatial.Point) spatial.Point {
	if r.rng.NextBoolean(0.5) {
		return spatial.Point{X: target.X, Y: p.Y}
	}
	return spatial.Point{X: p.X, Y: target.Y}
}

// walk steps one unit at a time from a to b, both inclusive. Every step closes
// one unit of remaining distance, detours included.
func (r *route) walk(a, b spatial.Point) ([]spatial.Point, error) {
	path := []spatial.Point{a}
	cur := a

	step := func(alongX bool) {
		if alongX {
			cur.X += sign(b.X - cur.X)
		} else {
			cur.Y += sign(b.Y - cur.Y)
		}
		path = append(path, cur)
	}

	for cur != b {
		remX, remY := absInt(b.X-cur.X), absInt(b.Y-cur.Y)

		if remX > detourThreshold && remY > detourThreshold && r.rng.NextBoolean(r.tuning.DetourProbability) {
			first, err := r.rng.NextInt(minDetourSteps, maxDetourSteps)
			if err != nil {
				return nil, err
			}
			second, err := r.rng.NextInt(minDetourSteps, maxDetourSteps)
			if err != nil {
				return nil, err
			}
			xFirst := r.rng.NextBoolean(0.5)
			for i := 0; i < first; i++ {
				step(xFirst)
			}
			for i := 0; i < second; i++ {
				step(!xFirst)
			}
			continue
		}

		switch {
		case remY == 0:
			step(true)
		case remX == 0:
			step(false)
		default:
			larger := remX >= remY
			if r.rng.NextBoolean(r.tuning.AxisBias) {
				step(larger)
			} else {
				step(!larger)
			}
		}
	}
	return path, nil
}

// eraseLoops drops every cycle: when a coordinate reappears, the path is cut
// back to its first occurrence. The result keeps first-seen order, stays
// continuous and keeps both endpoints.
func eraseLoops(path []spatial.Point) []spatial.Point {
	index := make(map[spatial.Point]int, len(path))
	out := make([]spatial.Point, 0, len(path))

	for _, p := range path {
		if i, seen := index[p]; seen {
			for _, dropped := range out[i+1:] {
				delete(index, dropped)
			}
			out = out[:i+1]
			continue
		}
		index[p] = len(out)
		out = append(out, p)
	}
	return out
}

func frontLoad(t float64) float64 {
	return 1 - (1-t)*(1-t)
}

func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}

// between clamps v into the closed range spanned by a and b in either order
func between(v, a, b int) int {
	lo, hi := min(a, b), max(a, b)
	return max(lo, min(v, hi))
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
