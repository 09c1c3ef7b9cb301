// Package noise implements seeded 2D gradient noise and its layered variants.
package noise

import (
	"math"

	"planets-galaxy/internal/random"
)

var gradients = [8][2]float64{
	{1, 1}, {-1, 1}, {1, -1}, {-1, -1},
	{1, 0}, {-1, 0}, {0, 1}, {0, -1},
}

type Field struct {
	perm [512]int
}

// New builds the permutation table from its own generator seeded with seed
func New(seed string) *Field {
	rng := random.New(seed)

	base := make([]int, 256)
	for i := range base {
		base[i] = i
	}
	random.Shuffle(rng, base)

	f := &Field{}
	for i := 0; i < 512; i++ {
		f.perm[i] = base[i&255]
	}
	return f
}

func fade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

func lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

func (f *Field) grad(hash int, x, y float64) float64 {
	g := gradients[hash&7]
	return g[0]*x + g[1]*y
}

// Noise2D returns coherent noise in [-1, 1]
func (f *Field) Noise2D(x, y float64) float64 {
	fx, fy := math.Floor(x), math.Floor(y)
	xi, yi := int(fx)&255, int(fy)&255
	xf, yf := x-fx, y-fy

	u, v := fade(xf), fade(yf)

	aa := f.perm[f.perm[xi]+yi]
	ab := f.perm[f.perm[xi]+yi+1]
	ba := f.perm[f.perm[xi+1]+yi]
	bb := f.perm[f.perm[xi+1]+yi+1]

	x1 := lerp(f.grad(aa, xf, yf), f.grad(ba, xf-1, yf), u)
	x2 := lerp(f.grad(ab, xf, yf-1), f.grad(bb, xf-1, yf-1), u)

	return clamp(lerp(x1, x2, v), -1, 1)
}

// OctaveNoise2D layers octaves at doubling frequency
func (f *Field) OctaveNoise2D(x, y float64, octaves int, persistence float64) float64 {
	return f.FractalNoise2D(x, y, octaves, persistence, 2)
}

func (f *Field) FractalNoise2D(x, y float64, octaves int, persistence, lacunarity float64) float64 {
	total, amplitude, frequency, maxValue := 0.0, 1.0, 1.0, 0.0
	for i := 0; i < max(octaves, 1); i++ {
		total += f.Noise2D(x*frequency, y*frequency) * amplitude
		maxValue += amplitude
		amplitude *= persistence
		frequency *= lacunarity
	}
	if maxValue == 0 {
		return 0
	}
	return clamp(total/maxValue, -1, 1)
}

// Turbulence2D accumulates absolute noise, yielding values in [0, 1]
func (f *Field) Turbulence2D(x, y float64, octaves int, persistence float64) float64 {
	total, amplitude, frequency, maxValue := 0.0, 1.0, 1.0, 0.0
	for i := 0; i < max(octaves, 1); i++ {
		total += math.Abs(f.Noise2D(x*frequency, y*frequency)) * amplitude
		maxValue += amplitude
		amplitude *= persistence
		frequency *= 2
	}
	if maxValue == 0 {
		return 0
	}
	return clamp(total/maxValue, 0, 1)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
