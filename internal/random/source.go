// Package random provides a seeded Park–Miller generator whose stream is
// fully determined by a seed string.
package random

import (
	"math"
	"unicode/utf16"

	"planets-galaxy/internal/shared/errors"
)

const (
	multiplier = 16807
	modulus    = 2147483647 // 2^31 - 1
	quotient   = modulus / multiplier
	remainder  = modulus % multiplier
)

type Source struct {
	seed    string
	initial int64
	state   int64
}

func New(seed string) *Source {
	initial := HashSeed(seed)
	return &Source{
		seed:    seed,
		initial: initial,
		state:   initial,
	}
}

// HashSeed folds the UTF-16 code units of seed into a state in [1, modulus-1].
// Zero is the generator's absorbing state and is never returned.
func HashSeed(seed string) int64 {
	var hash int32
	for _, unit := range utf16.Encode([]rune(seed)) {
		hash = hash*31 + int32(unit)
	}

	h := int64(hash)
	if h < 0 {
		h = -h
	}
	h %= modulus - 1
	if h < 1 {
		h = 1
	}
	return h
}

func (s *Source) Seed() string {
	return s.seed
}

// Next returns a value in [0, 1)
func (s *Source) Next() float64 {
	hi := s.state / quotient
	lo := s.state % quotient
	s.state = multiplier*lo - remainder*hi
	if s.state < 0 {
		s.state += modulus
	}
	return float64(s.state-1) / float64(modulus-1)
}

// NextInt returns an integer in [min, max]
func (s *Source) NextInt(min, max int) (int, error) {
	if min > max {
		return 0, errors.Validationf("random: min %d greater than max %d", min, max)
	}
	if min == max {
		return min, nil
	}
	span := float64(max - min + 1)
	return min + int(math.Floor(s.Next()*span)), nil
}

// NextFloat returns a float in [min, max)
func (s *Source) NextFloat(min, max float64) (float64, error) {
	if min > max {
		return 0, errors.Validationf("random: min %g greater than max %g", min, max)
	}
	return min + s.Next()*(max-min), nil
}

// NextBoolean is true with probability p
func (s *Source) NextBoolean(p float64) bool {
	return s.Next() < p
}

func (s *Source) Reset() {
	s.state = s.initial
}

// Clone copies the current position; advancing the copy leaves s untouched
func (s *Source) Clone() *Source {
	clone := *s
	return &clone
}

// PointInCircle samples uniformly over the disk of radius r around (cx, cy)
func (s *Source) PointInCircle(cx, cy, r float64) (float64, float64) {
	angle := s.Next() * 2 * math.Pi
	dist := r * math.Sqrt(s.Next())
	return cx + dist*math.Cos(angle), cy + dist*math.Sin(angle)
}

// PointOnCircle samples uniformly over the circumference of radius r around (cx, cy)
func (s *Source) PointOnCircle(cx, cy, r float64) (float64, float64) {
	angle := s.Next() * 2 * math.Pi
	return cx + r*math.Cos(angle), cy + r*math.Sin(angle)
}
