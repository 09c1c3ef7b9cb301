package random

import (
	"math"

	"planets-galaxy/internal/shared/errors"
)

type Weighted[T any] struct {
	Item   T
	Weight float64
}

func Choice[T any](s *Source, items []T) (T, error) {
	var zero T
	if len(items) == 0 {
		return zero, errors.Validation("random: choice from empty list")
	}
	index := int(math.Floor(s.Next() * float64(len(items))))
	return items[index], nil
}

// Shuffle permutes items in place with Fisher–Yates
func Shuffle[T any](s *Source, items []T) {
	for i := len(items) - 1; i > 0; i-- {
		j := int(math.Floor(s.Next() * float64(i+1)))
		items[i], items[j] = items[j], items[i]
	}
}

// WeightedChoice draws one item with probability proportional to its weight.
// Items with non-positive weight are never selected.
func WeightedChoice[T any](s *Source, items []Weighted[T]) (T, error) {
	var zero T

	total := 0.0
	for _, item := range items {
		if item.Weight > 0 {
			total += item.Weight
		}
	}
	if total <= 0 {
		return zero, errors.Validation("random: weighted choice needs a positive total weight")
	}

	roll := s.Next() * total
	last := -1
	for i, item := range items {
		if item.Weight <= 0 {
			continue
		}
		last = i
		roll -= item.Weight
		if roll < 0 {
			return item.Item, nil
		}
	}

	// float drift can leave roll at exactly zero
	return items[last].Item, nil
}
