package random

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChoice(t *testing.T) {
	s := New("choice")
	items := []string{"normal", "nebula", "asteroid_dense"}

	for i := 0; i < 100; i++ {
		v, err := Choice(s, items)
		require.NoError(t, err)
		assert.Contains(t, items, v)
	}

	_, err := Choice(s, []int{})
	assert.Error(t, err)
}

func TestShuffleIsPermutation(t *testing.T) {
	s := New("shuffle")
	items := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	Shuffle(s, items)

	sorted := append([]int(nil), items...)
	sort.Ints(sorted)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, sorted)

	again := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	Shuffle(New("shuffle"), again)
	assert.Equal(t, items, again, "same seed, same permutation")
}

func TestWeightedChoiceFollowsWeights(t *testing.T) {
	s := New("weights")
	items := []Weighted[string]{
		{Item: "common", Weight: 70},
		{Item: "rare", Weight: 30},
		{Item: "never", Weight: 0},
	}

	counts := map[string]int{}
	for i := 0; i < 10000; i++ {
		v, err := WeightedChoice(s, items)
		require.NoError(t, err)
		counts[v]++
	}

	assert.Zero(t, counts["never"])
	assert.InDelta(t, 7000, counts["common"], 400)
	assert.InDelta(t, 3000, counts["rare"], 400)
}

func TestWeightedChoiceRejectsEmptyWeights(t *testing.T) {
	s := New("weights")

	_, err := WeightedChoice(s, []Weighted[int]{})
	assert.Error(t, err)

	_, err = WeightedChoice(s, []Weighted[int]{{Item: 1, Weight: 0}})
	assert.Error(t, err)
}
