package dbscan

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

// unorderedIndex wraps an index and returns its answers reversed with every
// entry duplicated, to exercise regionQuery's normalisation.
type unorderedIndex struct {
	SpatialIndex[float64]
}

func (u unorderedIndex) Within(point []float64, radiusSq float64) []int {
	got := u.SpatialIndex.Within(point, radiusSq)
	out := make([]int, 0, 2*len(got))
	for i := len(got) - 1; i >= 0; i-- {
		out = append(out, got[i], got[i])
	}
	return out
}

func TestRegionQuery_SortedAndDeduplicated(t *testing.T) {
	m := mustMatrix(t, exampleRows)
	idx := unorderedIndex{NewBruteForce(m)}

	got := regionQuery[float64](idx, m.Row(0), 0.5)
	assert.Equal(t, []int{0, 1, 2, 3}, got)
}

func TestRegionQuery_EpsIsInclusive(t *testing.T) {
	m := mustMatrix(t, [][]float64{{0}, {0.5}, {1}})
	got := regionQuery[float64](NewBruteForce(m), m.Row(0), 0.5)
	assert.Equal(t, []int{0, 1}, got)
}

func TestRegionQuery_ZeroEps(t *testing.T) {
	m := mustMatrix(t, [][]float64{{1, 1}, {1, 1}, {1, 1.0000001}})
	got := regionQuery[float64](NewKDTree(m, 1), m.Row(1), 0)
	assert.Equal(t, []int{0, 1}, got)
}

func TestFrontier_PopsLargestFirst(t *testing.T) {
	var f frontier
	f.reset([]int{1, 4, 7})

	var order []int
	for {
		q, ok := f.pop()
		if !ok {
			break
		}
		order = append(order, q)
	}
	assert.Equal(t, []int{7, 4, 1}, order)
	assert.Equal(t, 0, f.len())
}

func TestFrontier_MergeKeepsSortedUnique(t *testing.T) {
	var f frontier
	f.reset([]int{2, 5, 9})
	f.merge([]int{1, 5, 6, 9, 12})

	assert.Equal(t, []int{1, 2, 5, 6, 9, 12}, f.items)
	assert.True(t, slices.IsSorted(f.items))
}

func TestFrontier_ResetCopiesSeed(t *testing.T) {
	seed := []int{0, 1, 2}
	var f frontier
	f.reset(seed)
	f.merge([]int{3})
	f.pop()
	f.pop()
	assert.Equal(t, []int{0, 1, 2}, seed, "frontier must not write through to the seed slice")
}
