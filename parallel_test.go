package dbscan

import (
	"runtime"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sequentialNeighborhoods(index SpatialIndex[float64], m Matrix[float64], eps float64) [][]int {
	out := make([][]int, m.Rows())
	for i := range out {
		out[i] = regionQuery(index, m.Row(i), eps)
	}
	return out
}

func TestComputeNeighborhoodsParallel_Identical(t *testing.T) {
	m := mustMatrix(t, generateBlobs(42, 3, 40, 20, 2, 1))
	index := NewKDTree(m, 8)
	sequential := sequentialNeighborhoods(index, m, 1.2)

	for _, workers := range []int{1, 2, 4, 7} {
		parallel := ComputeNeighborhoodsParallel[float64](index, m, 1.2, workers)
		if len(parallel) != len(sequential) {
			t.Fatalf("workers=%d: length mismatch %d != %d", workers, len(parallel), len(sequential))
		}
		for i := range sequential {
			if !equalInts(parallel[i], sequential[i]) {
				t.Errorf("workers=%d: neighbourhood[%d] = %v, expected %v",
					workers, i, parallel[i], sequential[i])
			}
		}
	}
}

func TestComputeNeighborhoodsParallel_SinglePoint(t *testing.T) {
	m := mustMatrix(t, [][]float64{{1, 2}})
	got := ComputeNeighborhoodsParallel[float64](NewBruteForce(m), m, 0.5, 4)
	assert.Equal(t, [][]int{{0}}, got)
}

func TestComputeNeighborhoodsParallel_MoreWorkersThanRows(t *testing.T) {
	m := mustMatrix(t, [][]float64{{0}, {1}, {5}})
	got := ComputeNeighborhoodsParallel[float64](NewBruteForce(m), m, 1, 16)
	assert.Equal(t, [][]int{{0, 1}, {0, 1}, {2}}, got)
}

func TestForEachRowRange_CoversEveryRowOnce(t *testing.T) {
	for _, n := range []int{0, 1, 2, 10, 101} {
		for _, workers := range []int{0, 1, 3, 8, 200} {
			counts := make([]int32, n)
			forEachRowRange(n, workers, func(start, end int) {
				for i := start; i < end; i++ {
					atomic.AddInt32(&counts[i], 1)
				}
			})
			for i, c := range counts {
				if c != 1 {
					t.Errorf("n=%d workers=%d: row %d visited %d times", n, workers, i, c)
				}
			}
		}
	}
}

// TestFit_ParallelEqualsSequential checks that precomputed neighbourhoods
// yield exactly the labels of the lazy path.
func TestFit_ParallelEqualsSequential(t *testing.T) {
	rows := generateBlobs(3, 4, 80, 40, 3, 1.2)

	for _, borders := range []bool{false, true} {
		cfg := DefaultConfig[float64]()
		cfg.Eps = 1.5
		cfg.MinPoints = 6
		cfg.IncludeBorders = borders
		cfg.Workers = 1

		seq, err := FitRows(rows, cfg)
		require.NoError(t, err)

		for _, workers := range []int{2, 4, 9} {
			cfg.Workers = workers
			par, err := FitRows(rows, cfg)
			require.NoError(t, err)
			if !assert.Equal(t, seq.Labels, par.Labels, "borders=%v workers=%d", borders, workers) {
				return
			}
			assert.Equal(t, seq.NumClusters(), par.NumClusters())
		}
	}
}

func TestFit_DefaultWorkersUsesEveryCPU(t *testing.T) {
	rows := generateBlobs(5, 3, 60, 20, 2, 1.0)
	cfg := DefaultConfig[float64]()
	cfg.Eps = 1.2
	cfg.MinPoints = 4

	auto, err := FitRows(rows, cfg)
	require.NoError(t, err)
	assert.Equal(t, runtime.NumCPU(), auto.workers)

	cfg.Workers = 1
	seq, err := FitRows(rows, cfg)
	require.NoError(t, err)
	assert.Equal(t, seq.Labels, auto.Labels)
}

func TestPredict_ParallelEqualsSequential(t *testing.T) {
	train := mustMatrix(t, generateBlobs(5, 3, 60, 30, 2, 1))
	query := mustMatrix(t, generateBlobs(6, 3, 30, 30, 2, 1.5))

	cfg := DefaultConfig[float64]()
	cfg.Eps = 1
	cfg.MinPoints = 4
	cfg.IncludeBorders = true
	cfg.Workers = 1

	model, err := Fit(train, cfg)
	require.NoError(t, err)
	want, err := model.Predict(train, query)
	require.NoError(t, err)

	for _, workers := range []int{2, 5} {
		model.workers = workers
		got, err := model.Predict(train, query)
		require.NoError(t, err)
		assert.Equal(t, want, got, "workers=%d", workers)
	}
}
