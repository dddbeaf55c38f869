package dbscan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allIndexKinds = []IndexKind{IndexAuto, IndexKDTree, IndexBallTree, IndexBrute, IndexGonum}

func TestSelectIndex(t *testing.T) {
	tests := []struct {
		name     string
		kind     IndexKind
		n, dims  int
		leafSize int
		want     IndexKind
	}{
		{"tiny input", IndexAuto, 10, 2, 40, IndexBrute},
		{"exactly leaf size", IndexAuto, 40, 2, 40, IndexBrute},
		{"low dims", IndexAuto, 1000, 3, 40, IndexKDTree},
		{"kd limit", IndexAuto, 1000, 16, 40, IndexKDTree},
		{"high dims", IndexAuto, 1000, 17, 40, IndexBallTree},
		{"zero dims", IndexAuto, 1000, 0, 40, IndexBrute},
		{"explicit kd", IndexKDTree, 5, 50, 40, IndexKDTree},
		{"explicit gonum", IndexGonum, 5, 2, 40, IndexGonum},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := selectIndex(tt.kind, tt.n, tt.dims, tt.leafSize)
			if got != tt.want {
				t.Errorf("selectIndex(%q, %d, %d, %d) = %q, want %q",
					tt.kind, tt.n, tt.dims, tt.leafSize, got, tt.want)
			}
		})
	}
}

func TestNewIndex_Errors(t *testing.T) {
	m := generateFlatMatrix(10, 2)

	_, err := NewIndex(IndexKind("octree"), m, 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "octree")

	_, err = NewIndex(IndexKDTree, m, 0)
	require.Error(t, err)
}

func TestNewIndex_ConcreteTypes(t *testing.T) {
	m := generateFlatMatrix(100, 2)
	tests := []struct {
		kind IndexKind
		want any
	}{
		{IndexKDTree, &KDTree[float64]{}},
		{IndexBallTree, &BallTree[float64]{}},
		{IndexBrute, &BruteForce[float64]{}},
		{IndexGonum, &GonumKDTree[float64]{}},
		{IndexAuto, &KDTree[float64]{}},
	}
	for _, tt := range tests {
		idx, err := NewIndex(tt.kind, m, 10)
		require.NoError(t, err)
		assert.IsType(t, tt.want, idx, "kind %q", tt.kind)
		assert.Equal(t, 100, idx.Len())
		assert.Equal(t, 2, idx.Dims())
	}
}

// TestIndexes_Interchangeable checks that every index answers every query
// with the same set of points.
func TestIndexes_Interchangeable(t *testing.T) {
	for _, dims := range []int{1, 2, 5, 18} {
		rows := generateBlobs(int64(dims), 3, 60, 30, dims, 1.5)
		m := mustMatrix(t, rows)

		for _, kind := range allIndexKinds {
			idx, err := NewIndex(kind, m, 6)
			require.NoError(t, err)

			for _, eps := range []float64{0, 0.75, 2.5, 9} {
				for q := 0; q < m.Rows(); q += 3 {
					got := sortedCopy(idx.Within(m.Row(q), eps*eps))
					want := bruteForceWithin(m, m.Row(q), eps*eps)
					if !equalInts(got, want) {
						t.Fatalf("dims=%d kind=%s eps=%v query=%d:\n got  %v\n want %v",
							dims, kind, eps, q, got, want)
					}
				}
			}
		}
	}
}

func TestIndexes_Float32Interchangeable(t *testing.T) {
	rows64 := generateBlobs(7, 4, 50, 20, 3, 2)
	rows := make([][]float32, len(rows64))
	for i, r := range rows64 {
		rows[i] = make([]float32, len(r))
		for j, v := range r {
			rows[i][j] = float32(v)
		}
	}
	m := mustMatrix(t, rows)

	for _, kind := range allIndexKinds {
		idx, err := NewIndex(kind, m, 4)
		require.NoError(t, err)
		for q := 0; q < m.Rows(); q++ {
			for _, eps := range []float32{0.5, 3} {
				got := sortedCopy(idx.Within(m.Row(q), eps*eps))
				want := bruteForceWithin(m, m.Row(q), eps*eps)
				if !equalInts(got, want) {
					t.Fatalf("kind=%s eps=%v query=%d: got %v want %v", kind, eps, q, got, want)
				}
			}
		}
	}
}

func TestIndexes_ZeroDims(t *testing.T) {
	m, err := MatrixFromFlat([]float64{}, 5, 0)
	require.NoError(t, err)

	for _, kind := range allIndexKinds {
		idx, err := NewIndex(kind, m, 2)
		require.NoError(t, err)
		got := sortedCopy(idx.Within([]float64{}, 0))
		assert.Equal(t, []int{0, 1, 2, 3, 4}, got, "kind %q", kind)
	}
}

func TestIndexes_Empty(t *testing.T) {
	var m Matrix[float64]
	for _, kind := range allIndexKinds {
		idx, err := NewIndex(kind, m, 2)
		require.NoError(t, err)
		assert.Empty(t, idx.Within([]float64{}, 1), "kind %q", kind)
	}
}

func TestIndexes_DimensionMismatchPanics(t *testing.T) {
	m := generateFlatMatrix(50, 3)
	for _, kind := range allIndexKinds {
		idx, err := NewIndex(kind, m, 4)
		require.NoError(t, err)
		assert.Panics(t, func() { idx.Within([]float64{1, 2}, 1) }, "kind %q", kind)
	}
}

func TestGonumKDTree_DuplicatePoints(t *testing.T) {
	rows := [][]float64{{1, 1}, {1, 1}, {1, 1}, {2, 2}, {1, 1}}
	g := NewGonumKDTree(mustMatrix(t, rows))

	got := sortedCopy(g.Within([]float64{1, 1}, 0))
	assert.Equal(t, []int{0, 1, 2, 4}, got)

	got = sortedCopy(g.Within([]float64{1, 1}, 2))
	assert.Equal(t, []int{0, 1, 2, 3, 4}, got)
}
