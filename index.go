package dbscan

import "fmt"

// IndexKind selects the spatial index used for region queries.
type IndexKind string

const (
	IndexAuto     IndexKind = "auto"
	IndexKDTree   IndexKind = "kdtree"
	IndexBallTree IndexKind = "balltree"
	IndexBrute    IndexKind = "brute"
	IndexGonum    IndexKind = "gonum"
)

// kdTreeMaxDims is the dimensionality above which IndexAuto prefers the
// ball tree, since axis-aligned boxes stop pruning well in high dimensions.
const kdTreeMaxDims = 16

// NodeData describes a single node in a spatial tree.
type NodeData struct {
	IdxStart, IdxEnd int
	IsLeaf           bool
	Radius           float64 // ball tree radius; 0 for KD-tree
}

// SpatialIndex answers radius-range queries over an immutable point set.
// Implementations are read-only once built and safe for concurrent queries.
type SpatialIndex[F Float] interface {
	// Within returns the indices of all indexed points whose squared
	// Euclidean distance to point is <= radiusSq, in no particular order.
	// A query for an indexed point returns that point's own index.
	// Within panics if len(point) != Dims().
	Within(point []F, radiusSq F) []int

	// Len returns the number of indexed points.
	Len() int

	// Dims returns the dimensionality of the indexed points.
	Dims() int
}

func validIndexKind(kind IndexKind) bool {
	switch kind {
	case IndexAuto, IndexKDTree, IndexBallTree, IndexBrute, IndexGonum:
		return true
	default:
		return false
	}
}

// selectIndex resolves IndexAuto into a concrete index based on the size
// and dimensionality of the data. Explicit choices are returned unchanged.
func selectIndex(kind IndexKind, n, dims, leafSize int) IndexKind {
	if kind != IndexAuto {
		return kind
	}
	switch {
	case n <= leafSize || dims == 0:
		return IndexBrute
	case dims <= kdTreeMaxDims:
		return IndexKDTree
	default:
		return IndexBallTree
	}
}

// NewIndex builds a spatial index of the given kind over m. IndexAuto is
// resolved with selectIndex.
func NewIndex[F Float](kind IndexKind, m Matrix[F], leafSize int) (SpatialIndex[F], error) {
	if !validIndexKind(kind) {
		return nil, fmt.Errorf("dbscan: invalid Index %q", kind)
	}
	if leafSize < 1 {
		return nil, fmt.Errorf("dbscan: LeafSize must be >= 1, got %d", leafSize)
	}

	switch selectIndex(kind, m.Rows(), m.Cols(), leafSize) {
	case IndexKDTree:
		return NewKDTree(m, leafSize), nil
	case IndexBallTree:
		return NewBallTree(m, leafSize), nil
	case IndexGonum:
		return NewGonumKDTree(m), nil
	default:
		return NewBruteForce(m), nil
	}
}

// checkQueryDims panics when a query point does not match the index width.
func checkQueryDims(got, want int) {
	if got != want {
		panic(fmt.Sprintf("dbscan: query point has %d dimensions, index has %d", got, want))
	}
}
