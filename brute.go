package dbscan

// BruteForce is a SpatialIndex that scans every point on each query.
// It is the reference the tree indexes are tested against and the cheapest
// choice for small inputs.
type BruteForce[F Float] struct {
	m Matrix[F]
}

// NewBruteForce wraps m without copying it.
func NewBruteForce[F Float](m Matrix[F]) *BruteForce[F] {
	return &BruteForce[F]{m: m}
}

func (b *BruteForce[F]) Len() int  { return b.m.Rows() }
func (b *BruteForce[F]) Dims() int { return b.m.Cols() }

// Within returns the indices of all points within radiusSq (squared) of point.
func (b *BruteForce[F]) Within(point []F, radiusSq F) []int {
	checkQueryDims(len(point), b.m.Cols())
	var out []int
	for i := 0; i < b.m.Rows(); i++ {
		if SquaredEuclidean(point, b.m.Row(i)) <= radiusSq {
			out = append(out, i)
		}
	}
	return out
}
