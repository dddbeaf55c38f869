package dbscan

import "math"

// Float is the set of scalar types the clustering algorithms operate on.
type Float interface {
	~float32 | ~float64
}

// SquaredEuclidean returns the squared Euclidean distance between a and b.
// The sum is accumulated in F, so every spatial index computes bit-identical
// distances for the same pair of points. a and b must have the same length.
func SquaredEuclidean[F Float](a, b []F) F {
	var sum F
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}

// Euclidean returns the Euclidean (L2) distance between a and b.
func Euclidean[F Float](a, b []F) F {
	return F(math.Sqrt(float64(SquaredEuclidean(a, b))))
}

// isFinite reports whether v is neither NaN nor an infinity.
func isFinite[F Float](v F) bool {
	f := float64(v)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// squaredEuclidean64 is SquaredEuclidean accumulated in float64. Tree
// pruning uses it so its bounds do not inherit float32 rounding.
func squaredEuclidean64[F Float](a, b []F) float64 {
	var sum float64
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return sum
}

// roundingSlack returns a relative tolerance that covers the rounding
// error of SquaredEuclidean over dims coordinates of type F.
func roundingSlack[F Float](dims int) float64 {
	unit := 0x1p-52
	if third := 1.0 / 3.0; float64(F(third)) != third {
		unit = 0x1p-23
	}
	return 4 * unit * float64(dims+1)
}
