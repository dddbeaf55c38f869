package dbscan

import "slices"

// regionQuery returns the indices of the indexed points within eps of
// point, sorted ascending with duplicates removed. Indexes may answer in
// any order; the expansion loop depends on this normalised order to be
// reproducible.
func regionQuery[F Float](index SpatialIndex[F], point []F, eps F) []int {
	nbrs := index.Within(point, eps*eps)
	slices.Sort(nbrs)
	return slices.Compact(nbrs)
}
