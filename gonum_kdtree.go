package dbscan

import "gonum.org/v1/gonum/spatial/kdtree"

// GonumKDTree is a SpatialIndex backed by gonum's spatial/kdtree. Gonum
// works in float64, so candidates come from a slightly widened float64
// search and are then filtered with SquaredEuclidean in F. That keeps its
// answers identical to the other indexes for float32 data.
type GonumKDTree[F Float] struct {
	m    Matrix[F]
	tree *kdtree.Tree
}

// NewGonumKDTree builds a gonum k-d tree over the rows of m.
func NewGonumKDTree[F Float](m Matrix[F]) *GonumKDTree[F] {
	g := &GonumKDTree[F]{m: m}
	// gonum cycles split planes modulo the point dimension, which is
	// undefined for zero-width points.
	if m.Rows() == 0 || m.Cols() == 0 {
		return g
	}

	pts := make(gonumPoints, m.Rows())
	for i := range pts {
		pts[i] = gonumPoint{coords: widen(m.Row(i)), index: i}
	}
	g.tree = kdtree.New(pts, false)
	return g
}

func (g *GonumKDTree[F]) Len() int  { return g.m.Rows() }
func (g *GonumKDTree[F]) Dims() int { return g.m.Cols() }

// Within returns the indices of all points within radiusSq (squared) of point.
func (g *GonumKDTree[F]) Within(point []F, radiusSq F) []int {
	checkQueryDims(len(point), g.m.Cols())
	if g.tree == nil {
		var out []int
		for i := 0; i < g.m.Rows(); i++ {
			if SquaredEuclidean(point, g.m.Row(i)) <= radiusSq {
				out = append(out, i)
			}
		}
		return out
	}

	r := float64(radiusSq)
	keeper := kdtree.NewDistKeeper(r*(1+roundingSlack[F](g.m.Cols())) + 1e-40)
	g.tree.NearestSet(keeper, gonumPoint{coords: widen(point), index: -1})

	out := make([]int, 0, keeper.Len())
	for _, c := range keeper.Heap {
		p, ok := c.Comparable.(gonumPoint)
		if !ok {
			continue // sentinel
		}
		if SquaredEuclidean(point, g.m.Row(p.index)) <= radiusSq {
			out = append(out, p.index)
		}
	}
	return out
}

func widen[F Float](row []F) kdtree.Point {
	p := make(kdtree.Point, len(row))
	for j, v := range row {
		p[j] = float64(v)
	}
	return p
}

// gonumPoint is a kdtree.Comparable that remembers its matrix row.
type gonumPoint struct {
	coords kdtree.Point
	index  int
}

func (p gonumPoint) Compare(c kdtree.Comparable, d kdtree.Dim) float64 {
	return p.coords[d] - c.(gonumPoint).coords[d]
}

func (p gonumPoint) Dims() int { return len(p.coords) }

func (p gonumPoint) Distance(c kdtree.Comparable) float64 {
	return p.coords.Distance(c.(gonumPoint).coords)
}

// gonumPoints implements kdtree.Interface.
type gonumPoints []gonumPoint

func (p gonumPoints) Index(i int) kdtree.Comparable         { return p[i] }
func (p gonumPoints) Len() int                              { return len(p) }
func (p gonumPoints) Slice(start, end int) kdtree.Interface { return p[start:end] }
func (p gonumPoints) Pivot(d kdtree.Dim) int {
	pl := gonumPlane{points: p, dim: d}
	return kdtree.Partition(pl, kdtree.MedianOfMedians(pl))
}

// gonumPlane sorts gonumPoints along one dimension for pivot selection.
type gonumPlane struct {
	points gonumPoints
	dim    kdtree.Dim
}

func (p gonumPlane) Len() int { return len(p.points) }
func (p gonumPlane) Less(i, j int) bool {
	return p.points[i].coords[p.dim] < p.points[j].coords[p.dim]
}
func (p gonumPlane) Swap(i, j int) { p.points[i], p.points[j] = p.points[j], p.points[i] }
func (p gonumPlane) Slice(start, end int) kdtree.SortSlicer {
	return gonumPlane{points: p.points[start:end], dim: p.dim}
}
