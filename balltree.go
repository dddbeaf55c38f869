package dbscan

import (
	"math"
	"sort"
)

// BallTree is a ball tree spatial index for radius-range queries. Each node
// stores a centroid and radius defining an enclosing ball for its points,
// which keeps pruning effective at dimensionalities where axis-aligned
// boxes degrade.
//
// The tree is stored as a complete binary tree in array form:
//   - node i has children at 2*i+1 and 2*i+2
//   - centroids[node*dims .. (node+1)*dims) is the centroid of node
type BallTree[F Float] struct {
	data      []F // flat row-major point data (n * dims)
	n         int // number of points
	dims      int // dimensionality
	leafSize  int
	idxArray  []int      // permutation: tree-order position → original index
	nodes     []NodeData // one entry per tree node; Radius is used
	centroids []F
	numNodes  int
}

// NewBallTree builds a ball tree over the rows of m. leafSize controls the
// max points per leaf node.
func NewBallTree[F Float](m Matrix[F], leafSize int) *BallTree[F] {
	if leafSize < 1 {
		leafSize = 1
	}

	n, dims := m.Rows(), m.Cols()
	idxArray := make([]int, n)
	for i := range idxArray {
		idxArray[i] = i
	}

	maxNodes := kdMaxNodes(n, leafSize) // reuse the same upper bound
	t := &BallTree[F]{
		data:      m.data,
		n:         n,
		dims:      dims,
		leafSize:  leafSize,
		idxArray:  idxArray,
		nodes:     make([]NodeData, maxNodes),
		centroids: make([]F, maxNodes*dims),
	}

	if n > 0 {
		t.buildNode(0, 0, n)
		t.numNodes = kdCountNodes(t.nodes, 0, len(t.nodes))
	}

	return t
}

// buildNode recursively builds the ball tree for points in idxArray[start:end].
func (t *BallTree[F]) buildNode(nodeID, start, end int) {
	for nodeID >= len(t.nodes) {
		t.nodes = append(t.nodes, NodeData{})
		t.centroids = append(t.centroids, make([]F, t.dims)...)
	}

	t.computeCentroid(nodeID, start, end)

	// Radius: max distance from centroid to any point in this node.
	centroid := t.centroids[nodeID*t.dims : (nodeID+1)*t.dims]
	var radius float64
	for i := start; i < end; i++ {
		ptIdx := t.idxArray[i]
		pt := t.data[ptIdx*t.dims : (ptIdx+1)*t.dims]
		d := math.Sqrt(squaredEuclidean64(centroid, pt))
		if d > radius {
			radius = d
		}
	}

	count := end - start
	if count <= t.leafSize || t.dims == 0 {
		t.nodes[nodeID] = NodeData{IdxStart: start, IdxEnd: end, IsLeaf: true, Radius: radius}
		return
	}

	t.nodes[nodeID] = NodeData{IdxStart: start, IdxEnd: end, IsLeaf: false, Radius: radius}

	splitDim := t.findSpreadDim(start, end)
	t.sortByDim(start, end, splitDim)
	mid := start + count/2

	t.buildNode(2*nodeID+1, start, mid)
	t.buildNode(2*nodeID+2, mid, end)
}

// computeCentroid computes the mean of points idxArray[start:end] and stores
// it in the centroids array.
func (t *BallTree[F]) computeCentroid(nodeID, start, end int) {
	base := nodeID * t.dims
	count := F(end - start)
	for d := 0; d < t.dims; d++ {
		t.centroids[base+d] = 0
	}
	for i := start; i < end; i++ {
		ptIdx := t.idxArray[i]
		for d := 0; d < t.dims; d++ {
			t.centroids[base+d] += t.data[ptIdx*t.dims+d]
		}
	}
	for d := 0; d < t.dims; d++ {
		t.centroids[base+d] /= count
	}
}

// findSpreadDim returns the dimension with the greatest spread among
// points in idxArray[start:end].
func (t *BallTree[F]) findSpreadDim(start, end int) int {
	bestDim := 0
	bestSpread := F(-1)
	for d := 0; d < t.dims; d++ {
		minVal := F(math.Inf(1))
		maxVal := F(math.Inf(-1))
		for i := start; i < end; i++ {
			v := t.data[t.idxArray[i]*t.dims+d]
			if v < minVal {
				minVal = v
			}
			if v > maxVal {
				maxVal = v
			}
		}
		spread := maxVal - minVal
		if spread > bestSpread {
			bestSpread = spread
			bestDim = d
		}
	}
	return bestDim
}

// sortByDim sorts idxArray[start:end] by the given dimension.
func (t *BallTree[F]) sortByDim(start, end, dim int) {
	sub := t.idxArray[start:end]
	dims := t.dims
	data := t.data
	sort.Slice(sub, func(i, j int) bool {
		return data[sub[i]*dims+dim] < data[sub[j]*dims+dim]
	})
}

func (t *BallTree[F]) Len() int                  { return t.n }
func (t *BallTree[F]) Dims() int                 { return t.dims }
func (t *BallTree[F]) NumNodes() int             { return t.numNodes }
func (t *BallTree[F]) IdxArray() []int           { return t.idxArray }
func (t *BallTree[F]) NodeDataArray() []NodeData { return t.nodes[:t.numNodes] }

// Within returns the indices of all points within radiusSq (squared) of point.
func (t *BallTree[F]) Within(point []F, radiusSq F) []int {
	checkQueryDims(len(point), t.dims)
	if t.n == 0 {
		return nil
	}
	// Leaf points are compared with SquaredEuclidean in F, so the pruning
	// radius is widened by that computation's rounding error. The slack only
	// costs extra distance checks.
	slack := roundingSlack[F](t.dims)
	r := math.Sqrt(float64(radiusSq))*(1+slack) + 1e-20
	return t.withinNode(0, point, radiusSq, r, slack, nil)
}

// withinNode appends to out every point under nodeID within radiusSq of
// point. Subtrees are skipped when the distance from point to the node's
// ball exceeds the widened linear radius.
func (t *BallTree[F]) withinNode(nodeID int, point []F, radiusSq F, pruneRadius, slack float64, out []int) []int {
	if nodeID >= len(t.nodes) {
		return out
	}
	node := t.nodes[nodeID]
	if node.IdxStart == node.IdxEnd && nodeID != 0 {
		return out // uninitialized node
	}

	centroid := t.centroids[nodeID*t.dims : (nodeID+1)*t.dims]
	gap := math.Sqrt(squaredEuclidean64(point, centroid))*(1-slack) - node.Radius*(1+slack)
	if gap > pruneRadius {
		return out
	}

	if node.IsLeaf {
		for i := node.IdxStart; i < node.IdxEnd; i++ {
			ptIdx := t.idxArray[i]
			pt := t.data[ptIdx*t.dims : (ptIdx+1)*t.dims]
			if SquaredEuclidean(point, pt) <= radiusSq {
				out = append(out, ptIdx)
			}
		}
		return out
	}

	out = t.withinNode(2*nodeID+1, point, radiusSq, pruneRadius, slack, out)
	return t.withinNode(2*nodeID+2, point, radiusSq, pruneRadius, slack, out)
}
