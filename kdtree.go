package dbscan

import (
	"math"
	"sort"
)

// KDTree is a KD-tree spatial index for radius-range queries. Points are
// read from the shared flat row-major matrix and reordered internally via
// an index permutation array.
//
// The tree is stored as a complete binary tree in array form:
//   - node i has children at 2*i+1 and 2*i+2
//   - node bounds are stored as min/max per dimension per node
type KDTree[F Float] struct {
	data     []F // flat row-major point data (n * dims)
	n        int // number of points
	dims     int // dimensionality
	leafSize int
	idxArray []int      // permutation: tree-order position → original index
	nodes    []NodeData // one entry per tree node
	// nodeBoundsMin[node*dims + j] = min value of feature j in node
	nodeBoundsMin []F
	// nodeBoundsMax[node*dims + j] = max value of feature j in node
	nodeBoundsMax []F
	numNodes      int
}

// NewKDTree builds a KD-tree over the rows of m. leafSize controls the max
// points per leaf node.
func NewKDTree[F Float](m Matrix[F], leafSize int) *KDTree[F] {
	if leafSize < 1 {
		leafSize = 1
	}

	n, dims := m.Rows(), m.Cols()
	idxArray := make([]int, n)
	for i := range idxArray {
		idxArray[i] = i
	}

	// A complete binary tree with n leaves of size leafSize needs at most
	// 2*ceil(n/leafSize) nodes; kdMaxNodes adds headroom for uneven splits.
	maxNodes := kdMaxNodes(n, leafSize)

	t := &KDTree[F]{
		data:          m.data,
		n:             n,
		dims:          dims,
		leafSize:      leafSize,
		idxArray:      idxArray,
		nodes:         make([]NodeData, maxNodes),
		nodeBoundsMin: make([]F, maxNodes*dims),
		nodeBoundsMax: make([]F, maxNodes*dims),
	}

	if n > 0 {
		t.buildNode(0, 0, n)
		t.numNodes = kdCountNodes(t.nodes, 0, maxNodes)
	}

	return t
}

// kdMaxNodes returns an upper bound on the number of nodes needed for a
// binary tree with n points and the given leaf size.
func kdMaxNodes(n, leafSize int) int {
	if n == 0 {
		return 1
	}
	// Depth of tree: ceil(log2(ceil(n/leafSize))) + 1.
	// Number of nodes in a complete binary tree of depth d = 2^(d+1) - 1.
	leaves := (n + leafSize - 1) / leafSize
	depth := 0
	v := 1
	for v < leaves {
		v *= 2
		depth++
	}
	return (1 << (depth + 1)) - 1 + 2 // +2 for safety margin
}

// kdCountNodes counts how many nodes were actually initialized by the build.
func kdCountNodes(nodes []NodeData, nodeID, maxNodes int) int {
	if nodeID >= maxNodes {
		return 0
	}
	if nodes[nodeID].IdxStart == 0 && nodes[nodeID].IdxEnd == 0 && nodeID != 0 {
		return 0
	}
	count := 1
	if !nodes[nodeID].IsLeaf {
		count += kdCountNodes(nodes, 2*nodeID+1, maxNodes)
		count += kdCountNodes(nodes, 2*nodeID+2, maxNodes)
	}
	return count
}

// buildNode recursively builds the tree for points in idxArray[start:end].
func (t *KDTree[F]) buildNode(nodeID, start, end int) {
	for nodeID >= len(t.nodes) {
		t.nodes = append(t.nodes, NodeData{})
		t.nodeBoundsMin = append(t.nodeBoundsMin, make([]F, t.dims)...)
		t.nodeBoundsMax = append(t.nodeBoundsMax, make([]F, t.dims)...)
	}

	t.computeNodeBounds(nodeID, start, end)

	count := end - start
	if count <= t.leafSize || t.dims == 0 {
		t.nodes[nodeID] = NodeData{IdxStart: start, IdxEnd: end, IsLeaf: true}
		return
	}

	// Split on the dimension with the greatest spread, at the median.
	splitDim := 0
	maxSpread := F(-1)
	for d := 0; d < t.dims; d++ {
		spread := t.nodeBoundsMax[nodeID*t.dims+d] - t.nodeBoundsMin[nodeID*t.dims+d]
		if spread > maxSpread {
			maxSpread = spread
			splitDim = d
		}
	}

	t.sortByDimension(start, end, splitDim)
	mid := start + count/2

	t.nodes[nodeID] = NodeData{IdxStart: start, IdxEnd: end, IsLeaf: false}

	t.buildNode(2*nodeID+1, start, mid)
	t.buildNode(2*nodeID+2, mid, end)
}

// computeNodeBounds computes min/max per dimension for points idxArray[start:end].
func (t *KDTree[F]) computeNodeBounds(nodeID, start, end int) {
	base := nodeID * t.dims
	for d := 0; d < t.dims; d++ {
		t.nodeBoundsMin[base+d] = F(math.Inf(1))
		t.nodeBoundsMax[base+d] = F(math.Inf(-1))
	}
	for i := start; i < end; i++ {
		ptIdx := t.idxArray[i]
		for d := 0; d < t.dims; d++ {
			v := t.data[ptIdx*t.dims+d]
			if v < t.nodeBoundsMin[base+d] {
				t.nodeBoundsMin[base+d] = v
			}
			if v > t.nodeBoundsMax[base+d] {
				t.nodeBoundsMax[base+d] = v
			}
		}
	}
}

// sortByDimension sorts idxArray[start:end] by the given dimension.
func (t *KDTree[F]) sortByDimension(start, end, dim int) {
	sub := t.idxArray[start:end]
	dims := t.dims
	data := t.data
	sort.Slice(sub, func(i, j int) bool {
		return data[sub[i]*dims+dim] < data[sub[j]*dims+dim]
	})
}

func (t *KDTree[F]) Len() int                  { return t.n }
func (t *KDTree[F]) Dims() int                 { return t.dims }
func (t *KDTree[F]) NumNodes() int             { return t.numNodes }
func (t *KDTree[F]) IdxArray() []int           { return t.idxArray }
func (t *KDTree[F]) NodeDataArray() []NodeData { return t.nodes[:t.numNodes] }

// Within returns the indices of all points within radiusSq (squared) of point.
func (t *KDTree[F]) Within(point []F, radiusSq F) []int {
	checkQueryDims(len(point), t.dims)
	if t.n == 0 {
		return nil
	}
	return t.withinNode(0, point, radiusSq, nil)
}

// withinNode appends to out every point under nodeID within radiusSq of
// point, skipping subtrees whose bounding box lies entirely outside.
func (t *KDTree[F]) withinNode(nodeID int, point []F, radiusSq F, out []int) []int {
	if nodeID >= len(t.nodes) {
		return out
	}
	node := t.nodes[nodeID]
	if node.IdxStart == node.IdxEnd && nodeID != 0 {
		return out // uninitialized node
	}
	if t.minDistSqPoint(nodeID, point) > radiusSq {
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

	out = t.withinNode(2*nodeID+1, point, radiusSq, out)
	return t.withinNode(2*nodeID+2, point, radiusSq, out)
}

// minDistSqPoint returns a lower bound on the squared distance between a
// point and any point in the given node. Each per-dimension gap is no larger
// than the matching coordinate difference of any contained point, so the
// bound never exceeds a distance computed by SquaredEuclidean.
func (t *KDTree[F]) minDistSqPoint(node int, point []F) F {
	base := node * t.dims
	var rdist F
	for j := 0; j < t.dims; j++ {
		lo := t.nodeBoundsMin[base+j]
		hi := t.nodeBoundsMax[base+j]
		var d F
		if point[j] < lo {
			d = lo - point[j]
		} else if point[j] > hi {
			d = point[j] - hi
		}
		rdist += d * d
	}
	return rdist
}
