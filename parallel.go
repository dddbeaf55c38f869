package dbscan

import "golang.org/x/sync/errgroup"

// ComputeNeighborhoodsParallel computes the sorted, deduplicated eps
// neighbourhood of every row of data using multiple goroutines. index must
// be built over data. Each worker handles a contiguous range of rows and
// writes only its own result slots, so no synchronization is needed beyond
// the final wait.
//
// The result is identical to calling regionQuery once per row.
func ComputeNeighborhoodsParallel[F Float](index SpatialIndex[F], data Matrix[F], eps F, numWorkers int) [][]int {
	n := data.Rows()
	result := make([][]int, n)
	forEachRowRange(n, numWorkers, func(start, end int) {
		for i := start; i < end; i++ {
			result[i] = regionQuery(index, data.Row(i), eps)
		}
	})
	return result
}

// forEachRowRange splits [0, n) into at most numWorkers contiguous ranges
// and runs fn on each concurrently. With numWorkers <= 1 it runs fn inline.
func forEachRowRange(n, numWorkers int, fn func(start, end int)) {
	if numWorkers <= 1 || n <= 1 {
		fn(0, n)
		return
	}

	var g errgroup.Group
	rowsPerWorker := (n + numWorkers - 1) / numWorkers

	for start := 0; start < n; start += rowsPerWorker {
		end := min(start+rowsPerWorker, n)
		g.Go(func() error {
			fn(start, end)
			return nil
		})
	}

	_ = g.Wait() // workers never fail
}
