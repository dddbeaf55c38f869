package dbscan

import "slices"

// frontier holds the point indices still to be expanded while one cluster
// grows. It is kept sorted and free of duplicates, and pop takes from the
// end, so the largest pending index is always expanded next.
type frontier struct {
	items []int
}

// reset replaces the contents with a copy of seed, which must already be
// sorted and deduplicated.
func (f *frontier) reset(seed []int) {
	f.items = append(f.items[:0], seed...)
}

func (f *frontier) len() int { return len(f.items) }

// pop removes and returns the largest pending index.
func (f *frontier) pop() (int, bool) {
	n := len(f.items)
	if n == 0 {
		return 0, false
	}
	q := f.items[n-1]
	f.items = f.items[:n-1]
	return q, true
}

// merge adds nbrs and restores sorted, deduplicated order.
func (f *frontier) merge(nbrs []int) {
	f.items = append(f.items, nbrs...)
	slices.Sort(f.items)
	f.items = slices.Compact(f.items)
}
