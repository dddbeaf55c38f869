package dbscan

import "strconv"

// Label is the cluster assignment of a point. Cluster ids are dense and
// numbered from 0 in discovery order; Noise marks a point that belongs to
// no cluster.
type Label int

// Noise is the label of points that were not reached from any core point.
const Noise Label = -1

// IsNoise reports whether l marks an unassigned point.
func (l Label) IsNoise() bool { return l < 0 }

// Cluster returns the cluster id and true, or 0 and false for noise.
func (l Label) Cluster() (int, bool) {
	if l.IsNoise() {
		return 0, false
	}
	return int(l), true
}

func (l Label) String() string {
	if l.IsNoise() {
		return "noise"
	}
	return strconv.Itoa(int(l))
}

// Summary counts cluster memberships in a label vector.
type Summary struct {
	// Clusters is the number of distinct cluster ids.
	Clusters int
	// Noise is the number of unassigned points.
	Noise int
	// Sizes[c] is the number of points labelled c.
	Sizes []int
}

// Summarize counts the clusters and noise points in labels.
func Summarize(labels []Label) Summary {
	var s Summary
	for _, l := range labels {
		c, ok := l.Cluster()
		if !ok {
			s.Noise++
			continue
		}
		for len(s.Sizes) <= c {
			s.Sizes = append(s.Sizes, 0)
		}
		s.Sizes[c]++
	}
	s.Clusters = len(s.Sizes)
	return s
}
