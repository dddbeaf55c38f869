package dbscan

import (
	"fmt"
	"log/slog"
	"math"
	"runtime"
	"time"
)

// Config controls DBSCAN clustering behavior.
// Start with [DefaultConfig] and override the fields you need.
type Config[F Float] struct {
	// Eps is the neighbourhood radius. Two points are neighbours when their
	// Euclidean distance is <= Eps. Must be >= 0. Default: 0.5.
	Eps F

	// MinPoints is the number of points, the point itself included, that a
	// neighbourhood must hold for its centre to be a core point. 0 makes
	// every point core. Must be >= 0. Default: 5.
	MinPoints int

	// IncludeBorders labels non-core points reached from a core point with
	// that core point's cluster. When a border point is reachable from
	// several clusters, the cluster that reaches it last wins.
	// Default: false (only core points are labelled).
	IncludeBorders bool

	// Index selects the spatial index used for region queries. "auto"
	// picks brute force for tiny inputs, a KD-tree for up to 16
	// dimensions and a ball tree above that. Every index yields the same
	// labels. Default: "auto".
	Index IndexKind

	// LeafSize is the maximum number of points in a tree leaf. Only used by
	// the tree indexes. Default: 40.
	LeafSize int

	// Workers controls how many goroutines compute neighbourhoods. With
	// more than one worker every neighbourhood is computed up front, which
	// holds them all in memory at once; labels are identical either way.
	// 0 means runtime.NumCPU(). Default: 0 (auto).
	Workers int

	// Logger receives per-call debug summaries. nil means slog.Default().
	Logger *slog.Logger
}

// Model is the result of a DBSCAN fit. It does not keep the training
// matrix; Predict must be given the same matrix the model was fit on.
type Model[F Float] struct {
	Eps            F
	MinPoints      int
	IncludeBorders bool

	// Labels holds one cluster label per training row, in row order.
	Labels []Label

	// Index and LeafSize are the index settings used at fit time, reused by
	// Predict.
	Index    IndexKind
	LeafSize int

	clusters int
	workers  int
	logger   *slog.Logger
}

// NumClusters returns the number of clusters found by the fit.
func (m *Model[F]) NumClusters() int { return m.clusters }

// Summary counts cluster sizes and noise in the model's labels.
func (m *Model[F]) Summary() Summary { return Summarize(m.Labels) }

// DefaultConfig returns a Config with reasonable defaults.
func DefaultConfig[F Float]() Config[F] {
	return Config[F]{
		Eps:       0.5,
		MinPoints: 5,
		Index:     IndexAuto,
		LeafSize:  40,
	}
}

// applyDefaults fills in zero-valued config fields with their defaults.
func applyDefaults[F Float](cfg *Config[F]) {
	if cfg.Index == "" {
		cfg.Index = IndexAuto
	}
	if cfg.LeafSize == 0 {
		cfg.LeafSize = 40
	}
	if cfg.Workers == 0 {
		cfg.Workers = runtime.NumCPU()
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
}

// validateConfig checks that cfg fields are valid and returns a descriptive error if not.
func validateConfig[F Float](cfg *Config[F]) error {
	if cfg.Eps < 0 || math.IsNaN(float64(cfg.Eps)) {
		return fmt.Errorf("%w, got %v", ErrNegativeEps, cfg.Eps)
	}
	if cfg.MinPoints < 0 {
		return fmt.Errorf("%w, got %d", ErrNegativeMinPoints, cfg.MinPoints)
	}
	if !validIndexKind(cfg.Index) {
		return fmt.Errorf("dbscan: invalid Index %q", cfg.Index)
	}
	if cfg.LeafSize < 1 {
		return fmt.Errorf("dbscan: LeafSize must be >= 1, got %d", cfg.LeafSize)
	}
	if cfg.Workers < 0 {
		return fmt.Errorf("dbscan: Workers must be >= 0 (0 means runtime.NumCPU()), got %d", cfg.Workers)
	}
	return nil
}

// FitRows is Fit for points given as a slice of rows.
func FitRows[F Float](rows [][]F, cfg Config[F]) (*Model[F], error) {
	data, err := NewMatrix(rows)
	if err != nil {
		return nil, err
	}
	return Fit(data, cfg)
}

// Fit runs DBSCAN over the rows of data and returns one label per row.
// Points are visited in row order; runs are reproducible for a fixed input
// and config. Returns an error if the config is invalid or data holds a
// non-finite coordinate.
//
// When cfg.Workers resolves to more than one goroutine, which is the
// default on multi-core machines, every neighbourhood is computed before
// expansion and held until Fit returns. Memory then grows with the sum of
// all neighbourhood sizes, close to n² for an eps that covers most of the
// data. Set Workers to 1 to query lazily and keep only the frontier.
func Fit[F Float](data Matrix[F], cfg Config[F]) (*Model[F], error) {
	applyDefaults(&cfg)
	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}
	if err := data.checkFinite(); err != nil {
		return nil, err
	}
	if cfg.MinPoints == 0 {
		cfg.Logger.Warn("dbscan: MinPoints is 0, every point is a core point")
	}

	start := time.Now()
	n := data.Rows()
	model := &Model[F]{
		Eps:            cfg.Eps,
		MinPoints:      cfg.MinPoints,
		IncludeBorders: cfg.IncludeBorders,
		Labels:         make([]Label, n),
		Index:          cfg.Index,
		LeafSize:       cfg.LeafSize,
		workers:        cfg.Workers,
		logger:         cfg.Logger,
	}
	for i := range model.Labels {
		model.Labels[i] = Noise
	}
	if n == 0 {
		return model, nil
	}

	kind := selectIndex(cfg.Index, n, data.Cols(), cfg.LeafSize)
	index, err := NewIndex(kind, data, cfg.LeafSize)
	if err != nil {
		return nil, err
	}

	neighbors := func(i int) []int {
		return regionQuery(index, data.Row(i), cfg.Eps)
	}
	if cfg.Workers > 1 && n > 1 {
		all := ComputeNeighborhoodsParallel(index, data, cfg.Eps, cfg.Workers)
		neighbors = func(i int) []int { return all[i] }
	}

	model.clusters = expandClusters(model.Labels, neighbors, cfg.MinPoints, cfg.IncludeBorders)

	summary := model.Summary()
	cfg.Logger.Debug("dbscan: fit complete",
		slog.Int("points", n),
		slog.Int("clusters", model.clusters),
		slog.Int("noise", summary.Noise),
		slog.String("index", string(kind)),
		slog.Duration("duration", time.Since(start)))

	return model, nil
}

// expandClusters grows density-connected clusters and writes them into
// labels, which must start out all Noise. neighbors(i) returns the sorted,
// deduplicated neighbourhood of point i, itself included; it is called at
// most once per point. Returns the number of clusters found.
//
// A point whose neighbourhood is too small is marked visited but left
// unlabelled, so a later cluster can still reach it as a border point. In
// border mode every popped point takes the current cluster id, including
// points already visited, so a border point shared by two clusters ends
// up in the one that reached it last.
func expandClusters(labels []Label, neighbors func(int) []int, minPoints int, includeBorders bool) int {
	visited := make([]bool, len(labels))
	var pending frontier
	c := 0

	for p := range labels {
		if visited[p] {
			continue
		}
		visited[p] = true

		seed := neighbors(p)
		if len(seed) < minPoints {
			continue
		}

		labels[p] = Label(c)
		pending.reset(seed)
		for {
			q, ok := pending.pop()
			if !ok {
				break
			}
			if includeBorders {
				labels[q] = Label(c)
			}
			if visited[q] {
				continue
			}
			visited[q] = true

			nbrs := neighbors(q)
			if len(nbrs) < minPoints {
				continue
			}
			if !includeBorders {
				labels[q] = Label(c)
			}
			pending.merge(nbrs)
		}
		c++
	}

	return c
}
