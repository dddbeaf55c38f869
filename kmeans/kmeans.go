// Package kmeans implements Lloyd's k-means with multiple random restarts.
//
// It shares the dbscan package's Matrix and Float types so the same data
// can be clustered both ways:
//
//	data, _ := dbscan.NewMatrix(rows)
//	cfg := kmeans.DefaultConfig()
//	cfg.K = 3
//	model, err := kmeans.Fit(data, cfg)
package kmeans

import (
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/TrevorS/dbscan"
)

// Config controls k-means fitting.
type Config struct {
	// K is the number of clusters. Must be between 1 and the number of rows.
	K int

	// Iterations is the number of Lloyd steps per restart. 0 keeps the
	// drawn centres and only assigns rows to them. Default: 100 (set by
	// DefaultConfig; a zero Config runs no steps).
	Iterations int

	// Seeds is the number of random restarts. The restart with the smallest
	// total within-cluster sum of squares wins. Default: 10.
	Seeds int

	// RandomSeed seeds every restart's random stream, so fits are
	// reproducible for a fixed value regardless of Workers.
	RandomSeed uint64

	// Workers bounds how many restarts run concurrently.
	// 0 means runtime.NumCPU().
	Workers int

	// Logger receives per-call debug summaries. nil means slog.Default().
	Logger *slog.Logger
}

// DefaultConfig returns a Config with 100 iterations and 10 restarts. K
// has no default and must be set.
func DefaultConfig() Config {
	return Config{Iterations: 100, Seeds: 10}
}

// Model is a fitted k-means clustering.
type Model[F dbscan.Float] struct {
	// Centers holds one centre per cluster.
	Centers [][]F
	// Assignments maps each training row to its cluster.
	Assignments []int
	// WithinSS is the within-cluster sum of squared distances per cluster
	// from the final assignment step.
	WithinSS []F
}

// TotalWithinSS sums WithinSS over all clusters.
func (m *Model[F]) TotalWithinSS() F {
	var total F
	for _, w := range m.WithinSS {
		total += w
	}
	return total
}

func applyDefaults(cfg *Config) {
	if cfg.Seeds == 0 {
		cfg.Seeds = 10
	}
	if cfg.Workers == 0 {
		cfg.Workers = runtime.NumCPU()
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
}

func validateConfig(cfg *Config, rows int) error {
	if cfg.K < 1 || cfg.K > rows {
		return fmt.Errorf("%w: K=%d, rows=%d", ErrInvalidK, cfg.K, rows)
	}
	if cfg.Iterations < 0 {
		return fmt.Errorf("kmeans: Iterations must be >= 0, got %d", cfg.Iterations)
	}
	if cfg.Seeds < 0 {
		return fmt.Errorf("kmeans: Seeds must be >= 0, got %d", cfg.Seeds)
	}
	if cfg.Workers < 0 {
		return fmt.Errorf("kmeans: Workers must be >= 0 (0 means runtime.NumCPU()), got %d", cfg.Workers)
	}
	return nil
}

// Fit clusters the rows of data into cfg.K groups. Each restart draws K
// distinct rows as initial centres from its own random stream and runs
// cfg.Iterations Lloyd steps; the best restart is returned, ties going to
// the earliest one.
func Fit[F dbscan.Float](data dbscan.Matrix[F], cfg Config) (*Model[F], error) {
	applyDefaults(&cfg)
	if err := validateConfig(&cfg, data.Rows()); err != nil {
		return nil, err
	}

	start := time.Now()
	trials := make([]*Model[F], cfg.Seeds)

	var g errgroup.Group
	g.SetLimit(cfg.Workers)
	for trial := range trials {
		g.Go(func() error {
			rng := rand.New(rand.NewPCG(cfg.RandomSeed, uint64(trial)))
			trials[trial] = lloyd(data, cfg.K, cfg.Iterations, rng)
			return nil
		})
	}
	_ = g.Wait() // trials never fail

	best := trials[0]
	bestSS := best.TotalWithinSS()
	for _, m := range trials[1:] {
		if ss := m.TotalWithinSS(); ss < bestSS {
			best, bestSS = m, ss
		}
	}

	cfg.Logger.Debug("kmeans: fit complete",
		slog.Int("points", data.Rows()),
		slog.Int("k", cfg.K),
		slog.Int("seeds", cfg.Seeds),
		slog.Float64("withinss", float64(bestSS)),
		slog.Duration("duration", time.Since(start)))

	return best, nil
}

// lloyd runs one restart from k randomly chosen distinct rows.
func lloyd[F dbscan.Float](data dbscan.Matrix[F], k, iterations int, rng *rand.Rand) *Model[F] {
	n, dims := data.Rows(), data.Cols()

	centers := make([][]F, k)
	for c, row := range rng.Perm(n)[:k] {
		centers[c] = append([]F(nil), data.Row(row)...)
	}

	assignments := make([]int, n)
	withinss := make([]F, k)
	sums := make([][]F, k)
	for c := range sums {
		sums[c] = make([]F, dims)
	}
	counts := make([]int, k)

	// With zero iterations the rows are still assigned once so the model
	// describes the drawn centres.
	for iter := 0; iter < max(iterations, 1); iter++ {
		for c := range sums {
			clear(sums[c])
			counts[c] = 0
			withinss[c] = 0
		}

		for i := 0; i < n; i++ {
			row := data.Row(i)
			c, dist := nearest(row, centers)
			assignments[i] = c
			counts[c]++
			withinss[c] += dist
			for d, v := range row {
				sums[c][d] += v
			}
		}

		if iter == iterations {
			break
		}

		// An empty cluster keeps its previous centre.
		for c := range centers {
			if counts[c] == 0 {
				continue
			}
			for d := range centers[c] {
				centers[c][d] = sums[c][d] / F(counts[c])
			}
		}
	}

	return &Model[F]{Centers: centers, Assignments: assignments, WithinSS: withinss}
}

// nearest returns the index of the centre closest to row and the squared
// distance to it. NaN distances rank as the largest finite value of F.
// Ties go to the lowest index.
func nearest[F dbscan.Float](row []F, centers [][]F) (int, F) {
	best, bestDist := 0, F(math.Inf(1))
	for c, center := range centers {
		d := dbscan.SquaredEuclidean(row, center)
		if math.IsNaN(float64(d)) {
			d = maxFloat[F]()
		}
		if d < bestDist {
			best, bestDist = c, d
		}
	}
	return best, bestDist
}

func maxFloat[F dbscan.Float]() F {
	max32, max64 := math.MaxFloat32, math.MaxFloat64
	if third := 1.0 / 3.0; float64(F(third)) != third {
		return F(max32)
	}
	return F(max64)
}

// Predict assigns each row of data to its nearest centre.
func (m *Model[F]) Predict(data dbscan.Matrix[F]) ([]int, error) {
	if len(m.Centers) > 0 && data.Rows() > 0 && data.Cols() != len(m.Centers[0]) {
		return nil, fmt.Errorf("%w: data has %d columns, centres have %d", ErrDimensionMismatch, data.Cols(), len(m.Centers[0]))
	}
	out := make([]int, data.Rows())
	for i := range out {
		out[i], _ = nearest(data.Row(i), m.Centers)
	}
	return out, nil
}
