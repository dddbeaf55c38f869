package dbscan

import (
	"fmt"
	"log/slog"
	"slices"
	"time"
)

// Kind classifies a predicted point.
type Kind int

const (
	// PredictionNoise means no neighbour of the point carries a cluster label.
	PredictionNoise Kind = iota
	// PredictionBorder means the point is not dense enough to be core but
	// lies within Eps of at least one labelled training point.
	PredictionBorder
	// PredictionCore means the point's neighbourhood is dense enough to be core.
	PredictionCore
)

func (k Kind) String() string {
	switch k {
	case PredictionCore:
		return "core"
	case PredictionBorder:
		return "border"
	case PredictionNoise:
		return "noise"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Prediction is the classification of one query point against a fit model.
type Prediction struct {
	Kind Kind
	// Labels holds the distinct labels of the point's training neighbours in
	// first-seen order, Noise included. It is nil for PredictionNoise.
	Labels []Label
}

// Contains reports whether l is among the prediction's neighbour labels.
func (p Prediction) Contains(l Label) bool { return slices.Contains(p.Labels, l) }

// PredictRows is Predict for points given as slices of rows.
func (m *Model[F]) PredictRows(training, query [][]F) ([]Prediction, error) {
	train, err := NewMatrix(training)
	if err != nil {
		return nil, fmt.Errorf("training: %w", err)
	}
	q, err := NewMatrix(query)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	return m.Predict(train, q)
}

// Predict classifies each row of query against the model, in row order.
// training must be the matrix the model was fit on; only its row count is
// checked. A query point is core when it has at least MinPoints-1 training
// neighbours, since it does not count itself the way a training point does.
func (m *Model[F]) Predict(training, query Matrix[F]) ([]Prediction, error) {
	if training.Rows() != len(m.Labels) {
		return nil, fmt.Errorf("%w: %d rows, %d labels", ErrTrainingMismatch, training.Rows(), len(m.Labels))
	}
	if training.Rows() > 0 && query.Rows() > 0 && query.Cols() != training.Cols() {
		return nil, fmt.Errorf("%w: query has %d columns, training has %d", ErrDimensionMismatch, query.Cols(), training.Cols())
	}
	if err := query.checkFinite(); err != nil {
		return nil, err
	}

	start := time.Now()
	threshold := max(m.MinPoints-1, 0)
	out := make([]Prediction, query.Rows())

	if training.Rows() == 0 {
		for i := range out {
			out[i] = m.classify(nil, threshold)
		}
		return out, nil
	}

	leafSize := m.LeafSize
	if leafSize < 1 {
		leafSize = 40
	}
	index, err := NewIndex(m.indexKind(), training, leafSize)
	if err != nil {
		return nil, err
	}

	forEachRowRange(query.Rows(), m.workers, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			out[i] = m.classify(regionQuery(index, query.Row(i), m.Eps), threshold)
		}
	})

	m.log().Debug("dbscan: predict complete",
		slog.Int("queries", query.Rows()),
		slog.Int("training", training.Rows()),
		slog.Duration("duration", time.Since(start)))

	return out, nil
}

// classify turns a query point's training neighbourhood into a Prediction.
func (m *Model[F]) classify(nbrs []int, threshold int) Prediction {
	var labels []Label
	for _, i := range nbrs {
		if l := m.Labels[i]; !slices.Contains(labels, l) {
			labels = append(labels, l)
		}
	}

	if len(nbrs) >= threshold {
		return Prediction{Kind: PredictionCore, Labels: labels}
	}
	if slices.ContainsFunc(labels, func(l Label) bool { return !l.IsNoise() }) {
		return Prediction{Kind: PredictionBorder, Labels: labels}
	}
	return Prediction{Kind: PredictionNoise}
}

func (m *Model[F]) indexKind() IndexKind {
	if m.Index == "" {
		return IndexAuto
	}
	return m.Index
}

func (m *Model[F]) log() *slog.Logger {
	if m.logger == nil {
		return slog.Default()
	}
	return m.logger
}
