package dbscan

import "errors"

var (
	// ErrNegativeEps indicates a negative or NaN neighbourhood radius.
	ErrNegativeEps = errors.New("dbscan: Eps must be a non-negative number")
	// ErrNegativeMinPoints indicates MinPoints < 0.
	ErrNegativeMinPoints = errors.New("dbscan: MinPoints must be >= 0")
	// ErrNonFinite indicates a NaN or infinite coordinate in the input.
	ErrNonFinite = errors.New("dbscan: coordinates must be finite")
	// ErrRaggedRows indicates rows of differing lengths.
	ErrRaggedRows = errors.New("dbscan: all rows must have the same length")
	// ErrShape indicates flat data whose length does not match rows*cols.
	ErrShape = errors.New("dbscan: data length does not match rows*cols")
	// ErrDimensionMismatch indicates query points whose width differs from the training points.
	ErrDimensionMismatch = errors.New("dbscan: query and training dimensionality differ")
	// ErrTrainingMismatch indicates a training matrix that does not line up with the model labels.
	ErrTrainingMismatch = errors.New("dbscan: training rows do not match model labels")
)
