package kmeans

import "errors"

var (
	// ErrInvalidK indicates K < 1 or more clusters than input rows.
	ErrInvalidK = errors.New("kmeans: K must be between 1 and the number of rows")
	// ErrDimensionMismatch indicates rows whose width differs from the model centres.
	ErrDimensionMismatch = errors.New("kmeans: data and centre dimensionality differ")
)
