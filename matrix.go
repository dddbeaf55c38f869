package dbscan

import "fmt"

// Matrix is an immutable point matrix stored flat in row-major order.
// Rows are points and columns are dimensions.
type Matrix[F Float] struct {
	data []F
	rows int
	cols int
}

// NewMatrix copies rows into a Matrix. All rows must have the same length.
func NewMatrix[F Float](rows [][]F) (Matrix[F], error) {
	n := len(rows)
	if n == 0 {
		return Matrix[F]{}, nil
	}

	dims := len(rows[0])
	data := make([]F, n*dims)
	for i, row := range rows {
		if len(row) != dims {
			return Matrix[F]{}, fmt.Errorf("%w: row %d has %d columns, want %d", ErrRaggedRows, i, len(row), dims)
		}
		copy(data[i*dims:], row)
	}
	return Matrix[F]{data: data, rows: n, cols: dims}, nil
}

// MatrixFromFlat wraps flat row-major data of shape rows x cols. The slice
// is not copied; callers must not modify it afterwards.
func MatrixFromFlat[F Float](data []F, rows, cols int) (Matrix[F], error) {
	if rows < 0 || cols < 0 || len(data) != rows*cols {
		return Matrix[F]{}, fmt.Errorf("%w: len=%d, rows=%d, cols=%d", ErrShape, len(data), rows, cols)
	}
	return Matrix[F]{data: data, rows: rows, cols: cols}, nil
}

// Rows returns the number of points.
func (m Matrix[F]) Rows() int { return m.rows }

// Cols returns the dimensionality of each point.
func (m Matrix[F]) Cols() int { return m.cols }

// Row returns a read-only view of point i.
func (m Matrix[F]) Row(i int) []F {
	return m.data[i*m.cols : (i+1)*m.cols : (i+1)*m.cols]
}

// At returns coordinate j of point i.
func (m Matrix[F]) At(i, j int) F { return m.data[i*m.cols+j] }

// checkFinite returns ErrNonFinite for the first NaN or infinite coordinate.
func (m Matrix[F]) checkFinite() error {
	for k, v := range m.data {
		if !isFinite(v) {
			return fmt.Errorf("%w: row %d, column %d is %v", ErrNonFinite, k/m.cols, k%m.cols, v)
		}
	}
	return nil
}
