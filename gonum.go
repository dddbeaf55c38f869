package dbscan

import "gonum.org/v1/gonum/mat"

// FromGonum copies a gonum matrix into a Matrix, one point per row.
func FromGonum(m mat.Matrix) Matrix[float64] {
	r, c := m.Dims()
	data := make([]float64, r*c)
	if d, ok := m.(*mat.Dense); ok {
		raw := d.RawMatrix()
		for i := 0; i < r; i++ {
			copy(data[i*c:(i+1)*c], raw.Data[i*raw.Stride:i*raw.Stride+c])
		}
	} else {
		for i := 0; i < r; i++ {
			for j := 0; j < c; j++ {
				data[i*c+j] = m.At(i, j)
			}
		}
	}
	return Matrix[float64]{data: data, rows: r, cols: c}
}

// ToGonum copies m into a new *mat.Dense. An empty matrix yields an empty
// Dense, since gonum rejects zero-length dimensions in mat.NewDense.
func ToGonum(m Matrix[float64]) *mat.Dense {
	if m.rows == 0 || m.cols == 0 {
		return &mat.Dense{}
	}
	data := make([]float64, len(m.data))
	copy(data, m.data)
	return mat.NewDense(m.rows, m.cols, data)
}
