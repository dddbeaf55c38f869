package dbscan

import (
	"math"
	"testing"
)

const floatTol = 1e-10

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestEuclidean_IdenticalVectors(t *testing.T) {
	a := []float64{1, 2, 3}
	if d := Euclidean(a, a); d != 0 {
		t.Errorf("expected 0, got %v", d)
	}
}

func TestEuclidean_ZeroVectors(t *testing.T) {
	a := []float64{0, 0, 0}
	b := []float64{0, 0, 0}
	if d := Euclidean(a, b); d != 0 {
		t.Errorf("expected 0, got %v", d)
	}
}

func TestEuclidean_UnitVectors(t *testing.T) {
	a := []float64{1, 0, 0}
	b := []float64{0, 1, 0}
	// sqrt((1-0)^2 + (0-1)^2 + (0-0)^2) = sqrt(2)
	expected := math.Sqrt(2)
	if d := Euclidean(a, b); !almostEqual(d, expected, floatTol) {
		t.Errorf("expected %v, got %v", expected, d)
	}
}

func TestEuclidean_HandComputed(t *testing.T) {
	a := []float64{1, 2, 3}
	b := []float64{4, 6, 3}
	// sqrt(9+16+0) = 5
	if d := Euclidean(a, b); !almostEqual(d, 5.0, floatTol) {
		t.Errorf("expected 5.0, got %v", d)
	}
}

func TestSquaredEuclidean_HandComputed(t *testing.T) {
	a := []float64{1, 2, 3}
	b := []float64{4, 6, 3}
	if d := SquaredEuclidean(a, b); d != 25 {
		t.Errorf("expected 25, got %v", d)
	}
}

func TestSquaredEuclidean_Symmetric(t *testing.T) {
	m := generateFlatMatrix(50, 7)
	for i := 0; i < m.Rows(); i++ {
		for j := 0; j < m.Rows(); j++ {
			if SquaredEuclidean(m.Row(i), m.Row(j)) != SquaredEuclidean(m.Row(j), m.Row(i)) {
				t.Fatalf("SquaredEuclidean(%d,%d) is not symmetric", i, j)
			}
		}
	}
}

func TestSquaredEuclidean_Float32(t *testing.T) {
	a := []float32{0, 0}
	b := []float32{3, 4}
	if d := SquaredEuclidean(a, b); d != 25 {
		t.Errorf("expected 25, got %v", d)
	}
	if d := Euclidean(a, b); d != 5 {
		t.Errorf("expected 5, got %v", d)
	}
}

func TestSquaredEuclidean_EmptyVectors(t *testing.T) {
	if d := SquaredEuclidean([]float64{}, []float64{}); d != 0 {
		t.Errorf("expected 0, got %v", d)
	}
}

func TestSquaredEuclidean64_MatchesFloat64(t *testing.T) {
	a := []float64{1.5, -2.25, 8}
	b := []float64{0.5, 3, -1}
	if SquaredEuclidean(a, b) != squaredEuclidean64(a, b) {
		t.Errorf("float64 accumulations differ: %v vs %v", SquaredEuclidean(a, b), squaredEuclidean64(a, b))
	}
}

func TestIsFinite(t *testing.T) {
	tests := []struct {
		v    float64
		want bool
	}{
		{0, true},
		{-1e300, true},
		{math.NaN(), false},
		{math.Inf(1), false},
		{math.Inf(-1), false},
	}
	for _, tt := range tests {
		if got := isFinite(tt.v); got != tt.want {
			t.Errorf("isFinite(%v) = %v, want %v", tt.v, got, tt.want)
		}
	}
	if isFinite(float32(math.Inf(1))) {
		t.Error("isFinite(float32 +Inf) = true")
	}
}

func TestRoundingSlack_Precision(t *testing.T) {
	s64 := roundingSlack[float64](3)
	s32 := roundingSlack[float32](3)
	if s32 <= s64 {
		t.Errorf("float32 slack %v should exceed float64 slack %v", s32, s64)
	}
	if roundingSlack[float64](10) <= s64 {
		t.Error("slack should grow with dimensionality")
	}
	if s32 > 1e-4 {
		t.Errorf("float32 slack %v is implausibly large", s32)
	}
}
