package metrics

import (
	"math"
	"testing"
)

func TestMean(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   float64
	}{
		{"empty", nil, 0},
		{"single", []float64{5}, 5},
		{"several", []float64{1, 2, 3, 4}, 2.5},
		{"negative", []float64{-2, 2}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Mean(tt.values); got != tt.want {
				t.Errorf("Mean(%v) = %v, want %v", tt.values, got, tt.want)
			}
		})
	}
}

func TestVariance(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   float64
	}{
		{"empty", nil, 0},
		{"constant", []float64{3, 3, 3}, 0},
		{"spread", []float64{2, 4, 4, 4, 5, 5, 7, 9}, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Variance(tt.values); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Variance(%v) = %v, want %v", tt.values, got, tt.want)
			}
		})
	}
}

func TestStdDev(t *testing.T) {
	if got := StdDev([]float64{2, 4, 4, 4, 5, 5, 7, 9}); math.Abs(got-2) > 1e-9 {
		t.Errorf("StdDev = %v, want 2", got)
	}
}

func TestConfidenceInterval95(t *testing.T) {
	t.Run("single value collapses", func(t *testing.T) {
		lo, hi := ConfidenceInterval95([]float64{7})
		if lo != 7 || hi != 7 {
			t.Errorf("got (%v, %v), want (7, 7)", lo, hi)
		}
	})

	t.Run("interval brackets the mean", func(t *testing.T) {
		values := []float64{4, 5, 6, 7, 8}
		lo, hi := ConfidenceInterval95(values)
		m := Mean(values)
		if lo >= m || hi <= m {
			t.Errorf("interval (%v, %v) does not bracket mean %v", lo, hi, m)
		}
		if math.Abs((lo+hi)/2-m) > 1e-9 {
			t.Errorf("interval (%v, %v) is not centered on mean %v", lo, hi, m)
		}
	})
}
