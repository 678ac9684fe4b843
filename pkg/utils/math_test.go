package utils

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// TestSafeFloat verifies NaN and Inf sanitation.
func TestSafeFloat(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"nan", math.NaN(), 0},
		{"positive inf", math.Inf(1), 0},
		{"negative inf", math.Inf(-1), 0},
		{"regular value", 36.6, 36.6},
		{"zero", 0, 0},
	}
	for _, test := range tests {
		if got := SafeFloat(test.in); got != test.want {
			t.Errorf("SafeFloat(%s) = %g, expected %g", test.name, got, test.want)
		}
	}
}

// TestBasicStats verifies the gonum-backed statistics on known data.
func TestBasicStats(t *testing.T) {
	data := []float64{2, 4, 4, 4, 5, 5, 7, 9}

	if got := Mean(data); got != 5 {
		t.Errorf("Mean = %g, expected 5", got)
	}
	// Sample standard deviation with n-1 in the denominator.
	if got := Std(data); math.Abs(got-2.138089935299395) > 1e-12 {
		t.Errorf("Std = %g, expected ~2.1381", got)
	}
	if got := Min(data); got != 2 {
		t.Errorf("Min = %g, expected 2", got)
	}
	if got := Max(data); got != 9 {
		t.Errorf("Max = %g, expected 9", got)
	}
	if got := Sum(data); got != 40 {
		t.Errorf("Sum = %g, expected 40", got)
	}
}

// TestStatsEmptyInput verifies NaN propagation on empty slices.
func TestStatsEmptyInput(t *testing.T) {
	for name, fn := range map[string]func([]float64) float64{
		"Mean":   Mean,
		"Min":    Min,
		"Max":    Max,
		"Median": Median,
	} {
		if got := fn(nil); !math.IsNaN(got) {
			t.Errorf("%s(nil) = %g, expected NaN", name, got)
		}
	}
	if got := Std([]float64{1}); !math.IsNaN(got) {
		t.Errorf("Std of one sample = %g, expected NaN", got)
	}
}

// TestMedian covers odd and even lengths.
func TestMedian(t *testing.T) {
	tests := []struct {
		name string
		data []float64
		want float64
	}{
		{"odd length", []float64{5, 1, 3}, 3},
		{"even length", []float64{4, 1, 3, 2}, 2.5},
		{"single value", []float64{7}, 7},
		{"unsorted negatives", []float64{-3, -1, -2}, -2},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := Median(test.data); got != test.want {
				t.Errorf("Median(%v) = %g, expected %g", test.data, got, test.want)
			}
		})
	}
}

// TestPercentileAndIQR verifies linear interpolation and the quartile
// spread.
func TestPercentileAndIQR(t *testing.T) {
	data := []float64{1, 2, 3, 4, 5}

	if got := Percentile(data, 50); got != 3 {
		t.Errorf("Percentile(50) = %g, expected 3", got)
	}
	if got := Percentile(data, 25); got != 2 {
		t.Errorf("Percentile(25) = %g, expected 2", got)
	}
	if got := Percentile(data, 0); got != 1 {
		t.Errorf("Percentile(0) = %g, expected 1", got)
	}
	if got := Percentile(data, 100); got != 5 {
		t.Errorf("Percentile(100) = %g, expected 5", got)
	}
	if got := IQR(data); got != 2 {
		t.Errorf("IQR = %g, expected 2", got)
	}
}

// TestArgMax verifies index selection and the empty-slice contract.
func TestArgMax(t *testing.T) {
	if got := ArgMax([]float64{1, 5, 3}); got != 1 {
		t.Errorf("ArgMax = %d, expected 1", got)
	}
	if got := ArgMax(nil); got != -1 {
		t.Errorf("ArgMax(nil) = %d, expected -1", got)
	}
}

// TestDiff verifies successive differences.
func TestDiff(t *testing.T) {
	got := Diff([]float64{1, 4, 9, 16})
	want := []float64{3, 5, 7}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Diff mismatch (-want +got):\n%s", diff)
	}
	if got := Diff([]float64{1}); len(got) != 0 {
		t.Errorf("Diff of one sample has length %d, expected 0", len(got))
	}
}
