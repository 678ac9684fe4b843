package pipeline

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// meanExtractor is a minimal Extractor producing one feature per channel.
type meanExtractor struct {
	channels int
}

func (m *meanExtractor) Extract(window [][]float64) ([]float64, error) {
	if len(window) != m.channels {
		return nil, fmt.Errorf("unexpected channel count %d", len(window))
	}
	out := make([]float64, m.channels)
	for i, ch := range window {
		sum := 0.0
		for _, v := range ch {
			sum += v
		}
		out[i] = sum / float64(len(ch))
	}
	return out, nil
}

func (m *meanExtractor) FeatureCount() int {
	return m.channels
}

// rampSeries builds channels with values equal to sample index plus an offset.
func rampSeries(channels, samples int) [][]float64 {
	series := make([][]float64, channels)
	for c := range series {
		series[c] = make([]float64, samples)
		for i := range series[c] {
			series[c][i] = float64(i + c*1000)
		}
	}
	return series
}

// TestWindowCountFormula verifies the emitted window count against the
// closed-form floor((L-W)/step)+1 for a grid of configurations.
func TestWindowCountFormula(t *testing.T) {
	tests := []struct {
		name    string
		samples int
		window  int
		overlap float64
		want    int
	}{
		{"reference case 3600/1800/0.5", 3600, 1800, 0.5, 3},
		{"no overlap exact fit", 100, 10, 0, 10},
		{"no overlap with tail", 105, 10, 0, 10},
		{"half overlap", 100, 10, 0.5, 19},
		{"series shorter than window", 5, 10, 0.5, 0},
		{"series equals window", 10, 10, 0.5, 1},
		{"single sample window", 7, 1, 0, 7},
		{"fractional step floor", 100, 10, 0.75, 46},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			cfg := WindowConfig{WindowSize: test.window, Overlap: test.overlap}
			if err := cfg.Validate(); err != nil {
				t.Fatalf("Validate() failed: %v", err)
			}

			got := WindowCount(test.samples, cfg)
			if got != test.want {
				t.Errorf("WindowCount(%d, W=%d, f=%g) = %d, expected %d",
					test.samples, test.window, test.overlap, got, test.want)
			}

			it, err := NewWindowIterator(rampSeries(1, test.samples), cfg)
			if err != nil {
				t.Fatalf("NewWindowIterator failed: %v", err)
			}
			emitted := 0
			for it.HasNext() {
				if _, err := it.Next(); err != nil {
					t.Fatalf("Next() failed: %v", err)
				}
				emitted++
			}
			if emitted != test.want {
				t.Errorf("iterator emitted %d windows, expected %d", emitted, test.want)
			}
		})
	}
}

// TestWindowConfigValidate checks rejection of invalid slicing parameters.
func TestWindowConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		window  int
		overlap float64
	}{
		{"zero window", 0, 0.5},
		{"negative window", -5, 0.5},
		{"overlap one", 10, 1.0},
		{"overlap above one", 10, 1.5},
		{"negative overlap", 10, -0.1},
		{"step below one", 1, 0.5},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			cfg := WindowConfig{WindowSize: test.window, Overlap: test.overlap}
			err := cfg.Validate()
			if err == nil {
				t.Fatalf("Validate(W=%d, f=%g) succeeded, expected error", test.window, test.overlap)
			}
			if !errors.Is(err, ErrConfiguration) {
				t.Errorf("expected ErrConfiguration, got %v", err)
			}
		})
	}
}

// TestWindowIteratorContent verifies chronological order, window contents
// and restartability of the iterator.
func TestWindowIteratorContent(t *testing.T) {
	series := [][]float64{
		{0, 1, 2, 3, 4, 5, 6, 7},
		{10, 11, 12, 13, 14, 15, 16, 17},
	}
	cfg := WindowConfig{WindowSize: 4, Overlap: 0.5}

	it, err := NewWindowIterator(series, cfg)
	if err != nil {
		t.Fatalf("NewWindowIterator failed: %v", err)
	}
	if it.Count() != 3 {
		t.Fatalf("Count() = %d, expected 3", it.Count())
	}

	collect := func() [][][]float64 {
		var windows [][][]float64
		for it.HasNext() {
			w, err := it.Next()
			if err != nil {
				t.Fatalf("Next() failed: %v", err)
			}
			windows = append(windows, w)
		}
		return windows
	}

	first := collect()
	want := [][][]float64{
		{{0, 1, 2, 3}, {10, 11, 12, 13}},
		{{2, 3, 4, 5}, {12, 13, 14, 15}},
		{{4, 5, 6, 7}, {14, 15, 16, 17}},
	}
	if diff := cmp.Diff(want, first); diff != "" {
		t.Errorf("window contents mismatch (-want +got):\n%s", diff)
	}

	if _, err := it.Next(); !errors.Is(err, ErrInsufficientData) {
		t.Errorf("Next() past the end: expected ErrInsufficientData, got %v", err)
	}

	it.Reset()
	second := collect()
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("iterator is not restartable (-first +second):\n%s", diff)
	}
}

// TestWindowIteratorChannelMismatch checks rejection of ragged input.
func TestWindowIteratorChannelMismatch(t *testing.T) {
	series := [][]float64{
		{1, 2, 3, 4},
		{1, 2, 3},
	}
	_, err := NewWindowIterator(series, WindowConfig{WindowSize: 2, Overlap: 0})
	if !errors.Is(err, ErrConfiguration) {
		t.Errorf("expected ErrConfiguration for ragged channels, got %v", err)
	}
}

// TestSegmentFeatures verifies the ordered feature matrix produced by the
// engine and the equivalence of the parallel path.
func TestSegmentFeatures(t *testing.T) {
	series := rampSeries(2, 3600)
	cfg := WindowConfig{WindowSize: 1800, Overlap: 0.5}
	ex := &meanExtractor{channels: 2}

	matrix, err := SegmentFeatures(series, cfg, ex)
	if err != nil {
		t.Fatalf("SegmentFeatures failed: %v", err)
	}
	if matrix.Windows != 3 || matrix.Features != 2 {
		t.Fatalf("matrix shape %dx%d, expected 3x2", matrix.Windows, matrix.Features)
	}

	// Mean of samples [s, s+1800) equals s + 899.5 for the ramp channel.
	for w := 0; w < matrix.Windows; w++ {
		start := float64(w * 900)
		wantCh0 := start + 899.5
		wantCh1 := start + 899.5 + 1000
		if got := matrix.At(w, 0); got != wantCh0 {
			t.Errorf("window %d channel 0 mean = %g, expected %g", w, got, wantCh0)
		}
		if got := matrix.At(w, 1); got != wantCh1 {
			t.Errorf("window %d channel 1 mean = %g, expected %g", w, got, wantCh1)
		}
	}

	parallel, err := SegmentFeaturesParallel(series, cfg, ex, 4)
	if err != nil {
		t.Fatalf("SegmentFeaturesParallel failed: %v", err)
	}
	if diff := cmp.Diff(matrix, parallel); diff != "" {
		t.Errorf("parallel result differs from sequential (-seq +par):\n%s", diff)
	}
}

// TestSegmentFeaturesEmptyResult checks that a series shorter than one
// window yields an empty matrix rather than an error.
func TestSegmentFeaturesEmptyResult(t *testing.T) {
	matrix, err := SegmentFeatures(rampSeries(1, 10), WindowConfig{WindowSize: 100, Overlap: 0}, &meanExtractor{channels: 1})
	if err != nil {
		t.Fatalf("SegmentFeatures failed: %v", err)
	}
	if matrix.Windows != 0 {
		t.Errorf("expected 0 windows, got %d", matrix.Windows)
	}
}
