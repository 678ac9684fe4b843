package pipeline

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// indexMatrix builds a feature matrix whose single feature equals the
// window index, so sequence contents are easy to assert.
func indexMatrix(t *testing.T, windows int) *FeatureMatrix {
	t.Helper()
	m, err := NewFeatureMatrix(windows, 1)
	if err != nil {
		t.Fatalf("NewFeatureMatrix failed: %v", err)
	}
	for w := 0; w < windows; w++ {
		m.Data[w] = float64(w)
	}
	return m
}

// TestBuildSequencesSingleEventAlignment verifies the forward-looking label
// law: with one positive raw label at window index k, exactly the sequences
// whose end index e satisfies k in [e, e+horizon) are labeled 1.
func TestBuildSequencesSingleEventAlignment(t *testing.T) {
	const (
		windows = 12
		seqLen  = 3
		horizon = 2
	)

	for k := 0; k < windows; k++ {
		rawLabels := make([]int, windows)
		rawLabels[k] = 1

		cfg := SequenceConfig{SequenceLength: seqLen, Horizon: horizon, Boundary: HorizonClipNegative}
		tensor, labels, err := BuildSequences(indexMatrix(t, windows), rawLabels, cfg)
		if err != nil {
			t.Fatalf("BuildSequences failed for k=%d: %v", k, err)
		}

		wantCount := windows - seqLen + 1
		if tensor.Sequences != wantCount || len(labels) != wantCount {
			t.Fatalf("k=%d: got %d sequences and %d labels, expected %d", k, tensor.Sequences, len(labels), wantCount)
		}

		for i, got := range labels {
			end := i + seqLen
			want := 0
			if k >= end && k < end+horizon {
				want = 1
			}
			if got != want {
				t.Errorf("k=%d sequence %d: label = %d, expected %d", k, i, got, want)
			}
		}
	}
}

// TestBuildSequencesContent verifies that sequences copy consecutive
// feature vectors in chronological order.
func TestBuildSequencesContent(t *testing.T) {
	cfg := SequenceConfig{SequenceLength: 3, Horizon: 1, Boundary: HorizonClipNegative}
	tensor, _, err := BuildSequences(indexMatrix(t, 5), make([]int, 5), cfg)
	if err != nil {
		t.Fatalf("BuildSequences failed: %v", err)
	}

	want := []float64{
		0, 1, 2,
		1, 2, 3,
		2, 3, 4,
	}
	if diff := cmp.Diff(want, tensor.Data); diff != "" {
		t.Errorf("sequence contents mismatch (-want +got):\n%s", diff)
	}
}

// TestBuildSequencesBoundaryPolicies compares the clip-negative and
// drop-incomplete policies near the end of the stream.
func TestBuildSequencesBoundaryPolicies(t *testing.T) {
	const (
		windows = 6
		seqLen  = 2
		horizon = 2
	)
	// Positive at the very last window index: only reachable by sequences
	// whose horizon window is clipped for later starts.
	rawLabels := make([]int, windows)
	rawLabels[windows-1] = 1

	clipCfg := SequenceConfig{SequenceLength: seqLen, Horizon: horizon, Boundary: HorizonClipNegative}
	_, clipLabels, err := BuildSequences(indexMatrix(t, windows), rawLabels, clipCfg)
	if err != nil {
		t.Fatalf("BuildSequences(clip) failed: %v", err)
	}
	if len(clipLabels) != windows-seqLen+1 {
		t.Fatalf("clip: got %d labels, expected %d", len(clipLabels), windows-seqLen+1)
	}
	// Ends are 2..6; k=5 is inside [e, e+2) for e in {4, 5}, i.e. i in {2, 3}.
	wantClip := []int{0, 0, 1, 1, 0}
	if diff := cmp.Diff(wantClip, clipLabels); diff != "" {
		t.Errorf("clip labels mismatch (-want +got):\n%s", diff)
	}

	dropCfg := SequenceConfig{SequenceLength: seqLen, Horizon: horizon, Boundary: HorizonDropIncomplete}
	_, dropLabels, err := BuildSequences(indexMatrix(t, windows), rawLabels, dropCfg)
	if err != nil {
		t.Fatalf("BuildSequences(drop) failed: %v", err)
	}
	// Only starts with a complete horizon survive: i + seqLen + horizon <= windows.
	wantDrop := []int{0, 0, 1}
	if diff := cmp.Diff(wantDrop, dropLabels); diff != "" {
		t.Errorf("drop labels mismatch (-want +got):\n%s", diff)
	}
}

// TestBuildSequencesZeroHorizon checks that a zero horizon labels nothing
// positive regardless of the raw stream.
func TestBuildSequencesZeroHorizon(t *testing.T) {
	rawLabels := []int{1, 1, 1, 1, 1}
	cfg := SequenceConfig{SequenceLength: 2, Horizon: 0, Boundary: HorizonClipNegative}
	_, labels, err := BuildSequences(indexMatrix(t, 5), rawLabels, cfg)
	if err != nil {
		t.Fatalf("BuildSequences failed: %v", err)
	}
	for i, l := range labels {
		if l != 0 {
			t.Errorf("sequence %d: label = %d, expected 0 with zero horizon", i, l)
		}
	}
}

// TestBuildSequencesValidation checks configuration and alignment errors.
func TestBuildSequencesValidation(t *testing.T) {
	matrix := indexMatrix(t, 5)

	tests := []struct {
		name   string
		labels []int
		cfg    SequenceConfig
	}{
		{"label stream misaligned", make([]int, 4), SequenceConfig{SequenceLength: 2, Horizon: 1}},
		{"zero sequence length", make([]int, 5), SequenceConfig{SequenceLength: 0, Horizon: 1}},
		{"negative horizon", make([]int, 5), SequenceConfig{SequenceLength: 2, Horizon: -1}},
		{"unknown boundary policy", make([]int, 5), SequenceConfig{SequenceLength: 2, Horizon: 1, Boundary: BoundaryPolicy(9)}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, _, err := BuildSequences(matrix, test.labels, test.cfg)
			if !errors.Is(err, ErrConfiguration) {
				t.Errorf("expected ErrConfiguration, got %v", err)
			}
		})
	}
}

// TestBuildSequencesShortStream checks that fewer windows than one sequence
// yields an empty result rather than an error.
func TestBuildSequencesShortStream(t *testing.T) {
	cfg := SequenceConfig{SequenceLength: 10, Horizon: 2, Boundary: HorizonClipNegative}
	tensor, labels, err := BuildSequences(indexMatrix(t, 4), make([]int, 4), cfg)
	if err != nil {
		t.Fatalf("BuildSequences failed: %v", err)
	}
	if tensor.Sequences != 0 || len(labels) != 0 {
		t.Errorf("got %d sequences and %d labels, expected empty result", tensor.Sequences, len(labels))
	}
}

// TestParseBoundaryPolicy checks config-name round trips.
func TestParseBoundaryPolicy(t *testing.T) {
	tests := []struct {
		name    string
		want    BoundaryPolicy
		wantErr bool
	}{
		{"clip_negative", HorizonClipNegative, false},
		{"", HorizonClipNegative, false},
		{"drop_incomplete", HorizonDropIncomplete, false},
		{"bogus", 0, true},
	}
	for _, test := range tests {
		got, err := ParseBoundaryPolicy(test.name)
		if test.wantErr {
			if !errors.Is(err, ErrConfiguration) {
				t.Errorf("ParseBoundaryPolicy(%q): expected ErrConfiguration, got %v", test.name, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseBoundaryPolicy(%q) failed: %v", test.name, err)
			continue
		}
		if got != test.want {
			t.Errorf("ParseBoundaryPolicy(%q) = %v, expected %v", test.name, got, test.want)
		}
	}
}
