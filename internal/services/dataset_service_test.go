package services

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"EPI_monitor/internal/pipeline"
)

// sequenceTensor builds a tensor where every cell of sequence s holds the
// value s, making provenance after a split trivial to assert.
func sequenceTensor(t *testing.T, sequences, seqLen, features int) *pipeline.SequenceTensor {
	t.Helper()
	tensor, err := pipeline.NewSequenceTensor(sequences, seqLen, features)
	if err != nil {
		t.Fatalf("NewSequenceTensor failed: %v", err)
	}
	for s := 0; s < sequences; s++ {
		row := tensor.Sequence(s)
		for i := range row {
			row[i] = float64(s)
		}
	}
	return tensor
}

func TestSplitTensorChronology(t *testing.T) {
	tensor := sequenceTensor(t, 5, 2, 3)
	labels := []int{0, 0, 1, 0, 1}

	train, val, trainLabels, valLabels, err := splitTensor(tensor, labels, 3)
	if err != nil {
		t.Fatalf("splitTensor failed: %v", err)
	}

	if train.Sequences != 3 || val.Sequences != 2 {
		t.Fatalf("split sizes = %d/%d, expected 3/2", train.Sequences, val.Sequences)
	}

	// Earlier sequences land in train, later ones in val, order preserved
	for s := 0; s < train.Sequences; s++ {
		if got := train.At(s, 0, 0); got != float64(s) {
			t.Errorf("train sequence %d holds %v, expected %v", s, got, float64(s))
		}
	}
	for s := 0; s < val.Sequences; s++ {
		if got := val.At(s, 0, 0); got != float64(s+3) {
			t.Errorf("val sequence %d holds %v, expected %v", s, got, float64(s+3))
		}
	}

	if diff := cmp.Diff([]int{0, 0, 1}, trainLabels); diff != "" {
		t.Errorf("train labels mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{0, 1}, valLabels); diff != "" {
		t.Errorf("val labels mismatch (-want +got):\n%s", diff)
	}
}

// TestSplitTensorCopies verifies the split owns its data: mutating a part
// must not leak into the source tensor.
func TestSplitTensorCopies(t *testing.T) {
	tensor := sequenceTensor(t, 4, 2, 2)
	labels := []int{0, 1, 0, 1}

	train, _, trainLabels, _, err := splitTensor(tensor, labels, 2)
	if err != nil {
		t.Fatalf("splitTensor failed: %v", err)
	}

	train.Sequence(0)[0] = 777
	trainLabels[0] = 9

	if got := tensor.At(0, 0, 0); got != 0 {
		t.Errorf("source tensor mutated through train part: %v", got)
	}
	if labels[0] != 0 {
		t.Errorf("source labels mutated through train part: %d", labels[0])
	}
}

func TestSplitTensorBounds(t *testing.T) {
	tensor := sequenceTensor(t, 3, 1, 1)
	labels := []int{0, 1, 0}

	for _, trainCount := range []int{0, 3, 5, -1} {
		_, _, _, _, err := splitTensor(tensor, labels, trainCount)
		if !errors.Is(err, pipeline.ErrConfiguration) {
			t.Errorf("trainCount=%d: error = %v, expected ErrConfiguration", trainCount, err)
		}
	}
}
