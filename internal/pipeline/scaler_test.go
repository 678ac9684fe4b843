package pipeline

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// trainingTensor builds a 3x2x2 tensor with distinct per-feature
// distributions.
func trainingTensor(t *testing.T) *SequenceTensor {
	t.Helper()
	tensor, err := NewSequenceTensor(3, 2, 2)
	if err != nil {
		t.Fatalf("NewSequenceTensor failed: %v", err)
	}
	// Rows of the flattened view: feature 0 ramps, feature 1 alternates.
	rows := [][]float64{
		{1, 10},
		{2, -10},
		{3, 10},
		{4, -10},
		{5, 10},
		{6, -10},
	}
	for r, row := range rows {
		copy(tensor.FlatRow(r), row)
	}
	return tensor
}

// columnStats computes mean and sample standard deviation of a feature
// column of the flattened view.
func columnStats(tensor *SequenceTensor, f int) (mean, std float64) {
	n := tensor.FlatRows()
	for r := 0; r < n; r++ {
		mean += tensor.FlatRow(r)[f]
	}
	mean /= float64(n)
	for r := 0; r < n; r++ {
		d := tensor.FlatRow(r)[f] - mean
		std += d * d
	}
	std = math.Sqrt(std / float64(n-1))
	return mean, std
}

// TestScalerRoundTrip verifies that transforming the fitted data yields
// per-feature mean 0 and standard deviation 1.
func TestScalerRoundTrip(t *testing.T) {
	tensor := trainingTensor(t)
	scaler := NewStandardScaler(ZeroVarianceUnit)

	if err := scaler.Fit(tensor); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}
	scaled, err := scaler.Transform(tensor)
	if err != nil {
		t.Fatalf("Transform failed: %v", err)
	}

	for f := 0; f < scaled.Features; f++ {
		mean, std := columnStats(scaled, f)
		if math.Abs(mean) > 1e-9 {
			t.Errorf("feature %d: mean after transform = %g, expected 0", f, mean)
		}
		if math.Abs(std-1) > 1e-9 {
			t.Errorf("feature %d: std after transform = %g, expected 1", f, std)
		}
	}
}

// TestScalerTransformDeterministic verifies that transform is
// side-effect-free and repeatable after fit.
func TestScalerTransformDeterministic(t *testing.T) {
	tensor := trainingTensor(t)
	original := tensor.Clone()
	scaler := NewStandardScaler(ZeroVarianceUnit)
	if err := scaler.Fit(tensor); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	first, err := scaler.Transform(tensor)
	if err != nil {
		t.Fatalf("first Transform failed: %v", err)
	}
	second, err := scaler.Transform(tensor)
	if err != nil {
		t.Fatalf("second Transform failed: %v", err)
	}

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("transform is not deterministic (-first +second):\n%s", diff)
	}
	if diff := cmp.Diff(original, tensor); diff != "" {
		t.Errorf("transform mutated its input (-before +after):\n%s", diff)
	}
}

// TestScalerShapePreserved verifies the 3D structure survives the
// flatten/unflatten round trip.
func TestScalerShapePreserved(t *testing.T) {
	tensor := trainingTensor(t)
	scaler := NewStandardScaler(ZeroVarianceUnit)
	if err := scaler.Fit(tensor); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}
	scaled, err := scaler.Transform(tensor)
	if err != nil {
		t.Fatalf("Transform failed: %v", err)
	}

	if scaled.Sequences != tensor.Sequences || scaled.SeqLen != tensor.SeqLen || scaled.Features != tensor.Features {
		t.Errorf("shape changed: got %dx%dx%d, expected %dx%dx%d",
			scaled.Sequences, scaled.SeqLen, scaled.Features,
			tensor.Sequences, tensor.SeqLen, tensor.Features)
	}

	// Element (s, w, f) must come from the same position of the input.
	state, err := scaler.State()
	if err != nil {
		t.Fatalf("State failed: %v", err)
	}
	for s := 0; s < tensor.Sequences; s++ {
		for w := 0; w < tensor.SeqLen; w++ {
			for f := 0; f < tensor.Features; f++ {
				want := (tensor.At(s, w, f) - state.Mean[f]) / state.Std[f]
				if got := scaled.At(s, w, f); math.Abs(got-want) > 1e-12 {
					t.Errorf("element (%d,%d,%d) = %g, expected %g", s, w, f, got, want)
				}
			}
		}
	}
}

// TestScalerLifecycle checks the fit-once contract and explicit reset.
func TestScalerLifecycle(t *testing.T) {
	tensor := trainingTensor(t)
	scaler := NewStandardScaler(ZeroVarianceUnit)

	if _, err := scaler.Transform(tensor); !errors.Is(err, ErrScalerState) {
		t.Errorf("Transform before Fit: expected ErrScalerState, got %v", err)
	}
	if _, err := scaler.State(); !errors.Is(err, ErrScalerState) {
		t.Errorf("State before Fit: expected ErrScalerState, got %v", err)
	}

	if err := scaler.Fit(tensor); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}
	if err := scaler.Fit(tensor); !errors.Is(err, ErrScalerState) {
		t.Errorf("second Fit: expected ErrScalerState, got %v", err)
	}

	scaler.Reset()
	if scaler.Fitted() {
		t.Error("Fitted() = true after Reset")
	}
	if err := scaler.Fit(tensor); err != nil {
		t.Errorf("Fit after Reset failed: %v", err)
	}
}

// TestScalerStateIsolation verifies that the returned state is a copy and
// cannot mutate the fitted scaler.
func TestScalerStateIsolation(t *testing.T) {
	tensor := trainingTensor(t)
	scaler := NewStandardScaler(ZeroVarianceUnit)
	if err := scaler.Fit(tensor); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	state, err := scaler.State()
	if err != nil {
		t.Fatalf("State failed: %v", err)
	}
	state.Mean[0] = 1e6

	fresh, err := scaler.State()
	if err != nil {
		t.Fatalf("State failed: %v", err)
	}
	if fresh.Mean[0] == 1e6 {
		t.Error("mutating the returned state leaked into the scaler")
	}
}

// TestScalerZeroVariance covers both zero-variance policies on a constant
// feature column.
func TestScalerZeroVariance(t *testing.T) {
	tensor, err := NewSequenceTensor(2, 2, 2)
	if err != nil {
		t.Fatalf("NewSequenceTensor failed: %v", err)
	}
	rows := [][]float64{
		{7, 1},
		{7, 2},
		{7, 3},
		{7, 4},
	}
	for r, row := range rows {
		copy(tensor.FlatRow(r), row)
	}

	t.Run("unit policy substitutes divisor", func(t *testing.T) {
		scaler := NewStandardScaler(ZeroVarianceUnit)
		if err := scaler.Fit(tensor); err != nil {
			t.Fatalf("Fit failed: %v", err)
		}
		scaled, err := scaler.Transform(tensor)
		if err != nil {
			t.Fatalf("Transform failed: %v", err)
		}
		for r := 0; r < scaled.FlatRows(); r++ {
			if got := scaled.FlatRow(r)[0]; got != 0 {
				t.Errorf("row %d: constant feature scaled to %g, expected 0", r, got)
			}
		}
	})

	t.Run("error policy fails fast", func(t *testing.T) {
		scaler := NewStandardScaler(ZeroVarianceError)
		if err := scaler.Fit(tensor); !errors.Is(err, ErrScalerState) {
			t.Errorf("expected ErrScalerState, got %v", err)
		}
	})
}

// TestScalerFeatureMismatch checks rejection of tensors with a different
// feature count than the fitted state.
func TestScalerFeatureMismatch(t *testing.T) {
	scaler := NewStandardScaler(ZeroVarianceUnit)
	if err := scaler.Fit(trainingTensor(t)); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	other, err := NewSequenceTensor(1, 2, 3)
	if err != nil {
		t.Fatalf("NewSequenceTensor failed: %v", err)
	}
	if _, err := scaler.Transform(other); !errors.Is(err, ErrScalerState) {
		t.Errorf("expected ErrScalerState on feature mismatch, got %v", err)
	}
}

// TestScalerInsufficientRows checks the minimum-rows requirement of fit.
func TestScalerInsufficientRows(t *testing.T) {
	tensor, err := NewSequenceTensor(1, 1, 2)
	if err != nil {
		t.Fatalf("NewSequenceTensor failed: %v", err)
	}
	scaler := NewStandardScaler(ZeroVarianceUnit)
	if err := scaler.Fit(tensor); !errors.Is(err, ErrInsufficientData) {
		t.Errorf("expected ErrInsufficientData, got %v", err)
	}
}

// TestNewScalerFromState verifies restoring a fitted scaler from persisted
// state.
func TestNewScalerFromState(t *testing.T) {
	tensor := trainingTensor(t)
	original := NewStandardScaler(ZeroVarianceUnit)
	if err := original.Fit(tensor); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}
	state, err := original.State()
	if err != nil {
		t.Fatalf("State failed: %v", err)
	}

	restored, err := NewScalerFromState(state, ZeroVarianceUnit)
	if err != nil {
		t.Fatalf("NewScalerFromState failed: %v", err)
	}

	want, err := original.Transform(tensor)
	if err != nil {
		t.Fatalf("Transform failed: %v", err)
	}
	got, err := restored.Transform(tensor)
	if err != nil {
		t.Fatalf("restored Transform failed: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("restored scaler differs (-original +restored):\n%s", diff)
	}

	if _, err := NewScalerFromState(nil, ZeroVarianceUnit); !errors.Is(err, ErrScalerState) {
		t.Errorf("expected ErrScalerState for nil state, got %v", err)
	}
	if _, err := NewScalerFromState(&ScalerState{Mean: []float64{1}, Std: []float64{1, 2}}, ZeroVarianceUnit); !errors.Is(err, ErrScalerState) {
		t.Errorf("expected ErrScalerState for ragged state, got %v", err)
	}
}
