package features

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"EPI_monitor/internal/pipeline"
)

// TestDefaultChannelConfig verifies the wristband channel layout and the
// spectral capability flags.
func TestDefaultChannelConfig(t *testing.T) {
	cfg := DefaultChannelConfig()

	wantNames := []string{"acc_x", "acc_y", "acc_z", "eda", "hr", "temp"}
	if diff := cmp.Diff(wantNames, cfg.ChannelNames()); diff != "" {
		t.Errorf("channel names mismatch (-want +got):\n%s", diff)
	}

	for _, spec := range cfg {
		wantSpectral := spec.Family == FamilyACC || spec.Family == FamilyEDA
		if spec.Spectral != wantSpectral {
			t.Errorf("channel %s: spectral = %v, expected %v", spec.Name(), spec.Spectral, wantSpectral)
		}
	}

	// 3 acc channels with 8 features, eda with 8, hr and temp with 5 each.
	if got := cfg.FeatureCount(); got != 42 {
		t.Errorf("FeatureCount() = %d, expected 42", got)
	}
	if got := len(cfg.FeatureNames()); got != 42 {
		t.Errorf("len(FeatureNames()) = %d, expected 42", got)
	}
}

// TestFeatureNamesDeterministic verifies the ordering idempotence law: two
// iterations of the same configuration yield identical orderings.
func TestFeatureNamesDeterministic(t *testing.T) {
	first := DefaultChannelConfig().FeatureNames()
	second := DefaultChannelConfig().FeatureNames()
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("feature ordering is not deterministic (-first +second):\n%s", diff)
	}

	wantPrefix := []string{
		"acc_x_mean", "acc_x_std", "acc_x_median", "acc_x_max", "acc_x_min",
		"acc_x_total_power", "acc_x_mean_power", "acc_x_peak_freq",
		"acc_y_mean",
	}
	if diff := cmp.Diff(wantPrefix, first[:len(wantPrefix)]); diff != "" {
		t.Errorf("feature name prefix mismatch (-want +got):\n%s", diff)
	}
}

// TestChannelConfigValidate checks duplicate and empty configurations.
func TestChannelConfigValidate(t *testing.T) {
	if err := (ChannelConfig{}).Validate(); !errors.Is(err, pipeline.ErrConfiguration) {
		t.Errorf("empty config: expected ErrConfiguration, got %v", err)
	}

	dup := ChannelConfig{
		{Family: FamilyHR},
		{Family: FamilyHR},
	}
	if err := dup.Validate(); !errors.Is(err, pipeline.ErrConfiguration) {
		t.Errorf("duplicate config: expected ErrConfiguration, got %v", err)
	}
}

// TestParseFamily checks family name round trips.
func TestParseFamily(t *testing.T) {
	for _, f := range Families() {
		got, err := ParseFamily(f.String())
		if err != nil {
			t.Errorf("ParseFamily(%q) failed: %v", f.String(), err)
			continue
		}
		if got != f {
			t.Errorf("ParseFamily(%q) = %v, expected %v", f.String(), got, f)
		}
	}
	if _, err := ParseFamily("bvp"); !errors.Is(err, pipeline.ErrConfiguration) {
		t.Errorf("expected ErrConfiguration for unknown family, got %v", err)
	}
}

// TestChannelConfigWithSpectral verifies the configurable eligible set.
func TestChannelConfigWithSpectral(t *testing.T) {
	cfg := ChannelConfigWithSpectral(FamilyHR)
	for _, spec := range cfg {
		want := spec.Family == FamilyHR
		if spec.Spectral != want {
			t.Errorf("channel %s: spectral = %v, expected %v", spec.Name(), spec.Spectral, want)
		}
	}
}

// TestExtractorTimeDomainValues verifies the five statistics on a known
// window.
func TestExtractorTimeDomainValues(t *testing.T) {
	cfg := ChannelConfig{{Family: FamilyHR}}
	ex, err := NewExtractor(cfg, 32, 8)
	if err != nil {
		t.Fatalf("NewExtractor failed: %v", err)
	}

	vector, err := ex.Extract([][]float64{{1, 2, 3, 4}})
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if len(vector) != 5 {
		t.Fatalf("vector length %d, expected 5", len(vector))
	}

	want := []float64{2.5, math.Sqrt(5.0 / 3.0), 2.5, 4, 1}
	for i, w := range want {
		if math.Abs(vector[i]-w) > 1e-12 {
			t.Errorf("feature %d = %g, expected %g", i, vector[i], w)
		}
	}
}

// TestExtractorVectorStable verifies constant vector length and repeatable
// values across calls.
func TestExtractorVectorStable(t *testing.T) {
	ex, err := NewExtractor(DefaultChannelConfig(), 32, 64)
	if err != nil {
		t.Fatalf("NewExtractor failed: %v", err)
	}

	window := make([][]float64, 6)
	for c := range window {
		window[c] = sine(128, float64(c+1), 32, 1)
	}

	first, err := ex.Extract(window)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if len(first) != ex.FeatureCount() {
		t.Fatalf("vector length %d, expected %d", len(first), ex.FeatureCount())
	}

	second, err := ex.Extract(window)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("extraction is not repeatable (-first +second):\n%s", diff)
	}
}

// TestExtractorSpectralFeatures verifies the three spectral features of a
// pure tone channel.
func TestExtractorSpectralFeatures(t *testing.T) {
	cfg := ChannelConfig{{Family: FamilyEDA, Spectral: true}}
	ex, err := NewExtractor(cfg, 32, 64)
	if err != nil {
		t.Fatalf("NewExtractor failed: %v", err)
	}

	vector, err := ex.Extract([][]float64{sine(256, 4, 32, 1)})
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if len(vector) != 8 {
		t.Fatalf("vector length %d, expected 8", len(vector))
	}

	totalPower, meanPower, peakFreq := vector[5], vector[6], vector[7]
	if totalPower <= 0 {
		t.Errorf("total power = %g, expected positive", totalPower)
	}
	if want := totalPower / 33; math.Abs(meanPower-want) > 1e-12 {
		t.Errorf("mean power = %g, expected %g", meanPower, want)
	}
	if math.Abs(peakFreq-4) > 1e-9 {
		t.Errorf("peak frequency = %g, expected 4", peakFreq)
	}
}

// TestExtractorShortSpectralWindow verifies the fail-fast path for windows
// below the spectral minimum.
func TestExtractorShortSpectralWindow(t *testing.T) {
	ex, err := NewExtractor(DefaultChannelConfig(), 32, 256)
	if err != nil {
		t.Fatalf("NewExtractor failed: %v", err)
	}

	window := make([][]float64, 6)
	for c := range window {
		window[c] = sine(100, 2, 32, 1)
	}
	if _, err := ex.Extract(window); !errors.Is(err, pipeline.ErrInsufficientData) {
		t.Errorf("expected ErrInsufficientData, got %v", err)
	}
}

// TestExtractorChannelMismatch verifies rejection of windows whose channel
// count differs from the configuration.
func TestExtractorChannelMismatch(t *testing.T) {
	ex, err := NewExtractor(DefaultChannelConfig(), 32, 64)
	if err != nil {
		t.Fatalf("NewExtractor failed: %v", err)
	}
	if _, err := ex.Extract([][]float64{{1, 2, 3}}); !errors.Is(err, pipeline.ErrConfiguration) {
		t.Errorf("expected ErrConfiguration, got %v", err)
	}
}

// TestNewExtractorValidation covers constructor parameter checks.
func TestNewExtractorValidation(t *testing.T) {
	cfg := DefaultChannelConfig()
	if _, err := NewExtractor(cfg, 0, 64); !errors.Is(err, pipeline.ErrConfiguration) {
		t.Errorf("zero sample rate: expected ErrConfiguration, got %v", err)
	}
	if _, err := NewExtractor(cfg, 32, 1); !errors.Is(err, pipeline.ErrConfiguration) {
		t.Errorf("tiny nperseg: expected ErrConfiguration, got %v", err)
	}
	if _, err := NewExtractor(ChannelConfig{}, 32, 64); !errors.Is(err, pipeline.ErrConfiguration) {
		t.Errorf("empty config: expected ErrConfiguration, got %v", err)
	}
}
