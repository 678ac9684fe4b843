package features

import (
	"errors"
	"math"
	"testing"

	"EPI_monitor/internal/pipeline"
)

// sine generates n samples of a sine wave at freq Hz sampled at fs Hz.
func sine(n int, freq, fs, amplitude float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = amplitude * math.Sin(2*math.Pi*freq*float64(i)/fs)
	}
	return out
}

// TestWelchPSDPeakFrequency verifies that the dominant bin of a pure tone
// lands on the tone frequency.
func TestWelchPSDPeakFrequency(t *testing.T) {
	const (
		fs      = 32.0
		nperseg = 64
	)
	tests := []struct {
		name string
		freq float64
	}{
		{"4 Hz tone", 4.0},
		{"1 Hz tone", 1.0},
		{"10 Hz tone", 10.0},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			signal := sine(512, test.freq, fs, 1.0)
			psd, err := WelchPSD(signal, fs, nperseg)
			if err != nil {
				t.Fatalf("WelchPSD failed: %v", err)
			}

			if len(psd.Power) != nperseg/2+1 || len(psd.Frequencies) != nperseg/2+1 {
				t.Fatalf("got %d bins, expected %d", len(psd.Power), nperseg/2+1)
			}

			peak := 0
			for k, p := range psd.Power {
				if p > psd.Power[peak] {
					peak = k
				}
			}
			if got := psd.Frequencies[peak]; math.Abs(got-test.freq) > 1e-9 {
				t.Errorf("peak at %g Hz, expected %g Hz", got, test.freq)
			}
		})
	}
}

// TestWelchPSDFrequencyAxis verifies the one-sided frequency grid.
func TestWelchPSDFrequencyAxis(t *testing.T) {
	const (
		fs      = 32.0
		nperseg = 64
	)
	psd, err := WelchPSD(sine(128, 2, fs, 1), fs, nperseg)
	if err != nil {
		t.Fatalf("WelchPSD failed: %v", err)
	}

	for k, f := range psd.Frequencies {
		want := float64(k) * fs / float64(nperseg)
		if math.Abs(f-want) > 1e-12 {
			t.Errorf("bin %d: frequency %g, expected %g", k, f, want)
		}
	}
	if last := psd.Frequencies[len(psd.Frequencies)-1]; math.Abs(last-fs/2) > 1e-12 {
		t.Errorf("last bin at %g Hz, expected Nyquist %g Hz", last, fs/2)
	}
}

// TestWelchPSDConstantSignal verifies that a detrended constant signal has
// no spectral power.
func TestWelchPSDConstantSignal(t *testing.T) {
	signal := make([]float64, 256)
	for i := range signal {
		signal[i] = 36.6
	}
	psd, err := WelchPSD(signal, 32, 64)
	if err != nil {
		t.Fatalf("WelchPSD failed: %v", err)
	}
	for k, p := range psd.Power {
		if p > 1e-18 {
			t.Errorf("bin %d: power %g for constant signal, expected ~0", k, p)
		}
	}
}

// TestWelchPSDStrongerToneHasMorePower verifies density scaling grows with
// amplitude.
func TestWelchPSDStrongerToneHasMorePower(t *testing.T) {
	weak, err := WelchPSD(sine(512, 4, 32, 1), 32, 64)
	if err != nil {
		t.Fatalf("WelchPSD failed: %v", err)
	}
	strong, err := WelchPSD(sine(512, 4, 32, 3), 32, 64)
	if err != nil {
		t.Fatalf("WelchPSD failed: %v", err)
	}

	weakTotal, strongTotal := 0.0, 0.0
	for k := range weak.Power {
		weakTotal += weak.Power[k]
		strongTotal += strong.Power[k]
	}
	// Power scales with amplitude squared.
	if ratio := strongTotal / weakTotal; math.Abs(ratio-9) > 0.1 {
		t.Errorf("power ratio %g, expected ~9 for 3x amplitude", ratio)
	}
}

// TestWelchPSDErrors covers the fail-fast validation paths.
func TestWelchPSDErrors(t *testing.T) {
	tests := []struct {
		name    string
		signal  []float64
		fs      float64
		nperseg int
		class   error
	}{
		{"signal shorter than segment", sine(32, 2, 32, 1), 32, 64, pipeline.ErrInsufficientData},
		{"zero sample rate", sine(128, 2, 32, 1), 0, 64, pipeline.ErrConfiguration},
		{"negative sample rate", sine(128, 2, 32, 1), -1, 64, pipeline.ErrConfiguration},
		{"segment below two", sine(128, 2, 32, 1), 32, 1, pipeline.ErrConfiguration},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := WelchPSD(test.signal, test.fs, test.nperseg)
			if !errors.Is(err, test.class) {
				t.Errorf("expected %v, got %v", test.class, err)
			}
		})
	}
}
