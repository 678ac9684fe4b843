package handlers

import (
	"math"
	"testing"

	"EPI_monitor/internal/models"
)

func point(channel string, value float64) *models.WearableData {
	return &models.WearableData{
		DeviceID: "EPI-BAND-TEST",
		Channel:  channel,
		Value:    value,
		TimeSec:  1.0,
	}
}

// TestArtifactFilterBounds checks the per-channel validity and critical
// anomaly bounds on a fresh filter, where trend checks cannot fire yet.
func TestArtifactFilterBounds(t *testing.T) {
	tests := []struct {
		name    string
		channel string
		value   float64
		want    string
	}{
		{"acc in range", models.ChannelACCX, 10, ""},
		{"acc beyond sensor limit", models.ChannelACCY, 25, NoiseInvalidValue},
		{"acc negative beyond sensor limit", models.ChannelACCZ, -25, NoiseInvalidValue},
		{"acc saturated", models.ChannelACCX, 18, NoiseCriticalAnomaly},
		{"acc saturated negative", models.ChannelACCX, -18, NoiseCriticalAnomaly},
		{"acc nan", models.ChannelACCX, math.NaN(), NoiseInvalidValue},
		{"acc inf", models.ChannelACCX, math.Inf(1), NoiseInvalidValue},

		{"eda in range", models.ChannelEDA, 5, ""},
		{"eda negative", models.ChannelEDA, -2, NoiseInvalidValue},
		{"eda above range", models.ChannelEDA, 130, NoiseInvalidValue},
		{"eda below sensitivity", models.ChannelEDA, 0.005, NoiseCriticalAnomaly},
		{"eda electrode fault", models.ChannelEDA, 110, NoiseCriticalAnomaly},

		{"hr in range", models.ChannelHR, 70, ""},
		{"hr impossible low", models.ChannelHR, 10, NoiseInvalidValue},
		{"hr impossible high", models.ChannelHR, 300, NoiseInvalidValue},
		{"hr critical low", models.ChannelHR, 22, NoiseCriticalAnomaly},
		{"hr critical high", models.ChannelHR, 230, NoiseCriticalAnomaly},

		{"temp in range", models.ChannelTemp, 33, ""},
		{"temp out of range", models.ChannelTemp, 50, NoiseInvalidValue},
		{"temp sensor off skin", models.ChannelTemp, 22, NoiseCriticalAnomaly},
		{"temp overheated", models.ChannelTemp, 43.5, NoiseCriticalAnomaly},

		{"unknown channel passes", "spo2", 97, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter := NewArtifactFilter()
			data := point(tt.channel, tt.value)

			got := filter.Process(data)
			if got != tt.want {
				t.Fatalf("Process(%s=%v) = %q, expected %q", tt.channel, tt.value, got, tt.want)
			}

			if tt.want == "" {
				if data.Value != tt.value && !math.IsNaN(tt.value) {
					t.Errorf("clean value mutated: got %v, expected %v", data.Value, tt.value)
				}
			} else if data.Value != -1 {
				t.Errorf("rejected value = %v, expected -1", data.Value)
			}
		})
	}
}

// TestArtifactFilterMotionJumps checks the jump thresholds between adjacent
// samples. The accelerometer is never jump-filtered because sudden motion is
// exactly the signal a seizure forecaster needs.
func TestArtifactFilterMotionJumps(t *testing.T) {
	tests := []struct {
		name    string
		channel string
		warmup  []float64
		value   float64
		want    string
	}{
		{"hr jump over 50", models.ChannelHR, []float64{70, 72, 71}, 130, NoiseMotionArtifact},
		{"hr jump under 50", models.ChannelHR, []float64{70, 72, 71}, 110, ""},
		{"eda contact artifact", models.ChannelEDA, []float64{5.0, 5.2, 5.1}, 11.0, NoiseMotionArtifact},
		{"eda smooth rise", models.ChannelEDA, []float64{5.0, 5.2, 5.1}, 7.0, ""},
		{"temp jump over 1 degree", models.ChannelTemp, []float64{33.0, 33.1, 33.2}, 34.5, NoiseMotionArtifact},
		{"temp slow drift", models.ChannelTemp, []float64{33.0, 33.1, 33.2}, 33.9, ""},
		{"acc spike is signal", models.ChannelACCX, []float64{0.1, 0.2, 0.1}, 15.0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter := NewArtifactFilter()
			for _, v := range tt.warmup {
				if noise := filter.Process(point(tt.channel, v)); noise != "" {
					t.Fatalf("warmup value %v rejected: %s", v, noise)
				}
			}

			got := filter.Process(point(tt.channel, tt.value))
			if got != tt.want {
				t.Fatalf("Process(%s=%v after %v) = %q, expected %q",
					tt.channel, tt.value, tt.warmup, got, tt.want)
			}
		})
	}
}

// TestArtifactFilterHRTrendOutlier checks the 4-sigma heart rate rule:
// it fires only with at least 5 recent values and meaningful variance.
func TestArtifactFilterHRTrendOutlier(t *testing.T) {
	// Mean 64, sample std ~4.18: 85 is a 5-sigma outlier but only a +25 jump.
	filter := NewArtifactFilter()
	for _, v := range []float64{60, 65, 70, 65, 60} {
		if noise := filter.Process(point(models.ChannelHR, v)); noise != "" {
			t.Fatalf("warmup value %v rejected: %s", v, noise)
		}
	}
	if got := filter.Process(point(models.ChannelHR, 85)); got != NoiseMotionArtifact {
		t.Errorf("trend outlier = %q, expected %q", got, NoiseMotionArtifact)
	}

	// Flat trend has zero variance: the sigma rule stays disabled and a
	// +40 jump below the hard threshold passes.
	filter = NewArtifactFilter()
	for _, v := range []float64{70, 70, 70, 70, 70} {
		if noise := filter.Process(point(models.ChannelHR, v)); noise != "" {
			t.Fatalf("warmup value %v rejected: %s", v, noise)
		}
	}
	if got := filter.Process(point(models.ChannelHR, 110)); got != "" {
		t.Errorf("jump on flat trend = %q, expected clean", got)
	}
}

// TestArtifactFilterRejectedValuesSkipBuffer verifies that rejected points do
// not poison the trend: after an artifact the next plausible value is clean.
func TestArtifactFilterRejectedValuesSkipBuffer(t *testing.T) {
	filter := NewArtifactFilter()
	for _, v := range []float64{70, 72, 71} {
		filter.Process(point(models.ChannelHR, v))
	}

	if got := filter.Process(point(models.ChannelHR, 130)); got != NoiseMotionArtifact {
		t.Fatalf("spike = %q, expected %q", got, NoiseMotionArtifact)
	}

	// 75 is compared against 71, not against the rejected 130
	if got := filter.Process(point(models.ChannelHR, 75)); got != "" {
		t.Errorf("value after rejected spike = %q, expected clean", got)
	}
}

// TestArtifactFilterDeviceIsolation verifies that trend buffers are kept per
// device and that RemoveDevice resets them.
func TestArtifactFilterDeviceIsolation(t *testing.T) {
	filter := NewArtifactFilter()
	for _, v := range []float64{70, 72, 71} {
		data := point(models.ChannelHR, v)
		data.DeviceID = "EPI-BAND-A"
		filter.Process(data)
	}

	// Fresh device has no trend yet, so no jump check applies
	other := point(models.ChannelHR, 130)
	other.DeviceID = "EPI-BAND-B"
	if got := filter.Process(other); got != "" {
		t.Errorf("first value of another device = %q, expected clean", got)
	}

	// Dropping the device forgets its trend
	filter.RemoveDevice("EPI-BAND-A")
	reset := point(models.ChannelHR, 130)
	reset.DeviceID = "EPI-BAND-A"
	if got := filter.Process(reset); got != "" {
		t.Errorf("value after RemoveDevice = %q, expected clean", got)
	}
}
