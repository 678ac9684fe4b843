package features

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/dsp/fourier"

	"EPI_monitor/internal/pipeline"
)

// PSDEstimate односторонняя оценка спектральной плотности мощности
type PSDEstimate struct {
	Frequencies []float64 `json:"frequencies"` // Гц
	Power       []float64 `json:"power"`
}

// WelchPSD оценивает спектральную плотность мощности методом Уэлча.
// Сигнал режется на сегменты длиной nperseg с перекрытием 50%, каждый
// сегмент центрируется, взвешивается окном Ханна и преобразуется
// вещественным FFT; периодограммы сегментов усредняются. Нормировка
// соответствует плотности мощности (на Гц), спектр односторонний.
func WelchPSD(signal []float64, fs float64, nperseg int) (PSDEstimate, error) {
	if fs <= 0 {
		return PSDEstimate{}, fmt.Errorf("%w: частота дискретизации должна быть положительной, получено %g", pipeline.ErrConfiguration, fs)
	}
	if nperseg < 2 {
		return PSDEstimate{}, fmt.Errorf("%w: длина сегмента должна быть не меньше 2, получено %d", pipeline.ErrConfiguration, nperseg)
	}
	if len(signal) < nperseg {
		return PSDEstimate{}, fmt.Errorf("%w: сигнал из %d сэмплов короче сегмента спектральной оценки %d", pipeline.ErrInsufficientData, len(signal), nperseg)
	}

	noverlap := nperseg / 2
	step := nperseg - noverlap

	window := hannWindow(nperseg)
	windowPower := 0.0
	for _, w := range window {
		windowPower += w * w
	}
	scale := 1.0 / (fs * windowPower)

	fft := fourier.NewFFT(nperseg)
	nfreq := nperseg/2 + 1

	power := make([]float64, nfreq)
	segment := make([]float64, nperseg)
	coeffs := make([]complex128, nfreq)
	segments := 0

	for start := 0; start+nperseg <= len(signal); start += step {
		copy(segment, signal[start:start+nperseg])

		mean := 0.0
		for _, v := range segment {
			mean += v
		}
		mean /= float64(nperseg)
		for i := range segment {
			segment[i] = (segment[i] - mean) * window[i]
		}

		coeffs = fft.Coefficients(coeffs, segment)
		for k, c := range coeffs {
			p := (real(c)*real(c) + imag(c)*imag(c)) * scale
			if k != 0 && !(nperseg%2 == 0 && k == nfreq-1) {
				p *= 2
			}
			power[k] += p
		}
		segments++
	}

	for k := range power {
		power[k] /= float64(segments)
	}

	freqs := make([]float64, nfreq)
	for k := range freqs {
		freqs[k] = fft.Freq(k) * fs
	}

	return PSDEstimate{Frequencies: freqs, Power: power}, nil
}

// hannWindow возвращает периодическое окно Ханна длины n
func hannWindow(n int) []float64 {
	w := make([]float64, n)
	for i := range w {
		w[i] = 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(n)))
	}
	return w
}
