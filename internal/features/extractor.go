package features

import (
	"fmt"

	"EPI_monitor/internal/pipeline"
	"EPI_monitor/pkg/utils"
)

// TimeDomainFeatures статистики канала во временной области
type TimeDomainFeatures struct {
	Mean   float64 `json:"mean"`
	Std    float64 `json:"std"`
	Median float64 `json:"median"`
	Max    float64 `json:"max"`
	Min    float64 `json:"min"`
}

// CalculateTimeDomainFeatures вычисляет статистики канала за окно
func CalculateTimeDomainFeatures(data []float64) TimeDomainFeatures {
	return TimeDomainFeatures{
		Mean:   utils.Mean(data),
		Std:    utils.Std(data),
		Median: utils.Median(data),
		Max:    utils.Max(data),
		Min:    utils.Min(data),
	}
}

// SpectralFeatures частотные признаки канала по оценке Уэлча
type SpectralFeatures struct {
	TotalPower float64 `json:"total_power"` // суммарная мощность спектра
	MeanPower  float64 `json:"mean_power"`  // средняя мощность на бин
	PeakFreq   float64 `json:"peak_freq"`   // частота бина с максимальной мощностью, Гц
}

// CalculateSpectralFeatures вычисляет частотные признаки канала за окно
func CalculateSpectralFeatures(data []float64, fs float64, nperseg int) (SpectralFeatures, error) {
	psd, err := WelchPSD(data, fs, nperseg)
	if err != nil {
		return SpectralFeatures{}, err
	}

	total := utils.Sum(psd.Power)
	return SpectralFeatures{
		TotalPower: total,
		MeanPower:  total / float64(len(psd.Power)),
		PeakFreq:   psd.Frequencies[utils.ArgMax(psd.Power)],
	}, nil
}

// Extractor вычисляет вектор признаков одного многоканального окна.
// Порядок элементов вектора однозначно задается конфигурацией каналов:
// каналы в порядке объявления, внутри канала пять временных статистик,
// затем три частотных признака для частотно-пригодных семейств.
type Extractor struct {
	Config  ChannelConfig
	FS      float64 // частота дискретизации
	Nperseg int     // длина сегмента оценки Уэлча

	names []string
}

// NewExtractor создает экстрактор признаков для конфигурации каналов
func NewExtractor(cfg ChannelConfig, fs float64, nperseg int) (*Extractor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if fs <= 0 {
		return nil, fmt.Errorf("%w: частота дискретизации должна быть положительной, получено %g", pipeline.ErrConfiguration, fs)
	}
	if nperseg < 2 {
		return nil, fmt.Errorf("%w: длина сегмента Уэлча должна быть не меньше 2, получено %d", pipeline.ErrConfiguration, nperseg)
	}
	return &Extractor{
		Config:  cfg,
		FS:      fs,
		Nperseg: nperseg,
		names:   cfg.FeatureNames(),
	}, nil
}

// FeatureCount возвращает длину вектора признаков
func (e *Extractor) FeatureCount() int {
	return len(e.names)
}

// FeatureNames возвращает имена признаков в порядке вектора
func (e *Extractor) FeatureNames() []string {
	names := make([]string, len(e.names))
	copy(names, e.names)
	return names
}

// Extract вычисляет вектор признаков окна. Окно передается как срезы
// каналов в порядке конфигурации, все каналы одной длины.
func (e *Extractor) Extract(window [][]float64) ([]float64, error) {
	if len(window) != len(e.Config) {
		return nil, fmt.Errorf("%w: окно содержит %d каналов, конфигурация объявляет %d", pipeline.ErrConfiguration, len(window), len(e.Config))
	}

	vector := make([]float64, 0, len(e.names))
	for i, spec := range e.Config {
		data := window[i]
		if len(data) == 0 {
			return nil, fmt.Errorf("%w: канал %s пуст", pipeline.ErrInsufficientData, spec.Name())
		}

		td := CalculateTimeDomainFeatures(data)
		vector = append(vector,
			utils.SafeFloat(td.Mean),
			utils.SafeFloat(td.Std),
			utils.SafeFloat(td.Median),
			utils.SafeFloat(td.Max),
			utils.SafeFloat(td.Min),
		)

		if spec.Spectral {
			sp, err := CalculateSpectralFeatures(data, e.FS, e.Nperseg)
			if err != nil {
				return nil, fmt.Errorf("ошибка спектральной оценки канала %s: %w", spec.Name(), err)
			}
			vector = append(vector,
				utils.SafeFloat(sp.TotalPower),
				utils.SafeFloat(sp.MeanPower),
				utils.SafeFloat(sp.PeakFreq),
			)
		}
	}
	return vector, nil
}
