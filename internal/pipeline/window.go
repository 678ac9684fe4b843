package pipeline

import (
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"
)

// WindowConfig параметры нарезки временного ряда на окна
type WindowConfig struct {
	WindowSize int     `json:"window_size"` // длина окна в сэмплах
	Overlap    float64 `json:"overlap"`     // доля перекрытия соседних окон, 0 <= f < 1
}

// Step возвращает шаг между началами соседних окон
func (c WindowConfig) Step() int {
	return int(math.Floor(float64(c.WindowSize) * (1.0 - c.Overlap)))
}

// Validate проверяет параметры нарезки
func (c WindowConfig) Validate() error {
	if c.WindowSize < 1 {
		return fmt.Errorf("%w: размер окна должен быть положительным, получено %d", ErrConfiguration, c.WindowSize)
	}
	if c.Overlap < 0 || c.Overlap >= 1 {
		return fmt.Errorf("%w: перекрытие должно лежать в [0, 1), получено %g", ErrConfiguration, c.Overlap)
	}
	if c.Step() < 1 {
		return fmt.Errorf("%w: шаг окна %d меньше единицы (окно %d, перекрытие %g)", ErrConfiguration, c.Step(), c.WindowSize, c.Overlap)
	}
	return nil
}

// WindowCount возвращает число полных окон в ряду длины n:
// floor((n - W) / step) + 1 при n >= W, иначе 0. Неполные хвостовые
// окна отбрасываются.
func WindowCount(n int, c WindowConfig) int {
	if n < c.WindowSize {
		return 0
	}
	return (n-c.WindowSize)/c.Step() + 1
}

// Extractor вычисляет вектор признаков одного многоканального окна.
// Окно передается как срезы каналов длиной WindowSize в порядке,
// зафиксированном конфигурацией каналов.
type Extractor interface {
	Extract(window [][]float64) ([]float64, error)
	FeatureCount() int
}

// WindowIterator лениво обходит окна многоканального ряда в хронологическом
// порядке. Окна возвращаются как срезы-представления без копирования.
type WindowIterator struct {
	series  [][]float64
	cfg     WindowConfig
	samples int
	current int
	total   int
}

// NewWindowIterator создает итератор окон для ряда каналов одинаковой длины
func NewWindowIterator(series [][]float64, cfg WindowConfig) (*WindowIterator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(series) == 0 {
		return nil, fmt.Errorf("%w: ряд не содержит каналов", ErrConfiguration)
	}
	n := len(series[0])
	for i, ch := range series {
		if len(ch) != n {
			return nil, fmt.Errorf("%w: канал %d имеет длину %d, ожидалось %d", ErrConfiguration, i, len(ch), n)
		}
	}
	return &WindowIterator{
		series:  series,
		cfg:     cfg,
		samples: n,
		total:   WindowCount(n, cfg),
	}, nil
}

// Count возвращает общее число окон
func (it *WindowIterator) Count() int {
	return it.total
}

// HasNext сообщает, остались ли окна
func (it *WindowIterator) HasNext() bool {
	return it.current < it.total
}

// Next возвращает очередное окно как срезы каналов длиной WindowSize
func (it *WindowIterator) Next() ([][]float64, error) {
	if !it.HasNext() {
		return nil, fmt.Errorf("%w: окна закончились", ErrInsufficientData)
	}
	start := it.current * it.cfg.Step()
	window := make([][]float64, len(it.series))
	for i, ch := range it.series {
		window[i] = ch[start : start+it.cfg.WindowSize]
	}
	it.current++
	return window, nil
}

// Reset возвращает итератор к первому окну
func (it *WindowIterator) Reset() {
	it.current = 0
}

// SegmentFeatures нарезает ряд на окна и вычисляет вектор признаков каждого
// окна. Возвращает матрицу признаков, строки которой идут в хронологическом
// порядке окон.
func SegmentFeatures(series [][]float64, cfg WindowConfig, ex Extractor) (*FeatureMatrix, error) {
	it, err := NewWindowIterator(series, cfg)
	if err != nil {
		return nil, err
	}

	matrix, err := NewFeatureMatrix(it.Count(), ex.FeatureCount())
	if err != nil {
		return nil, err
	}

	for w := 0; it.HasNext(); w++ {
		window, err := it.Next()
		if err != nil {
			return nil, err
		}
		vector, err := ex.Extract(window)
		if err != nil {
			return nil, fmt.Errorf("ошибка расчета признаков окна %d: %w", w, err)
		}
		if err := matrix.SetRow(w, vector); err != nil {
			return nil, err
		}
	}
	return matrix, nil
}

// SegmentFeaturesParallel вычисляет признаки окон в пуле воркеров.
// Каждое окно пишется в свою строку матрицы, поэтому хронологический
// порядок строк сохраняется независимо от порядка выполнения.
func SegmentFeaturesParallel(series [][]float64, cfg WindowConfig, ex Extractor, workers int) (*FeatureMatrix, error) {
	it, err := NewWindowIterator(series, cfg)
	if err != nil {
		return nil, err
	}
	if workers < 1 {
		return nil, fmt.Errorf("%w: число воркеров должно быть положительным, получено %d", ErrConfiguration, workers)
	}

	matrix, err := NewFeatureMatrix(it.Count(), ex.FeatureCount())
	if err != nil {
		return nil, err
	}

	step := cfg.Step()
	var g errgroup.Group
	g.SetLimit(workers)

	for w := 0; w < it.Count(); w++ {
		w := w // per-iteration copy: required for correctness on toolchains before Go 1.22
		g.Go(func() error {
			start := w * step
			window := make([][]float64, len(series))
			for i, ch := range series {
				window[i] = ch[start : start+cfg.WindowSize]
			}
			vector, err := ex.Extract(window)
			if err != nil {
				return fmt.Errorf("ошибка расчета признаков окна %d: %w", w, err)
			}
			return matrix.SetRow(w, vector)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return matrix, nil
}
