package pipeline

import (
	"fmt"

	"gonum.org/v1/gonum/stat"
)

// ZeroVariancePolicy определяет обработку признаков с нулевой дисперсией
// на тренировочных данных.
type ZeroVariancePolicy int

const (
	// ZeroVarianceUnit признак центрируется, делитель заменяется на 1.0
	ZeroVarianceUnit ZeroVariancePolicy = iota

	// ZeroVarianceError обучение завершается ошибкой ErrScalerState
	ZeroVarianceError
)

// ParseZeroVariancePolicy разбирает имя политики из конфигурации
func ParseZeroVariancePolicy(name string) (ZeroVariancePolicy, error) {
	switch name {
	case "unit", "":
		return ZeroVarianceUnit, nil
	case "error":
		return ZeroVarianceError, nil
	default:
		return 0, fmt.Errorf("%w: неизвестная политика нулевой дисперсии %q", ErrConfiguration, name)
	}
}

// ScalerState обученные параметры нормализации: среднее и стандартное
// отклонение каждого признака. Заполняется ровно один раз при Fit и дальше
// только читается.
type ScalerState struct {
	Mean []float64 `json:"mean"`
	Std  []float64 `json:"std"`
}

// Features возвращает число признаков, под которое обучено состояние
func (s *ScalerState) Features() int {
	return len(s.Mean)
}

// Clone возвращает глубокую копию состояния
func (s *ScalerState) Clone() *ScalerState {
	mean := make([]float64, len(s.Mean))
	std := make([]float64, len(s.Std))
	copy(mean, s.Mean)
	copy(std, s.Std)
	return &ScalerState{Mean: mean, Std: std}
}

// StandardScaler нормализует признаки по статистикам тренировочной выборки:
// (x - mean) / std по каждому признаку. Состояние обучается один раз и
// применяется одинаково к тренировочным, валидационным и боевым данным.
// Потокобезопасность не гарантируется, одновременные Fit и Transform
// требуют внешней синхронизации.
type StandardScaler struct {
	Policy ZeroVariancePolicy

	state *ScalerState
}

// NewStandardScaler создает необученный нормализатор
func NewStandardScaler(policy ZeroVariancePolicy) *StandardScaler {
	return &StandardScaler{Policy: policy}
}

// NewScalerFromState восстанавливает обученный нормализатор из сохраненного
// состояния
func NewScalerFromState(state *ScalerState, policy ZeroVariancePolicy) (*StandardScaler, error) {
	if state == nil || len(state.Mean) == 0 {
		return nil, fmt.Errorf("%w: пустое состояние нормализатора", ErrScalerState)
	}
	if len(state.Mean) != len(state.Std) {
		return nil, fmt.Errorf("%w: размеры mean (%d) и std (%d) не совпадают", ErrScalerState, len(state.Mean), len(state.Std))
	}
	return &StandardScaler{Policy: policy, state: state.Clone()}, nil
}

// Fitted сообщает, обучен ли нормализатор
func (s *StandardScaler) Fitted() bool {
	return s.state != nil
}

// State возвращает копию обученного состояния
func (s *StandardScaler) State() (*ScalerState, error) {
	if s.state == nil {
		return nil, fmt.Errorf("%w: нормализатор еще не обучен", ErrScalerState)
	}
	return s.state.Clone(), nil
}

// Reset сбрасывает состояние, разрешая повторное обучение
func (s *StandardScaler) Reset() {
	s.state = nil
}

// Fit обучает статистики на тренировочном тензоре. Последовательности
// разворачиваются по оси длины в 2D-представление (строки × признаки),
// статистики считаются по каждому столбцу. Повторный вызов без Reset
// возвращает ErrScalerState.
func (s *StandardScaler) Fit(t *SequenceTensor) error {
	if s.state != nil {
		return fmt.Errorf("%w: нормализатор уже обучен, нужен явный Reset", ErrScalerState)
	}
	if t == nil {
		return fmt.Errorf("%w: тензор отсутствует", ErrConfiguration)
	}
	rows := t.FlatRows()
	if rows < 2 {
		return fmt.Errorf("%w: для обучения нормализатора нужно минимум 2 строки, получено %d", ErrInsufficientData, rows)
	}

	mean := make([]float64, t.Features)
	std := make([]float64, t.Features)
	column := make([]float64, rows)

	for f := 0; f < t.Features; f++ {
		for r := 0; r < rows; r++ {
			column[r] = t.Data[r*t.Features+f]
		}
		mean[f] = stat.Mean(column, nil)
		std[f] = stat.StdDev(column, nil)

		if std[f] == 0 {
			switch s.Policy {
			case ZeroVarianceUnit:
				std[f] = 1.0
			case ZeroVarianceError:
				return fmt.Errorf("%w: нулевая дисперсия признака %d", ErrScalerState, f)
			}
		}
	}

	s.state = &ScalerState{Mean: mean, Std: std}
	return nil
}

// Transform нормализует тензор по обученному состоянию и возвращает новый
// тензор той же формы. Входной тензор не изменяется, порядок
// последовательностей и окон сохраняется.
func (s *StandardScaler) Transform(t *SequenceTensor) (*SequenceTensor, error) {
	if s.state == nil {
		return nil, fmt.Errorf("%w: transform вызван до обучения", ErrScalerState)
	}
	if t == nil {
		return nil, fmt.Errorf("%w: тензор отсутствует", ErrConfiguration)
	}
	if t.Features != s.state.Features() {
		return nil, fmt.Errorf("%w: тензор содержит %d признаков, состояние обучено на %d", ErrScalerState, t.Features, s.state.Features())
	}

	out := t.Clone()
	rows := out.FlatRows()
	for r := 0; r < rows; r++ {
		row := out.FlatRow(r)
		for f := range row {
			row[f] = (row[f] - s.state.Mean[f]) / s.state.Std[f]
		}
	}
	return out, nil
}
