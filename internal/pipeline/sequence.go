package pipeline

import "fmt"

// BoundaryPolicy определяет обработку последовательностей, у которых окно
// горизонта выходит за конец данных.
type BoundaryPolicy int

const (
	// HorizonClipNegative окно горизонта обрезается по доступным данным;
	// пустое или неполное окно без событий дает метку 0
	HorizonClipNegative BoundaryPolicy = iota

	// HorizonDropIncomplete последовательности с неполным окном горизонта
	// не попадают в выборку
	HorizonDropIncomplete
)

// String возвращает имя политики
func (p BoundaryPolicy) String() string {
	switch p {
	case HorizonClipNegative:
		return "clip_negative"
	case HorizonDropIncomplete:
		return "drop_incomplete"
	default:
		return fmt.Sprintf("boundary(%d)", int(p))
	}
}

// ParseBoundaryPolicy разбирает имя политики из конфигурации
func ParseBoundaryPolicy(name string) (BoundaryPolicy, error) {
	switch name {
	case "clip_negative", "":
		return HorizonClipNegative, nil
	case "drop_incomplete":
		return HorizonDropIncomplete, nil
	default:
		return 0, fmt.Errorf("%w: неизвестная политика границы %q", ErrConfiguration, name)
	}
}

// SequenceConfig параметры сборки последовательностей и разметки
type SequenceConfig struct {
	SequenceLength int            `json:"sequence_length"` // окон в последовательности
	Horizon        int            `json:"horizon"`         // горизонт прогноза в окнах
	Boundary       BoundaryPolicy `json:"boundary"`
}

// Validate проверяет параметры сборки
func (c SequenceConfig) Validate() error {
	if c.SequenceLength < 1 {
		return fmt.Errorf("%w: длина последовательности должна быть положительной, получено %d", ErrConfiguration, c.SequenceLength)
	}
	if c.Horizon < 0 {
		return fmt.Errorf("%w: горизонт прогноза не может быть отрицательным, получено %d", ErrConfiguration, c.Horizon)
	}
	if c.Boundary != HorizonClipNegative && c.Boundary != HorizonDropIncomplete {
		return fmt.Errorf("%w: неизвестная политика границы %d", ErrConfiguration, int(c.Boundary))
	}
	return nil
}

// BuildSequences группирует последовательные векторы признаков в
// последовательности фиксированной длины и размечает каждую по будущему окну
// сырых меток: метка 1, если в raw_labels[конец : конец+горизонт) есть
// положительное событие. Сырые метки выровнены 1:1 с индексами окон матрицы.
// Порядок последовательностей хронологический, перемешивания нет.
func BuildSequences(features *FeatureMatrix, rawLabels []int, cfg SequenceConfig) (*SequenceTensor, []int, error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	if features == nil {
		return nil, nil, fmt.Errorf("%w: матрица признаков отсутствует", ErrConfiguration)
	}
	if len(rawLabels) != features.Windows {
		return nil, nil, fmt.Errorf("%w: длина потока меток %d не совпадает с числом окон %d", ErrConfiguration, len(rawLabels), features.Windows)
	}

	count := features.Windows - cfg.SequenceLength + 1
	if count < 0 {
		count = 0
	}
	if cfg.Boundary == HorizonDropIncomplete {
		withHorizon := features.Windows - cfg.SequenceLength - cfg.Horizon + 1
		if withHorizon < count {
			count = withHorizon
		}
		if count < 0 {
			count = 0
		}
	}

	tensor, err := NewSequenceTensor(count, cfg.SequenceLength, features.Features)
	if err != nil {
		return nil, nil, err
	}
	labels := make([]int, count)

	for i := 0; i < count; i++ {
		for w := 0; w < cfg.SequenceLength; w++ {
			copy(tensor.Window(i, w), features.Row(i+w))
		}

		end := i + cfg.SequenceLength
		horizonEnd := end + cfg.Horizon
		if horizonEnd > features.Windows {
			horizonEnd = features.Windows
		}
		for j := end; j < horizonEnd; j++ {
			if rawLabels[j] > 0 {
				labels[i] = 1
				break
			}
		}
	}

	return tensor, labels, nil
}
