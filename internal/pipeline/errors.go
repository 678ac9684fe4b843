package pipeline

import "errors"

// Классы ошибок конвейера подготовки данных. Все ошибки пакета оборачивают
// один из этих классов, чтобы вызывающий код мог различать их через errors.Is.
var (
	// ErrConfiguration некорректные параметры окна, последовательности или данных
	ErrConfiguration = errors.New("некорректная конфигурация конвейера")

	// ErrInsufficientData данных меньше, чем нужно для одного окна или последовательности
	ErrInsufficientData = errors.New("недостаточно данных")

	// ErrScalerState нарушение жизненного цикла нормализатора (transform до fit, повторный fit)
	ErrScalerState = errors.New("некорректное состояние нормализатора")

	// ErrDegenerateLabels в разметке присутствует только один класс
	ErrDegenerateLabels = errors.New("вырожденные метки классов")
)
