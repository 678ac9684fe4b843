package classifier

import (
	"fmt"

	"EPI_monitor/configs"
	"EPI_monitor/internal/pipeline"
)

// Classifier вероятностная модель риска приступа над последовательностями
// отмасштабированных признаков. PredictBatch возвращает по одной вероятности
// на последовательность, в том же порядке.
type Classifier interface {
	PredictBatch(t *pipeline.SequenceTensor) ([]float64, error)
	Version() string
	Close() error
}

// New создает классификатор по выбранному в конфигурации бэкенду
func New(cfg configs.ModelConfig) (Classifier, error) {
	switch cfg.Backend {
	case "http":
		return NewHTTPClassifier(cfg), nil
	case "onnx":
		return NewONNXClassifier(cfg)
	default:
		return nil, fmt.Errorf("%w: неизвестный бэкенд модели %q", pipeline.ErrConfiguration, cfg.Backend)
	}
}
