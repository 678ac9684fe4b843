package classifier

import (
	"fmt"
	"runtime"

	ort "github.com/yalue/onnxruntime_go"

	"EPI_monitor/configs"
	"EPI_monitor/internal/pipeline"
)

// ONNXClassifier запускает локальную ONNX модель последовательностей.
// Сессия со входом (1, seq_len, features) создается при первом батче.
type ONNXClassifier struct {
	modelPath string
	version   string

	session  *ort.AdvancedSession
	input    *ort.Tensor[float32]
	output   *ort.Tensor[float32]
	seqLen   int
	features int
}

// NewONNXClassifier создает ONNX адаптер и инициализирует окружение
func NewONNXClassifier(cfg configs.ModelConfig) (*ONNXClassifier, error) {
	libPath := cfg.ONNXLib
	if libPath == "" {
		libPath = "/usr/lib/libonnxruntime.so"
		if runtime.GOOS == "windows" {
			libPath = "onnxruntime.dll"
		} else if runtime.GOOS == "darwin" {
			libPath = "libonnxruntime.dylib"
		}
	}
	ort.SetSharedLibraryPath(libPath)

	// Повторная инициализация в одном процессе возвращает ошибку, игнорируем
	_ = ort.InitializeEnvironment()

	return &ONNXClassifier{
		modelPath: cfg.ONNXPath,
		version:   cfg.Version,
	}, nil
}

// ensureSession создает сессию под форму первого батча
func (c *ONNXClassifier) ensureSession(seqLen, features int) error {
	if c.session != nil {
		if seqLen != c.seqLen || features != c.features {
			return fmt.Errorf("%w: модель загружена для формы (%d, %d), получено (%d, %d)",
				pipeline.ErrConfiguration, c.seqLen, c.features, seqLen, features)
		}
		return nil
	}

	inputShape := ort.NewShape(1, int64(seqLen), int64(features))
	inputData := make([]float32, seqLen*features)
	inputTensor, err := ort.NewTensor(inputShape, inputData)
	if err != nil {
		return fmt.Errorf("failed to create input tensor: %v", err)
	}

	outputShape := ort.NewShape(1, 1)
	outputTensor, err := ort.NewEmptyTensor[float32](outputShape)
	if err != nil {
		inputTensor.Destroy()
		return fmt.Errorf("failed to create output tensor: %v", err)
	}

	session, err := ort.NewAdvancedSession(c.modelPath,
		[]string{"input"}, []string{"output"},
		[]ort.Value{inputTensor}, []ort.Value{outputTensor}, nil)

	if err != nil {
		inputTensor.Destroy()
		outputTensor.Destroy()
		return fmt.Errorf("failed to create session: %v", err)
	}

	c.session = session
	c.input = inputTensor
	c.output = outputTensor
	c.seqLen = seqLen
	c.features = features
	return nil
}

// PredictBatch прогоняет последовательности через модель по одной
func (c *ONNXClassifier) PredictBatch(t *pipeline.SequenceTensor) ([]float64, error) {
	if t.Sequences == 0 {
		return []float64{}, nil
	}

	if err := c.ensureSession(t.SeqLen, t.Features); err != nil {
		return nil, err
	}

	scores := make([]float64, t.Sequences)
	data := c.input.GetData()

	for s := 0; s < t.Sequences; s++ {
		sequence := t.Sequence(s)
		for i, v := range sequence {
			data[i] = float32(v)
		}

		if err := c.session.Run(); err != nil {
			return nil, fmt.Errorf("inference failed: %v", err)
		}

		scores[s] = float64(c.output.GetData()[0])
	}

	return scores, nil
}

// Version возвращает версию модели
func (c *ONNXClassifier) Version() string {
	return c.version
}

// Close освобождает тензоры и сессию
func (c *ONNXClassifier) Close() error {
	if c.session != nil {
		c.session.Destroy()
	}
	if c.input != nil {
		c.input.Destroy()
	}
	if c.output != nil {
		c.output.Destroy()
	}
	return nil
}
