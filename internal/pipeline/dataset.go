package pipeline

import "fmt"

// FeatureMatrix хранит векторы признаков окон в одном непрерывном буфере.
// Строка w занимает Data[w*Features : (w+1)*Features], порядок строк
// совпадает с хронологическим порядком окон.
type FeatureMatrix struct {
	Windows  int       `json:"windows"`
	Features int       `json:"features"`
	Data     []float64 `json:"data"`
}

// NewFeatureMatrix создает матрицу признаков под заданные размеры
func NewFeatureMatrix(windows, features int) (*FeatureMatrix, error) {
	if windows < 0 || features <= 0 {
		return nil, fmt.Errorf("%w: недопустимые размеры матрицы признаков %dx%d", ErrConfiguration, windows, features)
	}
	return &FeatureMatrix{
		Windows:  windows,
		Features: features,
		Data:     make([]float64, windows*features),
	}, nil
}

// Row возвращает срез-представление строки окна w (без копирования)
func (m *FeatureMatrix) Row(w int) []float64 {
	return m.Data[w*m.Features : (w+1)*m.Features]
}

// At возвращает значение признака f окна w
func (m *FeatureMatrix) At(w, f int) float64 {
	return m.Data[w*m.Features+f]
}

// SetRow записывает вектор признаков окна w
func (m *FeatureMatrix) SetRow(w int, row []float64) error {
	if len(row) != m.Features {
		return fmt.Errorf("%w: длина вектора %d не совпадает с числом признаков %d", ErrConfiguration, len(row), m.Features)
	}
	copy(m.Row(w), row)
	return nil
}

// SequenceTensor хранит последовательности окон в одном непрерывном буфере:
// (последовательности × длина × признаки). Элемент (s, w, f) лежит по адресу
// Data[(s*SeqLen+w)*Features + f].
type SequenceTensor struct {
	Sequences int       `json:"sequences"`
	SeqLen    int       `json:"seq_len"`
	Features  int       `json:"features"`
	Data      []float64 `json:"data"`
}

// NewSequenceTensor создает тензор последовательностей под заданные размеры
func NewSequenceTensor(sequences, seqLen, features int) (*SequenceTensor, error) {
	if sequences < 0 || seqLen <= 0 || features <= 0 {
		return nil, fmt.Errorf("%w: недопустимые размеры тензора %dx%dx%d", ErrConfiguration, sequences, seqLen, features)
	}
	return &SequenceTensor{
		Sequences: sequences,
		SeqLen:    seqLen,
		Features:  features,
		Data:      make([]float64, sequences*seqLen*features),
	}, nil
}

// At возвращает значение признака f окна w последовательности s
func (t *SequenceTensor) At(s, w, f int) float64 {
	return t.Data[(s*t.SeqLen+w)*t.Features+f]
}

// Window возвращает срез-представление вектора признаков окна w
// последовательности s (без копирования)
func (t *SequenceTensor) Window(s, w int) []float64 {
	base := (s*t.SeqLen + w) * t.Features
	return t.Data[base : base+t.Features]
}

// Sequence возвращает срез-представление всей последовательности s
// длиной SeqLen*Features (без копирования)
func (t *SequenceTensor) Sequence(s int) []float64 {
	base := s * t.SeqLen * t.Features
	return t.Data[base : base+t.SeqLen*t.Features]
}

// FlatRows возвращает число строк 2D-представления (последовательности × длина)
func (t *SequenceTensor) FlatRows() int {
	return t.Sequences * t.SeqLen
}

// FlatRow возвращает строку r 2D-представления: окно r%SeqLen
// последовательности r/SeqLen
func (t *SequenceTensor) FlatRow(r int) []float64 {
	base := r * t.Features
	return t.Data[base : base+t.Features]
}

// Clone возвращает глубокую копию тензора
func (t *SequenceTensor) Clone() *SequenceTensor {
	data := make([]float64, len(t.Data))
	copy(data, t.Data)
	return &SequenceTensor{
		Sequences: t.Sequences,
		SeqLen:    t.SeqLen,
		Features:  t.Features,
		Data:      data,
	}
}
