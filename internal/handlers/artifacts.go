package handlers

import (
	"math"
	"sync"

	"EPI_monitor/internal/models"
)

// Причины отбраковки точек
const (
	NoiseInvalidValue    = "INVALID_VALUE"
	NoiseCriticalAnomaly = "CRITICAL_ANOMALY"
	NoiseMotionArtifact  = "MOTION_ARTIFACT"
)

// TrendBuffer буфер для анализа тренда одного канала
type TrendBuffer struct {
	values  []float64
	maxSize int
	channel string
}

// ArtifactFilter фильтрует шум и артефакты по каналам устройств.
// Доступ идет из data worker и из REST обработчика остановки сессии.
type ArtifactFilter struct {
	deviceBuffers map[string]map[string]*TrendBuffer
	mu            sync.Mutex
}

// NewArtifactFilter создает новый фильтр артефактов
func NewArtifactFilter() *ArtifactFilter {
	return &ArtifactFilter{
		deviceBuffers: make(map[string]map[string]*TrendBuffer),
	}
}

// getOrCreateBuffer получает или создает буфер для устройства и канала
func (f *ArtifactFilter) getOrCreateBuffer(deviceID, channel string) *TrendBuffer {
	if f.deviceBuffers[deviceID] == nil {
		f.deviceBuffers[deviceID] = make(map[string]*TrendBuffer)
	}

	if f.deviceBuffers[deviceID][channel] == nil {
		f.deviceBuffers[deviceID][channel] = &TrendBuffer{
			values:  make([]float64, 0, 10),
			maxSize: 10, // храним последние 10 значений
			channel: channel,
		}
	}

	return f.deviceBuffers[deviceID][channel]
}

// Process проверяет точку и заменяет значение на -1 при обнаружении шума.
// Возвращает причину отбраковки или пустую строку для чистых данных.
func (f *ArtifactFilter) Process(data *models.WearableData) string {
	f.mu.Lock()
	defer f.mu.Unlock()

	buffer := f.getOrCreateBuffer(data.DeviceID, data.Channel)

	noiseType := ""

	// 1. Проверка на базовую валидность
	if !isValidValue(data.Value, data.Channel) {
		data.Value = -1
		noiseType = NoiseInvalidValue
	} else if isCriticalAnomaly(data.Value, data.Channel) {
		// 2. Проверка на критические аномалии
		data.Value = -1
		noiseType = NoiseCriticalAnomaly
	} else if buffer.isMotionArtifact(data.Value, data.Channel) {
		// 3. Проверка на артефакты движения (только если значение в принципе валидно)
		data.Value = -1
		noiseType = NoiseMotionArtifact
	}

	// Добавляем значение в буфер (функция сама проверит, не -1 ли это)
	buffer.addValue(data.Value)

	return noiseType
}

// RemoveDevice очищает трендовые буферы устройства после завершения сессии
func (f *ArtifactFilter) RemoveDevice(deviceID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.deviceBuffers, deviceID)
}

// addValue добавляет значение в буфер (пропускаем -1)
func (tb *TrendBuffer) addValue(value float64) {
	// НЕ добавляем -1 в буфер для анализа тренда
	if value == -1 {
		return
	}

	if len(tb.values) >= tb.maxSize {
		// Сдвигаем буфер
		copy(tb.values, tb.values[1:])
		tb.values = tb.values[:tb.maxSize-1]
	}
	tb.values = append(tb.values, value)
}

// isValidValue проверяет физические пределы сенсоров браслета
func isValidValue(value float64, channel string) bool {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return false
	}

	switch channel {
	case models.ChannelACCX, models.ChannelACCY, models.ChannelACCZ:
		// Диапазон акселерометра ±16g с запасом на переходные пики
		return value >= -20 && value <= 20

	case models.ChannelEDA:
		// Проводимость кожи не бывает отрицательной
		return value >= 0 && value <= 120

	case models.ChannelHR:
		// Широкие пределы для пульса
		return value >= 20 && value <= 250

	case models.ChannelTemp:
		// Температура кожи запястья
		return value >= 20 && value <= 45

	default:
		return true
	}
}

// isCriticalAnomaly проверяет ситуации, невозможные физиологически
func isCriticalAnomaly(value float64, channel string) bool {
	switch channel {
	case models.ChannelACCX, models.ChannelACCY, models.ChannelACCZ:
		// Насыщение сенсора за пределами паспортного диапазона
		return value < -16 || value > 16

	case models.ChannelEDA:
		// Ниже порога чувствительности: скорее всего электрод отклеился
		return value < 0.01 || value > 100

	case models.ChannelHR:
		// Только критические случаи
		return value < 25 || value > 220

	case models.ChannelTemp:
		// Датчик не на коже либо перегрев устройства
		return value < 25 || value > 42

	default:
		return false
	}
}

// isMotionArtifact умная проверка на артефакты движения
func (tb *TrendBuffer) isMotionArtifact(newValue float64, channel string) bool {
	if len(tb.values) < 3 {
		return false // Недостаточно данных для анализа
	}

	lastValue := tb.values[len(tb.values)-1]
	jump := math.Abs(newValue - lastValue)

	switch channel {
	case models.ChannelHR:
		// Для пульса: скачок >50 уд/мин между соседними отсчетами считаем артефактом
		if jump > 50 {
			return true
		}

		// Дополнительная проверка: если значение выходит далеко за пределы недавнего тренда
		if len(tb.values) >= 5 {
			recentMean := tb.getRecentMean(5)
			recentStd := tb.getRecentStd(5, recentMean)

			// Если новое значение более чем в 4 стандартных отклонениях от среднего
			if math.Abs(newValue-recentMean) > 4*recentStd && recentStd > 3 {
				return true
			}
		}

	case models.ChannelEDA:
		// Проводимость меняется плавно, мгновенный скачок >5 мкСм - контактный артефакт
		if jump > 5 {
			return true
		}

	case models.ChannelTemp:
		// Температура кожи инерционна, скачок >1°C между отсчетами невозможен
		if jump > 1.0 {
			return true
		}

	default:
		// Для акселерометра резкие скачки - полезный сигнал, не фильтруем
		return false
	}

	return false
}

// getRecentMean вычисляет среднее для последних n значений
func (tb *TrendBuffer) getRecentMean(n int) float64 {
	if len(tb.values) == 0 {
		return 0
	}

	start := len(tb.values) - n
	if start < 0 {
		start = 0
	}

	sum := 0.0
	count := 0
	for i := start; i < len(tb.values); i++ {
		sum += tb.values[i]
		count++
	}

	if count == 0 {
		return 0
	}
	return sum / float64(count)
}

// getRecentStd вычисляет стандартное отклонение
func (tb *TrendBuffer) getRecentStd(n int, mean float64) float64 {
	if len(tb.values) < 2 {
		return 0
	}

	start := len(tb.values) - n
	if start < 0 {
		start = 0
	}

	sum := 0.0
	count := 0
	for i := start; i < len(tb.values); i++ {
		diff := tb.values[i] - mean
		sum += diff * diff
		count++
	}

	if count < 2 {
		return 0
	}
	return math.Sqrt(sum / float64(count-1))
}
