package services

import (
	"fmt"
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"EPI_monitor/internal/models"
	"EPI_monitor/internal/pipeline"
)

// DataService отвечает за сборку сырых рядов из сохраненных сессий
type DataService struct {
	db *gorm.DB
}

// NewDataService создает новый сервис для работы с данными
func NewDataService(db *gorm.DB) *DataService {
	return &DataService{db: db}
}

// SessionSeries выровненные ряды одной сессии мониторинга
type SessionSeries struct {
	SessionID  uuid.UUID             `json:"session_id"`
	PatientID  uuid.UUID             `json:"patient_id"`
	SampleRate float64               `json:"sample_rate"`
	Channels   []string              `json:"channels"`
	Series     [][]float64           `json:"-"` // [канал][сэмпл], общая длина
	Events     []models.SeizureEvent `json:"events"`
	Samples    int                   `json:"samples"`
}

// GetSessionSeries загружает сессию и собирает равномерную сетку каналов.
// Маркеры шума -1 отбрасываются, затем все каналы обрезаются до общей длины.
func (ds *DataService) GetSessionSeries(sessionID uuid.UUID) (*SessionSeries, error) {
	log.Printf("Загрузка рядов для сессии %s", sessionID)

	var session models.WearableSession
	if err := ds.db.First(&session, "id = ?", sessionID).Error; err != nil {
		return nil, fmt.Errorf("сессия %s не найдена: %w", sessionID, err)
	}

	channelPoints := [][]models.SensorPoint{
		session.AccXSeries.Points,
		session.AccYSeries.Points,
		session.AccZSeries.Points,
		session.EDASeries.Points,
		session.HRSeries.Points,
		session.TempSeries.Points,
	}

	// Фильтруем маркеры шума по каждому каналу
	series := make([][]float64, len(channelPoints))
	minLen := -1
	for i, points := range channelPoints {
		values := make([]float64, 0, len(points))
		for _, point := range points {
			if point.V != -1.0 {
				values = append(values, point.V)
			}
		}
		log.Printf("Канал %s: отфильтровано %d из %d точек",
			models.WearableChannels[i], len(values), len(points))

		series[i] = values
		if minLen < 0 || len(values) < minLen {
			minLen = len(values)
		}
	}
	if minLen < 0 {
		minLen = 0
	}

	// Обрезаем каналы до общей длины
	for i := range series {
		if len(series[i]) > minLen {
			series[i] = series[i][:minLen]
		}
	}

	sampleRate := session.SampleRate
	if sampleRate <= 0 {
		sampleRate = 32
	}

	log.Printf("Итого: %d каналов по %d сэмплов (%.1f сек при %.0f Гц), событий: %d",
		len(series), minLen, float64(minLen)/sampleRate, sampleRate, len(session.SeizureEvents))

	return &SessionSeries{
		SessionID:  session.ID,
		PatientID:  session.PatientID,
		SampleRate: sampleRate,
		Channels:   models.WearableChannels,
		Series:     series,
		Events:     session.SeizureEvents,
		Samples:    minLen,
	}, nil
}

// DeriveRawLabels переводит отметки приступов в поток меток по индексам окон:
// метка окна 1, если хотя бы одно событие пересекает его временной интервал.
// Окно w покрывает сэмплы [w*step, w*step+W), то есть секунды
// [w*step/fs, (w*step+W)/fs). Событие с неизвестным концом считается точечным.
func DeriveRawLabels(events []models.SeizureEvent, cfg pipeline.WindowConfig, samples int, fs float64) []int {
	count := pipeline.WindowCount(samples, cfg)
	labels := make([]int, count)
	if count == 0 || fs <= 0 {
		return labels
	}

	step := cfg.Step()
	for w := 0; w < count; w++ {
		windowStart := float64(w*step) / fs
		windowEnd := float64(w*step+cfg.WindowSize) / fs

		for _, event := range events {
			eventEnd := event.EndTime
			if eventEnd < event.StartTime {
				eventEnd = event.StartTime
			}
			if event.StartTime < windowEnd && eventEnd >= windowStart {
				labels[w] = 1
				break
			}
		}
	}

	return labels
}
