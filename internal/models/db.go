package models

import (
	"time"

	"github.com/google/uuid"

	"EPI_monitor/internal/pipeline"
)

// WearableSession единая таблица для всех данных мониторинга браслета
type WearableSession struct {
	// Основные идентификаторы
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PatientID uuid.UUID `json:"patient_id" gorm:"type:uuid;not null;index"`
	DeviceID  string    `json:"device_id" gorm:"type:varchar(100);not null;index"`

	// Метаданные сессии
	StartTime  time.Time  `json:"start_time" gorm:"not null;index"`
	EndTime    *time.Time `json:"end_time" gorm:"index"` // null пока сессия активна
	SampleRate float64    `json:"sample_rate" gorm:"not null;default:32"`

	// 🔥 Сенсорные ряды как аппендабельные JSONB массивы
	AccXSeries SensorSeries `json:"acc_x_series" gorm:"serializer:json;type:jsonb"` // акселерометр X
	AccYSeries SensorSeries `json:"acc_y_series" gorm:"serializer:json;type:jsonb"` // акселерометр Y
	AccZSeries SensorSeries `json:"acc_z_series" gorm:"serializer:json;type:jsonb"` // акселерометр Z
	EDASeries  SensorSeries `json:"eda_series" gorm:"serializer:json;type:jsonb"`   // электродермальная активность
	HRSeries   SensorSeries `json:"hr_series" gorm:"serializer:json;type:jsonb"`    // пульс
	TempSeries SensorSeries `json:"temp_series" gorm:"serializer:json;type:jsonb"`  // температура кожи

	// Аннотации приступов
	SeizureEvents []SeizureEvent `json:"seizure_events" gorm:"serializer:json;type:jsonb"`

	// Версия модели прогнозирования, закрепленная за сессией
	ModelVersion string `json:"model_version" gorm:"type:varchar(255)"`
}

// SensorSeries оптимизированная структура для аппенда
type SensorSeries struct {
	Points   []SensorPoint `json:"points"`    // Массив точек данных
	LastTime float64       `json:"last_time"` // Последняя временная отметка
	Count    int           `json:"count"`     // Количество точек
}

// SensorPoint одна точка данных
type SensorPoint struct {
	T float64 `json:"t"` // Время в секундах от начала сессии
	V float64 `json:"v"` // Значение
}

// SeizureEvent аннотированный приступ внутри сессии
type SeizureEvent struct {
	ID        uuid.UUID `json:"id"`
	StartTime float64   `json:"start_time"` // секунды от начала сессии
	EndTime   float64   `json:"end_time"`
	Source    string    `json:"source"` // device_button, clinician, review
	Note      string    `json:"note,omitempty"`
}

func (WearableSession) TableName() string {
	return "epi_sessions"
}

// User учетная запись для доступа к API
type User struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Login        string    `json:"login" gorm:"type:varchar(100);uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"type:varchar(255);not null"`
	Role         string    `json:"role" gorm:"type:varchar(50);not null;default:'clinician'"`
	CreatedAt    time.Time `json:"created_at"`
}

func (User) TableName() string {
	return "epi_users"
}

// ScalerRecord сохраненное состояние нормализатора для версии модели
type ScalerRecord struct {
	ID           uuid.UUID            `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ModelVersion string               `json:"model_version" gorm:"type:varchar(255);uniqueIndex;not null"`
	Features     int                  `json:"features" gorm:"not null"`
	State        pipeline.ScalerState `json:"state" gorm:"serializer:json;type:jsonb"`
	CreatedAt    time.Time            `json:"created_at"`
}

func (ScalerRecord) TableName() string {
	return "epi_scaler_states"
}
