// configs/config.go
package configs

import (
	"os"
	"strconv"
)

type Config struct {
	Database DatabaseConfig
	App      AppConfig
	MQTT     MQTTConfig
	JWT      JWTConfig
	Pipeline PipelineConfig
	Model    ModelConfig
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
	TimeZone string
}

type AppConfig struct {
	Port     string // HTTP_PORT монитора
	MLPort   string // ML_HTTP_PORT сервиса подготовки данных
	LogLevel string
}

type MQTTConfig struct {
	Broker   string
	ClientID string
	Username string
	Password string
	QoS      int
}

type JWTConfig struct {
	Secret   string
	TTLHours int
}

// PipelineConfig параметры конвейера подготовки данных
type PipelineConfig struct {
	SampleRate     float64 // частота дискретизации каналов, Гц
	WindowSize     int     // сэмплов в окне
	Overlap        float64 // перекрытие окон
	SequenceLength int     // окон в последовательности
	Horizon        int     // горизонт прогноза в окнах
	WelchSegment   int     // длина сегмента оценки Уэлча
	BoundaryPolicy string  // clip_negative | drop_incomplete
	ZeroVariance   string  // unit | error
	TrainSplit     float64 // доля тренировочной части хронологического сплита
	Workers        int     // воркеры параллельного расчета признаков
}

// ModelConfig параметры внешнего классификатора последовательностей
type ModelConfig struct {
	Backend    string // http | onnx
	ServiceURL string // адрес внешнего ML сервиса
	ONNXPath   string // путь к файлу модели
	ONNXLib    string // путь к библиотеке onnxruntime
	TimeoutSec int
	Version    string
}

// LoadConfig загружает конфигурацию из переменных окружения
func LoadConfig() *Config {

	return &Config{
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "epi_user"),
			Password: getEnv("DB_PASSWORD", "epi_password"),
			DBName:   getEnv("DB_NAME", "epi_monitor"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			TimeZone: getEnv("DB_TIMEZONE", "Europe/Moscow"),
		},
		App: AppConfig{
			Port:     getEnv("HTTP_PORT", "8080"),
			MLPort:   getEnv("ML_HTTP_PORT", "8090"),
			LogLevel: getEnv("LOG_LEVEL", "info"),
		},
		MQTT: MQTTConfig{
			Broker:   getEnv("MQTT_BROKER", "tcp://localhost:1883"),
			ClientID: getEnv("MQTT_CLIENT_ID", "epi_monitor_service"),
			Username: getEnv("MQTT_USERNAME", ""),
			Password: getEnv("MQTT_PASSWORD", ""),
			QoS:      getEnvAsInt("MQTT_QOS", 1),
		},
		JWT: JWTConfig{
			Secret:   getEnv("JWT_SECRET", "dev-secret-change-me"),
			TTLHours: getEnvAsInt("JWT_TTL_HOURS", 24),
		},
		Pipeline: PipelineConfig{
			SampleRate:     getEnvAsFloat("SENSOR_SAMPLE_RATE", 32),
			WindowSize:     getEnvAsInt("PIPELINE_WINDOW_SIZE", 1800),
			Overlap:        getEnvAsFloat("PIPELINE_OVERLAP", 0.5),
			SequenceLength: getEnvAsInt("PIPELINE_SEQUENCE_LENGTH", 6),
			Horizon:        getEnvAsInt("PIPELINE_HORIZON", 3),
			WelchSegment:   getEnvAsInt("PIPELINE_WELCH_SEGMENT", 256),
			BoundaryPolicy: getEnv("PIPELINE_BOUNDARY_POLICY", "clip_negative"),
			ZeroVariance:   getEnv("PIPELINE_ZERO_VARIANCE", "unit"),
			TrainSplit:     getEnvAsFloat("PIPELINE_TRAIN_SPLIT", 0.8),
			Workers:        getEnvAsInt("PIPELINE_WORKERS", 4),
		},
		Model: ModelConfig{
			Backend:    getEnv("MODEL_BACKEND", "http"),
			ServiceURL: getEnv("MODEL_SERVICE_URL", "http://localhost:8000"),
			ONNXPath:   getEnv("MODEL_ONNX_PATH", "models/seizure_lstm.onnx"),
			ONNXLib:    getEnv("MODEL_ONNX_LIB", ""),
			TimeoutSec: getEnvAsInt("MODEL_TIMEOUT_SEC", 30),
			Version:    getEnv("MODEL_VERSION", "seizure-v1"),
		},
	}
}

// getEnv получает переменную окружения или возвращает значение по умолчанию
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt получает переменную окружения как int
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsFloat получает переменную окружения как float64
func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
