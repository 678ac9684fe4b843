// internal/database/migrations.go
package database

import (
	"fmt"
	"log"

	"EPI_monitor/internal/models"

	"gorm.io/gorm"
)

// RunMigrations выполняет миграции базы данных
func RunMigrations(db *gorm.DB) error {
	log.Println("🔄 Запуск миграций базы данных...")

	// Автоматические миграции GORM
	err := db.AutoMigrate(
		&models.WearableSession{},
		&models.User{},
		&models.ScalerRecord{},
	)

	if err != nil {
		return fmt.Errorf("ошибка миграции: %w", err)
	}

	// Создаем индексы для оптимизации запросов
	if err := createIndexes(db); err != nil {
		return fmt.Errorf("ошибка создания индексов: %w", err)
	}

	log.Println("✅ Миграции выполнены успешно")
	return nil
}

// createIndexes создает дополнительные индексы
func createIndexes(db *gorm.DB) error {
	// Составные индексы для быстрого поиска
	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_epi_sessions_device_active ON epi_sessions(device_id, end_time) WHERE end_time IS NULL",
		"CREATE INDEX IF NOT EXISTS idx_epi_sessions_start_time_desc ON epi_sessions(start_time DESC)",
		"CREATE INDEX IF NOT EXISTS idx_epi_sessions_patient_device ON epi_sessions(patient_id, device_id)",

		// GIN индексы для JSONB полей (для быстрых запросов по содержимому)
		"CREATE INDEX IF NOT EXISTS idx_epi_sessions_events_gin ON epi_sessions USING GIN (seizure_events)",
		"CREATE INDEX IF NOT EXISTS idx_epi_sessions_eda_gin ON epi_sessions USING GIN (eda_series)",
		"CREATE INDEX IF NOT EXISTS idx_epi_sessions_hr_gin ON epi_sessions USING GIN (hr_series)",

		// Частичные индексы только для активных сессий
		"CREATE INDEX IF NOT EXISTS idx_epi_active_sessions ON epi_sessions(device_id, start_time) WHERE end_time IS NULL",
	}

	for _, indexSQL := range indexes {
		if err := db.Exec(indexSQL).Error; err != nil {
			log.Printf("⚠️ Не удалось создать индекс: %s, ошибка: %v", indexSQL, err)
		} else {
			log.Printf("✅ Индекс создан: %s", indexSQL[:50]+"...")
		}
	}

	return nil
}
