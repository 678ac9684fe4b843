package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"EPI_monitor/internal/models"
)

// SessionManager управляет жизненным циклом сессий мониторинга браслета
type SessionManager struct {
	db             *gorm.DB
	activeSessions map[string]*models.WearableSession
	sessionsLock   sync.RWMutex
	dataBuffer     *DataBuffer

	// Callbacks для уведомления о событиях сессий
	onSessionStart func(session *models.WearableSession)
	onSessionStop  func(session *models.WearableSession)
}

// NewSessionManager создает новый менеджер сессий
func NewSessionManager(db *gorm.DB, dataBuffer *DataBuffer) *SessionManager {
	manager := &SessionManager{
		db:             db,
		activeSessions: make(map[string]*models.WearableSession),
		dataBuffer:     dataBuffer,
	}

	log.Println("Session Manager инициализирован")
	return manager
}

// SetCallbacks устанавливает колбэки для событий сессий
func (sm *SessionManager) SetCallbacks(onStart, onStop func(session *models.WearableSession)) {
	sm.onSessionStart = onStart
	sm.onSessionStop = onStop
}

// emptySeries возвращает инициализированный пустой ряд.
// Колонки никогда не бывают NULL, иначе jsonb_set в буфере вернет NULL.
func emptySeries() models.SensorSeries {
	return models.SensorSeries{
		Points:   []models.SensorPoint{},
		Count:    0,
		LastTime: 0,
	}
}

// StartSession создает и запускает новую сессию мониторинга
func (sm *SessionManager) StartSession(patientID uuid.UUID, deviceID string, sampleRate float64) (*models.WearableSession, error) {
	sm.sessionsLock.Lock()
	defer sm.sessionsLock.Unlock()

	// Проверяем, нет ли уже активной сессии для этого устройства
	if existing := sm.activeSessions[deviceID]; existing != nil {
		return nil, fmt.Errorf("активная сессия уже существует для устройства %s", deviceID)
	}

	// Создаем новую сессию
	session := &models.WearableSession{
		ID:            uuid.New(),
		PatientID:     patientID,
		DeviceID:      deviceID,
		StartTime:     time.Now().UTC(),
		SampleRate:    sampleRate,
		AccXSeries:    emptySeries(),
		AccYSeries:    emptySeries(),
		AccZSeries:    emptySeries(),
		EDASeries:     emptySeries(),
		HRSeries:      emptySeries(),
		TempSeries:    emptySeries(),
		SeizureEvents: []models.SeizureEvent{},
	}

	// Сохраняем в БД
	if err := sm.db.Create(session).Error; err != nil {
		return nil, fmt.Errorf("не удалось создать сессию в БД: %w", err)
	}

	// Добавляем в активные сессии
	sm.activeSessions[deviceID] = session

	// Уведомляем о начале сессии
	if sm.onSessionStart != nil {
		sm.onSessionStart(session)
	}

	log.Printf("Запущена сессия %s для устройства %s, пациент %s",
		session.ID.String(), deviceID, patientID.String())

	return session, nil
}

// StopSession завершает активную сессию
func (sm *SessionManager) StopSession(sessionID uuid.UUID) (*models.WearableSession, error) {
	sm.sessionsLock.Lock()
	defer sm.sessionsLock.Unlock()

	// Ищем активную сессию
	var targetDeviceID string
	var targetSession *models.WearableSession

	for deviceID, session := range sm.activeSessions {
		if session.ID == sessionID {
			targetDeviceID = deviceID
			targetSession = session
			break
		}
	}

	if targetSession == nil {
		return nil, fmt.Errorf("активная сессия %s не найдена", sessionID.String())
	}

	// Устанавливаем время завершения
	now := time.Now().UTC()
	targetSession.EndTime = &now

	// Обновляем в БД
	if err := sm.db.Model(targetSession).Update("end_time", now).Error; err != nil {
		return nil, fmt.Errorf("не удалось обновить сессию в БД: %w", err)
	}

	// Удаляем из активных сессий
	delete(sm.activeSessions, targetDeviceID)

	// Очищаем буфер данных для этой сессии
	sm.dataBuffer.RemoveSessionBuffer(sessionID)

	// Уведомляем о завершении сессии
	if sm.onSessionStop != nil {
		sm.onSessionStop(targetSession)
	}

	log.Printf("✅ Завершена сессия %s для устройства %s", sessionID.String(), targetDeviceID)
	return targetSession, nil
}

// AddSeizureEvent дописывает отметку приступа к jsonb массиву сессии
func (sm *SessionManager) AddSeizureEvent(sessionID uuid.UUID, event models.SeizureEvent) error {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}

	eventJSON, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("не удалось сериализовать событие: %w", err)
	}

	err = sm.db.Model(&models.WearableSession{}).
		Where("id = ?", sessionID).
		Update("seizure_events",
			gorm.Expr(`COALESCE(seizure_events, '[]'::jsonb) || ?::jsonb`, string(eventJSON))).Error
	if err != nil {
		return fmt.Errorf("не удалось записать событие в БД: %w", err)
	}

	log.Printf("⚡ Отметка приступа для сессии %s: t=%.1f..%.1f, источник=%s",
		sessionID.String(), event.StartTime, event.EndTime, event.Source)
	return nil
}

// GetActiveSession возвращает активную сессию для устройства
func (sm *SessionManager) GetActiveSession(deviceID string) *models.WearableSession {
	sm.sessionsLock.RLock()
	defer sm.sessionsLock.RUnlock()
	return sm.activeSessions[deviceID]
}

// GetAllActiveSessions возвращает все активные сессии
func (sm *SessionManager) GetAllActiveSessions() []*models.WearableSession {
	sm.sessionsLock.RLock()
	defer sm.sessionsLock.RUnlock()

	sessions := make([]*models.WearableSession, 0, len(sm.activeSessions))
	for _, session := range sm.activeSessions {
		sessions = append(sessions, session)
	}

	return sessions
}

// GetActiveSessionCount возвращает количество активных сессий
func (sm *SessionManager) GetActiveSessionCount() int {
	sm.sessionsLock.RLock()
	defer sm.sessionsLock.RUnlock()
	return len(sm.activeSessions)
}

// GetSession получает сессию из БД по ID
func (sm *SessionManager) GetSession(sessionID uuid.UUID) (*models.WearableSession, error) {
	var session models.WearableSession
	if err := sm.db.First(&session, "id = ?", sessionID).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

// GetSessionsByPatientID получает все сессии пациента
func (sm *SessionManager) GetSessionsByPatientID(patientID uuid.UUID) ([]*models.WearableSession, error) {
	var sessions []*models.WearableSession
	if err := sm.db.Where("patient_id = ?", patientID).
		Order("start_time DESC").
		Find(&sessions).Error; err != nil {
		return nil, err
	}
	return sessions, nil
}

// GetAllDevices возвращает список всех устройств из БД
func (sm *SessionManager) GetAllDevices() []string {
	var devices []string
	sm.db.Model(&models.WearableSession{}).
		Distinct("device_id").
		Pluck("device_id", &devices)
	return devices
}

// GetSessionStatistics возвращает статистику сессий
func (sm *SessionManager) GetSessionStatistics() map[string]interface{} {
	stats := make(map[string]interface{})

	// Активные сессии
	activeSessions := sm.GetAllActiveSessions()
	stats["active_sessions_count"] = len(activeSessions)

	// Статистика по устройствам
	deviceStats := make(map[string]interface{})
	for _, session := range activeSessions {
		duration := time.Since(session.StartTime).Seconds()
		deviceStats[session.DeviceID] = map[string]interface{}{
			"session_id":  session.ID.String(),
			"start_time":  session.StartTime,
			"duration":    duration,
			"patient_id":  session.PatientID.String(),
			"sample_rate": session.SampleRate,
		}
	}
	stats["devices"] = deviceStats

	// Общее количество сессий в БД
	var totalSessions int64
	sm.db.Model(&models.WearableSession{}).Count(&totalSessions)
	stats["total_sessions"] = totalSessions

	return stats
}

// CleanupInactiveSessions проверяет и очищает зависшие сессии
func (sm *SessionManager) CleanupInactiveSessions() {
	sm.sessionsLock.Lock()
	defer sm.sessionsLock.Unlock()

	var sessionsToRemove []string
	threshold := time.Now().Add(-24 * time.Hour)

	for deviceID, session := range sm.activeSessions {
		if session.StartTime.Before(threshold) {
			now := time.Now().UTC()
			session.EndTime = &now
			sm.db.Model(session).Update("end_time", now)

			if sm.onSessionStop != nil {
				sm.onSessionStop(session)
			}

			sessionsToRemove = append(sessionsToRemove, deviceID)
			log.Printf("Принудительно завершена зависшая сессия: %s", session.ID.String())
		}
	}

	// Удаляем зависшие сессии
	for _, deviceID := range sessionsToRemove {
		delete(sm.activeSessions, deviceID)
	}

	if len(sessionsToRemove) > 0 {
		log.Printf("Очищено %d зависших сессий", len(sessionsToRemove))
	}
}
