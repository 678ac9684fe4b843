package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"EPI_monitor/internal/models"
)

// channelColumns сопоставляет канал браслета с jsonb колонкой сессии
var channelColumns = map[string]string{
	models.ChannelACCX: "acc_x_series",
	models.ChannelACCY: "acc_y_series",
	models.ChannelACCZ: "acc_z_series",
	models.ChannelEDA:  "eda_series",
	models.ChannelHR:   "hr_series",
	models.ChannelTemp: "temp_series",
}

// DataBuffer управляет буферизацией данных для записи в БД
type DataBuffer struct {
	db             *gorm.DB
	sessionBuffers map[uuid.UUID]*SessionDataBuffer
	mu             sync.RWMutex
	ctx            context.Context
	cancel         context.CancelFunc
	wg             sync.WaitGroup
}

// SessionDataBuffer буфер для одной сессии, по слайсу на канал
type SessionDataBuffer struct {
	SessionID uuid.UUID
	Buffers   map[string][]models.SensorPoint
	LastFlush time.Time
	mu        sync.Mutex
}

// NewDataBuffer создает новый буфер данных
func NewDataBuffer(db *gorm.DB) *DataBuffer {
	ctx, cancel := context.WithCancel(context.Background())

	buffer := &DataBuffer{
		db:             db,
		sessionBuffers: make(map[uuid.UUID]*SessionDataBuffer),
		ctx:            ctx,
		cancel:         cancel,
	}

	// Запуск автофлаша
	buffer.wg.Add(1)
	go buffer.autoFlushWorker()

	log.Println("Data Buffer инициализирован")
	return buffer
}

// AddDataPoint добавляет точку данных в буфер канала
func (db *DataBuffer) AddDataPoint(sessionID uuid.UUID, channel string, value, timeSec float64) {
	if _, ok := channelColumns[channel]; !ok {
		return
	}

	db.mu.RLock()
	sessionBuffer, exists := db.sessionBuffers[sessionID]
	db.mu.RUnlock()

	if !exists {
		db.mu.Lock()
		if sessionBuffer, exists = db.sessionBuffers[sessionID]; !exists {
			buffers := make(map[string][]models.SensorPoint, len(models.WearableChannels))
			for _, ch := range models.WearableChannels {
				buffers[ch] = make([]models.SensorPoint, 0, 2048)
			}
			sessionBuffer = &SessionDataBuffer{
				SessionID: sessionID,
				Buffers:   buffers,
				LastFlush: time.Now(),
			}
			db.sessionBuffers[sessionID] = sessionBuffer
		}
		db.mu.Unlock()
	}

	sessionBuffer.mu.Lock()
	defer sessionBuffer.mu.Unlock()

	sessionBuffer.Buffers[channel] = append(sessionBuffer.Buffers[channel], models.SensorPoint{
		T: timeSec,
		V: value,
	})

	totalPoints := 0
	for _, points := range sessionBuffer.Buffers {
		totalPoints += len(points)
	}
	timeSinceFlush := time.Since(sessionBuffer.LastFlush)

	// При 32 Гц на 6 каналах порог срабатывает примерно раз в 5 секунд
	if totalPoints >= 1000 || timeSinceFlush > 30*time.Second {
		go db.flushSessionAsync(sessionID)
	}
}

// FlushAll флашит все буферы
func (db *DataBuffer) FlushAll() {
	db.mu.RLock()
	var sessionIDs []uuid.UUID
	for sessionID := range db.sessionBuffers {
		sessionIDs = append(sessionIDs, sessionID)
	}
	db.mu.RUnlock()

	for _, sessionID := range sessionIDs {
		db.flushSessionAsync(sessionID)
	}
}

// flushSessionAsync асинхронно флашит буфер сессии
func (db *DataBuffer) flushSessionAsync(sessionID uuid.UUID) {
	db.mu.RLock()
	sessionBuffer, exists := db.sessionBuffers[sessionID]
	db.mu.RUnlock()

	if !exists {
		return
	}

	sessionBuffer.mu.Lock()

	// Копируем данные для флаша и очищаем буферы
	snapshot := make(map[string][]models.SensorPoint, len(sessionBuffer.Buffers))
	total := 0
	for channel, points := range sessionBuffer.Buffers {
		if len(points) == 0 {
			continue
		}
		cp := make([]models.SensorPoint, len(points))
		copy(cp, points)
		snapshot[channel] = cp
		total += len(cp)
		sessionBuffer.Buffers[channel] = points[:0]
	}
	sessionBuffer.LastFlush = time.Now()

	sessionBuffer.mu.Unlock()

	if total == 0 {
		return
	}

	// Записываем в БД
	if err := db.writeToDatabase(sessionID, snapshot); err != nil {
		log.Printf("❌ Ошибка записи в БД для сессии %s: %v", sessionID, err)
	} else {
		log.Printf("💾 Записано в БД: сессия %s, %d точек по %d каналам",
			sessionID, total, len(snapshot))
	}
}

// writeToDatabase дописывает точки к jsonb рядам сессии одним UPDATE
func (db *DataBuffer) writeToDatabase(sessionID uuid.UUID, snapshot map[string][]models.SensorPoint) error {
	updates := make(map[string]interface{})

	for channel, points := range snapshot {
		column := channelColumns[channel]
		pointsJSON, _ := json.Marshal(points)
		lastTimeStr := strconv.FormatFloat(points[len(points)-1].T, 'f', -1, 64)

		expr := fmt.Sprintf(
			`jsonb_set(
       jsonb_set(
         jsonb_set(%s,
           '{points}', COALESCE(%s->'points','[]'::jsonb) || ?::jsonb),
         '{count}', (COALESCE((%s->>'count')::int, 0) + ?)::text::jsonb),
       '{last_time}', ?::text::jsonb)`,
			column, column, column,
		)

		updates[column] = gorm.Expr(expr, string(pointsJSON), len(points), lastTimeStr)
	}

	return db.db.Model(&models.WearableSession{}).
		Where("id = ?", sessionID).
		Updates(updates).Error
}

// RemoveSessionBuffer удаляет буфер завершенной сессии.
// Флаш выполняется синхронно, иначе хвост данных может потеряться.
func (db *DataBuffer) RemoveSessionBuffer(sessionID uuid.UUID) {
	db.flushSessionAsync(sessionID)

	db.mu.Lock()
	defer db.mu.Unlock()

	if _, exists := db.sessionBuffers[sessionID]; exists {
		delete(db.sessionBuffers, sessionID)
		log.Printf("Удален буфер сессии: %s", sessionID)
	}
}

// autoFlushWorker периодически флашит старые буферы
func (db *DataBuffer) autoFlushWorker() {
	defer db.wg.Done()

	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			db.flushOldBuffers()
		case <-db.ctx.Done():
			db.finalFlush()
			log.Println("Auto flush worker остановлен")
			return
		}
	}
}

// flushOldBuffers флашит буферы, которые давно не флашились
func (db *DataBuffer) flushOldBuffers() {
	db.mu.RLock()
	var sessionsToFlush []uuid.UUID

	for sessionID, sessionBuffer := range db.sessionBuffers {
		if time.Since(sessionBuffer.LastFlush) > 15*time.Second {
			sessionsToFlush = append(sessionsToFlush, sessionID)
		}
	}
	db.mu.RUnlock()

	for _, sessionID := range sessionsToFlush {
		go db.flushSessionAsync(sessionID)
	}
}

// finalFlush финальный флаш при остановке
func (db *DataBuffer) finalFlush() {
	log.Println("🔄 Финальный флаш буферов...")

	db.mu.RLock()
	var sessionIDs []uuid.UUID
	for sessionID := range db.sessionBuffers {
		sessionIDs = append(sessionIDs, sessionID)
	}
	db.mu.RUnlock()

	for _, sessionID := range sessionIDs {
		db.flushSessionAsync(sessionID)
	}

	// Ждем завершения всех операций
	time.Sleep(2 * time.Second)
	log.Println("Финальный флаш завершен")
}

// Stop останавливает буфер
func (db *DataBuffer) Stop() {
	log.Println("Остановка Data Buffer...")
	db.cancel()
	db.wg.Wait()
	log.Println("Data Buffer остановлен")
}
