package handlers

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"EPI_monitor/internal/models"
)

// MQTTStreamProcessor обрабатывает потоковые данные от MQTT
type MQTTStreamProcessor struct {
	// Компоненты
	sessionManager  *SessionManager
	wsStreamer      *WSStreamer
	dataBuffer      *DataBuffer
	artifactFilter  *ArtifactFilter
	defaultSampleHz float64

	// Каналы для потоковой обработки
	dataChannel chan *models.WearableData
	markChannel chan *models.SeizureMark
	wsChannel   chan StreamMessage

	// Управление
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewMQTTStreamProcessor создает новый процессор потоковых данных
func NewMQTTStreamProcessor(
	sessionManager *SessionManager,
	wsStreamer *WSStreamer,
	dataBuffer *DataBuffer,
	sampleRate float64,
) *MQTTStreamProcessor {
	ctx, cancel := context.WithCancel(context.Background())

	processor := &MQTTStreamProcessor{
		sessionManager:  sessionManager,
		wsStreamer:      wsStreamer,
		dataBuffer:      dataBuffer,
		artifactFilter:  NewArtifactFilter(),
		defaultSampleHz: sampleRate,
		dataChannel:     make(chan *models.WearableData, 1000),
		markChannel:     make(chan *models.SeizureMark, 100),
		wsChannel:       make(chan StreamMessage, 1000),
		ctx:             ctx,
		cancel:          cancel,
	}

	// Запуск воркеров
	processor.wg.Add(3)
	go processor.dataWorker()   // Обработка данных и отметок приступов
	go processor.wsWorker()     // WebSocket стриминг
	go processor.bufferWorker() // Буферизация

	log.Println("🚀 MQTT Stream Processor запущен")
	return processor
}

// HandleIncomingMQTT главный обработчик MQTT сообщений
func (p *MQTTStreamProcessor) HandleIncomingMQTT(topic string, payload []byte) {
	// Парсинг топика: medical/wearable/{channel}/{deviceID}
	parts := strings.Split(topic, "/")
	if len(parts) != 4 {
		log.Printf("⚠️ Неверный формат топика: %s", topic)
		return
	}

	channel := parts[2]
	deviceID := parts[3]

	// Отметки приступов идут отдельным псевдоканалом
	if channel == models.ChannelSeizureEvent {
		var mark models.SeizureMark
		if err := json.Unmarshal(payload, &mark); err != nil {
			log.Printf("❌ Ошибка парсинга отметки приступа: %v", err)
			return
		}
		if mark.DeviceID == "" {
			mark.DeviceID = deviceID
		}

		select {
		case p.markChannel <- &mark:
		default:
			log.Printf("⚠️ Канал отметок переполнен, пропускаем событие")
		}
		return
	}

	// Парсинг JSON
	var data models.WearableData
	if err := json.Unmarshal(payload, &data); err != nil {
		log.Printf("❌ Ошибка парсинга MQTT payload: %v", err)
		return
	}

	// Заполнение из топика, если не указано
	if data.Channel == "" {
		data.Channel = channel
	}
	if data.DeviceID == "" {
		data.DeviceID = deviceID
	}

	if !models.IsSensorChannel(data.Channel) {
		log.Printf("⚠️ Неизвестный канал: %s", data.Channel)
		return
	}

	// Отправляем в канал для обработки
	select {
	case p.dataChannel <- &data:
	default:
		log.Printf("⚠️ Канал данных переполнен, пропускаем сообщение")
	}
}

// dataWorker обрабатывает входящие данные
func (p *MQTTStreamProcessor) dataWorker() {
	defer p.wg.Done()

	for {
		select {
		case data := <-p.dataChannel:
			p.processData(data)
		case mark := <-p.markChannel:
			p.processSeizureMark(mark)
		case <-p.ctx.Done():
			log.Println("🛑 Data worker остановлен")
			return
		}
	}
}

// processData обрабатывает одну точку данных
func (p *MQTTStreamProcessor) processData(data *models.WearableData) {
	// 1. Проверка активной сессии
	session := p.sessionManager.GetActiveSession(data.DeviceID)
	if session == nil {
		// Автоматически создаем сессию с новым пациентом,
		// позже клиницист привязывает сессию к карте через REST
		patientID := uuid.New()
		var err error
		session, err = p.sessionManager.StartSession(patientID, data.DeviceID, p.defaultSampleHz)
		if err != nil {
			log.Printf("❌ Ошибка создания автосессии для %s: %v", data.DeviceID, err)
			return
		}
		log.Printf("✅ Автоматически создана сессия для устройства: %s", data.DeviceID)
	}

	// 2. Фильтрация шума и артефактов, невалидные значения помечаются -1
	noiseType := p.artifactFilter.Process(data)
	if noiseType == NoiseInvalidValue || noiseType == NoiseCriticalAnomaly {
		log.Printf("🚨 Критический шум: канал=%s, устройство=%s, время=%.3f, причина=%s",
			data.Channel, data.DeviceID, data.TimeSec, noiseType)
	}

	// 3. Отправляем в WebSocket стрим немедленно (потоковый режим)
	msg := StreamMessage{
		DeviceID: data.DeviceID,
		Channel:  data.Channel,
		Value:    data.Value, // Включая -1!
		TimeSec:  data.TimeSec,
		Noise:    noiseType,
	}

	select {
	case p.wsChannel <- msg:
	default:
		log.Printf("⚠️ WebSocket канал переполнен для устройства %s", data.DeviceID)
	}

	// 4. Добавляем в буфер для записи в БД
	p.dataBuffer.AddDataPoint(session.ID, data.Channel, data.Value, data.TimeSec)
}

// processSeizureMark записывает отметку приступа в активную сессию
func (p *MQTTStreamProcessor) processSeizureMark(mark *models.SeizureMark) {
	session := p.sessionManager.GetActiveSession(mark.DeviceID)
	if session == nil {
		log.Printf("⚠️ Отметка приступа без активной сессии: устройство %s", mark.DeviceID)
		return
	}

	source := mark.Source
	if source == "" {
		source = "device_button"
	}

	event := models.SeizureEvent{
		ID:        uuid.New(),
		StartTime: mark.StartTime,
		EndTime:   mark.EndTime,
		Source:    source,
		Note:      mark.Note,
	}

	if err := p.sessionManager.AddSeizureEvent(session.ID, event); err != nil {
		log.Printf("❌ Ошибка записи отметки приступа: %v", err)
	}
}

// ReleaseDevice сбрасывает трендовые буферы устройства после завершения сессии
func (p *MQTTStreamProcessor) ReleaseDevice(deviceID string) {
	p.artifactFilter.RemoveDevice(deviceID)
}

// wsWorker отправляет данные в WebSocket стрим
func (p *MQTTStreamProcessor) wsWorker() {
	defer p.wg.Done()

	sent := 0

	for {
		select {
		case msg := <-p.wsChannel:
			p.wsStreamer.Broadcast(msg)

			sent++
			if sent%10000 == 0 {
				log.Printf("📦 Отправлено в стрим: %d точек, клиентов: %d",
					sent, p.wsStreamer.SubscriberCount())
			}

		case <-p.ctx.Done():
			log.Println("🛑 WebSocket worker остановлен")
			return
		}
	}
}

// bufferWorker периодически флашит буфер в БД
func (p *MQTTStreamProcessor) bufferWorker() {
	defer p.wg.Done()

	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			p.dataBuffer.FlushAll()
		case <-p.ctx.Done():
			// Финальный флаш
			p.dataBuffer.FlushAll()
			log.Println("🛑 Buffer worker остановлен")
			return
		}
	}
}

// Stop останавливает процессор
func (p *MQTTStreamProcessor) Stop() {
	log.Println("🛑 Остановка MQTT Stream Processor...")
	p.cancel()
	p.wg.Wait()
	close(p.dataChannel)
	close(p.markChannel)
	close(p.wsChannel)
	log.Println("✅ MQTT Stream Processor остановлен")
}
