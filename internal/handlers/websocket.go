package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// StreamMessage одна точка данных в WebSocket стриме
type StreamMessage struct {
	DeviceID string  `json:"device_id"`
	Channel  string  `json:"channel"`
	Value    float64 `json:"value"`
	TimeSec  float64 `json:"time_sec"`
	Noise    string  `json:"noise,omitempty"`
}

// wsSubscriber один подключенный WebSocket клиент с фильтрами
type wsSubscriber struct {
	conn     *websocket.Conn
	send     chan StreamMessage
	devices  map[string]bool
	channels map[string]bool
}

// WSStreamer рассылает поток сенсорных данных WebSocket клиентам
type WSStreamer struct {
	subscribers map[string]*wsSubscriber
	mu          sync.RWMutex
}

// NewWSStreamer создание нового стримера
func NewWSStreamer() *WSStreamer {
	return &WSStreamer{
		subscribers: make(map[string]*wsSubscriber),
	}
}

// HandleStream апгрейдит HTTP соединение и подписывает клиента на стрим.
// Фильтры задаются query параметрами: ?devices=EPI-001,EPI-002&channels=hr,eda
func (s *WSStreamer) HandleStream(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("❌ Ошибка апгрейда WebSocket: %v", err)
		return
	}

	clientID := fmt.Sprintf("client_%d", time.Now().UnixNano())

	sub := &wsSubscriber{
		conn:     conn,
		send:     make(chan StreamMessage, 1000),
		devices:  parseFilterParam(c.Query("devices")),
		channels: parseFilterParam(c.Query("channels")),
	}

	s.mu.Lock()
	s.subscribers[clientID] = sub
	s.mu.Unlock()

	log.Printf("🌊 Новый стриминг клиент: %s, устройства: %v, каналы: %v",
		clientID, c.Query("devices"), c.Query("channels"))

	// Писатель: отправляет данные клиенту
	go func() {
		for msg := range sub.send {
			if err := conn.WriteJSON(msg); err != nil {
				log.Printf("❌ Ошибка отправки данных клиенту %s: %v", clientID, err)
				s.removeSubscriber(clientID)
				return
			}
		}
	}()

	// Читатель: держит соединение и ловит закрытие со стороны клиента
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			s.removeSubscriber(clientID)
			log.Printf("🔌 Клиент отключен: %s", clientID)
			return
		}
	}
}

// parseFilterParam разбирает список значений из query параметра
func parseFilterParam(raw string) map[string]bool {
	filter := make(map[string]bool)
	if raw == "" {
		return filter
	}
	for _, v := range strings.Split(raw, ",") {
		if v = strings.TrimSpace(v); v != "" {
			filter[v] = true
		}
	}
	return filter
}

// shouldSend проверяет, нужно ли отправлять данные клиенту
func (sub *wsSubscriber) shouldSend(msg StreamMessage) bool {
	// Пустой фильтр означает "все"
	if len(sub.devices) > 0 && !sub.devices[msg.DeviceID] {
		return false
	}
	if len(sub.channels) > 0 && !sub.channels[msg.Channel] {
		return false
	}
	return true
}

// Broadcast рассылка точки данных всем подписчикам
func (s *WSStreamer) Broadcast(msg StreamMessage) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for clientID, sub := range s.subscribers {
		if !sub.shouldSend(msg) {
			continue
		}

		select {
		case sub.send <- msg:
			// Данные отправлены
		default:
			// Канал заполнен, пропускаем
			log.Printf("⚠️ Канал клиента %s переполнен, пропускаем данные", clientID)
		}
	}
}

// SubscriberCount возвращает число подключенных клиентов
func (s *WSStreamer) SubscriberCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.subscribers)
}

// removeSubscriber отписывает клиента и закрывает его соединение
func (s *WSStreamer) removeSubscriber(clientID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sub, exists := s.subscribers[clientID]; exists {
		delete(s.subscribers, clientID)
		close(sub.send)
		sub.conn.Close()
	}
}

// Stop закрывает все клиентские соединения
func (s *WSStreamer) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for clientID, sub := range s.subscribers {
		close(sub.send)
		sub.conn.Close()
		delete(s.subscribers, clientID)
	}
	log.Println("✅ WebSocket стример остановлен")
}
