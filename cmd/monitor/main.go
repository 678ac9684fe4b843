package main

import (
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	_ "github.com/swaggo/files"
	_ "github.com/swaggo/gin-swagger"

	"EPI_monitor/configs"
	_ "EPI_monitor/docs"
	"EPI_monitor/internal/auth"
	"EPI_monitor/internal/database"
	"EPI_monitor/internal/handlers"
	"EPI_monitor/internal/logging"
	"EPI_monitor/internal/middleware"
	"EPI_monitor/internal/models"
	"EPI_monitor/internal/mqttclient"
)

func main() {
	log.Println(" === EPI MONITOR v1.0 (Stream Processing Architecture) ===")

	// 1. Загрузка конфигурации и логгера
	logging.InitLogger()
	cfg := configs.LoadConfig()
	log.Printf("Конфигурация загружена: DB=%s:%s, MQTT=%s",
		cfg.Database.Host, cfg.Database.Port, cfg.MQTT.Broker)

	// 2. Инициализация базы данных
	db, err := database.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("Ошибка инициализации БД: %v", err)
	}
	defer database.CloseDatabase()

	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("Ошибка миграций: %v", err)
	}

	// 3. Создание основных компонентов
	dataBuffer := handlers.NewDataBuffer(db)
	sessionManager := handlers.NewSessionManager(db, dataBuffer)
	wsStreamer := handlers.NewWSStreamer()

	// 4. Создание MQTT Stream Processor
	mqttProcessor := handlers.NewMQTTStreamProcessor(
		sessionManager,
		wsStreamer,
		dataBuffer,
		cfg.Pipeline.SampleRate,
	)

	// Завершение сессии сбрасывает трендовые буферы фильтра устройства
	sessionManager.SetCallbacks(nil, func(session *models.WearableSession) {
		mqttProcessor.ReleaseDevice(session.DeviceID)
	})

	// 5. Инициализация MQTT клиента
	mqttClient, err := mqttclient.InitClient(cfg.MQTT)
	if err != nil {
		log.Fatalf("Ошибка MQTT: %v", err)
	}
	defer mqttClient.Disconnect(250)

	// 6. Подписка на MQTT топики с правильным обработчиком
	messageHandler := func(client mqtt.Client, msg mqtt.Message) {
		mqttProcessor.HandleIncomingMQTT(msg.Topic(), msg.Payload())
	}

	topic := "medical/wearable/+/+" // Подписываемся на все каналы и устройства
	token := mqttClient.Subscribe(topic, byte(cfg.MQTT.QoS), messageHandler)
	if token.Wait() && token.Error() != nil {
		log.Fatalf("Ошибка подписки MQTT: %v", token.Error())
	}

	log.Printf("MQTT клиент подключён к %s, топик: %s",
		cfg.MQTT.Broker, topic)

	// 7. Аутентификация
	jwtService := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.TTLHours)
	jwtMiddleware := middleware.NewJWTMiddleware(jwtService, db)
	authHandlers := handlers.NewAuthHandlers(db, jwtService)

	// 8. Запуск REST API сервера
	restAPI := handlers.NewRESTAPIServer(sessionManager, wsStreamer, mqttProcessor, authHandlers, jwtMiddleware)
	router := restAPI.SetupRoutes()

	go func() {
		log.Printf("REST API Server запущен на :%s", cfg.App.Port)
		if err := http.ListenAndServe(":"+cfg.App.Port, router); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ Ошибка HTTP сервера: %v", err)
		}
	}()

	log.Println("Сервис запущен → Ctrl+C для остановки")
	log.Println("Архитектура потокового процессинга:")
	log.Println("MQTT 🔄 Stream Processor → WebSocket Stream")
	log.Println("MQTT → Stream Processor → Data Buffer → Database")
	log.Println("REST API → Session Manager")

	// 9. Graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	log.Println("Graceful shutdown...")

	// Остановка компонентов в обратном порядке
	mqttProcessor.Stop()
	wsStreamer.Stop()
	dataBuffer.Stop()

	log.Println("Сервис полностью остановлен")
}
