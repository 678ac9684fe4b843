package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"EPI_monitor/configs"
	"EPI_monitor/internal/classifier"
	"EPI_monitor/internal/database"
	"EPI_monitor/internal/handlers"
	"EPI_monitor/internal/logging"
	"EPI_monitor/internal/services"
)

func main() {
	logging.InitLogger()

	// Загрузка конфигурации
	cfg := configs.LoadConfig()

	// Подключение к БД (схемой владеет сервис мониторинга)
	db, err := database.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("Ошибка подключения к БД: %v", err)
	}
	defer database.CloseDatabase()

	// Инициализация сервисов
	dataService := services.NewDataService(db)
	datasetService, err := services.NewDatasetService(db, dataService, cfg.Pipeline, cfg.Model.Version)
	if err != nil {
		log.Fatalf("Ошибка конфигурации конвейера: %v", err)
	}

	clf, err := classifier.New(cfg.Model)
	if err != nil {
		log.Fatalf("Ошибка инициализации модели: %v", err)
	}
	defer clf.Close()

	// Инициализация обработчиков
	mlServer := handlers.NewMLAPIServer(datasetService, clf)

	// Настройка роутера
	router := gin.Default()

	// Middleware
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// API endpoints
	api := router.Group("/api/v1")
	{
		api.POST("/ml/prepare", mlServer.PrepareDataset)
		api.POST("/ml/evaluate", mlServer.EvaluateModel)
		api.POST("/ml/predict", mlServer.PredictRisk)
		api.GET("/ml/scaler/:model_version", mlServer.GetScalerState)
		api.GET("/ml/features", mlServer.GetFeatures)
		api.GET("/ml/health", mlServer.Health)
	}

	log.Printf("Запуск ML сервиса на порту %s (модель: %s, бэкенд: %s)",
		cfg.App.MLPort, cfg.Model.Version, cfg.Model.Backend)
	log.Fatal(http.ListenAndServe(":"+cfg.App.MLPort, router))
}
