package handlers

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"EPI_monitor/internal/middleware"
	"EPI_monitor/internal/models"
)

// @title EPI Monitor API
// @version 1.0
// @description API системы непрерывного мониторинга пациентов с эпилепсией по данным носимого браслета
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url http://www.swagger.io/support
// @contact.email support@swagger.io

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

// @tag.name auth
// @tag.description Регистрация и вход пользователей

// @tag.name sessions
// @tag.description Управление сессиями мониторинга

// @tag.name patients
// @tag.description Сессии пациентов

// @tag.name devices
// @tag.description Состояние носимых устройств

// @tag.name monitoring
// @tag.description Мониторинг состояния сервиса

// RESTAPIServer обрабатывает REST API запросы
type RESTAPIServer struct {
	sessionManager *SessionManager
	wsStreamer     *WSStreamer
	mqttProcessor  *MQTTStreamProcessor
	authHandlers   *AuthHandlers
	jwtMiddleware  *middleware.JWTMiddleware
}

// SessionRequest запрос для создания сессии
// @Description Данные для создания новой сессии мониторинга
type SessionRequest struct {
	PatientID  string  `json:"patient_id" binding:"required" example:"550e8400-e29b-41d4-a716-446655440000"` // UUID пациента
	DeviceID   string  `json:"device_id" binding:"required" example:"EPI-BAND-001"`                          // Идентификатор браслета
	SampleRate float64 `json:"sample_rate" example:"32"`                                                     // Частота дискретизации, Гц
}

// SessionResponse ответ с информацией о сессии
// @Description Информация о сессии мониторинга браслета
type SessionResponse struct {
	SessionID  string     `json:"session_id" example:"550e8400-e29b-41d4-a716-446655440001"` // UUID сессии
	PatientID  string     `json:"patient_id" example:"550e8400-e29b-41d4-a716-446655440000"` // UUID пациента
	DeviceID   string     `json:"device_id" example:"EPI-BAND-001"`                          // Идентификатор устройства
	Status     string     `json:"status" example:"active" enums:"active,stopped"`            // Статус сессии
	StartTime  time.Time  `json:"start_time" example:"2023-09-01T10:00:00Z"`                 // Время начала сессии
	EndTime    *time.Time `json:"end_time,omitempty" example:"2023-09-01T11:30:00Z"`         // Время окончания сессии (если завершена)
	Duration   int        `json:"duration" example:"5400"`                                   // Продолжительность в секундах
	SampleRate float64    `json:"sample_rate" example:"32"`                                  // Частота дискретизации, Гц
}

// SessionDataResponse сенсорные данные сессии
// @Description Данные всех каналов браслета, собранные во время сессии
type SessionDataResponse struct {
	SessionID     string                `json:"session_id" example:"550e8400-e29b-41d4-a716-446655440001"` // UUID сессии
	AccXSeries    models.SensorSeries   `json:"acc_x_series"`                                              // Акселерометр X
	AccYSeries    models.SensorSeries   `json:"acc_y_series"`                                              // Акселерометр Y
	AccZSeries    models.SensorSeries   `json:"acc_z_series"`                                              // Акселерометр Z
	EDASeries     models.SensorSeries   `json:"eda_series"`                                                // Электродермальная активность
	HRSeries      models.SensorSeries   `json:"hr_series"`                                                 // Пульс
	TempSeries    models.SensorSeries   `json:"temp_series"`                                               // Температура кожи
	SeizureEvents []models.SeizureEvent `json:"seizure_events"`                                            // Отметки приступов
	TotalPoints   int                   `json:"total_points" example:"345600"`                             // Общее количество точек данных
}

// SeizureEventRequest отметка приступа через REST
// @Description Аннотация приступа для сессии
type SeizureEventRequest struct {
	StartTime float64 `json:"start_time" binding:"required" example:"1820.5"`           // Начало приступа, секунды от начала сессии
	EndTime   float64 `json:"end_time" example:"1878.0"`                                // Конец приступа (0 если неизвестен)
	Source    string  `json:"source" example:"clinician" enums:"device_button,clinician,review"` // Источник аннотации
	Note      string  `json:"note" example:"тонико-клонический"`                        // Комментарий
}

// PatientSessionsResponse сессии пациента
// @Description Список сессий для конкретного пациента
type PatientSessionsResponse struct {
	PatientID string            `json:"patient_id" example:"550e8400-e29b-41d4-a716-446655440000"` // UUID пациента
	Sessions  []SessionResponse `json:"sessions"`                                                  // Список сессий
	Count     int               `json:"count" example:"5"`                                         // Количество сессий
}

// DevicesResponse список устройств
// @Description Список всех известных браслетов
type DevicesResponse struct {
	Devices []string `json:"devices" example:"EPI-BAND-001,EPI-BAND-002"` // Список идентификаторов устройств
	Count   int      `json:"count" example:"2"`                           // Количество устройств
}

// DeviceStatusResponse статус устройства
// @Description Текущий статус браслета
type DeviceStatusResponse struct {
	DeviceID  string     `json:"device_id" example:"EPI-BAND-001"`                                    // Идентификатор устройства
	Status    string     `json:"status" example:"active" enums:"active,idle"`                         // Статус устройства
	SessionID *string    `json:"session_id,omitempty" example:"550e8400-e29b-41d4-a716-446655440001"` // UUID активной сессии (если есть)
	StartTime *time.Time `json:"start_time,omitempty" example:"2023-09-01T10:00:00Z"`                 // Время начала активной сессии
	Duration  *int       `json:"duration,omitempty" example:"3600"`                                   // Продолжительность активной сессии в секундах
}

// HealthResponse состояние сервиса
// @Description Информация о состоянии и работоспособности сервиса
type HealthResponse struct {
	Status         string    `json:"status" example:"healthy"`                 // Статус сервиса
	Service        string    `json:"service" example:"EPI Monitor"`            // Название сервиса
	Timestamp      time.Time `json:"timestamp" example:"2023-09-01T10:00:00Z"` // Время проверки
	ActiveSessions int       `json:"active_sessions" example:"3"`              // Количество активных сессий
	StreamClients  int       `json:"stream_clients" example:"2"`               // Подключенные WebSocket клиенты
}

// CleanupResponse результат очистки сессий
// @Description Результат операции очистки зависших сессий
type CleanupResponse struct {
	Message        string `json:"message" example:"Очистка сессий выполнена"` // Сообщение о результате
	ActiveSessions int    `json:"active_sessions" example:"2"`                // Количество активных сессий после очистки
}

// ActiveSessionsResponse список активных сессий
// @Description Список всех активных сессий мониторинга
type ActiveSessionsResponse struct {
	Sessions []SessionResponse `json:"sessions"`          // Список активных сессий
	Count    int               `json:"count" example:"3"` // Количество активных сессий
}

// ErrorResponse стандартный ответ об ошибке
// @Description Стандартная структура ответа об ошибке
type ErrorResponse struct {
	Error   string `json:"error" example:"Неверный формат данных"`     // Описание ошибки
	Details string `json:"details,omitempty" example:"field required"` // Дополнительные детали ошибки
}

// SuccessResponse стандартный ответ об успехе
// @Description Стандартная структура успешного ответа
type SuccessResponse struct {
	Message string      `json:"message" example:"Операция выполнена успешно"` // Сообщение об успехе
	Data    interface{} `json:"data,omitempty"`                               // Дополнительные данные
}

// NewRESTAPIServer создает новый REST API сервер
func NewRESTAPIServer(
	sessionManager *SessionManager,
	wsStreamer *WSStreamer,
	mqttProcessor *MQTTStreamProcessor,
	authHandlers *AuthHandlers,
	jwtMiddleware *middleware.JWTMiddleware,
) *RESTAPIServer {
	return &RESTAPIServer{
		sessionManager: sessionManager,
		wsStreamer:     wsStreamer,
		mqttProcessor:  mqttProcessor,
		authHandlers:   authHandlers,
		jwtMiddleware:  jwtMiddleware,
	}
}

// SetupRoutes настраивает маршруты REST API
func (api *RESTAPIServer) SetupRoutes() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	// Middleware
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:80", "*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Swagger UI
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))

	// WebSocket стрим сенсорных данных
	r.GET("/ws/stream", api.wsStreamer.HandleStream)

	// API группа
	api_group := r.Group("/api/v1")

	// === АУТЕНТИФИКАЦИЯ ===
	authGroup := api_group.Group("/auth")
	{
		authGroup.POST("/register", api.authHandlers.Register)
		authGroup.POST("/login", api.authHandlers.Login)
		authGroup.POST("/refresh", api.authHandlers.RefreshToken)
		authGroup.POST("/logout", api.authHandlers.Logout)
		authGroup.GET("/me", api.jwtMiddleware.RequireAuth(), api.authHandlers.GetProfile)
	}

	// === УПРАВЛЕНИЕ СЕССИЯМИ ===
	sessions := api_group.Group("/sessions", api.jwtMiddleware.RequireAuth())
	{
		sessions.POST("/start", api.StartSession)
		sessions.POST("/stop/:session_id", api.StopSession)
		sessions.GET("/active", api.GetActiveSessions)
		sessions.GET("/:session_id", api.GetSession)
		sessions.GET("/:session_id/data", api.GetSessionData)
		sessions.POST("/:session_id/events", api.AddSeizureEvent)
		sessions.GET("/:session_id/events", api.GetSeizureEvents)
	}

	// === ПАЦИЕНТЫ ===
	patients := api_group.Group("/patients", api.jwtMiddleware.RequireAuth())
	{
		patients.GET("/:patient_id/sessions", api.GetPatientSessions)
	}

	// === УСТРОЙСТВА ===
	devices := api_group.Group("/devices", api.jwtMiddleware.RequireAuth())
	{
		devices.GET("/", api.GetDevices)
		devices.GET("/:device_id/status", api.GetDeviceStatus)
	}

	// === МОНИТОРИНГ СЕРВИСА ===
	monitoring := api_group.Group("/monitoring")
	{
		monitoring.GET("/health", api.HealthCheck)
		monitoring.POST("/cleanup", api.jwtMiddleware.RequireAuth(), api.CleanupSessions)
		monitoring.GET("/stats", api.jwtMiddleware.RequireAuth(), api.GetStatistics)
	}

	return r
}

// sessionToResponse собирает DTO сессии
func sessionToResponse(session *models.WearableSession, status string) SessionResponse {
	duration := 0
	if session.EndTime != nil {
		duration = int(session.EndTime.Sub(session.StartTime).Seconds())
	} else {
		duration = int(time.Since(session.StartTime).Seconds())
	}

	return SessionResponse{
		SessionID:  session.ID.String(),
		PatientID:  session.PatientID.String(),
		DeviceID:   session.DeviceID,
		Status:     status,
		StartTime:  session.StartTime,
		EndTime:    session.EndTime,
		Duration:   duration,
		SampleRate: session.SampleRate,
	}
}

// StartSession запускает новую сессию мониторинга
// @Summary Запуск новой сессии мониторинга
// @Description Создает новую сессию мониторинга браслета для указанного пациента и устройства
// @Tags sessions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body SessionRequest true "Данные для создания сессии"
// @Success 200 {object} SuccessResponse{data=SessionResponse} "Сессия успешно запущена"
// @Failure 400 {object} ErrorResponse "Неверный формат данных"
// @Failure 409 {object} ErrorResponse "Сессия для устройства уже активна"
// @Failure 500 {object} ErrorResponse "Внутренняя ошибка сервера"
// @Router /sessions/start [post]
func (api *RESTAPIServer) StartSession(c *gin.Context) {
	var req SessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Неверный формат данных",
			Details: err.Error(),
		})
		return
	}

	// Валидация UUID пациента
	patientID, err := uuid.Parse(req.PatientID)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "Неверный ID пациента",
		})
		return
	}

	// Проверка активной сессии
	if activeSession := api.sessionManager.GetActiveSession(req.DeviceID); activeSession != nil {
		c.JSON(http.StatusConflict, ErrorResponse{
			Error:   "Сессия для устройства уже активна",
			Details: "active_session_id: " + activeSession.ID.String(),
		})
		return
	}

	sampleRate := req.SampleRate
	if sampleRate <= 0 {
		sampleRate = 32
	}

	// Создание сессии
	session, err := api.sessionManager.StartSession(patientID, req.DeviceID, sampleRate)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "Не удалось создать сессию",
			Details: err.Error(),
		})
		return
	}

	response := sessionToResponse(session, "active")
	response.Duration = 0

	c.JSON(http.StatusOK, SuccessResponse{
		Message: "Сессия успешно запущена",
		Data:    response,
	})
}

// StopSession завершает активную сессию
// @Summary Завершение активной сессии мониторинга
// @Description Завершает указанную активную сессию мониторинга браслета
// @Tags sessions
// @Produce json
// @Security BearerAuth
// @Param session_id path string true "UUID сессии" format(uuid)
// @Success 200 {object} SuccessResponse{data=SessionResponse} "Сессия успешно завершена"
// @Failure 400 {object} ErrorResponse "Неверный ID сессии"
// @Failure 404 {object} ErrorResponse "Сессия не найдена"
// @Router /sessions/stop/{session_id} [post]
func (api *RESTAPIServer) StopSession(c *gin.Context) {
	sessionIDStr := c.Param("session_id")
	sessionID, err := uuid.Parse(sessionIDStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "Неверный ID сессии",
		})
		return
	}

	session, err := api.sessionManager.StopSession(sessionID)
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error: "Сессия не найдена или уже завершена",
		})
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Message: "Сессия успешно завершена",
		Data:    sessionToResponse(session, "stopped"),
	})
}

// GetActiveSessions возвращает все активные сессии
// @Summary Список активных сессий
// @Tags sessions
// @Produce json
// @Security BearerAuth
// @Success 200 {object} ActiveSessionsResponse "Активные сессии"
// @Router /sessions/active [get]
func (api *RESTAPIServer) GetActiveSessions(c *gin.Context) {
	activeSessions := api.sessionManager.GetAllActiveSessions()

	sessions := make([]SessionResponse, 0, len(activeSessions))
	for _, session := range activeSessions {
		sessions = append(sessions, sessionToResponse(session, "active"))
	}

	c.JSON(http.StatusOK, ActiveSessionsResponse{
		Sessions: sessions,
		Count:    len(sessions),
	})
}

// GetSession возвращает сессию по ID
// @Summary Информация о сессии
// @Tags sessions
// @Produce json
// @Security BearerAuth
// @Param session_id path string true "UUID сессии" format(uuid)
// @Success 200 {object} SessionResponse "Сессия"
// @Failure 400 {object} ErrorResponse "Неверный ID сессии"
// @Failure 404 {object} ErrorResponse "Сессия не найдена"
// @Router /sessions/{session_id} [get]
func (api *RESTAPIServer) GetSession(c *gin.Context) {
	sessionID, err := uuid.Parse(c.Param("session_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Неверный ID сессии"})
		return
	}

	session, err := api.sessionManager.GetSession(sessionID)
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Сессия не найдена"})
		return
	}

	status := "stopped"
	if session.EndTime == nil {
		status = "active"
	}

	c.JSON(http.StatusOK, sessionToResponse(session, status))
}

// GetSessionData возвращает сенсорные ряды сессии
// @Summary Сенсорные данные сессии
// @Description Возвращает все шесть каналов браслета и отметки приступов
// @Tags sessions
// @Produce json
// @Security BearerAuth
// @Param session_id path string true "UUID сессии" format(uuid)
// @Success 200 {object} SessionDataResponse "Данные сессии"
// @Failure 400 {object} ErrorResponse "Неверный ID сессии"
// @Failure 404 {object} ErrorResponse "Сессия не найдена"
// @Router /sessions/{session_id}/data [get]
func (api *RESTAPIServer) GetSessionData(c *gin.Context) {
	sessionID, err := uuid.Parse(c.Param("session_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Неверный ID сессии"})
		return
	}

	session, err := api.sessionManager.GetSession(sessionID)
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Сессия не найдена"})
		return
	}

	totalPoints := session.AccXSeries.Count + session.AccYSeries.Count + session.AccZSeries.Count +
		session.EDASeries.Count + session.HRSeries.Count + session.TempSeries.Count

	c.JSON(http.StatusOK, SessionDataResponse{
		SessionID:     session.ID.String(),
		AccXSeries:    session.AccXSeries,
		AccYSeries:    session.AccYSeries,
		AccZSeries:    session.AccZSeries,
		EDASeries:     session.EDASeries,
		HRSeries:      session.HRSeries,
		TempSeries:    session.TempSeries,
		SeizureEvents: session.SeizureEvents,
		TotalPoints:   totalPoints,
	})
}

// AddSeizureEvent добавляет отметку приступа к сессии
// @Summary Аннотация приступа
// @Description Добавляет отметку приступа к сессии (от клинициста или при разборе записи)
// @Tags sessions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param session_id path string true "UUID сессии" format(uuid)
// @Param request body SeizureEventRequest true "Отметка приступа"
// @Success 200 {object} SuccessResponse "Отметка добавлена"
// @Failure 400 {object} ErrorResponse "Неверный формат данных"
// @Failure 404 {object} ErrorResponse "Сессия не найдена"
// @Router /sessions/{session_id}/events [post]
func (api *RESTAPIServer) AddSeizureEvent(c *gin.Context) {
	sessionID, err := uuid.Parse(c.Param("session_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Неверный ID сессии"})
		return
	}

	var req SeizureEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Неверный формат данных",
			Details: err.Error(),
		})
		return
	}

	if req.EndTime != 0 && req.EndTime < req.StartTime {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "Конец приступа раньше начала",
		})
		return
	}

	if _, err := api.sessionManager.GetSession(sessionID); err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Сессия не найдена"})
		return
	}

	source := req.Source
	if source == "" {
		source = "clinician"
	}

	event := models.SeizureEvent{
		ID:        uuid.New(),
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Source:    source,
		Note:      req.Note,
	}

	if err := api.sessionManager.AddSeizureEvent(sessionID, event); err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "Не удалось сохранить отметку",
			Details: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Message: "Отметка приступа добавлена",
		Data:    event,
	})
}

// GetSeizureEvents возвращает отметки приступов сессии
// @Summary Отметки приступов сессии
// @Tags sessions
// @Produce json
// @Security BearerAuth
// @Param session_id path string true "UUID сессии" format(uuid)
// @Success 200 {object} SuccessResponse "Отметки приступов"
// @Failure 404 {object} ErrorResponse "Сессия не найдена"
// @Router /sessions/{session_id}/events [get]
func (api *RESTAPIServer) GetSeizureEvents(c *gin.Context) {
	sessionID, err := uuid.Parse(c.Param("session_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Неверный ID сессии"})
		return
	}

	session, err := api.sessionManager.GetSession(sessionID)
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Сессия не найдена"})
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Message: "Отметки приступов",
		Data: gin.H{
			"session_id": session.ID.String(),
			"events":     session.SeizureEvents,
			"count":      len(session.SeizureEvents),
		},
	})
}

// GetPatientSessions возвращает сессии пациента
// @Summary Сессии пациента
// @Tags patients
// @Produce json
// @Security BearerAuth
// @Param patient_id path string true "UUID пациента" format(uuid)
// @Success 200 {object} PatientSessionsResponse "Сессии пациента"
// @Failure 400 {object} ErrorResponse "Неверный ID пациента"
// @Router /patients/{patient_id}/sessions [get]
func (api *RESTAPIServer) GetPatientSessions(c *gin.Context) {
	patientID, err := uuid.Parse(c.Param("patient_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Неверный ID пациента"})
		return
	}

	sessions, err := api.sessionManager.GetSessionsByPatientID(patientID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "Не удалось получить сессии",
			Details: err.Error(),
		})
		return
	}

	responses := make([]SessionResponse, 0, len(sessions))
	for _, session := range sessions {
		status := "stopped"
		if session.EndTime == nil {
			status = "active"
		}
		responses = append(responses, sessionToResponse(session, status))
	}

	c.JSON(http.StatusOK, PatientSessionsResponse{
		PatientID: patientID.String(),
		Sessions:  responses,
		Count:     len(responses),
	})
}

// GetDevices возвращает список известных устройств
// @Summary Список устройств
// @Tags devices
// @Produce json
// @Security BearerAuth
// @Success 200 {object} DevicesResponse "Устройства"
// @Router /devices [get]
func (api *RESTAPIServer) GetDevices(c *gin.Context) {
	devices := api.sessionManager.GetAllDevices()
	c.JSON(http.StatusOK, DevicesResponse{
		Devices: devices,
		Count:   len(devices),
	})
}

// GetDeviceStatus возвращает статус устройства
// @Summary Статус устройства
// @Tags devices
// @Produce json
// @Security BearerAuth
// @Param device_id path string true "Идентификатор устройства"
// @Success 200 {object} DeviceStatusResponse "Статус устройства"
// @Router /devices/{device_id}/status [get]
func (api *RESTAPIServer) GetDeviceStatus(c *gin.Context) {
	deviceID := c.Param("device_id")

	session := api.sessionManager.GetActiveSession(deviceID)
	if session == nil {
		c.JSON(http.StatusOK, DeviceStatusResponse{
			DeviceID: deviceID,
			Status:   "idle",
		})
		return
	}

	sessionID := session.ID.String()
	duration := int(time.Since(session.StartTime).Seconds())

	c.JSON(http.StatusOK, DeviceStatusResponse{
		DeviceID:  deviceID,
		Status:    "active",
		SessionID: &sessionID,
		StartTime: &session.StartTime,
		Duration:  &duration,
	})
}

// HealthCheck проверка здоровья сервиса
// @Summary Проверка состояния сервиса
// @Description Возвращает информацию о текущем состоянии и работоспособности сервиса мониторинга
// @Tags monitoring
// @Produce json
// @Success 200 {object} HealthResponse "Состояние сервиса"
// @Router /monitoring/health [get]
func (api *RESTAPIServer) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:         "healthy",
		Service:        "EPI Monitor",
		Timestamp:      time.Now().UTC(),
		ActiveSessions: api.sessionManager.GetActiveSessionCount(),
		StreamClients:  api.wsStreamer.SubscriberCount(),
	})
}

// CleanupSessions очистка зависших сессий
// @Summary Очистка зависших сессий
// @Description Выполняет очистку зависших и неактивных сессий в системе
// @Tags monitoring
// @Produce json
// @Security BearerAuth
// @Success 200 {object} CleanupResponse "Результат очистки"
// @Router /monitoring/cleanup [post]
func (api *RESTAPIServer) CleanupSessions(c *gin.Context) {
	api.sessionManager.CleanupInactiveSessions()
	c.JSON(http.StatusOK, CleanupResponse{
		Message:        "Очистка сессий выполнена",
		ActiveSessions: api.sessionManager.GetActiveSessionCount(),
	})
}

// GetStatistics возвращает статистику сервиса
// @Summary Статистика сервиса
// @Tags monitoring
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "Статистика"
// @Router /monitoring/stats [get]
func (api *RESTAPIServer) GetStatistics(c *gin.Context) {
	c.JSON(http.StatusOK, api.sessionManager.GetSessionStatistics())
}
