package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"EPI_monitor/internal/classifier"
	"EPI_monitor/internal/pipeline"
	"EPI_monitor/internal/services"
)

// MLAPIServer обрабатывает HTTP запросы ML сервиса
type MLAPIServer struct {
	datasetService *services.DatasetService
	clf            classifier.Classifier
}

// NewMLAPIServer создает новый обработчик ML запросов
func NewMLAPIServer(datasetService *services.DatasetService, clf classifier.Classifier) *MLAPIServer {
	return &MLAPIServer{
		datasetService: datasetService,
		clf:            clf,
	}
}

// MLSessionRequest структура запроса с идентификатором сессии
type MLSessionRequest struct {
	SessionID string `json:"session_id" binding:"required,uuid"`
}

// DatasetSummaryResponse сводка по подготовленному датасету
type DatasetSummaryResponse struct {
	SessionID      string   `json:"session_id"`
	ModelVersion   string   `json:"model_version"`
	Samples        int      `json:"samples"`
	SampleRate     float64  `json:"sample_rate"`
	Windows        int      `json:"windows"`
	RawPositives   int      `json:"raw_positives"`
	TrainSequences int      `json:"train_sequences"`
	ValSequences   int      `json:"val_sequences"`
	TrainPositives int      `json:"train_positives"`
	ValPositives   int      `json:"val_positives"`
	SequenceLength int      `json:"sequence_length"`
	FeatureCount   int      `json:"feature_count"`
	FeatureNames   []string `json:"feature_names"`
}

// ScalerStateResponse сохраненное состояние нормализатора
type ScalerStateResponse struct {
	ModelVersion string    `json:"model_version"`
	Features     int       `json:"features"`
	Mean         []float64 `json:"mean"`
	Std          []float64 `json:"std"`
	CreatedAt    time.Time `json:"created_at"`
}

// FeatureListResponse список признаков конвейера
type FeatureListResponse struct {
	FeatureCount int      `json:"feature_count"`
	FeatureNames []string `json:"feature_names"`
}

// mlErrorStatus переводит ошибки конвейера в HTTP статусы
func mlErrorStatus(err error) int {
	switch {
	case errors.Is(err, pipeline.ErrInsufficientData):
		return http.StatusUnprocessableEntity
	case errors.Is(err, pipeline.ErrDegenerateLabels):
		return http.StatusUnprocessableEntity
	case errors.Is(err, pipeline.ErrConfiguration):
		return http.StatusBadRequest
	case errors.Is(err, pipeline.ErrScalerState):
		return http.StatusConflict
	case errors.Is(err, gorm.ErrRecordNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func countPositives(labels []int) int {
	total := 0
	for _, l := range labels {
		total += l
	}
	return total
}

// PrepareDataset прогоняет сессию через конвейер подготовки данных
// @Summary Подготовка датасета по сессии
// @Description Нарезает ряды сессии на окна, извлекает признаки, собирает последовательности и сохраняет состояние нормализатора
// @Tags ml
// @Accept json
// @Produce json
// @Param request body MLSessionRequest true "Идентификатор сессии"
// @Success 200 {object} DatasetSummaryResponse "Сводка по датасету"
// @Failure 400 {object} map[string]interface{} "Неверный запрос"
// @Failure 404 {object} map[string]interface{} "Сессия не найдена"
// @Failure 422 {object} map[string]interface{} "Недостаточно данных"
// @Router /ml/prepare [post]
func (s *MLAPIServer) PrepareDataset(c *gin.Context) {
	var req MLSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request",
			"details": err.Error(),
		})
		return
	}

	sessionID, err := uuid.Parse(req.SessionID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid session id",
			"details": err.Error(),
		})
		return
	}

	prep, err := s.datasetService.PrepareAndStore(sessionID)
	if err != nil {
		c.JSON(mlErrorStatus(err), gin.H{
			"error":   "dataset preparation error",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, DatasetSummaryResponse{
		SessionID:      prep.SessionID.String(),
		ModelVersion:   s.datasetService.ModelVersion(),
		Samples:        prep.Samples,
		SampleRate:     prep.SampleRate,
		Windows:        prep.Windows,
		RawPositives:   prep.RawPositives,
		TrainSequences: prep.Train.Sequences,
		ValSequences:   prep.Val.Sequences,
		TrainPositives: countPositives(prep.TrainLabels),
		ValPositives:   countPositives(prep.ValLabels),
		SequenceLength: prep.Train.SeqLen,
		FeatureCount:   len(prep.FeatureNames),
		FeatureNames:   prep.FeatureNames,
	})
}

// EvaluateModel оценивает модель против случайного базового уровня
// @Summary Оценка модели на валидационной части сессии
// @Description Считает ROC AUC модели и случайного базового уровня плюс PR-кривую на хронологическом сплите
// @Tags ml
// @Accept json
// @Produce json
// @Param request body MLSessionRequest true "Идентификатор сессии"
// @Success 200 {object} services.EvaluationResult "Результат оценки"
// @Failure 400 {object} map[string]interface{} "Неверный запрос"
// @Failure 422 {object} map[string]interface{} "Недостаточно данных или один класс в разметке"
// @Router /ml/evaluate [post]
func (s *MLAPIServer) EvaluateModel(c *gin.Context) {
	var req MLSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request",
			"details": err.Error(),
		})
		return
	}

	sessionID, err := uuid.Parse(req.SessionID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid session id",
			"details": err.Error(),
		})
		return
	}

	result, err := s.datasetService.EvaluateSession(sessionID, s.clf)
	if err != nil {
		c.JSON(mlErrorStatus(err), gin.H{
			"error":   "evaluation error",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, result)
}

// PredictRisk оценивает риск приступа по последней последовательности
// @Summary Оценка текущего риска приступа
// @Description Применяет сохраненный нормализатор и модель к последней последовательности окон сессии
// @Tags ml
// @Accept json
// @Produce json
// @Param request body MLSessionRequest true "Идентификатор сессии"
// @Success 200 {object} services.PredictionResult "Оценка риска"
// @Failure 400 {object} map[string]interface{} "Неверный запрос"
// @Failure 409 {object} map[string]interface{} "Нормализатор еще не обучен"
// @Failure 422 {object} map[string]interface{} "Недостаточно данных"
// @Router /ml/predict [post]
func (s *MLAPIServer) PredictRisk(c *gin.Context) {
	var req MLSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request",
			"details": err.Error(),
		})
		return
	}

	sessionID, err := uuid.Parse(req.SessionID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid session id",
			"details": err.Error(),
		})
		return
	}

	result, err := s.datasetService.PredictLatest(sessionID, s.clf)
	if err != nil {
		c.JSON(mlErrorStatus(err), gin.H{
			"error":   "prediction error",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetScalerState возвращает сохраненное состояние нормализатора
// @Summary Состояние нормализатора по версии модели
// @Description Возвращает средние и стандартные отклонения признаков, зафиксированные при подготовке датасета
// @Tags ml
// @Produce json
// @Param model_version path string true "Версия модели"
// @Success 200 {object} ScalerStateResponse "Состояние нормализатора"
// @Failure 409 {object} map[string]interface{} "Состояние не найдено"
// @Router /ml/scaler/{model_version} [get]
func (s *MLAPIServer) GetScalerState(c *gin.Context) {
	version := c.Param("model_version")

	record, err := s.datasetService.ScalerRecordFor(version)
	if err != nil {
		c.JSON(mlErrorStatus(err), gin.H{
			"error":   "scaler state error",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, ScalerStateResponse{
		ModelVersion: record.ModelVersion,
		Features:     record.Features,
		Mean:         record.State.Mean,
		Std:          record.State.Std,
		CreatedAt:    record.CreatedAt,
	})
}

// GetFeatures возвращает список признаков конвейера
// @Summary Список признаков
// @Description Возвращает имена признаков в том порядке, в котором их извлекает конвейер
// @Tags ml
// @Produce json
// @Success 200 {object} FeatureListResponse "Имена признаков"
// @Router /ml/features [get]
func (s *MLAPIServer) GetFeatures(c *gin.Context) {
	names := s.datasetService.FeatureNames()
	c.JSON(http.StatusOK, FeatureListResponse{
		FeatureCount: len(names),
		FeatureNames: names,
	})
}

// Health проверяет состояние сервиса
// @Summary Проверка состояния ML сервиса
// @Description Возвращает статус работы ML сервиса и версию модели
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{} "Сервис работает"
// @Router /ml/health [get]
func (s *MLAPIServer) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":        "healthy",
		"model_version": s.clf.Version(),
		"timestamp":     time.Now().UTC(),
	})
}
