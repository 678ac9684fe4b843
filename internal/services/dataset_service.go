package services

import (
	"errors"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"EPI_monitor/configs"
	"EPI_monitor/internal/classifier"
	"EPI_monitor/internal/evaluation"
	"EPI_monitor/internal/features"
	"EPI_monitor/internal/models"
	"EPI_monitor/internal/pipeline"
)

// DatasetService собирает из сохраненных сессий датасеты для обучения
// и оценки модели прогнозирования приступов
type DatasetService struct {
	db           *gorm.DB
	dataService  *DataService
	cfg          configs.PipelineConfig
	channelCfg   features.ChannelConfig
	windowCfg    pipeline.WindowConfig
	sequenceCfg  pipeline.SequenceConfig
	zeroVariance pipeline.ZeroVariancePolicy
	modelVersion string
}

// NewDatasetService создает сервис подготовки датасетов
func NewDatasetService(db *gorm.DB, dataService *DataService, cfg configs.PipelineConfig, modelVersion string) (*DatasetService, error) {
	boundary, err := pipeline.ParseBoundaryPolicy(cfg.BoundaryPolicy)
	if err != nil {
		return nil, err
	}

	zeroVariance, err := pipeline.ParseZeroVariancePolicy(cfg.ZeroVariance)
	if err != nil {
		return nil, err
	}

	windowCfg := pipeline.WindowConfig{
		WindowSize: cfg.WindowSize,
		Overlap:    cfg.Overlap,
	}
	if err := windowCfg.Validate(); err != nil {
		return nil, err
	}

	sequenceCfg := pipeline.SequenceConfig{
		SequenceLength: cfg.SequenceLength,
		Horizon:        cfg.Horizon,
		Boundary:       boundary,
	}
	if err := sequenceCfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.TrainSplit <= 0 || cfg.TrainSplit >= 1 {
		return nil, fmt.Errorf("%w: доля тренировочной части должна лежать в (0, 1), получено %g",
			pipeline.ErrConfiguration, cfg.TrainSplit)
	}

	channelCfg := features.DefaultChannelConfig()
	if err := channelCfg.Validate(); err != nil {
		return nil, err
	}

	log.Printf("Dataset Service: окно=%d сэмплов, перекрытие=%.2f, последовательность=%d окон, горизонт=%d",
		cfg.WindowSize, cfg.Overlap, cfg.SequenceLength, cfg.Horizon)

	return &DatasetService{
		db:           db,
		dataService:  dataService,
		cfg:          cfg,
		channelCfg:   channelCfg,
		windowCfg:    windowCfg,
		sequenceCfg:  sequenceCfg,
		zeroVariance: zeroVariance,
		modelVersion: modelVersion,
	}, nil
}

// PreparedDataset готовый к обучению датасет одной сессии
type PreparedDataset struct {
	SessionID    uuid.UUID
	FeatureNames []string
	SampleRate   float64
	Samples      int
	Windows      int
	RawPositives int
	Train        *pipeline.SequenceTensor
	Val          *pipeline.SequenceTensor
	TrainLabels  []int
	ValLabels    []int
	ScalerState  *pipeline.ScalerState
}

// Prepare прогоняет сессию через весь конвейер подготовки данных:
// нарезка окон, извлечение признаков, сборка последовательностей,
// хронологический сплит и нормализация по тренировочной части.
func (s *DatasetService) Prepare(sessionID uuid.UUID) (*PreparedDataset, error) {
	series, err := s.dataService.GetSessionSeries(sessionID)
	if err != nil {
		return nil, err
	}

	if series.Samples < s.windowCfg.WindowSize {
		return nil, fmt.Errorf("%w: %d сэмплов при окне %d",
			pipeline.ErrInsufficientData, series.Samples, s.windowCfg.WindowSize)
	}

	extractor, err := features.NewExtractor(s.channelCfg, series.SampleRate, s.cfg.WelchSegment)
	if err != nil {
		return nil, err
	}

	// Извлечение признаков по окнам
	matrix, err := pipeline.SegmentFeaturesParallel(series.Series, s.windowCfg, extractor, s.cfg.Workers)
	if err != nil {
		return nil, err
	}

	// Сырые метки в пространстве индексов окон
	rawLabels := DeriveRawLabels(series.Events, s.windowCfg, series.Samples, series.SampleRate)
	rawPositives := 0
	for _, l := range rawLabels {
		rawPositives += l
	}

	// Сборка последовательностей с разметкой по горизонту
	tensor, labels, err := pipeline.BuildSequences(matrix, rawLabels, s.sequenceCfg)
	if err != nil {
		return nil, err
	}

	if tensor.Sequences < 2 {
		return nil, fmt.Errorf("%w: %d последовательностей, хронологический сплит невозможен",
			pipeline.ErrInsufficientData, tensor.Sequences)
	}

	// Хронологический сплит без перемешивания
	trainCount := int(math.Floor(float64(tensor.Sequences) * s.cfg.TrainSplit))
	if trainCount < 1 {
		trainCount = 1
	}
	if trainCount >= tensor.Sequences {
		trainCount = tensor.Sequences - 1
	}

	train, val, trainLabels, valLabels, err := splitTensor(tensor, labels, trainCount)
	if err != nil {
		return nil, err
	}

	// Нормализация: статистики только по тренировочной части
	scaler := pipeline.NewStandardScaler(s.zeroVariance)
	if err := scaler.Fit(train); err != nil {
		return nil, err
	}

	trainScaled, err := scaler.Transform(train)
	if err != nil {
		return nil, err
	}
	valScaled, err := scaler.Transform(val)
	if err != nil {
		return nil, err
	}

	state, err := scaler.State()
	if err != nil {
		return nil, err
	}

	log.Printf("Датасет сессии %s: %d окон → %d последовательностей (train=%d, val=%d), позитивных окон: %d",
		sessionID, matrix.Windows, tensor.Sequences, train.Sequences, val.Sequences, rawPositives)

	return &PreparedDataset{
		SessionID:    series.SessionID,
		FeatureNames: s.channelCfg.FeatureNames(),
		SampleRate:   series.SampleRate,
		Samples:      series.Samples,
		Windows:      matrix.Windows,
		RawPositives: rawPositives,
		Train:        trainScaled,
		Val:          valScaled,
		TrainLabels:  trainLabels,
		ValLabels:    valLabels,
		ScalerState:  state,
	}, nil
}

// PrepareAndStore готовит датасет и сохраняет состояние нормализатора
func (s *DatasetService) PrepareAndStore(sessionID uuid.UUID) (*PreparedDataset, error) {
	prep, err := s.Prepare(sessionID)
	if err != nil {
		return nil, err
	}

	if err := s.SaveScalerState(prep.ScalerState); err != nil {
		return nil, err
	}

	return prep, nil
}

// EvaluationResult итог оценки модели на валидационной части сессии
type EvaluationResult struct {
	SessionID      uuid.UUID          `json:"session_id"`
	ModelVersion   string             `json:"model_version"`
	TrainSequences int                `json:"train_sequences"`
	ValSequences   int                `json:"val_sequences"`
	Report         *evaluation.Report `json:"report"`
}

// EvaluateSession сравнивает модель со случайным базовым уровнем на
// валидационной части хронологического сплита
func (s *DatasetService) EvaluateSession(sessionID uuid.UUID, clf classifier.Classifier) (*EvaluationResult, error) {
	prep, err := s.PrepareAndStore(sessionID)
	if err != nil {
		return nil, err
	}

	modelScores, err := clf.PredictBatch(prep.Val)
	if err != nil {
		return nil, fmt.Errorf("ошибка модели: %w", err)
	}

	baseline := classifier.NewRandomBaseline(42)
	baselineScores := baseline.Scores(prep.Val.Sequences)

	report, err := evaluation.Evaluate(prep.ValLabels, modelScores, baselineScores)
	if err != nil {
		return nil, err
	}

	log.Printf("Оценка сессии %s: model AUC=%.4f, baseline AUC=%.4f",
		sessionID, report.ModelAUC, report.BaselineAUC)

	return &EvaluationResult{
		SessionID:      sessionID,
		ModelVersion:   clf.Version(),
		TrainSequences: prep.Train.Sequences,
		ValSequences:   prep.Val.Sequences,
		Report:         report,
	}, nil
}

// PredictionResult оценка риска по последней доступной последовательности
type PredictionResult struct {
	SessionID    uuid.UUID `json:"session_id"`
	ModelVersion string    `json:"model_version"`
	Risk         float64   `json:"risk"`
	Sequences    int       `json:"sequences"`
	WindowEndSec float64   `json:"window_end_sec"`
}

// PredictLatest оценивает риск приступа по последней последовательности
// сессии, применяя сохраненное состояние нормализатора
func (s *DatasetService) PredictLatest(sessionID uuid.UUID, clf classifier.Classifier) (*PredictionResult, error) {
	series, err := s.dataService.GetSessionSeries(sessionID)
	if err != nil {
		return nil, err
	}

	if series.Samples < s.windowCfg.WindowSize {
		return nil, fmt.Errorf("%w: %d сэмплов при окне %d",
			pipeline.ErrInsufficientData, series.Samples, s.windowCfg.WindowSize)
	}

	extractor, err := features.NewExtractor(s.channelCfg, series.SampleRate, s.cfg.WelchSegment)
	if err != nil {
		return nil, err
	}

	matrix, err := pipeline.SegmentFeaturesParallel(series.Series, s.windowCfg, extractor, s.cfg.Workers)
	if err != nil {
		return nil, err
	}

	rawLabels := DeriveRawLabels(series.Events, s.windowCfg, series.Samples, series.SampleRate)

	tensor, _, err := pipeline.BuildSequences(matrix, rawLabels, s.sequenceCfg)
	if err != nil {
		return nil, err
	}
	if tensor.Sequences == 0 {
		return nil, fmt.Errorf("%w: ни одной полной последовательности", pipeline.ErrInsufficientData)
	}

	// Берем последнюю последовательность
	last, err := pipeline.NewSequenceTensor(1, tensor.SeqLen, tensor.Features)
	if err != nil {
		return nil, err
	}
	copy(last.Sequence(0), tensor.Sequence(tensor.Sequences-1))

	// Применяем сохраненное состояние нормализатора
	state, err := s.LoadScalerState()
	if err != nil {
		return nil, err
	}
	scaler, err := pipeline.NewScalerFromState(state, s.zeroVariance)
	if err != nil {
		return nil, err
	}
	scaled, err := scaler.Transform(last)
	if err != nil {
		return nil, err
	}

	scores, err := clf.PredictBatch(scaled)
	if err != nil {
		return nil, fmt.Errorf("ошибка модели: %w", err)
	}

	// Конец последнего окна последней последовательности в секундах
	step := s.windowCfg.Step()
	lastWindow := (tensor.Sequences - 1) + tensor.SeqLen - 1
	windowEndSec := float64(lastWindow*step+s.windowCfg.WindowSize) / series.SampleRate

	return &PredictionResult{
		SessionID:    sessionID,
		ModelVersion: clf.Version(),
		Risk:         scores[0],
		Sequences:    tensor.Sequences,
		WindowEndSec: windowEndSec,
	}, nil
}

// SaveScalerState сохраняет состояние нормализатора для версии модели
func (s *DatasetService) SaveScalerState(state *pipeline.ScalerState) error {
	var record models.ScalerRecord
	err := s.db.First(&record, "model_version = ?", s.modelVersion).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		record = models.ScalerRecord{
			ModelVersion: s.modelVersion,
			Features:     state.Features(),
			State:        *state.Clone(),
			CreatedAt:    time.Now().UTC(),
		}
		if err := s.db.Create(&record).Error; err != nil {
			return fmt.Errorf("не удалось сохранить состояние нормализатора: %w", err)
		}
		log.Printf("💾 Состояние нормализатора сохранено: версия %s, %d признаков",
			s.modelVersion, record.Features)
		return nil
	}
	if err != nil {
		return fmt.Errorf("не удалось прочитать состояние нормализатора: %w", err)
	}

	record.Features = state.Features()
	record.State = *state.Clone()
	if err := s.db.Save(&record).Error; err != nil {
		return fmt.Errorf("не удалось обновить состояние нормализатора: %w", err)
	}

	log.Printf("💾 Состояние нормализатора обновлено: версия %s, %d признаков",
		s.modelVersion, record.Features)
	return nil
}

// LoadScalerState загружает состояние нормализатора текущей версии модели
func (s *DatasetService) LoadScalerState() (*pipeline.ScalerState, error) {
	record, err := s.ScalerRecordFor(s.modelVersion)
	if err != nil {
		return nil, err
	}
	return record.State.Clone(), nil
}

// ScalerRecordFor возвращает сохраненную запись нормализатора для версии модели
func (s *DatasetService) ScalerRecordFor(version string) (*models.ScalerRecord, error) {
	var record models.ScalerRecord
	err := s.db.First(&record, "model_version = ?", version).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: состояние для версии %s не найдено, сначала подготовьте датасет",
			pipeline.ErrScalerState, version)
	}
	if err != nil {
		return nil, fmt.Errorf("не удалось загрузить состояние нормализатора: %w", err)
	}
	return &record, nil
}

// ModelVersion возвращает версию модели, под которую собирается датасет
func (s *DatasetService) ModelVersion() string {
	return s.modelVersion
}

// FeatureNames возвращает имена признаков в порядке извлечения
func (s *DatasetService) FeatureNames() []string {
	return s.channelCfg.FeatureNames()
}

// splitTensor делит тензор на тренировочную и валидационную части,
// сохраняя хронологический порядок последовательностей
func splitTensor(t *pipeline.SequenceTensor, labels []int, trainCount int) (*pipeline.SequenceTensor, *pipeline.SequenceTensor, []int, []int, error) {
	if trainCount < 1 || trainCount >= t.Sequences {
		return nil, nil, nil, nil, fmt.Errorf("%w: некорректная граница сплита %d при %d последовательностях",
			pipeline.ErrConfiguration, trainCount, t.Sequences)
	}

	train, err := pipeline.NewSequenceTensor(trainCount, t.SeqLen, t.Features)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	val, err := pipeline.NewSequenceTensor(t.Sequences-trainCount, t.SeqLen, t.Features)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	for s := 0; s < trainCount; s++ {
		copy(train.Sequence(s), t.Sequence(s))
	}
	for s := trainCount; s < t.Sequences; s++ {
		copy(val.Sequence(s-trainCount), t.Sequence(s))
	}

	trainLabels := make([]int, trainCount)
	copy(trainLabels, labels[:trainCount])
	valLabels := make([]int, t.Sequences-trainCount)
	copy(valLabels, labels[trainCount:])

	return train, val, trainLabels, valLabels, nil
}
