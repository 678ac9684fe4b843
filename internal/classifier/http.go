package classifier

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"EPI_monitor/configs"
	"EPI_monitor/internal/pipeline"
)

// HTTPClassifier отправляет последовательности внешнему ML сервису
type HTTPClassifier struct {
	serviceURL string
	version    string
	httpClient *http.Client
}

// scoreRequest тело запроса к внешнему сервису
type scoreRequest struct {
	ModelVersion string        `json:"model_version"`
	Sequences    [][][]float64 `json:"sequences"` // [последовательность][окно][признак]
}

// scoreResponse ответ внешнего сервиса
type scoreResponse struct {
	Scores []float64 `json:"scores"`
}

// NewHTTPClassifier создает новый HTTP адаптер модели
func NewHTTPClassifier(cfg configs.ModelConfig) *HTTPClassifier {
	return &HTTPClassifier{
		serviceURL: cfg.ServiceURL,
		version:    cfg.Version,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSec) * time.Second,
		},
	}
}

// PredictBatch получает вероятности приступа для батча последовательностей
func (c *HTTPClassifier) PredictBatch(t *pipeline.SequenceTensor) ([]float64, error) {
	if t.Sequences == 0 {
		return []float64{}, nil
	}

	// Разворачиваем тензор в формат запроса
	sequences := make([][][]float64, t.Sequences)
	for s := 0; s < t.Sequences; s++ {
		windows := make([][]float64, t.SeqLen)
		for w := 0; w < t.SeqLen; w++ {
			row := make([]float64, t.Features)
			copy(row, t.Window(s, w))
			windows[w] = row
		}
		sequences[s] = windows
	}

	requestBody, err := json.Marshal(scoreRequest{
		ModelVersion: c.version,
		Sequences:    sequences,
	})
	if err != nil {
		return nil, fmt.Errorf("ошибка сериализации запроса: %w", err)
	}

	url := fmt.Sprintf("%s/score", c.serviceURL)

	httpReq, err := http.NewRequest("POST", url, bytes.NewBuffer(requestBody))
	if err != nil {
		return nil, fmt.Errorf("ошибка создания запроса: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")

	// Выполнить запрос
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("ошибка выполнения запроса: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("ML сервис вернул ошибку %d: %s", resp.StatusCode, string(body))
	}

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения ответа: %w", err)
	}

	var scoreResp scoreResponse
	if err := json.Unmarshal(responseBody, &scoreResp); err != nil {
		return nil, fmt.Errorf("ошибка десериализации ответа: %w", err)
	}

	if len(scoreResp.Scores) != t.Sequences {
		return nil, fmt.Errorf("ML сервис вернул %d оценок на %d последовательностей",
			len(scoreResp.Scores), t.Sequences)
	}

	return scoreResp.Scores, nil
}

// Version возвращает версию модели
func (c *HTTPClassifier) Version() string {
	return c.version
}

// Close освобождает ресурсы адаптера
func (c *HTTPClassifier) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}
