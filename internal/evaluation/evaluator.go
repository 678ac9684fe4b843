package evaluation

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/integrate"
	"gonum.org/v1/gonum/stat"

	"EPI_monitor/internal/pipeline"
)

// PRPoint рабочая точка кривой точность/полнота
type PRPoint struct {
	Threshold float64 `json:"threshold"`
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
}

// Report результат сравнения модели со случайным базовым уровнем
// на одной и той же разметке
type Report struct {
	ModelAUC    float64   `json:"model_auc"`
	BaselineAUC float64   `json:"baseline_auc"`
	PRCurve     []PRPoint `json:"pr_curve"`
	Positives   int       `json:"positives"`
	Negatives   int       `json:"negatives"`
}

// Evaluate сравнивает вероятности модели и случайного базового уровня с
// истинной разметкой: AUC-ROC обеих оценок плюс кривая точность/полнота
// модели по всем достижимым порогам. Разметка из одного класса дает
// ErrDegenerateLabels, ранговые метрики на ней не определены.
func Evaluate(yTrue []int, modelScores, baselineScores []float64) (*Report, error) {
	if len(yTrue) == 0 {
		return nil, fmt.Errorf("%w: пустая разметка", pipeline.ErrInsufficientData)
	}
	if len(modelScores) != len(yTrue) {
		return nil, fmt.Errorf("%w: %d оценок модели на %d меток", pipeline.ErrConfiguration, len(modelScores), len(yTrue))
	}
	if len(baselineScores) != len(yTrue) {
		return nil, fmt.Errorf("%w: %d оценок базового уровня на %d меток", pipeline.ErrConfiguration, len(baselineScores), len(yTrue))
	}

	positives := 0
	for _, t := range yTrue {
		if t > 0 {
			positives++
		}
	}
	negatives := len(yTrue) - positives
	if positives == 0 || negatives == 0 {
		return nil, fmt.Errorf("%w: %d положительных и %d отрицательных меток", pipeline.ErrDegenerateLabels, positives, negatives)
	}

	return &Report{
		ModelAUC:    AUCROC(yTrue, modelScores),
		BaselineAUC: AUCROC(yTrue, baselineScores),
		PRCurve:     PrecisionRecallCurve(yTrue, modelScores),
		Positives:   positives,
		Negatives:   negatives,
	}, nil
}

// AUCROC вычисляет площадь под ROC-кривой для бинарной разметки.
// Вызывающий код обязан гарантировать наличие обоих классов.
func AUCROC(yTrue []int, scores []float64) float64 {
	y := make([]float64, len(scores))
	copy(y, scores)
	classes := make([]bool, len(yTrue))
	for i, t := range yTrue {
		classes[i] = t > 0
	}

	stat.SortWeightedLabeled(y, classes, nil)
	tpr, fpr, _ := stat.ROC(nil, y, classes, nil)
	return integrate.Trapezoidal(fpr, tpr)
}

// PrecisionRecallCurve строит кривую точность/полнота по всем достижимым
// порогам: порогом служит каждое уникальное значение оценки, положительным
// считается score >= порога. Точки идут в порядке убывания порога,
// полнота растет вдоль кривой.
func PrecisionRecallCurve(yTrue []int, scores []float64) []PRPoint {
	type pair struct {
		score float64
		label int
	}
	pairs := make([]pair, len(yTrue))
	for i := range yTrue {
		pairs[i] = pair{score: scores[i], label: yTrue[i]}
	}
	sort.Slice(pairs, func(i, j int) bool {
		return pairs[i].score > pairs[j].score
	})

	positives := 0
	for _, p := range pairs {
		if p.label > 0 {
			positives++
		}
	}

	var curve []PRPoint
	tp, fp := 0, 0
	for i, p := range pairs {
		if p.label > 0 {
			tp++
		} else {
			fp++
		}
		// точка фиксируется после всех образцов с одинаковой оценкой
		if i+1 < len(pairs) && pairs[i+1].score == p.score {
			continue
		}
		point := PRPoint{Threshold: p.score}
		if tp+fp > 0 {
			point.Precision = float64(tp) / float64(tp+fp)
		}
		if positives > 0 {
			point.Recall = float64(tp) / float64(positives)
		}
		curve = append(curve, point)
	}
	return curve
}
