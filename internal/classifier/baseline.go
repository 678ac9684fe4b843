package classifier

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// RandomBaseline генерирует равномерные случайные оценки. Служит нижней
// границей качества: осмысленная модель обязана обгонять его по AUC.
type RandomBaseline struct {
	dist distuv.Uniform
}

// NewRandomBaseline создает базовый уровень с фиксированным зерном,
// чтобы отчеты оценки были воспроизводимы
func NewRandomBaseline(seed uint64) *RandomBaseline {
	return &RandomBaseline{
		dist: distuv.Uniform{
			Min: 0,
			Max: 1,
			Src: rand.NewSource(seed),
		},
	}
}

// Scores возвращает n случайных оценок из [0, 1)
func (b *RandomBaseline) Scores(n int) []float64 {
	scores := make([]float64, n)
	for i := range scores {
		scores[i] = b.dist.Rand()
	}
	return scores
}
