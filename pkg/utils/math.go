package utils

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// SafeFloat заменяет NaN и Inf на ноль
func SafeFloat(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0.0
	}
	return v
}

// Mean вычисляет среднее значение
func Mean(data []float64) float64 {
	if len(data) == 0 {
		return math.NaN()
	}
	return stat.Mean(data, nil)
}

// Std вычисляет выборочное стандартное отклонение
func Std(data []float64) float64 {
	if len(data) <= 1 {
		return math.NaN()
	}
	return stat.StdDev(data, nil)
}

// Min находит минимальное значение
func Min(data []float64) float64 {
	if len(data) == 0 {
		return math.NaN()
	}
	return floats.Min(data)
}

// Max находит максимальное значение
func Max(data []float64) float64 {
	if len(data) == 0 {
		return math.NaN()
	}
	return floats.Max(data)
}

// Median вычисляет медиану массива
func Median(data []float64) float64 {
	if len(data) == 0 {
		return math.NaN()
	}

	sorted := make([]float64, len(data))
	copy(sorted, data)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}

// Percentile вычисляет процентиль массива с линейной интерполяцией
func Percentile(data []float64, p float64) float64 {
	if len(data) == 0 {
		return math.NaN()
	}

	sorted := make([]float64, len(data))
	copy(sorted, data)
	sort.Float64s(sorted)

	if p <= 0 {
		return sorted[0]
	}
	if p >= 100 {
		return sorted[len(sorted)-1]
	}

	n := float64(len(sorted) - 1)
	index := (p / 100.0) * n

	lower := int(math.Floor(index))
	upper := int(math.Ceil(index))

	if lower == upper {
		return sorted[lower]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// IQR вычисляет межквартильный размах
func IQR(data []float64) float64 {
	p75 := Percentile(data, 75)
	p25 := Percentile(data, 25)
	return p75 - p25
}

// Sum суммирует элементы массива
func Sum(data []float64) float64 {
	return floats.Sum(data)
}

// ArgMax возвращает индекс максимального элемента
func ArgMax(data []float64) int {
	if len(data) == 0 {
		return -1
	}
	return floats.MaxIdx(data)
}

// Diff вычисляет разности соседних элементов
func Diff(data []float64) []float64 {
	if len(data) <= 1 {
		return []float64{}
	}

	result := make([]float64, len(data)-1)
	for i := 1; i < len(data); i++ {
		result[i-1] = data[i] - data[i-1]
	}
	return result
}
