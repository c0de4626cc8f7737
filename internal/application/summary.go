package app

import "gonum.org/v1/gonum/stat"

// meanStdDev возвращает среднее и выборочное стандартное отклонение.
// Для пустой выборки оба нуля, для одного значения отклонение нулевое.
func meanStdDev(x []float64) (mean, std float64) {
	switch len(x) {
	case 0:
		return 0, 0
	case 1:
		return x[0], 0
	}
	return stat.MeanStdDev(x, nil)
}
