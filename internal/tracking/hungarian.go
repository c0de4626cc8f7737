package tracking

import "math"

// forbiddenCostFor возвращает стоимость недопустимой пары: она больше суммы
// любых допустимых стоимостей, поэтому решатель сперва минимизирует число
// недопустимых пар, а потом расстояния. Значение держится в разумном
// масштабе, чтобы не терять точность в потенциалах.
func forbiddenCostFor(maxDist float64, dim int) float64 {
	return maxDist*float64(dim+1) + 1
}

// solveAssignment решает прямоугольную задачу о назначениях (Кун–Манкрес
// с потенциалами) для матрицы n×m. Возвращает для строки i столбец или -1.
// Пары со стоимостью не меньше forbidden никогда не попадают в ответ.
func solveAssignment(cost [][]float64, forbidden float64) []int {
	n := len(cost)
	if n == 0 {
		return nil
	}
	m := len(cost[0])

	result := make([]int, n)
	for i := range result {
		result[i] = -1
	}
	if m == 0 {
		return result
	}

	dim := max(n, m)
	at := func(i, j int) float64 {
		if i < n && j < m {
			return cost[i][j]
		}
		return forbidden
	}

	const inf = math.MaxFloat64 / 2

	// Индексы с единицы, нулевой столбец фиктивный.
	u := make([]float64, dim+1)
	v := make([]float64, dim+1)
	owner := make([]int, dim+1)
	way := make([]int, dim+1)
	minv := make([]float64, dim+1)
	used := make([]bool, dim+1)

	for i := 1; i <= dim; i++ {
		owner[0] = i
		col := 0
		for j := range minv {
			minv[j] = inf
			used[j] = false
		}

		for {
			used[col] = true
			row := owner[col]
			delta := inf
			next := -1

			for j := 1; j <= dim; j++ {
				if used[j] {
					continue
				}
				cur := at(row-1, j-1) - u[row] - v[j]
				if cur < minv[j] {
					minv[j] = cur
					way[j] = col
				}
				if minv[j] < delta {
					delta = minv[j]
					next = j
				}
			}
			if next < 0 {
				break
			}

			for j := 0; j <= dim; j++ {
				if used[j] {
					u[owner[j]] += delta
					v[j] -= delta
				} else {
					minv[j] -= delta
				}
			}

			col = next
			if owner[col] == 0 {
				break
			}
		}

		for col != 0 {
			prev := way[col]
			owner[col] = owner[prev]
			col = prev
		}
	}

	for j := 1; j <= dim; j++ {
		i := owner[j] - 1
		if i < 0 || i >= n || j-1 >= m {
			continue
		}
		if cost[i][j-1] >= forbidden {
			continue
		}
		result[i] = j - 1
	}

	return result
}
