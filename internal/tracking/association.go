package tracking

import (
	"road-inspector/internal/domain/entity"
)

// assignFunc сопоставляет центры кандидатов с треками.
// Возвращает для каждого кандидата индекс трека в tracks или -1.
type assignFunc func(centers []entity.Point, tracks []*entity.Track, maxDist float64) []int

func assignerFor(a Association) assignFunc {
	if a == AssociationHungarian {
		return hungarianAssign
	}
	return greedyAssign
}

// greedyAssign проходит кандидатов в порядке поступления и отдаёт каждому
// ближайший ещё свободный трек. tracks отсортированы по ID, сравнение строгое,
// поэтому при равных расстояниях выигрывает трек с меньшим ID.
func greedyAssign(centers []entity.Point, tracks []*entity.Track, maxDist float64) []int {
	result := make([]int, len(centers))
	taken := make([]bool, len(tracks))

	for di, c := range centers {
		result[di] = -1

		best := -1
		bestDist := 0.0
		for ti, tr := range tracks {
			if taken[ti] {
				continue
			}
			d := c.DistanceTo(tr.Centroid)
			if best < 0 || d < bestDist {
				best = ti
				bestDist = d
			}
		}

		if best >= 0 && bestDist <= maxDist {
			result[di] = best
			taken[best] = true
		}
	}

	return result
}

// hungarianAssign строит матрицу расстояний, закрывает пары дальше maxDist
// и решает задачу о назначениях целиком.
func hungarianAssign(centers []entity.Point, tracks []*entity.Track, maxDist float64) []int {
	if len(centers) == 0 {
		return nil
	}

	forbidden := forbiddenCostFor(maxDist, max(len(centers), len(tracks)))
	cost := make([][]float64, len(centers))
	for di, c := range centers {
		row := make([]float64, len(tracks))
		for ti, tr := range tracks {
			d := c.DistanceTo(tr.Centroid)
			if d > maxDist {
				d = forbidden
			}
			row[ti] = d
		}
		cost[di] = row
	}

	return solveAssignment(cost, forbidden)
}
