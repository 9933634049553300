package tsp

import "metaheuristics/internal/rng"

// GRCSolution строит маршрут жадно-рандомизированно: начиная со случайного
// города, на каждом шаге выбирает равновероятно один из непосещённых городов,
// стоимость перехода в который не превышает threshold * (минимальная стоимость).
func GRCSolution(inst *Instance, threshold float64, src rng.Source) []int {
	n := inst.Cities
	path := make([]int, n)
	visited := make([]bool, n)
	rcl := make([]int, 0, n)

	path[0] = src.DiscreteUniform(0, n-1)
	visited[path[0]] = true

	for k := 1; k < n; k++ {
		from := path[k-1]

		best := -1.0
		for c := 0; c < n; c++ {
			if visited[c] {
				continue
			}
			if cost := inst.Cost(from, c); best < 0 || cost < best {
				best = cost
			}
		}

		// Ограниченный список кандидатов
		rcl = rcl[:0]
		for c := 0; c < n; c++ {
			if !visited[c] && inst.Cost(from, c) <= threshold*best {
				rcl = append(rcl, c)
			}
		}

		city := rcl[src.DiscreteUniform(0, len(rcl)-1)]
		visited[city] = true
		path[k] = city
	}
	return path
}
