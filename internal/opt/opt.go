// Package opt описывает контракт между обобщёнными движками поиска и
// адаптерами конкретных задач.
package opt

import (
	"context"
	"time"
)

// Problem — адаптер задачи. Особь — перестановка длины Size().
// Меньшее значение Fitness лучше. Адаптер никогда не изменяет экземпляр задачи.
type Problem interface {
	Name() string
	Size() int

	// InitialSolution возвращает новую особь.
	InitialSolution() []int
	Fitness(ind []int) float64
	// Repair восстанавливает перестановку на месте; на корректной особи ничего не делает.
	Repair(ind []int)
	// LocalSearch улучшает особь на месте (может ничего не делать).
	LocalSearch(ind []int)
}

// Perturber — дополнительная возможность адаптера, необходимая ILS.
type Perturber interface {
	Perturb(ind []int, strength int)
}

// Engine — движок поиска с ограничением по времени.
type Engine interface {
	Run(ctx context.Context, budget time.Duration) (Result, error)
}

type Result struct {
	Individual  []int
	Fitness     float64
	Evaluations int
	Iterations  int
	Duration    time.Duration
	// Trace — лучшее значение после инициализации и после каждой итерации
	// (заполняется, если включена запись).
	Trace []float64
	Meta  map[string]any
}
