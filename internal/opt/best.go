package opt

import (
	"math"
	"time"
)

// Best хранит лучшую найденную особь. Обновляется только при строгом улучшении.
type Best struct {
	Individual []int
	Fitness    float64
	Trace      []float64

	record bool
}

func NewBest(n int, record bool) *Best {
	return &Best{
		Individual: make([]int, n),
		Fitness:    math.Inf(1),
		record:     record,
	}
}

// Offer копирует ind, если fitness строго лучше текущего.
func (b *Best) Offer(ind []int, fitness float64) bool {
	if fitness >= b.Fitness {
		return false
	}
	b.Fitness = fitness
	copy(b.Individual, ind)
	return true
}

// Sample добавляет текущее лучшее значение в трассу.
func (b *Best) Sample() {
	if b.record {
		b.Trace = append(b.Trace, b.Fitness)
	}
}

// Result формирует результат, копируя лучшую особь.
func (b *Best) Result(evals, iters int, d time.Duration, meta map[string]any) Result {
	ind := make([]int, len(b.Individual))
	copy(ind, b.Individual)
	return Result{
		Individual:  ind,
		Fitness:     b.Fitness,
		Evaluations: evals,
		Iterations:  iters,
		Duration:    d,
		Trace:       b.Trace,
		Meta:        meta,
	}
}
