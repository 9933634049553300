package rng

import (
	"fmt"

	"golang.org/x/exp/rand"
)

// Source — внешний источник случайности, используемый адаптерами и движками.
// Все обращения синхронные.
type Source interface {
	// DiscreteUniform возвращает целое число из [low, high] (обе границы включительно).
	DiscreteUniform(low, high int) int
	// Float64 возвращает число из [0, 1).
	Float64() float64
}

// Rand — реализация Source с фиксируемым сидом.
type Rand struct {
	r *rand.Rand
}

// New возвращает генератор, инициализированный заданным сидом.
func New(seed uint64) *Rand {
	return &Rand{r: rand.New(rand.NewSource(seed))}
}

func (g *Rand) DiscreteUniform(low, high int) int {
	if high < low {
		panic(fmt.Sprintf("rng: пустой диапазон [%d, %d]", low, high))
	}
	return low + g.r.Intn(high-low+1)
}

func (g *Rand) Float64() float64 {
	return g.r.Float64()
}
