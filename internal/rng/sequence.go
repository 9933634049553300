package rng

import "fmt"

// Sequence — детерминированный источник, возвращающий заранее заданные значения.
// Используется в тестах. Целые значения приводятся к диапазону запроса
// (value mod (high-low+1) + low), вещественные берутся по кругу.
type Sequence struct {
	Ints   []int
	Floats []float64

	i, f int
}

func (s *Sequence) DiscreteUniform(low, high int) int {
	if high < low {
		panic(fmt.Sprintf("rng: пустой диапазон [%d, %d]", low, high))
	}
	if len(s.Ints) == 0 {
		return low
	}
	v := s.Ints[s.i%len(s.Ints)]
	s.i++
	span := high - low + 1
	v %= span
	if v < 0 {
		v += span
	}
	return low + v
}

func (s *Sequence) Float64() float64 {
	if len(s.Floats) == 0 {
		return 0
	}
	v := s.Floats[s.f%len(s.Floats)]
	s.f++
	return v
}
