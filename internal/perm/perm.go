// Package perm содержит операции над перестановками 0..n-1, общие для всех
// адаптеров задач: генерацию, проверку, восстановление и случайные ходы.
package perm

import (
	"errors"
	"fmt"

	"metaheuristics/internal/rng"
)

// ErrInvalid возвращается, если срез не является перестановкой 0..n-1.
var ErrInvalid = errors.New("invalid permutation")

// Identity заполняет p значениями [0, 1, ..., n-1].
func Identity(p []int) {
	for i := range p {
		p[i] = i
	}
}

// Random возвращает случайную перестановку длины n.
func Random(n int, src rng.Source) []int {
	p := make([]int, n)
	Identity(p)
	Shuffle(p, src)
	return p
}

// Shuffle выполняет случайную перестановку элементов (Фишер-Йетс).
func Shuffle(p []int, src rng.Source) {
	for i := len(p) - 1; i > 0; i-- {
		j := src.DiscreteUniform(0, i)
		p[i], p[j] = p[j], p[i]
	}
}

// Validate проверяет, что p является перестановкой 0..n-1.
func Validate(p []int, n int) error {
	if len(p) != n {
		return fmt.Errorf("%w: length must be %d (got %d)", ErrInvalid, n, len(p))
	}
	seen := make([]bool, n)
	for i, v := range p {
		if v < 0 || v >= n {
			return fmt.Errorf("%w: p[%d]=%d out of range [0,%d)", ErrInvalid, i, v, n)
		}
		if seen[v] {
			return fmt.Errorf("%w: duplicate value %d", ErrInvalid, v)
		}
		seen[v] = true
	}
	return nil
}

// Repair восстанавливает перестановку на месте. Первое вхождение каждого значения
// сохраняется; каждая повторная (или вышедшая за диапазон) позиция получает
// равномерно выбранное ещё не использованное значение. На корректной перестановке
// не выполняет ни одного обращения к src.
func Repair(p []int, src rng.Source) {
	n := len(p)
	used := make([]bool, n)
	bad := make([]bool, n)
	usedCount := 0

	for i, v := range p {
		if v >= 0 && v < n && !used[v] {
			used[v] = true
			usedCount++
			continue
		}
		bad[i] = true
	}
	if usedCount == n {
		return
	}

	for i := range p {
		if !bad[i] {
			continue
		}
		// Номер (с единицы) свободного значения среди ещё не занятых
		k := src.DiscreteUniform(1, n-usedCount)
		for v := 0; v < n; v++ {
			if used[v] {
				continue
			}
			k--
			if k == 0 {
				p[i] = v
				used[v] = true
				usedCount++
				break
			}
		}
	}
}

// Swap обменивает элементы в позициях i и j.
func Swap(p []int, i, j int) {
	p[i], p[j] = p[j], p[i]
}

// RandomPair возвращает две различные случайные позиции из [0, n).
// При n < 2 возвращает (0, 0).
func RandomPair(n int, src rng.Source) (int, int) {
	if n < 2 {
		return 0, 0
	}
	a := src.DiscreteUniform(0, n-1)
	b := src.DiscreteUniform(0, n-2)
	if b >= a {
		b++
	}
	return a, b
}

// Perturb выполняет points случайных обменов на месте.
func Perturb(p []int, points int, src rng.Source) {
	for k := 0; k < points; k++ {
		a, b := RandomPair(len(p), src)
		Swap(p, a, b)
	}
}
