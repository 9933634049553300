package ga

import "metaheuristics/internal/rng"

// tournamentSelect реализует турнирный отбор.
// Возвращается индекс особи с минимальным значением целевой функции.
func tournamentSelect(scores []float64, tournamentSize int, src rng.Source) int {
	last := len(scores) - 1
	best := src.DiscreteUniform(0, last)
	bestScore := scores[best]
	for i := 1; i < tournamentSize; i++ {
		cand := src.DiscreteUniform(0, last)
		if scores[cand] < bestScore {
			best = cand
			bestScore = scores[cand]
		}
	}
	return best
}

// maxParentDraws — число повторных турниров за второго родителя.
const maxParentDraws = 8

// selectSecondParent выбирает второго родителя, отличного от p1. Если турнир
// maxParentDraws раз подряд возвращает p1, берётся случайная другая особь.
func selectSecondParent(scores []float64, p1, tournamentSize int, src rng.Source) int {
	for k := 0; k < maxParentDraws; k++ {
		if p2 := tournamentSelect(scores, tournamentSize, src); p2 != p1 {
			return p2
		}
	}
	n := len(scores)
	return (p1 + 1 + src.DiscreteUniform(0, n-2)) % n
}

// uniformCrossover — каждый ген потомков берётся у одного из родителей с
// вероятностью 1/2. Потомки, как правило, не являются перестановками.
func uniformCrossover(p1, p2, c1, c2 []int, src rng.Source) {
	for i := range p1 {
		if src.Float64() < 0.5 {
			c1[i], c2[i] = p1[i], p2[i]
		} else {
			c1[i], c2[i] = p2[i], p1[i]
		}
	}
}

// orderCrossoverOX реализует оператор Order Crossover.
func orderCrossoverOX(
	p1, p2, c1, c2 []int,
	src rng.Source,
	mark []int,
	stamp *int,
) {
	n := len(p1)

	// Выбор случайного отрезка [a, b)
	a := src.DiscreteUniform(0, n-1)
	b := src.DiscreteUniform(0, n-1)
	if a > b {
		a, b = b, a
	}
	if a == b {
		// Что бы длина сегмента не была 0
		b = (a + 1) % n
		if a > b {
			a, b = b, a
		}
	}

	oxChild(p1, p2, c1, a, b, mark, stamp)
	oxChild(p2, p1, c2, a, b, mark, stamp)
}

// oxChild копирует отрезок [a, b) из donor, остальные позиции заполняет
// генами filler по кругу, начиная с позиции b.
func oxChild(donor, filler, child []int, a, b int, mark []int, stamp *int) {
	n := len(donor)
	for i := range child {
		child[i] = -1
	}

	*stamp++
	cur := *stamp

	for i := a; i < b; i++ {
		gene := donor[i]
		child[i] = gene
		mark[gene] = cur
	}

	pos := b % n
	for i := 0; i < n; i++ {
		gene := filler[(b+i)%n]
		if mark[gene] == cur {
			continue
		}
		for child[pos] != -1 {
			pos = (pos + 1) % n
		}
		child[pos] = gene
		mark[gene] = cur
	}
}

// mutateResample заменяет каждый ген с вероятностью rate случайным значением
// из [0, n-1]. Результат требует восстановления.
func mutateResample(p []int, rate float64, src rng.Source) {
	last := len(p) - 1
	for i := range p {
		if src.Float64() < rate {
			p[i] = src.DiscreteUniform(0, last)
		}
	}
}

// mutateSwap с вероятностью rate для каждого гена меняет его местом со
// случайной другой позицией; перестановка сохраняется.
func mutateSwap(p []int, rate float64, src rng.Source) {
	n := len(p)
	if n < 2 {
		return
	}
	for i := range p {
		if src.Float64() >= rate {
			continue
		}
		j := src.DiscreteUniform(0, n-2)
		if j >= i {
			j++
		}
		p[i], p[j] = p[j], p[i]
	}
}
