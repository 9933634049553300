// Package localsearch содержит 2-opt поиск по парным обменам позиций
// для особей-перестановок.
//
// Оба варианта перебирают пары (i, j), i < j, в порядке j = 1..n-1, i = 0..j-1,
// выполняя обмен, оценку и обратный обмен. Особь заимствуется на время поиска и
// при любом выходе остаётся либо исходной, либо с ровно одним применённым обменом.
package localsearch

// Fitness — целевая функция (меньше — лучше).
type Fitness func(p []int) float64

// Kind — вариант 2-opt.
type Kind string

const (
	KindNone  Kind = "none"
	KindFirst Kind = "first"
	KindBest  Kind = "best"
)

// Apply выполняет поиск вида k. Для KindNone возвращает (f(p), false)
// без изменения особи.
func Apply(k Kind, p []int, f Fitness) (float64, bool) {
	switch k {
	case KindFirst:
		return First(p, f)
	case KindBest:
		return Best(p, f)
	default:
		return f(p), false
	}
}

// First — 2-opt с первым улучшением. Применяет первый обмен, строго улучшающий
// значение исходной особи. Возвращает значение итоговой особи и признак хода.
func First(p []int, f Fitness) (float64, bool) {
	base := f(p)
	for j := 1; j < len(p); j++ {
		for i := 0; i < j; i++ {
			p[i], p[j] = p[j], p[i]
			if cur := f(p); cur < base {
				return cur, true
			}
			p[i], p[j] = p[j], p[i]
		}
	}
	return base, false
}

// Best — 2-opt с лучшим улучшением. Оценивает все обмены и применяет только
// лучший из строго улучшающих.
func Best(p []int, f Fitness) (float64, bool) {
	best := f(p)
	bi, bj := -1, -1
	for j := 1; j < len(p); j++ {
		for i := 0; i < j; i++ {
			p[i], p[j] = p[j], p[i]
			if cur := f(p); cur < best {
				best = cur
				bi, bj = i, j
			}
			p[i], p[j] = p[j], p[i]
		}
	}
	if bi < 0 {
		return best, false
	}
	p[bi], p[bj] = p[bj], p[bi]
	return best, true
}
