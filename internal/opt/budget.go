package opt

import (
	"time"

	"k8s.io/utils/clock"
)

// Budget — ограничение по времени работы движка.
// Проверяется кооперативно на границах итераций.
type Budget struct {
	clock clock.PassiveClock
	start time.Time
	limit time.Duration
}

// StartBudget начинает отсчёт. При c == nil используются реальные часы.
func StartBudget(c clock.PassiveClock, limit time.Duration) Budget {
	if c == nil {
		c = clock.RealClock{}
	}
	if limit < 0 {
		limit = 0
	}
	return Budget{clock: c, start: c.Now(), limit: limit}
}

func (b Budget) Elapsed() time.Duration {
	return b.clock.Since(b.start)
}

func (b Budget) Exhausted() bool {
	return b.Elapsed() >= b.limit
}

// Continue сообщает, можно ли начать итерацию iter (maxIter <= 0 — без ограничения).
func (b Budget) Continue(iter, maxIter int) bool {
	if maxIter > 0 && iter >= maxIter {
		return false
	}
	return !b.Exhausted()
}
