package ts

import (
	"fmt"
	"time"

	utilerrors "k8s.io/apimachinery/pkg/util/errors"
)

type Config struct {
	// Iterations — ограничение числа итераций (0 — только бюджет времени).
	Iterations int

	// TabuListLength — ёмкость табу-списка; при переполнении вытесняется самый старый ход.
	TabuListLength int

	// NeighborChecks — число случайных соседей, просматриваемых за итерацию.
	NeighborChecks int

	// TimePenalty вычитается из бюджета перед началом поиска.
	TimePenalty time.Duration

	LocalSearchEnabled bool
	RecordTrace        bool
}

func DefaultConfig() Config {
	return Config{
		Iterations:     0,
		TabuListLength: 10,
		NeighborChecks: 20,
		TimePenalty:    100 * time.Millisecond,
	}
}

func (c Config) Validate() error {
	var errs []error
	if c.Iterations < 0 {
		errs = append(errs, fmt.Errorf(
			"Iterations должно быть >= 0 (получено %d)",
			c.Iterations,
		))
	}
	if c.TabuListLength <= 0 {
		errs = append(errs, fmt.Errorf(
			"TabuListLength должно быть > 0 (получено %d)",
			c.TabuListLength,
		))
	}
	if c.NeighborChecks <= 0 {
		errs = append(errs, fmt.Errorf(
			"NeighborChecks должно быть > 0 (получено %d)",
			c.NeighborChecks,
		))
	}
	if c.TimePenalty < 0 {
		errs = append(errs, fmt.Errorf(
			"TimePenalty должно быть >= 0 (получено %s)",
			c.TimePenalty,
		))
	}
	return utilerrors.NewAggregate(errs)
}
