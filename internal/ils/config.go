package ils

import (
	"fmt"

	utilerrors "k8s.io/apimachinery/pkg/util/errors"
)

// Acceptance — критерий принятия решения после возмущения и локального поиска.
type Acceptance string

const (
	// AcceptBetter принимает только строго улучшающие решения.
	AcceptBetter Acceptance = "better"
	// AcceptMetropolis дополнительно принимает ухудшения по критерию Метрополиса.
	AcceptMetropolis Acceptance = "metropolis"
)

type Config struct {
	// Iterations — ограничение числа итераций (0 — только бюджет времени).
	Iterations int

	// RestartIterations — число итераций подряд без улучшения, после которого
	// поиск перезапускается с нового начального решения (0 — без перезапусков).
	RestartIterations int

	// PerturbationPoints — число случайных обменов при возмущении.
	PerturbationPoints int

	Acceptance Acceptance
	// Temperature и Alpha используются критерием Метрополиса.
	Temperature float64
	Alpha       float64

	RecordTrace bool
}

func DefaultConfig() Config {
	return Config{
		Iterations:         0,
		RestartIterations:  50,
		PerturbationPoints: 3,
		Acceptance:         AcceptBetter,
		Temperature:        10,
		Alpha:              0.99,
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
	if c.RestartIterations < 0 {
		errs = append(errs, fmt.Errorf(
			"RestartIterations должно быть >= 0 (получено %d)",
			c.RestartIterations,
		))
	}
	if c.PerturbationPoints <= 0 {
		errs = append(errs, fmt.Errorf(
			"PerturbationPoints должно быть > 0 (получено %d)",
			c.PerturbationPoints,
		))
	}
	switch c.Acceptance {
	case AcceptBetter:
	case AcceptMetropolis:
		if c.Temperature <= 0 {
			errs = append(errs, fmt.Errorf(
				"Temperature должно быть > 0 (получено %f)",
				c.Temperature,
			))
		}
		if c.Alpha <= 0 || c.Alpha > 1 {
			errs = append(errs, fmt.Errorf(
				"alpha должно лежать в интервале (0,1] (получено %f)",
				c.Alpha,
			))
		}
	default:
		errs = append(errs, fmt.Errorf(
			"неизвестный критерий принятия %q",
			c.Acceptance,
		))
	}
	return utilerrors.NewAggregate(errs)
}
