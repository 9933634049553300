package pso

import (
	"fmt"

	utilerrors "k8s.io/apimachinery/pkg/util/errors"
)

type Config struct {
	// Iterations — ограничение числа итераций (0 — только бюджет времени).
	Iterations int

	Particles int

	// PrevConfidence — вероятность взять ген из личного лучшего решения частицы.
	PrevConfidence float64
	// NeighborConfidence — вероятность взять ген из глобального лучшего решения
	// (проверяется, если ген не взят из личного лучшего).
	NeighborConfidence float64

	LocalSearchEnabled bool
	RecordTrace        bool
}

func DefaultConfig() Config {
	return Config{
		Iterations:         0,
		Particles:          30,
		PrevConfidence:     0.4,
		NeighborConfidence: 0.5,
		LocalSearchEnabled: true,
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
	if c.Particles <= 0 {
		errs = append(errs, fmt.Errorf(
			"Particles должно быть > 0 (получено %d)",
			c.Particles,
		))
	}
	if c.PrevConfidence < 0 || c.PrevConfidence > 1 {
		errs = append(errs, fmt.Errorf(
			"PrevConfidence должно быть в диапазоне [0,1] (получено %f)",
			c.PrevConfidence,
		))
	}
	if c.NeighborConfidence < 0 || c.NeighborConfidence > 1 {
		errs = append(errs, fmt.Errorf(
			"NeighborConfidence должно быть в диапазоне [0,1] (получено %f)",
			c.NeighborConfidence,
		))
	}
	return utilerrors.NewAggregate(errs)
}
