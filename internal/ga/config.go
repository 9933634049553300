package ga

import (
	"fmt"

	utilerrors "k8s.io/apimachinery/pkg/util/errors"
)

// Crossover — оператор скрещивания.
type Crossover string

const (
	// CrossoverUniform выбирает каждый ген у одного из родителей; потомок требует восстановления.
	CrossoverUniform Crossover = "uniform"
	// CrossoverOX — order crossover, сохраняет перестановку.
	CrossoverOX Crossover = "ox"
)

type Config struct {
	Population int
	// Iterations — ограничение числа поколений (0 — только бюджет времени).
	Iterations     int
	Elite          int
	TournamentSize int
	CrossoverRate  float64
	Crossover      Crossover
	// MutationRate — вероятность мутации каждого гена.
	MutationRate float64

	RepairEnabled      bool
	LocalSearchEnabled bool
	RecordTrace        bool
}

func DefaultConfig() Config {
	return Config{
		Population:         50,
		Iterations:         0,
		Elite:              2,
		TournamentSize:     3,
		CrossoverRate:      0.9,
		Crossover:          CrossoverUniform,
		MutationRate:       0.3,
		RepairEnabled:      true,
		LocalSearchEnabled: true,
	}
}

// Validate проверяет все поля и возвращает агрегированную ошибку.
func (c Config) Validate() error {
	var errs []error
	if c.Population <= 1 {
		errs = append(errs, fmt.Errorf(
			"размер популяции должен быть > 1 (получено %d)",
			c.Population,
		))
	}
	if c.Iterations < 0 {
		errs = append(errs, fmt.Errorf(
			"количество поколений должно быть >= 0 (получено %d)",
			c.Iterations,
		))
	}
	if c.Elite < 0 || c.Elite >= c.Population {
		errs = append(errs, fmt.Errorf(
			"число элитных особей должно быть в диапазоне [0, population) (получено %d)",
			c.Elite,
		))
	}
	if c.TournamentSize <= 0 {
		errs = append(errs, fmt.Errorf(
			"размер турнира должен быть > 0 (получено %d)",
			c.TournamentSize,
		))
	}
	if c.CrossoverRate < 0 || c.CrossoverRate > 1 {
		errs = append(errs, fmt.Errorf(
			"вероятность кроссовера должна быть в диапазоне [0,1] (получено %f)",
			c.CrossoverRate,
		))
	}
	if c.MutationRate < 0 || c.MutationRate > 1 {
		errs = append(errs, fmt.Errorf(
			"вероятность мутации должна быть в диапазоне [0,1] (получено %f)",
			c.MutationRate,
		))
	}
	switch c.Crossover {
	case CrossoverOX:
	case CrossoverUniform:
		if !c.RepairEnabled {
			errs = append(errs, fmt.Errorf(
				"кроссовер %q требует включённого восстановления",
				c.Crossover,
			))
		}
	default:
		errs = append(errs, fmt.Errorf(
			"неизвестный тип кроссовера %q",
			c.Crossover,
		))
	}
	return utilerrors.NewAggregate(errs)
}
