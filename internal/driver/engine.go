package driver

import (
	"fmt"
	"math"
	"time"

	"k8s.io/utils/clock"

	"metaheuristics/internal/config"
	"metaheuristics/internal/ga"
	"metaheuristics/internal/ils"
	"metaheuristics/internal/opt"
	"metaheuristics/internal/pso"
	"metaheuristics/internal/rng"
	"metaheuristics/internal/ts"
)

// Scale подбирает параметры движков по размеру экземпляра n:
// популяция GA max(10, n/3) и мутация 0.3 для TSP и 2SP, 50n для QAP;
// для TS число соседей ceil(0.25*2n), длина табу-списка ceil(0.2n) и штраф 100ms.
func Scale(cfg config.Run, n int) config.Run {
	if cfg.Problem == config.ProblemQAP {
		cfg.GA.Population = max(2, 50*n)
	} else {
		cfg.GA.Population = max(10, n/3)
		cfg.GA.MutationRate = 0.3
	}
	if cfg.GA.Elite >= cfg.GA.Population {
		cfg.GA.Elite = cfg.GA.Population - 1
	}
	cfg.TS.NeighborChecks = max(1, int(math.Ceil(0.25*2*float64(n))))
	cfg.TS.TabuListLength = max(1, int(math.Ceil(0.2*float64(n))))
	penalty := config.Duration{Duration: 100 * time.Millisecond}
	cfg.TS.TimePenalty = &penalty
	return cfg
}

// NewEngine строит движок cfg.Engine над задачей p. Часы c используются для
// бюджета времени (nil — реальные).
func NewEngine(cfg config.Run, p opt.Problem, src rng.Source, c clock.PassiveClock) (opt.Engine, error) {
	switch cfg.Engine {
	case config.EngineGA:
		s, err := ga.New(cfg.GA, p, src)
		if err != nil {
			return nil, err
		}
		s.Clock = c
		return s, nil
	case config.EnginePSO:
		s, err := pso.New(cfg.PSO, p, src)
		if err != nil {
			return nil, err
		}
		s.Clock = c
		return s, nil
	case config.EngineTS:
		s, err := ts.New(cfg.TS.Engine(), p, src)
		if err != nil {
			return nil, err
		}
		s.Clock = c
		return s, nil
	case config.EngineILS:
		s, err := ils.New(cfg.ILS, p, src)
		if err != nil {
			return nil, err
		}
		s.Clock = c
		return s, nil
	}
	return nil, fmt.Errorf("неизвестный движок %q", cfg.Engine)
}
