package ts

import (
	"context"
	"fmt"
	"math"
	"time"

	"k8s.io/klog/v2"
	"k8s.io/utils/clock"

	"metaheuristics/internal/opt"
	"metaheuristics/internal/perm"
	"metaheuristics/internal/rng"
)

// Solver — поиск с запретами в окрестности обменов двух позиций.
type Solver struct {
	Cfg     Config
	Problem opt.Problem
	Rng     rng.Source
	Clock   clock.PassiveClock
}

// New возвращает новый TS-солвер с валидацией конфигурации.
// Используется в фабриках.
func New(cfg Config, problem opt.Problem, src rng.Source) (*Solver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if problem == nil {
		return nil, fmt.Errorf("задача не задана (nil)")
	}
	if src == nil {
		return nil, fmt.Errorf("генератор случайных чисел не инициализирован (nil)")
	}
	return &Solver{Cfg: cfg, Problem: problem, Rng: src}, nil
}

// move — просмотренный соседний ход.
type move struct {
	a, b int
	cost float64
}

// selectMove просматривает NeighborChecks случайных обменов curr и возвращает
// лучший допустимый ход. Табуированный ход допустим, если он лучше bestFitness.
// Если допустимых ходов нет, возвращается лучший просмотренный.
func (s *Solver) selectMove(curr []int, tabu *tabuList, bestFitness float64) move {
	chosen := move{a: -1, cost: math.Inf(1)}
	fallback := move{a: -1, cost: math.Inf(1)}

	for k := 0; k < s.Cfg.NeighborChecks; k++ {
		i, j := perm.RandomPair(len(curr), s.Rng)

		perm.Swap(curr, i, j)
		cost := s.Problem.Fitness(curr)
		perm.Swap(curr, i, j)

		if cost < fallback.cost {
			fallback = move{a: i, b: j, cost: cost}
		}
		if tabu.Contains(moveKey(i, j)) && !(cost < bestFitness) {
			continue
		}
		if cost < chosen.cost {
			chosen = move{a: i, b: j, cost: cost}
		}
	}
	if chosen.a < 0 {
		return fallback
	}
	return chosen
}

// Run — основной цикл алгоритма. Бюджет уменьшается на TimePenalty.
func (s *Solver) Run(ctx context.Context, budget time.Duration) (opt.Result, error) {
	logger := klog.FromContext(ctx).WithValues("engine", "ts", "problem", s.Problem.Name())
	b := opt.StartBudget(s.Clock, budget-s.Cfg.TimePenalty)

	n := s.Problem.Size()
	best := opt.NewBest(n, s.Cfg.RecordTrace)

	curr := s.Problem.InitialSolution()
	s.Problem.Repair(curr)
	if s.Cfg.LocalSearchEnabled {
		s.Problem.LocalSearch(curr)
	}
	currCost := s.Problem.Fitness(curr)
	evaluations := 1
	best.Offer(curr, currCost)
	best.Sample()

	tabu := newTabuList(s.Cfg.TabuListLength)

	meta := func() map[string]any {
		return map[string]any{
			"tabu_list_length": s.Cfg.TabuListLength,
			"neighbor_checks":  s.Cfg.NeighborChecks,
			"time_penalty":     s.Cfg.TimePenalty.String(),
		}
	}

	iter := 0
	for ; b.Continue(iter, s.Cfg.Iterations); iter++ {
		// Для поддержки отмены через context
		if err := ctx.Err(); err != nil {
			m := meta()
			m["stopped"] = "context"
			return best.Result(evaluations, iter, b.Elapsed(), m), err
		}

		chosen := s.selectMove(curr, tabu, best.Fitness)
		evaluations += s.Cfg.NeighborChecks

		perm.Swap(curr, chosen.a, chosen.b)
		currCost = chosen.cost
		tabu.Push(moveKey(chosen.a, chosen.b))

		if s.Cfg.LocalSearchEnabled {
			s.Problem.LocalSearch(curr)
			currCost = s.Problem.Fitness(curr)
			evaluations++
		}

		if best.Offer(curr, currCost) {
			logger.V(2).Info("Improved best", "iteration", iter, "fitness", currCost)
		}
		best.Sample()
	}

	res := best.Result(evaluations, iter, b.Elapsed(), meta())
	logger.V(1).Info("Search finished", "iterations", iter, "evaluations", evaluations, "fitness", res.Fitness)
	return res, nil
}
