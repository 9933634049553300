package ils

import (
	"context"
	"fmt"
	"math"
	"time"

	"k8s.io/klog/v2"
	"k8s.io/utils/clock"

	"metaheuristics/internal/opt"
	"metaheuristics/internal/rng"
)

// Problem — задача, поддерживающая возмущение.
type Problem interface {
	opt.Problem
	opt.Perturber
}

// Solver — итерированный локальный поиск.
type Solver struct {
	Cfg     Config
	Problem Problem
	Rng     rng.Source
	Clock   clock.PassiveClock
}

// New возвращает новый ILS-солвер. Задача должна реализовывать opt.Perturber.
func New(cfg Config, problem opt.Problem, src rng.Source) (*Solver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if problem == nil {
		return nil, fmt.Errorf("задача не задана (nil)")
	}
	p, ok := problem.(Problem)
	if !ok {
		return nil, fmt.Errorf("задача %q не поддерживает возмущение", problem.Name())
	}
	if src == nil {
		return nil, fmt.Errorf("генератор случайных чисел не инициализирован (nil)")
	}
	return &Solver{Cfg: cfg, Problem: p, Rng: src}, nil
}

// descend повторяет локальный поиск, пока он строго улучшает решение и
// не исчерпан бюджет. Возвращает итоговое значение и число оценок.
func (s *Solver) descend(ind []int, b opt.Budget) (float64, int) {
	cost := s.Problem.Fitness(ind)
	evals := 1
	for !b.Exhausted() {
		s.Problem.LocalSearch(ind)
		next := s.Problem.Fitness(ind)
		evals++
		if next >= cost {
			break
		}
		cost = next
	}
	return cost, evals
}

// accept — критерий принятия кандидата со значением candCost.
func (s *Solver) accept(candCost, currCost, temp float64) bool {
	delta := candCost - currCost
	if delta < 0 {
		return true
	}
	if s.Cfg.Acceptance != AcceptMetropolis {
		return false
	}
	// Критерий Метрополиса: допускает принятие ухудшающих решений
	return s.Rng.Float64() < math.Exp(-delta/temp)
}

// Run выполняет поиск до исчерпания бюджета, ограничения числа итераций
// или отмены ctx.
func (s *Solver) Run(ctx context.Context, budget time.Duration) (opt.Result, error) {
	logger := klog.FromContext(ctx).WithValues("engine", "ils", "problem", s.Problem.Name())
	b := opt.StartBudget(s.Clock, budget)

	n := s.Problem.Size()
	best := opt.NewBest(n, s.Cfg.RecordTrace)

	start := func() ([]int, float64, int) {
		ind := s.Problem.InitialSolution()
		s.Problem.Repair(ind)
		s.Problem.LocalSearch(ind)
		return ind, s.Problem.Fitness(ind), 1
	}

	curr, currCost, evaluations := start()
	best.Offer(curr, currCost)
	best.Sample()

	cand := make([]int, n)
	temp := s.Cfg.Temperature
	stall, restarts := 0, 0

	meta := func() map[string]any {
		return map[string]any{
			"perturbation_points": s.Cfg.PerturbationPoints,
			"restart_iterations":  s.Cfg.RestartIterations,
			"acceptance":          string(s.Cfg.Acceptance),
			"restarts":            restarts,
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

		copy(cand, curr)
		s.Problem.Perturb(cand, s.Cfg.PerturbationPoints)
		s.Problem.Repair(cand)
		candCost, evals := s.descend(cand, b)
		evaluations += evals

		if s.accept(candCost, currCost, temp) {
			// Обмен ролей текущего и кандидатного решений
			curr, cand = cand, curr
			currCost = candCost
		} else {
			copy(curr, best.Individual)
			currCost = best.Fitness
		}

		if best.Offer(curr, currCost) {
			stall = 0
			logger.V(2).Info("Improved best", "iteration", iter, "fitness", currCost)
		} else {
			stall++
		}

		if s.Cfg.RestartIterations > 0 && stall >= s.Cfg.RestartIterations {
			var e int
			curr, currCost, e = start()
			evaluations += e
			best.Offer(curr, currCost)
			temp = s.Cfg.Temperature
			stall = 0
			restarts++
			logger.V(2).Info("Restarted", "iteration", iter, "fitness", currCost)
		}

		// Охлаждение температуры
		temp *= s.Cfg.Alpha
		best.Sample()
	}

	res := best.Result(evaluations, iter, b.Elapsed(), meta())
	logger.V(1).Info("Search finished", "iterations", iter, "restarts", restarts, "fitness", res.Fitness)
	return res, nil
}
