package pso

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

// Solver — дискретный алгоритм роя частиц.
type Solver struct {
	Cfg     Config
	Problem opt.Problem
	Rng     rng.Source
	Clock   clock.PassiveClock
}

// New возвращает новый PSO-солвер с валидацией конфигурации.
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

// particle описывает одну частицу роя.
type particle struct {
	// pos — текущая позиция
	pos []int
	// pBestPos — лучшая позиция частицы за всё время
	pBestPos []int
	// pBestCost — значение целевой функции в pBestPos
	pBestCost float64
}

// move переводит позицию частицы: каждый ген берётся из личного лучшего,
// из глобального лучшего или выбирается случайно.
func (s *Solver) move(p *particle, gBest []int) {
	last := len(p.pos) - 1
	for g := range p.pos {
		switch {
		case s.Rng.Float64() < s.Cfg.PrevConfidence:
			p.pos[g] = p.pBestPos[g]
		case s.Rng.Float64() < s.Cfg.NeighborConfidence:
			p.pos[g] = gBest[g]
		default:
			p.pos[g] = s.Rng.DiscreteUniform(0, last)
		}
	}
}

// settle восстанавливает позицию, применяет локальный поиск и оценивает её.
func (s *Solver) settle(p *particle) float64 {
	s.Problem.Repair(p.pos)
	if s.Cfg.LocalSearchEnabled {
		s.Problem.LocalSearch(p.pos)
	}
	cost := s.Problem.Fitness(p.pos)
	if cost < p.pBestCost {
		p.pBestCost = cost
		copy(p.pBestPos, p.pos)
	}
	return cost
}

// Run выполняет поиск до исчерпания бюджета, ограничения числа итераций
// или отмены ctx.
func (s *Solver) Run(ctx context.Context, budget time.Duration) (opt.Result, error) {
	logger := klog.FromContext(ctx).WithValues("engine", "pso", "problem", s.Problem.Name())
	b := opt.StartBudget(s.Clock, budget)

	n := s.Problem.Size()
	best := opt.NewBest(n, s.Cfg.RecordTrace)

	swarm := make([]particle, s.Cfg.Particles)
	for i := range swarm {
		p := &swarm[i]
		p.pos = s.Problem.InitialSolution()
		p.pBestPos = make([]int, n)
		p.pBestCost = math.Inf(1)
		best.Offer(p.pos, s.settle(p))
	}
	evaluations := len(swarm)
	best.Sample()

	meta := func() map[string]any {
		return map[string]any{
			"particles":           s.Cfg.Particles,
			"prev_confidence":     s.Cfg.PrevConfidence,
			"neighbor_confidence": s.Cfg.NeighborConfidence,
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

		for i := range swarm {
			p := &swarm[i]
			s.move(p, best.Individual)
			cost := s.settle(p)
			evaluations++
			if best.Offer(p.pos, cost) {
				logger.V(2).Info("Improved best", "iteration", iter, "fitness", cost)
			}
		}
		best.Sample()
	}

	res := best.Result(evaluations, iter, b.Elapsed(), meta())
	logger.V(1).Info("Search finished", "iterations", iter, "evaluations", evaluations, "fitness", res.Fitness)
	return res, nil
}
