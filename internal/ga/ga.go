package ga

import (
	"context"
	"fmt"
	"sort"
	"time"

	"k8s.io/klog/v2"
	"k8s.io/utils/clock"

	"metaheuristics/internal/opt"
	"metaheuristics/internal/rng"
)

// Solver — генетический алгоритм над перестановками.
type Solver struct {
	Cfg     Config
	Problem opt.Problem
	Rng     rng.Source
	// Clock — часы для бюджета времени (nil — реальные).
	Clock clock.PassiveClock
}

// New возвращает новый GA-солвер с валидацией конфигурации.
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

// prepare восстанавливает особь и применяет локальный поиск, если они включены.
func (s *Solver) prepare(ind []int) {
	if s.Cfg.RepairEnabled {
		s.Problem.Repair(ind)
	}
	if s.Cfg.LocalSearchEnabled {
		s.Problem.LocalSearch(ind)
	}
}

func (s *Solver) mutate(ind []int) {
	if s.Cfg.RepairEnabled {
		mutateResample(ind, s.Cfg.MutationRate, s.Rng)
		return
	}
	mutateSwap(ind, s.Cfg.MutationRate, s.Rng)
}

// Run выполняет поиск до исчерпания бюджета, ограничения числа поколений
// или отмены ctx. Инициализация популяции выполняется всегда.
func (s *Solver) Run(ctx context.Context, budget time.Duration) (opt.Result, error) {
	logger := klog.FromContext(ctx).WithValues("engine", "ga", "problem", s.Problem.Name())
	b := opt.StartBudget(s.Clock, budget)

	n := s.Problem.Size()
	popSize := s.Cfg.Population

	makePerms := func() [][]int {
		backing := make([]int, popSize*n)
		perms := make([][]int, popSize)
		for i := 0; i < popSize; i++ {
			perms[i] = backing[i*n : (i+1)*n]
		}
		return perms
	}

	// Две популяции: текущая (A) и следующая (B)
	permsA := makePerms()
	permsB := makePerms()
	scoresA := make([]float64, popSize)
	scoresB := make([]float64, popSize)

	best := opt.NewBest(n, s.Cfg.RecordTrace)
	for i := 0; i < popSize; i++ {
		copy(permsA[i], s.Problem.InitialSolution())
		s.prepare(permsA[i])
		scoresA[i] = s.Problem.Fitness(permsA[i])
		best.Offer(permsA[i], scoresA[i])
	}
	evaluations := popSize
	best.Sample()
	logger.V(2).Info("Population initialized", "size", popSize, "fitness", best.Fitness)

	mark := make([]int, n)
	stamp := 0
	scratchChild := make([]int, n)

	idxs := make([]int, popSize)
	for i := range idxs {
		idxs[i] = i
	}

	meta := func() map[string]any {
		return map[string]any{
			"population": s.Cfg.Population,
			"elite":      s.Cfg.Elite,
			"crossover":  string(s.Cfg.Crossover),
			"mutation":   s.Cfg.MutationRate,
		}
	}

	gen := 0
	for ; b.Continue(gen, s.Cfg.Iterations); gen++ {
		// Для поддержки отмены через context
		if err := ctx.Err(); err != nil {
			m := meta()
			m["stopped"] = "context"
			return best.Result(evaluations, gen, b.Elapsed(), m), err
		}

		// Сортировка индексов по возрастанию значения целевой функции
		sort.Slice(idxs, func(i, j int) bool {
			return scoresA[idxs[i]] < scoresA[idxs[j]]
		})

		write := 0

		// Элитизм (переносим лучших особей без изменений)
		for e := 0; e < s.Cfg.Elite; e++ {
			src := idxs[e]
			copy(permsB[write], permsA[src])
			scoresB[write] = scoresA[src]
			write++
		}

		for write < popSize {
			p1 := tournamentSelect(scoresA, s.Cfg.TournamentSize, s.Rng)
			p2 := selectSecondParent(scoresA, p1, s.Cfg.TournamentSize, s.Rng)

			child1 := permsB[write]
			hasSecond := write+1 < popSize
			child2 := scratchChild
			if hasSecond {
				child2 = permsB[write+1]
			}

			if s.Rng.Float64() < s.Cfg.CrossoverRate {
				if s.Cfg.Crossover == CrossoverOX {
					orderCrossoverOX(permsA[p1], permsA[p2], child1, child2, s.Rng, mark, &stamp)
				} else {
					uniformCrossover(permsA[p1], permsA[p2], child1, child2, s.Rng)
				}
			} else {
				copy(child1, permsA[p1])
				copy(child2, permsA[p2])
			}

			children := [][]int{child1}
			if hasSecond {
				children = append(children, child2)
			}
			for _, child := range children {
				s.mutate(child)
				s.prepare(child)
				scoresB[write] = s.Problem.Fitness(child)
				evaluations++
				if best.Offer(child, scoresB[write]) {
					logger.V(2).Info("Improved best", "generation", gen, "fitness", best.Fitness)
				}
				write++
			}
		}

		// Смена поколений
		permsA, permsB = permsB, permsA
		scoresA, scoresB = scoresB, scoresA
		best.Sample()
	}

	res := best.Result(evaluations, gen, b.Elapsed(), meta())
	logger.V(1).Info("Search finished", "generations", gen, "evaluations", evaluations, "fitness", res.Fitness)
	return res, nil
}
