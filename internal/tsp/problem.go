package tsp

import (
	"fmt"

	"metaheuristics/internal/localsearch"
	"metaheuristics/internal/perm"
	"metaheuristics/internal/rng"
)

// Initial — способ построения начального решения.
type Initial string

const (
	InitialRandom Initial = "random"
	InitialGRC    Initial = "grc"
)

// Problem — адаптер TSP для движков поиска.
type Problem struct {
	inst   *Instance
	rng    rng.Source
	search localsearch.Kind

	initial      Initial
	rclThreshold float64
}

type Option func(*Problem)

// WithLocalSearch задаёт вариант 2-opt (по умолчанию поиск отключён).
func WithLocalSearch(k localsearch.Kind) Option {
	return func(p *Problem) { p.search = k }
}

// WithGRC включает жадно-рандомизированное начальное решение с порогом threshold (>= 1).
func WithGRC(threshold float64) Option {
	return func(p *Problem) {
		p.initial = InitialGRC
		p.rclThreshold = threshold
	}
}

func NewProblem(inst *Instance, src rng.Source, opts ...Option) (*Problem, error) {
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	if src == nil {
		return nil, fmt.Errorf("генератор случайных чисел не инициализирован (nil)")
	}
	p := &Problem{inst: inst, rng: src, search: localsearch.KindNone, initial: InitialRandom}
	for _, o := range opts {
		o(p)
	}
	if p.initial == InitialGRC && p.rclThreshold < 1 {
		return nil, fmt.Errorf("rcl threshold must be >= 1 (got %v)", p.rclThreshold)
	}
	return p, nil
}

func (p *Problem) Name() string { return "tsp" }

func (p *Problem) Size() int { return p.inst.Cities }

func (p *Problem) Instance() *Instance { return p.inst }

func (p *Problem) InitialSolution() []int {
	if p.initial == InitialGRC {
		return GRCSolution(p.inst, p.rclThreshold, p.rng)
	}
	return perm.Random(p.inst.Cities, p.rng)
}

func (p *Problem) Fitness(ind []int) float64 {
	return p.inst.TourLength(ind)
}

func (p *Problem) Repair(ind []int) {
	perm.Repair(ind, p.rng)
}

func (p *Problem) LocalSearch(ind []int) {
	localsearch.Apply(p.search, ind, p.Fitness)
}

func (p *Problem) Perturb(ind []int, strength int) {
	perm.Perturb(ind, strength, p.rng)
}
