package qap

import (
	"fmt"

	"metaheuristics/internal/localsearch"
	"metaheuristics/internal/perm"
	"metaheuristics/internal/rng"
)

// Problem — адаптер QAP для движков поиска.
type Problem struct {
	inst   *Instance
	rng    rng.Source
	search localsearch.Kind
}

func NewProblem(inst *Instance, src rng.Source, search localsearch.Kind) (*Problem, error) {
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	if src == nil {
		return nil, fmt.Errorf("генератор случайных чисел не инициализирован (nil)")
	}
	if search == "" {
		search = localsearch.KindNone
	}
	return &Problem{inst: inst, rng: src, search: search}, nil
}

func (p *Problem) Name() string { return "qap" }

func (p *Problem) Size() int { return p.inst.Facilities }

func (p *Problem) Instance() *Instance { return p.inst }

func (p *Problem) InitialSolution() []int {
	return perm.Random(p.inst.Facilities, p.rng)
}

func (p *Problem) Fitness(ind []int) float64 {
	return p.inst.Cost(ind)
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
