package driver

import (
	"fmt"
	"io"

	"metaheuristics/internal/config"
	"metaheuristics/internal/opt"
	"metaheuristics/internal/qap"
	"metaheuristics/internal/rng"
	"metaheuristics/internal/tsp"
	"metaheuristics/internal/twosp"
)

// Instance — загруженный экземпляр одной из задач. Только для чтения;
// может разделяться между запусками.
type Instance struct {
	Problem string
	Path    string

	tsp   *tsp.Instance
	qap   *qap.Instance
	twosp *twosp.Instance
}

// Size возвращает размер особи для экземпляра.
func (inst *Instance) Size() int {
	switch {
	case inst.tsp != nil:
		return inst.tsp.Cities
	case inst.qap != nil:
		return inst.qap.Facilities
	case inst.twosp != nil:
		return inst.twosp.Items
	}
	return 0
}

// LoadInstance читает файл экземпляра задачи problem.
func LoadInstance(problem, path string) (*Instance, error) {
	inst := &Instance{Problem: problem, Path: path}
	var err error
	switch problem {
	case config.ProblemTSP:
		inst.tsp, err = tsp.ReadFile(path)
	case config.ProblemQAP:
		inst.qap, err = qap.ReadFile(path)
	case config.ProblemTwoSP:
		inst.twosp, err = twosp.ReadFile(path)
	default:
		return nil, fmt.Errorf("неизвестная задача %q", problem)
	}
	if err != nil {
		return nil, err
	}
	return inst, nil
}

// Problem — адаптер задачи, умеющий записывать решение.
type Problem interface {
	opt.Problem
	opt.Perturber
	WriteSolution(w io.Writer, ind []int) error
}

type tspProblem struct{ *tsp.Problem }

func (p tspProblem) WriteSolution(w io.Writer, ind []int) error {
	return tsp.WriteSolution(w, p.Instance(), ind)
}

type qapProblem struct{ *qap.Problem }

func (p qapProblem) WriteSolution(w io.Writer, ind []int) error {
	return qap.WriteSolution(w, p.Instance(), ind)
}

type twospProblem struct{ *twosp.Problem }

func (p twospProblem) WriteSolution(w io.Writer, ind []int) error {
	coords, err := p.Decode(ind)
	if err != nil {
		return err
	}
	return twosp.WriteSolution(w, p.Instance(), ind, coords)
}

// NewProblem строит адаптер для экземпляра inst по параметрам cfg.
func NewProblem(cfg config.Run, inst *Instance, src rng.Source) (Problem, error) {
	switch {
	case inst.tsp != nil:
		opts := []tsp.Option{tsp.WithLocalSearch(cfg.LocalSearch)}
		if cfg.GRCThreshold > 0 {
			opts = append(opts, tsp.WithGRC(cfg.GRCThreshold))
		}
		p, err := tsp.NewProblem(inst.tsp, src, opts...)
		if err != nil {
			return nil, err
		}
		return tspProblem{p}, nil
	case inst.qap != nil:
		p, err := qap.NewProblem(inst.qap, src, cfg.LocalSearch)
		if err != nil {
			return nil, err
		}
		return qapProblem{p}, nil
	case inst.twosp != nil:
		p, err := twosp.NewProblem(inst.twosp, src,
			twosp.WithLocalSearch(cfg.LocalSearch),
			twosp.WithDecoder(cfg.Decoder),
			twosp.WithFitnessCache(cfg.FitnessCacheTTL.Duration),
		)
		if err != nil {
			return nil, err
		}
		return twospProblem{p}, nil
	}
	return nil, fmt.Errorf("экземпляр не загружен")
}
