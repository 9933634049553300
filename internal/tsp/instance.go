// Package tsp — адаптер задачи коммивояжёра: особь задаёт порядок обхода городов,
// значение целевой функции — длина замкнутого маршрута.
package tsp

import (
	"errors"
	"fmt"
	"math"
)

type Instance struct {
	Cities int
	// Costs — матрица стоимостей Cities*Cities построчно.
	Costs []float64
}

func NewInstance(cities int, costs []float64) (*Instance, error) {
	inst := &Instance{Cities: cities, Costs: costs}
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	return inst, nil
}

func (inst *Instance) Validate() error {
	if inst == nil {
		return errors.New("instance is nil")
	}
	if inst.Cities <= 0 {
		return fmt.Errorf("cities must be > 0 (got %d)", inst.Cities)
	}
	if len(inst.Costs) != inst.Cities*inst.Cities {
		return fmt.Errorf("costs length must be cities*cities=%d (got %d)", inst.Cities*inst.Cities, len(inst.Costs))
	}
	for i, v := range inst.Costs {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return fmt.Errorf("costs[%d] must be finite and >= 0 (got %v)", i, v)
		}
	}
	return nil
}

func (inst *Instance) Cost(from, to int) float64 {
	return inst.Costs[from*inst.Cities+to]
}

// TourLength возвращает длину замкнутого маршрута path.
func (inst *Instance) TourLength(path []int) float64 {
	if len(path) == 0 {
		return 0
	}
	cost := 0.0
	for i := 1; i < len(path); i++ {
		cost += inst.Cost(path[i-1], path[i])
	}
	return cost + inst.Cost(path[len(path)-1], path[0])
}
