// Package qap — адаптер квадратичной задачи о назначениях: особь p ставит
// объект i в позицию p[i]; целевая функция sum flow[i][j] * dist[p[i]][p[j]].
package qap

import (
	"errors"
	"fmt"
	"math"
)

type Instance struct {
	Facilities int
	// Flow и Distance — матрицы Facilities*Facilities построчно.
	Flow     []float64
	Distance []float64
}

func NewInstance(n int, flow, distance []float64) (*Instance, error) {
	inst := &Instance{Facilities: n, Flow: flow, Distance: distance}
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	return inst, nil
}

func (inst *Instance) Validate() error {
	if inst == nil {
		return errors.New("instance is nil")
	}
	n := inst.Facilities
	if n <= 0 {
		return fmt.Errorf("facilities must be > 0 (got %d)", n)
	}
	if len(inst.Flow) != n*n {
		return fmt.Errorf("flow length must be %d (got %d)", n*n, len(inst.Flow))
	}
	if len(inst.Distance) != n*n {
		return fmt.Errorf("distance length must be %d (got %d)", n*n, len(inst.Distance))
	}
	for i := range inst.Flow {
		if math.IsNaN(inst.Flow[i]) || math.IsInf(inst.Flow[i], 0) {
			return fmt.Errorf("flow[%d] must be finite (got %v)", i, inst.Flow[i])
		}
		if math.IsNaN(inst.Distance[i]) || math.IsInf(inst.Distance[i], 0) {
			return fmt.Errorf("distance[%d] must be finite (got %v)", i, inst.Distance[i])
		}
	}
	return nil
}

// Cost возвращает стоимость назначения assignment.
func (inst *Instance) Cost(assignment []int) float64 {
	n := inst.Facilities
	cost := 0.0
	for i := 0; i < n; i++ {
		row := inst.Flow[i*n : (i+1)*n]
		di := assignment[i] * n
		for j, f := range row {
			if f == 0 {
				continue
			}
			cost += f * inst.Distance[di+assignment[j]]
		}
	}
	return cost
}
