package bench

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Stats — сводка по серии запусков; Std — несмещённое стандартное отклонение.
type Stats struct {
	N    int
	Best float64
	Mean float64
	Std  float64
}

func CalcStats(values []float64) Stats {
	s := Stats{N: len(values)}
	if s.N == 0 {
		return s
	}
	s.Best = floats.Min(values)
	if s.N < 2 {
		s.Mean = values[0]
		return s
	}
	s.Mean, s.Std = stat.MeanStdDev(values, nil)
	if math.IsNaN(s.Std) {
		s.Std = 0
	}
	return s
}
