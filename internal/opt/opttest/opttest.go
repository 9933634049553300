// Package opttest содержит вспомогательные задачи для тестов движков.
package opttest

import (
	"testing"

	"github.com/stretchr/testify/require"

	"metaheuristics/internal/localsearch"
	"metaheuristics/internal/opt"
	"metaheuristics/internal/perm"
	"metaheuristics/internal/rng"
	"metaheuristics/internal/tsp"
)

// RandomTSP строит задачу коммивояжёра на n городах со случайной
// симметричной матрицей целых стоимостей из [1, 100].
func RandomTSP(tb testing.TB, n int, seed uint64, search localsearch.Kind) *tsp.Problem {
	tb.Helper()
	src := rng.New(seed)
	costs := make([]float64, n*n)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			c := float64(src.DiscreteUniform(1, 100))
			costs[i*n+j] = c
			costs[j*n+i] = c
		}
	}
	inst, err := tsp.NewInstance(n, costs)
	require.NoError(tb, err)
	p, err := tsp.NewProblem(inst, rng.New(seed+1), tsp.WithLocalSearch(search))
	require.NoError(tb, err)
	return p
}

// Recorder оборачивает задачу и запоминает все выданные начальные решения,
// а также проверяет, что целевая функция вызывается только на перестановках.
type Recorder struct {
	opt.Problem
	tb testing.TB

	Initial     [][]int
	Evaluations int
	BestInitial float64
	initialSeen bool
}

func NewRecorder(tb testing.TB, p opt.Problem) *Recorder {
	return &Recorder{Problem: p, tb: tb}
}

func (r *Recorder) InitialSolution() []int {
	ind := r.Problem.InitialSolution()
	r.Initial = append(r.Initial, append([]int(nil), ind...))
	f := r.Problem.Fitness(ind)
	if !r.initialSeen || f < r.BestInitial {
		r.BestInitial = f
		r.initialSeen = true
	}
	return ind
}

func (r *Recorder) Fitness(ind []int) float64 {
	r.tb.Helper()
	require.NoError(r.tb, perm.Validate(ind, r.Problem.Size()))
	r.Evaluations++
	return r.Problem.Fitness(ind)
}

// Perturb пробрасывает возможность возмущения, если она есть у задачи.
func (r *Recorder) Perturb(ind []int, strength int) {
	r.Problem.(opt.Perturber).Perturb(ind, strength)
}

// CheckResult проверяет общие свойства результата движка.
func CheckResult(tb testing.TB, p opt.Problem, res opt.Result) {
	tb.Helper()
	require.NoError(tb, perm.Validate(res.Individual, p.Size()))
	require.Equal(tb, p.Fitness(res.Individual), res.Fitness)
	for i := 1; i < len(res.Trace); i++ {
		require.LessOrEqual(tb, res.Trace[i], res.Trace[i-1], "trace must be non-increasing")
	}
}
