package qap

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"metaheuristics/internal/localsearch"
	"metaheuristics/internal/perm"
	"metaheuristics/internal/rng"
)

const small = `3
0 5 2
5 0 3
2 3 0
0 1 4
1 0 2
4 2 0
`

func TestCostIdentity2x2(t *testing.T) {
	inst, err := NewInstance(2, []float64{0, 3, 4, 0}, []float64{0, 5, 7, 0})
	require.NoError(t, err)
	// flow[0][1]*dist[0][1] + flow[1][0]*dist[1][0]
	assert.Equal(t, 3.0*5+4*7, inst.Cost([]int{0, 1}))
	assert.Equal(t, 3.0*7+4*5, inst.Cost([]int{1, 0}))
}

func TestCostBruteForce(t *testing.T) {
	inst, err := Read(strings.NewReader(small))
	require.NoError(t, err)

	p := []int{2, 0, 1}
	want := 0.0
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			want += inst.Flow[i*3+j] * inst.Distance[p[i]*3+p[j]]
		}
	}
	assert.Equal(t, want, inst.Cost(p))
}

func TestProblemLocalSearchImproves(t *testing.T) {
	inst, err := Read(strings.NewReader(small))
	require.NoError(t, err)
	p, err := NewProblem(inst, rng.New(2), localsearch.KindBest)
	require.NoError(t, err)
	assert.Equal(t, "qap", p.Name())

	// Наибольший поток (0,1)=5 должен получить наименьшее расстояние.
	ind := []int{0, 2, 1}
	before := p.Fitness(ind)
	p.LocalSearch(ind)
	assert.Less(t, p.Fitness(ind), before)
	require.NoError(t, perm.Validate(ind, 3))

	dup := []int{0, 0, 0}
	p.Repair(dup)
	require.NoError(t, perm.Validate(dup, 3))
	require.NoError(t, perm.Validate(p.InitialSolution(), 3))
}

func TestReadWrite(t *testing.T) {
	inst, err := Read(strings.NewReader(small))
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, WriteSolution(&buf, inst, []int{0, 1, 2}))
	assert.Equal(t, "38\n0 1 2\n", buf.String())
}

func TestReadErrors(t *testing.T) {
	_, err := Read(strings.NewReader("2\n0 1 1 0\n0 1\n"))
	assert.Error(t, err)
	_, err = Read(strings.NewReader("0"))
	assert.Error(t, err)
	_, err = NewInstance(2, []float64{0, 1, 1, 0}, []float64{0})
	assert.Error(t, err)
}
