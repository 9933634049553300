package twosp

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"metaheuristics/internal/localsearch"
	"metaheuristics/internal/perm"
	"metaheuristics/internal/rng"
)

func mustInstance(t *testing.T, width int, widths, heights []int) *Instance {
	t.Helper()
	inst, err := NewInstance(width, widths, heights)
	require.NoError(t, err)
	return inst
}

// fiveItems — экземпляр с заранее вычисленными размещениями.
func fiveItems(t *testing.T) *Instance {
	return mustInstance(t, 10, []int{4, 6, 3, 5, 2}, []int{3, 2, 4, 1, 5})
}

func TestNPSTwoItemsStacked(t *testing.T) {
	inst := mustInstance(t, 2, []int{2, 1}, []int{1, 2})

	coords, err := DecodeNPS(inst, []int{0, 1})
	require.NoError(t, err)
	assert.Equal(t, []Point{{0, 0}, {0, 1}}, coords)
	assert.Equal(t, 3, Height(inst, coords))
	assert.True(t, IsFeasible(inst, coords))
	assert.True(t, IsNormal(inst, coords))

	coords, err = DecodeNPS(inst, []int{1, 0})
	require.NoError(t, err)
	assert.Equal(t, []Point{{0, 2}, {0, 0}}, coords)
	assert.Equal(t, 3, Height(inst, coords))

	p, err := NewProblem(inst, rng.New(1))
	require.NoError(t, err)
	assert.Equal(t, 3.0, p.Fitness([]int{0, 1}))
}

func TestNPSKnownLayouts(t *testing.T) {
	inst := fiveItems(t)
	cases := []struct {
		order  []int
		want   []Point
		height int
	}{
		{[]int{0, 1, 2, 3, 4}, []Point{{0, 0}, {0, 3}, {6, 0}, {0, 5}, {6, 4}}, 9},
		{[]int{4, 3, 2, 1, 0}, []Point{{5, 0}, {0, 6}, {2, 0}, {0, 5}, {0, 0}}, 8},
		{[]int{2, 0, 4, 1, 3}, []Point{{3, 0}, {0, 4}, {0, 0}, {0, 6}, {7, 0}}, 7},
	}
	for _, tc := range cases {
		coords, err := DecodeNPS(inst, tc.order)
		require.NoError(t, err)
		if diff := cmp.Diff(tc.want, coords); diff != "" {
			t.Errorf("order %v: (-want +got)\n%s", tc.order, diff)
		}
		assert.Equal(t, tc.height, Height(inst, coords))
	}
}

func TestNPSDeterministic(t *testing.T) {
	inst := fiveItems(t)
	order := []int{3, 1, 4, 0, 2}
	a, err := DecodeNPS(inst, order)
	require.NoError(t, err)
	b, err := DecodeNPS(inst, order)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestNPSRandomLayoutsAreFeasibleAndNormal(t *testing.T) {
	src := rng.New(2024)
	for trial := 0; trial < 300; trial++ {
		n := src.DiscreteUniform(2, 12)
		width := src.DiscreteUniform(3, 10)
		widths := make([]int, n)
		heights := make([]int, n)
		for i := 0; i < n; i++ {
			widths[i] = src.DiscreteUniform(1, width)
			heights[i] = src.DiscreteUniform(1, 6)
		}
		inst := mustInstance(t, width, widths, heights)
		order := perm.Random(n, src)

		coords, err := DecodeNPS(inst, order)
		require.NoError(t, err, "width=%d widths=%v heights=%v order=%v", width, widths, heights, order)
		require.True(t, IsFeasible(inst, coords), "order=%v coords=%v", order, coords)
		require.True(t, IsNormal(inst, coords), "order=%v coords=%v", order, coords)
	}
}

// Вторичный ключ выбора при равном качестве — снова x, а не y: из кандидатов
// (0,2) и (0,8) с одинаковым качеством выбирается более поздний (0,8),
// хотя он выше.
func TestNPSTieBreakComparesXOnly(t *testing.T) {
	inst := mustInstance(t, 3, []int{1, 1, 3, 3, 1, 2}, []int{2, 4, 1, 3, 1, 2})
	coords, err := DecodeNPS(inst, []int{0, 1, 2, 3, 4, 5})
	require.NoError(t, err)
	assert.Equal(t, Point{X: 0, Y: 8}, coords[4])
	assert.Equal(t, []Point{{0, 0}, {1, 0}, {0, 4}, {0, 5}, {0, 8}, {1, 8}}, coords)
}

// При равном качестве выигрывает меньший x, даже если позиция выше.
func TestNPSTieBreakPrefersSmallerX(t *testing.T) {
	inst := mustInstance(t, 2, []int{1, 2, 1}, []int{2, 1, 1})
	coords, err := DecodeNPS(inst, []int{0, 1, 2})
	require.NoError(t, err)
	assert.Equal(t, []Point{{0, 0}, {0, 2}, {0, 3}}, coords)
	assert.Equal(t, 4, Height(inst, coords))
}

func TestNPSFeasibleRejectsFloating(t *testing.T) {
	inst := mustInstance(t, 6, []int{2, 2}, []int{2, 1})
	d := &npsDecoder{
		inst:      inst,
		coords:    make([]Point, 2),
		allocated: make([]bool, 2),
	}
	d.allocate(0, Point{0, 0})

	assert.True(t, d.feasible(1, Point{2, 0}), "справа от предмета на дне")
	assert.True(t, d.feasible(1, Point{0, 2}), "на предмете у левой границы")
	assert.False(t, d.feasible(1, Point{3, 0}), "левая сторона ни к чему не прилегает")
	assert.False(t, d.feasible(1, Point{2, 2}), "висит в воздухе")
	assert.False(t, d.feasible(1, Point{1, 1}), "пересечение")
	assert.False(t, d.feasible(1, Point{5, 0}), "выходит за полосу")
}

func TestNPSNoCandidate(t *testing.T) {
	inst := mustInstance(t, 2, []int{2, 2}, []int{1, 1})
	// Состояние без затравочных точек: кандидатов нет.
	d := &npsDecoder{
		inst:      inst,
		coords:    make([]Point, 2),
		allocated: []bool{true, false},
	}
	_, err := d.place(1)
	assert.True(t, errors.Is(err, ErrNoCandidate))
}

func TestDecodeRejectsInvalidOrder(t *testing.T) {
	inst := fiveItems(t)
	_, err := DecodeNPS(inst, []int{0, 0, 1, 2, 3})
	assert.True(t, errors.Is(err, perm.ErrInvalid))
	_, err = DecodeBL(inst, []int{0, 1})
	assert.True(t, errors.Is(err, perm.ErrInvalid))

	p, err := NewProblem(inst, rng.New(1))
	require.NoError(t, err)
	assert.Panics(t, func() { p.MustDecode([]int{1}) })
}

func TestBLKnownLayouts(t *testing.T) {
	inst := fiveItems(t)
	coords, err := DecodeBL(inst, []int{0, 1, 2, 3, 4})
	require.NoError(t, err)
	assert.Equal(t, []Point{{0, 0}, {4, 0}, {4, 2}, {0, 6}, {7, 2}}, coords)
	assert.Equal(t, 7, Height(inst, coords))

	coords, err = DecodeBL(inst, []int{4, 3, 2, 1, 0})
	require.NoError(t, err)
	assert.Equal(t, []Point{{2, 1}, {0, 5}, {7, 0}, {2, 0}, {0, 0}}, coords)
}

func TestBLRandomLayoutsAreFeasible(t *testing.T) {
	src := rng.New(77)
	for trial := 0; trial < 300; trial++ {
		n := src.DiscreteUniform(1, 15)
		width := src.DiscreteUniform(2, 12)
		widths := make([]int, n)
		heights := make([]int, n)
		for i := 0; i < n; i++ {
			widths[i] = src.DiscreteUniform(1, width)
			heights[i] = src.DiscreteUniform(1, 8)
		}
		inst := mustInstance(t, width, widths, heights)
		coords, err := DecodeBL(inst, perm.Random(n, src))
		require.NoError(t, err)
		require.True(t, IsFeasible(inst, coords), "coords=%v", coords)
	}
}

func TestIsFeasible(t *testing.T) {
	inst := mustInstance(t, 4, []int{4, 1}, []int{1, 4})
	assert.True(t, IsFeasible(inst, []Point{{0, 0}, {0, 1}}))
	// Крестообразное пересечение: ни один угол не лежит внутри другого предмета.
	assert.False(t, IsFeasible(inst, []Point{{0, 2}, {1, 0}}))
	assert.False(t, IsFeasible(inst, []Point{{1, 0}, {0, 1}}), "выход за ширину полосы")
	assert.False(t, IsFeasible(inst, []Point{{0, -1}, {0, 1}}))
	assert.False(t, IsFeasible(inst, []Point{{0, 0}}))
	// Внешне заданное размещение может быть допустимым, но не нормальным.
	floating := []Point{{0, 0}, {2, 3}}
	assert.True(t, IsFeasible(inst, floating))
	assert.False(t, IsNormal(inst, floating))
}

func TestProblemFitnessCache(t *testing.T) {
	inst := fiveItems(t)
	plain, err := NewProblem(inst, rng.New(1))
	require.NoError(t, err)
	cached, err := NewProblem(inst, rng.New(1), WithFitnessCache(time.Minute))
	require.NoError(t, err)

	src := rng.New(5)
	for i := 0; i < 30; i++ {
		order := perm.Random(5, src)
		want := plain.Fitness(order)
		assert.Equal(t, want, cached.Fitness(order))
		assert.Equal(t, want, cached.Fitness(order))
	}
	assert.Greater(t, cached.memo.ItemCount(), 0)
}

func TestProblemFitnessCacheExpiresLazily(t *testing.T) {
	inst := fiveItems(t)
	p, err := NewProblem(inst, rng.New(1), WithFitnessCache(time.Millisecond))
	require.NoError(t, err)

	order := []int{4, 3, 2, 1, 0}
	want := p.Fitness(order)
	time.Sleep(20 * time.Millisecond)
	// Без фоновой очистки устаревшая запись остаётся до обращения.
	assert.Equal(t, 1, p.memo.ItemCount())
	assert.Equal(t, want, p.Fitness(order))
}

func TestProblemLocalSearch(t *testing.T) {
	inst := fiveItems(t)
	for _, dec := range []Decoder{DecoderNPS, DecoderBL} {
		for _, k := range []localsearch.Kind{localsearch.KindFirst, localsearch.KindBest} {
			p, err := NewProblem(inst, rng.New(3), WithDecoder(dec), WithLocalSearch(k))
			require.NoError(t, err)
			ind := []int{0, 1, 2, 3, 4}
			before := p.Fitness(ind)
			p.LocalSearch(ind)
			require.NoError(t, perm.Validate(ind, 5))
			assert.LessOrEqual(t, p.Fitness(ind), before, "decoder=%s ls=%s", dec, k)
		}
	}
	_, err := NewProblem(inst, rng.New(1), WithDecoder("unknown"))
	assert.Error(t, err)
}

func TestProblemHooks(t *testing.T) {
	p, err := NewProblem(fiveItems(t), rng.New(8))
	require.NoError(t, err)
	assert.Equal(t, "2sp", p.Name())
	assert.Equal(t, 5, p.Size())

	ind := p.InitialSolution()
	require.NoError(t, perm.Validate(ind, 5))
	broken := []int{4, 4, 4, 0, 0}
	p.Repair(broken)
	require.NoError(t, perm.Validate(broken, 5))
	p.Perturb(broken, 4)
	require.NoError(t, perm.Validate(broken, 5))
}

func TestInstanceValidate(t *testing.T) {
	_, err := NewInstance(2, []int{3}, []int{1})
	assert.Error(t, err, "предмет шире полосы")
	_, err = NewInstance(2, []int{1}, []int{0})
	assert.Error(t, err)
	_, err = NewInstance(0, []int{1}, []int{1})
	assert.Error(t, err)
	_, err = NewInstance(2, []int{1, 1}, []int{1})
	assert.Error(t, err)
}

func TestReadWrite(t *testing.T) {
	inst, err := Read(strings.NewReader("2 2\n2 1\n1 2\n"))
	require.NoError(t, err)
	assert.Equal(t, []int{2, 1}, inst.Widths)
	assert.Equal(t, []int{1, 2}, inst.Heights)

	coords, err := DecodeNPS(inst, []int{0, 1})
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, WriteSolution(&buf, inst, []int{0, 1}, coords))
	assert.Equal(t, "3\n0 1\n0 0\n0 1\n", buf.String())

	err = WriteSolution(&buf, inst, []int{0, 1}, []Point{{0, 0}, {0, 0}})
	assert.Error(t, err)

	_, err = Read(strings.NewReader("2 2\n2 1\n1"))
	assert.Error(t, err)
	_, err = Read(strings.NewReader("1 2\n3 1\n"))
	assert.Error(t, err)
}
