package ils

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	testingclock "k8s.io/utils/clock/testing"

	"metaheuristics/internal/localsearch"
	"metaheuristics/internal/opt"
	"metaheuristics/internal/opt/opttest"
	"metaheuristics/internal/rng"
)

func newSolver(t *testing.T, cfg Config, p opt.Problem, seed uint64) *Solver {
	t.Helper()
	s, err := New(cfg, p, rng.New(seed))
	require.NoError(t, err)
	s.Clock = testingclock.NewFakePassiveClock(time.Unix(0, 0))
	return s
}

func TestConfigValidate(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())

	cfg := DefaultConfig()
	cfg.Acceptance = AcceptMetropolis
	cfg.Temperature = 0
	cfg.Alpha = 1.5
	cfg.PerturbationPoints = 0
	err := cfg.Validate()
	require.Error(t, err)
	for _, s := range []string{"Temperature", "alpha", "PerturbationPoints"} {
		assert.Contains(t, err.Error(), s)
	}

	cfg = DefaultConfig()
	cfg.Acceptance = "sometimes"
	assert.Error(t, cfg.Validate())
}

func TestNewRequiresPerturber(t *testing.T) {
	plain := struct{ opt.Problem }{opttest.RandomTSP(t, 5, 1, localsearch.KindNone)}
	_, err := New(DefaultConfig(), plain, rng.New(1))
	assert.Error(t, err)
}

func TestRunZeroBudget(t *testing.T) {
	p := opttest.NewRecorder(t, opttest.RandomTSP(t, 9, 6, localsearch.KindFirst))
	res, err := newSolver(t, DefaultConfig(), p, 1).Run(context.Background(), 0)
	require.NoError(t, err)
	opttest.CheckResult(t, p, res)
	assert.Equal(t, 0, res.Iterations)
	assert.LessOrEqual(t, res.Fitness, p.BestInitial)
}

func TestRunIterationCapReproducible(t *testing.T) {
	for _, acc := range []Acceptance{AcceptBetter, AcceptMetropolis} {
		run := func() []float64 {
			cfg := DefaultConfig()
			cfg.Iterations = 25
			cfg.Acceptance = acc
			cfg.RecordTrace = true
			p := opttest.NewRecorder(t, opttest.RandomTSP(t, 10, 3, localsearch.KindBest))
			res, err := newSolver(t, cfg, p, 17).Run(context.Background(), time.Minute)
			require.NoError(t, err)
			opttest.CheckResult(t, p, res)
			assert.Equal(t, 25, res.Iterations)
			assert.LessOrEqual(t, res.Fitness, p.BestInitial)
			return res.Trace
		}
		a, b := run(), run()
		assert.Len(t, a, 26)
		assert.Equal(t, a, b, "acceptance %s", acc)
	}
}

func TestRunRestarts(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Iterations = 10
	cfg.RestartIterations = 1
	p := opttest.NewRecorder(t, opttest.RandomTSP(t, 4, 2, localsearch.KindBest))
	res, err := newSolver(t, cfg, p, 5).Run(context.Background(), time.Minute)
	require.NoError(t, err)
	opttest.CheckResult(t, p, res)
	// Каждая итерация без улучшения вызывает перезапуск с нового решения.
	restarts := res.Meta["restarts"].(int)
	assert.Greater(t, restarts, 0)
	assert.Len(t, p.Initial, 1+restarts)
}

func TestAccept(t *testing.T) {
	s := &Solver{Cfg: Config{Acceptance: AcceptBetter}, Rng: &rng.Sequence{Floats: []float64{0}}}
	assert.True(t, s.accept(1, 2, 1))
	assert.False(t, s.accept(2, 2, 1))
	assert.False(t, s.accept(3, 2, 1))

	s.Cfg.Acceptance = AcceptMetropolis
	assert.True(t, s.accept(3, 2, 1), "draw 0 accepts any finite worsening")
	s.Rng = &rng.Sequence{Floats: []float64{0.99}}
	assert.False(t, s.accept(3, 2, 1))
}

func TestRunCanceled(t *testing.T) {
	p := opttest.NewRecorder(t, opttest.RandomTSP(t, 6, 2, localsearch.KindNone))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res, err := newSolver(t, DefaultConfig(), p, 1).Run(ctx, time.Hour)
	require.ErrorIs(t, err, context.Canceled)
	opttest.CheckResult(t, p, res)
}
