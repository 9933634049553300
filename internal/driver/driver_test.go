package driver

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	testingclock "k8s.io/utils/clock/testing"

	"metaheuristics/internal/config"
	"metaheuristics/internal/metrics"
	"metaheuristics/internal/perm"
	"metaheuristics/internal/twosp"
)

const (
	tspInstance = `5
0 3 4 2 7
3 0 4 6 3
4 4 0 5 8
2 6 5 0 6
7 3 8 6 0
`
	qapInstance = `3
0 5 2
5 0 3
2 3 0
0 8 15
8 0 13
15 13 0
`
	twospInstance = `5 10
4 3
6 2
3 4
5 1
2 5
`
)

func writeInstance(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func testDriver() Driver {
	return Driver{Clock: testingclock.NewFakePassiveClock(time.Unix(0, 0))}
}

func runConfig(problem, engine, instance string) config.Run {
	cfg := config.Default()
	cfg.Problem, cfg.Engine, cfg.Instance = problem, engine, instance
	cfg.Budget = config.Duration{Duration: time.Hour}
	cfg.GA.Population = 6
	cfg.GA.Iterations = 3
	cfg.PSO.Particles = 4
	cfg.PSO.Iterations = 3
	cfg.TS.Iterations = 3
	cfg.ILS.Iterations = 3
	return cfg
}

func TestRunAllProblemsAndEngines(t *testing.T) {
	instances := map[string]string{
		config.ProblemTSP:   writeInstance(t, "tsp.txt", tspInstance),
		config.ProblemQAP:   writeInstance(t, "qap.txt", qapInstance),
		config.ProblemTwoSP: writeInstance(t, "2sp.txt", twospInstance),
	}
	sizes := map[string]int{config.ProblemTSP: 5, config.ProblemQAP: 3, config.ProblemTwoSP: 5}

	for _, problem := range config.Problems {
		for _, engine := range config.Engines {
			t.Run(problem+"/"+engine, func(t *testing.T) {
				cfg := runConfig(problem, engine, instances[problem])
				cfg.Output = filepath.Join(t.TempDir(), "out", "solution.txt")

				res, err := testDriver().Run(context.Background(), cfg)
				require.NoError(t, err)
				require.NoError(t, perm.Validate(res.Individual, sizes[problem]))
				assert.Equal(t, 3, res.Iterations)

				data, err := os.ReadFile(cfg.Output)
				require.NoError(t, err)
				lines := strings.Split(strings.TrimSpace(string(data)), "\n")
				fitness, err := strconv.ParseFloat(lines[0], 64)
				require.NoError(t, err)
				assert.Equal(t, res.Fitness, fitness)
				if problem == config.ProblemTwoSP {
					assert.Len(t, lines, 2+sizes[problem])
				} else {
					assert.Len(t, lines, 2)
				}
			})
		}
	}
}

func TestRunReproducible(t *testing.T) {
	path := writeInstance(t, "tsp.txt", tspInstance)
	cfg := runConfig(config.ProblemTSP, config.EngineGA, path)
	cfg.Seed = 99
	a, err := testDriver().Run(context.Background(), cfg)
	require.NoError(t, err)
	b, err := testDriver().Run(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, a.Individual, b.Individual)
	assert.Equal(t, a.Fitness, b.Fitness)
}

func TestRunCanceledStillWritesSolution(t *testing.T) {
	cfg := runConfig(config.ProblemTwoSP, config.EngineILS, writeInstance(t, "2sp.txt", twospInstance))
	cfg.Output = filepath.Join(t.TempDir(), "solution.txt")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res, err := testDriver().Run(ctx, cfg)
	require.ErrorIs(t, err, context.Canceled)
	require.NoError(t, perm.Validate(res.Individual, 5))
	_, statErr := os.Stat(cfg.Output)
	assert.NoError(t, statErr)
}

func TestRunRejectsInvalidConfig(t *testing.T) {
	cfg := runConfig("vrp", config.EngineGA, "x")
	_, err := testDriver().Run(context.Background(), cfg)
	assert.Error(t, err)
}

func TestLoadInstanceErrors(t *testing.T) {
	path := writeInstance(t, "bad.txt", "3\n0 1\n")
	_, err := LoadInstance(config.ProblemTSP, path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), path)

	_, err = LoadInstance(config.ProblemQAP, filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
	_, err = LoadInstance("vrp", path)
	assert.Error(t, err)
}

func TestScale(t *testing.T) {
	cfg := config.Default()
	cfg.Problem = config.ProblemTSP
	scaled := Scale(cfg, 60)
	assert.Equal(t, 20, scaled.GA.Population)
	assert.Equal(t, 0.3, scaled.GA.MutationRate)
	assert.Equal(t, 30, scaled.TS.NeighborChecks)
	assert.Equal(t, 12, scaled.TS.TabuListLength)
	assert.Equal(t, 100*time.Millisecond, scaled.TS.Engine().TimePenalty)

	assert.Equal(t, 10, Scale(cfg, 9).GA.Population)
	assert.Equal(t, 2, Scale(cfg, 3).TS.NeighborChecks)

	cfg.Problem = config.ProblemQAP
	assert.Equal(t, 600, Scale(cfg, 12).GA.Population)
	// Исходная конфигурация не изменяется.
	assert.Nil(t, cfg.TS.TimePenalty)
}

func TestSolveObservesMetrics(t *testing.T) {
	inst, err := LoadInstance(config.ProblemTwoSP, writeInstance(t, "2sp.txt", twospInstance))
	require.NoError(t, err)
	assert.Equal(t, 5, inst.Size())

	c := metrics.New()
	require.NoError(t, c.Register(prometheus.NewRegistry()))
	d := testDriver()
	d.Metrics = c

	cfg := runConfig(config.ProblemTwoSP, config.EngineTS, inst.Path)
	cfg.Decoder = twosp.DecoderBL
	cfg.FitnessCacheTTL = config.Duration{Duration: time.Minute}
	res, p, err := d.Solve(context.Background(), cfg, inst)
	require.NoError(t, err)
	assert.Equal(t, "2sp", p.Name())
	assert.Equal(t, 1.0, testutil.ToFloat64(c.Runs.WithLabelValues("ts", "2sp")))
	assert.Equal(t, res.Fitness, testutil.ToFloat64(c.BestFitness.WithLabelValues("ts", "2sp")))
}
