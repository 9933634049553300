// Package metrics экспортирует показатели запусков движков в Prometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"metaheuristics/internal/opt"
)

const namespace = "metaheur"

// Collectors — набор метрик запусков. Метки: engine, problem.
type Collectors struct {
	Runs        *prometheus.CounterVec
	Canceled    *prometheus.CounterVec
	Evaluations *prometheus.CounterVec
	Iterations  *prometheus.CounterVec
	BestFitness *prometheus.GaugeVec
	Duration    *prometheus.HistogramVec
}

func New() *Collectors {
	labels := []string{"engine", "problem"}
	return &Collectors{
		Runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Number of completed engine runs.",
		}, labels),
		Canceled: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_canceled_total",
			Help:      "Number of engine runs stopped by context cancellation.",
		}, labels),
		Evaluations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fitness_evaluations_total",
			Help:      "Fitness evaluations performed by engines.",
		}, labels),
		Iterations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "iterations_total",
			Help:      "Completed engine iterations.",
		}, labels),
		BestFitness: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "best_fitness",
			Help:      "Best fitness of the last run.",
		}, labels),
		Duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Wall-clock duration of engine runs.",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2, 14),
		}, labels),
	}
}

// Register регистрирует все метрики в reg.
func (c *Collectors) Register(reg prometheus.Registerer) error {
	for _, col := range []prometheus.Collector{
		c.Runs, c.Canceled, c.Evaluations, c.Iterations, c.BestFitness, c.Duration,
	} {
		if err := reg.Register(col); err != nil {
			return err
		}
	}
	return nil
}

// ObserveRun учитывает результат одного запуска. Nil-получатель допустим.
func (c *Collectors) ObserveRun(engine, problem string, res opt.Result, runErr error) {
	if c == nil {
		return
	}
	l := prometheus.Labels{"engine": engine, "problem": problem}
	c.Runs.With(l).Inc()
	if runErr != nil {
		c.Canceled.With(l).Inc()
	}
	c.Evaluations.With(l).Add(float64(res.Evaluations))
	c.Iterations.With(l).Add(float64(res.Iterations))
	c.BestFitness.With(l).Set(res.Fitness)
	c.Duration.With(l).Observe(res.Duration.Seconds())
}
