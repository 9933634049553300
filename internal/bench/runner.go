package bench

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"k8s.io/klog/v2"

	"metaheuristics/internal/config"
	"metaheuristics/internal/driver"
	"metaheuristics/internal/perm"
)

// Record — результат серии запусков одного движка на одном экземпляре.
type Record struct {
	Engine   string
	Problem  string
	Instance string
	Size     int
	Runs     int

	FitnessBest float64
	FitnessMean float64
	FitnessStd  float64

	TimeMeanMs float64
	TimeStdMs  float64

	EvaluationsMean float64

	// Trace — трасса лучшего запуска серии (если движок её записывал).
	Trace []float64
}

type Runner struct {
	Runs     int
	BaseSeed uint64
	Driver   driver.Driver
}

// RunCase выполняет Runs запусков cfg над inst с сидами BaseSeed, BaseSeed+1, ...
func (r Runner) RunCase(ctx context.Context, cfg config.Run, inst *driver.Instance) (Record, error) {
	if r.Runs <= 0 {
		return Record{}, fmt.Errorf("количество запусков должно быть > 0 (получено %d)", r.Runs)
	}
	logger := klog.FromContext(ctx)

	fitness := make([]float64, 0, r.Runs)
	timesMs := make([]float64, 0, r.Runs)
	evals := make([]float64, 0, r.Runs)
	var bestTrace []float64
	bestFitness := 0.0

	for i := 0; i < r.Runs; i++ {
		cfg.Seed = r.BaseSeed + uint64(i)

		res, _, err := r.Driver.Solve(ctx, cfg, inst)
		if err != nil && ctx.Err() != nil {
			return Record{}, fmt.Errorf("run %d: cancelled: %w", i, err)
		}
		if err != nil {
			return Record{}, fmt.Errorf("run %d: solve error: %w", i, err)
		}
		if err := perm.Validate(res.Individual, inst.Size()); err != nil {
			return Record{}, fmt.Errorf("run %d: %w", i, err)
		}

		if i == 0 || res.Fitness < bestFitness {
			bestFitness, bestTrace = res.Fitness, res.Trace
		}
		fitness = append(fitness, res.Fitness)
		timesMs = append(timesMs, float64(res.Duration.Microseconds())/1000.0)
		evals = append(evals, float64(res.Evaluations))
		logger.V(2).Info("Run finished", "engine", cfg.Engine, "run", i, "fitness", res.Fitness)
	}

	fStats := CalcStats(fitness)
	tStats := CalcStats(timesMs)

	return Record{
		Engine:   cfg.Engine,
		Problem:  cfg.Problem,
		Instance: filepath.Base(inst.Path),
		Size:     inst.Size(),
		Runs:     r.Runs,

		FitnessBest: fStats.Best,
		FitnessMean: fStats.Mean,
		FitnessStd:  fStats.Std,

		TimeMeanMs: tStats.Mean,
		TimeStdMs:  tStats.Std,

		EvaluationsMean: CalcStats(evals).Mean,
		Trace:           bestTrace,
	}, nil
}

func ftoa(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}

// WriteCSV записывает записи в файл path, создавая каталоги.
func WriteCSV(path string, records []Record) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := writeCSV(f, records); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeCSV(out io.Writer, records []Record) error {
	w := csv.NewWriter(out)

	header := []string{
		"engine", "problem", "instance", "size", "runs",
		"fitness_best", "fitness_mean", "fitness_std",
		"time_mean_ms", "time_std_ms", "evaluations_mean",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, r := range records {
		row := []string{
			r.Engine,
			r.Problem,
			r.Instance,
			strconv.Itoa(r.Size),
			strconv.Itoa(r.Runs),

			ftoa(r.FitnessBest),
			ftoa(r.FitnessMean),
			ftoa(r.FitnessStd),

			ftoa(r.TimeMeanMs),
			ftoa(r.TimeStdMs),
			ftoa(r.EvaluationsMean),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}
