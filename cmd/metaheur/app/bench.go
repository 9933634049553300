package app

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"metaheuristics/internal/bench"
	"metaheuristics/internal/config"
	"metaheuristics/internal/driver"
)

type benchOptions struct {
	runOptions

	instances []string
	engines   []string
	runs      int
	out       string
	plot      string
}

func newBenchCommand() *cobra.Command {
	o := &benchOptions{}
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Run every engine several times on every instance and export statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			base, err := o.load(cmd.Flags())
			if err != nil {
				return err
			}
			instances := o.instances
			if len(instances) == 0 && base.Instance != "" {
				instances = []string{base.Instance}
			}
			if len(instances) == 0 {
				return fmt.Errorf("не заданы экземпляры (--instances)")
			}

			ctx, cancel := signalContext(cmd.Context())
			defer cancel()

			collectors, stop, err := serveMetrics(ctx, o.metricsAddr)
			if err != nil {
				return err
			}
			defer stop()

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Host:", bench.DescribeHost())

			runner := bench.Runner{
				Runs:     o.runs,
				BaseSeed: base.Seed,
				Driver:   driver.Driver{Metrics: collectors},
			}

			var records []bench.Record
			for _, path := range instances {
				inst, err := driver.LoadInstance(base.Problem, path)
				if err != nil {
					return err
				}
				for _, engine := range o.engines {
					cfg := base
					cfg.Engine = engine
					cfg.Instance = path
					cfg.Output = ""
					if err := cfg.Validate(); err != nil {
						return err
					}

					fmt.Fprintf(out, "Running %s on %s (%d items, %d runs, budget %s)...\n",
						engine, path, inst.Size(), runner.Runs, cfg.Budget.Duration)
					rec, err := runner.RunCase(ctx, cfg, inst)
					if err != nil {
						return err
					}
					records = append(records, rec)

					fmt.Fprintf(out, "  fitness: best=%s mean=%.2f std=%.2f | time: mean=%.2fms std=%.2fms | evaluations: %s\n",
						humanize.Ftoa(rec.FitnessBest), rec.FitnessMean, rec.FitnessStd,
						rec.TimeMeanMs, rec.TimeStdMs,
						humanize.Comma(int64(rec.EvaluationsMean)),
					)
				}
			}

			if err := bench.WriteCSV(o.out, records); err != nil {
				return fmt.Errorf("write csv: %w", err)
			}
			fmt.Fprintln(out, "Saved:", o.out)

			if o.plot != "" {
				title := fmt.Sprintf("%s convergence (%s)", base.Problem, strings.Join(o.engines, ", "))
				if err := bench.PlotConvergence(title, records, o.plot); err != nil {
					return err
				}
				fmt.Fprintln(out, "Saved:", o.plot)
			}
			return nil
		},
	}
	fs := cmd.Flags()
	o.addFlags(fs)
	fs.StringSliceVar(&o.instances, "instances", nil, "файлы экземпляров (через запятую)")
	fs.StringSliceVar(&o.engines, "engines", config.Engines, "движки (через запятую)")
	fs.IntVar(&o.runs, "runs", 10, "количество запусков каждого движка (с разными сидами)")
	fs.StringVar(&o.out, "out", "artifacts/results.csv", "путь к выходному CSV-файлу")
	fs.StringVar(&o.plot, "plot", "", "HTML-файл графика сходимости (нужен --trace)")
	return cmd
}
