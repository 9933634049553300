package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"metaheuristics/internal/driver"
	"metaheuristics/internal/textio"
)

func newSolveCommand() *cobra.Command {
	o := &runOptions{}
	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Run one engine on one instance and write the best solution",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := o.load(cmd.Flags())
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			ctx, cancel := signalContext(cmd.Context())
			defer cancel()

			collectors, stop, err := serveMetrics(ctx, o.metricsAddr)
			if err != nil {
				return err
			}
			defer stop()

			d := driver.Driver{Metrics: collectors}
			res, err := d.Run(ctx, cfg)
			if err != nil && !errors.Is(err, context.Canceled) {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s/%s: fitness=%s evaluations=%s iterations=%s time=%s\n",
				cfg.Engine, cfg.Problem,
				textio.FormatFloat(res.Fitness),
				humanize.Comma(int64(res.Evaluations)),
				humanize.Comma(int64(res.Iterations)),
				res.Duration,
			)
			fmt.Fprintln(out, textio.JoinInts(res.Individual))
			if cfg.Output != "" {
				fmt.Fprintln(out, "Saved:", cfg.Output)
			}
			return nil
		},
	}
	o.addFlags(cmd.Flags())
	return cmd
}
