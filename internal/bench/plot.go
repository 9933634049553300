package bench

import (
	"fmt"
	"os"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

// PlotConvergence строит линейный график лучших значений по итерациям для
// записей с трассой и сохраняет его в HTML-файл path.
func PlotConvergence(title string, records []Record, path string) error {
	longest := 0
	for _, r := range records {
		longest = max(longest, len(r.Trace))
	}
	if longest == 0 {
		return fmt.Errorf("no convergence traces recorded for %s", title)
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithInitializationOpts(opts.Initialization{
			Theme: types.ThemeWesteros,
		}),
		charts.WithXAxisOpts(opts.XAxis{Name: "iteration"}),
		charts.WithYAxisOpts(opts.YAxis{
			Name:  "best fitness",
			Scale: opts.Bool(true),
			SplitLine: &opts.SplitLine{
				Show: opts.Bool(true),
			},
		}),
	)

	xs := make([]string, longest)
	for i := range xs {
		xs[i] = strconv.Itoa(i)
	}
	line.SetXAxis(xs)

	for _, r := range records {
		if len(r.Trace) == 0 {
			continue
		}
		data := make([]opts.LineData, len(r.Trace))
		for i, v := range r.Trace {
			data[i] = opts.LineData{Value: v}
		}
		line.AddSeries(fmt.Sprintf("%s (%s)", r.Engine, r.Instance), data)
	}
	line.SetSeriesOptions(
		charts.WithLineChartOpts(opts.LineChart{Symbol: "none"}),
		charts.WithLabelOpts(opts.Label{Show: opts.Bool(false)}),
	)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := line.Render(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
