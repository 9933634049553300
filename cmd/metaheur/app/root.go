// Package app содержит команды CLI metaheur.
package app

import (
	"context"
	"errors"
	"flag"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"k8s.io/klog/v2"

	"metaheuristics/internal/config"
	"metaheuristics/internal/localsearch"
	"metaheuristics/internal/metrics"
	"metaheuristics/internal/twosp"
)

// NewCommand создаёт корневую команду с подкомандами solve и bench.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "metaheur",
		Short:         "Metaheuristic search engines for TSP, QAP and strip packing",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	klogFlags := flag.NewFlagSet("klog", flag.ContinueOnError)
	klog.InitFlags(klogFlags)
	cmd.PersistentFlags().AddGoFlagSet(klogFlags)

	cmd.AddCommand(newSolveCommand(), newBenchCommand())
	return cmd
}

// runOptions — флаги, переопределяющие файл конфигурации запуска.
type runOptions struct {
	configFile string

	problem     string
	engine      string
	instance    string
	output      string
	seed        uint64
	budget      time.Duration
	localSearch string
	decoder     string
	grc         float64
	scale       bool
	trace       bool

	metricsAddr string
}

func (o *runOptions) addFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&o.configFile, "config", "c", "", "YAML-файл конфигурации запуска")
	fs.StringVar(&o.problem, "problem", "", "задача: tsp | qap | 2sp")
	fs.StringVar(&o.engine, "engine", "", "движок: ga | pso | ts | ils")
	fs.StringVar(&o.instance, "instance", "", "файл экземпляра")
	fs.StringVarP(&o.output, "output", "o", "", "файл решения")
	fs.Uint64Var(&o.seed, "seed", 1, "сид генератора случайных чисел")
	fs.DurationVar(&o.budget, "budget", 10*time.Second, "ограничение времени поиска")
	fs.StringVar(&o.localSearch, "local-search", "first", "локальный поиск 2-opt: none | first | best")
	fs.StringVar(&o.decoder, "decoder", "nps", "декодер 2SP: nps | bl")
	fs.Float64Var(&o.grc, "grc", 0, "порог GRC для начального решения TSP (0 — случайное)")
	fs.BoolVar(&o.scale, "scale", false, "подбирать параметры движков по размеру экземпляра")
	fs.BoolVar(&o.trace, "trace", false, "записывать трассу лучших значений")
	fs.StringVar(&o.metricsAddr, "metrics-addr", "", "адрес HTTP для метрик Prometheus (пусто — не публиковать)")
}

// load читает файл конфигурации (если задан) и применяет явно заданные флаги.
func (o *runOptions) load(fs *pflag.FlagSet) (config.Run, error) {
	cfg := config.Default()
	if o.configFile != "" {
		var err error
		if cfg, err = config.Load(o.configFile); err != nil {
			return config.Run{}, err
		}
	}
	set := func(name string, apply func()) {
		if o.configFile == "" || fs.Changed(name) {
			apply()
		}
	}
	set("problem", func() { cfg.Problem = o.problem })
	set("engine", func() { cfg.Engine = o.engine })
	set("instance", func() { cfg.Instance = o.instance })
	set("output", func() { cfg.Output = o.output })
	set("seed", func() { cfg.Seed = o.seed })
	set("budget", func() { cfg.Budget = config.Duration{Duration: o.budget} })
	set("local-search", func() { cfg.LocalSearch = localsearch.Kind(o.localSearch) })
	set("decoder", func() { cfg.Decoder = twosp.Decoder(o.decoder) })
	set("grc", func() { cfg.GRCThreshold = o.grc })
	set("scale", func() { cfg.ScaleBySize = o.scale })
	if fs.Changed("trace") {
		cfg.GA.RecordTrace = o.trace
		cfg.PSO.RecordTrace = o.trace
		cfg.TS.RecordTrace = o.trace
		cfg.ILS.RecordTrace = o.trace
	}
	return cfg, nil
}

// signalContext отменяется по SIGINT/SIGTERM; движки возвращают лучшее найденное.
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

// serveMetrics регистрирует метрики и, если addr не пуст, публикует их по HTTP.
// Возвращает функцию остановки сервера.
func serveMetrics(ctx context.Context, addr string) (*metrics.Collectors, func(), error) {
	c := metrics.New()
	reg := prometheus.NewRegistry()
	if err := c.Register(reg); err != nil {
		return nil, nil, err
	}
	if addr == "" {
		return c, func() {}, nil
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, nil, err
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	logger := klog.FromContext(ctx)
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error(err, "Metrics server stopped")
		}
	}()
	logger.Info("Serving metrics", "addr", ln.Addr().String())

	return c, func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}, nil
}
