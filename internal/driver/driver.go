// Package driver связывает конфигурацию запуска, адаптеры задач и движки:
// загружает экземпляр, выполняет поиск и записывает лучшее решение.
package driver

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"k8s.io/klog/v2"
	"k8s.io/utils/clock"

	"metaheuristics/internal/config"
	"metaheuristics/internal/metrics"
	"metaheuristics/internal/opt"
	"metaheuristics/internal/rng"
)

type Driver struct {
	// Metrics — необязательные метрики запусков.
	Metrics *metrics.Collectors
	// Clock — часы движков (nil — реальные).
	Clock clock.PassiveClock
}

// Solve выполняет один запуск над загруженным экземпляром. Задача и движок
// используют общий генератор, инициализированный cfg.Seed. При отмене ctx
// возвращается лучший найденный результат вместе с ошибкой контекста.
func (d Driver) Solve(ctx context.Context, cfg config.Run, inst *Instance) (opt.Result, Problem, error) {
	if cfg.ScaleBySize {
		cfg = Scale(cfg, inst.Size())
	}
	src := rng.New(cfg.Seed)
	p, err := NewProblem(cfg, inst, src)
	if err != nil {
		return opt.Result{}, nil, err
	}
	engine, err := NewEngine(cfg, p, src, d.Clock)
	if err != nil {
		return opt.Result{}, nil, err
	}

	logger := klog.FromContext(ctx).WithValues("instance", inst.Path, "seed", cfg.Seed)
	ctx = klog.NewContext(ctx, logger)
	logger.V(1).Info("Starting search", "engine", cfg.Engine, "problem", cfg.Problem, "size", inst.Size(), "budget", cfg.Budget.Duration)

	res, runErr := engine.Run(ctx, cfg.Budget.Duration)
	d.Metrics.ObserveRun(cfg.Engine, cfg.Problem, res, runErr)
	return res, p, runErr
}

// Run загружает экземпляр, выполняет поиск и, если задан cfg.Output,
// записывает лучшее решение (в том числе после отмены ctx).
func (d Driver) Run(ctx context.Context, cfg config.Run) (opt.Result, error) {
	if err := cfg.Validate(); err != nil {
		return opt.Result{}, err
	}
	inst, err := LoadInstance(cfg.Problem, cfg.Instance)
	if err != nil {
		return opt.Result{}, err
	}
	res, p, runErr := d.Solve(ctx, cfg, inst)
	if p == nil {
		return res, runErr
	}
	if cfg.Output != "" {
		if err := WriteSolutionFile(cfg.Output, p, res.Individual); err != nil {
			return res, fmt.Errorf("write solution: %w", err)
		}
	}
	return res, runErr
}

// WriteSolutionFile записывает решение в файл path, создавая каталоги.
func WriteSolutionFile(path string, p Problem, ind []int) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(f)
	if err := p.WriteSolution(w, ind); err != nil {
		f.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
