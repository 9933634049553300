// Package config описывает конфигурацию запуска: задача, движок, экземпляр,
// бюджет и параметры движков. Файл в формате YAML накладывается на значения
// по умолчанию.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	utilerrors "k8s.io/apimachinery/pkg/util/errors"
	"sigs.k8s.io/yaml"

	"metaheuristics/internal/ga"
	"metaheuristics/internal/ils"
	"metaheuristics/internal/localsearch"
	"metaheuristics/internal/pso"
	"metaheuristics/internal/ts"
	"metaheuristics/internal/twosp"
)

// Имена задач.
const (
	ProblemTSP   = "tsp"
	ProblemQAP   = "qap"
	ProblemTwoSP = "2sp"
)

// Имена движков.
const (
	EngineGA  = "ga"
	EnginePSO = "pso"
	EngineTS  = "ts"
	EngineILS = "ils"
)

var (
	Problems = []string{ProblemTSP, ProblemQAP, ProblemTwoSP}
	Engines  = []string{EngineGA, EnginePSO, EngineTS, EngineILS}
)

// Duration читается из строки вида "1.5s" или "200ms".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	v, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %s: %w", b, err)
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Duration.String() + `"`), nil
}

// TS — параметры табу-поиска; TimePenalty задаётся строкой длительности.
type TS struct {
	ts.Config
	TimePenalty *Duration `json:"timePenalty,omitempty"`
}

// Engine возвращает конфигурацию движка с учётом TimePenalty.
func (t TS) Engine() ts.Config {
	cfg := t.Config
	if t.TimePenalty != nil {
		cfg.TimePenalty = t.TimePenalty.Duration
	}
	return cfg
}

type Run struct {
	Problem  string `json:"problem"`
	Engine   string `json:"engine"`
	Instance string `json:"instance"`
	// Output — файл решения (пусто — не записывать).
	Output string   `json:"output,omitempty"`
	Seed   uint64   `json:"seed"`
	Budget Duration `json:"budget"`

	// LocalSearch — вариант 2-opt в адаптере: none, first, best.
	LocalSearch localsearch.Kind `json:"localSearch"`
	// ScaleBySize подбирает размеры популяции и окрестности по размеру экземпляра.
	ScaleBySize bool `json:"scaleBySize"`

	// GRCThreshold включает жадное рандомизированное построение для TSP (0 — выключено).
	GRCThreshold float64       `json:"grcThreshold,omitempty"`
	Decoder      twosp.Decoder `json:"decoder"`
	// FitnessCacheTTL — время жизни кэша высот 2SP (0 — без кэша).
	FitnessCacheTTL Duration `json:"fitnessCacheTTL"`

	GA  ga.Config  `json:"ga"`
	PSO pso.Config `json:"pso"`
	TS  TS         `json:"ts"`
	ILS ils.Config `json:"ils"`
}

func Default() Run {
	return Run{
		Seed:        1,
		Budget:      Duration{10 * time.Second},
		LocalSearch: localsearch.KindFirst,
		Decoder:     twosp.DecoderNPS,
		GA:          ga.DefaultConfig(),
		PSO:         pso.DefaultConfig(),
		TS:          TS{Config: ts.DefaultConfig()},
		ILS:         ils.DefaultConfig(),
	}
}

// Parse накладывает YAML-документ на значения по умолчанию.
// Неизвестные поля считаются ошибкой.
func Parse(data []byte) (Run, error) {
	cfg := Default()
	if err := yaml.UnmarshalStrict(data, &cfg); err != nil {
		return Run{}, err
	}
	return cfg, nil
}

func Load(path string) (Run, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Run{}, err
	}
	cfg, err := Parse(data)
	if err != nil {
		return Run{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Marshal сериализует конфигурацию в YAML.
func (r Run) Marshal() ([]byte, error) {
	return yaml.Marshal(r)
}

func oneOf(v string, allowed []string) bool {
	for _, a := range allowed {
		if v == a {
			return true
		}
	}
	return false
}

// Validate проверяет конфигурацию запуска и выбранного движка.
func (r Run) Validate() error {
	var errs []error
	if !oneOf(r.Problem, Problems) {
		errs = append(errs, fmt.Errorf("неизвестная задача %q; доступные: %v", r.Problem, Problems))
	}
	if !oneOf(r.Engine, Engines) {
		errs = append(errs, fmt.Errorf("неизвестный движок %q; доступные: %v", r.Engine, Engines))
	}
	if r.Instance == "" {
		errs = append(errs, fmt.Errorf("не задан файл экземпляра"))
	}
	if r.Budget.Duration < 0 {
		errs = append(errs, fmt.Errorf("бюджет должен быть >= 0 (получено %s)", r.Budget.Duration))
	}
	switch r.LocalSearch {
	case localsearch.KindNone, localsearch.KindFirst, localsearch.KindBest:
	default:
		errs = append(errs, fmt.Errorf("неизвестный вариант локального поиска %q", r.LocalSearch))
	}
	if r.GRCThreshold != 0 && r.GRCThreshold < 1 {
		errs = append(errs, fmt.Errorf("порог GRC должен быть >= 1 (получено %f)", r.GRCThreshold))
	}
	switch r.Decoder {
	case twosp.DecoderNPS, twosp.DecoderBL:
	default:
		errs = append(errs, fmt.Errorf("неизвестный декодер %q", r.Decoder))
	}
	if r.FitnessCacheTTL.Duration < 0 {
		errs = append(errs, fmt.Errorf("время жизни кэша должно быть >= 0"))
	}

	var engineErr error
	switch r.Engine {
	case EngineGA:
		engineErr = r.GA.Validate()
	case EnginePSO:
		engineErr = r.PSO.Validate()
	case EngineTS:
		engineErr = r.TS.Engine().Validate()
	case EngineILS:
		engineErr = r.ILS.Validate()
	}
	if engineErr != nil {
		errs = append(errs, fmt.Errorf("%s: %w", r.Engine, engineErr))
	}
	return utilerrors.NewAggregate(errs)
}
