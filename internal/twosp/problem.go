package twosp

import (
	"fmt"
	"strconv"
	"time"

	"github.com/patrickmn/go-cache"

	"metaheuristics/internal/localsearch"
	"metaheuristics/internal/perm"
	"metaheuristics/internal/rng"
)

// Decoder — эвристика перевода порядка предметов в координаты.
type Decoder string

const (
	DecoderNPS Decoder = "nps"
	DecoderBL  Decoder = "bl"
)

// Problem — адаптер 2SP для движков поиска.
type Problem struct {
	inst    *Instance
	rng     rng.Source
	search  localsearch.Kind
	decoder Decoder

	// memo — кэш высот по порядку предметов (nil — кэш отключён).
	memo   *cache.Cache
	keyBuf []byte
}

type Option func(*Problem)

func WithLocalSearch(k localsearch.Kind) Option {
	return func(p *Problem) { p.search = k }
}

func WithDecoder(d Decoder) Option {
	return func(p *Problem) { p.decoder = d }
}

// WithFitnessCache включает кэширование значений целевой функции на время ttl.
// 2-opt многократно возвращается к уже оценённым порядкам. Устаревшие записи
// удаляются при обращении, фоновая очистка не запускается.
func WithFitnessCache(ttl time.Duration) Option {
	return func(p *Problem) {
		if ttl > 0 {
			p.memo = cache.New(ttl, 0)
		}
	}
}

func NewProblem(inst *Instance, src rng.Source, opts ...Option) (*Problem, error) {
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	if src == nil {
		return nil, fmt.Errorf("генератор случайных чисел не инициализирован (nil)")
	}
	p := &Problem{inst: inst, rng: src, search: localsearch.KindNone, decoder: DecoderNPS}
	for _, o := range opts {
		o(p)
	}
	switch p.decoder {
	case DecoderNPS, DecoderBL:
	default:
		return nil, fmt.Errorf("unknown decoder %q", p.decoder)
	}
	return p, nil
}

func (p *Problem) Name() string { return "2sp" }

func (p *Problem) Size() int { return p.inst.Items }

func (p *Problem) Instance() *Instance { return p.inst }

// Decode переводит порядок в координаты выбранным декодером.
func (p *Problem) Decode(order []int) ([]Point, error) {
	if p.decoder == DecoderBL {
		return DecodeBL(p.inst, order)
	}
	return DecodeNPS(p.inst, order)
}

// MustDecode паникует при нарушении инварианта декодера.
func (p *Problem) MustDecode(order []int) []Point {
	coords, err := p.Decode(order)
	if err != nil {
		panic(err)
	}
	return coords
}

func (p *Problem) InitialSolution() []int {
	return perm.Random(p.inst.Items, p.rng)
}

// Fitness — высота упаковки, полученной декодером.
func (p *Problem) Fitness(ind []int) float64 {
	if p.memo == nil {
		return float64(Height(p.inst, p.MustDecode(ind)))
	}
	key := p.key(ind)
	if v, ok := p.memo.Get(key); ok {
		return v.(float64)
	}
	h := float64(Height(p.inst, p.MustDecode(ind)))
	p.memo.Set(key, h, cache.DefaultExpiration)
	return h
}

func (p *Problem) key(ind []int) string {
	b := p.keyBuf[:0]
	for _, v := range ind {
		b = strconv.AppendInt(b, int64(v), 36)
		b = append(b, '.')
	}
	p.keyBuf = b
	return string(b)
}

func (p *Problem) Repair(ind []int) {
	perm.Repair(ind, p.rng)
}

func (p *Problem) LocalSearch(ind []int) {
	localsearch.Apply(p.search, ind, p.Fitness)
}

func (p *Problem) Perturb(ind []int, strength int) {
	perm.Perturb(ind, strength, p.rng)
}
