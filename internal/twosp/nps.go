package twosp

import (
	"errors"
	"fmt"
	"math"

	"metaheuristics/internal/perm"
)

// ErrNoCandidate — нарушение инварианта декодера: для предмета не нашлось ни
// одной допустимой позиции.
var ErrNoCandidate = errors.New("no feasible candidate position")

// npsDecoder хранит состояние одного декодирования.
type npsDecoder struct {
	inst      *Instance
	coords    []Point
	allocated []bool

	// Затравочные точки: левый верхний и правый нижний углы уложенных предметов.
	topLeft     []Point
	bottomRight []Point
	candidates  []Point
}

// DecodeNPS строит размещение по эвристике Normal Pattern Shifting: предметы
// укладываются в порядке order, каждый в позицию с наибольшим качеством среди
// кандидатов, полученных сдвигом влево от левых верхних углов и вниз от правых
// нижних углов уже уложенных предметов.
func DecodeNPS(inst *Instance, order []int) ([]Point, error) {
	if err := perm.Validate(order, inst.Items); err != nil {
		return nil, err
	}
	d := &npsDecoder{
		inst:        inst,
		coords:      make([]Point, inst.Items),
		allocated:   make([]bool, inst.Items),
		topLeft:     make([]Point, 0, inst.Items),
		bottomRight: make([]Point, 0, inst.Items),
		candidates:  make([]Point, 0, 2*inst.Items),
	}
	for i, item := range order {
		at := Point{}
		if i > 0 {
			var err error
			if at, err = d.place(item); err != nil {
				return nil, fmt.Errorf("item %d (position %d): %w", item, i, err)
			}
		}
		d.allocate(item, at)
	}
	return d.coords, nil
}

func (d *npsDecoder) allocate(item int, at Point) {
	d.allocated[item] = true
	d.coords[item] = at
	d.topLeft = append(d.topLeft, Point{X: at.X, Y: at.Y + d.inst.Heights[item]})
	d.bottomRight = append(d.bottomRight, Point{X: at.X + d.inst.Widths[item], Y: at.Y})
}

// place выбирает позицию для item среди кандидатов.
func (d *npsDecoder) place(item int) (Point, error) {
	d.candidates = d.candidates[:0]

	for _, seed := range d.topLeft {
		// К левой границе полосы, иначе к ближайшей правой стороне другого предмета
		if at := (Point{X: 0, Y: seed.Y}); d.feasible(item, at) {
			d.candidates = append(d.candidates, at)
			continue
		}
		bestX := math.MaxInt
		for other, ok := range d.allocated {
			if !ok {
				continue
			}
			x := d.coords[other].X + d.inst.Widths[other]
			if x < bestX && d.feasible(item, Point{X: x, Y: seed.Y}) {
				bestX = x
			}
		}
		if bestX != math.MaxInt {
			d.candidates = append(d.candidates, Point{X: bestX, Y: seed.Y})
		}
	}

	for _, seed := range d.bottomRight {
		// К дну полосы, иначе на ближайшую верхнюю сторону другого предмета
		if at := (Point{X: seed.X, Y: 0}); d.feasible(item, at) {
			d.candidates = append(d.candidates, at)
			continue
		}
		bestY := math.MaxInt
		for other, ok := range d.allocated {
			if !ok {
				continue
			}
			y := d.coords[other].Y + d.inst.Heights[other]
			if y < bestY && d.feasible(item, Point{X: seed.X, Y: y}) {
				bestY = y
			}
		}
		if bestY != math.MaxInt {
			d.candidates = append(d.candidates, Point{X: seed.X, Y: bestY})
		}
	}

	if len(d.candidates) == 0 {
		return Point{}, ErrNoCandidate
	}

	// Максимум качества; при равенстве — меньший или равный x (и вторичный
	// ключ тоже x, поэтому из равных по x побеждает более поздний кандидат).
	best := d.candidates[0]
	bestQuality := d.quality(item, best)
	for _, c := range d.candidates[1:] {
		q := d.quality(item, c)
		if q > bestQuality || (q == bestQuality && c.X <= best.X) {
			best, bestQuality = c, q
		}
	}
	return best, nil
}

// feasible: предмет внутри полосы, не пересекает уложенные предметы, а его
// левая и нижняя стороны касаются границы полосы или другого предмета.
func (d *npsDecoder) feasible(item int, at Point) bool {
	if !d.inst.inside(item, at) {
		return false
	}
	w, h := d.inst.Widths[item], d.inst.Heights[item]
	left, bottom := at.X == 0, at.Y == 0
	for other, ok := range d.allocated {
		if !ok {
			continue
		}
		o := d.coords[other]
		ow, oh := d.inst.Widths[other], d.inst.Heights[other]
		xOverlap := overlaps(at.X, at.X+w, o.X, o.X+ow)
		yOverlap := overlaps(at.Y, at.Y+h, o.Y, o.Y+oh)
		if xOverlap && yOverlap {
			return false
		}
		if xOverlap && at.Y == o.Y+oh {
			bottom = true
		}
		if yOverlap && at.X == o.X+ow {
			left = true
		}
	}
	return left && bottom
}

// quality = sum(width_k * top_k) / (stripWidth * maxTop) по уложенным
// предметам и item в позиции at.
func (d *npsDecoder) quality(item int, at Point) float64 {
	num := 0.0
	maxTop := 0
	add := func(k, y int) {
		top := y + d.inst.Heights[k]
		num += float64(d.inst.Widths[k] * top)
		if top > maxTop {
			maxTop = top
		}
	}
	for k, ok := range d.allocated {
		if ok {
			add(k, d.coords[k].Y)
		}
	}
	add(item, at.Y)
	return num / float64(d.inst.StripWidth*maxTop)
}
