package twosp

import "metaheuristics/internal/perm"

// DecodeBL строит размещение по эвристике Bottom-Left: для каждого предмета
// перебираются затравочные точки (начало координат, углы уложенных предметов
// и точка над всей упаковкой у левой границы); из каждой допустимой точки
// предмет сдвигается вниз и влево до упора; выбирается самая нижняя, затем
// самая левая позиция. Точка над упаковкой всегда допустима, поэтому
// декодирование не может завершиться неудачей на корректном экземпляре.
func DecodeBL(inst *Instance, order []int) ([]Point, error) {
	if err := perm.Validate(order, inst.Items); err != nil {
		return nil, err
	}
	coords := make([]Point, inst.Items)
	allocated := make([]bool, inst.Items)
	seeds := []Point{{X: 0, Y: 0}}
	top := 0

	for _, item := range order {
		best := blSlide(inst, coords, allocated, item, Point{X: 0, Y: top})
		for _, s := range seeds {
			if !blFree(inst, coords, allocated, item, s) {
				continue
			}
			p := blSlide(inst, coords, allocated, item, s)
			if p.Y < best.Y || (p.Y == best.Y && p.X < best.X) {
				best = p
			}
		}

		coords[item] = best
		allocated[item] = true
		w, h := inst.Widths[item], inst.Heights[item]
		seeds = append(seeds, Point{X: best.X, Y: best.Y + h}, Point{X: best.X + w, Y: best.Y})
		if best.Y+h > top {
			top = best.Y + h
		}
	}
	return coords, nil
}

// blFree проверяет, что предмет в позиции p внутри полосы и ни с чем не пересекается.
func blFree(inst *Instance, coords []Point, allocated []bool, item int, p Point) bool {
	if !inst.inside(item, p) {
		return false
	}
	for other, ok := range allocated {
		if ok && inst.collides(item, p, other, coords[other]) {
			return false
		}
	}
	return true
}

// blSlide чередует сдвиги вниз и влево, пока предмет движется.
func blSlide(inst *Instance, coords []Point, allocated []bool, item int, p Point) Point {
	w, h := inst.Widths[item], inst.Heights[item]
	for {
		moved := false

		// Вниз: до самой высокой верхней стороны под предметом
		floor := 0
		for other, ok := range allocated {
			if !ok {
				continue
			}
			o := coords[other]
			t := o.Y + inst.Heights[other]
			if t <= p.Y && t > floor && overlaps(p.X, p.X+w, o.X, o.X+inst.Widths[other]) {
				floor = t
			}
		}
		if floor < p.Y {
			p.Y = floor
			moved = true
		}

		// Влево: до самой правой стороны слева от предмета
		wall := 0
		for other, ok := range allocated {
			if !ok {
				continue
			}
			o := coords[other]
			r := o.X + inst.Widths[other]
			if r <= p.X && r > wall && overlaps(p.Y, p.Y+h, o.Y, o.Y+inst.Heights[other]) {
				wall = r
			}
		}
		if wall < p.X {
			p.X = wall
			moved = true
		}

		if !moved {
			return p
		}
	}
}
