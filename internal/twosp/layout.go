package twosp

// Point — координаты левого нижнего угла предмета.
type Point struct {
	X, Y int
}

// overlaps проверяет пересечение полуоткрытых интервалов [a0, a1) и [b0, b1).
func overlaps(a0, a1, b0, b1 int) bool {
	return a0 < b1 && b0 < a1
}

// collides проверяет пересечение прямоугольников предметов a и b.
func (inst *Instance) collides(a int, pa Point, b int, pb Point) bool {
	return overlaps(pa.X, pa.X+inst.Widths[a], pb.X, pb.X+inst.Widths[b]) &&
		overlaps(pa.Y, pa.Y+inst.Heights[a], pb.Y, pb.Y+inst.Heights[b])
}

// inside проверяет, что предмет в позиции p лежит внутри полосы.
func (inst *Instance) inside(item int, p Point) bool {
	return p.X >= 0 && p.Y >= 0 && p.X+inst.Widths[item] <= inst.StripWidth
}

// Height возвращает использованную высоту полосы: max(y + height).
func Height(inst *Instance, coords []Point) int {
	h := 0
	for item, p := range coords {
		if top := p.Y + inst.Heights[item]; top > h {
			h = top
		}
	}
	return h
}

// IsFeasible проверяет размещение целиком: каждый предмет внутри полосы и
// никакие два предмета не пересекаются. Прилегание не проверяется.
func IsFeasible(inst *Instance, coords []Point) bool {
	if len(coords) != inst.Items {
		return false
	}
	for a := range coords {
		if !inst.inside(a, coords[a]) {
			return false
		}
		for b := a + 1; b < len(coords); b++ {
			if inst.collides(a, coords[a], b, coords[b]) {
				return false
			}
		}
	}
	return true
}

// IsNormal проверяет, что левая и нижняя стороны каждого предмета касаются
// границы полосы или другого предмета (нет «висящих» предметов).
func IsNormal(inst *Instance, coords []Point) bool {
	for a, pa := range coords {
		left, bottom := pa.X == 0, pa.Y == 0
		for b, pb := range coords {
			if a == b {
				continue
			}
			if pa.X == pb.X+inst.Widths[b] &&
				overlaps(pa.Y, pa.Y+inst.Heights[a], pb.Y, pb.Y+inst.Heights[b]) {
				left = true
			}
			if pa.Y == pb.Y+inst.Heights[b] &&
				overlaps(pa.X, pa.X+inst.Widths[a], pb.X, pb.X+inst.Widths[b]) {
				bottom = true
			}
		}
		if !left || !bottom {
			return false
		}
	}
	return true
}
