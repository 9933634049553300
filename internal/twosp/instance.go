// Package twosp — задача двумерной упаковки в полосу (2SP). Особь задаёт порядок
// укладки предметов; декодер (NPS или BL) переводит порядок в координаты,
// целевая функция — использованная высота полосы.
package twosp

import (
	"errors"
	"fmt"
)

type Instance struct {
	Items      int
	Widths     []int
	Heights    []int
	StripWidth int
}

func NewInstance(stripWidth int, widths, heights []int) (*Instance, error) {
	inst := &Instance{Items: len(widths), Widths: widths, Heights: heights, StripWidth: stripWidth}
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	return inst, nil
}

func (inst *Instance) Validate() error {
	if inst == nil {
		return errors.New("instance is nil")
	}
	if inst.Items <= 0 {
		return fmt.Errorf("items must be > 0 (got %d)", inst.Items)
	}
	if inst.StripWidth <= 0 {
		return fmt.Errorf("strip width must be > 0 (got %d)", inst.StripWidth)
	}
	if len(inst.Widths) != inst.Items || len(inst.Heights) != inst.Items {
		return fmt.Errorf("widths and heights must have %d entries (got %d, %d)", inst.Items, len(inst.Widths), len(inst.Heights))
	}
	for i := 0; i < inst.Items; i++ {
		if inst.Widths[i] <= 0 || inst.Heights[i] <= 0 {
			return fmt.Errorf("item %d must have positive size (got %dx%d)", i, inst.Widths[i], inst.Heights[i])
		}
		if inst.Widths[i] > inst.StripWidth {
			return fmt.Errorf("item %d width %d exceeds strip width %d", i, inst.Widths[i], inst.StripWidth)
		}
	}
	return nil
}
