package twosp

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"metaheuristics/internal/textio"
)

// Read разбирает экземпляр: число предметов n, ширина полосы, затем n пар
// «ширина высота».
func Read(r io.Reader) (*Instance, error) {
	sc := textio.NewScanner(r)
	n, err := sc.Int("items")
	if err != nil {
		return nil, err
	}
	if n <= 0 {
		return nil, fmt.Errorf("items must be > 0 (got %d)", n)
	}
	width, err := sc.Int("strip width")
	if err != nil {
		return nil, err
	}
	widths := make([]int, n)
	heights := make([]int, n)
	for i := 0; i < n; i++ {
		if widths[i], err = sc.Int(fmt.Sprintf("item %d width", i)); err != nil {
			return nil, err
		}
		if heights[i], err = sc.Int(fmt.Sprintf("item %d height", i)); err != nil {
			return nil, err
		}
	}
	return NewInstance(width, widths, heights)
}

func ReadFile(path string) (*Instance, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	inst, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("2sp: %s: %w", path, err)
	}
	return inst, nil
}

// WriteSolution пишет высоту, порядок предметов и по строке «x y» на предмет.
func WriteSolution(w io.Writer, inst *Instance, order []int, coords []Point) error {
	if !IsFeasible(inst, coords) {
		return fmt.Errorf("layout is not feasible")
	}
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%d\n%s\n", Height(inst, coords), textio.JoinInts(order))
	for _, p := range coords {
		fmt.Fprintf(bw, "%d %d\n", p.X, p.Y)
	}
	return bw.Flush()
}
