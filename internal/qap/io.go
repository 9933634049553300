package qap

import (
	"fmt"
	"io"
	"os"

	"metaheuristics/internal/textio"
)

// Read разбирает экземпляр в формате QAPLIB: n, матрица потоков n×n,
// матрица расстояний n×n.
func Read(r io.Reader) (*Instance, error) {
	sc := textio.NewScanner(r)
	n, err := sc.Int("facilities")
	if err != nil {
		return nil, err
	}
	if n <= 0 {
		return nil, fmt.Errorf("facilities must be > 0 (got %d)", n)
	}
	flow, err := sc.Floats(n*n, "flow")
	if err != nil {
		return nil, err
	}
	dist, err := sc.Floats(n*n, "distance")
	if err != nil {
		return nil, err
	}
	return NewInstance(n, flow, dist)
}

func ReadFile(path string) (*Instance, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	inst, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("qap: %s: %w", path, err)
	}
	return inst, nil
}

// WriteSolution пишет стоимость и назначение (индексы с нуля).
func WriteSolution(w io.Writer, inst *Instance, assignment []int) error {
	_, err := fmt.Fprintf(w, "%s\n%s\n", textio.FormatFloat(inst.Cost(assignment)), textio.JoinInts(assignment))
	return err
}
