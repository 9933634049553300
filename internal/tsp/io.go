package tsp

import (
	"fmt"
	"io"
	"os"

	"metaheuristics/internal/textio"
)

// Read разбирает экземпляр: число городов n, затем матрица стоимостей n×n.
func Read(r io.Reader) (*Instance, error) {
	sc := textio.NewScanner(r)
	n, err := sc.Int("cities")
	if err != nil {
		return nil, err
	}
	if n <= 0 {
		return nil, fmt.Errorf("cities must be > 0 (got %d)", n)
	}
	costs, err := sc.Floats(n*n, "costs")
	if err != nil {
		return nil, err
	}
	return NewInstance(n, costs)
}

func ReadFile(path string) (*Instance, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	inst, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("tsp: %s: %w", path, err)
	}
	return inst, nil
}

// WriteSolution пишет длину маршрута и сам маршрут (индексы с нуля).
func WriteSolution(w io.Writer, inst *Instance, path []int) error {
	_, err := fmt.Fprintf(w, "%s\n%s\n", textio.FormatFloat(inst.TourLength(path)), textio.JoinInts(path))
	return err
}
