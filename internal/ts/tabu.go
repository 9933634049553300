package ts

// tabuList — табу-список ограниченной длины с вытеснением по FIFO.
// Реализован как кольцевой буфер с map для быстрой проверки табуированности.
type tabuList struct {
	m    map[uint64]int // ключ → число вхождений в буфере
	key  []uint64       // кольцевой буфер ключей
	head int            // позиция самого старого элемента
	size int
}

func newTabuList(capacity int) *tabuList {
	return &tabuList{
		m:   make(map[uint64]int, capacity),
		key: make([]uint64, capacity),
	}
}

func (t *tabuList) Contains(k uint64) bool {
	return t.m[k] > 0
}

func (t *tabuList) Len() int {
	return t.size
}

// Push добавляет ход; при заполненном списке вытесняется самый старый.
func (t *tabuList) Push(k uint64) {
	if t.size == len(t.key) {
		old := t.key[t.head]
		if t.m[old]--; t.m[old] == 0 {
			delete(t.m, old)
		}
		t.head = (t.head + 1) % len(t.key)
		t.size--
	}
	t.key[(t.head+t.size)%len(t.key)] = k
	t.m[k]++
	t.size++
}

// moveKey формирует ключ обмена позиций a и b (неупорядоченная пара).
func moveKey(a, b int) uint64 {
	if a > b {
		a, b = b, a
	}
	return uint64(uint32(a))<<32 | uint64(uint32(b))
}
