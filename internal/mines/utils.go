package mines

/*
 * celltodo is a queue of cell indices threaded through a fixed-size
 * `next' array. A cell may only be in the queue once, so callers must
 * mark a cell as handled before adding it.
 */
type celltodo struct {
	next       []int
	head, tail int
}

func newCelltodo(size int) *celltodo {
	return &celltodo{
		next: make([]int, size),
		head: -1,
		tail: -1,
	}
}

func (std *celltodo) add(i int) {
	if std.tail >= 0 {
		std.next[std.tail] = i
	} else {
		std.head = i
	}
	std.tail = i
	std.next[i] = -1
}

func (std *celltodo) pop() (int, bool) {
	i := std.head
	if i < 0 {
		return -1, false
	}
	if i == std.tail {
		std.head, std.tail = -1, -1
	} else {
		std.head = std.next[i]
	}
	return i, true
}

// neighbours of (row, col) in king-move order, without bounds checks
var neighbours = [8][2]int{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}
