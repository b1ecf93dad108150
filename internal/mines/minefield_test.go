package mines

import (
	"fmt"
	"math/rand/v2"
	"os"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	// Log.SetLevel(logrus.DebugLevel)
	Log.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
	})
	os.Exit(m.Run())
}

func countMines(f *MineField) (count int) {
	for row := range f.NumRows() {
		for col := range f.NumCols() {
			if f.HasMine(row, col) {
				count++
			}
		}
	}
	return
}

func TestNewMineFieldFromData(t *testing.T) {
	data := [][]bool{
		{true, false, false, false},
		{false, false, true, false},
		{false, false, false, true},
	}
	f := NewMineFieldFromData(data)

	assert.Equal(t, 3, f.NumRows())
	assert.Equal(t, 4, f.NumCols())
	assert.Equal(t, 3, f.NumMines())
	for row := range data {
		for col := range data[row] {
			assert.Equal(t, data[row][col], f.HasMine(row, col), "%d:%d", row, col)
		}
	}

	// the field owns its copy
	data[0][1] = true
	assert.False(t, f.HasMine(0, 1))
}

func TestNewMineFieldFromDataPreconditions(t *testing.T) {
	assert.PanicsWithError(t, "mine data must have at least one row and one column", func() {
		NewMineFieldFromData(nil)
	})
	assert.Panics(t, func() { NewMineFieldFromData([][]bool{{}}) })
	assert.Panics(t, func() {
		NewMineFieldFromData([][]bool{{true, false}, {false}})
	})
}

func TestNewMineField(t *testing.T) {
	f := NewMineField(9, 9, 10)

	assert.Equal(t, 9, f.NumRows())
	assert.Equal(t, 9, f.NumCols())
	assert.Equal(t, 10, f.NumMines())
	assert.Equal(t, 0, countMines(f), "no mines before Populate")
	assert.Equal(t, ExcludeCross, f.Placement())
}

func TestNewMineFieldPreconditions(t *testing.T) {
	tests := []struct {
		rows, cols, mines int
		ok                bool
	}{
		{1, 1, 0, true},
		{3, 3, 2, true},
		{3, 3, 3, false},
		{9, 9, 26, true},
		{9, 9, 27, false},
		{0, 5, 0, false},
		{5, 0, 0, false},
		{-1, 5, 0, false},
		{5, 5, -1, false},
	}
	for _, test := range tests {
		name := fmt.Sprintf("%dx%d(%d)", test.rows, test.cols, test.mines)
		t.Run(name, func(t *testing.T) {
			create := func() { NewMineField(test.rows, test.cols, test.mines) }
			if test.ok {
				assert.NotPanics(t, create)
			} else {
				assert.Panics(t, create)
			}
		})
	}
}

func TestPopulateCross(t *testing.T) {
	if testing.Short() {
		t.Skip()
	}

	t.Parallel()

	tests := []struct {
		rows, cols, mines int
	}{
		{3, 3, 1},
		{5, 5, 8},
		{9, 9, 10},
		{9, 9, 26},
		{16, 16, 40},
		{16, 30, 99},
	}

	for _, test := range tests {
		name := fmt.Sprintf("%dx%d(%d)", test.rows, test.cols, test.mines)
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			r := rand.New(rand.NewPCG(1, 2))
			f := NewMineField(test.rows, test.cols, test.mines, WithRand(r))
			for sr := range test.rows {
				for sc := range test.cols {
					f.Populate(sr, sc)
					require.Equal(t, test.mines, countMines(f), "seed %d:%d", sr, sc)
					require.False(t, f.HasMine(sr, sc))
					for row := range test.rows {
						for col := range test.cols {
							if f.HasMine(row, col) {
								require.NotEqual(t, sr, row, "mine in seed row")
								require.NotEqual(t, sc, col, "mine in seed column")
							}
						}
					}
				}
			}
		})
	}
}

func TestPopulateCell(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	f := NewMineField(4, 4, 5, WithRand(r), WithPlacement(ExcludeCell))
	require.Equal(t, ExcludeCell, f.Placement())

	crossUsed := false
	for range 50 {
		f.Populate(0, 0)
		require.Equal(t, 5, countMines(f))
		require.False(t, f.HasMine(0, 0))
		for i := 1; i < 4; i++ {
			if f.HasMine(0, i) || f.HasMine(i, 0) {
				crossUsed = true
			}
		}
	}
	assert.True(t, crossUsed, "cell placement should use the seed row and column")
}

func TestPopulateAllFreeSquares(t *testing.T) {
	// 4x4 with cross exclusion leaves 9 free squares; a 2x2 field with cell
	// exclusion leaves 3
	r := rand.New(rand.NewPCG(1, 2))
	f := NewMineField(4, 4, 5, WithRand(r))
	f.Populate(3, 3)
	assert.Equal(t, 5, countMines(f))

	f = NewMineField(2, 2, 1, WithRand(r), WithPlacement(ExcludeCell))
	f.Populate(1, 0)
	assert.Equal(t, 1, countMines(f))
	assert.False(t, f.HasMine(1, 0))
}

func TestPopulatePreconditions(t *testing.T) {
	f := NewMineField(3, 3, 1)
	assert.Panics(t, func() { f.Populate(-1, 0) })
	assert.Panics(t, func() { f.Populate(0, 3) })

	// a single row has no squares outside the seed row
	f = NewMineField(1, 4, 1)
	assert.Panics(t, func() { f.Populate(0, 0) })

	f = NewMineField(1, 4, 1, WithPlacement(ExcludeCell))
	assert.NotPanics(t, func() { f.Populate(0, 0) })
}

func TestPopulateDeterministic(t *testing.T) {
	a := NewMineField(9, 9, 10, WithRand(rand.New(rand.NewPCG(7, 11))))
	b := NewMineField(9, 9, 10, WithRand(rand.New(rand.NewPCG(7, 11))))
	a.Populate(4, 4)
	b.Populate(4, 4)
	assert.Equal(t, a.String(), b.String())
}

func TestResetEmpty(t *testing.T) {
	f := NewMineFieldFromData([][]bool{
		{true, false, true},
		{false, true, false},
	})
	f.ResetEmpty()

	assert.Equal(t, 0, countMines(f))
	assert.Equal(t, 3, f.NumMines())
	assert.Equal(t, 2, f.NumRows())
	assert.Equal(t, 3, f.NumCols())
}

func TestNumAdjacentMines(t *testing.T) {
	f := NewMineFieldFromData([][]bool{
		{true, false, false, false},
		{false, false, true, false},
		{false, false, false, false},
		{true, true, false, true},
	})
	want := [][]int{
		{0, 2, 1, 1},
		{1, 2, 0, 1},
		{2, 3, 3, 2},
		{1, 1, 2, 0},
	}
	for row := range want {
		for col := range want[row] {
			assert.Equal(t, want[row][col], f.NumAdjacentMines(row, col), "%d:%d", row, col)
		}
	}

	assert.Panics(t, func() { f.NumAdjacentMines(4, 0) })
	assert.Panics(t, func() { f.HasMine(0, -1) })
}

func TestNumAdjacentMinesEmpty(t *testing.T) {
	f := NewMineField(5, 7, 10)
	for row := range 5 {
		for col := range 7 {
			assert.Zero(t, f.NumAdjacentMines(row, col))
		}
	}
}

func TestNumAdjacentMinesFull(t *testing.T) {
	data := make([][]bool, 3)
	for i := range data {
		data[i] = []bool{true, true, true}
	}
	f := NewMineFieldFromData(data)
	assert.Equal(t, 8, f.NumAdjacentMines(1, 1))
	assert.Equal(t, 3, f.NumAdjacentMines(0, 0))
	assert.Equal(t, 5, f.NumAdjacentMines(0, 1))
}

func rotate(data [][]bool) [][]bool {
	rows, cols := len(data), len(data[0])
	out := make([][]bool, cols)
	for c := range cols {
		out[c] = make([]bool, rows)
		for r := range rows {
			out[c][rows-1-r] = data[r][c]
		}
	}
	return out
}

func mirror(data [][]bool) [][]bool {
	out := make([][]bool, len(data))
	for r, line := range data {
		out[r] = make([]bool, len(line))
		for c := range line {
			out[r][len(line)-1-c] = line[c]
		}
	}
	return out
}

func TestNumAdjacentMinesSymmetry(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	src := NewMineField(6, 9, 17, WithRand(r))
	src.Populate(2, 3)

	data := make([][]bool, 6)
	for row := range 6 {
		data[row] = make([]bool, 9)
		for col := range 9 {
			data[row][col] = src.HasMine(row, col)
		}
	}

	f := NewMineFieldFromData(data)
	rotated := NewMineFieldFromData(rotate(data))
	mirrored := NewMineFieldFromData(mirror(data))
	for row := range 6 {
		for col := range 9 {
			n := f.NumAdjacentMines(row, col)
			assert.GreaterOrEqual(t, n, 0)
			assert.LessOrEqual(t, n, 8)
			assert.Equal(t, n, rotated.NumAdjacentMines(col, 6-1-row))
			assert.Equal(t, n, mirrored.NumAdjacentMines(row, 9-1-col))
		}
	}
}

func TestInRange(t *testing.T) {
	f := NewMineField(2, 3, 0)
	assert.True(t, f.InRange(0, 0))
	assert.True(t, f.InRange(1, 2))
	assert.False(t, f.InRange(2, 0))
	assert.False(t, f.InRange(0, 3))
	assert.False(t, f.InRange(-1, 1))
	assert.False(t, f.InRange(1, -1))
}

func TestParsePlacement(t *testing.T) {
	for _, p := range []Placement{ExcludeCross, ExcludeCell} {
		parsed, ok := ParsePlacement(p.String())
		assert.True(t, ok)
		assert.Equal(t, p, parsed)
	}
	p, ok := ParsePlacement("")
	assert.True(t, ok)
	assert.Equal(t, ExcludeCross, p)
	_, ok = ParsePlacement("diagonal")
	assert.False(t, ok)
}

func TestMineFieldString(t *testing.T) {
	f := NewMineFieldFromData([][]bool{{true, false}, {false, true}})
	assert.Equal(t, "* . \n. * \n", f.String())
}
