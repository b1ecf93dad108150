package mines

import (
	"hash/maphash"
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

var Log = logrus.New()

// Placement decides which squares around the seed square Populate keeps
// free of mines.
type Placement uint8

const (
	// ExcludeCross keeps the whole row and the whole column through the
	// seed square free of mines.
	ExcludeCross Placement = iota
	// ExcludeCell keeps only the seed square itself free of mines.
	ExcludeCell
)

func (p Placement) String() string {
	switch p {
	case ExcludeCross:
		return "cross"
	case ExcludeCell:
		return "cell"
	default:
		return "Placement(" + strconv.Itoa(int(p)) + ")"
	}
}

// ParsePlacement is the inverse of [Placement.String].
func ParsePlacement(s string) (Placement, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "cross", "":
		return ExcludeCross, true
	case "cell":
		return ExcludeCell, true
	default:
		return 0, false
	}
}

// MineField holds the locations of the mines for one game. It is mutable
// only through [MineField.ResetEmpty] and [MineField.Populate].
type MineField struct {
	mines      []bool
	rows, cols int
	mineCount  int
	placement  Placement
	rnd        *rand.Rand
}

type Option func(*MineField)

// WithRand sets the randomness source used by every Populate call.
func WithRand(r *rand.Rand) Option {
	return func(f *MineField) {
		f.rnd = r
	}
}

func WithPlacement(p Placement) Option {
	return func(f *MineField) {
		f.placement = p
	}
}

func createRand() *rand.Rand {
	return rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
	))
}

func newMineField(rows, cols, mineCount int, opts []Option) *MineField {
	f := &MineField{
		mines:     make([]bool, rows*cols),
		rows:      rows,
		cols:      cols,
		mineCount: mineCount,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.rnd == nil {
		f.rnd = createRand()
	}
	assert(f.placement == ExcludeCross || f.placement == ExcludeCell,
		"unknown placement %d", f.placement)
	return f
}

// NewMineFieldFromData copies mineData so that HasMine(row, col) ==
// mineData[row][col]. NumMines is the number of true values in mineData.
//
// panics [AssertionError] unless mineData is a non-empty rectangle
func NewMineFieldFromData(mineData [][]bool, opts ...Option) *MineField {
	assert(len(mineData) > 0 && len(mineData[0]) > 0,
		"mine data must have at least one row and one column")
	rows, cols := len(mineData), len(mineData[0])
	f := newMineField(rows, cols, 0, opts)
	for row, line := range mineData {
		assert(len(line) == cols,
			"mine data row %d has %d columns, want %d", row, len(line), cols)
		for col, mine := range line {
			f.mines[row*cols+col] = mine
			if mine {
				f.mineCount++
			}
		}
	}
	return f
}

// NewMineField creates an empty field that will get mineCount mines once
// Populate is called. Until then NumMines does not match the number of
// mines actually present.
//
// panics [AssertionError] unless rows > 0, cols > 0 and
// 0 <= mineCount < rows*cols/3
func NewMineField(rows, cols, mineCount int, opts ...Option) *MineField {
	assert(rows > 0 && cols > 0, "invalid field size %dx%d", rows, cols)
	assert(0 <= mineCount && 3*mineCount < rows*cols,
		"mine count %d must be in [0, %d/3)", mineCount, rows*cols)
	return newMineField(rows, cols, mineCount, opts)
}

// ResetEmpty removes every mine. NumMines, NumRows and NumCols are kept.
func (f *MineField) ResetEmpty() {
	for i := range f.mines {
		f.mines[i] = false
	}
}

func (f *MineField) allowed(r, c, row, col int) bool {
	if f.placement == ExcludeCell {
		return r != row || c != col
	}
	return r != row && c != col
}

func (f *MineField) candidates() int {
	if f.placement == ExcludeCell {
		return f.rows*f.cols - 1
	}
	return (f.rows - 1) * (f.cols - 1)
}

// Populate removes any current mines and places NumMines mines at random
// squares the placement policy allows, so there is never a mine at
// (row, col).
//
// panics [AssertionError]
func (f *MineField) Populate(row, col int) {
	assert(f.InRange(row, col), "square %d:%d out of range", row, col)
	assert(f.mineCount <= f.candidates(),
		"cannot place %d mines in %d free squares (placement %s)",
		f.mineCount, f.candidates(), f.placement)

	f.ResetEmpty()

	attempts := 0
	for placed := 0; placed < f.mineCount; {
		attempts++
		r, c := f.rnd.IntN(f.rows), f.rnd.IntN(f.cols)
		if f.allowed(r, c, row, col) && !f.mines[r*f.cols+c] {
			f.mines[r*f.cols+c] = true
			placed++
		}
	}

	Log.WithFields(logrus.Fields{
		"rows":      f.rows,
		"cols":      f.cols,
		"mines":     f.mineCount,
		"seed":      strconv.Itoa(row) + ":" + strconv.Itoa(col),
		"placement": f.placement.String(),
		"attempts":  attempts,
	}).Debug("populated mine field")
}

// panics [AssertionError]
func (f *MineField) HasMine(row, col int) bool {
	assert(f.InRange(row, col), "square %d:%d out of range", row, col)
	return f.mines[row*f.cols+col]
}

// NumAdjacentMines counts the mines in the (up to) eight squares around
// (row, col), not counting (row, col) itself.
//
// panics [AssertionError]
func (f *MineField) NumAdjacentMines(row, col int) int {
	assert(f.InRange(row, col), "square %d:%d out of range", row, col)
	count := 0
	for _, d := range neighbours {
		r, c := row+d[0], col+d[1]
		if f.InRange(r, c) && f.mines[r*f.cols+c] {
			count++
		}
	}
	return count
}

func (f *MineField) InRange(row, col int) bool {
	return 0 <= row && row < f.rows && 0 <= col && col < f.cols
}

func (f *MineField) NumRows() int { return f.rows }

func (f *MineField) NumCols() int { return f.cols }

// NumMines is the number of mines the field has once populated. See
// [NewMineField] and [MineField.ResetEmpty].
func (f *MineField) NumMines() int { return f.mineCount }

func (f *MineField) Placement() Placement { return f.placement }

// [MineField] implements [fmt.Stringer]
func (f *MineField) String() string {
	var b strings.Builder
	for row := range f.rows {
		for col := range f.cols {
			if f.mines[row*f.cols+col] {
				b.WriteString("* ")
			} else {
				b.WriteString(". ")
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}
