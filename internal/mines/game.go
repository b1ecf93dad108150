package mines

import "github.com/sirupsen/logrus"

/*
 * VisibleField is what the player sees of a MineField, together with the
 * rules of the game. It shares the MineField with whoever created it; only
 * the MineField's own ResetEmpty and Populate change where the mines are.
 */
type VisibleField struct {
	field  *MineField
	states Grid
	failed bool
}

// NewVisibleField covers every square of field. No square is guessed and
// the game is not over.
func NewVisibleField(field *MineField) *VisibleField {
	v := &VisibleField{
		field:  field,
		states: make(Grid, field.rows*field.cols),
	}
	v.cover()
	return v
}

func (v *VisibleField) cover() {
	for i := range v.states {
		v.states[i] = CellState{Kind: Covered}
	}
}

// panics [AssertionError]
func (v *VisibleField) index(row, col int) int {
	assert(v.field.InRange(row, col), "square %d:%d out of range", row, col)
	return row*v.field.cols + col
}

// ResetGameDisplay empties the underlying MineField and covers every
// square. The field keeps its target mine count; the caller is expected to
// Populate it before the next uncover.
func (v *VisibleField) ResetGameDisplay() {
	v.field.ResetEmpty()
	v.cover()
	v.failed = false
}

func (v *VisibleField) MineField() *MineField {
	return v.field
}

// panics [AssertionError]
func (v *VisibleField) Status(row, col int) CellState {
	return v.states[v.index(row, col)]
}

// NumMinesLeft is the target number of mines minus the number of guessed
// squares, right or wrong. It is negative when the player has guessed too
// many squares.
func (v *VisibleField) NumMinesLeft() int {
	guesses := 0
	for _, s := range v.states {
		if s.Kind == Guessed {
			guesses++
		}
	}
	return v.field.mineCount - guesses
}

// CycleGuess moves a covered square through Covered, Guessed, Questioned
// and back to Covered. Uncovered squares are left alone.
//
// panics [AssertionError]
func (v *VisibleField) CycleGuess(row, col int) {
	i := v.index(row, col)
	switch v.states[i].Kind {
	case Covered:
		v.states[i].Kind = Guessed
	case Guessed:
		v.states[i].Kind = Questioned
	case Questioned:
		v.states[i].Kind = Covered
	}
}

// Uncover opens (row, col) and returns false iff there is a mine there.
// Opening a square with no adjacent mines also opens its neighbours, and
// so on, until the open region is bounded by squares next to mines, by
// guessed squares, or by the edge of the field.
//
// panics [AssertionError]
func (v *VisibleField) Uncover(row, col int) bool {
	i := v.index(row, col)
	if v.field.mines[i] {
		/*
		 * The player has landed on a mine. Expose the one that
		 * killed them; the rest are shown by IsGameOver.
		 */
		v.states[i] = CellState{Kind: ExplodedMine}
		v.failed = true
		Log.WithFields(logrus.Fields{"row": row, "col": col}).Debug("uncovered a mine")
		return false
	}

	todo := newCelltodo(len(v.states))
	v.open(row, col, todo)
	for {
		i, ok := todo.pop()
		if !ok {
			break
		}
		if v.states[i].Adjacent != 0 {
			continue
		}
		r, c := i/v.field.cols, i%v.field.cols
		for _, d := range neighbours {
			v.open(r+d[0], c+d[1], todo)
		}
	}
	return true
}

// open uncovers a single square and queues it for the flood fill, unless
// the square is off the field, guessed, mined or already uncovered. The
// last check is what keeps every square in the queue at most once.
func (v *VisibleField) open(row, col int, todo *celltodo) {
	if !v.field.InRange(row, col) {
		return
	}
	i := row*v.field.cols + col
	if v.states[i].Kind == Guessed || v.field.mines[i] || v.states[i].Uncovered() {
		return
	}
	v.states[i] = Number(v.field.NumAdjacentMines(row, col))
	todo.add(i)
}

// Chord uncovers every covered or questioned neighbour of an uncovered
// square once the player has guessed as many of its neighbours as it has
// adjacent mines. It returns false iff one of those neighbours was a mine.
//
// panics [AssertionError]
func (v *VisibleField) Chord(row, col int) bool {
	s := v.states[v.index(row, col)]
	if s.Kind != Revealed || s.Adjacent == 0 {
		return true
	}

	var targets [][2]int
	guesses := 0
	for _, d := range neighbours {
		r, c := row+d[0], col+d[1]
		if !v.field.InRange(r, c) {
			continue
		}
		switch v.states[r*v.field.cols+c].Kind {
		case Guessed:
			guesses++
		case Covered, Questioned:
			targets = append(targets, [2]int{r, c})
		}
	}
	if guesses != int(s.Adjacent) {
		return true
	}

	safe := true
	for _, t := range targets {
		if !v.Uncover(t[0], t[1]) {
			safe = false
		}
	}
	return safe
}

// IsGameOver reports whether the game has been lost or won. It is not a
// pure query: once the game is over it rewrites the visible states to show
// the outcome. Calling it again after that changes nothing.
func (v *VisibleField) IsGameOver() bool {
	if v.failed {
		v.revealLoss()
		return true
	}

	var coveredMines, coveredSafe int
	for i, s := range v.states {
		if s.Kind != Covered && s.Kind != Guessed {
			continue
		}
		if v.field.mines[i] {
			coveredMines++
		} else {
			coveredSafe++
		}
	}

	if coveredMines == v.field.mineCount && coveredSafe == 0 {
		v.revealWin()
		return true
	}
	return false
}

func (v *VisibleField) revealLoss() {
	for i, s := range v.states {
		switch {
		case (s.Kind == Covered || s.Kind == Questioned) && v.field.mines[i]:
			v.states[i] = CellState{Kind: Mine}
		case s.Kind == Guessed && !v.field.mines[i]:
			v.states[i] = CellState{Kind: IncorrectGuess}
		}
	}
}

func (v *VisibleField) revealWin() {
	for i, mine := range v.field.mines {
		if mine {
			v.states[i] = CellState{Kind: Guessed}
		}
	}
}

// panics [AssertionError]
func (v *VisibleField) IsUncovered(row, col int) bool {
	return v.states[v.index(row, col)].Uncovered()
}

// Grid returns a copy of the visible states in row-major order.
func (v *VisibleField) Grid() Grid {
	g := make(Grid, len(v.states))
	copy(g, v.states)
	return g
}

// [VisibleField] implements [fmt.Stringer]
func (v *VisibleField) String() string {
	return v.states.ToString(v.field.cols)
}
