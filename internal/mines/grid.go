package mines

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

type Kind uint8

const (
	Covered Kind = iota // initial state of every square
	Guessed
	Questioned
	Revealed // uncovered, shows the number of adjacent mines
	Mine     // unguessed mine shown at the end of a lost game
	IncorrectGuess
	ExplodedMine
)

func (k Kind) String() string {
	switch k {
	case Covered:
		return "covered"
	case Guessed:
		return "guessed"
	case Questioned:
		return "questioned"
	case Revealed:
		return "revealed"
	case Mine:
		return "mine"
	case IncorrectGuess:
		return "incorrect guess"
	case ExplodedMine:
		return "exploded mine"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// CellState is what the player can see of one square. Adjacent is only
// meaningful when Kind is [Revealed].
type CellState struct {
	Kind     Kind
	Adjacent uint8
}

// Number returns the uncovered state of a square with n adjacent mines.
func Number(n int) CellState {
	assert(0 <= n && n <= 8, "adjacent mine count out of range: %d", n)
	return CellState{Kind: Revealed, Adjacent: uint8(n)}
}

func (s CellState) Uncovered() bool {
	return s.Kind >= Revealed
}

func (s CellState) String() string {
	switch s.Kind {
	case Covered:
		return " "
	case Guessed:
		return "*"
	case Questioned:
		return "?"
	case Revealed:
		return strconv.Itoa(int(s.Adjacent))
	case Mine:
		return "M"
	case IncorrectGuess:
		return "X"
	default:
		return "!"
	}
}

/*
 * Code is the compact form sent to front ends:
 *
 *  - 0 to 8 mean the square is open and has a surrounding mine
 *    count.
 *
 *  - -1 means the square is guessed to be a mine.
 *
 *  - -2 means the square is covered.
 *
 *  - -3 means the square is marked with a question mark.
 *
 *  - 65 means the square had a mine revealed and this was the
 *    one the player hit.
 *
 *  - 66 means the square was guessed but has no mine.
 *
 *  - 67 means the square has a mine revealed when the game was
 *    lost.
 */
func (s CellState) Code() int8 {
	switch s.Kind {
	case Covered:
		return -2
	case Guessed:
		return -1
	case Questioned:
		return -3
	case Revealed:
		return int8(s.Adjacent)
	case ExplodedMine:
		return 65
	case IncorrectGuess:
		return 66
	case Mine:
		return 67
	default:
		panic(AssertionError{fmt.Sprintf("unknown cell kind %d", s.Kind)})
	}
}

// [CellState] implements [json.Marshaler]
func (s CellState) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Code())
}

type Grid []CellState

func (g Grid) ToString(width int) string {
	var b strings.Builder
	for y := range len(g) / width {
		for x := range width {
			i := y*width + x
			if i >= len(g) {
				break
			}
			fmt.Fprint(&b, g[i].String()+" ")
		}
		fmt.Fprint(&b, "\n")
	}
	return b.String()
}
