package session

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

var ErrBadCommand = errors.New("invalid command")

type command string

const (
	cmdNoop    command = "g"
	cmdOpen    command = "o"
	cmdGuess   command = "f"
	cmdChord   command = "c"
	cmdRestart command = "n"
)

// Maps known commands to number of arguments
var commandNargs = map[command]int{
	cmdNoop:    0,
	cmdOpen:    2,
	cmdGuess:   2,
	cmdChord:   2,
	cmdRestart: 0,
}

func parseRowCol(args []string) (row int, col int, err error) {
	if row, err = strconv.Atoi(args[0]); err != nil {
		err = fmt.Errorf("%w: row must be an int", ErrBadCommand)
		return
	}
	if col, err = strconv.Atoi(args[1]); err != nil {
		err = fmt.Errorf("%w: column must be an int", ErrBadCommand)
		return
	}
	return
}

// Execute runs one text command:
//
//	g        do nothing
//	o r c    open the square at row r, column c
//	f r c    cycle the guess mark on a square
//	c r c    open the neighbours of an uncovered square
//	n        start a new game
func (s *Session) Execute(line string) error {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return nil
	}
	cmd := command(strings.ToLower(parts[0]))
	nargs, ok := commandNargs[cmd]
	if !ok {
		return fmt.Errorf("%w: unknown command %q", ErrBadCommand, parts[0])
	}
	if nargs != len(parts)-1 {
		return fmt.Errorf("%w: %q takes %d arguments", ErrBadCommand, parts[0], nargs)
	}

	switch cmd {
	case cmdNoop:
		return nil
	case cmdRestart:
		s.Restart()
		return nil
	}

	row, col, err := parseRowCol(parts[1:])
	if err != nil {
		return err
	}
	switch cmd {
	case cmdOpen:
		return s.Open(row, col)
	case cmdGuess:
		return s.Guess(row, col)
	default:
		return s.Chord(row, col)
	}
}

// Render writes the board with row and column numbers, followed by a
// status line.
func (s *Session) Render(w io.Writer) error {
	var b strings.Builder
	cols := s.params.Cols
	width := len(strconv.Itoa(max(s.params.Rows, cols) - 1))

	fmt.Fprintf(&b, "%*s ", width, "")
	for col := range cols {
		fmt.Fprintf(&b, " %*d", width, col)
	}
	b.WriteString("\n")

	grid := s.visible.Grid()
	for row := range s.params.Rows {
		fmt.Fprintf(&b, "%*d ", width, row)
		for col := range cols {
			cell := grid[row*cols+col].String()
			if cell == " " {
				cell = "."
			}
			fmt.Fprintf(&b, " %*s", width, cell)
		}
		b.WriteString("\n")
	}

	switch {
	case s.won:
		b.WriteString("you won!\n")
	case s.dead:
		b.WriteString("you lost\n")
	default:
		fmt.Fprintf(&b, "mines left: %d\n", s.visible.NumMinesLeft())
	}

	_, err := io.WriteString(w, b.String())
	return err
}
