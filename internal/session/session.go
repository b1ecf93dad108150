package session

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/sirupsen/logrus"
	"github.com/vancomm/minefield/internal/mines"
)

var (
	ErrBadParams  = errors.New("invalid game params")
	ErrOutOfRange = errors.New("invalid square coordinates")
	ErrGameOver   = errors.New("game is over")
)

// MaxSide bounds both dimensions of a board.
const MaxSide = 256

type Params struct {
	Rows      int
	Cols      int
	Mines     int
	Placement mines.Placement
}

// Validate checks everything NewMineField and Populate would otherwise
// panic on.
func (p Params) Validate() error {
	if p.Rows <= 0 || p.Cols <= 0 {
		return fmt.Errorf("%w: field must be at least 1x1, got %dx%d",
			ErrBadParams, p.Rows, p.Cols)
	}
	if p.Rows > MaxSide || p.Cols > MaxSide {
		return fmt.Errorf("%w: field must be at most %dx%d, got %dx%d",
			ErrBadParams, MaxSide, MaxSide, p.Rows, p.Cols)
	}
	if p.Mines < 0 || 3*p.Mines >= p.Rows*p.Cols {
		return fmt.Errorf("%w: mine count must be in [0, %d), got %d",
			ErrBadParams, (p.Rows*p.Cols+2)/3, p.Mines)
	}
	free := p.Rows*p.Cols - 1
	if p.Placement == mines.ExcludeCross {
		free = (p.Rows - 1) * (p.Cols - 1)
	}
	if p.Mines > free {
		return fmt.Errorf("%w: %d mines do not fit in %d free squares with %s placement",
			ErrBadParams, p.Mines, free, p.Placement)
	}
	return nil
}

/*
 * Session is one player's game. It owns the MineField and VisibleField
 * and keeps the two in step: the mines are only placed on the first
 * open of each game, around the square the player picked.
 */
type Session struct {
	params  Params
	field   *mines.MineField
	visible *mines.VisibleField
	log     logrus.FieldLogger

	started   bool
	dead, won bool
}

func New(params Params, r *rand.Rand, log logrus.FieldLogger) (*Session, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	field := mines.NewMineField(
		params.Rows, params.Cols, params.Mines,
		mines.WithRand(r), mines.WithPlacement(params.Placement),
	)
	s := &Session{
		params:  params,
		field:   field,
		visible: mines.NewVisibleField(field),
		log: log.WithFields(logrus.Fields{
			"rows": params.Rows, "cols": params.Cols, "mines": params.Mines,
		}),
	}
	return s, nil
}

func (s *Session) Params() Params { return s.params }

func (s *Session) Over() bool { return s.dead || s.won }

func (s *Session) Dead() bool { return s.dead }

func (s *Session) Won() bool { return s.won }

func (s *Session) Started() bool { return s.started }

func (s *Session) check(row, col int) error {
	if !s.field.InRange(row, col) {
		return fmt.Errorf("%w: %d:%d is outside %dx%d",
			ErrOutOfRange, row, col, s.params.Rows, s.params.Cols)
	}
	if s.Over() {
		return ErrGameOver
	}
	return nil
}

func (s *Session) finish() {
	if !s.visible.IsGameOver() {
		return
	}
	s.won = !s.dead
	s.log.WithFields(logrus.Fields{
		"won": s.won, "mines_left": s.visible.NumMinesLeft(),
	}).Info("game over")
}

// Open uncovers (row, col). The first open of a game places the mines so
// that the opened square is safe.
func (s *Session) Open(row, col int) error {
	if err := s.check(row, col); err != nil {
		return err
	}
	if !s.started {
		s.visible.ResetGameDisplay()
		s.field.Populate(row, col)
		s.started = true
		s.log.WithField("seed", fmt.Sprintf("%d:%d", row, col)).Debug("game started")
	}
	if !s.visible.Uncover(row, col) {
		s.dead = true
	}
	s.finish()
	return nil
}

// Guess cycles the guess mark on (row, col).
func (s *Session) Guess(row, col int) error {
	if err := s.check(row, col); err != nil {
		return err
	}
	s.visible.CycleGuess(row, col)
	if s.started {
		s.finish()
	}
	return nil
}

func (s *Session) Chord(row, col int) error {
	if err := s.check(row, col); err != nil {
		return err
	}
	if !s.visible.Chord(row, col) {
		s.dead = true
	}
	if s.started {
		s.finish()
	}
	return nil
}

// Restart starts a new game with the same params. Mines are placed again
// on the next open.
func (s *Session) Restart() {
	s.visible.ResetGameDisplay()
	s.started = false
	s.dead, s.won = false, false
	s.log.Debug("game restarted")
}

type Snapshot struct {
	Rows      int        `json:"rows"`
	Cols      int        `json:"cols"`
	MineCount int        `json:"mine_count"`
	MinesLeft int        `json:"mines_left"`
	Grid      mines.Grid `json:"grid"`
	Started   bool       `json:"started"`
	Dead      bool       `json:"dead"`
	Won       bool       `json:"won"`
}

func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		Rows:      s.params.Rows,
		Cols:      s.params.Cols,
		MineCount: s.field.NumMines(),
		MinesLeft: s.visible.NumMinesLeft(),
		Grid:      s.visible.Grid(),
		Started:   s.started,
		Dead:      s.dead,
		Won:       s.won,
	}
}
