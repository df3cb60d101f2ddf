// Package ultimate implements Ultimate Tic-Tac-Toe: nine local 3x3 boards
// arranged in a 3x3 grid. The cell a player marks decides the local board
// the opponent has to play in next, unless that board is already decided.
package ultimate

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"tictac/game"
	"tictac/game/tictactoe"
)

const Boards = 9

// Variant selects how the whole game is won.
type Variant int

const (
	// Classic is won by three local boards in a line.
	Classic Variant = iota
	// SuddenDeath is won by the first local board won.
	SuddenDeath
)

func (v Variant) String() string {
	if v == SuddenDeath {
		return "sudden-death"
	}
	return "classic"
}

var (
	Info = game.Info{
		Name:        "ultimate",
		Title:       "Ultimate Tic-Tac-Toe",
		Simulations: 400,
		New:         func() game.State { return New(Classic) },
	}
	SuddenDeathInfo = game.Info{
		Name:        "sudden-death",
		Title:       "Sudden-Death Ultimate Tic-Tac-Toe",
		Simulations: 400,
		New:         func() game.State { return New(SuddenDeath) },
	}
)

// Move marks a cell of a local board; both indices run 0 to 8 row-major.
type Move struct {
	Board, Cell int
}

func (m Move) Coords() []int { return []int{m.Board, m.Cell} }

func (m Move) String() string { return fmt.Sprintf("board %d, cell %d", m.Board, m.Cell) }

type status int8

const (
	open status = iota
	wonByOne
	wonByTwo
	drawn
)

func wonBy(p game.Player) status {
	if p == game.PlayerOne {
		return wonByOne
	}
	return wonByTwo
}

// State is an Ultimate Tic-Tac-Toe position.
type State struct {
	boards  [Boards][tictactoe.Cells]game.Player
	status  [Boards]status
	forced  int // local board the mover must play in, -1 if free
	ply     int
	variant Variant
}

// New returns the empty position with X to move anywhere.
func New(variant Variant) State {
	return State{forced: -1, variant: variant}
}

// Replay plays moves from the empty position.
func Replay(variant Variant, moves ...Move) (State, error) {
	s := New(variant)
	for i, move := range moves {
		next, err := s.Play(move)
		if err != nil {
			return s, errors.WithMessagef(err, "replaying move %d", i+1)
		}
		s = next.(State)
	}
	return s, nil
}

func (s State) Variant() Variant { return s.variant }

// Forced returns the local board the mover is confined to, or false.
func (s State) Forced() (int, bool) {
	return s.forced, s.forced >= 0
}

// Cell returns the owner of a cell, or 0 if it is empty.
func (s State) Cell(board, cell int) game.Player {
	return s.boards[board][cell]
}

// Owner returns the winner of a local board, or 0 if it is open or drawn.
func (s State) Owner(board int) game.Player {
	switch s.status[board] {
	case wonByOne:
		return game.PlayerOne
	case wonByTwo:
		return game.PlayerTwo
	default:
		return 0
	}
}

func (s State) Player() game.Player {
	if s.ply%2 == 0 {
		return game.PlayerOne
	}
	return game.PlayerTwo
}

func (s State) LegalActions() []game.Action {
	if s.IsTerminal() {
		return nil
	}
	var actions []game.Action
	for b := range s.boards {
		if s.status[b] != open || (s.forced >= 0 && s.forced != b) {
			continue
		}
		for c, cell := range s.boards[b] {
			if cell == 0 {
				actions = append(actions, Move{Board: b, Cell: c})
			}
		}
	}
	return actions
}

func (s State) Play(action game.Action) (game.State, error) {
	move, ok := action.(Move)
	if !ok {
		return nil, errors.Wrapf(game.ErrIllegalAction, "unexpected action type %T", action)
	}
	if move.Board < 0 || move.Board >= Boards || move.Cell < 0 || move.Cell >= tictactoe.Cells {
		return nil, errors.Wrapf(game.ErrIllegalAction, "%s out of range", move)
	}
	switch {
	case s.IsTerminal():
		return nil, errors.Wrap(game.ErrIllegalAction, "game is over")
	case s.status[move.Board] != open:
		return nil, errors.Wrapf(game.ErrIllegalAction, "board %d is already decided", move.Board)
	case s.forced >= 0 && s.forced != move.Board:
		return nil, errors.Wrapf(game.ErrIllegalAction, "must play in board %d", s.forced)
	case s.boards[move.Board][move.Cell] != 0:
		return nil, errors.Wrapf(game.ErrIllegalAction, "%s is occupied", move)
	}

	mover := s.Player()
	local := &s.boards[move.Board]
	local[move.Cell] = mover
	if tictactoe.WinnerOf(*local) == mover {
		s.status[move.Board] = wonBy(mover)
	} else if full(*local) {
		s.status[move.Board] = drawn
	}

	s.forced = move.Cell
	if s.status[s.forced] != open {
		s.forced = -1
	}
	s.ply++
	return s, nil
}

func full(grid [tictactoe.Cells]game.Player) bool {
	for _, cell := range grid {
		if cell == 0 {
			return false
		}
	}
	return true
}

// winner returns the player who has won the whole game, or 0.
func (s State) winner() game.Player {
	var meta [Boards]game.Player
	for b := range s.status {
		meta[b] = s.Owner(b)
		if s.variant == SuddenDeath && meta[b] != 0 {
			return meta[b]
		}
	}
	if s.variant == SuddenDeath {
		return 0
	}
	return tictactoe.WinnerOf(meta)
}

func (s State) decided() bool {
	for _, st := range s.status {
		if st == open {
			return false
		}
	}
	return true
}

func (s State) IsTerminal() bool {
	return s.winner() != 0 || s.decided()
}

func (s State) Result() (game.Result, error) {
	if winner := s.winner(); winner != 0 {
		return game.ResultOf(true, game.Win(winner))
	}
	return game.ResultOf(s.decided(), game.Draw)
}

func (s State) Hash() game.StateHash {
	h := fnv.New64a()
	buf := make([]byte, 0, Boards*tictactoe.Cells+Boards+2)
	for b := range s.boards {
		for _, cell := range s.boards[b] {
			buf = append(buf, byte(cell))
		}
	}
	for _, st := range s.status {
		buf = append(buf, byte(st))
	}
	buf = append(buf, byte(s.forced+1), byte(s.variant))
	_, _ = h.Write(buf)
	return game.StateHash(binary.BigEndian.Uint64(h.Sum(nil)))
}

func (s State) Equal(other game.State) bool {
	o, ok := other.(State)
	return ok && o == s
}

// String draws the nine boards with their indices. Empty cells show their
// cell index.
func (s State) String() string {
	const separator = "──────┼───────┼──────"
	var rows []string
	for bigRow := 0; bigRow < 3; bigRow++ {
		rows = append(rows, fmt.Sprintf(" B %d  │  B %d  │  B %d", 3*bigRow, 3*bigRow+1, 3*bigRow+2))
		for smallRow := 0; smallRow < 3; smallRow++ {
			parts := make([]string, 3)
			for bigCol := 0; bigCol < 3; bigCol++ {
				b := 3*bigRow + bigCol
				cells := make([]string, 3)
				for i := range cells {
					c := 3*smallRow + i
					if p := s.boards[b][c]; p != 0 {
						cells[i] = p.Mark()
					} else {
						cells[i] = strconv.Itoa(c)
					}
				}
				parts[bigCol] = strings.Join(cells, " ")
			}
			rows = append(rows, parts[0]+" │ "+parts[1]+" │ "+parts[2])
		}
		if bigRow < 2 {
			rows = append(rows, separator)
		}
	}
	return strings.Join(rows, "\n")
}

func (s State) Prompt() string {
	prompt := "Enter your move as <board> <cell> (numbers 0-8)."
	if s.forced >= 0 {
		prompt += fmt.Sprintf(" You must play in local board %d.", s.forced)
	}
	return prompt
}

func (s State) ParseAction(input string) (game.Action, error) {
	tokens := strings.Fields(input)
	if len(tokens) != 2 {
		return nil, errors.Errorf("invalid input %q: expected two numbers", input)
	}
	board, err := strconv.Atoi(tokens[0])
	if err != nil {
		return nil, errors.Errorf("invalid board number %q", tokens[0])
	}
	cell, err := strconv.Atoi(tokens[1])
	if err != nil {
		return nil, errors.Errorf("invalid cell number %q", tokens[1])
	}
	if board < 0 || board >= Boards || cell < 0 || cell >= tictactoe.Cells {
		return nil, errors.Errorf("board and cell numbers must be between 0 and 8, got %d %d", board, cell)
	}
	return Move{Board: board, Cell: cell}, nil
}
