// Package tictactoe implements standard 3x3 Tic-Tac-Toe.
package tictactoe

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"tictac/game"
)

const Cells = 9

// Lines lists the winning rows, columns and diagonals of a 3x3 grid.
var Lines = [8][3]int{
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8},
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8},
	{0, 4, 8}, {2, 4, 6},
}

// Info registers the game with drivers.
var Info = game.Info{
	Name:        "tictactoe",
	Title:       "Standard Tic-Tac-Toe",
	Simulations: 1000,
	New:         func() game.State { return New() },
}

// Move places a mark on the cell with the given index, 0 to 8 row-major.
type Move int

func (m Move) Coords() []int { return []int{int(m)} }

func (m Move) String() string { return fmt.Sprintf("cell %d", int(m)) }

// State is a Tic-Tac-Toe position. The zero value is the empty board.
type State struct {
	board [Cells]game.Player
}

// New returns the empty board with X to move.
func New() State {
	return State{}
}

// Parse reads a board from 9 characters, X, O and '.' for empty cells,
// ignoring whitespace. Mark counts must be consistent with X moving first.
func Parse(layout string) (State, error) {
	var s State
	cells := strings.Join(strings.Fields(layout), "")
	if len(cells) != Cells {
		return s, errors.Errorf("board layout has %d cells, want %d", len(cells), Cells)
	}
	for i, c := range cells {
		switch c {
		case 'X', 'x':
			s.board[i] = game.PlayerOne
		case 'O', 'o':
			s.board[i] = game.PlayerTwo
		case '.', '-', '_':
		default:
			return s, errors.Errorf("unexpected character %q in board layout", c)
		}
	}
	xs, os := s.count()
	if xs != os && xs != os+1 {
		return s, errors.Wrapf(game.ErrIllegalState, "board has %d X and %d O marks", xs, os)
	}
	return s, nil
}

func (s State) count() (xs, os int) {
	for _, cell := range s.board {
		switch cell {
		case game.PlayerOne:
			xs++
		case game.PlayerTwo:
			os++
		}
	}
	return xs, os
}

// Cell returns the owner of cell i, or 0 if it is empty.
func (s State) Cell(i int) game.Player {
	return s.board[i]
}

func (s State) Player() game.Player {
	if xs, os := s.count(); xs > os {
		return game.PlayerTwo
	}
	return game.PlayerOne
}

func (s State) LegalActions() []game.Action {
	if s.IsTerminal() {
		return nil
	}
	actions := make([]game.Action, 0, Cells)
	for i, cell := range s.board {
		if cell == 0 {
			actions = append(actions, Move(i))
		}
	}
	return actions
}

func (s State) Play(action game.Action) (game.State, error) {
	move, ok := action.(Move)
	if !ok {
		return nil, errors.Wrapf(game.ErrIllegalAction, "unexpected action type %T", action)
	}
	if move < 0 || move >= Cells {
		return nil, errors.Wrapf(game.ErrIllegalAction, "cell %d out of range", int(move))
	}
	if s.IsTerminal() {
		return nil, errors.Wrap(game.ErrIllegalAction, "game is over")
	}
	if s.board[move] != 0 {
		return nil, errors.Wrapf(game.ErrIllegalAction, "cell %d is occupied", int(move))
	}
	s.board[move] = s.Player()
	return s, nil
}

// Winner returns the owner of a completed line, or 0.
func (s State) Winner() game.Player {
	return WinnerOf(s.board)
}

// WinnerOf returns the owner of a completed line in a 3x3 grid, or 0.
func WinnerOf(grid [Cells]game.Player) game.Player {
	for _, line := range Lines {
		if p := grid[line[0]]; p != 0 && p == grid[line[1]] && p == grid[line[2]] {
			return p
		}
	}
	return 0
}

func (s State) full() bool {
	xs, os := s.count()
	return xs+os == Cells
}

func (s State) IsTerminal() bool {
	return s.Winner() != 0 || s.full()
}

func (s State) Result() (game.Result, error) {
	if winner := s.Winner(); winner != 0 {
		return game.ResultOf(true, game.Win(winner))
	}
	return game.ResultOf(s.full(), game.Draw)
}

func (s State) Hash() game.StateHash {
	h := fnv.New64a()
	var buf [Cells]byte
	for i, cell := range s.board {
		buf[i] = byte(cell)
	}
	_, _ = h.Write(buf[:])
	return game.StateHash(binary.BigEndian.Uint64(h.Sum(nil)))
}

func (s State) Equal(other game.State) bool {
	o, ok := other.(State)
	return ok && o == s
}

// String draws the board, showing the index of every empty cell.
func (s State) String() string {
	var b strings.Builder
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			i := 3*row + col
			if col > 0 {
				b.WriteByte(' ')
			}
			if cell := s.board[i]; cell != 0 {
				b.WriteString(cell.Mark())
			} else {
				b.WriteString(strconv.Itoa(i))
			}
		}
		if row < 2 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func (s State) Prompt() string {
	return "Enter your move as cell number (0-8):\n0 1 2\n3 4 5\n6 7 8"
}

func (s State) ParseAction(input string) (game.Action, error) {
	cell, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return nil, errors.Errorf("invalid input %q: expected a cell number", input)
	}
	if cell < 0 || cell >= Cells {
		return nil, errors.Errorf("cell number must be between 0 and 8, got %d", cell)
	}
	return Move(cell), nil
}
