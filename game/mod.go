package game

import "tictac/utils"

// Action is a game specific move. Implementations must be comparable values
// fully described by their coordinates, so they can be used as map keys and
// compared with ==.
type Action interface {
	Coords() []int
	String() string
}

type StateHash uint64

// State should be immutable - operations on State always return a new copy
type State interface {
	// Player returns the player to move, derived from the move history.
	Player() Player
	// LegalActions returns the actions available to Player in a stable order.
	// It is empty if and only if the state is terminal.
	LegalActions() []Action
	// Play returns the state after action. It fails with ErrIllegalAction if
	// action is not one of LegalActions, leaving the receiver untouched.
	Play(Action) (State, error)
	IsTerminal() bool
	// Result fails with ErrIllegalState on a non-terminal state.
	Result() (Result, error)
	Hash() StateHash
	Equal(State) bool
	String() string
}

// Parser is implemented by games that can read actions typed by a human.
type Parser interface {
	Prompt() string
	ParseAction(input string) (Action, error)
}

// Info describes a playable game for registries and drivers.
type Info struct {
	Name        string
	Title       string
	Simulations int // default MCTS strength
	New         func() State
}

// Contains reports whether action is legal in state.
func Contains(state State, action Action) bool {
	return utils.FindIndex(state.LegalActions(), action) >= 0
}
