package engine

import (
	"tictac/experiments/metrics"
	"tictac/game"
)

type Agent interface {
	// FindMove returns an action and performance metrics (if collected) from the search behind it
	FindMove(state game.State) (game.Action, metrics.SearchMetric, error)
}

type Engine interface {
	// Run plays a game till it is over or a max number of turns is reached
	Run() (Outcome, error)
}

// Outcome is the record of a finished game.
type Outcome struct {
	Result game.Result
	Final  game.State
	Game   metrics.GameMetric
	Moves  []metrics.MoveMetric
}
