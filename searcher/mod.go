package searcher

import (
	"math"

	"github.com/pkg/errors"

	"tictac/game"
)

// Hyperparameters for MCTS

const CSquared = 2.0 // Exploration constant C = sqrt(2), squared

// A rollout won by the player who moved into a node credits that node with
// WIN. Draws and losses credit nothing.
const WIN = 1.0
const LOSS = 0.0

// Searcher picks an action for the player to move.
type Searcher interface {
	// NextAction fails with game.ErrIllegalState on a terminal state.
	NextAction(state game.State) (game.Action, error)
}

func rewarder(result game.Result) func(player game.Player) (reward float64) {
	return func(player game.Player) float64 {
		if result.Favors(player) {
			return WIN
		}
		return LOSS
	}
}

func ucb1(rewards float64, visits int, c2LnN float64) float64 {
	// Prioritize unexplored nodes
	if visits == 0 {
		return math.Inf(1)
	}

	return rewards/float64(visits) + math.Sqrt(c2LnN/float64(visits))
}

func checkSearchable(state game.State) ([]game.Action, error) {
	if state == nil {
		return nil, errors.Wrap(game.ErrIllegalState, "no state to search")
	}
	if state.IsTerminal() {
		return nil, errors.Wrap(game.ErrIllegalState, "cannot search a terminal state")
	}
	actions := state.LegalActions()
	if len(actions) == 0 {
		return nil, errors.Wrap(game.ErrIllegalState, "non-terminal state has no legal actions")
	}
	return actions, nil
}
