package engine

import (
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"tictac/experiments/metrics"
	"tictac/game"
	"tictac/meta"
)

// Update is sent to observers after every move.
type Update struct {
	Step   int
	Player game.Player
	Action game.Action
	State  game.State
}

type LocalOption func(e *Local)

// WithObserver registers a callback for every move, e.g. to render the board.
func WithObserver(observe func(Update)) LocalOption {
	return func(e *Local) {
		e.observers = append(e.observers, observe)
	}
}

// WithMaxTurns overrides meta.MaxTurns.
func WithMaxTurns(turns int) LocalOption {
	return func(e *Local) {
		e.maxTurns = turns
	}
}

// Local runs a game between two in-process agents. Every action is checked
// against the legal set; an illegal action ends the game with an error
// instead of being replaced.
type Local struct {
	state     game.State
	agents    [2]Agent // indexed by player
	observers []func(Update)
	maxTurns  int
}

func LocalEngine(state game.State, one, two Agent, options ...LocalOption) *Local {
	e := &Local{
		state:    state,
		agents:   [2]Agent{one, two},
		maxTurns: meta.MaxTurns,
	}
	for _, option := range options {
		option(e)
	}
	return e
}

// Run executes the entire game loop until the game is over.
func (e *Local) Run() (Outcome, error) {
	if e.state == nil {
		return Outcome{}, errors.Wrap(game.ErrIllegalState, "no game to run")
	}

	starting := e.state.Player()
	start := time.Now()
	log.Info().Msgf("player %s is starting", starting)

	var moveMetrics []metrics.MoveMetric
	turnCount := 1
	for !e.state.IsTerminal() {
		if turnCount > e.maxTurns {
			return Outcome{}, errors.Wrapf(game.ErrIllegalState, "game not over after %d turns", e.maxTurns)
		}

		player := e.state.Player()
		agent := e.agents[player-game.PlayerOne]
		action, metric, err := agent.FindMove(e.state)
		if err != nil {
			return Outcome{}, errors.WithMessagef(err, "player %s at turn %d", player, turnCount)
		}
		if action == nil || !game.Contains(e.state, action) {
			return Outcome{}, errors.Wrapf(game.ErrIllegalAction, "player %s chose %v at turn %d", player, action, turnCount)
		}

		next, err := e.state.Play(action)
		if err != nil {
			return Outcome{}, errors.WithMessagef(err, "player %s at turn %d", player, turnCount)
		}
		log.Debug().
			Int("turn", turnCount).
			Str("player", player.String()).
			Str("action", action.String()).
			Dur("duration", metric.Duration).
			Msg("move")

		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         turnCount,
			Player:       int(player),
			Action:       action.String(),
			SearchMetric: metric,
		})
		e.state = next
		for _, observe := range e.observers {
			observe(Update{Step: turnCount, Player: player, Action: action, State: next})
		}
		turnCount++
	}

	result, err := e.state.Result()
	if err != nil {
		return Outcome{}, err
	}
	end := time.Now()
	log.Info().Msgf("game over after %d moves: %s", len(moveMetrics), result)

	return Outcome{
		Result: result,
		Final:  e.state,
		Game: metrics.GameMetric{
			StartingPlayer: int(starting),
			Result:         result.String(),
			StartTime:      start,
			EndTime:        end,
			Duration:       end.Sub(start),
			TotalMoves:     len(moveMetrics),
		},
		Moves: moveMetrics,
	}, nil
}
