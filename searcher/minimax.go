package searcher

import (
	"math"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"tictac/experiments/metrics"
	"tictac/game"
)

type MinimaxOption func(m *Minimax) error

// Minimax searches the game tree by backward induction. Positions cut off by
// the depth limit are valued as a draw: there is no heuristic evaluation, so
// a shallow search can misjudge deep tactical lines.
type Minimax struct {
	maxDepth  int
	limited   bool
	alphaBeta bool
	transpose bool
	metrics   bool
}

// WithMaxDepth limits the search to depth plies. A depth of 0 returns the
// first legal action without searching.
func WithMaxDepth(depth int) MinimaxOption {
	return func(m *Minimax) error {
		if depth < 0 {
			return errors.Wrapf(game.ErrConfiguration, "negative search depth %d", depth)
		}
		m.maxDepth = depth
		m.limited = true
		return nil
	}
}

// WithAlphaBeta toggles alpha-beta pruning. Pruning never changes the chosen
// action.
func WithAlphaBeta(enabled bool) MinimaxOption {
	return func(m *Minimax) error {
		m.alphaBeta = enabled
		return nil
	}
}

func WithTranspositions(enabled bool) MinimaxOption {
	return func(m *Minimax) error {
		m.transpose = enabled
		return nil
	}
}

func WithMinimaxMetrics() MinimaxOption {
	return func(m *Minimax) error {
		m.metrics = true
		return nil
	}
}

// NewMinimax returns an unlimited depth searcher with alpha-beta pruning and
// a transposition table unless options say otherwise.
func NewMinimax(options ...MinimaxOption) (*Minimax, error) {
	m := &Minimax{ // Default values
		alphaBeta: true,
		transpose: true,
	}
	var errs error
	for _, option := range options {
		if err := option(m); err != nil {
			errs = multierror.Append(errs, err)
		}
	}
	if errs != nil {
		return nil, errs
	}
	return m, nil
}

// Evaluation is the outcome of a Minimax search. Value is +1 when the player
// to move forces a win, -1 when the opponent does and 0 otherwise.
type Evaluation struct {
	Action  game.Action
	Value   float64
	Metrics metrics.SearchMetric
}

func (m *Minimax) NextAction(state game.State) (game.Action, error) {
	e, err := m.Evaluate(state)
	if err != nil {
		return nil, err
	}
	return e.Action, nil
}

func (m *Minimax) Evaluate(state game.State) (Evaluation, error) {
	actions, err := checkSearchable(state)
	if err != nil {
		return Evaluation{}, err
	}

	collector := metrics.NewDummyCollector()
	if m.metrics {
		collector = metrics.NewCollector()
	}
	collector.Start("minimax")

	if m.limited && m.maxDepth == 0 {
		return Evaluation{Action: actions[0], Metrics: collector.Complete()}, nil
	}

	s := &minimaxSearch{
		limited:   m.limited,
		prune:     m.alphaBeta,
		collector: collector,
	}
	if m.transpose {
		s.table = newTranspositions()
	}
	remaining := -1
	if m.limited {
		remaining = m.maxDepth
	}

	var best game.Action
	bestValue := math.Inf(-1)
	for _, action := range actions {
		child, err := state.Play(action)
		if err != nil {
			return Evaluation{}, errors.WithMessagef(err, "searching %s", action)
		}
		alpha := math.Inf(-1)
		if s.prune {
			alpha = bestValue
		}
		value, err := s.value(child, s.below(remaining), math.Inf(-1), -alpha)
		if err != nil {
			return Evaluation{}, err
		}
		value = -value
		// Strict improvement keeps the first of equally valued actions
		if best == nil || value > bestValue {
			best = action
			bestValue = value
		}
		if s.prune && bestValue >= WIN {
			break
		}
	}

	metric := collector.Complete()
	log.Debug().
		Str("action", best.String()).
		Float64("value", bestValue).
		Int("nodes", metric.Nodes).
		Int("transpositions", s.tableSize()).
		Msg("minimax-search-complete")

	return Evaluation{Action: best, Value: bestValue, Metrics: metric}, nil
}

// minimaxSearch is the state of a single Evaluate call.
type minimaxSearch struct {
	limited   bool
	prune     bool
	table     *transpositions
	collector metrics.Collector
}

func (s *minimaxSearch) below(remaining int) int {
	if !s.limited {
		return -1
	}
	return remaining - 1
}

func (s *minimaxSearch) tableSize() int {
	if s.table == nil {
		return 0
	}
	return s.table.size()
}

// value is the negamax value of state for its player to move, searched with
// the fail-soft window (alpha, beta).
func (s *minimaxSearch) value(state game.State, remaining int, alpha, beta float64) (float64, error) {
	s.collector.AddNode()

	if state.IsTerminal() {
		result, err := state.Result()
		if err != nil {
			return 0, err
		}
		switch {
		case result.Favors(state.Player()):
			return WIN, nil
		case result.Favors(state.Player().Opponent()):
			return -WIN, nil
		}
		return 0, nil
	}
	if s.limited && remaining == 0 {
		return 0, nil
	}

	if !s.prune {
		alpha, beta = math.Inf(-1), math.Inf(1)
	}
	alphaOrig := alpha
	if s.table != nil {
		if e, ok := s.table.lookup(state, remaining); ok {
			switch e.flag {
			case tValid:
				return e.value, nil
			case tLBound:
				alpha = math.Max(alpha, e.value)
			case tUBound:
				beta = math.Min(beta, e.value)
			}
			if alpha >= beta {
				return e.value, nil
			}
		}
	}

	actions := state.LegalActions()
	if len(actions) == 0 {
		return 0, errors.Wrap(game.ErrIllegalState, "non-terminal state has no legal actions")
	}
	best := math.Inf(-1)
	for _, action := range actions {
		child, err := state.Play(action)
		if err != nil {
			return 0, errors.WithMessagef(err, "searching %s", action)
		}
		v, err := s.value(child, s.below(remaining), -beta, -alpha)
		if err != nil {
			return 0, err
		}
		best = math.Max(best, -v)
		if s.prune {
			alpha = math.Max(alpha, best)
			if alpha >= beta {
				break
			}
		}
	}

	if s.table != nil {
		flag := tValid
		if best <= alphaOrig {
			flag = tUBound
		} else if best >= beta {
			flag = tLBound
		}
		s.table.store(tEntry{state: state, value: best, flag: flag, remaining: remaining})
	}
	return best, nil
}
