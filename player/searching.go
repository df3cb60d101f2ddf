package player

import (
	"github.com/pkg/errors"
	"golang.org/x/exp/rand"

	"tictac/experiments/metrics"
	"tictac/game"
	"tictac/searcher"
)

// MCTS plays the most visited action of a fresh search each turn.
type MCTS struct {
	searcher *searcher.MCTS
}

func NewMCTS(s *searcher.MCTS) *MCTS {
	return &MCTS{searcher: s}
}

func (p *MCTS) FindMove(state game.State) (game.Action, metrics.SearchMetric, error) {
	tree, err := p.searcher.Search(state)
	if err != nil {
		return nil, metrics.SearchMetric{}, err
	}
	return tree.BestAction(), tree.Metrics, nil
}

type Minimax struct {
	searcher *searcher.Minimax
}

func NewMinimax(s *searcher.Minimax) *Minimax {
	return &Minimax{searcher: s}
}

func (p *Minimax) FindMove(state game.State) (game.Action, metrics.SearchMetric, error) {
	e, err := p.searcher.Evaluate(state)
	if err != nil {
		return nil, metrics.SearchMetric{}, err
	}
	return e.Action, e.Metrics, nil
}

// Random plays uniformly random legal actions. It is a baseline opponent and
// is not safe for concurrent use.
type Random struct {
	rng *rand.Rand
}

func NewRandom(seed uint64) *Random {
	return &Random{rng: rand.New(rand.NewSource(seed))}
}

func (p *Random) FindMove(state game.State) (game.Action, metrics.SearchMetric, error) {
	actions := state.LegalActions()
	if state.IsTerminal() || len(actions) == 0 {
		return nil, metrics.SearchMetric{}, errors.Wrap(game.ErrIllegalState, "no legal actions to choose from")
	}
	return actions[p.rng.Intn(len(actions))], metrics.SearchMetric{Algorithm: "random"}, nil
}
