package searcher

import (
	"math"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"tictac/experiments/metrics"
	"tictac/game"
	"tictac/meta"
)

type Option func(m *MCTS) error

// MCTS is a Monte Carlo tree search with UCB1 selection and uniformly random
// rollouts. It only holds configuration: every search grows its own tree and
// owns its own random source, so one MCTS may serve concurrent searches.
type MCTS struct {
	simulations int // -1 when searching by duration
	duration    time.Duration
	cSquared    float64
	seed        uint64
	seeded      bool
	metrics     bool
}

// WithSimulations sets the number of simulations per search. Zero
// simulations make the search return the first legal action.
func WithSimulations(simulations int) Option {
	return func(m *MCTS) error {
		if simulations < 0 {
			return errors.Wrapf(game.ErrConfiguration, "negative simulation count %d", simulations)
		}
		m.simulations = simulations
		return nil
	}
}

// WithDuration searches for a wall-clock budget instead of a fixed number of
// simulations.
func WithDuration(duration time.Duration) Option {
	return func(m *MCTS) error {
		if duration <= 0 {
			return errors.Wrapf(game.ErrConfiguration, "non-positive search duration %s", duration)
		}
		m.duration = duration
		return nil
	}
}

// WithExploration sets the UCB1 exploration constant C.
func WithExploration(c float64) Option {
	return func(m *MCTS) error {
		if c < 0 || math.IsNaN(c) || math.IsInf(c, 0) {
			return errors.Wrapf(game.ErrConfiguration, "invalid exploration constant %v", c)
		}
		m.cSquared = c * c
		return nil
	}
}

// WithSeed fixes the random source so that searches are reproducible.
func WithSeed(seed uint64) Option {
	return func(m *MCTS) error {
		m.seed = seed
		m.seeded = true
		return nil
	}
}

func WithMetrics() Option {
	return func(m *MCTS) error {
		m.metrics = true
		return nil
	}
}

// NewMCTS validates options and returns a searcher. Without a simulation
// count or duration it runs meta.DefaultSimulations simulations per search.
func NewMCTS(options ...Option) (*MCTS, error) {
	m := &MCTS{ // Default values
		simulations: -1,
		cSquared:    CSquared,
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
	if m.simulations >= 0 && m.duration > 0 {
		return nil, errors.Wrap(game.ErrConfiguration, "specify search simulations or duration, not both")
	}
	if m.simulations < 0 && m.duration == 0 {
		m.simulations = meta.DefaultSimulations
	}
	return m, nil
}

func (m *MCTS) NextAction(state game.State) (game.Action, error) {
	t, err := m.Search(state)
	if err != nil {
		return nil, err
	}
	return t.BestAction(), nil
}

// Search runs the configured simulations from state and returns the tree.
func (m *MCTS) Search(state game.State) (*Tree, error) {
	if _, err := checkSearchable(state); err != nil {
		return nil, err
	}

	collector := metrics.NewDummyCollector()
	if m.metrics {
		collector = metrics.NewCollector()
	}
	collector.Start("mcts")

	seed := m.seed
	if !m.seeded {
		seed = uint64(time.Now().UnixNano())
	}
	rng := rand.New(rand.NewSource(seed))
	t := newTree(state, m.cSquared)

	var err error
	if m.simulations >= 0 {
		err = m.iterate(t, rng, collector)
	} else {
		err = m.countdown(t, rng, collector)
	}
	if err != nil {
		return nil, err
	}

	metric := collector.Complete()
	metric.Nodes = t.size()
	log.Debug().
		Int("episodes", t.node(rootID).visits).
		Int("nodes", t.size()).
		Dur("duration", metric.Duration).
		Msg("mcts-search-complete")

	return &Tree{tree: t, Metrics: metric}, nil
}

func (m *MCTS) iterate(t *tree, rng *rand.Rand, collector metrics.Collector) error {
	for i := 0; i < m.simulations; i++ {
		if err := simulate(t, rng, collector); err != nil {
			return err
		}
	}
	return nil
}

func (m *MCTS) countdown(t *tree, rng *rand.Rand, collector metrics.Collector) error {
	deadline := time.Now().Add(m.duration)
	for time.Now().Before(deadline) {
		if err := simulate(t, rng, collector); err != nil {
			return err
		}
	}
	return nil
}

func simulate(t *tree, rng *rand.Rand, collector metrics.Collector) error {
	leaf, err := t.selectThenExpand()
	if err != nil {
		return err
	}
	result, err := rollout(t.node(leaf).state, rng, collector)
	if err != nil {
		return err
	}
	t.backup(leaf, result)
	collector.AddEpisode()
	return nil
}

func rollout(state game.State, rng *rand.Rand, collector metrics.Collector) (game.Result, error) {
	plies := 0
	// Rollout till game over
	for !state.IsTerminal() {
		moves := state.LegalActions()
		if len(moves) == 0 {
			return game.Draw, errors.Wrap(game.ErrIllegalState, "non-terminal state has no legal actions")
		}
		move := moves[rng.Intn(len(moves))] // Random rollout policy
		next, err := state.Play(move)
		if err != nil {
			return game.Draw, errors.WithMessagef(err, "rollout playing %s", move)
		}
		state = next
		plies++
	}

	collector.AddRollout(plies)
	return state.Result()
}
