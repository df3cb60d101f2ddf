package player

import (
	"github.com/pkg/errors"

	"tictac/engine"
	"tictac/experiments/metrics"
	"tictac/game"
	"tictac/searcher"
)

const (
	AlgorithmMCTS    = "mcts"
	AlgorithmMinimax = "minimax"
	AlgorithmRandom  = "random"
)

// FromConfig builds a computer agent. MCTS agents without a simulation count
// or duration run simulations per move.
func FromConfig(config metrics.AgentConfig, simulations int) (engine.Agent, error) {
	switch config.Algorithm {
	case AlgorithmMCTS:
		options := []searcher.Option{searcher.WithSeed(config.Seed), searcher.WithMetrics()}
		switch {
		case config.Duration > 0:
			options = append(options, searcher.WithDuration(config.Duration))
		case config.Simulations != 0:
			options = append(options, searcher.WithSimulations(config.Simulations))
		default:
			options = append(options, searcher.WithSimulations(simulations))
		}
		s, err := searcher.NewMCTS(options...)
		if err != nil {
			return nil, err
		}
		return NewMCTS(s), nil

	case AlgorithmMinimax:
		options := []searcher.MinimaxOption{searcher.WithMinimaxMetrics()}
		if config.MaxDepth != 0 {
			options = append(options, searcher.WithMaxDepth(config.MaxDepth))
		}
		s, err := searcher.NewMinimax(options...)
		if err != nil {
			return nil, err
		}
		return NewMinimax(s), nil

	case AlgorithmRandom:
		return NewRandom(config.Seed), nil
	}
	return nil, errors.Wrapf(game.ErrConfiguration, "unknown algorithm %q", config.Algorithm)
}
