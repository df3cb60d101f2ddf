package experiments

import (
	"context"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"tictac/engine"
	"tictac/experiments/metrics"
	"tictac/game"
	"tictac/meta"
	"tictac/player"
)

// MatchUp pairs two agents. Sides alternate from game to game, with the first
// agent starting the even games.
type MatchUp [2]metrics.AgentConfig

type Experiment struct {
	Name       string
	Game       game.Info
	MatchUps   []MatchUp
	Games      int // per match up
	Goroutines int // games played at once
}

// Report holds the results of an experiment. Scores are indexed like the
// match ups; records are ordered by game ID.
type Report struct {
	Scores []Score
	Games  []metrics.GameRecord
	Moves  []metrics.MoveRecord
}

type gameResult struct {
	record  metrics.GameRecord
	moves   []metrics.MoveMetric
	outcome game.Result
	first   game.Player // side of the match up's first agent
}

// Run plays every match up of x. Games are independent, so they are played
// concurrently, each agent with its own search state.
func Run(ctx context.Context, x Experiment) (Report, error) {
	games := x.Games
	if games <= 0 {
		games = meta.Games
	}
	goroutines := x.Goroutines
	if goroutines <= 0 {
		goroutines = meta.GoRoutines
	}
	if x.Game.New == nil {
		return Report{}, errors.Wrap(game.ErrConfiguration, "experiment has no game")
	}

	log.Info().Msgf("starting %s experiment...", x.Name)

	results := make([]gameResult, len(x.MatchUps)*games)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(goroutines)
	for mi, matchUp := range x.MatchUps {
		for i := 0; i < games; i++ {
			id := mi*games + i
			g.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				result, err := runGame(x.Game, matchUp, i, id+1)
				if err != nil {
					return errors.WithMessagef(err, "match up %d game %d", mi+1, i+1)
				}
				results[id] = result
				log.Info().Msgf("completed matchup %d of %d game %d with result: %s", mi+1, len(x.MatchUps), i+1, result.outcome)
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return Report{}, err
	}

	report := Report{Scores: make([]Score, len(x.MatchUps))}
	for id, result := range results {
		score := &report.Scores[id/games]
		switch {
		case result.outcome.Favors(result.first):
			score.Wins++
		case result.outcome.Favors(result.first.Opponent()):
			score.Losses++
		default:
			score.Draws++
		}
		report.Games = append(report.Games, result.record)
		for _, mm := range result.moves {
			report.Moves = append(report.Moves, metrics.MoveRecord{Game: result.record.ID, MoveMetric: mm})
		}
	}

	for mi, score := range report.Scores {
		_, elo, _ := score.Elo()
		log.Info().
			Int("matchup", mi+1).
			Int("wins", score.Wins).
			Int("draws", score.Draws).
			Int("losses", score.Losses).
			Float64("elo", elo).
			Msg("completed matchup")
	}
	log.Info().Msgf("completed %s experiment", x.Name)
	return report, nil
}

// runGame executes a single game between two agents. Game i of a match up
// seeds the agents with their seed plus i.
func runGame(info game.Info, matchUp MatchUp, i, id int) (gameResult, error) {
	agents := [2]engine.Agent{}
	for side, config := range matchUp {
		config.Seed += uint64(i)
		agent, err := player.FromConfig(config, info.Simulations)
		if err != nil {
			return gameResult{}, err
		}
		agents[side] = agent
	}

	first := game.PlayerOne
	one, two := 0, 1
	if i%2 == 1 {
		first = game.PlayerTwo
		one, two = 1, 0
	}

	outcome, err := engine.LocalEngine(info.New(), agents[one], agents[two]).Run()
	if err != nil {
		return gameResult{}, err
	}

	return gameResult{
		record: metrics.GameRecord{
			ID:         id,
			Agent1:     matchUp[one].ID,
			Agent2:     matchUp[two].ID,
			GameMetric: outcome.Game,
		},
		moves:   outcome.Moves,
		outcome: outcome.Result,
		first:   first,
	}, nil
}

// Save writes the agent configs and records of a report below root.
func Save(root string, x Experiment, report Report) (string, error) {
	writer, err := metrics.NewWriter(root, x.Name)
	if err != nil {
		return "", errors.WithMessage(err, "failed to create experiment writer")
	}

	var configs []metrics.AgentConfig
	seen := map[int]bool{}
	for _, matchUp := range x.MatchUps {
		for _, config := range matchUp {
			if !seen[config.ID] {
				seen[config.ID] = true
				configs = append(configs, config)
			}
		}
	}
	if err := writer.WriteAgentConfigs(configs); err != nil {
		return "", err
	}
	log.Info().Msg("stored agent configs")

	if err := writer.WriteGameRecords(report.Games); err != nil {
		return "", err
	}
	log.Info().Msg("stored game records")

	if err := writer.WriteMoveRecords(report.Moves); err != nil {
		return "", err
	}
	log.Info().Msg("stored move records")
	return writer.Dir(), nil
}
