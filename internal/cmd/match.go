package cmd

import (
	"fmt"
	"math"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"tictac/experiments"
	"tictac/experiments/metrics"
	"tictac/meta"
	"tictac/player"
)

func Match(env *environment) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "match",
		Short: "Pit two search algorithms against each other",
		Args:  cobra.NoArgs,
		Long: heredoc.Doc(`match plays a series of games between a first and a second
			agent, alternating who moves first, and reports the first
			agent's score with an Elo estimate and its 95% bounds.

			The first agent is configured with the plain agent flags,
			the second with the same flags prefixed by "vs-". Use --out
			to store agent configs, games and moves as CSV files.`),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, _ := cmd.Flags().GetString("game")
			info, err := lookupGame(name)
			if err != nil {
				return err
			}
			games, _ := cmd.Flags().GetInt("games")
			goroutines, _ := cmd.Flags().GetInt("goroutines")

			first := env.agentConfig(cmd, "", 1)
			second := env.agentConfig(cmd, "vs-", 2)
			second.Seed++
			for _, config := range []*metrics.AgentConfig{&first, &second} {
				if config.Simulations == 0 {
					config.Simulations = env.config.Simulations(info)
				}
			}
			x := experiments.Experiment{
				Name:       fmt.Sprintf("%s_%s_vs_%s", info.Name, first.Algorithm, second.Algorithm),
				Game:       info,
				MatchUps:   []experiments.MatchUp{{first, second}},
				Games:      games,
				Goroutines: goroutines,
			}

			report, err := experiments.Run(cmd.Context(), x)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			score := report.Scores[0]
			lower, elo, upper := score.Elo()
			fmt.Fprintf(out, "%s: %s vs %s\n", info.Title, describe(first), describe(second))
			fmt.Fprintf(out, "Score: %s %s %s (%.1f/%d)\n",
				color.GreenString("+%d", score.Wins),
				color.YellowString("=%d", score.Draws),
				color.RedString("-%d", score.Losses),
				score.Points(), score.Games())
			fmt.Fprintf(out, "Elo:   %s [%s, %s]\n", formatElo(elo), formatElo(lower), formatElo(upper))

			for side, id := range []int{first.ID, second.ID} {
				var moves []metrics.MoveMetric
				for _, record := range report.Moves {
					if agentOf(report, record) == id {
						moves = append(moves, record.MoveMetric)
					}
				}
				mean, std := experiments.ThinkingTime(moves)
				fmt.Fprintf(out, "Agent %d thinks %s ± %s per move\n", side+1, mean, std)
			}

			if dir, _ := cmd.Flags().GetString("out"); dir != "" {
				path, err := experiments.Save(dir, x, report)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Results stored in %s\n", path)
			}
			return nil
		},
	}

	cmd.Flags().StringP("game", "g", "tictactoe", "Game to play: "+strings.Join(gameNames(), ", "))
	cmd.Flags().IntP("games", "n", meta.Games, "Number of games")
	cmd.Flags().Int("goroutines", meta.GoRoutines, "Number of games played at once")
	cmd.Flags().Uint64("seed", 0, "Seed of the agents' random sources")
	cmd.Flags().String("out", "", "Directory to store CSV results in")
	addAgentFlags(cmd, "")
	addAgentFlags(cmd, "vs-")

	return cmd
}

// agentOf returns the config ID of the agent that played a move.
func agentOf(report experiments.Report, record metrics.MoveRecord) int {
	g := report.Games[record.Game-1]
	if record.Player == 1 {
		return g.Agent1
	}
	return g.Agent2
}

func describe(config metrics.AgentConfig) string {
	switch config.Algorithm {
	case player.AlgorithmMCTS:
		if config.Duration > 0 {
			return fmt.Sprintf("mcts(%s)", config.Duration)
		}
		return fmt.Sprintf("mcts(%d)", config.Simulations)
	case player.AlgorithmMinimax:
		if config.MaxDepth > 0 {
			return fmt.Sprintf("minimax(depth %d)", config.MaxDepth)
		}
		return "minimax"
	}
	return config.Algorithm
}

func formatElo(elo float64) string {
	switch {
	case math.IsInf(elo, 1):
		return "+inf"
	case math.IsInf(elo, -1):
		return "-inf"
	}
	return fmt.Sprintf("%+.1f", elo)
}
